package gatesdk

import (
	"encoding/json"
	"net/http"

	"github.com/roamlabs/tripgate/pkg/httpx"
)

// APIError is the gateway's wire error shape. It implements the error
// interface and is used both by the server (to write HTTP responses) and by
// the SDK client (to represent errors decoded off the wire).
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Message is the public error string, returned as {"error": Message}.
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": e.Message})
}

var (
	// ErrNoInformation is returned when an upstream provider could not supply
	// usable data for the request.
	ErrNoInformation = &APIError{
		StatusCode: http.StatusNotFound,
		Message:    "no information",
	}

	// ErrNoLocation is returned when neither an explicit zip code nor the
	// caller's network address yielded a usable location.
	ErrNoLocation = &APIError{
		StatusCode: http.StatusNotFound,
		Message:    "no location",
	}

	// ErrInvalidToken covers missing, malformed, expired and revoked bearer
	// tokens. The distinction is logged server side, never surfaced.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "invalid token",
	}

	// ErrInvalidRequest is returned for malformed request bodies or missing
	// required parameters.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	// ErrServerError is the catch-all for persistence and other internal
	// failures. The message mirrors what clients have always seen.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "something went wrong",
	}
)
