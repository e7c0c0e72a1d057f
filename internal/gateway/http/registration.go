package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/pkg/gatesdk"
	"github.com/roamlabs/tripgate/pkg/httpx"
)

// credentialsRequest is the shared body for registration and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// decodeCredentials parses and validates the request body. Both fields must
// be present and non-blank.
func decodeCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return credentialsRequest{}, err
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		return credentialsRequest{}, fmt.Errorf("username and password cannot be blank")
	}
	return req, nil
}

// RegistrationHandler serves POST /registration. A successful registration
// also issues the first token pair so clients can skip a follow-up login.
// Registering a taken username comes back 200 with a message and no tokens.
type RegistrationHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		User Registration Endpoint
//	@Description	Creates an account and issues the first access/refresh pair.
//	@Description	A duplicate username returns 200 with a message and no tokens.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		gatesdk.Credentials	true	"Account credentials"
//	@Success		200		{object}	gatesdk.TokenResponse
//	@Failure		400		{object}	map[string]string	"error"
//	@Failure		500		{object}	map[string]string	"error"
//	@Router			/registration [post].
func (h *RegistrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeCredentials(r)
	if err != nil {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			httpx.WriteJSON(w, http.StatusOK, gatesdk.MessageResponse{
				Message: fmt.Sprintf("User %s already exists", strings.TrimSpace(req.Username)),
			})
			return
		}
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.TokenService.IssuePair(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.TokenResponse{
		Message:      fmt.Sprintf("User %s was created", user.Username),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
