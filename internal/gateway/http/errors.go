package http

import (
	"errors"
	"net/http"

	"github.com/roamlabs/tripgate/internal/gateway/location"
	"github.com/roamlabs/tripgate/internal/gateway/provider"
	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/pkg/gatesdk"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

// writeServiceError maps service-layer failures onto the gateway's closed
// error taxonomy. Anything unmapped is an internal failure: the detail is
// logged, the client sees the generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, location.ErrUnknownLocation):
		gatesdk.ErrNoLocation.WriteError(w)
	case errors.Is(err, provider.ErrNoInformation):
		gatesdk.ErrNoInformation.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrRevoked):
		gatesdk.ErrInvalidToken.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		gatesdk.ErrServerError.WriteError(w)
	}
}
