package http

import (
	"net/http"

	"github.com/roamlabs/tripgate/pkg/gatesdk"
	"github.com/roamlabs/tripgate/pkg/httpx"
)

// WelcomeHandler serves the unauthenticated root route.
type WelcomeHandler struct{}

// ServeHTTP godoc
//
//	@Summary	Welcome Endpoint
//	@Description	Unauthenticated greeting confirming the gateway is up
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	gatesdk.MessageResponse
//	@Router		/ [get].
func (h *WelcomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, gatesdk.MessageResponse{
		Message: "Let's try to travel with our experimental API",
	})
}
