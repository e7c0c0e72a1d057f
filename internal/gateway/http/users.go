package http

import (
	"net/http"

	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/pkg/gatesdk"
	"github.com/roamlabs/tripgate/pkg/httpx"
)

// UsersHandler serves GET /users, listing every registered username.
// Deliberately unauthenticated, matching the contract clients rely on.
type UsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		User List Endpoint
//	@Description	Lists every registered username, oldest first
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	gatesdk.UsersResponse
//	@Failure		500	{object}	map[string]string	"error"
//	@Router			/users [get].
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	names, err := h.UserService.ListUsernames(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.UsersResponse{Users: names})
}
