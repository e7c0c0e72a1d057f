package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/pkg/gatesdk"
	"github.com/roamlabs/tripgate/pkg/httpx"
)

// LoginHandler serves POST /login, exchanging credentials for a token pair.
type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		User Login Endpoint
//	@Description	Exchanges username/password for an access/refresh token pair.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		gatesdk.Credentials	true	"Account credentials"
//	@Success		200		{object}	gatesdk.TokenResponse
//	@Failure		400		{object}	map[string]string	"error"
//	@Failure		401		{object}	gatesdk.MessageResponse	"wrong credentials"
//	@Failure		404		{object}	gatesdk.MessageResponse	"unknown user"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeCredentials(r)
	if err != nil {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, gatesdk.MessageResponse{
				Message: fmt.Sprintf("User %s doesn't exist", strings.TrimSpace(req.Username)),
			})
		case errors.Is(err, service.ErrWrongPassword):
			httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.MessageResponse{
				Message: "Wrong credentials",
			})
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	pair, err := h.TokenService.IssuePair(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.TokenResponse{
		Message:      fmt.Sprintf("Logged in as %s", user.Username),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
