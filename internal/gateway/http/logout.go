package http

import (
	"net/http"

	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/pkg/gatesdk"
	"github.com/roamlabs/tripgate/pkg/httpx"
	"github.com/roamlabs/tripgate/pkg/jwtx"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

// LogoutHandler revokes the bearer token the request presented. It is
// mounted twice: once behind access-token authentication for
// POST /logout/access and once behind refresh-token authentication for
// POST /logout/refresh. Kind selects which flavour this instance revokes.
type LogoutHandler struct {
	TokenService *service.TokenService
	Kind         string
}

// ServeHTTP godoc
//
//	@Summary		Token Logout Endpoint
//	@Description	Revokes the presented bearer token by placing its jti in the
//	@Description	server-side revocation set. Revoking a token twice succeeds.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gatesdk.MessageResponse
//	@Failure		401	{object}	map[string]string	"error"
//	@Failure		500	{object}	map[string]string	"error"
//	@Router			/logout/access [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := httpx.TokenFromCtx(ctx)
	if token == "" {
		gatesdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.TokenService.Revoke(ctx, token, h.Kind); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("token revoked",
		"kind", h.Kind,
		"user_id", httpx.UserIDFromCtx(ctx),
		"username", httpx.UsernameFromCtx(ctx),
	)

	msg := "Access token has been revoked"
	if h.Kind == jwtx.KindRefresh {
		msg = "Refresh token has been revoked"
	}
	httpx.WriteJSON(w, http.StatusOK, gatesdk.MessageResponse{Message: msg})
}
