package http

import (
	"net/http"

	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/pkg/gatesdk"
	"github.com/roamlabs/tripgate/pkg/httpx"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

// TokenRefreshHandler serves POST /token/refresh behind refresh-token
// authentication. It mints a new access token; the presented refresh token
// is neither rotated nor revoked.
type TokenRefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Access Token Refresh Endpoint
//	@Description	Mints a fresh access token off a valid, unrevoked refresh token.
//	@Description	The refresh token stays usable until it expires or is revoked.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gatesdk.RefreshResponse
//	@Failure		401	{object}	map[string]string	"error"
//	@Router			/token/refresh [post].
func (h *TokenRefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := httpx.TokenFromCtx(ctx)
	if token == "" {
		gatesdk.ErrInvalidToken.WriteError(w)
		return
	}

	access, err := h.TokenService.Refresh(ctx, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if claims, ok := httpx.ClaimsFromCtx(ctx); ok {
		slogx.FromContext(ctx).Info("access token refreshed",
			"user_id", claims.Subject,
			"username", claims.Username,
		)
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.RefreshResponse{AccessToken: access})
}
