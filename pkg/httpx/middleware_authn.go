package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/roamlabs/tripgate/pkg/jwtx"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

// ErrAuthUnavailable marks an Authorize failure where the token was never
// actually judged, e.g. the revocation store could not be reached. Authorizer
// implementations wrap it so the middleware answers 500 instead of 401.
var ErrAuthUnavailable = errors.New("httpx: authorization unavailable")

// Authorizer validates a bearer token of the required kind and checks it
// against the server-side revocation set. A revoked token must fail here
// even when its signature is still valid.
type Authorizer interface {
	Authorize(ctx context.Context, token, kind string) (jwtx.Claims, error)
}

// AuthnMiddleware guards a route with bearer authentication. The required
// kind is "access" for resource reads and "refresh" for token refresh and
// refresh-token logout.
func AuthnMiddleware(a Authorizer, kind string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := a.Authorize(ctx, raw, kind)
			if err != nil {
				if errors.Is(err, ErrAuthUnavailable) {
					log.Error("bearer authorize unavailable", "err", err)
					writeAuthUnavailable(w)
					return
				}
				writeBearerError(w, "token verification failed")
				log.Warn("bearer authorize failed", "err", err)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, claims, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims, raw string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	ctx = context.WithValue(ctx, CtxKeyToken, raw)
	return ctx
}

// writeAuthUnavailable answers the same internal-error shape as the rest of
// the gateway. No WWW-Authenticate header: the token was not rejected.
func writeAuthUnavailable(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"something went wrong"}`))
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + desc + `"}`))
}
