package httpx_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roamlabs/tripgate/pkg/httpx"
	"github.com/roamlabs/tripgate/pkg/jwtx"
)

type stubAuthorizer struct {
	claims jwtx.Claims
	err    error
}

func (s stubAuthorizer) Authorize(context.Context, string, string) (jwtx.Claims, error) {
	return s.claims, s.err
}

func guarded(a httpx.Authorizer, next http.Handler) http.Handler {
	return httpx.Chain(next, httpx.AuthnMiddleware(a, jwtx.KindAccess))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthnMissingBearer(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	guarded(stubAuthorizer{}, okHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
}

func TestAuthnRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	guarded(stubAuthorizer{err: errors.New("verification failed")}, okHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
}

func TestAuthnUnavailableIsServerError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer a.b.c")

	a := stubAuthorizer{err: fmt.Errorf("%w: store down", httpx.ErrAuthUnavailable)}
	guarded(a, okHandler()).ServeHTTP(rec, req)

	// The token was never judged, so this is not a 401 and carries no
	// bearer challenge.
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, rec.Header().Get("WWW-Authenticate"))
	require.JSONEq(t, `{"error":"something went wrong"}`, rec.Body.String())
}

func TestAuthnInjectsIdentity(t *testing.T) {
	t.Parallel()

	claims := jwtx.NewClaims("user-1", "alice", jwtx.KindAccess, time.Minute, "tripgate-test", time.Now())
	a := stubAuthorizer{claims: claims}

	var seen struct {
		userID   string
		username string
		token    string
		claims   jwtx.Claims
		hasClaim bool
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		seen.userID = httpx.UserIDFromCtx(ctx)
		seen.username = httpx.UsernameFromCtx(ctx)
		seen.token = httpx.TokenFromCtx(ctx)
		seen.claims, seen.hasClaim = httpx.ClaimsFromCtx(ctx)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer a.b.c")

	guarded(a, next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", seen.userID)
	require.Equal(t, "alice", seen.username)
	require.Equal(t, "a.b.c", seen.token)
	require.True(t, seen.hasClaim)
	require.Equal(t, claims.ID, seen.claims.ID)
}
