package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/internal/gateway/store"
	"github.com/roamlabs/tripgate/internal/gateway/store/drivers/sqlite"
	"github.com/roamlabs/tripgate/pkg/httpx"
	"github.com/roamlabs/tripgate/pkg/jwtx"
)

const testIssuer = "tripgate-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTokenService(t *testing.T, st store.Store) *TokenService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	return &TokenService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(testSecret, testIssuer),
		Store:    st,
		Issuer:   testIssuer,
	}
}

func testUser() domain.User {
	return domain.User{ID: "01J0000000000000000000USER", Username: "alice"}
}

func TestIssuePair(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := svc.Authorize(ctx, pair.AccessToken, jwtx.KindAccess)
	require.NoError(t, err)
	require.Equal(t, "alice", access.Username)
	require.Equal(t, jwtx.KindAccess, access.Kind)

	refresh, err := svc.Authorize(ctx, pair.RefreshToken, jwtx.KindRefresh)
	require.NoError(t, err)
	require.Equal(t, jwtx.KindRefresh, refresh.Kind)

	require.NotEqual(t, access.ID, refresh.ID, "each token carries its own jti")
}

func TestAuthorizeRejectsWrongKind(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.Authorize(ctx, pair.RefreshToken, jwtx.KindAccess)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Authorize(ctx, pair.AccessToken, jwtx.KindRefresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthorizeStoreFailureIsNotDenial(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTokenService(t, st)

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	// Take the revocation set away: the token must not come back as
	// invalid, it was never judged.
	require.NoError(t, st.Close())

	_, err = svc.Authorize(ctx, pair.AccessToken, jwtx.KindAccess)
	require.ErrorIs(t, err, httpx.ErrAuthUnavailable)
	require.NotErrorIs(t, err, ErrInvalidToken)
	require.NotErrorIs(t, err, ErrRevoked)
}

func TestAuthorizeRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))

	_, err := svc.Authorize(ctx, "not-a-token", jwtx.KindAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeThenAuthorize(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, pair.AccessToken, jwtx.KindAccess))

	// Signature is still valid; authorization fails on the revocation set.
	_, err = svc.Authorize(ctx, pair.AccessToken, jwtx.KindAccess)
	require.ErrorIs(t, err, ErrRevoked)

	// The refresh token is independent and stays usable.
	_, err = svc.Authorize(ctx, pair.RefreshToken, jwtx.KindRefresh)
	require.NoError(t, err)
}

func TestRevokeIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken, jwtx.KindRefresh))
	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken, jwtx.KindRefresh))
}

func TestRevokeRequiresMatchingKind(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	err = svc.Revoke(ctx, pair.AccessToken, jwtx.KindRefresh)
	require.ErrorIs(t, err, ErrInvalidToken)

	// The mismatched revoke must not have touched the access token.
	_, err = svc.Authorize(ctx, pair.AccessToken, jwtx.KindAccess)
	require.NoError(t, err)
}

func TestRefreshDoesNotRotate(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))
	svc.AccessTTL = time.Hour

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	first, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	second, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	firstClaims, err := svc.Authorize(ctx, first, jwtx.KindAccess)
	require.NoError(t, err)
	secondClaims, err := svc.Authorize(ctx, second, jwtx.KindAccess)
	require.NoError(t, err)
	require.NotEqual(t, firstClaims.ID, secondClaims.ID)

	// Refresh never consumes the refresh token.
	_, err = svc.Authorize(ctx, pair.RefreshToken, jwtx.KindRefresh)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsRevokedRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newTokenService(t, newTestStore(t))

	pair, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken, jwtx.KindRefresh))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrRevoked)
}
