package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/internal/gateway/store"
	"github.com/roamlabs/tripgate/pkg/httpx"
	"github.com/roamlabs/tripgate/pkg/jwtx"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrRevoked      = errors.New("token_revoked")
)

// TokenService owns the session lifecycle: issuing access/refresh pairs,
// minting fresh access tokens off a refresh token, authorizing requests and
// revoking individual tokens.
//
// Both tokens are signed JWTs; the revocation set is keyed by jti, so a
// revoked token keeps a valid signature but is rejected at authorization.
type TokenService struct {
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// IssuePair mints a fresh access/refresh pair for a user. Each token carries
// its own jti; nothing about the pair is persisted.
func (s *TokenService) IssuePair(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.Signer.Sign(jwtx.NewClaims(
		user.ID, user.Username, jwtx.KindAccess, s.accessTTL(), s.Issuer, now,
	))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Signer.Sign(jwtx.NewClaims(
		user.ID, user.Username, jwtx.KindRefresh, s.refreshTTL(), s.Issuer, now,
	))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token from a valid, unrevoked refresh token.
// The refresh token itself is untouched: it is neither rotated nor revoked,
// and stays usable until it expires or the caller revokes it.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Authorize(ctx, refreshToken, jwtx.KindRefresh)
	if err != nil {
		return "", err
	}

	return s.Signer.Sign(jwtx.NewClaims(
		claims.Subject, claims.Username, jwtx.KindAccess, s.accessTTL(), s.Issuer, time.Now().UTC(),
	))
}

// Authorize verifies a token end to end: signature and temporal claims via
// the verifier, then the kind claim, then membership in the revocation set.
// Revocation is checked last so a forged token never reaches the store.
func (s *TokenService) Authorize(ctx context.Context, token, kind string) (jwtx.Claims, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		l.Info("token rejected", slog.String("reason", err.Error()))
		return jwtx.Claims{}, ErrInvalidToken
	}

	if err := claims.ValidateKind(kind); err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	if claims.ID == "" {
		return jwtx.Claims{}, ErrInvalidToken
	}

	revoked, err := s.Store.RevokedTokens().IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		// Not a judgement on the token: the revocation set was unreadable.
		return jwtx.Claims{}, fmt.Errorf("%w: revocation check: %w", httpx.ErrAuthUnavailable, err)
	}
	if revoked {
		return jwtx.Claims{}, ErrRevoked
	}

	return claims, nil
}

// Revoke places a single token's jti into the revocation set. The token must
// verify and carry the expected kind, so an access token cannot be used to
// revoke a refresh token or vice versa. Revoking an already-revoked token
// succeeds.
func (s *TokenService) Revoke(ctx context.Context, token, kind string) error {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return ErrInvalidToken
	}
	if err := claims.ValidateKind(kind); err != nil {
		return ErrInvalidToken
	}
	if claims.ID == "" {
		return ErrInvalidToken
	}

	return s.Store.RevokedTokens().AddRevokedToken(ctx, claims.ID)
}
