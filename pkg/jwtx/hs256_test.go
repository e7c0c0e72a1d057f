package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewSignerHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewSignerHS256([]byte("too-short"))
	require.Error(t, err)
}

func TestHS256SignAndVerify(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	require.Equal(t, "HS256", signer.Alg())
	require.NoError(t, signer.Validate())

	claims := NewClaims("user-1", "alice", KindAccess, time.Minute, "tripgate", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := NewVerifierHS256(testSecret, "tripgate")
	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, KindAccess, got.Kind)
	require.Equal(t, claims.ID, got.ID)
}

func TestHS256VerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("user-1", "alice", KindAccess, time.Minute, "tripgate", time.Now()))
	require.NoError(t, err)

	verifier := NewVerifierHS256([]byte("ffffffffffffffffffffffffffffffff"), "tripgate")
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestHS256VerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	token, err := signer.Sign(NewClaims("user-1", "alice", KindAccess, time.Minute, "tripgate", past))
	require.NoError(t, err)

	verifier := NewVerifierHS256(testSecret, "tripgate")
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256VerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("user-1", "alice", KindAccess, time.Minute, "someone-else", time.Now()))
	require.NoError(t, err)

	verifier := NewVerifierHS256(testSecret, "tripgate")
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestHS256VerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	verifier := NewVerifierHS256(testSecret, "tripgate")
	_, err := verifier.Verify("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformed)
}
