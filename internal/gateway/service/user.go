package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/internal/gateway/store"
	"github.com/roamlabs/tripgate/pkg/cryptox"
	"github.com/roamlabs/tripgate/pkg/idx"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

var (
	ErrUserExists    = errors.New("user_exists")
	ErrUserNotFound  = errors.New("user_not_found")
	ErrWrongPassword = errors.New("wrong_password")
)

// UserService handles account registration and credential checks. Passwords
// are stored as Argon2id hashes; plaintext never touches the store.
type UserService struct {
	Store store.Store
}

// Register creates a new account. The duplicate check and the insert run in
// one transaction so two concurrent registrations of the same username can't
// both succeed; the unique index backs this up at the database level.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.MustNew().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByUsername(ctx, username)
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("username", username))
	return user, nil
}

// Login checks a username/password pair and returns the stored user.
// Unknown users and bad passwords are distinct failures so the handler can
// keep the upstream-visible distinction between the two.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// ListUsernames returns every registered username, oldest first.
func (s *UserService) ListUsernames(ctx context.Context) ([]string, error) {
	return s.Store.Users().ListUsernames(ctx)
}
