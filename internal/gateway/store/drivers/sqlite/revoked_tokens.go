package sqlite

import "context"

type revokedTokensRepo struct {
	db dbtx
}

func (r *revokedTokensRepo) AddRevokedToken(ctx context.Context, jti string) error {
	// INSERT OR IGNORE keeps revocation idempotent.
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO revoked_tokens (jti) VALUES (?)`, jti)
	return err
}

func (r *revokedTokensRepo) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM revoked_tokens WHERE jti = ?`, jti)

	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
