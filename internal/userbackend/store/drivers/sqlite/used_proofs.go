package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/store"
)

type usedProofsRepo struct {
	db  *sql.DB
	now func() time.Time
}

const claimProof = `
INSERT INTO used_proofs (jti, claimed_at, expires_at)
VALUES (?, ?, ?)
ON CONFLICT (jti) DO NOTHING`

func (r *usedProofsRepo) Claim(ctx context.Context, jti string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, claimProof, jti, r.now().Unix(), expiresAt.Unix())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyClaimed
	}
	return nil
}

func (r *usedProofsRepo) Release(ctx context.Context, jti string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM used_proofs WHERE jti = ?`, jti)
	return err
}

func (r *usedProofsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM used_proofs WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
