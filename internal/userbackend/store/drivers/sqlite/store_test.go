package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/store"
	"github.com/freecontest/userbackend/internal/userbackend/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, dsn string) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestUsedProofs(t *testing.T) {
	dsns := map[string]string{
		"memory": ":memory:",
		"file":   filepath.Join(t.TempDir(), "ledger.db"),
	}

	for name, dsn := range dsns {
		t.Run(name, func(t *testing.T) {
			s := newStore(t, dsn)
			ctx := context.Background()
			proofs := s.UsedProofs()
			exp := time.Now().Add(10 * time.Minute)

			require.NoError(t, s.Ping(ctx))

			require.NoError(t, proofs.Claim(ctx, "jti-1", exp))
			require.ErrorIs(t, proofs.Claim(ctx, "jti-1", exp), store.ErrAlreadyClaimed)

			require.NoError(t, proofs.Release(ctx, "jti-1"))
			require.NoError(t, proofs.Claim(ctx, "jti-1", exp), "released claims can be taken again")

			require.NoError(t, proofs.Release(ctx, "never-claimed"))
		})
	}
}

func TestUsedProofs_DeleteExpired(t *testing.T) {
	s := newStore(t, ":memory:")
	ctx := context.Background()
	proofs := s.UsedProofs()
	now := time.Now()

	require.NoError(t, proofs.Claim(ctx, "old", now.Add(-time.Minute)))
	require.NoError(t, proofs.Claim(ctx, "edge", now))
	require.NoError(t, proofs.Claim(ctx, "live", now.Add(time.Minute)))

	n, err := proofs.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	require.ErrorIs(t, proofs.Claim(ctx, "live", now.Add(time.Minute)), store.ErrAlreadyClaimed)
	require.NoError(t, proofs.Claim(ctx, "old", now.Add(time.Minute)))
}

func TestUsedProofs_ClaimedAtUsesClock(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "ledger.db")
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newStore(t, dsn).WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	require.NoError(t, s.UsedProofs().Claim(ctx, "jti-1", fixed.Add(10*time.Minute)))

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var claimedAt, expiresAt int64
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT claimed_at, expires_at FROM used_proofs WHERE jti = ?`, "jti-1").Scan(&claimedAt, &expiresAt))
	require.Equal(t, fixed.Unix(), claimedAt)
	require.Equal(t, fixed.Add(10*time.Minute).Unix(), expiresAt)
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, s.ApplyMigrations())
}
