// README: Quota module tests (lazy reset and allowance boundary logic).
package quota

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestSpendTurnCrossMonthReset verifies that a user with 0 turns left from a
// previous month is automatically reset and the request succeeds.
func TestSpendTurnCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	// Seed user with 0 turns from a past month.
	if _, err := db.Exec(ctx, "INSERT INTO turn_quota VALUES ('user_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.SpendTurn(ctx, "user_reset"); err != nil {
		t.Fatalf("SpendTurn after cross-month reset: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT turns_remaining FROM turn_quota WHERE uid = 'user_reset'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultTurns-1 {
		t.Fatalf("expected %d turns remaining, got %d", DefaultTurns-1, remaining)
	}
}

// TestSpendTurnExhausted verifies that a user with 0 turns in the current month is blocked.
func TestSpendTurnExhausted(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO turn_quota (uid, turns_remaining, last_reset_month) VALUES ('user_zero', 0, TO_CHAR(NOW(), 'YYYY-MM'))"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.SpendTurn(ctx, "user_zero"); err != ErrQuotaExhausted {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
}

// TestSpendTurnNewUser verifies that a user absent from the table is initialised on first call.
func TestSpendTurnNewUser(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if err := svc.SpendTurn(ctx, "user_new"); err != nil {
		t.Fatalf("SpendTurn for new user: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT turns_remaining FROM turn_quota WHERE uid = 'user_new'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultTurns-1 {
		t.Fatalf("expected %d turns remaining after first use, got %d", DefaultTurns-1, remaining)
	}
}

// setupTestService creates a real postgres-backed Service for integration tests.
// It skips the test when JELAJAH_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("JELAJAH_TEST_DSN")
	if dsn == "" {
		t.Skip("JELAJAH_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	schema, err := os.ReadFile(filepath.Join(repoRoot(t), "migrations", "0001_turn_quota.sql"))
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if _, err := db.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE turn_quota"); err != nil {
		t.Fatalf("truncate turn_quota: %v", err)
	}

	return NewService(NewStore(db)), db
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	t.Fatal("go.mod not found above working directory")
	return ""
}
