//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/unbounded/waitlist/internal/model"
	"github.com/unbounded/waitlist/internal/testutil"
)

func newSignupTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()

	dbURL := testutil.RequireEnv(t, "DATABASE_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	repo, err := New(ctx, dbURL, DefaultTable)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("AcquireDBLock failed: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Logf("unlock failed: %v", err)
		}
	})

	if err := testutil.ResetSignupsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("ResetSignupsSchema failed: %v", err)
	}

	return ctx, repo
}

func TestIntegrationSignupRepository_InsertKeepsDuplicates(t *testing.T) {
	ctx, repo := newSignupTestEnv(t)

	email := testutil.UniqueEmail("dup")
	for i := 0; i < 2; i++ {
		if err := repo.InsertSignup(ctx, model.NewSignup(email, time.Now())); err != nil {
			t.Fatalf("InsertSignup #%d failed: %v", i, err)
		}
	}

	var count int
	if err := repo.Pool().QueryRow(ctx, `SELECT count(*) FROM waitlist_signups WHERE email = $1`, email).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestIntegrationSignupRepository_Ping(t *testing.T) {
	ctx, repo := newSignupTestEnv(t)

	if err := repo.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
