package wagers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/betarena/core/internal/infra/pgtestutil"
)

func TestWagers_ListWaiting_ExcludesDue(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "maker", t)
	seedUser(db, "joiner", t)

	now := time.Now().UTC()

	open := seedWager(db, repo, "maker", now.Add(time.Hour), t)
	seedWager(db, repo, "maker", now.Add(-time.Minute), t) // due, sweeper territory

	matched := seedWager(db, repo, "maker", now.Add(time.Hour), t)
	err := inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetActive(tx, matched.ID, "joiner", now)
	})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}

	got, err := repo.ListWaiting(context.Background(), now)
	if err != nil {
		t.Fatalf("list waiting: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("want exactly 1 open wager, got %d", len(got))
	}
	if got[0].ID != open.ID {
		t.Fatalf("want %s, got %s", open.ID, got[0].ID)
	}
}

func TestWagers_ListByUser_BothSides(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "maker", t)
	seedUser(db, "joiner", t)
	seedUser(db, "stranger", t)

	now := time.Now().UTC()

	created := seedWager(db, repo, "maker", now.Add(time.Hour), t)

	joined := seedWager(db, repo, "stranger", now.Add(time.Hour), t)
	err := inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetActive(tx, joined.ID, "maker", now)
	})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}

	seedWager(db, repo, "stranger", now.Add(time.Hour), t) // not maker's

	got, err := repo.ListByUser(context.Background(), "maker")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("want 2 wagers for maker, got %d", len(got))
	}

	ids := map[string]bool{got[0].ID: true, got[1].ID: true}
	if !ids[created.ID] || !ids[joined.ID] {
		t.Fatalf("missing created or joined wager in %v", ids)
	}
}

func TestWagers_ListDueExpiry(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "maker", t)

	now := time.Now().UTC()

	due1 := seedWager(db, repo, "maker", now.Add(-2*time.Minute), t)
	due2 := seedWager(db, repo, "maker", now.Add(-time.Minute), t)
	seedWager(db, repo, "maker", now.Add(time.Hour), t) // not due

	ids, err := repo.ListDueExpiry(context.Background(), now, 100)
	if err != nil {
		t.Fatalf("list due expiry: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("want 2 due wagers, got %d", len(ids))
	}

	// Oldest deadline first.
	if ids[0] != due1.ID || ids[1] != due2.ID {
		t.Fatalf("want [%s %s], got %v", due1.ID, due2.ID, ids)
	}

	ids, err = repo.ListDueExpiry(context.Background(), now, 1)
	if err != nil {
		t.Fatalf("list due expiry with limit: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("limit ignored: want 1, got %d", len(ids))
	}
}
