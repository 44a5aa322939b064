package wagers

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/betarena/core/internal/infra/pgtestutil"
	"github.com/betarena/core/internal/repos/wagers"
	"github.com/google/uuid"
)

func seedMatchWager(db *sql.DB, repo *wagersRepo, creatorID, eventID string, side wagers.Side, createdAt, expiresAt time.Time, t *testing.T) *wagers.Wager {
	t.Helper()

	w := &wagers.Wager{
		ID:         uuid.NewString(),
		InviteCode: uuid.NewString(),
		EventType:  wagers.EventSports,
		EventTitle: "derby",
		EventID:    eventID,
		Side:       side,
		SideName:   "home",
		Amount:     2_000,
		CreatorID:  creatorID,
		Status:     wagers.StatusWaiting,
		CreatedAt:  createdAt,
		ExpiresAt:  expiresAt,
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin seed tx: %v", err)
	}

	err = repo.Insert(tx, w)
	if err != nil {
		_ = tx.Rollback()
		t.Fatalf("insert match wager: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit seed tx: %v", err)
	}

	return w
}

func TestWagers_FindOpenMatch(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "maker1", t)
	seedUser(db, "maker2", t)
	seedUser(db, "taker", t)

	now := time.Now().UTC()
	later := now.Add(time.Hour)

	// Two candidates on the same key; the older one must win.
	older := seedMatchWager(db, repo, "maker1", "match-42", wagers.SideA, now.Add(-2*time.Minute), later, t)
	seedMatchWager(db, repo, "maker2", "match-42", wagers.SideA, now.Add(-time.Minute), later, t)

	// Noise that must never match: other event, other side, expired.
	seedMatchWager(db, repo, "maker1", "match-99", wagers.SideA, now, later, t)
	seedMatchWager(db, repo, "maker1", "match-42", wagers.SideB, now, later, t)
	seedMatchWager(db, repo, "maker2", "match-42", wagers.SideA, now.Add(-time.Hour), now.Add(-time.Minute), t)

	err := inTx(db, t, func(tx *sql.Tx) error {
		got, err := repo.FindOpenMatch(tx, "match-42", wagers.SideA, 2_000, "taker", now)
		if err != nil {
			return err
		}

		if got.ID != older.ID {
			t.Fatalf("FIFO violated: want %s, got %s", older.ID, got.ID)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("find open match: %v", err)
	}
}

func TestWagers_FindOpenMatch_RequiresEqualStake(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "maker", t)
	seedUser(db, "taker", t)

	now := time.Now().UTC()
	w := seedMatchWager(db, repo, "maker", "match-13", wagers.SideA, now, now.Add(time.Hour), t)

	// A different stake on the right event and side is not a match.
	err := inTx(db, t, func(tx *sql.Tx) error {
		_, err := repo.FindOpenMatch(tx, "match-13", wagers.SideA, 999, "taker", now)
		return err
	})
	if !errors.Is(err, wagers.ErrNoOpenMatch) {
		t.Fatalf("expected ErrNoOpenMatch for mismatched stake, got: %v", err)
	}

	// The exact stake matches.
	err = inTx(db, t, func(tx *sql.Tx) error {
		got, err := repo.FindOpenMatch(tx, "match-13", wagers.SideA, 2_000, "taker", now)
		if err != nil {
			return err
		}

		if got.ID != w.ID {
			t.Fatalf("want %s, got %s", w.ID, got.ID)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("equal-stake find: %v", err)
	}
}

func TestWagers_FindOpenMatch_ExcludesOwnWagers(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "maker", t)

	now := time.Now().UTC()
	seedMatchWager(db, repo, "maker", "match-7", wagers.SideB, now, now.Add(time.Hour), t)

	err := inTx(db, t, func(tx *sql.Tx) error {
		_, err := repo.FindOpenMatch(tx, "match-7", wagers.SideB, 2_000, "maker", now)
		return err
	})
	if !errors.Is(err, wagers.ErrNoOpenMatch) {
		t.Fatalf("expected ErrNoOpenMatch against own wager, got: %v", err)
	}
}

func TestWagers_FindOpenMatch_SkipsLockedRows(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "maker1", t)
	seedUser(db, "maker2", t)
	seedUser(db, "taker", t)

	now := time.Now().UTC()
	later := now.Add(time.Hour)

	first := seedMatchWager(db, repo, "maker1", "match-lock", wagers.SideA, now.Add(-2*time.Minute), later, t)
	second := seedMatchWager(db, repo, "maker2", "match-lock", wagers.SideA, now.Add(-time.Minute), later, t)

	// Hold the lock on the FIFO head in one transaction while a second
	// transaction searches; SKIP LOCKED must hand it the next in line.
	holder, err := db.Begin()
	if err != nil {
		t.Fatalf("begin holder tx: %v", err)
	}
	defer func() { _ = holder.Rollback() }()

	_, err = repo.FindOpenMatch(holder, "match-lock", wagers.SideA, 2_000, "taker", now)
	if err != nil {
		t.Fatalf("holder find: %v", err)
	}

	err = inTx(db, t, func(tx *sql.Tx) error {
		got, err := repo.FindOpenMatch(tx, "match-lock", wagers.SideA, 2_000, "taker", now)
		if err != nil {
			return err
		}

		if got.ID != second.ID {
			t.Fatalf("skip locked: want %s (next in line after %s), got %s", second.ID, first.ID, got.ID)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("concurrent find: %v", err)
	}
}
