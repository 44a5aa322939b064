package wagers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/betarena/core/internal/infra/pgtestutil"
	"github.com/betarena/core/internal/repos/wagers"
	"github.com/google/uuid"
)

func seedUser(db *sql.DB, id string, t *testing.T) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO users (id, name, balance) VALUES ($1, $1, 100000)
		ON CONFLICT (id) DO NOTHING
	`, id)
	if err != nil {
		t.Fatalf("seed user(%s): %v", id, err)
	}
}

// seedWager inserts a waiting wager through the repo and returns it.
func seedWager(db *sql.DB, repo *wagersRepo, creatorID string, expiresAt time.Time, t *testing.T) *wagers.Wager {
	t.Helper()

	w := &wagers.Wager{
		ID:         uuid.NewString(),
		InviteCode: uuid.NewString(),
		EventType:  wagers.EventCustom,
		EventTitle: "rain tomorrow",
		Amount:     1_000,
		CreatorID:  creatorID,
		Status:     wagers.StatusWaiting,
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  expiresAt,
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin seed tx: %v", err)
	}

	err = repo.Insert(tx, w)
	if err != nil {
		_ = tx.Rollback()
		t.Fatalf("insert wager: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit seed tx: %v", err)
	}

	return w
}

func inTx(db *sql.DB, t *testing.T, fn func(tx *sql.Tx) error) error {
	t.Helper()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	err = fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit tx: %v", err)
	}

	return nil
}

func TestWagers_SetActive(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "creator", t)
	seedUser(db, "joiner", t)
	seedUser(db, "late", t)

	now := time.Now().UTC()
	w := seedWager(db, repo, "creator", now.Add(time.Hour), t)

	err := inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetActive(tx, w.ID, "joiner", now)
	})
	if err != nil {
		t.Fatalf("first activation: %v", err)
	}

	got, err := repo.GetByID(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("reload wager: %v", err)
	}
	if got.Status != wagers.StatusActive {
		t.Fatalf("status: want active, got %s", got.Status)
	}
	if got.OpponentID != "joiner" {
		t.Fatalf("opponent: want joiner, got %q", got.OpponentID)
	}

	// Second activation finds the guard closed.
	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetActive(tx, w.ID, "late", now)
	})
	if !errors.Is(err, wagers.ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict, got: %v", err)
	}

	// Activation after the deadline is refused too.
	stale := seedWager(db, repo, "creator", now.Add(-time.Minute), t)

	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetActive(tx, stale.ID, "joiner", now)
	})
	if !errors.Is(err, wagers.ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict on late activation, got: %v", err)
	}
}

func TestWagers_SetCompleted(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "creator", t)
	seedUser(db, "joiner", t)

	now := time.Now().UTC()
	w := seedWager(db, repo, "creator", now.Add(time.Hour), t)

	// Completing a waiting wager is a conflict, it was never active.
	err := inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetCompleted(tx, w.ID, "creator", now)
	})
	if !errors.Is(err, wagers.ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict on waiting wager, got: %v", err)
	}

	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetActive(tx, w.ID, "joiner", now)
	})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}

	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetCompleted(tx, w.ID, "joiner", now)
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := repo.GetByID(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("reload wager: %v", err)
	}
	if got.Status != wagers.StatusCompleted {
		t.Fatalf("status: want completed, got %s", got.Status)
	}
	if got.WinnerID != "joiner" {
		t.Fatalf("winner: want joiner, got %q", got.WinnerID)
	}
	if got.CompletedAt == nil {
		t.Fatal("completed_at must be set")
	}

	// Settlement is final.
	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetCompleted(tx, w.ID, "creator", now)
	})
	if !errors.Is(err, wagers.ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict on repeat settlement, got: %v", err)
	}
}

func TestWagers_SetExpired(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "creator", t)
	seedUser(db, "joiner", t)

	now := time.Now().UTC()

	// Not yet due: the deadline guard refuses.
	fresh := seedWager(db, repo, "creator", now.Add(time.Hour), t)

	err := inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetExpired(tx, fresh.ID, now)
	})
	if !errors.Is(err, wagers.ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict before deadline, got: %v", err)
	}

	// Due and waiting: expires.
	due := seedWager(db, repo, "creator", now.Add(-time.Minute), t)

	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetExpired(tx, due.ID, now)
	})
	if err != nil {
		t.Fatalf("expire due wager: %v", err)
	}

	// A joined wager never expires even past its deadline.
	joined := seedWager(db, repo, "creator", now.Add(time.Minute), t)

	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetActive(tx, joined.ID, "joiner", now)
	})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}

	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetExpired(tx, joined.ID, now.Add(time.Hour))
	})
	if !errors.Is(err, wagers.ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict on active wager, got: %v", err)
	}
}

func TestWagers_SetCancelled(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedUser(db, "creator", t)
	seedUser(db, "joiner", t)

	now := time.Now().UTC()
	w := seedWager(db, repo, "creator", now.Add(time.Hour), t)

	err := inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetCancelled(tx, w.ID)
	})
	if err != nil {
		t.Fatalf("cancel waiting wager: %v", err)
	}

	got, err := repo.GetByID(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("reload wager: %v", err)
	}
	if got.Status != wagers.StatusCancelled {
		t.Fatalf("status: want cancelled, got %s", got.Status)
	}

	// Once matched, cancellation stops being available.
	active := seedWager(db, repo, "creator", now.Add(time.Hour), t)

	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetActive(tx, active.ID, "joiner", now)
	})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}

	err = inTx(db, t, func(tx *sql.Tx) error {
		return repo.SetCancelled(tx, active.ID)
	})
	if !errors.Is(err, wagers.ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict on active wager, got: %v", err)
	}
}

func TestWagers_LockByID_NotFound(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	err := inTx(db, t, func(tx *sql.Tx) error {
		_, err := repo.LockByID(tx, fmt.Sprintf("missing-%s", uuid.NewString()))
		return err
	})
	if !errors.Is(err, wagers.ErrWagerNotFound) {
		t.Fatalf("expected ErrWagerNotFound, got: %v", err)
	}
}
