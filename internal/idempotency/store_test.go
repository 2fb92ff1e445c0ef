package idempotency

import (
	"path/filepath"
	"testing"
)

func TestSeenAfterMarkUsed(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "idem.db"))
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer store.Close()

	seen, err := store.Seen("key-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if seen {
		t.Fatalf("fresh key must not be seen")
	}

	if err := store.MarkUsed("key-1"); err != nil {
		t.Fatalf("mark error: %v", err)
	}

	seen, err = store.Seen("key-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !seen {
		t.Fatalf("marked key must be seen")
	}

	seen, err = store.Seen("key-2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if seen {
		t.Fatalf("unrelated key must not be seen")
	}
}

func TestFailedSubmissionLeavesKeyFresh(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "idem.db"))
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer store.Close()

	// A submission that fails after the check never calls MarkUsed; the
	// client's retry with the same key must pass the guard.
	for i := 0; i < 3; i++ {
		seen, err := store.Seen("key-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if seen {
			t.Fatalf("checking alone must not consume the key (attempt %d)", i+1)
		}
	}
}

func TestMarkUsedSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idem.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	if err := store.MarkUsed("key-1"); err != nil {
		t.Fatalf("mark error: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer store.Close()

	seen, err := store.Seen("key-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !seen {
		t.Fatalf("used keys must survive a restart")
	}
}

func TestEmptyKeyIsNeverSeen(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "idem.db"))
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer store.Close()

	if err := store.MarkUsed(""); err != nil {
		t.Fatalf("marking the empty key must be a no-op, got %v", err)
	}
	seen, err := store.Seen("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if seen {
		t.Fatalf("requests without a key are never treated as replays")
	}
}
