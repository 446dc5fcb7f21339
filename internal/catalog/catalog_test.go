package catalog

import (
	"path/filepath"
	"testing"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "revup.db")
	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// Property 5: catalog lifecycle.
func TestInsertIfAbsentPendingLifecycle(t *testing.T) {
	c := openTestCatalog(t)

	rec := &Record{Filename: "a.mkv", Filepath: "/videos/a.mkv", Height: 480}
	inserted, err := c.InsertIfAbsent(rec, 480)
	if err != nil {
		t.Fatalf("InsertIfAbsent() error = %v", err)
	}
	if !inserted {
		t.Fatalf("expected first insert to succeed")
	}
	if rec.Status != StatusPending {
		t.Fatalf("expected status pending, got %q", rec.Status)
	}

	// Re-inserting the same filename is a no-op.
	again, err := c.InsertIfAbsent(&Record{Filename: "a.mkv", Filepath: "/videos/a.mkv", Height: 480}, 480)
	if err != nil {
		t.Fatalf("InsertIfAbsent() second call error = %v", err)
	}
	if again {
		t.Fatalf("expected second insert to be a no-op")
	}

	if err := c.Transition(rec.Filepath, StatusProcessing); err != nil {
		t.Fatalf("Transition(processing) error = %v", err)
	}
	rows, err := c.QueryByPrefixAndStatus("/videos", StatusProcessing)
	if err != nil {
		t.Fatalf("QueryByPrefixAndStatus() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Filename != "a.mkv" {
		t.Fatalf("expected one processing row for a.mkv, got %v", rows)
	}

	if err := c.Transition(rec.Filepath, StatusDone); err != nil {
		t.Fatalf("Transition(done) error = %v", err)
	}
	rows, err = c.QueryByPrefixAndStatus("/videos", StatusDone)
	if err != nil {
		t.Fatalf("QueryByPrefixAndStatus() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one done row, got %v", rows)
	}
}

func TestInsertIfAbsentSkippedWhenOverPolicy(t *testing.T) {
	c := openTestCatalog(t)

	rec := &Record{Filename: "b.mp4", Filepath: "/videos/b.mp4", Height: 1080}
	if _, err := c.InsertIfAbsent(rec, 480); err != nil {
		t.Fatalf("InsertIfAbsent() error = %v", err)
	}
	if rec.Status != StatusSkipped {
		t.Fatalf("expected status skipped for over-policy height, got %q", rec.Status)
	}
}

func TestClearStaleProcessing(t *testing.T) {
	c := openTestCatalog(t)

	a := &Record{Filename: "a.mkv", Filepath: "/videos/a.mkv", Height: 100}
	b := &Record{Filename: "b.mkv", Filepath: "/videos/b.mkv", Height: 100}
	if _, err := c.InsertIfAbsent(a, 480); err != nil {
		t.Fatalf("InsertIfAbsent(a) error = %v", err)
	}
	if _, err := c.InsertIfAbsent(b, 480); err != nil {
		t.Fatalf("InsertIfAbsent(b) error = %v", err)
	}
	if err := c.Transition(a.Filepath, StatusProcessing); err != nil {
		t.Fatalf("Transition(a, processing) error = %v", err)
	}
	if err := c.Transition(b.Filepath, StatusProcessing); err != nil {
		t.Fatalf("Transition(b, processing) error = %v", err)
	}

	if err := c.ClearStaleProcessing(b.Filepath); err != nil {
		t.Fatalf("ClearStaleProcessing() error = %v", err)
	}

	rows, err := c.QueryByPrefixAndStatus("/videos", StatusPending)
	if err != nil {
		t.Fatalf("QueryByPrefixAndStatus() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Filename != "a.mkv" {
		t.Fatalf("expected only a.mkv reset to pending, got %v", rows)
	}

	rows, err = c.QueryByPrefixAndStatus("/videos", StatusProcessing)
	if err != nil {
		t.Fatalf("QueryByPrefixAndStatus() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Filename != "b.mkv" {
		t.Fatalf("expected b.mkv to remain processing (the exception), got %v", rows)
	}
}
