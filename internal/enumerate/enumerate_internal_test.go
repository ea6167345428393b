package enumerate

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeTestJar(t *testing.T, path, entryName, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	entry, err := zw.Create(entryName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

// TestEnumerateClosesEachArchiveBeforeOpeningTheNext proves the first
// archive's handle is released before enumeration of the second path
// begins, not just by the time the whole Enumerate call returns.
func TestEnumerateClosesEachArchiveBeforeOpeningTheNext(t *testing.T) {
	dir := t.TempDir()
	jarA := filepath.Join(dir, "a.jar")
	jarB := filepath.Join(dir, "b.jar")
	writeTestJar(t, jarA, "a/A.class", "A bytes")
	writeTestJar(t, jarB, "b/B.class", "B bytes")

	var events []string
	onArchiveOpened = func(path string) { events = append(events, "open:"+filepath.Base(path)) }
	onArchiveClosed = func(path string) { events = append(events, "close:"+filepath.Base(path)) }
	defer func() {
		onArchiveOpened = nil
		onArchiveClosed = nil
	}()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	units, err := Enumerate(context.Background(), logger, []string{jarA, jarB})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2", len(units))
	}

	want := []string{"open:a.jar", "close:a.jar", "open:b.jar", "close:b.jar"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i, e := range events {
		if e != want[i] {
			t.Errorf("events[%d] = %q, want %q (full: %v)", i, e, want[i], events)
		}
	}
}
