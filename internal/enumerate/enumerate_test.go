package enumerate_test

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"jvmcg/internal/enumerate"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnumerateDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(p string, content string) {
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(dir, "Top.class"), "top")
	write(filepath.Join(sub, "Nested.class"), "nested")
	write(filepath.Join(sub, "ignore.txt"), "not a class file")

	units, err := enumerate.Enumerate(context.Background(), discardLogger(), []string{dir})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2", len(units))
	}
	if units[0].Seq != 0 || units[1].Seq != 1 {
		t.Errorf("sequence numbers not monotonic: %d, %d", units[0].Seq, units[1].Seq)
	}
}

func TestEnumerateJar(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, "lib.jar")
	f, err := os.Create(jarPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	entry, err := zw.Create("com/example/Foo.class")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte("foo bytes")); err != nil {
		t.Fatal(err)
	}
	manifest, err := zw.Create("META-INF/MANIFEST.MF")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manifest.Write([]byte("Manifest-Version: 1.0")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	units, err := enumerate.Enumerate(context.Background(), discardLogger(), []string{jarPath})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1 (manifest should be skipped)", len(units))
	}
	if units[0].Origin != jarPath+"!com/example/Foo.class" {
		t.Errorf("Origin = %q", units[0].Origin)
	}
	if string(units[0].Data) != "foo bytes" {
		t.Errorf("Data = %q", units[0].Data)
	}
}

func TestEnumerateMissingPathWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "Ok.class")
	if err := os.WriteFile(ok, []byte("ok"), 0o644); err != nil {
		t.Fatal(err)
	}

	units, err := enumerate.Enumerate(context.Background(), discardLogger(), []string{
		filepath.Join(dir, "does-not-exist.class"),
		ok,
	})
	if err != nil {
		t.Fatalf("Enumerate should not hard-fail on a missing path: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	if units[0].Origin != ok {
		t.Errorf("Origin = %q, want %q", units[0].Origin, ok)
	}
}
