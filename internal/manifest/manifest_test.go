package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("// test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissing(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Runs) != 0 || len(m.Files()) != 0 {
		t.Errorf("expected empty manifest, got %+v", m)
	}
}

func TestRecordAccumulates(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := Record(ctx, dir, []string{
		filepath.Join(dir, "N.BTests.cs"),
		filepath.Join(dir, "N.ATests.cs"),
		filepath.Join(dir, "N.ATests.cs"),
		filepath.Join(t.TempDir(), "Elsewhere.cs"),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !slices.Equal(first.Files, []string{"N.ATests.cs", "N.BTests.cs"}) {
		t.Errorf("run files = %v", first.Files)
	}
	second, err := Record(ctx, dir, []string{filepath.Join(dir, "sub", "N.CTests.cs")})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Errorf("run ids not unique: %q %q", first.ID, second.ID)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(m.Runs))
	}
	want := []string{"N.ATests.cs", "N.BTests.cs", "sub/N.CTests.cs"}
	if got := m.Files(); !slices.Equal(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	kept := filepath.Join(dir, "Handwritten.cs")
	touch(t, kept)
	a := filepath.Join(dir, "N.ATests.cs")
	b := filepath.Join(dir, "N.BTests.cs")
	touch(t, a)
	touch(t, b)

	if _, err := Record(ctx, dir, []string{a, b}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := os.Remove(b); err != nil {
		t.Fatal(err)
	}

	removed, err := Clean(ctx, dir)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if !slices.Equal(removed, []string{a}) {
		t.Errorf("removed = %v, want [%s]", removed, a)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "Handwritten.cs" {
		t.Errorf("dir after clean = %v", entries)
	}
}

func TestSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	data, err := msgpack.Marshal(&Manifest{Schema: schemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(dir), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); !errors.Is(err, ErrSchema) {
		t.Errorf("err = %v, want ErrSchema", err)
	}
}

func TestCorruptManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Errorf("expected decode error")
	}
}

func TestRecordConcurrent(t *testing.T) {
	dir := t.TempDir()
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Go(func() {
			_, errs[i] = Record(context.Background(), dir, []string{filepath.Join(dir, string(rune('A'+i))+"Tests.cs")})
		})
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	m, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Runs) != 8 || len(m.Files()) != 8 {
		t.Errorf("runs=%d files=%d, want 8/8", len(m.Runs), len(m.Files()))
	}
}
