package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"testgen/internal/pipeline"
)

func TestOSStorageReadDecodes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.cs")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, "class A\r\n{\r\n}\r\n"...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := pipeline.OSStorage{}.ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := "class A\n{\n}\n"; text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestOSStorageReadMissing(t *testing.T) {
	_, err := pipeline.OSStorage{}.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.cs"))
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestOSStorageWriteReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, "ATests.cs")
	storage := pipeline.OSStorage{}

	for _, content := range []string{"first\n", "second\n"} {
		if err := storage.WriteFile(context.Background(), path, []byte(content)); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second\n" {
		t.Errorf("content = %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestOSStorageHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "x.cs")
	if err := (pipeline.OSStorage{}).WriteFile(ctx, path, []byte("x")); err == nil {
		t.Errorf("expected error on cancelled context")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file written despite cancellation")
	}
}
