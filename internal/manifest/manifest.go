// Package manifest records which test files testgen wrote into an output
// directory, so that a later `testgen clean` removes exactly those.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// FileName is the manifest inside the output directory.
	FileName = ".testgen-manifest.mp"
	// LockFileName guards FileName; it stays in place until Clean.
	LockFileName = ".testgen-manifest.lock"

	// Current schema version - increment when the Manifest format changes
	schemaVersion uint16 = 1

	lockRetry = 50 * time.Millisecond
)

// LockTimeout bounds how long Record and Clean wait for another testgen
// process working on the same directory.
var LockTimeout = 5 * time.Second

var (
	// ErrSchema is returned for a manifest written by an incompatible version.
	ErrSchema = errors.New("manifest schema mismatch")
	// ErrLocked is returned when the directory lock could not be acquired in time.
	ErrLocked = errors.New("output directory is locked by another testgen run")
)

// Run is one generate invocation.
type Run struct {
	ID      string
	Started time.Time
	// Files are relative to the output directory, slash-separated.
	Files []string
}

// Manifest is the on-disk record for one output directory.
type Manifest struct {
	Schema uint16
	Runs   []Run
}

// Files returns the distinct files of all runs, sorted.
func (m *Manifest) Files() []string {
	var out []string
	for _, r := range m.Runs {
		out = append(out, r.Files...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Path returns the manifest location for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the manifest of dir. A missing manifest yields an empty one.
func Load(dir string) (*Manifest, error) {
	f, err := os.Open(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Schema: schemaVersion}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Manifest
	if err := msgpack.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", Path(dir), err)
	}
	if m.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: %s has schema %d, want %d", ErrSchema, Path(dir), m.Schema, schemaVersion)
	}
	return &m, nil
}

func save(dir string, m *Manifest) (err error) {
	f, err := os.CreateTemp(dir, "tmp-manifest-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(m); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), Path(dir))
}

// withLock runs fn while holding the directory lock.
func withLock(ctx context.Context, dir string, fn func() error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	lock := flock.New(filepath.Join(dir, LockFileName))

	ctx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrLocked
		}
		return fmt.Errorf("lock %s: %w", dir, err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

// Record appends a run listing files to the manifest of dir. Paths outside
// dir are skipped.
func Record(ctx context.Context, dir string, files []string) (Run, error) {
	run := Run{
		ID:      uuid.NewString(),
		Started: time.Now().UTC(),
	}
	for _, f := range files {
		rel, ok := relative(dir, f)
		if ok {
			run.Files = append(run.Files, rel)
		}
	}
	slices.Sort(run.Files)
	run.Files = slices.Compact(run.Files)

	err := withLock(ctx, dir, func() error {
		m, err := Load(dir)
		if err != nil {
			return err
		}
		m.Runs = append(m.Runs, run)
		return save(dir, m)
	})
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// Clean deletes every file recorded for dir and then the manifest itself.
// Files already gone are not an error. It returns the removed paths.
func Clean(ctx context.Context, dir string) ([]string, error) {
	var removed []string
	err := withLock(ctx, dir, func() error {
		m, err := Load(dir)
		if err != nil {
			return err
		}
		var errs []error
		for _, rel := range m.Files() {
			path := filepath.Join(dir, filepath.FromSlash(rel))
			switch err := os.Remove(path); {
			case err == nil:
				removed = append(removed, path)
			case errors.Is(err, os.ErrNotExist):
			default:
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
		if err := os.Remove(Path(dir)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	})
	if err != nil {
		return removed, err
	}
	_ = os.Remove(filepath.Join(dir, LockFileName))
	return removed, nil
}

func relative(dir, path string) (string, bool) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
