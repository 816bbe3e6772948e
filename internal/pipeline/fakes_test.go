package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"testgen/internal/generator"
)

// gauge tracks the current and peak number of concurrent holders.
type gauge struct {
	cur  atomic.Int64
	peak atomic.Int64
}

func (g *gauge) enter() {
	n := g.cur.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

func (g *gauge) leave() { g.cur.Add(-1) }

// memStorage serves reads from a map and records writes.
type memStorage struct {
	files map[string]string
	delay time.Duration

	reads  gauge
	writes gauge

	mu      sync.Mutex
	written map[string]string
	failOn  map[string]bool
}

func newMemStorage(files map[string]string) *memStorage {
	return &memStorage{files: files, written: make(map[string]string), failOn: make(map[string]bool)}
}

func (s *memStorage) ReadFile(ctx context.Context, path string) (string, error) {
	s.reads.enter()
	defer s.reads.leave()
	time.Sleep(s.delay)
	text, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return text, nil
}

func (s *memStorage) WriteFile(ctx context.Context, path string, content []byte) error {
	s.writes.enter()
	defer s.writes.leave()
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn[path] {
		return errors.New("disk full")
	}
	s.written[path] = string(content)
	return nil
}

func (s *memStorage) Written() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.written))
	for k, v := range s.written {
		out[k] = v
	}
	return out
}

// echoGenerator turns the text "A,B" into units named A and B; "" is an error.
type echoGenerator struct {
	delay time.Duration
	calls gauge
	total atomic.Int64
	hook  func()
}

func (g *echoGenerator) Generate(source string) ([]generator.TestUnit, error) {
	g.calls.enter()
	defer g.calls.leave()
	g.total.Add(1)
	if g.hook != nil {
		g.hook()
	}
	time.Sleep(g.delay)
	if source == "" {
		return nil, &generator.Error{Kind: generator.KindClassCount}
	}
	var units []generator.TestUnit
	for _, name := range strings.Split(source, ",") {
		units = append(units, generator.TestUnit{Name: name, Content: "// " + name + "\n"})
	}
	return units, nil
}
