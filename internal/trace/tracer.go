package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives trace events. Implementations must be goroutine-safe:
// pipeline workers of every stage emit concurrently.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// StorageMode selects where events go. Modes combine as bits.
type StorageMode uint8

const (
	ModeStream StorageMode = 1 << iota // write each event as it happens
	ModeRing                           // keep the last events in memory
	ModeBoth   = ModeStream | ModeRing
)

func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	}
	return fmt.Sprintf("StorageMode(%d)", uint8(m))
}

func (m StorageMode) valid() bool {
	return m != 0 && m&^ModeBoth == 0
}

// ParseMode accepts stream, ring or both.
func ParseMode(s string) (StorageMode, error) {
	for _, m := range []StorageMode{ModeStream, ModeRing, ModeBoth} {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Set implements pflag.Value.
func (m *StorageMode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *StorageMode) Type() string { return "stream|ring|both" }

// Config describes the tracer a run wants.
type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format // FormatAuto picks by OutputPath extension
	// Output takes precedence over OutputPath ("-" or "" mean stderr).
	Output     io.Writer
	OutputPath string
	RingSize   int // default 4096
}

func (c Config) format() Format {
	if c.Format != FormatAuto {
		return c.Format
	}
	for _, ext := range []string{".ndjson", ".jsonl"} {
		if strings.HasSuffix(c.OutputPath, ext) {
			return FormatNDJSON
		}
	}
	return FormatText
}

// New builds the tracer for cfg: Nop when the level is off, otherwise a
// stream, a ring, or both behind a MultiTracer.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if !cfg.Mode.valid() {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	var sinks []Tracer
	if cfg.Mode&ModeStream != 0 {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, cfg.format()))
	}
	if cfg.Mode&ModeRing != 0 {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiTracer(cfg.Level, sinks...), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser не даёт Close закрыть stderr.
type nopCloser struct{ io.Writer }

