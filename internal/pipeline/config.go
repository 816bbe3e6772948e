package pipeline

import (
	"sync"

	"testgen/internal/format"
	"testgen/internal/generator"
	"testgen/internal/parser"
)

// DefaultBound is the worker count used for a stage bound that is not positive.
const DefaultBound = 5

// DefaultExtension is the output file extension.
const DefaultExtension = ".cs"

// Generator maps one source text to test units. *generator.Generator
// satisfies it; tests substitute instrumented fakes.
type Generator interface {
	Generate(source string) ([]generator.TestUnit, error)
}

// Config is read-only for the duration of a run.
type Config struct {
	MaxRead     int
	MaxGenerate int
	MaxWrite    int
	// OutputDir receives the generated files; "" means ".".
	OutputDir string
	// Extension is appended after "<Name>Tests"; "" means ".cs".
	Extension string
	// Generator defaults to DefaultGenerator().
	Generator Generator
	// Storage defaults to OSStorage.
	Storage Storage
	// Progress is optional.
	Progress ProgressSink
}

// Bound returns n, or DefaultBound when n is not positive.
func Bound(n int) int {
	if n <= 0 {
		return DefaultBound
	}
	return n
}

func (c Config) withDefaults() Config {
	c.MaxRead = Bound(c.MaxRead)
	c.MaxGenerate = Bound(c.MaxGenerate)
	c.MaxWrite = Bound(c.MaxWrite)
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Generator == nil {
		c.Generator = DefaultGenerator()
	}
	if c.Storage == nil {
		c.Storage = OSStorage{}
	}
	return c
}

// Normalized returns the config with defaults applied.
func (c Config) Normalized() Config {
	return c.withDefaults()
}

// NewGenerator wires the C# parser and printer into a generator.
func NewGenerator(cfg generator.Config) *generator.Generator {
	cfg = cfg.Normalized()
	printer := format.Printer{Options: format.Options{IndentWidth: cfg.IndentWidth}}
	return generator.New(parser.CSharp{}, printer, cfg)
}

var defaultGenerator = sync.OnceValue(func() *generator.Generator {
	return NewGenerator(generator.Config{Body: generator.BodyEmpty})
})

// DefaultGenerator returns the shared xUnit generator with empty bodies.
func DefaultGenerator() *generator.Generator {
	return defaultGenerator()
}
