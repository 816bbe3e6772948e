package generator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// BodyStrategy selects how test method bodies are synthesized.
type BodyStrategy uint8

const (
	// BodyEmpty: a single failing assertion.
	BodyEmpty BodyStrategy = iota
	// BodyTemplate: Arrange/Act/Assert skeleton that calls the method.
	BodyTemplate
)

func (b BodyStrategy) String() string {
	switch b {
	case BodyEmpty:
		return "empty"
	case BodyTemplate:
		return "template"
	}
	return fmt.Sprintf("BodyStrategy(%d)", uint8(b))
}

// ErrUnknownBody is returned for a BodyStrategy value outside BodyEmpty and
// BodyTemplate.
var ErrUnknownBody = errors.New("unknown body strategy")

// ParseBodyStrategy accepts "empty" and "template" (case-insensitive);
// "templated" is kept as an alias.
func ParseBodyStrategy(s string) (BodyStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return BodyEmpty, nil
	case "template", "templated":
		return BodyTemplate, nil
	}
	return BodyEmpty, fmt.Errorf("unknown body strategy %q (want empty or template)", s)
}

// DefaultBaselineUsings are the namespaces every generated unit imports.
var DefaultBaselineUsings = []string{
	"System",
	"System.Collections.Generic",
	"System.Linq",
	"Xunit",
}

type Config struct {
	Body BodyStrategy
	// BaselineUsings are namespace names; nil means DefaultBaselineUsings.
	BaselineUsings []string
	// IndentWidth is the printer indentation; 0 means 4.
	IndentWidth int
}

func (c Config) withDefaults() Config {
	if c.BaselineUsings == nil {
		c.BaselineUsings = DefaultBaselineUsings
	}
	c.BaselineUsings = slices.Clone(c.BaselineUsings)
	if c.IndentWidth <= 0 {
		c.IndentWidth = 4
	}
	return c
}

// Normalized returns the config with defaults applied.
func (c Config) Normalized() Config {
	return c.withDefaults()
}
