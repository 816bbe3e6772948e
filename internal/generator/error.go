package generator

import (
	"errors"
	"fmt"
	"strings"

	"testgen/internal/diag"
)

// Kind enumerates the ways generation of a source unit can fail.
type Kind uint8

const (
	// KindSyntax: the parser reported at least one error.
	KindSyntax Kind = iota + 1
	// KindClassCount: the unit has no public classes.
	KindClassCount
	// KindClassNameCollision: two public classes share a simple name.
	KindClassNameCollision
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindClassCount:
		return "ClassCountError"
	case KindClassNameCollision:
		return "ClassNameCollisionError"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var (
	ErrSyntax             = errors.New("source unit has syntax errors")
	ErrClassCount         = errors.New("no classes found")
	ErrClassNameCollision = errors.New("source unit contains classes with the same name")
)

func (k Kind) sentinel() error {
	switch k {
	case KindSyntax:
		return ErrSyntax
	case KindClassCount:
		return ErrClassCount
	case KindClassNameCollision:
		return ErrClassNameCollision
	}
	return nil
}

// Error is returned by Generate. It matches the package sentinels through
// errors.Is.
type Error struct {
	Kind        Kind
	Names       []string  // for KindClassNameCollision, sorted
	Diagnostics *diag.Bag // for KindSyntax
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindSyntax:
		if first, ok := e.Diagnostics.FirstError(); ok {
			return fmt.Sprintf("%v: %s %s", ErrSyntax, first.Code.ID(), first.Message)
		}
		return ErrSyntax.Error()
	case KindClassCount:
		return ErrClassCount.Error()
	case KindClassNameCollision:
		if len(e.Names) > 0 {
			return fmt.Sprintf("%v: %s", ErrClassNameCollision, strings.Join(e.Names, ", "))
		}
		return ErrClassNameCollision.Error()
	default:
		return fmt.Sprintf("generator error kind=%d", e.Kind)
	}
}

func (e *Error) Is(target error) bool {
	return e != nil && target != nil && target == e.Kind.sentinel()
}
