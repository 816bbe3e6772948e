package token

import (
	"testgen/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, null, char or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, StringLit, InterpolatedStringLit, CharLit, BoolLit, NullLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwUsing && t.Kind <= KwVolatile
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsContextual reports whether the token is an identifier spelled word.
func (t Token) IsContextual(word string) bool {
	return t.Kind == Ident && t.Text == word
}
