package token

import "testgen/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaDocLine is a /// documentation comment.
	TriviaDocLine
	// TriviaPreprocessor is a whole #if/#region/#pragma/... line.
	TriviaPreprocessor
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
