// Package token defines lexical token kinds and trivia for the C# subset
// understood by the structural parser.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments, whitespace and preprocessor lines are leading Trivia and
//     never appear in the main token stream.
//   - Predefined type names (int, string, object, ...) and contextual
//     keywords are identifiers.
package token
