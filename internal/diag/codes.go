package diag

import "fmt"

// Code is a compact numeric identifier of a diagnostic.
// Ranges: 1000-1999 lexer, 2000-2999 syntax, 4000-4999 io.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические ошибки
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexBadNumber                Code = 1005
	LexTokenTooLong             Code = 1006

	// Синтаксические ошибки
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnclosedBrace       Code = 2002
	SynUnclosedParen       Code = 2003
	SynUnclosedBracket     Code = 2004
	SynUnclosedAngle       Code = 2005
	SynExpectSemicolon     Code = 2006
	SynExpectIdentifier    Code = 2007
	SynExpectBody          Code = 2008
	SynUnexpectedCloser    Code = 2009
	SynUsingAfterMember    Code = 2010
	SynFileScopedNamespace Code = 2011
	SynUnexpectedTopLevel  Code = 2012
	SynExpectParamList     Code = 2013

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexTokenTooLong:             "Token too long",

	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynUnclosedBrace:       "Unclosed brace",
	SynUnclosedParen:       "Unclosed parenthesis",
	SynUnclosedBracket:     "Unclosed bracket",
	SynUnclosedAngle:       "Unclosed type argument list",
	SynExpectSemicolon:     "Expected semicolon",
	SynExpectIdentifier:    "Expected identifier",
	SynExpectBody:          "Expected declaration body",
	SynUnexpectedCloser:    "Unexpected closing delimiter",
	SynUsingAfterMember:    "Using directive must precede other declarations",
	SynFileScopedNamespace: "Misplaced file-scoped namespace",
	SynUnexpectedTopLevel:  "Unexpected top-level construct",
	SynExpectParamList:     "Expected parameter list",

	IOLoadFileError: "I/O load file error",
}

// ID returns the stable textual identifier, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
