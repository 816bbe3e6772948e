package lexer

import (
	"testgen/internal/diag"
	"testgen/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Token.Text - ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if !lx.bumpIdentBody() {
		return lx.scanOperatorOrPunct()
	}
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// bumpIdentBody съедает идентификатор без префикса '@'.
// Возвращает false и не двигает курсор, если первая руна не может начинать идентификатор.
func (lx *Lexer) bumpIdentBody() bool {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return false
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return false
		}
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				return true
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			return true
		}
		lx.bumpRune()
	}
}

// scanPrefixed разбирает конструкции с префиксами '@' и '$':
// verbatim идентификаторы (@class - всегда Ident), verbatim/interpolated/raw строки.
func (lx *Lexer) scanPrefixed() token.Token {
	start := lx.cursor.Mark()
	dollars := 0
	verbatim := false
	for {
		b := lx.cursor.Peek()
		if b == '$' {
			dollars++
			lx.cursor.Bump()
			continue
		}
		if b == '@' && !verbatim {
			verbatim = true
			lx.cursor.Bump()
			continue
		}
		break
	}

	if lx.cursor.Peek() == '"' {
		return lx.scanStringBody(start, dollars, verbatim)
	}

	if verbatim && dollars == 0 {
		// @ident
		if lx.bumpIdentBody() {
			return lx.emit(token.Ident, start)
		}
	}

	lx.cursor.Reset(start)
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
	return lx.emit(token.Invalid, start)
}
