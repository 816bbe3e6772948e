package lexer

import (
	"testgen/internal/diag"
	"testgen/internal/token"
)

// scanString разбирает обычную строку "..." (курсор на кавычке).
func (lx *Lexer) scanString() token.Token {
	return lx.scanStringBody(lx.cursor.Mark(), 0, false)
}

// scanStringBody разбирает тело строки, префикс ($, @) уже съеден.
// Формы: "..." с escape, @"..." с "" внутри, $"...{expr}..." с дырками,
// """...""" raw (число кавычек открытия = число кавычек закрытия).
func (lx *Lexer) scanStringBody(start Mark, dollars int, verbatim bool) token.Token {
	kind := token.StringLit
	if dollars > 0 {
		kind = token.InterpolatedStringLit
	}

	quotes := lx.countRun('"')
	switch {
	case quotes >= 3 && !verbatim:
		return lx.scanRawString(start, kind, quotes)
	case quotes == 2:
		// пустая строка
		lx.cursor.Off += 2
		return lx.emit(kind, start)
	}
	lx.cursor.Bump() // opening '"'

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			if verbatim {
				if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '"' && b1 == '"' {
					lx.cursor.Off += 2
					continue
				}
			}
			lx.cursor.Bump()
			return lx.emit(kind, start)

		case b == '\\' && !verbatim:
			// escape не валидируем: съесть '\' и следующий байт
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()

		case b == '\n' && !verbatim:
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return lx.emit(token.Invalid, start)

		case dollars > 0 && b == '{':
			if lx.try2('{', '{') {
				continue
			}
			lx.cursor.Bump()
			if !lx.skipInterpolationHole() {
				break
			}

		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

// scanRawString: курсор на первой из n открывающих кавычек.
func (lx *Lexer) scanRawString(start Mark, kind token.Kind, n uint32) token.Token {
	lx.cursor.Off += n
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != '"' {
			lx.cursor.Bump()
			continue
		}
		run := lx.countRun('"')
		lx.cursor.Off += run
		if run >= n {
			return lx.emit(kind, start)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return lx.emit(token.Invalid, start)
}

// skipInterpolationHole пропускает выражение внутри {...} интерполированной строки.
// Открывающая '{' уже съедена. Возвращает false на EOF.
func (lx *Lexer) skipInterpolationHole() bool {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case '"':
			lx.scanString()
		case '\'':
			lx.scanChar()
		case '@', '$':
			lx.scanPrefixed()
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// scanChar разбирает символьный литерал 'x', '\n', 'A'.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "newline in character literal")
			return lx.emit(token.Invalid, start)
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return lx.emit(token.Invalid, start)
}

// countRun считает подряд идущие байты b начиная с курсора.
func (lx *Lexer) countRun(b byte) uint32 {
	var n uint32
	for lx.cursor.PeekAt(n) == b {
		n++
	}
	return n
}
