package lexer

import (
	"testgen/internal/diag"
	"testgen/internal/token"
)

// Поддержка: 0, 1_000, 0x1F, 0b1010, 1.5, .5, 1e-3, 2.0e+10 и суффиксы
// U/L/UL (целые) и F/D/M (вещественные), регистр любой.
// Неверные формы - репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Off += 2
			if !lx.bumpDigits(isHex) {
				return lx.badNumber(start, "expected hex digit after 0x")
			}
			lx.bumpIntSuffix()
			return lx.emit(kind, start)
		case 'b', 'B':
			lx.cursor.Off += 2
			if !lx.bumpDigits(func(b byte) bool { return b == '0' || b == '1' }) {
				return lx.badNumber(start, "expected binary digit after 0b")
			}
			lx.bumpIntSuffix()
			return lx.emit(kind, start)
		}
	}

	// целая часть (может отсутствовать для ".5")
	lx.bumpDigits(isDec)

	// дробная часть: только если после точки цифра (1..2 - это range)
	if lx.isNumberAfterDot() {
		kind = token.RealLit
		lx.cursor.Bump()
		lx.bumpDigits(isDec)
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !lx.bumpDigits(isDec) {
			lx.cursor.Reset(mark)
			return lx.badNumber(start, "expected digit in exponent")
		}
		kind = token.RealLit
	}

	switch lx.cursor.Peek() {
	case 'f', 'F', 'd', 'D', 'm', 'M':
		lx.cursor.Bump()
		kind = token.RealLit
	default:
		if kind == token.IntLit {
			lx.bumpIntSuffix()
		}
	}
	return lx.emit(kind, start)
}

// bumpDigits съедает цифры и '_' между ними; true, если была хоть одна цифра.
func (lx *Lexer) bumpDigits(isDigit func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		if isDigit(b) {
			seen = true
		} else if b != '_' {
			return seen
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) bumpIntSuffix() {
	for range 2 {
		switch lx.cursor.Peek() {
		case 'u', 'U', 'l', 'L':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	// хвост литерала съедаем, чтобы не плодить каскад ошибок
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return lx.emit(token.Invalid, start)
}
