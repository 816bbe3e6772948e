package lexer

import (
	"testgen/internal/diag"
	"testgen/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// '<' и '>' всегда одиночные, чтобы List<List<int>> закрывался двумя Gt;
// сдвиги и сравнения парсеру не нужны.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('?', '?', '='), lx.try3('<', '<', '='):
		return lx.emit(token.Operator, start)
	case lx.try2(':', ':'):
		return lx.emit(token.ColonColon, start)
	case lx.try2('=', '>'):
		return lx.emit(token.FatArrow, start)
	case lx.try2('=', '='), lx.try2('!', '='), lx.try2('<', '='), lx.try2('>', '='),
		lx.try2('&', '&'), lx.try2('|', '|'), lx.try2('?', '?'), lx.try2('?', '.'),
		lx.try2('+', '+'), lx.try2('-', '-'), lx.try2('-', '>'), lx.try2('.', '.'),
		lx.try2('+', '='), lx.try2('-', '='), lx.try2('*', '='), lx.try2('/', '='),
		lx.try2('%', '='), lx.try2('&', '='), lx.try2('|', '='), lx.try2('^', '='),
		lx.try2('<', '<'):
		return lx.emit(token.Operator, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '[':
		return lx.emit(token.LBracket, start)
	case ']':
		return lx.emit(token.RBracket, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '.':
		return lx.emit(token.Dot, start)
	case ':':
		return lx.emit(token.Colon, start)
	case '=':
		return lx.emit(token.Assign, start)
	case '?':
		return lx.emit(token.Question, start)
	case '~':
		return lx.emit(token.Tilde, start)
	case '+', '-', '*', '/', '%', '!', '&', '|', '^':
		return lx.emit(token.Operator, start)
	default:
		// неизвестный символ; для не-ASCII съедаем руну целиком
		if ch >= utf8RuneSelf {
			lx.cursor.Reset(start)
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return lx.emit(token.Invalid, start)
	}
}
