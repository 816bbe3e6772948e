package parser

import (
	"slices"
	"strings"

	"testgen/internal/diag"
	"testgen/internal/source"
	"testgen/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan - на EOF указываем сразу за последним токеном
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.emit(diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg))
}

// unclosed репортит незакрытую скобку с заметкой на открывающей.
func (p *Parser) unclosed(code diag.Code, open token.Token) bool {
	b := diag.ReportError(p.opts.Reporter, code, p.getDiagnosticSpan(), "expected '"+closerFor(open.Kind).String()+"'").
		WithNote(open.Span, "opened here")
	return p.emit(b)
}

func (p *Parser) emit(b *diag.ReportBuilder) bool {
	if b.Diagnostic().Severity == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false
	}
	b.Emit()
	return true
}

func closerFor(k token.Kind) token.Kind {
	switch k {
	case token.LBrace:
		return token.RBrace
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	case token.Lt:
		return token.Gt
	}
	return token.Invalid
}

func unclosedCode(k token.Kind) diag.Code {
	switch k {
	case token.LParen:
		return diag.SynUnclosedParen
	case token.LBracket:
		return diag.SynUnclosedBracket
	case token.Lt:
		return diag.SynUnclosedAngle
	}
	return diag.SynUnclosedBrace
}

func isOpener(k token.Kind) bool {
	return k == token.LBrace || k == token.LParen || k == token.LBracket
}

func isCloser(k token.Kind) bool {
	return k == token.RBrace || k == token.RParen || k == token.RBracket
}

// skipBalanced съедает группу от открывающей скобки до парной закрывающей,
// учитывая вложенность всех трёх видов скобок. Возвращает съеденные токены
// без внешних скобок. На несовпадении или EOF репортит и возвращает false.
func (p *Parser) skipBalanced() ([]token.Token, bool) {
	open := p.advance()
	stack := []token.Token{open}
	from := p.pos
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.unclosed(unclosedCode(stack[len(stack)-1].Kind), stack[len(stack)-1])
			return p.toks[from:p.pos], false
		case isOpener(tok.Kind):
			stack = append(stack, p.advance())
		case isCloser(tok.Kind):
			top := stack[len(stack)-1]
			if closerFor(top.Kind) != tok.Kind {
				b := diag.ReportError(p.opts.Reporter, diag.SynUnexpectedCloser, tok.Span,
					"unexpected '"+tok.Text+"', expected '"+closerFor(top.Kind).String()+"'").
					WithNote(top.Span, "opened here")
				p.emit(b)
				return p.toks[from:p.pos], false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				inner := p.toks[from:p.pos]
				p.advance()
				return inner, true
			}
			p.advance()
		default:
			p.advance()
		}
	}
}

// matchAngles смотрит вперёд от '<' под курсором и возвращает число токенов
// до парной '>' включительно, не двигая курсор. Внутри допускаются только
// токены, из которых состоят типы; иначе -1 (например, "a < b").
func (p *Parser) matchAngles() int {
	depth := 0
	for n := 0; ; n++ {
		tok := p.peekN(n)
		switch tok.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return n + 1
			}
		case token.Ident, token.KwVoid, token.KwIn, token.KwOut, token.Comma, token.Dot, token.ColonColon,
			token.Question, token.LBracket, token.RBracket, token.LParen, token.RParen:
		case token.Operator:
			if tok.Text != "*" {
				return -1
			}
		default:
			return -1
		}
	}
}

// skipUntilFn как skipUntil, но со своим предикатом остановки.
func (p *Parser) skipUntilFn(stop func(token.Token) bool) bool {
	for {
		tok := p.peek()
		if stop(tok) {
			return true
		}
		switch {
		case tok.Kind == token.EOF:
			return false
		case isOpener(tok.Kind):
			if _, ok := p.skipBalanced(); !ok {
				return false
			}
		case isCloser(tok.Kind):
			return false
		default:
			p.advance()
		}
	}
}

// skipUntil съедает токены (с вложенными группами) до одного из стоп-токенов
// на нулевой глубине. Стоп-токен не съедается.
func (p *Parser) skipUntil(stops ...token.Kind) bool {
	return p.skipUntilFn(func(t token.Token) bool { return slices.Contains(stops, t.Kind) })
}

// joinTokens склеивает текст токенов в нормализованный вид:
// пробел между двумя «словами», после запятой и вокруг '='.
func joinTokens(toks []token.Token) string {
	var b strings.Builder
	var prev token.Kind = token.Invalid
	for i, t := range toks {
		if i > 0 {
			switch {
			case isWordy(prev) && isWordy(t.Kind),
				prev == token.Comma,
				prev == token.Assign, t.Kind == token.Assign,
				prev == token.FatArrow, t.Kind == token.FatArrow:
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.Text)
		prev = t.Kind
	}
	return b.String()
}

func isWordy(k token.Kind) bool {
	t := token.Token{Kind: k}
	return k == token.Ident || t.IsKeyword() || t.IsLiteral()
}
