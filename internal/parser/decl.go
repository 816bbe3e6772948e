package parser

import (
	"testgen/internal/ast"
	"testgen/internal/diag"
	"testgen/internal/source"
	"testgen/internal/token"
)

type declContext struct {
	// top: compilation unit или file-scoped namespace - тут допустимы top-level statements
	top    bool
	inType bool
}

// declHead - общая часть объявления: атрибуты и модификаторы.
type declHead struct {
	first token.Token
	attrs []string
	mods  ast.Modifiers
}

// parseDeclaration разбирает одно объявление типа или члена.
func (p *Parser) parseDeclaration(parent ast.NodeID, ctx declContext) {
	start := p.pos
	head := declHead{first: p.peek()}
	head.attrs = p.parseAttributes()
	head.mods = p.parseModifiers()

	tok := p.peek()
	switch {
	case tok.Kind == token.KwClass, tok.Kind == token.KwStruct, tok.Kind == token.KwInterface,
		tok.Kind == token.KwEnum, p.atRecord():
		p.parseTypeDecl(parent, head)

	case tok.Kind == token.KwDelegate && p.peekN(1).Kind != token.LParen && p.peekN(1).Kind != token.LBrace:
		p.parseDelegate(parent, head)

	case tok.Kind == token.KwNamespace:
		p.err(diag.SynUnexpectedToken, "namespace cannot be declared here")
		p.advance()

	case tok.Kind == token.KwUsing && ctx.inType:
		p.err(diag.SynUnexpectedToken, "unexpected using directive in type body")
		p.skipUntil(token.Semicolon, token.RBrace)

	default:
		fail := p.parseMember(parent, head, ctx)
		if fail == nil {
			break
		}
		if ctx.top && !ctx.inType && len(head.attrs) == 0 {
			// top-level statement: откатываемся и пропускаем его целиком
			p.pos = start
			p.skipStatement()
			break
		}
		p.report(fail.code, diag.SevError, fail.span, fail.msg)
		p.resyncMember()
	}

	if p.pos == start {
		// гарантия прогресса
		p.advance()
	}
}

func (p *Parser) atRecord() bool {
	if !p.atWord("record") {
		return false
	}
	next := p.peekN(1)
	return next.Kind == token.KwClass || next.Kind == token.KwStruct ||
		(next.Kind == token.Ident && p.peekN(2).Kind != token.Assign && p.peekN(2).Kind != token.Comma)
}

// parseAttributes собирает [..] группы; текст без внешних скобок.
func (p *Parser) parseAttributes() []string {
	var attrs []string
	for p.at(token.LBracket) {
		inner, ok := p.skipBalanced()
		if !ok {
			return attrs
		}
		attrs = append(attrs, joinTokens(inner))
	}
	return attrs
}

// contextualModifiers - слова, которые становятся модификаторами только
// перед другим словом (partial void M(), async Task M(), file class C).
var contextualModifiers = map[string]ast.Modifiers{
	"partial":  ast.ModPartial,
	"async":    ast.ModAsync,
	"file":     ast.ModFile,
	"required": ast.ModRequired,
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for {
		tok := p.peek()
		if tok.Kind.IsModifier() {
			// new() / new Foo() в top-level statement - не модификатор
			if tok.Kind == token.KwNew && p.peekN(1).Kind == token.LParen {
				return mods
			}
			m, _ := ast.LookupModifier(tok.Text)
			mods |= m
			p.advance()
			continue
		}
		if tok.Kind == token.KwRef && (p.peekN(1).Kind == token.KwStruct || p.peekN(1).IsContextual("partial")) {
			// ref struct: ref в типе не храним
			p.advance()
			continue
		}
		if m, ok := contextualModifiers[tok.Text]; ok && tok.Kind == token.Ident {
			next := p.peekN(1)
			if next.Kind == token.Ident || next.IsKeyword() {
				mods |= m
				p.advance()
				continue
			}
		}
		return mods
	}
}

func (p *Parser) parseTypeDecl(parent ast.NodeID, head declHead) {
	td := ast.TypeDecl{Modifiers: head.mods, Attrs: head.attrs}
	switch kw := p.advance(); kw.Kind {
	case token.KwClass:
		td.Kind = ast.TypeClass
	case token.KwStruct:
		td.Kind = ast.TypeStruct
	case token.KwInterface:
		td.Kind = ast.TypeInterface
	case token.KwEnum:
		td.Kind = ast.TypeEnum
	default: // record
		td.Kind = ast.TypeRecord
		if p.at(token.KwClass) {
			p.advance()
		} else if p.at(token.KwStruct) {
			p.advance()
			td.Kind = ast.TypeRecordStruct
		}
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if !ok {
		p.resyncMember()
		return
	}
	td.Name = nameTok.Text

	if p.at(token.Lt) {
		n := p.matchAngles()
		if n < 0 {
			p.unclosed(diag.SynUnclosedAngle, p.peek())
			p.resyncMember()
			return
		}
		td.TypeParams = typeParamNames(p.toks[p.pos+1 : p.pos+n-1])
		p.pos += n
	}
	if p.at(token.LParen) {
		// primary constructor / позиционные параметры record
		p.skipBalanced()
	}
	// базовый список и where-ограничения нам не нужны
	p.skipUntilFn(func(t token.Token) bool {
		return t.Kind == token.LBrace || t.Kind == token.Semicolon
	})

	node := p.tree.NewType(parent, head.first.Span, td)
	switch {
	case p.at(token.Semicolon):
		p.tree.SetSpan(node, head.first.Span.Cover(p.advance().Span))
	case p.at(token.LBrace) && td.Kind == ast.TypeEnum:
		p.skipBalanced()
		p.tree.SetSpan(node, head.first.Span.Cover(p.lastSpan))
	case p.at(token.LBrace):
		p.parseTypeBody(node)
		p.tree.SetSpan(node, head.first.Span.Cover(p.lastSpan))
	default:
		p.err(diag.SynExpectBody, "expected '{' after type declaration")
	}
}

// parseTypeBody: курсор на '{'.
func (p *Parser) parseTypeBody(node ast.NodeID) {
	open := p.advance()
	for {
		switch tok := p.peek(); tok.Kind {
		case token.RBrace:
			p.advance()
			return
		case token.EOF:
			p.unclosed(diag.SynUnclosedBrace, open)
			return
		case token.Semicolon, token.Invalid:
			p.advance()
		case token.RParen, token.RBracket:
			p.report(diag.SynUnexpectedCloser, diag.SevError, tok.Span, "unexpected '"+tok.Text+"'")
			p.advance()
		default:
			p.parseDeclaration(node, declContext{inType: true})
		}
	}
}

func (p *Parser) parseDelegate(parent ast.NodeID, head declHead) {
	p.advance() // delegate
	if _, ok := p.parseType(); !ok {
		p.err(diag.SynUnexpectedToken, "expected delegate return type")
		p.resyncMember()
		return
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected delegate name")
	if !ok {
		p.resyncMember()
		return
	}
	p.skipUntil(token.Semicolon)
	semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after delegate declaration")
	p.tree.NewType(parent, head.first.Span.Cover(semi.Span), ast.TypeDecl{
		Kind:      ast.TypeDelegate,
		Name:      nameTok.Text,
		Modifiers: head.mods,
		Attrs:     head.attrs,
	})
}

// resyncMember - восстановление после ошибки: до ';' (съедаем), до '{...}'
// (съедаем группу) или до '}' закрывающей тело (не съедаем).
func (p *Parser) resyncMember() {
	p.skipUntil(token.Semicolon, token.LBrace)
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace):
		p.skipBalanced()
	}
}

// skipStatement пропускает один top-level statement.
func (p *Parser) skipStatement() {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF, tok.Kind == token.RBrace:
			return
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		case tok.Kind == token.LBrace:
			if _, ok := p.skipBalanced(); !ok {
				return
			}
			// блок завершает statement, если дальше не продолжение выражения
			if !p.atOr(token.Semicolon, token.RParen, token.Comma, token.Dot, token.Operator) {
				return
			}
		case isOpener(tok.Kind):
			if _, ok := p.skipBalanced(); !ok {
				return
			}
		case isCloser(tok.Kind):
			p.report(diag.SynUnexpectedCloser, diag.SevError, tok.Span, "unexpected '"+tok.Text+"'")
			p.advance()
			return
		default:
			p.advance()
		}
	}
}

// typeParamNames берёт имена из "<in T, out U>" (токены без скобок).
func typeParamNames(inner []token.Token) []string {
	var names []string
	depth := 0
	last := ""
	for _, t := range inner {
		switch t.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Comma:
			if depth == 0 {
				names = append(names, last)
				last = ""
			}
		case token.Ident:
			if depth == 0 {
				last = t.Text
			}
		}
	}
	if last != "" {
		names = append(names, last)
	}
	return names
}

type memberFailure struct {
	code diag.Code
	span source.Span
	msg  string
}
