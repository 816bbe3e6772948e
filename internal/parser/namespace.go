package parser

import (
	"testgen/internal/ast"
	"testgen/internal/diag"
	"testgen/internal/token"
)

// parseNamespaceBody разбирает содержимое compilation unit (top=true) или
// блока namespace до '}' / EOF. Закрывающая '}' не съедается.
func (p *Parser) parseNamespaceBody(parent ast.NodeID, top bool) {
	usingsAllowed := true
	fileScopedSeen := false
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			return

		case tok.Kind == token.RBrace:
			if !top {
				return
			}
			p.report(diag.SynUnexpectedCloser, diag.SevError, tok.Span, "unexpected '}'")
			p.advance()

		case tok.Kind == token.Semicolon, tok.Kind == token.Invalid:
			// лишняя ';' после объявления; Invalid уже отрепорчен лексером
			p.advance()

		case p.atUsingDirective():
			if !usingsAllowed {
				p.report(diag.SynUsingAfterMember, diag.SevError, tok.Span,
					"using directive must precede all other elements defined in the namespace")
			}
			p.parseUsing(parent)

		case tok.Kind == token.KwExtern && p.peekN(1).IsContextual("alias"):
			// extern alias X;
			p.skipUntil(token.Semicolon)
			p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")

		case tok.Kind == token.KwNamespace:
			usingsAllowed = false
			ns, fileScoped := p.parseNamespace(parent)
			if !fileScoped {
				continue
			}
			if !top || fileScopedSeen || p.isFileScoped(parent) || p.hasDeclarations(parent, ns) {
				p.report(diag.SynFileScopedNamespace, diag.SevError, tok.Span,
					"file-scoped namespace must precede all other members in a file")
			}
			fileScopedSeen = true
			// всё до конца файла принадлежит file-scoped namespace
			p.parseNamespaceBody(ns, true)
			return

		default:
			usingsAllowed = false
			p.parseDeclaration(parent, declContext{top: top})
		}
	}
}

// atUsingDirective: "using X;" или "global using X;". using-statement
// ("using (var x = ...)", "using var x = ...") директивой не является.
func (p *Parser) atUsingDirective() bool {
	i := 0
	if p.peek().IsContextual("global") {
		i = 1
	}
	if p.peekN(i).Kind != token.KwUsing {
		return false
	}
	next := p.peekN(i + 1)
	if next.Kind == token.LParen {
		return false
	}
	// "using var x = ..." - объявление ресурса в top-level statements
	if next.IsContextual("var") && p.peekN(i+2).Kind == token.Ident {
		return false
	}
	return true
}

// parseNamespace: namespace A.B { ... } или namespace A.B;
// Для file-scoped формы тело разбирает вызывающий.
func (p *Parser) parseNamespace(parent ast.NodeID) (ast.NodeID, bool) {
	kw := p.advance()
	nameToks := p.parseQualifiedName()
	if len(nameToks) == 0 {
		p.err(diag.SynExpectIdentifier, "expected namespace name")
	}
	decl := ast.NamespaceDecl{Name: joinTokens(nameToks)}

	if p.at(token.Semicolon) {
		semi := p.advance()
		decl.FileScoped = true
		return p.tree.NewNamespace(parent, kw.Span.Cover(semi.Span), decl), true
	}

	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' or ';' after namespace name")
	ns := p.tree.NewNamespace(parent, kw.Span, decl)
	if !ok {
		p.skipUntil(token.LBrace, token.Semicolon)
		if !p.at(token.LBrace) {
			return ns, false
		}
		open = p.advance()
	}
	p.parseNamespaceBody(ns, false)
	if p.at(token.RBrace) {
		p.tree.SetSpan(ns, kw.Span.Cover(p.advance().Span))
	} else {
		p.unclosed(diag.SynUnclosedBrace, open)
	}
	return ns, false
}

// parseQualifiedName съедает A.B.C (с возможным alias::).
func (p *Parser) parseQualifiedName() []token.Token {
	start := p.pos
	for {
		if !p.at(token.Ident) {
			break
		}
		p.advance()
		if p.atOr(token.Dot, token.ColonColon) && p.peekN(1).Kind == token.Ident {
			p.advance()
			continue
		}
		break
	}
	return p.toks[start:p.pos]
}

// hasDeclarations сообщает, есть ли у parent дети помимо using и самого ns.
func (p *Parser) hasDeclarations(parent, ns ast.NodeID) bool {
	for _, child := range p.tree.Node(parent).Children {
		if child == ns {
			continue
		}
		if p.tree.Node(child).Kind != ast.NodeUsing {
			return true
		}
	}
	return false
}

func (p *Parser) isFileScoped(id ast.NodeID) bool {
	decl, ok := p.tree.Namespace(id)
	return ok && decl.FileScoped
}
