package parser

import (
	"strings"

	"testgen/internal/ast"
	"testgen/internal/diag"
	"testgen/internal/token"
)

// parseUsing: [global] using [static] [unsafe] [Alias =] Name ;
func (p *Parser) parseUsing(parent ast.NodeID) {
	first := p.peek()
	var decl ast.UsingDecl
	if p.atWord("global") {
		p.advance()
		decl.Global = true
	}
	p.advance() // using
	if p.at(token.KwStatic) {
		p.advance()
		decl.Static = true
	}
	unsafe := false
	if p.at(token.KwUnsafe) {
		p.advance()
		unsafe = true
	}
	if p.at(token.Ident) && p.peekN(1).Kind == token.Assign {
		decl.Alias = p.advance().Text
		p.advance()
	}

	from := p.pos
	p.skipUntil(token.Semicolon, token.RBrace)
	nameToks := p.toks[from:p.pos]
	if len(nameToks) == 0 {
		p.err(diag.SynExpectIdentifier, "expected name in using directive")
	}
	decl.Name = joinTokens(nameToks)

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after using directive")
	sp := first.Span
	if ok {
		sp = sp.Cover(semi.Span)
	} else {
		sp = sp.Cover(p.lastSpan)
	}

	var b strings.Builder
	if decl.Global {
		b.WriteString("global ")
	}
	b.WriteString("using ")
	if decl.Static {
		b.WriteString("static ")
	}
	if unsafe {
		b.WriteString("unsafe ")
	}
	if decl.Alias != "" {
		b.WriteString(decl.Alias)
		b.WriteString(" = ")
	}
	b.WriteString(decl.Name)
	b.WriteByte(';')
	decl.Text = b.String()

	p.tree.NewUsing(parent, sp, decl)
}
