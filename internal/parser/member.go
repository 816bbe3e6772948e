package parser

import (
	"testgen/internal/ast"
	"testgen/internal/diag"
	"testgen/internal/token"
)

// parseMember разбирает член типа (или локальную функцию/поле на верхнем
// уровне). Если форма не похожа на член, возвращает причину и ничего не
// репортит: решает вызывающий.
func (p *Parser) parseMember(parent ast.NodeID, head declHead, ctx declContext) *memberFailure {
	tok := p.peek()
	switch {
	case tok.Kind == token.KwEvent:
		return p.parseEvent(parent, head)

	case tok.Kind == token.Tilde:
		p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected destructor name")
		if !ok {
			return nil
		}
		return p.finishSpecialMember(parent, head, ast.MemberDestructor, "~"+nameTok.Text)

	case tok.Kind == token.KwImplicit || tok.Kind == token.KwExplicit:
		p.advance()
		if _, ok := p.expect(token.KwOperator, diag.SynUnexpectedToken, "expected 'operator'"); !ok {
			return nil
		}
		typeToks, ok := p.parseType()
		if !ok {
			return p.failHere(diag.SynUnexpectedToken, "expected conversion target type")
		}
		return p.finishSpecialMember(parent, head, ast.MemberConversion, joinTokens(typeToks))

	case ctx.inType && tok.Kind == token.Ident && p.peekN(1).Kind == token.LParen:
		p.advance()
		return p.finishSpecialMember(parent, head, ast.MemberConstructor, tok.Text)
	}

	typeToks, ok := p.parseType()
	if !ok {
		return p.failHere(diag.SynUnexpectedToken, "expected type or member declaration, got '"+tok.Text+"'")
	}
	returnType := joinTokens(typeToks)

	switch {
	case p.at(token.KwOperator):
		p.advance()
		opFrom := p.pos
		if !p.skipUntil(token.LParen) {
			return p.failHere(diag.SynExpectParamList, "expected '(' after operator")
		}
		return p.finishSpecialMember(parent, head, ast.MemberOperator, "operator "+joinTokens(p.toks[opFrom:p.pos]))

	case p.at(token.KwThis):
		return p.parseIndexer(parent, head)

	case p.at(token.Ident):
		name, isIndexer := p.parseMemberName()
		if isIndexer {
			return p.parseIndexer(parent, head)
		}
		switch {
		case p.at(token.Lt), p.at(token.LParen):
			return p.parseMethodRest(parent, head, returnType, name)
		case p.at(token.LBrace), p.at(token.FatArrow):
			p.skipPropertyBody()
			p.tree.NewMember(parent, head.first.Span.Cover(p.lastSpan), ast.MemberDecl{
				Kind: ast.MemberProperty, Name: name, Modifiers: head.mods,
			})
			return nil
		case p.atOr(token.Assign, token.Semicolon, token.Comma, token.LBracket):
			// поле (LBracket - fixed-size буфер)
			p.skipUntil(token.Semicolon)
			if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after field declaration"); !ok {
				return nil
			}
			p.tree.NewMember(parent, head.first.Span.Cover(p.lastSpan), ast.MemberDecl{
				Kind: ast.MemberField, Name: name, Modifiers: head.mods,
			})
			return nil
		}
		return p.failHere(diag.SynUnexpectedToken, "unexpected '"+p.peek().Text+"' after member name")
	}
	return p.failHere(diag.SynExpectIdentifier, "expected member name")
}

// parseMemberName: Name или явная реализация интерфейса IFoo<T>.Name.
// Второе значение - это индексатор IFoo.this[...].
func (p *Parser) parseMemberName() (string, bool) {
	name := p.advance().Text
	for {
		if p.at(token.Lt) {
			// IFoo<T>.Name - угловые скобки, за которыми точка
			n := p.matchAngles()
			if n < 0 || p.peekN(n).Kind != token.Dot {
				return name, false
			}
			p.pos += n
		}
		if !p.at(token.Dot) {
			return name, false
		}
		switch next := p.peekN(1); next.Kind {
		case token.Ident:
			p.advance()
			name = p.advance().Text
		case token.KwThis:
			p.advance()
			return name, true
		default:
			return name, false
		}
	}
}

func (p *Parser) parseMethodRest(parent ast.NodeID, head declHead, returnType, name string) *memberFailure {
	md := ast.MethodDecl{
		Name:       name,
		ReturnType: returnType,
		Modifiers:  head.mods,
		Attrs:      head.attrs,
	}
	if p.at(token.Lt) {
		n := p.matchAngles()
		if n < 0 {
			return p.failHere(diag.SynUnclosedAngle, "malformed type parameter list")
		}
		md.TypeParams = typeParamNames(p.toks[p.pos+1 : p.pos+n-1])
		p.pos += n
	}
	if !p.at(token.LParen) {
		return p.failHere(diag.SynExpectParamList, "expected '(' after method name")
	}
	inner, ok := p.skipBalanced()
	if !ok {
		return nil
	}
	params := parseParams(inner)

	// where-ограничения
	p.skipUntil(token.LBrace, token.FatArrow, token.Semicolon)
	p.skipMemberBody()
	p.tree.NewMethod(parent, head.first.Span.Cover(p.lastSpan), md, params)
	return nil
}

// finishSpecialMember: параметры, инициализатор ": base(...)" и тело.
func (p *Parser) finishSpecialMember(parent ast.NodeID, head declHead, kind ast.MemberKind, name string) *memberFailure {
	if !p.at(token.LParen) {
		return p.failHere(diag.SynExpectParamList, "expected parameter list")
	}
	if _, ok := p.skipBalanced(); !ok {
		return nil
	}
	p.skipUntil(token.LBrace, token.FatArrow, token.Semicolon)
	p.skipMemberBody()
	p.tree.NewMember(parent, head.first.Span.Cover(p.lastSpan), ast.MemberDecl{
		Kind: kind, Name: name, Modifiers: head.mods,
	})
	return nil
}

func (p *Parser) parseIndexer(parent ast.NodeID, head declHead) *memberFailure {
	p.advance() // this
	if !p.at(token.LBracket) {
		return p.failHere(diag.SynUnexpectedToken, "expected '[' after 'this'")
	}
	if _, ok := p.skipBalanced(); !ok {
		return nil
	}
	p.skipPropertyBody()
	p.tree.NewMember(parent, head.first.Span.Cover(p.lastSpan), ast.MemberDecl{
		Kind: ast.MemberIndexer, Name: "this[]", Modifiers: head.mods,
	})
	return nil
}

func (p *Parser) parseEvent(parent ast.NodeID, head declHead) *memberFailure {
	p.advance() // event
	if _, ok := p.parseType(); !ok {
		return p.failHere(diag.SynUnexpectedToken, "expected event type")
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected event name")
	if !ok {
		p.resyncMember()
		return nil
	}
	if p.at(token.LBrace) {
		// add/remove аксессоры
		p.skipBalanced()
	} else {
		p.skipUntil(token.Semicolon)
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after event declaration")
	}
	p.tree.NewMember(parent, head.first.Span.Cover(p.lastSpan), ast.MemberDecl{
		Kind: ast.MemberEvent, Name: nameTok.Text, Modifiers: head.mods,
	})
	return nil
}

// skipMemberBody: { ... } | => expr ; | ;
func (p *Parser) skipMemberBody() bool {
	switch {
	case p.at(token.LBrace):
		_, ok := p.skipBalanced()
		return ok
	case p.at(token.FatArrow):
		p.advance()
		p.skipUntil(token.Semicolon)
		_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression body")
		return ok
	case p.at(token.Semicolon):
		p.advance()
		return true
	}
	p.err(diag.SynExpectBody, "expected '{', '=>' or ';'")
	return false
}

// skipPropertyBody: { get; set; } [= init;] | => expr ;
func (p *Parser) skipPropertyBody() {
	if p.at(token.FatArrow) {
		p.skipMemberBody()
		return
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBody, "expected property accessors")
		return
	}
	if _, ok := p.skipBalanced(); !ok {
		return
	}
	if p.at(token.Assign) {
		p.skipUntil(token.Semicolon)
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after property initializer")
	}
}

// parseType съедает тип: [ref [readonly]] (tuple | void | Name[<...>](.Name[<...>])*) (? | [] | *)*
func (p *Parser) parseType() ([]token.Token, bool) {
	start := p.pos
	if p.at(token.KwRef) {
		p.advance()
		if p.at(token.KwReadonly) {
			p.advance()
		}
	}
	switch {
	case p.at(token.LParen):
		if !p.looksLikeTupleType() {
			p.pos = start
			return nil, false
		}
		p.skipBalanced()
	case p.at(token.KwVoid):
		p.advance()
	case p.at(token.Ident):
		p.advance()
		if p.at(token.ColonColon) && p.peekN(1).Kind == token.Ident {
			p.advance()
			p.advance()
		}
		for {
			if p.at(token.Lt) {
				n := p.matchAngles()
				if n < 0 {
					break
				}
				p.pos += n
			}
			if p.at(token.Dot) && p.peekN(1).Kind == token.Ident && p.peekN(2).Kind != token.LParen &&
				!p.memberNameFollows() {
				p.advance()
				p.advance()
				continue
			}
			break
		}
	default:
		p.pos = start
		return nil, false
	}

	for {
		switch {
		case p.at(token.Question):
			p.advance()
		case p.at(token.LBracket) && (p.peekN(1).Kind == token.RBracket || p.peekN(1).Kind == token.Comma):
			p.skipBalanced()
		case p.at(token.Operator) && p.peek().Text == "*":
			p.advance()
		default:
			return p.toks[start:p.pos], true
		}
	}
}

// memberNameFollows: курсор на '.', после ".Ident" стоит начало тела члена;
// значит это имя явной реализации (IFoo.Bar {), а не часть типа.
func (p *Parser) memberNameFollows() bool {
	switch p.peekN(2).Kind {
	case token.LBrace, token.FatArrow, token.Semicolon, token.Assign:
		return true
	}
	return false
}

// looksLikeTupleType: (T a, U b) или (T, U) - внутри только типовые токены.
func (p *Parser) looksLikeTupleType() bool {
	depth := 0
	for n := 0; ; n++ {
		tok := p.peekN(n)
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return n > 1
			}
		case token.Ident, token.Comma, token.Dot, token.Lt, token.Gt, token.Question,
			token.LBracket, token.RBracket, token.ColonColon:
		default:
			return false
		}
	}
}

// parseParams режет содержимое (...) на параметры по запятым нулевой глубины.
func parseParams(inner []token.Token) []ast.ParamDecl {
	var params []ast.ParamDecl
	depth := 0
	from := 0
	for i, t := range inner {
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace, token.Lt:
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.Gt:
			depth--
		case token.Comma:
			if depth == 0 {
				params = append(params, parseParam(inner[from:i]))
				from = i + 1
			}
		}
	}
	if from < len(inner) {
		params = append(params, parseParam(inner[from:]))
	}
	return params
}

func parseParam(toks []token.Token) ast.ParamDecl {
	var param ast.ParamDecl
	// атрибуты параметра
	for len(toks) > 0 && toks[0].Kind == token.LBracket {
		depth := 0
		i := 0
		for ; i < len(toks); i++ {
			if toks[i].Kind == token.LBracket {
				depth++
			} else if toks[i].Kind == token.RBracket {
				depth--
				if depth == 0 {
					break
				}
			}
		}
		toks = toks[min(i+1, len(toks)):]
	}

modifiers:
	for len(toks) > 0 {
		switch t := toks[0]; {
		case t.Kind == token.KwRef:
			param.Modifier = ast.ParamRef
			if len(toks) > 1 && toks[1].Kind == token.KwReadonly {
				param.Modifier = ast.ParamRefReadonly
				toks = toks[1:]
			}
		case t.Kind == token.KwOut:
			param.Modifier = ast.ParamOut
		case t.Kind == token.KwIn:
			param.Modifier = ast.ParamIn
		case t.Kind == token.KwParams:
			param.Modifier = ast.ParamParams
		case t.Kind == token.KwThis:
			param.Modifier = ast.ParamThis
		case t.IsContextual("scoped") && len(toks) > 2:
			if param.Modifier == ast.ParamNone {
				param.Modifier = ast.ParamScoped
			}
		default:
			break modifiers
		}
		toks = toks[1:]
	}

	for i, t := range toks {
		if t.Kind == token.Assign {
			param.HasDefault = true
			toks = toks[:i]
			break
		}
	}
	if n := len(toks); n > 0 && toks[n-1].Kind == token.Ident && n > 1 {
		param.Name = toks[n-1].Text
		param.Type = joinTokens(toks[:n-1])
	} else {
		// __arglist или безымянный
		param.Type = joinTokens(toks)
	}
	return param
}

func (p *Parser) failHere(code diag.Code, msg string) *memberFailure {
	return &memberFailure{code: code, span: p.getDiagnosticSpan(), msg: msg}
}
