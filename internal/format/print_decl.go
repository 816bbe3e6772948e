package format

import (
	"strings"

	"testgen/internal/ast"
)

func (p *printer) printType(td *ast.TypeDecl, n *ast.Node) {
	p.printAttrs(td.Attrs)
	var head strings.Builder
	if mods := td.Modifiers.String(); mods != "" {
		head.WriteString(mods + " ")
	}
	if td.Kind == ast.TypeDelegate {
		// сигнатуру делегата дерево не хранит
		head.WriteString("delegate void " + td.Name + typeParams(td.TypeParams) + "();")
		p.writer.Line(head.String())
		return
	}
	head.WriteString(td.Kind.String() + " " + td.Name + typeParams(td.TypeParams))
	p.writer.Line(head.String())
	p.block(n.Children)
}

func (p *printer) printMethod(md *ast.MethodDecl, n *ast.Node) {
	p.printAttrs(md.Attrs)
	var head strings.Builder
	if mods := md.Modifiers.String(); mods != "" {
		head.WriteString(mods + " ")
	}
	ret := md.ReturnType
	if ret == "" {
		ret = "void"
	}
	head.WriteString(ret + " " + md.Name + typeParams(md.TypeParams))
	head.WriteByte('(')
	for i, prm := range p.tree.MethodParams(md) {
		if i > 0 {
			head.WriteString(", ")
		}
		head.WriteString(paramText(prm))
	}
	head.WriteByte(')')

	if md.Modifiers.Has(ast.ModAbstract) || md.Modifiers.Has(ast.ModExtern) {
		p.writer.Line(head.String() + ";")
		return
	}
	p.writer.Line(head.String())
	p.block(n.Children)
}

func (p *printer) printStmt(s *ast.StmtDecl) {
	switch s.Kind {
	case ast.StmtLine:
		p.writer.Line(s.Text)
	case ast.StmtComment:
		p.writer.Line("// " + s.Text)
	case ast.StmtBlank:
		p.writer.BlankLine()
	}
}

func typeParams(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "<" + strings.Join(names, ", ") + ">"
}

func paramText(prm ast.ParamDecl) string {
	var b strings.Builder
	switch prm.Modifier {
	case ast.ParamRef:
		b.WriteString("ref ")
	case ast.ParamOut:
		b.WriteString("out ")
	case ast.ParamIn:
		b.WriteString("in ")
	case ast.ParamRefReadonly:
		b.WriteString("ref readonly ")
	case ast.ParamParams:
		b.WriteString("params ")
	case ast.ParamThis:
		b.WriteString("this ")
	case ast.ParamScoped:
		b.WriteString("scoped ")
	case ast.ParamNone:
	}
	b.WriteString(prm.Type)
	if prm.Name != "" {
		b.WriteString(" " + prm.Name)
	}
	if prm.HasDefault {
		b.WriteString(" = default")
	}
	return b.String()
}
