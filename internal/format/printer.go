package format

import (
	"errors"
	"strings"

	"testgen/internal/ast"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

// Printer renders trees with fixed options. The zero value prints with
// four-space indentation and is safe for concurrent use.
type Printer struct {
	Options Options
}

// Print renders tree as C# source text.
func (p Printer) Print(tree *ast.Tree) (string, error) {
	out, err := FormatTree(tree, p.Options)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type printer struct {
	tree   *ast.Tree
	writer *Writer
}

// FormatTree renders the whole compilation unit. Output uses '\n' line
// endings and ends with a single newline.
func FormatTree(tree *ast.Tree, opt Options) ([]byte, error) {
	if tree == nil {
		return nil, errors.New("format: nil tree")
	}
	root := tree.Node(tree.Root)
	if root == nil || root.Kind != ast.NodeUnit {
		return nil, errors.New("format: tree has no compilation unit")
	}
	pr := printer{tree: tree, writer: NewWriter(opt)}
	pr.printChildren(root.Children)
	pr.writer.Newline()
	return pr.writer.Bytes(), nil
}

// printChildren печатает список соседей; между группами разных видов и между
// объявлениями ставится пустая строка, using идут подряд.
func (p *printer) printChildren(children []ast.NodeID) {
	prev := ast.NodeKind(0)
	for i, id := range children {
		n := p.tree.Node(id)
		if n == nil {
			continue
		}
		if i > 0 && needsBlankLine(prev, n.Kind) {
			p.writer.BlankLine()
		}
		p.printNode(id, n)
		prev = n.Kind
	}
}

func needsBlankLine(prev, next ast.NodeKind) bool {
	switch next {
	case ast.NodeUsing:
		return prev != ast.NodeUsing
	case ast.NodeStmt:
		return false
	case ast.NodeUnit, ast.NodeNamespace, ast.NodeType, ast.NodeMethod, ast.NodeMember:
		return true
	}
	return true
}

func (p *printer) printNode(id ast.NodeID, n *ast.Node) {
	switch n.Kind {
	case ast.NodeUnit:
		p.printChildren(n.Children)
	case ast.NodeUsing:
		if u, ok := p.tree.Using(id); ok {
			p.writer.Line(usingText(u))
		}
	case ast.NodeNamespace:
		if ns, ok := p.tree.Namespace(id); ok {
			p.printNamespace(ns, n)
		}
	case ast.NodeType:
		if td, ok := p.tree.Type(id); ok {
			p.printType(td, n)
		}
	case ast.NodeMethod:
		if md, ok := p.tree.Method(id); ok {
			p.printMethod(md, n)
		}
	case ast.NodeMember:
		if m, ok := p.tree.Member(id); ok {
			// тела членов парсер не хранит, печатаем только отметку
			p.writer.Line("// " + m.Kind.String() + " " + m.Name)
		}
	case ast.NodeStmt:
		if s, ok := p.tree.Stmt(id); ok {
			p.printStmt(s)
		}
	}
}

func usingText(u *ast.UsingDecl) string {
	if u.Text != "" {
		return u.Text
	}
	var b strings.Builder
	if u.Global {
		b.WriteString("global ")
	}
	b.WriteString("using ")
	if u.Static {
		b.WriteString("static ")
	}
	if u.Alias != "" {
		b.WriteString(u.Alias + " = ")
	}
	b.WriteString(u.Name)
	b.WriteByte(';')
	return b.String()
}

func (p *printer) printNamespace(ns *ast.NamespaceDecl, n *ast.Node) {
	if ns.FileScoped {
		p.writer.Line("namespace " + ns.Name + ";")
		if len(n.Children) > 0 {
			p.writer.BlankLine()
			p.printChildren(n.Children)
		}
		return
	}
	p.writer.Line("namespace " + ns.Name)
	p.block(n.Children)
}

// block печатает { children } с отступом.
func (p *printer) block(children []ast.NodeID) {
	p.writer.Line("{")
	p.writer.IndentPush()
	p.printChildren(children)
	p.writer.IndentPop()
	p.writer.Line("}")
}

func (p *printer) printAttrs(attrs []string) {
	for _, a := range attrs {
		p.writer.Line("[" + a + "]")
	}
}
