package parser

import (
	"slices"

	"testgen/internal/ast"
	"testgen/internal/diag"
	"testgen/internal/lexer"
	"testgen/internal/source"
	"testgen/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
}

// Parser - состояние парсера на один файл.
// Разбор структурный: using, namespace, объявления типов и заголовки членов;
// тела методов и инициализаторы пропускаются по балансу скобок.
type Parser struct {
	toks     []token.Token
	pos      int
	tree     *ast.Tree
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile - входная точка для разбора одного файла.
func ParseFile(fs *source.FileSet, id source.FileID, opts Options) Result {
	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	toks := lx.All()

	p := Parser{
		toks: toks,
		tree: ast.NewTree(ast.Hints{Nodes: uint(len(toks)/8 + 1)}),
		file: file,
		opts: opts,
	}
	p.lastSpan = source.Span{File: file.ID}
	p.parseCompilationUnit()

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = r.Bag
	case *diag.BagReporter:
		bag = r.Bag
	}
	return Result{Tree: p.tree, Bag: bag}
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) atWord(word string) bool {
	return p.peek().IsContextual(word)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseCompilationUnit - верхний уровень: using, namespace, типы и
// top-level statements (последние пропускаются).
func (p *Parser) parseCompilationUnit() {
	start := p.peek().Span
	p.parseNamespaceBody(p.tree.Root, true)
	p.tree.SetSpan(p.tree.Root, start.Cover(p.peek().Span))
}
