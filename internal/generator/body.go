package generator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"testgen/internal/ast"
)

const (
	failingAssert = `Assert.True(false, "autogenerated");`
	pendingMarker = "TODO: replace the placeholder assertion"
)

// Body synthesizes the statements of one test method. It is a pure function
// of its arguments; a strategy outside the declared set is an error.
func Body(strategy BodyStrategy, m MethodSignature) ([]ast.StmtDecl, error) {
	switch strategy {
	case BodyEmpty:
		return emptyBody(), nil
	case BodyTemplate:
		return templateBody(m), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownBody, strategy)
	}
}

func emptyBody() []ast.StmtDecl {
	return []ast.StmtDecl{line(failingAssert)}
}

func line(text string) ast.StmtDecl {
	return ast.StmtDecl{Kind: ast.StmtLine, Text: text}
}

func comment(text string) ast.StmtDecl {
	return ast.StmtDecl{Kind: ast.StmtComment, Text: text}
}

var blank = ast.StmtDecl{Kind: ast.StmtBlank}

func templateBody(m MethodSignature) []ast.StmtDecl {
	open := slices.Concat(m.OpenTypeParams, m.TypeParams)
	reserved := map[string]bool{"sut": true, "actual": true}

	var arrange []ast.StmtDecl
	args := make([]string, 0, len(m.Params))
	for i, p := range m.Params {
		name := localName(p.Name, i, reserved)
		reserved[name] = true
		typ := closeOver(p.Type, open)
		if typ == "" {
			typ = "object"
		}
		arrange = append(arrange, line(typ+" "+name+" = default;"))
		if kw := p.Modifier.Keyword(); kw != "" {
			args = append(args, kw+" "+name)
		} else {
			args = append(args, name)
		}
	}

	receiver := m.Owner
	if !m.Static {
		arrange = append(arrange, line("var sut = new "+m.Owner+"();"))
		receiver = "sut"
	}

	call := receiver + "." + m.Name + closedTypeArgs(len(m.TypeParams)) + "(" + strings.Join(args, ", ") + ");"
	if !m.IsVoid() {
		call = "var actual = " + call
	}

	var body []ast.StmtDecl
	if len(arrange) > 0 {
		body = append(body, comment("Arrange"))
		body = append(body, arrange...)
		body = append(body, blank)
	}
	body = append(body,
		comment("Act"),
		line(call),
		blank,
		comment("Assert"),
		comment(pendingMarker),
		line(failingAssert),
	)
	return body
}

// localName даёт имя локальной переменной для параметра: безымянные и
// совпадающие с sut/actual переименовываются.
func localName(name string, index int, reserved map[string]bool) string {
	if name == "" {
		name = "arg" + strconv.Itoa(index+1)
	}
	base := name
	for n := 2; reserved[name]; n++ {
		name = base + strconv.Itoa(n)
	}
	return name
}

// closeOver replaces whole-word occurrences of the open type parameters in a
// type expression with object: "Dictionary<TKey, List<T>>" gives
// "Dictionary<object, List<object>>".
func closeOver(typ string, open []string) string {
	if len(open) == 0 || typ == "" {
		return typ
	}
	var b strings.Builder
	word := func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
	runes := []rune(typ)
	for i := 0; i < len(runes); {
		if !word(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && word(runes[j]) {
			j++
		}
		w := string(runes[i:j])
		// A.T - член другого типа, не параметр
		qualified := i > 0 && runes[i-1] == '.'
		if !qualified && slices.Contains(open, w) {
			w = "object"
		}
		b.WriteString(w)
		i = j
	}
	return b.String()
}
