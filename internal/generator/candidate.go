package generator

import (
	"strings"

	"testgen/internal/ast"
)

// ClassCandidate is a public class eligible for a test class.
type ClassCandidate struct {
	Node          ast.NodeID
	Name          string
	NamespacePath []string
	// ContainingTypes are the enclosing types of a nested class, outermost first.
	ContainingTypes []string
	Static          bool
	// Owner is the type expression used to reach the class from the test
	// namespace, with type parameters closed over object: "Outer.Box<object>".
	Owner   string
	Methods []MethodSignature
}

// FullName is the dotted namespace path plus the simple name.
func (c ClassCandidate) FullName() string {
	if len(c.NamespacePath) == 0 {
		return c.Name
	}
	return strings.Join(c.NamespacePath, ".") + "." + c.Name
}

// MethodSignature is what body synthesis needs to know about a method.
type MethodSignature struct {
	Name       string
	ReturnType string
	Static     bool
	TypeParams []string
	Params     []ast.ParamDecl
	// Owner is copied from the class; see ClassCandidate.Owner.
	Owner string
	// OpenTypeParams are the type parameters of the class and its containing
	// types; they are replaced with object in parameter types.
	OpenTypeParams []string
}

// IsVoid reports whether the method returns nothing.
func (m MethodSignature) IsVoid() bool {
	return m.ReturnType == "" || m.ReturnType == "void"
}

// Candidates collects the public classes of tree in source order.
func Candidates(tree *ast.Tree) []ClassCandidate {
	var out []ClassCandidate
	for _, id := range tree.Classes() {
		td, ok := tree.Type(id)
		if !ok || !td.Modifiers.Has(ast.ModPublic) {
			continue
		}
		owner, open := ownerExpr(tree, id)
		cand := ClassCandidate{
			Node:            id,
			Name:            td.Name,
			NamespacePath:   tree.NamespacePath(id),
			ContainingTypes: tree.EnclosingTypes(id),
			Static:          td.Modifiers.Has(ast.ModStatic),
			Owner:           owner,
		}
		for _, mid := range tree.MethodsOf(id) {
			md, _ := tree.Method(mid)
			if !md.Modifiers.Has(ast.ModPublic) {
				continue
			}
			cand.Methods = append(cand.Methods, MethodSignature{
				Name:           md.Name,
				ReturnType:     md.ReturnType,
				Static:         md.Modifiers.Has(ast.ModStatic),
				TypeParams:     md.TypeParams,
				Params:         tree.MethodParams(md),
				Owner:          owner,
				OpenTypeParams: open,
			})
		}
		out = append(out, cand)
	}
	return out
}

// ownerExpr строит Outer<object>.Inner<object> и собирает имена всех
// параметров типа по цепочке.
func ownerExpr(tree *ast.Tree, id ast.NodeID) (string, []string) {
	var chain []*ast.TypeDecl
	for cur := id; cur.IsValid(); {
		n := tree.Node(cur)
		if n == nil {
			break
		}
		if td, ok := tree.Type(cur); ok {
			chain = append(chain, td)
		}
		cur = n.Parent
	}
	var parts []string
	var open []string
	for i := len(chain) - 1; i >= 0; i-- {
		td := chain[i]
		parts = append(parts, td.Name+closedTypeArgs(len(td.TypeParams)))
		open = append(open, td.TypeParams...)
	}
	return strings.Join(parts, "."), open
}

// closedTypeArgs returns "<object, object>" for n type parameters.
func closedTypeArgs(n int) string {
	if n == 0 {
		return ""
	}
	return "<" + strings.TrimSuffix(strings.Repeat("object, ", n), ", ") + ">"
}
