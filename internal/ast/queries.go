package ast

import "strings"

// Walk visits nodes in pre-order starting at id. Returning false from fn
// skips the children of the current node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if !fn(id, n) {
		return
	}
	for _, child := range n.Children {
		t.Walk(child, fn)
	}
}

// Classes returns every class declaration of the unit in source order,
// including classes nested in namespaces and in other types.
func (t *Tree) Classes() []NodeID {
	var out []NodeID
	t.Walk(t.Root, func(id NodeID, n *Node) bool {
		switch n.Kind {
		case NodeUnit, NodeNamespace:
			return true
		case NodeType:
			if td, ok := t.Type(id); ok && td.Kind == TypeClass {
				out = append(out, id)
			}
			return true
		case NodeUsing, NodeMethod, NodeMember, NodeStmt:
			return false
		}
		return false
	})
	return out
}

// UsingDirectives returns the using directives of the compilation unit and of
// every namespace, in source order.
func (t *Tree) UsingDirectives() []NodeID {
	var out []NodeID
	t.Walk(t.Root, func(id NodeID, n *Node) bool {
		switch n.Kind {
		case NodeUsing:
			out = append(out, id)
			return false
		case NodeUnit, NodeNamespace:
			return true
		case NodeType, NodeMethod, NodeMember, NodeStmt:
			return false
		}
		return false
	})
	return out
}

// NamespaceChain returns the namespaces enclosing id, outermost first.
func (t *Tree) NamespaceChain(id NodeID) []NodeID {
	var chain []NodeID
	for cur := t.parentOf(id); cur.IsValid(); cur = t.parentOf(cur) {
		if n := t.Node(cur); n.Kind == NodeNamespace {
			chain = append(chain, cur)
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// NamespacePath flattens the enclosing namespaces of id into name segments,
// splitting dotted names: namespace A.B { namespace C { ... } } gives [A B C].
func (t *Tree) NamespacePath(id NodeID) []string {
	var path []string
	for _, ns := range t.NamespaceChain(id) {
		decl, _ := t.Namespace(ns)
		for seg := range strings.SplitSeq(decl.Name, ".") {
			if seg = strings.TrimSpace(seg); seg != "" {
				path = append(path, seg)
			}
		}
	}
	return path
}

// EnclosingTypes returns the names of the types containing id, outermost first.
func (t *Tree) EnclosingTypes(id NodeID) []string {
	var names []string
	for cur := t.parentOf(id); cur.IsValid(); cur = t.parentOf(cur) {
		if td, ok := t.Type(cur); ok {
			names = append([]string{td.Name}, names...)
		}
	}
	return names
}

// MethodsOf returns the methods declared directly in the type node, in
// source order. Nested types and non-method members are not included.
func (t *Tree) MethodsOf(typeID NodeID) []NodeID {
	n := t.Node(typeID)
	if n == nil || n.Kind != NodeType {
		return nil
	}
	var out []NodeID
	for _, child := range n.Children {
		if t.Node(child).Kind == NodeMethod {
			out = append(out, child)
		}
	}
	return out
}

func (t *Tree) parentOf(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}
