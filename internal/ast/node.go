package ast

import "testgen/internal/source"

// NodeKind tags the payload a Node carries.
type NodeKind uint8

const (
	// NodeUnit is the root of a compilation unit; no payload.
	NodeUnit NodeKind = iota
	NodeUsing
	NodeNamespace
	// NodeType is a class, struct, interface, record, enum or delegate.
	NodeType
	NodeMethod
	// NodeMember is any non-method member: field, property, ctor, operator, ...
	NodeMember
	// NodeStmt is a single statement line of a synthetic method body.
	NodeStmt
)

func (k NodeKind) String() string {
	switch k {
	case NodeUnit:
		return "Unit"
	case NodeUsing:
		return "Using"
	case NodeNamespace:
		return "Namespace"
	case NodeType:
		return "Type"
	case NodeMethod:
		return "Method"
	case NodeMember:
		return "Member"
	case NodeStmt:
		return "Stmt"
	}
	return "Unknown"
}

type Node struct {
	Kind     NodeKind
	Span     source.Span
	Parent   NodeID
	Children []NodeID
	Payload  PayloadID
}

// Tree is an arena-backed syntax tree. The parser builds one per source
// unit; the generator builds synthetic ones with the same constructors.
type Tree struct {
	Nodes      *Arena[Node]
	Usings     *Arena[UsingDecl]
	Namespaces *Arena[NamespaceDecl]
	Types      *Arena[TypeDecl]
	Methods    *Arena[MethodDecl]
	Params     *Arena[ParamDecl]
	Members    *Arena[MemberDecl]
	Stmts      *Arena[StmtDecl]
	Root       NodeID
}

type Hints struct{ Nodes, Params, Stmts uint }

func NewTree(hints Hints) *Tree {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 6
	}
	if hints.Params == 0 {
		hints.Params = 1 << 4
	}
	small := hints.Nodes / 4
	t := &Tree{
		Nodes:      NewArena[Node](hints.Nodes),
		Usings:     NewArena[UsingDecl](small),
		Namespaces: NewArena[NamespaceDecl](small),
		Types:      NewArena[TypeDecl](small),
		Methods:    NewArena[MethodDecl](small),
		Params:     NewArena[ParamDecl](hints.Params),
		Members:    NewArena[MemberDecl](small),
		Stmts:      NewArena[StmtDecl](hints.Stmts),
	}
	t.Root = t.newNode(NodeUnit, source.Span{}, NoNodeID, NoPayloadID)
	return t
}

func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

func (t *Tree) newNode(kind NodeKind, sp source.Span, parent NodeID, payload PayloadID) NodeID {
	id := NodeID(t.Nodes.Allocate(Node{
		Kind:    kind,
		Span:    sp,
		Parent:  parent,
		Payload: payload,
	}))
	if p := t.Node(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// SetSpan updates the span once the closing token of a node is known.
func (t *Tree) SetSpan(id NodeID, sp source.Span) {
	if n := t.Node(id); n != nil {
		n.Span = sp
	}
}

func (t *Tree) NewUsing(parent NodeID, sp source.Span, u UsingDecl) NodeID {
	return t.newNode(NodeUsing, sp, parent, PayloadID(t.Usings.Allocate(u)))
}

func (t *Tree) NewNamespace(parent NodeID, sp source.Span, ns NamespaceDecl) NodeID {
	return t.newNode(NodeNamespace, sp, parent, PayloadID(t.Namespaces.Allocate(ns)))
}

func (t *Tree) NewType(parent NodeID, sp source.Span, td TypeDecl) NodeID {
	return t.newNode(NodeType, sp, parent, PayloadID(t.Types.Allocate(td)))
}

// NewMethod stores params contiguously and links them to the method payload.
func (t *Tree) NewMethod(parent NodeID, sp source.Span, md MethodDecl, params []ParamDecl) NodeID {
	md.ParamsStart, md.ParamsCount = NoParamID, 0
	for i, p := range params {
		pid := ParamID(t.Params.Allocate(p))
		if i == 0 {
			md.ParamsStart = pid
		}
		md.ParamsCount++
	}
	return t.newNode(NodeMethod, sp, parent, PayloadID(t.Methods.Allocate(md)))
}

func (t *Tree) NewMember(parent NodeID, sp source.Span, m MemberDecl) NodeID {
	return t.newNode(NodeMember, sp, parent, PayloadID(t.Members.Allocate(m)))
}

func (t *Tree) NewStmt(parent NodeID, s StmtDecl) NodeID {
	return t.newNode(NodeStmt, source.Span{}, parent, PayloadID(t.Stmts.Allocate(s)))
}

func (t *Tree) Using(id NodeID) (*UsingDecl, bool) {
	n := t.Node(id)
	if n == nil || n.Kind != NodeUsing {
		return nil, false
	}
	return t.Usings.Get(uint32(n.Payload)), true
}

func (t *Tree) Namespace(id NodeID) (*NamespaceDecl, bool) {
	n := t.Node(id)
	if n == nil || n.Kind != NodeNamespace {
		return nil, false
	}
	return t.Namespaces.Get(uint32(n.Payload)), true
}

func (t *Tree) Type(id NodeID) (*TypeDecl, bool) {
	n := t.Node(id)
	if n == nil || n.Kind != NodeType {
		return nil, false
	}
	return t.Types.Get(uint32(n.Payload)), true
}

func (t *Tree) Method(id NodeID) (*MethodDecl, bool) {
	n := t.Node(id)
	if n == nil || n.Kind != NodeMethod {
		return nil, false
	}
	return t.Methods.Get(uint32(n.Payload)), true
}

func (t *Tree) Member(id NodeID) (*MemberDecl, bool) {
	n := t.Node(id)
	if n == nil || n.Kind != NodeMember {
		return nil, false
	}
	return t.Members.Get(uint32(n.Payload)), true
}

func (t *Tree) Stmt(id NodeID) (*StmtDecl, bool) {
	n := t.Node(id)
	if n == nil || n.Kind != NodeStmt {
		return nil, false
	}
	return t.Stmts.Get(uint32(n.Payload)), true
}

// MethodParams returns a copy of the method's parameters in declaration order.
func (t *Tree) MethodParams(md *MethodDecl) []ParamDecl {
	if md == nil || md.ParamsCount == 0 || !md.ParamsStart.IsValid() {
		return nil
	}
	out := make([]ParamDecl, 0, md.ParamsCount)
	base := uint32(md.ParamsStart)
	for offset := range md.ParamsCount {
		if p := t.Params.Get(base + offset); p != nil {
			out = append(out, *p)
		}
	}
	return out
}
