package ast

// UsingDecl is a using directive. Text is the directive as written, with
// whitespace normalised ("global using static System.Math;").
type UsingDecl struct {
	Global bool
	Static bool
	Alias  string
	Name   string
	Text   string
}

// NamespaceDecl holds a possibly dotted namespace name.
type NamespaceDecl struct {
	Name       string
	FileScoped bool
}

type TypeDeclKind uint8

const (
	TypeClass TypeDeclKind = iota
	TypeStruct
	TypeInterface
	TypeRecord
	TypeRecordStruct
	TypeEnum
	TypeDelegate
)

func (k TypeDeclKind) String() string {
	switch k {
	case TypeClass:
		return "class"
	case TypeStruct:
		return "struct"
	case TypeInterface:
		return "interface"
	case TypeRecord:
		return "record"
	case TypeRecordStruct:
		return "record struct"
	case TypeEnum:
		return "enum"
	case TypeDelegate:
		return "delegate"
	}
	return "unknown"
}

type TypeDecl struct {
	Kind       TypeDeclKind
	Name       string
	Modifiers  Modifiers
	TypeParams []string
	Attrs      []string
}

type MethodDecl struct {
	Name        string
	ReturnType  string
	Modifiers   Modifiers
	TypeParams  []string
	Attrs       []string
	ParamsStart ParamID
	ParamsCount uint32
}

// IsVoid reports whether the method returns nothing.
func (m *MethodDecl) IsVoid() bool {
	return m.ReturnType == "void"
}

type ParamModifier uint8

const (
	ParamNone ParamModifier = iota
	ParamRef
	ParamOut
	ParamIn
	ParamRefReadonly
	ParamParams
	ParamThis
	ParamScoped
)

// Keyword returns the modifier spelling as used at a call site ("ref", "out",
// "in") or "" when the argument is passed plainly.
func (m ParamModifier) Keyword() string {
	switch m {
	case ParamRef:
		return "ref"
	case ParamOut:
		return "out"
	case ParamIn, ParamRefReadonly:
		return "in"
	}
	return ""
}

type ParamDecl struct {
	Modifier   ParamModifier
	Type       string
	Name       string
	HasDefault bool
}

type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberProperty
	MemberIndexer
	MemberEvent
	MemberConstructor
	MemberDestructor
	MemberOperator
	MemberConversion
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberProperty:
		return "property"
	case MemberIndexer:
		return "indexer"
	case MemberEvent:
		return "event"
	case MemberConstructor:
		return "constructor"
	case MemberDestructor:
		return "destructor"
	case MemberOperator:
		return "operator"
	case MemberConversion:
		return "conversion"
	}
	return "unknown"
}

type MemberDecl struct {
	Kind      MemberKind
	Name      string
	Modifiers Modifiers
}

type StmtKind uint8

const (
	// StmtLine is one statement, printed as is.
	StmtLine StmtKind = iota
	StmtComment
	StmtBlank
)

type StmtDecl struct {
	Kind StmtKind
	Text string
}
