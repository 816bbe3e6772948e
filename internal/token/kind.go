package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier, including @-escaped ones and
	// contextual keywords (record, partial, global, where, var, ...).
	Ident

	KwUsing     // using
	KwStatic    // static
	KwNamespace // namespace
	KwClass     // class
	KwStruct    // struct
	KwInterface // interface
	KwEnum      // enum
	KwDelegate  // delegate
	KwEvent     // event
	KwOperator  // operator
	KwImplicit  // implicit
	KwExplicit  // explicit
	KwThis      // this
	KwVoid      // void
	KwNew       // new
	KwConst     // const
	KwReadonly  // readonly
	KwRef       // ref
	KwOut       // out
	KwIn        // in
	KwParams    // params

	// Access and declaration modifiers.
	KwPublic    // public
	KwPrivate   // private
	KwProtected // protected
	KwInternal  // internal
	KwAbstract  // abstract
	KwSealed    // sealed
	KwVirtual   // virtual
	KwOverride  // override
	KwExtern    // extern
	KwUnsafe    // unsafe
	KwVolatile  // volatile

	// IntLit represents an integer literal (decimal, hex, binary, with suffixes).
	IntLit
	// RealLit represents a floating point literal.
	RealLit
	// StringLit covers regular, verbatim and raw string literals.
	StringLit
	// InterpolatedStringLit covers $"..." and $@"..." forms.
	InterpolatedStringLit
	// CharLit represents a character literal.
	CharLit
	BoolLit // true / false
	NullLit // null

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Lt        // <
	Gt        // >
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Colon     // :
	ColonColon
	Assign   // =
	FatArrow // =>
	Question // ?
	Tilde    // ~
	// Operator is any other operator or punctuator (+, -, ==, ?., <=, &&, ...).
	// The structural parser never needs to tell them apart.
	Operator
)

var kindNames = [...]string{
	Invalid:               "Invalid",
	EOF:                   "EOF",
	Ident:                 "Ident",
	KwUsing:               "using",
	KwStatic:              "static",
	KwNamespace:           "namespace",
	KwClass:               "class",
	KwStruct:              "struct",
	KwInterface:           "interface",
	KwEnum:                "enum",
	KwDelegate:            "delegate",
	KwEvent:               "event",
	KwOperator:            "operator",
	KwImplicit:            "implicit",
	KwExplicit:            "explicit",
	KwThis:                "this",
	KwVoid:                "void",
	KwNew:                 "new",
	KwConst:               "const",
	KwReadonly:            "readonly",
	KwRef:                 "ref",
	KwOut:                 "out",
	KwIn:                  "in",
	KwParams:              "params",
	KwPublic:              "public",
	KwPrivate:             "private",
	KwProtected:           "protected",
	KwInternal:            "internal",
	KwAbstract:            "abstract",
	KwSealed:              "sealed",
	KwVirtual:             "virtual",
	KwOverride:            "override",
	KwExtern:              "extern",
	KwUnsafe:              "unsafe",
	KwVolatile:            "volatile",
	IntLit:                "IntLit",
	RealLit:               "RealLit",
	StringLit:             "StringLit",
	InterpolatedStringLit: "InterpolatedStringLit",
	CharLit:               "CharLit",
	BoolLit:               "BoolLit",
	NullLit:               "NullLit",
	LBrace:                "{",
	RBrace:                "}",
	LParen:                "(",
	RParen:                ")",
	LBracket:              "[",
	RBracket:              "]",
	Lt:                    "<",
	Gt:                    ">",
	Semicolon:             ";",
	Comma:                 ",",
	Dot:                   ".",
	Colon:                 ":",
	ColonColon:            "::",
	Assign:                "=",
	FatArrow:              "=>",
	Question:              "?",
	Tilde:                 "~",
	Operator:              "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsModifier reports whether k may prefix a type or member declaration.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPublic, KwPrivate, KwProtected, KwInternal, KwStatic, KwAbstract, KwSealed,
		KwVirtual, KwOverride, KwExtern, KwUnsafe, KwVolatile, KwReadonly, KwNew, KwConst:
		return true
	default:
		return false
	}
}

// IsTypeDeclKeyword reports whether k introduces a type declaration.
func (k Kind) IsTypeDeclKeyword() bool {
	switch k {
	case KwClass, KwStruct, KwInterface, KwEnum, KwDelegate:
		return true
	default:
		return false
	}
}
