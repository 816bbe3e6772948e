package ast

import "strings"

// Modifiers is a set of declaration modifiers.
type Modifiers uint32

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModProtected
	ModInternal
	ModFile
	ModStatic
	ModAbstract
	ModSealed
	ModVirtual
	ModOverride
	ModNew
	ModReadonly
	ModConst
	ModExtern
	ModUnsafe
	ModVolatile
	ModPartial
	ModAsync
	ModRequired
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModPrivate, "private"},
	{ModProtected, "protected"},
	{ModInternal, "internal"},
	{ModFile, "file"},
	{ModStatic, "static"},
	{ModAbstract, "abstract"},
	{ModSealed, "sealed"},
	{ModVirtual, "virtual"},
	{ModOverride, "override"},
	{ModNew, "new"},
	{ModReadonly, "readonly"},
	{ModConst, "const"},
	{ModExtern, "extern"},
	{ModUnsafe, "unsafe"},
	{ModVolatile, "volatile"},
	{ModPartial, "partial"},
	{ModAsync, "async"},
	{ModRequired, "required"},
}

// LookupModifier maps a modifier spelling to its flag.
func LookupModifier(word string) (Modifiers, bool) {
	for _, m := range modifierNames {
		if m.name == word {
			return m.mod, true
		}
	}
	return 0, false
}

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

// String renders modifiers in canonical C# order, space separated.
func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, " ")
}
