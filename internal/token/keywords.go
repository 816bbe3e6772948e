package token

var keywords = map[string]Kind{
	"using":     KwUsing,
	"static":    KwStatic,
	"namespace": KwNamespace,
	"class":     KwClass,
	"struct":    KwStruct,
	"interface": KwInterface,
	"enum":      KwEnum,
	"delegate":  KwDelegate,
	"event":     KwEvent,
	"operator":  KwOperator,
	"implicit":  KwImplicit,
	"explicit":  KwExplicit,
	"this":      KwThis,
	"void":      KwVoid,
	"new":       KwNew,
	"const":     KwConst,
	"readonly":  KwReadonly,
	"ref":       KwRef,
	"out":       KwOut,
	"in":        KwIn,
	"params":    KwParams,
	"public":    KwPublic,
	"private":   KwPrivate,
	"protected": KwProtected,
	"internal":  KwInternal,
	"abstract":  KwAbstract,
	"sealed":    KwSealed,
	"virtual":   KwVirtual,
	"override":  KwOverride,
	"extern":    KwExtern,
	"unsafe":    KwUnsafe,
	"volatile":  KwVolatile,
	"true":      BoolLit,
	"false":     BoolLit,
	"null":      NullLit,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые. Контекстные слова (record, partial,
// global, where, var, ...) остаются идентификаторами: парсер смотрит на текст.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
