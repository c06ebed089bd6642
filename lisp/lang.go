package lisp

// CoreNamespace is the namespace whose definitions every other namespace
// imports unless it is created with WithoutCore.
const CoreNamespace = "kaa.core"

// DefaultNamespace is the namespace used by front ends when none is given.
const DefaultNamespace = "main"

// HostPrefix qualifies an import source that names a host module rather
// than a namespace, as in (import go/strings).
const HostPrefix = "go"

// SourceExt is the file extension of namespace source files.
const SourceExt = ".lisp"

// Special form keywords.
const (
	SymDef      = "def"
	SymDefmacro = "defmacro"
	SymIf       = "if"
	SymLambda   = "lambda"
	SymImport   = "import"
	SymQuote    = "quote"
	SymRaise    = "raise"
	SymTry      = "try"
	SymExcept   = "except"
)

// Parameter list markers.
const (
	OptionalSymbol = "&optional"
	RestSymbol     = "&rest"
)

// Import form keywords.
const (
	importFrom = "from"
	importAs   = "as"
	importAll  = "*"
)
