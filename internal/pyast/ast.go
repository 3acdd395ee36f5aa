// Package pyast defines a closed set of syntax-tree node variants for the
// subset of Python needed by the analyzers: module, class and function
// definitions, plain assignments, calls, imports, and opaque statement
// blocks. Parsers adapt their native trees into this set so extraction
// logic stays independent of any particular grammar library.
package pyast

// Node is the closed variant interface. Only types in this package
// implement it.
type Node interface {
	node()
}

// Module is the root of a parsed source file.
type Module struct {
	Body []Node
}

// Param is a single function parameter.
type Param struct {
	Name string
	// Annotation is the reconstructed annotation text, or "" when the
	// parameter is unannotated.
	Annotation string
	Line       int
}

// FunctionDef is a function or method definition. Keyword-only
// parameters (after a bare *) are not recorded; the analyzers mirror the
// original fact extraction, which only considers positional parameters
// plus the variadic pair.
type FunctionDef struct {
	Name    string
	Async   bool
	Params  []Param
	VarArg  *Param
	KwArg   *Param
	Returns string
	// Docstring is the cleaned docstring text, "" when absent or empty.
	Docstring string
	Body      []Node
	Line      int
	EndLine   int
}

// ClassDef is a class definition. Bases holds the reconstructed base
// expressions in declared order, excluding keyword arguments such as
// metaclass=.
type ClassDef struct {
	Name      string
	Bases     []string
	Docstring string
	Body      []Node
	Line      int
	EndLine   int
}

// ValueKind classifies the right-hand side of a plain assignment.
type ValueKind int

const (
	// ValueOther is any expression shape not classified below.
	ValueOther ValueKind = iota
	// ValueLiteral is a literal constant; TypeName holds the Python
	// runtime type name (str, int, float, bool, bytes, NoneType).
	ValueLiteral
	ValueList
	ValueDict
	ValueSet
	ValueTuple
	// ValueCall is a simple call whose callee is a bare name; TypeName
	// holds the callee.
	ValueCall
)

// Value is the classified shape of an assignment's right-hand side.
type Value struct {
	Kind     ValueKind
	TypeName string
}

// Assign is a plain assignment statement. Targets lists only bare-name
// targets; tuple, attribute, and subscript targets are dropped.
type Assign struct {
	Targets []string
	Value   Value
	// Source is the reconstructed single-line statement text.
	Source string
	Line   int
}

// Call records a call site. Name is the called identifier: the bare name
// for name calls, the trailing attribute for attribute-access calls.
type Call struct {
	Name string
	Line int
}

// Import is a plain import statement. Names holds the full dotted module
// names, one per alias.
type Import struct {
	Names []string
	Line  int
}

// ImportFrom is a from-import statement. Module is the dotted module
// text after any leading relative dots, "" for a purely relative import.
type ImportFrom struct {
	Module string
	Line   int
}

// Block is an opaque compound statement (if, for, while, with, try and
// friends). Calls appearing in the header are attached as leading Body
// nodes so subtree walks still observe them.
type Block struct {
	Body    []Node
	Line    int
	EndLine int
}

func (*Module) node()      {}
func (*FunctionDef) node() {}
func (*ClassDef) node()    {}
func (*Assign) node()      {}
func (*Call) node()        {}
func (*Import) node()      {}
func (*ImportFrom) node()  {}
func (*Block) node()       {}
