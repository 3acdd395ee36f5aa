package pyast

import "strings"

// FunctionSignature reconstructs the canonical declaration text of a
// function: positional parameters in declared order, then *vararg and
// **kwarg when present, each annotated with ": T" only if an annotation
// exists, followed by " -> R" only when a return annotation exists.
// Async functions carry an "async " prefix.
func FunctionSignature(fn *FunctionDef) string {
	var args []string

	for _, p := range fn.Params {
		arg := p.Name
		if p.Annotation != "" {
			arg += ": " + p.Annotation
		}
		args = append(args, arg)
	}

	if fn.VarArg != nil {
		arg := "*" + fn.VarArg.Name
		if fn.VarArg.Annotation != "" {
			arg += ": " + fn.VarArg.Annotation
		}
		args = append(args, arg)
	}

	if fn.KwArg != nil {
		arg := "**" + fn.KwArg.Name
		if fn.KwArg.Annotation != "" {
			arg += ": " + fn.KwArg.Annotation
		}
		args = append(args, arg)
	}

	var sb strings.Builder
	if fn.Async {
		sb.WriteString("async ")
	}
	sb.WriteString("def ")
	sb.WriteString(fn.Name)
	sb.WriteString("(")
	sb.WriteString(strings.Join(args, ", "))
	sb.WriteString(")")
	if fn.Returns != "" {
		sb.WriteString(" -> ")
		sb.WriteString(fn.Returns)
	}
	return sb.String()
}

// ClassSignature reconstructs a class declaration: "class Name(B1, B2)",
// with the parentheses omitted entirely when the class has no bases.
func ClassSignature(cls *ClassDef) string {
	if len(cls.Bases) == 0 {
		return "class " + cls.Name
	}
	return "class " + cls.Name + "(" + strings.Join(cls.Bases, ", ") + ")"
}
