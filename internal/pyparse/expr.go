package pyparse

import (
	"strings"

	"github.com/pyreviewhq/pyreview/internal/pyast"
)

// spacedOps are operators rendered with surrounding spaces, the way
// Python's unparser prints them.
var spacedOps = map[string]bool{
	"=": true, "+": true, "-": true, "*": true, "/": true, "//": true,
	"%": true, "|": true, "&": true, "^": true, "<<": true, ">>": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
	"->": true, ":=": true, "+=": true, "-=": true, "*=": true,
	"/=": true, "//=": true, "%=": true, "@=": true, "&=": true,
	"|=": true, "^=": true, "**=": true, ">>=": true, "<<=": true,
}

// joinTokens reconstructs a single-line source rendering of a token
// span, approximating ast.unparse output for the expression shapes the
// analyzers report.
func joinTokens(span []token) string {
	var sb strings.Builder
	for i, t := range span {
		if i > 0 && needSpace(span[i-1], t) {
			sb.WriteString(" ")
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}

func needSpace(a, b token) bool {
	// Never before closers, separators, or attribute dots.
	if b.kind == tokOp {
		switch b.text {
		case ")", "]", "}", ",", ";", ":", ".":
			return false
		case "(", "[":
			// Call or subscript binds tightly to what precedes it.
			if a.kind == tokName {
				return pythonKeywords[a.text] && a.text != "None" && a.text != "True" && a.text != "False"
			}
			if a.kind == tokOp && (a.text == ")" || a.text == "]") {
				return false
			}
		}
	}
	if a.kind == tokOp {
		switch a.text {
		case "(", "[", "{", ".", "~", "**":
			return false
		case ",", ":":
			return true
		}
		if spacedOps[a.text] {
			return true
		}
	}
	if b.kind == tokOp && (spacedOps[b.text] || b.text == "{") {
		return true
	}
	// Adjacent words: "not x", "lambda x", "a in b".
	if a.kind != tokOp && b.kind != tokOp {
		return true
	}
	return false
}

// decodeStringLiteral strips the prefix and quotes from a string literal
// token and resolves the common escape sequences. Raw strings keep their
// backslashes.
func decodeStringLiteral(lit string) string {
	i := 0
	raw := false
	for i < len(lit) && lit[i] != '"' && lit[i] != '\'' {
		if lit[i] == 'r' || lit[i] == 'R' {
			raw = true
		}
		i++
	}
	if i >= len(lit) {
		return lit
	}

	q := lit[i]
	body := lit[i:]
	if strings.HasPrefix(body, strings.Repeat(string(q), 3)) && len(body) >= 6 {
		body = body[3 : len(body)-3]
	} else if len(body) >= 2 {
		body = body[1 : len(body)-1]
	}
	if raw || !strings.Contains(body, "\\") {
		return body
	}

	var sb strings.Builder
	for j := 0; j < len(body); j++ {
		c := body[j]
		if c != '\\' || j+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		j++
		switch body[j] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\', '\'', '"':
			sb.WriteByte(body[j])
		case '\n':
			// Escaped newline joins lines.
		default:
			sb.WriteByte('\\')
			sb.WriteByte(body[j])
		}
	}
	return sb.String()
}

// assignFromSpan recognizes a plain assignment statement (one or more
// "=" at depth zero, no annotation) and returns its fact node, or nil
// when the span is not a plain assignment or has no bare-name target.
func assignFromSpan(span []token) *pyast.Assign {
	var eqs []int
	depth := 0
	for i, t := range span {
		if t.kind != tokOp {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case "=":
			if depth == 0 {
				eqs = append(eqs, i)
			}
		case ":":
			// An annotated assignment ("x: int = 5") is an AnnAssign,
			// which the fact model does not record.
			if depth == 0 && len(eqs) == 0 {
				return nil
			}
		}
	}
	if len(eqs) == 0 {
		return nil
	}

	var targets []string
	start := 0
	for _, eq := range eqs {
		seg := span[start:eq]
		if len(seg) == 1 && seg[0].kind == tokName && !pythonKeywords[seg[0].text] {
			targets = append(targets, seg[0].text)
		}
		start = eq + 1
	}
	if len(targets) == 0 {
		return nil
	}

	return &pyast.Assign{
		Targets: targets,
		Value:   classifyValue(span[eqs[len(eqs)-1]+1:]),
		Source:  joinTokens(span),
		Line:    span[0].line,
	}
}

// classifyValue determines the shape of an assignment's right-hand side:
// literal constants, the four display forms, or a bare-name constructor
// call. Anything else is ValueOther.
func classifyValue(rhs []token) pyast.Value {
	if len(rhs) == 0 {
		return pyast.Value{Kind: pyast.ValueOther}
	}
	t0 := rhs[0]

	switch t0.kind {
	case tokString:
		for _, t := range rhs {
			if t.kind != tokString {
				return pyast.Value{Kind: pyast.ValueOther}
			}
		}
		prefix := strings.ToLower(literalPrefix(t0.text))
		if strings.Contains(prefix, "f") {
			return pyast.Value{Kind: pyast.ValueOther} // JoinedStr, not a constant
		}
		if strings.Contains(prefix, "b") {
			return pyast.Value{Kind: pyast.ValueLiteral, TypeName: "bytes"}
		}
		return pyast.Value{Kind: pyast.ValueLiteral, TypeName: "str"}

	case tokNumber:
		if len(rhs) != 1 {
			return pyast.Value{Kind: pyast.ValueOther}
		}
		return pyast.Value{Kind: pyast.ValueLiteral, TypeName: numberTypeName(t0.text)}

	case tokName:
		if len(rhs) == 1 {
			switch t0.text {
			case "True", "False":
				return pyast.Value{Kind: pyast.ValueLiteral, TypeName: "bool"}
			case "None":
				return pyast.Value{Kind: pyast.ValueLiteral, TypeName: "NoneType"}
			}
			return pyast.Value{Kind: pyast.ValueOther}
		}
		// A simple constructor call: NAME ( ... ) spanning the whole RHS.
		if rhs[1].kind == tokOp && rhs[1].text == "(" && !pythonKeywords[t0.text] &&
			matchingClose(rhs, 1) == len(rhs)-1 {
			return pyast.Value{Kind: pyast.ValueCall, TypeName: t0.text}
		}
		return pyast.Value{Kind: pyast.ValueOther}

	case tokOp:
		if matchingClose(rhs, 0) != len(rhs)-1 {
			return pyast.Value{Kind: pyast.ValueOther}
		}
		switch t0.text {
		case "[":
			return pyast.Value{Kind: pyast.ValueList}
		case "{":
			if braceIsDict(rhs) {
				return pyast.Value{Kind: pyast.ValueDict}
			}
			return pyast.Value{Kind: pyast.ValueSet}
		case "(":
			inner := rhs[1 : len(rhs)-1]
			if len(inner) == 0 || hasTopLevelComma(inner) {
				return pyast.Value{Kind: pyast.ValueTuple}
			}
			// Parenthesized expression: classify what is inside.
			return classifyValue(inner)
		}
	}
	return pyast.Value{Kind: pyast.ValueOther}
}

func literalPrefix(lit string) string {
	for i := 0; i < len(lit); i++ {
		if lit[i] == '"' || lit[i] == '\'' {
			return lit[:i]
		}
	}
	return ""
}

func numberTypeName(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.HasSuffix(lower, "j"):
		return "complex"
	case strings.HasPrefix(lower, "0x"), strings.HasPrefix(lower, "0o"), strings.HasPrefix(lower, "0b"):
		return "int"
	case strings.Contains(lower, ".") || strings.Contains(lower, "e"):
		return "float"
	default:
		return "int"
	}
}

// matchingClose returns the index of the bracket closing the one at
// open, or -1 when unbalanced.
func matchingClose(span []token, open int) int {
	depth := 0
	for i := open; i < len(span); i++ {
		if span[i].kind != tokOp {
			continue
		}
		switch span[i].text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func hasTopLevelComma(span []token) bool {
	depth := 0
	for _, t := range span {
		if t.kind != tokOp {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ",":
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// braceIsDict reports whether a {...} display is a dict: empty braces or
// a ":" at the top nesting level.
func braceIsDict(rhs []token) bool {
	if len(rhs) == 2 {
		return true // {}
	}
	depth := 0
	for _, t := range rhs {
		if t.kind != tokOp {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ":":
			if depth == 1 {
				return true
			}
		}
	}
	return false
}
