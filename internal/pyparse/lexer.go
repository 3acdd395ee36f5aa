// Package pyparse parses Python source text into the closed node set of
// pyast. It implements a lightweight tokenizer and an indentation-aware
// recursive-descent parser covering the statement subset the analyzers
// extract facts from; expression-level detail beyond calls, imports and
// assignment shapes is deliberately left opaque.
package pyparse

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIndent
	tokDedent
	tokName
	tokNumber
	tokString
	tokOp
)

type token struct {
	kind tokenKind
	text string
	line int
}

// pythonKeywords are hard keywords; soft keywords (match, case) are
// handled contextually by the parser.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// multi-character operators, longest first.
var multiOps = []string{
	"**=", "//=", ">>=", "<<=", "...", "!=", ">=", "<=", "==", "->",
	":=", "+=", "-=", "*=", "/=", "%=", "@=", "&=", "|=", "^=",
	"**", "//", ">>", "<<",
}

type lexer struct {
	src    string
	pos    int
	line   int
	tokens []token

	indents    []int
	parenDepth int
	// atLineStart is true when the next characters are the indentation
	// of a fresh logical line.
	atLineStart bool
}

// tokenize splits src into tokens, emitting NEWLINE at the end of each
// logical line and INDENT/DEDENT pairs for block structure.
func tokenize(src string) ([]token, error) {
	lx := &lexer{
		src:         src,
		line:        1,
		indents:     []int{0},
		atLineStart: true,
	}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.tokens, nil
}

func (lx *lexer) run() error {
	for lx.pos < len(lx.src) {
		if lx.atLineStart && lx.parenDepth == 0 {
			if err := lx.handleLineStart(); err != nil {
				return err
			}
			continue
		}
		if err := lx.lexToken(); err != nil {
			return err
		}
	}

	// Close the final logical line and any open blocks.
	if !lx.atLineStart {
		lx.emit(tokNewline, "")
	}
	if lx.parenDepth > 0 {
		return fmt.Errorf("line %d: unexpected end of file inside brackets", lx.line)
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emit(tokDedent, "")
	}
	lx.emit(tokEOF, "")
	return nil
}

// handleLineStart measures indentation and emits INDENT/DEDENT tokens.
// Blank and comment-only lines produce nothing.
func (lx *lexer) handleLineStart() error {
	col := 0
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ':
			col++
			lx.pos++
		case '\t':
			col += 8 - col%8
			lx.pos++
		default:
			goto measured
		}
	}
measured:
	if lx.pos >= len(lx.src) {
		return nil
	}
	switch lx.src[lx.pos] {
	case '\n':
		lx.pos++
		lx.line++
		return nil
	case '\r':
		lx.pos++
		return nil
	case '#':
		lx.skipComment()
		return nil
	}

	cur := lx.indents[len(lx.indents)-1]
	switch {
	case col > cur:
		lx.indents = append(lx.indents, col)
		lx.emit(tokIndent, "")
	case col < cur:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.emit(tokDedent, "")
		}
		if lx.indents[len(lx.indents)-1] != col {
			return fmt.Errorf("line %d: unindent does not match any outer indentation level", lx.line)
		}
	}
	lx.atLineStart = false
	return nil
}

func (lx *lexer) lexToken() error {
	c := lx.src[lx.pos]

	switch {
	case c == ' ' || c == '\t' || c == '\r':
		lx.pos++
		return nil

	case c == '\n':
		lx.pos++
		if lx.parenDepth == 0 {
			lx.emit(tokNewline, "")
			lx.atLineStart = true
		}
		lx.line++
		return nil

	case c == '#':
		lx.skipComment()
		if lx.parenDepth == 0 {
			lx.emit(tokNewline, "")
			lx.atLineStart = true
		}
		return nil

	case c == '\\' && lx.pos+1 < len(lx.src) && (lx.src[lx.pos+1] == '\n' || lx.src[lx.pos+1] == '\r'):
		// Explicit line join.
		lx.pos++
		if lx.src[lx.pos] == '\r' {
			lx.pos++
		}
		if lx.pos < len(lx.src) && lx.src[lx.pos] == '\n' {
			lx.pos++
		}
		lx.line++
		return nil

	case isIdentStart(c):
		return lx.lexNameOrString()

	case c >= '0' && c <= '9':
		lx.lexNumber()
		return nil

	case c == '.' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] >= '0' && lx.src[lx.pos+1] <= '9':
		lx.lexNumber()
		return nil

	case c == '\'' || c == '"':
		return lx.lexString(lx.pos)

	default:
		lx.lexOp()
		return nil
	}
}

func (lx *lexer) skipComment() {
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
	if lx.pos < len(lx.src) {
		lx.pos++
		lx.line++
	}
}

// lexNameOrString handles identifiers, keywords, and prefixed string
// literals such as r"...", f"...", b"...".
func (lx *lexer) lexNameOrString() error {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}
	word := lx.src[start:lx.pos]

	// A short all-letter identifier immediately followed by a quote is a
	// string prefix.
	if len(word) <= 3 && lx.pos < len(lx.src) && (lx.src[lx.pos] == '\'' || lx.src[lx.pos] == '"') && isStringPrefix(word) {
		return lx.lexString(start)
	}

	lx.emit(tokName, word)
	return nil
}

func isStringPrefix(word string) bool {
	for i := 0; i < len(word); i++ {
		switch word[i] {
		case 'r', 'R', 'b', 'B', 'f', 'F', 'u', 'U':
		default:
			return false
		}
	}
	return len(word) > 0
}

// lexString scans a string literal beginning at start (which may include
// a prefix); lx.pos is at the opening quote.
func (lx *lexer) lexString(start int) error {
	quote := lx.src[lx.pos]
	startLine := lx.line

	triple := false
	if lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == quote && lx.src[lx.pos+2] == quote {
		triple = true
		lx.pos += 3
	} else {
		lx.pos++
	}

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\\' && lx.pos+1 < len(lx.src):
			if lx.src[lx.pos+1] == '\n' {
				lx.line++
			}
			lx.pos += 2
		case c == quote:
			if !triple {
				lx.pos++
				lx.tokens = append(lx.tokens, token{tokString, lx.src[start:lx.pos], startLine})
				return nil
			}
			if lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == quote && lx.src[lx.pos+2] == quote {
				lx.pos += 3
				lx.tokens = append(lx.tokens, token{tokString, lx.src[start:lx.pos], startLine})
				return nil
			}
			lx.pos++
		case c == '\n':
			if !triple {
				return fmt.Errorf("line %d: unterminated string literal", startLine)
			}
			lx.line++
			lx.pos++
		default:
			lx.pos++
		}
	}
	return fmt.Errorf("line %d: unterminated string literal", startLine)
}

func (lx *lexer) lexNumber() {
	start := lx.pos
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if isIdentPart(c) || c == '.' {
			lx.pos++
			continue
		}
		// Exponent sign: 1e-5, 2E+3.
		if (c == '+' || c == '-') && lx.pos > start {
			prev := lx.src[lx.pos-1]
			if (prev == 'e' || prev == 'E') && !strings.HasPrefix(lx.src[start:], "0x") && !strings.HasPrefix(lx.src[start:], "0X") {
				lx.pos++
				continue
			}
		}
		break
	}
	lx.emit(tokNumber, lx.src[start:lx.pos])
}

func (lx *lexer) lexOp() {
	rest := lx.src[lx.pos:]
	for _, op := range multiOps {
		if strings.HasPrefix(rest, op) {
			lx.emit(tokOp, op)
			lx.pos += len(op)
			return
		}
	}

	c := lx.src[lx.pos]
	switch c {
	case '(', '[', '{':
		lx.parenDepth++
	case ')', ']', '}':
		if lx.parenDepth > 0 {
			lx.parenDepth--
		}
	}
	lx.emit(tokOp, string(c))
	lx.pos++
}

func (lx *lexer) emit(kind tokenKind, text string) {
	lx.tokens = append(lx.tokens, token{kind, text, lx.line})
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
