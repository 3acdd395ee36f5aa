package pyparse

import (
	"fmt"
	"strings"

	"github.com/pyreviewhq/pyreview/internal/pyast"
)

// Parse parses Python source text into a pyast.Module. A malformed file
// returns an error describing the first problem; callers treat that as a
// per-file condition and skip the file.
func Parse(src string) (*pyast.Module, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	p.skipDocstring() // module docstring carries no extractable facts
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if !p.at(tokEOF) {
		return nil, fmt.Errorf("line %d: unexpected %q", p.peek().line, p.peek().text)
	}
	return &pyast.Module{Body: body}, nil
}

// blockKeywords start compound statements whose structure we keep only
// as opaque blocks.
var blockKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "for": true, "while": true,
	"with": true, "try": true, "except": true, "finally": true,
	"match": true, "case": true,
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) at(k tokenKind) bool { return p.toks[p.pos].kind == k }

func (p *parser) atName(text string) bool {
	t := p.peek()
	return t.kind == tokName && t.text == text
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expectOp(text string) error {
	t := p.peek()
	if t.kind != tokOp || t.text != text {
		return fmt.Errorf("line %d: expected %q, found %q", t.line, text, t.text)
	}
	p.pos++
	return nil
}

// lastConsumedLine reports the line of the most recently consumed token.
func (p *parser) lastConsumedLine() int {
	if p.pos == 0 {
		return 1
	}
	return p.toks[p.pos-1].line
}

// parseBlock parses statements until a DEDENT or EOF, which it leaves
// for the caller to consume.
func (p *parser) parseBlock() ([]pyast.Node, error) {
	var body []pyast.Node
	for {
		switch p.peek().kind {
		case tokEOF, tokDedent:
			return body, nil
		case tokNewline:
			p.next()
			continue
		case tokIndent:
			return nil, fmt.Errorf("line %d: unexpected indent", p.peek().line)
		}

		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
	}
}

// parseStatement parses one statement, which may expand to several nodes
// (decorator call facts, semicolon-separated simple statements).
func (p *parser) parseStatement() ([]pyast.Node, error) {
	var lead []pyast.Node

	// Decorators: record their call facts, then attach them to the
	// decorated definition's body so subtree walks observe them.
	for p.peek().kind == tokOp && p.peek().text == "@" {
		p.next()
		span := p.collectUntilNewline()
		lead = append(lead, callsInSpan(span)...)
		if p.at(tokNewline) {
			p.next()
		}
	}

	t := p.peek()
	switch {
	case t.kind == tokName && t.text == "def":
		fn, err := p.parseFunctionDef(false)
		if err != nil {
			return nil, err
		}
		fn.Body = append(lead, fn.Body...)
		return []pyast.Node{fn}, nil

	case t.kind == tokName && t.text == "async":
		// async def / async for / async with.
		if p.toks[p.pos+1].kind == tokName && p.toks[p.pos+1].text == "def" {
			p.next()
			fn, err := p.parseFunctionDef(true)
			if err != nil {
				return nil, err
			}
			fn.Body = append(lead, fn.Body...)
			return []pyast.Node{fn}, nil
		}
		p.next()
		return p.parseBlockStmt()

	case t.kind == tokName && t.text == "class":
		cls, err := p.parseClassDef()
		if err != nil {
			return nil, err
		}
		cls.Body = append(lead, cls.Body...)
		return []pyast.Node{cls}, nil

	case t.kind == tokName && t.text == "import":
		return p.parseImport()

	case t.kind == tokName && t.text == "from":
		return p.parseImportFrom()

	case t.kind == tokName && blockKeywords[t.text]:
		// match and case are soft keywords; "match = 5" is an assignment.
		if (t.text == "match" || t.text == "case") && !p.softBlockHeader() {
			return p.parseSimpleLine()
		}
		return p.parseBlockStmt()

	default:
		return p.parseSimpleLine()
	}
}

// collectUntilNewline consumes tokens up to (not including) the next
// NEWLINE, EOF, INDENT or DEDENT and returns them.
func (p *parser) collectUntilNewline() []token {
	var span []token
	for {
		switch p.peek().kind {
		case tokNewline, tokEOF, tokDedent, tokIndent:
			return span
		}
		span = append(span, p.next())
	}
}

// skipDocstring consumes a leading statement made up solely of string
// literals, returning its decoded, cleaned value. It returns "" when the
// next statement is anything else.
func (p *parser) skipDocstring() string {
	if !p.at(tokString) {
		return ""
	}
	j := p.pos
	for p.toks[j].kind == tokString {
		j++
	}
	switch p.toks[j].kind {
	case tokNewline, tokEOF, tokDedent:
	default:
		return ""
	}

	var sb strings.Builder
	for p.at(tokString) {
		sb.WriteString(decodeStringLiteral(p.next().text))
	}
	if p.at(tokNewline) {
		p.next()
	}
	return pyast.CleanDocstring(sb.String())
}

// parseSuite parses the statements following a ":", either an inline
// simple-statement list or an indented block. It returns the docstring
// (if the suite opens with one), the body, and the last covered line.
func (p *parser) parseSuite(headerLine int) (string, []pyast.Node, int, error) {
	if !p.at(tokNewline) {
		// Inline suite on the header line.
		doc := p.skipDocstring()
		body, err := p.parseSimpleLine()
		if err != nil {
			return "", nil, 0, err
		}
		return doc, body, p.lastConsumedLine(), nil
	}
	p.next() // NEWLINE

	if !p.at(tokIndent) {
		return "", nil, 0, fmt.Errorf("line %d: expected an indented block", p.peek().line)
	}
	p.next()

	doc := p.skipDocstring()
	end := p.lastConsumedLine()
	var body []pyast.Node
	for {
		switch p.peek().kind {
		case tokDedent:
			p.next()
			return doc, body, end, nil
		case tokEOF:
			return doc, body, end, nil
		case tokNewline:
			p.next()
			continue
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return "", nil, 0, err
		}
		body = append(body, stmts...)
		if line := p.lastConsumedLine(); line > end {
			end = line
		}
	}
}

func (p *parser) parseFunctionDef(async bool) (*pyast.FunctionDef, error) {
	defTok := p.next() // def
	nameTok := p.next()
	if nameTok.kind != tokName {
		return nil, fmt.Errorf("line %d: expected function name", nameTok.line)
	}

	fn := &pyast.FunctionDef{
		Name:  nameTok.text,
		Async: async,
		Line:  defTok.line,
	}

	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	if err := p.parseParams(fn); err != nil {
		return nil, err
	}

	if p.peek().kind == tokOp && p.peek().text == "->" {
		p.next()
		span := p.spanUntil(map[string]bool{":": true})
		fn.Returns = joinTokens(span)
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}

	doc, body, end, err := p.parseSuite(p.lastConsumedLine())
	if err != nil {
		return nil, err
	}
	fn.Docstring = doc
	fn.Body = body
	fn.EndLine = end
	if fn.EndLine < fn.Line {
		fn.EndLine = fn.Line
	}
	return fn, nil
}

// parseParams parses the parameter list up to and including the closing
// ")". Keyword-only parameters after a bare "*" are consumed but not
// recorded, matching the fact model.
func (p *parser) parseParams(fn *pyast.FunctionDef) error {
	afterStar := false
	for {
		t := p.peek()
		if t.kind == tokOp && t.text == ")" {
			p.next()
			return nil
		}
		if t.kind == tokEOF {
			return fmt.Errorf("line %d: unterminated parameter list", t.line)
		}

		switch {
		case t.kind == tokOp && t.text == "*":
			p.next()
			if p.peek().kind == tokName {
				prm, err := p.parseOneParam()
				if err != nil {
					return err
				}
				fn.VarArg = prm
			} else {
				afterStar = true
			}
		case t.kind == tokOp && t.text == "**":
			p.next()
			prm, err := p.parseOneParam()
			if err != nil {
				return err
			}
			fn.KwArg = prm
		case t.kind == tokOp && t.text == "/":
			p.next()
		case t.kind == tokName:
			prm, err := p.parseOneParam()
			if err != nil {
				return err
			}
			if !afterStar {
				fn.Params = append(fn.Params, *prm)
			}
		default:
			return fmt.Errorf("line %d: unexpected %q in parameter list", t.line, t.text)
		}

		if p.peek().kind == tokOp && p.peek().text == "," {
			p.next()
		}
	}
}

// parseOneParam parses "name[: annotation][= default]" and leaves the
// following "," or ")" unconsumed.
func (p *parser) parseOneParam() (*pyast.Param, error) {
	nameTok := p.next()
	if nameTok.kind != tokName {
		return nil, fmt.Errorf("line %d: expected parameter name", nameTok.line)
	}
	prm := &pyast.Param{Name: nameTok.text, Line: nameTok.line}

	if p.peek().kind == tokOp && p.peek().text == ":" {
		p.next()
		span := p.spanUntil(map[string]bool{",": true, ")": true, "=": true})
		prm.Annotation = joinTokens(span)
	}
	if p.peek().kind == tokOp && p.peek().text == "=" {
		p.next()
		p.spanUntil(map[string]bool{",": true, ")": true})
	}
	return prm, nil
}

// spanUntil collects tokens until one of the stop operators appears at
// the current bracket depth. The stop token is left unconsumed.
func (p *parser) spanUntil(stops map[string]bool) []token {
	depth := 0
	var span []token
	for {
		t := p.peek()
		switch t.kind {
		case tokEOF, tokNewline, tokIndent, tokDedent:
			return span
		case tokOp:
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 && stops[t.text] {
					return span
				}
				depth--
			default:
				if depth == 0 && stops[t.text] {
					return span
				}
			}
		}
		span = append(span, p.next())
	}
}

func (p *parser) parseClassDef() (*pyast.ClassDef, error) {
	classTok := p.next() // class
	nameTok := p.next()
	if nameTok.kind != tokName {
		return nil, fmt.Errorf("line %d: expected class name", nameTok.line)
	}
	cls := &pyast.ClassDef{Name: nameTok.text, Line: classTok.line}

	if p.peek().kind == tokOp && p.peek().text == "(" {
		p.next()
		for {
			t := p.peek()
			if t.kind == tokOp && t.text == ")" {
				p.next()
				break
			}
			if t.kind == tokEOF {
				return nil, fmt.Errorf("line %d: unterminated base-class list", t.line)
			}
			span := p.spanUntil(map[string]bool{",": true, ")": true})
			// Keyword arguments such as metaclass= are not bases.
			if base := joinTokens(span); base != "" && !isKeywordArg(span) {
				cls.Bases = append(cls.Bases, base)
			}
			if p.peek().kind == tokOp && p.peek().text == "," {
				p.next()
			}
		}
	}

	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	doc, body, end, err := p.parseSuite(p.lastConsumedLine())
	if err != nil {
		return nil, err
	}
	cls.Docstring = doc
	cls.Body = body
	cls.EndLine = end
	if cls.EndLine < cls.Line {
		cls.EndLine = cls.Line
	}
	return cls, nil
}

func isKeywordArg(span []token) bool {
	return len(span) >= 2 && span[0].kind == tokName &&
		span[1].kind == tokOp && span[1].text == "="
}

func (p *parser) parseImport() ([]pyast.Node, error) {
	impTok := p.next() // import
	imp := &pyast.Import{Line: impTok.line}

	for {
		name, ok := p.parseDottedName()
		if !ok {
			break
		}
		imp.Names = append(imp.Names, name)
		if p.atName("as") {
			p.next()
			p.next() // alias
		}
		if p.peek().kind == tokOp && p.peek().text == "," {
			p.next()
			continue
		}
		break
	}
	p.finishLine()
	return []pyast.Node{imp}, nil
}

func (p *parser) parseImportFrom() ([]pyast.Node, error) {
	fromTok := p.next() // from
	// Leading relative dots.
	for p.peek().kind == tokOp && (p.peek().text == "." || p.peek().text == "...") {
		p.next()
	}
	module := ""
	if p.peek().kind == tokName && p.peek().text != "import" {
		module, _ = p.parseDottedName()
	}
	// The imported names themselves are not facts; discard the rest.
	p.finishLine()
	return []pyast.Node{&pyast.ImportFrom{Module: module, Line: fromTok.line}}, nil
}

func (p *parser) parseDottedName() (string, bool) {
	if p.peek().kind != tokName {
		return "", false
	}
	var sb strings.Builder
	sb.WriteString(p.next().text)
	for p.peek().kind == tokOp && p.peek().text == "." {
		if p.toks[p.pos+1].kind != tokName {
			break
		}
		p.next()
		sb.WriteString(".")
		sb.WriteString(p.next().text)
	}
	return sb.String(), true
}

// softBlockHeader reports whether the current logical line ends with a
// ":" at bracket depth zero, which distinguishes a match/case statement
// from a use of the soft keyword as a plain name.
func (p *parser) softBlockHeader() bool {
	depth := 0
	last := ""
	for i := p.pos; ; i++ {
		t := p.toks[i]
		switch t.kind {
		case tokNewline, tokEOF, tokIndent, tokDedent:
			return last == ":"
		case tokOp:
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
			if depth == 0 {
				last = t.text
			} else {
				last = ""
			}
		default:
			last = ""
		}
	}
}

// finishLine discards tokens through the end of the current logical line.
func (p *parser) finishLine() {
	p.collectUntilNewline()
	if p.at(tokNewline) {
		p.next()
	}
}

// parseBlockStmt parses a compound statement (if/for/while/with/try,
// match and the async loop forms) into an opaque Block, keeping call
// facts from the header.
func (p *parser) parseBlockStmt() ([]pyast.Node, error) {
	start := p.peek().line
	header := p.spanUntil(map[string]bool{":": true})
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	_, body, end, err := p.parseSuite(p.lastConsumedLine())
	if err != nil {
		return nil, err
	}
	blk := &pyast.Block{
		Body:    append(callsInSpan(header), body...),
		Line:    start,
		EndLine: end,
	}
	if blk.EndLine < blk.Line {
		blk.EndLine = blk.Line
	}
	return []pyast.Node{blk}, nil
}

// parseSimpleLine parses one physical line of simple statements,
// splitting on ";".
func (p *parser) parseSimpleLine() ([]pyast.Node, error) {
	span := p.collectUntilNewline()
	if p.at(tokNewline) {
		p.next()
	}

	var nodes []pyast.Node
	for _, stmt := range splitOnOp(span, ";") {
		if len(stmt) == 0 {
			continue
		}
		if asn := assignFromSpan(stmt); asn != nil {
			nodes = append(nodes, asn)
		}
		nodes = append(nodes, callsInSpan(stmt)...)
	}
	return nodes, nil
}

// splitOnOp splits a token span on an operator at bracket depth zero.
func splitOnOp(span []token, op string) [][]token {
	var parts [][]token
	depth := 0
	start := 0
	for i, t := range span {
		if t.kind != tokOp {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case op:
			if depth == 0 {
				parts = append(parts, span[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, span[start:])
	return parts
}

// callsInSpan finds every NAME "(" pair at any depth and records it as a
// call of that name. Keywords never qualify, so "if (x):" and
// "return (y)" are not calls. Attribute calls naturally resolve to the
// trailing identifier.
func callsInSpan(span []token) []pyast.Node {
	var nodes []pyast.Node
	for i := 0; i+1 < len(span); i++ {
		if span[i].kind != tokName || pythonKeywords[span[i].text] {
			continue
		}
		if span[i+1].kind == tokOp && span[i+1].text == "(" {
			nodes = append(nodes, &pyast.Call{Name: span[i].text, Line: span[i].line})
		}
	}
	return nodes
}
