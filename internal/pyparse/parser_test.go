package pyparse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyreviewhq/pyreview/internal/pyast"
)

func parseOne[T pyast.Node](t *testing.T, src string) T {
	t.Helper()
	mod, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)
	node, ok := mod.Body[0].(T)
	require.True(t, ok, "unexpected node type %T", mod.Body[0])
	return node
}

func TestParse_FunctionDef(t *testing.T) {
	src := `def greet(name: str, count: int = 1) -> str:
    """Say hello."""
    return "hi" * count
`
	fn := parseOne[*pyast.FunctionDef](t, src)

	require.Equal(t, "greet", fn.Name)
	require.False(t, fn.Async)
	require.Equal(t, 1, fn.Line)
	require.Equal(t, 3, fn.EndLine)
	require.Equal(t, "str", fn.Returns)
	require.Equal(t, "Say hello.", fn.Docstring)

	require.Len(t, fn.Params, 2)
	require.Equal(t, "name", fn.Params[0].Name)
	require.Equal(t, "str", fn.Params[0].Annotation)
	require.Equal(t, "count", fn.Params[1].Name)
	require.Equal(t, "int", fn.Params[1].Annotation)

	require.Equal(t, "def greet(name: str, count: int) -> str", pyast.FunctionSignature(fn))
}

func TestParse_Variadics(t *testing.T) {
	src := `def call(fn, *args: int, **kwargs):
    pass
`
	fn := parseOne[*pyast.FunctionDef](t, src)

	require.Len(t, fn.Params, 1)
	require.NotNil(t, fn.VarArg)
	require.Equal(t, "args", fn.VarArg.Name)
	require.Equal(t, "int", fn.VarArg.Annotation)
	require.NotNil(t, fn.KwArg)
	require.Equal(t, "kwargs", fn.KwArg.Name)

	require.Equal(t, "def call(fn, *args: int, **kwargs)", pyast.FunctionSignature(fn))
}

func TestParse_KeywordOnlyParamsNotRecorded(t *testing.T) {
	src := `def f(a, *, strict=False):
    pass
`
	fn := parseOne[*pyast.FunctionDef](t, src)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "a", fn.Params[0].Name)
	require.Nil(t, fn.VarArg)
}

func TestParse_AsyncFunction(t *testing.T) {
	src := `async def fetch(url):
    await client.get(url)
`
	fn := parseOne[*pyast.FunctionDef](t, src)
	require.True(t, fn.Async)
	require.Equal(t, "async def fetch(url)", pyast.FunctionSignature(fn))

	var calls []string
	pyast.Walk(fn, func(n pyast.Node) bool {
		if c, ok := n.(*pyast.Call); ok {
			calls = append(calls, c.Name)
		}
		return true
	})
	require.Equal(t, []string{"get"}, calls)
}

func TestParse_ClassDef(t *testing.T) {
	src := `class Handler(Base, mixin.Mixin, metaclass=Meta):
    """Handles things."""

    def process(self, item):
        return transform(item)

    def _internal(self):
        pass
`
	cls := parseOne[*pyast.ClassDef](t, src)

	require.Equal(t, "Handler", cls.Name)
	require.Equal(t, []string{"Base", "mixin.Mixin"}, cls.Bases)
	require.Equal(t, "Handles things.", cls.Docstring)
	require.Equal(t, 1, cls.Line)
	require.Equal(t, 8, cls.EndLine)
	require.Equal(t, "class Handler(Base, mixin.Mixin)", pyast.ClassSignature(cls))

	require.Len(t, cls.Body, 2)
	process, ok := cls.Body[0].(*pyast.FunctionDef)
	require.True(t, ok)
	require.Equal(t, "process", process.Name)
}

func TestParse_ClassWithoutBases(t *testing.T) {
	src := `class Config:
    pass
`
	cls := parseOne[*pyast.ClassDef](t, src)
	require.Empty(t, cls.Bases)
	require.Equal(t, "class Config", pyast.ClassSignature(cls))
}

func TestParse_Imports(t *testing.T) {
	src := `import os
import numpy as np, pandas
from collections.abc import Mapping
from . import helpers
from .models import User
`
	mod, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, mod.Body, 5)

	imp := mod.Body[0].(*pyast.Import)
	require.Equal(t, []string{"os"}, imp.Names)

	imp = mod.Body[1].(*pyast.Import)
	require.Equal(t, []string{"numpy", "pandas"}, imp.Names)

	from := mod.Body[2].(*pyast.ImportFrom)
	require.Equal(t, "collections.abc", from.Module)

	from = mod.Body[3].(*pyast.ImportFrom)
	require.Equal(t, "", from.Module)

	from = mod.Body[4].(*pyast.ImportFrom)
	require.Equal(t, "models", from.Module)
}

func TestParse_Assignments(t *testing.T) {
	src := `count = 0
name = "bob"
ratio = 1.5
flag = True
nothing = None
items = [1, 2]
mapping = {"a": 1}
unique = {1, 2}
pair = (1, 2)
obj = Handler()
total += 1
hinted: int = 5
a, b = 1, 2
`
	mod, err := Parse(src)
	require.NoError(t, err)

	byName := map[string]pyast.Value{}
	for _, n := range mod.Body {
		if asn, ok := n.(*pyast.Assign); ok {
			for _, tgt := range asn.Targets {
				byName[tgt] = asn.Value
			}
		}
	}

	require.Equal(t, pyast.Value{Kind: pyast.ValueLiteral, TypeName: "int"}, byName["count"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueLiteral, TypeName: "str"}, byName["name"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueLiteral, TypeName: "float"}, byName["ratio"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueLiteral, TypeName: "bool"}, byName["flag"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueLiteral, TypeName: "NoneType"}, byName["nothing"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueList}, byName["items"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueDict}, byName["mapping"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueSet}, byName["unique"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueTuple}, byName["pair"])
	require.Equal(t, pyast.Value{Kind: pyast.ValueCall, TypeName: "Handler"}, byName["obj"])

	// Augmented, annotated, and tuple-target assignments are not plain
	// assignments.
	require.NotContains(t, byName, "total")
	require.NotContains(t, byName, "hinted")
	require.NotContains(t, byName, "a")
}

func TestParse_AssignmentSource(t *testing.T) {
	src := "result = compute(x, y) + 1\n"
	mod, err := Parse(src)
	require.NoError(t, err)

	asn := mod.Body[0].(*pyast.Assign)
	require.Equal(t, []string{"result"}, asn.Targets)
	require.Equal(t, "result = compute(x, y) + 1", asn.Source)
}

func TestParse_ChainedAssignment(t *testing.T) {
	src := "x = y = []\n"
	mod, err := Parse(src)
	require.NoError(t, err)

	asn := mod.Body[0].(*pyast.Assign)
	require.Equal(t, []string{"x", "y"}, asn.Targets)
	require.Equal(t, pyast.ValueList, asn.Value.Kind)
}

func TestParse_CallsResolveToTrailingName(t *testing.T) {
	src := `result = compute(load(path), key=fn)
obj.method()
`
	mod, err := Parse(src)
	require.NoError(t, err)

	var calls []string
	pyast.Walk(mod, func(n pyast.Node) bool {
		if c, ok := n.(*pyast.Call); ok {
			calls = append(calls, c.Name)
		}
		return true
	})
	require.Equal(t, []string{"compute", "load", "method"}, calls)
}

func TestParse_DecoratorCallsAttachToBody(t *testing.T) {
	src := `@app.route("/items")
def handler():
    pass
`
	fn := parseOne[*pyast.FunctionDef](t, src)
	require.Equal(t, "handler", fn.Name)

	call, ok := fn.Body[0].(*pyast.Call)
	require.True(t, ok)
	require.Equal(t, "route", call.Name)
}

func TestParse_BlockHeadersKeepCalls(t *testing.T) {
	src := `def outer():
    if check():
        run()
    for i in range(3):
        step(i)
`
	fn := parseOne[*pyast.FunctionDef](t, src)

	seen := map[string]bool{}
	pyast.Walk(fn, func(n pyast.Node) bool {
		if c, ok := n.(*pyast.Call); ok {
			seen[c.Name] = true
		}
		return true
	})
	for _, want := range []string{"check", "run", "range", "step"} {
		require.True(t, seen[want], "missing call %q", want)
	}
}

func TestParse_MatchAsVariable(t *testing.T) {
	src := "match = compile(pattern)\n"
	mod, err := Parse(src)
	require.NoError(t, err)

	asn, ok := mod.Body[0].(*pyast.Assign)
	require.True(t, ok)
	require.Equal(t, []string{"match"}, asn.Targets)
}

func TestParse_ModuleDocstringSkipped(t *testing.T) {
	src := `"""Module docs."""

import os
`
	mod, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)
	_, ok := mod.Body[0].(*pyast.Import)
	require.True(t, ok)
}

func TestParse_EmptyDocstringIsMissing(t *testing.T) {
	src := `def f():
    ""
`
	fn := parseOne[*pyast.FunctionDef](t, src)
	require.Equal(t, "", fn.Docstring)
}

func TestParse_MultilineDocstringCleaned(t *testing.T) {
	src := `def f():
    """First line.

        Indented detail.
    """
    pass
`
	fn := parseOne[*pyast.FunctionDef](t, src)
	require.Equal(t, "First line.\n\nIndented detail.", fn.Docstring)
}

func TestParse_FStringAssignmentIsOther(t *testing.T) {
	src := "msg = f\"hello {name}\"\n"
	mod, err := Parse(src)
	require.NoError(t, err)

	asn := mod.Body[0].(*pyast.Assign)
	require.Equal(t, pyast.ValueOther, asn.Value.Kind)
}

func TestParse_SyntaxErrorReported(t *testing.T) {
	src := `def broken(:
    pass
`
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParse_BadDedentReported(t *testing.T) {
	src := "def f():\n        x = 1\n    y = 2\n"
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParse_ImplicitContinuationInsideBrackets(t *testing.T) {
	src := `values = [
    1,
    2,
]
`
	mod, err := Parse(src)
	require.NoError(t, err)
	asn := mod.Body[0].(*pyast.Assign)
	require.Equal(t, pyast.ValueList, asn.Value.Kind)
}
