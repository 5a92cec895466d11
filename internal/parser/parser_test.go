package parser

import (
	"testing"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleFunction(t *testing.T) {
	src := `
def main(x, private y):
	a = x + y
	return a
`
	prog, err := Parse("test.zk", src)
	require.NoError(t, err)
	require.Len(t, prog.Functions, 1)

	fn := prog.Functions[0]
	assert.Equal(t, "main", fn.ID)
	require.Len(t, fn.Arguments, 2)
	assert.Equal(t, "x", fn.Arguments[0].Name)
	assert.False(t, fn.Arguments[0].Private)
	assert.Equal(t, "y", fn.Arguments[1].Name)
	assert.True(t, fn.Arguments[1].Private)

	require.Len(t, fn.Statements, 2)
	def, ok := fn.Statements[0].(*ast.DefinitionStmt)
	require.True(t, ok)
	assert.Equal(t, "a", def.Name)
}

func TestParseIfElseAndCall(t *testing.T) {
	src := `
def pick(x):
	a = if x < 10 then dup(x) else x fi
	return a
`
	prog, err := Parse("test.zk", src)
	require.NoError(t, err)
	def := prog.Functions[0].Statements[0].(*ast.DefinitionStmt)
	ifExpr, ok := def.Rhs.(*ast.IfElseExpr)
	require.True(t, ok)
	assert.Equal(t, ast.CondLt, ifExpr.Cond.Kind)
	call, ok := ifExpr.Then.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "dup", call.Callee)
}

func TestParseMultipleAssignmentRequiresCall(t *testing.T) {
	src := `
def bad():
	a, b = 1 + 2
	return a
`
	_, err := Parse("test.zk", src)
	assert.Error(t, err)
}

func TestParseForLoop(t *testing.T) {
	src := `
def main():
	x = 0
	for i in 0..3 do
		x = x + i
	done
	return x
`
	prog, err := Parse("test.zk", src)
	require.NoError(t, err)
	forStmt, ok := prog.Functions[0].Statements[1].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Var)
	require.Len(t, forStmt.Body, 1)
}
