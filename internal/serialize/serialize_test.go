package serialize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
)

func sampleProgram() *ast.Program {
	main := &ast.Function{
		ID:        "main",
		Arguments: []ast.Parameter{{Name: "x"}, {Name: "y", Private: true}},
		Statements: []ast.Stmt{
			&ast.DefinitionStmt{Name: "sym_0", Rhs: ast.Add(&ast.Identifier{Name: "x"}, &ast.Identifier{Name: "y"})},
			&ast.ConditionStmt{Left: &ast.Identifier{Name: "sym_0"}, Right: &ast.Number{Value: field.FromInt64(3)}},
			&ast.ForStmt{
				Var:   "i",
				Start: field.FromInt64(0),
				End:   field.FromInt64(2),
				Body: []ast.Stmt{
					&ast.CompilerStmt{Name: "hint", Rhs: &ast.IfElseExpr{
						Cond: ast.Eq(&ast.Identifier{Name: "sym_0"}, &ast.Number{Value: field.FromInt64(0)}),
						Then: &ast.Number{Value: field.FromInt64(1)},
						Else: &ast.Number{Value: field.FromInt64(0)},
					}},
				},
			},
			&ast.MultipleDefinitionStmt{
				Names: []string{"a", "b"},
				Call:  &ast.CallExpr{Callee: "split", Args: []ast.Expr{&ast.Identifier{Name: "sym_0"}}},
			},
			&ast.ReturnStmt{Exprs: []ast.Expr{&ast.Identifier{Name: "a"}}},
		},
		ReturnCount: 1,
	}
	return &ast.Program{Functions: []*ast.Function{main}}
}

func TestWriteReadProgramRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.flat")
	prog := sampleProgram()

	require.NoError(t, WriteProgram(path, prog))
	got, err := ReadProgram(path)
	require.NoError(t, err)

	require.Len(t, got.Functions, 1)
	fn := got.Functions[0]
	assert.Equal(t, "main", fn.ID)
	assert.Equal(t, 1, fn.ReturnCount)
	require.Len(t, fn.Arguments, 2)
	assert.Equal(t, "y", fn.Arguments[1].Name)
	assert.True(t, fn.Arguments[1].Private)

	require.Len(t, fn.Statements, 5)

	def, ok := fn.Statements[0].(*ast.DefinitionStmt)
	require.True(t, ok)
	assert.Equal(t, "sym_0", def.Name)
	bin, ok := def.Rhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)

	cond, ok := fn.Statements[1].(*ast.ConditionStmt)
	require.True(t, ok)
	assert.Equal(t, "sym_0", cond.Left.(*ast.Identifier).Name)

	forStmt, ok := fn.Statements[2].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Var)
	assert.True(t, forStmt.Start.Equal(field.FromInt64(0)))
	assert.True(t, forStmt.End.Equal(field.FromInt64(2)))
	require.Len(t, forStmt.Body, 1)
	compiler, ok := forStmt.Body[0].(*ast.CompilerStmt)
	require.True(t, ok)
	ifElse, ok := compiler.Rhs.(*ast.IfElseExpr)
	require.True(t, ok)
	assert.Equal(t, ast.CondEq, ifElse.Cond.Kind)

	multi, ok := fn.Statements[3].(*ast.MultipleDefinitionStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, multi.Names)
	assert.Equal(t, "split", multi.Call.Callee)

	ret, ok := fn.Statements[4].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "a", ret.Exprs[0].(*ast.Identifier).Name)
}

func TestReadProgramRejectsMissingFile(t *testing.T) {
	_, err := ReadProgram(filepath.Join(t.TempDir(), "missing.flat"))
	assert.Error(t, err)
}
