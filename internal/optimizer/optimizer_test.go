package optimizer

import (
	"testing"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(n int64) *ast.Number          { return &ast.Number{Value: field.FromInt64(n)} }
func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func TestRemoveSynonyms(t *testing.T) {
	fn := &ast.Function{
		ID:        "foo",
		Arguments: []ast.Parameter{{Name: "a"}},
		Statements: []ast.Stmt{
			&ast.DefinitionStmt{Name: "b", Rhs: ident("a")},
			&ast.DefinitionStmt{Name: "c", Rhs: ident("b")},
			&ast.ReturnStmt{Exprs: []ast.Expr{ident("c")}},
		},
		ReturnCount: 1,
	}

	out, err := New().OptimizeFunction(fn)
	require.NoError(t, err)

	assert.Equal(t, []ast.Parameter{{Name: "_0"}}, out.Arguments)
	require.Len(t, out.Statements, 1)
	ret, ok := out.Statements[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "_0", ret.Exprs[0].(*ast.Identifier).Name)
}

func TestRemoveMultipleSynonyms(t *testing.T) {
	fn := &ast.Function{
		ID:        "foo",
		Arguments: []ast.Parameter{{Name: "a"}},
		Statements: []ast.Stmt{
			&ast.DefinitionStmt{Name: "b", Rhs: ident("a")},
			&ast.DefinitionStmt{Name: "d", Rhs: num(1)},
			&ast.DefinitionStmt{Name: "c", Rhs: ident("b")},
			&ast.DefinitionStmt{Name: "e", Rhs: ident("d")},
			&ast.ReturnStmt{Exprs: []ast.Expr{ident("c"), ident("e")}},
		},
		ReturnCount: 2,
	}

	out, err := New().OptimizeFunction(fn)
	require.NoError(t, err)

	require.Len(t, out.Statements, 2)
	def, ok := out.Statements[0].(*ast.DefinitionStmt)
	require.True(t, ok)
	assert.Equal(t, "_1", def.Name)
	assert.True(t, def.Rhs.(*ast.Number).Value.Equal(field.FromInt64(1)))

	ret, ok := out.Statements[1].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "_0", ret.Exprs[0].(*ast.Identifier).Name)
	assert.Equal(t, "_1", ret.Exprs[1].(*ast.Identifier).Name)
}

func TestOptimizeProgramKeepsOnlyMain(t *testing.T) {
	helper := &ast.Function{ID: "helper_i0o1_1_", Statements: []ast.Stmt{&ast.ReturnStmt{Exprs: []ast.Expr{num(1)}}}, ReturnCount: 1}
	main := &ast.Function{ID: "main", Statements: []ast.Stmt{&ast.ReturnStmt{Exprs: []ast.Expr{num(1)}}}, ReturnCount: 1}

	out, err := OptimizeProgram(&ast.Program{Functions: []*ast.Function{helper, main}})
	require.NoError(t, err)
	require.Len(t, out.Functions, 1)
	assert.Equal(t, "main", out.Functions[0].ID)
}
