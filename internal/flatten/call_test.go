package flatten

import (
	"testing"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenFunctionCallMissingCalleeIsInputError(t *testing.T) {
	c := newContext(field.Bits)
	_, err := c.flattenFunctionCall("nope", 1, nil)
	require.Error(t, err)
	ferr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindInput, ferr.Kind)
}

func TestFlattenFunctionCallTwoDistinctSitesDoNotShareNames(t *testing.T) {
	id := &ast.Function{
		ID:          "id",
		Arguments:   []ast.Parameter{{Name: "v"}},
		Statements:  []ast.Stmt{&ast.ReturnStmt{Exprs: []ast.Expr{ident("v")}}},
		ReturnCount: 1,
	}
	main := &ast.Function{
		ID: "main",
		Statements: []ast.Stmt{
			&ast.DefinitionStmt{Name: "a", Rhs: &ast.CallExpr{Callee: "id", Args: []ast.Expr{num(1)}}},
			&ast.DefinitionStmt{Name: "b", Rhs: &ast.CallExpr{Callee: "id", Args: []ast.Expr{num(2)}}},
		},
	}

	out, err := New(field.Bits).FlattenProgram(&ast.Program{Functions: []*ast.Function{id, main}})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, s := range out.Functions[1].Statements {
		d, ok := s.(*ast.DefinitionStmt)
		if !ok {
			continue
		}
		assert.False(t, seen[d.Name], "duplicate synthetic name %q across call sites", d.Name)
		seen[d.Name] = true
	}
	assert.Contains(t, seen, "id_i1o1_1_param_0")
	assert.Contains(t, seen, "id_i1o1_2_param_0")
}
