package flatten

import (
	"testing"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(n int64) *ast.Number      { return &ast.Number{Value: field.FromInt64(n)} }
func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

// S1. foo() = return 1; main() = a = foo().
func TestScenarioSingleReturnCall(t *testing.T) {
	foo := &ast.Function{
		ID:          "foo",
		Statements:  []ast.Stmt{&ast.ReturnStmt{Exprs: []ast.Expr{num(1)}}},
		ReturnCount: 1,
	}
	main := &ast.Function{
		ID: "main",
		Statements: []ast.Stmt{
			&ast.DefinitionStmt{Name: "a", Rhs: &ast.CallExpr{Callee: "foo"}},
		},
		ReturnCount: 0,
	}

	out, err := New(field.Bits).FlattenProgram(&ast.Program{Functions: []*ast.Function{foo, main}})
	require.NoError(t, err)

	flatMain := out.Functions[1]
	require.NotEmpty(t, flatMain.Statements)
	def, ok := flatMain.Statements[0].(*ast.DefinitionStmt)
	require.True(t, ok)
	assert.Equal(t, "a", def.Name)
	n, ok := def.Rhs.(*ast.Number)
	require.True(t, ok)
	assert.True(t, n.Value.Equal(field.FromInt64(1)))
}

// S2. dup(x) = return x, x; main() = a, b = dup(2).
func TestScenarioMultipleReturnWithLiteralArg(t *testing.T) {
	dup := &ast.Function{
		ID:          "dup",
		Arguments:   []ast.Parameter{{Name: "x"}},
		Statements:  []ast.Stmt{&ast.ReturnStmt{Exprs: []ast.Expr{ident("x"), ident("x")}}},
		ReturnCount: 2,
	}
	main := &ast.Function{
		ID: "main",
		Statements: []ast.Stmt{
			&ast.MultipleDefinitionStmt{
				Names: []string{"a", "b"},
				Call:  &ast.CallExpr{Callee: "dup", Args: []ast.Expr{num(2)}},
			},
		},
	}

	out, err := New(field.Bits).FlattenProgram(&ast.Program{Functions: []*ast.Function{dup, main}})
	require.NoError(t, err)

	flatMain := out.Functions[1]
	require.NotEmpty(t, flatMain.Statements)
	first, ok := flatMain.Statements[0].(*ast.DefinitionStmt)
	require.True(t, ok)
	assert.Equal(t, "dup_i1o2_1_param_0", first.Name)
	n, ok := first.Rhs.(*ast.Number)
	require.True(t, ok)
	assert.True(t, n.Value.Equal(field.FromInt64(2)))

	var foundA, foundB bool
	for _, s := range flatMain.Statements {
		d, ok := s.(*ast.DefinitionStmt)
		if !ok {
			continue
		}
		id, ok := d.Rhs.(*ast.Identifier)
		if !ok || id.Name != "dup_i1o2_1_param_0" {
			continue
		}
		switch d.Name {
		case "a":
			foundA = true
		case "b":
			foundB = true
		}
	}
	assert.True(t, foundA)
	assert.True(t, foundB)
}

// S3. foo() = return 1, 2; main() = a, b = foo().
func TestScenarioMultiReturnWithNumericReturns(t *testing.T) {
	foo := &ast.Function{
		ID:          "foo",
		Statements:  []ast.Stmt{&ast.ReturnStmt{Exprs: []ast.Expr{num(1), num(2)}}},
		ReturnCount: 2,
	}
	main := &ast.Function{
		ID: "main",
		Statements: []ast.Stmt{
			&ast.MultipleDefinitionStmt{
				Names: []string{"a", "b"},
				Call:  &ast.CallExpr{Callee: "foo"},
			},
		},
	}

	out, err := New(field.Bits).FlattenProgram(&ast.Program{Functions: []*ast.Function{foo, main}})
	require.NoError(t, err)

	flatMain := out.Functions[1]
	var a, b *ast.DefinitionStmt
	for _, s := range flatMain.Statements {
		d, ok := s.(*ast.DefinitionStmt)
		if !ok {
			continue
		}
		switch d.Name {
		case "a":
			a = d
		case "b":
			b = d
		}
	}
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.True(t, a.Rhs.(*ast.Number).Value.Equal(field.FromInt64(1)))
	assert.True(t, b.Rhs.(*ast.Number).Value.Equal(field.FromInt64(2)))
}

// S5. a = 1; a = a + 2; return a.
func TestScenarioVariableRedefinition(t *testing.T) {
	main := &ast.Function{
		ID: "main",
		Statements: []ast.Stmt{
			&ast.DefinitionStmt{Name: "a", Rhs: num(1)},
			&ast.DefinitionStmt{Name: "a", Rhs: ast.Add(ident("a"), num(2))},
			&ast.ReturnStmt{Exprs: []ast.Expr{ident("a")}},
		},
		ReturnCount: 1,
	}

	out, err := New(field.Bits).FlattenProgram(&ast.Program{Functions: []*ast.Function{main}})
	require.NoError(t, err)

	flat := out.Functions[0]
	require.Len(t, flat.Statements, 3)
	assert.Equal(t, "a", flat.Statements[0].(*ast.DefinitionStmt).Name)
	assert.Equal(t, "a_0", flat.Statements[1].(*ast.DefinitionStmt).Name)
	ret, ok := flat.Statements[2].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "a_0", ret.Exprs[0].(*ast.Identifier).Name)
}

// S6. for i in 0..3 do x = x + i, starting from x = 10.
func TestScenarioForLoopUnrolling(t *testing.T) {
	main := &ast.Function{
		ID: "main",
		Statements: []ast.Stmt{
			&ast.DefinitionStmt{Name: "x", Rhs: num(10)},
			&ast.ForStmt{
				Var:   "i",
				Start: field.FromInt64(0),
				End:   field.FromInt64(3),
				Body: []ast.Stmt{
					&ast.DefinitionStmt{Name: "x", Rhs: ast.Add(ident("x"), ident("i"))},
				},
			},
		},
	}

	out, err := New(field.Bits).FlattenProgram(&ast.Program{Functions: []*ast.Function{main}})
	require.NoError(t, err)

	var iDefs []string
	for _, s := range out.Functions[0].Statements {
		d, ok := s.(*ast.DefinitionStmt)
		if !ok {
			continue
		}
		if d.Name == "i" || d.Name == "i_0" || d.Name == "i_1" {
			iDefs = append(iDefs, d.Name)
		}
	}
	assert.Equal(t, []string{"i", "i_0", "i_1"}, iDefs)
}

func TestFlattenProgramIsFlat(t *testing.T) {
	main := &ast.Function{
		ID: "main",
		Statements: []ast.Stmt{
			&ast.DefinitionStmt{Name: "a", Rhs: ast.Mul(ast.Add(ident("x"), num(1)), ident("y"))},
			&ast.ReturnStmt{Exprs: []ast.Expr{ident("a")}},
		},
		Arguments:   []ast.Parameter{{Name: "x"}, {Name: "y"}},
		ReturnCount: 1,
	}

	out, err := New(field.Bits).FlattenProgram(&ast.Program{Functions: []*ast.Function{main}})
	require.NoError(t, err)
	assert.True(t, ast.IsFlatFunction(out.Functions[0]))
}
