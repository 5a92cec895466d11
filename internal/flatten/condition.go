package flatten

import (
	"strconv"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
)

// flattenCondition returns (condTrue, condFalse) flat expressions for cond,
// where condTrue evaluates to 1 iff the condition holds.
func (c *context) flattenCondition(cond ast.Cond) (ast.Expr, ast.Expr, error) {
	switch cond.Kind {
	case ast.CondLt:
		return c.flattenLt(cond.Left, cond.Right)
	case ast.CondEq:
		return c.flattenEq(cond.Left, cond.Right)
	default:
		return nil, nil, invariantErrorf("unsupported condition kind")
	}
}

// flattenLt implements the bit-decomposition less-than gadget parameterized
// by the flattener's bit-width: flatten and bind both operands, define the
// doubled difference D, constrain each of its bit-range digits to be
// Boolean, reconstruct D from the weighted bit sum, and read the
// comparison result off bit 0.
func (c *context) flattenLt(lhs, rhs ast.Expr) (ast.Expr, ast.Expr, error) {
	lhsFlat, err := c.flattenExpression(lhs)
	if err != nil {
		return nil, nil, err
	}
	rhsFlat, err := c.flattenExpression(rhs)
	if err != nil {
		return nil, nil, err
	}

	lhsName := c.env.FreshSym()
	c.emit(&ast.DefinitionStmt{Name: lhsName, Rhs: lhsFlat})
	rhsName := c.env.FreshSym()
	c.emit(&ast.DefinitionStmt{Name: rhsName, Rhs: rhsFlat})

	sub := c.env.FreshSym()
	c.emit(&ast.DefinitionStmt{Name: sub, Rhs: ast.Sub(
		ast.Mul(&ast.Number{Value: field.FromInt64(2)}, &ast.Identifier{Name: lhsName}),
		ast.Mul(&ast.Number{Value: field.FromInt64(2)}, &ast.Identifier{Name: rhsName}),
	)})

	bits := c.f.bits
	bitName := func(i int) string { return subBitName(sub, i) }

	for i := 0; i < bits-2; i++ {
		name := bitName(i)
		c.emit(&ast.DefinitionStmt{
			Name: name,
			Rhs:  ast.Mul(&ast.Identifier{Name: name}, &ast.Identifier{Name: name}),
		})
	}

	expr := ast.Add(
		&ast.Identifier{Name: bitName(0)},
		ast.Mul(&ast.Identifier{Name: bitName(1)}, &ast.Number{Value: field.FromInt64(2)}),
	)
	for i := 1; i < bits/2; i++ {
		expr = ast.Add(expr, ast.Add(
			ast.Mul(&ast.Identifier{Name: bitName(2 * i)}, &ast.Number{Value: field.FromInt64(2).Pow(uint64(2 * i))}),
			ast.Mul(&ast.Identifier{Name: bitName(2*i+1)}, &ast.Number{Value: field.FromInt64(2).Pow(uint64(2*i + 1))}),
		))
	}
	if bits%2 == 1 {
		expr = ast.Add(expr, ast.Mul(
			&ast.Identifier{Name: bitName(bits - 3)},
			&ast.Number{Value: field.FromInt64(2).Pow(uint64(bits - 1))},
		))
	}
	c.emit(&ast.DefinitionStmt{Name: sub, Rhs: expr})

	condTrue := bitName(0)
	condFalse := c.env.FreshSym()
	c.emit(&ast.DefinitionStmt{
		Name: condFalse,
		Rhs:  ast.Sub(&ast.Number{Value: field.One()}, &ast.Identifier{Name: condTrue}),
	})

	return &ast.Identifier{Name: condTrue}, &ast.Identifier{Name: condFalse}, nil
}

func subBitName(sub string, i int) string {
	return sub + "_b" + strconv.Itoa(i)
}

// flattenEq implements the auxiliary-witness equality gadget: X = lhs - rhs,
// Y and M are witness-only hints (Y = 0 iff X == 0, M = 1/X or 1), and two
// Condition constraints jointly force Y to be the Boolean "X != 0"
// indicator.
func (c *context) flattenEq(lhs, rhs ast.Expr) (ast.Expr, ast.Expr, error) {
	nameX := c.env.FreshSym()
	nameY := c.env.FreshSym()
	nameM := c.env.FreshSym()
	name1MinusY := c.env.FreshSym()

	x, err := c.flattenExpression(ast.Sub(lhs, rhs))
	if err != nil {
		return nil, nil, err
	}
	c.emit(&ast.DefinitionStmt{Name: nameX, Rhs: x})

	c.emit(&ast.CompilerStmt{Name: nameY, Rhs: &ast.IfElseExpr{
		Cond: ast.Eq(&ast.Identifier{Name: nameX}, &ast.Number{Value: field.Zero()}),
		Then: &ast.Number{Value: field.Zero()},
		Else: &ast.Number{Value: field.One()},
	}})
	c.emit(&ast.CompilerStmt{Name: nameM, Rhs: &ast.IfElseExpr{
		Cond: ast.Eq(&ast.Identifier{Name: nameX}, &ast.Number{Value: field.Zero()}),
		Then: &ast.Number{Value: field.One()},
		Else: ast.Div(&ast.Number{Value: field.One()}, &ast.Identifier{Name: nameX}),
	}})

	c.emit(&ast.ConditionStmt{
		Left:  &ast.Identifier{Name: nameY},
		Right: ast.Mul(&ast.Identifier{Name: nameX}, &ast.Identifier{Name: nameM}),
	})
	c.emit(&ast.DefinitionStmt{
		Name: name1MinusY,
		Rhs:  ast.Sub(&ast.Number{Value: field.One()}, &ast.Identifier{Name: nameY}),
	})
	c.emit(&ast.ConditionStmt{
		Left:  &ast.Number{Value: field.Zero()},
		Right: ast.Mul(&ast.Identifier{Name: name1MinusY}, &ast.Identifier{Name: nameX}),
	})

	return &ast.Identifier{Name: name1MinusY}, &ast.Identifier{Name: nameY}, nil
}
