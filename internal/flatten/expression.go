package flatten

import (
	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
)

// flattenExpression rewrites expr into a flat expression, emitting auxiliary
// Definitions into c.buf along the way. The result is always a Number, an
// Identifier, or a single binary form whose operands are linear — the one
// caller-visible exception to "flat expressions are atoms".
func (c *context) flattenExpression(expr ast.Expr) (ast.Expr, error) {
	switch e := expr.(type) {
	case *ast.Number, *ast.Identifier:
		return e, nil

	case *ast.BinaryExpr:
		if ast.IsFlatExpr(e) {
			return e, nil
		}
		return c.flattenBinary(e)

	case *ast.PowExpr:
		return c.flattenPow(e)

	case *ast.IfElseExpr:
		condTrue, condFalse, err := c.flattenCondition(e.Cond)
		if err != nil {
			return nil, err
		}
		// (condition_true * then) + (condition_false * else)
		return c.flattenExpression(ast.Add(
			ast.Mul(condTrue, e.Then),
			ast.Mul(condFalse, e.Else),
		))

	case *ast.CallExpr:
		results, err := c.flattenFunctionCall(e.Callee, 1, e.Args)
		if err != nil {
			return nil, err
		}
		if len(results) != 1 {
			return nil, invariantErrorf("call to %q outside MultipleDefinition returned %d values, expected 1", e.Callee, len(results))
		}
		return results[0], nil

	default:
		return nil, invariantErrorf("unhandled expression type in flattenExpression")
	}
}

// flattenBinary handles Add/Sub/Mult/Div once the fast "already flat" path
// has been ruled out: flatten both operands, then linearize each side,
// binding it to a fresh symbol when it isn't already linear.
func (c *context) flattenBinary(e *ast.BinaryExpr) (ast.Expr, error) {
	left, err := c.flattenExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.flattenExpression(e.Right)
	if err != nil {
		return nil, err
	}

	forbidSub := e.Op == ast.OpMul
	newLeft := c.linearize(left, forbidSub)
	newRight := c.linearize(right, forbidSub)

	return &ast.BinaryExpr{Op: e.Op, Left: newLeft, Right: newRight}, nil
}

// linearize returns e unchanged if it is already linear, unless forbidSub is
// set and e is itself a Sub — the downstream R1CS extractor expects each
// side of a product to be a pure linear combination with signed
// coefficients, not a nested subtraction node, so Mult extracts a Sub side
// into a fresh symbol even when it is linear. Anything non-linear is always
// extracted.
func (c *context) linearize(e ast.Expr, forbidSub bool) ast.Expr {
	if ast.IsLinear(e) {
		if forbidSub {
			if b, ok := e.(*ast.BinaryExpr); ok && b.Op == ast.OpSub {
				return c.bindFreshSym(e)
			}
		}
		return e
	}
	return c.bindFreshSym(e)
}

// bindFreshSym emits Definition(sym_k, e) and returns Identifier(sym_k).
func (c *context) bindFreshSym(e ast.Expr) ast.Expr {
	name := c.env.FreshSym()
	c.emit(&ast.DefinitionStmt{Name: name, Rhs: e})
	return &ast.Identifier{Name: name}
}

// flattenPow implements the Pow base/exponent cases. The literal-base case
// intentionally reproduces a known quirk for bit-exact compatibility with
// downstream fixtures: it always squares the literal regardless of the
// exponent (see DESIGN.md, Pow on literal bases).
func (c *context) flattenPow(p *ast.PowExpr) (ast.Expr, error) {
	expNum, ok := p.Exponent.(*ast.Number)
	if !ok || expNum.Value.Cmp(field.One()) <= 0 {
		return nil, inputErrorf("pow exponent must be a numeric literal greater than 1")
	}

	switch base := p.Base.(type) {
	case *ast.Identifier:
		if expNum.Value.Cmp(field.FromInt64(2)) > 0 {
			inner, err := c.flattenExpression(&ast.PowExpr{
				Base:     &ast.Identifier{Name: base.Name},
				Exponent: &ast.Number{Value: expNum.Value.Sub(field.One())},
			})
			if err != nil {
				return nil, err
			}
			sym := c.env.FreshSym()
			c.emit(&ast.DefinitionStmt{Name: sym, Rhs: inner})
			return ast.Mul(&ast.Identifier{Name: sym}, &ast.Identifier{Name: base.Name}), nil
		}
		return ast.Mul(&ast.Identifier{Name: base.Name}, &ast.Identifier{Name: base.Name}), nil

	case *ast.Number:
		return ast.Mul(&ast.Number{Value: base.Value}, &ast.Number{Value: base.Value}), nil

	default:
		return nil, inputErrorf("pow base must be a variable or a number literal")
	}
}
