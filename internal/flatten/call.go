package flatten

import (
	"fmt"

	"github.com/flatzk/flatc/internal/ast"
)

// flattenFunctionCall looks up the first already-flattened function matching
// (callee, len(args), returnCount), inlines its body under a unique
// per-call-site name prefix, and returns the rewritten return expressions.
func (c *context) flattenFunctionCall(callee string, returnCount int, args []ast.Expr) ([]ast.Expr, error) {
	fn := findCallee(c.flattened, callee, len(args), returnCount)
	if fn == nil {
		return nil, inputErrorf("no function %q with %d argument(s) and %d return value(s)", callee, len(args), returnCount)
	}

	c.f.functionCalls[fn.ID]++
	prefix := fmt.Sprintf("%s_i%do%d_%d_", fn.ID, len(fn.Arguments), fn.ReturnCount, c.f.functionCalls[fn.ID])

	replacement := make(ast.Substitution, len(args))
	for i, argExpr := range args {
		subbed := ast.ApplyToExpr(argExpr, c.callerSubstitution())
		paramName := fmt.Sprintf("%sparam_%d", prefix, i)

		var rhs ast.Expr
		if ident, ok := subbed.(*ast.Identifier); ok {
			rhs = ident
		} else {
			flat, err := c.flattenExpression(subbed)
			if err != nil {
				return nil, err
			}
			rhs = flat
		}
		c.emit(&ast.DefinitionStmt{Name: paramName, Rhs: rhs})
		replacement[fn.Arguments[i].Name] = paramName
	}

	for _, stmt := range fn.Statements {
		if !ast.IsFlatStmt(stmt) {
			return nil, invariantErrorf("callee %q has an unflattened statement", fn.ID)
		}
		switch s := stmt.(type) {
		case *ast.ReturnStmt:
			return ast.ApplyToExprList(s.Exprs, replacement), nil

		case *ast.DefinitionStmt:
			newRhs := ast.ApplyToExpr(s.Rhs, replacement)
			newName := prefix + s.Name
			replacement[s.Name] = newName
			c.emit(&ast.DefinitionStmt{Name: newName, Rhs: newRhs})

		case *ast.CompilerStmt:
			newRhs := ast.ApplyToExpr(s.Rhs, replacement)
			newName := prefix + s.Name
			replacement[s.Name] = newName
			c.emit(&ast.CompilerStmt{Name: newName, Rhs: newRhs})

		case *ast.ConditionStmt:
			c.emit(&ast.ConditionStmt{
				Left:  ast.ApplyToExpr(s.Left, replacement),
				Right: ast.ApplyToExpr(s.Right, replacement),
			})

		default:
			return nil, invariantErrorf("callee %q body statement not flattened when flattening call", fn.ID)
		}
	}

	return nil, invariantErrorf("callee %q body has no Return statement", fn.ID)
}

// callerSubstitution exposes the caller's current name-environment
// substitution so argument expressions can be rewritten to their latest
// flat names before being bound to the callee's parameters.
func (c *context) callerSubstitution() ast.Substitution {
	return c.env.AsSubstitution()
}

func findCallee(flattened []*ast.Function, name string, arity, returnCount int) *ast.Function {
	for _, fn := range flattened {
		if fn.ID == name && len(fn.Arguments) == arity && fn.ReturnCount == returnCount {
			return fn
		}
	}
	return nil
}
