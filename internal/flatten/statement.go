package flatten

import (
	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
)

// flattenStatement dispatches on the source statement kind, appending zero
// or more flat statements to c.buf.
func (c *context) flattenStatement(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return c.flattenReturn(s)
	case *ast.DefinitionStmt:
		return c.flattenDefinition(s)
	case *ast.ConditionStmt:
		return c.flattenConditionStmt(s)
	case *ast.ForStmt:
		return c.flattenFor(s)
	case *ast.CompilerStmt:
		c.emit(s)
		return nil
	case *ast.MultipleDefinitionStmt:
		return c.flattenMultipleDefinition(s)
	default:
		return invariantErrorf("unhandled statement type in flattenStatement")
	}
}

func (c *context) flattenReturn(s *ast.ReturnStmt) error {
	subbed := ast.ApplyToExprList(s.Exprs, c.sub())
	flat := make([]ast.Expr, len(subbed))
	for i, e := range subbed {
		f, err := c.flattenExpression(e)
		if err != nil {
			return err
		}
		flat[i] = f
	}
	c.emit(&ast.ReturnStmt{Exprs: flat})
	return nil
}

func (c *context) flattenDefinition(s *ast.DefinitionStmt) error {
	subbed := ast.ApplyToExpr(s.Rhs, c.sub())
	rhs, err := c.flattenExpression(subbed)
	if err != nil {
		return err
	}
	varName := c.env.UseVariable(s.Name)
	c.rerouteStaleness(s.Name, varName)
	c.emit(&ast.DefinitionStmt{Name: varName, Rhs: rhs})
	return nil
}

func (c *context) flattenConditionStmt(s *ast.ConditionStmt) error {
	left := ast.ApplyToExpr(s.Left, c.sub())
	right := ast.ApplyToExpr(s.Right, c.sub())

	var lhs, rhs ast.Expr
	var err error
	switch {
	case ast.IsLinear(left):
		lhs = left
		rhs, err = c.flattenExpression(right)
	case ast.IsLinear(right):
		lhs = right
		rhs, err = c.flattenExpression(left)
	default:
		return inputErrorf("condition has no linear side")
	}
	if err != nil {
		return err
	}
	c.emit(&ast.ConditionStmt{Left: lhs, Right: rhs})
	return nil
}

func (c *context) flattenFor(s *ast.ForStmt) error {
	for current := s.Start; current.Cmp(s.End) < 0; current = current.Add(field.One()) {
		varName := c.env.UseVariable(s.Var)
		c.emit(&ast.DefinitionStmt{Name: varName, Rhs: &ast.Number{Value: current}})
		for _, body := range s.Body {
			if err := c.flattenStatement(body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *context) flattenMultipleDefinition(s *ast.MultipleDefinitionStmt) error {
	if s.Call == nil {
		return inputErrorf("right-hand side of a MultipleDefinition must be a function call")
	}
	subbedArgs := ast.ApplyToExprList(s.Call.Args, c.sub())

	results, err := c.flattenFunctionCall(s.Call.Callee, len(s.Names), subbedArgs)
	if err != nil {
		return err
	}
	if len(results) != len(s.Names) {
		return invariantErrorf("call to %q returned %d value(s), expected %d", s.Call.Callee, len(results), len(s.Names))
	}

	for i, id := range s.Names {
		varName := c.env.UseVariable(id)
		c.rerouteStaleness(id, varName)
		c.emit(&ast.DefinitionStmt{Name: varName, Rhs: results[i]})
	}
	return nil
}

// rerouteStaleness handles the case where a multi-return call has already
// introduced an intermediate flat name for sourceName that must now be
// re-pointed at the freshly minted varName, without clobbering a link that
// is already in place.
func (c *context) rerouteStaleness(sourceName, varName string) {
	stale := c.env.Latest(sourceName)
	if stale != varName && c.env.HasVariable(stale) && !c.env.HasSubstitution(stale) {
		c.env.AddSubstitution(stale, varName)
	}
}

// sub returns the environment's substitution map as an ast.Substitution for
// use with ast.ApplyToExpr.
func (c *context) sub() ast.Substitution {
	return c.env.AsSubstitution()
}
