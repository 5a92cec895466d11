package parser

import (
	"fmt"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
)

// toProgram converts a parsed File into internal/ast's Program. Errors here
// are syntactic-but-not-grammatical problems the grammar itself can't
// reject — a for-loop bound that doesn't parse as a decimal literal, for
// instance.
func toProgram(f *File) (*ast.Program, error) {
	funcs := make([]*ast.Function, len(f.Functions))
	for i, fn := range f.Functions {
		converted, err := toFunction(fn)
		if err != nil {
			return nil, err
		}
		funcs[i] = converted
	}
	return &ast.Program{Functions: funcs}, nil
}

func toFunction(fn *funcSyntax) (*ast.Function, error) {
	params := make([]ast.Parameter, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = ast.Parameter{Name: p.Name, Private: p.Private}
	}

	stmts := make([]ast.Stmt, 0, len(fn.Statements))
	returnCount := 0
	for _, s := range fn.Statements {
		stmt, err := toStmt(s)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if ret, ok := stmt.(*ast.ReturnStmt); ok {
			returnCount = len(ret.Exprs)
		}
	}

	return &ast.Function{
		ID:          fn.ID,
		Arguments:   params,
		Statements:  stmts,
		ReturnCount: returnCount,
	}, nil
}

func toStmt(s *stmtSyntax) (ast.Stmt, error) {
	switch {
	case s.Return != nil:
		exprs := make([]ast.Expr, len(s.Return.Exprs))
		for i, e := range s.Return.Exprs {
			conv, err := toExpr(e)
			if err != nil {
				return nil, err
			}
			exprs[i] = conv
		}
		return &ast.ReturnStmt{Exprs: exprs}, nil

	case s.For != nil:
		start, err := field.FromDecimalString(s.For.Start)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid for-loop start bound %q: %w", s.For.Start, err)
		}
		end, err := field.FromDecimalString(s.For.End)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid for-loop end bound %q: %w", s.For.End, err)
		}
		body := make([]ast.Stmt, len(s.For.Statements))
		for i, inner := range s.For.Statements {
			conv, err := toStmt(inner)
			if err != nil {
				return nil, err
			}
			body[i] = conv
		}
		return &ast.ForStmt{Var: s.For.Var, Start: start, End: end, Body: body}, nil

	case s.Assign != nil:
		rhs, err := toExpr(s.Assign.Rhs)
		if err != nil {
			return nil, err
		}
		if len(s.Assign.Names) == 1 {
			return &ast.DefinitionStmt{Name: s.Assign.Names[0], Rhs: rhs}, nil
		}
		call, ok := rhs.(*ast.CallExpr)
		if !ok {
			return nil, fmt.Errorf("parser: multiple assignment %v requires a function call on the right-hand side", s.Assign.Names)
		}
		return &ast.MultipleDefinitionStmt{Names: s.Assign.Names, Call: call}, nil

	default:
		return nil, fmt.Errorf("parser: empty statement")
	}
}

func toExpr(e *exprSyntax) (ast.Expr, error) {
	if e.If != nil {
		cond, err := toCond(e.If.Cond)
		if err != nil {
			return nil, err
		}
		then, err := toExpr(e.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := toExpr(e.If.Else)
		if err != nil {
			return nil, err
		}
		return &ast.IfElseExpr{Cond: cond, Then: then, Else: els}, nil
	}
	return toAdd(e.Expr)
}

func toCond(c *condSyntax) (ast.Cond, error) {
	left, err := toAdd(c.Left)
	if err != nil {
		return ast.Cond{}, err
	}
	right, err := toAdd(c.Right)
	if err != nil {
		return ast.Cond{}, err
	}
	if c.Op == "<" {
		return ast.Lt(left, right), nil
	}
	return ast.Eq(left, right), nil
}

func toAdd(a *addSyntax) (ast.Expr, error) {
	left, err := toMul(a.Left)
	if err != nil {
		return nil, err
	}
	for _, term := range a.Rest {
		right, err := toMul(term.Term)
		if err != nil {
			return nil, err
		}
		if term.Op == "+" {
			left = ast.Add(left, right)
		} else {
			left = ast.Sub(left, right)
		}
	}
	return left, nil
}

func toMul(m *mulSyntax) (ast.Expr, error) {
	left, err := toPow(m.Left)
	if err != nil {
		return nil, err
	}
	for _, term := range m.Rest {
		right, err := toPow(term.Term)
		if err != nil {
			return nil, err
		}
		if term.Op == "*" {
			left = ast.Mul(left, right)
		} else {
			left = ast.Div(left, right)
		}
	}
	return left, nil
}

func toPow(p *powSyntax) (ast.Expr, error) {
	base, err := toAtom(p.Base)
	if err != nil {
		return nil, err
	}
	if p.Exponent == nil {
		return base, nil
	}
	exponent, err := toAtom(p.Exponent)
	if err != nil {
		return nil, err
	}
	return &ast.PowExpr{Base: base, Exponent: exponent}, nil
}

func toAtom(a *atomSyntax) (ast.Expr, error) {
	switch {
	case a.Int != nil:
		v, err := field.FromDecimalString(*a.Int)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid integer literal %q: %w", *a.Int, err)
		}
		return &ast.Number{Value: v}, nil
	case a.Call != nil:
		args := make([]ast.Expr, len(a.Call.Args))
		for i, arg := range a.Call.Args {
			conv, err := toExpr(arg)
			if err != nil {
				return nil, err
			}
			args[i] = conv
		}
		return &ast.CallExpr{Callee: a.Call.Callee, Args: args}, nil
	case a.Ident != nil:
		return &ast.Identifier{Name: *a.Ident}, nil
	case a.Paren != nil:
		return toExpr(a.Paren)
	default:
		return nil, fmt.Errorf("parser: empty expression atom")
	}
}
