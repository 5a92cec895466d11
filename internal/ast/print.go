package ast

import (
	"fmt"
	"strings"
)

// String renders an expression as infix syntax, for diagnostics and test
// failure messages, not for round-tripping.
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", exprString(e.Left), e.Op, exprString(e.Right))
}

func (n *Number) String() string     { return n.Value.String() }
func (i *Identifier) String() string { return i.Name }

func (p *PowExpr) String() string {
	return fmt.Sprintf("(%s ** %s)", exprString(p.Base), exprString(p.Exponent))
}

func (ie *IfElseExpr) String() string {
	return fmt.Sprintf("if %s then %s else %s fi", ie.Cond, exprString(ie.Then), exprString(ie.Else))
}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = exprString(a)
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", e)
}

func (c Cond) String() string {
	op := "<"
	if c.Kind == CondEq {
		op = "=="
	}
	return fmt.Sprintf("%s %s %s", exprString(c.Left), op, exprString(c.Right))
}

func (s *ReturnStmt) String() string {
	parts := make([]string, len(s.Exprs))
	for i, e := range s.Exprs {
		parts[i] = exprString(e)
	}
	return "return " + strings.Join(parts, ", ")
}

func (s *DefinitionStmt) String() string {
	return fmt.Sprintf("%s = %s", s.Name, exprString(s.Rhs))
}

func (s *ConditionStmt) String() string {
	return fmt.Sprintf("%s == %s", exprString(s.Left), exprString(s.Right))
}

func (s *ForStmt) String() string {
	return fmt.Sprintf("for %s in %s..%s do ... endfor", s.Var, s.Start, s.End)
}

func (s *CompilerStmt) String() string {
	return fmt.Sprintf("# %s = %s", s.Name, exprString(s.Rhs))
}

func (s *MultipleDefinitionStmt) String() string {
	return fmt.Sprintf("%s = %s", strings.Join(s.Names, ", "), exprString(s.Call))
}

func (fn *Function) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "def %s(", fn.ID)
	for i, p := range fn.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Private {
			b.WriteString("private ")
		}
		b.WriteString(p.Name)
	}
	fmt.Fprintf(&b, "):\n")
	for _, s := range fn.Statements {
		fmt.Fprintf(&b, "\t%v\n", s)
	}
	return b.String()
}

func (p *Program) String() string {
	var b strings.Builder
	for _, fn := range p.Functions {
		b.WriteString(fn.String())
	}
	return b.String()
}
