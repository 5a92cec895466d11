package ast

// Substitution maps identifier names to their replacement names. Applying it
// to a tree replaces every free Identifier(x) whose x is a key by
// Identifier(map[x]); literals and tree shape are left untouched.
type Substitution map[string]string

// ApplyToExpr returns a copy of e with every identifier rewritten per sub.
// Number nodes and identifiers not in sub are returned as-is; every other
// node is rebuilt (sharing structure is safe: the tree is never mutated in
// place).
func ApplyToExpr(e Expr, sub Substitution) Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *Number:
		return n
	case *Identifier:
		if repl, ok := sub[n.Name]; ok {
			return &Identifier{Name: repl}
		}
		return n
	case *BinaryExpr:
		return &BinaryExpr{
			Op:    n.Op,
			Left:  ApplyToExpr(n.Left, sub),
			Right: ApplyToExpr(n.Right, sub),
		}
	case *PowExpr:
		return &PowExpr{
			Base:     ApplyToExpr(n.Base, sub),
			Exponent: ApplyToExpr(n.Exponent, sub),
		}
	case *IfElseExpr:
		return &IfElseExpr{
			Cond: ApplyToCond(n.Cond, sub),
			Then: ApplyToExpr(n.Then, sub),
			Else: ApplyToExpr(n.Else, sub),
		}
	case *CallExpr:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = ApplyToExpr(a, sub)
		}
		return &CallExpr{Callee: n.Callee, Args: args}
	default:
		panic("ast: ApplyToExpr: unhandled expression type")
	}
}

// ApplyToCond rewrites both sides of a condition.
func ApplyToCond(c Cond, sub Substitution) Cond {
	return Cond{Kind: c.Kind, Left: ApplyToExpr(c.Left, sub), Right: ApplyToExpr(c.Right, sub)}
}

// ApplyToExprList rewrites every expression in a list, as used for Return
// statements and call argument lists.
func ApplyToExprList(exprs []Expr, sub Substitution) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = ApplyToExpr(e, sub)
	}
	return out
}

// ApplyToStmt rewrites a single already-flat statement under sub. It is used
// by the function-call inliner to rename a callee's body into the caller's
// namespace; it therefore only needs to handle the statement shapes that can
// appear in an already-flattened function body.
func ApplyToStmt(s Stmt, sub Substitution) Stmt {
	switch n := s.(type) {
	case *DefinitionStmt:
		return &DefinitionStmt{Name: n.Name, Rhs: ApplyToExpr(n.Rhs, sub)}
	case *CompilerStmt:
		return &CompilerStmt{Name: n.Name, Rhs: ApplyToExpr(n.Rhs, sub)}
	case *ConditionStmt:
		return &ConditionStmt{Left: ApplyToExpr(n.Left, sub), Right: ApplyToExpr(n.Right, sub)}
	case *ReturnStmt:
		return &ReturnStmt{Exprs: ApplyToExprList(n.Exprs, sub)}
	default:
		panic("ast: ApplyToStmt: statement not flattened")
	}
}
