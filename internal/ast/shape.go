package ast

// IsLinear reports whether e is a flat expression built only from numbers,
// identifiers, Add/Sub of linear expressions, and Mult(Number, Identifier)
// patterns — i.e. something the R1CS extractor can fold into a single linear
// combination with signed coefficients.
func IsLinear(e Expr) bool {
	switch n := e.(type) {
	case *Number, *Identifier:
		return true
	case *BinaryExpr:
		switch n.Op {
		case OpAdd, OpSub:
			return IsLinear(n.Left) && IsLinear(n.Right)
		case OpMul:
			return isNumberTimesIdentifier(n)
		default:
			return false
		}
	default:
		return false
	}
}

func isNumberTimesIdentifier(n *BinaryExpr) bool {
	_, leftNum := n.Left.(*Number)
	_, rightIdent := n.Right.(*Identifier)
	if leftNum && rightIdent {
		return true
	}
	_, rightNum := n.Right.(*Number)
	_, leftIdent := n.Left.(*Identifier)
	return rightNum && leftIdent
}

// IsFlatExpr reports whether e already conforms to flat shape: a Number, an
// Identifier, a linear Add/Sub, or a single Mult/Div whose operands are each
// linear.
func IsFlatExpr(e Expr) bool {
	switch n := e.(type) {
	case *Number, *Identifier:
		return true
	case *BinaryExpr:
		switch n.Op {
		case OpAdd, OpSub:
			return IsLinear(n.Left) && IsLinear(n.Right)
		case OpMul, OpDiv:
			return IsLinear(n.Left) && IsLinear(n.Right)
		}
		return false
	default:
		return false
	}
}

// IsFlatCond reports whether a Condition is flat: one side linear, the other
// linear or a single multiplication between linear sides.
func IsFlatCond(c Cond) bool {
	if IsLinear(c.Left) {
		return isLinearOrSingleMult(c.Right)
	}
	if IsLinear(c.Right) {
		return isLinearOrSingleMult(c.Left)
	}
	return false
}

func isLinearOrSingleMult(e Expr) bool {
	if IsLinear(e) {
		return true
	}
	if b, ok := e.(*BinaryExpr); ok && b.Op == OpMul {
		return IsLinear(b.Left) && IsLinear(b.Right)
	}
	return false
}

// IsFlatStmt reports whether a statement conforms to the flat-shape
// invariants: no IfElse, Pow, FunctionCall, For or MultipleDefinition may
// appear inside a flattened function, and every sub-expression must itself
// be flat, except the right-hand side of a Compiler statement, which is not
// checked.
func IsFlatStmt(s Stmt) bool {
	switch n := s.(type) {
	case *ReturnStmt:
		for _, e := range n.Exprs {
			if !IsFlatExpr(e) {
				return false
			}
		}
		return true
	case *DefinitionStmt:
		return IsFlatExpr(n.Rhs)
	case *CompilerStmt:
		// A Compiler statement is a witness-time directive, not a
		// constraint: the downstream R1CS extractor never sees it, so its
		// right-hand side is exempt from flat shape (the equality gadget
		// relies on this to hand the witness computer a raw IfElse).
		return true
	case *ConditionStmt:
		if IsLinear(n.Left) {
			return isLinearOrSingleMult(n.Right)
		}
		if IsLinear(n.Right) {
			return isLinearOrSingleMult(n.Left)
		}
		return false
	case *ForStmt, *MultipleDefinitionStmt:
		return false
	default:
		return false
	}
}

// IsFlatFunction reports whether every statement in fn is flat.
func IsFlatFunction(fn *Function) bool {
	for _, s := range fn.Statements {
		if !IsFlatStmt(s) {
			return false
		}
	}
	return true
}
