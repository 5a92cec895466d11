// Package semantic implements the thin checker the flattener treats as an
// external collaborator: it validates that every call site resolves
// to a declared function with a matching argument count, that every
// function referenced by a MultipleDefinition can plausibly supply that
// many return values, and that callees are declared before their callers
// (a requirement the inliner's linear scan depends on). It does not type
// the surface language beyond "is every value a field element" — the
// toy language has exactly one value type.
package semantic

import "github.com/flatzk/flatc/internal/ast"

// Error reports a single semantic problem, identifying the offending
// function for a useful diagnostic even though the checker has no source
// position information of its own (that lives on the parser's syntax
// tree, not on internal/ast).
type Error struct {
	Function string
	Message  string
}

func (e *Error) Error() string {
	return "semantic: in " + e.Function + ": " + e.Message
}

type signature struct {
	arity       int
	returnCount int
}

// Check validates prog against the rules above, returning every violation
// found rather than aborting on the first one.
func Check(prog *ast.Program) []*Error {
	var errs []*Error
	declared := make(map[string][]signature)

	hasMain := false
	for _, fn := range prog.Functions {
		if fn.ID == "main" {
			hasMain = true
		}
		declared[fn.ID] = append(declared[fn.ID], signature{
			arity:       len(fn.Arguments),
			returnCount: fn.ReturnCount,
		})
	}
	if !hasMain {
		errs = append(errs, &Error{Function: "<program>", Message: "no main function declared"})
	}

	visible := make(map[string][]signature)
	for _, fn := range prog.Functions {
		errs = append(errs, checkFunction(fn, visible)...)
		visible[fn.ID] = append(visible[fn.ID], signature{
			arity:       len(fn.Arguments),
			returnCount: fn.ReturnCount,
		})
	}
	return errs
}

func checkFunction(fn *ast.Function, visible map[string][]signature) []*Error {
	var errs []*Error
	names := make(map[string]bool, len(fn.Arguments))
	for _, p := range fn.Arguments {
		if names[p.Name] {
			errs = append(errs, &Error{Function: fn.ID, Message: "duplicate parameter name " + p.Name})
		}
		names[p.Name] = true
	}

	for _, stmt := range fn.Statements {
		errs = append(errs, checkStmt(fn.ID, stmt, visible)...)
	}
	return errs
}

func checkStmt(owner string, s ast.Stmt, visible map[string][]signature) []*Error {
	var errs []*Error
	switch n := s.(type) {
	case *ast.ReturnStmt:
		for _, e := range n.Exprs {
			errs = append(errs, checkExpr(owner, e, visible)...)
		}
	case *ast.DefinitionStmt:
		errs = append(errs, checkExpr(owner, n.Rhs, visible)...)
	case *ast.ConditionStmt:
		errs = append(errs, checkExpr(owner, n.Left, visible)...)
		errs = append(errs, checkExpr(owner, n.Right, visible)...)
	case *ast.CompilerStmt:
		errs = append(errs, checkExpr(owner, n.Rhs, visible)...)
	case *ast.ForStmt:
		if n.Start.Cmp(n.End) > 0 {
			errs = append(errs, &Error{Function: owner, Message: "for-loop start is greater than end"})
		}
		for _, body := range n.Body {
			errs = append(errs, checkStmt(owner, body, visible)...)
		}
	case *ast.MultipleDefinitionStmt:
		if n.Call == nil {
			errs = append(errs, &Error{Function: owner, Message: "multiple assignment right-hand side is not a function call"})
			return errs
		}
		errs = append(errs, checkCall(owner, n.Call.Callee, len(n.Call.Args), len(n.Names), visible)...)
		for _, a := range n.Call.Args {
			errs = append(errs, checkExpr(owner, a, visible)...)
		}
	}
	return errs
}

func checkExpr(owner string, e ast.Expr, visible map[string][]signature) []*Error {
	var errs []*Error
	switch n := e.(type) {
	case *ast.BinaryExpr:
		errs = append(errs, checkExpr(owner, n.Left, visible)...)
		errs = append(errs, checkExpr(owner, n.Right, visible)...)
	case *ast.PowExpr:
		errs = append(errs, checkExpr(owner, n.Base, visible)...)
		errs = append(errs, checkExpr(owner, n.Exponent, visible)...)
	case *ast.IfElseExpr:
		errs = append(errs, checkExpr(owner, n.Cond.Left, visible)...)
		errs = append(errs, checkExpr(owner, n.Cond.Right, visible)...)
		errs = append(errs, checkExpr(owner, n.Then, visible)...)
		errs = append(errs, checkExpr(owner, n.Else, visible)...)
	case *ast.CallExpr:
		errs = append(errs, checkCall(owner, n.Callee, len(n.Args), 1, visible)...)
		for _, a := range n.Args {
			errs = append(errs, checkExpr(owner, a, visible)...)
		}
	}
	return errs
}

func checkCall(owner, callee string, arity, returnCount int, visible map[string][]signature) []*Error {
	sigs, ok := visible[callee]
	if !ok {
		return []*Error{{Function: owner, Message: "call to undeclared function " + callee + " (callees must be declared before their callers)"}}
	}
	for _, sig := range sigs {
		if sig.arity == arity && sig.returnCount == returnCount {
			return nil
		}
	}
	return []*Error{{Function: owner, Message: "no overload of " + callee + " accepts this call's argument/return arity"}}
}
