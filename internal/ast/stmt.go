package ast

import "github.com/flatzk/flatc/internal/field"

// Stmt is a statement in a function body, pre- or post-flattening.
type Stmt interface {
	isStmt()
}

// ReturnStmt returns a (possibly multi-valued) expression list from the
// enclosing function.
type ReturnStmt struct {
	Exprs []Expr
}

// DefinitionStmt binds Name to the value of Rhs. Pre-flattening, Name may be
// reassigned repeatedly within a function body (the name environment gives
// each reassignment a fresh flat name); post-flattening, a DefinitionStmt
// normally introduces a variable never written again. The less-than gadget
// is the exception: it defines its difference symbol a second time (as the
// weighted bit sum) and defines each bit variable in terms of itself.
type DefinitionStmt struct {
	Name string
	Rhs  Expr
}

// ConditionStmt asserts that two already-flat-shaped expressions are equal.
// It becomes a single R1CS row downstream; it is never itself a Boolean test
// (that's Cond) — the name mirrors the reference absy::Statement::Condition.
type ConditionStmt struct {
	Left, Right Expr
}

// ForStmt unrolls a half-open, step-1 range at flatten time: start and end
// must be literal field elements for the loop to be flattenable.
type ForStmt struct {
	Var        string
	Start, End field.Element
	Body       []Stmt
}

// CompilerStmt is a witness-only hint: it tells the witness computer to
// assign Name := Rhs, but contributes no R1CS constraint. It survives
// flattening unchanged.
type CompilerStmt struct {
	Name string
	Rhs  Expr
}

// MultipleDefinitionStmt destructures a multi-return function call into
// several named bindings.
type MultipleDefinitionStmt struct {
	Names []string
	Call  *CallExpr
}

func (*ReturnStmt) isStmt()             {}
func (*DefinitionStmt) isStmt()         {}
func (*ConditionStmt) isStmt()          {}
func (*ForStmt) isStmt()                {}
func (*CompilerStmt) isStmt()           {}
func (*MultipleDefinitionStmt) isStmt() {}

// Parameter is a function argument. Private mirrors the reference's
// visibility flag: whether the argument is a private circuit input (vs. a
// public one baked into the verification key).
type Parameter struct {
	Name    string
	Private bool
}

// Function is one top-level function: a name, typed-by-position parameters,
// a body, and how many values it returns (distinguishing overloads that
// share a name and arity but not return arity, per the inliner's match
// rule).
type Function struct {
	ID          string
	Arguments   []Parameter
	Statements  []Stmt
	ReturnCount int
}

// Program is an ordered list of functions; flatten_program requires callees
// to appear before their callers, with "main" as the entry point.
type Program struct {
	Functions []*Function
}
