// Package serialize persists flat programs to and from disk. The reference
// toolchain uses bincode's serialize_into/deserialize_from over a plain
// struct graph; the Go equivalent adopted here is fxamacker/cbor, already
// used for flat-graph serialization elsewhere in the ecosystem this
// toolchain's stack is drawn from.
package serialize

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/field"
)

// wireProgram, wireFunction, ... mirror internal/ast's tree but with every
// Expr/Stmt/Cond flattened into a single tagged struct: cbor (like the
// bincode it replaces) has no native support for Go interfaces, so each
// variant is given an explicit Kind discriminator and only the fields that
// variant uses are populated.
type wireProgram struct {
	Functions []wireFunction `cbor:"functions"`
}

type wireFunction struct {
	ID          string          `cbor:"id"`
	Arguments   []wireParameter `cbor:"arguments"`
	Statements  []wireStmt      `cbor:"statements"`
	ReturnCount int             `cbor:"return_count"`
}

type wireParameter struct {
	Name    string `cbor:"name"`
	Private bool   `cbor:"private"`
}

type stmtKind int

const (
	stmtReturn stmtKind = iota
	stmtDefinition
	stmtCondition
	stmtFor
	stmtCompiler
	stmtMultipleDefinition
)

type wireStmt struct {
	Kind        stmtKind   `cbor:"kind"`
	Name        string     `cbor:"name,omitempty"`
	Names       []string   `cbor:"names,omitempty"`
	Rhs         *wireExpr  `cbor:"rhs,omitempty"`
	Left        *wireExpr  `cbor:"left,omitempty"`
	Right       *wireExpr  `cbor:"right,omitempty"`
	Exprs       []wireExpr `cbor:"exprs,omitempty"`
	Var         string     `cbor:"var,omitempty"`
	Start       string     `cbor:"start,omitempty"`
	End         string     `cbor:"end,omitempty"`
	Body        []wireStmt `cbor:"body,omitempty"`
	Call        *wireCall  `cbor:"call,omitempty"`
}

type exprKind int

const (
	exprNumber exprKind = iota
	exprIdentifier
	exprBinary
	exprPow
	exprIfElse
	exprCall
)

type wireExpr struct {
	Kind     exprKind  `cbor:"kind"`
	Number   string    `cbor:"number,omitempty"`
	Name     string    `cbor:"name,omitempty"`
	Op       int       `cbor:"op,omitempty"`
	Left     *wireExpr `cbor:"left,omitempty"`
	Right    *wireExpr `cbor:"right,omitempty"`
	Base     *wireExpr `cbor:"base,omitempty"`
	Exponent *wireExpr `cbor:"exponent,omitempty"`
	CondKind int       `cbor:"cond_kind,omitempty"`
	CondL    *wireExpr `cbor:"cond_l,omitempty"`
	CondR    *wireExpr `cbor:"cond_r,omitempty"`
	Then     *wireExpr `cbor:"then,omitempty"`
	Else     *wireExpr `cbor:"else,omitempty"`
	Call     *wireCall `cbor:"call,omitempty"`
}

type wireCall struct {
	Callee string     `cbor:"callee"`
	Args   []wireExpr `cbor:"args"`
}

// WriteProgram serializes prog to path in CBOR form, the on-disk shape of
// the "flattened code" artifact downstream R1CS extraction consumes.
func WriteProgram(path string, prog *ast.Program) error {
	data, err := cbor.Marshal(toWire(prog))
	if err != nil {
		return fmt.Errorf("serialize: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("serialize: write %s: %w", path, err)
	}
	return nil
}

// ReadProgram deserializes a program previously written by WriteProgram.
func ReadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("serialize: read %s: %w", path, err)
	}
	var w wireProgram
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("serialize: decode: %w", err)
	}
	return fromWire(&w), nil
}

func toWire(p *ast.Program) *wireProgram {
	w := &wireProgram{Functions: make([]wireFunction, len(p.Functions))}
	for i, fn := range p.Functions {
		w.Functions[i] = wireFunctionOf(fn)
	}
	return w
}

func wireFunctionOf(fn *ast.Function) wireFunction {
	args := make([]wireParameter, len(fn.Arguments))
	for i, p := range fn.Arguments {
		args[i] = wireParameter{Name: p.Name, Private: p.Private}
	}
	stmts := make([]wireStmt, len(fn.Statements))
	for i, s := range fn.Statements {
		stmts[i] = wireStmtOf(s)
	}
	return wireFunction{ID: fn.ID, Arguments: args, Statements: stmts, ReturnCount: fn.ReturnCount}
}

func wireStmtOf(s ast.Stmt) wireStmt {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		exprs := make([]wireExpr, len(n.Exprs))
		for i, e := range n.Exprs {
			exprs[i] = wireExprOf(e)
		}
		return wireStmt{Kind: stmtReturn, Exprs: exprs}
	case *ast.DefinitionStmt:
		rhs := wireExprOf(n.Rhs)
		return wireStmt{Kind: stmtDefinition, Name: n.Name, Rhs: &rhs}
	case *ast.ConditionStmt:
		l, r := wireExprOf(n.Left), wireExprOf(n.Right)
		return wireStmt{Kind: stmtCondition, Left: &l, Right: &r}
	case *ast.ForStmt:
		body := make([]wireStmt, len(n.Body))
		for i, b := range n.Body {
			body[i] = wireStmtOf(b)
		}
		return wireStmt{Kind: stmtFor, Var: n.Var, Start: n.Start.String(), End: n.End.String(), Body: body}
	case *ast.CompilerStmt:
		rhs := wireExprOf(n.Rhs)
		return wireStmt{Kind: stmtCompiler, Name: n.Name, Rhs: &rhs}
	case *ast.MultipleDefinitionStmt:
		call := wireCallOf(n.Call)
		return wireStmt{Kind: stmtMultipleDefinition, Names: n.Names, Call: &call}
	default:
		panic("serialize: unhandled statement kind")
	}
}

func wireCallOf(c *ast.CallExpr) wireCall {
	args := make([]wireExpr, len(c.Args))
	for i, a := range c.Args {
		args[i] = wireExprOf(a)
	}
	return wireCall{Callee: c.Callee, Args: args}
}

func wireExprOf(e ast.Expr) wireExpr {
	switch n := e.(type) {
	case *ast.Number:
		return wireExpr{Kind: exprNumber, Number: n.Value.String()}
	case *ast.Identifier:
		return wireExpr{Kind: exprIdentifier, Name: n.Name}
	case *ast.BinaryExpr:
		l, r := wireExprOf(n.Left), wireExprOf(n.Right)
		return wireExpr{Kind: exprBinary, Op: int(n.Op), Left: &l, Right: &r}
	case *ast.PowExpr:
		b, ex := wireExprOf(n.Base), wireExprOf(n.Exponent)
		return wireExpr{Kind: exprPow, Base: &b, Exponent: &ex}
	case *ast.IfElseExpr:
		condL, condR := wireExprOf(n.Cond.Left), wireExprOf(n.Cond.Right)
		then, els := wireExprOf(n.Then), wireExprOf(n.Else)
		return wireExpr{Kind: exprIfElse, CondKind: int(n.Cond.Kind), CondL: &condL, CondR: &condR, Then: &then, Else: &els}
	case *ast.CallExpr:
		call := wireCallOf(n)
		return wireExpr{Kind: exprCall, Call: &call}
	default:
		panic("serialize: unhandled expression kind")
	}
}

func fromWire(w *wireProgram) *ast.Program {
	funcs := make([]*ast.Function, len(w.Functions))
	for i, fn := range w.Functions {
		funcs[i] = functionFromWire(fn)
	}
	return &ast.Program{Functions: funcs}
}

func functionFromWire(w wireFunction) *ast.Function {
	args := make([]ast.Parameter, len(w.Arguments))
	for i, p := range w.Arguments {
		args[i] = ast.Parameter{Name: p.Name, Private: p.Private}
	}
	stmts := make([]ast.Stmt, len(w.Statements))
	for i, s := range w.Statements {
		stmts[i] = stmtFromWire(s)
	}
	return &ast.Function{ID: w.ID, Arguments: args, Statements: stmts, ReturnCount: w.ReturnCount}
}

func stmtFromWire(w wireStmt) ast.Stmt {
	switch w.Kind {
	case stmtReturn:
		exprs := make([]ast.Expr, len(w.Exprs))
		for i, e := range w.Exprs {
			exprs[i] = exprFromWire(e)
		}
		return &ast.ReturnStmt{Exprs: exprs}
	case stmtDefinition:
		return &ast.DefinitionStmt{Name: w.Name, Rhs: exprFromWire(*w.Rhs)}
	case stmtCondition:
		return &ast.ConditionStmt{Left: exprFromWire(*w.Left), Right: exprFromWire(*w.Right)}
	case stmtFor:
		body := make([]ast.Stmt, len(w.Body))
		for i, b := range w.Body {
			body[i] = stmtFromWire(b)
		}
		start, err := field.FromDecimalString(w.Start)
		if err != nil {
			panic("serialize: corrupt for-loop start bound")
		}
		end, err := field.FromDecimalString(w.End)
		if err != nil {
			panic("serialize: corrupt for-loop end bound")
		}
		return &ast.ForStmt{Var: w.Var, Start: start, End: end, Body: body}
	case stmtCompiler:
		return &ast.CompilerStmt{Name: w.Name, Rhs: exprFromWire(*w.Rhs)}
	case stmtMultipleDefinition:
		call := callFromWire(*w.Call)
		return &ast.MultipleDefinitionStmt{Names: w.Names, Call: call}
	default:
		panic("serialize: unhandled statement kind")
	}
}

func callFromWire(w wireCall) *ast.CallExpr {
	args := make([]ast.Expr, len(w.Args))
	for i, a := range w.Args {
		args[i] = exprFromWire(a)
	}
	return &ast.CallExpr{Callee: w.Callee, Args: args}
}

func exprFromWire(w wireExpr) ast.Expr {
	switch w.Kind {
	case exprNumber:
		v, err := field.FromDecimalString(w.Number)
		if err != nil {
			panic("serialize: corrupt number literal")
		}
		return &ast.Number{Value: v}
	case exprIdentifier:
		return &ast.Identifier{Name: w.Name}
	case exprBinary:
		return &ast.BinaryExpr{Op: ast.BinaryOp(w.Op), Left: exprFromWire(*w.Left), Right: exprFromWire(*w.Right)}
	case exprPow:
		return &ast.PowExpr{Base: exprFromWire(*w.Base), Exponent: exprFromWire(*w.Exponent)}
	case exprIfElse:
		return &ast.IfElseExpr{
			Cond: ast.Cond{Kind: ast.CondKind(w.CondKind), Left: exprFromWire(*w.CondL), Right: exprFromWire(*w.CondR)},
			Then: exprFromWire(*w.Then),
			Else: exprFromWire(*w.Else),
		}
	case exprCall:
		return callFromWire(*w.Call)
	default:
		panic("serialize: unhandled expression kind")
	}
}
