// Package flatten implements the core transformation of the toolchain: it
// lowers a surface-language ast.Program into a flat Program in which every
// statement satisfies the R1CS-shape invariants (ast.IsFlatFunction). A
// Flattener holds only program-wide state (the bit-width and the
// function-call counters); a per-function context owns the name
// environment and statement buffer for the duration of one flattenFunction
// call.
package flatten

import (
	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/nameenv"
)

// Flattener holds the state that must survive across function boundaries:
// the field's bit-width (which parameterizes the less-than gadget) and the
// program-wide call counters the inliner uses to give every call site a
// unique variable namespace.
type Flattener struct {
	bits          int
	functionCalls map[string]int
}

// New returns a Flattener parameterized by bits, the number of bits needed
// to represent the field's maximum value.
func New(bits int) *Flattener {
	return &Flattener{
		bits:          bits,
		functionCalls: make(map[string]int),
	}
}

// context carries the per-function mutable state: the name environment, the
// growing flat statement buffer, the caller's own (already-flat) parameter
// list, and a read-only view of functions flattened so far for the inliner
// to search.
type context struct {
	f         *Flattener
	env       *nameenv.Env
	buf       []ast.Stmt
	arguments []ast.Parameter
	flattened []*ast.Function
}

// emit appends a flat statement to the current function's buffer.
func (c *context) emit(s ast.Stmt) {
	c.buf = append(c.buf, s)
}

// FlattenProgram flattens every function in prog in declaration order,
// appending each to the list later functions' call sites are resolved
// against. The source language therefore requires callees to be declared
// before callers.
func (f *Flattener) FlattenProgram(prog *ast.Program) (*ast.Program, error) {
	out := make([]*ast.Function, 0, len(prog.Functions))
	for _, fn := range prog.Functions {
		flat, err := f.FlattenFunction(out, fn)
		if err != nil {
			return nil, err
		}
		out = append(out, flat)
	}
	return &ast.Program{Functions: out}, nil
}

// FlattenFunction flattens a single function. functionsFlattened must
// contain every function fn is allowed to call, already in flat form.
func (f *Flattener) FlattenFunction(functionsFlattened []*ast.Function, fn *ast.Function) (*ast.Function, error) {
	args := make([]ast.Parameter, len(fn.Arguments))
	copy(args, fn.Arguments)

	c := &context{
		f:         f,
		env:       nameenv.New(),
		arguments: args,
		flattened: functionsFlattened,
	}

	for _, stmt := range fn.Statements {
		if err := c.flattenStatement(stmt); err != nil {
			return nil, err
		}
	}

	return &ast.Function{
		ID:          fn.ID,
		Arguments:   args,
		Statements:  c.buf,
		ReturnCount: fn.ReturnCount,
	}, nil
}
