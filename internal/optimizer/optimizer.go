// Package optimizer implements the post-flattening synonym-elimination
// pass: the flattener deliberately leaves pure-synonym Definitions
// (Definition(v, Identifier(w))) in its output, and this pass removes them,
// renaming every later reference and compacting the surviving variables
// onto fresh sequential indices. Unlike the flattener, which processes every
// function, it only ever runs on "main".
package optimizer

import (
	"fmt"

	"github.com/flatzk/flatc/internal/ast"
)

// Optimizer holds the per-function synonym map and fresh-index counter. A
// fresh Optimizer must be used per function, mirroring the reference's
// per-call reset of its substitution map and counter.
type Optimizer struct {
	substitution map[string]string
	nextVarIdx   int
}

// New returns an empty Optimizer.
func New() *Optimizer {
	return &Optimizer{substitution: make(map[string]string)}
}

// OptimizeProgram filters prog down to its entry point and optimizes it: the
// reference only ever optimizes "main" because every other function has
// already been inlined away by the flattener.
func OptimizeProgram(prog *ast.Program) (*ast.Program, error) {
	for _, fn := range prog.Functions {
		if fn.ID == "main" {
			optimized, err := New().OptimizeFunction(fn)
			if err != nil {
				return nil, err
			}
			return &ast.Program{Functions: []*ast.Function{optimized}}, nil
		}
	}
	return nil, fmt.Errorf("optimizer: program has no main function")
}

func (o *Optimizer) fresh() string {
	name := fmt.Sprintf("_%d", o.nextVarIdx)
	o.nextVarIdx++
	return name
}

// OptimizeFunction seeds the substitution map from fn's arguments (each
// becomes its own fresh "_<k>" name), then makes a single pass over the
// body: each Definition(v, Identifier(w)) is dropped and v is mapped to w's
// already-resolved name; every other definition gets a fresh name, and every
// kept statement is rewritten under the map built so far.
func (o *Optimizer) OptimizeFunction(fn *ast.Function) (*ast.Function, error) {
	args := make([]ast.Parameter, len(fn.Arguments))
	for i, p := range fn.Arguments {
		newName := o.fresh()
		o.substitution[p.Name] = newName
		args[i] = ast.Parameter{Name: newName, Private: p.Private}
	}

	kept := make([]ast.Stmt, 0, len(fn.Statements))
	for _, stmt := range fn.Statements {
		switch s := stmt.(type) {
		case *ast.DefinitionStmt:
			if id, ok := s.Rhs.(*ast.Identifier); ok {
				target, known := o.substitution[id.Name]
				if !known {
					target = id.Name
				}
				o.substitution[s.Name] = target
				continue
			}
			newName := o.fresh()
			rewritten := ast.ApplyToExpr(s.Rhs, o.substitution)
			o.substitution[s.Name] = newName
			kept = append(kept, &ast.DefinitionStmt{Name: newName, Rhs: rewritten})

		case *ast.CompilerStmt:
			newName := o.fresh()
			rewritten := ast.ApplyToExpr(s.Rhs, o.substitution)
			o.substitution[s.Name] = newName
			kept = append(kept, &ast.CompilerStmt{Name: newName, Rhs: rewritten})

		case *ast.ConditionStmt:
			kept = append(kept, &ast.ConditionStmt{
				Left:  ast.ApplyToExpr(s.Left, o.substitution),
				Right: ast.ApplyToExpr(s.Right, o.substitution),
			})

		case *ast.ReturnStmt:
			kept = append(kept, &ast.ReturnStmt{Exprs: ast.ApplyToExprList(s.Exprs, o.substitution)})

		default:
			return nil, fmt.Errorf("optimizer: unexpected statement kind in flattened function")
		}
	}

	return &ast.Function{
		ID:          fn.ID,
		Arguments:   args,
		Statements:  kept,
		ReturnCount: fn.ReturnCount,
	}, nil
}
