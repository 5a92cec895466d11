package diagnostics

import (
	"testing"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/stretchr/testify/assert"
)

type fakeFlattenError struct {
	msg       string
	invariant bool
}

func (e fakeFlattenError) Error() string     { return e.msg }
func (e fakeFlattenError) IsInvariant() bool { return e.invariant }

func TestFromFlattenErrorPicksCodeByKind(t *testing.T) {
	input := FromFlattenError(fakeFlattenError{msg: "bad pow exponent"})
	assert.Equal(t, "F0001", input.Code)
	assert.Equal(t, Error, input.Level)

	invariant := FromFlattenError(fakeFlattenError{msg: "callee not flat", invariant: true})
	assert.Equal(t, "F0999", invariant.Code)
}

func TestFormatErrorIncludesCodeAndMessage(t *testing.T) {
	reporter := NewErrorReporter("main.zk", "def main():\n\treturn 1\n")
	out := reporter.FormatError(CompilerError{
		Level:    Error,
		Code:     "E0001",
		Message:  "unresolved function",
		Position: ast.Position{Line: 1, Column: 1},
	})
	assert.Contains(t, out, "E0001")
	assert.Contains(t, out, "unresolved function")
}
