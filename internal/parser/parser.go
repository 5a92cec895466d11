package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/flatzk/flatc/internal/ast"
)

var grammarParser = buildParser()

func buildParser() *participle.Parser[File] {
	p, err := participle.Build[File](
		participle.Lexer(sourceLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
		participle.Unquote(),
	)
	if err != nil {
		panic(fmt.Errorf("parser: failed to build grammar: %w", err))
	}
	return p
}

// ParseFile reads path and parses it as a program.
func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source (named sourceName for diagnostics) into its raw
// syntax tree. Use Parse for the converted internal/ast.Program.
func ParseSource(sourceName, source string) (*File, error) {
	return grammarParser.ParseString(sourceName, source)
}

// Parse parses source and converts it to an internal/ast.Program, the form
// the semantic checker and flattener consume.
func Parse(sourceName, source string) (*ast.Program, error) {
	file, err := ParseSource(sourceName, source)
	if err != nil {
		return nil, err
	}
	return toProgram(file)
}
