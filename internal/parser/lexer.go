package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// sourceLexer tokenizes the surface language: a single statefulness level
// is enough since the grammar has no string literals or nested comment
// forms to track.
var sourceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Int", `[0-9]+`, nil},
		{"Pow", `\*\*`, nil},
		{"Range", `\.\.`, nil},
		{"Eq", `==`, nil},
		{"Punct", `[+\-*/<(),:=]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
