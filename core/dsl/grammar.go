// Package dsl parses trial count expressions such as "1_000_000", "250k" or "3b".
package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// CountExpr is a non-negative integer, optionally grouped with underscores
// and followed by a scale suffix.
type CountExpr struct {
	Groups []string `parser:"@Int ( \"_\" @Int )*"`
	Scale  *string  `parser:"@Scale?"`
}

var scales = map[string]int64{
	"k": 1_000,
	"m": 1_000_000,
	"b": 1_000_000_000,
}

var countLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Sep", Pattern: `_`},
	{Name: "Scale", Pattern: `[kmbKMB]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// CountParser is the exported participle parser for count expressions.
var CountParser = participle.MustBuild[CountExpr](
	participle.Lexer(countLexer),
	participle.Elide("whitespace"),
)
