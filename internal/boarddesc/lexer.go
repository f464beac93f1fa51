package boarddesc

import "github.com/alecthomas/participle/v2/lexer"

// boardLexer tokenizes board descriptions. Comments run from '#' to end of line.
var boardLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	// Alternate function selectors must match before identifiers.
	{Name: "AltFunc", Pattern: `AF[0-9]+\b`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{};]`},
})
