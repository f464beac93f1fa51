package boarddesc

import "github.com/alecthomas/participle/v2/lexer"

// File is the syntax tree of a board description.
//
//	chip "stm32-eth";
//	instance ETH {
//		PA1 REF_CLK AF11;
//	}
type File struct {
	Pos       lexer.Position
	Chip      string          `"chip" @String ";"`
	Instances []*InstanceDecl `@@*`
}

// InstanceDecl declares one MAC peripheral instance and the pins it can use.
type InstanceDecl struct {
	Pos     lexer.Position
	Name    string       `"instance" @Ident "{"`
	Entries []*EntryDecl `@@* "}"`
}

// EntryDecl is a single "pin role alternate-function" line.
type EntryDecl struct {
	Pos  lexer.Position
	Pin  string `@Ident`
	Role string `@Ident`
	AF   string `@AltFunc ";"`
}
