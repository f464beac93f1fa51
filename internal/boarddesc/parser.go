// Package boarddesc parses board descriptions: the build-time list of
// (instance, pin, signal role, alternate function) entries supported by a chip.
package boarddesc

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser parses board description files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new board description parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(boardLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a board description from r. filename is used in error positions.
func (p *Parser) Parse(filename string, r io.Reader) (*File, error) {
	file, err := p.parser.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseString parses a board description held in a string.
func (p *Parser) ParseString(filename, input string) (*File, error) {
	file, err := p.parser.ParseString(filename, input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses the board description at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return p.Parse(path, f)
}

// Load parses and validates the board description at path.
func Load(path string) (*Board, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return file.Board()
}
