// Package lexer tokenizes .fol source text. It is the out-of-core-scope
// "external collaborator" described in spec §6; kept minimal but complete
// enough to drive the CLI end to end.
package lexer

import "github.com/folidity-lang/folidity/internal/source"

type Kind int

const (
	EOF Kind = iota
	Ident
	Number
	Float
	StringLit
	CharLit
	HexLit
	AddressLit

	// punctuation / operators
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	LAngle
	RAngle
	Comma
	Colon
	Semicolon
	Dot
	DotDot
	Arrow     // ->
	PipeArrow // :>
	At
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	Eq
	Ne
	Le
	Ge
	Not
	And
	Or
	Pipe
)

type Token struct {
	Kind Kind
	Text string
	Span source.Span
}

var keywords = map[string]bool{
	"model": true, "state": true, "enum": true, "fn": true,
	"mapping": true, "list": true, "set": true, "int": true,
	"uint": true, "float": true, "string": true, "address": true,
	"hex": true, "char": true, "bool": true, "unit": true,
}

// IsKeyword reports whether name is a reserved type/declaration keyword
// (spec §4.1 "reserved names").
func IsKeyword(name string) bool { return keywords[name] }
