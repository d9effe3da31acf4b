package token

import (
	"fmt"
	"strings"
)

const (
	EOF = -(iota + 1)
	EndOfStatement
	Error
	Identifier
	Keyword
	String
	Integer
	Float
	Parameter

	BarBar
	LessEqual
	LessGreater
	GreaterEqual
	EqualEqual
	BangEqual
)

const (
	Comma    = ','
	Dot      = '.'
	LParen   = '('
	RParen   = ')'
	Question = '?'
)

const (
	Minus   = '-'
	Plus    = '+'
	Star    = '*'
	Slash   = '/'
	Percent = '%'
	Equal   = '='
	Less    = '<'
	Greater = '>'
	Bar     = '|'
	Bang    = '!'
)

var names = map[rune]string{
	EOF:            "end of input",
	EndOfStatement: "';'",
	Error:          "error",
	Identifier:     "identifier",
	Keyword:        "keyword",
	String:         "string",
	Integer:        "integer",
	Float:          "float",
	Parameter:      "parameter",

	BarBar:       "||",
	LessEqual:    "<=",
	LessGreater:  "<>",
	GreaterEqual: ">=",
	EqualEqual:   "==",
	BangEqual:    "!=",
}

var (
	opRunes = map[rune]bool{
		'-': true, '+': true, '*': true, '/': true, '%': true, '=': true, '<': true,
		'>': true, '|': true, '!': true,
	}
	Operators = map[string]rune{}

	keywords = map[string]bool{
		"ALL":     true,
		"AND":     true,
		"FALSE":   true,
		"NOT":     true,
		"NULL":    true,
		"OR":      true,
		"RESET":   true,
		"SESSION": true,
		"SET":     true,
		"SHOW":    true,
		"TRUE":    true,
	}
)

func IsOpRune(r rune) bool {
	_, ok := opRunes[r]
	return ok
}

// IsKeyword returns true if s, in any case, is a keyword; keywords may only be used as
// identifiers if they are quoted.
func IsKeyword(s string) bool {
	return keywords[strings.ToUpper(s)]
}

func Format(r rune) string {
	if r > 0 {
		return fmt.Sprintf("'%c'", r)
	}
	if s, ok := names[r]; ok {
		return s
	}
	return fmt.Sprintf("token %d", r)
}

func init() {
	for _, r := range []rune{BarBar, LessEqual, LessGreater, GreaterEqual, EqualEqual, BangEqual} {
		Operators[names[r]] = r
	}
}
