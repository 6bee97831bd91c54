package calc

import "fmt"

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	INTEGER // [0-9]+
	DECIMAL // [0-9]+ "." [0-9]+

	// Paired delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]

	// Arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /

	// Statement terminators
	SEMICOLON // ;
	EVALUAR   // "evaluar", any letter case
)

var tokenNames = [...]string{
	EOF:       "EOF",
	INTEGER:   "INTEGER",
	DECIMAL:   "DECIMAL",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	STAR:      "STAR",
	SLASH:     "SLASH",
	SEMICOLON: "SEMICOLON",
	EVALUAR:   "EVALUAR",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Scanner.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Column int    // 1-based column of the first rune
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-10q  line %d, column %d", t.Type, t.Lexeme, t.Line, t.Column)
}

// describe renders the token the way diagnostics quote it.
func (t Token) describe() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Lexeme)
}
