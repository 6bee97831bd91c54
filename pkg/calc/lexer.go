package calc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// keyword is the reevaluate marker. It is matched without regard to letter case.
const keyword = "evaluar"

// singles maps each one-rune token to its TokenType.
var singles = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACKET,
	']': RBRACKET,
	';': SEMICOLON,
}

// srcRune is a rune together with the position it was read from.
type srcRune struct {
	r    rune
	line int
	col  int
}

// Scanner turns a character stream into tokens on demand.
// The Parser pulls one token at a time with Next; the Scanner in turn pulls one rune at a
// time from a buffered reader.
type Scanner struct {
	in      *bufio.Reader
	pending []srcRune // pushed-back runes; the last element is read next
	diag    *Reporter

	line   int // position of the next rune taken from in
	col    int
	lastCR bool // previous rune was '\r', so a following '\n' is the same line break
	err    error
}

// NewScanner creates a Scanner reading from r. Lexical errors go to diag; a nil diag
// records them without printing.
func NewScanner(r io.Reader, diag *Reporter) *Scanner {
	if diag == nil {
		diag = NewReporter(nil)
	}
	return &Scanner{in: bufio.NewReader(r), diag: diag, line: 1, col: 1}
}

// read consumes one rune. ok is false at end of input.
func (s *Scanner) read() (c srcRune, ok bool, err error) {
	if n := len(s.pending); n > 0 {
		c = s.pending[n-1]
		s.pending = s.pending[:n-1]
		return c, true, nil
	}
	if s.err != nil {
		return srcRune{}, false, s.err
	}
	r, _, err := s.in.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return srcRune{}, false, nil
		}
		s.err = fmt.Errorf("read source at line %d, column %d: %w", s.line, s.col, err)
		return srcRune{}, false, s.err
	}

	c = srcRune{r: r, line: s.line, col: s.col}
	switch r {
	case '\r':
		s.line++
		s.col = 1
		s.lastCR = true
	case '\n':
		if !s.lastCR {
			s.line++
		}
		s.col = 1
		s.lastCR = false
	default:
		s.col++
		s.lastCR = false
	}
	return c, true, nil
}

// unread pushes runes back so that cs[0] is the next rune read.
func (s *Scanner) unread(cs ...srcRune) {
	for i := len(cs) - 1; i >= 0; i-- {
		s.pending = append(s.pending, cs[i])
	}
}

// peek returns the next rune without consuming it.
func (s *Scanner) peek() (srcRune, bool, error) {
	c, ok, err := s.read()
	if ok {
		s.unread(c)
	}
	return c, ok, err
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Next skips whitespace and comments and returns the next Token. At end of input it
// returns an EOF token. The only error is an unrecoverable read failure; unrecognised
// characters are reported to the diagnostics channel and skipped.
func (s *Scanner) Next() (Token, error) {
	for {
		c, ok, err := s.read()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			return Token{Type: EOF, Line: s.line, Column: s.col}, nil
		}

		switch {
		case isSpace(c.r):
			continue
		case c.r == '/':
			skipped, err := s.skipComment()
			if err != nil {
				return Token{}, err
			}
			if skipped {
				continue
			}
			return Token{Type: SLASH, Lexeme: "/", Line: c.line, Column: c.col}, nil
		case isDigit(c.r):
			return s.scanNumber(c)
		case unicode.ToLower(c.r) == rune(keyword[0]):
			tok, matched, err := s.scanKeyword(c)
			if err != nil {
				return Token{}, err
			}
			if matched {
				return tok, nil
			}
		default:
			if tt, ok := singles[c.r]; ok {
				return Token{Type: tt, Lexeme: string(c.r), Line: c.line, Column: c.col}, nil
			}
		}

		s.diag.lexical(string(c.r), c.line, c.col)
	}
}

// skipComment is called after a '/' has been consumed. It discards a "//" line comment
// or a "/* */" block comment and reports whether it did. An unterminated block comment
// is pushed back so the '/' stands alone.
func (s *Scanner) skipComment() (bool, error) {
	c, ok, err := s.read()
	if err != nil || !ok {
		return false, err
	}

	switch c.r {
	case '/':
		for {
			c, ok, err := s.read()
			if err != nil {
				return false, err
			}
			if !ok || c.r == '\n' {
				return true, nil
			}
		}
	case '*':
		seen := []srcRune{c}
		prevStar := false
		for {
			c, ok, err := s.read()
			if err != nil {
				return false, err
			}
			if !ok {
				s.unread(seen...)
				return false, nil
			}
			seen = append(seen, c)
			if prevStar && c.r == '/' {
				return true, nil
			}
			prevStar = c.r == '*'
		}
	}

	s.unread(c)
	return false, nil
}

// scanNumber collects an INTEGER or DECIMAL literal whose first digit is first.
// A '.' only belongs to the literal when a digit follows it.
func (s *Scanner) scanNumber(first srcRune) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first.r)
	if err := s.collectDigits(&sb); err != nil {
		return Token{}, err
	}

	tt := INTEGER
	dot, ok, err := s.read()
	if err != nil {
		return Token{}, err
	}
	if ok && dot.r == '.' {
		next, ok, err := s.peek()
		if err != nil {
			return Token{}, err
		}
		if ok && isDigit(next.r) {
			tt = DECIMAL
			sb.WriteRune('.')
			if err := s.collectDigits(&sb); err != nil {
				return Token{}, err
			}
		} else {
			s.unread(dot)
		}
	} else if ok {
		s.unread(dot)
	}

	return Token{Type: tt, Lexeme: sb.String(), Line: first.line, Column: first.col}, nil
}

func (s *Scanner) collectDigits(sb *strings.Builder) error {
	for {
		c, ok, err := s.read()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if !isDigit(c.r) {
			s.unread(c)
			return nil
		}
		sb.WriteRune(c.r)
	}
}

// scanKeyword tries to match the reevaluate keyword starting at first. On a mismatch
// every rune after first is pushed back and matched is false.
func (s *Scanner) scanKeyword(first srcRune) (tok Token, matched bool, err error) {
	seen := []srcRune{first}
	for i := 1; i < len(keyword); i++ {
		c, ok, err := s.read()
		if err != nil {
			return Token{}, false, err
		}
		if ok {
			seen = append(seen, c)
		}
		if !ok || unicode.ToLower(c.r) != rune(keyword[i]) {
			s.unread(seen[1:]...)
			return Token{}, false, nil
		}
	}

	lexeme := make([]rune, len(seen))
	for i, c := range seen {
		lexeme[i] = c.r
	}
	return Token{Type: EVALUAR, Lexeme: string(lexeme), Line: first.line, Column: first.col}, true, nil
}

// Lex scans src to completion and returns all tokens including the final EOF token.
func Lex(src string, diag *Reporter) ([]Token, error) {
	s := NewScanner(strings.NewReader(src), diag)
	var tokens []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
