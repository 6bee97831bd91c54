package calc

import (
	"errors"
	"strconv"
)

// Grapher renders a tree as a graph and returns the path of the image it produced.
type Grapher interface {
	Export(root Node) string
}

// Statement is one parsed statement.
type Statement struct {
	Tree   Node
	Export bool // terminated by "evaluar", or written as evaluar[ ... ];
	Line   int  // line of the statement's first token

	// Subgraphs holds the image paths of bracketed sub-expressions exported while the
	// statement was parsed, in source order.
	Subgraphs []string
}

// errSyntax marks a statement that was abandoned after a syntax diagnostic.
var errSyntax = errors.New("syntax error")

// Parser builds one expression tree per statement, pulling tokens from the Scanner only
// when it needs the next one.
//
// Grammar:
//
//	program    = statement* EOF
//	statement  = expression (";" | "evaluar")
//	           | "evaluar" "[" expression "]" ";"
//	expression = term (("+" | "-") term)*
//	term       = factor (("*" | "/") factor)*
//	factor     = "-" factor
//	           | "(" expression ")"
//	           | "[" expression "]"      exported through the Grapher, then used as an operand
//	           | INTEGER | DECIMAL
type Parser struct {
	sc    *Scanner
	b     *Builder
	diag  *Reporter
	graph Grapher

	cur    Token
	loaded bool  // cur holds a token that has not been consumed
	err    error // sticky read error from the Scanner

	subgraphs []string
}

// NewParser creates a Parser over sc. Nodes are allocated from b (a fresh Builder when
// nil), syntax errors go to diag (the Scanner's reporter when nil) and bracketed
// sub-expressions are exported through g, which may be nil.
func NewParser(sc *Scanner, b *Builder, diag *Reporter, g Grapher) *Parser {
	if b == nil {
		b = &Builder{}
	}
	if diag == nil {
		diag = sc.diag
	}
	return &Parser{sc: sc, b: b, diag: diag, graph: g}
}

// peek returns the current token without consuming it. A read failure is recorded in
// p.err and surfaces as EOF.
func (p *Parser) peek() Token {
	if !p.loaded {
		tok, err := p.sc.Next()
		if err != nil {
			p.err = err
			tok = Token{Type: EOF, Line: p.sc.line, Column: p.sc.col}
		}
		p.cur = tok
		p.loaded = true
	}
	return p.cur
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Type != EOF {
		p.loaded = false
	}
	return tok
}

// fail reports a syntax error at tok, unless the real cause is a read failure.
func (p *Parser) fail(tok Token, format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	p.diag.syntax(tok, format, args...)
	return errSyntax
}

// expect consumes the current token if it matches tt, otherwise reports a syntax error.
func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.fail(tok, "expected %s, got %s", what, tok.describe())
	}
	return p.advance(), nil
}

// Next returns the next well-formed statement, or nil at end of input. Malformed
// statements are reported and skipped. The error is non-nil only when the source could
// not be read.
func (p *Parser) Next() (*Statement, error) {
	for {
		if p.peek().Type == EOF {
			return nil, p.err
		}
		stmt, err := p.parseStatement()
		if err == nil {
			return stmt, nil
		}
		if !errors.Is(err, errSyntax) {
			return nil, err
		}
		p.synchronize()
	}
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() ([]*Statement, error) {
	var stmts []*Statement
	for {
		stmt, err := p.Next()
		if err != nil {
			return stmts, err
		}
		if stmt == nil {
			return stmts, nil
		}
		stmts = append(stmts, stmt)
	}
}

// synchronize discards tokens up to and including the next ";".
func (p *Parser) synchronize() {
	for {
		tok := p.advance()
		if tok.Type == EOF || tok.Type == SEMICOLON {
			return
		}
	}
}

func (p *Parser) parseStatement() (*Statement, error) {
	p.subgraphs = nil
	first := p.peek()

	if first.Type == EVALUAR {
		return p.parseEvaluar()
	}

	tree, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	stmt := &Statement{Tree: tree, Line: first.Line}
	switch tok := p.peek(); tok.Type {
	case SEMICOLON:
		p.advance()
	case EVALUAR:
		p.advance()
		stmt.Export = true
	default:
		return nil, p.fail(tok, "expected \";\" or \"evaluar\", got %s", tok.describe())
	}
	stmt.Subgraphs = p.subgraphs
	return stmt, nil
}

// parseEvaluar handles the prefix form: evaluar [ expression ] ;
func (p *Parser) parseEvaluar() (*Statement, error) {
	first := p.advance()
	if _, err := p.expect(LBRACKET, "\"[\""); err != nil {
		return nil, err
	}
	tree, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RBRACKET, "\"]\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "\";\""); err != nil {
		return nil, err
	}
	return &Statement{Tree: tree, Export: true, Line: first.Line, Subgraphs: p.subgraphs}, nil
}

// parseExpression handles + and -, left-associative.
func (p *Parser) parseExpression() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().Type {
		case PLUS:
			op = Add
		case MINUS:
			op = Sub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = p.b.Binary(op, left, right)
	}
}

// parseTerm handles * and /, left-associative.
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().Type {
		case STAR:
			op = Mul
		case SLASH:
			op = Div
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = p.b.Binary(op, left, right)
	}
}

func (p *Parser) parseFactor() (Node, error) {
	tok := p.peek()
	switch tok.Type {
	case MINUS:
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return p.b.Negate(operand), nil

	case LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "\")\""); err != nil {
			return nil, err
		}
		return expr, nil

	case LBRACKET:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RBRACKET, "\"]\""); err != nil {
			return nil, err
		}
		if p.graph != nil {
			p.subgraphs = append(p.subgraphs, p.graph.Export(expr))
		}
		return expr, nil

	case INTEGER, DECIMAL:
		p.advance()
		// Literals too large for float64 come back as ±Inf with ErrRange; the value is kept.
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, p.fail(tok, "invalid number %q", tok.Lexeme)
		}
		return p.b.Number(v), nil

	default:
		return nil, p.fail(tok, "expected expression, got %s", tok.describe())
	}
}
