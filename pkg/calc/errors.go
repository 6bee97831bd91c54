package calc

import (
	"fmt"
	"io"
)

// DiagnosticKind separates recoverable scanner errors from recoverable parser errors.
type DiagnosticKind int

const (
	LexicalError DiagnosticKind = iota
	SyntaxError
)

func (k DiagnosticKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a single recovered error tied to a source position.
//
//	2 + # 3;
//	    ^  Diagnostic{Kind: LexicalError, Text: "#", Line: 1, Column: 5}
type Diagnostic struct {
	Kind   DiagnosticKind
	Text   string // offending source text, empty at end of input
	Line   int
	Column int
	Msg    string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s at line %d, column %d", d.Kind, d.Msg, d.Line, d.Column)
}

// Reporter is the append-only diagnostics channel shared by the Scanner and Parser.
// Lines are written in the order errors are found, which is input order.
type Reporter struct {
	w     io.Writer
	diags []*Diagnostic
}

// NewReporter returns a Reporter writing one line per diagnostic to w.
// A nil w only records.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) report(d *Diagnostic) {
	r.diags = append(r.diags, d)
	if r.w != nil {
		fmt.Fprintln(r.w, d.Error())
	}
}

func (r *Reporter) lexical(text string, line, col int) {
	r.report(&Diagnostic{
		Kind:   LexicalError,
		Text:   text,
		Line:   line,
		Column: col,
		Msg:    fmt.Sprintf("unexpected character %q", text),
	})
}

func (r *Reporter) syntax(tok Token, format string, args ...any) {
	text := tok.Lexeme
	if tok.Type == EOF {
		text = ""
	}
	r.report(&Diagnostic{
		Kind:   SyntaxError,
		Text:   text,
		Line:   tok.Line,
		Column: tok.Column,
		Msg:    fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns everything reported so far.
func (r *Reporter) Diagnostics() []*Diagnostic { return r.diags }

// Count returns the number of diagnostics of the given kind.
func (r *Reporter) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range r.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
