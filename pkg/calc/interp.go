package calc

import (
	"fmt"
	"io"
)

// Result is the outcome of one evaluated statement.
type Result struct {
	Line      int
	Tree      Node
	Value     float64
	Image     string   // set when the whole statement was exported
	Subgraphs []string // bracket exports made while parsing the statement
}

// Interpreter runs a program statement by statement: parse, evaluate, export.
type Interpreter struct {
	Out   io.Writer // receives "result:" and "graph:" lines; nil discards
	Diag  *Reporter // lexical and syntax errors; nil records without printing
	Graph Grapher   // nil disables graph export
}

// Run interprets every statement in r. Malformed statements are reported and skipped;
// the error is non-nil only when r fails. Results gathered before a read failure are
// still returned.
func (in *Interpreter) Run(r io.Reader) ([]Result, error) {
	if in.Diag == nil {
		in.Diag = NewReporter(nil)
	}
	out := in.Out
	if out == nil {
		out = io.Discard
	}

	p := NewParser(NewScanner(r, in.Diag), &Builder{}, in.Diag, in.Graph)
	var results []Result
	for {
		stmt, err := p.Next()
		if err != nil {
			return results, err
		}
		if stmt == nil {
			return results, nil
		}

		res := Result{
			Line:      stmt.Line,
			Tree:      stmt.Tree,
			Value:     Evaluate(stmt.Tree),
			Subgraphs: stmt.Subgraphs,
		}
		for _, path := range stmt.Subgraphs {
			fmt.Fprintf(out, "graph: %s\n", path)
		}
		fmt.Fprintf(out, "result: %s\n", FormatValue(res.Value))
		if stmt.Export && in.Graph != nil {
			res.Image = in.Graph.Export(stmt.Tree)
			fmt.Fprintf(out, "graph: %s\n", res.Image)
		}
		results = append(results, res)
	}
}
