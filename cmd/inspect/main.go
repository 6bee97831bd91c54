package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"arithgraph/pkg/calc"
	"arithgraph/pkg/graph"
)

const testSource = `2 + 3 * 4;
-(1.5 - [4 / 2]) evaluar
evaluar[10 - 3 - 2];
`

// memGraph keeps graph descriptions in memory instead of writing files.
type memGraph struct {
	names []string
	dots  []string
}

func (m *memGraph) Export(root calc.Node) string {
	name := fmt.Sprintf("graf%d.dot", len(m.names)+1)
	m.names = append(m.names, name)
	m.dots = append(m.dots, graph.DOT(root))
	return name
}

func main() {
	showTokens := flag.Bool("tokens", true, "print the token stream")
	showAST := flag.Bool("ast", true, "dump each statement tree")
	showDOT := flag.Bool("dot", false, "print the graph description of every export")
	flag.Parse()

	src := testSource
	if flag.NArg() > 0 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
	}

	fmt.Printf("Source:\n%s\n", src)

	if *showTokens {
		tokens, err := calc.Lex(src, calc.NewReporter(os.Stderr))
		if err != nil {
			fmt.Fprintln(os.Stderr, "lex error:", err)
			os.Exit(1)
		}
		fmt.Printf("Tokens (%d)\n", len(tokens))
		for _, tok := range tokens {
			fmt.Println(" ", tok)
		}
		fmt.Println()
	}

	// Lexical errors were already shown with the tokens.
	diag := calc.NewReporter(os.Stderr)
	if *showTokens {
		diag = calc.NewReporter(nil)
	}
	graphs := &memGraph{}
	p := calc.NewParser(calc.NewScanner(strings.NewReader(src), diag), nil, diag, graphs)
	stmts, err := p.ParseProgram()
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		os.Exit(1)
	}

	dump := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	fmt.Println("Statements")
	for _, s := range stmts {
		fmt.Printf("  line %d: %s = %s\n", s.Line, s.Tree, calc.FormatValue(calc.Evaluate(s.Tree)))
		if *showAST {
			dump.Fdump(os.Stdout, s.Tree)
		}
		if s.Export {
			graphs.Export(s.Tree)
		}
	}
	fmt.Println()

	if *showDOT {
		for i, name := range graphs.names {
			fmt.Printf("%s\n%s\n", name, graphs.dots[i])
		}
	}
}
