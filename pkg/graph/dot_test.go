package graph

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"arithgraph/pkg/calc"
)

var (
	declRe = regexp.MustCompile(`(?m)^node(\d+) \[label="(.*)"\];$`)
	edgeRe = regexp.MustCompile(`(?m)^node(\d+):(C[01]) -> node(\d+);$`)
)

func parseOne(t *testing.T, src string) calc.Node {
	t.Helper()
	diag := calc.NewReporter(nil)
	p := calc.NewParser(calc.NewScanner(strings.NewReader(src), diag), nil, diag, nil)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	require.Empty(t, diag.Diagnostics())
	require.Len(t, stmts, 1)
	return stmts[0].Tree
}

func TestDOTSingleNumber(t *testing.T) {
	b := &calc.Builder{}
	got := DOT(b.Number(42))

	want := "digraph expr {\n" +
		"rankdir=TB;\n" +
		"node [shape=record, style=filled, fillcolor=seashell2];\n" +
		"node1 [label=\"42\"];\n" +
		"}\n"
	require.Equal(t, want, got)
}

func TestDOTPorts(t *testing.T) {
	b := &calc.Builder{}
	two := b.Number(2)
	three := b.Number(3)
	neg := b.Negate(three)
	root := b.Binary(calc.Mul, two, neg)

	got := DOT(root)
	require.Contains(t, got, "node4 [label=\"<C0>|*|<C1>\"];\n")
	require.Contains(t, got, "node3 [label=\"-|<C1>\"];\n")
	require.Contains(t, got, "node4:C0 -> node1;\n")
	require.Contains(t, got, "node4:C1 -> node3;\n")
	require.Contains(t, got, "node3:C1 -> node2;\n")
	require.NotContains(t, got, "node3:C0")

	// Parents are declared before their children.
	require.Less(t, strings.Index(got, "node4 ["), strings.Index(got, "node1 ["))
	require.Less(t, strings.Index(got, "node3 ["), strings.Index(got, "node2 ["))
}

func TestDOTShape(t *testing.T) {
	for _, src := range []string{
		"7;",
		"-7;",
		"1+2*3;",
		"(1.5 - -2) / (4 * (3 - 1));",
		"--(8/2/2);",
	} {
		t.Run(src, func(t *testing.T) {
			root := parseOne(t, src)
			n := calc.Count(root)
			got := DOT(root)

			decls := declRe.FindAllStringSubmatch(got, -1)
			edges := edgeRe.FindAllStringSubmatch(got, -1)
			require.Len(t, decls, n, "one declaration per node")
			require.Len(t, edges, n-1, "one edge per non-root node")

			seen := map[string]bool{}
			for _, d := range decls {
				require.False(t, seen[d[1]], "node%s declared twice", d[1])
				seen[d[1]] = true
			}
			targets := map[string]bool{}
			for _, e := range edges {
				require.True(t, seen[e[1]], "edge from undeclared node%s", e[1])
				require.True(t, seen[e[3]], "edge to undeclared node%s", e[3])
				require.False(t, targets[e[3]], "node%s has two parents", e[3])
				targets[e[3]] = true
			}
			require.True(t, strings.HasSuffix(got, "}\n"))
		})
	}
}

func TestDOTSharedBuilderKeepsNamesDistinct(t *testing.T) {
	b := &calc.Builder{}
	first := DOT(b.Binary(calc.Add, b.Number(1), b.Number(2)))
	second := DOT(b.Number(1))

	require.Contains(t, first, "node3 ")
	require.Contains(t, second, "node4 [label=\"1\"]")
}

func TestEscapeLabel(t *testing.T) {
	require.Equal(t, `\<C0\>\|\{x\}\"\\`, escapeLabel(`<C0>|{x}"\`))
	require.Equal(t, "+Inf", escapeLabel("+Inf"))
}
