// Package graph renders expression trees as Graphviz DOT text and drives the external
// rasterizer that turns that text into an image.
package graph

import (
	"fmt"
	"strings"

	"arithgraph/pkg/calc"
)

// header opens every description: top-to-bottom layout, filled record-shaped nodes.
const header = "digraph expr {\n" +
	"rankdir=TB;\n" +
	"node [shape=record, style=filled, fillcolor=seashell2];\n"

// DOT returns the graph description of the tree rooted at root.
//
// Each node is declared once, named node<ID>. Operator nodes are records with a port on
// each side of the symbol, <C0> for the left child and <C1> for the right, so an edge
// leaves from the side its child belongs to. Negation has only the <C1> port.
//
//	node3 [label="<C0>|+|<C1>"];
//	node1 [label="2"];
//	node3:C0 -> node1;
func DOT(root calc.Node) string {
	var sb strings.Builder
	sb.WriteString(header)
	writeNode(&sb, root)
	sb.WriteString("}\n")
	return sb.String()
}

func writeNode(sb *strings.Builder, n calc.Node) {
	switch n := n.(type) {
	case *calc.Number:
		fmt.Fprintf(sb, "node%d [label=\"%s\"];\n", n.ID(), escapeLabel(calc.FormatValue(n.Value)))
	case *calc.Negate:
		fmt.Fprintf(sb, "node%d [label=\"-|<C1>\"];\n", n.ID())
		writeNode(sb, n.Operand)
		writeEdge(sb, n, "C1", n.Operand)
	case *calc.BinaryOp:
		fmt.Fprintf(sb, "node%d [label=\"<C0>|%s|<C1>\"];\n", n.ID(), escapeLabel(n.Op.Symbol()))
		writeNode(sb, n.Left)
		writeEdge(sb, n, "C0", n.Left)
		writeNode(sb, n.Right)
		writeEdge(sb, n, "C1", n.Right)
	default:
		panic(fmt.Sprintf("graph: unknown node type %T", n))
	}
}

func writeEdge(sb *strings.Builder, parent calc.Node, port string, child calc.Node) {
	fmt.Fprintf(sb, "node%d:%s -> node%d;\n", parent.ID(), port, child.ID())
}

// escapeLabel protects the characters that are structural inside a record label.
func escapeLabel(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '{', '}', '|', '<', '>', '"', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
