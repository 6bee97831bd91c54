package calc

import "fmt"

// Op is a binary arithmetic operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
)

// Symbol returns the operator as written in source.
func (o Op) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

func (o Op) String() string { return o.Symbol() }

// Node is implemented by the three expression tree variants: *Number, *Negate and
// *BinaryOp. The set is closed; code that switches on Node handles exactly these.
//
// ID is the sequence number assigned by the Builder that created the node. It names the
// node in rendered graphs and plays no part in evaluation.
type Node interface {
	ID() int
	String() string
	exprNode()
}

// Number is a numeric literal leaf.
//
//	2.5 * 4
//	^^^  Number{Value: 2.5}
type Number struct {
	id    int
	Value float64
}

func (*Number) exprNode()        {}
func (n *Number) ID() int        { return n.id }
func (n *Number) String() string { return FormatValue(n.Value) }

// Negate is unary minus applied to Operand.
type Negate struct {
	id      int
	Operand Node
}

func (*Negate) exprNode()        {}
func (n *Negate) ID() int        { return n.id }
func (n *Negate) String() string { return fmt.Sprintf("(-%s)", n.Operand) }

// BinaryOp represents Left Op Right.
//
//	x + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryOp struct {
	id    int
	Op    Op
	Left  Node
	Right Node
}

func (*BinaryOp) exprNode() {}
func (b *BinaryOp) ID() int { return b.id }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Builder constructs tree nodes and hands out their ids, starting at 1 and strictly
// increasing. Children are always built before their parent, so a parent's id is larger
// than any id in its subtrees. One Builder should serve a whole run so that every graph
// produced in that run uses distinct node names.
type Builder struct {
	last int
}

func (b *Builder) nextID() int {
	b.last++
	return b.last
}

// Number creates a literal leaf.
func (b *Builder) Number(v float64) *Number {
	return &Number{id: b.nextID(), Value: v}
}

// Negate creates a unary minus node that owns operand.
func (b *Builder) Negate(operand Node) *Negate {
	return &Negate{id: b.nextID(), Operand: operand}
}

// Binary creates a binary operator node that owns left and right.
func (b *Builder) Binary(op Op, left, right Node) *BinaryOp {
	return &BinaryOp{id: b.nextID(), Op: op, Left: left, Right: right}
}

// Last returns the most recently assigned id, 0 if none.
func (b *Builder) Last() int { return b.last }

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	switch n := n.(type) {
	case *Number:
		return 1
	case *Negate:
		return 1 + Count(n.Operand)
	case *BinaryOp:
		return 1 + Count(n.Left) + Count(n.Right)
	}
	panic(fmt.Sprintf("calc: unknown node type %T", n))
}
