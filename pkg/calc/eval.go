package calc

import (
	"fmt"
	"strconv"
)

// Evaluate walks the tree rooted at n and returns its value. It has no side effects.
// Operands are evaluated left before right. Division follows IEEE-754, so dividing by
// zero yields ±Inf or NaN rather than an error.
func Evaluate(n Node) float64 {
	switch n := n.(type) {
	case *Number:
		return n.Value
	case *Negate:
		return Evaluate(n.Operand) * -1
	case *BinaryOp:
		left := Evaluate(n.Left)
		right := Evaluate(n.Right)
		switch n.Op {
		case Add:
			return left + right
		case Sub:
			return left - right
		case Mul:
			return left * right
		case Div:
			return left / right
		}
		panic(fmt.Sprintf("calc: unknown operator %v", n.Op))
	}
	panic(fmt.Sprintf("calc: unknown node type %T", n))
}

// FormatValue renders v with the fewest digits that parse back to the same float64.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
