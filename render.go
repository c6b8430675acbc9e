package expression

import "strings"

func (n *Value[T]) String() string    { return DomainOf[T]().Format(n.v) }
func (n *Variable[T]) String() string { return n.name }

func (n *Function[T]) String() string {
	return n.kind.String() + "(" + n.arg.String() + ")"
}

// String renders n with the fewest parentheses that keep it unambiguous
// under the left-to-right reading of the operators.
func (n *Operation[T]) String() string {
	var sb strings.Builder
	switch n.kind {
	case OpAdd:
		sb.WriteString(n.left.String())
		sb.WriteString(opSymbols[n.kind])
		sb.WriteString(n.right.String())
	case OpSub:
		sb.WriteString(n.left.String())
		sb.WriteString(opSymbols[n.kind])
		writeOperand(&sb, n.right, isAdditive[T])
	case OpMul:
		if juxtaposed(n) {
			sb.WriteString(n.left.String())
			sb.WriteString(n.right.String())
			break
		}
		writeOperand(&sb, n.left, isNonProduct[T])
		sb.WriteString(opSymbols[n.kind])
		writeOperand(&sb, n.right, isNonProduct[T])
	default:
		writeOperand(&sb, n.left, isOperation[T])
		sb.WriteString(opSymbols[n.kind])
		writeOperand(&sb, n.right, isOperation[T])
	}
	return sb.String()
}

func writeOperand[T Number](sb *strings.Builder, n Node[T], wrap func(Node[T]) bool) {
	if wrap(n) {
		sb.WriteString("(" + n.String() + ")")
		return
	}
	sb.WriteString(n.String())
}

// juxtaposed reports whether a product prints as a coefficient directly
// followed by its factor, as in 15sin(x).
func juxtaposed[T Number](n *Operation[T]) bool {
	if _, ok := n.left.(*Value[T]); !ok {
		return false
	}
	switch n.right.(type) {
	case *Variable[T], *Function[T]:
		return true
	}
	return false
}

func isOperation[T Number](n Node[T]) bool {
	_, ok := n.(*Operation[T])
	return ok
}

func isAdditive[T Number](n Node[T]) bool {
	op, ok := n.(*Operation[T])
	return ok && (op.kind == OpAdd || op.kind == OpSub)
}

func isNonProduct[T Number](n Node[T]) bool {
	op, ok := n.(*Operation[T])
	return ok && op.kind != OpMul
}
