package expression

func (n *Value[T]) LaTeX() string    { return DomainOf[T]().LaTeX(n.v) }
func (n *Variable[T]) LaTeX() string { return n.name }

func (n *Function[T]) LaTeX() string {
	return "\\" + n.kind.String() + "\\left(" + n.arg.LaTeX() + "\\right)"
}

func (n *Operation[T]) LaTeX() string {
	switch n.kind {
	case OpAdd:
		return n.left.LaTeX() + " + " + n.right.LaTeX()
	case OpSub:
		return n.left.LaTeX() + " - " + latexOperand(n.right, isAdditive[T])
	case OpMul:
		if juxtaposed(n) {
			return n.left.LaTeX() + n.right.LaTeX()
		}
		return latexOperand(n.left, isNonProduct[T]) + " \\cdot " + latexOperand(n.right, isNonProduct[T])
	case OpDiv:
		return "\\frac{" + n.left.LaTeX() + "}{" + n.right.LaTeX() + "}"
	}
	return latexOperand(n.left, isOperation[T]) + "^{" + n.right.LaTeX() + "}"
}

func latexOperand[T Number](n Node[T], wrap func(Node[T]) bool) string {
	if wrap(n) {
		return "\\left(" + n.LaTeX() + "\\right)"
	}
	return n.LaTeX()
}
