package expression

// differentiate returns a new tree for the derivative of n with respect to
// name. n is left untouched; every subtree the result reuses is a clone.
func differentiate[T Number](d Domain[T], n Node[T], name string) Node[T] {
	switch n := n.(type) {
	case *Value[T]:
		return &Value[T]{}
	case *Variable[T]:
		if n.name == name {
			return one(d)
		}
		return &Value[T]{}
	case *Function[T]:
		return differentiateFunc(d, n, name)
	case *Operation[T]:
		return differentiateOp(d, n, name)
	}
	return &Value[T]{}
}

// chain rule: d(arg) * f'(arg)
func differentiateFunc[T Number](d Domain[T], n *Function[T], name string) Node[T] {
	inner := differentiate(d, n.arg, name)
	switch n.kind {
	case FuncSin:
		return newOp[T](OpMul, inner, newFunc[T](FuncCos, n.arg.Clone()))
	case FuncCos:
		minusOne, _ := d.FromParts(-1, 0)
		return newOp[T](OpMul, inner,
			newOp[T](OpMul, &Value[T]{v: minusOne}, newFunc[T](FuncSin, n.arg.Clone())))
	case FuncLn:
		return newOp[T](OpDiv, inner, n.arg.Clone())
	}
	return newOp[T](OpMul, inner, n.Clone())
}

func differentiateOp[T Number](d Domain[T], n *Operation[T], name string) Node[T] {
	l, r := n.left, n.right
	switch n.kind {
	case OpAdd, OpSub:
		return newOp[T](n.kind, differentiate(d, l, name), differentiate(d, r, name))

	case OpMul:
		switch {
		case isConstant(r, name):
			return newOp[T](OpMul, differentiate(d, l, name), r.Clone())
		case isConstant(l, name):
			return newOp[T](OpMul, l.Clone(), differentiate(d, r, name))
		}
		return newOp[T](OpAdd,
			newOp[T](OpMul, differentiate(d, l, name), r.Clone()),
			newOp[T](OpMul, differentiate(d, r, name), l.Clone()))

	case OpDiv:
		if isConstant(r, name) {
			return newOp[T](OpDiv, differentiate(d, l, name), r.Clone())
		}
		two, _ := d.FromParts(2, 0)
		numerator := newOp[T](OpSub,
			newOp[T](OpMul, differentiate(d, l, name), r.Clone()),
			newOp[T](OpMul, differentiate(d, r, name), l.Clone()))
		return newOp[T](OpDiv, numerator, newOp[T](OpPow, r.Clone(), &Value[T]{v: two}))
	}

	if c, ok := r.(*Value[T]); ok {
		unit, _ := d.FromParts(1, 0)
		factor := newOp[T](OpMul, &Value[T]{v: c.v}, newOp[T](OpPow, l.Clone(), &Value[T]{v: c.v - unit}))
		return newOp[T](OpMul, factor, differentiate(d, l, name))
	}
	// d(l ^ r) = d(r * ln(l)) * (l ^ r)
	exponent := newOp[T](OpMul, r.Clone(), newFunc[T](FuncLn, l.Clone()))
	return newOp[T](OpMul, differentiate[T](d, exponent, name), n.Clone())
}

// isConstant reports whether n is a value or a variable other than name.
// Deeper subtrees are never inspected.
func isConstant[T Number](n Node[T], name string) bool {
	switch n := n.(type) {
	case *Value[T]:
		return true
	case *Variable[T]:
		return n.name != name
	}
	return false
}
