package expression

// simplify rewrites n bottom-up and returns the node that takes its place.
// It mutates n, so callers pass a tree they are free to discard.
//
// Rules, applied once per node after its children:
//
//	f(c)        -> value
//	c1 op c2    -> value
//	x / 0       -> DivisionByZeroError
//	x * 1, x / 1, x ^ 1   -> x
//	x + 0, x - 0          -> x
//	x * 0 -> 0    x ^ 0 -> 1
//	1 * x -> x    1 ^ x -> 1
//	0 + x, 0 - x          -> x
//	0 * x, 0 / x, 0 ^ x   -> 0
func simplify[T Number](d Domain[T], n Node[T]) (Node[T], error) {
	switch n := n.(type) {
	case *Function[T]:
		arg, err := simplify(d, n.arg)
		if err != nil {
			return nil, err
		}
		n.arg = arg
		if v, ok := arg.(*Value[T]); ok {
			return &Value[T]{v: d.Apply(n.kind, v.v)}, nil
		}
		return n, nil
	case *Operation[T]:
		left, err := simplify(d, n.left)
		if err != nil {
			return nil, err
		}
		right, err := simplify(d, n.right)
		if err != nil {
			return nil, err
		}
		n.left, n.right = left, right
		return simplifyOp(d, n)
	}
	return n, nil
}

func simplifyOp[T Number](d Domain[T], n *Operation[T]) (Node[T], error) {
	lv, leftIsValue := n.left.(*Value[T])
	rv, rightIsValue := n.right.(*Value[T])

	if rightIsValue {
		if n.kind == OpDiv && d.IsZero(rv.v) {
			return nil, &DivisionByZeroError{Dividend: n.left.String(), frame: callerFrame()}
		}
		if leftIsValue {
			v, err := applyOp(d, n.kind, lv.v, rv.v)
			if err != nil {
				return nil, err
			}
			return &Value[T]{v: v}, nil
		}
		switch {
		case d.IsOne(rv.v) && (n.kind == OpMul || n.kind == OpDiv || n.kind == OpPow):
			return n.left, nil
		case d.IsZero(rv.v):
			switch n.kind {
			case OpAdd, OpSub:
				return n.left, nil
			case OpMul:
				return &Value[T]{}, nil
			case OpPow:
				return one(d), nil
			}
		}
		return n, nil
	}

	if leftIsValue {
		switch {
		case d.IsOne(lv.v):
			switch n.kind {
			case OpMul:
				return n.right, nil
			case OpPow:
				return one(d), nil
			}
		case d.IsZero(lv.v):
			switch n.kind {
			case OpAdd, OpSub:
				return n.right, nil
			case OpMul, OpDiv, OpPow:
				return &Value[T]{}, nil
			}
		}
	}
	return n, nil
}

func one[T Number](d Domain[T]) *Value[T] {
	v, _ := d.FromParts(1, 0)
	return &Value[T]{v: v}
}
