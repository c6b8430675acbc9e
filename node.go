package expression

// ============================================================
// Kinds
// ============================================================

// OpKind identifies a binary operation.
type OpKind uint8

const (
	OpAdd OpKind = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

var opNames = [...]string{OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpPow: "pow"}
var opSymbols = [...]string{OpAdd: " + ", OpSub: " - ", OpMul: " * ", OpDiv: " / ", OpPow: " ^ "}

func (k OpKind) String() string { return opNames[k] }

// FuncKind identifies a unary function.
type FuncKind uint8

const (
	FuncSin FuncKind = iota
	FuncCos
	FuncLn
	FuncExp
)

var funcNames = [...]string{FuncSin: "sin", FuncCos: "cos", FuncLn: "ln", FuncExp: "exp"}

func (k FuncKind) String() string { return funcNames[k] }

func lookupFunc(name string) (FuncKind, bool) {
	for k, n := range funcNames {
		if n == name {
			return FuncKind(k), true
		}
	}
	return 0, false
}

func lookupOp(name string) (OpKind, bool) {
	for k, n := range opNames {
		if n == name {
			return OpKind(k), true
		}
	}
	return 0, false
}

// ============================================================
// Nodes
// ============================================================

// Node is implemented by *Value, *Variable, *Operation and *Function only.
// Every node below a root has exactly one parent; reusing a subtree in a
// second position requires Clone.
type Node[T Number] interface {
	Clone() Node[T]
	String() string
	LaTeX() string
	node()
}

// Value is a numeric leaf.
type Value[T Number] struct{ v T }

func NewValue[T Number](v T) *Value[T] { return &Value[T]{v: v} }

func (n *Value[T]) Clone() Node[T] { return &Value[T]{v: n.v} }
func (n *Value[T]) Value() T       { return n.v }
func (n *Value[T]) node()          {}

// Variable is a named leaf that has not been bound yet.
type Variable[T Number] struct{ name string }

func NewVariable[T Number](name string) *Variable[T] { return &Variable[T]{name: name} }

func (n *Variable[T]) Clone() Node[T] { return &Variable[T]{name: n.name} }
func (n *Variable[T]) Name() string   { return n.name }
func (n *Variable[T]) node()          {}

// Operation is a binary operation over two owned subtrees.
type Operation[T Number] struct {
	kind        OpKind
	left, right Node[T]
}

func newOp[T Number](kind OpKind, left, right Node[T]) *Operation[T] {
	return &Operation[T]{kind: kind, left: left, right: right}
}

// The node constructors take ownership of their children, which must be
// non-nil. FromNode rejects trees that break this.
func AddNode[T Number](l, r Node[T]) *Operation[T] { return newOp(OpAdd, l, r) }
func SubNode[T Number](l, r Node[T]) *Operation[T] { return newOp(OpSub, l, r) }
func MulNode[T Number](l, r Node[T]) *Operation[T] { return newOp(OpMul, l, r) }
func DivNode[T Number](l, r Node[T]) *Operation[T] { return newOp(OpDiv, l, r) }
func PowNode[T Number](l, r Node[T]) *Operation[T] { return newOp(OpPow, l, r) }

func (n *Operation[T]) Clone() Node[T] {
	return &Operation[T]{kind: n.kind, left: n.left.Clone(), right: n.right.Clone()}
}
func (n *Operation[T]) Kind() OpKind   { return n.kind }
func (n *Operation[T]) Left() Node[T]  { return n.left }
func (n *Operation[T]) Right() Node[T] { return n.right }
func (n *Operation[T]) node()          {}

// Function is a unary function applied to an owned subtree.
type Function[T Number] struct {
	kind FuncKind
	arg  Node[T]
}

func newFunc[T Number](kind FuncKind, arg Node[T]) *Function[T] {
	return &Function[T]{kind: kind, arg: arg}
}

// Like the operation constructors, these require a non-nil arg.
func SinNode[T Number](arg Node[T]) *Function[T] { return newFunc(FuncSin, arg) }
func CosNode[T Number](arg Node[T]) *Function[T] { return newFunc(FuncCos, arg) }
func LnNode[T Number](arg Node[T]) *Function[T]  { return newFunc(FuncLn, arg) }
func ExpNode[T Number](arg Node[T]) *Function[T] { return newFunc(FuncExp, arg) }

func (n *Function[T]) Clone() Node[T] { return &Function[T]{kind: n.kind, arg: n.arg.Clone()} }
func (n *Function[T]) Kind() FuncKind { return n.kind }
func (n *Function[T]) Arg() Node[T]   { return n.arg }
func (n *Function[T]) node()          {}

// ============================================================
// Substitution and evaluation
// ============================================================

// substitute replaces every Variable called name below n with a Value and
// returns the node that should take n's place.
func substitute[T Number](n Node[T], name string, v T) Node[T] {
	switch n := n.(type) {
	case *Variable[T]:
		if n.name == name {
			return &Value[T]{v: v}
		}
	case *Operation[T]:
		n.left = substitute(n.left, name, v)
		n.right = substitute(n.right, name, v)
	case *Function[T]:
		n.arg = substitute(n.arg, name, v)
	}
	return n
}

func applyOp[T Number](d Domain[T], kind OpKind, a, b T) (T, error) {
	switch kind {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		return a / b, nil
	case OpPow:
		return d.Pow(a, b), nil
	}
	var zero T
	return zero, newInternalError("operation kind %d out of range", kind)
}

func evaluate[T Number](d Domain[T], n Node[T]) (T, error) {
	var zero T
	switch n := n.(type) {
	case *Value[T]:
		return n.v, nil
	case *Variable[T]:
		return zero, newInternalError("cannot evaluate unbound variable %q", n.name)
	case *Operation[T]:
		l, err := evaluate(d, n.left)
		if err != nil {
			return zero, err
		}
		r, err := evaluate(d, n.right)
		if err != nil {
			return zero, err
		}
		return applyOp(d, n.kind, l, r)
	case *Function[T]:
		a, err := evaluate(d, n.arg)
		if err != nil {
			return zero, err
		}
		return d.Apply(n.kind, a), nil
	}
	return zero, newInternalError("unknown node %T", n)
}

// collectVariables adds the name of every Variable below n to out.
func collectVariables[T Number](n Node[T], out map[string]struct{}) {
	switch n := n.(type) {
	case *Variable[T]:
		out[n.name] = struct{}{}
	case *Operation[T]:
		collectVariables(n.left, out)
		collectVariables(n.right, out)
	case *Function[T]:
		collectVariables(n.arg, out)
	}
}

// checkTree reports the first missing child below n.
func checkTree[T Number](n Node[T]) error {
	switch n := n.(type) {
	case nil:
		return newInternalError("missing node")
	case *Value[T]:
		if n == nil {
			return newInternalError("missing value node")
		}
	case *Variable[T]:
		if n == nil {
			return newInternalError("missing variable node")
		}
	case *Operation[T]:
		if n == nil {
			return newInternalError("missing operation node")
		}
		if n.left == nil || n.right == nil {
			return newInternalError("operation %s is missing an operand", opNames[n.kind])
		}
		if err := checkTree(n.left); err != nil {
			return err
		}
		return checkTree(n.right)
	case *Function[T]:
		if n == nil {
			return newInternalError("missing function node")
		}
		if n.arg == nil {
			return newInternalError("function %s is missing its argument", funcNames[n.kind])
		}
		return checkTree(n.arg)
	}
	return nil
}
