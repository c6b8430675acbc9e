// Package expression is a small computer-algebra core.
//
// An Expression owns a tree of Value, Variable, Operation and Function nodes
// together with the set of its free variables. Expressions are parsed from
// text, evaluated at a point, substituted, simplified and differentiated,
// and rendered back to text with minimal parentheses:
//
//	e, err := expression.ParseReal("x ^ 2 + 3 * x")
//	v, err := e.Calculate([]string{"x"}, []float64{13.8}) // 231.84
//	d, err := e.Differentiate("x")
//	fmt.Println(d) // 2x + 3
//
// Every algorithm is generic over the numeric domain: float64 or complex128.
// Operations that can fail return one of ParseError, UnknownVariableError,
// ArityMismatchError, DivisionByZeroError or InternalError, and leave the
// receiver unchanged.
package expression

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Expression is an expression tree over T and its free variables.
// The zero value is not usable; build one with Parse, Const, Var or FromNode.
type Expression[T Number] struct {
	root Node[T]
	vars map[string]struct{}
}

// Const returns the expression consisting of the single value v.
func Const[T Number](v T) *Expression[T] {
	return &Expression[T]{root: &Value[T]{v: v}, vars: map[string]struct{}{}}
}

// Var returns the expression consisting of the single variable name.
func Var[T Number](name string) *Expression[T] {
	return &Expression[T]{root: &Variable[T]{name: name}, vars: map[string]struct{}{name: {}}}
}

// FromNode wraps root, which the expression takes ownership of. A nil root
// or a nil child anywhere below it is an InternalError.
func FromNode[T Number](root Node[T]) (*Expression[T], error) {
	if err := checkTree(root); err != nil {
		return nil, err
	}
	return wrap(root), nil
}

func wrap[T Number](root Node[T]) *Expression[T] {
	e := &Expression[T]{root: root}
	e.refreshVariables()
	return e
}

func (e *Expression[T]) refreshVariables() {
	e.vars = map[string]struct{}{}
	collectVariables(e.root, e.vars)
}

// Root returns the root node. It stays owned by e.
func (e *Expression[T]) Root() Node[T] { return e.root }

// Clone returns a deep copy of e.
func (e *Expression[T]) Clone() *Expression[T] {
	return &Expression[T]{root: e.root.Clone(), vars: lo.Assign(e.vars)}
}

// FreeVariables returns the names still unbound in e, sorted.
func (e *Expression[T]) FreeVariables() []string {
	names := lo.Keys(e.vars)
	slices.Sort(names)
	return names
}

// HasVariable reports whether name is a free variable of e.
func (e *Expression[T]) HasVariable(name string) bool {
	_, ok := e.vars[name]
	return ok
}

func (e *Expression[T]) String() string { return e.root.String() }
func (e *Expression[T]) LaTeX() string  { return e.root.LaTeX() }

// ============================================================
// Combinators
// ============================================================

// combine replaces e's root with kind(root, copy of other's root).
func (e *Expression[T]) combine(kind OpKind, other *Expression[T]) *Expression[T] {
	right := other.root.Clone()
	e.vars = lo.Assign(e.vars, other.vars)
	e.root = newOp(kind, e.root, right)
	return e
}

// Add makes e the sum e + other, in place.
func (e *Expression[T]) Add(other *Expression[T]) *Expression[T] { return e.combine(OpAdd, other) }

// Subtract makes e the difference e - other, in place.
func (e *Expression[T]) Subtract(other *Expression[T]) *Expression[T] {
	return e.combine(OpSub, other)
}

// Multiply makes e the product e * other, in place.
func (e *Expression[T]) Multiply(other *Expression[T]) *Expression[T] {
	return e.combine(OpMul, other)
}

// Divide makes e the quotient e / other, in place.
func (e *Expression[T]) Divide(other *Expression[T]) *Expression[T] {
	return e.combine(OpDiv, other)
}

// Power makes e the power e ^ other, in place.
func (e *Expression[T]) Power(other *Expression[T]) *Expression[T] {
	return e.combine(OpPow, other)
}

func AddOf[T Number](a, b *Expression[T]) *Expression[T] { return a.Clone().Add(b) }
func SubOf[T Number](a, b *Expression[T]) *Expression[T] { return a.Clone().Subtract(b) }
func MulOf[T Number](a, b *Expression[T]) *Expression[T] { return a.Clone().Multiply(b) }
func DivOf[T Number](a, b *Expression[T]) *Expression[T] { return a.Clone().Divide(b) }
func PowOf[T Number](a, b *Expression[T]) *Expression[T] { return a.Clone().Power(b) }

func apply[T Number](kind FuncKind, e *Expression[T]) *Expression[T] {
	c := e.Clone()
	c.root = newFunc(kind, c.root)
	return c
}

func SinOf[T Number](e *Expression[T]) *Expression[T] { return apply(FuncSin, e) }
func CosOf[T Number](e *Expression[T]) *Expression[T] { return apply(FuncCos, e) }
func LnOf[T Number](e *Expression[T]) *Expression[T]  { return apply(FuncLn, e) }
func ExpOf[T Number](e *Expression[T]) *Expression[T] { return apply(FuncExp, e) }

// ============================================================
// Substitution and evaluation
// ============================================================

// SelfSubstitute binds name to v in place.
func (e *Expression[T]) SelfSubstitute(name string, v T) error {
	if !e.HasVariable(name) {
		return &UnknownVariableError{Name: name, frame: callerFrame()}
	}
	delete(e.vars, name)
	e.root = substitute(e.root, name, v)
	return nil
}

// Substitute returns a copy of e with name bound to v.
func (e *Expression[T]) Substitute(name string, v T) (*Expression[T], error) {
	c := e.Clone()
	if err := c.SelfSubstitute(name, v); err != nil {
		return nil, err
	}
	return c, nil
}

// Evaluate computes the value of e. Every variable must have been bound.
func (e *Expression[T]) Evaluate() (T, error) {
	return evaluate(DomainOf[T](), e.root)
}

// Calculate binds names[i] to values[i], in order, on a copy of e and
// evaluates the result. e itself is not modified.
func (e *Expression[T]) Calculate(names []string, values []T) (T, error) {
	var zero T
	if len(names) != len(values) {
		return zero, &ArityMismatchError{Names: len(names), Values: len(values), frame: callerFrame()}
	}
	c := e.Clone()
	for i, name := range names {
		if err := c.SelfSubstitute(name, values[i]); err != nil {
			return zero, err
		}
	}
	return c.Evaluate()
}

// ============================================================
// Simplification and differentiation
// ============================================================

// Simplify folds constants and applies the identity laws in one bottom-up
// pass, in place. On error e is left as it was.
func (e *Expression[T]) Simplify() (*Expression[T], error) {
	root, err := simplify(DomainOf[T](), e.root.Clone())
	if err != nil {
		return nil, err
	}
	e.root = root
	e.refreshVariables()
	return e, nil
}

// Differentiate returns the simplified derivative of e with respect to name.
// e is not modified.
func (e *Expression[T]) Differentiate(name string) (*Expression[T], error) {
	d := DomainOf[T]()
	root, err := simplify(d, e.root.Clone())
	if err != nil {
		return nil, err
	}
	if root, err = simplify(d, differentiate(d, root, name)); err != nil {
		return nil, err
	}
	return wrap(root), nil
}
