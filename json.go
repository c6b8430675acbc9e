package expression

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================
//
//	{"type": "num", "value": 1.5}                 real value
//	{"type": "num", "re": 1, "im": 2}             complex value
//	{"type": "var", "name": "x"}
//	{"type": "op", "op": "add", "left": ..., "right": ...}
//	{"type": "func", "name": "sin", "arg": ...}

// ToJSON encodes the tree of e.
func ToJSON[T Number](e *Expression[T]) (string, error) {
	b, err := json.Marshal(NodeJSON(e.root))
	return string(b), err
}

// NodeJSON returns the generic JSON object form of n.
func NodeJSON[T Number](n Node[T]) map[string]interface{} {
	switch n := n.(type) {
	case *Value[T]:
		d := DomainOf[T]()
		if !d.IsComplex() {
			re, _ := d.Parts(n.v)
			return map[string]interface{}{"type": "num", "value": re}
		}
		re, im := d.Parts(n.v)
		return map[string]interface{}{"type": "num", "re": re, "im": im}
	case *Variable[T]:
		return map[string]interface{}{"type": "var", "name": n.name}
	case *Operation[T]:
		return map[string]interface{}{
			"type":  "op",
			"op":    n.kind.String(),
			"left":  NodeJSON(n.left),
			"right": NodeJSON(n.right),
		}
	case *Function[T]:
		return map[string]interface{}{"type": "func", "name": n.kind.String(), "arg": NodeJSON(n.arg)}
	}
	return nil
}

// DecodeJSON parses the output of ToJSON.
func DecodeJSON[T Number](s string) (*Expression[T], error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON[T](data)
}

// FromJSON builds an expression from its generic JSON object form.
func FromJSON[T Number](data map[string]interface{}) (*Expression[T], error) {
	root, err := nodeFromJSON[T](data)
	if err != nil {
		return nil, err
	}
	return wrap(root), nil
}

func nodeFromJSON[T Number](data map[string]interface{}) (Node[T], error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subNode := func(field string) (Node[T], error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		n, err := nodeFromJSON[T](m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return n, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	subNumber := func(field string) (float64, bool, error) {
		v, ok := data[field]
		if !ok {
			return 0, false, nil
		}
		f, ok := v.(float64)
		if !ok {
			return 0, false, fmt.Errorf("%s: %q must be a number", typ, field)
		}
		return f, true, nil
	}

	switch typ {
	case "num":
		re, hasValue, err := subNumber("value")
		if err != nil {
			return nil, err
		}
		if !hasValue {
			if re, hasValue, err = subNumber("re"); err != nil {
				return nil, err
			}
		}
		im, hasIm, err := subNumber("im")
		if err != nil {
			return nil, err
		}
		if !hasValue && !hasIm {
			return nil, fmt.Errorf("num: missing 'value'")
		}
		v, ok := DomainOf[T]().FromParts(re, im)
		if !ok {
			return nil, fmt.Errorf("num: imaginary part %g in the real domain", im)
		}
		return &Value[T]{v: v}, nil

	case "var":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return &Variable[T]{name: name}, nil

	case "op":
		name, err := subString("op")
		if err != nil {
			return nil, err
		}
		kind, ok := lookupOp(name)
		if !ok {
			return nil, fmt.Errorf("op: unknown operation %q", name)
		}
		left, err := subNode("left")
		if err != nil {
			return nil, err
		}
		right, err := subNode("right")
		if err != nil {
			return nil, err
		}
		return newOp(kind, left, right), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		kind, ok := lookupFunc(name)
		if !ok {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		arg, err := subNode("arg")
		if err != nil {
			return nil, err
		}
		return newFunc(kind, arg), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
