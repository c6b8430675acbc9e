package expression

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	Code   ErrorCode   `json:"code,omitempty"`
}

// CodeBadRequest marks tool calls with missing or malformed params.
const CodeBadRequest ErrorCode = "E0400"

var imaginaryUnit = regexp.MustCompile(`(\d|^|\s)i\b`)

// LooksComplex reports whether any of texts uses the imaginary unit, either
// alone or as the suffix of a number.
func LooksComplex(texts ...string) bool {
	return lo.SomeBy(texts, imaginaryUnit.MatchString)
}

var domains = []string{"real", "complex"}

// HandleToolCall runs one tool over freshly parsed expressions.
//
// Expressions are passed as text or as JSON trees under "expr". The numeric
// domain is taken from "domain" when present and otherwise detected from the
// text of "expr" and "value".
func HandleToolCall(req ToolRequest) ToolResponse {
	if req.Tool == "spec" {
		return ToolResponse{String: ToolSpec()}
	}
	domain, err := requestDomain(req)
	if err != nil {
		return badRequest(err)
	}
	if domain == "complex" {
		return handleTool[complex128](req)
	}
	return handleTool[float64](req)
}

func requestDomain(req ToolRequest) (string, error) {
	if v, ok := req.Params["domain"]; ok {
		s, ok := v.(string)
		if !ok || !slices.Contains(domains, s) {
			return "", fmt.Errorf("param domain must be one of %v", domains)
		}
		return s, nil
	}
	expr, _ := req.Params["expr"].(string)
	values, _ := req.Params["values"].([]interface{})
	if LooksComplex(expr) || lo.SomeBy(append([]interface{}{req.Params["value"]}, values...), looksComplexValue) {
		return "complex", nil
	}
	return "real", nil
}

// looksComplexValue reports whether a value param needs the complex domain:
// an [re, im] pair, an object with a non-zero im, or complex-looking text.
func looksComplexValue(raw interface{}) bool {
	switch raw := raw.(type) {
	case string:
		return LooksComplex(raw)
	case []interface{}:
		return len(raw) == 2
	case map[string]interface{}:
		im, _ := raw["im"].(float64)
		return im != 0
	}
	return false
}

func badRequest(err error) ToolResponse {
	return ToolResponse{Error: err.Error(), Code: CodeBadRequest}
}

func failed(err error) ToolResponse {
	return ToolResponse{Error: err.Error(), Code: Code(err)}
}

func handleTool[T Number](req ToolRequest) ToolResponse {
	d := DomainOf[T]()

	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getList := func(key string) ([]interface{}, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		return raw, nil
	}
	getStrings := func(key string) ([]string, error) {
		raw, err := getList(key)
		if err != nil {
			return nil, err
		}
		result := make([]string, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			result[i] = s
		}
		return result, nil
	}
	getValues := func(key string) ([]T, error) {
		raw, err := getList(key)
		if err != nil {
			return nil, err
		}
		result := make([]T, len(raw))
		for i, r := range raw {
			v, err := decodeValue(d, r)
			if err != nil {
				return nil, fmt.Errorf("param %s[%d]: %w", key, i, err)
			}
			result[i] = v
		}
		return result, nil
	}
	getValue := func(key string) (T, error) {
		raw, ok := req.Params[key]
		if !ok {
			var zero T
			return zero, fmt.Errorf("missing param: %s", key)
		}
		v, err := decodeValue(d, raw)
		if err != nil {
			return v, fmt.Errorf("param %s: %w", key, err)
		}
		return v, nil
	}
	getExpr := func(key string) (*Expression[T], error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch v := v.(type) {
		case string:
			return Parse[T](v)
		case map[string]interface{}:
			return FromJSON[T](v)
		}
		return nil, fmt.Errorf("param %s must be a string or an expression object", key)
	}
	respond := func(e *Expression[T]) ToolResponse {
		return ToolResponse{Result: NodeJSON(e.root), LaTeX: e.LaTeX(), String: e.String()}
	}
	respondValue := func(v T) ToolResponse {
		return ToolResponse{Result: encodeValue(d, v), LaTeX: d.LaTeX(v), String: d.Format(v)}
	}

	e, err := getExpr("expr")
	if err != nil {
		if Code(err) == CodeParse {
			return failed(err)
		}
		return badRequest(err)
	}

	switch req.Tool {
	case "parse":
		return respond(e)

	case "simplify":
		if _, err := e.Simplify(); err != nil {
			return failed(err)
		}
		return respond(e)

	case "differentiate":
		name, err := getString("var")
		if err != nil {
			return badRequest(err)
		}
		de, err := e.Differentiate(name)
		if err != nil {
			return failed(err)
		}
		return respond(de)

	case "substitute":
		name, err := getString("var")
		if err != nil {
			return badRequest(err)
		}
		v, err := getValue("value")
		if err != nil {
			return badRequest(err)
		}
		se, err := e.Substitute(name, v)
		if err != nil {
			return failed(err)
		}
		return respond(se)

	case "calculate":
		names, err := getStrings("names")
		if err != nil {
			return badRequest(err)
		}
		values, err := getValues("values")
		if err != nil {
			return badRequest(err)
		}
		v, err := e.Calculate(names, values)
		if err != nil {
			return failed(err)
		}
		return respondValue(v)

	case "evaluate":
		v, err := e.Evaluate()
		if err != nil {
			return failed(err)
		}
		return respondValue(v)

	case "free_variables":
		names := e.FreeVariables()
		return ToolResponse{Result: names, String: fmt.Sprint(names)}
	}
	return badRequest(fmt.Errorf("unknown tool: %s", req.Tool))
}

// decodeValue accepts a number, a [re, im] pair, a {"re": .., "im": ..}
// object, or text that parses to a constant.
func decodeValue[T Number](d Domain[T], raw interface{}) (T, error) {
	var zero T
	var re, im float64
	switch raw := raw.(type) {
	case float64:
		re = raw
	case []interface{}:
		parts := lo.FilterMap(raw, func(p interface{}, _ int) (float64, bool) {
			f, ok := p.(float64)
			return f, ok
		})
		if len(raw) != 2 || len(parts) != 2 {
			return zero, fmt.Errorf("want [re, im], got %v", raw)
		}
		re, im = parts[0], parts[1]
	case map[string]interface{}:
		var ok bool
		if re, ok = raw["re"].(float64); !ok {
			return zero, fmt.Errorf("'re' must be a number")
		}
		if v, present := raw["im"]; present {
			if im, ok = v.(float64); !ok {
				return zero, fmt.Errorf("'im' must be a number")
			}
		}
	case string:
		e, err := Parse[T](raw)
		if err != nil {
			return zero, err
		}
		return e.Evaluate()
	default:
		return zero, fmt.Errorf("unsupported value %v", raw)
	}
	v, ok := d.FromParts(re, im)
	if !ok {
		return zero, fmt.Errorf("imaginary part %g in the %s domain", im, d.Name())
	}
	return v, nil
}

func encodeValue[T Number](d Domain[T], v T) interface{} {
	re, im := d.Parts(v)
	if !d.IsComplex() {
		return re
	}
	return map[string]float64{"re": re, "im": im}
}

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	domain := map[string]string{"expr": "string|object", "domain": "string"}
	with := func(extra map[string]string) map[string]string { return lo.Assign(domain, extra) }
	tools := []map[string]interface{}{
		ts("parse", "Parse an expression and return its tree, text and LaTeX", []string{"expr"}, domain),
		ts("simplify", "Fold constants and apply identity laws once, bottom-up", []string{"expr"}, domain),
		ts("differentiate", "Simplified derivative d/dvar", []string{"expr", "var"}, with(map[string]string{"var": "string"})),
		ts("substitute", "Bind var to value", []string{"expr", "var", "value"}, with(map[string]string{"var": "string", "value": "number|array|object|string"})),
		ts("calculate", "Bind names[i] to values[i] and evaluate", []string{"expr", "names", "values"}, with(map[string]string{"names": "array", "values": "array"})),
		ts("evaluate", "Evaluate an expression without free variables", []string{"expr"}, domain),
		ts("free_variables", "Return the sorted free variable names", []string{"expr"}, domain),
		ts("spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := lo.MapValues(props, func(typ string, _ string) interface{} {
		return map[string]interface{}{"type": typ}
	})
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
