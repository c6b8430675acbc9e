package expression_test

import (
	"encoding/json"
	"reflect"
	"testing"

	expression "github.com/gsukhanov/expression-parsing"
)

// ============================================================
// Tool tests
// ============================================================

func call(tool string, params map[string]interface{}) expression.ToolResponse {
	return expression.HandleToolCall(expression.ToolRequest{Tool: tool, Params: params})
}

func TestTool_Parse(t *testing.T) {
	resp := call("parse", map[string]interface{}{"expr": "x / (y + 1)"})
	if resp.Error != "" {
		t.Fatal(resp.Error)
	}
	if resp.String != "x / (y + 1)" || resp.LaTeX != `\frac{x}{y + 1}` {
		t.Errorf("got %q / %q", resp.String, resp.LaTeX)
	}
	if m, ok := resp.Result.(map[string]interface{}); !ok || m["op"] != "div" {
		t.Errorf("want div tree, got %v", resp.Result)
	}
}

func TestTool_Simplify(t *testing.T) {
	resp := call("simplify", map[string]interface{}{"expr": "(1 * x + 0 * y + 0) / 1 + 1 ^ x"})
	if resp.String != "x + 1" {
		t.Errorf("want x + 1, got %q (%s)", resp.String, resp.Error)
	}
}

func TestTool_Differentiate(t *testing.T) {
	resp := call("differentiate", map[string]interface{}{"expr": "sin(x)^ln(x)", "var": "x"})
	want := "((1 / x) * ln(sin(x)) + (cos(x) / sin(x)) * ln(x)) * (sin(x) ^ ln(x))"
	if resp.String != want {
		t.Errorf("want %s, got %q (%s)", want, resp.String, resp.Error)
	}
}

func TestTool_DifferentiateJSONTree(t *testing.T) {
	tree := map[string]interface{}{
		"type": "op", "op": "pow",
		"left":  map[string]interface{}{"type": "var", "name": "x"},
		"right": map[string]interface{}{"type": "num", "value": 3.0},
	}
	resp := call("differentiate", map[string]interface{}{"expr": tree, "var": "x"})
	if resp.String != "3 * (x ^ 2)" {
		t.Errorf("want 3 * (x ^ 2), got %q (%s)", resp.String, resp.Error)
	}
}

func TestTool_SubstituteComplex(t *testing.T) {
	for _, value := range []interface{}{
		[]interface{}{5.0, 17.0},
		map[string]interface{}{"re": 5.0, "im": 17.0},
		"5 + 17i",
	} {
		resp := call("substitute", map[string]interface{}{"expr": "(12 + 6i) * x + 9", "var": "x", "value": value})
		if resp.String != "(12 + 6i) * (5 + 17i) + 9" {
			t.Errorf("%v: want (12 + 6i) * (5 + 17i) + 9, got %q (%s)", value, resp.String, resp.Error)
		}
	}
}

func TestTool_Calculate(t *testing.T) {
	resp := call("calculate", map[string]interface{}{
		"expr":   "x ^ 2 + 3 * x",
		"names":  []interface{}{"x"},
		"values": []interface{}{13.8},
	})
	if resp.String != "231.84" {
		t.Errorf("want 231.84, got %q (%s)", resp.String, resp.Error)
	}
	if v, ok := resp.Result.(float64); !ok || !near(complex(v, 0), 231.84) {
		t.Errorf("want 231.84, got %v", resp.Result)
	}
}

func TestTool_CalculateComplex(t *testing.T) {
	resp := call("calculate", map[string]interface{}{
		"expr":   "(10 + 5i) / x + (8 - 6i)^2 + x^2",
		"names":  []interface{}{"x"},
		"values": []interface{}{[]interface{}{12.0, 7.0}},
	})
	parts, ok := resp.Result.(map[string]float64)
	if !ok {
		t.Fatalf("want re/im result, got %v (%s)", resp.Result, resp.Error)
	}
	if got := complex(parts["re"], parts["im"]); !near(got, complex(158.80310880829, 151.948186528497)) {
		t.Errorf("got %v", got)
	}
}

func TestTool_CalculateStructuredValuesSelectComplex(t *testing.T) {
	for _, value := range []interface{}{
		map[string]interface{}{"re": 1.0, "im": 2.0},
		[]interface{}{1.0, 2.0},
	} {
		resp := call("calculate", map[string]interface{}{
			"expr":   "x * x",
			"names":  []interface{}{"x"},
			"values": []interface{}{value},
		})
		parts, ok := resp.Result.(map[string]float64)
		if !ok {
			t.Errorf("%v: want re/im result, got %v (%s)", value, resp.Result, resp.Error)
			continue
		}
		if got := complex(parts["re"], parts["im"]); !near(got, complex(-3, 4)) {
			t.Errorf("%v: want -3 + 4i, got %v", value, got)
		}
	}

	resp := call("calculate", map[string]interface{}{
		"expr":   "x * x",
		"names":  []interface{}{"x"},
		"values": []interface{}{map[string]interface{}{"re": 3.0, "im": 0.0}},
	})
	if v, ok := resp.Result.(float64); !ok || v != 9 {
		t.Errorf("want real 9, got %v (%s)", resp.Result, resp.Error)
	}
}

func TestTool_FreeVariables(t *testing.T) {
	resp := call("free_variables", map[string]interface{}{"expr": "b * a + sin(c)"})
	if !reflect.DeepEqual(resp.Result, []string{"a", "b", "c"}) {
		t.Errorf("want [a b c], got %v", resp.Result)
	}
}

func TestTool_Errors(t *testing.T) {
	for _, test := range []struct {
		tool   string
		params map[string]interface{}
		code   expression.ErrorCode
	}{
		{"parse", map[string]interface{}{"expr": "x $ y"}, expression.CodeParse},
		{"parse", map[string]interface{}{}, expression.CodeBadRequest},
		{"parse", map[string]interface{}{"expr": 42.0}, expression.CodeBadRequest},
		{"parse", map[string]interface{}{"expr": "x", "domain": "quaternion"}, expression.CodeBadRequest},
		{"simplify", map[string]interface{}{"expr": "x / 0"}, expression.CodeDivisionByZero},
		{"substitute", map[string]interface{}{"expr": "x", "var": "y", "value": 1.0}, expression.CodeUnknownVar},
		{"substitute", map[string]interface{}{"expr": "x", "var": "x", "value": []interface{}{1.0, 2.0}, "domain": "real"}, expression.CodeBadRequest},
		{"calculate", map[string]interface{}{"expr": "x", "names": []interface{}{"x"}, "values": []interface{}{}}, expression.CodeArityMismatch},
		{"evaluate", map[string]interface{}{"expr": "x"}, expression.CodeInternal},
		{"integrate", map[string]interface{}{"expr": "x"}, expression.CodeBadRequest},
	} {
		resp := call(test.tool, test.params)
		if resp.Code != test.code || resp.Error == "" {
			t.Errorf("%s %v: want code %s, got %q (%s)", test.tool, test.params, test.code, resp.Code, resp.Error)
		}
	}
}

func TestLooksComplex(t *testing.T) {
	for _, test := range []struct {
		text string
		want bool
	}{
		{"3i + x", true},
		{"x * i", true},
		{"i", true},
		{"sin(x)", false},
		{"pi * r", false},
		{"x=12+7i", true},
	} {
		if got := expression.LooksComplex(test.text); got != test.want {
			t.Errorf("%q: want %v, got %v", test.text, test.want, got)
		}
	}
}

func TestToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal([]byte(expression.ToolSpec()), &spec); err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, tool := range spec.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"parse", "simplify", "differentiate", "substitute", "calculate", "free_variables"} {
		if !names[want] {
			t.Errorf("tool %s missing from spec", want)
		}
	}
	if resp := call("spec", nil); resp.String != expression.ToolSpec() {
		t.Error("spec tool should return ToolSpec")
	}
}
