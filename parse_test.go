package expression_test

import (
	"errors"
	"reflect"
	"testing"

	expression "github.com/gsukhanov/expression-parsing"
)

// ============================================================
// Parser tests
// ============================================================

func TestParse_Shapes(t *testing.T) {
	for _, test := range []struct{ in, want string }{
		{"x + y", "x + y"},
		{"a * b + c * d", "a * b + c * d"},
		{"a + b * c", "a + b * c"},
		{"a - b + c", "a - b + c"},
		{"a-b+c", "a - (b + c)"},
		{"a * b*c", "a * b * c"},
		{"2 ^ x ^ 3", "(2 ^ x) ^ 3"},
		{"(x + 1) * (x - 1)", "(x + 1) * (x - 1)"},
		{"x / (y * z)", "x / (y * z)"},
		{"  sin( x )  ", "sin(x)"},
		{"ln(y) + y * (ln(x) * sin(x))", "ln(y) + y * ln(x) * sin(x)"},
		{"1.25 * x_1", "1.25x_1"},
		{"3 sin(x)", "sin(x)"},
	} {
		e, err := expression.ParseReal(test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if e.String() != test.want {
			t.Errorf("%q: want %s, got %s", test.in, test.want, e)
		}
	}
}

func TestParse_FreeVariables(t *testing.T) {
	e := expression.MustParse[float64]("beta * sin(alpha) + alpha / gamma2")
	if got := e.FreeVariables(); !reflect.DeepEqual(got, []string{"alpha", "beta", "gamma2"}) {
		t.Errorf("want [alpha beta gamma2], got %v", got)
	}
}

func TestParse_Complex(t *testing.T) {
	for _, test := range []struct{ in, want string }{
		{"(12 + 6i) * x + 9", "(12 + 6i) * x + 9"},
		{"3+4i", "(3 + 4i)"},
		{"x * i", "x * 1i"},
		{"(8 - 6i)^2", "(8 - 1i) ^ 2"},
		{"2 + 0.5i", "(2 + 0.5i)"},
	} {
		e, err := expression.ParseComplex(test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if e.String() != test.want {
			t.Errorf("%q: want %s, got %s", test.in, test.want, e)
		}
	}
}

func TestParse_ImaginaryUnitIsVariableInReals(t *testing.T) {
	e := expression.MustParse[float64]("x * i")
	if !e.HasVariable("i") {
		t.Errorf("want i to be a variable over the reals, got %v", e.FreeVariables())
	}
}

func TestParse_Normalization(t *testing.T) {
	e, err := expression.ParseReal("（ｘ ＋ １） * ｙ")
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "(x + 1) * y" {
		t.Errorf("want (x + 1) * y, got %s", e)
	}
}

func TestParse_TrailingParen(t *testing.T) {
	e, err := expression.ParseReal("x + 1) ")
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "x + 1" {
		t.Errorf("want x + 1, got %s", e)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, test := range []struct {
		in  string
		pos int
	}{
		{"", 0},
		{"   ", 3},
		{"()", 0},
		{"x + ", 2},
		{"* x", 0},
		{"x $ y", 2},
		{"sin x", 3},
		{"sin()", 4},
		{"x) + y", 1},
		{"2 + 3ix", 6},
		{"2² + 1", 1},
		{"x² + 1", 1},
		{"ｘ ＋ é", 8},
	} {
		_, err := expression.ParseComplex(test.in)
		var pe *expression.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%q: want ParseError, got %v", test.in, err)
			continue
		}
		if pe.Position != test.pos {
			t.Errorf("%q: want position %d, got %d (%s)", test.in, test.pos, pe.Position, pe.Message)
		}
		if expression.Code(err) != expression.CodeParse {
			t.Errorf("%q: want code %s, got %s", test.in, expression.CodeParse, expression.Code(err))
		}
	}
}

func TestParse_ErrorQuotesInputRune(t *testing.T) {
	_, err := expression.ParseReal("ｘ ＋ é")
	var pe *expression.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if pe.Message != "unexpected character 'é'" {
		t.Errorf("want unexpected character 'é', got %s", pe.Message)
	}
}

func TestParse_SuperscriptsAreNotDigits(t *testing.T) {
	for _, in := range []string{"2²", "x²", "x ^ ³"} {
		if e, err := expression.ParseReal(in); err == nil {
			t.Errorf("%q: want ParseError, got %s", in, e)
		}
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic")
		}
	}()
	expression.MustParse[float64]("sin")
}
