// Command differentiator evaluates, simplifies and differentiates
// expressions from the command line.
//
// Usage:
//
//	differentiator -eval "x ^ 2 + 3 * x" x=13.8
//	differentiator -eval "(10 + 5i) / x" "x=12+7i"
//	differentiator -diff "sin(x) ^ ln(x)" -by x
//	differentiator -simplify "(1 * x + 0 * y + 0) / 1 + 1 ^ x"
//
// An expression is read over the complex numbers when -complex is given or
// when any argument contains the imaginary unit i. Errors are reported on
// stderr with exit status 1.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/samber/lo"

	expression "github.com/gsukhanov/expression-parsing"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("differentiator: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type request struct {
	eval, diff, simplify string
	by                   string
	complex              bool
	bindings             []string
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("differentiator", flag.ContinueOnError)
	var req request
	fs.StringVar(&req.eval, "eval", "", "evaluate `EXPR` at the name=value bindings that follow")
	fs.StringVar(&req.diff, "diff", "", "differentiate `EXPR`")
	fs.StringVar(&req.by, "by", "", "variable `NAME` to differentiate by")
	fs.StringVar(&req.simplify, "simplify", "", "simplify `EXPR`")
	fs.BoolVar(&req.complex, "complex", false, "read expressions over the complex numbers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.bindings = fs.Args()

	if n := len(lo.Compact([]string{req.eval, req.diff, req.simplify})); n != 1 {
		return errors.New("exactly one of -eval, -diff or -simplify is required")
	}
	if req.complex || expression.LooksComplex(append([]string{req.eval, req.diff, req.simplify}, req.bindings...)...) {
		return dispatch[complex128](req, stdout)
	}
	return dispatch[float64](req, stdout)
}

func dispatch[T expression.Number](req request, stdout io.Writer) error {
	switch {
	case req.eval != "":
		e, err := expression.Parse[T](req.eval)
		if err != nil {
			return err
		}
		names, values, err := parseBindings[T](req.bindings)
		if err != nil {
			return err
		}
		v, err := e.Calculate(names, values)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, formatValue(v))

	case req.diff != "":
		if req.by == "" {
			return errors.New(`-diff needs -by: differentiator -diff "EXPRESSION" -by VARIABLE_NAME`)
		}
		if len(req.bindings) > 0 {
			return fmt.Errorf("unexpected arguments %q", req.bindings)
		}
		e, err := expression.Parse[T](req.diff)
		if err != nil {
			return err
		}
		d, err := e.Differentiate(req.by)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, d)

	default:
		if len(req.bindings) > 0 {
			return fmt.Errorf("unexpected arguments %q", req.bindings)
		}
		e, err := expression.Parse[T](req.simplify)
		if err != nil {
			return err
		}
		if _, err := e.Simplify(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, e)
	}
	return nil
}

// formatValue prints real results as plain numbers and complex results as
// re + imi.
func formatValue[T expression.Number](v T) string {
	d := expression.DomainOf[T]()
	re, im := d.Parts(v)
	g := func(f float64) string { return strconv.FormatFloat(f, 'g', 15, 64) }
	if !d.IsComplex() {
		return g(re)
	}
	return g(re) + " + " + g(im) + "i"
}
