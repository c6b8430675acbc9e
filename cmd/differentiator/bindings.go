package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	expression "github.com/gsukhanov/expression-parsing"
)

// parseBindings decodes name=value arguments. Spaces are ignored anywhere
// in an argument. Complex values use the forms re, imi, re+imi and re-imi.
func parseBindings[T expression.Number](args []string) ([]string, []T, error) {
	names := make([]string, 0, len(args))
	values := make([]T, 0, len(args))
	for _, arg := range args {
		name, text, ok := strings.Cut(strings.ReplaceAll(arg, " ", ""), "=")
		if !ok {
			return nil, nil, fmt.Errorf("binding %q: want name=value", arg)
		}
		if name == "" {
			return nil, nil, fmt.Errorf("binding %q: empty name", arg)
		}
		v, err := parseValue[T](text)
		if err != nil {
			return nil, nil, fmt.Errorf("binding %q: %w", arg, err)
		}
		names = append(names, name)
		values = append(values, v)
	}
	if dup := lo.FindDuplicates(names); len(dup) > 0 {
		return nil, nil, fmt.Errorf("%s bound more than once", strings.Join(dup, ", "))
	}
	return names, values, nil
}

func parseValue[T expression.Number](text string) (T, error) {
	var zero T
	switch text {
	case "i", "+i":
		text = "1i"
	case "-i":
		text = "-1i"
	}
	c, err := strconv.ParseComplex(text, 128)
	if err != nil {
		return zero, fmt.Errorf("invalid number %q", text)
	}
	d := expression.DomainOf[T]()
	v, ok := d.FromParts(real(c), imag(c))
	if !ok {
		return zero, fmt.Errorf("%q is not a %s number", text, d.Name())
	}
	return v, nil
}
