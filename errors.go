package expression

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"
)

// ErrorCode classifies the errors returned by this package.
type ErrorCode string

const (
	CodeParse          ErrorCode = "E0100"
	CodeUnknownVar     ErrorCode = "E0200"
	CodeArityMismatch  ErrorCode = "E0201"
	CodeDivisionByZero ErrorCode = "E0300"
	CodeInternal       ErrorCode = "E0900"
	CodeUnknown        ErrorCode = "E9999"
)

// callerFrame records the function that called it.
func callerFrame() xerrors.Frame { return xerrors.Caller(1) }

// ParseError reports malformed input text.
type ParseError struct {
	Position int // byte offset into the parsed text
	Message  string
	frame    xerrors.Frame
}

func (e *ParseError) Code() ErrorCode { return CodeParse }
func (e *ParseError) Error() string   { return fmt.Sprint(e) }

func (e *ParseError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *ParseError) FormatError(p xerrors.Printer) error {
	p.Printf("%s at position %d: %s", e.Code(), e.Position, e.Message)
	e.frame.Format(p)
	return nil
}

// UnknownVariableError is returned when a name is not among an
// expression's free variables.
type UnknownVariableError struct {
	Name  string
	frame xerrors.Frame
}

func (e *UnknownVariableError) Code() ErrorCode { return CodeUnknownVar }
func (e *UnknownVariableError) Error() string   { return fmt.Sprint(e) }

func (e *UnknownVariableError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *UnknownVariableError) FormatError(p xerrors.Printer) error {
	p.Printf("%s: %q - no such variable", e.Code(), e.Name)
	e.frame.Format(p)
	return nil
}

// ArityMismatchError is returned by Calculate when the name and value lists
// differ in length.
type ArityMismatchError struct {
	Names  int
	Values int
	frame  xerrors.Frame
}

func (e *ArityMismatchError) Code() ErrorCode { return CodeArityMismatch }
func (e *ArityMismatchError) Error() string   { return fmt.Sprint(e) }

func (e *ArityMismatchError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *ArityMismatchError) FormatError(p xerrors.Printer) error {
	if e.Names > e.Values {
		p.Printf("%s: more variables than values (%d > %d)", e.Code(), e.Names, e.Values)
	} else {
		p.Printf("%s: more values than variables (%d > %d)", e.Code(), e.Values, e.Names)
	}
	e.frame.Format(p)
	return nil
}

// DivisionByZeroError is returned when simplification meets a divisor that
// is zero within tolerance.
type DivisionByZeroError struct {
	Dividend string
	frame    xerrors.Frame
}

func (e *DivisionByZeroError) Code() ErrorCode { return CodeDivisionByZero }
func (e *DivisionByZeroError) Error() string   { return fmt.Sprint(e) }

func (e *DivisionByZeroError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *DivisionByZeroError) FormatError(p xerrors.Printer) error {
	p.Printf("%s: division by zero in %s / 0", e.Code(), e.Dividend)
	e.frame.Format(p)
	return nil
}

// InternalError reports a broken precondition, such as evaluating a tree that
// still contains a variable.
type InternalError struct {
	Message string
	frame   xerrors.Frame
}

func newInternalError(format string, args ...interface{}) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...), frame: xerrors.Caller(1)}
}

func (e *InternalError) Code() ErrorCode { return CodeInternal }
func (e *InternalError) Error() string   { return fmt.Sprint(e) }

func (e *InternalError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *InternalError) FormatError(p xerrors.Printer) error {
	p.Printf("%s: %s", e.Code(), e.Message)
	e.frame.Format(p)
	return nil
}

// Code returns the ErrorCode carried by err or by any error it wraps.
func Code(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return CodeUnknown
}
