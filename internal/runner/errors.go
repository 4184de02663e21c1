package runner

import (
	"errors"
	"fmt"
)

// ErrParse matches any ParseError via errors.Is.
var ErrParse = errors.New("invalid module mass")

// ParseError reports an input line that is not an integer.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v %q: %v", e.Line, ErrParse, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrParse as a match so callers need not unwrap the concrete type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

var errNotInteger = errors.New("not a base-10 integer")
