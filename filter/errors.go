package filter

import (
	"fmt"
)

// CompilationError indicates a filter expression could not be compiled
type CompilationError struct {
	Expression string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("failed to compile filter '%s': %v", e.Expression, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
