package ecs

import "fmt"

// PreconditionError is the panic value raised by Assert. It marks a
// programming or configuration mistake, not a runtime condition to recover
// from.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// Assert panics with a *PreconditionError when cond is false.
func Assert(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(&PreconditionError{Message: fmt.Sprintf(format, args...)})
}
