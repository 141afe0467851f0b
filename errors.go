package binder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNotBound is returned when a contract has no binding in the injector.
	ErrNotBound = errors.New("contract is not bound")
	// ErrNotAssignable is reported by New when a binding's implementation
	// type does not satisfy its contract.
	ErrNotAssignable = errors.New("implementation is not assignable to contract")
	// ErrNilConstructor is reported by New when a binding has no constructor.
	ErrNilConstructor = errors.New("constructor is nil")
	// ErrEagerTransient is reported by New when a transient binding is
	// marked eager.
	ErrEagerTransient = errors.New("transient bindings cannot be eager")
	// ErrNilInstance is returned when a constructor yields a nil instance
	// without an error.
	ErrNilInstance = errors.New("constructor returned nil instance")
	// ErrClosed is returned by resolutions after the injector has been closed.
	ErrClosed = errors.New("injector is closed")
)

// ResolutionError wraps a failure raised while constructing the
// implementation bound to Contract.
type ResolutionError struct {
	Contract       reflect.Type
	Implementation reflect.Type
	Err            error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s (bound to %s): %v", typeName(e.Contract), typeName(e.Implementation), e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// CycleError represents an error when a dependency cycle is detected
// during resolution. Path starts and ends with the same contract.
type CycleError struct {
	Path []reflect.Type
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "circular dependency detected"
	}

	names := make([]string, 0, len(e.Path))
	for _, t := range e.Path {
		names = append(names, typeName(t))
	}

	return "circular dependency detected: " + strings.Join(names, " -> ")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
