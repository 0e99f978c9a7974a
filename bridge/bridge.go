// Package bridge forwards calls from a foreign caller into Go function values.
//
// Each entry point invokes its callable with zero or one argument and returns
// the result unchanged. The package holds no state.
package bridge

// Callable is a function value reachable across the boundary.
type Callable[A, R any] interface {
	Call(arg A) R
}

// Func adapts an ordinary function to Callable.
type Func[A, R any] func(A) R

// Call invokes f.
func (f Func[A, R]) Call(arg A) R {
	return f(arg)
}

// InvokeNoArgs calls fn with no arguments.
func InvokeNoArgs[R any](fn func() R) R {
	return fn()
}

// InvokeWithBool calls fn with a boolean.
func InvokeWithBool[R any](fn Callable[bool, R], value bool) R {
	return fn.Call(value)
}

// InvokeWithObject calls fn with a structured object.
func InvokeWithObject[A, R any](fn Callable[A, R], arg A) R {
	return fn.Call(arg)
}

// InvokeWithString calls fn with a string.
func InvokeWithString[R any](fn Callable[string, R], value string) R {
	return fn.Call(value)
}

// InvokeWithStrings calls fn with a string sequence.
func InvokeWithStrings[R any](fn Callable[[]string, R], values []string) R {
	return fn.Call(values)
}
