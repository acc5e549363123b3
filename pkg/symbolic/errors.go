package symbolic

import "errors"

var (
	// ErrSyntax is returned for malformed expressions
	ErrSyntax = errors.New("syntax error")

	// ErrUnresolvedSymbol is returned when a symbol has no known value
	ErrUnresolvedSymbol = errors.New("unresolved symbol")

	// ErrUnknownFunction is returned when a call names an unregistered function
	ErrUnknownFunction = errors.New("unknown function")

	// ErrDivisionByZero is returned for x/0 and x%0
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNonFinite is returned when evaluation produces NaN or an infinity
	ErrNonFinite = errors.New("non-finite result")

	// ErrArity is returned when a function receives the wrong number of arguments
	ErrArity = errors.New("wrong number of arguments")
)

// errorKind maps an evaluation error to a short label for metrics
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrSyntax):
		return "syntax"
	case errors.Is(err, ErrUnresolvedSymbol):
		return "unresolved_symbol"
	case errors.Is(err, ErrUnknownFunction):
		return "unknown_function"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrNonFinite):
		return "non_finite"
	case errors.Is(err, ErrArity):
		return "arity"
	default:
		return "other"
	}
}
