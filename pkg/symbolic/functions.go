package symbolic

import (
	"fmt"
	"math"
	"sync"
)

// Func is a numeric function callable from an expression
type Func func(args []float64) (float64, error)

var (
	functionRegistry   = make(map[string]Func)
	functionRegistryMu sync.RWMutex
)

// RegisterFunction makes fn callable as name(...)
func RegisterFunction(name string, fn Func) {
	functionRegistryMu.Lock()
	defer functionRegistryMu.Unlock()
	functionRegistry[name] = fn
}

// GetFunction retrieves a registered function by name (case-sensitive)
func GetFunction(name string) (Func, error) {
	functionRegistryMu.RLock()
	defer functionRegistryMu.RUnlock()
	if fn, ok := functionRegistry[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
}

// IsFunction reports whether name is a registered function
func IsFunction(name string) bool {
	_, err := GetFunction(name)
	return err == nil
}

func init() {
	RegisterFunction("ceil", unary("ceil", math.Ceil))
	RegisterFunction("floor", unary("floor", math.Floor))
	RegisterFunction("abs", unary("abs", math.Abs))
	RegisterFunction("round", unary("round", math.Round))
	RegisterFunction("sqrt", unary("sqrt", math.Sqrt))
	RegisterFunction("exp", unary("exp", math.Exp))
	RegisterFunction("log", fnLog)
	RegisterFunction("min", fnMin)
	RegisterFunction("max", fnMax)
	RegisterFunction("Min", fnMin)
	RegisterFunction("Max", fnMax)
	RegisterFunction("int_ceil", fnIntCeil)
	RegisterFunction("int_floor", fnIntFloor)
}

func unary(name string, f func(float64) float64) Func {
	return func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%w: %s requires 1 argument, got %d", ErrArity, name, len(args))
		}
		return f(args[0]), nil
	}
}

// fnLog is the natural logarithm, or log(x, base) with two arguments
func fnLog(args []float64) (float64, error) {
	switch len(args) {
	case 1:
		return math.Log(args[0]), nil
	case 2:
		return math.Log(args[0]) / math.Log(args[1]), nil
	default:
		return 0, fmt.Errorf("%w: log requires 1 or 2 arguments, got %d", ErrArity, len(args))
	}
}

func fnMin(args []float64) (float64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: min requires at least 1 argument", ErrArity)
	}
	result := args[0]
	for _, v := range args[1:] {
		result = math.Min(result, v)
	}
	return result, nil
}

func fnMax(args []float64) (float64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: max requires at least 1 argument", ErrArity)
	}
	result := args[0]
	for _, v := range args[1:] {
		result = math.Max(result, v)
	}
	return result, nil
}

// fnIntCeil is ceil(a / b)
func fnIntCeil(args []float64) (float64, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("%w: int_ceil requires 2 arguments, got %d", ErrArity, len(args))
	}
	if args[1] == 0 {
		return 0, ErrDivisionByZero
	}
	return math.Ceil(args[0] / args[1]), nil
}

// fnIntFloor is floor(a / b)
func fnIntFloor(args []float64) (float64, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("%w: int_floor requires 2 arguments, got %d", ErrArity, len(args))
	}
	if args[1] == 0 {
		return 0, ErrDivisionByZero
	}
	return math.Floor(args[0] / args[1]), nil
}
