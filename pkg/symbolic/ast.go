package symbolic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Expr is a parsed symbolic expression
type Expr interface {
	// Eval computes the expression with symbol values taken from scope
	Eval(scope SymbolMap) (float64, error)
	// collectSymbols adds every free symbol to set
	collectSymbols(set map[string]struct{})
	String() string
}

// NumberLiteral is a numeric constant
type NumberLiteral struct {
	Value float64
}

func (n *NumberLiteral) Eval(SymbolMap) (float64, error)   { return n.Value, nil }
func (n *NumberLiteral) collectSymbols(map[string]struct{}) {}
func (n *NumberLiteral) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// SymbolRef is a reference to a named symbol
type SymbolRef struct {
	Name string
}

func (s *SymbolRef) Eval(scope SymbolMap) (float64, error) {
	v, ok := scope.Lookup(s.Name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnresolvedSymbol, s.Name)
	}
	return v, nil
}

func (s *SymbolRef) collectSymbols(set map[string]struct{}) { set[s.Name] = struct{}{} }
func (s *SymbolRef) String() string                         { return s.Name }

// BinaryExpression represents +, -, *, /, % and ^
type BinaryExpression struct {
	Left     Expr
	Operator byte
	Right    Expr
}

func (b *BinaryExpression) Eval(scope SymbolMap) (float64, error) {
	left, err := b.Left.Eval(scope)
	if err != nil {
		return 0, err
	}
	right, err := b.Right.Eval(scope)
	if err != nil {
		return 0, err
	}

	switch b.Operator {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	case '%':
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Mod(left, right), nil
	case '^':
		return math.Pow(left, right), nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrSyntax, b.Operator)
	}
}

func (b *BinaryExpression) collectSymbols(set map[string]struct{}) {
	b.Left.collectSymbols(set)
	b.Right.collectSymbols(set)
}

func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + string(b.Operator) + " " + b.Right.String() + ")"
}

// NegateExpression is unary minus
type NegateExpression struct {
	Operand Expr
}

func (n *NegateExpression) Eval(scope SymbolMap) (float64, error) {
	v, err := n.Operand.Eval(scope)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n *NegateExpression) collectSymbols(set map[string]struct{}) { n.Operand.collectSymbols(set) }
func (n *NegateExpression) String() string                         { return "-" + n.Operand.String() }

// CallExpression is a function call such as ceil(N/2)
type CallExpression struct {
	Name string
	Args []Expr
}

func (c *CallExpression) Eval(scope SymbolMap) (float64, error) {
	fn, err := GetFunction(c.Name)
	if err != nil {
		return 0, err
	}

	args := make([]float64, len(c.Args))
	for i, arg := range c.Args {
		v, err := arg.Eval(scope)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	return fn(args)
}

func (c *CallExpression) collectSymbols(set map[string]struct{}) {
	for _, arg := range c.Args {
		arg.collectSymbols(set)
	}
}

func (c *CallExpression) String() string {
	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		parts[i] = arg.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}
