package symbolic

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestEval(t *testing.T) {
	scope := SymbolMap{"N": 8, "M": 3, "K": Undefined}

	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"N / 2", 4},
		{"N % M", 2},
		{"-N + 1", -7},
		{"--N", 8},
		{"+N", 8},
		{"2^3^2", 512},
		{"-2^2", -4},
		{"2^-1", 0.5},
		{"N*M - 4", 20},
		{"ceil(N / M)", 3},
		{"floor(N / M)", 2},
		{"abs(M - N)", 5},
		{"round(2.5)", 3},
		{"sqrt(N * 2)", 4},
		{"log(exp(2))", 2},
		{"log(8, 2)", 3},
		{"min(N, M, 5)", 3},
		{"max(N, M, 5)", 8},
		{"Min(1, 2)", 1},
		{"Max(1, 2)", 2},
		{"int_ceil(N, 3)", 3},
		{"int_floor(N, 3)", 2},
		{"1.5e1", 15},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			got, err := e.Eval(scope)
			if err != nil {
				t.Fatalf("Eval failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	scope := SymbolMap{"N": 8, "K": Undefined}

	tests := []struct {
		expr string
		want error
	}{
		{"N / 0", ErrDivisionByZero},
		{"N % (N - 8)", ErrDivisionByZero},
		{"int_ceil(N, 0)", ErrDivisionByZero},
		{"X + 1", ErrUnresolvedSymbol},
		{"K * 2", ErrUnresolvedSymbol},
		{"ceiling(N)", ErrUnknownFunction},
		{"ceil(N, 2)", ErrArity},
		{"min()", ErrArity},
		{"log()", ErrArity},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			_, err = e.Eval(scope)
			if !errors.Is(err, tt.want) {
				t.Errorf("Eval(%q) error = %v, want %v", tt.expr, err, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"2**N",
		"(N + 1",
		"N + ",
		"N M",
		"f(1,",
		"1..2",
		")",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Parse(%q): expected ErrSyntax, got %v", input, err)
			}
		})
	}
}

func TestFreeSymbolsFromAST(t *testing.T) {
	e, err := Parse("ceil(N / tile) * N + max(M, 2)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got := freeSymbols(e)
	want := []string{"M", "N", "tile"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("freeSymbols = %v, want %v", got, want)
	}
}

func TestExprString(t *testing.T) {
	e, err := Parse("-N + ceil(M / 2)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got, want := e.String(), "(-N + ceil((M / 2)))"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRegisterFunction(t *testing.T) {
	RegisterFunction("twice", func(args []float64) (float64, error) {
		return 2 * args[0], nil
	})

	if !IsFunction("twice") {
		t.Fatal("twice should be registered")
	}
	if IsFunction("Twice") {
		t.Error("function lookup should be case-sensitive")
	}

	e, err := Parse("twice(21)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := e.Eval(nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got != 42 {
		t.Errorf("twice(21) = %v, want 42", got)
	}
}
