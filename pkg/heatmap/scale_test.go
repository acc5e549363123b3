package heatmap

import (
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNewScale(t *testing.T) {
	s := NewScale(Config{})
	if s.Center() != InitialCenter {
		t.Errorf("expected initial center %v, got %v", InitialCenter, s.Center())
	}
	if len(s.Buckets()) != 0 {
		t.Errorf("expected no buckets, got %v", s.Buckets())
	}
	if s.Method() != MethodMedian {
		t.Errorf("expected median by default, got %s", s.Method())
	}
}

func TestBuildScale_Centers(t *testing.T) {
	values := []float64{2, 10, 4, 8}

	tests := []struct {
		method Method
		want   float64
	}{
		{MethodMedian, 6},
		{MethodMean, 6},
		{MethodLinear, 6},
		{MethodExponential, math.Log2(12) / 2},
		{MethodHistogram, 6},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			s := BuildScale(values, Config{Method: tt.method, HistBuckets: 4})
			if math.Abs(s.Center()-tt.want) > 1e-9 {
				t.Errorf("center = %v, want %v", s.Center(), tt.want)
			}
		})
	}
}

func TestBuildScale_EmptyIsInitial(t *testing.T) {
	s := BuildScale(nil, DefaultConfig())
	if s.Center() != InitialCenter {
		t.Errorf("expected %v, got %v", InitialCenter, s.Center())
	}
}

func TestSeverity_Default(t *testing.T) {
	s := BuildScale([]float64{10, 6}, DefaultConfig())
	// median 8
	tests := []struct {
		v    float64
		want float64
	}{
		{0, 0},
		{-3, 0},
		{4, 0.25},
		{8, 0.5},
		{16, 1},
		{100, 1},
	}
	for _, tt := range tests {
		if got := s.Severity(tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Severity(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}

	if s.Severity(10) <= s.Severity(6) {
		t.Error("larger volume must be more severe")
	}
}

func TestSeverity_DegenerateCenter(t *testing.T) {
	s := BuildScale([]float64{0}, DefaultConfig())
	if s.Center() != 0 {
		t.Fatalf("expected center 0, got %v", s.Center())
	}
	if got := s.Severity(1); got != 1 {
		t.Errorf("positive value with zero center: got %v, want 1", got)
	}
	if got := s.Severity(0); got != 0 {
		t.Errorf("zero value with zero center: got %v, want 0", got)
	}
}

func TestSeverity_Exponential(t *testing.T) {
	s := BuildScale([]float64{2, 14}, Config{Method: MethodExponential, ExpBase: 2})
	// center = log2(16)/2 = 2
	if math.Abs(s.Center()-2) > 1e-9 {
		t.Fatalf("expected center 2, got %v", s.Center())
	}
	if got := s.Severity(4); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Severity(4) = %v, want 0.5", got)
	}
	if got := s.Severity(0.5); got != 0 {
		t.Errorf("Severity(0.5) = %v, want 0", got)
	}
}

func TestSeverity_Histogram(t *testing.T) {
	s := BuildScale([]float64{1, 2, 3, 4, 5}, Config{Method: MethodHistogram, HistBuckets: 1})
	if want := []float64{1, 2, 3, 4, 5}; !reflect.DeepEqual(s.Buckets(), want) {
		t.Fatalf("buckets = %v, want %v", s.Buckets(), want)
	}

	tests := []struct {
		v    float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{3, 0.5},
		{2.5, 0.5},
		{5, 1},
		{50, 1},
	}
	for _, tt := range tests {
		if got := s.Severity(tt.v); got != tt.want {
			t.Errorf("Severity(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}

	single := BuildScale([]float64{7, 7}, Config{Method: MethodHistogram, HistBuckets: 0})
	if got := single.Severity(7); got != 0.5 {
		t.Errorf("single bucket severity = %v, want 0.5", got)
	}
}

func TestHistogram(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		n      int
		want   []float64
	}{
		{"empty", nil, 4, []float64{}},
		{"unique", []float64{3, 1, 3, 2}, 1, []float64{1, 2, 3}},
		{"equal width", []float64{0, 10}, 5, []float64{0, 2, 4, 6, 8}},
		{"constant", []float64{4, 4}, 2, []float64{4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Histogram(tt.values, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Histogram = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedianMean(t *testing.T) {
	if got := Median([]float64{5, 1, 3}); got != 3 {
		t.Errorf("odd median = %v", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Errorf("even median = %v", got)
	}
	if got := Mean([]float64{1, 2, 3, 6}); got != 3 {
		t.Errorf("mean = %v", got)
	}
	if Median(nil) != 0 || Mean(nil) != 0 {
		t.Error("empty input should yield 0")
	}

	values := []float64{3, 1, 2}
	Median(values)
	if !reflect.DeepEqual(values, []float64{3, 1, 2}) {
		t.Error("Median must not reorder its input")
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		got, err := ParseMethod(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = (%v, %v)", m, got, err)
		}
	}
	if got, err := ParseMethod(""); err != nil || got != MethodMedian {
		t.Errorf("ParseMethod(\"\") = (%v, %v)", got, err)
	}
	if _, err := ParseMethod("log"); err == nil {
		t.Error("expected error for unknown method")
	}
}

// TestSeverityProperties checks bounds and monotonicity for every method
func TestSeverityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	for _, method := range Methods {
		method := method
		properties.Property("severity is bounded and monotonic: "+string(method), prop.ForAll(
			func(values []float64, probes []float64, buckets int) bool {
				s := BuildScale(values, Config{Method: method, HistBuckets: buckets})

				sort.Float64s(probes)
				prev := -1.0
				for _, v := range probes {
					sev := s.Severity(v)
					if sev < 0 || sev > 1 || sev < prev {
						return false
					}
					prev = sev
				}
				return true
			},
			gen.SliceOf(gen.Float64Range(0.001, 1e6)),
			gen.SliceOf(gen.Float64Range(-10, 2e6)),
			gen.IntRange(0, 20),
		))
	}

	properties.TestingRun(t)
}
