// Package heatmap maps raw metric values onto a [0, 1] severity scale and
// a green-to-red temperature colour ramp.
package heatmap

import (
	"fmt"
	"math"
	"sort"
)

// Method selects how the scale's center is derived from the values
type Method string

const (
	MethodMedian      Method = "median"
	MethodMean        Method = "mean"
	MethodLinear      Method = "linear_interpolation"
	MethodExponential Method = "exponential_interpolation"
	MethodHistogram   Method = "hist"
)

// Methods lists every supported scaling method
var Methods = []Method{MethodMedian, MethodMean, MethodLinear, MethodExponential, MethodHistogram}

// ParseMethod converts a method name, defaulting to median for ""
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return MethodMedian, nil
	}
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown heatmap scaling method %q", s)
}

const (
	// InitialCenter is the center of a scale before any values are seen
	InitialCenter = 5.0
	// DefaultHistBuckets is the bucket count used by the hist method
	DefaultHistBuckets = 10
	// DefaultExpBase is the logarithm base used by exponential interpolation
	DefaultExpBase = 2.0
)

// Config controls scale construction
type Config struct {
	Method      Method  `yaml:"method" validate:"omitempty,oneof=median mean linear_interpolation exponential_interpolation hist"`
	HistBuckets int     `yaml:"hist_buckets" validate:"gte=0,lte=1000"`
	ExpBase     float64 `yaml:"exp_base" validate:"gte=0"`
}

// DefaultConfig returns the median method with default parameters
func DefaultConfig() Config {
	return Config{
		Method:      MethodMedian,
		HistBuckets: DefaultHistBuckets,
		ExpBase:     DefaultExpBase,
	}
}

func (c Config) withDefaults() Config {
	if c.Method == "" {
		c.Method = MethodMedian
	}
	if c.ExpBase <= 1 {
		c.ExpBase = DefaultExpBase
	}
	return c
}

// Scale converts values to severities. A Scale is immutable once built.
type Scale struct {
	config  Config
	center  float64
	buckets []float64
}

// NewScale returns a scale in its initial state: center InitialCenter and
// no histogram buckets
func NewScale(cfg Config) *Scale {
	return &Scale{config: cfg.withDefaults(), center: InitialCenter}
}

// BuildScale derives a scale from values. An empty values slice yields
// the initial scale.
func BuildScale(values []float64, cfg Config) *Scale {
	s := NewScale(cfg)
	if len(values) == 0 {
		return s
	}

	switch s.config.Method {
	case MethodMean:
		s.center = Mean(values)
	case MethodLinear:
		lo, hi := minMax(values)
		s.center = (lo + hi) / 2
	case MethodExponential:
		lo, hi := minMax(values)
		s.center = logBase(lo+hi, s.config.ExpBase) / 2
	case MethodHistogram:
		s.buckets = Histogram(values, s.config.HistBuckets)
		s.center = Median(values)
	default:
		s.center = Median(values)
	}
	return s
}

// Method returns the scaling method in use
func (s *Scale) Method() Method { return s.config.Method }

// Center returns the value that maps to severity 0.5
func (s *Scale) Center() float64 { return s.center }

// Buckets returns a copy of the histogram bucket bounds
func (s *Scale) Buckets() []float64 {
	out := make([]float64, len(s.buckets))
	copy(out, s.buckets)
	return out
}

// Severity maps v to [0, 1]. It is monotonically non-decreasing in v.
func (s *Scale) Severity(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}

	if s.config.Method == MethodHistogram && len(s.buckets) > 0 {
		return s.histSeverity(v)
	}

	var raw float64
	if s.config.Method == MethodExponential {
		if v <= 0 {
			return 0
		}
		if s.center <= 0 {
			return stepSeverity(v - 1)
		}
		raw = logBase(v, s.config.ExpBase) / (2 * s.center)
	} else {
		if s.center <= 0 {
			return stepSeverity(v)
		}
		raw = v / (2 * s.center)
	}
	return clamp(raw)
}

func (s *Scale) histSeverity(v float64) float64 {
	n := len(s.buckets)
	if n == 1 {
		return 0.5
	}
	i := sort.Search(n, func(i int) bool { return s.buckets[i] >= v })
	if i >= n {
		i = n - 1
	}
	return float64(i) / float64(n-1)
}

// stepSeverity handles a degenerate center: positive input is fully
// severe, everything else is not
func stepSeverity(v float64) float64 {
	if v > 0 {
		return 1
	}
	return 0
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func logBase(v, base float64) float64 {
	return math.Log(v) / math.Log(base)
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
