package heatmap

import "sort"

// Median returns the median of values, or 0 for an empty slice
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Histogram returns ascending bucket bounds for values. With n <= 1 every
// distinct value is its own bucket; otherwise n buckets of equal width
// starting at the minimum.
func Histogram(values []float64, n int) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	sorted := sortedCopy(values)
	if n <= 1 {
		unique := make([]float64, 0, len(sorted))
		for i, v := range sorted {
			if i == 0 || v != sorted[i-1] {
				unique = append(unique, v)
			}
		}
		return unique
	}

	lo, hi := sorted[0], sorted[len(sorted)-1]
	step := (hi - lo) / float64(n)
	buckets := make([]float64, n)
	for i := range buckets {
		buckets[i] = lo + float64(i)*step
	}
	return buckets
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
