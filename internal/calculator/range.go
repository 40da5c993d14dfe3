package calculator

import (
	"fmt"
	"math"
)

// TrueRange returns the true range of each bar against the prior bar's close,
// most recent first. The result has one entry less than the shortest input.
func TrueRange(high, low, close []float64) ([]float64, error) {
	n := minLen(high, low, close) - 1
	if n < 1 {
		return nil, fmt.Errorf("true range: %w: need 2 bars, got %d", ErrInsufficientHistory, n+1)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Max(high[i]-low[i],
			math.Max(math.Abs(high[i]-close[i+1]), math.Abs(low[i]-close[i+1])))
	}
	return out, nil
}

// highest returns the largest of the first period values.
func highest(values []float64, period int) float64 {
	h := math.Inf(-1)
	for _, v := range values[:period] {
		if v > h {
			h = v
		}
	}
	return h
}

// lowest returns the smallest of the first period values.
func lowest(values []float64, period int) float64 {
	l := math.Inf(1)
	for _, v := range values[:period] {
		if v < l {
			l = v
		}
	}
	return l
}

func minLen(series ...[]float64) int {
	if len(series) == 0 {
		return 0
	}
	n := len(series[0])
	for _, s := range series[1:] {
		if len(s) < n {
			n = len(s)
		}
	}
	return n
}

func windowSum(values []float64, start, period int) float64 {
	sum := 0.0
	for _, v := range values[start : start+period] {
		sum += v
	}
	return sum
}
