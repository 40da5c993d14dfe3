package calculator

import (
	"fmt"
	"math"
)

// RSI computes the relative strength index over the most recent period changes.
// Returns 100 when there is no average loss.
func RSI(values []float64, period int) (float64, error) {
	avgGain, err := AverageChange(values, period, true)
	if err != nil {
		return 0, err
	}
	avgLoss, err := AverageChange(values, period, false)
	if err != nil {
		return 0, err
	}
	if avgLoss == 0 {
		return 100, nil
	}
	return 100 - 100/(1+avgGain/avgLoss), nil
}

// AverageChange returns the mean gain (gains=true) or mean absolute loss over the
// most recent period changes. Only qualifying changes are counted in the mean;
// 0 is returned when there are none.
func AverageChange(values []float64, period int, gains bool) (float64, error) {
	if err := checkWindow("average change", len(values), period, period+1); err != nil {
		return 0, err
	}
	sum, n := 0.0, 0
	for i := 0; i < period; i++ {
		if c, ok := qualify(values[i]-values[i+1], gains); ok {
			sum += c
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// AverageROC is AverageChange with every qualifying change expressed as a
// fraction of the prior value.
func AverageROC(values []float64, period int, gains bool) (float64, error) {
	if err := checkWindow("average roc", len(values), period, period+1); err != nil {
		return 0, err
	}
	sum, n := 0.0, 0
	for i := 0; i < period; i++ {
		c, ok := qualify(values[i]-values[i+1], gains)
		if !ok {
			continue
		}
		if values[i+1] == 0 {
			return 0, fmt.Errorf("average roc: %w: zero base value at index %d", ErrDegenerateRatio, i+1)
		}
		sum += c / values[i+1]
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func qualify(change float64, gains bool) (float64, bool) {
	if gains {
		return change, change > 0
	}
	return math.Abs(change), change < 0
}
