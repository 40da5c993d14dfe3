package calculator

import (
	"fmt"
	"math"

	"TradeSentinel/internal/model"
)

// VI computes the vortex indicator lines for the most recent period bars.
// Requires at least 2*period bars.
func VI(high, low, close []float64, period int) (*model.VortexLines, error) {
	n := minLen(high, low, close)
	if err := checkWindow("vi", n, period, 2*period); err != nil {
		return nil, err
	}

	tr, err := TrueRange(high, low, close)
	if err != nil {
		return nil, err
	}
	pv := make([]float64, n-1)
	nv := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		pv[i] = math.Abs(high[i] - low[i+1])
		nv[i] = math.Abs(low[i] - high[i+1])
	}

	lines := &model.VortexLines{
		Uptrend:   make([]float64, period),
		Downtrend: make([]float64, period),
	}
	for i := 0; i < period; i++ {
		sumTR := windowSum(tr, i, period)
		if sumTR == 0 {
			return nil, fmt.Errorf("vi: %w: zero true range over window %d", ErrDegenerateRatio, i)
		}
		lines.Uptrend[i] = windowSum(pv, i, period) / sumTR
		lines.Downtrend[i] = windowSum(nv, i, period) / sumTR
	}
	return lines, nil
}
