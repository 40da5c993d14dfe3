package calculator

// OBV returns the on-balance volume over the most recent period bars, seeded
// with the latest bar's volume.
func OBV(closes, volumes []float64, period int) (float64, error) {
	if err := checkWindow("obv", minLen(closes, volumes), period, period); err != nil {
		return 0, err
	}
	obv := volumes[0]
	for i := 1; i < period; i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += volumes[i]
		case closes[i] < closes[i-1]:
			obv -= volumes[i]
		}
	}
	return obv, nil
}

// MFI computes the money flow index over the most recent period bars.
// Returns 100 when there is no negative money flow.
func MFI(highs, lows, closes, volumes []float64, period int) (float64, error) {
	if err := checkWindow("mfi", minLen(highs, lows, closes, volumes), period, period+1); err != nil {
		return 0, err
	}
	typical := func(i int) float64 { return (highs[i] + lows[i] + closes[i]) / 3 }

	var positive, negative float64
	for i := 0; i < period; i++ {
		tp, prior := typical(i), typical(i+1)
		switch {
		case tp > prior:
			positive += tp * volumes[i]
		case tp < prior:
			negative += tp * volumes[i]
		}
	}
	if negative == 0 {
		return 100, nil
	}
	return 100 - 100/(1+positive/negative), nil
}
