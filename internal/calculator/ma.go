package calculator

// SMA returns the simple moving average of the first period values.
// values are ordered most recent first.
func SMA(values []float64, period int) (float64, error) {
	if err := checkWindow("sma", len(values), period, period); err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range values[:period] {
		sum += v
	}
	return sum / float64(period), nil
}

// EMA returns the exponential moving average series, most recent first, with the
// same length as values.
//
// The series is seeded with the SMA of the oldest period values and the
// recursion then runs over every remaining value, including those already
// inside the seed window.
func EMA(values []float64, period int) ([]float64, error) {
	if err := checkWindow("ema", len(values), period, period); err != nil {
		return nil, err
	}
	reversed := reverse(values)
	seed, err := SMA(reversed, period)
	if err != nil {
		return nil, err
	}

	k := 2 / float64(period+1)
	out := make([]float64, len(reversed))
	out[0] = seed
	for i := 1; i < len(reversed); i++ {
		out[i] = reversed[i]*k + out[i-1]*(1-k)
	}
	return reverse(out), nil
}

func reverse(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}
