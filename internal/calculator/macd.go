package calculator

import "fmt"

const (
	macdFast   = 12
	macdSlow   = 26
	macdSmooth = 9
)

// MACD returns the difference between the 12 and 26 period EMAs for the most
// recent period bars.
func MACD(values []float64, period int) ([]float64, error) {
	if err := checkWindow("macd", len(values), period, max(period, macdSlow)); err != nil {
		return nil, err
	}
	fast, err := EMA(values, macdFast)
	if err != nil {
		return nil, fmt.Errorf("macd fast ema: %w", err)
	}
	slow, err := EMA(values, macdSlow)
	if err != nil {
		return nil, fmt.Errorf("macd slow ema: %w", err)
	}
	out := make([]float64, period)
	for i := range out {
		out[i] = fast[i] - slow[i]
	}
	return out, nil
}

// MACDSignal is the 9 period EMA of the MACD line.
func MACDSignal(macd []float64) ([]float64, error) {
	return EMA(macd, macdSmooth)
}
