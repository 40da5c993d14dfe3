package calculator

import "TradeSentinel/internal/model"

// Closes extracts close prices, keeping the most-recent-first order.
func Closes(bars []model.OHLCV) []float64 {
	return extract(bars, func(b model.OHLCV) float64 { return b.Close })
}

// Highs extracts high prices, keeping the most-recent-first order.
func Highs(bars []model.OHLCV) []float64 {
	return extract(bars, func(b model.OHLCV) float64 { return b.High })
}

// Lows extracts low prices, keeping the most-recent-first order.
func Lows(bars []model.OHLCV) []float64 {
	return extract(bars, func(b model.OHLCV) float64 { return b.Low })
}

// Volumes extracts traded volumes, keeping the most-recent-first order.
func Volumes(bars []model.OHLCV) []float64 {
	return extract(bars, func(b model.OHLCV) float64 { return b.Volume })
}

func extract(bars []model.OHLCV, field func(model.OHLCV) float64) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = field(b)
	}
	return out
}
