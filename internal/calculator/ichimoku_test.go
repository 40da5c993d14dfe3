package calculator

import (
	"errors"
	"testing"
)

func TestIchimoku(t *testing.T) {
	n := 60
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i] = 100 + float64(i)
		lows[i] = 50 + 2*float64(i)
		closes[i] = float64(i)
	}
	cloud, err := Ichimoku(highs, lows, closes)
	if err != nil {
		t.Fatalf("Ichimoku: %v", err)
	}
	assertClose(t, "tenkan", cloud.TenkanSen, (108+50)/2.0, 1e-12)
	assertClose(t, "kijun", cloud.KijunSen, (125+50)/2.0, 1e-12)
	assertClose(t, "span A", cloud.SenkouSpanA, (79+87.5)/2.0, 1e-12)
	assertClose(t, "span B", cloud.SenkouSpanB, (151+50)/2.0, 1e-12)
	assertClose(t, "chikou", cloud.ChikouSpan, 26, 1e-12)
}

func TestIchimoku_InsufficientHistory(t *testing.T) {
	series := zigzag(51, 100)
	if _, err := Ichimoku(series, series, series); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}
