package calculator

import (
	"errors"
	"testing"
)

func TestTrueRange(t *testing.T) {
	// bar 0: high-low = 2, |high-prevClose| = 2, |low-prevClose| = 4
	got, err := TrueRange([]float64{10, 9}, []float64{8, 7}, []float64{9, 12})
	if err != nil {
		t.Fatalf("TrueRange: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 value, got %d", len(got))
	}
	assertClose(t, "TR", got[0], 4, 1e-12)
}

func TestTrueRange_SingleBar(t *testing.T) {
	if _, err := TrueRange([]float64{1}, []float64{1}, []float64{1}); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}

func bands(mid []float64) (high, low []float64) {
	high = make([]float64, len(mid))
	low = make([]float64, len(mid))
	for i, v := range mid {
		high[i] = v + 1.5
		low[i] = v - 1.5
	}
	return high, low
}

func TestVI_LinesHavePeriodLength(t *testing.T) {
	closes := zigzag(60, 100)
	highs, lows := bands(closes)
	lines, err := VI(highs, lows, closes, 20)
	if err != nil {
		t.Fatalf("VI: %v", err)
	}
	if len(lines.Uptrend) != 20 || len(lines.Downtrend) != 20 {
		t.Fatalf("expected 20 values per line, got %d/%d", len(lines.Uptrend), len(lines.Downtrend))
	}
	for i := range lines.Uptrend {
		if lines.Uptrend[i] < 0 || lines.Downtrend[i] < 0 {
			t.Errorf("negative vortex value at %d: %+v / %+v", i, lines.Uptrend[i], lines.Downtrend[i])
		}
	}
}

func TestVI_UptrendDominatesRisingMarket(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 200 - float64(i)*2
	}
	highs, lows := bands(closes)
	lines, err := VI(highs, lows, closes, 14)
	if err != nil {
		t.Fatalf("VI: %v", err)
	}
	if lines.Uptrend[0] <= lines.Downtrend[0] {
		t.Errorf("expected VI+ > VI- in a rising market, got %.4f <= %.4f", lines.Uptrend[0], lines.Downtrend[0])
	}
}

func TestVI_FlatMarketIsDegenerate(t *testing.T) {
	flat := constant(50, 40)
	if _, err := VI(flat, flat, flat, 14); !errors.Is(err, ErrDegenerateRatio) {
		t.Errorf("expected ErrDegenerateRatio, got %v", err)
	}
}

func TestVI_InsufficientHistory(t *testing.T) {
	closes := zigzag(39, 100)
	highs, lows := bands(closes)
	if _, err := VI(highs, lows, closes, 20); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}
