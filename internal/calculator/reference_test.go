package calculator

import (
	"testing"

	"github.com/markcheno/go-talib"
)

func oldestFirst(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}

func TestSMA_MatchesTalib(t *testing.T) {
	series := zigzag(120, 250)
	ref := talib.Sma(oldestFirst(series), 20)
	got, err := SMA(series, 20)
	if err != nil {
		t.Fatalf("SMA: %v", err)
	}
	assertClose(t, "SMA vs talib", got, ref[len(ref)-1], 1e-9)
}

func TestTrueRange_MatchesTalib(t *testing.T) {
	closes := zigzag(50, 80)
	highs, lows := bands(closes)
	highs[7] += 9 // gap above the prior close
	lows[21] -= 6

	got, err := TrueRange(highs, lows, closes)
	if err != nil {
		t.Fatalf("TrueRange: %v", err)
	}
	ref := talib.TRange(oldestFirst(highs), oldestFirst(lows), oldestFirst(closes))
	n := len(closes)
	for j := range got {
		assertClose(t, "TR vs talib", got[j], ref[n-1-j], 1e-9)
	}
}

// TestLinearSeries checks the indicators on a 60-bar series rising by one
// per bar against values worked out by hand.
func TestLinearSeries(t *testing.T) {
	series := make([]float64, 60)
	for i := range series {
		series[i] = 159 - float64(i) // oldest bar is 100
	}

	sma20, err := SMA(series, 20)
	if err != nil {
		t.Fatalf("SMA20: %v", err)
	}
	assertClose(t, "SMA20", sma20, 149.5, 1e-9)

	sma50, err := SMA(series, 50)
	if err != nil {
		t.Fatalf("SMA50: %v", err)
	}
	assertClose(t, "SMA50", sma50, 134.5, 1e-9)

	rsi, err := RSI(series, 14)
	if err != nil {
		t.Fatalf("RSI: %v", err)
	}
	assertClose(t, "RSI14", rsi, 100, 0)

	roc, err := AverageROC(series, 20, true)
	if err != nil {
		t.Fatalf("AverageROC: %v", err)
	}
	want := 0.0
	for i := 0; i < 20; i++ {
		want += 1 / series[i+1]
	}
	assertClose(t, "ROC20", roc, want/20, 1e-12)

	// EMA worked oldest first, as a spreadsheet would.
	old := oldestFirst(series)
	k := 2.0 / 13
	ema := (old[0] + old[1] + old[2] + old[3] + old[4] + old[5] +
		old[6] + old[7] + old[8] + old[9] + old[10] + old[11]) / 12
	for i := 1; i < len(old); i++ {
		ema = old[i]*k + ema*(1-k)
	}
	got, err := EMA(series, 12)
	if err != nil {
		t.Fatalf("EMA12: %v", err)
	}
	assertClose(t, "EMA12", got[0], ema, 1e-9)
}
