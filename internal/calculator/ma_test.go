package calculator

import (
	"errors"
	"testing"
)

func TestSMA_FirstPeriodValues(t *testing.T) {
	got, err := SMA([]float64{5, 4, 3, 2, 1}, 3)
	if err != nil {
		t.Fatalf("SMA: %v", err)
	}
	assertClose(t, "SMA(3)", got, 4, 1e-12)
}

func TestSMA_Errors(t *testing.T) {
	if _, err := SMA([]float64{1, 2}, 3); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
	if _, err := SMA([]float64{1, 2}, 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestEMA_LiteralSeeding(t *testing.T) {
	// oldest first: 1, 2, 3, 4; k = 2/3, seed = (1+2)/2 = 1.5
	// the recursion starts at index 1, inside the seed window:
	// 2*2/3 + 1.5/3 = 1.833333, 3*2/3 + 1.833333/3 = 2.611111, 4*2/3 + 2.611111/3 = 3.537037
	got, err := EMA([]float64{4, 3, 2, 1}, 2)
	if err != nil {
		t.Fatalf("EMA: %v", err)
	}
	want := []float64{3.537037, 2.611111, 1.833333, 1.5}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		assertClose(t, "EMA(2)", got[i], want[i], 1e-6)
	}
}

func TestEMA_DoesNotMutateInput(t *testing.T) {
	in := []float64{4, 3, 2, 1}
	if _, err := EMA(in, 2); err != nil {
		t.Fatalf("EMA: %v", err)
	}
	if in[0] != 4 || in[3] != 1 {
		t.Errorf("input reordered: %v", in)
	}
}

func TestMovingAverages_ConstantSeries(t *testing.T) {
	series := constant(42.5, 60)
	sma, err := SMA(series, 20)
	if err != nil {
		t.Fatalf("SMA: %v", err)
	}
	assertClose(t, "SMA", sma, 42.5, 1e-9)

	ema, err := EMA(series, 12)
	if err != nil {
		t.Fatalf("EMA: %v", err)
	}
	for _, v := range ema {
		assertClose(t, "EMA", v, 42.5, 1e-9)
	}
}

func TestEMA_Errors(t *testing.T) {
	if _, err := EMA([]float64{1, 2, 3}, 4); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
	if _, err := EMA([]float64{1, 2, 3}, -1); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}
