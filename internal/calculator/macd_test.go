package calculator

import (
	"errors"
	"testing"
)

func TestMACD_IsFastMinusSlow(t *testing.T) {
	series := zigzag(60, 100)
	macd, err := MACD(series, 20)
	if err != nil {
		t.Fatalf("MACD: %v", err)
	}
	if len(macd) != 20 {
		t.Fatalf("expected 20 values, got %d", len(macd))
	}
	fast, _ := EMA(series, 12)
	slow, _ := EMA(series, 26)
	for i := range macd {
		assertClose(t, "MACD", macd[i], fast[i]-slow[i], 1e-12)
	}
}

func TestMACD_ConstantSeriesIsFlat(t *testing.T) {
	macd, err := MACD(constant(10, 40), 20)
	if err != nil {
		t.Fatalf("MACD: %v", err)
	}
	for _, v := range macd {
		assertClose(t, "MACD", v, 0, 1e-9)
	}
}

func TestMACD_InsufficientHistory(t *testing.T) {
	if _, err := MACD(constant(10, 25), 20); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
	if _, err := MACD(constant(10, 30), 31); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory for range beyond series, got %v", err)
	}
}

func TestMACDSignal(t *testing.T) {
	macd, err := MACD(zigzag(60, 100), 20)
	if err != nil {
		t.Fatalf("MACD: %v", err)
	}
	signal, err := MACDSignal(macd)
	if err != nil {
		t.Fatalf("MACDSignal: %v", err)
	}
	if len(signal) != len(macd) {
		t.Errorf("expected %d signal values, got %d", len(macd), len(signal))
	}
	if _, err := MACDSignal(macd[:8]); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}
