package strategy

import (
	"testing"

	"TradeSentinel/internal/model"
)

func TestNewMACD_FirstCycle(t *testing.T) {
	m := NewMACD(1.5, 1.0, nil)
	if !m.MACDGTSignal {
		t.Error("expected MACD > signal")
	}
	if m.MACDCrossoverSignal || m.ConvergingMACDSignal {
		t.Errorf("first cycle must not report crossover or convergence: %+v", m)
	}
	if m.PrevMACD != nil || m.PrevMACDSignal != nil {
		t.Error("expected no previous values")
	}
}

func TestNewMACD_AgainstPrevious(t *testing.T) {
	tests := []struct {
		name         string
		macd, signal float64
		prev         model.MACD
		crossover    bool
		converging   bool
	}{
		{"upward cross", 2, 1, model.MACD{MACD: 0.5, MACDSignal: 1, MACDGTSignal: false}, true, false},
		{"downward cross", 1, 2, model.MACD{MACD: 3, MACDSignal: 1, MACDGTSignal: true}, true, true},
		{"converging above", 1.2, 1, model.MACD{MACD: 2, MACDSignal: 1, MACDGTSignal: true}, false, true},
		{"diverging below", -3, 1, model.MACD{MACD: -1, MACDSignal: 1, MACDGTSignal: false}, false, false},
		{"equal is not greater", 1, 1, model.MACD{MACD: 2, MACDSignal: 1, MACDGTSignal: true}, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := tc.prev
			m := NewMACD(tc.macd, tc.signal, &prev)
			if m.MACDCrossoverSignal != tc.crossover {
				t.Errorf("crossover: expected %v, got %v", tc.crossover, m.MACDCrossoverSignal)
			}
			if m.ConvergingMACDSignal != tc.converging {
				t.Errorf("converging: expected %v, got %v", tc.converging, m.ConvergingMACDSignal)
			}
			if m.PrevMACD == nil || *m.PrevMACD != tc.prev.MACD {
				t.Errorf("expected prev MACD %v, got %v", tc.prev.MACD, m.PrevMACD)
			}
			if m.PrevMACDSignal == nil || *m.PrevMACDSignal != tc.prev.MACDSignal {
				t.Errorf("expected prev signal %v, got %v", tc.prev.MACDSignal, m.PrevMACDSignal)
			}
		})
	}
}

func TestSignal(t *testing.T) {
	tests := []struct {
		name string
		ta   *model.TechnicalAnalysis
		want model.Action
	}{
		{"nil analysis", nil, model.ActionNone},
		{"nil macd", &model.TechnicalAnalysis{}, model.ActionNone},
		{"no crossover", &model.TechnicalAnalysis{MACD: &model.MACD{MACDGTSignal: true}}, model.ActionNone},
		{"cross up", &model.TechnicalAnalysis{MACD: &model.MACD{MACDGTSignal: true, MACDCrossoverSignal: true}}, model.ActionBuy},
		{"cross down", &model.TechnicalAnalysis{MACD: &model.MACD{MACDCrossoverSignal: true}}, model.ActionSell},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Signal(tc.ta); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
