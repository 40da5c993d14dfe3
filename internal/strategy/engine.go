// Package strategy turns an indicator snapshot into a trading decision and a
// concrete, risk-bounded set of orders.
package strategy

import (
	"math"

	"TradeSentinel/internal/model"
)

// NewMACD compares the latest MACD and signal values against the previous
// cycle's record. Without a previous record no crossover or convergence is
// reported.
func NewMACD(macd, signal float64, prev *model.MACD) *model.MACD {
	m := &model.MACD{
		MACD:         macd,
		MACDSignal:   signal,
		MACDGTSignal: macd > signal,
	}
	if prev == nil {
		return m
	}
	prevMACD, prevSignal := prev.MACD, prev.MACDSignal
	m.PrevMACD = &prevMACD
	m.PrevMACDSignal = &prevSignal
	m.ConvergingMACDSignal = math.Abs(macd-signal) < math.Abs(prevMACD-prevSignal)
	m.MACDCrossoverSignal = m.MACDGTSignal != prev.MACDGTSignal
	return m
}

// Signal maps a technical analysis snapshot to an action. Only a MACD
// crossover triggers a trade: upward crossings buy, downward crossings sell.
func Signal(ta *model.TechnicalAnalysis) model.Action {
	if ta == nil || ta.MACD == nil || !ta.MACD.MACDCrossoverSignal {
		return model.ActionNone
	}
	if ta.MACD.MACDGTSignal {
		return model.ActionBuy
	}
	return model.ActionSell
}
