// Package auditor settles past trades and stores the current cycle.
package auditor

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"TradeSentinel/internal/model"
	"TradeSentinel/internal/recorder"
)

// Auditor reflects on open trades and persists each evaluation.
type Auditor struct {
	store recorder.Recorder
}

// New creates an Auditor backed by store.
func New(store recorder.Recorder) *Auditor {
	return &Auditor{store: store}
}

// Audit settles open trades against the evaluation price, then stores the
// evaluation's trade (if any) and the evaluation itself. A trade whose entry
// order was rejected is stored as REJECTED so it is never reopened. It returns
// the trades settled this cycle.
func (a *Auditor) Audit(ctx context.Context, ev *model.Evaluation) ([]*model.Trade, error) {
	settled, err := a.reflect(ctx, ev.Currency, ev.Price)
	if err != nil {
		// settling is best effort; the cycle must still be stored
		log.Printf("[WARN] reflect on past trades: %v", err)
	}

	if ev.Trade != nil {
		if ev.Trade.EntryRejected() {
			ev.Trade.Result = model.TradeResultRejected
		}
		if err := a.store.RecordTrade(ctx, ev.Trade); err != nil {
			return settled, fmt.Errorf("store trade %s: %w", ev.Trade.ID, err)
		}
	}
	if err := a.store.RecordEvaluation(ctx, ev); err != nil {
		return settled, fmt.Errorf("store evaluation %s: %w", ev.ID, err)
	}
	return settled, nil
}

func (a *Auditor) reflect(ctx context.Context, currency string, price decimal.Decimal) ([]*model.Trade, error) {
	open, err := a.store.OpenTrades(ctx, currency)
	if err != nil {
		return nil, err
	}
	var settled []*model.Trade
	for _, t := range open {
		result := Settle(t, price)
		if result == model.TradeResultNone {
			continue
		}
		if err := a.store.UpdateTradeResult(ctx, t.ID, result); err != nil {
			return settled, err
		}
		t.Result = result
		settled = append(settled, t)
		log.Printf("[INFO] trade %s settled: %s at %s", t.ID, result, price)
	}
	return settled, nil
}

// Settle reports a WIN once price reaches the take-profit level and a LOSS once
// it falls to the stop-loss level. Trades without protective orders or whose
// entry order was rejected never settle.
func Settle(t *model.Trade, price decimal.Decimal) model.TradeResult {
	if t.EntryRejected() {
		return model.TradeResultNone
	}
	if tp, ok := t.TakeProfitOrder(); ok && tp.Limit.Price.LessThanOrEqual(price) {
		return model.TradeResultWin
	}
	if sl, ok := t.StopLossOrder(); ok && sl.Limit.Price.GreaterThanOrEqual(price) {
		return model.TradeResultLoss
	}
	return model.TradeResultNone
}
