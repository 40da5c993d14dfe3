// Package recorder persists evaluations and trades between cycles.
package recorder

import (
	"context"
	"errors"

	"TradeSentinel/internal/model"
)

// ErrTradeNotFound is returned when updating a trade that was never recorded.
var ErrTradeNotFound = errors.New("trade not found")

// Recorder persists historical data for analysis and for the next cycle.
type Recorder interface {
	RecordEvaluation(ctx context.Context, ev *model.Evaluation) error
	RecordTrade(ctx context.Context, trade *model.Trade) error
	UpdateTradeResult(ctx context.Context, tradeID string, result model.TradeResult) error
	// LastEvaluation returns nil without error when nothing has been recorded for currency.
	LastEvaluation(ctx context.Context, currency string) (*model.Evaluation, error)
	// OpenTrades returns the trades for currency whose result is still NONE.
	OpenTrades(ctx context.Context, currency string) ([]*model.Trade, error)
	Close() error
}
