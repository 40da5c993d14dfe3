package recorder

import (
	"context"

	"TradeSentinel/internal/model"
)

// NoopRecorder is a no-op implementation used when no store is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvaluation(context.Context, *model.Evaluation) error { return nil }

func (n *NoopRecorder) RecordTrade(context.Context, *model.Trade) error { return nil }

func (n *NoopRecorder) UpdateTradeResult(context.Context, string, model.TradeResult) error {
	return nil
}

func (n *NoopRecorder) LastEvaluation(context.Context, string) (*model.Evaluation, error) {
	return nil, nil
}

func (n *NoopRecorder) OpenTrades(context.Context, string) ([]*model.Trade, error) { return nil, nil }

func (n *NoopRecorder) Close() error { return nil }
