package collector

import (
	"context"
	"time"

	"TradeSentinel/internal/model"
)

// Exchange is the market-data and order-entry surface of a venue.
type Exchange interface {
	Ticker(ctx context.Context, productID string) (model.Ticker, error)
	// Candles returns up to bars candles of granularity, most recent first.
	Candles(ctx context.Context, productID string, granularity time.Duration, bars int) ([]model.OHLCV, error)
	Accounts(ctx context.Context) ([]model.Account, error)
	PlaceOrder(ctx context.Context, order model.Order) (model.OrderResult, error)
	Name() string
}
