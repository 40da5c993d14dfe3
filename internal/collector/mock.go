package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"TradeSentinel/internal/model"
)

// MockExchange returns controllable fixed data for development and testing and
// records every order it receives.
type MockExchange struct {
	Price       decimal.Decimal
	History     []model.OHLCV
	AccountList []model.Account
	// FailOrder makes the n-th order (1-based) fail. Zero disables.
	FailOrder int

	mu     sync.Mutex
	orders []model.Order
}

func (m *MockExchange) Name() string { return "mock" }

func (m *MockExchange) Ticker(_ context.Context, productID string) (model.Ticker, error) {
	return model.Ticker{ProductID: productID, Price: m.Price, Time: time.Now().UTC()}, nil
}

func (m *MockExchange) Candles(_ context.Context, _ string, granularity time.Duration, bars int) ([]model.OHLCV, error) {
	if m.History != nil {
		if len(m.History) > bars {
			return m.History[:bars], nil
		}
		return m.History, nil
	}
	return generateMockBars(m.Price.InexactFloat64(), granularity, bars), nil
}

func (m *MockExchange) Accounts(context.Context) ([]model.Account, error) {
	return append([]model.Account(nil), m.AccountList...), nil
}

func (m *MockExchange) PlaceOrder(_ context.Context, order model.Order) (model.OrderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	if m.FailOrder == len(m.orders) {
		return model.OrderResult{}, fmt.Errorf("mock: order %d rejected", len(m.orders))
	}
	return model.OrderResult{
		OrderID:    uuid.NewString(),
		ClientOID:  order.ClientOID,
		Status:     "pending",
		FilledSize: decimal.Zero,
		Success:    true,
	}, nil
}

// Orders returns the orders received so far.
func (m *MockExchange) Orders() []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Order(nil), m.orders...)
}

// generateMockBars drifts gently around basePrice, most recent first.
func generateMockBars(basePrice float64, granularity time.Duration, count int) []model.OHLCV {
	now := time.Now().UTC().Truncate(granularity)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(count/2-i)*0.001)
		bars[i] = model.OHLCV{
			Time:   now.Add(-time.Duration(i) * granularity),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}
