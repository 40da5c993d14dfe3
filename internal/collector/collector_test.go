package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"TradeSentinel/internal/model"
)

type stubStore struct {
	last *model.Evaluation
	err  error
	got  string
}

func (s *stubStore) LastEvaluation(_ context.Context, currency string) (*model.Evaluation, error) {
	s.got = currency
	return s.last, s.err
}

func TestGather(t *testing.T) {
	ex := &MockExchange{
		Price:       decimal.NewFromInt(30000),
		AccountList: []model.Account{{Currency: "USD", Balance: decimal.NewFromInt(100)}},
	}
	store := &stubStore{last: &model.Evaluation{ID: "prev"}}
	c := NewCollector(ex, store, 24*time.Hour, 100)

	got, err := c.Gather(context.Background(), model.Product{Base: "BTC", Quote: "USD"})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !got.Ticker.Price.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("unexpected ticker: %+v", got.Ticker)
	}
	if len(got.History) != 100 {
		t.Errorf("expected 100 bars, got %d", len(got.History))
	}
	if !got.History[0].Time.After(got.History[1].Time) {
		t.Error("expected most recent bar first")
	}
	if len(got.Accounts) != 1 {
		t.Errorf("expected 1 account, got %d", len(got.Accounts))
	}
	if got.LastEvaluation == nil || got.LastEvaluation.ID != "prev" || store.got != "BTC-USD" {
		t.Errorf("previous evaluation not gathered: %+v (currency %q)", got.LastEvaluation, store.got)
	}
}

func TestGather_StoreFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	c := NewCollector(&MockExchange{Price: decimal.NewFromInt(1)}, &stubStore{err: boom}, time.Hour, 10)
	if _, err := c.Gather(context.Background(), model.Product{Base: "BTC", Quote: "USD"}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestMockExchange_FailOrder(t *testing.T) {
	ex := &MockExchange{FailOrder: 2}
	order := model.NewMarketBuy("BTC-USD", decimal.NewFromInt(10))
	if _, err := ex.PlaceOrder(context.Background(), order); err != nil {
		t.Fatalf("first order: %v", err)
	}
	if _, err := ex.PlaceOrder(context.Background(), order); err == nil {
		t.Error("expected second order to fail")
	}
	if len(ex.Orders()) != 2 {
		t.Errorf("expected 2 recorded orders, got %d", len(ex.Orders()))
	}
}
