package auditor

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"TradeSentinel/internal/collector"
	"TradeSentinel/internal/executor"
	"TradeSentinel/internal/model"
	"TradeSentinel/internal/notifier"
	"TradeSentinel/internal/recorder"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func protectedTrade(id string) *model.Trade {
	size := dec("0.08")
	return &model.Trade{
		ID:        id,
		ProductID: "BTC-USD",
		Side:      model.SideBuy,
		OrderParams: []model.Order{
			model.NewMarketBuy("BTC-USD", dec("4000")),
			model.NewStopLimitSell("BTC-USD", dec("48750"), size, model.StopLoss),
			model.NewStopLimitSell("BTC-USD", dec("52500"), size, model.StopEntry),
		},
	}
}

func TestSettle(t *testing.T) {
	trade := protectedTrade("t")
	tests := []struct {
		price string
		want  model.TradeResult
	}{
		{"50000", model.TradeResultNone},
		{"52500", model.TradeResultWin},
		{"60000", model.TradeResultWin},
		{"48750", model.TradeResultLoss},
		{"40000", model.TradeResultLoss},
	}
	for _, tc := range tests {
		if got := Settle(trade, dec(tc.price)); got != tc.want {
			t.Errorf("price %s: expected %s, got %s", tc.price, tc.want, got)
		}
	}

	rejected := protectedTrade("r")
	rejected.OrderReceipts = []model.OrderResult{{Status: "failed"}, {Status: "skipped"}, {Status: "skipped"}}
	for _, price := range []string{"40000", "60000"} {
		if got := Settle(rejected, dec(price)); got != model.TradeResultNone {
			t.Errorf("rejected entry settled as %s at %s", got, price)
		}
	}

	sell := &model.Trade{OrderParams: []model.Order{model.NewMarketSell("BTC-USD", dec("1"))}}
	if got := Settle(sell, dec("1")); got != model.TradeResultNone {
		t.Errorf("unprotected trade settled as %s", got)
	}
}

func TestAudit(t *testing.T) {
	store, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	a := New(store)
	first := &model.Evaluation{ID: "e1", Date: time.Now(), Currency: "BTC-USD", Price: dec("50000"), Trade: protectedTrade("t1")}
	settled, err := a.Audit(ctx, first)
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if len(settled) != 0 {
		t.Errorf("new trade must not settle in its own cycle, got %+v", settled)
	}

	second := &model.Evaluation{ID: "e2", Date: time.Now().Add(time.Hour), Currency: "BTC-USD", Price: dec("53000")}
	settled, err = a.Audit(ctx, second)
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if len(settled) != 1 || settled[0].ID != "t1" || settled[0].Result != model.TradeResultWin {
		t.Fatalf("expected t1 to win, got %+v", settled)
	}

	open, err := store.OpenTrades(ctx, "BTC-USD")
	if err != nil {
		t.Fatalf("OpenTrades: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("expected no open trades, got %d", len(open))
	}
	last, err := store.LastEvaluation(ctx, "BTC-USD")
	if err != nil || last == nil || last.ID != "e2" {
		t.Errorf("expected e2 stored last, got %+v, %v", last, err)
	}
}

func TestAudit_RejectedEntryNeverSettles(t *testing.T) {
	store, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	ev := &model.Evaluation{ID: "e1", Date: time.Now(), Currency: "BTC-USD", Price: dec("50000"), Trade: protectedTrade("t1")}
	ex := &collector.MockExchange{FailOrder: 1}
	if err := executor.New(ex, notifier.Noop{}, false).Execute(ctx, ev); err == nil {
		t.Fatal("expected the market buy to be rejected")
	}

	a := New(store)
	if _, err := a.Audit(ctx, ev); err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if ev.Trade.Result != model.TradeResultRejected {
		t.Errorf("expected REJECTED, got %s", ev.Trade.Result)
	}

	next := &model.Evaluation{ID: "e2", Date: time.Now().Add(time.Hour), Currency: "BTC-USD", Price: dec("60000")}
	settled, err := a.Audit(ctx, next)
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if len(settled) != 0 {
		t.Errorf("rejected trade must not settle, got %+v", settled)
	}
	open, err := store.OpenTrades(ctx, "BTC-USD")
	if err != nil {
		t.Fatalf("OpenTrades: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("expected no open trades, got %d", len(open))
	}
}
