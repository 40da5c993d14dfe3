// Package collector gathers everything one evaluation cycle needs from the
// exchange and the evaluation store.
package collector

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"TradeSentinel/internal/model"
)

// EvaluationStore provides the previous cycle's evaluation.
type EvaluationStore interface {
	LastEvaluation(ctx context.Context, currency string) (*model.Evaluation, error)
}

// Collector orchestrates data fetching for a cycle.
type Collector struct {
	Exchange    Exchange
	Store       EvaluationStore
	Granularity time.Duration
	Bars        int
}

// NewCollector creates a new Collector.
func NewCollector(exchange Exchange, store EvaluationStore, granularity time.Duration, bars int) *Collector {
	return &Collector{Exchange: exchange, Store: store, Granularity: granularity, Bars: bars}
}

// Gather fetches the ticker, history, accounts and previous evaluation in
// parallel. Any failure aborts the whole gather.
func (c *Collector) Gather(ctx context.Context, product model.Product) (*model.Context, error) {
	id := product.String()
	out := &model.Context{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := c.Exchange.Ticker(gctx, id)
		if err != nil {
			return err
		}
		out.Ticker = t
		return nil
	})
	g.Go(func() error {
		bars, err := c.Exchange.Candles(gctx, id, c.Granularity, c.Bars)
		if err != nil {
			return err
		}
		out.History = bars
		return nil
	})
	g.Go(func() error {
		accounts, err := c.Exchange.Accounts(gctx)
		if err != nil {
			return err
		}
		out.Accounts = accounts
		return nil
	})
	g.Go(func() error {
		if c.Store == nil {
			return nil
		}
		last, err := c.Store.LastEvaluation(gctx, id)
		if err != nil {
			return fmt.Errorf("last evaluation: %w", err)
		}
		out.LastEvaluation = last
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("gather %s from %s: %w", id, c.Exchange.Name(), err)
	}
	return out, nil
}
