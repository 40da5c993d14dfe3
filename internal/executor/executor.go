// Package executor submits the orders of a crafted trade to the exchange.
package executor

import (
	"context"
	"fmt"
	"log"

	"TradeSentinel/internal/model"
	"TradeSentinel/internal/notifier"
)

// Receipt statuses set by the executor itself.
const (
	StatusDryRun  = "dry-run"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// OrderPlacer submits a single order.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order model.Order) (model.OrderResult, error)
}

// Executor places a trade's orders in sequence.
type Executor struct {
	placer   OrderPlacer
	notifier notifier.Notifier
	dryRun   bool
}

// New creates an Executor. In dry-run mode no order reaches the exchange.
func New(placer OrderPlacer, n notifier.Notifier, dryRun bool) *Executor {
	if n == nil {
		n = notifier.Noop{}
	}
	return &Executor{placer: placer, notifier: n, dryRun: dryRun}
}

// Execute submits ev.Trade's orders in order and appends one receipt per
// order. Submission stops at the first failure; the remaining orders get a
// skipped receipt and the failure is returned.
func (e *Executor) Execute(ctx context.Context, ev *model.Evaluation) error {
	trade := ev.Trade
	if trade == nil {
		return nil
	}

	if err := e.notifier.Send(ctx, notifier.FormatOrders(ev.Price, trade.OrderParams)); err != nil {
		log.Printf("[WARN] order notification failed: %v", err)
	}

	var firstErr error
	for i, order := range trade.OrderParams {
		var receipt model.OrderResult
		switch {
		case firstErr != nil:
			receipt = model.OrderResult{ClientOID: order.ClientOID, Status: StatusSkipped, Message: "not submitted: earlier order failed"}
		case e.dryRun:
			receipt = model.OrderResult{OrderID: "dry-run-" + order.ClientOID, ClientOID: order.ClientOID, Status: StatusDryRun, Success: true}
		default:
			res, err := e.placer.PlaceOrder(ctx, order)
			if err != nil {
				firstErr = fmt.Errorf("trade %s order %d (%s %s): %w", trade.ID, i, order.Kind, order.Side, err)
				receipt = model.OrderResult{ClientOID: order.ClientOID, Status: StatusFailed, Message: err.Error()}
				log.Printf("[ERROR] %v", firstErr)
			} else {
				receipt = res
				log.Printf("[INFO] placed %s %s order %s for %s", order.Kind, order.Side, res.OrderID, order.Amount())
			}
		}
		trade.OrderReceipts = append(trade.OrderReceipts, receipt)
	}
	return firstErr
}
