package model

// Action is the decision emitted by the signal evaluator.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionNone Action = "NA"
)

// TradeResult is the outcome of a trade once the market has moved.
type TradeResult string

const (
	TradeResultNone TradeResult = "NONE"
	TradeResultWin  TradeResult = "WIN"
	TradeResultLoss TradeResult = "LOSS"
	// TradeResultRejected marks a trade whose entry order never reached the book.
	TradeResultRejected TradeResult = "REJECTED"
)

// Trade is the ordered set of orders produced for one signal.
// OrderReceipts is filled by the executor after submission.
type Trade struct {
	ID            string        `json:"id"`
	ProductID     string        `json:"product_id"`
	Side          Side          `json:"side"`
	OrderParams   []Order       `json:"order_params"`
	OrderReceipts []OrderResult `json:"order_receipts"`
	Result        TradeResult   `json:"result"`
}

// StopLossOrder returns the trade's stop-loss order, if any.
func (t *Trade) StopLossOrder() (Order, bool) {
	return t.findLimit(StopLoss)
}

// TakeProfitOrder returns the trade's take-profit order, if any.
func (t *Trade) TakeProfitOrder() (Order, bool) {
	return t.findLimit(StopEntry)
}

// EntryRejected reports whether the trade was executed and its first order failed.
// A trade without receipts has not been executed yet.
func (t *Trade) EntryRejected() bool {
	return len(t.OrderReceipts) > 0 && !t.OrderReceipts[0].Success
}

func (t *Trade) findLimit(kind StopKind) (Order, bool) {
	for _, o := range t.OrderParams {
		if o.Kind == OrderKindLimit && o.Limit != nil && o.Limit.Stop == kind {
			return o, true
		}
	}
	return Order{}, false
}
