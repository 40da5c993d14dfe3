package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderKind selects which variant of Order is populated.
type OrderKind string

const (
	OrderKindMarket OrderKind = "market"
	OrderKindLimit  OrderKind = "limit"
)

// StopKind is the trigger direction of a stop limit order.
type StopKind string

const (
	StopLoss  StopKind = "loss"
	StopEntry StopKind = "entry"
)

// ErrInvalidOrder is returned when an order is missing the fields its kind requires.
var ErrInvalidOrder = errors.New("invalid order parameters")

// MarketOrder is filled at the best available price. Exactly one of Funds
// (quote currency) or Size (base currency) is set.
type MarketOrder struct {
	Funds decimal.Decimal `json:"funds"`
	Size  decimal.Decimal `json:"size"`
}

// LimitOrder is a stop limit order.
type LimitOrder struct {
	Price     decimal.Decimal `json:"price"`
	StopPrice decimal.Decimal `json:"stop_price"`
	Size      decimal.Decimal `json:"size"`
	Stop      StopKind        `json:"stop"`
}

// Order is a tagged variant: Market is set for market orders, Limit for limit orders.
type Order struct {
	Kind      OrderKind    `json:"type"`
	Side      Side         `json:"side"`
	ProductID string       `json:"product_id"`
	ClientOID string       `json:"client_oid,omitempty"`
	Market    *MarketOrder `json:"market,omitempty"`
	Limit     *LimitOrder  `json:"limit,omitempty"`
}

// NewMarketBuy spends funds of the quote currency.
func NewMarketBuy(productID string, funds decimal.Decimal) Order {
	return Order{
		Kind:      OrderKindMarket,
		Side:      SideBuy,
		ProductID: productID,
		Market:    &MarketOrder{Funds: funds},
	}
}

// NewMarketSell sells size of the base currency.
func NewMarketSell(productID string, size decimal.Decimal) Order {
	return Order{
		Kind:      OrderKindMarket,
		Side:      SideSell,
		ProductID: productID,
		Market:    &MarketOrder{Size: size},
	}
}

// NewStopLimitSell places a sell limit order triggered at price.
func NewStopLimitSell(productID string, price, size decimal.Decimal, stop StopKind) Order {
	return Order{
		Kind:      OrderKindLimit,
		Side:      SideSell,
		ProductID: productID,
		Limit:     &LimitOrder{Price: price, StopPrice: price, Size: size, Stop: stop},
	}
}

// Validate checks that the fields required by the order's kind are present.
func (o Order) Validate() error {
	if o.ProductID == "" {
		return fmt.Errorf("%w: missing product id", ErrInvalidOrder)
	}
	if o.Side != SideBuy && o.Side != SideSell {
		return fmt.Errorf("%w: side %q", ErrInvalidOrder, o.Side)
	}
	switch o.Kind {
	case OrderKindMarket:
		if o.Market == nil || o.Limit != nil {
			return fmt.Errorf("%w: market order needs market params only", ErrInvalidOrder)
		}
		hasFunds, hasSize := o.Market.Funds.IsPositive(), o.Market.Size.IsPositive()
		if hasFunds == hasSize {
			return fmt.Errorf("%w: market order needs exactly one of funds or size", ErrInvalidOrder)
		}
	case OrderKindLimit:
		if o.Limit == nil || o.Market != nil {
			return fmt.Errorf("%w: limit order needs limit params only", ErrInvalidOrder)
		}
		if !o.Limit.Price.IsPositive() || !o.Limit.StopPrice.IsPositive() || !o.Limit.Size.IsPositive() {
			return fmt.Errorf("%w: limit order needs positive price, stop price and size", ErrInvalidOrder)
		}
		if o.Limit.Stop != StopLoss && o.Limit.Stop != StopEntry {
			return fmt.Errorf("%w: stop kind %q", ErrInvalidOrder, o.Limit.Stop)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidOrder, o.Kind)
	}
	return nil
}

// Amount returns the quantity the order moves: funds for market buys, size otherwise.
func (o Order) Amount() decimal.Decimal {
	switch {
	case o.Market != nil && o.Market.Funds.IsPositive():
		return o.Market.Funds
	case o.Market != nil:
		return o.Market.Size
	case o.Limit != nil:
		return o.Limit.Size
	}
	return decimal.Zero
}

// OrderResult is the exchange's answer to an order submission.
type OrderResult struct {
	OrderID    string          `json:"order_id"`
	ClientOID  string          `json:"client_oid,omitempty"`
	Status     string          `json:"status"`
	FilledSize decimal.Decimal `json:"filled_size"`
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
}
