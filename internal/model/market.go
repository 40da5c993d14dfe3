package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column layout of a raw candle row as delivered by the exchange.
const (
	ColTime = iota
	ColLow
	ColHigh
	ColOpen
	ColClose
	ColVolume
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Low    float64   `json:"low"`
	High   float64   `json:"high"`
	Open   float64   `json:"open"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// BarsFromRows converts raw [time, low, high, open, close, volume] rows into bars.
// Row order is preserved (most recent first).
func BarsFromRows(rows [][]float64) ([]OHLCV, error) {
	bars := make([]OHLCV, len(rows))
	for i, r := range rows {
		if len(r) <= ColVolume {
			return nil, fmt.Errorf("candle row %d: expected 6 columns, got %d", i, len(r))
		}
		bars[i] = OHLCV{
			Time:   time.Unix(int64(r[ColTime]), 0).UTC(),
			Low:    r[ColLow],
			High:   r[ColHigh],
			Open:   r[ColOpen],
			Close:  r[ColClose],
			Volume: r[ColVolume],
		}
	}
	return bars, nil
}

// Ticker is the live quote for a product.
type Ticker struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Time      time.Time       `json:"time"`
}

// Account is a single wallet balance.
type Account struct {
	ID        string          `json:"id,omitempty"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Available decimal.Decimal `json:"available"`
}

// Product is a "BASE-QUOTE" currency pair such as BTC-USD.
type Product struct {
	Base  string
	Quote string
}

// ParseProduct splits a product id into its base and quote currencies.
func ParseProduct(id string) (Product, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Product{}, fmt.Errorf("invalid product id %q", id)
	}
	return Product{Base: strings.ToUpper(parts[0]), Quote: strings.ToUpper(parts[1])}, nil
}

func (p Product) String() string { return p.Base + "-" + p.Quote }

// Context is the fully resolved input of one evaluation cycle.
type Context struct {
	Ticker         Ticker      `json:"ticker"`
	History        []OHLCV     `json:"history"` // most recent first
	LastEvaluation *Evaluation `json:"last_evaluation,omitempty"`
	Accounts       []Account   `json:"accounts"`
}
