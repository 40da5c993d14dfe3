// Package portfolio values account balances in the quote currency of a product.
package portfolio

import (
	"strings"

	"github.com/shopspring/decimal"

	"TradeSentinel/internal/model"
)

const valuePrecision = 8

// Value returns the portfolio worth in the product's quote currency at price.
// Quote balances count at face value, base balances at price; every other
// currency is ignored. Each addend is rounded to 8 decimals.
func Value(product model.Product, price decimal.Decimal, accounts []model.Account) *model.PortfolioState {
	total := decimal.Zero
	for _, a := range accounts {
		switch strings.ToUpper(a.Currency) {
		case product.Quote:
			total = total.Add(a.Balance.Round(valuePrecision))
		case product.Base:
			total = total.Add(a.Balance.Mul(price).Round(valuePrecision))
		}
	}
	return &model.PortfolioState{
		TotalValue: total,
		Accounts:   append([]model.Account(nil), accounts...),
	}
}
