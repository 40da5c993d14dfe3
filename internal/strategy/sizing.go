package strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"TradeSentinel/internal/calculator"
	"TradeSentinel/internal/model"
)

// ErrNoMatchingAccount is returned when no account holds the currency being sized.
var ErrNoMatchingAccount = errors.New("no account for currency")

// Params are the risk and exchange constraints applied when sizing and crafting trades.
type Params struct {
	RiskPercent     decimal.Decimal
	RewardRiskRatio decimal.Decimal
	QuotePrecision  int32
	BasePrecision   int32
	// BaseMinimum and BaseMaximum are exclusive bounds on the base-currency size.
	BaseMinimum decimal.Decimal
	BaseMaximum decimal.Decimal
}

// DefaultParams risks 1% of the portfolio at a 2:1 reward/risk ratio.
func DefaultParams() Params {
	return Params{
		RiskPercent:     decimal.RequireFromString("0.01"),
		RewardRiskRatio: decimal.NewFromInt(2),
		QuotePrecision:  2,
		BasePrecision:   8,
		BaseMinimum:     decimal.RequireFromString("0.001"),
		BaseMaximum:     decimal.NewFromInt(10000),
	}
}

// Validate checks that the parameters describe a usable risk model.
func (p Params) Validate() error {
	switch {
	case !p.RiskPercent.IsPositive() || p.RiskPercent.GreaterThan(decimal.NewFromInt(1)):
		return fmt.Errorf("risk percent must be in (0, 1], got %s", p.RiskPercent)
	case !p.RewardRiskRatio.IsPositive():
		return fmt.Errorf("reward/risk ratio must be positive, got %s", p.RewardRiskRatio)
	case p.QuotePrecision < 0 || p.BasePrecision < 0:
		return fmt.Errorf("precision must not be negative")
	case p.BaseMinimum.IsNegative() || !p.BaseMaximum.GreaterThan(p.BaseMinimum):
		return fmt.Errorf("base bounds (%s, %s) are empty", p.BaseMinimum, p.BaseMaximum)
	}
	return nil
}

// Sizer computes how much to trade from the portfolio's risk budget.
type Sizer struct {
	params Params
}

// NewSizer creates a Sizer with the given parameters.
func NewSizer(p Params) *Sizer {
	return &Sizer{params: p}
}

// Size returns the order amount for side. Buys are sized in the quote currency,
// sells in the base currency. The result never exceeds the account balance.
//
// The maximum position is risk * rewardRiskRatio / expectedMove, where risk is
// RiskPercent of the portfolio value.
func (s *Sizer) Size(side model.Side, product model.Product, price, expectedMove decimal.Decimal, state *model.PortfolioState) (decimal.Decimal, error) {
	if !expectedMove.IsPositive() {
		return decimal.Zero, fmt.Errorf("sizing: %w: expected move %s", calculator.ErrDegenerateRatio, expectedMove)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("sizing: %w: price %s", calculator.ErrDegenerateRatio, price)
	}
	if state == nil {
		return decimal.Zero, fmt.Errorf("sizing: missing portfolio state")
	}

	currency, precision := product.Quote, s.params.QuotePrecision
	if side == model.SideSell {
		currency, precision = product.Base, s.params.BasePrecision
	}
	balance, ok := findBalance(state.Accounts, currency)
	if !ok {
		return decimal.Zero, fmt.Errorf("sizing %s: %w %s", side, ErrNoMatchingAccount, currency)
	}

	risk := s.params.RiskPercent.Mul(state.TotalValue)
	maximum := risk.Mul(s.params.RewardRiskRatio).Div(expectedMove)
	if side == model.SideSell {
		maximum = maximum.Div(price)
	}

	if maximum.GreaterThan(balance) {
		return balance.Truncate(precision), nil
	}
	size := maximum.Round(precision)
	if size.GreaterThan(balance) {
		size = balance.Truncate(precision)
	}
	return size, nil
}

func findBalance(accounts []model.Account, currency string) (decimal.Decimal, bool) {
	for _, a := range accounts {
		if strings.EqualFold(a.Currency, currency) {
			return a.Balance, true
		}
	}
	return decimal.Zero, false
}
