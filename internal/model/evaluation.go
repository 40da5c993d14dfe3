package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioState is the portfolio value in the quote currency at evaluation time.
type PortfolioState struct {
	TotalValue decimal.Decimal `json:"total_value"`
	Accounts   []Account       `json:"accounts"`
}

// Evaluation is the record produced by one decision cycle.
type Evaluation struct {
	ID                string             `json:"id"`
	Date              time.Time          `json:"date"`
	Currency          string             `json:"currency"`
	Price             decimal.Decimal    `json:"price"`
	Signal            Action             `json:"signal"`
	PortfolioState    *PortfolioState    `json:"portfolio_state,omitempty"`
	TechnicalAnalysis *TechnicalAnalysis `json:"technical_analysis,omitempty"`
	Trade             *Trade             `json:"trade"`
	Errors            []string           `json:"errors,omitempty"`
}

// PreviousMACD returns the MACD record of an evaluation, tolerating nil at every level.
func (e *Evaluation) PreviousMACD() *MACD {
	if e == nil || e.TechnicalAnalysis == nil {
		return nil
	}
	return e.TechnicalAnalysis.MACD
}
