package strategy

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"TradeSentinel/internal/model"
)

// Crafter turns an action into the orders of a trade.
type Crafter struct {
	params Params
	sizer  *Sizer
}

// NewCrafter creates a Crafter with the given parameters.
func NewCrafter(p Params) *Crafter {
	return &Crafter{params: p, sizer: NewSizer(p)}
}

// Craft builds the trade for action at price. A buy is a market buy protected
// by a stop-loss and a take-profit sell; a sell is a single market sell.
// It returns nil without error when there is nothing to do or the size falls
// outside the exchange bounds.
func (c *Crafter) Craft(action model.Action, product model.Product, price, expectedMove decimal.Decimal, state *model.PortfolioState) (*model.Trade, error) {
	switch action {
	case model.ActionBuy:
		return c.buy(product, price, expectedMove, state)
	case model.ActionSell:
		return c.sell(product, price, expectedMove, state)
	default:
		return nil, nil
	}
}

func (c *Crafter) buy(product model.Product, price, move decimal.Decimal, state *model.PortfolioState) (*model.Trade, error) {
	funds, err := c.sizer.Size(model.SideBuy, product, price, move, state)
	if err != nil {
		return nil, err
	}
	size := funds.Div(price).Round(c.params.BasePrecision)
	if !c.inBounds(size) {
		return nil, nil
	}

	id := product.String()
	stopLoss := price.Sub(price.Mul(move.Div(c.params.RewardRiskRatio))).Round(c.params.QuotePrecision)
	takeProfit := price.Add(price.Mul(move)).Round(c.params.QuotePrecision)
	if !stopLoss.IsPositive() {
		return nil, fmt.Errorf("crafting buy: stop loss %s at price %s is not positive", stopLoss, price)
	}

	return newTrade(product, model.SideBuy,
		model.NewMarketBuy(id, funds),
		model.NewStopLimitSell(id, stopLoss, size, model.StopLoss),
		model.NewStopLimitSell(id, takeProfit, size, model.StopEntry),
	)
}

func (c *Crafter) sell(product model.Product, price, move decimal.Decimal, state *model.PortfolioState) (*model.Trade, error) {
	size, err := c.sizer.Size(model.SideSell, product, price, move, state)
	if err != nil {
		return nil, err
	}
	if !c.inBounds(size) {
		return nil, nil
	}
	return newTrade(product, model.SideSell, model.NewMarketSell(product.String(), size))
}

func (c *Crafter) inBounds(size decimal.Decimal) bool {
	return size.GreaterThan(c.params.BaseMinimum) && size.LessThan(c.params.BaseMaximum)
}

func newTrade(product model.Product, side model.Side, orders ...model.Order) (*model.Trade, error) {
	for i := range orders {
		orders[i].ClientOID = uuid.NewString()
		if err := orders[i].Validate(); err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
	}
	return &model.Trade{
		ID:          uuid.NewString(),
		ProductID:   product.String(),
		Side:        side,
		OrderParams: orders,
		Result:      model.TradeResultNone,
	}, nil
}
