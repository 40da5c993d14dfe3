// Package evaluator runs one decision cycle over a fully gathered context.
package evaluator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"TradeSentinel/internal/calculator"
	"TradeSentinel/internal/model"
	"TradeSentinel/internal/portfolio"
	"TradeSentinel/internal/strategy"
)

// Indicator windows.
const (
	smaShort   = 20
	smaLong    = 50
	emaFast    = 12
	emaSlow    = 26
	rsiPeriod  = 14
	obvPeriod  = 50
	macdPeriod = 20
	viPeriod   = 20
	mfiPeriod  = 14
	defaultROC = 20
)

// Evaluator computes indicators, values the portfolio and crafts the trade for
// a cycle. It holds no state between calls.
type Evaluator struct {
	rocLookback int
	crafter     *strategy.Crafter
	now         func() time.Time
}

// New creates an Evaluator. rocLookback <= 0 selects the default of 20 bars.
func New(params strategy.Params, rocLookback int) *Evaluator {
	if rocLookback <= 0 {
		rocLookback = defaultROC
	}
	return &Evaluator{
		rocLookback: rocLookback,
		crafter:     strategy.NewCrafter(params),
		now:         time.Now,
	}
}

// Evaluate always returns an evaluation. Indicator and sizing failures are
// recorded in Errors; the affected indicator is left unset and no trade is made.
// The signal is still reported when an unrelated indicator fails.
func (e *Evaluator) Evaluate(product model.Product, in *model.Context) *model.Evaluation {
	ev := &model.Evaluation{
		ID:       uuid.NewString(),
		Date:     e.now().UTC(),
		Currency: product.String(),
		Price:    in.Ticker.Price,
		Signal:   model.ActionNone,
	}
	fail := func(step string, err error) {
		ev.Errors = append(ev.Errors, fmt.Sprintf("%s: %v", step, err))
	}

	ev.TechnicalAnalysis = e.analyze(in.History, in.LastEvaluation.PreviousMACD(), fail)
	ev.PortfolioState = portfolio.Value(product, ev.Price, in.Accounts)
	ev.Signal = strategy.Signal(ev.TechnicalAnalysis)
	if len(ev.Errors) > 0 {
		return ev
	}

	move := decimal.NewFromFloat(ev.TechnicalAnalysis.AverageRateOfChange)
	trade, err := e.crafter.Craft(ev.Signal, product, ev.Price, move, ev.PortfolioState)
	if err != nil {
		fail("trade", err)
		return ev
	}
	ev.Trade = trade
	return ev
}

func (e *Evaluator) analyze(bars []model.OHLCV, prev *model.MACD, fail func(string, error)) *model.TechnicalAnalysis {
	closes := calculator.Closes(bars)
	highs := calculator.Highs(bars)
	lows := calculator.Lows(bars)
	volumes := calculator.Volumes(bars)

	ta := &model.TechnicalAnalysis{}
	scalar := func(name string, dst *float64, v float64, err error) {
		if err != nil {
			fail(name, err)
			return
		}
		*dst = v
	}
	latest := func(name string, dst *float64, series []float64, err error) {
		if err == nil && len(series) == 0 {
			err = fmt.Errorf("empty series")
		}
		if err != nil {
			fail(name, err)
			return
		}
		*dst = series[0]
	}

	v, err := calculator.SMA(closes, smaShort)
	scalar("sma20", &ta.SMA20, v, err)
	v, err = calculator.SMA(closes, smaLong)
	scalar("sma50", &ta.SMA50, v, err)
	s, err := calculator.EMA(closes, emaFast)
	latest("ema12", &ta.EMA12, s, err)
	s, err = calculator.EMA(closes, emaSlow)
	latest("ema26", &ta.EMA26, s, err)
	v, err = calculator.RSI(closes, rsiPeriod)
	scalar("rsi14", &ta.RSI14, v, err)
	v, err = calculator.OBV(closes, volumes, obvPeriod)
	scalar("obv", &ta.OBV, v, err)
	v, err = calculator.MFI(highs, lows, closes, volumes, mfiPeriod)
	scalar("mfi14", &ta.MFI14, v, err)
	v, err = calculator.AverageROC(closes, e.rocLookback, true)
	scalar("average roc", &ta.AverageRateOfChange, v, err)

	if macd, err := macdRecord(closes, prev); err != nil {
		fail("macd", err)
	} else {
		ta.MACD = macd
	}
	if vi, err := calculator.VI(highs, lows, closes, viPeriod); err != nil {
		fail("vi", err)
	} else {
		ta.VI = vi
	}
	if cloud, err := calculator.Ichimoku(highs, lows, closes); err != nil {
		fail("ichimoku", err)
	} else {
		ta.IchimokuCloud = cloud
	}
	return ta
}

func macdRecord(closes []float64, prev *model.MACD) (*model.MACD, error) {
	line, err := calculator.MACD(closes, macdPeriod)
	if err != nil {
		return nil, err
	}
	signal, err := calculator.MACDSignal(line)
	if err != nil {
		return nil, err
	}
	return strategy.NewMACD(line[0], signal[0], prev), nil
}
