package notifier

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"TradeSentinel/internal/model"
)

// FormatOrders summarises the orders about to be placed at price.
func FormatOrders(price decimal.Decimal, orders []model.Order) string {
	var b strings.Builder
	plural := ""
	if len(orders) > 1 {
		plural = "s"
	}
	b.WriteString(fmt.Sprintf("Placing the following order%s:\n", plural))
	for _, o := range orders {
		at := price
		if o.Limit != nil {
			at = o.Limit.Price
		}
		amount, total := o.Amount(), o.Amount().Mul(at)
		if o.Market != nil && o.Market.Funds.IsPositive() {
			amount, total = o.Market.Funds.Div(at).Round(8), o.Market.Funds
		}
		b.WriteString(fmt.Sprintf("A %s %s order for %s of %s at %s totalling %s\n",
			o.Kind, o.Side, amount, o.ProductID, at.StringFixed(2), total.StringFixed(2)))
	}
	return b.String()
}

// FormatEvaluation formats a cycle's evaluation into a Telegram message.
func FormatEvaluation(ev *model.Evaluation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>TradeSentinel</b> | %s | %s\n\n", ev.Currency, ev.Date.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Price: %s\n", ev.Price.StringFixed(2)))
	if ev.PortfolioState != nil {
		b.WriteString(fmt.Sprintf("Portfolio: %s\n", ev.PortfolioState.TotalValue.StringFixed(2)))
	}

	if ta := ev.TechnicalAnalysis; ta != nil {
		b.WriteString("\n📈 <b>Indicators:</b>\n")
		b.WriteString(fmt.Sprintf("  SMA20: %.2f | SMA50: %.2f\n", ta.SMA20, ta.SMA50))
		b.WriteString(fmt.Sprintf("  EMA12: %.2f | EMA26: %.2f\n", ta.EMA12, ta.EMA26))
		b.WriteString(fmt.Sprintf("  RSI14: %.1f | MFI14: %.1f\n", ta.RSI14, ta.MFI14))
		if m := ta.MACD; m != nil {
			b.WriteString(fmt.Sprintf("  MACD: %.4f / signal %.4f", m.MACD, m.MACDSignal))
			if m.MACDCrossoverSignal {
				b.WriteString(" (crossover)")
			} else if m.ConvergingMACDSignal {
				b.WriteString(" (converging)")
			}
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("  Avg ROC: %.4f%%\n", ta.AverageRateOfChange*100))
	}

	b.WriteString(fmt.Sprintf("\n💰 <b>Signal:</b> %s\n", ev.Signal))
	if ev.Trade != nil {
		b.WriteString(fmt.Sprintf("   Trade %s: %d order(s)\n", ev.Trade.ID, len(ev.Trade.OrderParams)))
		for i, r := range ev.Trade.OrderReceipts {
			status := "✅"
			if !r.Success {
				status = "❌ " + r.Message
			}
			b.WriteString(fmt.Sprintf("   #%d %s %s\n", i+1, r.Status, status))
		}
	}

	if len(ev.Errors) > 0 {
		b.WriteString("\n⚠️ <b>Errors:</b>\n")
		for _, e := range ev.Errors {
			b.WriteString(fmt.Sprintf("  • %s\n", e))
		}
	}
	return b.String()
}

// FormatAudit lists trades whose result was settled this cycle.
func FormatAudit(settled []*model.Trade) string {
	var b strings.Builder
	b.WriteString("🧾 <b>Settled trades</b>\n")
	for _, t := range settled {
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", t.ProductID, t.ID, t.Result))
	}
	return b.String()
}

// FormatError formats a failed cycle.
func FormatError(task string, err error) string {
	return fmt.Sprintf("🚨 <b>TradeSentinel %s failed</b>\n%v", task, err)
}
