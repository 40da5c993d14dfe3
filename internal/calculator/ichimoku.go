package calculator

import "TradeSentinel/internal/model"

const (
	tenkanPeriod  = 9
	kijunPeriod   = 26
	senkouBPeriod = 52
)

// Ichimoku computes the Ichimoku cloud for the latest bar.
func Ichimoku(highs, lows, closes []float64) (*model.IchimokuCloud, error) {
	if err := checkWindow("ichimoku", minLen(highs, lows), senkouBPeriod, senkouBPeriod); err != nil {
		return nil, err
	}
	if err := checkWindow("ichimoku chikou", len(closes), kijunPeriod, kijunPeriod+1); err != nil {
		return nil, err
	}
	mid := func(period int) float64 {
		return (highest(highs, period) + lowest(lows, period)) / 2
	}
	cloud := &model.IchimokuCloud{
		TenkanSen:   mid(tenkanPeriod),
		KijunSen:    mid(kijunPeriod),
		SenkouSpanB: mid(senkouBPeriod),
		ChikouSpan:  closes[kijunPeriod],
	}
	cloud.SenkouSpanA = (cloud.TenkanSen + cloud.KijunSen) / 2
	return cloud, nil
}
