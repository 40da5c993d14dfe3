package model

// TechnicalAnalysis holds the indicator snapshot computed for one cycle.
type TechnicalAnalysis struct {
	SMA20               float64        `json:"sma20"`
	SMA50               float64        `json:"sma50"`
	EMA12               float64        `json:"ema12"`
	EMA26               float64        `json:"ema26"`
	RSI14               float64        `json:"rsi14"`
	MACD                *MACD          `json:"macd,omitempty"`
	VI                  *VortexLines   `json:"vi,omitempty"`
	IchimokuCloud       *IchimokuCloud `json:"ichimoku_cloud,omitempty"`
	OBV                 float64        `json:"obv"`
	MFI14               float64        `json:"mfi14"`
	AverageRateOfChange float64        `json:"average_rate_of_change"`
}

// MACD is the MACD line and its signal, compared against the previous cycle.
type MACD struct {
	MACD                 float64  `json:"macd"`
	MACDSignal           float64  `json:"macd_signal"`
	PrevMACD             *float64 `json:"prev_macd,omitempty"`
	PrevMACDSignal       *float64 `json:"prev_macd_signal,omitempty"`
	MACDGTSignal         bool     `json:"macd_gt_signal"`
	ConvergingMACDSignal bool     `json:"converging_macd_signal"`
	MACDCrossoverSignal  bool     `json:"macd_crossover_signal"`
}

// VortexLines are the VI+ and VI- lines, most recent first.
type VortexLines struct {
	Uptrend   []float64 `json:"uptrend"`
	Downtrend []float64 `json:"downtrend"`
}

// IchimokuCloud holds the five Ichimoku lines for the latest bar.
type IchimokuCloud struct {
	TenkanSen   float64 `json:"tenkan_sen"`
	KijunSen    float64 `json:"kijun_sen"`
	SenkouSpanA float64 `json:"senkou_span_a"`
	SenkouSpanB float64 `json:"senkou_span_b"`
	ChikouSpan  float64 `json:"chikou_span"`
}
