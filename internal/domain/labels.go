package domain

const (
	RSIOverboughtLevel = 70.0
	RSIOversoldLevel   = 30.0
)

type RSIZone string

const (
	RSIOverbought RSIZone = "Overbought"
	RSIOversold   RSIZone = "Oversold"
	RSINeutral    RSIZone = "Neutral"
)

// ClassifyRSI labels an RSI reading. Both bounds are exclusive: exactly 70
// and exactly 30 are Neutral.
func ClassifyRSI(v float64) RSIZone {
	switch {
	case v > RSIOverboughtLevel:
		return RSIOverbought
	case v < RSIOversoldLevel:
		return RSIOversold
	default:
		return RSINeutral
	}
}

type Trend string

const (
	TrendBullish Trend = "Bullish"
	TrendBearish Trend = "Bearish"
)

// MACDTrend is Bullish only when macd is strictly above its signal line.
func MACDTrend(macd, signal float64) Trend {
	if macd > signal {
		return TrendBullish
	}
	return TrendBearish
}

type Position string

const (
	PositionAbove Position = "Above"
	PositionBelow Position = "Below"
)

func PricePosition(price, average float64) Position {
	if price > average {
		return PositionAbove
	}
	return PositionBelow
}
