package domain

import "fmt"

const (
	DefaultSymbol   = "AAPL"
	DefaultInterval = "1d"
)

type TradingSymbol struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// FallbackSymbols is offered when the analysis service cannot list symbols.
var FallbackSymbols = []TradingSymbol{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "TSLA", Name: "Tesla Inc."},
}

type Interval struct {
	Value string
	Label string
}

// Intervals is the fixed set of analysis intervals, in display order.
var Intervals = []Interval{
	{Value: "1m", Label: "1 Minute"},
	{Value: "5m", Label: "5 Minutes"},
	{Value: "15m", Label: "15 Minutes"},
	{Value: "1h", Label: "1 Hour"},
	{Value: "4h", Label: "4 Hours"},
	{Value: "1d", Label: "1 Day"},
}

// IntervalIndex returns the position of value in Intervals, or -1.
func IntervalIndex(value string) int {
	for i, iv := range Intervals {
		if iv.Value == value {
			return i
		}
	}
	return -1
}

type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
	SignalHold SignalType = "HOLD"
)

type TradingSignal struct {
	Signal     SignalType `json:"signal"`
	Confidence float64    `json:"confidence"`
	Reasons    []string   `json:"reasons"`
}

type TechnicalIndicators struct {
	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	SMA20      float64 `json:"sma_20"`
	SMA50      float64 `json:"sma_50"`
	BBUpper    float64 `json:"bb_upper"`
	BBLower    float64 `json:"bb_lower"`
}

// ChartData holds index-aligned series; entry i of every slice describes the
// same bar. Timestamps are milliseconds since the Unix epoch.
type ChartData struct {
	Timestamps []int64   `json:"timestamps"`
	Prices     []float64 `json:"prices"`
	Volumes    []float64 `json:"volumes"`
	SMA20      []float64 `json:"sma_20"`
	SMA50      []float64 `json:"sma_50"`
	RSI        []float64 `json:"rsi"`
	MACD       []float64 `json:"macd"`
	MACDSignal []float64 `json:"macd_signal"`
}

// Len returns the shortest series length, which equals every series length
// when the data is valid.
func (c ChartData) Len() int {
	n := len(c.Timestamps)
	for _, l := range c.floatLens() {
		if l < n {
			n = l
		}
	}
	return n
}

// Validate reports whether all series have the same length.
func (c ChartData) Validate() error {
	want := len(c.Timestamps)
	names := []string{"prices", "volumes", "sma_20", "sma_50", "rsi", "macd", "macd_signal"}
	for i, l := range c.floatLens() {
		if l != want {
			return fmt.Errorf("chart_data.%s has %d entries, timestamps has %d", names[i], l, want)
		}
	}
	return nil
}

func (c ChartData) floatLens() []int {
	return []int{
		len(c.Prices), len(c.Volumes), len(c.SMA20), len(c.SMA50),
		len(c.RSI), len(c.MACD), len(c.MACDSignal),
	}
}

type AnalysisResult struct {
	Symbol       string              `json:"symbol"`
	Interval     string              `json:"interval"`
	CurrentPrice float64             `json:"current_price"`
	Volume       float64             `json:"volume"`
	High24h      float64             `json:"high_24h"`
	Low24h       float64             `json:"low_24h"`
	Change24h    float64             `json:"change_24h"`
	Signal       TradingSignal       `json:"signal"`
	Indicators   TechnicalIndicators `json:"indicators"`
	ChartData    ChartData           `json:"chart_data"`
}

type AnalyzeRequest struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
}
