package handler

import (
	"errors"
	"hash/fnv"
	"math"
	"time"

	"tradepro/internal/domain"
)

const fixtureBars = 50

var (
	ErrUnknownSymbol       = errors.New("unknown symbol")
	ErrUnsupportedInterval = errors.New("unsupported interval")
)

var defaultFixtureSymbols = []domain.TradingSymbol{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "TSLA", Name: "Tesla Inc."},
	{Symbol: "AMZN", Name: "Amazon.com Inc."},
	{Symbol: "META", Name: "Meta Platforms Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "NFLX", Name: "Netflix Inc."},
	{Symbol: "AMD", Name: "Advanced Micro Devices"},
	{Symbol: "INTC", Name: "Intel Corporation"},
}

var intervalStep = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

// FixtureSource produces deterministic, shaped sample data. The series are
// smooth waves seeded by the symbol; they are not derived from market data.
type FixtureSource struct {
	symbols []domain.TradingSymbol
	now     func() time.Time
}

func NewFixtureSource(symbols []domain.TradingSymbol, now func() time.Time) *FixtureSource {
	if symbols == nil {
		symbols = defaultFixtureSymbols
	}
	if now == nil {
		now = time.Now
	}
	return &FixtureSource{symbols: symbols, now: now}
}

func (f *FixtureSource) Symbols() []domain.TradingSymbol {
	out := make([]domain.TradingSymbol, len(f.symbols))
	copy(out, f.symbols)
	return out
}

func (f *FixtureSource) Analysis(symbol, interval string) (*domain.AnalysisResult, error) {
	if !f.known(symbol) {
		return nil, ErrUnknownSymbol
	}
	step, ok := intervalStep[interval]
	if !ok {
		return nil, ErrUnsupportedInterval
	}

	seed := seedFor(symbol)
	base := 50 + float64(seed%400)
	phase := float64(seed%97) / 10
	end := f.now().UTC().Truncate(step)

	cd := domain.ChartData{
		Timestamps: make([]int64, fixtureBars),
		Prices:     make([]float64, fixtureBars),
		Volumes:    make([]float64, fixtureBars),
		SMA20:      make([]float64, fixtureBars),
		SMA50:      make([]float64, fixtureBars),
		RSI:        make([]float64, fixtureBars),
		MACD:       make([]float64, fixtureBars),
		MACDSignal: make([]float64, fixtureBars),
	}
	for i := 0; i < fixtureBars; i++ {
		x := float64(i)/6 + phase
		cd.Timestamps[i] = end.Add(-time.Duration(fixtureBars-1-i) * step).UnixMilli()
		cd.Prices[i] = round2(base * (1 + 0.04*math.Sin(x) + 0.01*math.Sin(3.1*x)))
		cd.Volumes[i] = math.Round(1e6 * (1.5 + math.Cos(1.7*x)))
		cd.SMA20[i] = round2(base * (1 + 0.03*math.Sin(x-0.6)))
		cd.SMA50[i] = round2(base * (1 + 0.015*math.Sin(x-1.4)))
		cd.RSI[i] = round2(50 + 28*math.Sin(x+0.3))
		cd.MACD[i] = round4(0.02 * base * math.Sin(x+0.2))
		cd.MACDSignal[i] = round4(0.02 * base * math.Sin(x-0.3))
	}

	last := fixtureBars - 1
	price := cd.Prices[last]
	prev := cd.Prices[last-1]
	window := int(24 * time.Hour / step)
	if window < 2 {
		window = 2
	}
	if window > fixtureBars {
		window = fixtureBars
	}
	high, low := price, price
	for _, p := range cd.Prices[fixtureBars-window:] {
		high = math.Max(high, p)
		low = math.Min(low, p)
	}

	return &domain.AnalysisResult{
		Symbol:       symbol,
		Interval:     interval,
		CurrentPrice: price,
		Volume:       cd.Volumes[last],
		High24h:      high,
		Low24h:       low,
		Change24h:    round2((price - prev) / prev * 100),
		Signal:       fixtureSignal(seed),
		Indicators: domain.TechnicalIndicators{
			RSI:        cd.RSI[last],
			MACD:       cd.MACD[last],
			MACDSignal: cd.MACDSignal[last],
			SMA20:      cd.SMA20[last],
			SMA50:      cd.SMA50[last],
			BBUpper:    round2(cd.SMA20[last] * 1.02),
			BBLower:    round2(cd.SMA20[last] * 0.98),
		},
		ChartData: cd,
	}, nil
}

func (f *FixtureSource) known(symbol string) bool {
	for _, s := range f.symbols {
		if s.Symbol == symbol {
			return true
		}
	}
	return false
}

func fixtureSignal(seed uint32) domain.TradingSignal {
	switch seed % 3 {
	case 0:
		return domain.TradingSignal{
			Signal:     domain.SignalBuy,
			Confidence: 60,
			Reasons:    []string{"MACD bullish crossover", "Price above moving averages", "RSI oversold (28.4)"},
		}
	case 1:
		return domain.TradingSignal{
			Signal:     domain.SignalSell,
			Confidence: 40,
			Reasons:    []string{"MACD bearish crossover", "Price near upper Bollinger Band"},
		}
	default:
		return domain.TradingSignal{
			Signal:     domain.SignalHold,
			Confidence: 0,
			Reasons:    []string{"No clear signals"},
		}
	}
}

func seedFor(symbol string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return h.Sum32()
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*1e4) / 1e4 }
