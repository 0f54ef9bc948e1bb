package chart

import (
	"time"

	"tradepro/internal/domain"
)

// Row is one bar of chart data with all series values aligned.
type Row struct {
	Time       time.Time
	Price      float64
	Volume     float64
	SMA20      float64
	SMA50      float64
	RSI        float64
	MACD       float64
	MACDSignal float64
}

// BuildRows zips the parallel chart series into one Row per entry.
func BuildRows(cd domain.ChartData) []Row {
	n := cd.Len()
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{
			Time:       time.UnixMilli(cd.Timestamps[i]).UTC(),
			Price:      cd.Prices[i],
			Volume:     cd.Volumes[i],
			SMA20:      cd.SMA20[i],
			SMA50:      cd.SMA50[i],
			RSI:        cd.RSI[i],
			MACD:       cd.MACD[i],
			MACDSignal: cd.MACDSignal[i],
		}
	}
	return rows
}

func column(rows []Row, pick func(Row) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = pick(r)
	}
	return out
}

func Prices(rows []Row) []float64     { return column(rows, func(r Row) float64 { return r.Price }) }
func Volumes(rows []Row) []float64    { return column(rows, func(r Row) float64 { return r.Volume }) }
func SMA20(rows []Row) []float64      { return column(rows, func(r Row) float64 { return r.SMA20 }) }
func SMA50(rows []Row) []float64      { return column(rows, func(r Row) float64 { return r.SMA50 }) }
func RSI(rows []Row) []float64        { return column(rows, func(r Row) float64 { return r.RSI }) }
func MACD(rows []Row) []float64       { return column(rows, func(r Row) float64 { return r.MACD }) }
func MACDSignal(rows []Row) []float64 { return column(rows, func(r Row) float64 { return r.MACDSignal }) }
