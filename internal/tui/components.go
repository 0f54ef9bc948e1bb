package tui

import (
	"fmt"
	"math"
	"strings"

	"tradepro/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// FormatChange renders a percent change with sign, green when >= 0.
func FormatChange(pct float64) string {
	if pct >= 0 {
		return PriceUpStyle.Render(fmt.Sprintf("+%.2f%%", pct))
	}
	return PriceDownStyle.Render(fmt.Sprintf("%.2f%%", pct))
}

// FormatSignal renders the signal badge, e.g. "▲ BUY".
func FormatSignal(s domain.SignalType) string {
	switch s {
	case domain.SignalBuy:
		return SignalBuyStyle.Render("▲ BUY")
	case domain.SignalSell:
		return SignalSellStyle.Render("▼ SELL")
	default:
		return SignalHoldStyle.Render("▬ " + string(domain.SignalHold))
	}
}

func rsiStyle(zone domain.RSIZone) lipgloss.Style {
	switch zone {
	case domain.RSIOverbought:
		return BearishStyle
	case domain.RSIOversold:
		return BullishStyle
	default:
		return NeutralStyle
	}
}

func trendStyle(t domain.Trend) lipgloss.Style {
	if t == domain.TrendBullish {
		return BullishStyle
	}
	return BearishStyle
}

func positionStyle(p domain.Position) lipgloss.Style {
	if p == domain.PositionAbove {
		return BullishStyle
	}
	return BearishStyle
}

func formatUSD(v float64) string {
	s := fmt.Sprintf("%.2f", math.Abs(v))
	whole, frac, _ := strings.Cut(s, ".")
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + "$" + addCommas(whole) + "." + frac
}

func addCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var result strings.Builder
	for i, ch := range s {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteByte(',')
		}
		result.WriteRune(ch)
	}
	return result.String()
}

// formatVolume prints a volume with thousands separators.
func formatVolume(v float64) string {
	if v < 0 {
		return "-" + addCommas(fmt.Sprintf("%.0f", -v))
	}
	return addCommas(fmt.Sprintf("%.0f", v))
}

// formatCompact shortens large numbers for chart axis labels.
func formatCompact(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func intervalLabel(value string) string {
	if i := domain.IntervalIndex(value); i >= 0 {
		return domain.Intervals[i].Label
	}
	return value
}
