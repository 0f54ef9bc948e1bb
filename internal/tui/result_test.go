package tui

import (
	"errors"
	"strings"
	"testing"

	"tradepro/internal/chart"
	"tradepro/internal/domain"
	"tradepro/internal/export"

	"github.com/charmbracelet/lipgloss"
)

func TestResultViewNilResult(t *testing.T) {
	svc, _ := testServices()
	m := NewResultModel(svc, nil)
	m.SetSize(100, 30)

	if !strings.Contains(m.View(), "No results available") {
		t.Fatal("expected no-results placeholder")
	}
}

func TestResultNilRouteGoesBack(t *testing.T) {
	svc, _ := testServices()
	m := atHome(t, svc)
	m.ctrl.route = ResultRoute{}
	m.syncRoute()

	if !strings.Contains(m.View(), "No results available") {
		t.Fatal("expected placeholder for empty result route")
	}
	m, _ = update(t, m, keyEsc)
	if m.Screen() != ScreenHome {
		t.Fatalf("expected home, got %s", m.Screen())
	}
}

func TestResultBodyLabels(t *testing.T) {
	svc, _ := testServices()
	m := NewResultModel(svc, testResult())
	m.SetSize(120, 40)

	body := m.Body()
	for _, want := range []string{
		"▲ BUY", "Confidence: 60%", "MACD bullish crossover",
		"Overbought", "Bullish", "Above", "Below",
		"51,234,567", "$191.20", "$187.90",
		"Price & Moving Averages", "RSI Indicator", "MACD", "Volume",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in result body", want)
		}
	}

	header := m.View()
	if !strings.Contains(header, "$189.50") || !strings.Contains(header, "+1.25%") {
		t.Fatal("expected price and change in header")
	}
}

func TestResultSignalIcons(t *testing.T) {
	cases := map[domain.SignalType]string{
		domain.SignalBuy:  "▲ BUY",
		domain.SignalSell: "▼ SELL",
		domain.SignalHold: "▬ HOLD",
	}
	for signal, want := range cases {
		if got := FormatSignal(signal); !strings.Contains(got, want) {
			t.Fatalf("expected %q for %s, got %q", want, signal, got)
		}
	}
}

func TestResultNegativeChange(t *testing.T) {
	if got := FormatChange(-0.5); !strings.Contains(got, "-0.50%") {
		t.Fatalf("unexpected change format %q", got)
	}
	if got := FormatChange(0); !strings.Contains(got, "+0.00%") {
		t.Fatalf("unexpected change format %q", got)
	}
}

func TestResultWithoutChartData(t *testing.T) {
	svc, _ := testServices()
	r := testResult()
	r.ChartData = domain.ChartData{}
	m := NewResultModel(svc, r)
	m.SetSize(100, 30)

	body := m.Body()
	if strings.Count(body, "No chart data") != 4 {
		t.Fatalf("expected placeholder for each of the four charts")
	}
}

func TestResultExport(t *testing.T) {
	svc, _ := testServices()
	exporter := &stubExporter{files: export.Files{JSON: "/tmp/x/AAPL_1d.json", PNG: "/tmp/x/AAPL_1d.png"}}
	svc.Exporter = exporter
	m := NewResultModel(svc, testResult())

	m, cmd := m.Update(keyRunes("e"))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	msg := cmd()
	if exporter.got == nil || exporter.got.Symbol != "AAPL" {
		t.Fatal("expected exporter to receive the result")
	}
	m, _ = m.Update(msg)
	if !strings.Contains(m.Status(), "AAPL_1d.json") || !strings.Contains(m.Status(), "AAPL_1d.png") {
		t.Fatalf("unexpected status %q", m.Status())
	}
}

func TestResultExportFailure(t *testing.T) {
	svc, _ := testServices()
	svc.Exporter = &stubExporter{err: errors.New("disk full")}
	m := NewResultModel(svc, testResult())

	m, cmd := m.Update(keyRunes("e"))
	m, _ = m.Update(cmd())
	if !strings.Contains(m.Status(), "disk full") {
		t.Fatalf("expected failure status, got %q", m.Status())
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := formatVolume(1234567.4); got != "1,234,567" {
		t.Fatalf("unexpected volume %s", got)
	}
	if got := formatUSD(1234.5); got != "$1,234.50" {
		t.Fatalf("unexpected usd %s", got)
	}
	if got := formatCompact(2500000); got != "2.5M" {
		t.Fatalf("unexpected compact %s", got)
	}
}

func wideChartResult(points int) *domain.AnalysisResult {
	r := testResult()
	cd := domain.ChartData{}
	for i := 0; i < points; i++ {
		cd.Timestamps = append(cd.Timestamps, 1700000000000+int64(i)*86400000)
		cd.Prices = append(cd.Prices, 180+float64(i%10))
		cd.Volumes = append(cd.Volumes, float64(1000+i*10))
		cd.SMA20 = append(cd.SMA20, 184)
		cd.SMA50 = append(cd.SMA50, 183)
		cd.RSI = append(cd.RSI, 40+float64(i%20))
		cd.MACD = append(cd.MACD, float64(i%5)/10)
		cd.MACDSignal = append(cd.MACDSignal, 0.2)
	}
	r.ChartData = cd
	return r
}

func TestResultChartsFitTerminalWidth(t *testing.T) {
	for _, width := range []int{60, 80, 120} {
		m := NewResultModel(Services{}, wideChartResult(50))
		m.SetSize(width, 40)
		body := m.Body()

		refRows := 0
		for i, line := range strings.Split(body, "\n") {
			if w := lipgloss.Width(line); w > width {
				t.Fatalf("width %d: line %d is %d cells wide: %q", width, i, w, line)
			}
			if strings.Contains(line, "┄") {
				refRows++
			}
		}
		if refRows != 2 {
			t.Fatalf("width %d: expected RSI reference lines on 2 rows, got %d", width, refRows)
		}

		cols := min(50, chart.DataColumns(width-2))
		axis := "└" + strings.Repeat("─", cols)
		if !strings.Contains(body, axis) || strings.Contains(body, axis+"─") {
			t.Fatalf("width %d: expected a %d-column axis", width, cols)
		}
		if !strings.Contains(body, "(50 points)") {
			t.Fatalf("width %d: expected the full point count in the span line", width)
		}
	}
}
