package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"tradepro/internal/chart"
	"tradepro/internal/domain"
	"tradepro/internal/export"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const minContentWidth = 30

// Result message types.
type exportedMsg struct {
	files export.Files
	err   error
}

// ResultModel renders one AnalysisResult in a scrollable viewport.
type ResultModel struct {
	services Services
	result   *domain.AnalysisResult
	viewport viewport.Model
	status   string
	width    int
	height   int
}

func NewResultModel(svc Services, result *domain.AnalysisResult) ResultModel {
	m := ResultModel{
		services: svc,
		result:   result,
		viewport: viewport.New(80, 20),
	}
	m.viewport.SetContent(m.renderBody())
	return m
}

func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case exportedMsg:
		if msg.err != nil {
			m.status = ErrorStyle.Render("Export failed: " + msg.err.Error())
			return m, nil
		}
		saved := filepath.Base(msg.files.JSON)
		if msg.files.PNG != "" {
			saved += ", " + filepath.Base(msg.files.PNG)
		}
		m.status = SuccessStyle.Render("Exported " + saved)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Export) && m.result != nil {
			m.status = SubtextStyle.Render("Exporting...")
			return m, m.exportCmd()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ResultModel) View() string {
	if m.result == nil {
		return BorderStyle.Padding(1, 2).Render(
			HeaderStyle.Render("No results available") + "\n\n" + helpLine(DefaultKeyMap.Back, DefaultKeyMap.Quit),
		)
	}

	footer := helpLine(DefaultKeyMap.Back, DefaultKeyMap.Refresh, DefaultKeyMap.Export, DefaultKeyMap.Quit)
	if m.status != "" {
		footer = m.status + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), footer)
}

func (m *ResultModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	// header (2 lines) + footer (2 lines)
	m.viewport.Height = h - 4
	if m.viewport.Height < 5 {
		m.viewport.Height = 5
	}
	m.viewport.SetContent(m.renderBody())
}

// Result returns the rendered result (for testing).
func (m ResultModel) Result() *domain.AnalysisResult { return m.result }

// Status returns the export status line (for testing).
func (m ResultModel) Status() string { return m.status }

// Body returns the full scrollable content (for testing).
func (m ResultModel) Body() string { return m.renderBody() }

func (m ResultModel) renderHeader() string {
	r := m.result
	title := LogoStyle.Render(r.Symbol) + "  " + SubtextStyle.Render(intervalLabel(r.Interval))
	price := HeaderStyle.Render(fmt.Sprintf("$%.2f", r.CurrentPrice)) + "  " + FormatChange(r.Change24h)
	return title + "  " + price + "\n"
}

func (m ResultModel) renderBody() string {
	if m.result == nil {
		return ""
	}
	r := m.result
	width := m.contentWidth()
	half := width/2 - 1

	stats := fmt.Sprintf("%s %s   %s %s   %s %s   %s %.1f",
		SubtextStyle.Render("Volume"), formatVolume(r.Volume),
		SubtextStyle.Render("24h High"), formatUSD(r.High24h),
		SubtextStyle.Render("24h Low"), formatUSD(r.Low24h),
		SubtextStyle.Render("RSI"), r.Indicators.RSI,
	)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		BorderStyle.Width(half).Render(m.renderSignal()),
		BorderStyle.Width(half).Render(m.renderIndicators()),
	)

	sections := []string{lipgloss.NewStyle().Width(width + 2).Render(stats), panels}
	for _, c := range m.renderCharts(chart.DataColumns(width)) {
		sections = append(sections, BorderStyle.Width(width).Render(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// contentWidth is the inner width of a full-width bordered section.
func (m ResultModel) contentWidth() int {
	if m.width <= 0 {
		return 78
	}
	return max(m.width-2, minContentWidth)
}

func (m ResultModel) renderSignal() string {
	s := m.result.Signal
	lines := []string{
		HeaderStyle.Render("Trading Signal"),
		FormatSignal(s.Signal) + "  " + SubtextStyle.Render(fmt.Sprintf("Confidence: %.0f%%", s.Confidence)),
		"",
		SubtextStyle.Render("Reasons:"),
	}
	if len(s.Reasons) == 0 {
		lines = append(lines, SubtextStyle.Render("  none given"))
	}
	for _, reason := range s.Reasons {
		lines = append(lines, "  • "+reason)
	}
	return strings.Join(lines, "\n")
}

func (m ResultModel) renderIndicators() string {
	r := m.result
	ind := r.Indicators

	zone := domain.ClassifyRSI(ind.RSI)
	trend := domain.MACDTrend(ind.MACD, ind.MACDSignal)
	pos20 := domain.PricePosition(r.CurrentPrice, ind.SMA20)
	pos50 := domain.PricePosition(r.CurrentPrice, ind.SMA50)

	return strings.Join([]string{
		HeaderStyle.Render("Technical Indicators"),
		fmt.Sprintf("RSI (14)  %-10.2f %s", ind.RSI, rsiStyle(zone).Render(string(zone))),
		fmt.Sprintf("MACD      %-10.4f %s", ind.MACD, trendStyle(trend).Render(string(trend))),
		fmt.Sprintf("SMA 20    %-10s %s", formatUSD(ind.SMA20), positionStyle(pos20).Render(string(pos20))),
		fmt.Sprintf("SMA 50    %-10s %s", formatUSD(ind.SMA50), positionStyle(pos50).Render(string(pos50))),
		SubtextStyle.Render(fmt.Sprintf("BB %s / %s", formatUSD(ind.BBLower), formatUSD(ind.BBUpper))),
	}, "\n")
}

// renderCharts draws the four charts. Rows are averaged together when there
// are more of them than columns.
func (m ResultModel) renderCharts(columns int) []string {
	rows := chart.BuildRows(m.result.ChartData)
	fit := func(values []float64) []float64 { return chart.Fit(values, columns) }
	prices := func(v float64) string { return fmt.Sprintf("%.2f", v) }

	price := chart.NewLinePlot("Price & Moving Averages", chart.LineOptions{Height: 10, Format: prices},
		chart.Series{Name: "Price", Values: fit(chart.Prices(rows)), Glyph: '•', Style: SeriesPrice},
		chart.Series{Name: "SMA 20", Values: fit(chart.SMA20(rows)), Glyph: '·', Style: SeriesSMA20},
		chart.Series{Name: "SMA 50", Values: fit(chart.SMA50(rows)), Glyph: '·', Style: SeriesSMA50},
	)
	rsi := chart.NewLinePlot("RSI Indicator", chart.LineOptions{
		Height:   8,
		Fixed:    true,
		Min:      0,
		Max:      100,
		RefLines: []float64{domain.RSIOverboughtLevel, domain.RSIOversoldLevel},
		Format:   func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}, chart.Series{Name: "RSI", Values: fit(chart.RSI(rows)), Glyph: '•', Style: SeriesPrice})
	macd := chart.NewLinePlot("MACD", chart.LineOptions{Height: 8, Format: func(v float64) string { return fmt.Sprintf("%.3f", v) }},
		chart.Series{Name: "MACD", Values: fit(chart.MACD(rows)), Glyph: '•', Style: SeriesPrice},
		chart.Series{Name: "Signal", Values: fit(chart.MACDSignal(rows)), Glyph: '·', Style: SeriesSignal},
	)
	volume := chart.NewBarPlot("Volume", 6, fit(chart.Volumes(rows)), SeriesVolume, formatCompact)

	out := []string{price.Render(), rsi.Render(), macd.Render(), volume.Render()}
	if len(rows) > 0 {
		span := fmt.Sprintf("%s → %s  (%d points)",
			rows[0].Time.Format("2006-01-02 15:04"), rows[len(rows)-1].Time.Format("2006-01-02 15:04"), len(rows))
		out = append(out, SubtextStyle.Render(span))
	}
	return out
}

func (m ResultModel) exportCmd() tea.Cmd {
	result := m.result
	exporter := m.services.Exporter
	return func() tea.Msg {
		if exporter == nil {
			return exportedMsg{err: fmt.Errorf("export not available")}
		}
		files, err := exporter.Export(result)
		return exportedMsg{files: files, err: err}
	}
}
