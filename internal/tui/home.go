package tui

import (
	"context"
	"fmt"
	"strings"

	"tradepro/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxVisibleSymbols = 8

// Home message types.
type symbolsMsg []domain.TradingSymbol
type symbolsErrMsg struct{ err error }

// HomeModel is the symbol and interval picker.
type HomeModel struct {
	services    Services
	search      textinput.Model
	spinner     spinner.Model
	symbols     []domain.TradingSymbol
	filtered    []domain.TradingSymbol
	cursor      int
	selected    string
	intervalIdx int
	loading     bool
	fetched     bool
	width       int
	height      int
}

func NewHomeModel(svc Services) HomeModel {
	ti := textinput.New()
	ti.Placeholder = "Search symbols..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 32
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)

	return HomeModel{
		services:    svc,
		search:      ti,
		spinner:     sp,
		selected:    domain.DefaultSymbol,
		intervalIdx: domain.IntervalIndex(domain.DefaultInterval),
		loading:     true,
	}
}

// Init fetches the symbol list the first time Home is shown.
func (m *HomeModel) Init() tea.Cmd {
	if m.fetched {
		return textinput.Blink
	}
	m.fetched = true
	m.loading = true
	return tea.Batch(m.fetchSymbolsCmd(), m.spinner.Tick, textinput.Blink)
}

func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case symbolsMsg:
		if len(msg) == 0 {
			m.services.logger().Warn("symbol list empty, using fallback")
			m.setSymbols(domain.FallbackSymbols)
			return m, nil
		}
		m.setSymbols([]domain.TradingSymbol(msg))
		return m, nil

	case symbolsErrMsg:
		m.services.logger().Warn("symbol list unavailable, using fallback", "err", msg.err)
		m.setSymbols(domain.FallbackSymbols)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, DefaultKeyMap.NextInterval):
			m.intervalIdx = (m.intervalIdx + 1) % len(domain.Intervals)
			return m, nil
		case key.Matches(msg, DefaultKeyMap.PrevInterval):
			m.intervalIdx = (m.intervalIdx - 1 + len(domain.Intervals)) % len(domain.Intervals)
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m HomeModel) View(errMsg string) string {
	var sections []string

	sections = append(sections, LogoStyle.Render("TradePro")+"  "+TaglineStyle.Render("Technical analysis terminal"))

	if errMsg != "" {
		banner := ErrorBanner.Width(m.contentWidth()).Render(
			ErrorStyle.Render("✖ "+errMsg) + "\n" + SubtextStyle.Render("esc to dismiss"),
		)
		sections = append(sections, banner)
	}

	sections = append(sections, BorderStyle.Width(m.contentWidth()).Render(m.renderSymbols()))
	sections = append(sections, BorderStyle.Width(m.contentWidth()).Render(m.renderIntervals()))
	sections = append(sections, m.renderSummary())
	sections = append(sections, helpLine(
		DefaultKeyMap.Up, DefaultKeyMap.NextInterval, DefaultKeyMap.Submit, DefaultKeyMap.Dismiss, DefaultKeyMap.Quit,
	))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *HomeModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = m.contentWidth() - 6
}

// Selection returns the chosen symbol and interval value. ok is false when
// the filter matches nothing.
func (m HomeModel) Selection() (symbol, interval string, ok bool) {
	if len(m.filtered) == 0 {
		return "", domain.Intervals[m.intervalIdx].Value, false
	}
	return m.filtered[m.cursor].Symbol, domain.Intervals[m.intervalIdx].Value, true
}

// Symbols returns the full symbol list (for testing).
func (m HomeModel) Symbols() []domain.TradingSymbol { return m.symbols }

// Filtered returns the symbols matching the search (for testing).
func (m HomeModel) Filtered() []domain.TradingSymbol { return m.filtered }

// Loading reports whether the symbol list is still being fetched (for testing).
func (m HomeModel) Loading() bool { return m.loading }

func (m *HomeModel) setSymbols(symbols []domain.TradingSymbol) {
	m.symbols = symbols
	m.loading = false
	m.applyFilter()
}

// applyFilter keeps the selected symbol under the cursor when it still
// matches, otherwise selects the first match.
func (m *HomeModel) applyFilter() {
	m.filtered = FilterSymbols(m.symbols, m.search.Value())
	m.cursor = 0
	for i, s := range m.filtered {
		if s.Symbol == m.selected {
			m.cursor = i
			return
		}
	}
	if len(m.filtered) > 0 {
		m.selected = m.filtered[0].Symbol
	}
}

func (m *HomeModel) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	m.selected = m.filtered[m.cursor].Symbol
}

// FilterSymbols returns the symbols whose code or name contains query,
// ignoring case. An empty query matches everything.
func FilterSymbols(symbols []domain.TradingSymbol, query string) []domain.TradingSymbol {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return symbols
	}
	var out []domain.TradingSymbol
	for _, s := range symbols {
		if strings.Contains(strings.ToLower(s.Symbol), q) || strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}

func (m HomeModel) renderSymbols() string {
	lines := []string{HeaderStyle.Render("Select Symbol"), m.search.View(), ""}

	if m.loading {
		lines = append(lines, m.spinner.View()+" Loading symbols...")
		return strings.Join(lines, "\n")
	}
	if len(m.filtered) == 0 {
		lines = append(lines, SubtextStyle.Render("No symbols match"))
		return strings.Join(lines, "\n")
	}

	start := 0
	if m.cursor >= maxVisibleSymbols {
		start = m.cursor - maxVisibleSymbols + 1
	}
	end := start + maxVisibleSymbols
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := start; i < end; i++ {
		s := m.filtered[i]
		row := fmt.Sprintf(" %-6s %s ", s.Symbol, s.Name)
		if i == m.cursor {
			lines = append(lines, SelectedStyle.Render("▸"+row))
		} else {
			lines = append(lines, " "+row)
		}
	}
	if len(m.filtered) > maxVisibleSymbols {
		lines = append(lines, SubtextStyle.Render(fmt.Sprintf(" %d of %d", m.cursor+1, len(m.filtered))))
	}
	return strings.Join(lines, "\n")
}

func (m HomeModel) renderIntervals() string {
	var cells []string
	for i, iv := range domain.Intervals {
		if i == m.intervalIdx {
			cells = append(cells, SelectedStyle.Render(" "+iv.Value+" "))
		} else {
			cells = append(cells, SubtextStyle.Render(" "+iv.Value+" "))
		}
	}
	return HeaderStyle.Render("Time Interval") + "  " +
		SubtextStyle.Render(domain.Intervals[m.intervalIdx].Label) + "\n" +
		strings.Join(cells, " ")
}

func (m HomeModel) renderSummary() string {
	symbol, interval, ok := m.Selection()
	if !ok {
		symbol = "-"
	}
	return HeaderStyle.Render("Analysis Configuration:") + "\n" +
		fmt.Sprintf("  Symbol: %s   Interval: %s\n", symbol, interval) +
		SubtextStyle.Render("  Indicators: RSI, MACD, Bollinger Bands, Moving Averages")
}

func (m HomeModel) contentWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m HomeModel) fetchSymbolsCmd() tea.Cmd {
	return func() tea.Msg {
		if m.services.Symbols == nil {
			return symbolsErrMsg{err: fmt.Errorf("symbol service not available")}
		}
		symbols, err := m.services.Symbols.ListSymbols(context.Background())
		if err != nil {
			return symbolsErrMsg{err: err}
		}
		return symbolsMsg(symbols)
	}
}
