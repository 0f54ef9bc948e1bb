package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const loadingTickInterval = 50 * time.Millisecond

// LoadingStep is one labelled phase of the loading animation.
type LoadingStep struct {
	Label    string
	Duration time.Duration
}

// LoadingSteps returns the animation steps for symbol.
func LoadingSteps(symbol string) []LoadingStep {
	return []LoadingStep{
		{Label: fmt.Sprintf("Fetching %s data...", symbol), Duration: 2000 * time.Millisecond},
		{Label: "Calculating technical indicators...", Duration: 2500 * time.Millisecond},
		{Label: "Analyzing price patterns...", Duration: 2000 * time.Millisecond},
		{Label: "Generating trading signals...", Duration: 1500 * time.Millisecond},
		{Label: "Analysis complete!", Duration: 500 * time.Millisecond},
	}
}

func totalDuration(steps []LoadingStep) time.Duration {
	var total time.Duration
	for _, s := range steps {
		total += s.Duration
	}
	return total
}

// Progress returns the completed fraction in [0, 1].
func Progress(steps []LoadingStep, elapsed time.Duration) float64 {
	total := totalDuration(steps)
	if total <= 0 || elapsed >= total {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(total)
}

// StepAt returns the index of the first step whose cumulative end is at or
// after elapsed. Past the end it stays on the last step.
func StepAt(steps []LoadingStep, elapsed time.Duration) int {
	var end time.Duration
	for i, s := range steps {
		end += s.Duration
		if end >= elapsed {
			return i
		}
	}
	return len(steps) - 1
}

type loadingTickMsg struct{ gen int }

// LoadingModel animates the loading steps. It knows nothing about the
// request; gen ties its ticks to one visit of the screen.
type LoadingModel struct {
	gen      int
	symbol   string
	interval string
	steps    []LoadingStep
	elapsed  time.Duration
	bar      progress.Model
	width    int
}

func NewLoadingModel(gen int, symbol, interval string) LoadingModel {
	return LoadingModel{
		gen:      gen,
		symbol:   symbol,
		interval: interval,
		steps:    LoadingSteps(symbol),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m LoadingModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m LoadingModel) Update(msg tea.Msg) (LoadingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loadingTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.elapsed += loadingTickInterval
		if m.elapsed >= totalDuration(m.steps) {
			return m, nil
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m LoadingModel) View() string {
	current := StepAt(m.steps, m.elapsed)
	pct := Progress(m.steps, m.elapsed)

	lines := []string{
		HeaderStyle.Render(fmt.Sprintf("Analyzing %s", m.symbol)) + "  " + SubtextStyle.Render(intervalLabel(m.interval)),
		"",
		m.bar.ViewAs(pct),
		"",
	}
	for i, s := range m.steps {
		switch {
		case i < current || (i == current && pct >= 1):
			lines = append(lines, StepDoneStyle.Render("✓ "+s.Label))
		case i == current:
			lines = append(lines, StepCurrentStyle.Render("● "+s.Label))
		default:
			lines = append(lines, StepPendingStyle.Render("○ "+s.Label))
		}
	}
	lines = append(lines, "", SubtextStyle.Render("Calculating RSI, MACD, Bollinger Bands, and more..."), "")
	lines = append(lines, helpLine(DefaultKeyMap.Cancel, DefaultKeyMap.Quit))

	return BorderStyle.Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m *LoadingModel) SetSize(w, h int) {
	m.width = w
	barWidth := w - 16
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 20 {
		barWidth = 20
	}
	m.bar.Width = barWidth
}

// Elapsed returns the animated time so far (for testing).
func (m LoadingModel) Elapsed() time.Duration { return m.elapsed }

// CurrentStep returns the highlighted step index (for testing).
func (m LoadingModel) CurrentStep() int { return StepAt(m.steps, m.elapsed) }

func (m LoadingModel) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(loadingTickInterval, func(time.Time) tea.Msg {
		return loadingTickMsg{gen: gen}
	})
}
