package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Brand
	AccentColor = lipgloss.Color("#7D56F4")
	LogoStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).
			Background(AccentColor).Padding(0, 3)
	TaglineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A5B4FC"))

	// Price colors
	PriceUpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	PriceDownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// Signal colors
	SignalBuyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	SignalSellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	SignalHoldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)

	// Indicator label colors
	BullishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	BearishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	NeutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// Chart series colors
	SeriesPrice  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3E6AD6"))
	SeriesSMA20  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9500"))
	SeriesSMA50  = lipgloss.NewStyle().Foreground(lipgloss.Color("#128C7E"))
	SeriesSignal = lipgloss.NewStyle().Foreground(lipgloss.Color("#D23D57"))
	SeriesVolume = lipgloss.NewStyle().Foreground(lipgloss.Color("#788BA4"))

	// General styles
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	SubtextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BorderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555555"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	ErrorBanner   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#FF0000")).Padding(0, 1)
	SuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	SpinnerColor  = AccentColor
	HelpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A5B4FC")).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(AccentColor).Bold(true)

	// Loading step states
	StepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	StepCurrentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
	StepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)
