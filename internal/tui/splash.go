package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var splashArt = []string{
	"  ╱╲    ▁▃▅▇    ∿∿",
	" ╱  ╲╱  █████  ∿  ∿",
}

func renderSplash(width, height int) string {
	body := strings.Join([]string{
		TaglineStyle.Render(strings.Join(splashArt, "\n")),
		"",
		LogoStyle.Render("TradePro"),
		"",
		TaglineStyle.Render("Advanced Technical Analysis Platform"),
		"",
		SubtextStyle.Render("• • •"),
	}, "\n")

	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(body))
}
