package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultPlotHeight = 8
	gutterWidth       = 10
	noDataText        = "No chart data"
)

// Series is one line drawn on a Plot.
type Series struct {
	Name   string
	Values []float64
	Glyph  rune
	Style  lipgloss.Style
}

type cell struct {
	r     rune
	style lipgloss.Style
	set   bool
}

// Plot is a character-cell chart with one column per value. Use Fit to
// reduce a series to the columns available.
type Plot struct {
	title    string
	height   int
	columns  int
	minV     float64
	maxV     float64
	format   func(float64) string
	grid     [][]cell
	legend   []Series
	axis     lipgloss.Style
	refStyle lipgloss.Style
}

type LineOptions struct {
	Height int
	// Fixed pins the value range to [Min, Max] instead of fitting the data.
	Fixed    bool
	Min, Max float64
	RefLines []float64
	Format   func(float64) string
}

// NewLinePlot draws every series over the same N columns, where N is the
// length of the shortest series.
func NewLinePlot(title string, opts LineOptions, series ...Series) *Plot {
	n := shortest(series)
	p := newPlot(title, opts.Height, n, opts.Format)
	p.legend = series
	if n == 0 {
		return p
	}

	if opts.Fixed {
		p.minV, p.maxV = opts.Min, opts.Max
	} else {
		all := make([]float64, 0, n*len(series))
		for _, s := range series {
			all = append(all, s.Values[:n]...)
		}
		p.minV, p.maxV = finiteBounds(all)
	}

	for _, ref := range opts.RefLines {
		row := p.rowFor(ref)
		for col := 0; col < n; col++ {
			p.grid[row][col] = cell{r: '┄', style: p.refStyle, set: true}
		}
	}
	for _, s := range series {
		glyph := s.Glyph
		if glyph == 0 {
			glyph = '•'
		}
		for col, v := range s.Values[:n] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			p.grid[p.rowFor(v)][col] = cell{r: glyph, style: s.Style, set: true}
		}
	}
	return p
}

// NewBarPlot draws one bar per value, rising from the bottom row.
func NewBarPlot(title string, height int, values []float64, style lipgloss.Style, format func(float64) string) *Plot {
	n := len(values)
	p := newPlot(title, height, n, format)
	if n == 0 {
		return p
	}
	_, maxV := finiteBounds(values)
	p.minV, p.maxV = 0, math.Max(maxV, 1)

	for col, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			continue
		}
		top := p.rowFor(v)
		for row := top; row < p.height; row++ {
			p.grid[row][col] = cell{r: '█', style: style, set: true}
		}
	}
	return p
}

func newPlot(title string, height, columns int, format func(float64) string) *Plot {
	if height < 2 {
		height = DefaultPlotHeight
	}
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	}
	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, columns)
	}
	return &Plot{
		title:    title,
		height:   height,
		columns:  columns,
		format:   format,
		grid:     grid,
		axis:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563")),
		refStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// Columns returns the number of plotted data points.
func (p *Plot) Columns() int { return p.columns }

// Range returns the value range mapped onto the plot height.
func (p *Plot) Range() (float64, float64) { return p.minV, p.maxV }

// Grid returns the unstyled cells, one string per row (for testing).
func (p *Plot) Grid() []string {
	out := make([]string, p.height)
	for i, row := range p.grid {
		var b strings.Builder
		for _, c := range row {
			if c.set {
				b.WriteRune(c.r)
			} else {
				b.WriteRune(' ')
			}
		}
		out[i] = b.String()
	}
	return out
}

func (p *Plot) Render() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.title))
	if legend := p.renderLegend(); legend != "" {
		b.WriteString("  " + legend)
	}
	b.WriteString("\n")

	if p.columns == 0 {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4B5563")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 2)
		b.WriteString(box.Render(noDataText))
		return b.String()
	}

	for i, row := range p.grid {
		label := ""
		switch i {
		case 0:
			label = p.format(p.maxV)
		case p.height - 1:
			label = p.format(p.minV)
		}
		b.WriteString(fmt.Sprintf("%*s ", gutterWidth-1, truncate(label, gutterWidth-1)))
		b.WriteString(p.axis.Render("│"))
		for _, c := range row {
			if c.set {
				b.WriteString(c.style.Render(string(c.r)))
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", gutterWidth))
	b.WriteString(p.axis.Render("└" + strings.Repeat("─", p.columns)))
	return b.String()
}

func (p *Plot) renderLegend() string {
	parts := make([]string, 0, len(p.legend))
	for _, s := range p.legend {
		if s.Name == "" {
			continue
		}
		glyph := s.Glyph
		if glyph == 0 {
			glyph = '•'
		}
		parts = append(parts, s.Style.Render(string(glyph))+" "+s.Name)
	}
	return strings.Join(parts, "  ")
}

func (p *Plot) rowFor(v float64) int {
	if p.maxV <= p.minV {
		return p.height - 1
	}
	ratio := (v - p.minV) / (p.maxV - p.minV)
	ratio = math.Max(0, math.Min(1, ratio))
	return (p.height - 1) - int(math.Round(ratio*float64(p.height-1)))
}

// DataColumns returns how many value columns fit in a plot rendered total
// cells wide, after the label gutter and the axis.
func DataColumns(total int) int {
	cols := total - gutterWidth - 1
	if cols < 1 {
		return 1
	}
	return cols
}

// Fit averages values into at most columns buckets. Non-finite values are
// ignored; a bucket with no finite value becomes NaN and is left blank.
func Fit(values []float64, columns int) []float64 {
	n := len(values)
	if columns <= 0 || n <= columns {
		return values
	}
	out := make([]float64, columns)
	for i := range out {
		start, end := i*n/columns, (i+1)*n/columns
		sum, count := 0.0, 0
		for _, v := range values[start:end] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sum += v
			count++
		}
		if count == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(count)
	}
	return out
}

func shortest(series []Series) int {
	if len(series) == 0 {
		return 0
	}
	n := len(series[0].Values)
	for _, s := range series[1:] {
		if len(s.Values) < n {
			n = len(s.Values)
		}
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
