package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradepro/internal/chart"
	"tradepro/internal/domain"

	"github.com/charmbracelet/log"
)

// Files lists what an export wrote. PNG is empty when the result had too
// few chart points to draw.
type Files struct {
	JSON string
	PNG  string
}

// Exporter writes analysis results to a directory on disk.
type Exporter struct {
	dir      string
	renderer *chart.Renderer
	logger   *log.Logger
	now      func() time.Time
}

func New(dir string, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Exporter{
		dir:      dir,
		renderer: chart.NewRenderer(),
		logger:   logger,
		now:      time.Now,
	}
}

func (e *Exporter) Export(result *domain.AnalysisResult) (Files, error) {
	if result == nil {
		return Files{}, fmt.Errorf("export: no result")
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("export: create dir: %w", err)
	}

	base := filepath.Join(e.dir, fileStem(result, e.now()))
	files := Files{JSON: base + ".json"}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return Files{}, fmt.Errorf("export: encode result: %w", err)
	}
	if err := os.WriteFile(files.JSON, data, 0o644); err != nil {
		return Files{}, fmt.Errorf("export: write json: %w", err)
	}

	if result.ChartData.Len() >= 2 {
		img, err := e.renderer.RenderAnalysis(result)
		if err != nil {
			return files, fmt.Errorf("export: render chart: %w", err)
		}
		files.PNG = base + ".png"
		if err := os.WriteFile(files.PNG, img.Bytes, 0o644); err != nil {
			return files, fmt.Errorf("export: write png: %w", err)
		}
	}

	e.logger.Info("exported analysis", "symbol", result.Symbol, "interval", result.Interval, "json", files.JSON, "png", files.PNG)
	return files, nil
}

func fileStem(result *domain.AnalysisResult, at time.Time) string {
	symbol := sanitize(result.Symbol)
	if symbol == "" {
		symbol = "analysis"
	}
	parts := []string{symbol}
	if iv := sanitize(result.Interval); iv != "" {
		parts = append(parts, iv)
	}
	parts = append(parts, at.UTC().Format("20060102-150405"))
	return strings.Join(parts, "_")
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return -1
		}
	}, s)
}
