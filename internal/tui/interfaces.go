package tui

import (
	"context"
	"io"
	"time"

	"tradepro/internal/domain"
	"tradepro/internal/export"

	"github.com/charmbracelet/log"
)

// SymbolLister provides the list of analyzable symbols to the TUI.
type SymbolLister interface {
	ListSymbols(ctx context.Context) ([]domain.TradingSymbol, error)
}

// Analyzer runs a remote analysis for one symbol and interval.
type Analyzer interface {
	AnalyzeSymbol(ctx context.Context, symbol, interval string) (*domain.AnalysisResult, error)
}

// ResultExporter saves an analysis to disk.
type ResultExporter interface {
	Export(result *domain.AnalysisResult) (export.Files, error)
}

// Timing controls the splash timer and the minimum loading display.
type Timing struct {
	Splash     time.Duration
	MinLoading time.Duration
}

// Services bundles all service dependencies injected into the TUI.
type Services struct {
	Symbols  SymbolLister
	Analyzer Analyzer
	Exporter ResultExporter
	Logger   *log.Logger
	Timing   Timing
	// Username is set for SSH sessions and shown in the footer.
	Username string
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}
