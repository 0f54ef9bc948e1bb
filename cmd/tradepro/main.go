package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"tradepro/internal/client"
	"tradepro/internal/config"
	"tradepro/internal/export"
	"tradepro/internal/logging"
	"tradepro/internal/tui"
	"tradepro/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initTracerFunc = tracing.InitTracer
	openLogFunc    = logging.OpenFile
	runProgramFunc = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
	exitFunc = os.Exit
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tradepro: %v\n", err)
		exitFunc(1)
	}
}

func run() error {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	logFile, err := openLogFunc(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.LogLevel, "tradepro")
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	ctx := context.Background()
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("shutting down tracer provider", "err", err)
		}
	}()

	api := client.New(cfg.APIBaseURL, tracer,
		client.WithTimeout(time.Duration(cfg.APITimeoutSecs)*time.Second),
		client.WithLogger(logger.WithPrefix("api")),
	)

	svc := tui.Services{
		Symbols:  api,
		Analyzer: api,
		Exporter: export.New(cfg.ExportDir, logger.WithPrefix("export")),
		Logger:   logger,
		Timing: tui.Timing{
			Splash:     time.Duration(cfg.SplashSecs) * time.Second,
			MinLoading: time.Duration(cfg.MinLoadingSecs) * time.Second,
		},
	}

	logger.Info("starting", "api", cfg.APIBaseURL)
	if err := runProgramFunc(tui.NewAppModel(svc)); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	logger.Info("exiting")
	return nil
}
