package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"tradepro/internal/client"
	"tradepro/internal/config"
	"tradepro/internal/export"
	"tradepro/internal/logging"
	"tradepro/internal/sshserver"
	"tradepro/internal/tui"
	"tradepro/pkg/tracing"

	"github.com/joho/godotenv"
)

var (
	loadEnvFunc        = godotenv.Load
	loadConfigFunc     = config.Load
	initTracerFunc     = tracing.InitTracer
	newSSHServerFunc   = sshserver.New
	startSSHServerFunc = func(s *sshserver.Server) error { return s.ListenAndServe() }
	shutdownSSHFunc    = func(s *sshserver.Server, ctx context.Context) error { return s.Shutdown(ctx) }
	setupSignalNotify  = ossignal.Notify
	waitForSignalFunc  = func(quit <-chan os.Signal) { <-quit }
	exitFunc           = os.Exit
)

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()
	logger := logging.New(os.Stderr, cfg.LogLevel, "ssh")
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	ctx := context.Background()
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		logger.Error("failed to initialize tracer", "err", err)
		exitFunc(1)
		return
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("error shutting down tracer provider", "err", err)
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

	srv, err := newSSHServerFunc(cfg.SSHHost, cfg.SSHPort, cfg.SSHHostKeyPath, svc, logger)
	if err != nil {
		logger.Error("could not create SSH server", "err", err)
		exitFunc(1)
		return
	}

	go func() {
		if err := startSSHServerFunc(srv); err != nil {
			logger.Error("ssh server stopped", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownSSHFunc(srv, shutdownCtx); err != nil {
		logger.Error("SSH server forced to shutdown", "err", err)
	}
	logger.Info("SSH server exiting")
}
