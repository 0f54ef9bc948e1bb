package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradepro/internal/config"
	"tradepro/internal/sshserver"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "host_ed25519")

	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitTracer := initTracerFunc
	origStart := startSSHServerFunc
	origShutdown := shutdownSSHFunc
	origNotify := setupSignalNotify
	origWait := waitForSignalFunc
	defer func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initTracerFunc = origInitTracer
		startSSHServerFunc = origStart
		shutdownSSHFunc = origShutdown
		setupSignalNotify = origNotify
		waitForSignalFunc = origWait
	}()

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			APIBaseURL:     "http://127.0.0.1:1/api",
			APITimeoutSecs: 1,
			LogLevel:       "error",
			ExportDir:      t.TempDir(),
			SSHHost:        "127.0.0.1",
			SSHPort:        23998,
			SSHHostKeyPath: keyPath,
		}
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	started := make(chan struct{}, 1)
	startSSHServerFunc = func(*sshserver.Server) error {
		started <- struct{}{}
		return nil
	}
	shutdownCalled := false
	shutdownSSHFunc = func(*sshserver.Server, context.Context) error {
		shutdownCalled = true
		return nil
	}
	setupSignalNotify = func(chan<- os.Signal, ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) { <-started }

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
	if !shutdownCalled {
		t.Fatal("expected shutdown to be called")
	}
}
