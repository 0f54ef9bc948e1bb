package sshserver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradepro/internal/logging"
	"tradepro/internal/tui"
)

func TestNewGeneratesHostKey(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "host_ed25519")

	srv, err := New("127.0.0.1", 23999, keyPath, tui.Services{}, logging.Discard())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.Addr() != "127.0.0.1:23999" {
		t.Fatalf("unexpected addr %s", srv.Addr())
	}
	if _, err := os.Stat(keyPath); err != nil {
		t.Fatalf("expected host key to be created: %v", err)
	}
}

func TestShutdownStopsListenAndServe(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "host_ed25519")
	srv, err := New("127.0.0.1", 0, keyPath, tui.Services{}, logging.Discard())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSessionServices(t *testing.T) {
	var buf bytes.Buffer
	base := tui.Services{Logger: logging.New(&buf, "info", "")}

	svc := SessionServices(base, "alice")
	if svc.Username != "alice" {
		t.Fatalf("expected username alice, got %q", svc.Username)
	}
	if base.Username != "" {
		t.Fatal("expected base services untouched")
	}

	svc.Logger.Info("hello")
	if !bytes.Contains(buf.Bytes(), []byte("user=alice")) {
		t.Fatalf("expected user field in log output, got %q", buf.String())
	}
}
