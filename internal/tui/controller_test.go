package tui

import (
	"testing"
	"time"
)

func TestSplashCmdWaitsForTimer(t *testing.T) {
	svc, _ := testServices()
	svc.Timing = Timing{Splash: 30 * time.Millisecond}
	ctrl := NewController(svc)

	start := time.Now()
	msg := ctrl.SplashCmd()()
	if elapsed := time.Since(start); elapsed < svc.Timing.Splash {
		t.Fatalf("splash finished after %s, want at least %s", elapsed, svc.Timing.Splash)
	}
	if _, ok := msg.(splashDoneMsg); !ok {
		t.Fatalf("expected splashDoneMsg, got %T", msg)
	}
	if ctrl.Screen() != ScreenSplash {
		t.Fatalf("timer alone must not change the screen, got %s", ctrl.Screen())
	}
	if !ctrl.CompleteSplash() || ctrl.Screen() != ScreenHome {
		t.Fatalf("expected home after splash, got %s", ctrl.Screen())
	}
}

func TestLoadingGateHoldsFastResponse(t *testing.T) {
	svc, _ := testServices()
	svc.Timing = Timing{MinLoading: 40 * time.Millisecond}
	ctrl := NewController(svc)
	ctrl.CompleteSplash()

	cmd := ctrl.Analyze("MSFT", "1h")
	seq := ctrl.Seq()

	start := time.Now()
	var response analysisResponseMsg
	var gate loadingGateMsg
	var gotResponse, gotGate bool
	var gateAfter time.Duration
	for _, msg := range collect(cmd) {
		switch msg := msg.(type) {
		case analysisResponseMsg:
			response, gotResponse = msg, true
		case loadingGateMsg:
			gate, gotGate = msg, true
			gateAfter = time.Since(start)
		}
	}
	if !gotResponse || !gotGate {
		t.Fatalf("expected response and gate, got response=%v gate=%v", gotResponse, gotGate)
	}
	if gateAfter < svc.Timing.MinLoading {
		t.Fatalf("gate fired after %s, want at least %s", gateAfter, svc.Timing.MinLoading)
	}
	if response.seq != seq || gate.seq != seq {
		t.Fatalf("expected seq %d, got response=%d gate=%d", seq, response.seq, gate.seq)
	}

	ctrl.HandleResponse(response)
	if ctrl.Screen() != ScreenLoading {
		t.Fatalf("response before gate must keep loading, got %s", ctrl.Screen())
	}
	ctrl.HandleGate(gate)
	if ctrl.Screen() != ScreenResult {
		t.Fatalf("expected result, got %s", ctrl.Screen())
	}
}

func TestLoadingGateFromEarlierRequestIgnored(t *testing.T) {
	svc, _ := testServices()
	svc.Timing = Timing{MinLoading: 10 * time.Millisecond}
	ctrl := NewController(svc)
	ctrl.CompleteSplash()

	first := collect(ctrl.Analyze("AAPL", "1d"))
	ctrl.CancelLoading()
	ctrl.Analyze("TSLA", "1d")

	for _, msg := range first {
		switch msg := msg.(type) {
		case analysisResponseMsg:
			ctrl.HandleResponse(msg)
		case loadingGateMsg:
			ctrl.HandleGate(msg)
		}
	}
	if ctrl.Screen() != ScreenLoading || !ctrl.Pending() {
		t.Fatalf("stale gate must not settle the new request, got %s", ctrl.Screen())
	}
}
