package tui

import (
	"context"
	"time"

	"tradepro/internal/client"
	"tradepro/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen names the four top-level views.
type Screen string

const (
	ScreenSplash  Screen = "splash"
	ScreenHome    Screen = "home"
	ScreenLoading Screen = "loading"
	ScreenResult  Screen = "result"
)

// Route is the current view together with the data it needs. It is one of
// SplashRoute, HomeRoute, LoadingRoute or ResultRoute.
type Route interface {
	Screen() Screen
}

type SplashRoute struct{}

type HomeRoute struct{}

type LoadingRoute struct {
	Symbol   string
	Interval string
}

type ResultRoute struct {
	Result *domain.AnalysisResult
}

func (SplashRoute) Screen() Screen  { return ScreenSplash }
func (HomeRoute) Screen() Screen    { return ScreenHome }
func (LoadingRoute) Screen() Screen { return ScreenLoading }
func (ResultRoute) Screen() Screen  { return ScreenResult }

// Controller messages. seq ties a message to the request that produced it.
type splashDoneMsg struct{}

type analysisResponseMsg struct {
	seq    int
	result *domain.AnalysisResult
	err    error
}

type loadingGateMsg struct{ seq int }

// pendingRequest tracks the single in-flight analysis. The screen changes
// only once both the response and the minimum display gate have arrived.
type pendingRequest struct {
	seq       int
	cancel    context.CancelFunc
	responded bool
	gateDone  bool
	result    *domain.AnalysisResult
	err       error
}

// Controller owns the application state and the screen state machine.
type Controller struct {
	services         Services
	route            Route
	selectedSymbol   string
	selectedInterval string
	lastError        string
	seq              int
	pending          *pendingRequest
}

func NewController(svc Services) Controller {
	return Controller{services: svc, route: SplashRoute{}}
}

func (c *Controller) Route() Route { return c.route }

func (c *Controller) Screen() Screen { return c.route.Screen() }

func (c *Controller) SelectedSymbol() string { return c.selectedSymbol }

func (c *Controller) SelectedInterval() string { return c.selectedInterval }

func (c *Controller) LastError() string { return c.lastError }

// Pending reports whether an analysis request is in flight.
func (c *Controller) Pending() bool { return c.pending != nil }

// Seq returns the sequence number of the most recent request (for testing).
func (c *Controller) Seq() int { return c.seq }

// SplashCmd schedules the end of the splash screen.
func (c *Controller) SplashCmd() tea.Cmd {
	return after(c.services.Timing.Splash, func() tea.Msg { return splashDoneMsg{} })
}

// CompleteSplash moves from splash to home. It reports whether the screen
// changed.
func (c *Controller) CompleteSplash() bool {
	if _, ok := c.route.(SplashRoute); !ok {
		return false
	}
	c.route = HomeRoute{}
	return true
}

// Analyze records the selection and starts a request together with the
// minimum loading gate. It is ignored while another request is pending.
func (c *Controller) Analyze(symbol, interval string) tea.Cmd {
	if c.pending != nil {
		c.services.logger().Debug("analyze ignored, request pending", "symbol", symbol, "interval", interval)
		return nil
	}

	c.selectedSymbol = symbol
	c.selectedInterval = interval
	c.lastError = ""
	c.seq++

	ctx, cancel := context.WithCancel(context.Background())
	c.pending = &pendingRequest{seq: c.seq, cancel: cancel}
	c.route = LoadingRoute{Symbol: symbol, Interval: interval}
	c.services.logger().Info("analyze", "symbol", symbol, "interval", interval, "seq", c.seq)

	return tea.Batch(
		c.analyzeCmd(ctx, c.seq, symbol, interval),
		c.gateCmd(c.seq),
	)
}

// HandleResponse records the outcome of the request tagged seq. Responses
// for superseded or cancelled requests are dropped.
func (c *Controller) HandleResponse(msg analysisResponseMsg) {
	if c.pending == nil || c.pending.seq != msg.seq {
		return
	}
	c.pending.responded = true
	c.pending.result = msg.result
	c.pending.err = msg.err
	c.settle()
}

// HandleGate marks the minimum loading time of request seq as elapsed.
func (c *Controller) HandleGate(msg loadingGateMsg) {
	if c.pending == nil || c.pending.seq != msg.seq {
		return
	}
	c.pending.gateDone = true
	c.settle()
}

// Back returns home, discarding the result, the error and any pending request.
func (c *Controller) Back() {
	c.abandon()
	c.lastError = ""
	c.route = HomeRoute{}
}

// Refresh repeats the last analysis. It is a no-op without a selection.
func (c *Controller) Refresh() tea.Cmd {
	if c.selectedSymbol == "" || c.selectedInterval == "" {
		return nil
	}
	return c.Analyze(c.selectedSymbol, c.selectedInterval)
}

func (c *Controller) DismissError() {
	c.lastError = ""
}

// CancelLoading aborts the in-flight request and returns home without an
// error.
func (c *Controller) CancelLoading() {
	if _, ok := c.route.(LoadingRoute); !ok {
		return
	}
	c.services.logger().Info("analyze cancelled", "symbol", c.selectedSymbol, "interval", c.selectedInterval)
	c.abandon()
	c.route = HomeRoute{}
}

func (c *Controller) settle() {
	p := c.pending
	if !p.responded || !p.gateDone {
		return
	}
	p.cancel()
	c.pending = nil

	if p.err != nil || p.result == nil {
		c.lastError = client.ErrorMessage(p.err)
		if c.lastError == "" {
			c.lastError = "Analysis failed"
		}
		c.services.logger().Warn("analysis failed", "symbol", c.selectedSymbol, "interval", c.selectedInterval, "error", c.lastError)
		c.route = HomeRoute{}
		return
	}
	c.route = ResultRoute{Result: p.result}
}

func (c *Controller) abandon() {
	if c.pending == nil {
		return
	}
	c.pending.cancel()
	c.pending = nil
}

func (c *Controller) analyzeCmd(ctx context.Context, seq int, symbol, interval string) tea.Cmd {
	analyzer := c.services.Analyzer
	return func() tea.Msg {
		if analyzer == nil {
			return analysisResponseMsg{seq: seq, err: &client.AnalysisError{Message: "analysis service not available"}}
		}
		result, err := analyzer.AnalyzeSymbol(ctx, symbol, interval)
		return analysisResponseMsg{seq: seq, result: result, err: err}
	}
}

func (c *Controller) gateCmd(seq int) tea.Cmd {
	return after(c.services.Timing.MinLoading, func() tea.Msg { return loadingGateMsg{seq: seq} })
}

// after delivers msg once d has elapsed, or immediately when d <= 0.
func after(d time.Duration, msg func() tea.Msg) tea.Cmd {
	if d <= 0 {
		return msg
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg() })
}
