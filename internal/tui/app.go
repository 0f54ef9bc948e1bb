package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root Bubble Tea model. It forwards user intents to the
// Controller and renders the screen the Controller's route names.
type AppModel struct {
	services Services
	ctrl     Controller
	home     HomeModel
	loading  LoadingModel
	result   ResultModel
	// shown is the screen of the last synced route.
	shown    Screen
	width    int
	height   int
	quitting bool
}

// NewAppModel creates the root application model with all child screens.
func NewAppModel(svc Services) AppModel {
	return AppModel{
		services: svc,
		ctrl:     NewController(svc),
		home:     NewHomeModel(svc),
	}
}

// Init starts the splash timer.
func (m AppModel) Init() tea.Cmd {
	return m.ctrl.SplashCmd()
}

// Update handles incoming messages, routing to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case splashDoneMsg:
		if m.ctrl.CompleteSplash() {
			m.shown = ScreenHome
			return m, m.home.Init()
		}
		return m, nil

	case analysisResponseMsg:
		m.ctrl.HandleResponse(msg)
		return m, m.syncRoute()

	case loadingGateMsg:
		m.ctrl.HandleGate(msg)
		return m, m.syncRoute()

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Quit) {
			m.quitting = true
			m.ctrl.Back()
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	// Route data messages to the models that own them.
	var cmd tea.Cmd
	switch msg.(type) {
	case symbolsMsg, symbolsErrMsg:
		m.home, cmd = m.home.Update(msg)
	case loadingTickMsg:
		m.loading, cmd = m.loading.Update(msg)
	case exportedMsg:
		m.result, cmd = m.result.Update(msg)
	default:
		switch m.ctrl.Screen() {
		case ScreenHome:
			m.home, cmd = m.home.Update(msg)
		case ScreenResult:
			m.result, cmd = m.result.Update(msg)
		}
	}
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.ctrl.Screen() {
	case ScreenSplash:
		// Splash ignores input until its timer fires.
		return m, nil

	case ScreenHome:
		switch {
		case key.Matches(msg, DefaultKeyMap.Submit):
			symbol, interval, ok := m.home.Selection()
			if !ok {
				return m, nil
			}
			return m, m.analyze(symbol, interval)
		case key.Matches(msg, DefaultKeyMap.Dismiss):
			m.ctrl.DismissError()
			return m, nil
		}
		m.home, cmd = m.home.Update(msg)
		return m, cmd

	case ScreenLoading:
		if key.Matches(msg, DefaultKeyMap.Cancel) {
			m.ctrl.CancelLoading()
			return m, m.syncRoute()
		}
		return m, nil

	case ScreenResult:
		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			m.ctrl.Back()
			return m, m.syncRoute()
		case key.Matches(msg, DefaultKeyMap.Refresh):
			return m, m.refresh()
		}
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	switch m.ctrl.Route().(type) {
	case SplashRoute:
		return renderSplash(m.width, m.height)
	case LoadingRoute:
		return m.frame(m.loading.View())
	case ResultRoute:
		return m.frame(m.result.View())
	default:
		return m.frame(m.home.View(m.ctrl.LastError()))
	}
}

// SetSize updates dimensions on the root model and propagates to children.
func (m *AppModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.propagateSize()
}

// Screen returns the active screen (for testing).
func (m AppModel) Screen() Screen { return m.ctrl.Screen() }

// Controller returns the state controller (for testing).
func (m AppModel) Controller() *Controller { return &m.ctrl }

// Home returns the home screen model (for testing).
func (m AppModel) Home() HomeModel { return m.home }

// Loading returns the loading screen model (for testing).
func (m AppModel) Loading() LoadingModel { return m.loading }

// Result returns the result screen model (for testing).
func (m AppModel) Result() ResultModel { return m.result }

func (m *AppModel) analyze(symbol, interval string) tea.Cmd {
	cmd := m.ctrl.Analyze(symbol, interval)
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.syncRoute())
}

func (m *AppModel) refresh() tea.Cmd {
	cmd := m.ctrl.Refresh()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.syncRoute())
}

// syncRoute rebuilds the screen model for the controller's current route.
// Loading and result models are recreated on every entry so timers from a
// previous visit cannot reach the new one.
func (m *AppModel) syncRoute() tea.Cmd {
	prev := m.shown
	m.shown = m.ctrl.Screen()
	switch route := m.ctrl.Route().(type) {
	case LoadingRoute:
		if m.loading.gen == m.ctrl.Seq() {
			return nil
		}
		m.loading = NewLoadingModel(m.ctrl.Seq(), route.Symbol, route.Interval)
		m.loading.SetSize(m.width, m.contentHeight())
		return m.loading.Init()
	case ResultRoute:
		if m.result.result == route.Result && route.Result != nil {
			return nil
		}
		m.result = NewResultModel(m.services, route.Result)
		m.result.SetSize(m.width, m.contentHeight())
		m.loading = LoadingModel{}
	default:
		m.loading = LoadingModel{}
		m.result = ResultModel{}
		if m.shown == ScreenHome && prev != ScreenHome {
			// Cursor blink stopped while another screen was shown.
			return m.home.Init()
		}
	}
	return nil
}

func (m *AppModel) propagateSize() {
	m.home.SetSize(m.width, m.contentHeight())
	m.loading.SetSize(m.width, m.contentHeight())
	if m.result.result != nil {
		m.result.SetSize(m.width, m.contentHeight())
	}
}

func (m AppModel) contentHeight() int {
	return m.height - 1 // footer
}

func (m AppModel) frame(content string) string {
	footer := SubtextStyle.Render("TradePro")
	if m.services.Username != "" {
		footer += SubtextStyle.Render(" • " + m.services.Username)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}
