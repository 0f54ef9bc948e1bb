package sshserver

import (
	"context"
	"errors"
	"net"
	"strconv"

	"tradepro/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	lm "github.com/charmbracelet/wish/logging"
)

// Server serves the TUI over SSH. Every session gets its own AppModel.
type Server struct {
	srv    *ssh.Server
	logger *log.Logger
}

func New(host string, port int, hostKeyPath string, svc tui.Services, logger *log.Logger) (*Server, error) {
	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, strconv.Itoa(port))),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bm.Middleware(TeaHandler(svc)),
			activeterm.Middleware(),
			lm.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Server{srv: srv, logger: logger}, nil
}

// TeaHandler builds a fresh AppModel for each SSH session.
func TeaHandler(svc tui.Services) bm.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := s.Pty()
		m := tui.NewAppModel(SessionServices(svc, s.User()))
		m.SetSize(pty.Window.Width, pty.Window.Height)
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

// SessionServices returns a copy of svc scoped to one SSH user.
func SessionServices(svc tui.Services, user string) tui.Services {
	svc.Username = user
	if svc.Logger != nil {
		svc.Logger = svc.Logger.With("user", user)
	}
	return svc
}

func (s *Server) Addr() string { return s.srv.Addr }

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting SSH server", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("stopping SSH server")
	return s.srv.Shutdown(ctx)
}
