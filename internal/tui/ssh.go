package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"powder/internal/sims/powder"
)

// SSHConfig configures the shared sandbox server.
type SSHConfig struct {
	// Address is the host:port to listen on.
	Address string
	// HostKeyPath defaults to ~/.powder/host_key, generated when missing.
	HostKeyPath string
	IdleTimeout time.Duration
	TickRate    int
}

// DefaultSSHConfig returns the server defaults.
func DefaultSSHConfig() SSHConfig {
	return SSHConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
	}
}

// WorldFactory builds the world for one session.
type WorldFactory func(width, height int) (*powder.World, error)

// SSHServer gives every SSH session its own world in the terminal viewer.
type SSHServer struct {
	cfg     SSHConfig
	server  *ssh.Server
	factory WorldFactory
	logger  *log.Logger
}

// NewSSHServer prepares a server; call ListenAndServe to start it.
func NewSSHServer(cfg SSHConfig, factory WorldFactory, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default().WithPrefix("ssh")
	}
	hostKey := cfg.HostKeyPath
	if hostKey == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKey = filepath.Join(home, ".powder", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKey), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	s := &SSHServer{cfg: cfg, factory: factory, logger: logger}
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			s.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	s.server = server
	return s, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}
	w, h := FitGrid(pty.Window.Width, pty.Window.Height)
	world, err := s.factory(w, h)
	if err != nil {
		s.logger.Error("cannot build world", "user", sess.User(), "err", err)
		return nil, nil
	}
	model := NewModel(world, Options{
		TickRate: s.cfg.TickRate,
		Seed:     world.Config().Seed,
		Logger:   s.logger.With("user", sess.User()),
	})
	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.cfg.Address)
	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// FitGrid sizes a grid to fill a terminal of cols x rows, leaving two lines
// for the status bar.
func FitGrid(cols, rows int) (int, int) {
	w := max(cols, 8)
	h := max((rows-2)*2, 8)
	return w, h
}
