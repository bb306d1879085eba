package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/parkshot/internal/engine"
	"github.com/vovakirdan/parkshot/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.parkshot/host_key.
	HostKeyPath string

	// ParkPath is the park every session opens.
	ParkPath string

	// Viewer configures each session's viewer. Screenshots land in a
	// per-user subdirectory of Viewer.Capture.Directory.
	Viewer ViewerOptions

	// TickRate is the frame rate of each session.
	TickRate int

	// Store, if set, records every capture.
	Store *storage.Store

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Logger receives server and capture diagnostics. Nil creates one.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		TickRate:    30,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the park viewer over SSH, one engine per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger

	// teardown holds a release func per live session.
	teardown sync.Map
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "parkshot-ssh",
		})
	}

	// Fail early on a park no session could open
	e, err := engine.Open(cfg.ParkPath)
	if err != nil {
		return nil, err
	}
	e.Close()

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".parkshot", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.teardownMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionDir returns the screenshot directory for an SSH user.
func sessionDir(base, user string) string {
	user = filepath.Base(filepath.Clean("/" + user))
	if user == "/" || user == "." || strings.TrimSpace(user) == "" {
		user = "anonymous"
	}
	return filepath.Join(base, user)
}

// teaHandler opens an engine and a viewer for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	e, err := engine.Open(s.config.ParkPath)
	if err != nil {
		s.logger.Error("cannot open park", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	opts := s.config.Viewer
	opts.Bell = sshSession
	opts.Capture.Directory = sessionDir(opts.Capture.Directory, sshSession.User())
	opts.Capture.Logger = s.logger.With("user", sshSession.User())
	if s.config.Store != nil {
		opts.Capture.Recorder = s.config.Store
	}

	v, err := NewViewer(e, opts)
	if err != nil {
		e.Close()
		s.logger.Error("cannot create viewer", "user", sshSession.User(), "error", err)
		return nil, nil
	}
	e.StartPlaying()

	// Released by teardownMiddleware once the program has exited
	s.track(sshSession, func() {
		v.Close()
		if err := e.Close(); err != nil {
			s.logger.Warn("engine close failed", "user", sshSession.User(), "error", err)
		}
	})

	model := NewModel(v, s.config.TickRate, pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// track registers the release func for a session's viewer and engine.
func (s *SSHServer) track(sess ssh.Session, release func()) {
	s.teardown.Store(sess, release)
}

// release runs and forgets the release func of a session, if any.
func (s *SSHServer) release(sess ssh.Session) {
	if fn, ok := s.teardown.LoadAndDelete(sess); ok {
		fn.(func())()
	}
}

// teardownMiddleware closes a session's viewer and engine after the
// Bubble Tea program serving it has returned.
func (s *SSHServer) teardownMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		defer s.release(sshSession)
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "park", s.config.ParkPath)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
