// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compositor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/night-dist/nightos/lib/clock"
	"github.com/night-dist/nightos/lib/config"
	"github.com/night-dist/nightos/lib/ipc"
	"github.com/night-dist/nightos/lib/sessionenv"
	"github.com/night-dist/nightos/lib/version"
	"github.com/night-dist/nightos/lib/watchdog"
)

// DisplayVariable is exported with the display socket name.
const DisplayVariable = "WAYLAND_DISPLAY"

// Options configures a Server.
type Options struct {
	// VerifyConfigOnly stops InitServer after the configuration check.
	VerifyConfigOnly bool

	// ConfigPath is the configuration file. Empty selects the default
	// path, which is created from the template when missing.
	ConfigPath string

	// Environment is read for XDG_RUNTIME_DIR and the config location,
	// and receives the exported session variables. Required.
	Environment sessionenv.Environment

	Logger *slog.Logger
	Clock  clock.Clock

	// Signals stop Run. Nil selects SIGINT and SIGTERM.
	Signals []os.Signal

	// Shell runs exec_once commands. Empty selects /bin/sh.
	Shell string

	// WatchdogInterval is the heartbeat period. Zero selects
	// watchdog.DefaultInterval.
	WatchdogInterval time.Duration
}

// Server is the headless compositor. Use New.
type Server struct {
	options    Options
	logger     *slog.Logger
	clock      clock.Clock
	runtimeDir string

	safeMode   bool
	watchdogFD int

	// Set by InitServer.
	signature   string
	instanceDir string
	configPath  string
	digest      string
	verified    bool
	config      *config.Config
	display     *displaySocket
	control     net.Listener

	// Set by Run.
	heartbeat *watchdog.Heartbeat

	wg          sync.WaitGroup
	cleanupOnce sync.Once

	// mu guards the fields below, which change while serving.
	mu       sync.Mutex
	cancel   context.CancelFunc
	closing  bool
	clients  map[net.Conn]struct{}
	children int
}

// New returns a Server. It does not touch the filesystem.
func New(options Options) (*Server, error) {
	if options.Environment == nil {
		return nil, errors.New("compositor: Environment is required")
	}
	runtimeDir, err := sessionenv.Require(options.Environment)
	if err != nil {
		return nil, err
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Signals == nil {
		options.Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	if options.Shell == "" {
		options.Shell = "/bin/sh"
	}
	return &Server{
		options:    options,
		logger:     options.Logger,
		clock:      options.Clock,
		runtimeDir: runtimeDir,
		watchdogFD: -1,
		clients:    make(map[net.Conn]struct{}),
	}, nil
}

// SetWatchdogFD sets the descriptor the heartbeat is written to.
func (s *Server) SetWatchdogFD(fd int) {
	s.watchdogFD = fd
}

// SetSafeMode makes the server run on the built-in defaults. The user
// file is still loaded and validated.
func (s *Server) SetSafeMode(enabled bool) {
	s.safeMode = enabled
}

// ConfigVerified reports whether InitServer loaded a valid configuration.
func (s *Server) ConfigVerified() bool {
	return s.verified
}

// Signature returns the instance signature. Empty before InitServer.
func (s *Server) Signature() string {
	return s.signature
}

// InitServer loads the configuration and, unless verifying, acquires the
// display socket (adopting socketFD when it is not negative), creates the
// instance control socket and exports the session variables. A bad
// configuration is not an error: the server falls back to the defaults
// and ConfigVerified reports false.
func (s *Server) InitServer(socketName string, socketFD int) error {
	s.loadConfig()
	if s.options.VerifyConfigOnly {
		return nil
	}

	display, err := openDisplay(s.runtimeDir, socketName, socketFD)
	if err != nil {
		return err
	}
	s.display = display
	s.logger.Info("display socket ready", "name", display.name, "adopted", display.adopted)

	s.signature = fmt.Sprintf("%s_%d_%d", instanceCommit(), s.clock.Now().Unix(), os.Getpid())
	if err := os.MkdirAll(ipc.InstanceRoot(s.runtimeDir), 0o700); err != nil {
		return fmt.Errorf("creating instance root: %w", err)
	}
	s.instanceDir = ipc.InstanceDir(s.runtimeDir, s.signature)
	if err := os.Mkdir(s.instanceDir, 0o700); err != nil {
		s.instanceDir = ""
		return fmt.Errorf("creating instance directory: %w", err)
	}
	control, err := net.Listen("unix", ipc.SocketPath(s.runtimeDir, s.signature))
	if err != nil {
		return fmt.Errorf("creating control socket: %w", err)
	}
	s.control = control

	exports := []sessionenv.Variable{{Name: ipc.InstanceVariable, Value: s.signature}}
	if display.name != "" {
		exports = append(exports, sessionenv.Variable{Name: DisplayVariable, Value: display.name})
	}
	if !s.safeMode {
		for _, name := range s.config.EnvNames() {
			exports = append(exports, sessionenv.Variable{Name: name, Value: s.config.Env[name]})
		}
	}
	if err := sessionenv.Apply(s.options.Environment, exports); err != nil {
		return err
	}

	s.logger.Info("instance ready", "signature", s.signature, "control", control.Addr().String())
	return nil
}

func (s *Server) loadConfig() {
	s.config = config.Default()

	path := s.options.ConfigPath
	if path == "" {
		defaultPath, err := config.DefaultPath(s.options.Environment.LookupEnv)
		if err != nil {
			s.logger.Error("locating configuration", "error", err)
			return
		}
		path = defaultPath
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && s.options.VerifyConfigOnly {
			s.configPath = path
			s.verified = true
			s.logger.Info("no configuration file, built-in defaults are valid", "path", path)
			return
		}
		created, err := config.WriteDefault(path)
		if err != nil {
			s.logger.Error("writing default configuration", "path", path, "error", err)
			return
		}
		if created {
			s.logger.Info("created default configuration", "path", path)
		}
	}
	s.configPath = path

	file, err := config.LoadFile(path, s.options.Environment.LookupEnv)
	if file != nil {
		s.digest = file.Digest
	}
	if err != nil {
		s.logger.Error("configuration rejected, using defaults", "error", err)
		return
	}
	s.verified = true
	if s.safeMode {
		s.logger.Warn("safe mode: ignoring configuration file", "path", path)
		return
	}
	s.config = file.Config
}

// Run serves the display and control sockets until a stop signal or an
// exit request.
func (s *Server) Run() error {
	if s.display == nil || s.control == nil {
		return errors.New("compositor: Run called before a successful InitServer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), s.options.Signals...)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	if s.watchdogFD > 0 {
		s.heartbeat = watchdog.FromDescriptor(s.watchdogFD, s.clock, s.options.WatchdogInterval, s.logger)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.heartbeat.Run(ctx); err != nil {
				s.logger.Warn("watchdog heartbeat ended", "error", err)
			}
		}()
	}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.acceptDisplay(ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.serveControl(ctx)
	}()

	if !s.safeMode {
		s.spawnExecOnce()
	}

	<-ctx.Done()
	s.logger.Info("compositor stopping")
	return nil
}

// requestStop ends Run. Safe to call before or after Run.
func (s *Server) requestStop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Cleanup stops serving and removes everything InitServer created. It
// may be called after a failed InitServer. Subsequent calls do nothing.
func (s *Server) Cleanup() {
	s.cleanupOnce.Do(s.cleanup)
}

func (s *Server) cleanup() {
	s.requestStop()

	if s.control != nil {
		s.control.Close()
	}
	if s.display != nil {
		s.display.listener.Close()
	}
	s.mu.Lock()
	s.closing = true
	for conn := range s.clients {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()

	if s.heartbeat != nil {
		s.heartbeat.Close()
	}
	if s.display != nil {
		s.display.release()
	}
	if s.instanceDir != "" {
		if err := os.RemoveAll(s.instanceDir); err != nil {
			s.logger.Warn("removing instance directory", "path", s.instanceDir, "error", err)
		}
	}
}

func (s *Server) status() *ipc.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := &ipc.Status{
		Instance:     s.signature,
		SafeMode:     s.safeMode,
		ConfigPath:   s.configPath,
		ConfigDigest: s.digest,
		ConfigValid:  s.verified,
		Clients:      len(s.clients),
		Children:     s.children,
		Watchdog:     s.watchdogFD > 0,
	}
	if s.display != nil {
		status.DisplaySocket = s.display.name
	}
	return status
}

func instanceCommit() string {
	if version.GitCommit == "" {
		return "unknown"
	}
	return version.GitCommit
}
