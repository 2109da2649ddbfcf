// Package server implements the daemon's command surface: the PetService
// gRPC API (native and grpc-web) plus a few plain HTTP routes, all on one port.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"

	"github.com/hazzzi/maenggu-run/internal/daemon/display"
	"github.com/hazzzi/maenggu-run/internal/daemon/events"
	"github.com/hazzzi/maenggu-run/internal/models"
	"github.com/hazzzi/maenggu-run/internal/snack"
	"github.com/hazzzi/maenggu-run/internal/store"
	pb "github.com/hazzzi/maenggu-run/proto"
)

// Deps are the daemon components the server exposes.
type Deps struct {
	Manager  *snack.Manager
	Hub      *events.Hub
	Tracker  *display.Tracker
	Store    *store.Store
	Settings *models.Settings
	Logger   *slog.Logger
}

// Server is the daemon's gRPC server.
type Server struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	listener   net.Listener
	host       string
	port       int
	startedAt  time.Time

	manager  *snack.Manager
	hub      *events.Hub
	tracker  *display.Tracker
	store    *store.Store
	settings *models.Settings
	logger   *slog.Logger

	updateState UpdateState

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	stopCtx      context.Context
	stopCancel   context.CancelFunc
}

// New creates a server listening on the configured host and port.
// Port 0 picks a free port.
func New(d Deps) (*Server, error) {
	srv, err := newServer(d)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(srv.settings.Server.Host, strconv.Itoa(srv.settings.Server.Port))
	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	srv.listener = listener
	srv.port = listener.Addr().(*net.TCPAddr).Port
	srv.httpServer = &http.Server{
		Handler:           h2c.NewHandler(srv.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv, nil
}

func newServer(d Deps) (*Server, error) {
	if d.Manager == nil || d.Hub == nil {
		return nil, errors.New("server requires a state manager and an event hub")
	}
	if d.Settings == nil {
		d.Settings = models.NewSettings()
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	srv := &Server{
		host:       d.Settings.Server.Host,
		startedAt:  time.Now().UTC(),
		manager:    d.Manager,
		hub:        d.Hub,
		tracker:    d.Tracker,
		store:      d.Store,
		settings:   d.Settings,
		logger:     d.Logger.With("component", "server"),
		shutdownCh: make(chan struct{}),
	}
	srv.stopCtx, srv.stopCancel = context.WithCancel(context.Background())

	srv.grpcServer = grpc.NewServer(
		grpc.ChainUnaryInterceptor(srv.logUnary),
		grpc.ChainStreamInterceptor(srv.logStream),
	)
	pb.RegisterPetServiceServer(srv.grpcServer, &petService{server: srv})

	return srv, nil
}

// Host returns the interface the server is bound to.
func (s *Server) Host() string {
	return s.host
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	s.startUpdateCheck()

	s.logger.Info("listening", "addr", s.listener.Addr().String())
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop closes open streams and shuts the listener down.
func (s *Server) Stop() {
	s.stopCancel()
	s.grpcServer.Stop()

	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("http shutdown", "error", err)
	}
}

// RequestShutdown asks the daemon's main loop to exit.
func (s *Server) RequestShutdown() {
	s.shutdownOnce.Do(func() {
		s.logger.Info("shutdown requested")
		close(s.shutdownCh)
	})
}

// ShutdownRequested is closed once a shutdown was requested over the API or tray.
func (s *Server) ShutdownRequested() <-chan struct{} {
	return s.shutdownCh
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logRPC(info.FullMethod, start, err)
	return resp, err
}

func (s *Server) logStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	s.logRPC(info.FullMethod, start, err)
	return err
}

func (s *Server) logRPC(method string, start time.Time, err error) {
	if err != nil {
		s.logger.Warn("rpc failed", "method", method, "duration", time.Since(start), "error", err)
		return
	}
	s.logger.Debug("rpc", "method", method, "duration", time.Since(start))
}

// TrayState adapts a Server to the tray.PetState interface.
type TrayState struct {
	srv *Server
}

// NewTrayState creates a TrayState for the given server.
func NewTrayState(srv *Server) *TrayState {
	return &TrayState{srv: srv}
}

// Port returns the port the server is listening on.
func (t *TrayState) Port() int {
	return t.srv.Port()
}

// Snapshot returns the current game state.
func (t *TrayState) Snapshot() models.SaveState {
	return t.srv.manager.Snapshot()
}

// Summon asks connected UIs to bring the pet back into view.
func (t *TrayState) Summon() {
	t.srv.hub.Summon()
}

// Report renders the diagnostic report.
func (t *TrayState) Report() string {
	return t.srv.BuildReport()
}

// RequestShutdown triggers a graceful shutdown.
func (t *TrayState) RequestShutdown() {
	t.srv.RequestShutdown()
}
