package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/hazzzi/maenggu-run/internal/buildinfo"
	"github.com/hazzzi/maenggu-run/internal/config"
	"github.com/hazzzi/maenggu-run/internal/daemon/display"
	"github.com/hazzzi/maenggu-run/internal/daemon/events"
	"github.com/hazzzi/maenggu-run/internal/daemon/server"
	"github.com/hazzzi/maenggu-run/internal/daemon/tray"
	"github.com/hazzzi/maenggu-run/internal/daemon/watcher"
	"github.com/hazzzi/maenggu-run/internal/models"
	"github.com/hazzzi/maenggu-run/internal/platform"
	"github.com/hazzzi/maenggu-run/internal/snack"
	"github.com/hazzzi/maenggu-run/internal/store"
	"github.com/hazzzi/maenggu-run/internal/telemetry"
)

type runOptions struct {
	foreground bool
	port       *int
	logLevel   string
}

// daemon holds every long-lived component of the process.
type daemon struct {
	settings  *models.Settings
	logger    *slog.Logger
	telemetry telemetry.Client
	store     *store.Store
	manager   *snack.Manager
	hub       *events.Hub
	tracker   *display.Tracker
	watcher   *watcher.Watcher
	server    *server.Server

	startedAt time.Time
	cancel    context.CancelFunc
	serveErr  chan error
}

func run(opts runOptions) error {
	d, err := newDaemon(opts)
	if err != nil {
		return err
	}

	if opts.foreground {
		d.logger.Info("running in foreground mode (no system tray)")
		return d.runForeground()
	}
	d.logger.Info("running in background mode (with system tray)")
	d.runWithTray()
	return nil
}

// newDaemon loads settings and state and builds every component. Nothing
// is served until start.
func newDaemon(opts runOptions) (*daemon, error) {
	if err := config.EnsureAppDir(); err != nil {
		return nil, fmt.Errorf("failed to create app directory: %w", err)
	}

	settings, err := config.EnsureSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if opts.port != nil {
		settings.Server.Port = *opts.port
	}
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}

	logger := config.NewLogger(os.Stderr, settings.LogLevel).With("app", "maenggud")

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return nil, fmt.Errorf("daemon already running on port %d (PID %d)", info.Port, info.PID)
	}

	tel, err := telemetry.New(settings.Telemetry, logger)
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		tel = telemetry.Nop{}
	}

	st, err := store.Open()
	if err != nil {
		return nil, err
	}

	hub := events.NewHub()
	mgr := snack.NewManager(st,
		snack.WithNotifier(hub),
		snack.WithLogger(logger.With("component", "snack")),
		snack.WithTelemetry(tel),
	)
	state := mgr.Load()
	logger.Info("save loaded", "path", st.Path(), "snacks", state.Snacks)

	adapter := platform.New(settings.Display.Monitors)
	tracker := display.NewTracker(adapter, hub, settings.Display.PollInterval,
		logger.With("component", "display"), tel)

	w, err := watcher.New(st, mgr, logger.With("component", "watcher"))
	if err != nil {
		return nil, fmt.Errorf("failed to create save watcher: %w", err)
	}

	srv, err := server.New(server.Deps{
		Manager:  mgr,
		Hub:      hub,
		Tracker:  tracker,
		Store:    st,
		Settings: settings,
		Logger:   logger,
	})
	if err != nil {
		w.Stop()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &daemon{
		settings:  settings,
		logger:    logger,
		telemetry: tel,
		store:     st,
		manager:   mgr,
		hub:       hub,
		tracker:   tracker,
		watcher:   w,
		server:    srv,
		serveErr:  make(chan error, 1),
	}, nil
}

// start publishes the daemon info and begins serving.
func (d *daemon) start() error {
	d.startedAt = time.Now()

	info := models.NewDaemonInfo(d.server.Host(), d.server.Port(), os.Getpid())
	if err := config.SaveDaemonInfo(info); err != nil {
		return fmt.Errorf("failed to write daemon info: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	go d.tracker.Run(ctx)

	if err := d.watcher.Start(); err != nil {
		d.logger.Warn("save watcher unavailable", "error", err)
	} else {
		go d.trackReloads(ctx)
	}

	go func() {
		d.serveErr <- d.server.Serve()
	}()

	d.telemetry.Capture(telemetry.EventDaemonStarted, map[string]any{
		"adapter": d.tracker.Adapter().Name(),
		"os":      runtime.GOOS,
	})
	d.logger.Info("daemon started", "port", d.server.Port(), "pid", os.Getpid(), "version", buildinfo.Version)
	return nil
}

// wait blocks until a signal, a shutdown request or a server failure.
func (d *daemon) wait(sigCh <-chan os.Signal) {
	select {
	case sig := <-sigCh:
		d.logger.Info("received signal, shutting down", "signal", sig.String())
	case <-d.server.ShutdownRequested():
	case err := <-d.serveErr:
		if err != nil {
			d.logger.Error("server error", "error", err)
		}
	}
}

// stop tears everything down and records the session playtime.
func (d *daemon) stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.server.Stop()
	d.watcher.Stop()

	if !d.startedAt.IsZero() {
		d.manager.RecordPlaytime(uint32(time.Since(d.startedAt).Seconds()))
	}

	d.hub.Close()
	if err := d.telemetry.Close(); err != nil {
		d.logger.Debug("telemetry close", "error", err)
	}
	if err := config.RemoveDaemonInfo(); err != nil && !errors.Is(err, os.ErrNotExist) {
		d.logger.Warn("failed to remove daemon info", "error", err)
	}

	d.logger.Info("daemon stopped")
}

// runForeground runs the daemon without a system tray, blocking on signals.
func (d *daemon) runForeground() error {
	if err := d.start(); err != nil {
		d.stop()
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	d.wait(sigCh)
	d.stop()
	return nil
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func (d *daemon) runWithTray() {
	onStart := func() {
		if err := d.start(); err != nil {
			d.logger.Error("failed to start", "error", err)
			tray.Quit()
			return
		}

		go d.forwardToTray()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			d.wait(sigCh)
			tray.Quit()
		}()
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(server.NewTrayState(d.server), d.logger, onStart, d.stop)
}

// trackReloads reports saves that were replaced behind the daemon's back.
func (d *daemon) trackReloads(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case state := <-d.watcher.Reloads():
			d.telemetry.Capture(telemetry.EventSaveReloaded, map[string]any{"snacks": state.Snacks})
		}
	}
}

// forwardToTray keeps the tray menu in step with the snack total.
func (d *daemon) forwardToTray() {
	ch, cancel := d.hub.Listen(events.DefaultBuffer)
	defer cancel()

	for e := range ch {
		if e.Type == events.SnackUpdate {
			tray.Update(d.manager.Snapshot())
		}
	}
}
