// Package app orchestrates all components of statusbus.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"statusbus/internal/adapters/netmon"
	"statusbus/internal/adapters/watcher"
	"statusbus/internal/bus"
	"statusbus/internal/config"
	"statusbus/internal/domain/events"
	"statusbus/internal/observer"
)

// App is the main application struct that wires the registry, the
// broadcasting collaborators, and the reacting listeners together.
type App struct {
	cfg     *config.Config
	version string

	// Core components
	registry    *bus.Registry
	monitor     *netmon.Monitor
	fileWatcher *watcher.Watcher

	// Listener ownership: the app creates them, the app disposes them.
	listeners []*observer.Listener
	panel     *observer.PanelHandler

	// Lifecycle
	mu      sync.Mutex
	running bool
}

// New creates a new App instance.
func New(cfg *config.Config, version string) (*App, error) {
	return &App{
		cfg:      cfg,
		version:  version,
		registry: bus.New(),
	}, nil
}

// Registry returns the app's event registry, so embedders can attach
// their own subjects and listeners.
func (a *App) Registry() *bus.Registry {
	return a.registry
}

// LinkStatus returns the network status the panel last rendered, or
// events.StatusUnknown before the first delivery.
func (a *App) LinkStatus() string {
	if a.panel == nil {
		return events.StatusUnknown
	}
	if s := a.panel.Current(); s != "" {
		return s
	}
	return events.StatusUnknown
}

// Start wires and runs the application, blocking until the context is
// cancelled or a non-looping monitor scenario finishes.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("application is already running")
	}
	a.running = true
	a.mu.Unlock()

	defer a.stop()

	if err := a.wireListeners(); err != nil {
		return err
	}

	if a.cfg.Watcher.Enabled {
		if err := a.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	var monitorDone <-chan struct{}
	if a.cfg.Monitor.Enabled {
		if err := a.startMonitor(ctx); err != nil {
			return fmt.Errorf("failed to start network monitor: %w", err)
		}
		monitorDone = a.monitor.Done()
	}

	log.Info().
		Str("version", a.version).
		Bool("monitor", a.cfg.Monitor.Enabled).
		Bool("watcher", a.cfg.Watcher.Enabled).
		Msg("statusbus running")

	select {
	case <-ctx.Done():
	case <-monitorDone:
		log.Info().Msg("scenario finished")
	}

	return nil
}

// wireListeners creates the built-in listener set: a logging listener
// and a panel listener on the network channel, plus a logging listener
// on the file channel when the watcher is enabled.
func (a *App) wireListeners() error {
	a.panel = observer.NewPanelHandler("network-panel")

	wiring := []struct {
		event   events.EventName
		key     events.PayloadKey
		handler observer.Handler
		enabled bool
	}{
		{events.EventNetworkConnection, events.KeyNetworkStatus, &observer.LogHandler{Name: "network-log"}, true},
		{events.EventNetworkConnection, events.KeyNetworkStatus, a.panel, true},
		{events.EventFileActivity, events.KeyFileStatus, &observer.LogHandler{Name: "file-log"}, a.cfg.Watcher.Enabled},
	}

	for _, w := range wiring {
		if !w.enabled {
			continue
		}
		l, err := observer.NewListener(a.registry, w.event, w.key, w.handler)
		if err != nil {
			return fmt.Errorf("failed to create listener: %w", err)
		}
		a.listeners = append(a.listeners, l)
	}

	return nil
}

func (a *App) startMonitor(ctx context.Context) error {
	scenario := netmon.DefaultScenario()
	if a.cfg.Monitor.ScenarioFile != "" {
		loaded, err := netmon.LoadScenario(a.cfg.Monitor.ScenarioFile)
		if err != nil {
			return err
		}
		scenario = loaded
	}

	subject := observer.NewSubject(a.registry, events.EventNetworkConnection, events.KeyNetworkStatus)
	hold := time.Duration(a.cfg.Monitor.HoldMS) * time.Millisecond
	a.monitor = netmon.NewMonitor(subject, scenario, hold)
	a.monitor.Start(ctx)
	return nil
}

func (a *App) startWatcher(ctx context.Context) error {
	subject := observer.NewSubject(a.registry, events.EventFileActivity, events.KeyFileStatus)
	a.fileWatcher = watcher.New(a.cfg.Watcher.Path, subject)
	return a.fileWatcher.Start(ctx)
}

// stop tears everything down: collaborators first so nothing keeps
// broadcasting, then each listener is disposed exactly once.
func (a *App) stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	a.mu.Unlock()

	if a.monitor != nil {
		a.monitor.Stop()
	}
	if a.fileWatcher != nil {
		a.fileWatcher.Stop()
	}

	for _, l := range a.listeners {
		l.Dispose()
	}
	a.listeners = nil

	log.Info().Msg("statusbus stopped")
}

// IsRunning returns true if the app is running.
func (a *App) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}
