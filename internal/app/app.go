// Package app wires the config, state store, bar, controller and IPC
// server together on the GTK main loop.
package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/veil/internal/bar"
	"github.com/chess10kp/veil/internal/config"
	"github.com/chess10kp/veil/internal/controller"
	"github.com/chess10kp/veil/internal/ipc"
	"github.com/chess10kp/veil/internal/state"
	"github.com/chess10kp/veil/internal/zone"
)

// App is the veil daemon
type App struct {
	config     *config.Config
	configPath string
	running    bool
	sigChan    chan os.Signal
	quit       chan struct{}

	store      *state.Store
	bar        *bar.Bar
	controller *controller.Controller
	ipc        *ipc.Server
}

// NewApp creates the application. configPath is re-read on SIGHUP.
func NewApp(cfg *config.Config, configPath string) (*App, error) {
	store, err := state.Open(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state: %w", err)
	}

	return &App{
		config:     cfg,
		configPath: configPath,
		sigChan:    make(chan os.Signal, 1),
		quit:       make(chan struct{}),
		store:      store,
	}, nil
}

// Run initializes GTK and blocks in the main loop until Quit
func (a *App) Run() error {
	a.running = true

	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go a.handleSignals()

	log.Println("veil starting...")

	gtk.Init(nil)
	if err := a.initialize(); err != nil {
		return err
	}

	gtk.Main()

	if a.ipc != nil {
		a.ipc.Stop()
	}
	signal.Stop(a.sigChan)
	return nil
}

func (a *App) handleSignals() {
	for sig := range a.sigChan {
		log.Printf("Received signal: %v", sig)
		if sig == syscall.SIGHUP {
			glib.IdleAdd(func() bool {
				a.Reload()
				return false
			})
			continue
		}
		glib.IdleAdd(func() bool {
			a.Quit()
			return false
		})
		return
	}
}

func (a *App) initialize() error {
	log.Println("Initializing components...")

	bar.SetupStyles()
	bar.LoadCustomCSS(a.config.Bar.CSSPath)

	st := a.store.State()
	settings, err := a.config.Settings(st.Collapsed)
	if err != nil {
		return fmt.Errorf("failed to build settings: %w", err)
	}

	b, err := bar.New(a.config.Bar, bar.MaxLength(a.config.Bar.MaxLength, a.config.Bar.Output))
	if err != nil {
		return fmt.Errorf("failed to create bar: %w", err)
	}
	b.Preload(settings.Appearance)
	a.bar = b

	a.controller = controller.New(settings, st.Ordering(), controller.Deps{
		Sampler:   b,
		Renderer:  b,
		Performer: bar.NewPulse(b),
		Store:     a.store,
		Scheduler: bar.Scheduler{},
	})

	b.OnActivate(a.activate)
	b.OnStatus(a.statusText)
	b.OnDestroy(a.Quit)
	b.Show()

	if err := a.controller.Start(); err != nil {
		return fmt.Errorf("failed to start controller: %w", err)
	}

	server := ipc.NewServer(a.config.SocketPath, ipc.NewCommands(a.controller, a.onMainLoop))
	if err := server.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
	} else {
		a.ipc = server
	}

	go a.monitorMainLoop()

	log.Println("Initialization complete")
	return nil
}

// onMainLoop runs fn on the GTK main loop and waits for it, unless the
// app quits first
func (a *App) onMainLoop(fn func()) {
	done := make(chan struct{})
	glib.IdleAdd(func() bool {
		defer close(done)
		fn()
		return false
	})

	select {
	case <-done:
	case <-a.quit:
	}
}

// activate handles a primary click on a separator
func (a *App) activate(role zone.Role) {
	switch role {
	case zone.Head:
		collapsed := a.controller.ToggleCollapsed()
		log.Printf("Head clicked, collapsed=%t", collapsed)
	case zone.Body, zone.Tail:
		a.controller.Unidle()
	}
}

func (a *App) statusText() string {
	return FormatStatus(a.controller.Status())
}

// FormatStatus renders a status for the bar popover
func FormatStatus(s controller.Status) string {
	var flags []string
	if s.Collapsed {
		flags = append(flags, "collapsed")
	} else {
		flags = append(flags, "expanded")
	}
	if s.Idling.AlwaysHide {
		flags = append(flags, "idle always")
	} else if s.Idling.Hide {
		flags = append(flags, "idle hide")
	}
	if s.Timeout {
		flags = append(flags, "timed out")
	}
	if s.Ignoring {
		flags = append(flags, "ignoring")
	}

	return fmt.Sprintf("veil: %s\nedge %.0f px, %d ticks", strings.Join(flags, ", "), s.Edge, s.Ticks)
}

// Reload re-reads the config file and applies it to the running controller
func (a *App) Reload() {
	cfg, err := config.LoadAndValidateConfig(a.configPath)
	if err != nil {
		log.Printf("Failed to reload config: %v", err)
		return
	}

	settings, err := cfg.Settings(a.controller.Settings().Collapsed)
	if err != nil {
		log.Printf("Failed to reload config: %v", err)
		return
	}

	a.config = cfg
	a.bar.SetMaxLength(bar.MaxLength(cfg.Bar.MaxLength, cfg.Bar.Output))
	a.bar.Preload(settings.Appearance)
	a.controller.Apply(settings)
	log.Printf("Config reloaded from %s", a.configPath)
}

// Quit stops the controller and leaves the main loop. It must run on the
// main loop.
func (a *App) Quit() {
	if !a.running {
		return
	}
	a.running = false

	log.Println("Shutting down...")

	close(a.quit)

	if a.controller != nil {
		a.controller.Stop()
	}

	gtk.MainQuit()
}

// monitorMainLoop logs when the main loop stops answering
func (a *App) monitorMainLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return
		case <-ticker.C:
		}

		responded := make(chan struct{}, 1)
		glib.IdleAdd(func() bool {
			responded <- struct{}{}
			return false
		})

		select {
		case <-responded:
		case <-a.quit:
			return
		case <-time.After(2 * time.Second):
			log.Printf("[MONITOR] WARNING: GTK main loop appears to be BLOCKED (callback not executed in 2s)")
		}
	}
}
