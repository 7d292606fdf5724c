package app

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"sync"

	"github.com/jhirn/doom-emacs/internal/autoload"
	"github.com/jhirn/doom-emacs/internal/config"
	"github.com/jhirn/doom-emacs/internal/config/watcher"
	"github.com/jhirn/doom-emacs/internal/event"
	"github.com/jhirn/doom-emacs/internal/initscript"
	"github.com/jhirn/doom-emacs/internal/location"
	"github.com/jhirn/doom-emacs/internal/mode"
	"github.com/jhirn/doom-emacs/internal/modules"
)

// Options configures application startup.
type Options struct {
	// Root is the distribution tree root. Empty means detect from the
	// environment (DOOMDIR, then ~/.doom).
	Root string

	// Host overrides the host identifier used for namespaced
	// directories. Empty means os.Hostname.
	Host string

	// ConfigFile overrides the settings file path.
	ConfigFile string

	// InitScript overrides the init.lua path.
	InitScript string

	// LogOutput overrides where diagnostics are written (default stderr).
	LogOutput io.Writer

	// Watch enables live reload of the settings file.
	Watch bool
}

// Application is the assembled bootstrap layer.
type Application struct {
	locations location.Registry
	settings  config.Settings
	logger    *Logger
	bus       *event.Bus
	modes     *mode.Registry
	table     *autoload.Table
	disp      *autoload.Dispatcher
	loader    *modules.Loader

	dispSubID string
	watch     *watcher.Watcher

	mu       sync.Mutex
	shutdown bool
}

// New builds and boots an application. Initialization order follows the
// dependency chain: locations, settings, logging, GC tuning, modes,
// rules, init script, dispatcher, bus subscription, module loading,
// optional config watch. On failure, everything initialized so far is
// torn back down.
func New(opts Options) (*Application, error) {
	b := &bootstrapper{app: &Application{}, opts: opts}
	if err := b.bootstrap(); err != nil {
		b.cleanup()
		return nil, err
	}
	return b.app, nil
}

// Locations returns the resolved directory layout.
func (a *Application) Locations() location.Registry { return a.locations }

// Settings returns the resolved settings snapshot from boot (or the
// latest successful reload when watching).
func (a *Application) Settings() config.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// Bus returns the event bus. The embedding editor publishes file
// lifecycle events here.
func (a *Application) Bus() *event.Bus { return a.bus }

// Modes returns the minor-mode registry. The embedding editor registers
// mode implementations here, normally before files are opened.
func (a *Application) Modes() *mode.Registry { return a.modes }

// ModuleLoader returns the loader used for manifest-driven modules.
// Constructors must be registered before calling LoadModules.
func (a *Application) ModuleLoader() *modules.Loader { return a.loader }

// Logger returns the application logger.
func (a *Application) Logger() *Logger { return a.logger }

// Dispatcher returns the autoload dispatcher currently subscribed to
// the bus. Live reload can replace it.
func (a *Application) Dispatcher() *autoload.Dispatcher {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.disp
}

// OpenFile publishes a file-opened event, driving autoload dispatch and
// any other subscribers. remoteMarker is the remote-authority prefix for
// non-local paths, or empty.
func (a *Application) OpenFile(ctx context.Context, path, remoteMarker string) error {
	evt := event.FileOpened{
		Path:         path,
		RemoteMarker: remoteMarker,
		Metadata:     event.NewMetadata("app"),
	}
	return a.bus.PublishFileOpened(ctx, evt)
}

// LoadModules reads the module manifest and initializes every enabled
// entry in order.
func (a *Application) LoadModules(ctx context.Context) error {
	manifest, err := modules.LoadManifest(modules.ManifestFile(a.locations))
	if err != nil {
		return err
	}
	if err := a.loader.Load(ctx, manifest); err != nil {
		return err
	}
	a.logger.Info("modules loaded: %d", len(a.loader.Loaded()))
	return nil
}

// Shutdown tears the application down: config watch first, then loaded
// modules in reverse order. Safe to call more than once.
func (a *Application) Shutdown() {
	a.mu.Lock()
	if a.shutdown {
		a.mu.Unlock()
		return
	}
	a.shutdown = true
	a.mu.Unlock()

	if a.watch != nil {
		if err := a.watch.Close(); err != nil {
			a.logger.Warn("closing config watcher: %v", err)
		}
	}
	if err := a.loader.Shutdown(context.Background()); err != nil {
		a.logger.Warn("module shutdown: %v", err)
	}
}

// reloadConfig rebuilds settings and the rule table from the settings
// file and swaps the dispatcher's bus subscription to the new table.
// Called from the config watcher goroutine.
func (a *Application) reloadConfig(path string) error {
	settings, err := config.LoadFile(a.locations, path)
	if err != nil {
		return err
	}

	table := autoload.NewTable()
	if err := config.BuildRules(table, a.modes, settings.Autoload); err != nil {
		return err
	}

	disp := autoload.NewDispatcher(table, autoload.WithReporter(&diagnostics{logger: a.logger}))
	subID, err := a.bus.SubscribeFileOpened(disp.HandleFileOpened)
	if err != nil {
		return err
	}

	a.mu.Lock()
	oldSub := a.dispSubID
	a.settings = settings
	a.table = table
	a.disp = disp
	a.dispSubID = subID
	a.mu.Unlock()

	if err := a.bus.Unsubscribe(oldSub); err != nil {
		a.logger.Warn("dropping stale dispatcher subscription: %v", err)
	}

	debug.SetGCPercent(settings.GCPercent)
	a.logger.Info("configuration reloaded: %d autoload rules", table.Len())
	return nil
}

// diagnostics routes isolated dispatch failures to the logger. It is
// the diagnostic sink required by the dispatcher's failure contract.
type diagnostics struct {
	logger *Logger
}

// Report implements autoload.Reporter.
func (d *diagnostics) Report(err *autoload.ActionError) {
	log := d.logger.WithField("rule", err.Index).WithField("path", err.Path)
	if err.Stack != "" {
		log.Error("autoload action panicked: %v", err.Err)
		log.Debug("panic stack:\n%s", err.Stack)
		return
	}
	log.Error("autoload action failed: %v", err.Err)
}

// bootstrapper initializes application components with cleanup on
// failure.
type bootstrapper struct {
	app      *Application
	opts     Options
	cleanups []func()
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"locations", b.initLocations},
		{"settings", b.initSettings},
		{"logging", b.initLogging},
		{"gc", b.initGC},
		{"modes", b.initModes},
		{"rules", b.initRules},
		{"init script", b.initScript},
		{"dispatcher", b.initDispatcher},
		{"module loader", b.initModuleLoader},
		{"config watch", b.initWatch},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("bootstrap %s: %w", step.name, err)
		}
	}
	return nil
}

func (b *bootstrapper) cleanup() {
	for i := len(b.cleanups) - 1; i >= 0; i-- {
		b.cleanups[i]()
	}
}

func (b *bootstrapper) initLocations() error {
	if b.opts.Root != "" && b.opts.Host != "" {
		b.app.locations = location.New(b.opts.Root, b.opts.Host)
	} else {
		detected, err := location.Detect()
		if err != nil {
			return err
		}
		if b.opts.Root != "" {
			detected = location.New(b.opts.Root, detected.Host)
		}
		if b.opts.Host != "" {
			detected = location.New(detected.Root, b.opts.Host)
		}
		b.app.locations = detected
	}
	return b.app.locations.EnsureDirs()
}

func (b *bootstrapper) initSettings() error {
	path := b.opts.ConfigFile
	if path == "" {
		path = config.File(b.app.locations)
	}
	settings, err := config.LoadFile(b.app.locations, path)
	if err != nil {
		return err
	}
	b.app.settings = settings
	return nil
}

func (b *bootstrapper) initLogging() error {
	b.app.logger = NewLogger(ParseLogLevel(b.app.settings.LogLevel), b.opts.LogOutput)
	b.app.logger.Debug("booting from %s on host %s", b.app.locations.Root, b.app.locations.Host)
	return nil
}

func (b *bootstrapper) initGC() error {
	// Collection pauses during bootstrap buy nothing; disable the GC
	// until loading settles, then apply the configured steady state.
	prev := debug.SetGCPercent(-1)
	b.cleanups = append(b.cleanups, func() { debug.SetGCPercent(prev) })
	return nil
}

func (b *bootstrapper) initModes() error {
	b.app.modes = mode.NewRegistry()
	return nil
}

func (b *bootstrapper) initRules() error {
	b.app.table = autoload.NewTable()
	return config.BuildRules(b.app.table, b.app.modes, b.app.settings.Autoload)
}

func (b *bootstrapper) initScript() error {
	path := b.opts.InitScript
	if path == "" {
		path = initscript.File(b.app.locations)
	}
	runner := initscript.New(b.app.table, b.app.modes, &b.app.settings)
	if err := runner.Run(path); err != nil {
		return err
	}
	// The script may have changed the log level or GC target.
	b.app.logger = NewLogger(ParseLogLevel(b.app.settings.LogLevel), b.opts.LogOutput)
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	b.app.bus = event.NewBus()
	b.app.disp = autoload.NewDispatcher(b.app.table,
		autoload.WithReporter(&diagnostics{logger: b.app.logger}))

	subID, err := b.app.bus.SubscribeFileOpened(b.app.disp.HandleFileOpened)
	if err != nil {
		return err
	}
	b.app.dispSubID = subID

	// Bootstrap is over once the dispatcher is serving; restore the GC
	// to its configured steady state.
	debug.SetGCPercent(b.app.settings.GCPercent)
	b.app.logger.Info("autoload dispatcher serving %d rules", b.app.table.Len())
	return nil
}

func (b *bootstrapper) initModuleLoader() error {
	b.app.loader = modules.NewLoader()
	return nil
}

func (b *bootstrapper) initWatch() error {
	if !b.opts.Watch {
		return nil
	}

	path := b.opts.ConfigFile
	if path == "" {
		path = config.File(b.app.locations)
	}

	app := b.app
	w := watcher.New(path, app.reloadConfig,
		watcher.WithErrorHandler(func(err error) {
			app.logger.Warn("config reload: %v", err)
		}))
	if err := w.Start(); err != nil {
		return err
	}
	app.watch = w
	b.cleanups = append(b.cleanups, func() { w.Close() })
	return nil
}
