// Package app provides the glide pager. It loads settings, opens the
// document, hosts a Scroller and a Snap in a terminal pane and drives them
// from a single event loop.
package app

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glide/internal/config"
	"github.com/dshills/glide/internal/config/watcher"
	"github.com/dshills/glide/internal/logging"
	"github.com/dshills/glide/internal/schedule"
	"github.com/dshills/glide/internal/scroll"
	"github.com/dshills/glide/internal/snap"
	"github.com/dshills/glide/internal/terminal"
)

const (
	// rowHeight is the pixel size of one line delta. The pane scrolls in
	// rows, so a line is one unit.
	rowHeight = 1

	messageTTL = 2 * time.Second
)

// Application is the pager. Everything except Shutdown must run on the
// goroutine that calls Run.
type Application struct {
	opts Options

	cfg     *config.Config
	log     *logging.Logger
	logFile io.Closer
	metrics *Metrics

	title string
	lines []terminal.Line

	screen   tcell.Screen
	sched    schedule.Scheduler
	loop     *schedule.Loop
	pane     *terminal.Pane
	input    *terminal.Input
	scroller *scroll.Scroller
	snap     *snap.Snap
	watcher  *watcher.Watcher

	state        scroll.State
	message      string
	messageTimer schedule.Timer

	running      atomic.Bool
	done         chan struct{}
	shutdownOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// File is the document to page. Empty or "-" reads Stdin.
	File  string
	Stdin io.Reader

	// LogLevel and LogFile override the config file when set.
	LogLevel string
	LogFile  string

	// Debug adds frame timings to the status line.
	Debug bool

	// Watch reloads the config file when it changes.
	Watch bool

	// NoSnap disables heading snap points.
	NoSnap bool

	// Screen replaces the terminal screen.
	Screen tcell.Screen

	// Scheduler replaces the loop that deferred engine work runs on.
	Scheduler schedule.Scheduler
}

// New loads the configuration and the document. The screen is set up by
// Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
	}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes the components that do not need a screen.
func (app *Application) bootstrap() error {
	cfg, err := app.loadConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	if err := app.setupLogging(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	if err := app.loadDocument(); err != nil {
		return &InitError{Component: "document", Err: err}
	}

	if app.opts.Scheduler != nil {
		app.sched = app.opts.Scheduler
	} else {
		app.loop = schedule.NewLoop(schedule.DefaultLoopBuffer)
		app.sched = app.loop
	}

	app.log.Info("loaded %s: %d lines, config %q", app.title, len(app.lines), cfg.Path)
	return nil
}

func (app *Application) loadConfig() (*config.Config, error) {
	return config.Load(app.opts.ConfigPath)
}

func (app *Application) setupLogging() error {
	path := app.cfg.Log.File
	if app.opts.LogFile != "" {
		path = app.opts.LogFile
	}

	var root *logging.Logger
	if path == "" {
		root = logging.Nop()
	} else {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		root = logging.New(logging.Config{Level: app.logLevel(app.cfg), Output: f, Prefix: "glide"})
	}
	app.log = root.WithComponent("app")
	return nil
}

// logLevel resolves the level from the command line or cfg.
func (app *Application) logLevel(cfg *config.Config) logging.Level {
	if app.opts.Debug {
		return logging.LevelDebug
	}
	if app.opts.LogLevel != "" {
		if level, err := logging.ParseLevel(app.opts.LogLevel); err == nil {
			return level
		}
	}
	return cfg.LogLevel()
}

func (app *Application) loadDocument() error {
	var (
		data []byte
		err  error
	)
	switch app.opts.File {
	case "", "-":
		app.title = "stdin"
		if app.opts.Stdin != nil {
			data, err = io.ReadAll(app.opts.Stdin)
		}
	default:
		app.title = filepath.Base(app.opts.File)
		data, err = os.ReadFile(app.opts.File)
	}
	if err != nil {
		return NewOperationError("open", app.opts.File, err)
	}
	app.lines = terminal.ParseText(string(data))
	return nil
}

// Run sets up the screen and runs the event loop until quit or Shutdown.
// A quit key returns ErrQuit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.attach(); err != nil {
		return err
	}
	defer app.detach()

	if app.opts.Watch {
		app.startWatcher()
	}
	return app.eventLoop()
}

// attach initializes the screen and builds the view over it.
func (app *Application) attach() error {
	screen := app.opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	screen.EnableMouse()
	screen.HideCursor()
	app.screen = screen

	w, h := screen.Size()
	app.pane = terminal.NewPane(screen, app.sched, viewRegion(w, h))
	app.pane.SetLines(app.lines)
	app.input = terminal.NewInput(app.pane)

	scrollOpts, err := app.scrollOptions(app.cfg)
	if err != nil {
		screen.Fini()
		return &InitError{Component: "scroller", Err: err}
	}
	app.scroller = scroll.New(app.pane,
		scroll.WithOptions(scrollOpts),
		scroll.WithScheduler(app.sched),
		scroll.WithEventsTarget(app.input),
		scroll.WithLogger(app.log),
		scroll.WithStateHook(app.onState),
	)
	app.state = app.scroller.State()
	app.pane.SetClassName(app.state.ClassName())

	if app.cfg.Snap.Enabled && !app.opts.NoSnap {
		snapOpts, err := app.cfg.SnapOptions()
		if err != nil {
			app.scroller.Destroy()
			screen.Fini()
			return &InitError{Component: "snap", Err: err}
		}
		app.snap = snap.New(app.scroller,
			snap.WithOptions(snapOpts),
			snap.WithLogger(app.log),
			snap.OnSnapStart(app.onSnap),
		)
		for _, el := range app.pane.Headings() {
			app.snap.AddElement(el, snap.ElementOptions{})
		}
	}

	app.log.Debug("view attached: %dx%d, limit %.0f", w, h, app.scroller.Limit())
	return nil
}

// detach tears the view down in reverse order and restores the terminal.
func (app *Application) detach() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.log.Warn("closing watcher: %v", err)
		}
		app.watcher = nil
	}
	if app.messageTimer != nil {
		app.messageTimer.Stop()
		app.messageTimer = nil
	}
	if app.snap != nil {
		app.snap.Destroy()
		app.snap = nil
	}
	if app.scroller != nil {
		app.scroller.Destroy()
		app.scroller = nil
	}
	if app.loop != nil {
		app.loop.Close()
	}
	if app.screen != nil {
		app.screen.Fini()
		app.screen = nil
	}

	snapshot := app.metrics.Snapshot()
	app.log.Info("stopped after %d frames, avg %v, max %v, %d inputs (%d dropped)",
		snapshot.FrameCount, snapshot.AvgFrameTime(), snapshot.MaxFrameTime(),
		snapshot.InputCount, snapshot.InputDropped)
}

// Shutdown asks a running event loop to return. It is safe to call from
// any goroutine and more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		close(app.done)
	})
}

// Close releases compiled easing scripts and the log file. Call it after
// Run returns.
func (app *Application) Close() {
	if app.cfg != nil {
		app.cfg.Close()
	}
	if app.logFile != nil {
		app.logFile.Close()
		app.logFile = nil
	}
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Title returns the document name shown in the status line.
func (app *Application) Title() string {
	return app.title
}

// scrollOptions converts cfg for the terminal pane.
func (app *Application) scrollOptions(cfg *config.Config) (scroll.Options, error) {
	opts, err := cfg.ScrollOptions()
	if err != nil {
		return scroll.Options{}, err
	}
	opts.LineHeight = rowHeight
	return opts, nil
}

func (app *Application) startWatcher() {
	if app.cfg.Path == "" {
		app.log.Debug("no config file to watch")
		return
	}
	w, err := watcher.New(app.cfg.Path, watcher.WithLogger(app.log))
	if err != nil {
		app.log.Warn("watching %s: %v", app.cfg.Path, err)
		return
	}
	app.watcher = w
}

// reload reads the config again and applies the behavior settings. On
// failure the running settings stay in place.
func (app *Application) reload() error {
	cfg, err := app.loadConfig()
	if err == nil {
		err = app.apply(cfg)
		if err != nil {
			cfg.Close()
		}
	}
	app.metrics.RecordReload(err)
	if err != nil {
		app.log.Warn("reload failed: %v", err)
		app.notify("config: " + err.Error())
		return NewOperationError("reload", app.opts.ConfigPath, err)
	}

	old := app.cfg
	app.cfg = cfg
	old.Close()

	app.log.Info("config reloaded from %q", cfg.Path)
	app.notify("config reloaded")
	return nil
}

// apply pushes cfg into the running scroller and snap engine.
func (app *Application) apply(cfg *config.Config) error {
	scrollOpts, err := app.scrollOptions(cfg)
	if err != nil {
		return err
	}
	snapOpts, err := cfg.SnapOptions()
	if err != nil {
		return err
	}

	if app.scroller != nil {
		app.scroller.SetOptions(scrollOpts)
	}
	if app.snap != nil {
		app.snap.SetOptions(snapOpts)
		if cfg.Snap.Enabled {
			app.snap.Start()
		} else {
			app.snap.Stop()
		}
	}
	app.log.SetLevel(app.logLevel(cfg))
	return nil
}

func (app *Application) onState(st scroll.State) {
	app.state = st
	app.pane.SetClassName(st.ClassName())
}

func (app *Application) onSnap(it snap.Item) {
	if el, ok := it.UserData.(*terminal.LineElement); ok {
		app.log.Debug("snap to %q", el.Line().Text)
	}
}

// notify shows msg in the status line for a while.
func (app *Application) notify(msg string) {
	app.message = msg
	if app.messageTimer != nil {
		app.messageTimer.Stop()
	}
	app.messageTimer = app.sched.AfterFunc(messageTTL, func() {
		app.message = ""
		app.messageTimer = nil
	})
}

// viewRegion leaves the last row for the status line.
func viewRegion(w, h int) terminal.Region {
	return terminal.Region{Width: w, Height: max(0, h-1)}
}
