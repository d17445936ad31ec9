package app

import (
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glide/internal/config/watcher"
	"github.com/dshills/glide/internal/scroll"
	"github.com/dshills/glide/internal/terminal"
)

const (
	targetFPS = 60
	frameTime = time.Second / targetFPS

	inputBuffer = 100
)

// eventLoop is the main application loop. Frames, terminal input, engine
// callbacks and config changes are all handled on this goroutine.
func (app *Application) eventLoop() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	events := app.startInputPolling()

	frameTicker := time.NewTicker(frameTime)
	defer frameTicker.Stop()

	app.frame(time.Now())

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleEvent(ev); err != nil {
				return err
			}

		case fn := <-app.loopC():
			fn()

		case now := <-frameTicker.C:
			app.frame(now)

		case ev, ok := <-app.watchEvents():
			if !ok {
				app.watcher = nil
				continue
			}
			app.log.Debug("config %s: %s", ev.Op, ev.Path)
			if ev.Op.Has(watcher.OpRemove) && !ev.Op.Has(watcher.OpCreate) {
				continue
			}
			_ = app.reload()

		case werr, ok := <-app.watchErrors():
			if ok {
				app.log.Warn("config watcher: %v", werr)
			}
		}
	}
}

// startInputPolling starts a goroutine that polls the screen for events.
// PollEvent blocks; Fini on the screen unblocks it with nil.
func (app *Application) startInputPolling() <-chan tcell.Event {
	events := make(chan tcell.Event, inputBuffer)
	screen := app.screen

	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
				app.metrics.RecordInput()
			case <-app.done:
				return
			default:
				app.metrics.RecordInputDropped()
			}
		}
	}()

	return events
}

func (app *Application) loopC() <-chan func() {
	if app.loop == nil {
		return nil
	}
	return app.loop.C()
}

func (app *Application) watchEvents() <-chan watcher.Event {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Events()
}

func (app *Application) watchErrors() <-chan error {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Errors()
}

// frame advances the engine to now and redraws.
func (app *Application) frame(now time.Time) {
	start := time.Now()
	app.scroller.Advance(now)
	app.draw()
	app.screen.Show()
	app.metrics.RecordFrame(time.Since(start))
}

// handleEvent dispatches one terminal event. It returns ErrQuit when the
// user asks to leave.
func (app *Application) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		app.screen.Sync()
		app.pane.SetRegion(viewRegion(w, h))
		app.scroller.Resize()
		app.log.Debug("resized to %dx%d", w, h)
	case *tcell.EventKey:
		return app.handleKey(ev)
	case *tcell.EventMouse:
		app.input.Handle(ev)
	}
	return nil
}

func (app *Application) handleKey(ev *tcell.EventKey) error {
	page := float64(max(1, app.pane.Region().Height-1))

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyDown:
		app.scrollBy(1)
	case tcell.KeyUp:
		app.scrollBy(-1)
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		app.scrollBy(page)
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		app.scrollBy(-page)
	case tcell.KeyHome:
		app.scroller.ScrollTo(scroll.Selector("top"))
	case tcell.KeyEnd:
		app.scroller.ScrollTo(scroll.Selector("end"))
	case tcell.KeyRune:
		return app.handleRune(ev.Rune(), page)
	}
	return nil
}

func (app *Application) handleRune(r rune, page float64) error {
	switch r {
	case 'q', 'Q':
		return ErrQuit
	case 'j':
		app.scrollBy(1)
	case 'k':
		app.scrollBy(-1)
	case ' ', 'f':
		app.scrollBy(page)
	case 'b':
		app.scrollBy(-page)
	case 'd':
		app.scrollBy(page / 2)
	case 'u':
		app.scrollBy(-page / 2)
	case 'g':
		app.scroller.ScrollTo(scroll.Selector("top"))
	case 'G':
		app.scroller.ScrollTo(scroll.Selector("end"))
	case 'n':
		app.jumpHeading(1)
	case 'N', 'p':
		app.jumpHeading(-1)
	case 's':
		app.toggleStopped()
	case 'r':
		_ = app.reload()
	}
	return nil
}

// scrollBy animates delta rows past the current target so repeated keys
// accumulate.
func (app *Application) scrollBy(delta float64) {
	app.scroller.ScrollTo(scroll.Offset(app.scroller.Destination() + delta))
}

// jumpHeading animates to the next (dir > 0) or previous heading relative
// to the current target.
func (app *Application) jumpHeading(dir int) {
	target := app.scroller.Destination()
	var pick *terminal.LineElement
	for _, h := range app.pane.Headings() {
		at := float64(h.Index())
		if dir > 0 && at > target+0.5 {
			pick = h
			break
		}
		if dir < 0 && at < target-0.5 {
			pick = h
		}
	}
	if pick == nil {
		return
	}
	app.scroller.ScrollTo(scroll.ElementTarget(pick))
}

func (app *Application) toggleStopped() {
	if app.scroller.IsStopped() {
		app.scroller.Start()
		if app.snap != nil && app.cfg.Snap.Enabled {
			app.snap.Start()
		}
		app.notify("scrolling resumed")
		return
	}
	app.scroller.Stop()
	if app.snap != nil {
		app.snap.Stop()
	}
	app.notify("scrolling stopped")
}
