package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glide/internal/scroll"
	"github.com/dshills/glide/internal/terminal"
)

var statusStyle = tcell.StyleDefault.Reverse(true)

// draw renders the pane and the status line. It does not call Show.
func (app *Application) draw() {
	app.pane.Draw()
	app.drawStatus()
}

func (app *Application) drawStatus() {
	w, h := app.screen.Size()
	if h == 0 {
		return
	}
	y := h - 1

	left := " " + app.title
	if app.message != "" {
		left += "  " + app.message
	}
	right := app.position() + " "

	// The position always fits; the title and message are cut first.
	rightStart := max(0, w-terminal.TextWidth(right))
	x := terminal.DrawText(app.screen, 0, y, rightStart, left, statusStyle)
	for ; x < rightStart; x++ {
		app.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
	x = terminal.DrawText(app.screen, x, y, w, right, statusStyle)
	for ; x < w; x++ {
		app.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
}

// position describes where the view is and what the engine is doing.
func (app *Application) position() string {
	var parts []string
	if flags := stateFlags(app.state); flags != "" {
		parts = append(parts, "["+flags+"]")
	}
	if app.opts.Debug {
		snapshot := app.metrics.Snapshot()
		parts = append(parts, fmt.Sprintf("v=%.1f %v", app.scroller.Velocity(), snapshot.AvgFrameTime().Round(10*time.Microsecond)))
	}

	total := len(app.lines)
	top := min(app.pane.TopLine()+1, total)
	parts = append(parts, fmt.Sprintf("%d/%d", top, total))

	if app.scroller.Limit() > 0 {
		parts = append(parts, fmt.Sprintf("%3d%%", int(math.Round(app.scroller.Progress()*100))))
	} else {
		parts = append(parts, "all")
	}
	return strings.Join(parts, "  ")
}

func stateFlags(st scroll.State) string {
	var flags []string
	if st.Stopped {
		flags = append(flags, "stopped")
	}
	if st.Locked {
		flags = append(flags, "locked")
	}
	if st.Mode != scroll.ModeIdle {
		flags = append(flags, st.Mode.String())
	}
	return strings.Join(flags, " ")
}
