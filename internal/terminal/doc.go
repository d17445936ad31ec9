// Package terminal hosts the scroll engine in a tcell screen.
//
// A Pane is a host.Container over a list of text lines where one row is one
// scroll unit. Input turns tcell mouse events into gesture events: wheel
// buttons become line-mode wheel deltas and a left-button drag becomes a
// touch sequence. When the engine leaves an event alone, Input applies the
// native behavior itself by moving the pane directly.
package terminal
