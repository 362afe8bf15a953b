// Package tui runs the game in a terminal through Bubble Tea. It owns the
// clock, maps keys to actions and turns the screen buffer into styled text.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into elapsed milliseconds for the engine.
type frameClock struct {
	last time.Time
	rem  time.Duration // sub-millisecond remainder carried to the next frame
}

// Elapsed returns the whole milliseconds since the previous call.
// The first call, and any call with a timestamp going backwards, returns 0.
func (c *frameClock) Elapsed(now time.Time) uint64 {
	if c.last.IsZero() || now.Before(c.last) {
		c.last = now
		c.rem = 0
		return 0
	}
	d := now.Sub(c.last) + c.rem
	c.last = now
	ms := d / time.Millisecond
	c.rem = d - ms*time.Millisecond
	return uint64(ms)
}

// Reset forgets the previous timestamp, e.g. after a pause in ticking.
func (c *frameClock) Reset() {
	c.last = time.Time{}
	c.rem = 0
}
