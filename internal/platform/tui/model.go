package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// inputQueueLimit bounds key presses buffered between two ticks.
const inputQueueLimit = 8

// statusDuration is how long a status line (screenshot saved, ...) stays up.
const statusDuration = 3 * time.Second

// RunRecorder stores finished runs. *storage.Store satisfies it.
type RunRecorder interface {
	RecordRun(run storage.Run) (string, error)
}

// ModelOptions configures a Model. Every field is optional.
type ModelOptions struct {
	Config   core.RuntimeConfig
	Runs     RunRecorder
	Exporter *Exporter
	Logger   *log.Logger
	Player   string

	// DisableClipboard turns ctrl+y off, e.g. for remote sessions where the
	// clipboard would be the server's.
	DisableClipboard bool
}

// Model is the Bubble Tea model that drives one game session.
type Model struct {
	game     *tetris.Game
	screen   *core.Screen
	runs     RunRecorder
	exporter *Exporter
	logger   *log.Logger
	config   core.RuntimeConfig
	player   string
	noClip   bool

	keys  KeyMap
	help  help.Model
	queue *core.InputQueue
	clock *frameClock
	run   *runTracker

	termW, termH int
	status       *statusLine
	quitting     bool
}

// runTracker remembers when the current run started and whether it has
// already been recorded.
type runTracker struct {
	started  time.Time
	recorded bool
}

type statusLine struct {
	text  string
	until time.Time
	now   time.Time
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game *tetris.Game, opts ModelOptions) Model {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "local"
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		runs:     opts.Runs,
		exporter: opts.Exporter,
		logger:   logger,
		config:   cfg,
		player:   player,
		noClip:   opts.DisableClipboard,
		keys:     DefaultKeyMap(),
		help:     h,
		queue:    core.NewInputQueue(inputQueueLimit),
		clock:    &frameClock{},
		run:      &runTracker{},
		termW:    cfg.ScreenW,
		termH:    cfg.ScreenH,
		status:   &statusLine{},
	}
}

// Init seeds the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.termW = msg.Width
		m.termH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues game actions and handles platform keys directly.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyScreen()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.queue.Len() >= inputQueueLimit {
		m.logger.Debug("input queue full, key dropped", "key", msg.String())
	}
	m.queue.Push(m.keys.Action(msg))
	return m, nil
}

// handleTick advances the simulation by the wall time since the last tick.
// At most one queued action is applied per tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.clock.Elapsed(now)
	m.status.now = now

	before := m.game.Phase()
	result := m.game.Step(m.queue.Pop(), elapsed)
	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	if after := m.game.Phase(); after == tetris.PhasePlaying && before != tetris.PhasePlaying {
		m.run.started = now
		m.run.recorded = false
	}

	if result.State.GameOver && !m.run.recorded {
		m.recordRun(now)
		m.run.recorded = true
		// Keys mashed during the last drop must not restart the game
		m.queue.Clear()
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the finished run. Failures are logged; play continues.
func (m Model) recordRun(now time.Time) {
	snap := m.game.Snapshot()
	if m.runs == nil || snap.Score <= 0 {
		return
	}

	id, err := m.runs.RecordRun(storage.Run{
		Player:   m.player,
		Score:    snap.Score,
		Lines:    snap.Lines,
		Level:    snap.Level,
		Seed:     m.config.Seed,
		Duration: now.Sub(m.run.started),
	})
	if err != nil {
		m.logger.Warn("could not record run", "player", m.player, "error", err)
		return
	}
	m.logger.Debug("run recorded", "id", id, "player", m.player, "score", snap.Score)
}

func (m Model) saveScreenshot() {
	if m.exporter == nil {
		m.setStatus("Screenshots are disabled")
		return
	}
	m.game.Render(m.screen)
	base, err := m.exporter.Save(m.screen)
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		m.setStatus("Screenshot failed: " + err.Error())
		return
	}
	// Export time is not game time
	m.clock.Reset()
	m.setStatus(fmt.Sprintf("Saved %s.txt and .png", base))
}

func (m Model) copyScreen() {
	if m.noClip {
		m.setStatus("Clipboard is disabled")
		return
	}
	m.game.Render(m.screen)
	err := CopyToClipboard(m.screen)
	m.clock.Reset()
	if err != nil {
		m.logger.Warn("clipboard copy failed", "error", err)
		m.setStatus("Clipboard unavailable")
		return
	}
	m.setStatus("Board copied to clipboard")
}

func (m Model) setStatus(text string) {
	m.status.text = text
	m.status.until = m.status.now.Add(statusDuration)
}

// footer is the status line while one is active, otherwise the help bar.
func (m Model) footer() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.status.text != "" && m.status.now.Before(m.status.until) {
		return style.Render(m.status.text)
	}
	return style.Render(m.help.View(m.keys))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.footer()
	m.screen.Resize(m.termW, m.termH-lipgloss.Height(footer))
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + footer
}

// Game returns the driven game.
func (m Model) Game() *tetris.Game {
	return m.game
}

// Run starts the Bubble Tea program for a local session.
func Run(game *tetris.Game, opts ModelOptions) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
