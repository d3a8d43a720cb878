package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/olivier-w/goo/internal/scene"
	"github.com/olivier-w/goo/internal/util"
	"github.com/olivier-w/goo/internal/visualizer"
)

// Rows of the view that are not canvas: blank, header, blank above it and
// blank, timeline, status, blank, help plus the trailing newline below it.
const (
	canvasTop    = 3
	chromeRows   = canvasTop + 6
	leftMargin   = 2
	minCanvasCol = 10
	minCanvasRow = 4
)

// Model is the Bubbletea model for the goo TUI.
type Model struct {
	director *scene.Director
	modes    []visualizer.Visualizer
	mode     int
	interval time.Duration
	logger   *zap.Logger

	frame    scene.Frame
	hasFrame bool
	paused   bool
	follow   FollowMode
	loop     LoopMode
	width    int
	height   int
	quitting bool
	err      error

	spinner  spinner.Model
	progress progress.Model
}

// New creates a Model driving d at fps frames per second.
func New(d *scene.Director, fps int, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fps <= 0 {
		fps = scene.FPS
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	p := progress.New(
		progress.WithScaledGradient("#7B61FF", "#00C2FF"),
		progress.WithoutPercentage(),
	)

	return Model{
		director: d,
		modes:    visualizer.Modes(d.Grid().Bounds, fps),
		interval: time.Second / time.Duration(fps),
		logger:   logger.Named("ui"),
		spinner:  s,
		progress: p,
	}
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), m.spinner.Tick, tea.SetWindowTitle(windowTitle(false)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		switch msg.String() {
		case " ":
			m.paused = !m.paused
			return m, tea.SetWindowTitle(windowTitle(m.paused))
		case "v":
			m.mode = (m.mode + 1) % len(m.modes)
			m.render()
		case "f":
			m.follow = m.follow.Toggle()
			if m.follow == FollowOff {
				m.director.ClearFollow()
			}
		case "l":
			m.loop = m.loop.Next()
		case "r":
			m.director.Reset()
			m.logger.Debug("restart requested")
			return m.advance()
		}
		return m, nil

	case tea.MouseMsg:
		if m.follow == FollowOn && msg.Action == tea.MouseActionMotion {
			m.steer(msg.X, msg.Y)
		}
		return m, nil

	case tickMsg:
		if m.paused {
			return m, tickCmd(m.interval)
		}
		next, cmd := m.advance()
		if next.quitting {
			return next, cmd
		}
		return next, tea.Batch(cmd, tickCmd(m.interval))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		m.render()
		return m, nil
	}

	return m, nil
}

// advance steps the director once and renders the result.
func (m Model) advance() (Model, tea.Cmd) {
	frame, err := m.director.Step(context.Background())
	if err != nil {
		m.logger.Error("step failed", zap.Error(err))
		m.err = err
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	m.frame = frame
	m.hasFrame = true
	m.render()

	if m.loop == LoopOnce && (frame.Tick+1)%m.director.LoopTicks() == 0 {
		m.paused = true
		return m, tea.SetWindowTitle(windowTitle(true))
	}
	return m, nil
}

// steer maps a terminal cell to the world and makes the body chase it.
func (m Model) steer(x, y int) {
	cols, rows := m.canvasSize()
	col, row := x-leftMargin, y-canvasTop
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	p := m.modes[m.mode].Viewport().CellToWorld(col, row)
	m.director.SetFollow(p.X, p.Y)
}

// canvasSize returns the canvas size in cells for the current window.
func (m Model) canvasSize() (cols, rows int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return max(w-2*leftMargin, minCanvasCol), max(h-chromeRows, minCanvasRow)
}

// render redraws the active mode for the current frame and window.
func (m Model) render() {
	if !m.hasFrame {
		return
	}
	cols, rows := m.canvasSize()
	m.modes[m.mode].Update(m.frame, cols, rows)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + m.headerLine() + "\n")
	b.WriteString("\n")

	cols, rows := m.canvasSize()
	canvas := m.modes[m.mode].View()
	if canvas == "" {
		canvas = strings.TrimSuffix(strings.Repeat(spaces(cols)+"\n", rows), "\n")
	}
	for _, line := range strings.Split(canvas, "\n") {
		b.WriteString(strings.Repeat(" ", leftMargin) + canvasStyle.Render(line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + m.timelineLine() + "\n")
	b.WriteString("  " + m.statusLine() + "\n")
	b.WriteString("\n")
	b.WriteString("  " + helpStyle.Render(helpText(m.follow == FollowOn)) + "\n")

	view := b.String()
	if h := lipgloss.Height(view); h < m.height {
		view += strings.Repeat("\n", m.height-h)
	}
	return view
}

func (m Model) headerLine() string {
	phase := "starting"
	if m.hasFrame {
		phase = m.frame.Phase.String()
	}
	activity := m.spinner.View()
	if m.paused {
		activity = "❚❚"
	}
	return fmt.Sprintf("%s %s %s  %s",
		headerStyle.Render("goo"),
		activity,
		phaseStyle.Render(phase),
		helpStyle.Render(m.director.Script().String()+" · "+m.modes[m.mode].Name()))
}

func (m Model) timelineLine() string {
	total := m.director.LoopDuration()
	return fmt.Sprintf("%s %s %s",
		timeStyle.Render(util.FormatDuration(m.frame.Elapsed)),
		m.progress.ViewAs(m.frame.Progress),
		timeStyle.Render(util.FormatDuration(total)))
}

func (m Model) statusLine() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}
	statusIcon, statusText := "▶", "playing"
	if m.paused {
		statusIcon, statusText = "❚❚", "paused"
	}
	left := fmt.Sprintf("%s  %s", statusIcon, statusText)
	for _, icon := range []string{m.follow.Icon(), m.loop.Icon()} {
		if icon != "" {
			left += "  " + icon
		}
	}
	return statusStyle.Render(left + "  " + renderBodyStatus(m.frame))
}

func windowTitle(paused bool) string {
	if paused {
		return "⏸ goo"
	}
	return "▶ goo"
}
