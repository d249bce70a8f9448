// Package tui renders a flock in the terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/simulation"
	"github.com/tochemey/goakt/v3/log"
)

const (
	lowFPSInterval  = 33 * time.Millisecond
	highFPSInterval = 16 * time.Millisecond
	canvasRatio     = 0.75
)

var (
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	gray   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	bold   = lipgloss.NewStyle().Bold(true)

	box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("255"))
)

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model of the terminal host. It owns the simulation.
type Model struct {
	sim    *simulation.Simulation
	logger log.Logger

	paused     bool
	highFPS    bool
	showLeader bool

	width, height int

	frames    int
	fps       float64
	lastCount time.Time
}

// New wraps sim; the leader is hidden until toggled with 'l'.
func New(sim *simulation.Simulation, logger log.Logger) Model {
	return Model{
		sim:       sim,
		logger:    logger,
		lastCount: time.Now(),
	}
}

func (m Model) Init() tea.Cmd { return tick(m.interval()) }

func (m Model) interval() time.Duration {
	if m.highFPS {
		return highFPSInterval
	}
	return lowFPSInterval
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "f":
			m.highFPS = !m.highFPS
		case "r":
			m.sim.Reset()
		case "l":
			m.showLeader = !m.showLeader
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := CanvasSize(msg.Width, msg.Height)
		if err := m.sim.FitCanvas(float64(w), float64(h)); err != nil {
			m.logger.Warnf("terminal %dx%d is too small: %v", msg.Width, msg.Height, err)
		}
		return m, nil

	case tickMsg:
		if !m.paused {
			m.sim.Update()
		}
		m.countFrame(time.Time(msg))
		return m, tick(m.interval())
	}
	return m, nil
}

func (m *Model) countFrame(now time.Time) {
	m.frames++
	if elapsed := now.Sub(m.lastCount); elapsed >= time.Second {
		m.fps = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.lastCount = now
	}
}

// CanvasSize is the drawable area inside the bordered canvas, which takes 75% of the terminal width.
func CanvasSize(termWidth, termHeight int) (int, int) {
	return int(float64(termWidth)*canvasRatio) - 2, termHeight - 2
}

func (m Model) View() string {
	snap := m.sim.Snapshot()
	canvas := box.Render(renderCanvas(snap, m.showLeader, m.paused))
	panel := lipgloss.JoinVertical(lipgloss.Left,
		box.Render(m.renderControls()),
		box.Render(m.renderStats(snap)),
		box.Render(renderParameters(snap)),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel)
}

// renderCanvas draws one glyph per boid, row 0 at the top.
func renderCanvas(snap *simulation.Snapshot, showLeader, paused bool) string {
	cols, rows := int(snap.Width), int(snap.Height)
	if cols <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}

	leaderRow, leaderCol := -1, -1
	for _, a := range snap.Agents {
		col, row := clampCell(a.Pos.X, cols), clampCell(a.Pos.Y, rows)
		if a.IsLeader {
			if showLeader {
				leaderRow, leaderCol = row, col
			}
			continue
		}
		grid[row][col] = a.Glyph
	}

	flock := green
	if paused {
		flock = gray
	}
	var b strings.Builder
	b.Grow(rows * (cols + 1))
	for r, line := range grid {
		if r == leaderRow {
			b.WriteString(flock.Render(string(line[:leaderCol])))
			b.WriteString(yellow.Render(string(simulation.LeaderGlyph)))
			b.WriteString(flock.Render(string(line[leaderCol+1:])))
		} else {
			b.WriteString(flock.Render(string(line)))
		}
		if r < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func clampCell(v float64, n int) int {
	return max(0, min(n-1, int(v)))
}

func (m Model) renderControls() string {
	status := green.Render("RUNNING")
	if m.paused {
		status = red.Render("PAUSED")
	}
	fpsMode := "30 FPS"
	if m.highFPS {
		fpsMode = "60 FPS"
	}
	leader := "hidden"
	if m.showLeader {
		leader = "shown"
	}
	return strings.Join([]string{
		yellow.Render("Status: ") + status,
		yellow.Render("FPS: ") + cyan.Render(fpsMode),
		yellow.Render("Leader: ") + cyan.Render(leader),
		"",
		bold.Render("Controls:"),
		"Space - Pause/Resume",
		"F - Toggle FPS",
		"R - Reset",
		"L - Show/Hide leader",
		"Q - Quit",
	}, "\n")
}

func (m Model) renderStats(snap *simulation.Snapshot) string {
	direction := "none"
	if snap.HasLeader {
		direction = snap.Leader.Direction.String()
	}
	return strings.Join([]string{
		field("Boids", fmt.Sprintf("%d", len(snap.Agents))),
		field("Actual FPS", fmt.Sprintf("%.1f", m.fps)),
		field("Avg Speed", fmt.Sprintf("%.2f", snap.AverageSpeed)),
		field("Patrol", direction),
		field("Tick", fmt.Sprintf("%d", snap.Tick)),
	}, "\n")
}

func renderParameters(snap *simulation.Snapshot) string {
	cfg := snap.Config
	return strings.Join([]string{
		field("Separation", fmt.Sprintf("%.1f", cfg.SeparationWeight)),
		field("Alignment", fmt.Sprintf("%.1f", cfg.AlignmentWeight)),
		field("Cohesion", fmt.Sprintf("%.1f", cfg.CohesionWeight)),
		field("Max Speed", fmt.Sprintf("%.1f", cfg.MaxSpeed)),
		field("Max Force", fmt.Sprintf("%.2f", cfg.MaxForce)),
		field("Arena", fmt.Sprintf("%.0fx%.0f", cfg.Width, cfg.Height)),
	}, "\n")
}

func field(name, value string) string {
	return yellow.Render(name+": ") + white.Render(value)
}
