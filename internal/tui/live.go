// Package tui provides a live terminal view of a streaming simulation.
// The view is a host over the engine's batch interface: it decides the
// request cadence and renders whatever raw state comes back.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ecosim/internal/ecosys"
	"github.com/san-kum/ecosim/internal/sim"
	"github.com/san-kum/ecosim/internal/viz"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	latchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const historyLimit = 240

type tickMsg time.Time

// Model is the bubbletea model for a live run.
type Model struct {
	eng      *sim.Engine
	scenario string

	frameRate int
	speed     float64 // sim time units per wall second
	paused    bool

	preyHist     []float64
	predatorHist []float64

	width int
}

// NewLive wraps an engine for live viewing.
func NewLive(eng *sim.Engine, scenario string, frameRate int, speed float64) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	if speed <= 0 {
		speed = 2.0
	}
	return Model{
		eng:       eng,
		scenario:  scenario,
		frameRate: frameRate,
		speed:     speed,
		width:     80,
	}
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// stepsPerFrame converts playback speed into micro-steps per frame.
func (m Model) stepsPerFrame() int {
	steps := int(m.speed / (ecosys.Dt * float64(m.frameRate)))
	if steps < 1 {
		steps = 1
	}
	return steps
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+":
			m.speed *= 2
		case "-":
			m.speed /= 2
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if !m.paused && !m.eng.Done() {
			s := m.eng.Advance(m.stepsPerFrame())
			m.preyHist = append(m.preyHist, s.Prey)
			m.predatorHist = append(m.predatorHist, s.Predator)
			if len(m.preyHist) > historyLimit {
				m.preyHist = m.preyHist[1:]
				m.predatorHist = m.predatorHist[1:]
			}
		}
		if m.eng.Done() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	s := m.eng.State()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("ecosim live"))
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  scenario %s\n\n", m.scenario)))

	status := fmt.Sprintf("t %s  prey %s  predator %s  resource %s",
		valueStyle.Render(fmt.Sprintf("%8.2f", s.Time)),
		valueStyle.Render(fmt.Sprintf("%9.1f", s.Prey)),
		valueStyle.Render(fmt.Sprintf("%8.1f", s.Predator)),
		valueStyle.Render(fmt.Sprintf("%5.3f", m.eng.Resource())),
	)
	sb.WriteString(status)
	sb.WriteString("\n")

	switch {
	case m.eng.Extinct():
		sb.WriteString(alertStyle.Render("EXTINCTION"))
		sb.WriteString("\n")
	case m.eng.EquilibriumReached():
		sb.WriteString(latchStyle.Render("EQUILIBRIUM"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	graphWidth := m.width - 10
	if graphWidth < 20 {
		graphWidth = 20
	}
	if g := viz.Sparkline(m.preyHist, graphWidth, 8, "prey"); g != "" {
		sb.WriteString(g)
		sb.WriteString("\n\n")
	}
	if g := viz.Sparkline(m.predatorHist, graphWidth, 8, "predator"); g != "" {
		sb.WriteString(g)
		sb.WriteString("\n\n")
	}

	sb.WriteString(footerStyle.Render(fmt.Sprintf("speed %.1fx  [space] pause  [+/-] speed  [q] quit", m.speed)))
	sb.WriteString("\n")
	return sb.String()
}

// Run drives a live view to completion.
func Run(eng *sim.Engine, scenario string, frameRate int, speed float64) error {
	p := tea.NewProgram(NewLive(eng, scenario, frameRate, speed))
	_, err := p.Run()
	return err
}
