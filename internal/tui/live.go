package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

const (
	canvasWidth  = 60
	canvasHeight = 20

	trailCap      = 4000
	histCap       = 600
	pointsPerTick = 8
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type point struct {
	x     float64
	h     float64
	y     []float64
	stats ode.Stats
}

// Model is the live solver view. A background goroutine integrates the
// problem and streams output points through a channel; every frame drains a
// few and draws the phase portrait on a braille canvas.
type Model struct {
	prob problems.Problem
	par  ode.Params
	x0   float64
	xf   float64
	y0   []float64

	canvas *Canvas
	points chan point
	errc   chan error
	cancel context.CancelFunc

	trail    []point
	hHist    []float64
	xi, yi   int
	running  bool
	finished bool
	failed   error
	stats    ode.Stats
	lastX    float64
	lastH    float64
}

// NewModel builds the view and starts the background solve immediately.
func NewModel(prob problems.Problem, par ode.Params, x0, xf float64, y0 []float64) *Model {
	m := &Model{
		prob:    prob,
		par:     par,
		x0:      x0,
		xf:      xf,
		y0:      append([]float64(nil), y0...),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
		lastX:   x0,
	}
	if prob.System.Ndim >= 2 {
		m.xi, m.yi = 0, 1
	} else {
		// One-dimensional problems plot against the abscissa instead.
		m.xi, m.yi = -1, 0
	}
	m.start()
	return m
}

func (m *Model) start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.points = make(chan point, 4096)
	m.errc = make(chan error, 1)

	sol, err := ode.NewSolver(m.par, m.prob.System)
	if err != nil {
		m.failed = err
		m.finished = true
		close(m.points)
		return
	}

	points, errc := m.points, m.errc
	emit := func(step int, h, x float64, y []float64) error {
		p := point{x: x, h: h, y: append([]float64(nil), y...), stats: sol.Stats()}
		select {
		case points <- p:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.par.DenseDx > 0 {
		sol.OnDense(emit)
	} else {
		sol.OnStep(emit)
	}

	go func() {
		y := append([]float64(nil), m.y0...)
		errc <- sol.Solve(ctx, y, m.x0, m.xf)
		close(points)
	}()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cyclePair()
		}
	case TickMsg:
		if m.running && !m.finished {
			m.drain()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) drain() {
	for i := 0; i < pointsPerTick; i++ {
		select {
		case p, ok := <-m.points:
			if !ok {
				m.finished = true
				select {
				case err := <-m.errc:
					if err != nil {
						m.failed = err
					}
				default:
				}
				return
			}
			m.push(p)
		default:
			return
		}
	}
}

func (m *Model) push(p point) {
	m.trail = append(m.trail, p)
	if len(m.trail) > trailCap {
		m.trail = m.trail[1:]
	}
	m.hHist = append(m.hHist, p.h)
	if len(m.hHist) > histCap {
		m.hHist = m.hHist[1:]
	}
	m.stats = p.stats
	m.lastX = p.x
	m.lastH = p.h
}

func (m *Model) reset() {
	if m.cancel != nil {
		m.cancel()
	}
	m.trail = m.trail[:0]
	m.hHist = m.hHist[:0]
	m.canvas.Clear()
	m.stats = ode.Stats{}
	m.lastX, m.lastH = m.x0, 0
	m.finished = false
	m.failed = nil
	m.start()
}

func (m *Model) cyclePair() {
	n := m.prob.System.Ndim
	if n < 2 {
		return
	}
	m.yi++
	if m.yi == m.xi {
		m.yi++
	}
	if m.yi >= n {
		m.xi = (m.xi + 1) % n
		m.yi = 0
		if m.yi == m.xi {
			m.yi = 1
		}
	}
}

func (m *Model) coords(p point) (float64, float64) {
	u := p.x
	if m.xi >= 0 {
		u = p.y[m.xi]
	}
	return u, p.y[m.yi]
}

// draw refits the whole trail to the canvas. Rescaling every frame keeps the
// portrait in view while the trajectory explores new territory.
func (m *Model) draw() {
	m.canvas.Clear()
	if len(m.trail) == 0 {
		return
	}

	minU, maxU := math.Inf(1), math.Inf(-1)
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, p := range m.trail {
		u, v := m.coords(p)
		minU = math.Min(minU, u)
		maxU = math.Max(maxU, u)
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	spanU := maxU - minU
	if spanU == 0 {
		spanU = 1
	}
	spanV := maxV - minV
	if spanV == 0 {
		spanV = 1
	}
	minU -= 0.05 * spanU
	spanU *= 1.1
	minV -= 0.05 * spanV
	spanV *= 1.1

	dw, dh := m.canvas.Dots()
	toDot := func(p point) (int, int) {
		u, v := m.coords(p)
		x := int((u - minU) / spanU * float64(dw-1))
		y := int((1 - (v-minV)/spanV) * float64(dh-1))
		return x, y
	}

	x0, y0 := toDot(m.trail[0])
	m.canvas.Set(x0, y0)
	for _, p := range m.trail[1:] {
		x1, y1 := toDot(p)
		m.canvas.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}

func (m *Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.prob.Name)) + "\n")

	status := "RUNNING"
	switch {
	case m.failed != nil:
		status = warnStyle.Render(fmt.Sprintf("FAILED: %v", m.failed))
	case m.finished:
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.hHist) > 1 {
		chart := asciigraph.Plot(m.hHist,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("step size"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("x") + valueStyle.Render(fmt.Sprintf("%.4f", m.lastX)) + "\n")
	s.WriteString(labelStyle.Render("h") + valueStyle.Render(fmt.Sprintf("%.3g", m.lastH)) + "\n")
	s.WriteString(labelStyle.Render("steps") +
		valueStyle.Render(fmt.Sprintf("%d (%d rejected)", m.stats.NSteps, m.stats.NRejected)) + "\n")
	s.WriteString(labelStyle.Render("f evals") + valueStyle.Render(fmt.Sprintf("%d", m.stats.NFcnEval)) + "\n")
	if m.stats.StiffnessDetected {
		s.WriteString(warnStyle.Render(fmt.Sprintf("stiff near x=%.3f", m.stats.StiffnessX)) + "\n")
	}

	axes := fmt.Sprintf("y%d / y%d", m.xi, m.yi)
	if m.xi < 0 {
		axes = fmt.Sprintf("x / y%d", m.yi)
	}
	s.WriteString(labelStyle.Render("axes") + valueStyle.Render(axes) + "\n")

	s.WriteString(helpStyle.Render("\nSP:Pause R:Restart Tab:Axes Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
