package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var problemInfo = map[string]string{
	"decay":     "exponential decay",
	"harmonic":  "harmonic oscillator",
	"hw11":      "stiff linear transient",
	"vanderpol": "relaxation oscillation",
	"lorenz":    "chaotic attractor",
	"rossler":   "chaotic band",
	"duffing":   "forced double-well oscillator",
	"arenstorf": "restricted three-body orbit",
	"twobody":   "kepler orbit",
}

type appState int

const (
	statePick appState = iota
	stateSolver
	stateLive
)

// App is the interactive picker: choose a problem, tune the solver, then hand
// off to the live view. Esc from the live view returns to the solver screen.
type App struct {
	state  appState
	cursor int
	names  []string

	prob    problems.Problem
	methods []ode.Method
	mi      int

	fields      []string
	fieldCursor int
	editing     bool
	editBuf     string
	tol         float64
	xf          float64
	denseDx     float64

	live *Model
	err  error
}

func NewApp() *App {
	return &App{
		names:   problems.Names(),
		methods: ode.ExplicitMethods(),
		fields:  []string{"method", "tolerance", "xf", "dense dx"},
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateLive {
		return a.updateLive(msg)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch a.state {
		case statePick:
			return a.pickKey(key)
		case stateSolver:
			return a.solverKey(key)
		}
	}
	return a, nil
}

func (a *App) pickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.names)-1 {
			a.cursor++
		}
	case "enter", " ":
		prob, err := problems.Get(a.names[a.cursor])
		if err != nil {
			a.err = err
			return a, nil
		}
		a.prob = prob
		a.state = stateSolver
		a.fieldCursor = 0
		a.err = nil
		a.setSolverDefaults()
	}
	return a, nil
}

func (a *App) setSolverDefaults() {
	a.mi = 0
	for i, m := range a.methods {
		if m == ode.DoPri5 {
			a.mi = i
		}
	}
	a.tol = 1e-6
	a.xf = a.prob.Xf
	a.denseDx = 0
}

func (a *App) solverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(a.editBuf, 64); err == nil {
				a.setField(val)
			}
			a.editing = false
			a.editBuf = ""
		case "esc":
			a.editing = false
			a.editBuf = ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' {
					a.editBuf += string(c)
				}
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "esc":
		a.state = statePick
	case "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.fieldCursor > 0 {
			a.fieldCursor--
		}
	case "down", "j":
		if a.fieldCursor < len(a.fields)-1 {
			a.fieldCursor++
		}
	case "enter":
		if a.fields[a.fieldCursor] == "method" {
			a.mi = (a.mi + 1) % len(a.methods)
		} else {
			a.editing = true
			a.editBuf = fmt.Sprintf("%g", a.fieldValue())
		}
	case "left", "h":
		a.adjust(-1)
	case "right", "l":
		a.adjust(+1)
	case "s":
		return a.startLive()
	}
	return a, nil
}

func (a *App) fieldValue() float64 {
	switch a.fields[a.fieldCursor] {
	case "tolerance":
		return a.tol
	case "xf":
		return a.xf
	case "dense dx":
		return a.denseDx
	}
	return 0
}

func (a *App) setField(val float64) {
	switch a.fields[a.fieldCursor] {
	case "tolerance":
		a.tol = val
	case "xf":
		a.xf = val
	case "dense dx":
		a.denseDx = val
	}
}

func (a *App) adjust(dir int) {
	switch a.fields[a.fieldCursor] {
	case "method":
		a.mi = (a.mi + dir + len(a.methods)) % len(a.methods)
	case "tolerance":
		// Tolerances move a decade at a time.
		if dir > 0 {
			a.tol *= 10
		} else {
			a.tol /= 10
		}
	case "xf":
		a.xf += float64(dir)
	case "dense dx":
		a.denseDx += float64(dir) * 0.01
		if a.denseDx < 0 {
			a.denseDx = 0
		}
	}
}

func (a *App) startLive() (tea.Model, tea.Cmd) {
	par := ode.NewParams(a.methods[a.mi])
	if err := par.SetTolerances(a.tol, a.tol); err != nil {
		a.err = err
		return a, nil
	}
	par.MaxSteps = 1000000
	par.DenseDx = a.denseDx
	a.live = NewModel(a.prob, par, a.prob.X0, a.xf, a.prob.Y0)
	a.state = stateLive
	a.err = nil
	return a, tea.Batch(tea.ClearScreen, a.live.Init())
}

func (a *App) updateLive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		if a.live != nil && a.live.cancel != nil {
			a.live.cancel()
		}
		a.live = nil
		a.state = stateSolver
		return a, tea.ClearScreen
	}
	if a.live == nil {
		a.state = stateSolver
		return a, nil
	}
	_, cmd := a.live.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	switch a.state {
	case statePick:
		return a.viewPick()
	case stateSolver:
		return a.viewSolver()
	case stateLive:
		if a.live != nil {
			return a.live.View() + "\n" + dim.Render("   esc back")
		}
	}
	return ""
}

func (a *App) viewPick() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("o d e l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range a.names {
		desc := problemInfo[name]
		if i == a.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")
	if a.err != nil {
		b.WriteString(yellow.Render(fmt.Sprintf("      %v", a.err)) + "\n")
	}

	return b.String()
}

func (a *App) viewSolver() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(a.prob.Name) + "  " + dim.Render(problemInfo[a.prob.Name]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range a.fields {
		var val string
		switch name {
		case "method":
			val = a.methods[a.mi].String()
		case "tolerance":
			val = fmt.Sprintf("%g", a.tol)
		case "xf":
			val = fmt.Sprintf("%g", a.xf)
		case "dense dx":
			val = fmt.Sprintf("%g", a.denseDx)
			if a.denseDx == 0 {
				val = "off"
			}
		}
		if a.editing && i == a.fieldCursor {
			val = a.editBuf + "▋"
		}
		val = fmt.Sprintf("%10s", val)
		if i == a.fieldCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")
	if a.err != nil {
		b.WriteString(yellow.Render(fmt.Sprintf("      %v", a.err)) + "\n")
	}

	return b.String()
}

// Run launches the interactive picker in the alternate screen.
func Run() error {
	p := tea.NewProgram(NewApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
