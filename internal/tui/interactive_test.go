package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

func press(a *App, s string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func pressKey(a *App, k tea.KeyType) {
	a.Update(tea.KeyMsg{Type: k})
}

func TestAppPickProblem(t *testing.T) {
	a := NewApp()
	assert.Equal(t, statePick, a.state)
	assert.Equal(t, problems.Names(), a.names)

	press(a, "j")
	assert.Equal(t, 1, a.cursor)
	pressKey(a, tea.KeyEnter)

	assert.Equal(t, stateSolver, a.state)
	assert.Equal(t, a.names[1], a.prob.Name)
	assert.Equal(t, a.prob.Xf, a.xf)
	assert.Equal(t, ode.DoPri5, a.methods[a.mi])
}

func TestAppToleranceDecades(t *testing.T) {
	a := NewApp()
	pressKey(a, tea.KeyEnter)
	press(a, "j")

	press(a, "l")
	assert.InEpsilon(t, 1e-5, a.tol, 1e-12)
	press(a, "h")
	press(a, "h")
	assert.InEpsilon(t, 1e-7, a.tol, 1e-12)
}

func TestAppEditXf(t *testing.T) {
	a := NewApp()
	press(a, "j")
	pressKey(a, tea.KeyEnter)
	press(a, "j")
	press(a, "j")

	pressKey(a, tea.KeyEnter)
	assert.True(t, a.editing)
	assert.Equal(t, "1", a.editBuf)

	press(a, "2")
	pressKey(a, tea.KeyEnter)
	assert.False(t, a.editing)
	assert.Equal(t, 12.0, a.xf)
}

func TestAppEditAbort(t *testing.T) {
	a := NewApp()
	press(a, "j")
	pressKey(a, tea.KeyEnter)
	press(a, "j")
	press(a, "j")

	pressKey(a, tea.KeyEnter)
	press(a, "9")
	pressKey(a, tea.KeyEsc)
	assert.False(t, a.editing)
	assert.Equal(t, 1.0, a.xf)
}

func TestAppStartAndLeaveLive(t *testing.T) {
	a := NewApp()
	press(a, "j")
	pressKey(a, tea.KeyEnter)

	press(a, "s")
	require.Equal(t, stateLive, a.state)
	require.NotNil(t, a.live)
	t.Cleanup(a.live.cancel)

	pressKey(a, tea.KeyEsc)
	assert.Equal(t, stateSolver, a.state)
	assert.Nil(t, a.live)
}

func TestAppMethodCycle(t *testing.T) {
	a := NewApp()
	pressKey(a, tea.KeyEnter)

	start := a.mi
	press(a, "l")
	assert.Equal(t, (start+1)%len(a.methods), a.mi)
	press(a, "h")
	press(a, "h")
	assert.Equal(t, (start-1+len(a.methods))%len(a.methods), a.mi)
}
