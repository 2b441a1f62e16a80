package export

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odelab/odelab/internal/analysis"
	"github.com/odelab/odelab/internal/tui"
)

func sampleTrajectory() ([]float64, [][]float64) {
	xs := make([]float64, 50)
	ys := make([][]float64, 50)
	for i := range xs {
		x := float64(i) * 0.1
		xs[i] = x
		ys[i] = []float64{math.Cos(x), -math.Sin(x)}
	}
	return xs, ys
}

func assertFileNonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotSeries(t *testing.T) {
	xs, ys := sampleTrajectory()
	path := filepath.Join(t.TempDir(), "series.png")

	require.NoError(t, PlotSeries(path, "harmonic", xs, ys))
	assertFileNonEmpty(t, path)
}

func TestPlotSeriesEmpty(t *testing.T) {
	err := PlotSeries(filepath.Join(t.TempDir(), "x.png"), "t", nil, nil)
	assert.Error(t, err)
}

func TestPlotSeriesRagged(t *testing.T) {
	xs, ys := sampleTrajectory()
	err := PlotSeries(filepath.Join(t.TempDir(), "x.png"), "t", xs, ys[:len(ys)-1])
	assert.Error(t, err)
}

func TestPlotPhase(t *testing.T) {
	_, ys := sampleTrajectory()
	path := filepath.Join(t.TempDir(), "phase.png")

	require.NoError(t, PlotPhase(path, "harmonic phase", ys, 0, 1))
	assertFileNonEmpty(t, path)
}

func TestPlotPhaseBadComponent(t *testing.T) {
	_, ys := sampleTrajectory()
	err := PlotPhase(filepath.Join(t.TempDir(), "x.png"), "t", ys, 0, 5)
	assert.Error(t, err)
}

func TestPlotConvergence(t *testing.T) {
	est := analysis.OrderEstimate{
		Steps:  []float64{0.2, 0.1, 0.05},
		Errors: []float64{8e-4, 5e-5, 3e-6},
		Order:  4.02,
	}
	path := filepath.Join(t.TempDir(), "order.png")

	require.NoError(t, PlotConvergence(path, "rk4 on harmonic", est))
	assertFileNonEmpty(t, path)
}

func TestAsciiSeries(t *testing.T) {
	_, ys := sampleTrajectory()

	chart, err := AsciiSeries(ys, 0, 40, 8, "harmonic y0")
	require.NoError(t, err)
	assert.Contains(t, chart, "harmonic y0")
	assert.Greater(t, len(chart), 100)
}

func TestAsciiSeriesBadComponent(t *testing.T) {
	_, ys := sampleTrajectory()
	_, err := AsciiSeries(ys, 3, 40, 8, "")
	assert.Error(t, err)
}

func TestCanvasSVG(t *testing.T) {
	c := tui.NewCanvas(4, 3)
	c.DrawLine(0, 0, 7, 7)

	svg := CanvasSVG(c, 4)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 8, strings.Count(svg, "<circle"))
}

func TestCanvasSVGNil(t *testing.T) {
	assert.Equal(t, "", CanvasSVG(nil, 4))
}

func TestPhaseSVG(t *testing.T) {
	_, ys := sampleTrajectory()

	svg, err := PhaseSVG(ys, 0, 1, 400, 400, "#00ff00")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `stroke="#00ff00"`)
	assert.Contains(t, svg, `d="M`)
}

func TestPhaseSVGTooFewPoints(t *testing.T) {
	_, ys := sampleTrajectory()
	_, err := PhaseSVG(ys[:1], 0, 1, 400, 400, "#fff")
	assert.Error(t, err)
}

func TestPhaseSVGBadComponent(t *testing.T) {
	_, ys := sampleTrajectory()
	_, err := PhaseSVG(ys, 0, 9, 400, 400, "#fff")
	assert.Error(t, err)
}
