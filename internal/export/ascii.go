package export

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// AsciiSeries renders one state component as a terminal line graph.
func AsciiSeries(ys [][]float64, component, width, height int, caption string) (string, error) {
	if len(ys) == 0 {
		return "", fmt.Errorf("export: trajectory is empty")
	}
	if component < 0 || component >= len(ys[0]) {
		return "", fmt.Errorf("export: component %d out of range for dimension %d", component, len(ys[0]))
	}

	data := make([]float64, len(ys))
	for i := range ys {
		data[i] = ys[i][component]
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
