package export

import (
	"fmt"
	"strings"

	"github.com/odelab/odelab/internal/tui"
)

// CanvasSVG renders a braille canvas as an SVG dot field, one circle per lit
// dot. Scale is the dot pitch in SVG units.
func CanvasSVG(c *tui.Canvas, scale float64) string {
	if c == nil {
		return ""
	}
	dw, dh := c.Dots()
	width := float64(dw) * scale
	height := float64(dh) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	r := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if !c.At(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PhaseSVG renders components xi and yi of a trajectory as one SVG path,
// with 10% padding around the data bounds.
func PhaseSVG(ys [][]float64, xi, yi, width, height int, stroke string) (string, error) {
	if len(ys) < 2 {
		return "", fmt.Errorf("svg: need at least two points, have %d", len(ys))
	}
	for _, y := range ys {
		if xi < 0 || xi >= len(y) || yi < 0 || yi >= len(y) {
			return "", fmt.Errorf("svg: components (%d,%d) out of range for state of %d", xi, yi, len(y))
		}
	}

	minX, maxX := ys[0][xi], ys[0][xi]
	minY, maxY := ys[0][yi], ys[0][yi]
	for _, y := range ys {
		if y[xi] < minX {
			minX = y[xi]
		}
		if y[xi] > maxX {
			maxX = y[xi]
		}
		if y[yi] < minY {
			minY = y[yi]
		}
		if y[yi] > maxY {
			maxY = y[yi]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke))

	for i, y := range ys {
		px := (y[xi] - minX) / rangeX * float64(width)
		py := float64(height) - (y[yi]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String(), nil
}
