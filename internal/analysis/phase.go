package analysis

import (
	"strings"
)

// PhasePoint is one sample of a phase portrait.
type PhasePoint struct {
	X, Y float64
}

// PhasePortrait pairs two recorded state columns, typically a position and
// its velocity.
type PhasePortrait struct {
	XIndex, YIndex int
	Points         []PhasePoint
}

// NewPhasePortrait builds a portrait from recorded states. It returns nil
// when either index is out of range.
func NewPhasePortrait(states [][]float64, xIdx, yIdx int) *PhasePortrait {
	if len(states) == 0 || xIdx < 0 || yIdx < 0 || xIdx >= len(states[0]) || yIdx >= len(states[0]) {
		return nil
	}

	p := &PhasePortrait{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]PhasePoint, 0, len(states)),
	}
	for _, s := range states {
		if xIdx < len(s) && yIdx < len(s) {
			p.Points = append(p.Points, PhasePoint{X: s[xIdx], Y: s[yIdx]})
		}
	}
	return p
}

// ASCII plots the portrait on a width×height character grid with axes drawn
// where they cross the visible range.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
