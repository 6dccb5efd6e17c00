package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/ecosim/internal/analysis"
)

// direction glyphs by octant, counterclockwise from east.
var arrows = []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// DirectionFieldASCII renders a phase-space sample as a character
// direction field: prey on the x axis, predator on the y axis, one
// arrow per cell showing the local flow direction.
func DirectionFieldASCII(field *analysis.PhaseField, width, height int) string {
	if field == nil || len(field.Points) == 0 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range field.Points {
		col := 0
		if field.PreyMax > 0 {
			col = int(p.Prey / field.PreyMax * float64(width-1))
		}
		row := height - 1
		if field.PredatorMax > 0 {
			row = height - 1 - int(p.Predator/field.PredatorMax*float64(height-1))
		}
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}

		mag := math.Hypot(p.DPrey, p.DPredator)
		if mag < 1e-12 {
			canvas[row][col] = '·'
			continue
		}

		angle := math.Atan2(p.DPredator, p.DPrey)
		octant := int(math.Round(angle/(math.Pi/4))) % 8
		if octant < 0 {
			octant += 8
		}
		canvas[row][col] = arrows[octant]
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	fmt.Fprintf(&sb, "prey 0..%.0f (x), predator 0..%.0f (y)\n", field.PreyMax, field.PredatorMax)
	return sb.String()
}
