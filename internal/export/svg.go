// Package export renders run trajectories as SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/ecosim/internal/ecosys"
)

// SeriesToSVG draws prey and predator populations against time as two
// polylines on a dark canvas.
func SeriesToSVG(records []ecosys.Record, width, height int) string {
	if len(records) < 2 {
		return ""
	}

	maxPop := 0.0
	for _, r := range records {
		if r.Prey > maxPop {
			maxPop = r.Prey
		}
		if r.Predator > maxPop {
			maxPop = r.Predator
		}
	}
	if maxPop == 0 {
		maxPop = 1
	}
	tMin := records[0].Time
	tRange := records[len(records)-1].Time - tMin
	if tRange == 0 {
		tRange = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	writeSeries := func(color string, value func(ecosys.Record) float64) {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, r := range records {
			x := (r.Time - tMin) / tRange * float64(width)
			y := float64(height) - value(r)/maxPop*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	writeSeries("#00ff88", func(r ecosys.Record) float64 { return r.Prey })
	writeSeries("#ff5577", func(r ecosys.Record) float64 { return r.Predator })

	sb.WriteString("</svg>")
	return sb.String()
}

// PhaseToSVG draws the prey-predator trajectory as a single path in
// phase space.
func PhaseToSVG(records []ecosys.Record, width, height int) string {
	if len(records) < 2 {
		return ""
	}

	maxPrey, maxPredator := 0.0, 0.0
	for _, r := range records {
		if r.Prey > maxPrey {
			maxPrey = r.Prey
		}
		if r.Predator > maxPredator {
			maxPredator = r.Predator
		}
	}
	if maxPrey == 0 {
		maxPrey = 1
	}
	if maxPredator == 0 {
		maxPredator = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#66ccff" stroke-width="1.5" d="M`, width, height, width, height))

	for i, r := range records {
		x := r.Prey / maxPrey * float64(width)
		y := float64(height) - r.Predator/maxPredator*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
