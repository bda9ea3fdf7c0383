// Package export renders captured run states to SVG for inspection outside
// the terminal.
package export

import (
	"fmt"
	"strings"
)

var bodyFills = []string{"#51c4d3", "#ef6461", "#7bd389", "#f4e04d", "#d38bdf", "#6ea8fe", "#f2a65a", "#9ef0a0"}

// ArenaSVG renders the last state row as a snapshot of the box: the inner
// boundary, every body as a filled circle, and the first body's trajectory
// across all rows as a polyline. States are flattened {x, y, vx, vy} rows;
// all bodies share the given radius.
func ArenaSVG(states [][]float64, width, height, margin, radius float64) string {
	if len(states) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#121216"/>
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#e6e6e6" stroke-width="2"/>
`, width, height, width, height, margin, margin, width-2*margin, height-2*margin))

	if len(states) > 1 {
		sb.WriteString(`<path fill="none" stroke="#3a6ea5" stroke-width="1" opacity="0.6" d="M`)
		for i, row := range states {
			if len(row) < 2 {
				continue
			}
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", row[0], row[1]))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", row[0], row[1]))
			}
		}
		sb.WriteString("\"/>\n")
	}

	last := states[len(states)-1]
	for i := 0; i+3 < len(last); i += 4 {
		fill := bodyFills[(i/4)%len(bodyFills)]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, last[i], last[i+1], radius, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
