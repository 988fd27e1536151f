package mdrcluster

import (
	"fmt"
	"strings"
)

const (
	svgWidth   = 720
	svgHeight  = 480
	svgPadding = 40.0
)

// clusterPalette colors documents by rank; rank r uses entry (r-1) mod len.
var clusterPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#8c564b", "#e377c2", "#7f7f7f",
}

// renderScatterSVG draws the 2-D projection of the ranked documents as an
// inline SVG, one circle per narrative colored by cluster rank. The output
// is deterministic for a fixed result.
func renderScatterSVG(result PipelineResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img">`, svgWidth, svgHeight)
	b.WriteString(`<rect width="100%" height="100%" fill="#fafafa"/>`)

	if len(result.Documents) > 0 {
		minX, maxX := result.Documents[0].X, result.Documents[0].X
		minY, maxY := result.Documents[0].Y, result.Documents[0].Y
		for _, doc := range result.Documents {
			minX = min(minX, doc.X)
			maxX = max(maxX, doc.X)
			minY = min(minY, doc.Y)
			maxY = max(maxY, doc.Y)
		}

		// Zero-variance projections collapse to the viewport center.
		spanX := maxX - minX
		spanY := maxY - minY
		if spanX == 0 {
			spanX = 1
			minX -= 0.5
		}
		if spanY == 0 {
			spanY = 1
			minY -= 0.5
		}

		for _, doc := range result.Documents {
			px := svgPadding + (doc.X-minX)/spanX*(svgWidth-2*svgPadding)
			py := svgPadding + (doc.Y-minY)/spanY*(svgHeight-2*svgPadding)
			color := clusterPalette[(doc.Cluster-1)%len(clusterPalette)]
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s" fill-opacity="0.75"><title>cluster %d: %s</title></circle>`,
				px, py, color, doc.Cluster, doc.ID)
		}
	}

	// Legend: one swatch per surviving cluster with its size.
	for rank, size := range result.ClusterSizes {
		y := 20 + rank*18
		color := clusterPalette[rank%len(clusterPalette)]
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="5" fill="%s"/>`, svgWidth-130, y, color)
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" font-family="sans-serif">cluster %d (%d)</text>`,
			svgWidth-118, y+4, rank+1, size)
	}

	b.WriteString(`</svg>`)
	return b.String()
}
