package storage

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"
)

const defaultStroke = "#00ff00"

type point struct{ X, Z float64 }

// ExportSVG writes a top-down picture of a run: one path per body traced
// in world space, with a dot at each body's last recorded position.
func (s *Store) ExportSVG(runID, path string, size int) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = 800
	}

	tracks := make(map[string]*Track, len(meta.Bodies))
	for _, b := range meta.Bodies {
		tr, err := s.LoadTrack(runID, b)
		if err != nil {
			return err
		}
		tracks[b] = tr
	}

	paths := make(map[string][]point, len(tracks))
	for _, b := range meta.Bodies {
		paths[b] = worldTrack(b, tracks, meta.Parents)
	}

	return os.WriteFile(path, []byte(tracksToSVG(meta.Bodies, paths, meta.Colors, size)), 0644)
}

// worldTrack sums a body's local samples with those of its ancestors.
func worldTrack(body string, tracks map[string]*Track, parents map[string]string) []point {
	tr := tracks[body]
	pts := make([]point, len(tr.X))
	for id := body; id != ""; id = parents[id] {
		anc, ok := tracks[id]
		if !ok {
			break
		}
		for i := range pts {
			if i < len(anc.X) {
				pts[i].X += anc.X[i]
				pts[i].Z += anc.Z[i]
			}
		}
	}
	return pts
}

func moving(pts []point) bool {
	for _, p := range pts[1:] {
		if p != pts[0] {
			return true
		}
	}
	return false
}

func tracksToSVG(order []string, paths map[string][]point, colors map[string]string, size int) string {
	extent := 1.0
	for _, pts := range paths {
		for _, p := range pts {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Z)))
		}
	}
	extent *= 1.1
	half := float64(size) / 2
	project := func(p point) (float64, float64) {
		return half + p.X/extent*half, half - p.Z/extent*half
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	for _, id := range order {
		pts := paths[id]
		if len(pts) == 0 {
			continue
		}
		stroke := colors[id]
		if stroke == "" {
			stroke = defaultStroke
		}
		stroke = html.EscapeString(stroke)
		name := html.EscapeString(id)

		if moving(pts) {
			sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.6" d="M`, name, stroke))
			for i, p := range pts {
				x, y := project(p)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := project(pts[len(pts)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, x, y, stroke, name))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
