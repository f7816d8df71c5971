package storage

import "github.com/soypat/geometry/md3"

type ExportSample struct {
	Tick      float64            `json:"tick"`
	Positions map[string]md3.Vec `json:"positions"`
	Rotations map[string]float64 `json:"rotations"`
}

type ExportData struct {
	Meta    RunMetadata    `json:"meta"`
	Samples []ExportSample `json:"samples"`
}

// ExportJSON writes a whole run as one JSON document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	data := ExportData{Meta: *meta}
	tracks := make([]*Track, 0, len(meta.Bodies))
	for _, b := range meta.Bodies {
		tr, err := s.LoadTrack(runID, b)
		if err != nil {
			return err
		}
		tracks = append(tracks, tr)
	}
	if len(tracks) == 0 {
		return writeJSON(path, data)
	}

	for i, tick := range tracks[0].Ticks {
		smp := ExportSample{
			Tick:      tick,
			Positions: make(map[string]md3.Vec, len(tracks)),
			Rotations: make(map[string]float64, len(tracks)),
		}
		for _, tr := range tracks {
			if i >= len(tr.Ticks) {
				continue
			}
			smp.Positions[tr.Body] = md3.Vec{X: tr.X[i], Y: tr.Y[i], Z: tr.Z[i]}
			smp.Rotations[tr.Body] = tr.Rotation[i]
		}
		data.Samples = append(data.Samples, smp)
	}
	return writeJSON(path, data)
}
