package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orrery/internal/orbit"
)

var (
	// ErrNoSuchBody is returned by LoadTrack for a body the run did not record.
	ErrNoSuchBody = errors.New("storage: body not in run")

	// ErrBadRunID is returned for a run ID that is not a plain directory name.
	ErrBadRunID = errors.New("storage: invalid run id")
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	TickRate  float64            `json:"tick_rate"`
	Ticks     float64            `json:"ticks"`
	Samples   int                `json:"samples"`
	Bodies    []string           `json:"bodies"`
	Angles    map[string]float64 `json:"final_angles"`
	Parents   map[string]string  `json:"parents,omitempty"`
	Colors    map[string]string  `json:"colors,omitempty"`
}

// Save writes metadata.json and positions.csv for rec under a new run
// directory and returns the run ID.
func (s *Store) Save(sceneName string, seed int64, tickRate float64, sc *orbit.Scene, rec *Recording) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("%s_%d", runPrefix(sceneName), ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     sceneName,
		Timestamp: ts,
		Seed:      seed,
		TickRate:  tickRate,
		Ticks:     sc.Ticks(),
		Samples:   len(rec.Samples),
		Bodies:    rec.Bodies,
		Angles:    make(map[string]float64),
		Parents:   make(map[string]string),
		Colors:    make(map[string]string),
	}
	for _, b := range sc.Bodies() {
		meta.Angles[b.ID] = b.Angle
		if b.ParentID != "" {
			meta.Parents[b.ID] = b.ParentID
		}
		if b.Color != "" {
			meta.Colors[b.ID] = b.Color
		}
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writePositions(filepath.Join(runDir, "positions.csv"), rec); err != nil {
		return "", err
	}
	return runID, nil
}

// runPrefix keeps letters, digits, '-' and '_' of a scene name so the run
// ID is always a single directory under baseDir.
func runPrefix(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "run"
	}
	return sb.String()
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePositions(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"tick", "body", "x", "y", "z", "rotation"}); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, smp := range rec.Samples {
		for _, u := range smp.Updates {
			row := []string{ff(smp.Tick), u.BodyID, ff(u.Position.X), ff(u.Position.Y), ff(u.Position.Z), ff(u.RotationY)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Track is one body's recorded local positions.
type Track struct {
	Body     string
	Ticks    []float64
	X, Y, Z  []float64
	Rotation []float64
}

// LoadTrack reads the recorded samples of a single body.
func (s *Store) LoadTrack(runID, body string) (*Track, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, "positions.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 6
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &Track{Body: body}
	for i, rec := range records {
		if i == 0 || rec[1] != body {
			continue
		}
		vals := make([]float64, 5)
		for j, col := range []int{0, 2, 3, 4, 5} {
			v, err := strconv.ParseFloat(rec[col], 64)
			if err != nil {
				return nil, fmt.Errorf("positions.csv line %d: %w", i+1, err)
			}
			vals[j] = v
		}
		tr.Ticks = append(tr.Ticks, vals[0])
		tr.X = append(tr.X, vals[1])
		tr.Y = append(tr.Y, vals[2])
		tr.Z = append(tr.Z, vals[3])
		tr.Rotation = append(tr.Rotation, vals[4])
	}
	if len(tr.Ticks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchBody, body)
	}
	return tr, nil
}
