package storage

import "github.com/san-kum/orrery/internal/orbit"

// Sample is a copy of one tick's updates.
type Sample struct {
	Tick    float64
	Updates []orbit.Update
}

// Recording collects samples from a headless run.
type Recording struct {
	Bodies  []string
	Samples []Sample
}

// Record steps sc ticks times by delta and keeps every n-th frame, plus
// the initial one.
func Record(sc *orbit.Scene, ticks int, delta float64, every int) *Recording {
	if every < 1 {
		every = 1
	}
	rec := &Recording{Samples: make([]Sample, 0, ticks/every+1)}
	for _, b := range sc.Bodies() {
		rec.Bodies = append(rec.Bodies, b.ID)
	}
	rec.add(sc.Ticks(), sc.Updates())
	for i := 1; i <= ticks; i++ {
		updates := sc.Step(delta)
		if i%every == 0 {
			rec.add(sc.Ticks(), updates)
		}
	}
	return rec
}

func (r *Recording) add(tick float64, updates []orbit.Update) {
	cp := make([]orbit.Update, len(updates))
	copy(cp, updates)
	r.Samples = append(r.Samples, Sample{Tick: tick, Updates: cp})
}
