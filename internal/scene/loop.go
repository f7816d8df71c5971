package scene

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/orrery/internal/orbit"
)

// FrameFunc is a frame callback. now is the time the frame was scheduled.
type FrameFunc func(now time.Time)

// Scheduler runs a callback once on the next display refresh. Callbacks
// that want another frame must request it again.
type Scheduler interface {
	RequestFrame(cb FrameFunc)
}

// TickerScheduler fires requested callbacks from a time.Ticker. It stands
// in for a display refresh when nothing else drives frames.
type TickerScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	pending FrameFunc
}

func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = int(orbit.DefaultTickRate)
	}
	return &TickerScheduler{interval: time.Second / time.Duration(fps)}
}

func (s *TickerScheduler) RequestFrame(cb FrameFunc) {
	s.mu.Lock()
	s.pending = cb
	s.mu.Unlock()
}

func (s *TickerScheduler) Interval() time.Duration { return s.interval }

// Run fires pending callbacks until ctx is done.
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.mu.Lock()
			cb := s.pending
			s.pending = nil
			s.mu.Unlock()
			if cb != nil {
				cb(now)
			}
		}
	}
}

// Loop advances a scene once per scheduled frame and applies the result to
// bound nodes.
type Loop struct {
	Scene  *orbit.Scene
	Clock  *orbit.Clock
	Binder *Binder
	Logger *slog.Logger

	// OnFrame, if set, is called after the updates are applied.
	OnFrame func(updates []orbit.Update, ticks float64)

	sched   Scheduler
	stopped atomic.Bool
	frames  int
}

func NewLoop(sc *orbit.Scene, clock *orbit.Clock, binder *Binder, sched Scheduler) *Loop {
	return &Loop{
		Scene:  sc,
		Clock:  clock,
		Binder: binder,
		Logger: slog.Default(),
		sched:  sched,
	}
}

// Start requests the first frame.
func (l *Loop) Start() {
	l.stopped.Store(false)
	l.Clock.Reset()
	l.sched.RequestFrame(l.frame)
}

// Stop stops scheduling frames after the current one.
func (l *Loop) Stop() { l.stopped.Store(true) }

func (l *Loop) Frames() int { return l.frames }

func (l *Loop) frame(now time.Time) {
	if l.stopped.Load() {
		return
	}
	delta := l.Clock.Advance(now)
	updates := l.Scene.Step(delta)
	if l.Binder != nil {
		l.Binder.Apply(updates)
	}
	l.frames++
	if l.OnFrame != nil {
		l.OnFrame(updates, l.Scene.Ticks())
	}
	if l.frames%600 == 0 {
		l.Logger.Debug("frame", "frames", l.frames, "ticks", l.Scene.Ticks(), "delta", delta)
	}
	if !l.stopped.Load() {
		l.sched.RequestFrame(l.frame)
	}
}
