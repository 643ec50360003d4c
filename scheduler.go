package reveal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameFunc is called once when a requested frame fires. now is the
// scheduler's clock, monotonic and relative to its own epoch.
type FrameFunc func(now time.Duration)

// FrameID identifies a pending frame request. Zero means "not scheduled".
type FrameID uint64

// FrameScheduler is the per-frame callback primitive an Engine drives itself
// with. Each request fires at most once; engines re-request every frame.
type FrameScheduler interface {
	// Now returns the current scheduler time.
	Now() time.Duration
	// RequestFrame schedules fn for the next frame. It returns 0 when the
	// scheduler cannot deliver frames (closed, headless).
	RequestFrame(fn FrameFunc) FrameID
	// CancelFrame drops a pending request. Unknown or fired IDs are ignored.
	CancelFrame(id FrameID)
}

// --- Tick scheduler ---

// TickScheduler delivers frames when its owner advances it: once per
// Ebitengine tick via Update, or by hand via Advance. It doubles as the
// manual clock used in tests. Not safe for concurrent use.
type TickScheduler struct {
	now      time.Duration
	nextID   FrameID
	live     map[FrameID]FrameFunc
	queue    []FrameID
	spare    []FrameID
	requests int
	closed   bool
}

// NewTickScheduler creates a scheduler whose clock starts at zero.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{live: make(map[FrameID]FrameFunc)}
}

// Now implements FrameScheduler.
func (s *TickScheduler) Now() time.Duration { return s.now }

// RequestFrame implements FrameScheduler.
func (s *TickScheduler) RequestFrame(fn FrameFunc) FrameID {
	if s.closed || fn == nil {
		return 0
	}
	s.nextID++
	id := s.nextID
	s.live[id] = fn
	s.queue = append(s.queue, id)
	s.requests++
	return id
}

// CancelFrame implements FrameScheduler.
func (s *TickScheduler) CancelFrame(id FrameID) {
	delete(s.live, id)
}

// Advance moves the clock forward by dt and fires every frame that was
// requested before the call. Frames requested from inside a callback fire on
// the next Advance. A frame cancelled by an earlier callback in the same tick
// does not fire.
func (s *TickScheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	batch := s.queue
	s.queue = s.spare[:0]
	for _, id := range batch {
		fn, ok := s.live[id]
		if !ok {
			continue
		}
		delete(s.live, id)
		fn(s.now)
	}
	s.spare = batch[:0]
}

// AdvanceFrames calls Advance n times with a fixed step.
func (s *TickScheduler) AdvanceFrames(n int, step time.Duration) {
	for i := 0; i < n; i++ {
		s.Advance(step)
	}
}

// Update advances one Ebitengine tick (1/TPS seconds). Call it from
// ebiten.Game.Update.
func (s *TickScheduler) Update() {
	s.Advance(time.Second / time.Duration(ebiten.TPS()))
}

// Pending returns the number of outstanding frame requests.
func (s *TickScheduler) Pending() int { return len(s.live) }

// Requests returns the total number of frames ever requested.
func (s *TickScheduler) Requests() int { return s.requests }

// Close drops all pending frames and refuses new requests.
func (s *TickScheduler) Close() {
	s.closed = true
	clear(s.live)
	s.queue = s.queue[:0]
}

// --- Timer scheduler ---

// DefaultFrameInterval is the frame period of a TimerScheduler created with a
// zero interval.
const DefaultFrameInterval = time.Second / 60

// TimerScheduler is the fallback used when no host frame primitive is
// available. Each request is a time.AfterFunc firing one interval later, so
// callbacks run on timer goroutines; Engine serializes them itself.
type TimerScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	epoch    time.Time
	nextID   FrameID
	timers   map[FrameID]*time.Timer
	closed   bool
}

// NewTimerScheduler creates a scheduler that fires frames every interval.
// A non-positive interval means DefaultFrameInterval.
func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TimerScheduler{
		interval: interval,
		epoch:    time.Now(),
		timers:   make(map[FrameID]*time.Timer),
	}
}

// Now implements FrameScheduler.
func (s *TimerScheduler) Now() time.Duration { return time.Since(s.epoch) }

// RequestFrame implements FrameScheduler.
func (s *TimerScheduler) RequestFrame(fn FrameFunc) FrameID {
	if fn == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	s.nextID++
	id := s.nextID
	s.timers[id] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		_, ok := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		if ok {
			fn(s.Now())
		}
	})
	return id
}

// CancelFrame implements FrameScheduler.
func (s *TimerScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending returns the number of outstanding frame requests.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close stops every pending timer and refuses new requests.
func (s *TimerScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
