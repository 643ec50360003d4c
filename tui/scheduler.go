package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/reveal"
)

// DefaultInterval is the tick interval used when NewScheduler gets zero.
const DefaultInterval = time.Second / 30

var schedulerTags atomic.Uint64

// FrameMsg is delivered by the scheduler's tick command. Pass every message
// to Scheduler.Update; messages from other schedulers are ignored.
type FrameMsg struct {
	Time time.Time
	tag  uint64
}

// Scheduler is a reveal.FrameScheduler driven by bubbletea ticks. Frames are
// queued on an internal reveal.TickScheduler and delivered when the program
// routes the resulting FrameMsg back through Update. It ticks only while
// frames are pending.
//
// Like the rest of a bubbletea model it must only be used from the program's
// Update goroutine.
type Scheduler struct {
	ticks    *reveal.TickScheduler
	interval time.Duration
	tag      uint64
	ticking  bool
	last     time.Time
	clock    func() time.Time
}

// NewScheduler creates a scheduler that ticks every interval while work is
// pending. Zero means DefaultInterval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		ticks:    reveal.NewTickScheduler(),
		interval: interval,
		tag:      schedulerTags.Add(1),
		clock:    time.Now,
	}
}

// Now implements reveal.FrameScheduler.
func (s *Scheduler) Now() time.Duration { return s.ticks.Now() }

// RequestFrame implements reveal.FrameScheduler. The caller must return
// Cmd() from its Update for the frame to actually be delivered.
func (s *Scheduler) RequestFrame(fn reveal.FrameFunc) reveal.FrameID {
	return s.ticks.RequestFrame(fn)
}

// CancelFrame implements reveal.FrameScheduler.
func (s *Scheduler) CancelFrame(id reveal.FrameID) { s.ticks.CancelFrame(id) }

// Pending returns the number of queued frames.
func (s *Scheduler) Pending() int { return s.ticks.Pending() }

// Cmd returns the tick command for the next frame, or nil when nothing is
// pending or a tick is already in flight.
func (s *Scheduler) Cmd() tea.Cmd {
	if s.ticking || s.ticks.Pending() == 0 {
		return nil
	}
	s.ticking = true
	s.last = s.clock()
	tag := s.tag
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t, tag: tag}
	})
}

// Update delivers a FrameMsg addressed to this scheduler and returns the
// command for the following frame. Any other message returns nil.
func (s *Scheduler) Update(msg tea.Msg) tea.Cmd {
	fm, ok := msg.(FrameMsg)
	if !ok || fm.tag != s.tag {
		return nil
	}
	s.ticking = false
	dt := fm.Time.Sub(s.last)
	if dt <= 0 {
		dt = s.interval
	}
	s.ticks.Advance(dt)
	return s.Cmd()
}

// Close refuses further frames.
func (s *Scheduler) Close() { s.ticks.Close() }
