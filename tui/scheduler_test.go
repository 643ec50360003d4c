package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/reveal"
)

// fakeClock drives a Scheduler without real ticks.
type fakeClock struct {
	now time.Time
}

func newTestScheduler() (*Scheduler, *fakeClock) {
	c := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewScheduler(time.Second / 60)
	s.clock = func() time.Time { return c.now }
	return s, c
}

// tick delivers one frame dt after the last Cmd and returns the follow-up
// command.
func (c *fakeClock) tick(s *Scheduler, dt time.Duration) tea.Cmd {
	c.now = c.now.Add(dt)
	return s.Update(FrameMsg{Time: c.now, tag: s.tag})
}

func TestSchedulerCmdOnlyWhenPending(t *testing.T) {
	s, _ := newTestScheduler()
	assert.Nil(t, s.Cmd())

	s.RequestFrame(func(time.Duration) {})
	assert.NotNil(t, s.Cmd())
	assert.Nil(t, s.Cmd(), "a tick is already in flight")
}

func TestSchedulerDeliversFrames(t *testing.T) {
	s, c := newTestScheduler()
	var got []time.Duration
	s.RequestFrame(func(now time.Duration) { got = append(got, now) })
	require.NotNil(t, s.Cmd())

	next := c.tick(s, 40*time.Millisecond)
	assert.Nil(t, next, "no frame requested during delivery")
	assert.Equal(t, []time.Duration{40 * time.Millisecond}, got)
	assert.Equal(t, 40*time.Millisecond, s.Now())
}

func TestSchedulerKeepsTickingWhileRequested(t *testing.T) {
	s, c := newTestScheduler()
	frames := 0
	var fn reveal.FrameFunc
	fn = func(time.Duration) {
		frames++
		if frames < 3 {
			s.RequestFrame(fn)
		}
	}
	s.RequestFrame(fn)
	cmd := s.Cmd()
	for cmd != nil {
		cmd = c.tick(s, time.Second/60)
	}
	assert.Equal(t, 3, frames)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerIgnoresOtherMessages(t *testing.T) {
	s, c := newTestScheduler()
	other := NewScheduler(0)
	fired := false
	s.RequestFrame(func(time.Duration) { fired = true })
	s.Cmd()

	assert.Nil(t, s.Update(tea.KeyMsg{Type: tea.KeySpace}))
	assert.Nil(t, s.Update(FrameMsg{Time: c.now, tag: other.tag}))
	assert.False(t, fired)
	assert.Equal(t, 1, s.Pending())
}

func TestSchedulerNonMonotonicTickUsesInterval(t *testing.T) {
	s, c := newTestScheduler()
	s.RequestFrame(func(time.Duration) {})
	s.Cmd()
	c.tick(s, -time.Second)
	assert.Equal(t, time.Second/60, s.Now())
}

func TestSchedulerTickCommand(t *testing.T) {
	s := NewScheduler(time.Millisecond)
	s.RequestFrame(func(time.Duration) {})
	cmd := s.Cmd()
	require.NotNil(t, cmd)

	msg := cmd()
	fm, ok := msg.(FrameMsg)
	require.True(t, ok, "expected FrameMsg, got %T", msg)
	assert.Equal(t, s.tag, fm.tag)
	assert.Nil(t, s.Update(fm))
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, NewScheduler(0).interval)
}

func TestSchedulerClose(t *testing.T) {
	s, _ := newTestScheduler()
	s.Close()
	assert.Equal(t, reveal.FrameID(0), s.RequestFrame(func(time.Duration) {}))
	assert.Nil(t, s.Cmd())
}

func TestSchedulerDrivesBinding(t *testing.T) {
	s, c := newTestScheduler()
	b, err := reveal.NewBinding(false, reveal.BindingOptions{Engine: reveal.Options{Scheduler: s}})
	require.NoError(t, err)
	p := NewPanel(40, 10)
	b.Attach(p)
	assert.True(t, p.Clipped())
	assert.Nil(t, s.Cmd(), "closed mount must not tick")

	b.SetActive(true)
	cmd := s.Cmd()
	frames := 0
	for cmd != nil && frames < 600 {
		cmd = c.tick(s, time.Second/60)
		frames++
	}
	assert.Less(t, frames, 600)
	assert.False(t, p.Clipped(), "settled reveal must remove the clip")
}
