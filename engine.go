package reveal

import (
	"fmt"
	"sync"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// State is an Engine's lifecycle state.
type State uint8

const (
	StateIdle      State = iota // no frame loop; clip untouched or cleared after settling
	StateRunning                // spring frame loop active
	StateClosing                // eased collapse toward position 0 (see Engine.Close)
	StateDestroyed              // terminal; every method is a no-op
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Options configures an Engine. The zero value is usable: DefaultSpring,
// Euler integration, centered anchor, timer fallback scheduler, no logging.
type Options struct {
	Spring     SpringConfig
	Integrator Integrator
	Anchor     Anchor
	// Scheduler delivers frames. Nil selects a private TimerScheduler.
	Scheduler FrameScheduler
	Logger    *zap.Logger
	// OnSettle is called after the spring settles and the clip is cleared.
	// It runs outside the engine lock and may call back into the engine.
	OnSettle func()
}

// withDefaults fills zero fields and validates the spring.
func (o Options) withDefaults() (Options, error) {
	if o.Spring.IsZero() {
		o.Spring = DefaultSpring
	}
	if err := o.Spring.Validate(); err != nil {
		return o, err
	}
	if o.Integrator == nil {
		o.Integrator = EulerIntegrator{}
	}
	if o.Anchor == nil {
		o.Anchor = CenterAnchor
	}
	if o.Scheduler == nil {
		o.Scheduler = NewTimerScheduler(0)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o, nil
}

// Engine drives one surface's reveal: a spring integrated once per frame,
// mapped to a clip circle, written to the surface. It is safe for concurrent
// use; frames from a TimerScheduler arrive on timer goroutines.
type Engine struct {
	mu sync.Mutex

	surface    Surface
	sched      FrameScheduler
	spring     SpringConfig
	integrator Integrator
	anchor     Anchor
	log        *zap.Logger
	onSettle   func()

	state   State
	current SpringState
	settled bool
	closing *collapseTween

	frame FrameID       // pending request, 0 when none
	token uint64        // bumped on every request and cancel; stale frames compare unequal
	last  time.Duration // timestamp of the previous frame
}

// NewEngine creates an idle engine for surface. It fails only on an invalid
// spring config. A nil surface is tolerated: the spring still runs but
// nothing is measured or written.
func NewEngine(surface Surface, opts Options) (*Engine, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return newEngine(surface, opts), nil
}

// newEngine assumes opts already went through withDefaults.
func newEngine(surface Surface, opts Options) *Engine {
	return &Engine{
		surface:    surface,
		sched:      opts.Scheduler,
		spring:     opts.Spring,
		integrator: opts.Integrator,
		anchor:     opts.Anchor,
		log:        opts.Logger,
		onSettle:   opts.OnSettle,
	}
}

// Start begins or resumes the reveal. While running it is a no-op, so rapid
// toggling never snaps back to zero. After Stop it resumes from the stopped
// position and velocity; after settling it replays from zero. Starting during
// Close reverses the collapse from its current position.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateDestroyed, StateRunning:
		return
	case StateClosing:
		e.closing = nil
		e.current.Velocity = 0
		e.state = StateRunning
		e.log.Debug("reveal: reversing collapse", zap.Float64("position", e.current.Position))
		return
	}

	if e.settled {
		e.current = SpringState{}
		e.settled = false
	}
	e.last = e.sched.Now()
	e.state = StateRunning
	if !e.request() {
		e.state = StateIdle
		e.log.Warn("reveal: scheduler refused frame, staying idle")
		return
	}
	e.log.Debug("reveal: start",
		zap.Float64("position", e.current.Position),
		zap.Float64("velocity", e.current.Velocity))
}

// Stop halts the frame loop before the next frame fires. The spring state is
// kept so a following Start continues smoothly, and the clip is left as last
// drawn. Use Collapse or Close to reset the surface visually.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning && e.state != StateClosing {
		return
	}
	e.cancel()
	e.closing = nil
	e.state = StateIdle
	e.log.Debug("reveal: stop", zap.Float64("position", e.current.Position))
}

// Destroy stops the engine for good and drops its surface and scheduler.
// Safe to call any number of times.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateDestroyed {
		return
	}
	e.cancel()
	e.closing = nil
	e.state = StateDestroyed
	e.surface = nil
	e.sched = nil
	e.onSettle = nil
	e.log.Debug("reveal: destroy")
}

// Close eases the reveal shut over duration seconds using fn (nil means
// ease.OutCubic), starting from the current position. It ends idle with a
// zero-radius circle written. A non-positive duration collapses immediately.
func (e *Engine) Close(duration float32, fn ease.TweenFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateDestroyed {
		return
	}
	if duration <= 0 {
		e.collapseLocked()
		return
	}
	e.settled = false
	e.current.Velocity = 0
	e.closing = newCollapseTween(&e.current.Position, duration, fn)
	if e.state == StateRunning || e.state == StateClosing {
		// The pending frame carries on with the new tween.
		e.state = StateClosing
		return
	}
	e.state = StateClosing
	e.last = e.sched.Now()
	if !e.request() {
		e.collapseLocked()
	}
}

// Collapse snaps the reveal shut: the frame loop stops, the spring resets to
// zero and a zero-radius circle is written at the anchor.
func (e *Engine) Collapse() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateDestroyed {
		return
	}
	e.collapseLocked()
}

func (e *Engine) collapseLocked() {
	e.cancel()
	e.closing = nil
	e.current = SpringState{}
	e.settled = false
	e.state = StateIdle
	e.write(false)
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Spring returns a snapshot of the spring state.
func (e *Engine) Spring() SpringState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// request registers the next frame. Caller holds e.mu.
func (e *Engine) request() bool {
	e.token++
	tok := e.token
	e.frame = e.sched.RequestFrame(func(now time.Duration) {
		e.onFrame(tok, now)
	})
	return e.frame != 0
}

// cancel drops the pending frame and invalidates any callback already handed
// to the host. Caller holds e.mu.
func (e *Engine) cancel() {
	e.token++
	if e.frame != 0 {
		e.sched.CancelFrame(e.frame)
		e.frame = 0
	}
}

func (e *Engine) onFrame(tok uint64, now time.Duration) {
	e.mu.Lock()
	if tok != e.token || (e.state != StateRunning && e.state != StateClosing) {
		e.mu.Unlock()
		return
	}
	e.frame = 0
	dt := (now - e.last).Seconds()
	e.last = now

	if e.state == StateClosing {
		e.closing.Update(float32(dt))
		if e.closing.Done {
			e.closing = nil
			e.current = SpringState{}
			e.state = StateIdle
			e.write(false)
			e.log.Debug("reveal: closed")
			e.mu.Unlock()
			return
		}
		e.write(false)
		e.requestOrIdle()
		e.mu.Unlock()
		return
	}

	e.current = e.integrator.Step(e.current, e.spring, dt)
	if Settled(e.current, e.spring) {
		e.current = SpringState{Position: 1}
		e.settled = true
		e.state = StateIdle
		e.write(true)
		e.log.Debug("reveal: settled")
		onSettle := e.onSettle
		e.mu.Unlock()
		if onSettle != nil {
			onSettle()
		}
		return
	}
	e.write(false)
	e.requestOrIdle()
	e.mu.Unlock()
}

func (e *Engine) requestOrIdle() {
	if !e.request() {
		e.state = StateIdle
		e.log.Warn("reveal: scheduler refused frame, staying idle")
	}
}

// write measures the surface and applies the clip for the current position,
// or removes the clip when unclipped is set. Caller holds e.mu.
func (e *Engine) write(unclipped bool) {
	if e.surface == nil {
		return
	}
	if unclipped {
		e.surface.SetClip(nil)
		return
	}
	w, h := e.surface.Measure()
	g := ComputeGeometry(e.current.Position, w, h, e.anchor)
	e.surface.SetClip(&g)
}
