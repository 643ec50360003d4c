package reveal

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// stageReveal pairs a named binding with the panel it is attached to.
type stageReveal struct {
	binding *Binding
	panel   *Panel
}

// Stage is the top-level object for Ebitengine programs. It owns the tick
// scheduler every reveal on it runs on, the panels in draw order, and the
// named reveals created with NewReveal.
type Stage struct {
	// ClearColor fills the screen before panels are drawn. A zero alpha
	// skips the fill.
	ClearColor Color

	// ScreenshotDir receives PNGs queued with Screenshot. Defaults to
	// "screenshots".
	ScreenshotDir string

	sched   *TickScheduler
	panels  []*Panel
	reveals map[string]*stageReveal
	log     *zap.Logger
	debug   bool
	script  *ScriptRunner
	shots   []string
}

// NewStage creates an empty stage with its own tick scheduler.
func NewStage() *Stage {
	return &Stage{
		ScreenshotDir: "screenshots",
		sched:         NewTickScheduler(),
		reveals:       make(map[string]*stageReveal),
		log:           zap.NewNop(),
	}
}

// SetLogger sets the logger used for debug output and handed to reveals
// created afterwards. Nil restores the no-op logger.
func (s *Stage) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// Scheduler returns the stage's tick scheduler.
func (s *Stage) Scheduler() *TickScheduler {
	return s.sched
}

// AddPanel appends p to the draw order. Adding a panel twice is a no-op.
func (s *Stage) AddPanel(p *Panel) {
	for _, q := range s.panels {
		if q == p {
			return
		}
	}
	s.panels = append(s.panels, p)
}

// RemovePanel removes p from the draw order.
func (s *Stage) RemovePanel(p *Panel) {
	for i, q := range s.panels {
		if q == p {
			s.panels = append(s.panels[:i], s.panels[i+1:]...)
			return
		}
	}
}

// Panels returns the panels in draw order. The slice must not be modified.
func (s *Stage) Panels() []*Panel {
	return s.panels
}

// NewReveal adds p to the stage and binds it under name. The binding runs on
// the stage scheduler; a nil engine logger is replaced by the stage logger.
func (s *Stage) NewReveal(name string, p *Panel, active bool, opts BindingOptions) (*Binding, error) {
	if _, ok := s.reveals[name]; ok {
		return nil, fmt.Errorf("reveal: stage already has a reveal named %q", name)
	}
	opts.Engine.Scheduler = s.sched
	if opts.Engine.Logger == nil {
		opts.Engine.Logger = s.log.With(zap.String("reveal", name))
	}
	b, err := NewBinding(active, opts)
	if err != nil {
		return nil, fmt.Errorf("reveal %q: %w", name, err)
	}
	s.AddPanel(p)
	b.Attach(p)
	s.reveals[name] = &stageReveal{binding: b, panel: p}
	return b, nil
}

// Reveal returns the binding registered under name, or nil.
func (s *Stage) Reveal(name string) *Binding {
	if r, ok := s.reveals[name]; ok {
		return r.binding
	}
	return nil
}

// Toggle flips the active flag of the named reveal and returns the new
// value. Unknown names return false.
func (s *Stage) Toggle(name string) bool {
	b := s.Reveal(name)
	if b == nil {
		return false
	}
	b.SetActive(!b.Active())
	return b.Active()
}

// RemoveReveal detaches the named reveal and removes its panel.
func (s *Stage) RemoveReveal(name string) {
	r, ok := s.reveals[name]
	if !ok {
		return
	}
	r.binding.Detach()
	s.RemovePanel(r.panel)
	delete(s.reveals, name)
}

// PanelAt returns the topmost panel containing the screen point (x, y).
func (s *Stage) PanelAt(x, y float64) *Panel {
	for i := len(s.panels) - 1; i >= 0; i-- {
		if s.panels[i].Bounds().Contains(x, y) {
			return s.panels[i]
		}
	}
	return nil
}

// RevealFor returns the name of the reveal bound to p, or "".
func (s *Stage) RevealFor(p *Panel) string {
	for name, r := range s.reveals {
		if r.panel == p {
			return name
		}
	}
	return ""
}

// SetScriptRunner attaches a script that is stepped once per Update before
// frames are delivered.
func (s *Stage) SetScriptRunner(r *ScriptRunner) {
	s.script = r
}

// Update advances the stage by one Ebitengine tick.
func (s *Stage) Update() {
	s.Advance(time.Second / time.Duration(ebiten.TPS()))
}

// Advance steps the script, if any, then delivers one frame dt later.
func (s *Stage) Advance(dt time.Duration) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.script != nil {
		s.script.step(s)
	}
	s.sched.Advance(dt)
	if s.debug {
		s.debugLog(s.collectStats(time.Since(t0)))
	}
}

// Draw fills the screen with ClearColor, draws every panel in order and
// writes any queued screenshots.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	for _, p := range s.panels {
		p.Draw(screen)
	}
	s.flushScreenshots(screen)
}

// SetDebugMode enables per-update stats logged at debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}
