package reveal

import (
	"reflect"

	"github.com/tanema/gween/ease"
)

// Ref is a callback ref: the UI layer calls it with the surface it rendered,
// and with nil when that surface goes away.
type Ref func(Surface)

// BindingOptions configures a Binding.
type BindingOptions struct {
	// Engine is used for every engine the binding builds.
	Engine Options

	// CloseDuration, when positive, makes deactivation ease the reveal shut
	// with Engine.Close instead of freezing it with Engine.Stop.
	CloseDuration float32
	// CloseEase is the easing for CloseDuration. Nil means ease.OutCubic.
	CloseEase ease.TweenFunc
}

// Binding ties a boolean active flag and a surface's attach/detach lifecycle
// to an Engine. Each attached surface gets its own engine; detaching or
// swapping the surface destroys it. Not safe for concurrent use: call it from
// the goroutine that owns the UI.
type Binding struct {
	opts          Options
	closeDuration float32
	closeEase     ease.TweenFunc

	active  bool
	surface Surface
	engine  *Engine
}

// NewBinding creates a detached binding with the initial active flag.
// The spring config is validated here so attach never fails later.
func NewBinding(active bool, opts BindingOptions) (*Binding, error) {
	eo, err := opts.Engine.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Binding{
		opts:          eo,
		closeDuration: opts.CloseDuration,
		closeEase:     opts.CloseEase,
		active:        active,
	}, nil
}

// Ref returns the callback ref to hand to the UI layer.
func (b *Binding) Ref() Ref {
	return b.Attach
}

// Attach binds s. Attaching the surface already bound is a no-op; any other
// surface replaces it, destroying the old engine first. A surface attached
// while active starts revealing at once; one attached while inactive is
// collapsed immediately so no animation plays. Attach(nil) detaches.
// Surfaces whose dynamic type is not comparable always count as new.
func (b *Binding) Attach(s Surface) {
	if sameSurface(s, b.surface) {
		return
	}
	b.release()
	if s == nil {
		return
	}
	b.surface = s
	b.engine = newEngine(s, b.opts)
	if b.active {
		b.engine.Start()
		return
	}
	b.engine.Stop()
	b.engine.Collapse()
}

// Detach destroys the engine of the bound surface, if any.
func (b *Binding) Detach() {
	b.release()
}

func (b *Binding) release() {
	if b.engine != nil {
		b.engine.Destroy()
	}
	b.engine = nil
	b.surface = nil
}

// SetActive updates the flag. false→true starts the reveal; true→false stops
// it in place, or eases it shut when CloseDuration is set. Repeating the
// current value does nothing.
func (b *Binding) SetActive(active bool) {
	if active == b.active {
		return
	}
	b.active = active
	if b.engine == nil {
		return
	}
	switch {
	case active:
		b.engine.Start()
	case b.closeDuration > 0:
		b.engine.Close(b.closeDuration, b.closeEase)
	default:
		b.engine.Stop()
	}
}

// Active returns the current flag.
func (b *Binding) Active() bool { return b.active }

// Attached reports whether a surface is bound.
func (b *Binding) Attached() bool { return b.surface != nil }

// state reports the bound engine's state, StateDestroyed when detached.
func (b *Binding) state() State {
	if b.engine == nil {
		return StateDestroyed
	}
	return b.engine.State()
}

// sameSurface is == for surfaces, except that values of uncomparable types
// are never the same.
func sameSurface(a, b Surface) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}
