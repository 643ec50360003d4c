package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"go.uber.org/zap"

	"github.com/phanxgames/reveal"
)

// RevealData is the component payload for an entity with a reveal. Set Active
// and let System push it to the binding on the next update.
type RevealData struct {
	Binding *reveal.Binding
	Active  bool
}

// Reveal is the Donburi component type holding RevealData.
var Reveal = donburi.NewComponentType[RevealData]()

// SettledEvent is published when an entity's reveal has fully opened.
type SettledEvent struct {
	Entity donburi.Entity
}

// SettledEventType is the Donburi event type for SettledEvent. Events are
// queued; call ProcessEvents (or events.ProcessAllEvents) each update.
var SettledEventType = events.NewEventType[SettledEvent]()

// NewReveal creates an entity carrying a reveal bound to surface. Its
// settle notifications are published as SettledEvent, after any OnSettle
// already set in opts. Frames must be delivered on the goroutine that owns
// world, so opts.Engine.Scheduler should be a TickScheduler (or the Stage's)
// rather than the timer fallback.
func NewReveal(world donburi.World, surface reveal.Surface, active bool, opts reveal.BindingOptions) (donburi.Entity, error) {
	entity := world.Create(Reveal)

	prev := opts.Engine.OnSettle
	opts.Engine.OnSettle = func() {
		if prev != nil {
			prev()
		}
		SettledEventType.Publish(world, SettledEvent{Entity: entity})
	}
	b, err := reveal.NewBinding(active, opts)
	if err != nil {
		world.Remove(entity)
		return donburi.Null, err
	}
	b.Attach(surface)

	Reveal.SetValue(world.Entry(entity), RevealData{Binding: b, Active: active})
	return entity, nil
}

// SetActive sets the desired flag of entity's reveal. It is applied on the
// next System.Update.
func SetActive(world donburi.World, entity donburi.Entity, active bool) {
	if !world.Valid(entity) {
		return
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(Reveal) {
		return
	}
	Reveal.Get(entry).Active = active
}

// Destroy detaches entity's reveal and removes the entity.
func Destroy(world donburi.World, entity donburi.Entity) {
	if !world.Valid(entity) {
		return
	}
	entry := world.Entry(entity)
	if entry.HasComponent(Reveal) {
		if b := Reveal.Get(entry).Binding; b != nil {
			b.Detach()
		}
	}
	world.Remove(entity)
}

// System syncs every RevealData.Active into its binding.
type System struct {
	log *zap.Logger
}

// NewSystem creates a System. A nil logger disables logging.
func NewSystem(logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{log: logger}
}

// Update pushes desired flags to the bindings. Reveals whose flag changed
// start or stop immediately; their frames arrive through their scheduler.
func (s *System) Update(world donburi.World) {
	Reveal.Each(world, func(entry *donburi.Entry) {
		d := Reveal.Get(entry)
		if d.Binding == nil || d.Binding.Active() == d.Active {
			return
		}
		d.Binding.SetActive(d.Active)
		s.log.Debug("reveal: active changed",
			zap.Any("entity", entry.Entity()),
			zap.Bool("active", d.Active))
	})
}
