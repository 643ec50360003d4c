package ecs

import (
	"errors"
	"testing"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/reveal"
)

const testFrame = time.Second / 60

func newTestReveal(t *testing.T, world donburi.World, active bool) (donburi.Entity, *reveal.StyleSurface, *reveal.TickScheduler) {
	t.Helper()
	sched := reveal.NewTickScheduler()
	s := &reveal.StyleSurface{Width: 100, Height: 60}
	e, err := NewReveal(world, s, active, reveal.BindingOptions{Engine: reveal.Options{Scheduler: sched}})
	if err != nil {
		t.Fatalf("NewReveal: %v", err)
	}
	return e, s, sched
}

func TestNewReveal(t *testing.T) {
	world := donburi.NewWorld()
	e, s, sched := newTestReveal(t, world, false)

	if !world.Valid(e) {
		t.Fatal("entity not created")
	}
	d := Reveal.Get(world.Entry(e))
	if d.Binding == nil || d.Active {
		t.Fatalf("component = %+v, want inactive binding", d)
	}
	if s.ClipPath != "circle(0px at 50px 30px)" {
		t.Errorf("ClipPath = %q, want collapsed", s.ClipPath)
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", sched.Pending())
	}
}

func TestNewRevealInvalidSpring(t *testing.T) {
	world := donburi.NewWorld()
	_, err := NewReveal(world, &reveal.StyleSurface{}, true, reveal.BindingOptions{
		Engine: reveal.Options{Spring: reveal.SpringConfig{Stiffness: -1, Mass: 1, Precision: 1}},
	})
	if !errors.Is(err, reveal.ErrInvalidSpring) {
		t.Fatalf("err = %v, want ErrInvalidSpring", err)
	}
	if n := donburi.NewQuery(filter.Contains(Reveal)).Count(world); n != 0 {
		t.Errorf("%d entities left after failed NewReveal", n)
	}
}

func TestSystemSyncsActive(t *testing.T) {
	world := donburi.NewWorld()
	e, s, sched := newTestReveal(t, world, false)
	sys := NewSystem(nil)

	SetActive(world, e, true)
	if sched.Pending() != 0 {
		t.Fatal("SetActive applied before System.Update")
	}
	sys.Update(world)
	if sched.Pending() != 1 {
		t.Fatalf("Pending() = %d after Update, want 1", sched.Pending())
	}
	sched.AdvanceFrames(5, testFrame)
	if !s.Clipped() || s.ClipPath == "circle(0px at 50px 30px)" {
		t.Errorf("ClipPath = %q, want opening", s.ClipPath)
	}

	// Repeated updates with the same flag do nothing.
	requests := sched.Requests()
	sys.Update(world)
	if sched.Requests() != requests {
		t.Error("unchanged flag re-started the reveal")
	}

	Reveal.Get(world.Entry(e)).Active = false
	sys.Update(world)
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d after deactivating, want 0", sched.Pending())
	}
}

func TestSettledEvent(t *testing.T) {
	world := donburi.NewWorld()
	settledHook := 0
	sched := reveal.NewTickScheduler()
	e, err := NewReveal(world, &reveal.StyleSurface{Width: 10, Height: 10}, true, reveal.BindingOptions{
		Engine: reveal.Options{Scheduler: sched, OnSettle: func() { settledHook++ }},
	})
	if err != nil {
		t.Fatal(err)
	}

	var received []SettledEvent
	SettledEventType.Subscribe(world, func(w donburi.World, ev SettledEvent) {
		received = append(received, ev)
	})

	sched.AdvanceFrames(180, testFrame)

	// Events are queued until processed.
	SettledEventType.ProcessEvents(world)

	if len(received) != 1 || received[0].Entity != e {
		t.Fatalf("received %+v, want one event for %v", received, e)
	}
	if settledHook != 1 {
		t.Errorf("OnSettle called %d times, want 1", settledHook)
	}
}

func TestDestroy(t *testing.T) {
	world := donburi.NewWorld()
	e, s, sched := newTestReveal(t, world, true)
	b := Reveal.Get(world.Entry(e)).Binding

	Destroy(world, e)
	Destroy(world, e)
	SetActive(world, e, true)

	if world.Valid(e) {
		t.Error("entity still valid after Destroy")
	}
	if b.Attached() {
		t.Error("binding still attached after Destroy")
	}
	writes := s.Writes
	sched.AdvanceFrames(10, testFrame)
	if s.Writes != writes || sched.Pending() != 0 {
		t.Error("destroyed reveal kept animating")
	}
}

func TestSystemManyEntities(t *testing.T) {
	world := donburi.NewWorld()
	sched := reveal.NewTickScheduler()
	var entities []donburi.Entity
	for i := 0; i < 5; i++ {
		e, err := NewReveal(world, &reveal.StyleSurface{Width: 10, Height: 10}, false,
			reveal.BindingOptions{Engine: reveal.Options{Scheduler: sched}})
		if err != nil {
			t.Fatal(err)
		}
		entities = append(entities, e)
	}
	for _, e := range entities[:3] {
		SetActive(world, e, true)
	}
	NewSystem(nil).Update(world)
	if sched.Pending() != 3 {
		t.Errorf("Pending() = %d, want 3", sched.Pending())
	}
}
