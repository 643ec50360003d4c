// Package ecs provides a [Donburi] adapter for reveal bindings.
//
// [NewReveal] creates an entity whose [Reveal] component holds a
// [reveal.Binding]; systems flip RevealData.Active (or call [SetActive]) and
// [System] applies the change. Subscribe to [SettledEventType] to react when
// a reveal has fully opened.
//
// Usage:
//
//	stage := reveal.NewStage()
//	opts := reveal.BindingOptions{Engine: reveal.Options{Scheduler: stage.Scheduler()}}
//	e, err := ecs.NewReveal(world, panel, false, opts)
//	sys := ecs.NewSystem(nil)
//	// each tick:
//	sys.Update(world)
//	stage.Update()
//	ecs.SettledEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
