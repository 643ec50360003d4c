// Package reveal animates "liquid open" reveals: a circle grows from an anchor
// point until it uncovers a whole rectangular surface, driven by a damped
// spring rather than a fixed-duration tween.
//
// The package is split into small layers that can be used on their own:
// spring math ([Step], [Settled], [Integrator]), clip geometry
// ([ComputeGeometry], [RevealGeometry]), the frame-driven [Engine] and the
// [Binding] that connects an engine to an "active" flag and a surface's
// attach/detach lifecycle.
//
// # Quick start
//
// With Ebitengine, a [Stage] owns the frame scheduler and the panels:
//
//	stage := reveal.NewStage()
//	panel := reveal.NewPanel("menu", menuImage)
//	menu, err := stage.NewReveal("menu", panel, false, reveal.BindingOptions{})
//	// ...
//	menu.SetActive(true) // the panel opens on the next ticks
//	reveal.Run(stage, reveal.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// For full control implement [ebiten.Game] yourself and call [Stage.Update]
// and [Stage.Draw] directly.
//
// # Surfaces and schedulers
//
// An engine only needs a [Surface] (something that can report its size and
// accept a clip circle) and a [FrameScheduler] (something that calls it back
// once per frame). [Panel] and [StyleSurface] are the bundled surfaces;
// [TickScheduler] and [TimerScheduler] the bundled schedulers. The tui
// sub-package provides both for bubbletea programs.
//
// # Lifecycle
//
// [Engine.Start] is idempotent while running, [Engine.Stop] freezes the reveal
// where it is and keeps the spring state so a later Start continues smoothly,
// and [Engine.Destroy] is final. Once the spring settles the clip is removed
// altogether rather than left as a circle covering the surface. To shut a
// reveal visually use [Engine.Collapse] (instant) or [Engine.Close] (eased,
// via [gween]).
//
// # Tooling
//
// [Simulate] and [WriteCSS] turn a spring into CSS @keyframes for web pages;
// the reveal command wraps them. [LoadScript] plays scripted open/close
// sequences against a Stage for automated visual tests.
//
// [gween]: https://github.com/tanema/gween
package reveal
