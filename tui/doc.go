// Package tui runs reveal animations inside bubbletea programs.
//
// [Scheduler] turns frame requests into tea.Tick commands, [Panel] is a
// terminal cell grid that masks its content with the reveal circle, and
// [Model] combines both into a toggleable panel for quick demos:
//
//	m, err := tui.NewModel(tui.ModelConfig{Title: "menu", Content: text})
//	if err != nil { ... }
//	_, err = tea.NewProgram(m).Run()
//
// When embedding a Scheduler in your own model, route every message through
// Scheduler.Update and return Scheduler.Cmd after anything that may start a
// reveal.
package tui
