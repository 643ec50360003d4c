package reveal

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// scriptStep represents a single action in a playback script.
type scriptStep struct {
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a playback script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Snapshot is the clip state of one panel captured by a "snapshot" step.
type Snapshot struct {
	Label    string
	Target   string
	ClipPath string // "none" when unclipped
	Position float64
}

// ScriptRunner plays a JSON script against a Stage, one step per update,
// for automated visual tests and demos. Attach it with Stage.SetScriptRunner.
//
// Actions: "open", "close" and "toggle" change the target reveal's active
// flag; "detach" and "attach" unbind and rebind its panel; "wait" idles for
// Frames updates; "snapshot" records the target's clip under Label and
// "screenshot" queues a PNG of the next drawn frame.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	snapshots []Snapshot
}

var scriptActions = map[string]bool{
	"open": true, "close": true, "toggle": true,
	"attach": true, "detach": true, "wait": true, "snapshot": true,
	"screenshot": true,
}

// untargeted actions don't name a reveal.
var untargeted = map[string]bool{"wait": true, "screenshot": true}

// LoadScript parses a JSON playback script and returns a runner ready to be
// attached to a Stage.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if !untargeted[st.Action] && st.Target == "" {
			return nil, fmt.Errorf("parse script: step %d: %s needs a target", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Snapshots returns the snapshots taken so far, in order.
func (r *ScriptRunner) Snapshots() []Snapshot {
	return r.snapshots
}

// step advances the runner by one update. Called from Stage.Advance.
func (r *ScriptRunner) step(s *Stage) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	rv := s.reveals[st.Target]
	if rv == nil && !untargeted[st.Action] {
		s.log.Warn("reveal: script target not found",
			zap.String("action", st.Action), zap.String("target", st.Target))
	} else {
		switch st.Action {
		case "open":
			rv.binding.SetActive(true)
		case "close":
			rv.binding.SetActive(false)
		case "toggle":
			rv.binding.SetActive(!rv.binding.Active())
		case "attach":
			rv.binding.Attach(rv.panel)
		case "detach":
			rv.binding.Detach()
		case "wait":
			if st.Frames > 0 {
				r.waitCount = st.Frames - 1 // this update counts as one
			}
		case "snapshot":
			r.snapshots = append(r.snapshots, r.capture(st, rv))
		case "screenshot":
			s.Screenshot(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) capture(st scriptStep, rv *stageReveal) Snapshot {
	snap := Snapshot{Label: st.Label, Target: st.Target, ClipPath: "none"}
	if g, ok := rv.panel.Clip(); ok {
		snap.ClipPath = g.String()
	}
	if rv.binding.engine != nil {
		snap.Position = rv.binding.engine.Spring().Position
	}
	return snap
}
