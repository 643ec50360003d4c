package reveal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// KeyframeOptions configures Simulate.
type KeyframeOptions struct {
	Spring     SpringConfig
	Integrator Integrator
	Anchor     Anchor

	Width, Height float64

	// FPS is the simulated frame rate. Zero means 60.
	FPS int
	// MaxFrames bounds the simulation. Zero means 600.
	MaxFrames int
}

// Keyframe is the clip of one simulated frame.
type Keyframe struct {
	At       time.Duration
	Position float64
	// ClipPath is a CSS clip-path value; "none" once the reveal settled.
	ClipPath string
}

// Simulate runs a reveal headless, from closed until the spring settles, and
// returns one keyframe per frame. The first keyframe is the collapsed circle
// at time zero and the last one is "none". It fails on an invalid spring or
// when the spring has not settled after MaxFrames frames; in the latter case
// the frames simulated so far are returned too.
func Simulate(opts KeyframeOptions) ([]Keyframe, error) {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	maxFrames := opts.MaxFrames
	if maxFrames <= 0 {
		maxFrames = 600
	}

	sched := NewTickScheduler()
	defer sched.Close()
	surface := &StyleSurface{Width: opts.Width, Height: opts.Height}
	e, err := NewEngine(surface, Options{
		Spring:     opts.Spring,
		Integrator: opts.Integrator,
		Anchor:     opts.Anchor,
		Scheduler:  sched,
	})
	if err != nil {
		return nil, err
	}
	defer e.Destroy()

	frames := make([]Keyframe, 0, 64)
	record := func() {
		clip := surface.ClipPath
		if clip == "" {
			clip = "none"
		}
		frames = append(frames, Keyframe{
			At:       sched.Now(),
			Position: e.Spring().Position,
			ClipPath: clip,
		})
	}

	e.Collapse()
	record()
	e.Start()
	step := time.Second / time.Duration(fps)
	for i := 0; i < maxFrames && e.State() == StateRunning; i++ {
		sched.Advance(step)
		record()
	}
	if e.State() == StateRunning {
		return frames, fmt.Errorf("reveal: spring did not settle within %d frames", maxFrames)
	}
	return frames, nil
}

// KeyframesDuration returns the time of the last keyframe.
func KeyframesDuration(frames []Keyframe) time.Duration {
	if len(frames) == 0 {
		return 0
	}
	return frames[len(frames)-1].At
}

// WriteCSS writes frames as a CSS @keyframes rule called name, mirroring
// every clip-path into -webkit-clip-path, followed by a class rule that plays
// it once with linear timing (the easing is baked into the frames).
func WriteCSS(w io.Writer, name string, frames []Keyframe) error {
	if len(frames) == 0 {
		return fmt.Errorf("reveal: no keyframes to write")
	}
	total := KeyframesDuration(frames)

	var b strings.Builder
	fmt.Fprintf(&b, "@keyframes %s {\n", name)
	lastPct := ""
	for i, f := range frames {
		pct := "100"
		if total > 0 && i < len(frames)-1 {
			pct = strconv.FormatFloat(float64(f.At)/float64(total)*100, 'f', 2, 64)
		}
		if pct == lastPct {
			continue
		}
		lastPct = pct
		fmt.Fprintf(&b, "  %s%% { clip-path: %s; -webkit-clip-path: %s; }\n", pct, f.ClipPath, f.ClipPath)
	}
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, ".%s {\n  animation: %s %.3fs linear both;\n}\n", name, name, total.Seconds())

	_, err := io.WriteString(w, b.String())
	return err
}
