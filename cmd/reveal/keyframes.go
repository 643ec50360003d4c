package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/reveal"
)

type keyframesFlags struct {
	preset     string
	size       string
	anchor     string
	integrator string
	name       string
	out        string
	fps        int
	maxFrames  int
}

func (c *cli) newKeyframesCmd() *cobra.Command {
	var f keyframesFlags
	cmd := &cobra.Command{
		Use:   "keyframes",
		Short: "Bake a reveal into CSS @keyframes",
		Long: `Simulate a reveal frame by frame and write it as a CSS @keyframes rule
plus a class that plays it. Every frame is a clip-path circle; the last one
is "none" so the element ends fully unclipped.`,
		Example: `  reveal keyframes --size 640x360 --preset snappy
  reveal keyframes --anchor 0,1 --name open-from-corner -o reveal.css`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runKeyframes(cmd.OutOrStdout(), f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.preset, "preset", "default", "Spring preset name")
	flags.StringVar(&f.size, "size", "320x180", "Surface size as WIDTHxHEIGHT pixels")
	flags.StringVar(&f.anchor, "anchor", "center", `Anchor as "center", fractions "X,Y" or pixels "Xpx,Ypx"`)
	flags.StringVar(&f.integrator, "integrator", "euler", "Spring integrator: euler or harmonica")
	flags.StringVar(&f.name, "name", "reveal", "Animation and class name")
	flags.StringVarP(&f.out, "output", "o", "", "Write CSS to this file instead of stdout")
	flags.IntVar(&f.fps, "fps", 60, "Simulated frames per second")
	flags.IntVar(&f.maxFrames, "max-frames", 600, "Give up if the spring has not settled after this many frames")
	return cmd
}

func (c *cli) runKeyframes(stdout io.Writer, f keyframesFlags) error {
	cfg, err := c.resolvePreset(f.preset)
	if err != nil {
		return err
	}
	w, h, err := parseSize(f.size)
	if err != nil {
		return err
	}
	anchor, err := parseAnchor(f.anchor)
	if err != nil {
		return err
	}
	integ, err := parseIntegrator(f.integrator)
	if err != nil {
		return err
	}
	if f.fps <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", f.fps)
	}

	frames, err := reveal.Simulate(reveal.KeyframeOptions{
		Spring:     cfg,
		Integrator: integ,
		Anchor:     anchor,
		Width:      w,
		Height:     h,
		FPS:        f.fps,
		MaxFrames:  f.maxFrames,
	})
	if err != nil {
		return err
	}

	if f.out == "" {
		if err := reveal.WriteCSS(stdout, f.name, frames); err != nil {
			return fmt.Errorf("write css: %w", err)
		}
	} else if err := writeCSSFile(f.out, f.name, frames); err != nil {
		return err
	}
	c.logger.Info("keyframes written",
		zap.String("preset", f.preset),
		zap.Int("frames", len(frames)),
		zap.Duration("duration", reveal.KeyframesDuration(frames)),
		zap.String("output", f.out))
	return nil
}

// writeCSSFile writes the keyframes to path. The close error is returned
// since it is where a failed flush shows up.
func writeCSSFile(path, name string, frames []reveal.Keyframe) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := reveal.WriteCSS(file, name, frames); err != nil {
		file.Close()
		return fmt.Errorf("write css: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	w, err1 := strconv.ParseFloat(ws, 64)
	h, err2 := strconv.ParseFloat(hs, 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: want positive WIDTHxHEIGHT", s)
	}
	return w, h, nil
}

// parseAnchor parses "center", "X,Y" fractions or "Xpx,Ypx" pixels.
func parseAnchor(s string) (reveal.Anchor, error) {
	if s == "" || s == "center" {
		return reveal.CenterAnchor, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid anchor %q", s)
	}
	xs, ys = strings.TrimSpace(xs), strings.TrimSpace(ys)
	xpx, ypx := strings.HasSuffix(xs, "px"), strings.HasSuffix(ys, "px")
	if xpx != ypx {
		return nil, fmt.Errorf("invalid anchor %q: mix of pixels and fractions", s)
	}
	x, err1 := strconv.ParseFloat(strings.TrimSuffix(xs, "px"), 64)
	y, err2 := strconv.ParseFloat(strings.TrimSuffix(ys, "px"), 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("invalid anchor %q", s)
	}
	if xpx {
		return reveal.PointAnchor{X: x, Y: y}, nil
	}
	return reveal.RelativeAnchor{X: x, Y: y}, nil
}

func parseIntegrator(s string) (reveal.Integrator, error) {
	switch s {
	case "", "euler":
		return reveal.EulerIntegrator{}, nil
	case "harmonica":
		return reveal.HarmonicaIntegrator{}, nil
	default:
		return nil, fmt.Errorf("unknown integrator %q: want euler or harmonica", s)
	}
}
