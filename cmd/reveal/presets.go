package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/reveal"
)

// loadPresets returns the built-in presets merged with those from the
// --presets file. File presets win on name clashes.
func (c *cli) loadPresets() (map[string]reveal.SpringConfig, error) {
	all := make(map[string]reveal.SpringConfig)
	for _, name := range reveal.PresetNames() {
		all[name], _ = reveal.Preset(name)
	}
	if c.flags.presetsFile == "" {
		return all, nil
	}
	data, err := os.ReadFile(c.flags.presetsFile)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	extra, err := reveal.ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.flags.presetsFile, err)
	}
	for name, cfg := range extra {
		all[name] = cfg
	}
	c.logger.Debug("loaded presets", zap.String("file", c.flags.presetsFile), zap.Int("count", len(extra)))
	return all, nil
}

// resolvePreset looks up name among the loaded presets.
func (c *cli) resolvePreset(name string) (reveal.SpringConfig, error) {
	all, err := c.loadPresets()
	if err != nil {
		return reveal.SpringConfig{}, err
	}
	cfg, ok := all[name]
	if !ok {
		return reveal.SpringConfig{}, fmt.Errorf("unknown preset %q", name)
	}
	return cfg, nil
}

func (c *cli) newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List spring presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := c.loadPresets()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("NAME", "STIFFNESS", "DAMPING", "MASS", "PRECISION", "RATIO", "SETTLES")
			for _, name := range names {
				cfg := all[name]
				settle := "-"
				if frames, err := reveal.Simulate(reveal.KeyframeOptions{Spring: cfg, Width: 1, Height: 1}); err == nil {
					settle = fmt.Sprintf("%dms", reveal.KeyframesDuration(frames).Milliseconds())
				}
				t.Row(name,
					fmt.Sprintf("%g", cfg.Stiffness),
					fmt.Sprintf("%g", cfg.Damping),
					fmt.Sprintf("%g", cfg.Mass),
					fmt.Sprintf("%g", cfg.Precision),
					fmt.Sprintf("%.2f", cfg.DampingRatio()),
					settle)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}
