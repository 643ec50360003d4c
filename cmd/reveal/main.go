// Command reveal exports spring reveal animations as CSS keyframes, lists the
// available spring presets and plays a reveal in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	verbose     bool
	presetsFile string
}

// cli carries the state shared by the subcommands of one invocation.
type cli struct {
	flags  rootFlags
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "reveal",
		Short: "Spring-driven circular reveal animations",
		Long: `reveal simulates "liquid open" reveals: a circle that grows from an
anchor point until it uncovers a whole rectangle, driven by a damped spring.

Use "keyframes" to bake a reveal into CSS @keyframes, "presets" to inspect
the spring presets and "play" to watch one in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if c.flags.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.flags.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&c.flags.presetsFile, "presets", "", "YAML file with extra spring presets")

	root.AddCommand(c.newKeyframesCmd())
	root.AddCommand(c.newPresetsCmd())
	root.AddCommand(c.newPlayCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
