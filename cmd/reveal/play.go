package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phanxgames/reveal"
	"github.com/phanxgames/reveal/tui"
)

type playFlags struct {
	preset        string
	file          string
	open          bool
	closeDuration float32
	logFile       string
}

var defaultPlayContent = strings.Join([]string{
	"+--------------------------------------+",
	"|                                      |",
	"|        ~~~  liquid open  ~~~         |",
	"|                                      |",
	"|   press space to toggle the reveal   |",
	"|                                      |",
	"+--------------------------------------+",
}, "\n")

func (c *cli) newPlayCmd() *cobra.Command {
	var f playFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a reveal in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.playLogger(f.logFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			m, err := c.newPlayModel(f, logger)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.preset, "preset", "default", "Spring preset name")
	flags.StringVarP(&f.file, "file", "f", "", "Text file to reveal instead of the built-in banner")
	flags.BoolVar(&f.open, "open", false, "Start with the reveal opening")
	flags.Float32Var(&f.closeDuration, "close-duration", 0.3, "Seconds to ease the reveal shut; 0 freezes it instead")
	flags.StringVar(&f.logFile, "log-file", "", "Write reveal logs to this file while the terminal is in use")
	return cmd
}

func (c *cli) newPlayModel(f playFlags, logger *zap.Logger) (*tui.Model, error) {
	cfg, err := c.resolvePreset(f.preset)
	if err != nil {
		return nil, err
	}
	content := defaultPlayContent
	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
		content = strings.TrimRight(string(data), "\n")
	}
	return tui.NewModel(tui.ModelConfig{
		Title:   "reveal: " + f.preset,
		Content: content,
		Active:  f.open,
		Binding: reveal.BindingOptions{
			Engine:        reveal.Options{Spring: cfg, Logger: logger},
			CloseDuration: f.closeDuration,
		},
	})
}

// playLogger returns the logger for the engines of the play command. The
// terminal belongs to bubbletea, so logs only go to logFile; without one they
// are dropped.
func (c *cli) playLogger(logFile string) (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{logFile}
	config.ErrorOutputPaths = []string{logFile}
	if c.flags.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return logger.Named("play"), nil
}
