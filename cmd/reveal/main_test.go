package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phanxgames/reveal"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePresets(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "springs.yaml")
	data := "springs:\n  bouncy:\n    stiffness: 220\n    damping: 14\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestKeyframesDefault(t *testing.T) {
	out, err := execute(t, "keyframes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "@keyframes reveal {\n  0.00% { clip-path: circle(0px at 160px 90px);"), out)
	assert.Contains(t, out, "100% { clip-path: none; -webkit-clip-path: none; }")
	assert.Contains(t, out, ".reveal {\n  animation: reveal ")
}

func TestKeyframesFlags(t *testing.T) {
	out, err := execute(t, "keyframes",
		"--size", "200x100", "--anchor", "0,1", "--name", "corner",
		"--preset", "snappy", "--integrator", "harmonica", "--fps", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "@keyframes corner {")
	assert.Contains(t, out, "circle(0px at 0px 100px)")
}

func TestKeyframesPixelAnchor(t *testing.T) {
	out, err := execute(t, "keyframes", "--anchor", "10px,20px")
	require.NoError(t, err)
	assert.Contains(t, out, "circle(0px at 10px 20px)")
}

func TestKeyframesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reveal.css")
	out, err := execute(t, "keyframes", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@keyframes reveal {")
}

func TestWriteCSSFile(t *testing.T) {
	frames, err := reveal.Simulate(reveal.KeyframeOptions{Width: 40, Height: 20})
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, reveal.WriteCSS(&want, "menu", frames))

	path := filepath.Join(t.TempDir(), "menu.css")
	require.NoError(t, writeCSSFile(path, "menu", frames))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want.String(), string(data))

	err = writeCSSFile(filepath.Join(t.TempDir(), "missing", "menu.css"), "menu", frames)
	assert.ErrorContains(t, err, "create output")
}

func TestWriteCSSFileReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	frames, err := reveal.Simulate(reveal.KeyframeOptions{Width: 40, Height: 20})
	require.NoError(t, err)

	_, err = execute(t, "keyframes", "-o", "/dev/full")
	assert.ErrorContains(t, err, "write css")
	assert.Error(t, writeCSSFile("/dev/full", "menu", frames))
}

func TestKeyframesPresetFromFile(t *testing.T) {
	out, err := execute(t, "keyframes", "--presets", writePresets(t), "--preset", "bouncy")
	require.NoError(t, err)
	assert.Contains(t, out, "@keyframes reveal {")
}

func TestKeyframesErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown preset", []string{"--preset", "nope"}, `unknown preset "nope"`},
		{"bad size", []string{"--size", "wide"}, "invalid size"},
		{"bad anchor", []string{"--anchor", "left"}, "invalid anchor"},
		{"bad integrator", []string{"--integrator", "rk4"}, "unknown integrator"},
		{"bad fps", []string{"--fps", "0"}, "--fps must be positive"},
		{"never settles", []string{"--max-frames", "3"}, "did not settle"},
		{"missing presets file", []string{"--presets", "/nonexistent/springs.yaml"}, "read presets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"keyframes"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "--presets", writePresets(t))
	require.NoError(t, err)
	for _, name := range append(reveal.PresetNames(), "bouncy") {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "STIFFNESS")
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("640X360")
	require.NoError(t, err)
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 360.0, h)

	for _, bad := range []string{"", "640", "0x10", "-1x5", "axb"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want reveal.Anchor
	}{
		{"", reveal.CenterAnchor},
		{"center", reveal.CenterAnchor},
		{"0.25, 0.75", reveal.RelativeAnchor{X: 0.25, Y: 0.75}},
		{"12px,-4px", reveal.PointAnchor{X: 12, Y: -4}},
	}
	for _, tt := range tests {
		got, err := parseAnchor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"top", "1px,0.5", "a,b"} {
		_, err := parseAnchor(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewPlayModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banner.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld!\n"), 0o644))

	c := &cli{logger: zap.NewNop()}
	m, err := c.newPlayModel(playFlags{preset: "gentle", file: path}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 6, m.Panel().Cols)
	assert.Equal(t, 2, m.Panel().Rows)
	assert.False(t, m.Active())

	_, err = c.newPlayModel(playFlags{preset: "nope"}, zap.NewNop())
	assert.Error(t, err)
}

func TestPlayLoggerKeepsTerminalClean(t *testing.T) {
	c := &cli{flags: rootFlags{verbose: true}, logger: zap.NewNop()}
	logger, err := c.playLogger("")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel), "play should not log without a log file")

	path := filepath.Join(t.TempDir(), "play.log")
	logger, err = c.playLogger(path)
	require.NoError(t, err)
	m, err := c.newPlayModel(playFlags{preset: "default", open: true}, logger)
	require.NoError(t, err)
	require.True(t, m.Active())
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reveal: start")
	assert.Contains(t, string(data), `"logger":"play"`)
}
