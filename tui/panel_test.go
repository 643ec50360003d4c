package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phanxgames/reveal"
)

func TestPanelMeasure(t *testing.T) {
	w, h := NewPanel(10, 4).Measure()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 8.0, h)
}

func TestPanelMaskUnclipped(t *testing.T) {
	p := NewPanel(5, 3)
	got := p.Mask("abcdefg\nhi")
	assert.Equal(t, "abcde\nhi   \n     ", got)
}

func TestPanelMaskCollapsed(t *testing.T) {
	p := NewPanel(4, 2)
	g := reveal.ComputeGeometry(0, 4, 4, nil)
	p.SetClip(&g)
	assert.True(t, p.Clipped())
	assert.Equal(t, "    \n    ", p.Mask("abcd\nefgh"))
}

func TestPanelMaskCircle(t *testing.T) {
	p := NewPanel(9, 3)
	// 9x6 units: the center cell (4, 1) is at (4.5, 3).
	p.SetClip(&reveal.RevealGeometry{OriginX: 4.5, OriginY: 3, Radius: 1.5})
	content := strings.Repeat("#########\n", 2) + "#########"
	assert.Equal(t, "         \n   ###   \n         ", p.Mask(content))
}

func TestPanelMaskFullCoverage(t *testing.T) {
	p := NewPanel(12, 5)
	w, h := p.Measure()
	g := reveal.ComputeGeometry(1, w, h, reveal.RelativeAnchor{X: 0, Y: 1})
	p.SetClip(&g)
	content := strings.TrimSuffix(strings.Repeat("xxxxxxxxxxxx\n", 5), "\n")
	assert.Equal(t, content, p.Mask(content))
}

func TestPanelSetClipNil(t *testing.T) {
	p := NewPanel(3, 1)
	p.SetClip(&reveal.RevealGeometry{})
	p.SetClip(nil)
	assert.False(t, p.Clipped())
	assert.Equal(t, "abc", p.Mask("abc"))
}

func TestPanelEmpty(t *testing.T) {
	assert.Equal(t, "", NewPanel(0, 3).Mask("abc"))
	assert.Equal(t, "", NewPanel(3, 0).Mask("abc"))
}

func TestPanelRender(t *testing.T) {
	p := NewPanel(5, 1)
	assert.Contains(t, p.Render("hello"), "hello")
}
