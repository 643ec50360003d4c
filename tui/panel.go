package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/reveal"
)

// CellAspect is the height of a terminal cell in width units. Panels measure
// rows at this scale so reveal circles come out round on screen.
const CellAspect = 2.0

// Panel is a reveal.Surface made of terminal cells. Content is laid out one
// rune per cell; cells outside the clip circle render as spaces.
type Panel struct {
	Cols, Rows int
	Style      lipgloss.Style

	clip    reveal.RevealGeometry
	clipped bool
}

// NewPanel creates an unclipped panel of cols×rows cells.
func NewPanel(cols, rows int) *Panel {
	return &Panel{Cols: cols, Rows: rows, Style: lipgloss.NewStyle()}
}

// Measure implements reveal.Surface.
func (p *Panel) Measure() (float64, float64) {
	return float64(p.Cols), float64(p.Rows) * CellAspect
}

// SetClip implements reveal.Surface.
func (p *Panel) SetClip(clip *reveal.RevealGeometry) {
	if clip == nil {
		p.clip, p.clipped = reveal.RevealGeometry{}, false
		return
	}
	p.clip, p.clipped = *clip, true
}

// Clipped reports whether a clip is applied.
func (p *Panel) Clipped() bool { return p.clipped }

// Mask lays content out on the cell grid and blanks every cell whose center
// falls outside the clip. Lines are padded or cut to Cols; missing rows are
// blank.
func (p *Panel) Mask(content string) string {
	if p.Cols <= 0 || p.Rows <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	var b strings.Builder
	row := make([]rune, p.Cols)
	for r := 0; r < p.Rows; r++ {
		var src []rune
		if r < len(lines) {
			src = []rune(lines[r])
		}
		for c := range row {
			row[c] = ' '
			if c < len(src) && p.visible(c, r) {
				row[c] = src[c]
			}
		}
		if r > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// Render masks content and applies Style.
func (p *Panel) Render(content string) string {
	return p.Style.Render(p.Mask(content))
}

func (p *Panel) visible(col, row int) bool {
	if !p.clipped {
		return true
	}
	x := float64(col) + 0.5
	y := (float64(row) + 0.5) * CellAspect
	return math.Hypot(x-p.clip.OriginX, y-p.clip.OriginY) <= p.clip.Radius
}
