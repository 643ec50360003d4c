package reveal

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	minCircleSegments = 16
	maxCircleSegments = 256
)

// Panel is an Ebitengine Surface: a content image placed at (X, Y) and drawn
// through the current reveal clip. While unclipped the content is drawn
// whole; a zero-radius clip draws nothing.
type Panel struct {
	Name string
	X, Y float64

	// Width and Height override the measured size. Zero means the content
	// image bounds.
	Width, Height float64

	Content   *ebiten.Image
	BlendMode BlendMode

	clip    RevealGeometry
	clipped bool

	verts []ebiten.Vertex
	inds  []uint16
}

// NewPanel creates an unclipped panel showing content.
func NewPanel(name string, content *ebiten.Image) *Panel {
	return &Panel{Name: name, Content: content}
}

// Measure implements Surface.
func (p *Panel) Measure() (float64, float64) {
	w, h := p.Width, p.Height
	if p.Content != nil {
		b := p.Content.Bounds()
		if w == 0 {
			w = float64(b.Dx())
		}
		if h == 0 {
			h = float64(b.Dy())
		}
	}
	return w, h
}

// SetClip implements Surface.
func (p *Panel) SetClip(clip *RevealGeometry) {
	if clip == nil {
		p.clipped = false
		p.clip = RevealGeometry{}
		return
	}
	p.clip = *clip
	p.clipped = true
}

// Clip returns the current clip and whether one is applied.
func (p *Panel) Clip() (RevealGeometry, bool) {
	return p.clip, p.clipped
}

// Bounds returns the panel rectangle in screen space.
func (p *Panel) Bounds() Rect {
	w, h := p.Measure()
	return Rect{X: p.X, Y: p.Y, Width: w, Height: h}
}

// Draw renders the panel onto dst. A clipped panel is drawn as one textured
// triangle fan covering the clip circle; texels outside the content are
// sampled as transparent.
func (p *Panel) Draw(dst *ebiten.Image) {
	if p.Content == nil {
		return
	}
	if !p.clipped {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(p.X, p.Y)
		op.Blend = p.BlendMode.EbitenBlend()
		dst.DrawImage(p.Content, &op)
		return
	}
	if p.clip.Radius <= 0 {
		return
	}
	p.verts, p.inds = buildCircleFan(p.verts[:0], p.inds[:0], p.clip, p.X, p.Y)
	var op ebiten.DrawTrianglesOptions
	op.Address = ebiten.AddressClampToZero
	op.Blend = p.BlendMode.EbitenBlend()
	op.AntiAlias = true
	dst.DrawTriangles(p.verts, p.inds, p.Content, &op)
}

// circleSegments picks a segment count that keeps chords under ~2px.
func circleSegments(radius float64) int {
	n := int(math.Ceil(math.Pi * radius / 2))
	if n < minCircleSegments {
		return minCircleSegments
	}
	if n > maxCircleSegments {
		return maxCircleSegments
	}
	return n
}

// buildCircleFan appends a fan-triangulated circle to verts and inds. Vertex 0
// is the hub at the clip origin; source coordinates equal local coordinates so
// the content maps 1:1, destination coordinates are offset by (dx, dy).
// N rim vertices, 3*N indices.
func buildCircleFan(verts []ebiten.Vertex, inds []uint16, g RevealGeometry, dx, dy float64) ([]ebiten.Vertex, []uint16) {
	n := circleSegments(g.Radius)
	verts = append(verts, fanVertex(g.OriginX, g.OriginY, dx, dy))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := g.OriginX + g.Radius*math.Cos(a)
		y := g.OriginY + g.Radius*math.Sin(a)
		verts = append(verts, fanVertex(x, y, dx, dy))
	}
	for i := 0; i < n; i++ {
		next := (i+1)%n + 1
		inds = append(inds, 0, uint16(i+1), uint16(next))
	}
	return verts, inds
}

func fanVertex(x, y, dx, dy float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x + dx),
		DstY:   float32(y + dy),
		SrcX:   float32(x),
		SrcY:   float32(y),
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}
