package reveal

import (
	"math"
	"strconv"
)

// Anchor resolves the point a reveal grows from, in the surface's local
// coordinate space, for a surface of the given size.
type Anchor interface {
	Resolve(width, height float64) Vec2
}

// PointAnchor is a fixed local point. It may lie outside the surface.
type PointAnchor Vec2

// Resolve implements Anchor.
func (a PointAnchor) Resolve(_, _ float64) Vec2 { return Vec2(a) }

// RelativeAnchor places the origin at a fraction of the surface size:
// {0, 0} is the top-left corner, {1, 1} the bottom-right.
type RelativeAnchor Vec2

// Resolve implements Anchor.
func (a RelativeAnchor) Resolve(width, height float64) Vec2 {
	return Vec2{X: a.X * width, Y: a.Y * height}
}

// CenterAnchor reveals from the middle of the surface.
var CenterAnchor = RelativeAnchor{X: 0.5, Y: 0.5}

// RevealGeometry is the circle a surface is clipped to for one frame.
type RevealGeometry struct {
	OriginX, OriginY float64
	Radius           float64
}

// String formats g as a CSS basic shape, e.g. "circle(40px at 50px 25px)".
func (g RevealGeometry) String() string {
	buf := make([]byte, 0, 48)
	buf = append(buf, "circle("...)
	buf = appendPx(buf, g.Radius)
	buf = append(buf, " at "...)
	buf = appendPx(buf, g.OriginX)
	buf = append(buf, ' ')
	buf = appendPx(buf, g.OriginY)
	buf = append(buf, ')')
	return string(buf)
}

// Contains reports whether the local point (x, y) is inside the circle.
// Points on the edge are considered inside.
func (g RevealGeometry) Contains(x, y float64) bool {
	dx, dy := x-g.OriginX, y-g.OriginY
	return dx*dx+dy*dy <= g.Radius*g.Radius
}

// ClipPath returns the CSS clip-path value for g; nil means "none".
func ClipPath(g *RevealGeometry) string {
	if g == nil {
		return "none"
	}
	return g.String()
}

// appendPx writes v rounded to two decimals with a px suffix. Rounding keeps
// descriptors stable across platforms; -0 is printed as 0.
func appendPx(buf []byte, v float64) []byte {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
	return append(buf, "px"...)
}

// MaxRadius returns the distance from origin to the farthest corner of a
// width x height rectangle: the smallest radius that covers the whole
// surface from that origin.
func MaxRadius(width, height float64, origin Vec2) float64 {
	dx := math.Max(math.Abs(origin.X), math.Abs(width-origin.X))
	dy := math.Max(math.Abs(origin.Y), math.Abs(height-origin.Y))
	return math.Hypot(dx, dy)
}

// ComputeGeometry maps a spring position onto a clip circle for a surface of
// the given size. The radius is position * MaxRadius, so position 1 always
// covers the surface. Positions at or below zero give a collapsed circle at
// the anchor. A surface without a positive finite size yields radius 0 until
// it is laid out. A nil anchor means CenterAnchor.
func ComputeGeometry(position, width, height float64, anchor Anchor) RevealGeometry {
	if anchor == nil {
		anchor = CenterAnchor
	}
	if !(width > 0) || !(height > 0) || !finite(width) || !finite(height) {
		o := anchor.Resolve(0, 0)
		return RevealGeometry{OriginX: o.X, OriginY: o.Y}
	}
	o := anchor.Resolve(width, height)
	g := RevealGeometry{OriginX: o.X, OriginY: o.Y}
	if position > 0 && finite(position) {
		g.Radius = position * MaxRadius(width, height, o)
	}
	return g
}
