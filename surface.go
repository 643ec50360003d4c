package reveal

// Surface is anything an Engine can clip: it reports its current size and
// accepts a clip circle. SetClip(nil) removes the clip entirely.
//
// Measure is called on every frame, so layout changes during an animation are
// picked up. Implementations must not call back into the Engine that owns
// them from SetClip.
type Surface interface {
	Measure() (width, height float64)
	SetClip(clip *RevealGeometry)
}

// StyleSurface is a headless Surface that keeps the clip as a CSS
// clip-path string. It backs the keyframe exporter and is handy in tests.
type StyleSurface struct {
	Width, Height float64

	// ClipPath is the last descriptor written, or "" when unclipped. A closed
	// reveal is a zero-radius circle, never "".
	ClipPath string

	// Writes counts SetClip calls.
	Writes int

	// OnWrite, if set, is called after every SetClip with the new ClipPath.
	OnWrite func(clipPath string)
}

// Measure implements Surface.
func (s *StyleSurface) Measure() (float64, float64) {
	return s.Width, s.Height
}

// SetClip implements Surface.
func (s *StyleSurface) SetClip(clip *RevealGeometry) {
	if clip == nil {
		s.ClipPath = ""
	} else {
		s.ClipPath = clip.String()
	}
	s.Writes++
	if s.OnWrite != nil {
		s.OnWrite(s.ClipPath)
	}
}

// Clipped reports whether a clip is currently applied.
func (s *StyleSurface) Clipped() bool {
	return s.ClipPath != ""
}
