package reveal

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// collapseTween eases a spring position down to zero for Engine.Close.
// Update writes the tweened value straight into the target field; Done flips
// once the tween has run its full duration.
type collapseTween struct {
	tween *gween.Tween
	field *float64
	Done  bool
}

func newCollapseTween(field *float64, duration float32, fn ease.TweenFunc) *collapseTween {
	if fn == nil {
		fn = ease.OutCubic
	}
	return &collapseTween{
		tween: gween.New(float32(*field), 0, duration, fn),
		field: field,
	}
}

// Update advances the tween by dt seconds.
func (c *collapseTween) Update(dt float32) {
	if c.Done {
		return
	}
	val, finished := c.tween.Update(dt)
	*c.field = float64(val)
	if finished {
		*c.field = 0
		c.Done = true
	}
}
