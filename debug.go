package reveal

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-update timing and reveal counts.
// Only populated when Stage.debug is true.
type debugStats struct {
	updateTime    time.Duration
	pendingFrames int
	panelCount    int
	clippedCount  int
	runningCount  int
}

func (s *Stage) collectStats(elapsed time.Duration) debugStats {
	stats := debugStats{
		updateTime:    elapsed,
		pendingFrames: s.sched.Pending(),
		panelCount:    len(s.panels),
	}
	for _, p := range s.panels {
		if p.clipped {
			stats.clippedCount++
		}
	}
	for _, r := range s.reveals {
		switch r.binding.state() {
		case StateRunning, StateClosing:
			stats.runningCount++
		}
	}
	return stats
}

// debugLog writes stats to the stage logger at debug level.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("reveal: update",
		zap.Duration("update", stats.updateTime),
		zap.Int("pending_frames", stats.pendingFrames),
		zap.Int("panels", stats.panelCount),
		zap.Int("clipped", stats.clippedCount),
		zap.Int("animating", stats.runningCount))
	if stats.pendingFrames > len(s.reveals) {
		s.log.Warn("reveal: more pending frames than reveals",
			zap.Int("pending_frames", stats.pendingFrames),
			zap.Int("reveals", len(s.reveals)))
	}
}
