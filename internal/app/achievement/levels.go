package achievement

import (
	"math"

	"github.com/screenlog/screenlog/internal/domain"
)

// GenerateLevels materializes the level ladder for one achievement.
//
// baseTargets must be non-empty, positive, and non-decreasing. The ladder
// repeats the base sequence with a doubling multiplier (x1, x2, x4, ...)
// until the last emitted target exceeds current x 1.5, so there is always
// at least one visible "next target" past the user's progress. At least
// one full pass is emitted even when current is 0.
func GenerateLevels(baseTargets []float64, current float64) []domain.Level {
	if len(baseTargets) == 0 {
		return nil
	}
	if current < 0 {
		current = 0
	}

	var levels []domain.Level
	multiplier := 1.0
	index := 1
	last := 0.0
	for {
		for _, base := range baseTargets {
			target := math.Floor(base * multiplier)
			// A doubled pass can land below the previous pass's tail
			// (e.g. [5,10,25] x2 starts at 10). Skip shadowed targets
			// so the ladder stays strictly increasing.
			if target <= last {
				continue
			}
			levels = append(levels, makeLevel(index, target, current))
			last = target
			index++
		}
		if last > current*1.5 {
			break
		}
		multiplier *= 2
	}
	return levels
}

func makeLevel(index int, target, current float64) domain.Level {
	l := domain.Level{Index: index, Target: target, Current: current}
	if l.Current > target {
		l.Current = target
	}
	if current >= target {
		l.Unlocked = true
		l.ProgressPct = 100
	} else if target > 0 {
		l.ProgressPct = current / target * 100
	}
	return l
}
