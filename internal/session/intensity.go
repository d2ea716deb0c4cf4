package session

import "math"

// AdjustLevel moves one step on the intensity scale, easier toward
// Recovery, harder toward Max. Clamped at both ends; clamping is a no-op,
// not an error.
func AdjustLevel(level IntensityLevel, easier bool) IntensityLevel {
	if easier {
		if level > IntensityRecovery {
			return level - 1
		}
		return level
	}
	if level < IntensityMax {
		return level + 1
	}
	return level
}

// ScaledWorkSeconds returns the exercise's work duration at the given level
func ScaledWorkSeconds(ex ExerciseSpec, level IntensityLevel) int {
	return scaleSeconds(ex.WorkSeconds, intensityFactor(level, true))
}

// ScaledRestSeconds returns the exercise's rest duration at the given level.
// A zero rest stays zero at every level.
func ScaledRestSeconds(ex ExerciseSpec, level IntensityLevel) int {
	return scaleSeconds(ex.RestSeconds, intensityFactor(level, false))
}

// RescaleRemaining converts an in-flight countdown from one level to
// another by the flat factor ratio for the counting phase's duration kind.
// Elapsed time is not reconstructed; only what remains is rescaled. Phases
// that do not scale (Describing, and anything not counting) pass through.
func RescaleRemaining(remaining int, phase Phase, from, to IntensityLevel) int {
	if remaining <= 0 || from == to {
		return remaining
	}
	var work bool
	switch phase {
	case PhaseExercising:
		work = true
	case PhaseResting:
		work = false
	default:
		return remaining
	}
	ratio := intensityFactor(to, work) / intensityFactor(from, work)
	return scaleSeconds(remaining, ratio)
}

// intensityFactor returns the work or rest multiplier for a level, falling
// back to 1.0 for a level missing from the registry
func intensityFactor(level IntensityLevel, work bool) float64 {
	info, ok := GetIntensityInfo(level)
	if !ok {
		return 1.0
	}
	if work {
		return info.WorkFactor
	}
	return info.RestFactor
}

// scaleSeconds rounds seconds*factor to the nearest whole second, keeping
// positive durations at 1s minimum so scaling never erases a phase
func scaleSeconds(seconds int, factor float64) int {
	if seconds <= 0 {
		return 0
	}
	scaled := int(math.Round(float64(seconds) * factor))
	if scaled < 1 {
		return 1
	}
	return scaled
}
