package session

import (
	"fmt"
	"strings"
)

// Cue timing rules. Short exercises skip the warning and motivation cues so
// the voice is not still announcing "almost up" while the phase ends.
const (
	warnLeadSeconds          = 5
	warnMinWorkSeconds       = 15
	motivationMinWorkSeconds = 20
)

// motivationLines feed the mid-exercise encouragement cue. Chosen by
// exercise position, so the same inputs always speak the same line.
var motivationLines = map[IntensityLevel][]string{
	IntensityRecovery: {
		"Nice and easy. Keep moving.",
		"Smooth and steady, no rush.",
	},
	IntensityLight: {
		"Good rhythm. Keep it up.",
		"Stay relaxed and keep breathing.",
	},
	IntensityModerate: {
		"Halfway there. Keep pushing.",
		"Looking strong. Stay with it.",
	},
	IntensityVigorous: {
		"Push through. You have this.",
		"Strong pace. Hold it right there.",
	},
	IntensityMax: {
		"Everything you have, right now.",
		"Empty the tank. Go.",
	},
}

// CompileIntro builds the workout-intro cue spoken during Describing: plan
// name, difficulty, length at the current intensity, and the first exercise.
// The plan must already be validated. Deterministic for identical inputs.
func CompileIntro(plan *WorkoutPlan, level IntensityLevel) VoiceCue {
	first := plan.Exercises[0]
	pace := "moderate pace"
	if info, ok := GetIntensityInfo(level); ok {
		pace = info.SpokenName
	}

	text := fmt.Sprintf("Welcome to %s, %s %s workout. %d exercises, about %s at %s. First up: %s. %s When you are ready, let's begin.",
		plan.Name,
		difficultyArticle(plan.Difficulty),
		string(plan.Difficulty),
		len(plan.Exercises),
		minutesPhrase(approxMinutes(scaledTotalSeconds(plan, level))),
		pace,
		first.Name,
		first.Instructions[0],
	)

	return VoiceCue{
		ID:            "intro",
		Text:          text,
		OffsetSeconds: 0,
		Category:      CueInstruction,
	}
}

// CompileScript builds the ordered cues for one exercise's work phase.
// Offsets count from work start and are computed against the level-scaled
// work duration, ending with the transition cue at the exact phase end (the
// completion text when this is the last exercise). Pure and deterministic:
// identical inputs yield identical ids, text, and offsets. Returns nil for
// an out-of-range index.
func CompileScript(plan *WorkoutPlan, index int, level IntensityLevel) []VoiceCue {
	if index < 0 || index >= len(plan.Exercises) {
		return nil
	}
	ex := plan.Exercises[index]
	work := ScaledWorkSeconds(ex, level)

	cues := []VoiceCue{{
		ID:            cueID(index, CueInstruction),
		Text:          fmt.Sprintf("%s, %d seconds. %s", ex.Name, work, ex.Instructions[0]),
		OffsetSeconds: 0,
		Category:      CueInstruction,
	}}

	if work >= motivationMinWorkSeconds {
		lines := motivationLines[level]
		if len(lines) > 0 {
			cues = append(cues, VoiceCue{
				ID:            cueID(index, CueMotivation),
				Text:          lines[index%len(lines)],
				OffsetSeconds: work / 2,
				Category:      CueMotivation,
			})
		}
	}

	if work >= warnMinWorkSeconds {
		cues = append(cues, VoiceCue{
			ID:            cueID(index, CueWarning),
			Text:          fmt.Sprintf("Almost up. %d seconds to go.", warnLeadSeconds),
			OffsetSeconds: work - warnLeadSeconds,
			Category:      CueWarning,
		})
	}

	cues = append(cues, VoiceCue{
		ID:            cueID(index, CueTransition),
		Text:          transitionText(plan, index, level),
		OffsetSeconds: work,
		Category:      CueTransition,
	})

	return cues
}

// transitionText announces what follows the exercise: rest and the next
// exercise, straight to the next exercise, or the completion message
func transitionText(plan *WorkoutPlan, index int, level IntensityLevel) string {
	ex := plan.Exercises[index]
	if index == len(plan.Exercises)-1 {
		return fmt.Sprintf("That's it, workout complete! You finished all %d exercises. Great work.", len(plan.Exercises))
	}
	next := plan.Exercises[index+1]
	rest := ScaledRestSeconds(ex, level)
	if rest == 0 {
		return fmt.Sprintf("Done with %s. No rest this time. Next up: %s. Get ready.", ex.Name, next.Name)
	}
	return fmt.Sprintf("Done with %s. Rest for %d seconds. Next up: %s.", ex.Name, rest, next.Name)
}

// cueID builds the deterministic id for an exercise cue
func cueID(index int, category CueCategory) string {
	return fmt.Sprintf("ex%02d-%s", index, strings.ToLower(category.String()))
}

// scaledTotalSeconds is the whole-workout length at a level: scaled work
// plus scaled rest, minus the trailing rest the session skips
func scaledTotalSeconds(plan *WorkoutPlan, level IntensityLevel) int {
	total := 0
	for i, ex := range plan.Exercises {
		total += ScaledWorkSeconds(ex, level)
		if i < len(plan.Exercises)-1 {
			total += ScaledRestSeconds(ex, level)
		}
	}
	return total
}

// approxMinutes rounds seconds to the nearest minute, never below one
func approxMinutes(seconds int) int {
	m := (seconds + 30) / 60
	if m < 1 {
		return 1
	}
	return m
}

// minutesPhrase renders a spoken minute count ("1 minute", "12 minutes")
func minutesPhrase(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// difficultyArticle picks "a" or "an" for the spoken difficulty
func difficultyArticle(d Difficulty) string {
	s := string(d)
	if len(s) > 0 && strings.ContainsRune("aeiou", rune(s[0])) {
		return "an"
	}
	return "a"
}
