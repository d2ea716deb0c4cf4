package session

import "time"

// SessionSummary is the terminal output of one session: what the history
// and progress collaborators receive. Built exactly once, at the
// transition into Completed, whether the workout finished or was stopped.
type SessionSummary struct {
	SessionID          string
	PlanName           string
	StartedAt          *time.Time // nil when no exercise ever began
	CompletedAt        time.Time
	Duration           time.Duration // 0 when StartedAt is nil
	ExercisesCompleted int
	ExercisesTotal     int
	FinalIntensity     IntensityLevel
	Aborted            bool
}

// buildSummary packages terminal session state. Duration counts from the
// first entry into Exercising, so intro narration and ready-waiting before
// the first exercise never inflate it.
func buildSummary(sessionID string, plan *WorkoutPlan, startedAt *time.Time, completedCount int, level IntensityLevel, aborted bool, now time.Time) SessionSummary {
	var duration time.Duration
	if startedAt != nil {
		duration = now.Sub(*startedAt)
	}
	s := SessionSummary{
		SessionID:          sessionID,
		StartedAt:          startedAt,
		CompletedAt:        now,
		Duration:           duration,
		ExercisesCompleted: completedCount,
		FinalIntensity:     level,
		Aborted:            aborted,
	}
	if plan != nil {
		s.PlanName = plan.Name
		s.ExercisesTotal = len(plan.Exercises)
	}
	return s
}
