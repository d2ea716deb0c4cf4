package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummary_FinishedSession(t *testing.T) {
	plan := validPlan()
	started := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
	ended := started.Add(92 * time.Second)

	s := buildSummary("sess-1", plan, &started, 2, IntensityVigorous, false, ended)

	assert.Equal(t, "sess-1", s.SessionID)
	assert.Equal(t, "Leg Day", s.PlanName)
	assert.Equal(t, 92*time.Second, s.Duration)
	assert.Equal(t, 2, s.ExercisesCompleted)
	assert.Equal(t, 2, s.ExercisesTotal)
	assert.Equal(t, IntensityVigorous, s.FinalIntensity)
	assert.False(t, s.Aborted)
	assert.Equal(t, ended, s.CompletedAt)
}

func TestBuildSummary_NeverExercised_ZeroDuration(t *testing.T) {
	now := time.Date(2025, 6, 2, 18, 0, 30, 0, time.UTC)

	s := buildSummary("sess-2", validPlan(), nil, 0, DefaultIntensity, true, now)

	assert.Nil(t, s.StartedAt)
	assert.Equal(t, time.Duration(0), s.Duration)
	assert.True(t, s.Aborted)
}

func TestBuildSummary_NoPlan(t *testing.T) {
	now := time.Now()

	s := buildSummary("", nil, nil, 0, DefaultIntensity, true, now)

	assert.Empty(t, s.PlanName)
	assert.Equal(t, 0, s.ExercisesTotal)
	assert.True(t, s.Aborted)
}
