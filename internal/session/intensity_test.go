package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustLevel_StepAndClamp(t *testing.T) {
	tests := []struct {
		name   string
		start  IntensityLevel
		easier bool
		want   IntensityLevel
	}{
		{"easier from moderate", IntensityModerate, true, IntensityLight},
		{"harder from moderate", IntensityModerate, false, IntensityVigorous},
		{"easier clamped at recovery", IntensityRecovery, true, IntensityRecovery},
		{"harder clamped at max", IntensityMax, false, IntensityMax},
		{"harder from recovery", IntensityRecovery, false, IntensityLight},
		{"easier from max", IntensityMax, true, IntensityVigorous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjustLevel(tt.start, tt.easier))
		})
	}
}

func TestAdjustLevel_RoundTrip(t *testing.T) {
	// easier-then-harder restores every non-extreme starting level
	for _, info := range AllIntensities {
		start := info.Level
		if start == IntensityRecovery {
			continue
		}
		assert.Equal(t, start, AdjustLevel(AdjustLevel(start, true), false), "round trip from %s", start)
	}
	for _, info := range AllIntensities {
		start := info.Level
		if start == IntensityMax {
			continue
		}
		assert.Equal(t, start, AdjustLevel(AdjustLevel(start, false), true), "round trip from %s", start)
	}

	// At the extremes the clamped direction is a stable no-op.
	assert.Equal(t, IntensityRecovery, AdjustLevel(IntensityRecovery, true))
	assert.Equal(t, IntensityRecovery, AdjustLevel(AdjustLevel(IntensityRecovery, true), true))
	assert.Equal(t, IntensityMax, AdjustLevel(IntensityMax, false))
	assert.Equal(t, IntensityMax, AdjustLevel(AdjustLevel(IntensityMax, false), false))
}

func TestScaledDurations(t *testing.T) {
	ex := ExerciseSpec{Name: "Push-Ups", Instructions: []string{"go"}, WorkSeconds: 30, RestSeconds: 10}

	tests := []struct {
		level    IntensityLevel
		wantWork int
		wantRest int
	}{
		{IntensityRecovery, 21, 13}, // 30*0.70, 10*1.30
		{IntensityLight, 26, 12},    // 25.5 rounds up, 11.5 rounds up
		{IntensityModerate, 30, 10}, // factors 1.0
		{IntensityVigorous, 35, 9},  // 34.5 rounds up, 8.5 rounds up
		{IntensityMax, 39, 7},       // 30*1.30, 10*0.70
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.wantWork, ScaledWorkSeconds(ex, tt.level))
			assert.Equal(t, tt.wantRest, ScaledRestSeconds(ex, tt.level))
		})
	}
}

func TestScaledRest_ZeroStaysZero(t *testing.T) {
	ex := ExerciseSpec{WorkSeconds: 20, RestSeconds: 0}
	for _, info := range AllIntensities {
		assert.Equal(t, 0, ScaledRestSeconds(ex, info.Level))
	}
}

func TestScaledWork_NeverBelowOneSecond(t *testing.T) {
	ex := ExerciseSpec{WorkSeconds: 1, RestSeconds: 1}
	assert.Equal(t, 1, ScaledWorkSeconds(ex, IntensityRecovery))
	assert.Equal(t, 1, ScaledRestSeconds(ex, IntensityMax))
}

func TestRescaleRemaining(t *testing.T) {
	// Moderate -> Max on work: 20 * (1.30/1.00) = 26.
	assert.Equal(t, 26, RescaleRemaining(20, PhaseExercising, IntensityModerate, IntensityMax))
	// Max -> Moderate on work: 26 * (1.00/1.30) = 20.
	assert.Equal(t, 20, RescaleRemaining(26, PhaseExercising, IntensityMax, IntensityModerate))
	// Moderate -> Vigorous on rest shortens: 10 * 0.85 = 8.5 rounds to 9.
	assert.Equal(t, 9, RescaleRemaining(10, PhaseResting, IntensityModerate, IntensityVigorous))
	// Non-counting and non-scaling phases pass through.
	assert.Equal(t, 10, RescaleRemaining(10, PhaseDescribing, IntensityModerate, IntensityMax))
	assert.Equal(t, 10, RescaleRemaining(10, PhaseAwaitingReady, IntensityModerate, IntensityMax))
	// Same level is an exact no-op.
	assert.Equal(t, 17, RescaleRemaining(17, PhaseExercising, IntensityLight, IntensityLight))
	// Zero remaining never resurrects.
	assert.Equal(t, 0, RescaleRemaining(0, PhaseExercising, IntensityModerate, IntensityMax))
}

func TestIntensityRegistry(t *testing.T) {
	assert.Len(t, AllIntensities, 5)

	info, ok := GetIntensityInfo(IntensityModerate)
	assert.True(t, ok)
	assert.Equal(t, 1.0, info.WorkFactor)
	assert.Equal(t, 1.0, info.RestFactor)

	_, ok = GetIntensityInfo(IntensityLevel(99))
	assert.False(t, ok)

	lvl, ok := GetIntensityByName("Vigorous")
	assert.True(t, ok)
	assert.Equal(t, IntensityVigorous, lvl)

	_, ok = GetIntensityByName("nope")
	assert.False(t, ok)

	// Factors are monotone: harder levels lengthen work and shorten rest.
	for i := 1; i < len(AllIntensities); i++ {
		assert.Greater(t, AllIntensities[i].WorkFactor, AllIntensities[i-1].WorkFactor)
		assert.Less(t, AllIntensities[i].RestFactor, AllIntensities[i-1].RestFactor)
	}
}
