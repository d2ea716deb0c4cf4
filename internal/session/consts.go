package session

import "time"

// Phase is the state a running session is in
type Phase int

const (
	PhaseNotStarted    Phase = iota // Plan accepted, Start not called yet
	PhaseDescribing                 // Workout intro narration playing
	PhaseAwaitingReady              // Waiting for the user's ready signal
	PhaseExercising                 // Work countdown running
	PhaseResting                    // Rest countdown running
	PhasePaused                     // Frozen; pausedPhase holds the phase to restore
	PhaseCompleted                  // Terminal, via finish or stop
)

// String returns the phase name for logs and display
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseDescribing:
		return "Describing"
	case PhaseAwaitingReady:
		return "AwaitingReady"
	case PhaseExercising:
		return "Exercising"
	case PhaseResting:
		return "Resting"
	case PhasePaused:
		return "Paused"
	case PhaseCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// IsCounting reports whether remaining seconds tick down in this phase
func (p Phase) IsCounting() bool {
	return p == PhaseDescribing || p == PhaseExercising || p == PhaseResting
}

// IsActive reports whether the session is underway and pausable
func (p Phase) IsActive() bool {
	switch p {
	case PhaseDescribing, PhaseAwaitingReady, PhaseExercising, PhaseResting:
		return true
	default:
		return false
	}
}

// IntensityLevel is an ordinal position on the fixed intensity scale.
// The zero value is not a level; it means "use the default".
type IntensityLevel int

const (
	IntensityRecovery IntensityLevel = iota + 1 // Easiest: short work, long rest
	IntensityLight
	IntensityModerate // Scale midpoint, factors 1.0
	IntensityVigorous
	IntensityMax // Hardest: long work, short rest
)

// IntensityInfo describes one level of the intensity scale
type IntensityInfo struct {
	Level       IntensityLevel
	DisplayName string
	SpokenName  string  // How the coach voice refers to this level
	WorkFactor  float64 // Multiplier applied to work durations
	RestFactor  float64 // Multiplier applied to rest durations
}

// AllIntensities is the registry of scale levels, ordered easiest first
var AllIntensities = []IntensityInfo{
	{Level: IntensityRecovery, DisplayName: "Recovery", SpokenName: "recovery pace", WorkFactor: 0.70, RestFactor: 1.30},
	{Level: IntensityLight, DisplayName: "Light", SpokenName: "light pace", WorkFactor: 0.85, RestFactor: 1.15},
	{Level: IntensityModerate, DisplayName: "Moderate", SpokenName: "moderate pace", WorkFactor: 1.00, RestFactor: 1.00},
	{Level: IntensityVigorous, DisplayName: "Vigorous", SpokenName: "vigorous pace", WorkFactor: 1.15, RestFactor: 0.85},
	{Level: IntensityMax, DisplayName: "Max Effort", SpokenName: "max effort", WorkFactor: 1.30, RestFactor: 0.70},
}

// DefaultIntensity is where every session starts unless configured otherwise
const DefaultIntensity = IntensityModerate

// GetIntensityInfo returns the registry entry for a level
func GetIntensityInfo(level IntensityLevel) (IntensityInfo, bool) {
	for _, info := range AllIntensities {
		if info.Level == level {
			return info, true
		}
	}
	return IntensityInfo{}, false
}

// GetIntensityByName returns the level whose display name matches
// (case handled by the caller)
func GetIntensityByName(name string) (IntensityLevel, bool) {
	for _, info := range AllIntensities {
		if info.DisplayName == name {
			return info.Level, true
		}
	}
	return 0, false
}

// String returns the display name for a level
func (l IntensityLevel) String() string {
	if info, ok := GetIntensityInfo(l); ok {
		return info.DisplayName
	}
	return "Unknown"
}

// CueCategory classifies a voice cue
type CueCategory int

const (
	CueInstruction CueCategory = iota // What to do, spoken at exercise start
	CueMotivation                     // Mid-exercise encouragement
	CueWarning                        // Time's almost up
	CueTransition                     // Rest/next-exercise/completion announcements
)

// String returns the category name
func (c CueCategory) String() string {
	switch c {
	case CueInstruction:
		return "Instruction"
	case CueMotivation:
		return "Motivation"
	case CueWarning:
		return "Warning"
	case CueTransition:
		return "Transition"
	default:
		return "Unknown"
	}
}

// VoiceCue is one spoken message tied to a moment in a phase.
// OffsetSeconds counts from phase start; 0 means speak immediately.
// IDs are deterministic so the same compile inputs yield the same cues.
type VoiceCue struct {
	ID            string
	Text          string
	OffsetSeconds int
	Category      CueCategory
}

// Snapshot is a read-only view of session state, published after every
// state change for countdown display and progress surfaces
type Snapshot struct {
	PlanName         string
	Phase            Phase
	PausedPhase      Phase // Valid only while Phase is Paused
	ExerciseIndex    int
	ExerciseName     string // Empty before the plan is loaded
	ExerciseTotal    int
	RemainingSeconds int
	CompletedCount   int
	Intensity        IntensityLevel
}

// Transition records one phase change
type Transition struct {
	From          Phase
	To            Phase
	ExerciseIndex int
}

// Timing defaults; the describe timeout guards against a voice provider
// that never reports the intro finished
const (
	DefaultTickInterval           = 1 * time.Second
	DefaultDescribeTimeoutSeconds = 20
)

// DefaultDuckLevel is the music volume fraction while voice cues play
const DefaultDuckLevel = 0.3
