package session

import "fmt"

// MuscleGroup identifies a muscle group an exercise targets
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleArms      MuscleGroup = "arms"
	MuscleCore      MuscleGroup = "core"
	MuscleLegs      MuscleGroup = "legs"
	MuscleGlutes    MuscleGroup = "glutes"
	MuscleFullBody  MuscleGroup = "full_body"
)

// Equipment identifies a piece of equipment an exercise requires
type Equipment string

const (
	EquipmentNone       Equipment = "none"
	EquipmentMat        Equipment = "mat"
	EquipmentDumbbells  Equipment = "dumbbells"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentBand       Equipment = "resistance_band"
	EquipmentPullUpBar  Equipment = "pull_up_bar"
	EquipmentBox        Equipment = "plyo_box"
)

// Difficulty grades a whole plan
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ExerciseSpec is one exercise in a plan. Durations are whole seconds;
// the countdown only ever moves in whole seconds.
type ExerciseSpec struct {
	Name         string
	Instructions []string // At least one line; the first is spoken in the instruction cue
	WorkSeconds  int      // > 0
	RestSeconds  int      // >= 0; rest after this exercise
	Muscles      []MuscleGroup
	Equipment    []Equipment
}

// WorkoutPlan is the immutable input a session runs. Never mutated once a
// session has started on it.
type WorkoutPlan struct {
	Name       string
	Difficulty Difficulty
	Exercises  []ExerciseSpec
}

// TotalWorkSeconds sums the unscaled work durations
func (p *WorkoutPlan) TotalWorkSeconds() int {
	total := 0
	for _, ex := range p.Exercises {
		total += ex.WorkSeconds
	}
	return total
}

// TotalSeconds sums unscaled work plus rest, excluding the trailing rest
// of the final exercise, which the session skips
func (p *WorkoutPlan) TotalSeconds() int {
	total := 0
	for i, ex := range p.Exercises {
		total += ex.WorkSeconds
		if i < len(p.Exercises)-1 {
			total += ex.RestSeconds
		}
	}
	return total
}

// Validate checks a plan is runnable. Returns a ConfigError describing the
// first problem found.
func (p *WorkoutPlan) Validate() error {
	if p.Name == "" {
		return &ConfigError{Field: "name", Reason: "plan name is empty"}
	}
	if len(p.Exercises) == 0 {
		return &ConfigError{Field: "exercises", Reason: "plan has no exercises"}
	}
	for i, ex := range p.Exercises {
		where := fmt.Sprintf("exercises[%d]", i)
		if ex.Name == "" {
			return &ConfigError{Field: where + ".name", Reason: "exercise name is empty"}
		}
		if len(ex.Instructions) == 0 {
			return &ConfigError{Field: where + ".instructions", Reason: "exercise has no instructions"}
		}
		if ex.WorkSeconds <= 0 {
			return &ConfigError{Field: where + ".work_seconds", Reason: fmt.Sprintf("work duration must be positive, got %d", ex.WorkSeconds)}
		}
		if ex.RestSeconds < 0 {
			return &ConfigError{Field: where + ".rest_seconds", Reason: fmt.Sprintf("rest duration cannot be negative, got %d", ex.RestSeconds)}
		}
	}
	return nil
}
