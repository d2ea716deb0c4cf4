package plans

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sweatcue/coach/internal/session"
)

// PlanFile is the YAML shape of a user-supplied workout plan
type PlanFile struct {
	Name       string         `yaml:"name"`
	Difficulty string         `yaml:"difficulty,omitempty"`
	Exercises  []ExerciseFile `yaml:"exercises"`
}

// ExerciseFile is one exercise entry in a plan file
type ExerciseFile struct {
	Name         string   `yaml:"name"`
	Instructions []string `yaml:"instructions"`
	WorkSeconds  int      `yaml:"work_seconds"`
	RestSeconds  int      `yaml:"rest_seconds,omitempty"`
	Muscles      []string `yaml:"muscles,omitempty"`
	Equipment    []string `yaml:"equipment,omitempty"`
}

// LoadPlanFile loads and validates one plan from a YAML file
func LoadPlanFile(path string) (*session.WorkoutPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var file PlanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}

	plan, err := file.toPlan()
	if err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return plan, nil
}

// LoadPlanDir loads every .yaml/.yml plan in dir. Files that fail to load
// are reported in the errors slice without blocking the rest.
func LoadPlanDir(dir string) ([]*session.WorkoutPlan, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("reading plans directory: %w", err)}
	}

	var loaded []*session.WorkoutPlan
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		plan, err := LoadPlanFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		loaded = append(loaded, plan)
	}
	return loaded, errs
}

// toPlan converts the file shape to the session type and validates it
func (f *PlanFile) toPlan() (*session.WorkoutPlan, error) {
	difficulty, err := parseDifficulty(f.Difficulty)
	if err != nil {
		return nil, err
	}

	plan := &session.WorkoutPlan{
		Name:       f.Name,
		Difficulty: difficulty,
	}
	for _, ex := range f.Exercises {
		spec := session.ExerciseSpec{
			Name:         ex.Name,
			Instructions: ex.Instructions,
			WorkSeconds:  ex.WorkSeconds,
			RestSeconds:  ex.RestSeconds,
		}
		for _, m := range ex.Muscles {
			spec.Muscles = append(spec.Muscles, session.MuscleGroup(m))
		}
		for _, e := range ex.Equipment {
			spec.Equipment = append(spec.Equipment, session.Equipment(e))
		}
		plan.Exercises = append(plan.Exercises, spec)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// parseDifficulty maps the file value to a known grade. An empty value
// defaults to intermediate.
func parseDifficulty(s string) (session.Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return session.DifficultyIntermediate, nil
	case string(session.DifficultyBeginner):
		return session.DifficultyBeginner, nil
	case string(session.DifficultyIntermediate):
		return session.DifficultyIntermediate, nil
	case string(session.DifficultyAdvanced):
		return session.DifficultyAdvanced, nil
	default:
		return "", &session.ConfigError{
			Field:  "difficulty",
			Reason: fmt.Sprintf("unknown difficulty %q (valid: beginner, intermediate, advanced)", s),
		}
	}
}
