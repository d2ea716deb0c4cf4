// Package plans provides the built-in workout catalog and a YAML loader
// for user-supplied plans.
package plans

import (
	"strings"

	"github.com/sweatcue/coach/internal/session"
)

// AllPlans defines the built-in workouts
var AllPlans = []session.WorkoutPlan{
	{
		Name:       "Morning Kickstart",
		Difficulty: session.DifficultyBeginner,
		Exercises: []session.ExerciseSpec{
			{
				Name:         "Jumping Jacks",
				Instructions: []string{"Jump your feet wide and bring your arms overhead.", "Land softly on the balls of your feet."},
				WorkSeconds:  30,
				RestSeconds:  15,
				Muscles:      []session.MuscleGroup{session.MuscleFullBody},
				Equipment:    []session.Equipment{session.EquipmentNone},
			},
			{
				Name:         "Bodyweight Squats",
				Instructions: []string{"Feet shoulder width apart, sit back and down.", "Keep your chest up and heels planted."},
				WorkSeconds:  30,
				RestSeconds:  15,
				Muscles:      []session.MuscleGroup{session.MuscleLegs, session.MuscleGlutes},
				Equipment:    []session.Equipment{session.EquipmentNone},
			},
			{
				Name:         "Push-Ups",
				Instructions: []string{"Hands under shoulders, body in one straight line.", "Drop to your knees any time you need to."},
				WorkSeconds:  20,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleChest, session.MuscleArms},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
			{
				Name:         "Mountain Climbers",
				Instructions: []string{"From a plank, drive your knees toward your chest in turn."},
				WorkSeconds:  20,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleCore, session.MuscleLegs},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
			{
				Name:         "Plank",
				Instructions: []string{"Elbows under shoulders, squeeze your glutes, hold steady."},
				WorkSeconds:  30,
				RestSeconds:  0,
				Muscles:      []session.MuscleGroup{session.MuscleCore},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
		},
	},
	{
		Name:       "Core Crusher",
		Difficulty: session.DifficultyIntermediate,
		Exercises: []session.ExerciseSpec{
			{
				Name:         "Plank",
				Instructions: []string{"Elbows under shoulders, back flat, breathe."},
				WorkSeconds:  45,
				RestSeconds:  15,
				Muscles:      []session.MuscleGroup{session.MuscleCore},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
			{
				Name:         "Bicycle Crunches",
				Instructions: []string{"Opposite elbow to opposite knee, slow and controlled."},
				WorkSeconds:  40,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleCore},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
			{
				Name:         "Russian Twists",
				Instructions: []string{"Lean back, lift your feet, rotate side to side."},
				WorkSeconds:  40,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleCore},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
			{
				Name:         "Leg Raises",
				Instructions: []string{"Legs straight, lower slowly, do not let your back arch."},
				WorkSeconds:  30,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleCore},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
			{
				Name:         "Side Plank",
				Instructions: []string{"Stack your feet, lift your hips, switch sides halfway."},
				WorkSeconds:  40,
				RestSeconds:  0,
				Muscles:      []session.MuscleGroup{session.MuscleCore, session.MuscleShoulders},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
		},
	},
	{
		Name:       "HIIT Blast",
		Difficulty: session.DifficultyAdvanced,
		Exercises: []session.ExerciseSpec{
			{
				Name:         "Burpees",
				Instructions: []string{"Chest to the floor, jump tall at the top."},
				WorkSeconds:  40,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleFullBody},
				Equipment:    []session.Equipment{session.EquipmentNone},
			},
			{
				Name:         "Squat Jumps",
				Instructions: []string{"Sink into a full squat, explode upward, land soft."},
				WorkSeconds:  30,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleLegs, session.MuscleGlutes},
				Equipment:    []session.Equipment{session.EquipmentNone},
			},
			{
				Name:         "High Knees",
				Instructions: []string{"Run in place, knees to hip height, arms pumping."},
				WorkSeconds:  30,
				RestSeconds:  15,
				Muscles:      []session.MuscleGroup{session.MuscleLegs, session.MuscleCore},
				Equipment:    []session.Equipment{session.EquipmentNone},
			},
			{
				Name:         "Box Jumps",
				Instructions: []string{"Land on the whole foot, stand fully, step down."},
				WorkSeconds:  30,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleLegs, session.MuscleGlutes},
				Equipment:    []session.Equipment{session.EquipmentBox},
			},
			{
				Name:         "Burpees",
				Instructions: []string{"Last round. Chest to the floor, jump tall."},
				WorkSeconds:  40,
				RestSeconds:  0,
				Muscles:      []session.MuscleGroup{session.MuscleFullBody},
				Equipment:    []session.Equipment{session.EquipmentNone},
			},
		},
	},
	{
		Name:       "Upper Body Builder",
		Difficulty: session.DifficultyIntermediate,
		Exercises: []session.ExerciseSpec{
			{
				Name:         "Dumbbell Rows",
				Instructions: []string{"Hinge at the hips, pull the weight to your ribs."},
				WorkSeconds:  40,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleBack, session.MuscleArms},
				Equipment:    []session.Equipment{session.EquipmentDumbbells},
			},
			{
				Name:         "Overhead Press",
				Instructions: []string{"Press straight up, lock out without shrugging."},
				WorkSeconds:  40,
				RestSeconds:  20,
				Muscles:      []session.MuscleGroup{session.MuscleShoulders, session.MuscleArms},
				Equipment:    []session.Equipment{session.EquipmentDumbbells},
			},
			{
				Name:         "Band Pull-Aparts",
				Instructions: []string{"Arms straight, squeeze your shoulder blades together."},
				WorkSeconds:  30,
				RestSeconds:  15,
				Muscles:      []session.MuscleGroup{session.MuscleBack, session.MuscleShoulders},
				Equipment:    []session.Equipment{session.EquipmentBand},
			},
			{
				Name:         "Hammer Curls",
				Instructions: []string{"Palms facing in, no swinging."},
				WorkSeconds:  30,
				RestSeconds:  15,
				Muscles:      []session.MuscleGroup{session.MuscleArms},
				Equipment:    []session.Equipment{session.EquipmentDumbbells},
			},
			{
				Name:         "Push-Ups",
				Instructions: []string{"Finish strong. Full range, elbows at forty-five degrees."},
				WorkSeconds:  30,
				RestSeconds:  0,
				Muscles:      []session.MuscleGroup{session.MuscleChest, session.MuscleArms},
				Equipment:    []session.Equipment{session.EquipmentMat},
			},
		},
	},
}

// GetPlanByName returns the built-in plan with the given name,
// case-insensitively. The returned plan is a copy.
func GetPlanByName(name string) (*session.WorkoutPlan, bool) {
	for i := range AllPlans {
		if strings.EqualFold(AllPlans[i].Name, name) {
			plan := AllPlans[i]
			return &plan, true
		}
	}
	return nil, false
}

// PlanNames returns the built-in plan names in catalog order
func PlanNames() []string {
	names := make([]string, 0, len(AllPlans))
	for _, p := range AllPlans {
		names = append(names, p.Name)
	}
	return names
}
