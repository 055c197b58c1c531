package service

import (
	"database/sql"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Plan is the YAML seed format: a week of workouts and a meal catalog
// imported in one shot on a fresh device.
type Plan struct {
	Workouts []PlanWorkout `yaml:"workouts"`
	Meals    []PlanMeal    `yaml:"meals"`
}

type PlanWorkout struct {
	Name      string         `yaml:"name"`
	DayOfWeek int            `yaml:"day_of_week"`
	Exercises []PlanExercise `yaml:"exercises"`
}

type PlanExercise struct {
	Name        string   `yaml:"name"`
	Sets        int      `yaml:"sets"`
	Reps        int      `yaml:"reps"`
	Weight      *float64 `yaml:"weight,omitempty"`
	RestSeconds int      `yaml:"rest_seconds"`
}

type PlanMeal struct {
	Name        string  `yaml:"name"`
	TimeOfDay   string  `yaml:"time_of_day"`
	Calories    int     `yaml:"calories"`
	Protein     float64 `yaml:"protein"`
	Carbs       float64 `yaml:"carbs"`
	Fats        float64 `yaml:"fats"`
	Description string  `yaml:"description,omitempty"`
}

type PlanSummary struct {
	Workouts int
	Meals    int
}

// ImportPlan decodes a YAML plan and persists its workouts and meals.
func ImportPlan(db *sql.DB, r io.Reader) (PlanSummary, error) {
	var summary PlanSummary

	raw, err := io.ReadAll(r)
	if err != nil {
		return summary, fmt.Errorf("read plan: %w", err)
	}
	var plan Plan
	if err := yaml.Unmarshal(raw, &plan); err != nil {
		return summary, fmt.Errorf("parse plan yaml: %w", err)
	}
	if len(plan.Workouts) == 0 && len(plan.Meals) == 0 {
		return summary, fmt.Errorf("plan contains no workouts or meals")
	}

	for _, pw := range plan.Workouts {
		in := CreateWorkoutInput{Name: pw.Name, DayOfWeek: pw.DayOfWeek}
		for _, pe := range pw.Exercises {
			in.Exercises = append(in.Exercises, ExerciseInput{
				Name:        pe.Name,
				Sets:        pe.Sets,
				Reps:        pe.Reps,
				Weight:      pe.Weight,
				RestSeconds: pe.RestSeconds,
			})
		}
		if _, err := CreateWorkout(db, in); err != nil {
			return summary, fmt.Errorf("import workout %q: %w", pw.Name, err)
		}
		summary.Workouts++
	}

	if len(plan.Meals) > 0 {
		inputs := make([]CreateMealInput, 0, len(plan.Meals))
		for _, pm := range plan.Meals {
			inputs = append(inputs, CreateMealInput{
				Name:        pm.Name,
				TimeOfDay:   pm.TimeOfDay,
				Calories:    pm.Calories,
				ProteinG:    pm.Protein,
				CarbsG:      pm.Carbs,
				FatsG:       pm.Fats,
				Description: pm.Description,
			})
		}
		meals, err := BulkCreateMeals(db, inputs)
		if err != nil {
			return summary, err
		}
		summary.Meals = len(meals)
	}
	return summary, nil
}
