package service_test

import (
	"strings"
	"testing"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

const samplePlan = `
workouts:
  - name: Push Day
    day_of_week: 1
    exercises:
      - name: Bench Press
        sets: 4
        reps: 8
        weight: 60
        rest_seconds: 120
      - name: Push Ups
        sets: 3
        reps: 15
        rest_seconds: 60
  - name: Pull Day
    day_of_week: 3
    exercises:
      - name: Deadlift
        sets: 3
        reps: 5
        weight: 100
        rest_seconds: 180
meals:
  - name: Oatmeal
    time_of_day: breakfast
    calories: 350
    protein: 12
    carbs: 60
    fats: 6
  - name: Chicken & Rice
    time_of_day: dinner
    calories: 650
    protein: 45
    carbs: 70
    fats: 15
    description: Post-workout dinner
`

func TestImportPlan(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	summary, err := service.ImportPlan(db, strings.NewReader(samplePlan))
	if err != nil {
		t.Fatalf("import plan: %v", err)
	}
	if summary.Workouts != 2 || summary.Meals != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	workouts, err := service.ListWorkouts(db)
	if err != nil {
		t.Fatalf("list workouts: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(workouts))
	}
	if workouts[0].Name != "Push Day" || len(workouts[0].Exercises) != 2 {
		t.Fatalf("unexpected first workout: %+v", workouts[0])
	}
	if workouts[0].Exercises[0].Weight == nil || *workouts[0].Exercises[0].Weight != 60 {
		t.Fatalf("expected bench weight 60, got %+v", workouts[0].Exercises[0].Weight)
	}

	meals, err := service.ListMeals(db)
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
	if meals[1].Description != "Post-workout dinner" {
		t.Fatalf("unexpected meal description: %q", meals[1].Description)
	}
}

func TestImportPlanRejectsEmptyAndInvalid(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.ImportPlan(db, strings.NewReader("workouts: []\nmeals: []\n")); err == nil {
		t.Fatalf("expected empty plan to be rejected")
	}
	if _, err := service.ImportPlan(db, strings.NewReader("workouts: [\n")); err == nil {
		t.Fatalf("expected malformed yaml to be rejected")
	}

	bad := `
workouts:
  - name: Broken
    day_of_week: 9
`
	if _, err := service.ImportPlan(db, strings.NewReader(bad)); err == nil {
		t.Fatalf("expected invalid workout to be rejected")
	}
}
