package service_test

import (
	"testing"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

func TestCreateAndListMeals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	inputs := []service.CreateMealInput{
		{Name: "Chicken & Rice", TimeOfDay: "dinner", Calories: 650, ProteinG: 45, CarbsG: 70, FatsG: 15},
		{Name: "Oatmeal", TimeOfDay: "breakfast", Calories: 350, ProteinG: 12, CarbsG: 60, FatsG: 6},
		{Name: "Protein Shake", TimeOfDay: "snack", Calories: 200, ProteinG: 30, CarbsG: 8, FatsG: 4},
	}
	for _, in := range inputs {
		if _, err := service.CreateMeal(db, in); err != nil {
			t.Fatalf("create meal %q: %v", in.Name, err)
		}
	}

	meals, err := service.ListMeals(db)
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(meals))
	}
	// Ordered breakfast, lunch, dinner, snack.
	if meals[0].Name != "Oatmeal" || meals[1].Name != "Chicken & Rice" || meals[2].Name != "Protein Shake" {
		t.Fatalf("unexpected time-of-day ordering: %s, %s, %s", meals[0].Name, meals[1].Name, meals[2].Name)
	}

	snacks, err := service.MealsByTimeOfDay(db, "snack")
	if err != nil {
		t.Fatalf("meals by time of day: %v", err)
	}
	if len(snacks) != 1 || snacks[0].Name != "Protein Shake" {
		t.Fatalf("unexpected snacks: %+v", snacks)
	}

	if _, err := service.MealsByTimeOfDay(db, "brunch"); err == nil {
		t.Fatalf("expected invalid time of day to be rejected")
	}
}

func TestCreateMealValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreateMeal(db, service.CreateMealInput{Name: "", TimeOfDay: "lunch"}); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	if _, err := service.CreateMeal(db, service.CreateMealInput{Name: "Soup", TimeOfDay: "midnight"}); err == nil {
		t.Fatalf("expected invalid time of day to be rejected")
	}
	if _, err := service.CreateMeal(db, service.CreateMealInput{Name: "Soup", TimeOfDay: "lunch", Calories: -1}); err == nil {
		t.Fatalf("expected negative calories to be rejected")
	}
}

func TestBulkCreateMealsAllOrNothing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	_, err := service.BulkCreateMeals(db, []service.CreateMealInput{
		{Name: "Eggs", TimeOfDay: "breakfast", Calories: 220, ProteinG: 18, CarbsG: 2, FatsG: 16},
		{Name: "Bad", TimeOfDay: "elevenses", Calories: 100},
	})
	if err == nil {
		t.Fatalf("expected bulk create with an invalid meal to fail")
	}

	meals, err := service.ListMeals(db)
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("expected no meals after failed bulk create, got %d", len(meals))
	}

	created, err := service.BulkCreateMeals(db, []service.CreateMealInput{
		{Name: "Eggs", TimeOfDay: "breakfast", Calories: 220, ProteinG: 18, CarbsG: 2, FatsG: 16},
		{Name: "Salad", TimeOfDay: "lunch", Calories: 400, ProteinG: 20, CarbsG: 30, FatsG: 20},
	})
	if err != nil {
		t.Fatalf("bulk create meals: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created meals, got %d", len(created))
	}
}

func TestUpdateAndDeleteMeal(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	m, err := service.CreateMeal(db, service.CreateMealInput{Name: "Yogurt", TimeOfDay: "snack", Calories: 150, ProteinG: 10, CarbsG: 12, FatsG: 5})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}

	calories := 180
	tod := "breakfast"
	if err := service.UpdateMeal(db, m.ID, model.MealTemplatePatch{Calories: &calories, TimeOfDay: &tod}); err != nil {
		t.Fatalf("update meal: %v", err)
	}

	got, err := service.GetMeal(db, m.ID)
	if err != nil {
		t.Fatalf("get meal: %v", err)
	}
	if got.Calories != 180 || got.TimeOfDay != "breakfast" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Name != "Yogurt" {
		t.Fatalf("unpatched field changed: %+v", got)
	}

	if err := service.UpdateMeal(db, m.ID, model.MealTemplatePatch{}); err == nil {
		t.Fatalf("expected empty patch to be rejected")
	}

	if err := service.DeleteMeal(db, m.ID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}
	gone, err := service.GetMeal(db, m.ID)
	if err != nil {
		t.Fatalf("get meal: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected meal gone, got %+v", gone)
	}
	if err := service.DeleteMeal(db, m.ID); err == nil {
		t.Fatalf("expected delete of missing meal to fail")
	}
}
