package service_test

import (
	"testing"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

func TestGetOrCreateNutritionLogConverges(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	first, err := service.GetOrCreateNutritionLog(db, "2024-02-01")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	second, err := service.GetOrCreateNutritionLog(db, "2024-02-01")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one log per date, got ids %s and %s", first.ID, second.ID)
	}
	if first.WaterConsumedML != 0 || first.ExtraCalories != 0 {
		t.Fatalf("expected zeroed counters, got %+v", first)
	}

	if _, err := service.GetOrCreateNutritionLog(db, "02/01/2024"); err == nil {
		t.Fatalf("expected invalid date to be rejected")
	}
}

func TestNutritionLogByDateAbsentIsNil(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	log, err := service.NutritionLogByDate(db, "2024-02-01")
	if err != nil {
		t.Fatalf("log by date: %v", err)
	}
	if log != nil {
		t.Fatalf("expected nil log, got %+v", log)
	}
}

func TestAddWaterAccumulates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.AddWater(db, "2024-02-01", 500); err != nil {
		t.Fatalf("add water: %v", err)
	}
	if err := service.AddWater(db, "2024-02-01", 250); err != nil {
		t.Fatalf("add water: %v", err)
	}

	log, err := service.NutritionLogByDate(db, "2024-02-01")
	if err != nil {
		t.Fatalf("log by date: %v", err)
	}
	if log.WaterConsumedML != 750 {
		t.Fatalf("expected 750ml, got %d", log.WaterConsumedML)
	}

	if err := service.AddWater(db, "2024-02-01", 0); err == nil {
		t.Fatalf("expected zero amount to be rejected")
	}
	if err := service.AddWater(db, "2024-02-01", -100); err == nil {
		t.Fatalf("expected negative amount to be rejected")
	}
}

func TestToggleMealIsItsOwnInverse(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	m, err := service.CreateMeal(db, service.CreateMealInput{Name: "Oatmeal", TimeOfDay: "breakfast", Calories: 350, ProteinG: 12, CarbsG: 60, FatsG: 6})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}

	checked, err := service.ToggleMeal(db, "2024-02-01", m.ID)
	if err != nil {
		t.Fatalf("toggle meal: %v", err)
	}
	if !checked {
		t.Fatalf("first toggle should check the meal")
	}
	log, err := service.NutritionLogByDate(db, "2024-02-01")
	if err != nil {
		t.Fatalf("log by date: %v", err)
	}
	if len(log.MealsCompleted) != 1 || log.MealsCompleted[0] != m.ID {
		t.Fatalf("expected meal checked, got %v", log.MealsCompleted)
	}

	checked, err = service.ToggleMeal(db, "2024-02-01", m.ID)
	if err != nil {
		t.Fatalf("toggle meal: %v", err)
	}
	if checked {
		t.Fatalf("second toggle should uncheck the meal")
	}
	log, err = service.NutritionLogByDate(db, "2024-02-01")
	if err != nil {
		t.Fatalf("log by date: %v", err)
	}
	if len(log.MealsCompleted) != 0 {
		t.Fatalf("expected no checked meals after double toggle, got %v", log.MealsCompleted)
	}

	// Each toggle records its own intent.
	events, err := service.ListSyncEvents(db, service.SyncEventFilter{Status: model.SyncStatusPending})
	if err != nil {
		t.Fatalf("list sync events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 meal_checked events, got %d", len(events))
	}
	for _, e := range events {
		if e.EventType != model.EventMealChecked {
			t.Fatalf("unexpected event type %s", e.EventType)
		}
	}
}

func TestSetExtraCaloriesAndTotals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	breakfast, err := service.CreateMeal(db, service.CreateMealInput{Name: "Oatmeal", TimeOfDay: "breakfast", Calories: 350, ProteinG: 12, CarbsG: 60, FatsG: 6})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	lunch, err := service.CreateMeal(db, service.CreateMealInput{Name: "Salad", TimeOfDay: "lunch", Calories: 400, ProteinG: 20, CarbsG: 30, FatsG: 20})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}

	if _, err := service.ToggleMeal(db, "2024-02-01", breakfast.ID); err != nil {
		t.Fatalf("toggle meal: %v", err)
	}
	if _, err := service.ToggleMeal(db, "2024-02-01", lunch.ID); err != nil {
		t.Fatalf("toggle meal: %v", err)
	}
	if err := service.SetExtraCalories(db, "2024-02-01", 150); err != nil {
		t.Fatalf("set extra calories: %v", err)
	}

	totals, err := service.DailyNutritionTotals(db, "2024-02-01")
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if totals.Calories != 350+400+150 {
		t.Fatalf("expected %d calories, got %d", 350+400+150, totals.Calories)
	}
	if totals.ProteinG != 32 || totals.CarbsG != 90 || totals.FatsG != 26 {
		t.Fatalf("unexpected macro totals: %+v", totals)
	}
	if totals.Meals != 2 {
		t.Fatalf("expected 2 checked meals, got %d", totals.Meals)
	}

	if err := service.SetExtraCalories(db, "2024-02-01", -1); err == nil {
		t.Fatalf("expected negative extra calories to be rejected")
	}

	// A day with no log sums to zero.
	empty, err := service.DailyNutritionTotals(db, "2024-02-02")
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if empty.Calories != 0 || empty.Meals != 0 {
		t.Fatalf("expected empty totals, got %+v", empty)
	}
}

func TestTotalsSurviveDeletedTemplate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	m, err := service.CreateMeal(db, service.CreateMealInput{Name: "Oatmeal", TimeOfDay: "breakfast", Calories: 350, ProteinG: 12, CarbsG: 60, FatsG: 6})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	if _, err := service.ToggleMeal(db, "2024-02-01", m.ID); err != nil {
		t.Fatalf("toggle meal: %v", err)
	}
	if err := service.DeleteMeal(db, m.ID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}

	totals, err := service.DailyNutritionTotals(db, "2024-02-01")
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if totals.Meals != 1 {
		t.Fatalf("expected checked meal to survive template delete, got %d", totals.Meals)
	}
	if totals.Calories != 0 {
		t.Fatalf("deleted template should contribute no macros, got %d calories", totals.Calories)
	}
}
