package service

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
)

// GetOrCreateNutritionLog returns the date's nutrition log, creating it
// with zeroed counters on first access. The UNIQUE(date) constraint plus
// INSERT OR IGNORE make repeated and even racing calls converge on one
// row.
func GetOrCreateNutritionLog(db *sql.DB, date string) (*model.DailyNutritionLog, error) {
	if err := ValidDate(date); err != nil {
		return nil, err
	}
	now := timestamp(nowFunc())
	if _, err := db.Exec(`
INSERT OR IGNORE INTO daily_nutrition_logs(id, date, water_consumed_ml, extra_calories, created_at, updated_at)
VALUES(?, ?, 0, 0, ?, ?)
`, uuid.NewString(), date, now, now); err != nil {
		return nil, fmt.Errorf("upsert nutrition log: %w", err)
	}
	return NutritionLogByDate(db, date)
}

// NutritionLogByDate returns the log or nil, without creating one.
func NutritionLogByDate(db *sql.DB, date string) (*model.DailyNutritionLog, error) {
	if err := ValidDate(date); err != nil {
		return nil, err
	}
	row := db.QueryRow(`
SELECT id, date, water_consumed_ml, extra_calories, created_at, updated_at
FROM daily_nutrition_logs
WHERE date = ?`, date)

	var log model.DailyNutritionLog
	var createdAt, updatedAt string
	err := row.Scan(&log.ID, &log.Date, &log.WaterConsumedML, &log.ExtraCalories, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load nutrition log for %s: %w", date, err)
	}
	if log.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if log.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT meal_id FROM nutrition_log_meals WHERE log_id = ? ORDER BY checked_at ASC`, log.ID)
	if err != nil {
		return nil, fmt.Errorf("list checked meals: %w", err)
	}
	defer rows.Close()
	log.MealsCompleted = make([]string, 0)
	for rows.Next() {
		var mealID string
		if err := rows.Scan(&mealID); err != nil {
			return nil, fmt.Errorf("scan checked meal: %w", err)
		}
		log.MealsCompleted = append(log.MealsCompleted, mealID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checked meals: %w", err)
	}
	return &log, nil
}

// AddWater adds to the date's water counter, creating the log if needed.
func AddWater(db *sql.DB, date string, amountML int) error {
	if amountML <= 0 {
		return fmt.Errorf("water amount must be > 0")
	}
	log, err := GetOrCreateNutritionLog(db, date)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`
UPDATE daily_nutrition_logs SET water_consumed_ml = water_consumed_ml + ?, updated_at = ? WHERE id = ?
`, amountML, timestamp(nowFunc()), log.ID); err != nil {
		return fmt.Errorf("add water: %w", err)
	}
	return nil
}

// ToggleMeal flips the meal's membership in the date's completed set:
// absent becomes checked, checked becomes unchecked. Two toggles of the
// same id cancel out. Each toggle appends one meal_checked sync intent
// in the same transaction.
func ToggleMeal(db *sql.DB, date, mealID string) (bool, error) {
	log, err := GetOrCreateNutritionLog(db, date)
	if err != nil {
		return false, err
	}

	now := timestamp(nowFunc())
	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin toggle tx: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM nutrition_log_meals WHERE log_id = ? AND meal_id = ?`, log.ID, mealID)
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("uncheck meal: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("read rows affected: %w", err)
	}
	checked := removed == 0
	if checked {
		if _, err := tx.Exec(`
INSERT INTO nutrition_log_meals(log_id, meal_id, checked_at) VALUES(?, ?, ?)
`, log.ID, mealID, now); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("check meal: %w", err)
		}
	}
	if _, err := tx.Exec(`UPDATE daily_nutrition_logs SET updated_at = ? WHERE id = ?`, now, log.ID); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("touch nutrition log: %w", err)
	}
	if err := appendSyncEvent(tx, model.EventMealChecked, "nutrition", mealID, model.MealCheckedPayload{
		Date:      date,
		MealID:    mealID,
		Completed: checked,
	}); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit toggle tx: %w", err)
	}
	return checked, nil
}

// SetExtraCalories records calories eaten outside the meal templates.
func SetExtraCalories(db *sql.DB, date string, calories int) error {
	if calories < 0 {
		return fmt.Errorf("extra calories must be >= 0")
	}
	log, err := GetOrCreateNutritionLog(db, date)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`
UPDATE daily_nutrition_logs SET extra_calories = ?, updated_at = ? WHERE id = ?
`, calories, timestamp(nowFunc()), log.ID); err != nil {
		return fmt.Errorf("set extra calories: %w", err)
	}
	return nil
}

type NutritionTotals struct {
	Calories int
	ProteinG float64
	CarbsG   float64
	FatsG    float64
	Meals    int
}

// DailyNutritionTotals sums the macros of the date's checked meals plus
// extra calories. Checked meals whose template was deleted contribute
// nothing but still count as checked.
func DailyNutritionTotals(db *sql.DB, date string) (NutritionTotals, error) {
	var totals NutritionTotals
	log, err := NutritionLogByDate(db, date)
	if err != nil {
		return totals, err
	}
	if log == nil {
		return totals, nil
	}
	totals.Meals = len(log.MealsCompleted)
	totals.Calories = log.ExtraCalories

	row := db.QueryRow(`
SELECT IFNULL(SUM(m.calories), 0), IFNULL(SUM(m.protein_g), 0), IFNULL(SUM(m.carbs_g), 0), IFNULL(SUM(m.fats_g), 0)
FROM nutrition_log_meals nm
JOIN meal_templates m ON m.id = nm.meal_id
WHERE nm.log_id = ?`, log.ID)
	var calories int
	if err := row.Scan(&calories, &totals.ProteinG, &totals.CarbsG, &totals.FatsG); err != nil {
		return totals, fmt.Errorf("sum nutrition totals: %w", err)
	}
	totals.Calories += calories
	return totals, nil
}
