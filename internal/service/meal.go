package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
)

type CreateMealInput struct {
	Name        string  `validate:"required"`
	TimeOfDay   string  `validate:"oneof=breakfast lunch dinner snack"`
	Calories    int     `validate:"gte=0"`
	ProteinG    float64 `validate:"gte=0"`
	CarbsG      float64 `validate:"gte=0"`
	FatsG       float64 `validate:"gte=0"`
	Description string
}

func CreateMeal(db *sql.DB, in CreateMealInput) (*model.MealTemplate, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.TimeOfDay = strings.ToLower(strings.TrimSpace(in.TimeOfDay))
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("validate meal: %w", err)
	}

	now := nowFunc()
	m := &model.MealTemplate{
		ID:          uuid.NewString(),
		Name:        in.Name,
		TimeOfDay:   in.TimeOfDay,
		Calories:    in.Calories,
		ProteinG:    in.ProteinG,
		CarbsG:      in.CarbsG,
		FatsG:       in.FatsG,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.Exec(`
INSERT INTO meal_templates(id, name, time_of_day, calories, protein_g, carbs_g, fats_g, description, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, m.ID, m.Name, m.TimeOfDay, m.Calories, m.ProteinG, m.CarbsG, m.FatsG, m.Description, timestamp(now), timestamp(now)); err != nil {
		return nil, fmt.Errorf("insert meal template: %w", err)
	}
	return m, nil
}

// BulkCreateMeals inserts every template in one transaction; either all
// land or none do.
func BulkCreateMeals(db *sql.DB, inputs []CreateMealInput) ([]model.MealTemplate, error) {
	for i := range inputs {
		inputs[i].Name = strings.TrimSpace(inputs[i].Name)
		inputs[i].TimeOfDay = strings.ToLower(strings.TrimSpace(inputs[i].TimeOfDay))
		if err := validate.Struct(inputs[i]); err != nil {
			return nil, fmt.Errorf("validate meal %d: %w", i+1, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin meals tx: %w", err)
	}
	now := nowFunc()
	meals := make([]model.MealTemplate, 0, len(inputs))
	for _, in := range inputs {
		m := model.MealTemplate{
			ID:          uuid.NewString(),
			Name:        in.Name,
			TimeOfDay:   in.TimeOfDay,
			Calories:    in.Calories,
			ProteinG:    in.ProteinG,
			CarbsG:      in.CarbsG,
			FatsG:       in.FatsG,
			Description: strings.TrimSpace(in.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := tx.Exec(`
INSERT INTO meal_templates(id, name, time_of_day, calories, protein_g, carbs_g, fats_g, description, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, m.ID, m.Name, m.TimeOfDay, m.Calories, m.ProteinG, m.CarbsG, m.FatsG, m.Description, timestamp(now), timestamp(now)); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("insert meal template %q: %w", m.Name, err)
		}
		meals = append(meals, m)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit meals tx: %w", err)
	}
	return meals, nil
}

func GetMeal(db *sql.DB, id string) (*model.MealTemplate, error) {
	row := db.QueryRow(`
SELECT id, name, time_of_day, calories, protein_g, carbs_g, fats_g, description, created_at, updated_at
FROM meal_templates WHERE id = ?`, id)
	m, err := scanMeal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load meal %s: %w", id, err)
	}
	return m, nil
}

func ListMeals(db *sql.DB) ([]model.MealTemplate, error) {
	return queryMeals(db, `
SELECT id, name, time_of_day, calories, protein_g, carbs_g, fats_g, description, created_at, updated_at
FROM meal_templates
ORDER BY CASE time_of_day
  WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 WHEN 'dinner' THEN 2 ELSE 3
END, created_at ASC`)
}

func MealsByTimeOfDay(db *sql.DB, timeOfDay string) ([]model.MealTemplate, error) {
	timeOfDay = strings.ToLower(strings.TrimSpace(timeOfDay))
	switch timeOfDay {
	case "breakfast", "lunch", "dinner", "snack":
	default:
		return nil, fmt.Errorf("invalid time of day %q", timeOfDay)
	}
	return queryMeals(db, `
SELECT id, name, time_of_day, calories, protein_g, carbs_g, fats_g, description, created_at, updated_at
FROM meal_templates
WHERE time_of_day = ?
ORDER BY created_at ASC`, timeOfDay)
}

func UpdateMeal(db *sql.DB, id string, patch model.MealTemplatePatch) error {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 9)
	appendSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return fmt.Errorf("meal name is required")
		}
		appendSet("name", name)
	}
	if patch.TimeOfDay != nil {
		tod := strings.ToLower(strings.TrimSpace(*patch.TimeOfDay))
		switch tod {
		case "breakfast", "lunch", "dinner", "snack":
		default:
			return fmt.Errorf("invalid time of day %q", *patch.TimeOfDay)
		}
		appendSet("time_of_day", tod)
	}
	if patch.Calories != nil {
		if *patch.Calories < 0 {
			return fmt.Errorf("calories must be >= 0")
		}
		appendSet("calories", *patch.Calories)
	}
	if patch.ProteinG != nil {
		if *patch.ProteinG < 0 {
			return fmt.Errorf("protein must be >= 0")
		}
		appendSet("protein_g", *patch.ProteinG)
	}
	if patch.CarbsG != nil {
		if *patch.CarbsG < 0 {
			return fmt.Errorf("carbs must be >= 0")
		}
		appendSet("carbs_g", *patch.CarbsG)
	}
	if patch.FatsG != nil {
		if *patch.FatsG < 0 {
			return fmt.Errorf("fats must be >= 0")
		}
		appendSet("fats_g", *patch.FatsG)
	}
	if patch.Description != nil {
		appendSet("description", strings.TrimSpace(*patch.Description))
	}
	if len(sets) == 0 {
		return fmt.Errorf("no meal fields to update")
	}
	appendSet("updated_at", timestamp(nowFunc()))
	args = append(args, id)

	res, err := db.Exec(`UPDATE meal_templates SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update meal %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %s not found", id)
	}
	return nil
}

// DeleteMeal removes the template. Nutrition logs that reference the id
// keep their membership rows; logs are the record of what happened, not
// live views.
func DeleteMeal(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM meal_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %s not found", id)
	}
	return nil
}

func queryMeals(db *sql.DB, query string, args ...any) ([]model.MealTemplate, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]model.MealTemplate, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

func scanMeal(row rowScanner) (*model.MealTemplate, error) {
	var m model.MealTemplate
	var createdAt, updatedAt string
	if err := row.Scan(&m.ID, &m.Name, &m.TimeOfDay, &m.Calories, &m.ProteinG, &m.CarbsG, &m.FatsG, &m.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
