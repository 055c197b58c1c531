package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
)

type CreateProfileInput struct {
	Name                string  `validate:"required"`
	Weight              float64 `validate:"gt=0"`
	GoalWeight          float64 `validate:"gt=0"`
	Height              float64 `validate:"gt=0"`
	Age                 int     `validate:"gt=0"`
	Gender              string  `validate:"oneof=male female other"`
	ProgramStartDate    string  `validate:"required"`
	ProgramDurationDays int     `validate:"gt=0"`
	WaterGoalML         int     `validate:"gt=0"`
}

// CreateProfile inserts the single profile row. A second create fails on
// the singleton constraint rather than silently duplicating.
func CreateProfile(db *sql.DB, in CreateProfileInput) (*model.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}
	if err := ValidDate(in.ProgramStartDate); err != nil {
		return nil, err
	}

	now := nowFunc()
	p := &model.Profile{
		ID:                  uuid.NewString(),
		Name:                in.Name,
		Weight:              in.Weight,
		GoalWeight:          in.GoalWeight,
		Height:              in.Height,
		Age:                 in.Age,
		Gender:              in.Gender,
		ProgramStartDate:    in.ProgramStartDate,
		ProgramDurationDays: in.ProgramDurationDays,
		WaterGoalML:         in.WaterGoalML,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	_, err := db.Exec(`
INSERT INTO profiles(id, name, weight, goal_weight, height, age, gender, program_start_date, program_duration_days, water_goal_ml, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, p.ID, p.Name, p.Weight, p.GoalWeight, p.Height, p.Age, p.Gender, p.ProgramStartDate, p.ProgramDurationDays, p.WaterGoalML, timestamp(now), timestamp(now))
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

// GetProfile returns the profile or nil when none exists.
func GetProfile(db *sql.DB) (*model.Profile, error) {
	row := db.QueryRow(`
SELECT id, name, weight, goal_weight, height, age, gender, program_start_date, program_duration_days, water_goal_ml, created_at, updated_at
FROM profiles
LIMIT 1`)

	var p model.Profile
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &p.Weight, &p.GoalWeight, &p.Height, &p.Age, &p.Gender, &p.ProgramStartDate, &p.ProgramDurationDays, &p.WaterGoalML, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func ProfileExists(db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(1) FROM profiles`).Scan(&count); err != nil {
		return false, fmt.Errorf("count profiles: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile applies the set fields of the patch and refreshes
// updated_at.
func UpdateProfile(db *sql.DB, id string, patch model.ProfilePatch) error {
	sets := make([]string, 0, 10)
	args := make([]any, 0, 11)

	appendSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return fmt.Errorf("profile name is required")
		}
		appendSet("name", name)
	}
	if patch.Weight != nil {
		if *patch.Weight <= 0 {
			return fmt.Errorf("weight must be > 0")
		}
		appendSet("weight", *patch.Weight)
	}
	if patch.GoalWeight != nil {
		if *patch.GoalWeight <= 0 {
			return fmt.Errorf("goal weight must be > 0")
		}
		appendSet("goal_weight", *patch.GoalWeight)
	}
	if patch.Height != nil {
		if *patch.Height <= 0 {
			return fmt.Errorf("height must be > 0")
		}
		appendSet("height", *patch.Height)
	}
	if patch.Age != nil {
		if *patch.Age <= 0 {
			return fmt.Errorf("age must be > 0")
		}
		appendSet("age", *patch.Age)
	}
	if patch.Gender != nil {
		switch *patch.Gender {
		case "male", "female", "other":
		default:
			return fmt.Errorf("invalid gender %q", *patch.Gender)
		}
		appendSet("gender", *patch.Gender)
	}
	if patch.ProgramStartDate != nil {
		if err := ValidDate(*patch.ProgramStartDate); err != nil {
			return err
		}
		appendSet("program_start_date", *patch.ProgramStartDate)
	}
	if patch.ProgramDurationDays != nil {
		if *patch.ProgramDurationDays <= 0 {
			return fmt.Errorf("program duration must be > 0")
		}
		appendSet("program_duration_days", *patch.ProgramDurationDays)
	}
	if patch.WaterGoalML != nil {
		if *patch.WaterGoalML <= 0 {
			return fmt.Errorf("water goal must be > 0")
		}
		appendSet("water_goal_ml", *patch.WaterGoalML)
	}

	if len(sets) == 0 {
		return fmt.Errorf("no profile fields to update")
	}
	appendSet("updated_at", timestamp(nowFunc()))
	args = append(args, id)

	res, err := db.Exec(`UPDATE profiles SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s not found", id)
	}
	return nil
}
