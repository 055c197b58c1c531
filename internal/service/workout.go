package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
)

type ExerciseInput struct {
	Name        string   `validate:"required"`
	Sets        int      `validate:"gt=0"`
	Reps        int      `validate:"gt=0"`
	Weight      *float64 `validate:"omitempty,gt=0"`
	RestSeconds int      `validate:"gte=0"`
}

type CreateWorkoutInput struct {
	Name      string `validate:"required"`
	DayOfWeek int    `validate:"gte=0,lte=6"`
	Exercises []ExerciseInput
}

// CreateWorkout persists the workout and its exercises in one
// transaction, positions assigned from input order.
func CreateWorkout(db *sql.DB, in CreateWorkoutInput) (*model.Workout, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("validate workout: %w", err)
	}
	for i := range in.Exercises {
		in.Exercises[i].Name = strings.TrimSpace(in.Exercises[i].Name)
		if err := validate.Struct(in.Exercises[i]); err != nil {
			return nil, fmt.Errorf("validate exercise %d: %w", i+1, err)
		}
	}

	now := nowFunc()
	w := &model.Workout{
		ID:        uuid.NewString(),
		Name:      in.Name,
		DayOfWeek: in.DayOfWeek,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin workout tx: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO workouts(id, name, day_of_week, created_at, updated_at)
VALUES(?, ?, ?, ?, ?)
`, w.ID, w.Name, w.DayOfWeek, timestamp(now), timestamp(now)); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	for i, ex := range in.Exercises {
		e := model.Exercise{
			ID:          uuid.NewString(),
			WorkoutID:   w.ID,
			Name:        ex.Name,
			Sets:        ex.Sets,
			Reps:        ex.Reps,
			Weight:      ex.Weight,
			RestSeconds: ex.RestSeconds,
			Position:    i,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := tx.Exec(`
INSERT INTO exercises(id, workout_id, name, sets, reps, weight, rest_seconds, position, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.WorkoutID, e.Name, e.Sets, e.Reps, e.Weight, e.RestSeconds, e.Position, timestamp(now), timestamp(now)); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("insert exercise %q: %w", e.Name, err)
		}
		w.Exercises = append(w.Exercises, e)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit workout tx: %w", err)
	}
	return w, nil
}

// GetWorkout returns the workout with its exercises ordered by position,
// or nil when absent.
func GetWorkout(db *sql.DB, id string) (*model.Workout, error) {
	row := db.QueryRow(`SELECT id, name, day_of_week, created_at, updated_at FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load workout %s: %w", id, err)
	}
	w.Exercises, err = ListExercises(db, w.ID)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func ListWorkouts(db *sql.DB) ([]model.Workout, error) {
	rows, err := db.Query(`SELECT id, name, day_of_week, created_at, updated_at FROM workouts ORDER BY day_of_week ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	workouts := make([]model.Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	for i := range workouts {
		workouts[i].Exercises, err = ListExercises(db, workouts[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// WorkoutByDay returns the first workout scheduled for the day of week
// (0 = Sunday), or nil. Several workouts may share a day; first match
// wins.
func WorkoutByDay(db *sql.DB, dayOfWeek int) (*model.Workout, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("day of week must be between 0 and 6")
	}
	row := db.QueryRow(`
SELECT id, name, day_of_week, created_at, updated_at
FROM workouts
WHERE day_of_week = ?
ORDER BY created_at ASC
LIMIT 1`, dayOfWeek)
	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load workout for day %d: %w", dayOfWeek, err)
	}
	w.Exercises, err = ListExercises(db, w.ID)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func UpdateWorkout(db *sql.DB, id string, patch model.WorkoutPatch) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return fmt.Errorf("workout name is required")
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if patch.DayOfWeek != nil {
		if *patch.DayOfWeek < 0 || *patch.DayOfWeek > 6 {
			return fmt.Errorf("day of week must be between 0 and 6")
		}
		sets = append(sets, "day_of_week = ?")
		args = append(args, *patch.DayOfWeek)
	}
	if len(sets) == 0 {
		return fmt.Errorf("no workout fields to update")
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, timestamp(nowFunc()), id)

	res, err := db.Exec(`UPDATE workouts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update workout %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workout %s not found", id)
	}
	return nil
}

// DeleteWorkout removes the workout; its exercises go with it through
// the foreign-key cascade, so no orphans survive a partial failure.
// Historical daily logs referencing the workout are untouched.
func DeleteWorkout(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workout %s not found", id)
	}
	return nil
}

// AddExercise appends an exercise at the end of the workout's sequence.
func AddExercise(db *sql.DB, workoutID string, in ExerciseInput) (*model.Exercise, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("validate exercise: %w", err)
	}

	var next int
	if err := db.QueryRow(`SELECT IFNULL(MAX(position) + 1, 0) FROM exercises WHERE workout_id = ?`, workoutID).Scan(&next); err != nil {
		return nil, fmt.Errorf("next exercise position: %w", err)
	}

	now := nowFunc()
	e := &model.Exercise{
		ID:          uuid.NewString(),
		WorkoutID:   workoutID,
		Name:        in.Name,
		Sets:        in.Sets,
		Reps:        in.Reps,
		Weight:      in.Weight,
		RestSeconds: in.RestSeconds,
		Position:    next,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.Exec(`
INSERT INTO exercises(id, workout_id, name, sets, reps, weight, rest_seconds, position, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.WorkoutID, e.Name, e.Sets, e.Reps, e.Weight, e.RestSeconds, e.Position, timestamp(now), timestamp(now)); err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	return e, nil
}

func ListExercises(db *sql.DB, workoutID string) ([]model.Exercise, error) {
	rows, err := db.Query(`
SELECT id, workout_id, name, sets, reps, weight, rest_seconds, position, created_at, updated_at
FROM exercises
WHERE workout_id = ?
ORDER BY position ASC`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]model.Exercise, 0)
	for rows.Next() {
		var e model.Exercise
		var weight sql.NullFloat64
		var createdAt, updatedAt string
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps, &weight, &e.RestSeconds, &e.Position, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if weight.Valid {
			v := weight.Float64
			e.Weight = &v
		}
		if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		if e.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}
	return exercises, nil
}

func DeleteExercise(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*model.Workout, error) {
	var w model.Workout
	var createdAt, updatedAt string
	if err := row.Scan(&w.ID, &w.Name, &w.DayOfWeek, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
