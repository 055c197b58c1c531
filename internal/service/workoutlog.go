package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
)

// WorkoutLogByDate returns the daily log for the date, or nil. At most
// one exists per date; the storage constraint guarantees it.
func WorkoutLogByDate(db *sql.DB, date string) (*model.DailyWorkoutLog, error) {
	if err := ValidDate(date); err != nil {
		return nil, err
	}
	row := db.QueryRow(`
SELECT id, date, workout_id, completed, completed_at, created_at, updated_at
FROM daily_workout_logs
WHERE date = ?`, date)
	log, err := scanWorkoutLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load workout log for %s: %w", date, err)
	}
	log.Exercises, err = logExercises(db, log.ID)
	if err != nil {
		return nil, err
	}
	return log, nil
}

// CreateWorkoutLog opens the daily log for the date, snapshotting the
// workout's exercises as they are right now. Later edits to the workout
// never touch the snapshot. A log already open for the date is returned
// as is, whichever workout it points at.
func CreateWorkoutLog(db *sql.DB, date, workoutID string) (*model.DailyWorkoutLog, error) {
	if err := ValidDate(date); err != nil {
		return nil, err
	}
	exercises, err := ListExercises(db, workoutID)
	if err != nil {
		return nil, err
	}

	now := nowFunc()
	id := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin workout log tx: %w", err)
	}
	res, err := tx.Exec(`
INSERT OR IGNORE INTO daily_workout_logs(id, date, workout_id, completed, created_at, updated_at)
VALUES(?, ?, ?, 0, ?, ?)
`, id, date, workoutID, timestamp(now), timestamp(now))
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("insert workout log: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("read rows affected: %w", err)
	}
	if inserted > 0 {
		for _, e := range exercises {
			if _, err := tx.Exec(`
INSERT INTO workout_log_exercises(log_id, exercise_id, completed, position)
VALUES(?, ?, 0, ?)
`, id, e.ID, e.Position); err != nil {
				_ = tx.Rollback()
				return nil, fmt.Errorf("snapshot exercise %s: %w", e.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit workout log tx: %w", err)
	}
	return WorkoutLogByDate(db, date)
}

// ToggleLogExercise flips the completion state of one snapshotted
// exercise in the date's log.
func ToggleLogExercise(db *sql.DB, date, exerciseID string) error {
	log, err := WorkoutLogByDate(db, date)
	if err != nil {
		return err
	}
	if log == nil {
		return fmt.Errorf("no workout log for %s", date)
	}

	var completed bool
	err = db.QueryRow(`SELECT completed FROM workout_log_exercises WHERE log_id = ? AND exercise_id = ?`, log.ID, exerciseID).Scan(&completed)
	if err == sql.ErrNoRows {
		return fmt.Errorf("exercise %s is not part of the log for %s", exerciseID, date)
	}
	if err != nil {
		return fmt.Errorf("load log exercise: %w", err)
	}

	now := timestamp(nowFunc())
	var completedAt any
	if !completed {
		completedAt = now
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin toggle tx: %w", err)
	}
	if _, err := tx.Exec(`
UPDATE workout_log_exercises SET completed = ?, completed_at = ? WHERE log_id = ? AND exercise_id = ?
`, !completed, completedAt, log.ID, exerciseID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("toggle log exercise: %w", err)
	}
	if _, err := tx.Exec(`UPDATE daily_workout_logs SET updated_at = ? WHERE id = ?`, now, log.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("touch workout log: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit toggle tx: %w", err)
	}
	return nil
}

// CompleteWorkout marks the date's log completed and appends exactly one
// workout_confirmed sync intent in the same transaction. Completing an
// already-completed log is a no-op and emits nothing.
func CompleteWorkout(db *sql.DB, date string) error {
	log, err := WorkoutLogByDate(db, date)
	if err != nil {
		return err
	}
	if log == nil {
		return fmt.Errorf("no workout log for %s", date)
	}
	if log.Completed {
		return nil
	}

	now := timestamp(nowFunc())
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin complete tx: %w", err)
	}
	if _, err := tx.Exec(`
UPDATE daily_workout_logs SET completed = 1, completed_at = ?, updated_at = ? WHERE id = ? AND completed = 0
`, now, now, log.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("complete workout log: %w", err)
	}
	if err := appendSyncEvent(tx, model.EventWorkoutConfirmed, "workout", log.WorkoutID, model.WorkoutConfirmedPayload{
		Date:        date,
		WorkoutID:   log.WorkoutID,
		CompletedAt: now,
	}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit complete tx: %w", err)
	}
	return nil
}

// WorkoutLogsByDateRange returns logs with date in [start, end],
// ascending.
func WorkoutLogsByDateRange(db *sql.DB, start, end string) ([]model.DailyWorkoutLog, error) {
	if err := ValidDate(start); err != nil {
		return nil, err
	}
	if err := ValidDate(end); err != nil {
		return nil, err
	}
	rows, err := db.Query(`
SELECT id, date, workout_id, completed, completed_at, created_at, updated_at
FROM daily_workout_logs
WHERE date >= ? AND date <= ?
ORDER BY date ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list workout logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.DailyWorkoutLog, 0)
	for rows.Next() {
		log, err := scanWorkoutLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout log: %w", err)
		}
		logs = append(logs, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout logs: %w", err)
	}
	for i := range logs {
		logs[i].Exercises, err = logExercises(db, logs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return logs, nil
}

// CompletedWorkoutDates returns the dates in [start, end] whose log is
// completed, ascending.
func CompletedWorkoutDates(db *sql.DB, start, end string) ([]string, error) {
	if err := ValidDate(start); err != nil {
		return nil, err
	}
	if err := ValidDate(end); err != nil {
		return nil, err
	}
	rows, err := db.Query(`
SELECT date FROM daily_workout_logs
WHERE date >= ? AND date <= ? AND completed = 1
ORDER BY date ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list completed dates: %w", err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan completed date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed dates: %w", err)
	}
	return dates, nil
}

func logExercises(db *sql.DB, logID string) ([]model.CompletedExercise, error) {
	rows, err := db.Query(`
SELECT exercise_id, completed, completed_at, position
FROM workout_log_exercises
WHERE log_id = ?
ORDER BY position ASC`, logID)
	if err != nil {
		return nil, fmt.Errorf("list log exercises: %w", err)
	}
	defer rows.Close()

	items := make([]model.CompletedExercise, 0)
	for rows.Next() {
		var ce model.CompletedExercise
		var completedAt sql.NullString
		if err := rows.Scan(&ce.ExerciseID, &ce.Completed, &completedAt, &ce.Position); err != nil {
			return nil, fmt.Errorf("scan log exercise: %w", err)
		}
		if completedAt.Valid {
			t, err := parseTimestamp(completedAt.String)
			if err != nil {
				return nil, err
			}
			ce.CompletedAt = &t
		}
		items = append(items, ce)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log exercises: %w", err)
	}
	return items, nil
}

func scanWorkoutLog(row rowScanner) (*model.DailyWorkoutLog, error) {
	var log model.DailyWorkoutLog
	var completedAt sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&log.ID, &log.Date, &log.WorkoutID, &log.Completed, &completedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if completedAt.Valid {
		var t time.Time
		if t, err = parseTimestamp(completedAt.String); err != nil {
			return nil, err
		}
		log.CompletedAt = &t
	}
	if log.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if log.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &log, nil
}
