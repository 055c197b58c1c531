package service

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
)

// AddWeightLog records a weight entry and appends one weight_logged sync
// intent in the same transaction. Dates are deliberately not unique:
// several entries on one date are all retained.
func AddWeightLog(db *sql.DB, date string, weight float64) (*model.WeightLog, error) {
	if err := ValidDate(date); err != nil {
		return nil, err
	}
	if weight <= 0 {
		return nil, fmt.Errorf("weight must be > 0")
	}

	now := nowFunc()
	w := &model.WeightLog{
		ID:        uuid.NewString(),
		Date:      date,
		Weight:    weight,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin weight tx: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO weight_logs(id, date, weight, created_at, updated_at)
VALUES(?, ?, ?, ?, ?)
`, w.ID, w.Date, w.Weight, timestamp(now), timestamp(now)); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("insert weight log: %w", err)
	}
	if err := appendSyncEvent(tx, model.EventWeightLogged, "weight", w.ID, model.WeightLoggedPayload{
		Date:   w.Date,
		Weight: w.Weight,
	}); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit weight tx: %w", err)
	}
	return w, nil
}

// ListWeightLogs returns every entry ordered by date ascending.
func ListWeightLogs(db *sql.DB) ([]model.WeightLog, error) {
	rows, err := db.Query(`
SELECT id, date, weight, created_at, updated_at
FROM weight_logs
ORDER BY date ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list weight logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.WeightLog, 0)
	for rows.Next() {
		var w model.WeightLog
		var createdAt, updatedAt string
		if err := rows.Scan(&w.ID, &w.Date, &w.Weight, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan weight log: %w", err)
		}
		if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		if w.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight logs: %w", err)
	}
	return logs, nil
}

// LatestWeightLog returns the entry with the greatest date, or nil.
// created_at only tiebreaks entries sharing a date.
func LatestWeightLog(db *sql.DB) (*model.WeightLog, error) {
	row := db.QueryRow(`
SELECT id, date, weight, created_at, updated_at
FROM weight_logs
ORDER BY date DESC, created_at DESC
LIMIT 1`)

	var w model.WeightLog
	var createdAt, updatedAt string
	err := row.Scan(&w.ID, &w.Date, &w.Weight, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest weight log: %w", err)
	}
	if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func DeleteWeightLog(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM weight_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete weight log %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("weight log %s not found", id)
	}
	return nil
}
