package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
)

// appendSyncEvent records a pending sync intent inside the caller's
// transaction, so the event becomes durable exactly when the mutation it
// describes does. Nothing in this program ever moves status off
// pending; that belongs to an external reconciliation process.
func appendSyncEvent(tx *sql.Tx, eventType, entityType, entityID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sync payload: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO sync_events(id, event_type, entity_type, entity_id, payload_json, status, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, uuid.NewString(), eventType, entityType, entityID, string(raw), model.SyncStatusPending, timestamp(nowFunc())); err != nil {
		return fmt.Errorf("append sync event: %w", err)
	}
	return nil
}

type SyncEventFilter struct {
	Status string
	Limit  int
}

func ListSyncEvents(db *sql.DB, f SyncEventFilter) ([]model.SyncEvent, error) {
	query := `
SELECT id, event_type, entity_type, entity_id, payload_json, status, created_at, synced_at
FROM sync_events
WHERE 1=1`
	args := make([]any, 0, 2)

	if s := strings.TrimSpace(f.Status); s != "" {
		switch s {
		case model.SyncStatusPending, model.SyncStatusSynced, model.SyncStatusFailed:
		default:
			return nil, fmt.Errorf("invalid sync status %q", s)
		}
		query += ` AND status = ?`
		args = append(args, s)
	}
	query += ` ORDER BY created_at ASC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sync events: %w", err)
	}
	defer rows.Close()

	events := make([]model.SyncEvent, 0)
	for rows.Next() {
		var e model.SyncEvent
		var createdAt string
		var syncedAt sql.NullString
		if err := rows.Scan(&e.ID, &e.EventType, &e.EntityType, &e.EntityID, &e.Payload, &e.Status, &createdAt, &syncedAt); err != nil {
			return nil, fmt.Errorf("scan sync event: %w", err)
		}
		if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		if syncedAt.Valid {
			t, err := parseTimestamp(syncedAt.String)
			if err != nil {
				return nil, err
			}
			e.SyncedAt = &t
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync events: %w", err)
	}
	return events, nil
}

// SyncEventCounts returns per-status totals for the queue.
func SyncEventCounts(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT status, COUNT(1) FROM sync_events GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count sync events: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{
		model.SyncStatusPending: 0,
		model.SyncStatusSynced:  0,
		model.SyncStatusFailed:  0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan sync count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync counts: %w", err)
	}
	return counts, nil
}

// DecodeSyncPayload decodes the payload into the variant selected by the
// event type.
func DecodeSyncPayload(e model.SyncEvent) (any, error) {
	switch e.EventType {
	case model.EventWorkoutConfirmed:
		var p model.WorkoutConfirmedPayload
		if err := json.Unmarshal([]byte(e.Payload), &p); err != nil {
			return nil, fmt.Errorf("decode workout_confirmed payload: %w", err)
		}
		return p, nil
	case model.EventMealChecked:
		var p model.MealCheckedPayload
		if err := json.Unmarshal([]byte(e.Payload), &p); err != nil {
			return nil, fmt.Errorf("decode meal_checked payload: %w", err)
		}
		return p, nil
	case model.EventWeightLogged:
		var p model.WeightLoggedPayload
		if err := json.Unmarshal([]byte(e.Payload), &p); err != nil {
			return nil, fmt.Errorf("decode weight_logged payload: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown sync event type %q", e.EventType)
	}
}
