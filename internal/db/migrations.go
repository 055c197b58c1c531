package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  weight REAL NOT NULL CHECK(weight > 0),
  goal_weight REAL NOT NULL CHECK(goal_weight > 0),
  height REAL NOT NULL CHECK(height > 0),
  age INTEGER NOT NULL CHECK(age > 0),
  gender TEXT NOT NULL CHECK(gender IN ('male', 'female', 'other')),
  program_start_date TEXT NOT NULL,
  program_duration_days INTEGER NOT NULL CHECK(program_duration_days > 0),
  water_goal_ml INTEGER NOT NULL CHECK(water_goal_ml > 0),
  singleton INTEGER NOT NULL DEFAULT 1 UNIQUE CHECK(singleton = 1),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS workouts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  day_of_week INTEGER NOT NULL CHECK(day_of_week >= 0 AND day_of_week <= 6),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workouts_day_of_week ON workouts(day_of_week);

CREATE TABLE IF NOT EXISTS exercises (
  id TEXT PRIMARY KEY,
  workout_id TEXT NOT NULL,
  name TEXT NOT NULL,
  sets INTEGER NOT NULL CHECK(sets > 0),
  reps INTEGER NOT NULL CHECK(reps > 0),
  weight REAL CHECK(weight > 0),
  rest_seconds INTEGER NOT NULL CHECK(rest_seconds >= 0),
  position INTEGER NOT NULL CHECK(position >= 0),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY(workout_id) REFERENCES workouts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_exercises_workout_position ON exercises(workout_id, position);

CREATE TABLE IF NOT EXISTS meal_templates (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  time_of_day TEXT NOT NULL CHECK(time_of_day IN ('breakfast', 'lunch', 'dinner', 'snack')),
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fats_g REAL NOT NULL CHECK(fats_g >= 0),
  description TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meal_templates_time_of_day ON meal_templates(time_of_day);
`,
	},
	{
		version: 2,
		name:    "daily_logs",
		sql: `
CREATE TABLE IF NOT EXISTS daily_workout_logs (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL UNIQUE,
  workout_id TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  completed_at TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_daily_workout_logs_workout_id ON daily_workout_logs(workout_id);

CREATE TABLE IF NOT EXISTS workout_log_exercises (
  log_id TEXT NOT NULL,
  exercise_id TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  completed_at TEXT,
  position INTEGER NOT NULL CHECK(position >= 0),
  PRIMARY KEY(log_id, exercise_id),
  FOREIGN KEY(log_id) REFERENCES daily_workout_logs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS daily_nutrition_logs (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL UNIQUE,
  water_consumed_ml INTEGER NOT NULL DEFAULT 0 CHECK(water_consumed_ml >= 0),
  extra_calories INTEGER NOT NULL DEFAULT 0 CHECK(extra_calories >= 0),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS nutrition_log_meals (
  log_id TEXT NOT NULL,
  meal_id TEXT NOT NULL,
  checked_at TEXT NOT NULL,
  PRIMARY KEY(log_id, meal_id),
  FOREIGN KEY(log_id) REFERENCES daily_nutrition_logs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS weight_logs (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL,
  weight REAL NOT NULL CHECK(weight > 0),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_weight_logs_date ON weight_logs(date);
`,
	},
	{
		version: 3,
		name:    "sync_events",
		sql: `
CREATE TABLE IF NOT EXISTS sync_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  entity_type TEXT NOT NULL,
  entity_id TEXT NOT NULL,
  payload_json TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'synced', 'failed')),
  created_at TEXT NOT NULL,
  synced_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_sync_events_status_created_at ON sync_events(status, created_at);
`,
	},
	{
		version: 4,
		name:    "auth_credentials",
		sql: `
CREATE TABLE IF NOT EXISTS auth_credentials (
  id TEXT PRIMARY KEY,
  pin_hash TEXT NOT NULL,
  salt TEXT NOT NULL,
  singleton INTEGER NOT NULL DEFAULT 1 UNIQUE CHECK(singleton = 1),
  created_at TEXT NOT NULL
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
