package model

import "time"

type Profile struct {
	ID                  string
	Name                string
	Weight              float64
	GoalWeight          float64
	Height              float64
	Age                 int
	Gender              string
	ProgramStartDate    string
	ProgramDurationDays int
	WaterGoalML         int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Workout struct {
	ID        string
	Name      string
	DayOfWeek int
	Exercises []Exercise
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Exercise struct {
	ID          string
	WorkoutID   string
	Name        string
	Sets        int
	Reps        int
	Weight      *float64
	RestSeconds int
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MealTemplate struct {
	ID          string
	Name        string
	TimeOfDay   string
	Calories    int
	ProteinG    float64
	CarbsG      float64
	FatsG       float64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CompletedExercise struct {
	ExerciseID  string
	Completed   bool
	CompletedAt *time.Time
	Position    int
}

type DailyWorkoutLog struct {
	ID          string
	Date        string
	WorkoutID   string
	Completed   bool
	CompletedAt *time.Time
	Exercises   []CompletedExercise
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DailyNutritionLog struct {
	ID              string
	Date            string
	WaterConsumedML int
	MealsCompleted  []string
	ExtraCalories   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type WeightLog struct {
	ID        string
	Date      string
	Weight    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AuthCredentials struct {
	ID        string
	PinHash   string
	Salt      string
	CreatedAt time.Time
}

const (
	SyncStatusPending = "pending"
	SyncStatusSynced  = "synced"
	SyncStatusFailed  = "failed"
)

const (
	EventWorkoutConfirmed = "workout_confirmed"
	EventMealChecked      = "meal_checked"
	EventWeightLogged     = "weight_logged"
)

type SyncEvent struct {
	ID         string
	EventType  string
	EntityType string
	EntityID   string
	Payload    string
	Status     string
	CreatedAt  time.Time
	SyncedAt   *time.Time
}

// Payload variants, one per event type. A reconciliation consumer can
// switch exhaustively on EventType.
type WorkoutConfirmedPayload struct {
	Date        string `json:"date"`
	WorkoutID   string `json:"workoutId"`
	CompletedAt string `json:"completedAt"`
}

type MealCheckedPayload struct {
	Date      string `json:"date"`
	MealID    string `json:"mealId"`
	Completed bool   `json:"completed"`
}

type WeightLoggedPayload struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Patch structs enumerate exactly which fields are mutable. A nil field
// leaves the stored value untouched.

type ProfilePatch struct {
	Name                *string
	Weight              *float64
	GoalWeight          *float64
	Height              *float64
	Age                 *int
	Gender              *string
	ProgramStartDate    *string
	ProgramDurationDays *int
	WaterGoalML         *int
}

type WorkoutPatch struct {
	Name      *string
	DayOfWeek *int
}

type MealTemplatePatch struct {
	Name        *string
	TimeOfDay   *string
	Calories    *int
	ProteinG    *float64
	CarbsG      *float64
	FatsG       *float64
	Description *string
}
