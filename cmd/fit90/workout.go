package fit90

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Manage your weekly workouts",
}

var (
	workoutName string
	workoutDay  int
)

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a workout for a day of the week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			w, err := service.CreateWorkout(sqldb, service.CreateWorkoutInput{
				Name:      workoutName,
				DayOfWeek: workoutDay,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added workout %s (%s)\n", w.Name, w.ID)
			return nil
		})
	},
}

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			workouts, err := service.ListWorkouts(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDAY\tNAME\tEXERCISES")
			for _, w := range workouts {
				fmt.Fprintf(out, "%s\t%s\t%s\t%d\n", w.ID, dayName(w.DayOfWeek), w.Name, len(w.Exercises))
			}
			return nil
		})
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout and its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			w, err := service.GetWorkout(sqldb, args[0])
			if err != nil {
				return err
			}
			if w == nil {
				return fmt.Errorf("workout %s not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", w.Name, dayName(w.DayOfWeek))
			for _, e := range w.Exercises {
				weight := "-"
				if e.Weight != nil {
					weight = fmt.Sprintf("%.1fkg", *e.Weight)
				}
				fmt.Fprintf(out, "  %d. %s  %dx%d %s rest %ds  [%s]\n", e.Position+1, e.Name, e.Sets, e.Reps, weight, e.RestSeconds, e.ID)
			}
			return nil
		})
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workout and its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			if err := service.DeleteWorkout(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %s\n", args[0])
			return nil
		})
	},
}

var (
	exWorkoutID string
	exName      string
	exSets      int
	exReps      int
	exWeight    float64
	exRest      int
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage exercises inside a workout",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an exercise to a workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			w, err := service.GetWorkout(sqldb, exWorkoutID)
			if err != nil {
				return err
			}
			if w == nil {
				return fmt.Errorf("workout %s not found", exWorkoutID)
			}
			var weight *float64
			if cmd.Flags().Changed("weight") {
				weight = &exWeight
			}
			e, err := service.AddExercise(sqldb, exWorkoutID, service.ExerciseInput{
				Name:        exName,
				Sets:        exSets,
				Reps:        exReps,
				Weight:      weight,
				RestSeconds: exRest,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added exercise %s (%s)\n", e.Name, e.ID)
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			if err := service.DeleteExercise(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise %s\n", args[0])
			return nil
		})
	},
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func dayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return "?"
	}
	return dayNames[dayOfWeek]
}

func init() {
	workoutAddCmd.Flags().StringVar(&workoutName, "name", "", "Workout name")
	workoutAddCmd.Flags().IntVar(&workoutDay, "day", 0, "Day of week (0=Sunday .. 6=Saturday)")
	_ = workoutAddCmd.MarkFlagRequired("name")
	_ = workoutAddCmd.MarkFlagRequired("day")

	exerciseAddCmd.Flags().StringVar(&exWorkoutID, "workout", "", "Workout id")
	exerciseAddCmd.Flags().StringVar(&exName, "name", "", "Exercise name")
	exerciseAddCmd.Flags().IntVar(&exSets, "sets", 0, "Sets")
	exerciseAddCmd.Flags().IntVar(&exReps, "reps", 0, "Reps")
	exerciseAddCmd.Flags().Float64Var(&exWeight, "weight", 0, "Weight (kg, optional)")
	exerciseAddCmd.Flags().IntVar(&exRest, "rest", 60, "Rest between sets (seconds)")
	_ = exerciseAddCmd.MarkFlagRequired("workout")
	_ = exerciseAddCmd.MarkFlagRequired("name")
	_ = exerciseAddCmd.MarkFlagRequired("sets")
	_ = exerciseAddCmd.MarkFlagRequired("reps")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseDeleteCmd)
	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutShowCmd, workoutDeleteCmd, exerciseCmd)
	rootCmd.AddCommand(workoutCmd)
}
