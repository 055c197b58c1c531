package fit90

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			return printDashboard(cmd, sqldb)
		})
	},
}

var todayStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Open today's workout log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			today := service.Today()
			workout, err := service.WorkoutByDay(sqldb, int(time.Now().Weekday()))
			if err != nil {
				return err
			}
			if workout == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Rest day: no workout scheduled for today")
				return nil
			}
			log, err := service.CreateWorkoutLog(sqldb, today, workout.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workout log open for %s: %s (%d exercises)\n", log.Date, workout.Name, len(log.Exercises))
			return nil
		})
	},
}

var todayToggleCmd = &cobra.Command{
	Use:   "toggle <exercise-id>",
	Short: "Toggle an exercise in today's log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			if err := service.ToggleLogExercise(sqldb, service.Today(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Toggled")
			return nil
		})
	},
}

var todayCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark today's workout as done",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			if err := service.CompleteWorkout(sqldb, service.Today()); err != nil {
				return err
			}
			color.Green("Workout complete!")
			return nil
		})
	},
}

var todayCheckCmd = &cobra.Command{
	Use:   "check <meal-id>",
	Short: "Toggle a meal in today's nutrition log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			checked, err := service.ToggleMeal(sqldb, service.Today(), args[0])
			if err != nil {
				return err
			}
			if checked {
				color.Green("Meal checked")
			} else {
				color.Yellow("Meal unchecked")
			}
			return nil
		})
	},
}

var todayCaloriesCmd = &cobra.Command{
	Use:   "calories <amount>",
	Short: "Set today's extra calories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseIntArg("calories", args[0])
		if err != nil {
			return err
		}
		return withSession(func(sqldb *sql.DB) error {
			if err := service.SetExtraCalories(sqldb, service.Today(), amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extra calories set to %d\n", amount)
			return nil
		})
	},
}

func printDashboard(cmd *cobra.Command, sqldb *sql.DB) error {
	out := cmd.OutOrStdout()
	now := time.Now()
	today := service.Today()

	profile, err := service.GetProfile(sqldb)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile yet; run 'fit90 setup'")
	}

	progress, err := service.CalculateProgress(profile.ProgramStartDate, profile.ProgramDurationDays, now)
	if err != nil {
		return err
	}
	color.Cyan("Day %d of %d (%d%% complete, %d days left)", progress.CurrentDay, profile.ProgramDurationDays, progress.PercentComplete, progress.DaysRemaining)

	completed, err := service.CompletedWorkoutDates(sqldb, profile.ProgramStartDate, today)
	if err != nil {
		return err
	}
	streak, err := service.CalculateStreak(completed, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Streak: %d day(s)\n\n", streak)

	workout, err := service.WorkoutByDay(sqldb, int(now.Weekday()))
	if err != nil {
		return err
	}
	if workout == nil {
		fmt.Fprintln(out, "Workout: rest day")
	} else {
		log, err := service.WorkoutLogByDate(sqldb, today)
		if err != nil {
			return err
		}
		switch {
		case log == nil:
			fmt.Fprintf(out, "Workout: %s (not started; 'fit90 today start')\n", workout.Name)
		case log.Completed:
			color.Green("Workout: %s — done", workout.Name)
		default:
			done := 0
			for _, e := range log.Exercises {
				if e.Completed {
					done++
				}
			}
			fmt.Fprintf(out, "Workout: %s — %d/%d exercises\n", workout.Name, done, len(log.Exercises))
		}
	}

	totals, err := service.DailyNutritionTotals(sqldb, today)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Nutrition: %d kcal (P %.0fg / C %.0fg / F %.0fg), %d meal(s) checked\n", totals.Calories, totals.ProteinG, totals.CarbsG, totals.FatsG, totals.Meals)

	nlog, err := service.NutritionLogByDate(sqldb, today)
	if err != nil {
		return err
	}
	water := 0
	if nlog != nil {
		water = nlog.WaterConsumedML
	}
	pct := 0
	if profile.WaterGoalML > 0 {
		pct = water * 100 / profile.WaterGoalML
		if pct > 100 {
			pct = 100
		}
	}
	fmt.Fprintf(out, "Water: %d/%d ml (%d%%)\n", water, profile.WaterGoalML, pct)
	return nil
}

func init() {
	todayCmd.AddCommand(todayStartCmd, todayToggleCmd, todayCompleteCmd, todayCheckCmd, todayCaloriesCmd)
	rootCmd.AddCommand(todayCmd)
}
