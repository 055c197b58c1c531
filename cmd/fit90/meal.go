package fit90

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage meal templates",
}

var (
	mealName     string
	mealTime     string
	mealCalories int
	mealProtein  float64
	mealCarbs    float64
	mealFats     float64
	mealDesc     string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a meal template",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			m, err := service.CreateMeal(sqldb, service.CreateMealInput{
				Name:        mealName,
				TimeOfDay:   mealTime,
				Calories:    mealCalories,
				ProteinG:    mealProtein,
				CarbsG:      mealCarbs,
				FatsG:       mealFats,
				Description: mealDesc,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %s (%s)\n", m.Name, m.ID)
			return nil
		})
	},
}

var mealListTime string

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			items, err := listMeals(sqldb, mealListTime)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tTIME\tNAME\tKCAL\tP\tC\tF")
			for _, m := range items {
				fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%.0fg\t%.0fg\t%.0fg\n", m.ID, m.TimeOfDay, m.Name, m.Calories, m.ProteinG, m.CarbsG, m.FatsG)
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal template (past logs keep their record)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			if err := service.DeleteMeal(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

func listMeals(sqldb *sql.DB, timeOfDay string) ([]model.MealTemplate, error) {
	if timeOfDay == "" {
		return service.ListMeals(sqldb)
	}
	return service.MealsByTimeOfDay(sqldb, timeOfDay)
}

func init() {
	mealAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "Time of day (breakfast|lunch|dinner|snack)")
	mealAddCmd.Flags().IntVar(&mealCalories, "calories", 0, "Calories")
	mealAddCmd.Flags().Float64Var(&mealProtein, "protein", 0, "Protein (g)")
	mealAddCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "Carbs (g)")
	mealAddCmd.Flags().Float64Var(&mealFats, "fats", 0, "Fats (g)")
	mealAddCmd.Flags().StringVar(&mealDesc, "desc", "", "Description")
	_ = mealAddCmd.MarkFlagRequired("name")
	_ = mealAddCmd.MarkFlagRequired("time")

	mealListCmd.Flags().StringVar(&mealListTime, "time", "", "Filter by time of day")

	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}
