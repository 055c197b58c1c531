package fit90

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake",
}

var waterDate string

var waterAddCmd = &cobra.Command{
	Use:   "add <ml>",
	Short: "Add water to the day's log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseIntArg("water amount", args[0])
		if err != nil {
			return err
		}
		date, err := parseDateOrToday(waterDate)
		if err != nil {
			return err
		}
		return withSession(func(sqldb *sql.DB) error {
			if err := service.AddWater(sqldb, date, amount); err != nil {
				return err
			}
			log, err := service.NutritionLogByDate(sqldb, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water for %s: %d ml\n", date, log.WaterConsumedML)
			return nil
		})
	},
}

func init() {
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")
	waterCmd.AddCommand(waterAddCmd)
	rootCmd.AddCommand(waterCmd)
}
