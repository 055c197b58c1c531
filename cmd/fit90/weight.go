package fit90

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight",
}

var weightDate string

var weightAddCmd = &cobra.Command{
	Use:   "add <kg>",
	Short: "Log a weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q", args[0])
		}
		date, err := parseDateOrToday(weightDate)
		if err != nil {
			return err
		}
		return withSession(func(sqldb *sql.DB) error {
			w, err := service.AddWeightLog(sqldb, date, value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.1f kg on %s (%s)\n", w.Weight, w.Date, w.ID)
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			logs, err := service.ListWeightLogs(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tWEIGHT")
			for _, w := range logs {
				fmt.Fprintf(out, "%s\t%s\t%.1f kg\n", w.ID, w.Date, w.Weight)
			}
			if latest, err := service.LatestWeightLog(sqldb); err == nil && latest != nil {
				fmt.Fprintf(out, "\nLatest: %.1f kg (%s)\n", latest.Weight, latest.Date)
			}
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			if err := service.DeleteWeightLog(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight entry %s\n", args[0])
			return nil
		})
	},
}

func init() {
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightDeleteCmd)
	rootCmd.AddCommand(weightCmd)
}
