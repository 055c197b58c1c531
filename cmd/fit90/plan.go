package fit90

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Import a program plan",
}

var planImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import workouts and meals from a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open plan file: %w", err)
		}
		defer f.Close()

		return withSession(func(sqldb *sql.DB) error {
			summary, err := service.ImportPlan(sqldb, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d workout(s) and %d meal(s)\n", summary.Workouts, summary.Meals)
			return nil
		})
	},
}

func init() {
	planCmd.AddCommand(planImportCmd)
	rootCmd.AddCommand(planCmd)
}
