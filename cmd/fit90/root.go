package fit90

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fit90",
	Short: "fit90 tracks a 90-day fitness program from your terminal",
	Long:  "fit90 is a local-first fitness tracking CLI: workouts, meals, water, weight and program progress, stored in an on-device database behind a PIN.",
}

func Execute() {
	// A .env beside the binary may set FIT90_DB; absence is fine.
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
