package fit90

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/auth"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var (
	setupName       string
	setupWeight     float64
	setupGoalWeight float64
	setupHeight     float64
	setupAge        int
	setupGender     string
	setupStart      string
	setupDuration   int
	setupWaterGoal  int
	setupPin        string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create your profile, set a PIN and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !auth.ValidPin(setupPin) {
			return fmt.Errorf("--pin must be 4 to 6 digits")
		}
		start, err := parseDateOrToday(setupStart)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			exists, err := service.ProfileExists(sqldb)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("setup already completed; use 'fit90 profile update'")
			}

			profile, err := service.CreateProfile(sqldb, service.CreateProfileInput{
				Name:                setupName,
				Weight:              setupWeight,
				GoalWeight:          setupGoalWeight,
				Height:              setupHeight,
				Age:                 setupAge,
				Gender:              setupGender,
				ProgramStartDate:    start,
				ProgramDurationDays: setupDuration,
				WaterGoalML:         setupWaterGoal,
			})
			if err != nil {
				return err
			}
			if err := auth.CreateCredentials(sqldb, setupPin); err != nil {
				return err
			}

			// The PIN was supplied moments ago, so minting the first
			// session here does not bypass authentication.
			mgr, err := authManager(sqldb)
			if err != nil {
				return err
			}
			if err := mgr.CompleteSetup(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome %s! Profile created, PIN set, session started.\n", profile.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Program: %d days starting %s\n", profile.ProgramDurationDays, profile.ProgramStartDate)
			return nil
		})
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupName, "name", "", "Your name")
	setupCmd.Flags().Float64Var(&setupWeight, "weight", 0, "Current weight (kg)")
	setupCmd.Flags().Float64Var(&setupGoalWeight, "goal-weight", 0, "Goal weight (kg)")
	setupCmd.Flags().Float64Var(&setupHeight, "height", 0, "Height (cm)")
	setupCmd.Flags().IntVar(&setupAge, "age", 0, "Age")
	setupCmd.Flags().StringVar(&setupGender, "gender", "", "Gender (male|female|other)")
	setupCmd.Flags().StringVar(&setupStart, "start", "", "Program start date YYYY-MM-DD (default today)")
	setupCmd.Flags().IntVar(&setupDuration, "duration", 90, "Program duration in days")
	setupCmd.Flags().IntVar(&setupWaterGoal, "water-goal", 2500, "Daily water goal (ml)")
	setupCmd.Flags().StringVar(&setupPin, "pin", "", "PIN (4-6 digits)")
	_ = setupCmd.MarkFlagRequired("name")
	_ = setupCmd.MarkFlagRequired("weight")
	_ = setupCmd.MarkFlagRequired("goal-weight")
	_ = setupCmd.MarkFlagRequired("height")
	_ = setupCmd.MarkFlagRequired("age")
	_ = setupCmd.MarkFlagRequired("gender")
	_ = setupCmd.MarkFlagRequired("pin")
	rootCmd.AddCommand(setupCmd)
}
