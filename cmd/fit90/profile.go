package fit90

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet; run 'fit90 setup'")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:          %s\n", p.Name)
			fmt.Fprintf(out, "Weight:        %.1f kg (goal %.1f kg)\n", p.Weight, p.GoalWeight)
			fmt.Fprintf(out, "Height:        %.1f cm\n", p.Height)
			fmt.Fprintf(out, "Age:           %d (%s)\n", p.Age, p.Gender)
			fmt.Fprintf(out, "Program:       %d days from %s\n", p.ProgramDurationDays, p.ProgramStartDate)
			fmt.Fprintf(out, "Water goal:    %d ml/day\n", p.WaterGoalML)
			return nil
		})
	},
}

var (
	profName      string
	profWeight    float64
	profGoal      float64
	profHeight    float64
	profAge       int
	profGender    string
	profStart     string
	profDuration  int
	profWaterGoal int
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("no profile yet; run 'fit90 setup'")
			}

			var patch model.ProfilePatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &profName
			}
			if flags.Changed("weight") {
				patch.Weight = &profWeight
			}
			if flags.Changed("goal-weight") {
				patch.GoalWeight = &profGoal
			}
			if flags.Changed("height") {
				patch.Height = &profHeight
			}
			if flags.Changed("age") {
				patch.Age = &profAge
			}
			if flags.Changed("gender") {
				patch.Gender = &profGender
			}
			if flags.Changed("start") {
				patch.ProgramStartDate = &profStart
			}
			if flags.Changed("duration") {
				patch.ProgramDurationDays = &profDuration
			}
			if flags.Changed("water-goal") {
				patch.WaterGoalML = &profWaterGoal
			}

			if err := service.UpdateProfile(sqldb, p.ID, patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		})
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profName, "name", "", "Name")
	profileUpdateCmd.Flags().Float64Var(&profWeight, "weight", 0, "Current weight (kg)")
	profileUpdateCmd.Flags().Float64Var(&profGoal, "goal-weight", 0, "Goal weight (kg)")
	profileUpdateCmd.Flags().Float64Var(&profHeight, "height", 0, "Height (cm)")
	profileUpdateCmd.Flags().IntVar(&profAge, "age", 0, "Age")
	profileUpdateCmd.Flags().StringVar(&profGender, "gender", "", "Gender (male|female|other)")
	profileUpdateCmd.Flags().StringVar(&profStart, "start", "", "Program start date YYYY-MM-DD")
	profileUpdateCmd.Flags().IntVar(&profDuration, "duration", 0, "Program duration in days")
	profileUpdateCmd.Flags().IntVar(&profWaterGoal, "water-goal", 0, "Daily water goal (ml)")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
