package fit90

import (
	"database/sql"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/auth"
)

var loginPin string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with your PIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			mgr, err := authManager(sqldb)
			if err != nil {
				return err
			}
			ok, err := mgr.Login(loginPin)
			if err != nil {
				return err
			}
			if !ok {
				color.Red("Wrong PIN")
				return fmt.Errorf("authentication failed")
			}
			color.Green("Logged in (session valid for 24h)")
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			mgr, err := authManager(sqldb)
			if err != nil {
				return err
			}
			if err := mgr.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show setup and session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			mgr, err := authManager(sqldb)
			if err != nil {
				return err
			}
			st, err := mgr.Status()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Setup complete:  %v\n", st.SetupComplete)
			fmt.Fprintf(cmd.OutOrStdout(), "PIN set:         %v\n", st.HasCredentials)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in:       %v\n", st.Authenticated)
			return nil
		})
	},
}

var (
	pinOld string
	pinNew string
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage your PIN",
}

var pinUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your PIN (requires the current one)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			ok, err := auth.UpdatePin(sqldb, pinOld, pinNew)
			if err != nil {
				return err
			}
			if !ok {
				color.Red("Wrong PIN")
				return fmt.Errorf("authentication failed")
			}
			color.Green("PIN updated")
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPin, "pin", "", "PIN (4-6 digits)")
	_ = loginCmd.MarkFlagRequired("pin")

	pinUpdateCmd.Flags().StringVar(&pinOld, "old", "", "Current PIN")
	pinUpdateCmd.Flags().StringVar(&pinNew, "new", "", "New PIN (4-6 digits)")
	_ = pinUpdateCmd.MarkFlagRequired("old")
	_ = pinUpdateCmd.MarkFlagRequired("new")
	pinCmd.AddCommand(pinUpdateCmd)

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd, pinCmd)
}
