package fit90

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/model"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Inspect the sync intent queue",
}

var (
	syncStatus string
	syncLimit  int
)

var syncListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sync events",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			events, err := service.ListSyncEvents(sqldb, service.SyncEventFilter{Status: syncStatus, Limit: syncLimit})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tEVENT\tENTITY\tSTATUS\tCREATED")
			for _, e := range events {
				fmt.Fprintf(out, "%s\t%s\t%s/%s\t%s\t%s\n", e.ID, e.EventType, e.EntityType, e.EntityID, e.Status, e.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue totals per status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB) error {
			counts, err := service.SyncEventCounts(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pending: %d\n", counts[model.SyncStatusPending])
			fmt.Fprintf(out, "synced:  %d\n", counts[model.SyncStatusSynced])
			fmt.Fprintf(out, "failed:  %d\n", counts[model.SyncStatusFailed])
			return nil
		})
	},
}

func init() {
	syncListCmd.Flags().StringVar(&syncStatus, "status", "", "Filter by status (pending|synced|failed)")
	syncListCmd.Flags().IntVar(&syncLimit, "limit", 50, "Maximum events to show")
	syncCmd.AddCommand(syncListCmd, syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}
