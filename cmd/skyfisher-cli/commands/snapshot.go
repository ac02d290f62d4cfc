package commands

import (
	"log/slog"

	"skyfisher-backend/lib/serviceutil"
	"skyfisher-backend/lib/skyblock"
	"skyfisher-backend/lib/sqliteutil"
	"skyfisher-backend/services/snapshots"
	"skyfisher-backend/services/snapshots/db"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <ign>",
	Short: "Looks up a player and records a snapshot of every profile.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		tracker, closeTracker := createTracker(cfg)
		defer closeTracker()

		report, err := tracker.LookupPlayer(cmd.Context(), args[0], skyblock.ExtractOptions{})
		if err != nil {
			serviceutil.Fatal("failed to look up player", err)
		}

		database, err := sqliteutil.OpenDB(db.Schema, cfg.SnapshotDb)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot db", err)
		}
		defer database.Close()

		store := snapshots.NewStore(database)
		if err := store.Push(cmd.Context(), report); err != nil {
			serviceutil.Fatal("failed to record snapshots", err)
		}

		slog.Info("recorded snapshots", "player", report.Name, "profiles", len(report.Profiles))
	},
}
