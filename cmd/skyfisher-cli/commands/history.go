package commands

import (
	"fmt"
	"time"

	"skyfisher-backend/cmd/skyfisher-cli/utils"
	"skyfisher-backend/lib/serviceutil"
	"skyfisher-backend/lib/sqliteutil"
	"skyfisher-backend/services/snapshots"
	"skyfisher-backend/services/snapshots/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <ign>",
	Short: "Prints the recorded snapshot series for each of a player's profiles.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		database, err := sqliteutil.OpenDB(db.Schema, cfg.SnapshotDb)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot db", err)
		}
		defer database.Close()

		store := snapshots.NewStore(database)
		history, err := store.Pull(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to read snapshots", err)
		}

		for _, series := range history {
			fmt.Printf("Profile %s:\n", series.ProfileID)
			t := utils.NewTable()
			t.AppendHeader(table.Row{"Recorded", "Level", "Fishing XP", "Trophy Keys"})
			for _, snap := range series.Snapshots {
				t.AppendRow(table.Row{
					snap.CreatedAt.Format(time.ANSIC),
					snap.FishingLevel,
					snap.Stats.FishingXP,
					len(snap.Stats.TrophyFish),
				})
			}
			t.Render()
			fmt.Println()
		}
	},
}
