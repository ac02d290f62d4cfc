package commands

import (
	"fmt"
	"sort"

	"skyfisher-backend/cmd/skyfisher-cli/utils"
	"skyfisher-backend/lib/fishing"
	"skyfisher-backend/lib/serviceutil"
	"skyfisher-backend/lib/skyblock"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var lookupFishingKillsOnly *bool

func init() {
	lookupFishingKillsOnly = lookupCmd.Flags().Bool(
		"fishing-kills-only", false,
		"Only count bestiary kills for marine creatures.",
	)
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <ign>",
	Short: "Looks up a player's fishing stats across all of their profiles.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		tracker, closeTracker := createTracker(cfg)
		defer closeTracker()

		report, err := tracker.LookupPlayer(cmd.Context(), args[0], skyblock.ExtractOptions{
			FishingKillsOnly: *lookupFishingKillsOnly,
		})
		if err != nil {
			serviceutil.Fatal("failed to look up player", err)
		}

		renderReport(report)
	},
}

func renderReport(report fishing.PlayerReport) {
	fmt.Printf("%s (%s)\n\n", report.Name, report.PlayerID)

	t := utils.NewTable()
	t.AppendHeader(table.Row{
		"Profile", "Level", "Fishing XP", "Trophy Fish", "Diamond", "Sea Creature Kills",
	})
	for _, profile := range report.Profiles {
		t.AppendRow(table.Row{
			profile.Stats.CuteName,
			profile.Stats.FishingLevel,
			profile.Stats.FishingXP,
			profile.TrophyFish.TotalCaught,
			profile.TrophyFish.ByTier[skyblock.TierDiamond],
			profile.SeaCreatures.TotalKills,
		})
	}
	t.Render()

	for _, profile := range report.Profiles {
		if len(profile.SeaCreatures.Notable) > 0 {
			fmt.Printf("\nNotable kills on %s:\n", profile.Stats.CuteName)
			renderNotable(profile.SeaCreatures.Notable)
		}
		fmt.Printf("\nRecommendations for %s:\n", profile.Stats.CuteName)
		for _, rec := range profile.Recommendations {
			fmt.Printf("  %s\n", rec)
		}
	}
}

func renderNotable(notable map[string]int) {
	names := make([]string, 0, len(notable))
	for name := range notable {
		names = append(names, name)
	}
	sort.Strings(names)

	t := utils.NewTable()
	t.AppendHeader(table.Row{"Creature", "Kills"})
	for _, name := range names {
		t.AppendRow(table.Row{name, notable[name]})
	}
	t.Render()
}
