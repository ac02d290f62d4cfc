package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"skyfisher-backend/cmd/skyfisher-cli/utils"
	"skyfisher-backend/lib/serviceutil"
	"skyfisher-backend/lib/sqliteutil"
	"skyfisher-backend/services/gearcatalog"
	"skyfisher-backend/services/gearcatalog/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	itemAddCategory *string
	itemAddRarity   *string
	itemAddStats    *string
	setAddPieces    *[]string
	setAddBonuses   *string
)

func init() {
	itemAddCategory = gearItemAddCmd.Flags().String("category", "", "Gear slot (rod, helmet, chestplate, leggings, boots, pet, accessory, equipment, bait).")
	itemAddRarity = gearItemAddCmd.Flags().String("rarity", "common", "Item rarity.")
	itemAddStats = gearItemAddCmd.Flags().String("stats", "{}", "JSON stat map, e.g. '{\"scc\": 4, \"fs\": 30}'.")
	gearItemAddCmd.MarkFlagRequired("category")

	setAddPieces = gearSetAddCmd.Flags().StringSlice("piece", nil, "Item name to include, repeatable.")
	setAddBonuses = gearSetAddCmd.Flags().String("bonuses", "{}", "JSON set bonus map, e.g. '{\"scc_flat\": 5, \"scc_multiplier\": 1.2}'.")

	gearItemCmd.AddCommand(gearItemAddCmd, gearItemListCmd, gearItemRetireCmd)
	gearSetCmd.AddCommand(gearSetAddCmd, gearSetScoreCmd)
	gearCmd.AddCommand(gearItemCmd, gearSetCmd)
	rootCmd.AddCommand(gearCmd)
}

func openGearCatalog(cfg Config) (gearcatalog.Service, *sql.DB) {
	database, err := sqliteutil.OpenDB(db.Schema, cfg.GearDb)
	if err != nil {
		serviceutil.Fatal("failed to open gear db", err)
	}
	return gearcatalog.NewService(database), database
}

var gearCmd = &cobra.Command{
	Use:   "gear",
	Short: "Manages the item and gear set catalog.",
}

var gearItemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manages catalog items.",
}

var gearItemAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Creates or replaces an item in the catalog.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var stats map[string]float64
		if err := json.Unmarshal([]byte(*itemAddStats), &stats); err != nil {
			serviceutil.Fatal("failed to parse --stats", err)
		}

		svc, database := openGearCatalog(readConfig())
		defer database.Close()

		err := svc.UpsertItem(cmd.Context(), gearcatalog.Item{
			Name:     args[0],
			Category: gearcatalog.Category(*itemAddCategory),
			Rarity:   *itemAddRarity,
			Stats:    stats,
			Active:   true,
		})
		if err != nil {
			serviceutil.Fatal("failed to upsert item", err)
		}
	},
}

var gearItemListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints every item in the catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, database := openGearCatalog(readConfig())
		defer database.Close()

		items, err := svc.ListItems(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list items", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Name", "Category", "Rarity", "Stats", "Active"})
		for _, item := range items {
			stats, _ := json.Marshal(item.Stats)
			t.AppendRow(table.Row{item.Name, item.Category, item.Rarity, string(stats), item.Active})
		}
		t.Render()
	},
}

var gearItemRetireCmd = &cobra.Command{
	Use:   "retire <name>",
	Short: "Marks an item inactive without removing it from the catalog.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, database := openGearCatalog(readConfig())
		defer database.Close()

		if err := svc.SetItemActive(cmd.Context(), args[0], false); err != nil {
			serviceutil.Fatal("failed to retire item", err)
		}
	},
}

var gearSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Manages gear sets.",
}

var gearSetAddCmd = &cobra.Command{
	Use:   "add <name> --piece <item> [--piece <item> ...]",
	Short: "Creates or replaces a gear set from existing items.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var bonuses map[string]float64
		if err := json.Unmarshal([]byte(*setAddBonuses), &bonuses); err != nil {
			serviceutil.Fatal("failed to parse --bonuses", err)
		}

		svc, database := openGearCatalog(readConfig())
		defer database.Close()

		err := svc.UpsertGearSet(cmd.Context(), args[0], *setAddPieces, bonuses)
		if err != nil {
			serviceutil.Fatal("failed to upsert gear set", err)
		}
	},
}

var gearSetScoreCmd = &cobra.Command{
	Use:   "score <name> <stat>",
	Short: "Scores one stat across a gear set's active pieces.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, database := openGearCatalog(readConfig())
		defer database.Close()

		score, err := svc.ScoreGearSet(cmd.Context(), args[0], args[1])
		if err != nil {
			serviceutil.Fatal("failed to score gear set", err)
		}
		fmt.Printf("%s %s: %v\n", args[0], args[1], score)
	},
}
