package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"skyfisher-backend/lib/configutil"
	"skyfisher-backend/lib/fishing"
	"skyfisher-backend/lib/hypixel"
	"skyfisher-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

type Config struct {
	ApiKey         string `json:"api_key"`
	HypixelBaseUrl string `json:"hypixel_base_url"`
	MojangBaseUrl  string `json:"mojang_base_url"`
	SnapshotDb     string `json:"snapshot_db"`
	GearDb         string `json:"gear_db"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.SnapshotDb == "" {
		cfg.SnapshotDb = "snapshots.db"
	}
	if cfg.GearDb == "" {
		cfg.GearDb = "gear.db"
	}
	return cfg
}

func createTracker(cfg Config) (fishing.Tracker, func()) {
	client := hypixel.NewClient(hypixel.ClientOptions{
		BaseURL:       cfg.HypixelBaseUrl,
		MojangBaseURL: cfg.MojangBaseUrl,
		APIKey:        cfg.ApiKey,
		Timeout:       time.Second * 30,
	})
	return fishing.NewTracker(client), client.Close
}

var rootCmd = &cobra.Command{
	Use:   "skyfisher-cli",
	Short: "skyfisher-cli looks up, tracks and scores skyblock fishing stats.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
