package snapshots

import (
	"context"
	"encoding/json"
	"testing"

	"skyfisher-backend/lib/fishing"
	"skyfisher-backend/lib/hypixel"
	"skyfisher-backend/lib/skyblock"
	"skyfisher-backend/lib/testutil"
	"skyfisher-backend/services/snapshots/db"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) Store {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "snapshots",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	return NewStore(res.DB)
}

func report(name, playerID string, profiles ...skyblock.FishingStats) fishing.PlayerReport {
	out := fishing.PlayerReport{Name: name, PlayerID: playerID}
	for _, stats := range profiles {
		raw, _ := json.Marshal(map[string]string{"profile_id": stats.ProfileID})
		out.Profiles = append(out.Profiles, fishing.ProfileReport{
			Raw:   hypixel.RawProfile(raw),
			Stats: stats,
		})
	}
	return out
}

func TestPushPull(t *testing.T) {
	store := setup(t)
	ctx := context.Background()

	err := store.Push(ctx, report("Mango", "uuid-1",
		skyblock.FishingStats{ProfileID: "p1", FishingXP: 200, FishingLevel: 2},
		skyblock.FishingStats{ProfileID: "p2", FishingXP: 0, FishingLevel: 0},
	))
	require.NoError(t, err)

	err = store.Push(ctx, report("Mango", "uuid-1",
		skyblock.FishingStats{ProfileID: "p1", FishingXP: 5000, FishingLevel: 9},
	))
	require.NoError(t, err)

	history, err := store.Pull(ctx, "Mango")
	require.NoError(t, err)
	require.Len(t, history, 2)

	require.Equal(t, "p1", history[0].ProfileID)
	require.Len(t, history[0].Snapshots, 2)
	// newest first within a series
	require.Equal(t, 9, history[0].Snapshots[0].FishingLevel)
	require.Equal(t, float64(5000), history[0].Snapshots[0].Stats.FishingXP)
	require.Equal(t, 2, history[0].Snapshots[1].FishingLevel)

	require.Equal(t, "p2", history[1].ProfileID)
	require.Len(t, history[1].Snapshots, 1)
}

func TestPushUpsertsPlayerName(t *testing.T) {
	store := setup(t)
	ctx := context.Background()

	err := store.Push(ctx, report("OldName", "uuid-1",
		skyblock.FishingStats{ProfileID: "p1"}))
	require.NoError(t, err)

	err = store.Push(ctx, report("NewName", "uuid-1",
		skyblock.FishingStats{ProfileID: "p1"}))
	require.NoError(t, err)

	// history follows the current ign
	history, err := store.Pull(ctx, "NewName")
	require.NoError(t, err)
	require.Len(t, history[0].Snapshots, 2)

	_, err = store.Pull(ctx, "OldName")
	require.ErrorIs(t, err, ErrNoSnapshots)
}

func TestLatest(t *testing.T) {
	store := setup(t)
	ctx := context.Background()

	err := store.Push(ctx, report("Mango", "uuid-1",
		skyblock.FishingStats{ProfileID: "p1", FishingXP: 200, FishingLevel: 2}))
	require.NoError(t, err)
	err = store.Push(ctx, report("Mango", "uuid-1",
		skyblock.FishingStats{ProfileID: "p1", FishingXP: 5000, FishingLevel: 9}))
	require.NoError(t, err)

	latest, err := store.Latest(ctx, "Mango", "p1")
	require.NoError(t, err)
	require.Equal(t, 9, latest.FishingLevel)
	require.Equal(t, float64(5000), latest.Stats.FishingXP)
}

func TestLatestMissing(t *testing.T) {
	store := setup(t)

	_, err := store.Latest(context.Background(), "Mango", "p1")
	require.ErrorIs(t, err, ErrNoSnapshots)

	_, err = store.Pull(context.Background(), "Mango")
	require.ErrorIs(t, err, ErrNoSnapshots)
}
