package skyblock

import (
	"fmt"
	"math/rand"
	"testing"

	"skyfisher-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestTrophyFishStats(t *testing.T) {
	breakdown := TrophyFishStats(map[string]any{
		"sulphur_skitter_bronze": float64(10),
		"sulphur_skitter_gold":   float64(2),
		"golden_fish_diamond":    float64(3),
		"golden_fish_bronze":     float64(5),
	})

	require.Equal(t, 20, breakdown.TotalCaught)
	require.Equal(t, 15, breakdown.ByTier[TierBronze])
	require.Equal(t, 2, breakdown.ByTier[TierGold])
	require.Equal(t, 3, breakdown.ByTier[TierDiamond])
	require.Equal(t, 0, breakdown.ByTier[TierSilver])

	skitter := breakdown.ByFish["sulphur_skitter"]
	require.Equal(t, 12, skitter.Total)
	require.Equal(t, 10, skitter.Tiers[TierBronze])
	require.Equal(t, 2, skitter.Tiers[TierGold])

	golden := breakdown.ByFish["golden_fish"]
	require.Equal(t, 8, golden.Total)
	require.Equal(t, 3, golden.Tiers[TierDiamond])
}

func TestTrophyFishStatsSkipsJunk(t *testing.T) {
	breakdown := TrophyFishStats(map[string]any{
		"golden_fish_diamond": float64(3),
		"junk_key":            "x",
		"rewards":             []any{float64(1)},
		"total_caught":        float64(99),
		"blobfish_mythic":     float64(4),
	})

	require.Equal(t, 3, breakdown.TotalCaught)
	require.Equal(t, 3, breakdown.ByTier[TierDiamond])
	require.Len(t, breakdown.ByFish, 1)
	require.Equal(t, 3, breakdown.ByFish["golden_fish"].Total)
}

func TestTrophyFishStatsEmpty(t *testing.T) {
	breakdown := TrophyFishStats(map[string]any{})
	require.Equal(t, 0, breakdown.TotalCaught)
	require.Len(t, breakdown.ByTier, 4)
	require.Empty(t, breakdown.ByFish)
}

func TestTrophyFishStatsTierTotalsAgree(t *testing.T) {
	rndm := rand.New(rand.NewSource(7))
	pickTier := testutil.RandomSwitch(4, 3, 2, 1)
	tiers := []string{TierBronze, TierSilver, TierGold, TierDiamond}

	counts := map[string]any{}
	for i := 0; i < 200; i++ {
		name := testutil.RandomString(rndm, 8)
		tier := tiers[pickTier(rndm)]
		counts[fmt.Sprintf("%s_%s", name, tier)] = float64(rndm.Intn(50))
	}

	breakdown := TrophyFishStats(counts)

	tierSum := 0
	for _, n := range breakdown.ByTier {
		tierSum += n
	}
	fishSum := 0
	for _, tally := range breakdown.ByFish {
		fishSum += tally.Total
	}
	require.Equal(t, breakdown.TotalCaught, tierSum)
	require.Equal(t, breakdown.TotalCaught, fishSum)
}

func TestSeaCreatureStats(t *testing.T) {
	breakdown := SeaCreatureStats(map[string]any{
		"squid":             float64(100),
		"sea_walker":        float64(50),
		"great_white_shark": float64(3),
		"thunder":           float64(1),
		"corrupted":         "not a number",
	})

	require.Equal(t, 154, breakdown.TotalKills)
	require.Equal(t, 4, breakdown.UniqueTypes)
	require.Equal(t, map[string]int{
		"Great White Shark": 3,
		"Thunder":           1,
	}, breakdown.Notable)
}

func TestSeaCreatureStatsEmpty(t *testing.T) {
	breakdown := SeaCreatureStats(map[string]any{})
	require.Equal(t, 0, breakdown.TotalKills)
	require.Equal(t, 0, breakdown.UniqueTypes)
	require.Empty(t, breakdown.Notable)
}

func TestRecommendationsLowLevel(t *testing.T) {
	recs := Recommendations(10, 500, TrophyFishStats(map[string]any{}))

	require.Contains(t, recs[0], "Focus on leveling fishing")
	require.Contains(t, recs[1], "Start trophy fishing to improve your Fishing Speed")
}

func TestRecommendationsMidLevel(t *testing.T) {
	trophy := TrophyFishStats(map[string]any{"gusher_bronze": float64(20)})
	recs := Recommendations(27, 1e6, trophy)

	require.Contains(t, recs[0], "Crimson Isle")
	require.Contains(t, recs[1], "Great White Sharks and Thunder")
	require.Contains(t, recs[2], "Catch more trophy fish")
	require.Contains(t, recs[3], "first diamond trophy fish")
}

func TestRecommendationsHighLevel(t *testing.T) {
	trophy := TrophyFishStats(map[string]any{
		"gusher_bronze":       float64(900),
		"golden_fish_diamond": float64(120),
	})
	recs := Recommendations(45, 1e8, trophy)

	require.Contains(t, recs[0], "Great White Sharks and Thunder")
	require.Contains(t, recs[1], "all sea creatures")
	require.Contains(t, recs[2], "caught 1020 trophy fish")
	require.Contains(t, recs[3], "120 diamond trophy fish")
}

func TestRecommendationsDeterministic(t *testing.T) {
	trophy := TrophyFishStats(map[string]any{"moldfin_silver": float64(42)})
	first := Recommendations(30, 123456, trophy)
	second := Recommendations(30, 123456, trophy)
	require.Equal(t, first, second)
}
