package gearmath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombineEmpty(t *testing.T) {
	require.Equal(t, 0.0, Combine(nil, SetBonus{}))
	require.Equal(t, 0.0, Combine([]float64{}, SetBonus{}))
}

func TestCombineSumOnly(t *testing.T) {
	require.Equal(t, 24.0, Combine([]float64{4, 10, 5, 0, 3, 2}, SetBonus{}))
}

func TestCombineMultiplier(t *testing.T) {
	require.Equal(t, 22.0, Combine([]float64{10, 10}, SetBonus{Multiplier: 1.1}))
}

func TestCombineFlatThenMultiplier(t *testing.T) {
	// flat is summed in before the multiplier is applied, exactly once
	require.Equal(t, 24.0, Combine([]float64{10, 5}, SetBonus{Flat: 5, Multiplier: 1.2}))
}

func TestCombineRounding(t *testing.T) {
	// half away from zero
	require.Equal(t, 0.13, Combine([]float64{0.125}, SetBonus{}))
	require.Equal(t, 3.33, Combine([]float64{10}, SetBonus{Multiplier: 1.0 / 3}))
}

func TestBonusForStat(t *testing.T) {
	bonuses := map[string]float64{
		"scc_flat":       5,
		"scc_multiplier": 1.1,
		"fs_multiplier":  1.5,
	}

	scc := BonusForStat(bonuses, "scc")
	require.Equal(t, 5.0, scc.Flat)
	require.Equal(t, 1.1, scc.Multiplier)

	fs := BonusForStat(bonuses, "fs")
	require.Equal(t, 0.0, fs.Flat)
	require.Equal(t, 1.5, fs.Multiplier)

	wisdom := BonusForStat(bonuses, "wisdom")
	require.Equal(t, SetBonus{}, wisdom)
}

func TestSeaCreatureChance(t *testing.T) {
	require.Equal(t, 24.0, SeaCreatureChance([]float64{4, 10, 5, 0, 3, 2}, nil))
	require.Equal(t, 22.0, SeaCreatureChance([]float64{10, 10}, map[string]float64{"scc_multiplier": 1.1}))
}

func TestFishingSpeed(t *testing.T) {
	require.Equal(t, 60.0, FishingSpeed([]float64{20, 15, 10, 5, 8, 2}, nil))
	require.Equal(t, 75.0, FishingSpeed([]float64{50}, map[string]float64{"fs_multiplier": 1.5}))
}
