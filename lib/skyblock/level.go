package skyblock

// MaxLevel is the fishing skill cap.
const MaxLevel = 50

// xpIncrements[i] is the additional xp needed to go from level i to
// level i+1. official hypixel values; accumulated in integers so the
// thresholds are exact.
var xpIncrements = [MaxLevel]int64{
	50, 125, 200, 300, 500, 750, 1000, 1500, 2000, 3500,
	5000, 7500, 10000, 15000, 20000, 30000, 50000, 75000, 100000, 200000,
	300000, 400000, 500000, 600000, 700000, 800000, 900000, 1000000, 1100000, 1200000,
	1300000, 1400000, 1500000, 1600000, 1700000, 1800000, 1900000, 2000000, 2100000, 2200000,
	2300000, 2400000, 2500000, 2600000, 2750000, 2900000, 3100000, 3400000, 3700000, 4000000,
}

// LevelForXP maps total fishing xp to a level in [0, MaxLevel]. a
// cumulative threshold unlocks its level inclusively: xp equal to the
// level 1 threshold is level 1. negative xp clamps to 0. total
// function, never fails.
func LevelForXP(xp float64) int {
	if xp <= 0 {
		return 0
	}

	level := 0
	var cumulative int64
	for i, step := range xpIncrements {
		cumulative += step
		if xp < float64(cumulative) {
			break
		}
		level = i + 1
	}
	return level
}

// TotalXPForLevel returns the cumulative xp threshold that unlocks
// the given level. levels outside [0, MaxLevel] are clamped.
func TotalXPForLevel(level int) int64 {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	var cumulative int64
	for i := 0; i < level; i++ {
		cumulative += xpIncrements[i]
	}
	return cumulative
}
