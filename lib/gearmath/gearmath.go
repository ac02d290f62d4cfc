// Package gearmath holds the arithmetic behind every derived gear
// stat. one formula underlies them all: sum the flat contributions,
// apply the set bonus exactly once, round.
package gearmath

import "math"

// SetBonus is the modifier a complete gear set grants for one stat.
// a zero Multiplier means "absent" and is treated as 1.0, so the zero
// value is a no-op.
type SetBonus struct {
	Flat       float64
	Multiplier float64
}

// Combine sums the contributions, adds the flat bonus, applies the
// multiplier once and rounds half away from zero to 2 decimal places.
// the rounding mode is uniform across every stat type.
func Combine(contributions []float64, bonus SetBonus) float64 {
	var total float64
	for _, c := range contributions {
		total += c
	}

	multiplier := bonus.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}
	total = (total + bonus.Flat) * multiplier

	return math.Round(total*100) / 100
}

// BonusForStat reads the `{stat}_flat` / `{stat}_multiplier` key
// convention used by gear set bonus mappings. missing keys yield the
// no-op bonus.
func BonusForStat(setBonuses map[string]float64, stat string) SetBonus {
	return SetBonus{
		Flat:       setBonuses[stat+"_flat"],
		Multiplier: setBonuses[stat+"_multiplier"],
	}
}

// SeaCreatureChance totals SCC contributions with the set's scc bonus.
func SeaCreatureChance(contributions []float64, setBonuses map[string]float64) float64 {
	return Combine(contributions, BonusForStat(setBonuses, "scc"))
}

// FishingSpeed totals FS contributions with the set's fs bonus.
func FishingSpeed(contributions []float64, setBonuses map[string]float64) float64 {
	return Combine(contributions, BonusForStat(setBonuses, "fs"))
}
