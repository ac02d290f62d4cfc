package skyblock

import (
	"fmt"
	"strings"
)

// the four trophy fish quality tiers.
const (
	TierBronze  = "bronze"
	TierSilver  = "silver"
	TierGold    = "gold"
	TierDiamond = "diamond"
)

// notableCreatures is the curated subset of bestiary identifiers
// surfaced with display names.
var notableCreatures = map[string]string{
	"water_hydra":       "Water Hydra",
	"the_sea_emperor":   "Sea Emperor",
	"thunder":           "Thunder",
	"lord_jawbus":       "Lord Jawbus",
	"great_white_shark": "Great White Shark",
	"yeti":              "Yeti",
}

type FishTally struct {
	Total int
	Tiers map[string]int
}

type TrophyFishBreakdown struct {
	TotalCaught int
	ByTier      map[string]int
	ByFish      map[string]FishTally
}

// TrophyFishStats tallies trophy fish counts by tier and by fish.
// keys are `<fish_name>_<tier>`, split on the last underscore.
// unparseable or non-numeric entries are silently skipped.
func TrophyFishStats(counts map[string]any) TrophyFishBreakdown {
	out := TrophyFishBreakdown{
		ByTier: map[string]int{TierBronze: 0, TierSilver: 0, TierGold: 0, TierDiamond: 0},
		ByFish: map[string]FishTally{},
	}

	for key, raw := range counts {
		count, ok := numeric(raw)
		if !ok {
			continue
		}
		split := strings.LastIndex(key, "_")
		if split <= 0 {
			continue
		}
		name, tier := key[:split], key[split+1:]
		if _, known := out.ByTier[tier]; !known {
			continue
		}

		out.ByTier[tier] += count
		out.TotalCaught += count

		tally := out.ByFish[name]
		if tally.Tiers == nil {
			tally.Tiers = map[string]int{}
		}
		tally.Total += count
		tally.Tiers[tier] += count
		out.ByFish[name] = tally
	}

	return out
}

type SeaCreatureBreakdown struct {
	TotalKills  int
	UniqueTypes int
	Notable     map[string]int
}

// SeaCreatureStats sums bestiary kills, counting distinct creature
// types and surfacing the notable subset when present.
func SeaCreatureStats(kills map[string]any) SeaCreatureBreakdown {
	out := SeaCreatureBreakdown{Notable: map[string]int{}}

	numericKills := make(map[string]int, len(kills))
	for id, raw := range kills {
		count, ok := numeric(raw)
		if !ok {
			continue
		}
		numericKills[id] = count
		out.TotalKills += count
		out.UniqueTypes++
	}

	for id, display := range notableCreatures {
		if count, ok := numericKills[id]; ok {
			out.Notable[display] = count
		}
	}

	return out
}

// Recommendations evaluates the advisory rule ladder top to bottom.
// every matching rule appends its string, in table order.
func Recommendations(level int, xp float64, trophy TrophyFishBreakdown) []string {
	var recs []string

	if level < 25 {
		recs = append(recs, "🎣 Focus on leveling fishing to unlock better loot pools")
	} else if level < 30 {
		recs = append(recs, "🏆 Start trophy fishing in the Crimson Isle for better loot")
	}
	if level >= 26 {
		recs = append(recs, "✅ You can fish for Great White Sharks and Thunder")
	}
	if level >= 40 {
		recs = append(recs, "🌊 High fishing level! You have access to all sea creatures")
	}

	total := trophy.TotalCaught
	switch {
	case total == 0:
		recs = append(recs, "🐠 Start trophy fishing to improve your Fishing Speed and earn rewards!")
	case total < 100:
		recs = append(recs, "🐠 Catch more trophy fish to increase your Fishing Speed")
	case total < 1000:
		recs = append(recs, "💎 Focus on catching diamond trophy fish for better rewards")
	default:
		recs = append(recs, fmt.Sprintf("🌟 Impressive! You've caught %d trophy fish!", total))
	}

	diamond := trophy.ByTier[TierDiamond]
	switch {
	case diamond == 0 && total > 0:
		recs = append(recs, "💎 Try to catch your first diamond trophy fish!")
	case diamond < 10:
		recs = append(recs, fmt.Sprintf("💎 You need more diamond trophy fish (current: %d)", diamond))
	case diamond < 50:
		recs = append(recs, fmt.Sprintf("💎 Good progress on diamond trophies! (%d/50)", diamond))
	default:
		recs = append(recs, fmt.Sprintf("🌟 Outstanding! You have %d diamond trophy fish", diamond))
	}

	return recs
}

func numeric(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
