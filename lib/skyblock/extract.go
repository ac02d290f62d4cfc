package skyblock

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// FishingStats is the normalized fishing view of one profile member.
// a value object: callers may persist copies freely.
type FishingStats struct {
	ProfileID    string
	CuteName     string
	FishingXP    float64
	FishingLevel int
	// TrophyFish and SeaCreatureKills are the upstream count mappings
	// passed through unmodified; junk entries are filtered later by
	// the stats calculator, not here.
	TrophyFish       map[string]any
	SeaCreatureKills map[string]any
	// Equipment and Wardrobe are opaque inventory blobs. item
	// serialization formats are not decoded at this layer.
	Equipment json.RawMessage
	Wardrobe  json.RawMessage
	// LastSave is an epoch-millisecond timestamp, 0 when absent.
	LastSave int64
}

type ExtractOptions struct {
	// FishingKillsOnly filters the bestiary down to creatures caught
	// by rod. historical behavior varies between "all kills" and
	// "fishing kills", so both modes are supported.
	FishingKillsOnly bool
}

// xpPaths is the ordered fallback chain for locating fishing
// experience inside a profile member. the upstream schema does not
// self-declare a version, so the first path with a present value
// wins, newest schema first.
var xpPaths = []string{
	"player_data.experience.SKILL_FISHING",
	"leveling.experience.SKILL_FISHING",
	"experience_skill_fishing",
}

var marineSubstrings = []string{
	"sea_", "fish", "squid", "shark", "hydra", "emperor",
	"thunder", "jawbus", "yeti", "guardian", "nightmare",
	"water_worm", "rider_of_the_deep",
}

// Extract normalizes a raw profile payload into FishingStats for the
// given player. it never fails: missing, malformed or null fields
// become zeros and empty mappings. the output is a deterministic
// function of the input.
func Extract(raw json.RawMessage, playerID string, opts ExtractOptions) FishingStats {
	profile := gjson.ParseBytes(raw)
	member := profile.Get("members." + strings.ReplaceAll(playerID, "-", ""))

	xp := float64(0)
	for _, path := range xpPaths {
		if v := member.Get(path); v.Exists() {
			xp = v.Float()
			break
		}
	}
	if xp < 0 {
		xp = 0
	}

	kills := objectMap(member.Get("bestiary.kills"))
	if opts.FishingKillsOnly {
		kills = filterMarine(kills)
	}

	return FishingStats{
		ProfileID:        profile.Get("profile_id").String(),
		CuteName:         profile.Get("cute_name").String(),
		FishingXP:        xp,
		FishingLevel:     LevelForXP(xp),
		TrophyFish:       objectMap(member.Get("trophy_fish")),
		SeaCreatureKills: kills,
		Equipment:        rawBlob(member, "inventory.equipment_contents", "equipment_contents"),
		Wardrobe:         rawBlob(member, "inventory.wardrobe_contents", "wardrobe_contents"),
		LastSave:         member.Get("last_save").Int(),
	}
}

func objectMap(r gjson.Result) map[string]any {
	if !r.IsObject() {
		return map[string]any{}
	}
	m, ok := r.Value().(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// rawBlob returns the first present path verbatim. newer profiles
// nest inventories under `inventory`, older ones keep them flat.
func rawBlob(member gjson.Result, paths ...string) json.RawMessage {
	for _, path := range paths {
		if v := member.Get(path); v.Exists() {
			return json.RawMessage(v.Raw)
		}
	}
	return nil
}

func filterMarine(kills map[string]any) map[string]any {
	out := make(map[string]any, len(kills))
	for key, value := range kills {
		for _, sub := range marineSubstrings {
			if strings.Contains(key, sub) {
				out[key] = value
				break
			}
		}
	}
	return out
}
