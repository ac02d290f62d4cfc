package skyblock

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testPlayerID = "069a79f4-44e9-4726-a5be-fca90e38aaf5"
const testPlayerUUID = "069a79f444e94726a5befca90e38aaf5"

func memberProfile(member string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"profile_id":"prof-1","cute_name":"Mango","members":{%q:%s}}`,
		testPlayerUUID, member,
	))
}

func TestExtractPathPriority(t *testing.T) {
	// the authoritative path wins even when the legacy key disagrees
	raw := memberProfile(`{
		"player_data": {"experience": {"SKILL_FISHING": 100}},
		"experience_skill_fishing": 999
	}`)

	stats := Extract(raw, testPlayerID, ExtractOptions{})
	require.Equal(t, float64(100), stats.FishingXP)
	require.Equal(t, LevelForXP(100), stats.FishingLevel)
}

func TestExtractSecondaryPath(t *testing.T) {
	raw := memberProfile(`{
		"leveling": {"experience": {"SKILL_FISHING": 300}},
		"experience_skill_fishing": 999
	}`)

	stats := Extract(raw, testPlayerID, ExtractOptions{})
	require.Equal(t, float64(300), stats.FishingXP)
}

func TestExtractLegacyPath(t *testing.T) {
	raw := memberProfile(`{"experience_skill_fishing": 4000000}`)

	stats := Extract(raw, testPlayerID, ExtractOptions{})
	require.Equal(t, float64(4000000), stats.FishingXP)
	require.Equal(t, LevelForXP(4000000), stats.FishingLevel)
}

func TestExtractPresentZeroWins(t *testing.T) {
	// a present zero at a higher-priority path shadows the legacy key
	raw := memberProfile(`{
		"player_data": {"experience": {"SKILL_FISHING": 0}},
		"experience_skill_fishing": 999
	}`)

	stats := Extract(raw, testPlayerID, ExtractOptions{})
	require.Equal(t, float64(0), stats.FishingXP)
	require.Equal(t, 0, stats.FishingLevel)
}

func TestExtractEmptyMember(t *testing.T) {
	stats := Extract(memberProfile(`{}`), testPlayerID, ExtractOptions{})

	require.Equal(t, float64(0), stats.FishingXP)
	require.Equal(t, 0, stats.FishingLevel)
	require.Empty(t, stats.TrophyFish)
	require.Empty(t, stats.SeaCreatureKills)
	require.EqualValues(t, 0, stats.LastSave)
}

func TestExtractMalformedFields(t *testing.T) {
	// wrong types and nulls everywhere, must not panic
	raw := memberProfile(`{
		"player_data": {"experience": "not an object"},
		"leveling": null,
		"experience_skill_fishing": -50,
		"trophy_fish": [1, 2, 3],
		"bestiary": {"kills": null},
		"last_save": "yesterday"
	}`)

	stats := Extract(raw, testPlayerID, ExtractOptions{})
	require.Equal(t, float64(0), stats.FishingXP)
	require.Equal(t, 0, stats.FishingLevel)
	require.Empty(t, stats.TrophyFish)
	require.Empty(t, stats.SeaCreatureKills)
}

func TestExtractGarbagePayload(t *testing.T) {
	stats := Extract(json.RawMessage(`this is not json`), testPlayerID, ExtractOptions{})
	require.Equal(t, 0, stats.FishingLevel)
	require.Empty(t, stats.TrophyFish)
}

func TestExtractPassthrough(t *testing.T) {
	raw := memberProfile(`{
		"player_data": {"experience": {"SKILL_FISHING": 500}},
		"trophy_fish": {"blobfish_bronze": 7, "rewards": [1]},
		"bestiary": {"kills": {"squid": 12, "zombie": 400}},
		"inventory": {
			"equipment_contents": {"type": 0, "data": "base64blob"},
			"wardrobe_contents": {"type": 0, "data": "base64blob2"}
		},
		"last_save": 1700000000000
	}`)

	stats := Extract(raw, testPlayerID, ExtractOptions{})
	require.Equal(t, "prof-1", stats.ProfileID)
	require.Equal(t, "Mango", stats.CuteName)
	require.Equal(t, float64(7), stats.TrophyFish["blobfish_bronze"])
	// junk entries pass through untouched, filtering is the calculator's job
	require.Contains(t, stats.TrophyFish, "rewards")
	require.Equal(t, float64(400), stats.SeaCreatureKills["zombie"])
	require.JSONEq(t, `{"type":0,"data":"base64blob"}`, string(stats.Equipment))
	require.JSONEq(t, `{"type":0,"data":"base64blob2"}`, string(stats.Wardrobe))
	require.EqualValues(t, 1700000000000, stats.LastSave)
}

func TestExtractFishingKillsOnly(t *testing.T) {
	raw := memberProfile(`{
		"bestiary": {"kills": {"squid": 12, "zombie": 400, "great_white_shark": 3}}
	}`)

	all := Extract(raw, testPlayerID, ExtractOptions{})
	require.Len(t, all.SeaCreatureKills, 3)

	filtered := Extract(raw, testPlayerID, ExtractOptions{FishingKillsOnly: true})
	require.Contains(t, filtered.SeaCreatureKills, "squid")
	require.Contains(t, filtered.SeaCreatureKills, "great_white_shark")
	require.NotContains(t, filtered.SeaCreatureKills, "zombie")
}

func TestExtractIdempotent(t *testing.T) {
	raw := memberProfile(`{
		"player_data": {"experience": {"SKILL_FISHING": 123456.78}},
		"trophy_fish": {"gusher_silver": 3},
		"bestiary": {"kills": {"sea_walker": 9}}
	}`)

	first := Extract(raw, testPlayerID, ExtractOptions{})
	second := Extract(raw, testPlayerID, ExtractOptions{})
	require.Empty(t, cmp.Diff(first, second))
}
