// Package fishing ties the client, extractor and calculators into the
// per-player lookup pipeline.
package fishing

import (
	"context"
	"fmt"
	"sync"

	"skyfisher-backend/lib/hypixel"
	"skyfisher-backend/lib/skyblock"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/fishing")

type Tracker struct {
	client *hypixel.Client
}

func NewTracker(client *hypixel.Client) Tracker {
	return Tracker{client: client}
}

// ProfileReport is the derived view of one profile: the normalized
// stats plus everything the calculators produce from them. immutable
// once returned.
type ProfileReport struct {
	Raw             hypixel.RawProfile
	Stats           skyblock.FishingStats
	TrophyFish      skyblock.TrophyFishBreakdown
	SeaCreatures    skyblock.SeaCreatureBreakdown
	Recommendations []string
}

type PlayerReport struct {
	Name     string
	PlayerID string
	Profiles []ProfileReport
}

// LookupPlayer resolves a name, fetches every profile and derives
// stats for each. derivation is pure and runs in parallel across
// profiles. a NotFound from either upstream stage keeps the stage in
// its message.
func (t Tracker) LookupPlayer(ctx context.Context, name string, opts skyblock.ExtractOptions) (PlayerReport, error) {
	ctx, span := tracer.Start(ctx, "LookupPlayer")
	defer span.End()
	span.SetAttributes(attribute.String("player.name", name))

	playerID, err := t.client.ResolvePlayerID(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return PlayerReport{}, fmt.Errorf("resolve player name: %w", err)
	}

	profiles, err := t.client.FetchProfiles(ctx, playerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return PlayerReport{}, fmt.Errorf("fetch profiles: %w", err)
	}

	reports := make([]ProfileReport, len(profiles))
	wg := &sync.WaitGroup{}
	for i, raw := range profiles {
		wg.Add(1)
		go func(i int, raw hypixel.RawProfile) {
			defer wg.Done()
			reports[i] = DeriveProfile(raw, playerID, opts)
		}(i, raw)
	}
	wg.Wait()

	return PlayerReport{
		Name:     name,
		PlayerID: playerID,
		Profiles: reports,
	}, nil
}

// DeriveProfile runs the extract + calculate pipeline for a single
// raw profile. pure, deterministic, never fails.
func DeriveProfile(raw hypixel.RawProfile, playerID string, opts skyblock.ExtractOptions) ProfileReport {
	stats := skyblock.Extract(raw, playerID, opts)
	trophy := skyblock.TrophyFishStats(stats.TrophyFish)
	creatures := skyblock.SeaCreatureStats(stats.SeaCreatureKills)

	return ProfileReport{
		Raw:             raw,
		Stats:           stats,
		TrophyFish:      trophy,
		SeaCreatures:    creatures,
		Recommendations: skyblock.Recommendations(stats.FishingLevel, stats.FishingXP, trophy),
	}
}
