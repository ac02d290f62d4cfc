// Package snapshots persists point-in-time fishing stats so progress
// can be compared across runs. snapshot rows are immutable; history is
// append-only.
package snapshots

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skyfisher-backend/lib/fishing"
	"skyfisher-backend/lib/skyblock"
	"skyfisher-backend/services/snapshots/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/snapshots")

var ErrNoSnapshots = errors.New("no snapshots recorded")

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Snapshot is one recorded observation of one profile.
type Snapshot struct {
	ProfileID    string
	FishingLevel int
	Stats        skyblock.FishingStats
	CreatedAt    time.Time
}

// ProfileHistory is the snapshot series of a single profile, newest
// first.
type ProfileHistory struct {
	ProfileID string
	Snapshots []Snapshot
}

// Push records one snapshot per profile in the report, upserting the
// player row first. all rows commit together or not at all.
func (s Store) Push(ctx context.Context, report fishing.PlayerReport) error {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()
	span.SetAttributes(attribute.String("player.name", report.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()

	qtx := s.qry.WithTx(tx)
	now := time.Now().Unix()

	err = qtx.CreatePlayer(ctx, db.CreatePlayerParams{
		Uuid:      report.PlayerID,
		Ign:       report.Name,
		CreatedAt: now,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("upsert player: %w", err)
	}

	for _, profile := range report.Profiles {
		derived, err := json.Marshal(profile.Stats)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("encode derived stats: %w", err)
		}
		err = qtx.CreateSnapshot(ctx, db.CreateSnapshotParams{
			PlayerUuid:   report.PlayerID,
			ProfileID:    profile.Stats.ProfileID,
			FishingLevel: int64(profile.Stats.FishingLevel),
			RawJson:      string(profile.Raw),
			DerivedStats: string(derived),
			CreatedAt:    now,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("insert snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// Pull returns every profile's snapshot series for a player, each
// series newest first.
func (s Store) Pull(ctx context.Context, ign string) ([]ProfileHistory, error) {
	ctx, span := tracer.Start(ctx, "Pull")
	defer span.End()
	span.SetAttributes(attribute.String("player.name", ign))

	rows, err := s.qry.GetSnapshots(ctx, ign)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoSnapshots
	}

	var out []ProfileHistory
	lastProfile := ""
	for _, row := range rows {
		if row.ProfileID != lastProfile {
			out = append(out, ProfileHistory{ProfileID: row.ProfileID})
			lastProfile = row.ProfileID
		}
		snap, err := snapshotFromRow(row.ProfileID, row.FishingLevel, row.DerivedStats, row.CreatedAt)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		series := &out[len(out)-1]
		series.Snapshots = append(series.Snapshots, snap)
	}
	return out, nil
}

// Latest returns the most recent snapshot of one profile.
func (s Store) Latest(ctx context.Context, ign, profileID string) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Latest")
	defer span.End()
	span.SetAttributes(
		attribute.String("player.name", ign),
		attribute.String("profile.id", profileID),
	)

	row, err := s.qry.GetLatestSnapshot(ctx, db.GetLatestSnapshotParams{
		Ign:       ign,
		ProfileID: profileID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshots
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}
	return snapshotFromRow(row.ProfileID, row.FishingLevel, row.DerivedStats, row.CreatedAt)
}

func snapshotFromRow(profileID string, level int64, derived string, createdAt int64) (Snapshot, error) {
	var stats skyblock.FishingStats
	err := json.Unmarshal([]byte(derived), &stats)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode derived stats: %w", err)
	}
	return Snapshot{
		ProfileID:    profileID,
		FishingLevel: int(level),
		Stats:        stats,
		CreatedAt:    time.Unix(createdAt, 0),
	}, nil
}
