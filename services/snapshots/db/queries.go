package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createPlayer = `
INSERT INTO player (uuid, ign, created_at)
VALUES (?, ?, ?)
ON CONFLICT (uuid) DO UPDATE SET ign = excluded.ign
`

type CreatePlayerParams struct {
	Uuid      string
	Ign       string
	CreatedAt int64
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) error {
	_, err := q.db.ExecContext(ctx, createPlayer, arg.Uuid, arg.Ign, arg.CreatedAt)
	return err
}

const createSnapshot = `
INSERT INTO profile_snapshot (player_uuid, profile_id, fishing_level, raw_json, derived_stats, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateSnapshotParams struct {
	PlayerUuid   string
	ProfileID    string
	FishingLevel int64
	RawJson      string
	DerivedStats string
	CreatedAt    int64
}

func (q *Queries) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) error {
	_, err := q.db.ExecContext(
		ctx, createSnapshot,
		arg.PlayerUuid, arg.ProfileID, arg.FishingLevel,
		arg.RawJson, arg.DerivedStats, arg.CreatedAt,
	)
	return err
}

const getSnapshots = `
SELECT s.profile_id, s.fishing_level, s.derived_stats, s.created_at
FROM profile_snapshot s
JOIN player p ON p.uuid = s.player_uuid
WHERE p.ign = ?
ORDER BY s.profile_id, s.created_at DESC, s.id DESC
`

type GetSnapshotsRow struct {
	ProfileID    string
	FishingLevel int64
	DerivedStats string
	CreatedAt    int64
}

func (q *Queries) GetSnapshots(ctx context.Context, ign string) ([]GetSnapshotsRow, error) {
	rows, err := q.db.QueryContext(ctx, getSnapshots, ign)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GetSnapshotsRow
	for rows.Next() {
		var i GetSnapshotsRow
		err := rows.Scan(&i.ProfileID, &i.FishingLevel, &i.DerivedStats, &i.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getLatestSnapshot = `
SELECT s.profile_id, s.fishing_level, s.raw_json, s.derived_stats, s.created_at
FROM profile_snapshot s
JOIN player p ON p.uuid = s.player_uuid
WHERE p.ign = ? AND s.profile_id = ?
ORDER BY s.created_at DESC, s.id DESC
LIMIT 1
`

type GetLatestSnapshotParams struct {
	Ign       string
	ProfileID string
}

type GetLatestSnapshotRow struct {
	ProfileID    string
	FishingLevel int64
	RawJson      string
	DerivedStats string
	CreatedAt    int64
}

func (q *Queries) GetLatestSnapshot(ctx context.Context, arg GetLatestSnapshotParams) (GetLatestSnapshotRow, error) {
	row := q.db.QueryRowContext(ctx, getLatestSnapshot, arg.Ign, arg.ProfileID)
	var i GetLatestSnapshotRow
	err := row.Scan(&i.ProfileID, &i.FishingLevel, &i.RawJson, &i.DerivedStats, &i.CreatedAt)
	return i, err
}
