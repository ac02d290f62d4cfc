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

const upsertItem = `
INSERT INTO item (name, category, rarity, stats, active, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET
    category = excluded.category,
    rarity = excluded.rarity,
    stats = excluded.stats,
    active = excluded.active
`

type UpsertItemParams struct {
	Name      string
	Category  string
	Rarity    string
	Stats     string
	Active    bool
	CreatedAt int64
}

func (q *Queries) UpsertItem(ctx context.Context, arg UpsertItemParams) error {
	_, err := q.db.ExecContext(
		ctx, upsertItem,
		arg.Name, arg.Category, arg.Rarity, arg.Stats, arg.Active, arg.CreatedAt,
	)
	return err
}

const setItemActive = `
UPDATE item SET active = ? WHERE name = ?
`

type SetItemActiveParams struct {
	Active bool
	Name   string
}

func (q *Queries) SetItemActive(ctx context.Context, arg SetItemActiveParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, setItemActive, arg.Active, arg.Name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getItem = `
SELECT name, category, rarity, stats, active FROM item WHERE name = ?
`

type ItemRow struct {
	Name     string
	Category string
	Rarity   string
	Stats    string
	Active   bool
}

func (q *Queries) GetItem(ctx context.Context, name string) (ItemRow, error) {
	row := q.db.QueryRowContext(ctx, getItem, name)
	var i ItemRow
	err := row.Scan(&i.Name, &i.Category, &i.Rarity, &i.Stats, &i.Active)
	return i, err
}

const listItems = `
SELECT name, category, rarity, stats, active FROM item ORDER BY name
`

func (q *Queries) ListItems(ctx context.Context) ([]ItemRow, error) {
	rows, err := q.db.QueryContext(ctx, listItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemRow
	for rows.Next() {
		var i ItemRow
		err := rows.Scan(&i.Name, &i.Category, &i.Rarity, &i.Stats, &i.Active)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listItemNames = `
SELECT name FROM item ORDER BY name
`

func (q *Queries) ListItemNames(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listItemNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

const upsertGearSet = `
INSERT INTO gear_set (name, set_bonuses, created_at)
VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET set_bonuses = excluded.set_bonuses
`

type UpsertGearSetParams struct {
	Name       string
	SetBonuses string
	CreatedAt  int64
}

func (q *Queries) UpsertGearSet(ctx context.Context, arg UpsertGearSetParams) error {
	_, err := q.db.ExecContext(ctx, upsertGearSet, arg.Name, arg.SetBonuses, arg.CreatedAt)
	return err
}

const clearGearSetPieces = `
DELETE FROM gear_set_piece WHERE set_name = ?
`

func (q *Queries) ClearGearSetPieces(ctx context.Context, setName string) error {
	_, err := q.db.ExecContext(ctx, clearGearSetPieces, setName)
	return err
}

const addGearSetPiece = `
INSERT INTO gear_set_piece (set_name, item_name) VALUES (?, ?)
`

type AddGearSetPieceParams struct {
	SetName  string
	ItemName string
}

func (q *Queries) AddGearSetPiece(ctx context.Context, arg AddGearSetPieceParams) error {
	_, err := q.db.ExecContext(ctx, addGearSetPiece, arg.SetName, arg.ItemName)
	return err
}

const getGearSet = `
SELECT name, set_bonuses FROM gear_set WHERE name = ?
`

type GearSetRow struct {
	Name       string
	SetBonuses string
}

func (q *Queries) GetGearSet(ctx context.Context, name string) (GearSetRow, error) {
	row := q.db.QueryRowContext(ctx, getGearSet, name)
	var i GearSetRow
	err := row.Scan(&i.Name, &i.SetBonuses)
	return i, err
}

const getGearSetPieces = `
SELECT i.name, i.category, i.rarity, i.stats, i.active
FROM gear_set_piece p
JOIN item i ON i.name = p.item_name
WHERE p.set_name = ?
ORDER BY i.name
`

func (q *Queries) GetGearSetPieces(ctx context.Context, setName string) ([]ItemRow, error) {
	rows, err := q.db.QueryContext(ctx, getGearSetPieces, setName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemRow
	for rows.Next() {
		var i ItemRow
		err := rows.Scan(&i.Name, &i.Category, &i.Rarity, &i.Stats, &i.Active)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
