// Package gearcatalog manages the item and gear set catalog that
// backs gear scoring. items are retired via the active flag rather
// than deleted so old gear sets keep resolving.
package gearcatalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skyfisher-backend/lib/gearmath"
	"skyfisher-backend/services/gearcatalog/db"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/gearcatalog")

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownGearSet  = errors.New("unknown gear set")
	ErrInvalidCategory = errors.New("invalid item category")
)

type Category string

const (
	CategoryRod        Category = "rod"
	CategoryHelmet     Category = "helmet"
	CategoryChestplate Category = "chestplate"
	CategoryLeggings   Category = "leggings"
	CategoryBoots      Category = "boots"
	CategoryPet        Category = "pet"
	CategoryAccessory  Category = "accessory"
	CategoryEquipment  Category = "equipment"
	CategoryBait       Category = "bait"
)

var categories = map[Category]bool{
	CategoryRod:        true,
	CategoryHelmet:     true,
	CategoryChestplate: true,
	CategoryLeggings:   true,
	CategoryBoots:      true,
	CategoryPet:        true,
	CategoryAccessory:  true,
	CategoryEquipment:  true,
	CategoryBait:       true,
}

type Item struct {
	Name     string
	Category Category
	Rarity   string
	Stats    map[string]float64
	Active   bool
}

type GearSet struct {
	Name       string
	Pieces     []Item
	SetBonuses map[string]float64
}

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

// UpsertItem creates or replaces an item by name. the category must be
// one of the known gear slots.
func (s Service) UpsertItem(ctx context.Context, item Item) error {
	ctx, span := tracer.Start(ctx, "UpsertItem")
	defer span.End()
	span.SetAttributes(attribute.String("item.name", item.Name))

	if !categories[item.Category] {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, item.Category)
	}
	stats, err := json.Marshal(item.Stats)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("encode item stats: %w", err)
	}

	err = s.qry.UpsertItem(ctx, db.UpsertItemParams{
		Name:      item.Name,
		Category:  string(item.Category),
		Rarity:    item.Rarity,
		Stats:     string(stats),
		Active:    item.Active,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// GetItem looks up an item by exact name. on a miss the error carries
// the closest catalog name when one is reasonably similar.
func (s Service) GetItem(ctx context.Context, name string) (Item, error) {
	ctx, span := tracer.Start(ctx, "GetItem")
	defer span.End()
	span.SetAttributes(attribute.String("item.name", name))

	row, err := s.qry.GetItem(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		if suggestion := s.closestItemName(ctx, name); suggestion != "" {
			return Item{}, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownItem, name, suggestion)
		}
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Item{}, err
	}
	return itemFromRow(row)
}

func (s Service) closestItemName(ctx context.Context, name string) string {
	names, err := s.qry.ListItemNames(ctx)
	if err != nil {
		return ""
	}
	best := ""
	bestScore := 0.0
	for _, candidate := range names {
		score := matchr.JaroWinkler(name, candidate, true)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore < 0.8 {
		return ""
	}
	return best
}

// SetItemActive flips an item's active flag. inactive items stay in
// the catalog but stop contributing to gear set scores.
func (s Service) SetItemActive(ctx context.Context, name string, active bool) error {
	ctx, span := tracer.Start(ctx, "SetItemActive")
	defer span.End()
	span.SetAttributes(
		attribute.String("item.name", name),
		attribute.Bool("item.active", active),
	)

	affected, err := s.qry.SetItemActive(ctx, db.SetItemActiveParams{
		Active: active,
		Name:   name,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	return nil
}

func (s Service) ListItems(ctx context.Context) ([]Item, error) {
	ctx, span := tracer.Start(ctx, "ListItems")
	defer span.End()

	rows, err := s.qry.ListItems(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item, err := itemFromRow(row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// UpsertGearSet creates or replaces a gear set and its piece list.
// every named piece must already exist in the catalog.
func (s Service) UpsertGearSet(ctx context.Context, name string, pieceNames []string, setBonuses map[string]float64) error {
	ctx, span := tracer.Start(ctx, "UpsertGearSet")
	defer span.End()
	span.SetAttributes(attribute.String("set.name", name))

	bonuses, err := json.Marshal(setBonuses)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("encode set bonuses: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()

	qtx := s.qry.WithTx(tx)

	for _, piece := range pieceNames {
		_, err := qtx.GetItem(ctx, piece)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %q", ErrUnknownItem, piece)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = qtx.UpsertGearSet(ctx, db.UpsertGearSetParams{
		Name:       name,
		SetBonuses: string(bonuses),
		CreatedAt:  time.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := qtx.ClearGearSetPieces(ctx, name); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	for _, piece := range pieceNames {
		err := qtx.AddGearSetPiece(ctx, db.AddGearSetPieceParams{
			SetName:  name,
			ItemName: piece,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	return tx.Commit()
}

// GetGearSet returns a set with its pieces resolved.
func (s Service) GetGearSet(ctx context.Context, name string) (GearSet, error) {
	ctx, span := tracer.Start(ctx, "GetGearSet")
	defer span.End()
	span.SetAttributes(attribute.String("set.name", name))

	row, err := s.qry.GetGearSet(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return GearSet{}, fmt.Errorf("%w: %q", ErrUnknownGearSet, name)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return GearSet{}, err
	}

	var bonuses map[string]float64
	if err := json.Unmarshal([]byte(row.SetBonuses), &bonuses); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return GearSet{}, fmt.Errorf("decode set bonuses: %w", err)
	}

	pieceRows, err := s.qry.GetGearSetPieces(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return GearSet{}, err
	}
	pieces := make([]Item, 0, len(pieceRows))
	for _, pieceRow := range pieceRows {
		piece, err := itemFromRow(pieceRow)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return GearSet{}, err
		}
		pieces = append(pieces, piece)
	}

	return GearSet{
		Name:       row.Name,
		Pieces:     pieces,
		SetBonuses: bonuses,
	}, nil
}

// ScoreGearSet totals one stat across the set's active pieces and
// applies the set bonus exactly once. inactive pieces contribute
// nothing.
func (s Service) ScoreGearSet(ctx context.Context, name, stat string) (float64, error) {
	ctx, span := tracer.Start(ctx, "ScoreGearSet")
	defer span.End()
	span.SetAttributes(
		attribute.String("set.name", name),
		attribute.String("set.stat", stat),
	)

	set, err := s.GetGearSet(ctx, name)
	if err != nil {
		return 0, err
	}

	var contributions []float64
	for _, piece := range set.Pieces {
		if !piece.Active {
			continue
		}
		contributions = append(contributions, piece.Stats[stat])
	}
	return gearmath.Combine(contributions, gearmath.BonusForStat(set.SetBonuses, stat)), nil
}

func itemFromRow(row db.ItemRow) (Item, error) {
	var stats map[string]float64
	if err := json.Unmarshal([]byte(row.Stats), &stats); err != nil {
		return Item{}, fmt.Errorf("decode item stats: %w", err)
	}
	return Item{
		Name:     row.Name,
		Category: Category(row.Category),
		Rarity:   row.Rarity,
		Stats:    stats,
		Active:   row.Active,
	}, nil
}
