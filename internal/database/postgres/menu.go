package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grubworks/grubbot/internal/domain"
)

// MenuRepository implements repository.Menu
type MenuRepository struct {
	db *pgxpool.Pool
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{db: db}
}

// GetPlace retrieves a place by ID
func (r *MenuRepository) GetPlace(ctx context.Context, id int) (*domain.Place, error) {
	query := `
		SELECT id, name, COALESCE(food_type, '')
		FROM places
		WHERE id = $1
	`
	var place domain.Place
	err := r.db.QueryRow(ctx, query, id).Scan(&place.ID, &place.Name, &place.FoodType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return &place, nil
}

// GetPlaceByName retrieves a place by name, case-insensitively
func (r *MenuRepository) GetPlaceByName(ctx context.Context, name string) (*domain.Place, error) {
	query := `
		SELECT id, name, COALESCE(food_type, '')
		FROM places
		WHERE lower(name) = lower($1)
	`
	var place domain.Place
	err := r.db.QueryRow(ctx, query, name).Scan(&place.ID, &place.Name, &place.FoodType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place by name: %w", err)
	}
	return &place, nil
}

// ListItems retrieves a place's menu in position order. Position order is
// load-bearing: it is the catalog order the intent parser ties break on.
func (r *MenuRepository) ListItems(ctx context.Context, placeID int) ([]domain.MenuItem, error) {
	query := `
		SELECT name, COALESCE(price_minor, 0), position
		FROM menu_items
		WHERE place_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.Name, &item.PriceMinor, &item.Position); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu items: %w", err)
	}
	return items, nil
}

// UpsertPlace creates or renames a place and returns its ID
func (r *MenuRepository) UpsertPlace(ctx context.Context, place *domain.Place) (int, error) {
	query := `
		INSERT INTO places (name, food_type)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET food_type = EXCLUDED.food_type
		RETURNING id
	`
	var id int
	if err := r.db.QueryRow(ctx, query, place.Name, place.FoodType).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert place: %w", err)
	}
	return id, nil
}

// ReplaceItems swaps a place's entire menu in one transaction, preserving
// the given slice order as the stored position.
func (r *MenuRepository) ReplaceItems(ctx context.Context, placeID int, items []domain.MenuItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM menu_items WHERE place_id = $1`, placeID); err != nil {
		return fmt.Errorf("failed to clear menu: %w", err)
	}

	insert := `
		INSERT INTO menu_items (place_id, name, price_minor, position)
		VALUES ($1, $2, $3, $4)
	`
	for i, item := range items {
		if _, err := tx.Exec(ctx, insert, placeID, item.Name, item.PriceMinor, i+1); err != nil {
			return fmt.Errorf("failed to insert menu item %q: %w", item.Name, err)
		}
	}

	return tx.Commit(ctx)
}
