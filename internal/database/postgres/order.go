// Package postgres implements the repository interfaces on PostgreSQL via
// pgx. Order sheets are stored as a jsonb document per row; a partial unique
// index guarantees at most one open sheet per channel.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grubworks/grubbot/internal/domain"
)

// OrderSheetRepository implements repository.OrderSheet
type OrderSheetRepository struct {
	db *pgxpool.Pool
}

// NewOrderSheetRepository creates a new order sheet repository
func NewOrderSheetRepository(db *pgxpool.Pool) *OrderSheetRepository {
	return &OrderSheetRepository{db: db}
}

// GetActive retrieves the open sheet for a channel
func (r *OrderSheetRepository) GetActive(ctx context.Context, channel string) (*domain.OrderRecord, error) {
	query := `
		SELECT id, channel, COALESCE(place_id, 0), status, COALESCE(slack_ts, ''),
		       sheet, created_at, updated_at
		FROM order_sheets
		WHERE channel = $1 AND status = 'open'
	`
	var (
		rec       domain.OrderRecord
		sheetData []byte
	)
	err := r.db.QueryRow(ctx, query, channel).Scan(
		&rec.ID,
		&rec.Channel,
		&rec.PlaceID,
		&rec.Status,
		&rec.SlackTS,
		&sheetData,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveOrder
		}
		return nil, fmt.Errorf("failed to get active order: %w", err)
	}

	if err := json.Unmarshal(sheetData, &rec.Sheet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet: %w", err)
	}
	return &rec, nil
}

// Create inserts a new order sheet record
func (r *OrderSheetRepository) Create(ctx context.Context, rec *domain.OrderRecord) error {
	sheetData, err := json.Marshal(rec.Sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet: %w", err)
	}

	query := `
		INSERT INTO order_sheets (id, channel, place_id, status, slack_ts, sheet, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		rec.ID,
		rec.Channel,
		intToNullableInt4(rec.PlaceID),
		rec.Status,
		strToText(rec.SlackTS),
		sheetData,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("channel %s already has an open order: %w", rec.Channel, err)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update persists changes to an existing order sheet record
func (r *OrderSheetRepository) Update(ctx context.Context, rec *domain.OrderRecord) error {
	sheetData, err := json.Marshal(rec.Sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet: %w", err)
	}

	query := `
		UPDATE order_sheets
		SET place_id = $2, status = $3, slack_ts = $4, sheet = $5, updated_at = $6
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		rec.ID,
		intToNullableInt4(rec.PlaceID),
		rec.Status,
		strToText(rec.SlackTS),
		sheetData,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoActiveOrder
	}
	return nil
}

// strToText converts a string to pgtype.Text
func strToText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// intToNullableInt4 converts an int to pgtype.Int4, treating zero as NULL
func intToNullableInt4(i int) pgtype.Int4 {
	if i == 0 {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(i), Valid: true}
}
