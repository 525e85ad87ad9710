// Package repository defines the persistence interfaces implemented by
// internal/database/postgres.
package repository

import (
	"context"

	"github.com/grubworks/grubbot/internal/domain"
)

// OrderSheet persists order records. At most one open record exists per
// channel; GetActive returns domain.ErrNoActiveOrder when there is none.
type OrderSheet interface {
	GetActive(ctx context.Context, channel string) (*domain.OrderRecord, error)
	Create(ctx context.Context, rec *domain.OrderRecord) error
	Update(ctx context.Context, rec *domain.OrderRecord) error
}
