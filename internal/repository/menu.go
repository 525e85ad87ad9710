package repository

import (
	"context"

	"github.com/grubworks/grubbot/internal/domain"
)

// Menu reads place and menu configuration. Item order matters: ListItems
// returns rows by ascending position, which is the catalog order the intent
// parser's last-match-wins tie-break depends on.
type Menu interface {
	GetPlace(ctx context.Context, id int) (*domain.Place, error)
	GetPlaceByName(ctx context.Context, name string) (*domain.Place, error)
	ListItems(ctx context.Context, placeID int) ([]domain.MenuItem, error)
}

// MenuAdmin is the write side of the catalog, used by the admin API only.
// ReplaceItems stores the slice order as the item positions, so catalogs
// listing specific names before the shorter names they contain ("Large
// Pizza" before "Pizza") must be re-ordered before ingestion.
type MenuAdmin interface {
	Menu
	UpsertPlace(ctx context.Context, place *domain.Place) (int, error)
	ReplaceItems(ctx context.Context, placeID int, items []domain.MenuItem) error
}
