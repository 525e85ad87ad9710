// Package menu resolves places and their orderable items, fronting the
// database with a short-lived cache so every mention does not hit Postgres.
package menu

import (
	"context"
	"fmt"
	"time"

	"github.com/grubworks/grubbot/internal/domain"
	"github.com/grubworks/grubbot/internal/repository"
)

const (
	defaultCacheSize = 64
	defaultCacheTTL  = 5 * time.Minute
)

// Service exposes the menu catalog. Potentials is the candidate list the
// intent parser matches against, in catalog position order.
type Service interface {
	Place(ctx context.Context, id int) (*domain.Place, error)
	PlaceByName(ctx context.Context, name string) (*domain.Place, error)
	Items(ctx context.Context, placeID int) ([]domain.MenuItem, error)
	Potentials(ctx context.Context, placeID int) ([]string, error)
	InvalidateCache(placeID int)
}

type service struct {
	repo  repository.Menu
	cache *menuCache
}

// NewService creates a menu service with the default cache configuration.
func NewService(repo repository.Menu) Service {
	return &service{
		repo:  repo,
		cache: newMenuCache(defaultCacheSize, defaultCacheTTL),
	}
}

func (s *service) Place(ctx context.Context, id int) (*domain.Place, error) {
	return s.repo.GetPlace(ctx, id)
}

func (s *service) PlaceByName(ctx context.Context, name string) (*domain.Place, error) {
	return s.repo.GetPlaceByName(ctx, name)
}

// Items returns a place's menu in position order, served from cache when
// fresh.
func (s *service) Items(ctx context.Context, placeID int) ([]domain.MenuItem, error) {
	if placeID == 0 {
		return nil, nil
	}

	if items, ok := s.cache.Get(placeID); ok {
		return items, nil
	}

	items, err := s.repo.ListItems(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}

	s.cache.Set(placeID, items)
	return items, nil
}

// Potentials returns the item names to match mention text against. A sheet
// without a place has no menu, so an empty slice means nothing is orderable.
func (s *service) Potentials(ctx context.Context, placeID int) ([]string, error) {
	items, err := s.Items(ctx, placeID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names, nil
}

// InvalidateCache drops the cached menu for a place after an admin edit.
func (s *service) InvalidateCache(placeID int) {
	s.cache.Invalidate(placeID)
}
