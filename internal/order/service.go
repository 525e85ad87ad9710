package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/grubworks/grubbot/internal/concurrency"
	"github.com/grubworks/grubbot/internal/domain"
	"github.com/grubworks/grubbot/internal/logger"
	"github.com/grubworks/grubbot/internal/repository"
)

// DefaultPayments is the accepted-payment list a fresh sheet starts with.
var DefaultPayments = []string{"Cash"}

// Service manages the active order sheet for each channel. Every mutation
// runs under a per-channel lock so the read-merge-write cycle is atomic with
// respect to other mentions in the same channel.
type Service interface {
	Active(ctx context.Context, channel string) (*domain.OrderRecord, error)
	Open(ctx context.Context, channel, placeName string) (*domain.OrderRecord, error)
	Close(ctx context.Context, channel string) (*domain.OrderRecord, error)
	SetCollector(ctx context.Context, channel, name string) (*domain.OrderRecord, error)
	SetOverride(ctx context.Context, channel string, override domain.Override) (*domain.OrderRecord, error)
	SetMessageTS(ctx context.Context, channel, ts string) error
	ApplyIntents(ctx context.Context, channel string, intents []*domain.Intent, senderID string) (*domain.OrderRecord, int, error)
}

type service struct {
	sheets repository.OrderSheet
	places repository.Menu
	locks  *concurrency.LockManager
}

// NewService creates an order service backed by the given repositories.
func NewService(sheets repository.OrderSheet, places repository.Menu) Service {
	return &service{
		sheets: sheets,
		places: places,
		locks:  concurrency.NewLockManager(),
	}
}

func (s *service) Active(ctx context.Context, channel string) (*domain.OrderRecord, error) {
	return s.sheets.GetActive(ctx, channel)
}

// Open starts a fresh sheet for the channel, closing any sheet already open
// there. An unknown place name is an error; an empty one opens an
// unconstrained sheet whose menu is empty until a place is assigned.
func (s *service) Open(ctx context.Context, channel, placeName string) (*domain.OrderRecord, error) {
	mu := s.locks.GetLock(channel)
	mu.Lock()
	defer mu.Unlock()

	log := logger.FromContext(ctx)

	var place *domain.Place
	if placeName != "" {
		found, err := s.places.GetPlaceByName(ctx, placeName)
		if err != nil {
			return nil, fmt.Errorf("resolving place %q: %w", placeName, err)
		}
		place = found
	}

	current, err := s.sheets.GetActive(ctx, channel)
	if err != nil && !errors.Is(err, domain.ErrNoActiveOrder) {
		return nil, fmt.Errorf("checking current order: %w", err)
	}
	if current != nil {
		current.Status = domain.SheetStatusClosed
		current.UpdatedAt = time.Now().UTC()
		if err := s.sheets.Update(ctx, current); err != nil {
			return nil, fmt.Errorf("closing superseded order: %w", err)
		}
		log.Info("Closed superseded order", "channel", channel, "sheet_id", current.ID)
	}

	now := time.Now().UTC()
	rec := &domain.OrderRecord{
		ID:      uuid.NewString(),
		Channel: channel,
		Status:  domain.SheetStatusOpen,
		Sheet: domain.OrderSheet{
			Food:    "Food",
			Payment: append([]string(nil), DefaultPayments...),
			Pin:     true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if place != nil {
		rec.PlaceID = place.ID
		if place.FoodType != "" {
			rec.Sheet.Food = place.FoodType
		}
	}

	if err := s.sheets.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	log.Info("Opened order", "channel", channel, "sheet_id", rec.ID, "place", placeName)
	return rec, nil
}

func (s *service) Close(ctx context.Context, channel string) (*domain.OrderRecord, error) {
	mu := s.locks.GetLock(channel)
	mu.Lock()
	defer mu.Unlock()

	rec, err := s.sheets.GetActive(ctx, channel)
	if err != nil {
		return nil, err
	}

	rec.Status = domain.SheetStatusClosed
	rec.UpdatedAt = time.Now().UTC()
	if err := s.sheets.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("closing order: %w", err)
	}

	logger.FromContext(ctx).Info("Closed order", "channel", channel, "sheet_id", rec.ID)
	return rec, nil
}

func (s *service) SetCollector(ctx context.Context, channel, name string) (*domain.OrderRecord, error) {
	mu := s.locks.GetLock(channel)
	mu.Lock()
	defer mu.Unlock()

	rec, err := s.sheets.GetActive(ctx, channel)
	if err != nil {
		return nil, err
	}

	rec.Sheet.Driver = name
	rec.UpdatedAt = time.Now().UTC()
	if err := s.sheets.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("updating collector: %w", err)
	}

	return rec, nil
}

// SetOverride replaces or clears the sheet's custom board message. While an
// override is enabled the rendered board is exactly its message.
func (s *service) SetOverride(ctx context.Context, channel string, override domain.Override) (*domain.OrderRecord, error) {
	mu := s.locks.GetLock(channel)
	mu.Lock()
	defer mu.Unlock()

	rec, err := s.sheets.GetActive(ctx, channel)
	if err != nil {
		return nil, err
	}

	rec.Sheet.Override = override
	rec.UpdatedAt = time.Now().UTC()
	if err := s.sheets.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("updating override: %w", err)
	}

	return rec, nil
}

// SetMessageTS remembers the Slack timestamp of the posted board message so
// later merges can edit it in place.
func (s *service) SetMessageTS(ctx context.Context, channel, ts string) error {
	mu := s.locks.GetLock(channel)
	mu.Lock()
	defer mu.Unlock()

	rec, err := s.sheets.GetActive(ctx, channel)
	if err != nil {
		return err
	}

	rec.SlackTS = ts
	rec.UpdatedAt = time.Now().UTC()
	return s.sheets.Update(ctx, rec)
}

// ApplyIntents merges a batch of parsed intents into the channel's active
// sheet. The sheet is only written back when at least one intent touched a
// row; a batch that applied nothing leaves storage untouched.
func (s *service) ApplyIntents(ctx context.Context, channel string, intents []*domain.Intent, senderID string) (*domain.OrderRecord, int, error) {
	mu := s.locks.GetLock(channel)
	mu.Lock()
	defer mu.Unlock()

	rec, err := s.sheets.GetActive(ctx, channel)
	if err != nil {
		return nil, 0, err
	}

	merged, applied := Merge(rec.Sheet.Order, intents, senderID)
	if applied == 0 {
		return rec, 0, nil
	}

	rec.Sheet.Order = merged
	rec.UpdatedAt = time.Now().UTC()
	if err := s.sheets.Update(ctx, rec); err != nil {
		return nil, 0, fmt.Errorf("persisting merged order: %w", err)
	}

	logger.FromContext(ctx).Info("Merged order intents",
		"channel", channel,
		"sheet_id", rec.ID,
		"applied", applied,
		"rows", len(merged))
	return rec, applied, nil
}
