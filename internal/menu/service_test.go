package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grubworks/grubbot/internal/domain"
)

type fakeMenuRepo struct {
	places    map[int]*domain.Place
	items     map[int][]domain.MenuItem
	listCalls int
	listErr   error
}

func (f *fakeMenuRepo) GetPlace(_ context.Context, id int) (*domain.Place, error) {
	place, ok := f.places[id]
	if !ok {
		return nil, domain.ErrPlaceNotFound
	}
	return place, nil
}

func (f *fakeMenuRepo) GetPlaceByName(_ context.Context, name string) (*domain.Place, error) {
	for _, place := range f.places {
		if place.Name == name {
			return place, nil
		}
	}
	return nil, domain.ErrPlaceNotFound
}

func (f *fakeMenuRepo) ListItems(_ context.Context, placeID int) ([]domain.MenuItem, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items[placeID], nil
}

func newFakeRepo() *fakeMenuRepo {
	return &fakeMenuRepo{
		places: map[int]*domain.Place{
			1: {ID: 1, Name: "Kebab Palace", FoodType: "Kebab"},
		},
		items: map[int][]domain.MenuItem{
			1: {
				{Name: "Kebab", PriceMinor: 450, Position: 1},
				{Name: "Large Kebab", PriceMinor: 550, Position: 2},
				{Name: "Chips", PriceMinor: 150, Position: 3},
			},
		},
	}
}

func TestPotentialsReturnsNamesInPositionOrder(t *testing.T) {
	svc := NewService(newFakeRepo())

	names, err := svc.Potentials(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"Kebab", "Large Kebab", "Chips"}, names)
}

func TestPotentialsWithoutPlace(t *testing.T) {
	svc := NewService(newFakeRepo())

	names, err := svc.Potentials(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestItemsServedFromCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Items(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.Items(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "second lookup should hit the cache")
}

func TestInvalidateCacheForcesReload(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Items(context.Background(), 1)
	require.NoError(t, err)

	svc.InvalidateCache(1)

	_, err = svc.Items(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestItemsPropagatesRepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("connection reset")
	svc := NewService(repo)

	_, err := svc.Items(context.Background(), 1)

	assert.ErrorContains(t, err, "listing menu items")
}

func TestPlaceByName(t *testing.T) {
	svc := NewService(newFakeRepo())

	place, err := svc.PlaceByName(context.Background(), "Kebab Palace")
	require.NoError(t, err)
	assert.Equal(t, 1, place.ID)

	_, err = svc.PlaceByName(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestCacheVersionMismatchInvalidates(t *testing.T) {
	cache := newMenuCache(4, 0)
	cache.lru.Add("1", &cachedMenuEntry{Version: "0.9", Items: []domain.MenuItem{{Name: "Kebab"}}})

	_, ok := cache.Get(1)

	assert.False(t, ok, "stale schema versions should be dropped")
}
