package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grubworks/grubbot/internal/domain"
)

// fakeOrderService implements order.Service with canned responses.
type fakeOrderService struct {
	active    *domain.OrderRecord
	activeErr error
	opened    []string
	closed    []string
	collector string
	override  domain.Override
}

func (f *fakeOrderService) Active(_ context.Context, channel string) (*domain.OrderRecord, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return f.active, nil
}

func (f *fakeOrderService) Open(_ context.Context, channel, placeName string) (*domain.OrderRecord, error) {
	f.opened = append(f.opened, channel)
	if placeName == "Atlantis" {
		return nil, domain.ErrPlaceNotFound
	}
	return &domain.OrderRecord{ID: "rec-1", Channel: channel, Status: domain.SheetStatusOpen}, nil
}

func (f *fakeOrderService) Close(_ context.Context, channel string) (*domain.OrderRecord, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	f.closed = append(f.closed, channel)
	return &domain.OrderRecord{ID: "rec-1", Channel: channel, Status: domain.SheetStatusClosed}, nil
}

func (f *fakeOrderService) SetCollector(_ context.Context, channel, name string) (*domain.OrderRecord, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	f.collector = name
	return &domain.OrderRecord{ID: "rec-1", Channel: channel}, nil
}

func (f *fakeOrderService) SetOverride(_ context.Context, channel string, override domain.Override) (*domain.OrderRecord, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	f.override = override
	return &domain.OrderRecord{ID: "rec-1", Channel: channel}, nil
}

func (f *fakeOrderService) SetMessageTS(_ context.Context, channel, ts string) error {
	return nil
}

func (f *fakeOrderService) ApplyIntents(_ context.Context, channel string, intents []*domain.Intent, senderID string) (*domain.OrderRecord, int, error) {
	return f.active, 0, nil
}

func newOrdersRouter(svc *fakeOrderService) http.Handler {
	h := NewOrdersHandler(svc)
	r := chi.NewRouter()
	r.Post("/admin/orders", h.HandleOpenOrder)
	r.Get("/admin/orders/{channel}", h.HandleGetOrder)
	r.Delete("/admin/orders/{channel}", h.HandleCloseOrder)
	r.Put("/admin/orders/{channel}/collector", h.HandleSetCollector)
	r.Put("/admin/orders/{channel}/override", h.HandleSetOverride)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandleOpenOrder(t *testing.T) {
	svc := &fakeOrderService{}
	router := newOrdersRouter(svc)

	rr := doJSON(t, router, http.MethodPost, "/admin/orders", OpenOrderRequest{Channel: "C123", Place: "Kebab Palace"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, []string{"C123"}, svc.opened)
}

func TestHandleOpenOrderValidation(t *testing.T) {
	tests := []struct {
		name string
		req  OpenOrderRequest
	}{
		{name: "missing channel", req: OpenOrderRequest{Place: "Kebab Palace"}},
		{name: "bad channel prefix", req: OpenOrderRequest{Channel: "x123"}},
		{name: "lowercase channel", req: OpenOrderRequest{Channel: "Cabc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeOrderService{}
			rr := doJSON(t, newOrdersRouter(svc), http.MethodPost, "/admin/orders", tt.req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, svc.opened)
		})
	}
}

func TestHandleOpenOrderUnknownPlace(t *testing.T) {
	rr := doJSON(t, newOrdersRouter(&fakeOrderService{}), http.MethodPost, "/admin/orders",
		OpenOrderRequest{Channel: "C123", Place: "Atlantis"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrMsgPlaceNotFoundError)
}

func TestHandleGetOrder(t *testing.T) {
	svc := &fakeOrderService{
		active: &domain.OrderRecord{ID: "rec-1", Channel: "C1", Status: domain.SheetStatusOpen},
	}

	rr := doJSON(t, newOrdersRouter(svc), http.MethodGet, "/admin/orders/C1", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "rec-1")
}

func TestHandleGetOrderNoActive(t *testing.T) {
	svc := &fakeOrderService{activeErr: domain.ErrNoActiveOrder}

	rr := doJSON(t, newOrdersRouter(svc), http.MethodGet, "/admin/orders/C1", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrMsgNoActiveOrderError)
}

func TestHandleCloseOrder(t *testing.T) {
	svc := &fakeOrderService{}

	rr := doJSON(t, newOrdersRouter(svc), http.MethodDelete, "/admin/orders/C1", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"C1"}, svc.closed)
}

func TestHandleSetCollector(t *testing.T) {
	svc := &fakeOrderService{}

	rr := doJSON(t, newOrdersRouter(svc), http.MethodPut, "/admin/orders/C1/collector",
		SetCollectorRequest{Name: "Jim"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Jim", svc.collector)
}

func TestHandleSetCollectorValidation(t *testing.T) {
	svc := &fakeOrderService{}

	rr := doJSON(t, newOrdersRouter(svc), http.MethodPut, "/admin/orders/C1/collector",
		SetCollectorRequest{})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, svc.collector)
}

func TestHandleSetOverride(t *testing.T) {
	svc := &fakeOrderService{}

	rr := doJSON(t, newOrdersRouter(svc), http.MethodPut, "/admin/orders/C1/override",
		SetOverrideRequest{Enabled: true, Message: "Closed today."})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, svc.override.Enabled)
	assert.Equal(t, "Closed today.", svc.override.Message)
}
