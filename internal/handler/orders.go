package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grubworks/grubbot/internal/domain"
	"github.com/grubworks/grubbot/internal/logger"
	"github.com/grubworks/grubbot/internal/order"
)

// OrdersHandler exposes order sheet administration over HTTP. The Slack
// conversation is the primary interface; this API exists for operators and
// the occasional scripted fix-up.
type OrdersHandler struct {
	orders order.Service
}

// NewOrdersHandler creates the admin orders handler
func NewOrdersHandler(orders order.Service) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// OpenOrderRequest is the body for opening an order sheet
type OpenOrderRequest struct {
	Channel string `json:"channel" validate:"required,slack_channel"`
	Place   string `json:"place" validate:"max=100"`
}

// SetCollectorRequest is the body for assigning a collector
type SetCollectorRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// SetOverrideRequest is the body for replacing the board with a custom message
type SetOverrideRequest struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message" validate:"max=2000"`
}

// HandleOpenOrder handles POST /admin/orders
func (h *OrdersHandler) HandleOpenOrder(w http.ResponseWriter, r *http.Request) {
	var req OpenOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, DataResponse{Message: "Invalid request", Data: FormatValidationError(err)})
		return
	}

	rec, err := h.orders.Open(r.Context(), req.Channel, req.Place)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to open order", "error", err, "channel", req.Channel)
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: "Order opened", Data: rec})
}

// HandleGetOrder handles GET /admin/orders/{channel}
func (h *OrdersHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")

	rec, err := h.orders.Active(r.Context(), channel)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: rec})
}

// HandleCloseOrder handles DELETE /admin/orders/{channel}
func (h *OrdersHandler) HandleCloseOrder(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")

	if _, err := h.orders.Close(r.Context(), channel); err != nil {
		logger.FromContext(r.Context()).Error("Failed to close order", "error", err, "channel", channel)
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Order closed"})
}

// HandleSetCollector handles PUT /admin/orders/{channel}/collector
func (h *OrdersHandler) HandleSetCollector(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")

	var req SetCollectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, DataResponse{Message: "Invalid request", Data: FormatValidationError(err)})
		return
	}

	rec, err := h.orders.SetCollector(r.Context(), channel, req.Name)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: "Collector updated", Data: rec})
}

// HandleSetOverride handles PUT /admin/orders/{channel}/override
func (h *OrdersHandler) HandleSetOverride(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")

	var req SetOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, DataResponse{Message: "Invalid request", Data: FormatValidationError(err)})
		return
	}

	rec, err := h.orders.SetOverride(r.Context(), channel, domain.Override{
		Enabled: req.Enabled,
		Message: req.Message,
	})
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: "Override updated", Data: rec})
}
