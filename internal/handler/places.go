package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grubworks/grubbot/internal/domain"
	"github.com/grubworks/grubbot/internal/logger"
	"github.com/grubworks/grubbot/internal/menu"
	"github.com/grubworks/grubbot/internal/repository"
)

// PlacesHandler manages the menu catalog over HTTP.
type PlacesHandler struct {
	repo  repository.MenuAdmin
	menus menu.Service
}

// NewPlacesHandler creates the admin places handler
func NewPlacesHandler(repo repository.MenuAdmin, menus menu.Service) *PlacesHandler {
	return &PlacesHandler{repo: repo, menus: menus}
}

// MenuItemRequest is one catalog entry in an upsert request. List order
// becomes catalog position, which drives ambiguous-match resolution, so
// clients must put specific names after the shorter names they contain.
type MenuItemRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	PriceMinor int    `json:"price_minor" validate:"gte=0"`
}

// UpsertPlaceRequest is the body for creating or replacing a place's menu
type UpsertPlaceRequest struct {
	Name     string            `json:"name" validate:"required,max=100"`
	FoodType string            `json:"food_type" validate:"max=50"`
	Items    []MenuItemRequest `json:"items" validate:"dive"`
}

// PlaceResponse is the payload for place reads
type PlaceResponse struct {
	Place domain.Place      `json:"place"`
	Items []domain.MenuItem `json:"items"`
}

// HandleUpsertPlace handles PUT /admin/places
func (h *PlacesHandler) HandleUpsertPlace(w http.ResponseWriter, r *http.Request) {
	var req UpsertPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, DataResponse{Message: "Invalid request", Data: FormatValidationError(err)})
		return
	}

	placeID, err := h.repo.UpsertPlace(r.Context(), &domain.Place{Name: req.Name, FoodType: req.FoodType})
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to upsert place", "error", err, "place", req.Name)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	items := make([]domain.MenuItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.MenuItem{Name: item.Name, PriceMinor: item.PriceMinor})
	}
	if err := h.repo.ReplaceItems(r.Context(), placeID, items); err != nil {
		logger.FromContext(r.Context()).Error("Failed to replace menu", "error", err, "place", req.Name)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	h.menus.InvalidateCache(placeID)

	respondJSON(w, http.StatusOK, DataResponse{
		Message: "Place updated",
		Data:    domain.Place{ID: placeID, Name: req.Name, FoodType: req.FoodType},
	})
}

// HandleGetPlace handles GET /admin/places/{name}
func (h *PlacesHandler) HandleGetPlace(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	place, err := h.menus.PlaceByName(r.Context(), name)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}

	items, err := h.menus.Items(r.Context(), place.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list menu", "error", err, "place", name)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: PlaceResponse{Place: *place, Items: items}})
}
