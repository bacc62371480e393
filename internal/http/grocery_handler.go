package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/household-hub/internal/application"
)

type groceryService interface {
	AddItem(ctx context.Context, name string) (application.GroceryItem, error)
	ToggleItem(ctx context.Context, id string) (application.GroceryItem, error)
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context) ([]application.GroceryItem, error)
}

type GroceryHandler struct {
	service   groceryService
	responder responder
}

func NewGroceryHandler(service groceryService, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{service: service, responder: newResponder(logger)}
}

type groceryRequest struct {
	Name string `json:"name"`
}

type groceryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

func toGroceryDTO(item application.GroceryItem) groceryDTO {
	return groceryDTO{ID: item.ID, Name: item.Name, Completed: item.Completed}
}

func toGroceryDTOs(items []application.GroceryItem) []groceryDTO {
	out := make([]groceryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toGroceryDTO(item))
	}
	return out
}

func (h *GroceryHandler) Add(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req groceryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	item, err := h.service.AddItem(r.Context(), req.Name)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toGroceryDTO(item))
}

func (h *GroceryHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	item, err := h.service.ToggleItem(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toGroceryDTO(item))
}

func (h *GroceryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	items, err := h.service.ListItems(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listGroceriesResponse{Items: toGroceryDTOs(items)})
}

type listGroceriesResponse struct {
	Items []groceryDTO `json:"items"`
}
