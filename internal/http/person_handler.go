package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/household-hub/internal/application"
)

type personService interface {
	CreatePerson(ctx context.Context, input application.PersonInput) (application.Person, error)
	UpdatePerson(ctx context.Context, id string, input application.PersonInput) (application.Person, error)
	DeletePerson(ctx context.Context, id string) error
	ListPeople(ctx context.Context) ([]application.Person, error)
}

type PersonHandler struct {
	service   personService
	responder responder
}

func NewPersonHandler(service personService, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{service: service, responder: newResponder(logger)}
}

type personRequest struct {
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	IsAdult bool   `json:"is_adult"`
}

func (req personRequest) toInput() application.PersonInput {
	return application.PersonInput{Name: req.Name, Avatar: req.Avatar, IsAdult: req.IsAdult}
}

type personDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar,omitempty"`
	IsAdult bool   `json:"is_adult"`
}

func toPersonDTO(person application.Person) personDTO {
	return personDTO{ID: person.ID, Name: person.Name, Avatar: person.Avatar, IsAdult: person.IsAdult}
}

func toPersonDTOs(people []application.Person) []personDTO {
	out := make([]personDTO, 0, len(people))
	for _, person := range people {
		out = append(out, toPersonDTO(person))
	}
	return out
}

func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	person, err := h.service.CreatePerson(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toPersonDTO(person))
}

func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	person, err := h.service.UpdatePerson(r.Context(), id, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toPersonDTO(person))
}

func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	if err := h.service.DeletePerson(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	people, err := h.service.ListPeople(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listPeopleResponse{People: toPersonDTOs(people)})
}

type listPeopleResponse struct {
	People []personDTO `json:"people"`
}
