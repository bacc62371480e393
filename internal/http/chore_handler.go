package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/household-hub/internal/application"
	"github.com/example/household-hub/internal/recurrence"
)

type choreService interface {
	CreateChore(ctx context.Context, input application.ChoreInput) (application.Chore, error)
	UpdateChore(ctx context.Context, id string, input application.ChoreInput) (application.Chore, error)
	ToggleChore(ctx context.Context, id string) (application.Chore, error)
	DeleteChore(ctx context.Context, id string) error
	ListChores(ctx context.Context) ([]application.Chore, error)
}

type ChoreHandler struct {
	service   choreService
	responder responder
}

func NewChoreHandler(service choreService, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{service: service, responder: newResponder(logger)}
}

type recurrenceDTO struct {
	Frequency string   `json:"frequency"`
	Weekdays  []string `json:"weekdays,omitempty"`
	Until     string   `json:"until,omitempty"`
}

type choreRequest struct {
	Task           string         `json:"task"`
	AssigneeIDs    []string       `json:"assignee_ids"`
	Priority       string         `json:"priority"`
	DueDate        string         `json:"due_date"`
	Recurrence     *recurrenceDTO `json:"recurrence"`
	NotificationAt string         `json:"notification_at"`
}

// toInput parses the wire fields into a service input, accumulating parse
// failures the same way the service validators report theirs.
func (req choreRequest) toInput() (application.ChoreInput, error) {
	vErr := &application.ValidationError{}
	input := application.ChoreInput{
		Task:        req.Task,
		AssigneeIDs: req.AssigneeIDs,
	}

	priority, err := application.ParsePriority(req.Priority)
	if err != nil {
		vErr.Add("priority", err.Error())
	}
	input.Priority = priority

	if req.DueDate != "" {
		input.DueDate, err = application.ParseDate(req.DueDate)
		if err != nil {
			vErr.Add("due_date", err.Error())
		}
	}
	if req.NotificationAt != "" {
		input.NotificationAt, err = application.ParseDateTime(req.NotificationAt)
		if err != nil {
			vErr.Add("notification_at", err.Error())
		}
	}

	if req.Recurrence != nil {
		frequency, err := recurrence.ParseFrequency(req.Recurrence.Frequency)
		if err != nil {
			vErr.Add("recurrence", fmt.Sprintf("unknown frequency %q", req.Recurrence.Frequency))
		}
		rule := application.RecurrenceRule{Frequency: frequency}
		rule.Weekdays, err = application.ParseWeekdays(req.Recurrence.Weekdays)
		if err != nil {
			vErr.Add("recurrence", err.Error())
		}
		if req.Recurrence.Until != "" {
			until, err := application.ParseDate(req.Recurrence.Until)
			if err != nil {
				vErr.Add("recurrence", err.Error())
			} else {
				rule.Until = &until
			}
		}
		input.Recurrence = &rule
	}

	if vErr.HasErrors() {
		return application.ChoreInput{}, vErr
	}
	return input, nil
}

type choreDTO struct {
	ID             string         `json:"id"`
	Task           string         `json:"task"`
	AssigneeIDs    []string       `json:"assignee_ids,omitempty"`
	Priority       string         `json:"priority"`
	DueDate        string         `json:"due_date,omitempty"`
	Recurrence     *recurrenceDTO `json:"recurrence,omitempty"`
	NotificationAt string         `json:"notification_at,omitempty"`
	Completed      bool           `json:"completed"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func toChoreDTO(chore application.Chore) choreDTO {
	dto := choreDTO{
		ID:          chore.ID,
		Task:        chore.Task,
		AssigneeIDs: chore.AssigneeIDs,
		Priority:    string(chore.Priority),
		Completed:   chore.Completed,
		CreatedAt:   chore.CreatedAt,
		UpdatedAt:   chore.UpdatedAt,
	}
	if !chore.DueDate.IsZero() {
		dto.DueDate = chore.DueDate.Format(application.DateLayout)
	}
	if !chore.NotificationAt.IsZero() {
		dto.NotificationAt = chore.NotificationAt.Format(application.DateTimeLayout)
	}
	if !chore.CompletedAt.IsZero() {
		completedAt := chore.CompletedAt
		dto.CompletedAt = &completedAt
	}
	if chore.Recurrence != nil {
		rule := recurrenceDTO{
			Frequency: chore.Recurrence.Frequency.String(),
			Weekdays:  application.WeekdayNames(chore.Recurrence.Weekdays),
		}
		if chore.Recurrence.Until != nil {
			rule.Until = chore.Recurrence.Until.Format(application.DateLayout)
		}
		dto.Recurrence = &rule
	}
	return dto
}

func toChoreDTOs(chores []application.Chore) []choreDTO {
	out := make([]choreDTO, 0, len(chores))
	for _, chore := range chores {
		out = append(out, toChoreDTO(chore))
	}
	return out
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	chore, err := h.service.CreateChore(r.Context(), input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toChoreDTO(chore))
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	chore, err := h.service.UpdateChore(r.Context(), id, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toChoreDTO(chore))
}

func (h *ChoreHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	chore, err := h.service.ToggleChore(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toChoreDTO(chore))
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	if err := h.service.DeleteChore(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	chores, err := h.service.ListChores(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listChoresResponse{Chores: toChoreDTOs(chores)})
}

type listChoresResponse struct {
	Chores []choreDTO `json:"chores"`
}
