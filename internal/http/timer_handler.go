package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/household-hub/internal/application"
)

type timerService interface {
	StartTimer(ctx context.Context, input application.TimerInput) (application.Timer, error)
	PauseTimer(ctx context.Context, id string) (application.Timer, error)
	ResumeTimer(ctx context.Context, id string) (application.Timer, error)
	DismissTimer(ctx context.Context, id string) error
	ListTimers(ctx context.Context) ([]application.Timer, error)
}

type TimerHandler struct {
	service   timerService
	responder responder
}

func NewTimerHandler(service timerService, logger *slog.Logger) *TimerHandler {
	return &TimerHandler{service: service, responder: newResponder(logger)}
}

type timerRequest struct {
	Label           string `json:"label"`
	DurationSeconds int    `json:"duration_seconds"`
}

type timerDTO struct {
	ID               string    `json:"id"`
	Label            string    `json:"label"`
	DurationSeconds  int       `json:"duration_seconds"`
	RemainingSeconds int       `json:"remaining_seconds"`
	Running          bool      `json:"running"`
	Finished         bool      `json:"finished"`
	CreatedAt        time.Time `json:"created_at"`
}

func toTimerDTO(timer application.Timer) timerDTO {
	return timerDTO{
		ID:               timer.ID,
		Label:            timer.Label,
		DurationSeconds:  timer.DurationSeconds,
		RemainingSeconds: timer.RemainingSeconds,
		Running:          timer.Running,
		Finished:         timer.Finished,
		CreatedAt:        timer.CreatedAt,
	}
}

func toTimerDTOs(timers []application.Timer) []timerDTO {
	out := make([]timerDTO, 0, len(timers))
	for _, timer := range timers {
		out = append(out, toTimerDTO(timer))
	}
	return out
}

func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req timerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	timer, err := h.service.StartTimer(r.Context(), application.TimerInput{
		Label:           req.Label,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toTimerDTO(timer))
}

func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, id string) (application.Timer, error) {
		return h.service.PauseTimer(ctx, id)
	})
}

func (h *TimerHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, id string) (application.Timer, error) {
		return h.service.ResumeTimer(ctx, id)
	})
}

func (h *TimerHandler) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (application.Timer, error)) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	timer, err := op(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toTimerDTO(timer))
}

func (h *TimerHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	if err := h.service.DismissTimer(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *TimerHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	timers, err := h.service.ListTimers(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTimersResponse{Timers: toTimerDTOs(timers)})
}

type listTimersResponse struct {
	Timers []timerDTO `json:"timers"`
}
