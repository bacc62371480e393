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

type alarmService interface {
	CreateAlarm(ctx context.Context, input application.AlarmInput) (application.Alarm, error)
	UpdateAlarm(ctx context.Context, id string, input application.AlarmInput) (application.Alarm, error)
	ToggleAlarm(ctx context.Context, id string) (application.Alarm, error)
	DismissAlarm(ctx context.Context, id string) (application.Alarm, error)
	DeleteAlarm(ctx context.Context, id string) error
	ListAlarms(ctx context.Context) ([]application.Alarm, error)
}

type AlarmHandler struct {
	service   alarmService
	responder responder
}

func NewAlarmHandler(service alarmService, logger *slog.Logger) *AlarmHandler {
	return &AlarmHandler{service: service, responder: newResponder(logger)}
}

type alarmRequest struct {
	Time       string   `json:"time"`
	Label      string   `json:"label"`
	RepeatDays []string `json:"repeat_days"`
}

func (req alarmRequest) toInput() (application.AlarmInput, error) {
	days, err := application.ParseWeekdays(req.RepeatDays)
	if err != nil {
		vErr := &application.ValidationError{}
		vErr.Add("repeat_days", err.Error())
		return application.AlarmInput{}, vErr
	}
	return application.AlarmInput{Time: req.Time, Label: req.Label, RepeatDays: days}, nil
}

type alarmDTO struct {
	ID         string    `json:"id"`
	Time       string    `json:"time"`
	Label      string    `json:"label,omitempty"`
	Enabled    bool      `json:"enabled"`
	Ringing    bool      `json:"ringing"`
	RepeatDays []string  `json:"repeat_days,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toAlarmDTO(alarm application.Alarm) alarmDTO {
	return alarmDTO{
		ID:         alarm.ID,
		Time:       alarm.Time,
		Label:      alarm.Label,
		Enabled:    alarm.Enabled,
		Ringing:    alarm.Ringing,
		RepeatDays: application.WeekdayNames(alarm.RepeatDays),
		CreatedAt:  alarm.CreatedAt,
		UpdatedAt:  alarm.UpdatedAt,
	}
}

func toAlarmDTOs(alarms []application.Alarm) []alarmDTO {
	out := make([]alarmDTO, 0, len(alarms))
	for _, alarm := range alarms {
		out = append(out, toAlarmDTO(alarm))
	}
	return out
}

func (h *AlarmHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req alarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	alarm, err := h.service.CreateAlarm(r.Context(), input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toAlarmDTO(alarm))
}

func (h *AlarmHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	var req alarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	alarm, err := h.service.UpdateAlarm(r.Context(), id, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAlarmDTO(alarm))
}

func (h *AlarmHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, id string) (application.Alarm, error) {
		return h.service.ToggleAlarm(ctx, id)
	})
}

func (h *AlarmHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, id string) (application.Alarm, error) {
		return h.service.DismissAlarm(ctx, id)
	})
}

func (h *AlarmHandler) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (application.Alarm, error)) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	alarm, err := op(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAlarmDTO(alarm))
}

func (h *AlarmHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	if err := h.service.DeleteAlarm(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AlarmHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	alarms, err := h.service.ListAlarms(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAlarmsResponse{Alarms: toAlarmDTOs(alarms)})
}

type listAlarmsResponse struct {
	Alarms []alarmDTO `json:"alarms"`
}
