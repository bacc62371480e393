package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/household-hub/internal/application"
)

type triggerService interface {
	Triggers(ctx context.Context) ([]application.Trigger, error)
	AcknowledgeTrigger(ctx context.Context, id string) (application.Trigger, error)
}

type TriggerHandler struct {
	service   triggerService
	responder responder
}

func NewTriggerHandler(service triggerService, logger *slog.Logger) *TriggerHandler {
	return &TriggerHandler{service: service, responder: newResponder(logger)}
}

type triggerDTO struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	OccurredAt   time.Time `json:"occurred_at"`
	Alarm        *alarmDTO `json:"alarm,omitempty"`
	Timer        *timerDTO `json:"timer,omitempty"`
	Chore        *choreDTO `json:"chore,omitempty"`
	Acknowledged bool      `json:"acknowledged"`
}

func toTriggerDTO(trigger application.Trigger) triggerDTO {
	dto := triggerDTO{
		ID:           trigger.ID,
		Kind:         trigger.Kind,
		OccurredAt:   trigger.OccurredAt,
		Acknowledged: trigger.Acknowledged,
	}
	if trigger.Alarm != nil {
		alarm := toAlarmDTO(*trigger.Alarm)
		dto.Alarm = &alarm
	}
	if trigger.Timer != nil {
		timer := toTimerDTO(*trigger.Timer)
		dto.Timer = &timer
	}
	if trigger.Chore != nil {
		chore := toChoreDTO(*trigger.Chore)
		dto.Chore = &chore
	}
	return dto
}

func (h *TriggerHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	triggers, err := h.service.Triggers(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]triggerDTO, 0, len(triggers))
	for _, trigger := range triggers {
		dtos = append(dtos, toTriggerDTO(trigger))
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTriggersResponse{Triggers: dtos})
}

func (h *TriggerHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	trigger, err := h.service.AcknowledgeTrigger(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toTriggerDTO(trigger))
}

type listTriggersResponse struct {
	Triggers []triggerDTO `json:"triggers"`
}
