package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/example/household-hub/internal/intent"
)

type IntentHandler struct {
	dispatcher *intent.Dispatcher
	responder  responder
}

func NewIntentHandler(dispatcher *intent.Dispatcher, logger *slog.Logger) *IntentHandler {
	return &IntentHandler{dispatcher: dispatcher, responder: newResponder(logger)}
}

type intentResultDTO struct {
	Chore      *choreDTO   `json:"chore,omitempty"`
	Grocery    *groceryDTO `json:"grocery,omitempty"`
	Timer      *timerDTO   `json:"timer,omitempty"`
	Alarm      *alarmDTO   `json:"alarm,omitempty"`
	DeletedID  string      `json:"deleted_id,omitempty"`
	Navigation string      `json:"navigation,omitempty"`
}

func toIntentResultDTO(result intent.Result) intentResultDTO {
	dto := intentResultDTO{DeletedID: result.DeletedID, Navigation: result.Navigation}
	if result.Chore != nil {
		chore := toChoreDTO(*result.Chore)
		dto.Chore = &chore
	}
	if result.Grocery != nil {
		grocery := toGroceryDTO(*result.Grocery)
		dto.Grocery = &grocery
	}
	if result.Timer != nil {
		timer := toTimerDTO(*result.Timer)
		dto.Timer = &timer
	}
	if result.Alarm != nil {
		alarm := toAlarmDTO(*result.Alarm)
		dto.Alarm = &alarm
	}
	return dto
}

// Dispatch decodes an intent envelope and routes it into the services. The
// envelope format is the one produced by the assistant front end.
func (h *IntentHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.dispatcher == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	decoded, err := intent.Decode(body)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), decoded)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toIntentResultDTO(result))
}
