package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/household-hub/internal/application"
)

type routineService interface {
	CreateRoutine(ctx context.Context, input application.RoutineInput) (application.Routine, error)
	UpdateRoutine(ctx context.Context, id string, input application.RoutineInput) (application.Routine, error)
	ToggleStep(ctx context.Context, id string, stepIndex int) (application.Routine, error)
	ResetRoutine(ctx context.Context, id string) (application.Routine, error)
	DeleteRoutine(ctx context.Context, id string) error
	ListRoutines(ctx context.Context) ([]application.Routine, error)
}

type RoutineHandler struct {
	service   routineService
	responder responder
}

func NewRoutineHandler(service routineService, logger *slog.Logger) *RoutineHandler {
	return &RoutineHandler{service: service, responder: newResponder(logger)}
}

type routineRequest struct {
	Name  string   `json:"name"`
	Icon  string   `json:"icon"`
	Steps []string `json:"steps"`
	Days  []string `json:"days"`
}

func (req routineRequest) toInput() (application.RoutineInput, error) {
	days, err := application.ParseWeekdays(req.Days)
	if err != nil {
		vErr := &application.ValidationError{}
		vErr.Add("days", err.Error())
		return application.RoutineInput{}, vErr
	}
	return application.RoutineInput{Name: req.Name, Icon: req.Icon, Steps: req.Steps, Days: days}, nil
}

type routineStepDTO struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

type routineDTO struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Icon  string           `json:"icon,omitempty"`
	Steps []routineStepDTO `json:"steps"`
	Days  []string         `json:"days,omitempty"`
}

func toRoutineDTO(routine application.Routine) routineDTO {
	steps := make([]routineStepDTO, 0, len(routine.Steps))
	for _, step := range routine.Steps {
		steps = append(steps, routineStepDTO{Label: step.Label, Completed: step.Completed})
	}
	return routineDTO{
		ID:    routine.ID,
		Name:  routine.Name,
		Icon:  routine.Icon,
		Steps: steps,
		Days:  application.WeekdayNames(routine.Days),
	}
}

func toRoutineDTOs(routines []application.Routine) []routineDTO {
	out := make([]routineDTO, 0, len(routines))
	for _, routine := range routines {
		out = append(out, toRoutineDTO(routine))
	}
	return out
}

func (h *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req routineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	routine, err := h.service.CreateRoutine(r.Context(), input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toRoutineDTO(routine))
}

func (h *RoutineHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	var req routineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	routine, err := h.service.UpdateRoutine(r.Context(), id, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toRoutineDTO(routine))
}

// ToggleStep flips one checklist entry. The step index arrives via the path,
// already parsed by the router.
func (h *RoutineHandler) ToggleStep(w http.ResponseWriter, r *http.Request, stepIndex int) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	routine, err := h.service.ToggleStep(r.Context(), id, stepIndex)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toRoutineDTO(routine))
}

func (h *RoutineHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	routine, err := h.service.ResetRoutine(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toRoutineDTO(routine))
}

func (h *RoutineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	if err := h.service.DeleteRoutine(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	routines, err := h.service.ListRoutines(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRoutinesResponse{Routines: toRoutineDTOs(routines)})
}

type listRoutinesResponse struct {
	Routines []routineDTO `json:"routines"`
}
