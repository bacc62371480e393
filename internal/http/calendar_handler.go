package http

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/example/household-hub/internal/application"
	"github.com/example/household-hub/internal/ics"
)

type calendarService interface {
	MonthIndex(ctx context.Context, year int, month time.Month) (map[time.Time][]application.Occurrence, error)
}

type choreLister interface {
	ListChores(ctx context.Context) ([]application.Chore, error)
}

type CalendarHandler struct {
	service   calendarService
	chores    choreLister
	now       func() time.Time
	responder responder
}

func NewCalendarHandler(service calendarService, chores choreLister, now func() time.Time, logger *slog.Logger) *CalendarHandler {
	if now == nil {
		now = time.Now
	}
	return &CalendarHandler{service: service, chores: chores, now: now, responder: newResponder(logger)}
}

type occurrenceDTO struct {
	Date  string   `json:"date"`
	Chore choreDTO `json:"chore"`
}

type calendarDayDTO struct {
	Date        string          `json:"date"`
	Occurrences []occurrenceDTO `json:"occurrences"`
}

type monthResponse struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Days  []calendarDayDTO `json:"days"`
}

// Month serves the expanded occurrence index for one calendar month. Only
// days with at least one occurrence appear in the response.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request, year int, month time.Month) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	index, err := h.service.MonthIndex(r.Context(), year, month)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	days := make([]time.Time, 0, len(index))
	for day := range index {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	response := monthResponse{Year: year, Month: int(month), Days: make([]calendarDayDTO, 0, len(days))}
	for _, day := range days {
		dto := calendarDayDTO{Date: day.Format(application.DateLayout)}
		for _, occ := range index[day] {
			dto.Occurrences = append(dto.Occurrences, occurrenceDTO{
				Date:  occ.Date.Format(application.DateLayout),
				Chore: toChoreDTO(occ.Chore),
			})
		}
		response.Days = append(response.Days, dto)
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, response)
}

// Feed serves the household calendar as an iCalendar document so external
// calendar clients can subscribe to it.
func (h *CalendarHandler) Feed(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.chores == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	chores, err := h.chores.ListChores(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	feed, err := ics.Feed(chores, h.now())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(feed)); err != nil {
		h.responder.loggerFor(r.Context()).ErrorContext(r.Context(), "failed to write calendar feed", "error", err)
	}
}
