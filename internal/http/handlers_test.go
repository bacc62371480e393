package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/household-hub/internal/application"
	"github.com/example/household-hub/internal/intent"
	"github.com/example/household-hub/internal/persistence/memory"
	"github.com/example/household-hub/internal/testfixtures"
)

type testServer struct {
	handler       http.Handler
	store         *memory.Store
	factory       *testfixtures.ServiceFactory
	notifications *application.NotificationService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	factory := testfixtures.NewServiceFactory()

	people := factory.NewPersonService(store, store)
	chores := factory.NewChoreService(store, store)
	alarms := factory.NewAlarmService(store)
	timers := factory.NewTimerService(store)
	groceries := application.NewGroceryService(store, factory.IDGenerator.NextFunc())
	routines := application.NewRoutineService(store, factory.IDGenerator.NextFunc())
	calendar := application.NewCalendarService(store)
	notifications := factory.NewNotificationService(store, store, store)
	dispatcher := intent.NewDispatcher(chores, groceries, timers, alarms)

	handler := NewRouter(RouterConfig{
		People:    NewPersonHandler(people, nil),
		Chores:    NewChoreHandler(chores, nil),
		Alarms:    NewAlarmHandler(alarms, nil),
		Timers:    NewTimerHandler(timers, nil),
		Groceries: NewGroceryHandler(groceries, nil),
		Routines:  NewRoutineHandler(routines, nil),
		Calendar:  NewCalendarHandler(calendar, chores, factory.Clock.NowFunc(), nil),
		Triggers:  NewTriggerHandler(notifications, nil),
		Intents:   NewIntentHandler(dispatcher, nil),
	})

	return &testServer{handler: handler, store: store, factory: factory, notifications: notifications}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestPersonHandlers(t *testing.T) {
	t.Parallel()

	t.Run("create and list people", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/people", `{"name":"Ada","avatar":"owl","is_adult":true}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
		}
		var created personDTO
		decodeBody(t, rec, &created)
		if created.ID == "" || created.Name != "Ada" || !created.IsAdult {
			t.Fatalf("unexpected person: %+v", created)
		}

		rec = srv.do(t, http.MethodGet, "/people", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list status = %d", rec.Code)
		}
		var listed listPeopleResponse
		decodeBody(t, rec, &listed)
		if len(listed.People) != 1 || listed.People[0].ID != created.ID {
			t.Fatalf("unexpected list: %+v", listed)
		}
	})

	t.Run("blank name yields field errors", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/people", `{"name":"  "}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.Errors["name"] == "" {
			t.Fatalf("expected a name field error, got %+v", resp)
		}
	})

	t.Run("update of missing person yields 404", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPut, "/people/nope", `{"name":"Ada"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("rejects unsupported methods", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPatch, "/people", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodPost) {
			t.Fatalf("Allow header = %q", allow)
		}
	})
}

func TestChoreHandlers(t *testing.T) {
	t.Parallel()

	t.Run("create serializes recurrence and dates", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		body := `{
			"task": "Take out the trash",
			"priority": "High",
			"due_date": "2025-03-05",
			"recurrence": {"frequency": "weekly", "weekdays": ["Wednesday"], "until": "2025-06-01"},
			"notification_at": "2025-03-05T18:30"
		}`
		rec := srv.do(t, http.MethodPost, "/chores", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var created choreDTO
		decodeBody(t, rec, &created)
		if created.Task != "Take out the trash" || created.Priority != "High" {
			t.Fatalf("unexpected chore: %+v", created)
		}
		if created.DueDate != "2025-03-05" || created.NotificationAt != "2025-03-05T18:30" {
			t.Fatalf("unexpected dates: %+v", created)
		}
		if created.Recurrence == nil || created.Recurrence.Frequency != "weekly" || created.Recurrence.Until != "2025-06-01" {
			t.Fatalf("unexpected recurrence: %+v", created.Recurrence)
		}
		if len(created.Recurrence.Weekdays) != 1 || created.Recurrence.Weekdays[0] != "Wednesday" {
			t.Fatalf("unexpected weekdays: %+v", created.Recurrence.Weekdays)
		}
	})

	t.Run("malformed due date yields field errors", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/chores", `{"task":"Sweep","due_date":"tomorrow"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.Errors["due_date"] == "" {
			t.Fatalf("expected due_date error, got %+v", resp)
		}
	})

	t.Run("toggle marks the chore completed", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/chores", `{"task":"Sweep"}`)
		var created choreDTO
		decodeBody(t, rec, &created)

		rec = srv.do(t, http.MethodPost, "/chores/"+created.ID+"/toggle", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle status = %d, body %s", rec.Code, rec.Body.String())
		}
		var toggled choreDTO
		decodeBody(t, rec, &toggled)
		if !toggled.Completed || toggled.CompletedAt == nil {
			t.Fatalf("expected completed chore, got %+v", toggled)
		}
	})

	t.Run("delete removes the chore", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/chores", `{"task":"Sweep"}`)
		var created choreDTO
		decodeBody(t, rec, &created)

		rec = srv.do(t, http.MethodDelete, "/chores/"+created.ID, "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete status = %d", rec.Code)
		}
		rec = srv.do(t, http.MethodDelete, "/chores/"+created.ID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("second delete status = %d", rec.Code)
		}
	})

	t.Run("rejects malformed request bodies", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/chores", `{"task":`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestAlarmHandlers(t *testing.T) {
	t.Parallel()

	t.Run("create arms the alarm silently", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/alarms", `{"time":"07:15","label":"School run","repeat_days":["Monday","Friday"]}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var created alarmDTO
		decodeBody(t, rec, &created)
		if !created.Enabled || created.Ringing {
			t.Fatalf("expected armed silent alarm, got %+v", created)
		}
		if len(created.RepeatDays) != 2 {
			t.Fatalf("unexpected repeat days: %+v", created.RepeatDays)
		}
	})

	t.Run("malformed clock yields field errors", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/alarms", `{"time":"7 o'clock"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.Errors["time"] == "" {
			t.Fatalf("expected time error, got %+v", resp)
		}
	})

	t.Run("toggle disables the alarm", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/alarms", `{"time":"07:15","label":"Wake up"}`)
		var created alarmDTO
		decodeBody(t, rec, &created)

		rec = srv.do(t, http.MethodPost, "/alarms/"+created.ID+"/toggle", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle status = %d", rec.Code)
		}
		var toggled alarmDTO
		decodeBody(t, rec, &toggled)
		if toggled.Enabled {
			t.Fatalf("expected disabled alarm, got %+v", toggled)
		}
	})
}

func TestTimerHandlers(t *testing.T) {
	t.Parallel()

	t.Run("start pause and dismiss", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/timers", `{"label":"Pasta","duration_seconds":300}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("start status = %d, body %s", rec.Code, rec.Body.String())
		}
		var created timerDTO
		decodeBody(t, rec, &created)
		if !created.Running || created.RemainingSeconds != 300 {
			t.Fatalf("unexpected timer: %+v", created)
		}

		rec = srv.do(t, http.MethodPost, "/timers/"+created.ID+"/pause", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("pause status = %d", rec.Code)
		}
		var paused timerDTO
		decodeBody(t, rec, &paused)
		if paused.Running {
			t.Fatalf("expected paused timer, got %+v", paused)
		}

		rec = srv.do(t, http.MethodDelete, "/timers/"+created.ID, "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("dismiss status = %d", rec.Code)
		}
	})

	t.Run("non-positive duration yields field errors", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/timers", `{"label":"Pasta","duration_seconds":0}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})
}

func TestGroceryHandlers(t *testing.T) {
	t.Parallel()

	t.Run("add toggle and delete", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/groceries", `{"name":"Milk"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
		}
		var created groceryDTO
		decodeBody(t, rec, &created)

		rec = srv.do(t, http.MethodPost, "/groceries/"+created.ID+"/toggle", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle status = %d", rec.Code)
		}
		var toggled groceryDTO
		decodeBody(t, rec, &toggled)
		if !toggled.Completed {
			t.Fatalf("expected completed item, got %+v", toggled)
		}

		rec = srv.do(t, http.MethodDelete, "/groceries/"+created.ID, "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete status = %d", rec.Code)
		}
	})
}

func TestRoutineHandlers(t *testing.T) {
	t.Parallel()

	t.Run("toggle step via the path index", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/routines", `{"name":"Morning","icon":"sun","steps":["Brush teeth","Make bed"],"days":["Monday"]}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
		}
		var created routineDTO
		decodeBody(t, rec, &created)

		rec = srv.do(t, http.MethodPost, "/routines/"+created.ID+"/steps/1/toggle", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle status = %d, body %s", rec.Code, rec.Body.String())
		}
		var toggled routineDTO
		decodeBody(t, rec, &toggled)
		if toggled.Steps[0].Completed || !toggled.Steps[1].Completed {
			t.Fatalf("unexpected steps: %+v", toggled.Steps)
		}

		rec = srv.do(t, http.MethodPost, "/routines/"+created.ID+"/reset", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("reset status = %d", rec.Code)
		}
		var reset routineDTO
		decodeBody(t, rec, &reset)
		if reset.Steps[1].Completed {
			t.Fatalf("expected reset steps, got %+v", reset.Steps)
		}
	})

	t.Run("non-numeric step index yields 400", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/routines", `{"name":"Morning","steps":["Brush teeth"]}`)
		var created routineDTO
		decodeBody(t, rec, &created)

		rec = srv.do(t, http.MethodPost, "/routines/"+created.ID+"/steps/first/toggle", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestCalendarHandlers(t *testing.T) {
	t.Parallel()

	t.Run("month index expands recurrences", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		body := `{"task":"Water plants","due_date":"2025-03-05","recurrence":{"frequency":"weekly"}}`
		if rec := srv.do(t, http.MethodPost, "/chores", body); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
		}

		rec := srv.do(t, http.MethodGet, "/calendar/2025-03", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("month status = %d, body %s", rec.Code, rec.Body.String())
		}
		var month monthResponse
		decodeBody(t, rec, &month)
		if month.Year != 2025 || month.Month != 3 {
			t.Fatalf("unexpected month: %+v", month)
		}
		wantDates := []string{"2025-03-05", "2025-03-12", "2025-03-19", "2025-03-26"}
		if len(month.Days) != len(wantDates) {
			t.Fatalf("days = %d, want %d: %+v", len(month.Days), len(wantDates), month.Days)
		}
		for i, day := range month.Days {
			if day.Date != wantDates[i] {
				t.Fatalf("day[%d] = %q, want %q", i, day.Date, wantDates[i])
			}
			if len(day.Occurrences) != 1 || day.Occurrences[0].Chore.Task != "Water plants" {
				t.Fatalf("unexpected occurrences on %s: %+v", day.Date, day.Occurrences)
			}
		}
	})

	t.Run("malformed month yields 400", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodGet, "/calendar/march", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("ics feed serves scheduled chores", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		body := `{"task":"Water plants","due_date":"2025-03-05","recurrence":{"frequency":"weekly"}}`
		if rec := srv.do(t, http.MethodPost, "/chores", body); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}

		rec := srv.do(t, http.MethodGet, "/calendar/feed.ics", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("feed status = %d, body %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
			t.Fatalf("content type = %q", ct)
		}
		feed := rec.Body.String()
		if !strings.Contains(feed, "BEGIN:VCALENDAR") || !strings.Contains(feed, "Water plants") {
			t.Fatalf("unexpected feed: %s", feed)
		}
	})
}

func TestTriggerHandlers(t *testing.T) {
	t.Parallel()

	t.Run("list and acknowledge fired triggers", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/timers", `{"label":"Tea","duration_seconds":1}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("start status = %d", rec.Code)
		}

		now := srv.factory.Clock.Now()
		if _, err := srv.notifications.Tick(context.Background(), now.Add(time.Second)); err != nil {
			t.Fatalf("tick: %v", err)
		}

		rec = srv.do(t, http.MethodGet, "/triggers", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list status = %d", rec.Code)
		}
		var listed listTriggersResponse
		decodeBody(t, rec, &listed)
		if len(listed.Triggers) != 1 || listed.Triggers[0].Kind != application.TriggerTimerFinished {
			t.Fatalf("unexpected triggers: %+v", listed.Triggers)
		}

		id := listed.Triggers[0].ID
		rec = srv.do(t, http.MethodPost, "/triggers/"+id+"/ack", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("ack status = %d, body %s", rec.Code, rec.Body.String())
		}
		var acked triggerDTO
		decodeBody(t, rec, &acked)
		if !acked.Acknowledged {
			t.Fatalf("expected acknowledged trigger, got %+v", acked)
		}
	})

	t.Run("acknowledging an unknown trigger yields 404", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/triggers/nope/ack", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestIntentHandler(t *testing.T) {
	t.Parallel()

	t.Run("dispatches add_grocery", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/intents", `{"action":"add_grocery","name":"Eggs"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var result intentResultDTO
		decodeBody(t, rec, &result)
		if result.Grocery == nil || result.Grocery.Name != "Eggs" {
			t.Fatalf("unexpected result: %+v", result)
		}

		rec = srv.do(t, http.MethodGet, "/groceries", "")
		var listed listGroceriesResponse
		decodeBody(t, rec, &listed)
		if len(listed.Items) != 1 {
			t.Fatalf("expected persisted item, got %+v", listed.Items)
		}
	})

	t.Run("unknown action yields 400", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/intents", `{"action":"reboot_house"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("invalid chore fields yield 422", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := srv.do(t, http.MethodPost, "/intents", `{"action":"create_chore","task":"Sweep","due_date":"someday"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.Errors["due_date"] == "" {
			t.Fatalf("expected due_date error, got %+v", resp)
		}
	})
}
