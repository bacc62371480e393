package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type RouterConfig struct {
	People     *PersonHandler
	Chores     *ChoreHandler
	Alarms     *AlarmHandler
	Timers     *TimerHandler
	Groceries  *GroceryHandler
	Routines   *RoutineHandler
	Calendar   *CalendarHandler
	Triggers   *TriggerHandler
	Intents    *IntentHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.People != nil {
		mux.HandleFunc("/people", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.People.List(w, r)
			case http.MethodPost:
				cfg.People.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/people/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/people/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch r.Method {
			case http.MethodPut:
				cfg.People.Update(w, r)
			case http.MethodDelete:
				cfg.People.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Chores != nil {
		mux.HandleFunc("/chores", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Chores.List(w, r)
			case http.MethodPost:
				cfg.Chores.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/chores/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/chores/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch action {
			case "":
				switch r.Method {
				case http.MethodPut:
					cfg.Chores.Update(w, r)
				case http.MethodDelete:
					cfg.Chores.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodPut, http.MethodDelete)
				}
			case "toggle":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Chores.Toggle(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Alarms != nil {
		mux.HandleFunc("/alarms", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Alarms.List(w, r)
			case http.MethodPost:
				cfg.Alarms.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/alarms/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/alarms/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch action {
			case "":
				switch r.Method {
				case http.MethodPut:
					cfg.Alarms.Update(w, r)
				case http.MethodDelete:
					cfg.Alarms.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodPut, http.MethodDelete)
				}
			case "toggle":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Alarms.Toggle(w, r)
			case "dismiss":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Alarms.Dismiss(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Timers != nil {
		mux.HandleFunc("/timers", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Timers.List(w, r)
			case http.MethodPost:
				cfg.Timers.Start(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/timers/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/timers/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch action {
			case "":
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.Timers.Dismiss(w, r)
			case "pause":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Timers.Pause(w, r)
			case "resume":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Timers.Resume(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Groceries != nil {
		mux.HandleFunc("/groceries", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Groceries.List(w, r)
			case http.MethodPost:
				cfg.Groceries.Add(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/groceries/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/groceries/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch action {
			case "":
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.Groceries.Delete(w, r)
			case "toggle":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Groceries.Toggle(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Routines != nil {
		mux.HandleFunc("/routines", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Routines.List(w, r)
			case http.MethodPost:
				cfg.Routines.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/routines/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/routines/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch {
			case action == "":
				switch r.Method {
				case http.MethodPut:
					cfg.Routines.Update(w, r)
				case http.MethodDelete:
					cfg.Routines.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodPut, http.MethodDelete)
				}
			case action == "reset":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Routines.Reset(w, r)
			case strings.HasPrefix(action, "steps/"):
				rest := strings.TrimPrefix(action, "steps/")
				index, suffix, _ := strings.Cut(rest, "/")
				if suffix != "toggle" {
					http.NotFound(w, r)
					return
				}
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				stepIndex, err := strconv.Atoi(index)
				if err != nil || stepIndex < 0 {
					newResponder(nil).writeError(r.Context(), w, http.StatusBadRequest, errInvalidStepIndex)
					return
				}
				cfg.Routines.ToggleStep(w, r, stepIndex)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Calendar != nil {
		mux.HandleFunc("/calendar/feed.ics", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Calendar.Feed(w, r)
		})
		mux.HandleFunc("/calendar/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			month := strings.TrimPrefix(r.URL.Path, "/calendar/")
			parsed, err := time.Parse("2006-01", month)
			if err != nil {
				newResponder(nil).writeError(r.Context(), w, http.StatusBadRequest, errInvalidMonth)
				return
			}
			cfg.Calendar.Month(w, r, parsed.Year(), parsed.Month())
		})
	}

	if cfg.Triggers != nil {
		mux.HandleFunc("/triggers", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Triggers.List(w, r)
		})
		mux.HandleFunc("/triggers/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/triggers/")
			if id == "" || action != "ack" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			cfg.Triggers.Acknowledge(w, r)
		})
	}

	if cfg.Intents != nil {
		mux.HandleFunc("/intents", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Intents.Dispatch(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

// splitResourcePath separates "/chores/{id}/toggle" style paths into the id
// and the trailing action, which is empty for plain "/chores/{id}".
func splitResourcePath(path, prefix string) (id, action string) {
	rest := strings.TrimPrefix(path, prefix)
	id, action, _ = strings.Cut(rest, "/")
	return id, action
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
