package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/household-hub/internal/application"
	"github.com/example/household-hub/internal/config"
	"github.com/example/household-hub/internal/engine"
	httptransport "github.com/example/household-hub/internal/http"
	"github.com/example/household-hub/internal/intent"
	"github.com/example/household-hub/internal/logging"
	"github.com/example/household-hub/internal/persistence"
	"github.com/example/household-hub/internal/persistence/memory"
	"github.com/example/household-hub/internal/persistence/sqlite"
)

func main() {
	// A missing .env file is fine; the config loader falls back to
	// defaults and real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("hub terminated", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	archive, err := sqlite.Open(ctx, cfg.SQLiteDSN)
	if err != nil {
		return fmt.Errorf("open snapshot archive: %w", err)
	}
	defer func() {
		if cerr := archive.Close(); cerr != nil {
			logger.Error("failed to close snapshot archive", "error", cerr)
		}
	}()

	store := memory.NewStore()
	snapshot, err := archive.LoadSnapshot(ctx)
	switch {
	case err == nil:
		if err := store.Restore(snapshot); err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}
		logger.Info("restored snapshot", "revision", snapshot.Revision, "saved_at", snapshot.SavedAt)
	case errors.Is(err, persistence.ErrNotFound):
		logger.Info("no snapshot found, starting empty")
	default:
		return fmt.Errorf("load snapshot: %w", err)
	}

	idGenerator := uuid.NewString
	// Everything stored is naive local time, so the clock handed to the
	// services and the ticker reads in the same frame.
	now := func() time.Time { return application.ToNaive(time.Now()) }

	personService := application.NewPersonServiceWithLogger(store, store, idGenerator, logger)
	choreService := application.NewChoreServiceWithLogger(store, store, idGenerator, now, logger)
	alarmService := application.NewAlarmServiceWithLogger(store, idGenerator, now, logger)
	timerService := application.NewTimerServiceWithLogger(store, idGenerator, now, logger)
	groceryService := application.NewGroceryServiceWithLogger(store, idGenerator, logger)
	routineService := application.NewRoutineServiceWithLogger(store, idGenerator, logger)
	calendarService := application.NewCalendarServiceWithLogger(store, logger)
	notificationService := application.NewNotificationServiceWithLogger(store, store, store, idGenerator, logger)
	notificationService.RestoreLedger(store.LedgerKeys())

	dispatcher := intent.NewDispatcher(choreService, groceryService, timerService, alarmService)

	ticker, err := engine.NewTicker(cfg.TickInterval, now, func(tickNow time.Time) {
		if _, err := notificationService.Tick(ctx, tickNow); err != nil {
			logger.Error("tick failed", "error", err)
			return
		}
		store.SetLedgerKeys(notificationService.LedgerSnapshot())
	})
	if err != nil {
		return fmt.Errorf("build ticker: %w", err)
	}
	ticker.Start()
	defer ticker.Stop()

	saver := newSnapshotSaver(archive, store, now, logger)
	go saver.run(ctx, cfg.SnapshotInterval)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		People:     httptransport.NewPersonHandler(personService, logger),
		Chores:     httptransport.NewChoreHandler(choreService, logger),
		Alarms:     httptransport.NewAlarmHandler(alarmService, logger),
		Timers:     httptransport.NewTimerHandler(timerService, logger),
		Groceries:  httptransport.NewGroceryHandler(groceryService, logger),
		Routines:   httptransport.NewRoutineHandler(routineService, logger),
		Calendar:   httptransport.NewCalendarHandler(calendarService, choreService, now, logger),
		Triggers:   httptransport.NewTriggerHandler(notificationService, logger),
		Intents:    httptransport.NewIntentHandler(dispatcher, logger),
		Middleware: []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("hub API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Final snapshot so state survives the restart.
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	saver.save(saveCtx)
	return nil
}

// snapshotSaver archives the in-memory store on a cadence, skipping saves
// when nothing changed since the previous one.
type snapshotSaver struct {
	archive *sqlite.Store
	store   *memory.Store
	now     func() time.Time
	logger  *slog.Logger

	mu           sync.Mutex
	lastRevision uint64
}

func newSnapshotSaver(archive *sqlite.Store, store *memory.Store, now func() time.Time, logger *slog.Logger) *snapshotSaver {
	return &snapshotSaver{archive: archive, store: store, now: now, logger: logger, lastRevision: store.Revision()}
}

func (s *snapshotSaver) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.save(ctx)
		}
	}
}

func (s *snapshotSaver) save(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	revision := s.store.Revision()
	if revision == s.lastRevision {
		return
	}

	snapshot := s.store.Snapshot(s.now())
	if err := s.archive.SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.Error("failed to save snapshot", "error", err)
		return
	}
	s.lastRevision = revision
	s.logger.Info("snapshot saved", "revision", revision)
}
