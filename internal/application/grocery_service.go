package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// GroceryRepository captures the storage operations needed by the service.
type GroceryRepository interface {
	CreateGroceryItem(ctx context.Context, item GroceryItem) (GroceryItem, error)
	GetGroceryItem(ctx context.Context, id string) (GroceryItem, error)
	UpdateGroceryItem(ctx context.Context, item GroceryItem) (GroceryItem, error)
	DeleteGroceryItem(ctx context.Context, id string) error
	ListGroceryItems(ctx context.Context) ([]GroceryItem, error)
}

// GroceryService manages the shared shopping list.
type GroceryService struct {
	items       GroceryRepository
	idGenerator func() string
	logger      *slog.Logger
}

func NewGroceryService(items GroceryRepository, idGenerator func() string) *GroceryService {
	return NewGroceryServiceWithLogger(items, idGenerator, nil)
}

func NewGroceryServiceWithLogger(items GroceryRepository, idGenerator func() string, logger *slog.Logger) *GroceryService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &GroceryService{items: items, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *GroceryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "GroceryService", operation, attrs...)
}

// AddItem appends a new, unchecked entry to the list.
func (s *GroceryService) AddItem(ctx context.Context, name string) (item GroceryItem, err error) {
	if s == nil {
		err = fmt.Errorf("GroceryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "AddItem")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add grocery item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("item_id", item.ID).InfoContext(ctx, "grocery item added")
	}()

	if strings.TrimSpace(name) == "" {
		vErr := &ValidationError{}
		vErr.Add("name", "name is required")
		err = vErr
		return
	}

	item = GroceryItem{ID: s.idGenerator(), Name: strings.TrimSpace(name)}
	if s.items == nil {
		return
	}
	item, err = s.items.CreateGroceryItem(ctx, item)
	return
}

// ToggleItem flips an entry's checked-off state.
func (s *GroceryService) ToggleItem(ctx context.Context, id string) (item GroceryItem, err error) {
	if s == nil || s.items == nil {
		err = fmt.Errorf("grocery repository not configured")
		return
	}

	existing, err := s.items.GetGroceryItem(ctx, id)
	if err != nil {
		return
	}
	existing.Completed = !existing.Completed
	item, err = s.items.UpdateGroceryItem(ctx, existing)
	return
}

// DeleteItem removes an entry.
func (s *GroceryService) DeleteItem(ctx context.Context, id string) error {
	if s == nil || s.items == nil {
		return fmt.Errorf("grocery repository not configured")
	}
	return s.items.DeleteGroceryItem(ctx, id)
}

// ListItems enumerates entries in insertion order.
func (s *GroceryService) ListItems(ctx context.Context) ([]GroceryItem, error) {
	if s == nil || s.items == nil {
		return nil, fmt.Errorf("grocery repository not configured")
	}
	return s.items.ListGroceryItems(ctx)
}
