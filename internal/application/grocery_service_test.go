package application

import (
	"context"
	"errors"
	"testing"
)

func TestGroceryService_AddItem(t *testing.T) {
	svc := NewGroceryService(newFakeGroceryRepo(), sequentialIDs("item"))

	t.Run("rejects blank names", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), "   ")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("trims and stores", func(t *testing.T) {
		item, err := svc.AddItem(context.Background(), "  Milk ")
		if err != nil {
			t.Fatalf("AddItem returned error: %v", err)
		}
		if item.Name != "Milk" || item.Completed {
			t.Fatalf("item = %+v", item)
		}
	})
}

func TestGroceryService_ToggleItem(t *testing.T) {
	repo := newFakeGroceryRepo()
	svc := NewGroceryService(repo, sequentialIDs("item"))

	item, err := svc.AddItem(context.Background(), "Eggs")
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	checked, err := svc.ToggleItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("ToggleItem returned error: %v", err)
	}
	if !checked.Completed {
		t.Fatal("item not checked off")
	}

	unchecked, err := svc.ToggleItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("ToggleItem returned error: %v", err)
	}
	if unchecked.Completed {
		t.Fatal("item still checked off")
	}
}

func TestGroceryService_ListKeepsInsertionOrder(t *testing.T) {
	svc := NewGroceryService(newFakeGroceryRepo(), sequentialIDs("item"))
	for _, name := range []string{"Milk", "Eggs", "Bread"} {
		if _, err := svc.AddItem(context.Background(), name); err != nil {
			t.Fatalf("AddItem returned error: %v", err)
		}
	}

	items, err := svc.ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	want := []string{"Milk", "Eggs", "Bread"}
	for i, item := range items {
		if item.Name != want[i] {
			t.Fatalf("items[%d] = %q, want %q", i, item.Name, want[i])
		}
	}
}
