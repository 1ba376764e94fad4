package domain

import (
	"testing"
	"time"
)

func TestNewChecklistItemValidation(t *testing.T) {
	now := time.Now()
	if _, err := NewChecklistItem(ChecklistItemInput{ID: "i1", Text: "x"}, now); err != ErrInvalidChecklistID {
		t.Fatalf("expected ErrInvalidChecklistID, got %v", err)
	}
	if _, err := NewChecklistItem(ChecklistItemInput{ID: "i1", ChecklistID: "c1", Text: "  "}, now); err != ErrInvalidText {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
	if _, err := NewChecklistItem(ChecklistItemInput{ID: "i1", ChecklistID: "c1", Text: "x", Order: -1}, now); err != ErrInvalidOrder {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
	item, err := NewChecklistItem(ChecklistItemInput{ID: "i1", ChecklistID: "c1", Text: " Review runbooks "}, now)
	if err != nil {
		t.Fatalf("NewChecklistItem() error = %v", err)
	}
	if item.Text != "Review runbooks" || item.Priority != PriorityMedium || item.Completed {
		t.Fatalf("unexpected item %#v", item)
	}
}

func TestToggleCompletionFlips(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	item, err := NewChecklistItem(ChecklistItemInput{ID: "i1", ChecklistID: "c1", Text: "x"}, now)
	if err != nil {
		t.Fatalf("NewChecklistItem() error = %v", err)
	}
	item.ToggleCompletion(now.Add(time.Minute))
	if !item.Completed {
		t.Fatal("expected completed after first toggle")
	}
	item.ToggleCompletion(now.Add(2 * time.Minute))
	if item.Completed {
		t.Fatal("expected two toggles to restore the original state")
	}
}

func TestSortChecklistItems(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	items := []ChecklistItem{
		{ID: "b", Order: 1, CreatedAt: base},
		{ID: "c", Order: 0, CreatedAt: base.Add(time.Minute)},
		{ID: "a", Order: 0, CreatedAt: base},
	}
	SortChecklistItems(items)
	got := []string{items[0].ID, items[1].ID, items[2].ID}
	want := []string{"a", "c", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}
