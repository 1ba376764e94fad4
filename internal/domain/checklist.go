package domain

import (
	"slices"
	"strings"
	"time"
)

// Checklist represents a named collection of ordered items.
type Checklist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewChecklist(id, ownerID, name, description string, now time.Time) (Checklist, error) {
	id = strings.TrimSpace(id)
	ownerID = strings.TrimSpace(ownerID)
	name = strings.TrimSpace(name)
	if id == "" {
		return Checklist{}, ErrInvalidID
	}
	if ownerID == "" {
		return Checklist{}, ErrInvalidOwnerID
	}
	if name == "" {
		return Checklist{}, ErrInvalidName
	}
	return Checklist{
		ID:          id,
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (c *Checklist) Rename(name, description string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.UpdatedAt = now.UTC()
	return nil
}

// ChecklistItem represents one entry inside a checklist. Order is the
// zero-based sort position within the parent checklist.
type ChecklistItem struct {
	ID          string    `json:"id"`
	ChecklistID string    `json:"checklist_id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChecklistItemInput struct {
	ID          string
	ChecklistID string
	Text        string
	Priority    Priority
	Order       int
}

func NewChecklistItem(in ChecklistItemInput, now time.Time) (ChecklistItem, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.ChecklistID = strings.TrimSpace(in.ChecklistID)
	in.Text = strings.TrimSpace(in.Text)

	if in.ID == "" {
		return ChecklistItem{}, ErrInvalidID
	}
	if in.ChecklistID == "" {
		return ChecklistItem{}, ErrInvalidChecklistID
	}
	if in.Text == "" {
		return ChecklistItem{}, ErrInvalidText
	}
	if in.Order < 0 {
		return ChecklistItem{}, ErrInvalidOrder
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !slices.Contains(validPriorities, in.Priority) {
		return ChecklistItem{}, ErrInvalidPriority
	}

	return ChecklistItem{
		ID:          in.ID,
		ChecklistID: in.ChecklistID,
		Text:        in.Text,
		Priority:    in.Priority,
		Order:       in.Order,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (i *ChecklistItem) UpdateDetails(text string, priority Priority, now time.Time) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrInvalidText
	}
	if !slices.Contains(validPriorities, priority) {
		return ErrInvalidPriority
	}
	i.Text = text
	i.Priority = priority
	i.UpdatedAt = now.UTC()
	return nil
}

// ToggleCompletion flips the completed flag. There is deliberately no
// set-to-value variant; two toggles restore the original state.
func (i *ChecklistItem) ToggleCompletion(now time.Time) {
	i.Completed = !i.Completed
	i.UpdatedAt = now.UTC()
}

func (i *ChecklistItem) SetOrder(order int, now time.Time) error {
	if order < 0 {
		return ErrInvalidOrder
	}
	i.Order = order
	i.UpdatedAt = now.UTC()
	return nil
}

// SortChecklistItems orders items by position, falling back to creation
// time and then id so the ordering is total.
func SortChecklistItems(items []ChecklistItem) {
	slices.SortFunc(items, func(a, b ChecklistItem) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return strings.Compare(a.ID, b.ID)
	})
}
