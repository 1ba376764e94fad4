package domain

import (
	"slices"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var validPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

var validTaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

// Task represents a single transition-plan work item.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	PhaseID     *int       `json:"phase_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TaskInput struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Priority    Priority
	Status      TaskStatus
	PhaseID     *int
	DueDate     *time.Time
	Notes       string
}

func NewTask(in TaskInput, now time.Time) (Task, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.ID == "" {
		return Task{}, ErrInvalidID
	}
	if in.OwnerID == "" {
		return Task{}, ErrInvalidOwnerID
	}
	if in.Title == "" {
		return Task{}, ErrInvalidTitle
	}

	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !slices.Contains(validPriorities, in.Priority) {
		return Task{}, ErrInvalidPriority
	}
	if in.Status == "" {
		in.Status = TaskStatusPending
	}
	if !slices.Contains(validTaskStatuses, in.Status) {
		return Task{}, ErrInvalidStatus
	}
	if in.PhaseID != nil {
		if _, err := PhaseByID(*in.PhaseID); err != nil {
			return Task{}, err
		}
	}

	task := Task{
		ID:          in.ID,
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		PhaseID:     in.PhaseID,
		DueDate:     normalizeTimestamp(in.DueDate),
		Notes:       in.Notes,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if task.Status == TaskStatusCompleted {
		ts := now.UTC()
		task.CompletedAt = &ts
	}
	return task, nil
}

func (t *Task) UpdateDetails(title, description string, priority Priority, dueDate *time.Time, phaseID *int, notes string, now time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidTitle
	}
	if !slices.Contains(validPriorities, priority) {
		return ErrInvalidPriority
	}
	if phaseID != nil {
		if _, err := PhaseByID(*phaseID); err != nil {
			return err
		}
	}
	t.Title = title
	t.Description = strings.TrimSpace(description)
	t.Priority = priority
	t.DueDate = normalizeTimestamp(dueDate)
	t.PhaseID = phaseID
	t.Notes = strings.TrimSpace(notes)
	t.UpdatedAt = now.UTC()
	return nil
}

// SetStatus moves the task to status and stamps CompletedAt on the
// transition into completed. Leaving completed clears the stamp.
func (t *Task) SetStatus(status TaskStatus, now time.Time) error {
	if !slices.Contains(validTaskStatuses, status) {
		return ErrInvalidStatus
	}
	ts := now.UTC()
	switch {
	case status == TaskStatusCompleted && t.Status != TaskStatusCompleted:
		t.CompletedAt = &ts
	case status != TaskStatusCompleted:
		t.CompletedAt = nil
	}
	t.Status = status
	t.UpdatedAt = ts
	return nil
}

func normalizeTimestamp(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	norm := ts.UTC().Truncate(time.Second)
	return &norm
}
