package domain

import (
	"slices"
	"strings"
	"time"
)

type FollowUpStatus string

const (
	FollowUpPending          FollowUpStatus = "pending"
	FollowUpAwaitingResponse FollowUpStatus = "awaiting_response"
	FollowUpCompleted        FollowUpStatus = "completed"
)

var validFollowUpStatuses = []FollowUpStatus{FollowUpPending, FollowUpAwaitingResponse, FollowUpCompleted}

// FollowUp represents an outstanding ask delegated to or requested from
// another person.
type FollowUp struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	Title       string         `json:"title"`
	Assignee    string         `json:"assignee,omitempty"`
	Requester   string         `json:"requester,omitempty"`
	Person      string         `json:"person,omitempty"`
	Priority    Priority       `json:"priority"`
	Status      FollowUpStatus `json:"status"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	LastCheckIn *time.Time     `json:"last_check_in,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type FollowUpInput struct {
	ID          string
	OwnerID     string
	Title       string
	Assignee    string
	Requester   string
	Person      string
	Priority    Priority
	Status      FollowUpStatus
	DueDate     *time.Time
	LastCheckIn *time.Time
}

func NewFollowUp(in FollowUpInput, now time.Time) (FollowUp, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Title = strings.TrimSpace(in.Title)

	if in.ID == "" {
		return FollowUp{}, ErrInvalidID
	}
	if in.OwnerID == "" {
		return FollowUp{}, ErrInvalidOwnerID
	}
	if in.Title == "" {
		return FollowUp{}, ErrInvalidTitle
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !slices.Contains(validPriorities, in.Priority) {
		return FollowUp{}, ErrInvalidPriority
	}
	if in.Status == "" {
		in.Status = FollowUpPending
	}
	if !slices.Contains(validFollowUpStatuses, in.Status) {
		return FollowUp{}, ErrInvalidStatus
	}

	return FollowUp{
		ID:          in.ID,
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Assignee:    strings.TrimSpace(in.Assignee),
		Requester:   strings.TrimSpace(in.Requester),
		Person:      strings.TrimSpace(in.Person),
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     normalizeTimestamp(in.DueDate),
		LastCheckIn: normalizeTimestamp(in.LastCheckIn),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (f *FollowUp) Update(in FollowUpInput, now time.Time) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrInvalidTitle
	}
	if !slices.Contains(validPriorities, in.Priority) {
		return ErrInvalidPriority
	}
	if !slices.Contains(validFollowUpStatuses, in.Status) {
		return ErrInvalidStatus
	}
	f.Title = in.Title
	f.Assignee = strings.TrimSpace(in.Assignee)
	f.Requester = strings.TrimSpace(in.Requester)
	f.Person = strings.TrimSpace(in.Person)
	f.Priority = in.Priority
	f.Status = in.Status
	f.DueDate = normalizeTimestamp(in.DueDate)
	f.LastCheckIn = normalizeTimestamp(in.LastCheckIn)
	f.UpdatedAt = now.UTC()
	return nil
}
