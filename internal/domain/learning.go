package domain

import (
	"slices"
	"strings"
	"time"
)

type ResourceType string

const (
	ResourceBook     ResourceType = "book"
	ResourceCourse   ResourceType = "course"
	ResourcePodcast  ResourceType = "podcast"
	ResourceWorkshop ResourceType = "workshop"
)

var validResourceTypes = []ResourceType{ResourceBook, ResourceCourse, ResourcePodcast, ResourceWorkshop}

type ResourceStatus string

const (
	ResourceNotStarted ResourceStatus = "not_started"
	ResourceInProgress ResourceStatus = "in_progress"
	ResourceCompleted  ResourceStatus = "completed"
)

var validResourceStatuses = []ResourceStatus{ResourceNotStarted, ResourceInProgress, ResourceCompleted}

// LearningResource represents a book, course, podcast, or workshop with a
// completion percentage in 0..100.
type LearningResource struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	Title       string         `json:"title"`
	Type        ResourceType   `json:"type"`
	URL         string         `json:"url,omitempty"`
	Status      ResourceStatus `json:"status"`
	Progress    int            `json:"progress"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type LearningResourceInput struct {
	ID       string
	OwnerID  string
	Title    string
	Type     ResourceType
	URL      string
	Status   ResourceStatus
	Progress int
	Notes    string
}

func NewLearningResource(in LearningResourceInput, now time.Time) (LearningResource, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Title = strings.TrimSpace(in.Title)

	if in.ID == "" {
		return LearningResource{}, ErrInvalidID
	}
	if in.OwnerID == "" {
		return LearningResource{}, ErrInvalidOwnerID
	}
	if in.Title == "" {
		return LearningResource{}, ErrInvalidTitle
	}
	if !slices.Contains(validResourceTypes, in.Type) {
		return LearningResource{}, ErrInvalidType
	}
	if in.Status == "" {
		in.Status = ResourceNotStarted
	}
	if !slices.Contains(validResourceStatuses, in.Status) {
		return LearningResource{}, ErrInvalidStatus
	}
	if in.Progress < 0 || in.Progress > 100 {
		return LearningResource{}, ErrInvalidProgress
	}

	res := LearningResource{
		ID:        in.ID,
		OwnerID:   in.OwnerID,
		Title:     in.Title,
		Type:      in.Type,
		URL:       strings.TrimSpace(in.URL),
		Status:    in.Status,
		Progress:  in.Progress,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	res.stampStatus(now)
	return res, nil
}

func (r *LearningResource) Update(in LearningResourceInput, now time.Time) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrInvalidTitle
	}
	if !slices.Contains(validResourceTypes, in.Type) {
		return ErrInvalidType
	}
	if !slices.Contains(validResourceStatuses, in.Status) {
		return ErrInvalidStatus
	}
	if in.Progress < 0 || in.Progress > 100 {
		return ErrInvalidProgress
	}
	r.Title = in.Title
	r.Type = in.Type
	r.URL = strings.TrimSpace(in.URL)
	r.Status = in.Status
	r.Progress = in.Progress
	r.Notes = strings.TrimSpace(in.Notes)
	r.UpdatedAt = now.UTC()
	r.stampStatus(now)
	return nil
}

// stampStatus keeps the started/completed markers consistent with status.
func (r *LearningResource) stampStatus(now time.Time) {
	ts := now.UTC()
	switch r.Status {
	case ResourceInProgress:
		if r.StartedAt == nil {
			r.StartedAt = &ts
		}
		r.CompletedAt = nil
	case ResourceCompleted:
		if r.StartedAt == nil {
			r.StartedAt = &ts
		}
		if r.CompletedAt == nil {
			r.CompletedAt = &ts
		}
		r.Progress = 100
	default:
		r.StartedAt = nil
		r.CompletedAt = nil
	}
}
