package domain

import (
	"strconv"
	"strings"
	"time"
)

// ActivityType describes a persisted activity-log entry kind.
type ActivityType string

// ActivityType values used by the local activity ledger.
const (
	ActivityTaskCreated        ActivityType = "task_created"
	ActivityTaskCompleted      ActivityType = "task_completed"
	ActivityTeamMemberAdded    ActivityType = "team_member_added"
	ActivityLearningAdded      ActivityType = "learning_resource_added"
	ActivityLearningCompleted  ActivityType = "learning_completed"
	ActivityMetricRecorded     ActivityType = "metric_recorded"
	ActivityRiskIdentified     ActivityType = "risk_identified"
	ActivityFollowUpCreated    ActivityType = "follow_up_created"
	ActivityFollowUpCompleted  ActivityType = "follow_up_completed"
	ActivityChecklistCreated   ActivityType = "checklist_created"
	ActivityAssessmentRecorded ActivityType = "assessment_recorded"
	ActivityProgressAdvance    ActivityType = "progress_advance"
)

// MetadataDayKey is the metadata field carrying the day pointer on
// progress_advance events. The day lives here as a structured value;
// the human-readable description is never parsed.
const MetadataDayKey = "day"

// Activity represents a single append-only activity-log entry.
// The ID is assigned by storage at insert time.
type Activity struct {
	ID          int64             `json:"id"`
	OwnerID     string            `json:"owner_id"`
	Type        ActivityType      `json:"type"`
	Description string            `json:"description,omitempty"`
	EntityID    string            `json:"entity_id,omitempty"`
	EntityType  string            `json:"entity_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ActivityInput struct {
	OwnerID     string
	Type        ActivityType
	Description string
	EntityID    string
	EntityType  string
	Metadata    map[string]string
}

func NewActivity(in ActivityInput, now time.Time) (Activity, error) {
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Description = strings.TrimSpace(in.Description)

	if in.OwnerID == "" {
		return Activity{}, ErrInvalidOwnerID
	}
	if strings.TrimSpace(string(in.Type)) == "" {
		return Activity{}, ErrInvalidType
	}

	var metadata map[string]string
	if len(in.Metadata) > 0 {
		metadata = make(map[string]string, len(in.Metadata))
		for k, v := range in.Metadata {
			metadata[k] = v
		}
	}

	return Activity{
		OwnerID:     in.OwnerID,
		Type:        in.Type,
		Description: in.Description,
		EntityID:    strings.TrimSpace(in.EntityID),
		EntityType:  strings.TrimSpace(in.EntityType),
		Metadata:    metadata,
		CreatedAt:   now.UTC(),
	}, nil
}

// NewProgressAdvance builds the activity appended for every day-pointer
// move. The day is carried in structured metadata.
func NewProgressAdvance(ownerID string, day int, now time.Time) (Activity, error) {
	if day < 1 || day > TotalDays {
		return Activity{}, ErrInvalidDay
	}
	return NewActivity(ActivityInput{
		OwnerID:     ownerID,
		Type:        ActivityProgressAdvance,
		Description: "Advanced to day " + strconv.Itoa(day),
		Metadata:    map[string]string{MetadataDayKey: strconv.Itoa(day)},
	}, now)
}

// Day extracts the structured day pointer from a progress_advance event.
// ok is false when the payload is missing or malformed, or when the value
// falls outside [1, TotalDays].
func (a Activity) Day() (int, bool) {
	raw, present := a.Metadata[MetadataDayKey]
	if !present {
		return 0, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || day < 1 || day > TotalDays {
		return 0, false
	}
	return day, true
}
