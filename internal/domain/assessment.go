package domain

import (
	"strings"
	"time"
)

// Assessment represents a weekly self-assessment with a 1..5 overall rating.
type Assessment struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"owner_id"`
	WeekStart          time.Time `json:"week_start"`
	LeadershipNotes    string    `json:"leadership_notes,omitempty"`
	TeamSupportNotes   string    `json:"team_support_notes,omitempty"`
	StrategyNotes      string    `json:"strategy_notes,omitempty"`
	CommunicationNotes string    `json:"communication_notes,omitempty"`
	ImprovementAreas   string    `json:"improvement_areas,omitempty"`
	OverallRating      int       `json:"overall_rating"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type AssessmentInput struct {
	ID                 string
	OwnerID            string
	WeekStart          time.Time
	LeadershipNotes    string
	TeamSupportNotes   string
	StrategyNotes      string
	CommunicationNotes string
	ImprovementAreas   string
	OverallRating      int
}

func NewAssessment(in AssessmentInput, now time.Time) (Assessment, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)

	if in.ID == "" {
		return Assessment{}, ErrInvalidID
	}
	if in.OwnerID == "" {
		return Assessment{}, ErrInvalidOwnerID
	}
	if in.WeekStart.IsZero() {
		return Assessment{}, ErrInvalidWeekStart
	}
	if in.OverallRating < 1 || in.OverallRating > 5 {
		return Assessment{}, ErrInvalidRating
	}

	return Assessment{
		ID:                 in.ID,
		OwnerID:            in.OwnerID,
		WeekStart:          in.WeekStart.UTC().Truncate(24 * time.Hour),
		LeadershipNotes:    strings.TrimSpace(in.LeadershipNotes),
		TeamSupportNotes:   strings.TrimSpace(in.TeamSupportNotes),
		StrategyNotes:      strings.TrimSpace(in.StrategyNotes),
		CommunicationNotes: strings.TrimSpace(in.CommunicationNotes),
		ImprovementAreas:   strings.TrimSpace(in.ImprovementAreas),
		OverallRating:      in.OverallRating,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}, nil
}

func (a *Assessment) Update(in AssessmentInput, now time.Time) error {
	if in.WeekStart.IsZero() {
		return ErrInvalidWeekStart
	}
	if in.OverallRating < 1 || in.OverallRating > 5 {
		return ErrInvalidRating
	}
	a.WeekStart = in.WeekStart.UTC().Truncate(24 * time.Hour)
	a.LeadershipNotes = strings.TrimSpace(in.LeadershipNotes)
	a.TeamSupportNotes = strings.TrimSpace(in.TeamSupportNotes)
	a.StrategyNotes = strings.TrimSpace(in.StrategyNotes)
	a.CommunicationNotes = strings.TrimSpace(in.CommunicationNotes)
	a.ImprovementAreas = strings.TrimSpace(in.ImprovementAreas)
	a.OverallRating = in.OverallRating
	a.UpdatedAt = now.UTC()
	return nil
}
