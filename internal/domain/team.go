package domain

import (
	"strings"
	"time"
)

// TeamMember represents a direct report tracked through the transition.
// SatisfactionScore is nil until a score is recorded; unscored members
// are excluded from team averages rather than counted as zero.
type TeamMember struct {
	ID                string     `json:"id"`
	OwnerID           string     `json:"owner_id"`
	Name              string     `json:"name"`
	Role              string     `json:"role,omitempty"`
	Email             string     `json:"email,omitempty"`
	Strengths         string     `json:"strengths,omitempty"`
	ImprovementAreas  string     `json:"improvement_areas,omitempty"`
	CareerGoals       string     `json:"career_goals,omitempty"`
	LastOneOnOne      *time.Time `json:"last_one_on_one,omitempty"`
	NextOneOnOne      *time.Time `json:"next_one_on_one,omitempty"`
	SatisfactionScore *float64   `json:"satisfaction_score,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type TeamMemberInput struct {
	ID                string
	OwnerID           string
	Name              string
	Role              string
	Email             string
	Strengths         string
	ImprovementAreas  string
	CareerGoals       string
	LastOneOnOne      *time.Time
	NextOneOnOne      *time.Time
	SatisfactionScore *float64
}

func NewTeamMember(in TeamMemberInput, now time.Time) (TeamMember, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)

	if in.ID == "" {
		return TeamMember{}, ErrInvalidID
	}
	if in.OwnerID == "" {
		return TeamMember{}, ErrInvalidOwnerID
	}
	if in.Name == "" {
		return TeamMember{}, ErrInvalidName
	}
	if err := validateSatisfaction(in.SatisfactionScore); err != nil {
		return TeamMember{}, err
	}

	return TeamMember{
		ID:                in.ID,
		OwnerID:           in.OwnerID,
		Name:              in.Name,
		Role:              in.Role,
		Email:             strings.TrimSpace(in.Email),
		Strengths:         strings.TrimSpace(in.Strengths),
		ImprovementAreas:  strings.TrimSpace(in.ImprovementAreas),
		CareerGoals:       strings.TrimSpace(in.CareerGoals),
		LastOneOnOne:      normalizeTimestamp(in.LastOneOnOne),
		NextOneOnOne:      normalizeTimestamp(in.NextOneOnOne),
		SatisfactionScore: in.SatisfactionScore,
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}, nil
}

func (m *TeamMember) Update(in TeamMemberInput, now time.Time) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrInvalidName
	}
	if err := validateSatisfaction(in.SatisfactionScore); err != nil {
		return err
	}
	m.Name = in.Name
	m.Role = strings.TrimSpace(in.Role)
	m.Email = strings.TrimSpace(in.Email)
	m.Strengths = strings.TrimSpace(in.Strengths)
	m.ImprovementAreas = strings.TrimSpace(in.ImprovementAreas)
	m.CareerGoals = strings.TrimSpace(in.CareerGoals)
	m.LastOneOnOne = normalizeTimestamp(in.LastOneOnOne)
	m.NextOneOnOne = normalizeTimestamp(in.NextOneOnOne)
	m.SatisfactionScore = in.SatisfactionScore
	m.UpdatedAt = now.UTC()
	return nil
}

func validateSatisfaction(score *float64) error {
	if score == nil {
		return nil
	}
	if *score < 0 || *score > 5 {
		return ErrInvalidScore
	}
	return nil
}
