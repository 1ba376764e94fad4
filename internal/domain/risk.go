package domain

import (
	"slices"
	"strings"
	"time"
)

// RiskLevel grades probability and impact.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var validRiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

type RiskStatus string

const (
	RiskActive    RiskStatus = "active"
	RiskMitigated RiskStatus = "mitigated"
	RiskResolved  RiskStatus = "resolved"
)

var validRiskStatuses = []RiskStatus{RiskActive, RiskMitigated, RiskResolved}

// Risk represents a tracked transition risk with mitigation planning.
type Risk struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Category        string     `json:"category,omitempty"`
	Probability     RiskLevel  `json:"probability"`
	Impact          RiskLevel  `json:"impact"`
	Status          RiskStatus `json:"status"`
	MitigationPlan  string     `json:"mitigation_plan,omitempty"`
	ContingencyPlan string     `json:"contingency_plan,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type RiskInput struct {
	ID              string
	OwnerID         string
	Title           string
	Description     string
	Category        string
	Probability     RiskLevel
	Impact          RiskLevel
	Status          RiskStatus
	MitigationPlan  string
	ContingencyPlan string
}

func NewRisk(in RiskInput, now time.Time) (Risk, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Title = strings.TrimSpace(in.Title)

	if in.ID == "" {
		return Risk{}, ErrInvalidID
	}
	if in.OwnerID == "" {
		return Risk{}, ErrInvalidOwnerID
	}
	if in.Title == "" {
		return Risk{}, ErrInvalidTitle
	}
	if in.Probability == "" {
		in.Probability = RiskMedium
	}
	if in.Impact == "" {
		in.Impact = RiskMedium
	}
	if !slices.Contains(validRiskLevels, in.Probability) || !slices.Contains(validRiskLevels, in.Impact) {
		return Risk{}, ErrInvalidLevel
	}
	if in.Status == "" {
		in.Status = RiskActive
	}
	if !slices.Contains(validRiskStatuses, in.Status) {
		return Risk{}, ErrInvalidStatus
	}

	return Risk{
		ID:              in.ID,
		OwnerID:         in.OwnerID,
		Title:           in.Title,
		Description:     strings.TrimSpace(in.Description),
		Category:        strings.TrimSpace(in.Category),
		Probability:     in.Probability,
		Impact:          in.Impact,
		Status:          in.Status,
		MitigationPlan:  strings.TrimSpace(in.MitigationPlan),
		ContingencyPlan: strings.TrimSpace(in.ContingencyPlan),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}, nil
}

func (r *Risk) Update(in RiskInput, now time.Time) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrInvalidTitle
	}
	if !slices.Contains(validRiskLevels, in.Probability) || !slices.Contains(validRiskLevels, in.Impact) {
		return ErrInvalidLevel
	}
	if !slices.Contains(validRiskStatuses, in.Status) {
		return ErrInvalidStatus
	}
	r.Title = in.Title
	r.Description = strings.TrimSpace(in.Description)
	r.Category = strings.TrimSpace(in.Category)
	r.Probability = in.Probability
	r.Impact = in.Impact
	r.Status = in.Status
	r.MitigationPlan = strings.TrimSpace(in.MitigationPlan)
	r.ContingencyPlan = strings.TrimSpace(in.ContingencyPlan)
	r.UpdatedAt = now.UTC()
	return nil
}
