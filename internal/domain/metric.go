package domain

import (
	"strings"
	"time"
)

// KpiMetric represents one recorded reading of a delivery or team metric.
// Readings are append-style: corrections are new rows, never updates.
type KpiMetric struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	MetricType string    `json:"metric_type"`
	Value      float64   `json:"value"`
	Target     *float64  `json:"target,omitempty"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type KpiMetricInput struct {
	ID         string
	OwnerID    string
	MetricType string
	Value      float64
	Target     *float64
	Unit       string
	RecordedAt *time.Time
	Notes      string
}

func NewKpiMetric(in KpiMetricInput, now time.Time) (KpiMetric, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.MetricType = strings.TrimSpace(in.MetricType)

	if in.ID == "" {
		return KpiMetric{}, ErrInvalidID
	}
	if in.OwnerID == "" {
		return KpiMetric{}, ErrInvalidOwnerID
	}
	if in.MetricType == "" {
		return KpiMetric{}, ErrInvalidMetricType
	}

	recordedAt := now.UTC()
	if in.RecordedAt != nil {
		recordedAt = in.RecordedAt.UTC().Truncate(time.Second)
	}

	return KpiMetric{
		ID:         in.ID,
		OwnerID:    in.OwnerID,
		MetricType: in.MetricType,
		Value:      in.Value,
		Target:     in.Target,
		Unit:       strings.TrimSpace(in.Unit),
		RecordedAt: recordedAt,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now.UTC(),
	}, nil
}
