package domain

// TotalDays is the length of the transition plan in days.
const TotalDays = 90

// Phase represents one contiguous day range of the transition plan.
type Phase struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDay    int    `json:"start_day"`
	EndDay      int    `json:"end_day"`
	OrderIndex  int    `json:"order_index"`
}

// PhaseProgressStatus describes where the current day sits relative to a phase.
type PhaseProgressStatus string

const (
	PhaseNotStarted PhaseProgressStatus = "not_started"
	PhaseUpcoming   PhaseProgressStatus = "upcoming"
	PhaseInProgress PhaseProgressStatus = "in_progress"
	PhaseCompleted  PhaseProgressStatus = "completed"
)

// phases partitions [1, TotalDays] with no gaps or overlaps.
var phases = []Phase{
	{ID: 1, Name: "Foundation", Description: "Learn the team, systems, and current state", StartDay: 1, EndDay: 30, OrderIndex: 0},
	{ID: 2, Name: "Acceleration", Description: "Drive improvements and own delivery", StartDay: 31, EndDay: 60, OrderIndex: 1},
	{ID: 3, Name: "Leadership", Description: "Operate independently and set direction", StartDay: 61, EndDay: 90, OrderIndex: 2},
}

// Phases returns the static phase table in order.
func Phases() []Phase {
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out
}

// PhaseByID looks up a phase by id.
func PhaseByID(id int) (Phase, error) {
	for _, p := range phases {
		if p.ID == id {
			return p, nil
		}
	}
	return Phase{}, ErrInvalidID
}

// PhaseForDay returns the phase containing day. Day 0 (not started) maps
// to the first phase for display purposes.
func PhaseForDay(day int) (Phase, error) {
	if day == 0 {
		return phases[0], nil
	}
	for _, p := range phases {
		if day >= p.StartDay && day <= p.EndDay {
			return p, nil
		}
	}
	return Phase{}, ErrInvalidDay
}

// PercentWithinPhase reports how far day is through the phase, 0..100.
// Days at or before the phase start clamp to 0, days past its end to 100.
func PercentWithinPhase(day int, p Phase) float64 {
	if day <= p.StartDay {
		return 0
	}
	if day > p.EndDay {
		return 100
	}
	span := float64(p.EndDay - p.StartDay + 1)
	return float64(day-p.StartDay+1) / span * 100
}

// PhaseProgress classifies a phase relative to the current day.
func PhaseProgress(day int, p Phase) PhaseProgressStatus {
	switch {
	case day == 0:
		if p.ID == phases[0].ID {
			return PhaseNotStarted
		}
		return PhaseUpcoming
	case day > p.EndDay:
		return PhaseCompleted
	case day < p.StartDay:
		return PhaseUpcoming
	default:
		return PhaseInProgress
	}
}
