package app

import (
	"context"
	"math"

	"github.com/stride-tracker/stride/internal/domain"
)

// PhaseStatus describes one phase row in the dashboard phase overview.
type PhaseStatus struct {
	Phase      domain.Phase               `json:"phase"`
	Status     domain.PhaseProgressStatus `json:"status"`
	PercentPct float64                    `json:"percent_pct"`
}

// DashboardStats is the on-demand aggregation over every collection.
// Nothing here is materialized; each call recomputes from live data.
type DashboardStats struct {
	CurrentDay          int                        `json:"current_day"`
	OverallProgressPct  int                        `json:"overall_progress_pct"`
	CurrentPhase        domain.Phase               `json:"current_phase"`
	CurrentPhaseStatus  domain.PhaseProgressStatus `json:"current_phase_status"`
	CurrentPhasePct     float64                    `json:"current_phase_pct"`
	Phases              []PhaseStatus              `json:"phases"`
	TotalTasks          int                        `json:"total_tasks"`
	TasksCompleted      int                        `json:"tasks_completed"`
	TeamMembers         int                        `json:"team_members"`
	TeamSatisfactionAvg *float64                   `json:"team_satisfaction_avg"`
	LearningResources   int                        `json:"learning_resources"`
	LearningProgressAvg *float64                   `json:"learning_progress_avg"`
	ActiveRisks         int                        `json:"active_risks"`
	OpenFollowUps       int                        `json:"open_follow_ups"`
}

// DashboardStats aggregates the owner's current state. Averages are nil
// when no inputs exist; members without a satisfaction score are excluded
// from the team average rather than counted as zero.
func (s *Service) DashboardStats(ctx context.Context, ownerID string) (DashboardStats, error) {
	day, err := s.CurrentDay(ctx, ownerID)
	if err != nil {
		return DashboardStats{}, err
	}

	tasks, err := s.repo.ListTasks(ctx, ownerID)
	if err != nil {
		return DashboardStats{}, err
	}
	members, err := s.repo.ListTeamMembers(ctx, ownerID)
	if err != nil {
		return DashboardStats{}, err
	}
	resources, err := s.repo.ListLearningResources(ctx, ownerID)
	if err != nil {
		return DashboardStats{}, err
	}
	risks, err := s.repo.ListRisks(ctx, ownerID)
	if err != nil {
		return DashboardStats{}, err
	}
	followUps, err := s.repo.ListFollowUps(ctx, ownerID)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		CurrentDay:         day,
		OverallProgressPct: int(math.Round(float64(day) / float64(domain.TotalDays) * 100)),
		TotalTasks:         len(tasks),
		TeamMembers:        len(members),
		LearningResources:  len(resources),
	}

	phase, err := domain.PhaseForDay(day)
	if err != nil {
		return DashboardStats{}, err
	}
	stats.CurrentPhase = phase
	stats.CurrentPhaseStatus = domain.PhaseProgress(day, phase)
	stats.CurrentPhasePct = domain.PercentWithinPhase(day, phase)
	for _, p := range domain.Phases() {
		stats.Phases = append(stats.Phases, PhaseStatus{
			Phase:      p,
			Status:     domain.PhaseProgress(day, p),
			PercentPct: domain.PercentWithinPhase(day, p),
		})
	}

	for _, task := range tasks {
		if task.Status == domain.TaskStatusCompleted {
			stats.TasksCompleted++
		}
	}

	var satisfactionSum float64
	scored := 0
	for _, member := range members {
		if member.SatisfactionScore == nil {
			continue
		}
		satisfactionSum += *member.SatisfactionScore
		scored++
	}
	if scored > 0 {
		avg := satisfactionSum / float64(scored)
		stats.TeamSatisfactionAvg = &avg
	}

	if len(resources) > 0 {
		var progressSum float64
		for _, res := range resources {
			progressSum += float64(res.Progress)
		}
		avg := progressSum / float64(len(resources))
		stats.LearningProgressAvg = &avg
	}

	for _, risk := range risks {
		if risk.Status == domain.RiskActive {
			stats.ActiveRisks++
		}
	}
	for _, followUp := range followUps {
		if followUp.Status != domain.FollowUpCompleted {
			stats.OpenFollowUps++
		}
	}

	return stats, nil
}
