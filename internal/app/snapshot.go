package app

import (
	"context"
	"fmt"
	"time"

	"github.com/stride-tracker/stride/internal/domain"
)

// SnapshotVersion defines a package constant value.
const SnapshotVersion = "stride.snapshot.v1"

// Snapshot represents snapshot data used by this package.
type Snapshot struct {
	Version           string                     `json:"version"`
	ExportedAt        time.Time                  `json:"exported_at"`
	OwnerID           string                     `json:"owner_id"`
	Tasks             []SnapshotTask             `json:"tasks"`
	Checklists        []SnapshotChecklist        `json:"checklists"`
	ChecklistItems    []SnapshotChecklistItem    `json:"checklist_items"`
	TeamMembers       []SnapshotTeamMember       `json:"team_members"`
	LearningResources []SnapshotLearningResource `json:"learning_resources"`
	KpiMetrics        []SnapshotKpiMetric        `json:"kpi_metrics"`
	Risks             []SnapshotRisk             `json:"risks"`
	FollowUps         []SnapshotFollowUp         `json:"follow_ups"`
	Assessments       []SnapshotAssessment       `json:"assessments"`
	Activities        []SnapshotActivity         `json:"activities"`
}

// SnapshotTask represents snapshot task data used by this package.
type SnapshotTask struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Priority    domain.Priority   `json:"priority"`
	Status      domain.TaskStatus `json:"status"`
	PhaseID     *int              `json:"phase_id,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SnapshotChecklist represents snapshot checklist data used by this package.
type SnapshotChecklist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SnapshotChecklistItem represents snapshot checklist item data used by this package.
type SnapshotChecklistItem struct {
	ID          string          `json:"id"`
	ChecklistID string          `json:"checklist_id"`
	Text        string          `json:"text"`
	Completed   bool            `json:"completed"`
	Priority    domain.Priority `json:"priority"`
	Order       int             `json:"order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SnapshotTeamMember represents snapshot team member data used by this package.
type SnapshotTeamMember struct {
	ID                string     `json:"id"`
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

// SnapshotLearningResource represents snapshot learning resource data used by this package.
type SnapshotLearningResource struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Type        domain.ResourceType   `json:"type"`
	URL         string                `json:"url,omitempty"`
	Status      domain.ResourceStatus `json:"status"`
	Progress    int                   `json:"progress"`
	StartedAt   *time.Time            `json:"started_at,omitempty"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	Notes       string                `json:"notes,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// SnapshotKpiMetric represents snapshot metric data used by this package.
type SnapshotKpiMetric struct {
	ID         string    `json:"id"`
	MetricType string    `json:"metric_type"`
	Value      float64   `json:"value"`
	Target     *float64  `json:"target,omitempty"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SnapshotRisk represents snapshot risk data used by this package.
type SnapshotRisk struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Category        string            `json:"category,omitempty"`
	Probability     domain.RiskLevel  `json:"probability"`
	Impact          domain.RiskLevel  `json:"impact"`
	Status          domain.RiskStatus `json:"status"`
	MitigationPlan  string            `json:"mitigation_plan,omitempty"`
	ContingencyPlan string            `json:"contingency_plan,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SnapshotFollowUp represents snapshot follow-up data used by this package.
type SnapshotFollowUp struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Assignee    string                `json:"assignee,omitempty"`
	Requester   string                `json:"requester,omitempty"`
	Person      string                `json:"person,omitempty"`
	Priority    domain.Priority       `json:"priority"`
	Status      domain.FollowUpStatus `json:"status"`
	DueDate     *time.Time            `json:"due_date,omitempty"`
	LastCheckIn *time.Time            `json:"last_check_in,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// SnapshotAssessment represents snapshot assessment data used by this package.
type SnapshotAssessment struct {
	ID                 string    `json:"id"`
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

// SnapshotActivity represents snapshot activity data used by this package.
type SnapshotActivity struct {
	Type        domain.ActivityType `json:"type"`
	Description string              `json:"description,omitempty"`
	EntityID    string              `json:"entity_id,omitempty"`
	EntityType  string              `json:"entity_type,omitempty"`
	Metadata    map[string]string   `json:"metadata,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ExportSnapshot handles export snapshot.
func (s *Service) ExportSnapshot(ctx context.Context, ownerID string) (Snapshot, error) {
	snap := Snapshot{
		Version:           SnapshotVersion,
		ExportedAt:        s.clock().UTC(),
		OwnerID:           ownerID,
		Tasks:             make([]SnapshotTask, 0),
		Checklists:        make([]SnapshotChecklist, 0),
		ChecklistItems:    make([]SnapshotChecklistItem, 0),
		TeamMembers:       make([]SnapshotTeamMember, 0),
		LearningResources: make([]SnapshotLearningResource, 0),
		KpiMetrics:        make([]SnapshotKpiMetric, 0),
		Risks:             make([]SnapshotRisk, 0),
		FollowUps:         make([]SnapshotFollowUp, 0),
		Assessments:       make([]SnapshotAssessment, 0),
		Activities:        make([]SnapshotActivity, 0),
	}

	tasks, err := s.ListTasks(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, task := range tasks {
		snap.Tasks = append(snap.Tasks, SnapshotTask{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Priority:    task.Priority,
			Status:      task.Status,
			PhaseID:     task.PhaseID,
			DueDate:     task.DueDate,
			CompletedAt: task.CompletedAt,
			Notes:       task.Notes,
			CreatedAt:   task.CreatedAt,
			UpdatedAt:   task.UpdatedAt,
		})
	}

	checklists, err := s.ListChecklists(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, checklist := range checklists {
		snap.Checklists = append(snap.Checklists, SnapshotChecklist{
			ID:          checklist.ID,
			Name:        checklist.Name,
			Description: checklist.Description,
			CreatedAt:   checklist.CreatedAt,
			UpdatedAt:   checklist.UpdatedAt,
		})
		items, listErr := s.ListChecklistItems(ctx, checklist.ID)
		if listErr != nil {
			return Snapshot{}, listErr
		}
		for _, item := range items {
			snap.ChecklistItems = append(snap.ChecklistItems, SnapshotChecklistItem{
				ID:          item.ID,
				ChecklistID: item.ChecklistID,
				Text:        item.Text,
				Completed:   item.Completed,
				Priority:    item.Priority,
				Order:       item.Order,
				CreatedAt:   item.CreatedAt,
				UpdatedAt:   item.UpdatedAt,
			})
		}
	}

	members, err := s.ListTeamMembers(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, member := range members {
		snap.TeamMembers = append(snap.TeamMembers, SnapshotTeamMember{
			ID:                member.ID,
			Name:              member.Name,
			Role:              member.Role,
			Email:             member.Email,
			Strengths:         member.Strengths,
			ImprovementAreas:  member.ImprovementAreas,
			CareerGoals:       member.CareerGoals,
			LastOneOnOne:      member.LastOneOnOne,
			NextOneOnOne:      member.NextOneOnOne,
			SatisfactionScore: member.SatisfactionScore,
			CreatedAt:         member.CreatedAt,
			UpdatedAt:         member.UpdatedAt,
		})
	}

	resources, err := s.ListLearningResources(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, res := range resources {
		snap.LearningResources = append(snap.LearningResources, SnapshotLearningResource{
			ID:          res.ID,
			Title:       res.Title,
			Type:        res.Type,
			URL:         res.URL,
			Status:      res.Status,
			Progress:    res.Progress,
			StartedAt:   res.StartedAt,
			CompletedAt: res.CompletedAt,
			Notes:       res.Notes,
			CreatedAt:   res.CreatedAt,
			UpdatedAt:   res.UpdatedAt,
		})
	}

	metrics, err := s.ListKpiMetrics(ctx, ownerID, "")
	if err != nil {
		return Snapshot{}, err
	}
	for _, metric := range metrics {
		snap.KpiMetrics = append(snap.KpiMetrics, SnapshotKpiMetric{
			ID:         metric.ID,
			MetricType: metric.MetricType,
			Value:      metric.Value,
			Target:     metric.Target,
			Unit:       metric.Unit,
			RecordedAt: metric.RecordedAt,
			Notes:      metric.Notes,
			CreatedAt:  metric.CreatedAt,
		})
	}

	risks, err := s.ListRisks(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, risk := range risks {
		snap.Risks = append(snap.Risks, SnapshotRisk{
			ID:              risk.ID,
			Title:           risk.Title,
			Description:     risk.Description,
			Category:        risk.Category,
			Probability:     risk.Probability,
			Impact:          risk.Impact,
			Status:          risk.Status,
			MitigationPlan:  risk.MitigationPlan,
			ContingencyPlan: risk.ContingencyPlan,
			CreatedAt:       risk.CreatedAt,
			UpdatedAt:       risk.UpdatedAt,
		})
	}

	followUps, err := s.ListFollowUps(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, followUp := range followUps {
		snap.FollowUps = append(snap.FollowUps, SnapshotFollowUp{
			ID:          followUp.ID,
			Title:       followUp.Title,
			Assignee:    followUp.Assignee,
			Requester:   followUp.Requester,
			Person:      followUp.Person,
			Priority:    followUp.Priority,
			Status:      followUp.Status,
			DueDate:     followUp.DueDate,
			LastCheckIn: followUp.LastCheckIn,
			CreatedAt:   followUp.CreatedAt,
			UpdatedAt:   followUp.UpdatedAt,
		})
	}

	assessments, err := s.ListAssessments(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, assessment := range assessments {
		snap.Assessments = append(snap.Assessments, SnapshotAssessment{
			ID:                 assessment.ID,
			WeekStart:          assessment.WeekStart,
			LeadershipNotes:    assessment.LeadershipNotes,
			TeamSupportNotes:   assessment.TeamSupportNotes,
			StrategyNotes:      assessment.StrategyNotes,
			CommunicationNotes: assessment.CommunicationNotes,
			ImprovementAreas:   assessment.ImprovementAreas,
			OverallRating:      assessment.OverallRating,
			CreatedAt:          assessment.CreatedAt,
			UpdatedAt:          assessment.UpdatedAt,
		})
	}

	activities, err := s.repo.ListActivities(ctx, ownerID, 0)
	if err != nil {
		return Snapshot{}, err
	}
	// Oldest first so import re-appends in original order.
	for i := len(activities) - 1; i >= 0; i-- {
		event := activities[i]
		snap.Activities = append(snap.Activities, SnapshotActivity{
			Type:        event.Type,
			Description: event.Description,
			EntityID:    event.EntityID,
			EntityType:  event.EntityType,
			Metadata:    event.Metadata,
			CreatedAt:   event.CreatedAt,
		})
	}

	return snap, nil
}

// ImportSnapshot replaces the owner's state with the snapshot contents.
// The existing state is reset first; entity rows are restored verbatim
// and the activity log is re-appended in its original order.
func (s *Service) ImportSnapshot(ctx context.Context, ownerID string, snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("%w: unsupported snapshot version %q", domain.ErrValidation, snap.Version)
	}
	if err := s.ResetOwner(ctx, ownerID); err != nil {
		return err
	}

	for _, st := range snap.Tasks {
		task := domain.Task{
			ID:          st.ID,
			OwnerID:     ownerID,
			Title:       st.Title,
			Description: st.Description,
			Priority:    st.Priority,
			Status:      st.Status,
			PhaseID:     st.PhaseID,
			DueDate:     st.DueDate,
			CompletedAt: st.CompletedAt,
			Notes:       st.Notes,
			CreatedAt:   st.CreatedAt,
			UpdatedAt:   st.UpdatedAt,
		}
		if err := s.repo.CreateTask(ctx, task, domain.Activity{}); err != nil {
			return fmt.Errorf("import task %q: %w", st.ID, err)
		}
	}

	for _, sc := range snap.Checklists {
		checklist := domain.Checklist{
			ID:          sc.ID,
			OwnerID:     ownerID,
			Name:        sc.Name,
			Description: sc.Description,
			CreatedAt:   sc.CreatedAt,
			UpdatedAt:   sc.UpdatedAt,
		}
		if err := s.repo.CreateChecklist(ctx, checklist, domain.Activity{}); err != nil {
			return fmt.Errorf("import checklist %q: %w", sc.ID, err)
		}
	}
	for _, si := range snap.ChecklistItems {
		item := domain.ChecklistItem{
			ID:          si.ID,
			ChecklistID: si.ChecklistID,
			Text:        si.Text,
			Completed:   si.Completed,
			Priority:    si.Priority,
			Order:       si.Order,
			CreatedAt:   si.CreatedAt,
			UpdatedAt:   si.UpdatedAt,
		}
		if err := s.repo.CreateChecklistItem(ctx, item); err != nil {
			return fmt.Errorf("import checklist item %q: %w", si.ID, err)
		}
	}

	for _, sm := range snap.TeamMembers {
		member := domain.TeamMember{
			ID:                sm.ID,
			OwnerID:           ownerID,
			Name:              sm.Name,
			Role:              sm.Role,
			Email:             sm.Email,
			Strengths:         sm.Strengths,
			ImprovementAreas:  sm.ImprovementAreas,
			CareerGoals:       sm.CareerGoals,
			LastOneOnOne:      sm.LastOneOnOne,
			NextOneOnOne:      sm.NextOneOnOne,
			SatisfactionScore: sm.SatisfactionScore,
			CreatedAt:         sm.CreatedAt,
			UpdatedAt:         sm.UpdatedAt,
		}
		if err := s.repo.CreateTeamMember(ctx, member, domain.Activity{}); err != nil {
			return fmt.Errorf("import team member %q: %w", sm.ID, err)
		}
	}

	for _, sr := range snap.LearningResources {
		res := domain.LearningResource{
			ID:          sr.ID,
			OwnerID:     ownerID,
			Title:       sr.Title,
			Type:        sr.Type,
			URL:         sr.URL,
			Status:      sr.Status,
			Progress:    sr.Progress,
			StartedAt:   sr.StartedAt,
			CompletedAt: sr.CompletedAt,
			Notes:       sr.Notes,
			CreatedAt:   sr.CreatedAt,
			UpdatedAt:   sr.UpdatedAt,
		}
		if err := s.repo.CreateLearningResource(ctx, res, domain.Activity{}); err != nil {
			return fmt.Errorf("import learning resource %q: %w", sr.ID, err)
		}
	}

	for _, sk := range snap.KpiMetrics {
		metric := domain.KpiMetric{
			ID:         sk.ID,
			OwnerID:    ownerID,
			MetricType: sk.MetricType,
			Value:      sk.Value,
			Target:     sk.Target,
			Unit:       sk.Unit,
			RecordedAt: sk.RecordedAt,
			Notes:      sk.Notes,
			CreatedAt:  sk.CreatedAt,
		}
		if err := s.repo.CreateKpiMetric(ctx, metric, domain.Activity{}); err != nil {
			return fmt.Errorf("import metric %q: %w", sk.ID, err)
		}
	}

	for _, sr := range snap.Risks {
		risk := domain.Risk{
			ID:              sr.ID,
			OwnerID:         ownerID,
			Title:           sr.Title,
			Description:     sr.Description,
			Category:        sr.Category,
			Probability:     sr.Probability,
			Impact:          sr.Impact,
			Status:          sr.Status,
			MitigationPlan:  sr.MitigationPlan,
			ContingencyPlan: sr.ContingencyPlan,
			CreatedAt:       sr.CreatedAt,
			UpdatedAt:       sr.UpdatedAt,
		}
		if err := s.repo.CreateRisk(ctx, risk, domain.Activity{}); err != nil {
			return fmt.Errorf("import risk %q: %w", sr.ID, err)
		}
	}

	for _, sf := range snap.FollowUps {
		followUp := domain.FollowUp{
			ID:          sf.ID,
			OwnerID:     ownerID,
			Title:       sf.Title,
			Assignee:    sf.Assignee,
			Requester:   sf.Requester,
			Person:      sf.Person,
			Priority:    sf.Priority,
			Status:      sf.Status,
			DueDate:     sf.DueDate,
			LastCheckIn: sf.LastCheckIn,
			CreatedAt:   sf.CreatedAt,
			UpdatedAt:   sf.UpdatedAt,
		}
		if err := s.repo.CreateFollowUp(ctx, followUp, domain.Activity{}); err != nil {
			return fmt.Errorf("import follow-up %q: %w", sf.ID, err)
		}
	}

	for _, sa := range snap.Assessments {
		assessment := domain.Assessment{
			ID:                 sa.ID,
			OwnerID:            ownerID,
			WeekStart:          sa.WeekStart,
			LeadershipNotes:    sa.LeadershipNotes,
			TeamSupportNotes:   sa.TeamSupportNotes,
			StrategyNotes:      sa.StrategyNotes,
			CommunicationNotes: sa.CommunicationNotes,
			ImprovementAreas:   sa.ImprovementAreas,
			OverallRating:      sa.OverallRating,
			CreatedAt:          sa.CreatedAt,
			UpdatedAt:          sa.UpdatedAt,
		}
		if err := s.repo.CreateAssessment(ctx, assessment, domain.Activity{}); err != nil {
			return fmt.Errorf("import assessment %q: %w", sa.ID, err)
		}
	}

	for _, se := range snap.Activities {
		event := domain.Activity{
			OwnerID:     ownerID,
			Type:        se.Type,
			Description: se.Description,
			EntityID:    se.EntityID,
			EntityType:  se.EntityType,
			Metadata:    se.Metadata,
			CreatedAt:   se.CreatedAt,
		}
		if err := s.repo.AppendActivity(ctx, event); err != nil {
			return fmt.Errorf("import activity: %w", err)
		}
	}

	return nil
}
