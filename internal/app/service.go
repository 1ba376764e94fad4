package app

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stride-tracker/stride/internal/domain"
)

// Entity type labels recorded on activity-log entries.
const (
	EntityTask             = "task"
	EntityChecklist        = "checklist"
	EntityTeamMember       = "team_member"
	EntityLearningResource = "learning_resource"
	EntityKpiMetric        = "kpi_metric"
	EntityRisk             = "risk"
	EntityFollowUp         = "follow_up"
	EntityAssessment       = "assessment"
)

// DefaultActivityLimit bounds recent-activity reads when no limit is given.
const DefaultActivityLimit = 20

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service represents service data used by this package.
type Service struct {
	repo   Repository
	idGen  IDGenerator
	clock  Clock
	logger *log.Logger
}

// NewService constructs a new value for this package.
func NewService(repo Repository, idGen IDGenerator, clock Clock, logger *log.Logger) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		repo:   repo,
		idGen:  idGen,
		clock:  clock,
		logger: logger,
	}
}

// activity builds an activity-log entry stamped with the service clock.
func (s *Service) activity(ownerID string, typ domain.ActivityType, description, entityID, entityType string) (domain.Activity, error) {
	return domain.NewActivity(domain.ActivityInput{
		OwnerID:     ownerID,
		Type:        typ,
		Description: description,
		EntityID:    entityID,
		EntityType:  entityType,
	}, s.clock())
}

// CreateTaskInput holds input values for create task operations.
type CreateTaskInput struct {
	OwnerID     string
	Title       string
	Description string
	Priority    domain.Priority
	Status      domain.TaskStatus
	PhaseID     *int
	DueDate     *time.Time
	Notes       string
}

// CreateTask creates task and records the matching activity entry.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (domain.Task, error) {
	task, err := domain.NewTask(domain.TaskInput{
		ID:          s.idGen(),
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		PhaseID:     in.PhaseID,
		DueDate:     in.DueDate,
		Notes:       in.Notes,
	}, s.clock())
	if err != nil {
		return domain.Task{}, err
	}
	event, err := s.activity(task.OwnerID, domain.ActivityTaskCreated, "Created task: "+task.Title, task.ID, EntityTask)
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, task, event); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTaskInput holds input values for update task operations.
type UpdateTaskInput struct {
	TaskID      string
	Title       string
	Description string
	Priority    domain.Priority
	Status      domain.TaskStatus
	PhaseID     *int
	DueDate     *time.Time
	Notes       string
}

// UpdateTask updates state for the requested operation. A transition into
// completed appends a task_completed activity atomically with the write.
func (s *Service) UpdateTask(ctx context.Context, in UpdateTaskInput) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, in.TaskID)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Status == domain.TaskStatusCompleted
	if err := task.UpdateDetails(in.Title, in.Description, in.Priority, in.DueDate, in.PhaseID, in.Notes, s.clock()); err != nil {
		return domain.Task{}, err
	}
	if err := task.SetStatus(in.Status, s.clock()); err != nil {
		return domain.Task{}, err
	}

	var event *domain.Activity
	if !wasCompleted && task.Status == domain.TaskStatusCompleted {
		completed, actErr := s.activity(task.OwnerID, domain.ActivityTaskCompleted, "Completed task: "+task.Title, task.ID, EntityTask)
		if actErr != nil {
			return domain.Task{}, actErr
		}
		event = &completed
	}
	if err := s.repo.UpdateTask(ctx, task, event); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// GetTask gets task.
func (s *Service) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	return s.repo.GetTask(ctx, taskID)
}

// ListTasks lists tasks for an owner, newest first.
func (s *Service) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(tasks, func(a, b domain.Task) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return tasks, nil
}

// DeleteTask deletes task.
func (s *Service) DeleteTask(ctx context.Context, taskID string) error {
	return s.repo.DeleteTask(ctx, taskID)
}

// UpcomingTasks lists open tasks ordered by due date, then priority.
// Tasks without a due date sort last.
func (s *Service) UpcomingTasks(ctx context.Context, ownerID string, limit int) ([]domain.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	open := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status != domain.TaskStatusCompleted {
			open = append(open, task)
		}
	}
	slices.SortFunc(open, func(a, b domain.Task) int {
		switch {
		case a.DueDate == nil && b.DueDate != nil:
			return 1
		case a.DueDate != nil && b.DueDate == nil:
			return -1
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Compare(*b.DueDate)
		}
		if pa, pb := priorityRank(a.Priority), priorityRank(b.Priority); pa != pb {
			return pa - pb
		}
		return strings.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}
	return open, nil
}

func priorityRank(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 0
	case domain.PriorityMedium:
		return 1
	default:
		return 2
	}
}

// CreateTeamMember creates team member.
func (s *Service) CreateTeamMember(ctx context.Context, in domain.TeamMemberInput) (domain.TeamMember, error) {
	in.ID = s.idGen()
	member, err := domain.NewTeamMember(in, s.clock())
	if err != nil {
		return domain.TeamMember{}, err
	}
	event, err := s.activity(member.OwnerID, domain.ActivityTeamMemberAdded, "Added team member: "+member.Name, member.ID, EntityTeamMember)
	if err != nil {
		return domain.TeamMember{}, err
	}
	if err := s.repo.CreateTeamMember(ctx, member, event); err != nil {
		return domain.TeamMember{}, err
	}
	return member, nil
}

// UpdateTeamMember updates state for the requested operation.
func (s *Service) UpdateTeamMember(ctx context.Context, memberID string, in domain.TeamMemberInput) (domain.TeamMember, error) {
	member, err := s.repo.GetTeamMember(ctx, memberID)
	if err != nil {
		return domain.TeamMember{}, err
	}
	if err := member.Update(in, s.clock()); err != nil {
		return domain.TeamMember{}, err
	}
	if err := s.repo.UpdateTeamMember(ctx, member); err != nil {
		return domain.TeamMember{}, err
	}
	return member, nil
}

// GetTeamMember gets team member.
func (s *Service) GetTeamMember(ctx context.Context, memberID string) (domain.TeamMember, error) {
	return s.repo.GetTeamMember(ctx, memberID)
}

// ListTeamMembers lists team members.
func (s *Service) ListTeamMembers(ctx context.Context, ownerID string) ([]domain.TeamMember, error) {
	members, err := s.repo.ListTeamMembers(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(members, func(a, b domain.TeamMember) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return members, nil
}

// DeleteTeamMember deletes team member.
func (s *Service) DeleteTeamMember(ctx context.Context, memberID string) error {
	return s.repo.DeleteTeamMember(ctx, memberID)
}

// CreateLearningResource creates learning resource.
func (s *Service) CreateLearningResource(ctx context.Context, in domain.LearningResourceInput) (domain.LearningResource, error) {
	in.ID = s.idGen()
	res, err := domain.NewLearningResource(in, s.clock())
	if err != nil {
		return domain.LearningResource{}, err
	}
	event, err := s.activity(res.OwnerID, domain.ActivityLearningAdded, "Added learning resource: "+res.Title, res.ID, EntityLearningResource)
	if err != nil {
		return domain.LearningResource{}, err
	}
	if err := s.repo.CreateLearningResource(ctx, res, event); err != nil {
		return domain.LearningResource{}, err
	}
	return res, nil
}

// UpdateLearningResource updates state for the requested operation.
func (s *Service) UpdateLearningResource(ctx context.Context, resourceID string, in domain.LearningResourceInput) (domain.LearningResource, error) {
	res, err := s.repo.GetLearningResource(ctx, resourceID)
	if err != nil {
		return domain.LearningResource{}, err
	}
	wasCompleted := res.Status == domain.ResourceCompleted
	if err := res.Update(in, s.clock()); err != nil {
		return domain.LearningResource{}, err
	}
	var event *domain.Activity
	if !wasCompleted && res.Status == domain.ResourceCompleted {
		completed, actErr := s.activity(res.OwnerID, domain.ActivityLearningCompleted, "Completed learning resource: "+res.Title, res.ID, EntityLearningResource)
		if actErr != nil {
			return domain.LearningResource{}, actErr
		}
		event = &completed
	}
	if err := s.repo.UpdateLearningResource(ctx, res, event); err != nil {
		return domain.LearningResource{}, err
	}
	return res, nil
}

// GetLearningResource gets learning resource.
func (s *Service) GetLearningResource(ctx context.Context, resourceID string) (domain.LearningResource, error) {
	return s.repo.GetLearningResource(ctx, resourceID)
}

// ListLearningResources lists learning resources.
func (s *Service) ListLearningResources(ctx context.Context, ownerID string) ([]domain.LearningResource, error) {
	resources, err := s.repo.ListLearningResources(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(resources, func(a, b domain.LearningResource) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return resources, nil
}

// DeleteLearningResource deletes learning resource.
func (s *Service) DeleteLearningResource(ctx context.Context, resourceID string) error {
	return s.repo.DeleteLearningResource(ctx, resourceID)
}

// RecordKpiMetric appends one metric reading.
func (s *Service) RecordKpiMetric(ctx context.Context, in domain.KpiMetricInput) (domain.KpiMetric, error) {
	in.ID = s.idGen()
	metric, err := domain.NewKpiMetric(in, s.clock())
	if err != nil {
		return domain.KpiMetric{}, err
	}
	event, err := s.activity(metric.OwnerID, domain.ActivityMetricRecorded, "Recorded metric: "+metric.MetricType, metric.ID, EntityKpiMetric)
	if err != nil {
		return domain.KpiMetric{}, err
	}
	if err := s.repo.CreateKpiMetric(ctx, metric, event); err != nil {
		return domain.KpiMetric{}, err
	}
	return metric, nil
}

// ListKpiMetrics lists metric readings, newest first, optionally filtered
// by metric type.
func (s *Service) ListKpiMetrics(ctx context.Context, ownerID, metricType string) ([]domain.KpiMetric, error) {
	metrics, err := s.repo.ListKpiMetrics(ctx, ownerID, strings.TrimSpace(metricType))
	if err != nil {
		return nil, err
	}
	slices.SortFunc(metrics, func(a, b domain.KpiMetric) int {
		if !a.RecordedAt.Equal(b.RecordedAt) {
			return b.RecordedAt.Compare(a.RecordedAt)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return metrics, nil
}

// DeleteKpiMetric deletes one metric reading.
func (s *Service) DeleteKpiMetric(ctx context.Context, metricID string) error {
	return s.repo.DeleteKpiMetric(ctx, metricID)
}

// CreateRisk creates risk.
func (s *Service) CreateRisk(ctx context.Context, in domain.RiskInput) (domain.Risk, error) {
	in.ID = s.idGen()
	risk, err := domain.NewRisk(in, s.clock())
	if err != nil {
		return domain.Risk{}, err
	}
	event, err := s.activity(risk.OwnerID, domain.ActivityRiskIdentified, "Identified risk: "+risk.Title, risk.ID, EntityRisk)
	if err != nil {
		return domain.Risk{}, err
	}
	if err := s.repo.CreateRisk(ctx, risk, event); err != nil {
		return domain.Risk{}, err
	}
	return risk, nil
}

// UpdateRisk updates state for the requested operation.
func (s *Service) UpdateRisk(ctx context.Context, riskID string, in domain.RiskInput) (domain.Risk, error) {
	risk, err := s.repo.GetRisk(ctx, riskID)
	if err != nil {
		return domain.Risk{}, err
	}
	if err := risk.Update(in, s.clock()); err != nil {
		return domain.Risk{}, err
	}
	if err := s.repo.UpdateRisk(ctx, risk); err != nil {
		return domain.Risk{}, err
	}
	return risk, nil
}

// GetRisk gets risk.
func (s *Service) GetRisk(ctx context.Context, riskID string) (domain.Risk, error) {
	return s.repo.GetRisk(ctx, riskID)
}

// ListRisks lists risks.
func (s *Service) ListRisks(ctx context.Context, ownerID string) ([]domain.Risk, error) {
	risks, err := s.repo.ListRisks(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(risks, func(a, b domain.Risk) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return risks, nil
}

// DeleteRisk deletes risk.
func (s *Service) DeleteRisk(ctx context.Context, riskID string) error {
	return s.repo.DeleteRisk(ctx, riskID)
}

// CreateFollowUp creates follow-up.
func (s *Service) CreateFollowUp(ctx context.Context, in domain.FollowUpInput) (domain.FollowUp, error) {
	in.ID = s.idGen()
	followUp, err := domain.NewFollowUp(in, s.clock())
	if err != nil {
		return domain.FollowUp{}, err
	}
	event, err := s.activity(followUp.OwnerID, domain.ActivityFollowUpCreated, "Created follow-up: "+followUp.Title, followUp.ID, EntityFollowUp)
	if err != nil {
		return domain.FollowUp{}, err
	}
	if err := s.repo.CreateFollowUp(ctx, followUp, event); err != nil {
		return domain.FollowUp{}, err
	}
	return followUp, nil
}

// UpdateFollowUp updates state for the requested operation.
func (s *Service) UpdateFollowUp(ctx context.Context, followUpID string, in domain.FollowUpInput) (domain.FollowUp, error) {
	followUp, err := s.repo.GetFollowUp(ctx, followUpID)
	if err != nil {
		return domain.FollowUp{}, err
	}
	wasCompleted := followUp.Status == domain.FollowUpCompleted
	if err := followUp.Update(in, s.clock()); err != nil {
		return domain.FollowUp{}, err
	}
	var event *domain.Activity
	if !wasCompleted && followUp.Status == domain.FollowUpCompleted {
		completed, actErr := s.activity(followUp.OwnerID, domain.ActivityFollowUpCompleted, "Completed follow-up: "+followUp.Title, followUp.ID, EntityFollowUp)
		if actErr != nil {
			return domain.FollowUp{}, actErr
		}
		event = &completed
	}
	if err := s.repo.UpdateFollowUp(ctx, followUp, event); err != nil {
		return domain.FollowUp{}, err
	}
	return followUp, nil
}

// GetFollowUp gets follow-up.
func (s *Service) GetFollowUp(ctx context.Context, followUpID string) (domain.FollowUp, error) {
	return s.repo.GetFollowUp(ctx, followUpID)
}

// ListFollowUps lists follow-ups.
func (s *Service) ListFollowUps(ctx context.Context, ownerID string) ([]domain.FollowUp, error) {
	followUps, err := s.repo.ListFollowUps(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(followUps, func(a, b domain.FollowUp) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return followUps, nil
}

// DeleteFollowUp deletes follow-up.
func (s *Service) DeleteFollowUp(ctx context.Context, followUpID string) error {
	return s.repo.DeleteFollowUp(ctx, followUpID)
}

// RecordAssessment creates a weekly self-assessment.
func (s *Service) RecordAssessment(ctx context.Context, in domain.AssessmentInput) (domain.Assessment, error) {
	in.ID = s.idGen()
	assessment, err := domain.NewAssessment(in, s.clock())
	if err != nil {
		return domain.Assessment{}, err
	}
	event, err := s.activity(assessment.OwnerID, domain.ActivityAssessmentRecorded, "Recorded weekly assessment", assessment.ID, EntityAssessment)
	if err != nil {
		return domain.Assessment{}, err
	}
	if err := s.repo.CreateAssessment(ctx, assessment, event); err != nil {
		return domain.Assessment{}, err
	}
	return assessment, nil
}

// UpdateAssessment updates state for the requested operation.
func (s *Service) UpdateAssessment(ctx context.Context, assessmentID string, in domain.AssessmentInput) (domain.Assessment, error) {
	assessment, err := s.repo.GetAssessment(ctx, assessmentID)
	if err != nil {
		return domain.Assessment{}, err
	}
	if err := assessment.Update(in, s.clock()); err != nil {
		return domain.Assessment{}, err
	}
	if err := s.repo.UpdateAssessment(ctx, assessment); err != nil {
		return domain.Assessment{}, err
	}
	return assessment, nil
}

// ListAssessments lists assessments, most recent week first.
func (s *Service) ListAssessments(ctx context.Context, ownerID string) ([]domain.Assessment, error) {
	assessments, err := s.repo.ListAssessments(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(assessments, func(a, b domain.Assessment) int {
		if !a.WeekStart.Equal(b.WeekStart) {
			return b.WeekStart.Compare(a.WeekStart)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return assessments, nil
}

// DeleteAssessment deletes assessment.
func (s *Service) DeleteAssessment(ctx context.Context, assessmentID string) error {
	return s.repo.DeleteAssessment(ctx, assessmentID)
}

// RecentActivities lists the newest activity-log entries for an owner.
func (s *Service) RecentActivities(ctx context.Context, ownerID string, limit int) ([]domain.Activity, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, domain.ErrInvalidOwnerID
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return s.repo.ListActivities(ctx, ownerID, limit)
}

// ResetOwner deletes every record belonging to an owner, activity log
// included. This is the only operation that removes activity entries.
func (s *Service) ResetOwner(ctx context.Context, ownerID string) error {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return domain.ErrInvalidOwnerID
	}
	return s.repo.ResetOwner(ctx, ownerID)
}
