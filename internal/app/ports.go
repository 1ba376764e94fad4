package app

import (
	"context"

	"github.com/stride-tracker/stride/internal/domain"
)

// Repository represents repository data used by this package.
//
// Create and status-transition methods that carry a domain.Activity must
// persist the entity write and the activity row atomically. A nil event
// pointer or a zero-value event (empty Type) means no activity is
// recorded for that write.
type Repository interface {
	CreateTask(context.Context, domain.Task, domain.Activity) error
	UpdateTask(context.Context, domain.Task, *domain.Activity) error
	GetTask(context.Context, string) (domain.Task, error)
	ListTasks(context.Context, string) ([]domain.Task, error)
	DeleteTask(context.Context, string) error

	CreateChecklist(context.Context, domain.Checklist, domain.Activity) error
	UpdateChecklist(context.Context, domain.Checklist) error
	GetChecklist(context.Context, string) (domain.Checklist, error)
	ListChecklists(context.Context, string) ([]domain.Checklist, error)
	DeleteChecklist(context.Context, string) error

	CreateChecklistItem(context.Context, domain.ChecklistItem) error
	UpdateChecklistItem(context.Context, domain.ChecklistItem) error
	GetChecklistItem(context.Context, string) (domain.ChecklistItem, error)
	ListChecklistItems(context.Context, string) ([]domain.ChecklistItem, error)
	DeleteChecklistItem(context.Context, string) error
	UpdateChecklistItemOrders(context.Context, []domain.ChecklistItem) error

	CreateTeamMember(context.Context, domain.TeamMember, domain.Activity) error
	UpdateTeamMember(context.Context, domain.TeamMember) error
	GetTeamMember(context.Context, string) (domain.TeamMember, error)
	ListTeamMembers(context.Context, string) ([]domain.TeamMember, error)
	DeleteTeamMember(context.Context, string) error

	CreateLearningResource(context.Context, domain.LearningResource, domain.Activity) error
	UpdateLearningResource(context.Context, domain.LearningResource, *domain.Activity) error
	GetLearningResource(context.Context, string) (domain.LearningResource, error)
	ListLearningResources(context.Context, string) ([]domain.LearningResource, error)
	DeleteLearningResource(context.Context, string) error

	CreateKpiMetric(context.Context, domain.KpiMetric, domain.Activity) error
	ListKpiMetrics(context.Context, string, string) ([]domain.KpiMetric, error)
	DeleteKpiMetric(context.Context, string) error

	CreateRisk(context.Context, domain.Risk, domain.Activity) error
	UpdateRisk(context.Context, domain.Risk) error
	GetRisk(context.Context, string) (domain.Risk, error)
	ListRisks(context.Context, string) ([]domain.Risk, error)
	DeleteRisk(context.Context, string) error

	CreateFollowUp(context.Context, domain.FollowUp, domain.Activity) error
	UpdateFollowUp(context.Context, domain.FollowUp, *domain.Activity) error
	GetFollowUp(context.Context, string) (domain.FollowUp, error)
	ListFollowUps(context.Context, string) ([]domain.FollowUp, error)
	DeleteFollowUp(context.Context, string) error

	CreateAssessment(context.Context, domain.Assessment, domain.Activity) error
	UpdateAssessment(context.Context, domain.Assessment) error
	GetAssessment(context.Context, string) (domain.Assessment, error)
	ListAssessments(context.Context, string) ([]domain.Assessment, error)
	DeleteAssessment(context.Context, string) error

	AppendActivity(context.Context, domain.Activity) error
	ListActivities(context.Context, string, int) ([]domain.Activity, error)
	LatestActivityOfType(context.Context, string, domain.ActivityType) (domain.Activity, error)

	ResetOwner(context.Context, string) error
}
