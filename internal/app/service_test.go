package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stride-tracker/stride/internal/domain"
)

type fakeRepo struct {
	tasks          map[string]domain.Task
	checklists     map[string]domain.Checklist
	checklistItems map[string]domain.ChecklistItem
	teamMembers    map[string]domain.TeamMember
	resources      map[string]domain.LearningResource
	metrics        map[string]domain.KpiMetric
	risks          map[string]domain.Risk
	followUps      map[string]domain.FollowUp
	assessments    map[string]domain.Assessment
	activities     []domain.Activity
	nextActivityID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tasks:          map[string]domain.Task{},
		checklists:     map[string]domain.Checklist{},
		checklistItems: map[string]domain.ChecklistItem{},
		teamMembers:    map[string]domain.TeamMember{},
		resources:      map[string]domain.LearningResource{},
		metrics:        map[string]domain.KpiMetric{},
		risks:          map[string]domain.Risk{},
		followUps:      map[string]domain.FollowUp{},
		assessments:    map[string]domain.Assessment{},
	}
}

func (f *fakeRepo) appendEvent(event domain.Activity) {
	if event.Type == "" {
		return
	}
	f.nextActivityID++
	event.ID = f.nextActivityID
	f.activities = append(f.activities, event)
}

func (f *fakeRepo) CreateTask(_ context.Context, t domain.Task, event domain.Activity) error {
	f.tasks[t.ID] = t
	f.appendEvent(event)
	return nil
}

func (f *fakeRepo) UpdateTask(_ context.Context, t domain.Task, event *domain.Activity) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	f.tasks[t.ID] = t
	if event != nil {
		f.appendEvent(*event)
	}
	return nil
}

func (f *fakeRepo) GetTask(_ context.Context, id string) (domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) ListTasks(_ context.Context, ownerID string) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteTask(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeRepo) CreateChecklist(_ context.Context, c domain.Checklist, event domain.Activity) error {
	f.checklists[c.ID] = c
	f.appendEvent(event)
	return nil
}

func (f *fakeRepo) UpdateChecklist(_ context.Context, c domain.Checklist) error {
	if _, ok := f.checklists[c.ID]; !ok {
		return ErrNotFound
	}
	f.checklists[c.ID] = c
	return nil
}

func (f *fakeRepo) GetChecklist(_ context.Context, id string) (domain.Checklist, error) {
	c, ok := f.checklists[id]
	if !ok {
		return domain.Checklist{}, ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) ListChecklists(_ context.Context, ownerID string) ([]domain.Checklist, error) {
	out := make([]domain.Checklist, 0, len(f.checklists))
	for _, c := range f.checklists {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteChecklist(_ context.Context, id string) error {
	if _, ok := f.checklists[id]; !ok {
		return ErrNotFound
	}
	delete(f.checklists, id)
	for itemID, item := range f.checklistItems {
		if item.ChecklistID == id {
			delete(f.checklistItems, itemID)
		}
	}
	return nil
}

func (f *fakeRepo) CreateChecklistItem(_ context.Context, item domain.ChecklistItem) error {
	f.checklistItems[item.ID] = item
	return nil
}

func (f *fakeRepo) UpdateChecklistItem(_ context.Context, item domain.ChecklistItem) error {
	if _, ok := f.checklistItems[item.ID]; !ok {
		return ErrNotFound
	}
	f.checklistItems[item.ID] = item
	return nil
}

func (f *fakeRepo) GetChecklistItem(_ context.Context, id string) (domain.ChecklistItem, error) {
	item, ok := f.checklistItems[id]
	if !ok {
		return domain.ChecklistItem{}, ErrNotFound
	}
	return item, nil
}

func (f *fakeRepo) ListChecklistItems(_ context.Context, checklistID string) ([]domain.ChecklistItem, error) {
	out := make([]domain.ChecklistItem, 0, len(f.checklistItems))
	for _, item := range f.checklistItems {
		if item.ChecklistID == checklistID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteChecklistItem(_ context.Context, id string) error {
	if _, ok := f.checklistItems[id]; !ok {
		return ErrNotFound
	}
	delete(f.checklistItems, id)
	return nil
}

func (f *fakeRepo) UpdateChecklistItemOrders(_ context.Context, items []domain.ChecklistItem) error {
	for _, item := range items {
		if _, ok := f.checklistItems[item.ID]; !ok {
			return ErrNotFound
		}
		f.checklistItems[item.ID] = item
	}
	return nil
}

func (f *fakeRepo) CreateTeamMember(_ context.Context, m domain.TeamMember, event domain.Activity) error {
	f.teamMembers[m.ID] = m
	f.appendEvent(event)
	return nil
}

func (f *fakeRepo) UpdateTeamMember(_ context.Context, m domain.TeamMember) error {
	if _, ok := f.teamMembers[m.ID]; !ok {
		return ErrNotFound
	}
	f.teamMembers[m.ID] = m
	return nil
}

func (f *fakeRepo) GetTeamMember(_ context.Context, id string) (domain.TeamMember, error) {
	m, ok := f.teamMembers[id]
	if !ok {
		return domain.TeamMember{}, ErrNotFound
	}
	return m, nil
}

func (f *fakeRepo) ListTeamMembers(_ context.Context, ownerID string) ([]domain.TeamMember, error) {
	out := make([]domain.TeamMember, 0, len(f.teamMembers))
	for _, m := range f.teamMembers {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteTeamMember(_ context.Context, id string) error {
	if _, ok := f.teamMembers[id]; !ok {
		return ErrNotFound
	}
	delete(f.teamMembers, id)
	return nil
}

func (f *fakeRepo) CreateLearningResource(_ context.Context, r domain.LearningResource, event domain.Activity) error {
	f.resources[r.ID] = r
	f.appendEvent(event)
	return nil
}

func (f *fakeRepo) UpdateLearningResource(_ context.Context, r domain.LearningResource, event *domain.Activity) error {
	if _, ok := f.resources[r.ID]; !ok {
		return ErrNotFound
	}
	f.resources[r.ID] = r
	if event != nil {
		f.appendEvent(*event)
	}
	return nil
}

func (f *fakeRepo) GetLearningResource(_ context.Context, id string) (domain.LearningResource, error) {
	r, ok := f.resources[id]
	if !ok {
		return domain.LearningResource{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListLearningResources(_ context.Context, ownerID string) ([]domain.LearningResource, error) {
	out := make([]domain.LearningResource, 0, len(f.resources))
	for _, r := range f.resources {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteLearningResource(_ context.Context, id string) error {
	if _, ok := f.resources[id]; !ok {
		return ErrNotFound
	}
	delete(f.resources, id)
	return nil
}

func (f *fakeRepo) CreateKpiMetric(_ context.Context, m domain.KpiMetric, event domain.Activity) error {
	f.metrics[m.ID] = m
	f.appendEvent(event)
	return nil
}

func (f *fakeRepo) ListKpiMetrics(_ context.Context, ownerID, metricType string) ([]domain.KpiMetric, error) {
	out := make([]domain.KpiMetric, 0, len(f.metrics))
	for _, m := range f.metrics {
		if m.OwnerID != ownerID {
			continue
		}
		if metricType != "" && m.MetricType != metricType {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepo) DeleteKpiMetric(_ context.Context, id string) error {
	if _, ok := f.metrics[id]; !ok {
		return ErrNotFound
	}
	delete(f.metrics, id)
	return nil
}

func (f *fakeRepo) CreateRisk(_ context.Context, r domain.Risk, event domain.Activity) error {
	f.risks[r.ID] = r
	f.appendEvent(event)
	return nil
}

func (f *fakeRepo) UpdateRisk(_ context.Context, r domain.Risk) error {
	if _, ok := f.risks[r.ID]; !ok {
		return ErrNotFound
	}
	f.risks[r.ID] = r
	return nil
}

func (f *fakeRepo) GetRisk(_ context.Context, id string) (domain.Risk, error) {
	r, ok := f.risks[id]
	if !ok {
		return domain.Risk{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListRisks(_ context.Context, ownerID string) ([]domain.Risk, error) {
	out := make([]domain.Risk, 0, len(f.risks))
	for _, r := range f.risks {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteRisk(_ context.Context, id string) error {
	if _, ok := f.risks[id]; !ok {
		return ErrNotFound
	}
	delete(f.risks, id)
	return nil
}

func (f *fakeRepo) CreateFollowUp(_ context.Context, fu domain.FollowUp, event domain.Activity) error {
	f.followUps[fu.ID] = fu
	f.appendEvent(event)
	return nil
}

func (f *fakeRepo) UpdateFollowUp(_ context.Context, fu domain.FollowUp, event *domain.Activity) error {
	if _, ok := f.followUps[fu.ID]; !ok {
		return ErrNotFound
	}
	f.followUps[fu.ID] = fu
	if event != nil {
		f.appendEvent(*event)
	}
	return nil
}

func (f *fakeRepo) GetFollowUp(_ context.Context, id string) (domain.FollowUp, error) {
	fu, ok := f.followUps[id]
	if !ok {
		return domain.FollowUp{}, ErrNotFound
	}
	return fu, nil
}

func (f *fakeRepo) ListFollowUps(_ context.Context, ownerID string) ([]domain.FollowUp, error) {
	out := make([]domain.FollowUp, 0, len(f.followUps))
	for _, fu := range f.followUps {
		if fu.OwnerID == ownerID {
			out = append(out, fu)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteFollowUp(_ context.Context, id string) error {
	if _, ok := f.followUps[id]; !ok {
		return ErrNotFound
	}
	delete(f.followUps, id)
	return nil
}

func (f *fakeRepo) CreateAssessment(_ context.Context, a domain.Assessment, event domain.Activity) error {
	f.assessments[a.ID] = a
	f.appendEvent(event)
	return nil
}

func (f *fakeRepo) UpdateAssessment(_ context.Context, a domain.Assessment) error {
	if _, ok := f.assessments[a.ID]; !ok {
		return ErrNotFound
	}
	f.assessments[a.ID] = a
	return nil
}

func (f *fakeRepo) GetAssessment(_ context.Context, id string) (domain.Assessment, error) {
	a, ok := f.assessments[id]
	if !ok {
		return domain.Assessment{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) ListAssessments(_ context.Context, ownerID string) ([]domain.Assessment, error) {
	out := make([]domain.Assessment, 0, len(f.assessments))
	for _, a := range f.assessments {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteAssessment(_ context.Context, id string) error {
	if _, ok := f.assessments[id]; !ok {
		return ErrNotFound
	}
	delete(f.assessments, id)
	return nil
}

func (f *fakeRepo) AppendActivity(_ context.Context, event domain.Activity) error {
	f.nextActivityID++
	event.ID = f.nextActivityID
	f.activities = append(f.activities, event)
	return nil
}

func (f *fakeRepo) ListActivities(_ context.Context, ownerID string, limit int) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0, len(f.activities))
	for i := len(f.activities) - 1; i >= 0; i-- {
		if f.activities[i].OwnerID != ownerID {
			continue
		}
		out = append(out, f.activities[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) LatestActivityOfType(_ context.Context, ownerID string, typ domain.ActivityType) (domain.Activity, error) {
	for i := len(f.activities) - 1; i >= 0; i-- {
		if f.activities[i].OwnerID == ownerID && f.activities[i].Type == typ {
			return f.activities[i], nil
		}
	}
	return domain.Activity{}, ErrNotFound
}

func (f *fakeRepo) ResetOwner(_ context.Context, ownerID string) error {
	for id, t := range f.tasks {
		if t.OwnerID == ownerID {
			delete(f.tasks, id)
		}
	}
	for id, c := range f.checklists {
		if c.OwnerID != ownerID {
			continue
		}
		for itemID, item := range f.checklistItems {
			if item.ChecklistID == id {
				delete(f.checklistItems, itemID)
			}
		}
		delete(f.checklists, id)
	}
	for id, m := range f.teamMembers {
		if m.OwnerID == ownerID {
			delete(f.teamMembers, id)
		}
	}
	for id, r := range f.resources {
		if r.OwnerID == ownerID {
			delete(f.resources, id)
		}
	}
	for id, m := range f.metrics {
		if m.OwnerID == ownerID {
			delete(f.metrics, id)
		}
	}
	for id, r := range f.risks {
		if r.OwnerID == ownerID {
			delete(f.risks, id)
		}
	}
	for id, fu := range f.followUps {
		if fu.OwnerID == ownerID {
			delete(f.followUps, id)
		}
	}
	for id, a := range f.assessments {
		if a.OwnerID == ownerID {
			delete(f.assessments, id)
		}
	}
	kept := f.activities[:0]
	for _, event := range f.activities {
		if event.OwnerID != ownerID {
			kept = append(kept, event)
		}
	}
	f.activities = kept
	return nil
}

func newTestService(repo Repository) *Service {
	idCounter := 0
	return NewService(repo, func() string {
		idCounter++
		return fmt.Sprintf("id-%d", idCounter)
	}, func() time.Time {
		return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	}, nil)
}

const testOwner = "u1"

func TestCreateTaskRecordsActivity(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{OwnerID: testOwner, Title: "Map the on-call rotation"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if task.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(repo.activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(repo.activities))
	}
	event := repo.activities[0]
	if event.Type != domain.ActivityTaskCreated || event.EntityID != task.ID {
		t.Fatalf("unexpected activity %#v", event)
	}
	if event.Description != "Created task: Map the on-call rotation" {
		t.Fatalf("unexpected description %q", event.Description)
	}
}

func TestUpdateTaskCompletionTransition(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{OwnerID: testOwner, Title: "Ship migration"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	updated, err := svc.UpdateTask(context.Background(), UpdateTaskInput{
		TaskID:   task.ID,
		Title:    task.Title,
		Priority: task.Priority,
		Status:   domain.TaskStatusCompleted,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("expected completed_at set")
	}
	if len(repo.activities) != 2 || repo.activities[1].Type != domain.ActivityTaskCompleted {
		t.Fatalf("expected task_completed event, got %#v", repo.activities)
	}

	// Saving an already-completed task again must not double-log.
	if _, err := svc.UpdateTask(context.Background(), UpdateTaskInput{
		TaskID:   task.ID,
		Title:    "Ship migration (done)",
		Priority: task.Priority,
		Status:   domain.TaskStatusCompleted,
	}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if len(repo.activities) != 2 {
		t.Fatalf("expected no extra completion event, got %d activities", len(repo.activities))
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())
	_, err := svc.UpdateTask(context.Background(), UpdateTaskInput{TaskID: "missing", Title: "x", Priority: domain.PriorityLow, Status: domain.TaskStatusPending})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTaskMissingIsError(t *testing.T) {
	svc := newTestService(newFakeRepo())
	if err := svc.DeleteTask(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpcomingTasksOrdering(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	soon := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateTask(ctx, CreateTaskInput{OwnerID: testOwner, Title: "no due", Priority: domain.PriorityHigh}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err := svc.CreateTask(ctx, CreateTaskInput{OwnerID: testOwner, Title: "later low", DueDate: &later, Priority: domain.PriorityLow}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err := svc.CreateTask(ctx, CreateTaskInput{OwnerID: testOwner, Title: "soon", DueDate: &soon, Priority: domain.PriorityMedium}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	done, err := svc.CreateTask(ctx, CreateTaskInput{OwnerID: testOwner, Title: "done", DueDate: &soon})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err := svc.UpdateTask(ctx, UpdateTaskInput{TaskID: done.ID, Title: done.Title, Priority: done.Priority, Status: domain.TaskStatusCompleted}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	upcoming, err := svc.UpcomingTasks(ctx, testOwner, 0)
	if err != nil {
		t.Fatalf("UpcomingTasks() error = %v", err)
	}
	if len(upcoming) != 3 {
		t.Fatalf("expected 3 open tasks, got %d", len(upcoming))
	}
	if upcoming[0].Title != "soon" || upcoming[1].Title != "later low" || upcoming[2].Title != "no due" {
		t.Fatalf("unexpected ordering: %q, %q, %q", upcoming[0].Title, upcoming[1].Title, upcoming[2].Title)
	}
}

func TestLearningResourceCompletionActivity(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	res, err := svc.CreateLearningResource(ctx, domain.LearningResourceInput{
		OwnerID: testOwner,
		Title:   "Accelerate",
		Type:    domain.ResourceBook,
	})
	if err != nil {
		t.Fatalf("CreateLearningResource() error = %v", err)
	}
	if _, err := svc.UpdateLearningResource(ctx, res.ID, domain.LearningResourceInput{
		Title:  res.Title,
		Type:   res.Type,
		Status: domain.ResourceCompleted,
	}); err != nil {
		t.Fatalf("UpdateLearningResource() error = %v", err)
	}
	if len(repo.activities) != 2 || repo.activities[1].Type != domain.ActivityLearningCompleted {
		t.Fatalf("expected learning_completed event, got %#v", repo.activities)
	}
}

func TestFollowUpCompletionActivity(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	followUp, err := svc.CreateFollowUp(ctx, domain.FollowUpInput{OwnerID: testOwner, Title: "Budget approval"})
	if err != nil {
		t.Fatalf("CreateFollowUp() error = %v", err)
	}
	if _, err := svc.UpdateFollowUp(ctx, followUp.ID, domain.FollowUpInput{
		Title:    followUp.Title,
		Priority: followUp.Priority,
		Status:   domain.FollowUpCompleted,
	}); err != nil {
		t.Fatalf("UpdateFollowUp() error = %v", err)
	}
	if len(repo.activities) != 2 || repo.activities[1].Type != domain.ActivityFollowUpCompleted {
		t.Fatalf("expected follow_up_completed event, got %#v", repo.activities)
	}
}

func TestRecentActivitiesLimit(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, err := svc.CreateTask(ctx, CreateTaskInput{OwnerID: testOwner, Title: fmt.Sprintf("task %d", i)}); err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
	}
	events, err := svc.RecentActivities(ctx, testOwner, 0)
	if err != nil {
		t.Fatalf("RecentActivities() error = %v", err)
	}
	if len(events) != DefaultActivityLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultActivityLimit, len(events))
	}
	if events[0].Description != "Created task: task 24" {
		t.Fatalf("expected newest first, got %q", events[0].Description)
	}
}

func TestResetOwnerClearsActivities(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, CreateTaskInput{OwnerID: testOwner, Title: "x"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err := svc.AdvanceProgress(ctx, testOwner, 10); err != nil {
		t.Fatalf("AdvanceProgress() error = %v", err)
	}
	if err := svc.ResetOwner(ctx, testOwner); err != nil {
		t.Fatalf("ResetOwner() error = %v", err)
	}
	day, err := svc.CurrentDay(ctx, testOwner)
	if err != nil {
		t.Fatalf("CurrentDay() error = %v", err)
	}
	if day != 0 {
		t.Fatalf("expected day 0 after reset, got %d", day)
	}
	events, err := svc.RecentActivities(ctx, testOwner, 10)
	if err != nil {
		t.Fatalf("RecentActivities() error = %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty log after reset, got %d entries", len(events))
	}
}
