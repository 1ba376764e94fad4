// Package httpapi provides the REST HTTP adapter for the tracker service.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stride-tracker/stride/internal/app"
	"github.com/stride-tracker/stride/internal/domain"
)

// maxRequestBodyBytes limits decoded JSON payload size for fail-closed request handling.
const maxRequestBodyBytes int64 = 1 << 20

// Handler serves the versioned API subrouter mounted under `/api/v1`.
type Handler struct {
	svc *app.Service
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler constructs one HTTP API adapter over the tracker service.
func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		writeJSONError(w, http.StatusServiceUnavailable, APIError{
			Code:    "service_unavailable",
			Message: "tracker service is not configured",
		})
		return
	}

	head, rest := shiftPath(normalizePath(r.URL.Path))
	switch head {
	case "tasks":
		h.routeTasks(w, r, rest)
	case "checklists":
		h.routeChecklists(w, r, rest)
	case "checklist-items":
		h.routeChecklistItems(w, r, rest)
	case "team-members":
		h.routeTeamMembers(w, r, rest)
	case "learning-resources":
		h.routeLearningResources(w, r, rest)
	case "metrics":
		h.routeMetrics(w, r, rest)
	case "risks":
		h.routeRisks(w, r, rest)
	case "follow-ups":
		h.routeFollowUps(w, r, rest)
	case "assessments":
		h.routeAssessments(w, r, rest)
	case "progress":
		h.routeProgress(w, r, rest)
	case "dashboard":
		h.routeDashboard(w, r, rest)
	case "phases":
		h.routePhases(w, r, rest)
	case "activities":
		h.routeActivities(w, r, rest)
	case "snapshot":
		h.routeSnapshot(w, r, rest)
	default:
		writeEndpointNotFound(w)
	}
}

// taskRequest is the JSON shape shared by task create and update.
type taskRequest struct {
	OwnerID     string     `json:"owner_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	PhaseID     *int       `json:"phase_id"`
	DueDate     *time.Time `json:"due_date"`
	Notes       string     `json:"notes"`
}

// routeTasks serves `/tasks` and `/tasks/{id}`.
func (h *Handler) routeTasks(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			ownerID := r.URL.Query().Get("owner_id")
			if upcoming := r.URL.Query().Get("upcoming"); upcoming != "" {
				limit, err := strconv.Atoi(upcoming)
				if err != nil {
					writeJSONError(w, http.StatusBadRequest, APIError{
						Code:    "invalid_request",
						Message: "upcoming must be an integer",
					})
					return
				}
				tasks, err := h.svc.UpcomingTasks(r.Context(), ownerID, limit)
				if err != nil {
					writeErrorFrom(w, err)
					return
				}
				writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
				return
			}
			tasks, err := h.svc.ListTasks(r.Context(), ownerID)
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
		case http.MethodPost:
			var req taskRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			task, err := h.svc.CreateTask(r.Context(), app.CreateTaskInput{
				OwnerID:     req.OwnerID,
				Title:       req.Title,
				Description: req.Description,
				Priority:    domain.Priority(req.Priority),
				Status:      domain.TaskStatus(req.Status),
				PhaseID:     req.PhaseID,
				DueDate:     req.DueDate,
				Notes:       req.Notes,
			})
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, task)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	id, tail := shiftPath(rest)
	if tail != "" {
		writeEndpointNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		task, err := h.svc.GetTask(r.Context(), id)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	case http.MethodPut:
		var req taskRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		task, err := h.svc.UpdateTask(r.Context(), app.UpdateTaskInput{
			TaskID:      id,
			Title:       req.Title,
			Description: req.Description,
			Priority:    domain.Priority(req.Priority),
			Status:      domain.TaskStatus(req.Status),
			PhaseID:     req.PhaseID,
			DueDate:     req.DueDate,
			Notes:       req.Notes,
		})
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	case http.MethodDelete:
		if err := h.svc.DeleteTask(r.Context(), id); err != nil {
			writeErrorFrom(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// checklistRequest is the JSON shape shared by checklist create and update.
type checklistRequest struct {
	OwnerID     string `json:"owner_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// checklistItemRequest is the JSON shape for item create and update.
type checklistItemRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

// reorderRequest names item ids in their new front-to-back order.
type reorderRequest struct {
	ItemIDs []string `json:"item_ids"`
}

// routeChecklists serves `/checklists`, `/checklists/{id}`, `/checklists/{id}/items`,
// and `/checklists/{id}/reorder`.
func (h *Handler) routeChecklists(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			checklists, err := h.svc.ListChecklists(r.Context(), r.URL.Query().Get("owner_id"))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"checklists": checklists})
		case http.MethodPost:
			var req checklistRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			checklist, err := h.svc.CreateChecklist(r.Context(), req.OwnerID, req.Name, req.Description)
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, checklist)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	id, tail := shiftPath(rest)
	switch tail {
	case "":
		switch r.Method {
		case http.MethodGet:
			checklist, err := h.svc.GetChecklist(r.Context(), id)
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, checklist)
		case http.MethodPut:
			var req checklistRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			checklist, err := h.svc.UpdateChecklist(r.Context(), id, req.Name, req.Description)
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, checklist)
		case http.MethodDelete:
			if err := h.svc.DeleteChecklist(r.Context(), id); err != nil {
				writeErrorFrom(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	case "items":
		switch r.Method {
		case http.MethodGet:
			items, err := h.svc.ListChecklistItems(r.Context(), id)
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"items": items})
		case http.MethodPost:
			var req checklistItemRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			item, err := h.svc.AddChecklistItem(r.Context(), id, req.Text, domain.Priority(req.Priority))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, item)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	case "reorder":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		var req reorderRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		items, err := h.svc.ReorderChecklistItems(r.Context(), id, req.ItemIDs)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	default:
		writeEndpointNotFound(w)
	}
}

// routeChecklistItems serves `/checklist-items/{id}` and `/checklist-items/{id}/toggle`.
func (h *Handler) routeChecklistItems(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		writeEndpointNotFound(w)
		return
	}
	id, tail := shiftPath(rest)
	switch tail {
	case "":
		switch r.Method {
		case http.MethodPut:
			var req checklistItemRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			item, err := h.svc.UpdateChecklistItem(r.Context(), id, req.Text, domain.Priority(req.Priority))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, item)
		case http.MethodDelete:
			if err := h.svc.DeleteChecklistItem(r.Context(), id); err != nil {
				writeErrorFrom(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeMethodNotAllowed(w, http.MethodPut, http.MethodDelete)
		}
	case "toggle":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		item, err := h.svc.ToggleChecklistItem(r.Context(), id)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	default:
		writeEndpointNotFound(w)
	}
}

// teamMemberRequest is the JSON shape shared by member create and update.
type teamMemberRequest struct {
	OwnerID           string     `json:"owner_id,omitempty"`
	Name              string     `json:"name"`
	Role              string     `json:"role"`
	Email             string     `json:"email"`
	Strengths         string     `json:"strengths"`
	ImprovementAreas  string     `json:"improvement_areas"`
	CareerGoals       string     `json:"career_goals"`
	LastOneOnOne      *time.Time `json:"last_one_on_one"`
	NextOneOnOne      *time.Time `json:"next_one_on_one"`
	SatisfactionScore *float64   `json:"satisfaction_score"`
}

// memberInput converts the wire shape into the domain input.
func (req teamMemberRequest) memberInput() domain.TeamMemberInput {
	return domain.TeamMemberInput{
		OwnerID:           req.OwnerID,
		Name:              req.Name,
		Role:              req.Role,
		Email:             req.Email,
		Strengths:         req.Strengths,
		ImprovementAreas:  req.ImprovementAreas,
		CareerGoals:       req.CareerGoals,
		LastOneOnOne:      req.LastOneOnOne,
		NextOneOnOne:      req.NextOneOnOne,
		SatisfactionScore: req.SatisfactionScore,
	}
}

// routeTeamMembers serves `/team-members` and `/team-members/{id}`.
func (h *Handler) routeTeamMembers(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			members, err := h.svc.ListTeamMembers(r.Context(), r.URL.Query().Get("owner_id"))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"team_members": members})
		case http.MethodPost:
			var req teamMemberRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			member, err := h.svc.CreateTeamMember(r.Context(), req.memberInput())
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, member)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	id, tail := shiftPath(rest)
	if tail != "" {
		writeEndpointNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		member, err := h.svc.GetTeamMember(r.Context(), id)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, member)
	case http.MethodPut:
		var req teamMemberRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		member, err := h.svc.UpdateTeamMember(r.Context(), id, req.memberInput())
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, member)
	case http.MethodDelete:
		if err := h.svc.DeleteTeamMember(r.Context(), id); err != nil {
			writeErrorFrom(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// learningResourceRequest is the JSON shape shared by resource create and update.
type learningResourceRequest struct {
	OwnerID  string `json:"owner_id,omitempty"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Notes    string `json:"notes"`
}

// resourceInput converts the wire shape into the domain input.
func (req learningResourceRequest) resourceInput() domain.LearningResourceInput {
	return domain.LearningResourceInput{
		OwnerID:  req.OwnerID,
		Title:    req.Title,
		Type:     domain.ResourceType(req.Type),
		URL:      req.URL,
		Status:   domain.ResourceStatus(req.Status),
		Progress: req.Progress,
		Notes:    req.Notes,
	}
}

// routeLearningResources serves `/learning-resources` and `/learning-resources/{id}`.
func (h *Handler) routeLearningResources(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			resources, err := h.svc.ListLearningResources(r.Context(), r.URL.Query().Get("owner_id"))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"learning_resources": resources})
		case http.MethodPost:
			var req learningResourceRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			resource, err := h.svc.CreateLearningResource(r.Context(), req.resourceInput())
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, resource)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	id, tail := shiftPath(rest)
	if tail != "" {
		writeEndpointNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		resource, err := h.svc.GetLearningResource(r.Context(), id)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resource)
	case http.MethodPut:
		var req learningResourceRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		resource, err := h.svc.UpdateLearningResource(r.Context(), id, req.resourceInput())
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resource)
	case http.MethodDelete:
		if err := h.svc.DeleteLearningResource(r.Context(), id); err != nil {
			writeErrorFrom(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// metricRequest is the JSON shape for recording one metric reading.
type metricRequest struct {
	OwnerID    string     `json:"owner_id,omitempty"`
	MetricType string     `json:"metric_type"`
	Value      float64    `json:"value"`
	Target     *float64   `json:"target"`
	Unit       string     `json:"unit"`
	RecordedAt *time.Time `json:"recorded_at"`
	Notes      string     `json:"notes"`
}

// routeMetrics serves `/metrics` and `/metrics/{id}`.
func (h *Handler) routeMetrics(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			metrics, err := h.svc.ListKpiMetrics(r.Context(), r.URL.Query().Get("owner_id"), r.URL.Query().Get("metric_type"))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"metrics": metrics})
		case http.MethodPost:
			var req metricRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			metric, err := h.svc.RecordKpiMetric(r.Context(), domain.KpiMetricInput{
				OwnerID:    req.OwnerID,
				MetricType: req.MetricType,
				Value:      req.Value,
				Target:     req.Target,
				Unit:       req.Unit,
				RecordedAt: req.RecordedAt,
				Notes:      req.Notes,
			})
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, metric)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	id, tail := shiftPath(rest)
	if tail != "" {
		writeEndpointNotFound(w)
		return
	}
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, http.MethodDelete)
		return
	}
	if err := h.svc.DeleteKpiMetric(r.Context(), id); err != nil {
		writeErrorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// riskRequest is the JSON shape shared by risk create and update.
type riskRequest struct {
	OwnerID         string `json:"owner_id,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Probability     string `json:"probability"`
	Impact          string `json:"impact"`
	Status          string `json:"status"`
	MitigationPlan  string `json:"mitigation_plan"`
	ContingencyPlan string `json:"contingency_plan"`
}

// riskInput converts the wire shape into the domain input.
func (req riskRequest) riskInput() domain.RiskInput {
	return domain.RiskInput{
		OwnerID:         req.OwnerID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Probability:     domain.RiskLevel(req.Probability),
		Impact:          domain.RiskLevel(req.Impact),
		Status:          domain.RiskStatus(req.Status),
		MitigationPlan:  req.MitigationPlan,
		ContingencyPlan: req.ContingencyPlan,
	}
}

// routeRisks serves `/risks` and `/risks/{id}`.
func (h *Handler) routeRisks(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			risks, err := h.svc.ListRisks(r.Context(), r.URL.Query().Get("owner_id"))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"risks": risks})
		case http.MethodPost:
			var req riskRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			risk, err := h.svc.CreateRisk(r.Context(), req.riskInput())
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, risk)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	id, tail := shiftPath(rest)
	if tail != "" {
		writeEndpointNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		risk, err := h.svc.GetRisk(r.Context(), id)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, risk)
	case http.MethodPut:
		var req riskRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		risk, err := h.svc.UpdateRisk(r.Context(), id, req.riskInput())
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, risk)
	case http.MethodDelete:
		if err := h.svc.DeleteRisk(r.Context(), id); err != nil {
			writeErrorFrom(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// followUpRequest is the JSON shape shared by follow-up create and update.
type followUpRequest struct {
	OwnerID     string     `json:"owner_id,omitempty"`
	Title       string     `json:"title"`
	Assignee    string     `json:"assignee"`
	Requester   string     `json:"requester"`
	Person      string     `json:"person"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	LastCheckIn *time.Time `json:"last_check_in"`
}

// followUpInput converts the wire shape into the domain input.
func (req followUpRequest) followUpInput() domain.FollowUpInput {
	return domain.FollowUpInput{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Assignee:    req.Assignee,
		Requester:   req.Requester,
		Person:      req.Person,
		Priority:    domain.Priority(req.Priority),
		Status:      domain.FollowUpStatus(req.Status),
		DueDate:     req.DueDate,
		LastCheckIn: req.LastCheckIn,
	}
}

// routeFollowUps serves `/follow-ups` and `/follow-ups/{id}`.
func (h *Handler) routeFollowUps(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			followUps, err := h.svc.ListFollowUps(r.Context(), r.URL.Query().Get("owner_id"))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"follow_ups": followUps})
		case http.MethodPost:
			var req followUpRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			followUp, err := h.svc.CreateFollowUp(r.Context(), req.followUpInput())
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, followUp)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	id, tail := shiftPath(rest)
	if tail != "" {
		writeEndpointNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		followUp, err := h.svc.GetFollowUp(r.Context(), id)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, followUp)
	case http.MethodPut:
		var req followUpRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		followUp, err := h.svc.UpdateFollowUp(r.Context(), id, req.followUpInput())
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, followUp)
	case http.MethodDelete:
		if err := h.svc.DeleteFollowUp(r.Context(), id); err != nil {
			writeErrorFrom(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// assessmentRequest is the JSON shape shared by assessment create and update.
type assessmentRequest struct {
	OwnerID            string    `json:"owner_id,omitempty"`
	WeekStart          time.Time `json:"week_start"`
	LeadershipNotes    string    `json:"leadership_notes"`
	TeamSupportNotes   string    `json:"team_support_notes"`
	StrategyNotes      string    `json:"strategy_notes"`
	CommunicationNotes string    `json:"communication_notes"`
	ImprovementAreas   string    `json:"improvement_areas"`
	OverallRating      int       `json:"overall_rating"`
}

// assessmentInput converts the wire shape into the domain input.
func (req assessmentRequest) assessmentInput() domain.AssessmentInput {
	return domain.AssessmentInput{
		OwnerID:            req.OwnerID,
		WeekStart:          req.WeekStart,
		LeadershipNotes:    req.LeadershipNotes,
		TeamSupportNotes:   req.TeamSupportNotes,
		StrategyNotes:      req.StrategyNotes,
		CommunicationNotes: req.CommunicationNotes,
		ImprovementAreas:   req.ImprovementAreas,
		OverallRating:      req.OverallRating,
	}
}

// routeAssessments serves `/assessments` and `/assessments/{id}`.
func (h *Handler) routeAssessments(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			assessments, err := h.svc.ListAssessments(r.Context(), r.URL.Query().Get("owner_id"))
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"assessments": assessments})
		case http.MethodPost:
			var req assessmentRequest
			if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
				writeErrorFrom(w, err)
				return
			}
			assessment, err := h.svc.RecordAssessment(r.Context(), req.assessmentInput())
			if err != nil {
				writeErrorFrom(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, assessment)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	id, tail := shiftPath(rest)
	if tail != "" {
		writeEndpointNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var req assessmentRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		assessment, err := h.svc.UpdateAssessment(r.Context(), id, req.assessmentInput())
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, assessment)
	case http.MethodDelete:
		if err := h.svc.DeleteAssessment(r.Context(), id); err != nil {
			writeErrorFrom(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}

// progressRequest is the JSON shape for advancing the current day.
type progressRequest struct {
	OwnerID string `json:"owner_id,omitempty"`
	Day     int    `json:"day"`
}

// routeProgress serves GET and POST `/progress`.
func (h *Handler) routeProgress(w http.ResponseWriter, r *http.Request, rest string) {
	if rest != "" {
		writeEndpointNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		day, err := h.svc.CurrentDay(r.Context(), r.URL.Query().Get("owner_id"))
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"current_day": day})
	case http.MethodPost:
		var req progressRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		day, err := h.svc.AdvanceProgress(r.Context(), req.OwnerID, req.Day)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"current_day": day})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// routeDashboard serves GET `/dashboard/stats`.
func (h *Handler) routeDashboard(w http.ResponseWriter, r *http.Request, rest string) {
	if rest != "stats" {
		writeEndpointNotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	stats, err := h.svc.DashboardStats(r.Context(), r.URL.Query().Get("owner_id"))
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// routePhases serves GET `/phases`.
func (h *Handler) routePhases(w http.ResponseWriter, r *http.Request, rest string) {
	if rest != "" {
		writeEndpointNotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"phases": domain.Phases()})
}

// routeActivities serves GET `/activities`.
func (h *Handler) routeActivities(w http.ResponseWriter, r *http.Request, rest string) {
	if rest != "" {
		writeEndpointNotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, APIError{
				Code:    "invalid_request",
				Message: "limit must be an integer",
			})
			return
		}
		limit = parsed
	}
	activities, err := h.svc.RecentActivities(r.Context(), r.URL.Query().Get("owner_id"), limit)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": activities})
}

// importRequest wraps one snapshot import payload.
type importRequest struct {
	OwnerID  string       `json:"owner_id"`
	Snapshot app.Snapshot `json:"snapshot"`
}

// routeSnapshot serves GET `/snapshot/export` and POST `/snapshot/import`.
func (h *Handler) routeSnapshot(w http.ResponseWriter, r *http.Request, rest string) {
	switch rest {
	case "export":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		snap, err := h.svc.ExportSnapshot(r.Context(), r.URL.Query().Get("owner_id"))
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case "import":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		var req importRequest
		if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
			writeErrorFrom(w, err)
			return
		}
		if err := h.svc.ImportSnapshot(r.Context(), req.OwnerID, req.Snapshot); err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"imported": true})
	default:
		writeEndpointNotFound(w)
	}
}

// shiftPath splits one leading path segment from the remainder.
func shiftPath(path string) (string, string) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", ""
	}
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[:idx], path[idx+1:]
	}
	return path, ""
}

// normalizePath canonicalizes one request path for route matching.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, "/")
	return path
}

// writeErrorFrom maps service errors into structured HTTP responses.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "unknown error",
		})
	case errors.Is(err, app.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: err.Error(),
		})
	}
}

// writeEndpointNotFound writes the structured 404 for unmatched routes.
func writeEndpointNotFound(w http.ResponseWriter) {
	writeJSONError(w, http.StatusNotFound, APIError{
		Code:    "not_found",
		Message: "endpoint not found",
	})
}

// writeMethodNotAllowed writes a structured 405 response with `Allow` headers.
func writeMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	if len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}

// writeJSONError writes one structured error envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

// writeJSON writes one JSON response envelope.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"encode_error","message":"%s"}}`, err.Error()), http.StatusInternalServerError)
	}
}

// decodeJSONBody decodes one required JSON request body with strict shape checks.
func decodeJSONBody(ctx context.Context, w http.ResponseWriter, r *http.Request, out any) error {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer reader.Close()

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %w", errors.Join(domain.ErrValidation, err))
	}
	// Reject trailing payloads so malformed JSON bodies fail closed.
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request body: trailing content: %w", domain.ErrValidation)
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("request canceled: %w", ctx.Err())
	default:
		return nil
	}
}
