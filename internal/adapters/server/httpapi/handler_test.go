package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stride-tracker/stride/internal/adapters/storage/sqlite"
	"github.com/stride-tracker/stride/internal/app"
	"github.com/stride-tracker/stride/internal/domain"
)

// newTestHandler builds one handler over a sqlite-backed service in a temp dir.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	repo, err := sqlite.Open(filepath.Join(t.TempDir(), "stride.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	counter := 0
	idGen := func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
	clock := func() time.Time {
		counter++
		return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC).Add(time.Duration(counter) * time.Second)
	}
	return NewHandler(app.NewService(repo, idGen, clock, nil))
}

// doJSON performs one request against the handler and decodes the response body.
func doJSON(t *testing.T, h *Handler, method, path, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s response: %v\nbody: %s", method, path, err, rec.Body.String())
		}
	}
	return rec
}

func TestTaskEndpoints(t *testing.T) {
	h := newTestHandler(t)

	var created domain.Task
	rec := doJSON(t, h, http.MethodPost, "/tasks", `{"owner_id":"u1","title":"Ship the report","priority":"high"}`, &created)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /tasks status = %d, body %s", rec.Code, rec.Body.String())
	}
	if created.Title != "Ship the report" || created.Priority != domain.PriorityHigh {
		t.Fatalf("unexpected created task %#v", created)
	}

	var listed struct {
		Tasks []domain.Task `json:"tasks"`
	}
	rec = doJSON(t, h, http.MethodGet, "/tasks?owner_id=u1", "", &listed)
	if rec.Code != http.StatusOK || len(listed.Tasks) != 1 {
		t.Fatalf("GET /tasks status = %d, tasks = %d", rec.Code, len(listed.Tasks))
	}

	var updated domain.Task
	rec = doJSON(t, h, http.MethodPut, "/tasks/"+created.ID, `{"title":"Ship the report","priority":"high","status":"completed"}`, &updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /tasks/{id} status = %d, body %s", rec.Code, rec.Body.String())
	}
	if updated.Status != domain.TaskStatusCompleted || updated.CompletedAt == nil {
		t.Fatalf("expected completed task, got %#v", updated)
	}

	rec = doJSON(t, h, http.MethodDelete, "/tasks/"+created.ID, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE /tasks/{id} status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/tasks/"+created.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestTaskValidationReturns400(t *testing.T) {
	h := newTestHandler(t)

	var envelope ErrorEnvelope
	rec := doJSON(t, h, http.MethodPost, "/tasks", `{"owner_id":"u1","title":"   "}`, &envelope)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", rec.Code, rec.Body.String())
	}
	if envelope.Error.Code != "invalid_request" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	h := newTestHandler(t)

	var envelope ErrorEnvelope
	rec := doJSON(t, h, http.MethodPost, "/tasks", `{"owner_id":"u1","title":"x","bogus":true}`, &envelope)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestChecklistReorderEndpoint(t *testing.T) {
	h := newTestHandler(t)

	var checklist domain.Checklist
	rec := doJSON(t, h, http.MethodPost, "/checklists", `{"owner_id":"u1","name":"Onboarding"}`, &checklist)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /checklists status = %d", rec.Code)
	}

	ids := make(map[string]string)
	for _, text := range []string{"A", "B", "C"} {
		var item domain.ChecklistItem
		rec = doJSON(t, h, http.MethodPost, "/checklists/"+checklist.ID+"/items", fmt.Sprintf(`{"text":%q}`, text), &item)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST items status = %d", rec.Code)
		}
		ids[text] = item.ID
	}

	var reordered struct {
		Items []domain.ChecklistItem `json:"items"`
	}
	body := fmt.Sprintf(`{"item_ids":[%q,%q]}`, ids["C"], ids["A"])
	rec = doJSON(t, h, http.MethodPost, "/checklists/"+checklist.ID+"/reorder", body, &reordered)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST reorder status = %d body %s", rec.Code, rec.Body.String())
	}
	want := []string{"C", "A", "B"}
	for i, item := range reordered.Items {
		if item.Text != want[i] || item.Order != i {
			t.Fatalf("position %d: got %q order %d, want %q order %d", i, item.Text, item.Order, want[i], i)
		}
	}
}

func TestChecklistItemToggleEndpoint(t *testing.T) {
	h := newTestHandler(t)

	var checklist domain.Checklist
	doJSON(t, h, http.MethodPost, "/checklists", `{"owner_id":"u1","name":"List"}`, &checklist)
	var item domain.ChecklistItem
	doJSON(t, h, http.MethodPost, "/checklists/"+checklist.ID+"/items", `{"text":"x"}`, &item)

	var toggled domain.ChecklistItem
	rec := doJSON(t, h, http.MethodPost, "/checklist-items/"+item.ID+"/toggle", "", &toggled)
	if rec.Code != http.StatusOK || !toggled.Completed {
		t.Fatalf("toggle status = %d completed = %v", rec.Code, toggled.Completed)
	}
	rec = doJSON(t, h, http.MethodPost, "/checklist-items/"+item.ID+"/toggle", "", &toggled)
	if rec.Code != http.StatusOK || toggled.Completed {
		t.Fatalf("second toggle should restore, got completed = %v", toggled.Completed)
	}
}

func TestProgressEndpoints(t *testing.T) {
	h := newTestHandler(t)

	var day struct {
		CurrentDay int `json:"current_day"`
	}
	rec := doJSON(t, h, http.MethodGet, "/progress?owner_id=u1", "", &day)
	if rec.Code != http.StatusOK || day.CurrentDay != 0 {
		t.Fatalf("fresh owner: status = %d day = %d", rec.Code, day.CurrentDay)
	}

	rec = doJSON(t, h, http.MethodPost, "/progress", `{"owner_id":"u1","day":45}`, &day)
	if rec.Code != http.StatusOK || day.CurrentDay != 45 {
		t.Fatalf("advance: status = %d day = %d", rec.Code, day.CurrentDay)
	}

	var envelope ErrorEnvelope
	rec = doJSON(t, h, http.MethodPost, "/progress", `{"owner_id":"u1","day":91}`, &envelope)
	if rec.Code != http.StatusBadRequest || envelope.Error.Code != "invalid_request" {
		t.Fatalf("out-of-range day: status = %d code = %q", rec.Code, envelope.Error.Code)
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h, http.MethodPost, "/progress", `{"owner_id":"u1","day":45}`, nil)

	var stats app.DashboardStats
	rec := doJSON(t, h, http.MethodGet, "/dashboard/stats?owner_id=u1", "", &stats)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /dashboard/stats status = %d", rec.Code)
	}
	if stats.CurrentDay != 45 || stats.OverallProgressPct != 50 {
		t.Fatalf("unexpected stats %#v", stats)
	}
	if stats.CurrentPhase.ID != 2 || stats.CurrentPhaseStatus != domain.PhaseInProgress {
		t.Fatalf("expected phase 2 in progress, got %d %q", stats.CurrentPhase.ID, stats.CurrentPhaseStatus)
	}
}

func TestPhasesEndpoint(t *testing.T) {
	h := newTestHandler(t)

	var payload struct {
		Phases []domain.Phase `json:"phases"`
	}
	rec := doJSON(t, h, http.MethodGet, "/phases", "", &payload)
	if rec.Code != http.StatusOK || len(payload.Phases) != 3 {
		t.Fatalf("GET /phases status = %d phases = %d", rec.Code, len(payload.Phases))
	}
	if payload.Phases[0].StartDay != 1 || payload.Phases[2].EndDay != domain.TotalDays {
		t.Fatalf("unexpected phase bounds %#v", payload.Phases)
	}
}

func TestActivitiesEndpoint(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h, http.MethodPost, "/tasks", `{"owner_id":"u1","title":"a"}`, nil)
	doJSON(t, h, http.MethodPost, "/progress", `{"owner_id":"u1","day":3}`, nil)

	var payload struct {
		Activities []domain.Activity `json:"activities"`
	}
	rec := doJSON(t, h, http.MethodGet, "/activities?owner_id=u1&limit=1", "", &payload)
	if rec.Code != http.StatusOK || len(payload.Activities) != 1 {
		t.Fatalf("GET /activities status = %d rows = %d", rec.Code, len(payload.Activities))
	}
	if payload.Activities[0].Type != domain.ActivityProgressAdvance {
		t.Fatalf("expected newest event first, got %q", payload.Activities[0].Type)
	}
}

func TestSnapshotRoundtripEndpoints(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h, http.MethodPost, "/tasks", `{"owner_id":"u1","title":"a"}`, nil)
	doJSON(t, h, http.MethodPost, "/progress", `{"owner_id":"u1","day":12}`, nil)

	var snap app.Snapshot
	rec := doJSON(t, h, http.MethodGet, "/snapshot/export?owner_id=u1", "", &snap)
	if rec.Code != http.StatusOK || snap.Version != app.SnapshotVersion {
		t.Fatalf("export status = %d version = %q", rec.Code, snap.Version)
	}

	// Import into a second owner-scoped handler state.
	fresh := newTestHandler(t)
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	body := fmt.Sprintf(`{"owner_id":"u1","snapshot":%s}`, snapJSON)
	rec = doJSON(t, fresh, http.MethodPost, "/snapshot/import", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d body %s", rec.Code, rec.Body.String())
	}
	var day struct {
		CurrentDay int `json:"current_day"`
	}
	rec = doJSON(t, fresh, http.MethodGet, "/progress?owner_id=u1", "", &day)
	if rec.Code != http.StatusOK || day.CurrentDay != 12 {
		t.Fatalf("expected imported day 12, got %d", day.CurrentDay)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodDelete, "/tasks", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header, got %q", allow)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	h := newTestHandler(t)
	var envelope ErrorEnvelope
	rec := doJSON(t, h, http.MethodGet, "/nonsense", "", &envelope)
	if rec.Code != http.StatusNotFound || envelope.Error.Code != "not_found" {
		t.Fatalf("expected structured 404, got %d %q", rec.Code, envelope.Error.Code)
	}
}
