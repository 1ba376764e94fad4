package mcpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stride-tracker/stride/internal/adapters/storage/sqlite"
	"github.com/stride-tracker/stride/internal/app"
	"github.com/stride-tracker/stride/internal/domain"
)

type jsonRPCResponse struct {
	ID     float64        `json:"id"`
	Result map[string]any `json:"result"`
}

func newTestService(t *testing.T) *app.Service {
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
	return app.NewService(repo, idGen, nil, nil)
}

func postJSONRPC(t *testing.T, client *http.Client, url string, payload any) (*http.Response, jsonRPCResponse) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var decoded jsonRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return resp, decoded
}

func initializeRequest() map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]any{
			"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
			"clientInfo": map[string]any{
				"name":    "stride-test",
				"version": "1.0.0",
			},
		},
	}
}

func callToolRequest(id int, name string, arguments map[string]any) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      name,
			"arguments": arguments,
		},
	}
}

// toolResultText flattens one tools/call result's content into a single string.
func toolResultText(t *testing.T, result map[string]any) string {
	t.Helper()
	contentRaw, ok := result["content"].([]any)
	if !ok {
		t.Fatalf("tool result missing content: %#v", result)
	}
	var sb strings.Builder
	for _, raw := range contentRaw {
		block, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := block["text"].(string); ok {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

func TestHandlerUsesStatelessTransport(t *testing.T) {
	handler, err := NewHandler(Config{}, newTestService(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, decoded := postJSONRPC(t, server.Client(), server.URL, initializeRequest())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if decoded.ID != 1 {
		t.Fatalf("id = %v, want 1", decoded.ID)
	}
	if got := resp.Header.Get("Mcp-Session-Id"); got != "" {
		t.Fatalf("Mcp-Session-Id header = %q, want empty (stateless transport)", got)
	}
}

func TestHandlerRegistersTrackerTools(t *testing.T) {
	handler, err := NewHandler(Config{}, newTestService(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	server := httptest.NewServer(handler)
	defer server.Close()
	_, _ = postJSONRPC(t, server.Client(), server.URL, initializeRequest())
	_, toolsResp := postJSONRPC(t, server.Client(), server.URL, map[string]any{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "tools/list",
	})

	toolsRaw, ok := toolsResp.Result["tools"].([]any)
	if !ok {
		t.Fatalf("tools list payload missing tools: %#v", toolsResp.Result)
	}
	toolNames := make([]string, 0, len(toolsRaw))
	for _, toolRaw := range toolsRaw {
		toolMap, ok := toolRaw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := toolMap["name"].(string)
		toolNames = append(toolNames, name)
	}
	for _, required := range []string{
		"stride.current_day",
		"stride.advance_progress",
		"stride.dashboard_stats",
		"stride.list_tasks",
		"stride.create_task",
		"stride.complete_task",
		"stride.list_checklist_items",
		"stride.toggle_checklist_item",
		"stride.reorder_checklist_items",
		"stride.recent_activities",
	} {
		if !slices.Contains(toolNames, required) {
			t.Fatalf("tool list missing %q: %#v", required, toolNames)
		}
	}
}

func TestHandlerProgressToolCalls(t *testing.T) {
	handler, err := NewHandler(Config{}, newTestService(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	server := httptest.NewServer(handler)
	defer server.Close()
	_, _ = postJSONRPC(t, server.Client(), server.URL, initializeRequest())

	_, advanceResp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "stride.advance_progress", map[string]any{
		"owner_id": "u1",
		"day":      45,
	}))
	if isError, _ := advanceResp.Result["isError"].(bool); isError {
		t.Fatalf("advance_progress errored: %s", toolResultText(t, advanceResp.Result))
	}

	_, dayResp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(3, "stride.current_day", map[string]any{
		"owner_id": "u1",
	}))
	if text := toolResultText(t, dayResp.Result); !strings.Contains(text, "45") {
		t.Fatalf("expected current day 45 in result, got %q", text)
	}
}

func TestHandlerAdvanceProgressValidation(t *testing.T) {
	handler, err := NewHandler(Config{}, newTestService(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	server := httptest.NewServer(handler)
	defer server.Close()
	_, _ = postJSONRPC(t, server.Client(), server.URL, initializeRequest())

	_, resp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "stride.advance_progress", map[string]any{
		"owner_id": "u1",
		"day":      91,
	}))
	if isError, _ := resp.Result["isError"].(bool); !isError {
		t.Fatalf("expected tool error for day 91, got %#v", resp.Result)
	}
	if text := toolResultText(t, resp.Result); !strings.Contains(text, "invalid_request") {
		t.Fatalf("expected invalid_request prefix, got %q", text)
	}
}

func TestNewHandlerRequiresService(t *testing.T) {
	if _, err := NewHandler(Config{}, nil); err == nil {
		t.Fatal("expected missing-service error")
	}
}

func TestNormalizeConfig(t *testing.T) {
	cfg := normalizeConfig(Config{})
	if cfg.ServerName != "stride" || cfg.ServerVersion != "dev" || cfg.EndpointPath != "/mcp" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	cfg = normalizeConfig(Config{EndpointPath: "custom/"})
	if cfg.EndpointPath != "/custom" {
		t.Fatalf("unexpected endpoint %q", cfg.EndpointPath)
	}
}

func TestHandlerServeHTTPUnavailable(t *testing.T) {
	var handler *Handler
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestToolResultFromErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantPrefix string
	}{
		{nil, "unknown error"},
		{app.ErrNotFound, "not_found:"},
		{domain.ErrInvalidDay, "invalid_request:"},
		{errors.New("boom"), "internal_error:"},
	}
	for _, tc := range cases {
		result := toolResultFromError(tc.err)
		if len(result.Content) == 0 {
			t.Fatalf("error %v: result content is empty", tc.err)
		}
		text, ok := result.Content[0].(mcp.TextContent)
		if !ok {
			t.Fatalf("error %v: content[0] has unexpected type %T", tc.err, result.Content[0])
		}
		if !strings.HasPrefix(text.Text, tc.wantPrefix) {
			t.Fatalf("error %v: text = %q, want prefix %q", tc.err, text.Text, tc.wantPrefix)
		}
	}
}
