package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stride-tracker/stride/internal/adapters/storage/sqlite"
	"github.com/stride-tracker/stride/internal/app"
)

func newTestService(t *testing.T) *app.Service {
	t.Helper()
	repo, err := sqlite.Open(filepath.Join(t.TempDir(), "stride.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return app.NewService(repo, nil, nil, nil)
}

func TestNewHandlerServesHealthAndAPI(t *testing.T) {
	handler, cfg, err := NewHandler(Config{}, newTestService(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if cfg.APIEndpoint != "/api/v1" || cfg.MCPEndpoint != "/mcp" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/phases", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("api phases status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestNewHandlerRejectsEndpointCollision(t *testing.T) {
	_, _, err := NewHandler(Config{APIEndpoint: "/same", MCPEndpoint: "/same"}, newTestService(t))
	if err == nil {
		t.Fatal("expected endpoint collision error")
	}
}

func TestNewHandlerRequiresService(t *testing.T) {
	if _, _, err := NewHandler(Config{}, nil); err == nil {
		t.Fatal("expected missing-service error")
	}
}
