// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stride-tracker/stride/internal/app"
	"github.com/stride-tracker/stride/internal/domain"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter exposing the tracker operations as tools.
func NewHandler(cfg Config, svc *app.Service) (*Handler, error) {
	if svc == nil {
		return nil, fmt.Errorf("tracker service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerProgressTools(mcpSrv, svc)
	registerDashboardTool(mcpSrv, svc)
	registerTaskTools(mcpSrv, svc)
	registerChecklistTools(mcpSrv, svc)
	registerActivityTool(mcpSrv, svc)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "stride"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerProgressTools registers the current-day and advance tools.
func registerProgressTools(srv *mcpserver.MCPServer, svc *app.Service) {
	srv.AddTool(
		mcp.NewTool(
			"stride.current_day",
			mcp.WithDescription("Return the owner's current plan day derived from the activity log."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			day, err := svc.CurrentDay(ctx, ownerID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"current_day": day})
			if err != nil {
				return nil, fmt.Errorf("encode current_day result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"stride.advance_progress",
			mcp.WithDescription("Record a progress advance to the given plan day (1-90)."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
			mcp.WithNumber("day", mcp.Required(), mcp.Description("Target plan day")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			day, err := req.RequireInt("day")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			current, err := svc.AdvanceProgress(ctx, ownerID, day)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"current_day": current})
			if err != nil {
				return nil, fmt.Errorf("encode advance_progress result: %w", err)
			}
			return result, nil
		},
	)
}

// registerDashboardTool registers the aggregated dashboard stats tool.
func registerDashboardTool(srv *mcpserver.MCPServer, svc *app.Service) {
	srv.AddTool(
		mcp.NewTool(
			"stride.dashboard_stats",
			mcp.WithDescription("Return the on-demand dashboard aggregation for one owner."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			stats, err := svc.DashboardStats(ctx, ownerID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(stats)
			if err != nil {
				return nil, fmt.Errorf("encode dashboard_stats result: %w", err)
			}
			return result, nil
		},
	)
}

// registerTaskTools registers task list/create/complete tools.
func registerTaskTools(srv *mcpserver.MCPServer, svc *app.Service) {
	srv.AddTool(
		mcp.NewTool(
			"stride.list_tasks",
			mcp.WithDescription("List tasks for one owner, newest first."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			tasks, err := svc.ListTasks(ctx, ownerID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"tasks": tasks})
			if err != nil {
				return nil, fmt.Errorf("encode list_tasks result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"stride.create_task",
			mcp.WithDescription("Create one task and record the matching activity entry."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
			mcp.WithString("description", mcp.Description("Task description")),
			mcp.WithString("priority", mcp.Description("low, medium, or high"), mcp.Enum("low", "medium", "high")),
			mcp.WithString("notes", mcp.Description("Free-form notes")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			title, err := req.RequireString("title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			task, err := svc.CreateTask(ctx, app.CreateTaskInput{
				OwnerID:     ownerID,
				Title:       title,
				Description: req.GetString("description", ""),
				Priority:    domain.Priority(req.GetString("priority", "")),
				Notes:       req.GetString("notes", ""),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(task)
			if err != nil {
				return nil, fmt.Errorf("encode create_task result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"stride.complete_task",
			mcp.WithDescription("Mark one task completed by id."),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("Task identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			taskID, err := req.RequireString("task_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			task, err := svc.GetTask(ctx, taskID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			updated, err := svc.UpdateTask(ctx, app.UpdateTaskInput{
				TaskID:      task.ID,
				Title:       task.Title,
				Description: task.Description,
				Priority:    task.Priority,
				Status:      domain.TaskStatusCompleted,
				PhaseID:     task.PhaseID,
				DueDate:     task.DueDate,
				Notes:       task.Notes,
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(updated)
			if err != nil {
				return nil, fmt.Errorf("encode complete_task result: %w", err)
			}
			return result, nil
		},
	)
}

// registerChecklistTools registers checklist item listing, toggle, and reorder tools.
func registerChecklistTools(srv *mcpserver.MCPServer, svc *app.Service) {
	srv.AddTool(
		mcp.NewTool(
			"stride.list_checklist_items",
			mcp.WithDescription("List one checklist's items in display order."),
			mcp.WithString("checklist_id", mcp.Required(), mcp.Description("Checklist identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			checklistID, err := req.RequireString("checklist_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			items, err := svc.ListChecklistItems(ctx, checklistID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"items": items})
			if err != nil {
				return nil, fmt.Errorf("encode list_checklist_items result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"stride.toggle_checklist_item",
			mcp.WithDescription("Flip one checklist item's completion state."),
			mcp.WithString("item_id", mcp.Required(), mcp.Description("Checklist item identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			itemID, err := req.RequireString("item_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			item, err := svc.ToggleChecklistItem(ctx, itemID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(item)
			if err != nil {
				return nil, fmt.Errorf("encode toggle_checklist_item result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"stride.reorder_checklist_items",
			mcp.WithDescription("Move the named items to the front in the given order; unnamed items keep their relative order after them."),
			mcp.WithString("checklist_id", mcp.Required(), mcp.Description("Checklist identifier")),
			mcp.WithArray("item_ids", mcp.Required(), mcp.Description("Item ids in their new front-to-back order"), mcp.WithStringItems()),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			checklistID, err := req.RequireString("checklist_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			items, err := svc.ReorderChecklistItems(ctx, checklistID, req.GetStringSlice("item_ids", nil))
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"items": items})
			if err != nil {
				return nil, fmt.Errorf("encode reorder_checklist_items result: %w", err)
			}
			return result, nil
		},
	)
}

// registerActivityTool registers the recent-activity feed tool.
func registerActivityTool(srv *mcpserver.MCPServer, svc *app.Service) {
	srv.AddTool(
		mcp.NewTool(
			"stride.recent_activities",
			mcp.WithDescription("Return the newest activity log entries for one owner."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
			mcp.WithNumber("limit", mcp.Description("Maximum rows to return")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			activities, err := svc.RecentActivities(ctx, ownerID, req.GetInt("limit", 0))
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"activities": activities})
			if err != nil {
				return nil, fmt.Errorf("encode recent_activities result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps service errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, app.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, domain.ErrValidation):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
