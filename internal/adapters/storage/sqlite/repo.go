package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stride-tracker/stride/internal/app"
	"github.com/stride-tracker/stride/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository represents repository data used by this package.
type Repository struct {
	db *sql.DB
}

// Open opens the requested operation.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens in memory.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the requested operation.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate handles migrate.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'pending',
			phase_id INTEGER,
			due_date TEXT,
			completed_at TEXT,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS checklists (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS checklist_items (
			id TEXT PRIMARY KEY,
			checklist_id TEXT NOT NULL,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			priority TEXT NOT NULL DEFAULT 'medium',
			position INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY(checklist_id) REFERENCES checklists(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS team_members (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			strengths TEXT NOT NULL DEFAULT '',
			improvement_areas TEXT NOT NULL DEFAULT '',
			career_goals TEXT NOT NULL DEFAULT '',
			last_one_on_one TEXT,
			next_one_on_one TEXT,
			satisfaction_score REAL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS learning_resources (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'not_started',
			progress INTEGER NOT NULL DEFAULT 0,
			started_at TEXT,
			completed_at TEXT,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS kpi_metrics (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			metric_type TEXT NOT NULL,
			value REAL NOT NULL,
			target REAL,
			unit TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS risks (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			probability TEXT NOT NULL DEFAULT 'medium',
			impact TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'active',
			mitigation_plan TEXT NOT NULL DEFAULT '',
			contingency_plan TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS follow_ups (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			assignee TEXT NOT NULL DEFAULT '',
			requester TEXT NOT NULL DEFAULT '',
			person TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'pending',
			due_date TEXT,
			last_check_in TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			week_start TEXT NOT NULL,
			leadership_notes TEXT NOT NULL DEFAULT '',
			team_support_notes TEXT NOT NULL DEFAULT '',
			strategy_notes TEXT NOT NULL DEFAULT '',
			communication_notes TEXT NOT NULL DEFAULT '',
			improvement_areas TEXT NOT NULL DEFAULT '',
			overall_rating INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id TEXT NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			entity_id TEXT NOT NULL DEFAULT '',
			entity_type TEXT NOT NULL DEFAULT '',
			metadata_json TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_owner_status ON tasks(owner_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_owner_due ON tasks(owner_id, due_date);`,
		`CREATE INDEX IF NOT EXISTS idx_checklists_owner ON checklists(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_checklist_items_checklist_position ON checklist_items(checklist_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_team_members_owner ON team_members(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_learning_resources_owner ON learning_resources(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_kpi_metrics_owner_type_recorded ON kpi_metrics(owner_id, metric_type, recorded_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_risks_owner_status ON risks(owner_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_follow_ups_owner_status ON follow_ups(owner_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_owner_week ON assessments(owner_id, week_start DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_activities_owner_created_at ON activities(owner_id, created_at DESC, id DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_activities_owner_type_created_at ON activities(owner_id, type, created_at DESC, id DESC);`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// execerContext is the subset of sql.Tx and sql.DB used by event inserts.
type execerContext interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertActivity appends one activity row. A zero-value event is skipped so
// import paths can restore entities without synthesizing log entries.
func insertActivity(ctx context.Context, ex execerContext, event domain.Activity) error {
	if event.Type == "" {
		return nil
	}
	metadataJSON, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("encode activity metadata: %w", err)
	}
	if event.Metadata == nil {
		metadataJSON = []byte("{}")
	}
	occurredAt := event.CreatedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO activities(owner_id, type, description, entity_id, entity_type, metadata_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.OwnerID, string(event.Type), event.Description, event.EntityID, event.EntityType, string(metadataJSON), ts(occurredAt))
	return err
}

// inTx runs fn inside a transaction, rolling back on error.
func (r *Repository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// CreateTask creates task.
func (r *Repository) CreateTask(ctx context.Context, t domain.Task, event domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks(id, owner_id, title, description, priority, status, phase_id, due_date, completed_at, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			t.ID,
			t.OwnerID,
			t.Title,
			t.Description,
			string(t.Priority),
			string(t.Status),
			nullableInt(t.PhaseID),
			nullableTS(t.DueDate),
			nullableTS(t.CompletedAt),
			t.Notes,
			ts(t.CreatedAt),
			ts(t.UpdatedAt),
		)
		if err != nil {
			return err
		}
		return insertActivity(ctx, tx, event)
	})
}

// UpdateTask updates state for the requested operation.
func (r *Repository) UpdateTask(ctx context.Context, t domain.Task, event *domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE tasks
			SET title = ?, description = ?, priority = ?, status = ?, phase_id = ?, due_date = ?, completed_at = ?, notes = ?, updated_at = ?
			WHERE id = ?
		`,
			t.Title,
			t.Description,
			string(t.Priority),
			string(t.Status),
			nullableInt(t.PhaseID),
			nullableTS(t.DueDate),
			nullableTS(t.CompletedAt),
			t.Notes,
			ts(t.UpdatedAt),
			t.ID,
		)
		if err != nil {
			return err
		}
		if err := translateNoRows(res); err != nil {
			return err
		}
		if event == nil {
			return nil
		}
		return insertActivity(ctx, tx, *event)
	})
}

// GetTask returns task.
func (r *Repository) GetTask(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, priority, status, phase_id, due_date, completed_at, notes, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, id)
	return scanTask(row)
}

// ListTasks lists tasks.
func (r *Repository) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, description, priority, status, phase_id, due_date, completed_at, notes, created_at, updated_at
		FROM tasks
		WHERE owner_id = ?
		ORDER BY created_at DESC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// DeleteTask deletes task.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateChecklist creates checklist.
func (r *Repository) CreateChecklist(ctx context.Context, c domain.Checklist, event domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO checklists(id, owner_id, name, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.OwnerID, c.Name, c.Description, ts(c.CreatedAt), ts(c.UpdatedAt))
		if err != nil {
			return err
		}
		return insertActivity(ctx, tx, event)
	})
}

// UpdateChecklist updates state for the requested operation.
func (r *Repository) UpdateChecklist(ctx context.Context, c domain.Checklist) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE checklists
		SET name = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, c.Name, c.Description, ts(c.UpdatedAt), c.ID)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetChecklist returns checklist.
func (r *Repository) GetChecklist(ctx context.Context, id string) (domain.Checklist, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM checklists
		WHERE id = ?
	`, id)
	return scanChecklist(row)
}

// ListChecklists lists checklists.
func (r *Repository) ListChecklists(ctx context.Context, ownerID string) ([]domain.Checklist, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM checklists
		WHERE owner_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Checklist{}
	for rows.Next() {
		checklist, err := scanChecklist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, checklist)
	}
	return out, rows.Err()
}

// DeleteChecklist deletes checklist. The foreign key cascades item rows in
// the same statement, so a partial cascade cannot be observed.
func (r *Repository) DeleteChecklist(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM checklists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateChecklistItem creates checklist item.
func (r *Repository) CreateChecklistItem(ctx context.Context, item domain.ChecklistItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checklist_items(id, checklist_id, text, completed, priority, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.ChecklistID, item.Text, boolToInt(item.Completed), string(item.Priority), item.Order, ts(item.CreatedAt), ts(item.UpdatedAt))
	return err
}

// UpdateChecklistItem updates state for the requested operation.
func (r *Repository) UpdateChecklistItem(ctx context.Context, item domain.ChecklistItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE checklist_items
		SET text = ?, completed = ?, priority = ?, position = ?, updated_at = ?
		WHERE id = ?
	`, item.Text, boolToInt(item.Completed), string(item.Priority), item.Order, ts(item.UpdatedAt), item.ID)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetChecklistItem returns checklist item.
func (r *Repository) GetChecklistItem(ctx context.Context, id string) (domain.ChecklistItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, checklist_id, text, completed, priority, position, created_at, updated_at
		FROM checklist_items
		WHERE id = ?
	`, id)
	return scanChecklistItem(row)
}

// ListChecklistItems lists checklist items in stored position order.
func (r *Repository) ListChecklistItems(ctx context.Context, checklistID string) ([]domain.ChecklistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, checklist_id, text, completed, priority, position, created_at, updated_at
		FROM checklist_items
		WHERE checklist_id = ?
		ORDER BY position ASC, created_at ASC, id ASC
	`, checklistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ChecklistItem{}
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// DeleteChecklistItem deletes checklist item.
func (r *Repository) DeleteChecklistItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// UpdateChecklistItemOrders persists a batch of position changes in one
// transaction so a reorder is applied atomically.
func (r *Repository) UpdateChecklistItemOrders(ctx context.Context, items []domain.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, item := range items {
			res, err := tx.ExecContext(ctx, `
				UPDATE checklist_items
				SET position = ?, updated_at = ?
				WHERE id = ?
			`, item.Order, ts(item.UpdatedAt), item.ID)
			if err != nil {
				return err
			}
			if err := translateNoRows(res); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateTeamMember creates team member.
func (r *Repository) CreateTeamMember(ctx context.Context, m domain.TeamMember, event domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO team_members(id, owner_id, name, role, email, strengths, improvement_areas, career_goals, last_one_on_one, next_one_on_one, satisfaction_score, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			m.ID,
			m.OwnerID,
			m.Name,
			m.Role,
			m.Email,
			m.Strengths,
			m.ImprovementAreas,
			m.CareerGoals,
			nullableTS(m.LastOneOnOne),
			nullableTS(m.NextOneOnOne),
			nullableFloat(m.SatisfactionScore),
			ts(m.CreatedAt),
			ts(m.UpdatedAt),
		)
		if err != nil {
			return err
		}
		return insertActivity(ctx, tx, event)
	})
}

// UpdateTeamMember updates state for the requested operation.
func (r *Repository) UpdateTeamMember(ctx context.Context, m domain.TeamMember) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE team_members
		SET name = ?, role = ?, email = ?, strengths = ?, improvement_areas = ?, career_goals = ?, last_one_on_one = ?, next_one_on_one = ?, satisfaction_score = ?, updated_at = ?
		WHERE id = ?
	`,
		m.Name,
		m.Role,
		m.Email,
		m.Strengths,
		m.ImprovementAreas,
		m.CareerGoals,
		nullableTS(m.LastOneOnOne),
		nullableTS(m.NextOneOnOne),
		nullableFloat(m.SatisfactionScore),
		ts(m.UpdatedAt),
		m.ID,
	)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetTeamMember returns team member.
func (r *Repository) GetTeamMember(ctx context.Context, id string) (domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, role, email, strengths, improvement_areas, career_goals, last_one_on_one, next_one_on_one, satisfaction_score, created_at, updated_at
		FROM team_members
		WHERE id = ?
	`, id)
	return scanTeamMember(row)
}

// ListTeamMembers lists team members.
func (r *Repository) ListTeamMembers(ctx context.Context, ownerID string) ([]domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, role, email, strengths, improvement_areas, career_goals, last_one_on_one, next_one_on_one, satisfaction_score, created_at, updated_at
		FROM team_members
		WHERE owner_id = ?
		ORDER BY name COLLATE NOCASE ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TeamMember{}
	for rows.Next() {
		member, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, member)
	}
	return out, rows.Err()
}

// DeleteTeamMember deletes team member.
func (r *Repository) DeleteTeamMember(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateLearningResource creates learning resource.
func (r *Repository) CreateLearningResource(ctx context.Context, res domain.LearningResource, event domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO learning_resources(id, owner_id, title, type, url, status, progress, started_at, completed_at, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			res.ID,
			res.OwnerID,
			res.Title,
			string(res.Type),
			res.URL,
			string(res.Status),
			res.Progress,
			nullableTS(res.StartedAt),
			nullableTS(res.CompletedAt),
			res.Notes,
			ts(res.CreatedAt),
			ts(res.UpdatedAt),
		)
		if err != nil {
			return err
		}
		return insertActivity(ctx, tx, event)
	})
}

// UpdateLearningResource updates state for the requested operation.
func (r *Repository) UpdateLearningResource(ctx context.Context, res domain.LearningResource, event *domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE learning_resources
			SET title = ?, type = ?, url = ?, status = ?, progress = ?, started_at = ?, completed_at = ?, notes = ?, updated_at = ?
			WHERE id = ?
		`,
			res.Title,
			string(res.Type),
			res.URL,
			string(res.Status),
			res.Progress,
			nullableTS(res.StartedAt),
			nullableTS(res.CompletedAt),
			res.Notes,
			ts(res.UpdatedAt),
			res.ID,
		)
		if err != nil {
			return err
		}
		if err := translateNoRows(result); err != nil {
			return err
		}
		if event == nil {
			return nil
		}
		return insertActivity(ctx, tx, *event)
	})
}

// GetLearningResource returns learning resource.
func (r *Repository) GetLearningResource(ctx context.Context, id string) (domain.LearningResource, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, type, url, status, progress, started_at, completed_at, notes, created_at, updated_at
		FROM learning_resources
		WHERE id = ?
	`, id)
	return scanLearningResource(row)
}

// ListLearningResources lists learning resources.
func (r *Repository) ListLearningResources(ctx context.Context, ownerID string) ([]domain.LearningResource, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, type, url, status, progress, started_at, completed_at, notes, created_at, updated_at
		FROM learning_resources
		WHERE owner_id = ?
		ORDER BY created_at DESC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.LearningResource{}
	for rows.Next() {
		res, err := scanLearningResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// DeleteLearningResource deletes learning resource.
func (r *Repository) DeleteLearningResource(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM learning_resources WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateKpiMetric creates kpi metric.
func (r *Repository) CreateKpiMetric(ctx context.Context, m domain.KpiMetric, event domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kpi_metrics(id, owner_id, metric_type, value, target, unit, recorded_at, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			m.ID,
			m.OwnerID,
			m.MetricType,
			m.Value,
			nullableFloat(m.Target),
			m.Unit,
			ts(m.RecordedAt),
			m.Notes,
			ts(m.CreatedAt),
		)
		if err != nil {
			return err
		}
		return insertActivity(ctx, tx, event)
	})
}

// ListKpiMetrics lists metric readings, optionally filtered by type.
func (r *Repository) ListKpiMetrics(ctx context.Context, ownerID, metricType string) ([]domain.KpiMetric, error) {
	query := `
		SELECT id, owner_id, metric_type, value, target, unit, recorded_at, notes, created_at
		FROM kpi_metrics
		WHERE owner_id = ?
	`
	args := []any{ownerID}
	if metricType != "" {
		query += ` AND metric_type = ?`
		args = append(args, metricType)
	}
	query += ` ORDER BY recorded_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.KpiMetric{}
	for rows.Next() {
		metric, err := scanKpiMetric(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, metric)
	}
	return out, rows.Err()
}

// DeleteKpiMetric deletes kpi metric.
func (r *Repository) DeleteKpiMetric(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kpi_metrics WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateRisk creates risk.
func (r *Repository) CreateRisk(ctx context.Context, risk domain.Risk, event domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO risks(id, owner_id, title, description, category, probability, impact, status, mitigation_plan, contingency_plan, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			risk.ID,
			risk.OwnerID,
			risk.Title,
			risk.Description,
			risk.Category,
			string(risk.Probability),
			string(risk.Impact),
			string(risk.Status),
			risk.MitigationPlan,
			risk.ContingencyPlan,
			ts(risk.CreatedAt),
			ts(risk.UpdatedAt),
		)
		if err != nil {
			return err
		}
		return insertActivity(ctx, tx, event)
	})
}

// UpdateRisk updates state for the requested operation.
func (r *Repository) UpdateRisk(ctx context.Context, risk domain.Risk) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE risks
		SET title = ?, description = ?, category = ?, probability = ?, impact = ?, status = ?, mitigation_plan = ?, contingency_plan = ?, updated_at = ?
		WHERE id = ?
	`,
		risk.Title,
		risk.Description,
		risk.Category,
		string(risk.Probability),
		string(risk.Impact),
		string(risk.Status),
		risk.MitigationPlan,
		risk.ContingencyPlan,
		ts(risk.UpdatedAt),
		risk.ID,
	)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetRisk returns risk.
func (r *Repository) GetRisk(ctx context.Context, id string) (domain.Risk, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, category, probability, impact, status, mitigation_plan, contingency_plan, created_at, updated_at
		FROM risks
		WHERE id = ?
	`, id)
	return scanRisk(row)
}

// ListRisks lists risks.
func (r *Repository) ListRisks(ctx context.Context, ownerID string) ([]domain.Risk, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, description, category, probability, impact, status, mitigation_plan, contingency_plan, created_at, updated_at
		FROM risks
		WHERE owner_id = ?
		ORDER BY created_at DESC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Risk{}
	for rows.Next() {
		risk, err := scanRisk(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, risk)
	}
	return out, rows.Err()
}

// DeleteRisk deletes risk.
func (r *Repository) DeleteRisk(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM risks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateFollowUp creates follow-up.
func (r *Repository) CreateFollowUp(ctx context.Context, f domain.FollowUp, event domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO follow_ups(id, owner_id, title, assignee, requester, person, priority, status, due_date, last_check_in, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			f.ID,
			f.OwnerID,
			f.Title,
			f.Assignee,
			f.Requester,
			f.Person,
			string(f.Priority),
			string(f.Status),
			nullableTS(f.DueDate),
			nullableTS(f.LastCheckIn),
			ts(f.CreatedAt),
			ts(f.UpdatedAt),
		)
		if err != nil {
			return err
		}
		return insertActivity(ctx, tx, event)
	})
}

// UpdateFollowUp updates state for the requested operation.
func (r *Repository) UpdateFollowUp(ctx context.Context, f domain.FollowUp, event *domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE follow_ups
			SET title = ?, assignee = ?, requester = ?, person = ?, priority = ?, status = ?, due_date = ?, last_check_in = ?, updated_at = ?
			WHERE id = ?
		`,
			f.Title,
			f.Assignee,
			f.Requester,
			f.Person,
			string(f.Priority),
			string(f.Status),
			nullableTS(f.DueDate),
			nullableTS(f.LastCheckIn),
			ts(f.UpdatedAt),
			f.ID,
		)
		if err != nil {
			return err
		}
		if err := translateNoRows(res); err != nil {
			return err
		}
		if event == nil {
			return nil
		}
		return insertActivity(ctx, tx, *event)
	})
}

// GetFollowUp returns follow-up.
func (r *Repository) GetFollowUp(ctx context.Context, id string) (domain.FollowUp, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, assignee, requester, person, priority, status, due_date, last_check_in, created_at, updated_at
		FROM follow_ups
		WHERE id = ?
	`, id)
	return scanFollowUp(row)
}

// ListFollowUps lists follow-ups.
func (r *Repository) ListFollowUps(ctx context.Context, ownerID string) ([]domain.FollowUp, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, assignee, requester, person, priority, status, due_date, last_check_in, created_at, updated_at
		FROM follow_ups
		WHERE owner_id = ?
		ORDER BY created_at DESC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.FollowUp{}
	for rows.Next() {
		followUp, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, followUp)
	}
	return out, rows.Err()
}

// DeleteFollowUp deletes follow-up.
func (r *Repository) DeleteFollowUp(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM follow_ups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateAssessment creates assessment.
func (r *Repository) CreateAssessment(ctx context.Context, a domain.Assessment, event domain.Activity) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO assessments(id, owner_id, week_start, leadership_notes, team_support_notes, strategy_notes, communication_notes, improvement_areas, overall_rating, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			a.ID,
			a.OwnerID,
			ts(a.WeekStart),
			a.LeadershipNotes,
			a.TeamSupportNotes,
			a.StrategyNotes,
			a.CommunicationNotes,
			a.ImprovementAreas,
			a.OverallRating,
			ts(a.CreatedAt),
			ts(a.UpdatedAt),
		)
		if err != nil {
			return err
		}
		return insertActivity(ctx, tx, event)
	})
}

// UpdateAssessment updates state for the requested operation.
func (r *Repository) UpdateAssessment(ctx context.Context, a domain.Assessment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE assessments
		SET week_start = ?, leadership_notes = ?, team_support_notes = ?, strategy_notes = ?, communication_notes = ?, improvement_areas = ?, overall_rating = ?, updated_at = ?
		WHERE id = ?
	`,
		ts(a.WeekStart),
		a.LeadershipNotes,
		a.TeamSupportNotes,
		a.StrategyNotes,
		a.CommunicationNotes,
		a.ImprovementAreas,
		a.OverallRating,
		ts(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetAssessment returns assessment.
func (r *Repository) GetAssessment(ctx context.Context, id string) (domain.Assessment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, week_start, leadership_notes, team_support_notes, strategy_notes, communication_notes, improvement_areas, overall_rating, created_at, updated_at
		FROM assessments
		WHERE id = ?
	`, id)
	return scanAssessment(row)
}

// ListAssessments lists assessments.
func (r *Repository) ListAssessments(ctx context.Context, ownerID string) ([]domain.Assessment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, week_start, leadership_notes, team_support_notes, strategy_notes, communication_notes, improvement_areas, overall_rating, created_at, updated_at
		FROM assessments
		WHERE owner_id = ?
		ORDER BY week_start DESC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Assessment{}
	for rows.Next() {
		assessment, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, assessment)
	}
	return out, rows.Err()
}

// DeleteAssessment deletes assessment.
func (r *Repository) DeleteAssessment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// AppendActivity appends one activity row.
func (r *Repository) AppendActivity(ctx context.Context, event domain.Activity) error {
	if event.Type == "" {
		return domain.ErrInvalidType
	}
	return insertActivity(ctx, r.db, event)
}

// ListActivities lists the newest activity rows for an owner. A limit of
// zero or less returns everything.
func (r *Repository) ListActivities(ctx context.Context, ownerID string, limit int) ([]domain.Activity, error) {
	query := `
		SELECT id, owner_id, type, description, entity_id, entity_type, metadata_json, created_at
		FROM activities
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`
	args := []any{ownerID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Activity{}
	for rows.Next() {
		event, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	return out, rows.Err()
}

// LatestActivityOfType returns the newest activity of one type for an owner.
func (r *Repository) LatestActivityOfType(ctx context.Context, ownerID string, typ domain.ActivityType) (domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, type, description, entity_id, entity_type, metadata_json, created_at
		FROM activities
		WHERE owner_id = ? AND type = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, ownerID, string(typ))
	return scanActivity(row)
}

// ResetOwner deletes every row belonging to an owner in one transaction.
func (r *Repository) ResetOwner(ctx context.Context, ownerID string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		stmts := []string{
			`DELETE FROM checklist_items WHERE checklist_id IN (SELECT id FROM checklists WHERE owner_id = ?)`,
			`DELETE FROM checklists WHERE owner_id = ?`,
			`DELETE FROM tasks WHERE owner_id = ?`,
			`DELETE FROM team_members WHERE owner_id = ?`,
			`DELETE FROM learning_resources WHERE owner_id = ?`,
			`DELETE FROM kpi_metrics WHERE owner_id = ?`,
			`DELETE FROM risks WHERE owner_id = ?`,
			`DELETE FROM follow_ups WHERE owner_id = ?`,
			`DELETE FROM assessments WHERE owner_id = ?`,
			`DELETE FROM activities WHERE owner_id = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, ownerID); err != nil {
				return err
			}
		}
		return nil
	})
}

// scanner represents scanner data used by this package.
type scanner interface {
	Scan(dest ...any) error
}

// scanTask handles scan task.
func scanTask(s scanner) (domain.Task, error) {
	var (
		t            domain.Task
		priority     string
		status       string
		phaseID      sql.NullInt64
		dueRaw       sql.NullString
		completedRaw sql.NullString
		createdRaw   string
		updatedRaw   string
	)
	if err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &priority, &status, &phaseID, &dueRaw, &completedRaw, &t.Notes, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, app.ErrNotFound
		}
		return domain.Task{}, err
	}
	t.Priority = domain.Priority(priority)
	t.Status = domain.TaskStatus(status)
	if phaseID.Valid {
		id := int(phaseID.Int64)
		t.PhaseID = &id
	}
	t.DueDate = parseNullTS(dueRaw)
	t.CompletedAt = parseNullTS(completedRaw)
	t.CreatedAt = parseTS(createdRaw)
	t.UpdatedAt = parseTS(updatedRaw)
	return t, nil
}

// scanChecklist handles scan checklist.
func scanChecklist(s scanner) (domain.Checklist, error) {
	var (
		c          domain.Checklist
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Checklist{}, app.ErrNotFound
		}
		return domain.Checklist{}, err
	}
	c.CreatedAt = parseTS(createdRaw)
	c.UpdatedAt = parseTS(updatedRaw)
	return c, nil
}

// scanChecklistItem handles scan checklist item.
func scanChecklistItem(s scanner) (domain.ChecklistItem, error) {
	var (
		item       domain.ChecklistItem
		completed  int
		priority   string
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&item.ID, &item.ChecklistID, &item.Text, &completed, &priority, &item.Order, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ChecklistItem{}, app.ErrNotFound
		}
		return domain.ChecklistItem{}, err
	}
	item.Completed = completed != 0
	item.Priority = domain.Priority(priority)
	item.CreatedAt = parseTS(createdRaw)
	item.UpdatedAt = parseTS(updatedRaw)
	return item, nil
}

// scanTeamMember handles scan team member.
func scanTeamMember(s scanner) (domain.TeamMember, error) {
	var (
		m       domain.TeamMember
		lastRaw sql.NullString
		nextRaw sql.NullString
		score   sql.NullFloat64
		created string
		updated string
	)
	if err := s.Scan(&m.ID, &m.OwnerID, &m.Name, &m.Role, &m.Email, &m.Strengths, &m.ImprovementAreas, &m.CareerGoals, &lastRaw, &nextRaw, &score, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TeamMember{}, app.ErrNotFound
		}
		return domain.TeamMember{}, err
	}
	m.LastOneOnOne = parseNullTS(lastRaw)
	m.NextOneOnOne = parseNullTS(nextRaw)
	if score.Valid {
		v := score.Float64
		m.SatisfactionScore = &v
	}
	m.CreatedAt = parseTS(created)
	m.UpdatedAt = parseTS(updated)
	return m, nil
}

// scanLearningResource handles scan learning resource.
func scanLearningResource(s scanner) (domain.LearningResource, error) {
	var (
		res          domain.LearningResource
		resType      string
		status       string
		startedRaw   sql.NullString
		completedRaw sql.NullString
		createdRaw   string
		updatedRaw   string
	)
	if err := s.Scan(&res.ID, &res.OwnerID, &res.Title, &resType, &res.URL, &status, &res.Progress, &startedRaw, &completedRaw, &res.Notes, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LearningResource{}, app.ErrNotFound
		}
		return domain.LearningResource{}, err
	}
	res.Type = domain.ResourceType(resType)
	res.Status = domain.ResourceStatus(status)
	res.StartedAt = parseNullTS(startedRaw)
	res.CompletedAt = parseNullTS(completedRaw)
	res.CreatedAt = parseTS(createdRaw)
	res.UpdatedAt = parseTS(updatedRaw)
	return res, nil
}

// scanKpiMetric handles scan kpi metric.
func scanKpiMetric(s scanner) (domain.KpiMetric, error) {
	var (
		m           domain.KpiMetric
		target      sql.NullFloat64
		recordedRaw string
		createdRaw  string
	)
	if err := s.Scan(&m.ID, &m.OwnerID, &m.MetricType, &m.Value, &target, &m.Unit, &recordedRaw, &m.Notes, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.KpiMetric{}, app.ErrNotFound
		}
		return domain.KpiMetric{}, err
	}
	if target.Valid {
		v := target.Float64
		m.Target = &v
	}
	m.RecordedAt = parseTS(recordedRaw)
	m.CreatedAt = parseTS(createdRaw)
	return m, nil
}

// scanRisk handles scan risk.
func scanRisk(s scanner) (domain.Risk, error) {
	var (
		r           domain.Risk
		probability string
		impact      string
		status      string
		createdRaw  string
		updatedRaw  string
	)
	if err := s.Scan(&r.ID, &r.OwnerID, &r.Title, &r.Description, &r.Category, &probability, &impact, &status, &r.MitigationPlan, &r.ContingencyPlan, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Risk{}, app.ErrNotFound
		}
		return domain.Risk{}, err
	}
	r.Probability = domain.RiskLevel(probability)
	r.Impact = domain.RiskLevel(impact)
	r.Status = domain.RiskStatus(status)
	r.CreatedAt = parseTS(createdRaw)
	r.UpdatedAt = parseTS(updatedRaw)
	return r, nil
}

// scanFollowUp handles scan follow-up.
func scanFollowUp(s scanner) (domain.FollowUp, error) {
	var (
		f          domain.FollowUp
		priority   string
		status     string
		dueRaw     sql.NullString
		checkRaw   sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&f.ID, &f.OwnerID, &f.Title, &f.Assignee, &f.Requester, &f.Person, &priority, &status, &dueRaw, &checkRaw, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FollowUp{}, app.ErrNotFound
		}
		return domain.FollowUp{}, err
	}
	f.Priority = domain.Priority(priority)
	f.Status = domain.FollowUpStatus(status)
	f.DueDate = parseNullTS(dueRaw)
	f.LastCheckIn = parseNullTS(checkRaw)
	f.CreatedAt = parseTS(createdRaw)
	f.UpdatedAt = parseTS(updatedRaw)
	return f, nil
}

// scanAssessment handles scan assessment.
func scanAssessment(s scanner) (domain.Assessment, error) {
	var (
		a          domain.Assessment
		weekRaw    string
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&a.ID, &a.OwnerID, &weekRaw, &a.LeadershipNotes, &a.TeamSupportNotes, &a.StrategyNotes, &a.CommunicationNotes, &a.ImprovementAreas, &a.OverallRating, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Assessment{}, app.ErrNotFound
		}
		return domain.Assessment{}, err
	}
	a.WeekStart = parseTS(weekRaw)
	a.CreatedAt = parseTS(createdRaw)
	a.UpdatedAt = parseTS(updatedRaw)
	return a, nil
}

// scanActivity handles scan activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		event       domain.Activity
		typ         string
		metadataRaw string
		createdRaw  string
	)
	if err := s.Scan(&event.ID, &event.OwnerID, &typ, &event.Description, &event.EntityID, &event.EntityType, &metadataRaw, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Activity{}, app.ErrNotFound
		}
		return domain.Activity{}, err
	}
	event.Type = domain.ActivityType(typ)
	if strings.TrimSpace(metadataRaw) == "" {
		metadataRaw = "{}"
	}
	if err := json.Unmarshal([]byte(metadataRaw), &event.Metadata); err != nil {
		return domain.Activity{}, fmt.Errorf("decode activity metadata_json: %w", err)
	}
	if len(event.Metadata) == 0 {
		event.Metadata = nil
	}
	event.CreatedAt = parseTS(createdRaw)
	return event, nil
}

// translateNoRows handles translate no rows.
func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

// ts handles ts.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// nullableTS handles nullable ts.
func nullableTS(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// nullableInt handles nullable int.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableFloat handles nullable float.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// boolToInt handles bool to int.
func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// parseTS parses input into a normalized form.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

// parseNullTS parses input into a normalized form.
func parseNullTS(v sql.NullString) *time.Time {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return nil
	}
	ts := parseTS(v.String)
	return &ts
}
