package store

import (
	"context"
	"database/sql"
	"time"
)

type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id string) error
	CountProjects(ctx context.Context) (int, error)

	CreateExport(ctx context.Context, e *Export) error
	GetExport(ctx context.Context, id string) (*Export, error)
	ListExports(ctx context.Context, projectID string, limit int) ([]*Export, error)
	UpdateExportStatus(ctx context.Context, id, status, errorMsg string) error

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, p *Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, timeline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, string(p.Timeline), p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, timeline, created_at, updated_at
		FROM projects WHERE id = ?
	`, id)

	var p Project
	var timeline string
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &timeline, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Timeline = []byte(timeline)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, timeline, created_at, updated_at
		FROM projects ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		var p Project
		var timeline string
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &timeline, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.Timeline = []byte(timeline)
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func (r *SQLiteRepository) UpdateProject(ctx context.Context, p *Project) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, timeline = ?, updated_at = datetime('now') WHERE id = ?
	`, p.Name, string(p.Timeline), p.ID)
	return err
}

func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) CountProjects(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count)
	return count, err
}

func (r *SQLiteRepository) CreateExport(ctx context.Context, e *Export) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exports (id, project_id, format, output_path, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.ProjectID, e.Format, e.OutputPath, e.Status, nullString(e.Error),
		e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetExport(ctx context.Context, id string) (*Export, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, format, output_path, status, error, created_at, updated_at
		FROM exports WHERE id = ?
	`, id)

	var e Export
	var errMsg sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&e.ID, &e.ProjectID, &e.Format, &e.OutputPath, &e.Status, &errMsg, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Error = errMsg.String
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &e, nil
}

func (r *SQLiteRepository) ListExports(ctx context.Context, projectID string, limit int) ([]*Export, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, project_id, format, output_path, status, error, created_at, updated_at
		FROM exports ORDER BY created_at DESC LIMIT ?`
	args := []any{limit}
	if projectID != "" {
		query = `
		SELECT id, project_id, format, output_path, status, error, created_at, updated_at
		FROM exports WHERE project_id = ? ORDER BY created_at DESC LIMIT ?`
		args = []any{projectID, limit}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []*Export
	for rows.Next() {
		var e Export
		var errMsg sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Format, &e.OutputPath, &e.Status, &errMsg, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		e.Error = errMsg.String
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		exports = append(exports, &e)
	}
	return exports, rows.Err()
}

func (r *SQLiteRepository) UpdateExportStatus(ctx context.Context, id, status, errorMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE exports SET status = ?, error = ?, updated_at = datetime('now') WHERE id = ?
	`, status, nullString(errorMsg), id)
	return err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
