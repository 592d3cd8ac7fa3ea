package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

// WorkspaceRepository implements repository.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	db *sqlx.DB
}

// NewWorkspaceRepository creates a new PostgreSQL workspace repository
func NewWorkspaceRepository(db *sqlx.DB) repository.WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *repository.Workspace) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}
	workspace.CreatedAt = time.Now()
	workspace.UpdatedAt = time.Now()

	query := `
		INSERT INTO workspaces (id, name, api_key_hash, usage_count, usage_limit, voice_tone, voice_style, voice_terminology, created_at, updated_at)
		VALUES (:id, :name, :api_key_hash, :usage_count, :usage_limit, :voice_tone, :voice_style, :voice_terminology, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, workspace)
	return err
}

// Get retrieves a workspace by ID
func (r *WorkspaceRepository) Get(ctx context.Context, id uuid.UUID) (*repository.Workspace, error) {
	var workspace repository.Workspace
	query := `
		SELECT id, name, api_key_hash, usage_count, usage_limit, voice_tone, voice_style, voice_terminology, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &workspace, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &workspace, nil
}

// Update updates a workspace
func (r *WorkspaceRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	setClause := ""
	params := map[string]interface{}{"id": id}

	for key, value := range updates {
		if setClause != "" {
			setClause += ", "
		}
		setClause += key + " = :" + key
		params[key] = value
	}

	query := "UPDATE workspaces SET " + setClause + " WHERE id = :id"

	_, err := r.db.NamedExecContext(ctx, query, params)
	return err
}

// IncrementUsage bumps the usage counter. The increment is computed in SQL so
// concurrent settlements never lose an update.
func (r *WorkspaceRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE workspaces SET usage_count = usage_count + 1, updated_at = $2 WHERE id = $1"
	_, err := r.db.ExecContext(ctx, query, id, time.Now())
	return err
}
