package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

// ConversationRepository implements repository.ConversationRepository using PostgreSQL
type ConversationRepository struct {
	db *sqlx.DB
}

// NewConversationRepository creates a new PostgreSQL conversation repository
func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create creates a new conversation
func (r *ConversationRepository) Create(ctx context.Context, conversation *repository.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = time.Now()

	query := `
		INSERT INTO conversations (id, workspace_id, module, title, created_at, updated_at)
		VALUES (:id, :workspace_id, :module, :title, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, conversation)
	return err
}

// Get retrieves a conversation by ID
func (r *ConversationRepository) Get(ctx context.Context, id string) (*repository.Conversation, error) {
	var conversation repository.Conversation
	query := `
		SELECT id, workspace_id, module, title, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &conversation, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &conversation, nil
}

// List retrieves conversations for a workspace, optionally filtered by module
func (r *ConversationRepository) List(ctx context.Context, workspaceID uuid.UUID, module string) ([]*repository.Conversation, error) {
	var conversations []*repository.Conversation

	if module != "" {
		query := `
			SELECT id, workspace_id, module, title, created_at, updated_at
			FROM conversations
			WHERE workspace_id = $1 AND module = $2
			ORDER BY updated_at DESC
		`
		if err := r.db.SelectContext(ctx, &conversations, query, workspaceID, module); err != nil {
			return nil, err
		}
		return conversations, nil
	}

	query := `
		SELECT id, workspace_id, module, title, created_at, updated_at
		FROM conversations
		WHERE workspace_id = $1
		ORDER BY updated_at DESC
	`
	if err := r.db.SelectContext(ctx, &conversations, query, workspaceID); err != nil {
		return nil, err
	}

	return conversations, nil
}

// Update updates a conversation
func (r *ConversationRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
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

	query := "UPDATE conversations SET " + setClause + " WHERE id = :id"

	_, err := r.db.NamedExecContext(ctx, query, params)
	return err
}

// Delete deletes a conversation; messages cascade at the schema level
func (r *ConversationRepository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM conversations WHERE id = $1"
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
