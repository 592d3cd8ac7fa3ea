package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Workspace represents a tenant workspace that owns conversations and a usage quota
type Workspace struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	APIKeyHash       string    `db:"api_key_hash" json:"-"`
	UsageCount       int       `db:"usage_count" json:"usage_count"`
	UsageLimit       int       `db:"usage_limit" json:"usage_limit"`
	VoiceTone        string    `db:"voice_tone" json:"voice_tone"`
	VoiceStyle       string    `db:"voice_style" json:"voice_style"`
	VoiceTerminology string    `db:"voice_terminology" json:"voice_terminology"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Conversation represents a module-tagged chat thread
type Conversation struct {
	ID          string    `db:"id" json:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id" json:"workspace_id"`
	Module      string    `db:"module" json:"module"`
	Title       string    `db:"title" json:"title"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Message represents a single turn in a conversation
type Message struct {
	ID               string          `db:"id" json:"id"`
	ConversationID   string          `db:"conversation_id" json:"conversation_id"`
	Role             string          `db:"role" json:"role"`
	Content          string          `db:"content" json:"content"`
	ExtractedContent json.RawMessage `db:"extracted_content" json:"extracted_content,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// WorkspaceRepository defines workspace storage operations
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	Get(ctx context.Context, id uuid.UUID) (*Workspace, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	// IncrementUsage bumps the usage counter atomically in the store
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// ConversationRepository defines conversation storage operations
type ConversationRepository interface {
	Create(ctx context.Context, conversation *Conversation) error
	Get(ctx context.Context, id string) (*Conversation, error)
	List(ctx context.Context, workspaceID uuid.UUID, module string) ([]*Conversation, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository defines message storage operations
type MessageRepository interface {
	Create(ctx context.Context, message Message) (string, error)
	ListByConversation(ctx context.Context, conversationID string) ([]Message, error)
}
