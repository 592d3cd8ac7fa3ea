package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/writedeck/writedeck-backend/internal/providers"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

type fakeWorkspaceRepo struct {
	mu         sync.Mutex
	workspaces map[uuid.UUID]*repository.Workspace
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: map[uuid.UUID]*repository.Workspace{}}
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, workspace *repository.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}
	copied := *workspace
	r.workspaces[workspace.ID] = &copied
	return nil
}

func (r *fakeWorkspaceRepo) Get(_ context.Context, id uuid.UUID) (*repository.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	workspace, ok := r.workspaces[id]
	if !ok {
		return nil, nil
	}
	copied := *workspace
	return &copied, nil
}

func (r *fakeWorkspaceRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	workspace, ok := r.workspaces[id]
	if !ok {
		return errors.New("workspace not found")
	}
	if tone, ok := updates["voice_tone"].(string); ok {
		workspace.VoiceTone = tone
	}
	if style, ok := updates["voice_style"].(string); ok {
		workspace.VoiceStyle = style
	}
	if terminology, ok := updates["voice_terminology"].(string); ok {
		workspace.VoiceTerminology = terminology
	}
	return nil
}

func (r *fakeWorkspaceRepo) IncrementUsage(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	workspace, ok := r.workspaces[id]
	if !ok {
		return errors.New("workspace not found")
	}
	workspace.UsageCount++
	return nil
}

func (r *fakeWorkspaceRepo) usageCount(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.workspaces[id].UsageCount
}

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*repository.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: map[string]*repository.Conversation{}}
}

func (r *fakeConversationRepo) Create(_ context.Context, conversation *repository.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = time.Now()
	copied := *conversation
	r.conversations[conversation.ID] = &copied
	return nil
}

func (r *fakeConversationRepo) Get(_ context.Context, id string) (*repository.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, nil
	}
	copied := *conversation
	return &copied, nil
}

func (r *fakeConversationRepo) List(_ context.Context, workspaceID uuid.UUID, module string) ([]*repository.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*repository.Conversation
	for _, conversation := range r.conversations {
		if conversation.WorkspaceID != workspaceID {
			continue
		}
		if module != "" && conversation.Module != module {
			continue
		}
		copied := *conversation
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeConversationRepo) Update(_ context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return errors.New("conversation not found")
	}
	if title, ok := updates["title"].(string); ok {
		conversation.Title = title
	}
	conversation.UpdatedAt = time.Now()
	return nil
}

func (r *fakeConversationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, id)
	return nil
}

func (r *fakeConversationRepo) title(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conversations[id].Title
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []repository.Message
	failNext bool
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, message repository.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext {
		r.failNext = false
		return "", errors.New("storage unavailable")
	}
	message.ID = uuid.New().String()
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, message)
	return message.ID, nil
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID string) ([]repository.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []repository.Message
	for _, message := range r.messages {
		if message.ConversationID == conversationID {
			result = append(result, message)
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) failNextCreate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = true
}

func (r *fakeMessageRepo) byConversation(conversationID string) []repository.Message {
	result, _ := r.ListByConversation(context.Background(), conversationID)
	return result
}

// fakeGenerator plays back a scripted stream and a scripted one-shot result
type fakeGenerator struct {
	fragments    []providers.Fragment
	streamErr    error
	completeText string
	completeErr  error
}

func (g *fakeGenerator) Complete(_ context.Context, _ providers.GenerationRequest) (string, error) {
	return g.completeText, g.completeErr
}

func (g *fakeGenerator) StreamComplete(_ context.Context, _ providers.GenerationRequest) (<-chan providers.Fragment, error) {
	if g.streamErr != nil {
		return nil, g.streamErr
	}

	fragments := make(chan providers.Fragment)
	go func() {
		defer close(fragments)
		for _, fragment := range g.fragments {
			fragments <- fragment
		}
	}()
	return fragments, nil
}
