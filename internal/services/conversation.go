package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/writedeck/writedeck-backend/internal/prompt"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

// TitleSentinel is the placeholder title a conversation carries until its
// first reply, when it is rewritten from the first user message.
const TitleSentinel = "New Conversation"

// titleMaxLength bounds auto-generated conversation titles
const titleMaxLength = 50

// ConversationService manages conversation lifecycle and ownership
type ConversationService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
}

// NewConversationService creates a new conversation service
func NewConversationService(conversations repository.ConversationRepository, messages repository.MessageRepository) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		messages:      messages,
	}
}

// Create creates a new conversation for a workspace. An unknown module tag is
// rejected here, before any turn is attempted against it.
func (s *ConversationService) Create(ctx context.Context, workspaceID uuid.UUID, module, title string) (*repository.Conversation, error) {
	if !prompt.SupportedModule(module) {
		return nil, fmt.Errorf("%w: %s", prompt.ErrUnsupportedModule, module)
	}

	if title == "" {
		title = TitleSentinel
	}

	conversation := &repository.Conversation{
		WorkspaceID: workspaceID,
		Module:      module,
		Title:       title,
	}

	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return conversation, nil
}

// Get retrieves a conversation owned by the workspace
func (s *ConversationService) Get(ctx context.Context, workspaceID uuid.UUID, id string) (*repository.Conversation, error) {
	conversation, err := s.conversations.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conversation == nil {
		return nil, ErrNotFound
	}
	if conversation.WorkspaceID != workspaceID {
		return nil, ErrForbidden
	}

	return conversation, nil
}

// GetWithMessages retrieves a conversation and its messages, oldest first
func (s *ConversationService) GetWithMessages(ctx context.Context, workspaceID uuid.UUID, id string) (*repository.Conversation, []repository.Message, error) {
	conversation, err := s.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.messages.ListByConversation(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load messages: %w", err)
	}

	return conversation, messages, nil
}

// List returns the workspace's conversations, optionally filtered by module
func (s *ConversationService) List(ctx context.Context, workspaceID uuid.UUID, module string) ([]*repository.Conversation, error) {
	return s.conversations.List(ctx, workspaceID, module)
}

// Rename sets a conversation title
func (s *ConversationService) Rename(ctx context.Context, workspaceID uuid.UUID, id, title string) (*repository.Conversation, error) {
	conversation, err := s.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if err := s.conversations.Update(ctx, id, map[string]interface{}{"title": title}); err != nil {
		return nil, fmt.Errorf("failed to rename conversation: %w", err)
	}

	conversation.Title = title
	return conversation, nil
}

// Delete removes a conversation and its messages
func (s *ConversationService) Delete(ctx context.Context, workspaceID uuid.UUID, id string) error {
	if _, err := s.Get(ctx, workspaceID, id); err != nil {
		return err
	}
	return s.conversations.Delete(ctx, id)
}

// DeriveTitle builds a conversation title from the first user message:
// whitespace is trimmed and collapsed, and the result is truncated to
// titleMaxLength with an ellipsis marker when it overflows.
func DeriveTitle(userText string) string {
	collapsed := strings.Join(strings.Fields(userText), " ")
	if collapsed == "" {
		return TitleSentinel
	}
	if len(collapsed) <= titleMaxLength {
		return collapsed
	}

	// Back off to a rune boundary so the cut never produces invalid UTF-8
	cut := titleMaxLength
	for cut > 0 && !utf8.RuneStart(collapsed[cut]) {
		cut--
	}
	return collapsed[:cut] + "..."
}
