package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/writedeck/writedeck-backend/internal/config"
	"github.com/writedeck/writedeck-backend/internal/extract"
	"github.com/writedeck/writedeck-backend/internal/prompt"
	"github.com/writedeck/writedeck-backend/internal/providers"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

// apologyTemplate is the content of the assistant turn persisted when the
// upstream generation fails. The transcript stays coherent and the failed
// attempt is never billed.
const apologyTemplate = "I apologize, but I encountered an error while generating a response: %s. Please try again."

// StreamEvent is one event relayed to the client during a streamed turn.
// Zero or more "text" events are followed by exactly one terminal event,
// either "done" or "error".
type StreamEvent struct {
	Type               string `json:"type"`
	Content            string `json:"content,omitempty"`
	Title              string `json:"title,omitempty"`
	AssistantMessageID string `json:"assistantMessageId,omitempty"`
	FullContent        string `json:"fullContent,omitempty"`
	Error              string `json:"error,omitempty"`
}

// TurnResult is the outcome of a synchronous (non-streaming) turn
type TurnResult struct {
	UserMessage      repository.Message `json:"user_message"`
	AssistantMessage repository.Message `json:"assistant_message"`
	Title            string             `json:"title,omitempty"`
}

// ChatService drives one user-message-to-assistant-reply turn: quota gate,
// user message persistence, auto-titling, prompt assembly, generation,
// assistant message persistence, and usage settlement.
type ChatService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	workspaces    repository.WorkspaceRepository
	usage         *UsageService
	generator     providers.Generator
	window        config.ContextConfig
	log           *logrus.Entry
}

// NewChatService creates a new chat service
func NewChatService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	workspaces repository.WorkspaceRepository,
	usage *UsageService,
	generator providers.Generator,
	window config.ContextConfig,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		workspaces:    workspaces,
		usage:         usage,
		generator:     generator,
		window:        window,
		log:           logrus.WithField("component", "chat"),
	}
}

// turn carries the state shared by the setup steps of both variants
type turn struct {
	userMessage  repository.Message
	newTitle     string
	systemPrompt string
	userPrompt   string
}

// SendMessage runs a full turn without streaming and returns both persisted
// messages. An upstream generation failure is recovered into an apologetic
// assistant turn rather than failing the request; quota and ownership
// violations abort before any write.
func (s *ChatService) SendMessage(ctx context.Context, workspaceID uuid.UUID, conversationID, content string) (*TurnResult, error) {
	t, err := s.beginTurn(ctx, workspaceID, conversationID, content)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{
		UserMessage: t.userMessage,
		Title:       t.newTitle,
	}

	fullText, err := s.generator.Complete(ctx, providers.GenerationRequest{
		SystemPrompt: t.systemPrompt,
		UserPrompt:   t.userPrompt,
	})
	if err != nil {
		s.log.WithError(err).WithField("conversation_id", conversationID).Warn("generation failed")
		assistant, persistErr := s.persistAssistant(ctx, conversationID, fmt.Sprintf(apologyTemplate, err.Error()), nil)
		if persistErr != nil {
			return nil, persistErr
		}
		result.AssistantMessage = assistant
		return result, nil
	}

	assistant, err := s.persistAssistant(ctx, conversationID, fullText, extract.Extract(fullText))
	if err != nil {
		return nil, err
	}

	if err := s.usage.Settle(ctx, workspaceID); err != nil {
		// The reply is already persisted; losing one increment is preferable
		// to failing the turn. Log and continue.
		s.log.WithError(err).WithField("workspace_id", workspaceID).Error("failed to settle usage")
	}

	result.AssistantMessage = assistant
	return result, nil
}

// StreamMessage runs a full turn and streams the reply as events. NotFound and
// Forbidden are returned synchronously, before the stream starts; everything
// after that, including a denied quota, is reported in-stream.
//
// The returned channel is closed after the terminal event. The caller must
// drain it even after its client goes away: generation, persistence and
// settlement run to completion regardless of client presence.
func (s *ChatService) StreamMessage(ctx context.Context, workspaceID uuid.UUID, conversationID, content string) (<-chan StreamEvent, error) {
	conversation, err := s.getOwned(ctx, workspaceID, conversationID)
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent)

	// The client may disconnect mid-stream; the in-flight generation is not
	// free to cancel and its result should not be lost, so the whole session
	// runs on a context detached from the request.
	sessionCtx := context.WithoutCancel(ctx)

	go s.runSession(sessionCtx, conversation, workspaceID, content, events)

	return events, nil
}

// runSession is the state machine of one streamed turn
func (s *ChatService) runSession(ctx context.Context, conversation *repository.Conversation, workspaceID uuid.UUID, content string, events chan<- StreamEvent) {
	defer close(events)

	log := s.log.WithFields(logrus.Fields{
		"conversation_id": conversation.ID,
		"workspace_id":    workspaceID,
	})

	t, err := s.setupTurn(ctx, conversation, workspaceID, content)
	if err != nil {
		events <- errorEvent(err)
		return
	}

	fragments, err := s.generator.StreamComplete(ctx, providers.GenerationRequest{
		SystemPrompt: t.systemPrompt,
		UserPrompt:   t.userPrompt,
	})
	if err != nil {
		s.recoverFailedGeneration(ctx, conversation.ID, err.Error(), events, log)
		return
	}

	var accumulator strings.Builder
	firstText := true
	sawTerminal := false

	for fragment := range fragments {
		switch {
		case fragment.Error != "":
			sawTerminal = true
			s.recoverFailedGeneration(ctx, conversation.ID, fragment.Error, events, log)
			return

		case fragment.FinishReason != "":
			sawTerminal = true

		case fragment.Delta != "":
			accumulator.WriteString(fragment.Delta)
			event := StreamEvent{Type: "text", Content: fragment.Delta}
			if firstText {
				event.Title = t.newTitle
				firstText = false
			}
			events <- event
		}
	}

	if !sawTerminal {
		// The adapter contract promises a terminal fragment; a bare close
		// means the upstream died without saying so.
		s.recoverFailedGeneration(ctx, conversation.ID, "stream ended unexpectedly", events, log)
		return
	}

	fullText := accumulator.String()

	assistant, err := s.persistAssistant(ctx, conversation.ID, fullText, extract.Extract(fullText))
	if err != nil {
		log.WithError(err).Error("failed to persist assistant message")
		events <- errorEvent(err)
		return
	}

	if err := s.usage.Settle(ctx, workspaceID); err != nil {
		log.WithError(err).Error("failed to settle usage")
	}

	events <- StreamEvent{
		Type:               "done",
		AssistantMessageID: assistant.ID,
		FullContent:        fullText,
	}
}

// beginTurn runs the pre-generation steps for the synchronous variant,
// surfacing gate and ownership failures as errors.
func (s *ChatService) beginTurn(ctx context.Context, workspaceID uuid.UUID, conversationID, content string) (*turn, error) {
	conversation, err := s.getOwned(ctx, workspaceID, conversationID)
	if err != nil {
		return nil, err
	}
	return s.setupTurn(ctx, conversation, workspaceID, content)
}

// setupTurn performs gate check, user message persistence, auto-titling and
// prompt assembly. The gate is re-checked here on every attempt.
func (s *ChatService) setupTurn(ctx context.Context, conversation *repository.Conversation, workspaceID uuid.UUID, content string) (*turn, error) {
	if err := s.usage.MayProceed(ctx, workspaceID); err != nil {
		return nil, err
	}

	workspace, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	if workspace == nil {
		return nil, ErrNotFound
	}

	// History is captured before the new user message is appended; the new
	// input enters the prompt separately, as the current message.
	history, err := s.messages.ListByConversation(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	userMessage := repository.Message{
		ConversationID: conversation.ID,
		Role:           "user",
		Content:        content,
	}
	userID, err := s.messages.Create(ctx, userMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to persist user message: %w", err)
	}
	userMessage.ID = userID
	userMessage.CreatedAt = time.Now()

	t := &turn{userMessage: userMessage}

	// First reply on a still-placeholder title names the conversation after
	// the user's opening message. Happens at most once, before streaming, so
	// the title can ride on the very first event.
	if len(history) == 0 && conversation.Title == TitleSentinel {
		t.newTitle = DeriveTitle(content)
		if err := s.conversations.Update(ctx, conversation.ID, map[string]interface{}{"title": t.newTitle}); err != nil {
			return nil, fmt.Errorf("failed to auto-title conversation: %w", err)
		}
		conversation.Title = t.newTitle
	} else {
		if err := s.conversations.Update(ctx, conversation.ID, map[string]interface{}{}); err != nil {
			return nil, fmt.Errorf("failed to touch conversation: %w", err)
		}
	}

	window := prompt.Window(history, s.window.MaxMessages, s.window.MaxChars)

	systemPrompt, userPrompt, err := prompt.Assemble(conversation.Module, content, window, prompt.VoiceSettings{
		Tone:        workspace.VoiceTone,
		Style:       workspace.VoiceStyle,
		Terminology: workspace.VoiceTerminology,
	})
	if err != nil {
		return nil, err
	}

	t.systemPrompt = systemPrompt
	t.userPrompt = userPrompt
	return t, nil
}

// recoverFailedGeneration turns an upstream failure into an apologetic
// assistant turn and a terminal error event. Usage is never settled here.
func (s *ChatService) recoverFailedGeneration(ctx context.Context, conversationID, errMsg string, events chan<- StreamEvent, log *logrus.Entry) {
	log.WithField("error", errMsg).Warn("generation failed")

	if _, err := s.persistAssistant(ctx, conversationID, fmt.Sprintf(apologyTemplate, errMsg), nil); err != nil {
		log.WithError(err).Error("failed to persist apology message")
	}

	events <- StreamEvent{Type: "error", Error: errMsg}
}

// persistAssistant stores the assistant turn with any extracted payload and
// bumps the conversation timestamp.
func (s *ChatService) persistAssistant(ctx context.Context, conversationID, content string, payload *extract.Payload) (repository.Message, error) {
	message := repository.Message{
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        content,
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return repository.Message{}, fmt.Errorf("failed to encode extracted content: %w", err)
		}
		message.ExtractedContent = data
	}

	id, err := s.messages.Create(ctx, message)
	if err != nil {
		return repository.Message{}, fmt.Errorf("failed to persist assistant message: %w", err)
	}
	message.ID = id
	message.CreatedAt = time.Now()

	if err := s.conversations.Update(ctx, conversationID, map[string]interface{}{}); err != nil {
		s.log.WithError(err).WithField("conversation_id", conversationID).Error("failed to touch conversation")
	}

	return message, nil
}

func (s *ChatService) getOwned(ctx context.Context, workspaceID uuid.UUID, conversationID string) (*repository.Conversation, error) {
	conversation, err := s.conversations.Get(ctx, conversationID)
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

func errorEvent(err error) StreamEvent {
	msg := err.Error()
	if errors.Is(err, ErrQuotaExceeded) {
		msg = "Usage limit reached. Please upgrade your plan to continue."
	}
	return StreamEvent{Type: "error", Error: msg}
}
