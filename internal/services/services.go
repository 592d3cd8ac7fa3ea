package services

import (
	"github.com/writedeck/writedeck-backend/internal/config"
	"github.com/writedeck/writedeck-backend/internal/providers"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

// Services holds all service instances
type Services struct {
	Conversation *ConversationService
	Chat         *ChatService
	Usage        *UsageService
	Workspace    *WorkspaceService
}

// NewServices creates all services
func NewServices(
	workspaceRepo repository.WorkspaceRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	generator providers.Generator,
	window config.ContextConfig,
) *Services {
	usage := NewUsageService(workspaceRepo)

	return &Services{
		Conversation: NewConversationService(conversationRepo, messageRepo),
		Chat:         NewChatService(conversationRepo, messageRepo, workspaceRepo, usage, generator, window),
		Usage:        usage,
		Workspace:    NewWorkspaceService(workspaceRepo),
	}
}
