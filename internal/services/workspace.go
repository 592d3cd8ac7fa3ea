package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

// WorkspaceService exposes the workspace profile and its voice settings
type WorkspaceService struct {
	workspaces repository.WorkspaceRepository
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(workspaces repository.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaces: workspaces}
}

// Get retrieves a workspace by ID
func (s *WorkspaceService) Get(ctx context.Context, id uuid.UUID) (*repository.Workspace, error) {
	workspace, err := s.workspaces.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	if workspace == nil {
		return nil, ErrNotFound
	}
	return workspace, nil
}

// VoiceUpdate carries the voice fields to change; nil fields are left as-is
type VoiceUpdate struct {
	Tone        *string `json:"tone"`
	Style       *string `json:"style"`
	Terminology *string `json:"terminology"`
}

// UpdateVoice updates the workspace voice overrides consumed by the prompt
// assembler.
func (s *WorkspaceService) UpdateVoice(ctx context.Context, id uuid.UUID, update VoiceUpdate) (*repository.Workspace, error) {
	workspace, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Tone != nil {
		updates["voice_tone"] = *update.Tone
		workspace.VoiceTone = *update.Tone
	}
	if update.Style != nil {
		updates["voice_style"] = *update.Style
		workspace.VoiceStyle = *update.Style
	}
	if update.Terminology != nil {
		updates["voice_terminology"] = *update.Terminology
		workspace.VoiceTerminology = *update.Terminology
	}

	if len(updates) == 0 {
		return workspace, nil
	}

	if err := s.workspaces.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update voice settings: %w", err)
	}

	return workspace, nil
}
