package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

// UsageService gates generation behind a per-workspace usage quota.
//
// The gate is check-then-act: two concurrent requests from the same workspace
// can both pass MayProceed before either settles. Quotas here are soft limits,
// so the small overshoot is accepted rather than serialized behind a lock.
// The increment itself is delegated to the store and is atomic.
type UsageService struct {
	workspaces repository.WorkspaceRepository
}

// NewUsageService creates a new usage service
func NewUsageService(workspaces repository.WorkspaceRepository) *UsageService {
	return &UsageService{workspaces: workspaces}
}

// MayProceed reports whether the workspace has quota left for one more
// generation. It returns ErrQuotaExceeded when the limit is reached.
func (s *UsageService) MayProceed(ctx context.Context, workspaceID uuid.UUID) error {
	workspace, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to load workspace: %w", err)
	}
	if workspace == nil {
		return ErrNotFound
	}

	if workspace.UsageCount >= workspace.UsageLimit {
		return ErrQuotaExceeded
	}

	return nil
}

// Settle increments the usage counter. Called only after a confirmed
// successful generation.
func (s *UsageService) Settle(ctx context.Context, workspaceID uuid.UUID) error {
	return s.workspaces.IncrementUsage(ctx, workspaceID)
}
