package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

func TestUsageService_MayProceed(t *testing.T) {
	workspaces := newFakeWorkspaceRepo()
	workspace := &repository.Workspace{Name: "Acme", UsageCount: 0, UsageLimit: 2}
	require.NoError(t, workspaces.Create(context.Background(), workspace))

	usage := NewUsageService(workspaces)

	assert.NoError(t, usage.MayProceed(context.Background(), workspace.ID))

	require.NoError(t, usage.Settle(context.Background(), workspace.ID))
	assert.NoError(t, usage.MayProceed(context.Background(), workspace.ID))

	require.NoError(t, usage.Settle(context.Background(), workspace.ID))
	assert.ErrorIs(t, usage.MayProceed(context.Background(), workspace.ID), ErrQuotaExceeded)
}

func TestUsageService_UnknownWorkspace(t *testing.T) {
	usage := NewUsageService(newFakeWorkspaceRepo())

	assert.ErrorIs(t, usage.MayProceed(context.Background(), uuid.New()), ErrNotFound)
}

func TestWorkspaceService_UpdateVoice(t *testing.T) {
	workspaces := newFakeWorkspaceRepo()
	workspace := &repository.Workspace{Name: "Acme", UsageLimit: 10}
	require.NoError(t, workspaces.Create(context.Background(), workspace))

	svc := NewWorkspaceService(workspaces)

	tone := "casual"
	updated, err := svc.UpdateVoice(context.Background(), workspace.ID, VoiceUpdate{Tone: &tone})
	require.NoError(t, err)

	assert.Equal(t, "casual", updated.VoiceTone)
	assert.Empty(t, updated.VoiceStyle)

	stored, err := workspaces.Get(context.Background(), workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, "casual", stored.VoiceTone)
}
