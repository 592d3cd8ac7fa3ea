package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/writedeck/writedeck-backend/internal/prompt"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "short text unchanged",
			input:    "Write a tweet about coffee",
			expected: "Write a tweet about coffee",
		},
		{
			name:     "whitespace collapsed and trimmed",
			input:    "  Write \n a   tweet\tabout coffee  ",
			expected: "Write a tweet about coffee",
		},
		{
			name:     "long text truncated with ellipsis",
			input:    strings.Repeat("word ", 30),
			expected: strings.Repeat("word ", 30)[:50] + "...",
		},
		{
			name:     "blank input falls back to sentinel",
			input:    "   \n\t  ",
			expected: TitleSentinel,
		},
		{
			name:     "multibyte truncation lands on a rune boundary",
			input:    strings.Repeat("☕", 20),
			expected: strings.Repeat("☕", 16) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title := DeriveTitle(tt.input)
			assert.Equal(t, tt.expected, title)
			assert.LessOrEqual(t, len(title), titleMaxLength+3)
			assert.True(t, utf8.ValidString(title))
		})
	}
}

func TestConversationService_CreateUnknownModule(t *testing.T) {
	svc := NewConversationService(newFakeConversationRepo(), newFakeMessageRepo())

	_, err := svc.Create(context.Background(), uuid.New(), "spreadsheet", "")

	assert.ErrorIs(t, err, prompt.ErrUnsupportedModule)
}

func TestConversationService_CreateDefaultsTitle(t *testing.T) {
	svc := NewConversationService(newFakeConversationRepo(), newFakeMessageRepo())

	conversation, err := svc.Create(context.Background(), uuid.New(), prompt.ModuleEmail, "")
	require.NoError(t, err)

	assert.Equal(t, TitleSentinel, conversation.Title)
	assert.NotEmpty(t, conversation.ID)
}

func TestConversationService_OwnershipChecks(t *testing.T) {
	conversations := newFakeConversationRepo()
	messages := newFakeMessageRepo()
	svc := NewConversationService(conversations, messages)

	owner := uuid.New()
	stranger := uuid.New()

	conversation, err := svc.Create(context.Background(), owner, prompt.ModuleGeneral, "mine")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), owner, conversation.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), stranger, conversation.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(context.Background(), owner, uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), stranger, conversation.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(context.Background(), owner, conversation.ID)
	assert.NoError(t, err)
}

func TestConversationService_Rename(t *testing.T) {
	conversations := newFakeConversationRepo()
	svc := NewConversationService(conversations, newFakeMessageRepo())

	owner := uuid.New()
	conversation, err := svc.Create(context.Background(), owner, prompt.ModuleBlog, "")
	require.NoError(t, err)

	renamed, err := svc.Rename(context.Background(), owner, conversation.ID, "Q3 launch post")
	require.NoError(t, err)

	assert.Equal(t, "Q3 launch post", renamed.Title)
	stored, _ := conversations.Get(context.Background(), conversation.ID)
	assert.Equal(t, "Q3 launch post", stored.Title)
}
