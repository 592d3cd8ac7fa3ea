package prompt

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

func makeHistory(count, size int) []repository.Message {
	messages := make([]repository.Message, count)
	for i := range messages {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		messages[i] = repository.Message{
			ID:      fmt.Sprintf("msg-%d", i),
			Role:    role,
			Content: strings.Repeat("x", size),
		}
	}
	return messages
}

func windowChars(window []Entry) int {
	total := 0
	for _, entry := range window {
		total += len(entry.Content)
	}
	return total
}

func TestWindow_Empty(t *testing.T) {
	assert.Nil(t, Window(nil, 20, 12000))
	assert.Nil(t, Window([]repository.Message{}, 20, 12000))
}

func TestWindow_AllFit(t *testing.T) {
	history := makeHistory(5, 100)

	window := Window(history, 20, 12000)

	assert.Len(t, window, 5)
	assert.Equal(t, "user", window[0].Role)
	assert.Equal(t, "assistant", window[1].Role)
	assert.Equal(t, 500, windowChars(window))
}

func TestWindow_MaxMessagesKeepsMostRecent(t *testing.T) {
	history := makeHistory(30, 10)
	history[29].Content = "newest"

	window := Window(history, 20, 12000)

	assert.Len(t, window, 20)
	assert.Equal(t, "newest", window[19].Content)
}

func TestWindow_CharBudgetStopsEarly(t *testing.T) {
	// 25 messages of 1000 chars, maxMessages=20, maxChars=12000:
	// the last 20 are considered, and the walk stops after 12 of them.
	history := makeHistory(25, 1000)

	window := Window(history, 20, 12000)

	assert.Len(t, window, 12)
	assert.Equal(t, 12000, windowChars(window))
}

func TestWindow_FirstMessageOverBudgetIsTruncated(t *testing.T) {
	history := makeHistory(1, 500)

	window := Window(history, 20, 100)

	assert.Len(t, window, 1)
	assert.Equal(t, 100, len(window[0].Content))
}

func TestWindow_TruncationKeepsValidUTF8(t *testing.T) {
	// 100 three-byte runes; a naive byte slice at 250 would split a rune
	history := []repository.Message{{
		ID:      "msg-0",
		Role:    "user",
		Content: strings.Repeat("☕", 100),
	}}

	window := Window(history, 20, 250)

	assert.Len(t, window, 1)
	assert.True(t, utf8.ValidString(window[0].Content))
	assert.LessOrEqual(t, len(window[0].Content), 250)
	assert.Equal(t, strings.Repeat("☕", 83), window[0].Content)
}

func TestWindow_NeverExceedsBudget(t *testing.T) {
	tests := []struct {
		name        string
		count, size int
		maxMessages int
		maxChars    int
	}{
		{"small history small budget", 3, 50, 20, 100},
		{"large history", 100, 333, 20, 12000},
		{"single huge message", 1, 50000, 20, 12000},
		{"budget of one", 10, 10, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := makeHistory(tt.count, tt.size)
			window := Window(history, tt.maxMessages, tt.maxChars)

			assert.LessOrEqual(t, windowChars(window), tt.maxChars)
			assert.NotEmpty(t, window, "window must be non-empty for non-empty history")
		})
	}
}
