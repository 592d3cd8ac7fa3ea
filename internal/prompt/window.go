package prompt

import (
	"unicode/utf8"

	"github.com/writedeck/writedeck-backend/internal/repository"
)

// Entry is one role/content pair in a context window
type Entry struct {
	Role    string
	Content string
}

// Window builds a bounded context window from an ordered message history.
//
// It keeps the most recent maxMessages messages and walks them oldest to
// newest, accumulating content length. A message that would push the total
// past maxChars ends the window early, except when the window is still empty:
// then the message is truncated to maxChars and included so a non-empty
// history always yields a non-empty window.
func Window(messages []repository.Message, maxMessages, maxChars int) []Entry {
	if len(messages) == 0 || maxMessages <= 0 || maxChars <= 0 {
		return nil
	}

	if len(messages) > maxMessages {
		messages = messages[len(messages)-maxMessages:]
	}

	window := make([]Entry, 0, len(messages))
	total := 0

	for _, msg := range messages {
		content := msg.Content
		if total+len(content) > maxChars {
			if len(window) > 0 {
				break
			}
			window = append(window, Entry{Role: msg.Role, Content: truncate(content, maxChars)})
			break
		}
		window = append(window, Entry{Role: msg.Role, Content: content})
		total += len(content)
	}

	return window
}

// truncate cuts s to at most limit bytes, backing off to a rune boundary so
// the result is always valid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
