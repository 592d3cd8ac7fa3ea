package prompt

import (
	"strings"
)

// VoiceSettings holds optional workspace-level voice overrides appended to the
// system prompt. Empty fields are omitted entirely.
type VoiceSettings struct {
	Tone        string
	Style       string
	Terminology string
}

func (v VoiceSettings) empty() bool {
	return v.Tone == "" && v.Style == "" && v.Terminology == ""
}

// Assemble combines the module instructions, optional voice overrides, the
// windowed history, and the new user input into a (system, user) prompt pair.
// It is a pure function of its inputs.
func Assemble(module, userText string, window []Entry, voice VoiceSettings) (systemPrompt, userPrompt string, err error) {
	instructions, err := Instructions(module)
	if err != nil {
		return "", "", err
	}

	var system strings.Builder
	system.WriteString(instructions)

	if !voice.empty() {
		system.WriteString("\n\nVoice settings:")
		if voice.Tone != "" {
			system.WriteString("\n- Tone: " + voice.Tone)
		}
		if voice.Style != "" {
			system.WriteString("\n- Style: " + voice.Style)
		}
		if voice.Terminology != "" {
			system.WriteString("\n- Preferred terminology: " + voice.Terminology)
		}
	}

	if len(window) == 0 {
		return system.String(), userText, nil
	}

	var user strings.Builder
	user.WriteString("Previous Conversation:\n")
	for _, entry := range window {
		user.WriteString(roleLabel(entry.Role))
		user.WriteString(": ")
		user.WriteString(entry.Content)
		user.WriteString("\n")
	}
	user.WriteString("\nCurrent Message:\n")
	user.WriteString(userText)

	return system.String(), user.String(), nil
}

func roleLabel(role string) string {
	switch role {
	case "assistant":
		return "Assistant"
	case "user":
		return "User"
	default:
		return role
	}
}
