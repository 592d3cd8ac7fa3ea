package extract

import (
	"regexp"
	"strings"
	"time"
)

// Payload is a structured artifact pulled out of a generated reply
type Payload struct {
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// generalMinLength is the minimum reply length that still yields a generic
// payload when no fenced block matched.
const generalMinLength = 200

type pattern struct {
	payloadType string
	re          *regexp.Regexp
}

// Patterns are tried in order; the first match wins. The tagged fences come
// before the generic one so a tagged block is never misclassified.
var patterns = []pattern{
	{"email", regexp.MustCompile("(?s)```EMAIL\\s*\\n(.*?)```")},
	{"script", regexp.MustCompile("(?s)```SCRIPT\\s*\\n(.*?)```")},
	{"code", regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*\\s*\\n(.*?)```")},
}

// Extract pulls a structured payload out of the full generated text. It
// returns nil when the text contains no fenced block and is too short to be
// worth wrapping as a general payload.
func Extract(fullText string) *Payload {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(fullText); m != nil {
			return &Payload{
				Type:        p.payloadType,
				Content:     strings.TrimSpace(m[1]),
				ExtractedAt: time.Now(),
			}
		}
	}

	if len(fullText) >= generalMinLength {
		return &Payload{
			Type:        "general",
			Content:     fullText,
			ExtractedAt: time.Now(),
		}
	}

	return nil
}
