package prompt

import (
	"errors"
	"fmt"
)

// ErrUnsupportedModule is returned when a module tag has no registered instructions
var ErrUnsupportedModule = errors.New("unsupported module")

// Module tags understood by the prompt registry
const (
	ModuleEmail   = "email"
	ModuleScript  = "script"
	ModuleSocial  = "social"
	ModuleBlog    = "blog"
	ModuleGeneral = "general"
)

// moduleInstructions maps a module tag to its base instruction text. The map is
// built once at init and never mutated afterwards.
var moduleInstructions = map[string]string{
	ModuleEmail: `You are an expert email copywriter. Help the user draft clear, persuasive emails.
When you produce a complete email, wrap it in a fenced block tagged EMAIL so it can be reused directly:

` + "```EMAIL" + `
Subject: ...
Body...
` + "```",

	ModuleScript: `You are an expert video script writer. Help the user write engaging scripts with strong hooks.
When you produce a complete script, wrap it in a fenced block tagged SCRIPT:

` + "```SCRIPT" + `
[Scene directions and dialogue]
` + "```",

	ModuleSocial: `You are a social media strategist. Help the user write concise, high-engagement posts.
Keep platform constraints in mind and lead with the hook.`,

	ModuleBlog: `You are an experienced long-form content editor. Help the user outline and draft blog posts
with clear structure, descriptive headings, and a consistent narrative thread.`,

	ModuleGeneral: `You are a helpful writing assistant. Answer the user's questions and help improve their writing.`,
}

// SupportedModule reports whether the module tag has registered instructions
func SupportedModule(module string) bool {
	_, ok := moduleInstructions[module]
	return ok
}

// Instructions returns the base instruction text for a module tag
func Instructions(module string) (string, error) {
	text, ok := moduleInstructions[module]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedModule, module)
	}
	return text, nil
}

// Modules returns the list of supported module tags
func Modules() []string {
	tags := make([]string, 0, len(moduleInstructions))
	for tag := range moduleInstructions {
		tags = append(tags, tag)
	}
	return tags
}
