package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EmailBlock(t *testing.T) {
	text := "Here is your email:\n\n```EMAIL\nSubject: Welcome\n\nHi there!\n```\n\nLet me know."

	payload := Extract(text)

	require.NotNil(t, payload)
	assert.Equal(t, "email", payload.Type)
	assert.Equal(t, "Subject: Welcome\n\nHi there!", payload.Content)
	assert.False(t, payload.ExtractedAt.IsZero())
}

func TestExtract_ScriptBlock(t *testing.T) {
	text := "```SCRIPT\n[Opening shot]\nHOST: Welcome back!\n```"

	payload := Extract(text)

	require.NotNil(t, payload)
	assert.Equal(t, "script", payload.Type)
	assert.Equal(t, "[Opening shot]\nHOST: Welcome back!", payload.Content)
}

func TestExtract_GenericFence(t *testing.T) {
	text := "Try this:\n```python\nprint(\"hello\")\n```"

	payload := Extract(text)

	require.NotNil(t, payload)
	assert.Equal(t, "code", payload.Type)
	assert.Equal(t, "print(\"hello\")", payload.Content)
}

func TestExtract_TaggedBlockWinsOverGeneric(t *testing.T) {
	text := "```EMAIL\nSubject: A\n```\nand also\n```\nsome code\n```"

	payload := Extract(text)

	require.NotNil(t, payload)
	assert.Equal(t, "email", payload.Type)
}

func TestExtract_LongTextFallsBackToGeneral(t *testing.T) {
	text := strings.Repeat("A thoughtful reply. ", 20)

	payload := Extract(text)

	require.NotNil(t, payload)
	assert.Equal(t, "general", payload.Type)
	assert.Equal(t, text, payload.Content)
}

func TestExtract_ShortTextYieldsNothing(t *testing.T) {
	assert.Nil(t, Extract("Sure!"))
	assert.Nil(t, Extract(""))
}
