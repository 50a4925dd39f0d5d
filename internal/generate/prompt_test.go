package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashgen-ai/slashgen/internal/persona"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

func TestSystemPrompt(t *testing.T) {
	profile, err := persona.NewRegistry().Get(types.PersonaFrontend)
	require.NoError(t, err)

	var b Builder
	prompt := b.SystemPrompt(profile, 5, false)

	assert.True(t, strings.HasPrefix(prompt, profile.SystemPrompt))
	assert.Contains(t, prompt, "Generate exactly 5 command(s).")
	assert.Contains(t, prompt, `must begin with "/"`)
	assert.NotContains(t, prompt, "JSON")
}

func TestSystemPromptJSONMode(t *testing.T) {
	profile, err := persona.NewRegistry().Get(types.PersonaBackend)
	require.NoError(t, err)

	var b Builder
	prompt := b.SystemPrompt(profile, 3, true)

	assert.Contains(t, prompt, "single JSON object")
	assert.Contains(t, prompt, `"commands"`)
	assert.Contains(t, prompt, `"expectedOutput"`)
}

func TestUserPrompt(t *testing.T) {
	var b Builder
	req := &types.GenerationRequest{
		Prompt:       "set up CI",
		TechStack:    []string{"React", "Node.js"},
		ProjectPhase: "testing",
	}

	prompt := b.UserPrompt(req, nil)
	assert.Equal(t, "set up CI\nTech stack: React, Node.js\nProject phase: testing", prompt)
}

func TestUserPromptWithSessionContext(t *testing.T) {
	var b Builder
	req := &types.GenerationRequest{Prompt: "optimize the build"}
	sess := &types.Session{
		Context: types.SessionContext{
			TechStack:      []string{"TypeScript"},
			RecentCommands: []string{"/build --watch"},
		},
	}

	prompt := b.UserPrompt(req, sess)
	assert.Contains(t, prompt, "Session context:")
	assert.Contains(t, prompt, "Tech stack: TypeScript")
	assert.Contains(t, prompt, "Recent commands: /build --watch")
}

func TestUserPromptBareRequest(t *testing.T) {
	var b Builder
	prompt := b.UserPrompt(&types.GenerationRequest{Prompt: "help"}, &types.Session{})
	assert.Equal(t, "help", prompt)
}
