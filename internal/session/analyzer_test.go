package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

// The reference fixture: tech stack, commands and phase all contribute
// suggestions; output is deduplicated, first-seen order, capped at 3.
func TestAnalyzeDeterministicFixture(t *testing.T) {
	session := &types.Session{
		Context: types.SessionContext{
			TechStack:      []string{"React", "Node.js"},
			RecentCommands: []string{"/build --x", "/scan --y"},
			ProjectPhase:   "testing",
		},
	}

	first := Analyze(session)
	second := Analyze(session)
	require.Equal(t, first, second, "analysis must be deterministic")

	assert.Equal(t,
		[]types.PersonaID{types.PersonaFrontend, types.PersonaBackend, types.PersonaArchitect},
		first.SuggestedPersonas)
	assert.LessOrEqual(t, len(first.SuggestedPersonas), 3)
	assert.Contains(t, first.Insights, "Working with: React, Node.js")
	assert.Contains(t, first.Insights, "Project phase: testing")
}

func TestAnalyzeEmptyStackRecommendation(t *testing.T) {
	analysis := Analyze(&types.Session{})

	assert.Empty(t, analysis.SuggestedPersonas)
	assert.Contains(t, analysis.Recommendations,
		"Specify a tech stack to get more relevant command suggestions")
	assert.Contains(t, analysis.Recommendations,
		"Set a default persona in your preferences to streamline requests")
}

func TestAnalyzeCommandCategories(t *testing.T) {
	tests := []struct {
		command string
		want    []types.PersonaID
	}{
		{"/build --react", []types.PersonaID{types.PersonaArchitect, types.PersonaFrontend}},
		{"/troubleshoot --prod", []types.PersonaID{types.PersonaAnalyzer, types.PersonaPerformance}},
		{"/scan --owasp", []types.PersonaID{types.PersonaSecurity, types.PersonaQA}},
		{"/improve --quality", []types.PersonaID{types.PersonaRefactorer, types.PersonaPerformance}},
		{"/unknown --flag", []types.PersonaID{}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			analysis := Analyze(&types.Session{
				Context: types.SessionContext{
					TechStack:      []string{"Svelte"}, // outside every keyword set
					RecentCommands: []string{tt.command},
				},
			})
			assert.Equal(t, tt.want, analysis.SuggestedPersonas)
		})
	}
}

func TestAnalyzeUnrecognizedPhaseContributesNothing(t *testing.T) {
	analysis := Analyze(&types.Session{
		Context: types.SessionContext{ProjectPhase: "hypercare"},
	})

	assert.Empty(t, analysis.SuggestedPersonas)
	assert.Contains(t, analysis.Insights, "Project phase: hypercare")
}

func TestAnalyzeRotationRecommendation(t *testing.T) {
	analysis := Analyze(&types.Session{
		Preferences: types.SessionPreferences{DefaultPersona: types.PersonaQA},
		Context: types.SessionContext{
			RecentCommands: []string{"/a --1", "/b --2", "/c --3", "/d --4", "/e --5", "/f --6"},
		},
	})

	assert.Contains(t, analysis.Recommendations,
		"Consider rotating personas for a fresh perspective on your project")
	assert.NotContains(t, analysis.Recommendations,
		"Set a default persona in your preferences to streamline requests")
}

func TestContextPrompt(t *testing.T) {
	session := &types.Session{
		Context: types.SessionContext{
			TechStack:        []string{"React", "TypeScript"},
			ProjectPhase:     "development",
			RecentCommands:   []string{"/build --react", "/test --e2e", "/scan --sec", "/old --cmd"},
			WorkingDirectory: "/home/dev/app",
		},
	}

	digest := ContextPrompt(session)
	want := "Tech stack: React, TypeScript\n" +
		"Project phase: development\n" +
		"Recent commands: /build --react, /test --e2e, /scan --sec\n" +
		"Working directory: /home/dev/app"
	assert.Equal(t, want, digest)
}

func TestContextPromptOmitsAbsentFields(t *testing.T) {
	assert.Equal(t, "", ContextPrompt(&types.Session{}))

	digest := ContextPrompt(&types.Session{
		Context: types.SessionContext{ProjectPhase: "testing"},
	})
	assert.Equal(t, "Project phase: testing", digest)
}
