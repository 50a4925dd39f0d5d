package session

import (
	"fmt"
	"strings"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

// maxSuggestedPersonas caps the ranked suggestion list.
const maxSuggestedPersonas = 3

// stackPersonas maps tech-stack keywords to persona suggestions. Checked in
// this order for each stack entry, so suggestion order is deterministic.
var stackPersonas = []struct {
	keywords []string
	persona  types.PersonaID
}{
	{[]string{"React", "Vue", "Angular"}, types.PersonaFrontend},
	{[]string{"Node.js", "Express", "API"}, types.PersonaBackend},
	{[]string{"TypeScript"}, types.PersonaArchitect},
}

// commandPersonas maps a command category (the leading command token) to
// persona suggestions. Commands outside this table contribute nothing.
var commandPersonas = map[string][]types.PersonaID{
	"build":        {types.PersonaArchitect, types.PersonaFrontend},
	"troubleshoot": {types.PersonaAnalyzer, types.PersonaPerformance},
	"scan":         {types.PersonaSecurity, types.PersonaQA},
	"improve":      {types.PersonaRefactorer, types.PersonaPerformance},
}

// phasePersonas maps known project phases to persona suggestions.
// Unrecognized phases contribute nothing.
var phasePersonas = map[string][]types.PersonaID{
	"planning":       {types.PersonaArchitect, types.PersonaMentor},
	"design":         {types.PersonaArchitect, types.PersonaMentor},
	"development":    {types.PersonaFrontend, types.PersonaBackend},
	"implementation": {types.PersonaFrontend, types.PersonaBackend},
	"testing":        {types.PersonaQA, types.PersonaAnalyzer},
	"deployment":     {types.PersonaSecurity, types.PersonaPerformance},
	"production":     {types.PersonaSecurity, types.PersonaPerformance},
	"maintenance":    {types.PersonaRefactorer, types.PersonaAnalyzer},
}

// Analyze derives insights, recommendations and ranked persona suggestions
// from a session's accumulated context. It is pure: the session is never
// mutated and identical input yields identical output.
func Analyze(s *types.Session) *types.ContextAnalysis {
	analysis := &types.ContextAnalysis{
		Insights:          []string{},
		Recommendations:   []string{},
		SuggestedPersonas: []types.PersonaID{},
		TechStack:         s.Context.TechStack,
		ProjectPhase:      s.Context.ProjectPhase,
	}

	var suggested []types.PersonaID

	// 1. Tech stack.
	if len(s.Context.TechStack) > 0 {
		analysis.Insights = append(analysis.Insights,
			fmt.Sprintf("Working with: %s", strings.Join(s.Context.TechStack, ", ")))
		for _, entry := range s.Context.TechStack {
			for _, mapping := range stackPersonas {
				if containsFold(mapping.keywords, entry) {
					suggested = append(suggested, mapping.persona)
				}
			}
		}
	} else {
		analysis.Recommendations = append(analysis.Recommendations,
			"Specify a tech stack to get more relevant command suggestions")
	}

	// 2. Recent command history.
	for _, command := range s.Context.RecentCommands {
		category := commandCategory(command)
		suggested = append(suggested, commandPersonas[category]...)
	}

	// 3. Project phase.
	if s.Context.ProjectPhase != "" {
		analysis.Insights = append(analysis.Insights,
			fmt.Sprintf("Project phase: %s", s.Context.ProjectPhase))
		suggested = append(suggested, phasePersonas[strings.ToLower(s.Context.ProjectPhase)]...)
	}

	// 4. Deduplicate preserving first-seen order, cap the list.
	analysis.SuggestedPersonas = dedupePersonas(suggested, maxSuggestedPersonas)

	// 5. General recommendations.
	if len(s.Context.RecentCommands) > 5 {
		analysis.Recommendations = append(analysis.Recommendations,
			"Consider rotating personas for a fresh perspective on your project")
	}
	if s.Preferences.DefaultPersona == "" {
		analysis.Recommendations = append(analysis.Recommendations,
			"Set a default persona in your preferences to streamline requests")
	}

	return analysis
}

// ContextPrompt renders a short plain-text digest of the session context used
// to enrich prompts. Fields are emitted only when present, each on its own
// line.
func ContextPrompt(s *types.Session) string {
	var lines []string

	if len(s.Context.TechStack) > 0 {
		lines = append(lines, "Tech stack: "+strings.Join(s.Context.TechStack, ", "))
	}
	if s.Context.ProjectPhase != "" {
		lines = append(lines, "Project phase: "+s.Context.ProjectPhase)
	}
	if len(s.Context.RecentCommands) > 0 {
		recent := s.Context.RecentCommands
		if len(recent) > 3 {
			recent = recent[:3]
		}
		lines = append(lines, "Recent commands: "+strings.Join(recent, ", "))
	}
	if s.Context.WorkingDirectory != "" {
		lines = append(lines, "Working directory: "+s.Context.WorkingDirectory)
	}

	return strings.TrimRight(strings.Join(lines, "\n"), " \n")
}

// commandCategory extracts the leading command token, without the marker.
func commandCategory(command string) string {
	command = strings.TrimSpace(strings.TrimPrefix(command, types.CommandMarker))
	if fields := strings.Fields(command); len(fields) > 0 {
		return strings.ToLower(fields[0])
	}
	return ""
}

// containsFold reports whether any keyword matches entry case-insensitively.
func containsFold(keywords []string, entry string) bool {
	for _, k := range keywords {
		if strings.EqualFold(k, entry) {
			return true
		}
	}
	return false
}

// dedupePersonas keeps the first occurrence of each persona, up to limit.
func dedupePersonas(personas []types.PersonaID, limit int) []types.PersonaID {
	seen := make(map[types.PersonaID]struct{}, len(personas))
	out := []types.PersonaID{}
	for _, p := range personas {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}
