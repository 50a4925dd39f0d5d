// Package generate orchestrates persona-driven command generation against a
// completion provider, in structured JSON mode or streaming text mode.
package generate

import (
	"fmt"
	"strings"

	"github.com/slashgen-ai/slashgen/internal/session"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

// jsonShape is the exact response shape requested in JSON mode. Providers are
// untrusted; the parser re-validates everything this block promises.
const jsonShape = `{
  "commands": [
    {
      "id": "string",
      "command": "string",
      "description": "string",
      "explanation": "string",
      "expectedOutput": "string",
      "nextSteps": ["string"],
      "persona": "string",
      "confidence": 0.0
    }
  ]
}`

// Builder assembles the system and user prompts for a generation call. It is
// stateless; every invocation is independent.
type Builder struct{}

// SystemPrompt composes the persona's template with the formatting contract.
// In JSON mode the exact response shape is appended.
func (Builder) SystemPrompt(profile *types.PersonaProfile, maxCommands int, jsonMode bool) string {
	var b strings.Builder

	b.WriteString(profile.SystemPrompt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Generate exactly %d command(s).\n", maxCommands)
	fmt.Fprintf(&b, "Every command must begin with %q.\n", types.CommandMarker)
	b.WriteString("Accompany each command with a description, an explanation, the expected output, and next steps.\n")
	b.WriteString("Take the supplied tech stack and project phase into account.")

	if jsonMode {
		b.WriteString("\n\nRespond with a single JSON object of this exact shape and nothing else:\n")
		b.WriteString(jsonShape)
	}
	return b.String()
}

// UserPrompt composes the request text with optional tech-stack and phase
// lines, followed by the session context digest when a session is supplied.
func (Builder) UserPrompt(req *types.GenerationRequest, s *types.Session) string {
	lines := []string{req.Prompt}

	if len(req.TechStack) > 0 {
		lines = append(lines, "Tech stack: "+strings.Join(req.TechStack, ", "))
	}
	if req.ProjectPhase != "" {
		lines = append(lines, "Project phase: "+req.ProjectPhase)
	}
	if s != nil {
		if digest := session.ContextPrompt(s); digest != "" {
			lines = append(lines, "", "Session context:", digest)
		}
	}
	return strings.Join(lines, "\n")
}
