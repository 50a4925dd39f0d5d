package types

// CommandMarker is the leading character identifying an invocable command.
const CommandMarker = "/"

// GenerationRequest is the input contract for a generation call.
type GenerationRequest struct {
	Prompt       string    `json:"prompt"`
	Persona      PersonaID `json:"persona"`
	TechStack    []string  `json:"techStack,omitempty"`
	ProjectPhase string    `json:"projectPhase,omitempty"`
	SessionID    string    `json:"sessionID,omitempty"`
	MaxCommands  int       `json:"maxCommands,omitempty"`
}

// GeneratedCommand is one unit of pipeline output. Never mutated after
// creation.
type GeneratedCommand struct {
	ID             string    `json:"id"`
	Command        string    `json:"command"`
	Description    string    `json:"description"`
	Explanation    string    `json:"explanation"`
	ExpectedOutput string    `json:"expectedOutput"`
	NextSteps      []string  `json:"nextSteps"`
	Persona        PersonaID `json:"persona"`
	Confidence     float64   `json:"confidence"`
}

// GenerationResult is the JSON-mode response surfaced to callers.
type GenerationResult struct {
	SessionID string             `json:"sessionID,omitempty"`
	Persona   PersonaID          `json:"persona"`
	Commands  []GeneratedCommand `json:"commands"`
}

// ContextAnalysis is the output of analyzing a session's accumulated context.
type ContextAnalysis struct {
	Insights          []string    `json:"insights"`
	Recommendations   []string    `json:"recommendations"`
	SuggestedPersonas []PersonaID `json:"suggestedPersonas"`
	TechStack         []string    `json:"techStack,omitempty"`
	ProjectPhase      string      `json:"projectPhase,omitempty"`
}
