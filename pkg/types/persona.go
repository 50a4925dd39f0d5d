package types

// PersonaID identifies one of the fixed expertise profiles.
type PersonaID string

// The closed set of persona identifiers.
const (
	PersonaArchitect   PersonaID = "architect"
	PersonaFrontend    PersonaID = "frontend"
	PersonaBackend     PersonaID = "backend"
	PersonaAnalyzer    PersonaID = "analyzer"
	PersonaSecurity    PersonaID = "security"
	PersonaMentor      PersonaID = "mentor"
	PersonaRefactorer  PersonaID = "refactorer"
	PersonaPerformance PersonaID = "performance"
	PersonaQA          PersonaID = "qa"
)

// PersonaProfile describes a fixed expertise profile used for prompt
// construction. Profiles are immutable after registry initialization.
type PersonaProfile struct {
	ID              PersonaID `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Description     string    `json:"description" yaml:"description"`
	Expertise       []string  `json:"expertise" yaml:"expertise"`
	SystemPrompt    string    `json:"systemPrompt" yaml:"systemPrompt"`
	CommandExamples []string  `json:"commandExamples" yaml:"commandExamples"`
	Capabilities    []string  `json:"capabilities" yaml:"capabilities"`
}
