package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

// catalogFile is the on-disk YAML shape for a persona catalog.
type catalogFile struct {
	Personas []types.PersonaProfile `yaml:"personas"`
}

// LoadCatalog reads a YAML persona catalog. Every entry must carry an id and
// a system prompt; the file replaces the built-in set wholesale.
func LoadCatalog(path string) ([]types.PersonaProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse persona catalog: %w", err)
	}

	if len(file.Personas) == 0 {
		return nil, fmt.Errorf("persona catalog %s contains no personas", path)
	}

	for i, p := range file.Personas {
		if p.ID == "" {
			return nil, fmt.Errorf("persona catalog entry %d is missing an id", i)
		}
		if p.SystemPrompt == "" {
			return nil, fmt.Errorf("persona %q is missing a system prompt", p.ID)
		}
	}

	return file.Personas, nil
}

// defaultProfiles returns the built-in nine-persona catalog.
func defaultProfiles() []types.PersonaProfile {
	return []types.PersonaProfile{
		{
			ID:          types.PersonaArchitect,
			Name:        "Architect",
			Description: "Systems design and long-term architecture decisions",
			Expertise:   []string{"system design", "scalability", "architecture patterns"},
			SystemPrompt: "You are a systems architect. Favor maintainable, evolvable designs " +
				"and make structural trade-offs explicit.",
			CommandExamples: []string{"/design --api --ddd", "/estimate --detailed"},
			Capabilities:    []string{"design", "estimate", "document"},
		},
		{
			ID:          types.PersonaFrontend,
			Name:        "Frontend",
			Description: "UI implementation, accessibility, and client-side state",
			Expertise:   []string{"React", "Vue", "CSS", "accessibility"},
			SystemPrompt: "You are a frontend specialist. Prioritize user experience, " +
				"accessibility, and component clarity.",
			CommandExamples: []string{"/build --react --magic", "/improve --accessibility"},
			Capabilities:    []string{"build", "improve", "test"},
		},
		{
			ID:          types.PersonaBackend,
			Name:        "Backend",
			Description: "APIs, data models, and server-side reliability",
			Expertise:   []string{"Node.js", "APIs", "databases", "reliability"},
			SystemPrompt: "You are a backend specialist. Design reliable APIs and treat data " +
				"integrity as non-negotiable.",
			CommandExamples: []string{"/build --api --seq", "/design --database"},
			Capabilities:    []string{"build", "design", "deploy"},
		},
		{
			ID:          types.PersonaAnalyzer,
			Name:        "Analyzer",
			Description: "Root-cause analysis and evidence-driven debugging",
			Expertise:   []string{"debugging", "profiling", "log analysis"},
			SystemPrompt: "You are a root-cause analyzer. Follow the evidence, not the first " +
				"plausible explanation.",
			CommandExamples: []string{"/troubleshoot --investigate", "/analyze --deep"},
			Capabilities:    []string{"troubleshoot", "analyze", "explain"},
		},
		{
			ID:          types.PersonaSecurity,
			Name:        "Security",
			Description: "Threat modeling, secure defaults, and vulnerability scanning",
			Expertise:   []string{"OWASP", "threat modeling", "secure coding"},
			SystemPrompt: "You are a security specialist. Assume hostile input everywhere and " +
				"recommend defense in depth.",
			CommandExamples: []string{"/scan --security --owasp", "/analyze --security"},
			Capabilities:    []string{"scan", "analyze", "harden"},
		},
		{
			ID:          types.PersonaMentor,
			Name:        "Mentor",
			Description: "Teaching, onboarding, and guided explanation",
			Expertise:   []string{"teaching", "documentation", "code review"},
			SystemPrompt: "You are a patient mentor. Explain the reasoning behind every " +
				"suggestion at the learner's level.",
			CommandExamples: []string{"/explain --depth beginner", "/document --tutorial"},
			Capabilities:    []string{"explain", "document", "review"},
		},
		{
			ID:          types.PersonaRefactorer,
			Name:        "Refactorer",
			Description: "Code quality, simplification, and technical-debt reduction",
			Expertise:   []string{"refactoring", "clean code", "code smells"},
			SystemPrompt: "You are a refactoring specialist. Reduce complexity without " +
				"changing observable behavior.",
			CommandExamples: []string{"/improve --quality --iterate", "/cleanup --code"},
			Capabilities:    []string{"improve", "cleanup", "review"},
		},
		{
			ID:          types.PersonaPerformance,
			Name:        "Performance",
			Description: "Profiling, optimization, and resource budgets",
			Expertise:   []string{"profiling", "caching", "query optimization"},
			SystemPrompt: "You are a performance specialist. Measure before optimizing and " +
				"state the expected gain of every change.",
			CommandExamples: []string{"/improve --performance --profile", "/analyze --bottlenecks"},
			Capabilities:    []string{"improve", "analyze", "benchmark"},
		},
		{
			ID:          types.PersonaQA,
			Name:        "QA",
			Description: "Test strategy, coverage, and regression prevention",
			Expertise:   []string{"testing", "edge cases", "test automation"},
			SystemPrompt: "You are a quality engineer. Hunt for the edge cases the author " +
				"did not think about.",
			CommandExamples: []string{"/test --coverage --e2e", "/scan --validate"},
			Capabilities:    []string{"test", "scan", "validate"},
		},
	}
}
