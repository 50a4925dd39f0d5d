// Package types provides the core data types for the slashgen pipeline.
package types

// Session represents one user's ongoing interaction context.
type Session struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userID,omitempty"`
	Preferences SessionPreferences `json:"preferences"`
	Context     SessionContext     `json:"context"`
	Time        SessionTime        `json:"time"`
}

// SessionPreferences holds user-level defaults, set at creation.
type SessionPreferences struct {
	DefaultPersona PersonaID `json:"defaultPersona,omitempty"`
	TechStack      []string  `json:"techStack,omitempty"`
}

// SessionContext is the short-lived working state mutated per request.
type SessionContext struct {
	ProjectPhase     string   `json:"projectPhase,omitempty"`
	TechStack        []string `json:"techStack,omitempty"`
	RecentCommands   []string `json:"recentCommands,omitempty"`
	WorkingDirectory string   `json:"workingDirectory,omitempty"`
}

// SessionTime contains timestamps for a session in Unix milliseconds.
type SessionTime struct {
	Created int64 `json:"created"`
	Updated int64 `json:"updated"`
}

// ContextUpdate is a partial update to a session's context. Nil fields are
// left unchanged; non-nil fields replace the corresponding session field.
type ContextUpdate struct {
	ProjectPhase     *string   `json:"projectPhase,omitempty"`
	TechStack        *[]string `json:"techStack,omitempty"`
	RecentCommands   *[]string `json:"recentCommands,omitempty"`
	WorkingDirectory *string   `json:"workingDirectory,omitempty"`
}

// SessionStats aggregates counts over the whole store.
type SessionStats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	UniqueUsers int `json:"uniqueUsers"`
}
