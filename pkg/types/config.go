package types

// Config represents the slashgen configuration.
type Config struct {
	// Schema reference (for editor support)
	Schema string `json:"$schema,omitempty"`

	// Model selection in "provider/model" form, e.g. "anthropic/claude-sonnet-4".
	Model string `json:"model,omitempty"`

	// Provider configs keyed by provider id.
	Provider map[string]ProviderConfig `json:"provider,omitempty"`

	// Generation behavior.
	Generation GenerationConfig `json:"generation,omitempty"`

	// Session store behavior.
	Session SessionConfig `json:"session,omitempty"`

	// Path to a YAML persona catalog overriding the built-in profiles.
	PersonaCatalog string `json:"personaCatalog,omitempty"`
}

// ProviderConfig holds configuration for a specific completion provider.
type ProviderConfig struct {
	APIKey  string `json:"apiKey,omitempty"`
	BaseURL string `json:"baseURL,omitempty"`
	Model   string `json:"model,omitempty"`
	Disable bool   `json:"disable,omitempty"`
}

// GenerationConfig tunes the command generation service.
type GenerationConfig struct {
	// DefaultMaxCommands applies when a request leaves MaxCommands unset.
	DefaultMaxCommands int `json:"defaultMaxCommands,omitempty"`

	// Retry is the opt-in retry policy for provider failures. The pipeline
	// never retries unless Retry.Enabled is set.
	Retry RetryConfig `json:"retry,omitempty"`
}

// RetryConfig describes an opt-in exponential backoff policy.
type RetryConfig struct {
	Enabled        bool  `json:"enabled,omitempty"`
	MaxAttempts    int   `json:"maxAttempts,omitempty"`
	InitialDelayMS int64 `json:"initialDelayMs,omitempty"`
	MaxDelayMS     int64 `json:"maxDelayMs,omitempty"`
}

// SessionConfig tunes the in-memory session store.
type SessionConfig struct {
	// TTLHours is the idle lifetime before a session is evicted. Default 24.
	TTLHours int `json:"ttlHours,omitempty"`

	// CleanupIntervalMinutes is the sweep period. Default 60.
	CleanupIntervalMinutes int `json:"cleanupIntervalMinutes,omitempty"`
}
