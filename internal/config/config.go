// Package config loads slashgen configuration from files and the environment.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tidwall/jsonc"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

// Defaults applied after all sources are merged.
const (
	DefaultMaxCommands     = 3
	DefaultSessionTTLHours = 24
	DefaultCleanupMinutes  = 60
)

// Load loads configuration from multiple sources (priority order):
// 1. Global config (~/.slashgen/)
// 2. Project config (<directory>/slashgen.json[c])
// 3. SLASHGEN_CONFIG file
// 4. SLASHGEN_CONFIG_CONTENT inline JSON
// 5. Environment variables
func Load(directory string) (*types.Config, error) {
	config := &types.Config{
		Provider: make(map[string]types.ProviderConfig),
	}

	loaded := make(map[string]bool)
	loadOnce := func(path string) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if loaded[absPath] {
			return
		}
		if loadConfigFile(path, config) == nil {
			loaded[absPath] = true
		}
	}

	// 1. Global config
	globalDir := ConfigDir()
	loadOnce(filepath.Join(globalDir, "slashgen.json"))
	loadOnce(filepath.Join(globalDir, "slashgen.jsonc"))

	// 2. Project config
	if directory != "" {
		loadOnce(filepath.Join(directory, "slashgen.json"))
		loadOnce(filepath.Join(directory, "slashgen.jsonc"))
	}

	// 3. SLASHGEN_CONFIG file override
	if configPath := os.Getenv("SLASHGEN_CONFIG"); configPath != "" {
		loadOnce(configPath)
	}

	// 4. SLASHGEN_CONFIG_CONTENT inline JSON
	if configContent := os.Getenv("SLASHGEN_CONFIG_CONTENT"); configContent != "" {
		var inline types.Config
		if err := json.Unmarshal([]byte(configContent), &inline); err == nil {
			mergeConfig(config, &inline)
		}
	}

	// 5. Environment variables (highest priority)
	applyEnvOverrides(config)

	applyDefaults(config)

	return config, nil
}

// loadConfigFile loads a single config file with interpolation support.
func loadConfigFile(path string, config *types.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err // File doesn't exist, skip
	}

	// Strip JSONC comments
	data = jsonc.ToJSON(data)

	// Apply {env:VAR} interpolation
	data = interpolate(data)

	var fileConfig types.Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return err
	}

	mergeConfig(config, &fileConfig)
	return nil
}

var envPattern = regexp.MustCompile(`\{env:([^}]+)\}`)

// interpolate replaces {env:VAR_NAME} placeholders with environment values.
func interpolate(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(varName)))
	})
}

// mergeConfig merges source config into target. Zero values in source leave
// target untouched.
func mergeConfig(target, source *types.Config) {
	if source.Schema != "" {
		target.Schema = source.Schema
	}
	if source.Model != "" {
		target.Model = source.Model
	}
	if source.PersonaCatalog != "" {
		target.PersonaCatalog = source.PersonaCatalog
	}

	if source.Provider != nil {
		if target.Provider == nil {
			target.Provider = make(map[string]types.ProviderConfig)
		}
		for k, v := range source.Provider {
			target.Provider[k] = v
		}
	}

	if source.Generation.DefaultMaxCommands != 0 {
		target.Generation.DefaultMaxCommands = source.Generation.DefaultMaxCommands
	}
	if source.Generation.Retry.Enabled {
		target.Generation.Retry = source.Generation.Retry
	}

	if source.Session.TTLHours != 0 {
		target.Session.TTLHours = source.Session.TTLHours
	}
	if source.Session.CleanupIntervalMinutes != 0 {
		target.Session.CleanupIntervalMinutes = source.Session.CleanupIntervalMinutes
	}
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(config *types.Config) {
	providerEnvMap := map[string]string{
		"anthropic": "ANTHROPIC_API_KEY",
		"openai":    "OPENAI_API_KEY",
	}

	for provider, envVar := range providerEnvMap {
		if apiKey := os.Getenv(envVar); apiKey != "" {
			if config.Provider == nil {
				config.Provider = make(map[string]types.ProviderConfig)
			}
			p := config.Provider[provider]
			if p.APIKey == "" {
				p.APIKey = apiKey
				config.Provider[provider] = p
			}
		}
	}

	if model := os.Getenv("SLASHGEN_MODEL"); model != "" {
		config.Model = model
	}
	if catalog := os.Getenv("SLASHGEN_PERSONA_CATALOG"); catalog != "" {
		config.PersonaCatalog = catalog
	}
}

// applyDefaults fills unset tuning fields.
func applyDefaults(config *types.Config) {
	if config.Generation.DefaultMaxCommands == 0 {
		config.Generation.DefaultMaxCommands = DefaultMaxCommands
	}
	if config.Session.TTLHours == 0 {
		config.Session.TTLHours = DefaultSessionTTLHours
	}
	if config.Session.CleanupIntervalMinutes == 0 {
		config.Session.CleanupIntervalMinutes = DefaultCleanupMinutes
	}
}

// ConfigDir returns the configuration directory.
// Prefers SLASHGEN_CONFIG_DIR, then ~/.slashgen.
func ConfigDir() string {
	if dir := os.Getenv("SLASHGEN_CONFIG_DIR"); dir != "" {
		return dir
	}
	home := os.Getenv("HOME")
	if home == "" {
		return ".slashgen"
	}
	return filepath.Join(home, ".slashgen")
}

// Save saves the configuration to a file.
func Save(config *types.Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
