package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the fixed project-file name discovered by the upward walk.
const ConfigFileName = "gambit.toml"

// Config is the parsed gambit.toml project file. Both sections are optional.
type Config struct {
	Workspace *WorkspaceConfig `toml:"workspace"`
	Models    *ModelsConfig    `toml:"models"`
}

// WorkspaceConfig names workspace subdirectories relative to the project root.
type WorkspaceConfig struct {
	Decks   string `toml:"decks"`
	Actions string `toml:"actions"`
	Graders string `toml:"graders"`
	Tests   string `toml:"tests"`
	Schemas string `toml:"schemas"`
}

// ModelsConfig holds the user-defined model alias table.
//
// Alias entries stay loosely typed on purpose: a malformed entry (scalar
// value, missing model field) must be skippable during table construction
// instead of failing the whole parse.
type ModelsConfig struct {
	Aliases map[string]any `toml:"aliases"`
}

// ProjectConfig is an immutable snapshot of a discovered project file.
type ProjectConfig struct {
	// Root is the directory containing the config file.
	Root string
	// Path is the absolute path of the config file itself.
	Path string
	// Config is the parsed file; never nil, even for an empty file.
	Config *Config
}

// Parse decodes project-file text. An empty document yields an empty, non-nil
// Config; malformed text is a fatal parse error for this load attempt.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	return &cfg, nil
}
