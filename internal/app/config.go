package app

import "errors"

// DefaultSprite is the sprite compiled when none is named.
const DefaultSprite = "Sprite1"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // .sb3 archive or project.json
	RawJSON    bool
	Sprite     string
	OutputPath string // derived from InputPath when empty
	Indent     string
	Canonical  bool
	RulesPath  string // rules file or directory; built-in rules when empty

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.Sprite == "" {
		cfg.Sprite = DefaultSprite
	}
	if cfg.Canonical && cfg.Indent != "" {
		return nil, errors.New("indent cannot be combined with canonical output")
	}
	return &cfg, nil
}
