package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LibraryPath  string // base defaults library: .hcl/.yaml files
	ScenarioPath string // optional overlay layer
	TechName     string // resolve a single tech; empty resolves all

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LibraryPath == "" {
		return nil, errors.New("LibraryPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
