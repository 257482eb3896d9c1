package config

import (
	"fmt"
	"os"
	"runtime"
)

// LoadConfig resolves the effective configuration in three layers, later
// layers overriding earlier ones: built-in defaults, then the YAML file
// (an explicit -config path, or the first standard location found), then
// CLI flag overrides. The merged result is validated as a whole before
// anything is probed or rendered.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	path := PeekConfigPath(os.Args[1:])
	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		cfg = fileCfg
	}

	if err := cfg.MergeFromFlags(); err != nil {
		return nil, err
	}

	// Workers left at zero means one render per CPU core.
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
