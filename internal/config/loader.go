package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const physicsFile = "physics.yaml"

// Load loads the physics configuration.
// Search order: customPath -> ~/.collide/configs/physics.yaml -> ./configs/physics.yaml -> embedded default.
// Files found on the search path are layered over the defaults, so they
// only need to set the keys they change.
func Load(customPath string) (PhysicsConfig, error) {
	cfg := embeddedDefaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(physicsFile), filepath.Join("configs", physicsFile)} {
		if path == "" {
			continue
		}
		if layered, ok := tryLayer(cfg, path); ok {
			return layered, nil
		}
	}
	return cfg, nil
}

// tryLayer applies the file at path over base. Unreadable, malformed or
// invalid files are ignored.
func tryLayer(base PhysicsConfig, path string) (PhysicsConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if cfg.Validate() != nil {
		return base, false
	}
	return cfg, true
}

func embeddedDefaults() PhysicsConfig {
	cfg := DefaultPhysicsConfig()
	if err := yaml.Unmarshal(defaultPhysicsYAML, &cfg); err != nil {
		return DefaultPhysicsConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".collide", "configs", filename)
}
