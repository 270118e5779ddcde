package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CueConfig binds a script cue to an external command.
type CueConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of cues.yaml.
type ConfigFile struct {
	Cues []CueConfig `yaml:"cues" json:"cues"`
}

// LoadCues reads a configuration file (YAML or JSON) and returns the cues by name.
// A missing file yields an empty map.
func LoadCues(path string) (map[string]CueConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]CueConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read cues config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cues := make(map[string]CueConfig, len(cfg.Cues))
	for _, cue := range cfg.Cues {
		if cue.Name == "" || cue.Command == "" {
			continue
		}
		cues[cue.Name] = cue
	}
	return cues, nil
}
