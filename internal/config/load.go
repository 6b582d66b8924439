package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/numdoc/numdoc/internal/schema"
)

// DefaultFileNames are the configuration files probed in the working
// directory, in order.
var DefaultFileNames = []string{"numdoc.json", "numdoc.yaml", "numdoc.yml"}

// FileConfig is the on-disk form of Config. Pointer fields distinguish
// "absent, keep the default" from an explicit zero value, so every
// setting is independently overridable.
type FileConfig struct {
	Atol                    *float64            `json:"atol,omitempty" yaml:"atol,omitempty"`
	Rtol                    *float64            `json:"rtol,omitempty" yaml:"rtol,omitempty"`
	StrictCheck             *bool               `json:"strict_check,omitempty" yaml:"strict_check,omitempty"`
	ParseNamedTuples        *bool               `json:"parse_namedtuples,omitempty" yaml:"parse_namedtuples,omitempty"`
	NameErrorAfterException *bool               `json:"nameerror_after_exception,omitempty" yaml:"nameerror_after_exception,omitempty"`
	RandomMarkers           []string            `json:"random_markers,omitempty" yaml:"random_markers,omitempty"`
	Stopwords               []string            `json:"stopwords,omitempty" yaml:"stopwords,omitempty"`
	Pseudocode              []string            `json:"pseudocode,omitempty" yaml:"pseudocode,omitempty"`
	SkipList                []string            `json:"skiplist,omitempty" yaml:"skiplist,omitempty"`
	LocalResources          map[string][]string `json:"local_resources,omitempty" yaml:"local_resources,omitempty"`
	PublicNames             map[string][]string `json:"public_names,omitempty" yaml:"public_names,omitempty"`
}

// Load reads a configuration file and applies it over the defaults.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadAndValidate(path)
	return cfg, err
}

// LoadAndValidate reads a configuration file, validates it, applies it
// over the defaults, and returns warnings for unknown fields.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	var warnings []string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		warnings = detectUnknownYAMLFields(data)
	default:
		if err := schema.ValidateConfig(data); err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		warnings = detectUnknownJSONFields(data)
	}

	cfg := Default()
	fc.applyTo(cfg)
	return cfg, warnings, nil
}

// Discover probes the working directory for a default config file.
// Returns "" when none exists.
func Discover(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyTo overlays the file settings onto cfg. Absent fields keep their
// defaults.
func (fc *FileConfig) applyTo(cfg *Config) {
	if fc.Atol != nil {
		cfg.Atol = *fc.Atol
	}
	if fc.Rtol != nil {
		cfg.Rtol = *fc.Rtol
	}
	if fc.StrictCheck != nil {
		cfg.StrictCheck = *fc.StrictCheck
	}
	if fc.ParseNamedTuples != nil {
		cfg.ParseNamedTuples = *fc.ParseNamedTuples
	}
	if fc.NameErrorAfterException != nil {
		cfg.NameErrorAfterException = *fc.NameErrorAfterException
	}
	if fc.RandomMarkers != nil {
		cfg.RandomMarkers = fc.RandomMarkers
	}
	if fc.Stopwords != nil {
		cfg.Stopwords = fc.Stopwords
	}
	if fc.Pseudocode != nil {
		cfg.Pseudocode = fc.Pseudocode
	}
	if fc.SkipList != nil {
		cfg.SkipList = fc.SkipList
	}
	if fc.LocalResources != nil {
		cfg.LocalResources = fc.LocalResources
	}
	if fc.PublicNames != nil {
		cfg.PublicNames = fc.PublicNames
	}
}
