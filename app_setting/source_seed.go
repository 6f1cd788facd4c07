package app_setting

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// SourceSeed is one entry of the yaml seed file consumed by cmd/seed.
type SourceSeed struct {
	Name             string                 `yaml:"name"`
	SourceType       string                 `yaml:"source_type"`
	Url              string                 `yaml:"url"`
	Active           bool                   `yaml:"active"`
	AutoFetchEnabled bool                   `yaml:"auto_fetch_enabled"`
	Config           map[string]interface{} `yaml:"config"`
}

type SourceSeedFile struct {
	Sources []SourceSeed `yaml:"sources"`
}

// NormalizedConfig converts the yaml config map into a JSON-encodable map.
// yaml.v2 decodes nested mappings as map[interface{}]interface{}, which the
// JSONB column cannot serialize as-is.
func (s *SourceSeed) NormalizedConfig() map[string]interface{} {
	if s.Config == nil {
		return map[string]interface{}{}
	}
	normalized, _ := normalizeYamlValue(s.Config).(map[string]interface{})
	return normalized
}

func normalizeYamlValue(v interface{}) interface{} {
	switch value := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			if key, ok := k.(string); ok {
				out[key] = normalizeYamlValue(item)
			}
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			out[k] = normalizeYamlValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(value))
		for i, item := range value {
			out[i] = normalizeYamlValue(item)
		}
		return out
	default:
		return v
	}
}

func ParseSourceSeedFile(path string) (*SourceSeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "fail to read seed file")
	}
	seedFile := &SourceSeedFile{}
	if err := yaml.Unmarshal(raw, seedFile); err != nil {
		return nil, errors.Wrap(err, "fail to parse seed file")
	}
	return seedFile, nil
}
