package collector

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/devdashboard/devdashboard/model"
)

const defaultMaxItems = 30

// SourceConfig is the typed view over a source's opaque config map. All keys
// are optional; absent or malformed values fall back to zero values so a
// half-filled config never fails a fetch.
type SourceConfig struct {
	Token              string
	Labels             []string
	Keywords           []string
	Since              string
	Language           string
	PreferredLanguages []string
	PriorityTags       []string
	MaxItems           int
	Weights            *Weights
}

// ParseSourceConfig extracts the typed config from a source. The config map
// is stored as JSONB, so values arrive as untyped JSON values and need
// per-key coercion.
func ParseSourceConfig(source *model.Source) SourceConfig {
	cfg := SourceConfig{
		Token:              stringValue(source.Config, "token"),
		Labels:             stringSliceValue(source.Config, "labels"),
		Keywords:           stringSliceValue(source.Config, "keywords"),
		Since:              stringValue(source.Config, "since"),
		Language:           stringValue(source.Config, "language"),
		PreferredLanguages: stringSliceValue(source.Config, "preferred_languages"),
		PriorityTags:       stringSliceValue(source.Config, "priority_tags"),
		MaxItems:           intValue(source.Config, "max_items"),
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaultMaxItems
	}
	cfg.Weights = weightsValue(source.Config, "weights")
	return cfg
}

func stringValue(m datatypes.JSONMap, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func intValue(m datatypes.JSONMap, key string) int {
	if m == nil {
		return 0
	}
	// JSON numbers decode as float64.
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	return 0
}

func stringSliceValue(m datatypes.JSONMap, key string) []string {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func weightsValue(m datatypes.JSONMap, key string) *Weights {
	if m == nil {
		return nil
	}
	raw, ok := m[key]
	if !ok {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	w := DefaultWeights()
	if err := json.Unmarshal(b, &w); err != nil {
		return nil
	}
	return &w
}
