package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/devdashboard/devdashboard/model"
)

func TestParseSourceConfig(t *testing.T) {
	source := &model.Source{
		Config: datatypes.JSONMap{
			"token":               "ghp_secret",
			"labels":              []interface{}{"bug", "help wanted"},
			"keywords":            []interface{}{"rails"},
			"since":               "weekly",
			"language":            "go",
			"preferred_languages": []interface{}{"go", "rust"},
			"priority_tags":       []interface{}{"ml"},
			"max_items":           float64(10),
			"weights":             map[string]interface{}{"stars": 3.0},
		},
	}

	cfg := ParseSourceConfig(source)
	assert.Equal(t, "ghp_secret", cfg.Token)
	assert.Equal(t, []string{"bug", "help wanted"}, cfg.Labels)
	assert.Equal(t, []string{"rails"}, cfg.Keywords)
	assert.Equal(t, "weekly", cfg.Since)
	assert.Equal(t, "go", cfg.Language)
	assert.Equal(t, []string{"go", "rust"}, cfg.PreferredLanguages)
	assert.Equal(t, []string{"ml"}, cfg.PriorityTags)
	assert.Equal(t, 10, cfg.MaxItems)
	require.NotNil(t, cfg.Weights)
	assert.Equal(t, 3.0, cfg.Weights.Stars)
}

func TestParseSourceConfigDefaults(t *testing.T) {
	t.Run("nil config map", func(t *testing.T) {
		cfg := ParseSourceConfig(&model.Source{})
		assert.Equal(t, "", cfg.Token)
		assert.Empty(t, cfg.Labels)
		assert.Equal(t, defaultMaxItems, cfg.MaxItems)
		assert.Nil(t, cfg.Weights)
	})

	t.Run("malformed values fall back", func(t *testing.T) {
		source := &model.Source{
			Config: datatypes.JSONMap{
				"labels":    "not-a-list",
				"max_items": "not-a-number",
			},
		}
		cfg := ParseSourceConfig(source)
		assert.Empty(t, cfg.Labels)
		assert.Equal(t, defaultMaxItems, cfg.MaxItems)
	})
}
