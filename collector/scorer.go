package collector

import (
	"time"

	"github.com/devdashboard/devdashboard/utils"
)

// PreferredMatchBonus is the flat score bonus applied when a record's
// language or one of its tags matches a configured preferred language or
// priority tag.
const PreferredMatchBonus = 5.0

// Weights tunes how engagement metrics translate into a priority score. The
// exact constants are not contractual; scores only need to be monotonic in
// engagement, which holds for any non-negative weights.
type Weights struct {
	Stars    float64 `json:"stars"`
	Forks    float64 `json:"forks"`
	Upvotes  float64 `json:"upvotes"`
	Comments float64 `json:"comments"`
	Likes    float64 `json:"likes"`
	Recency  float64 `json:"recency"`
}

func DefaultWeights() Weights {
	return Weights{
		Stars:    1.0,
		Forks:    0.5,
		Upvotes:  1.0,
		Comments: 0.5,
		Likes:    0.5,
		Recency:  10.0,
	}
}

const recencyWindow = 48 * time.Hour

// Score computes the priority score for a record. Pure: it never mutates the
// record and depends only on its inputs and the passed clock value.
func Score(record *Record, cfg SourceConfig, now time.Time) float64 {
	weights := DefaultWeights()
	if cfg.Weights != nil {
		weights = *cfg.Weights
	}

	score := float64(record.Metrics.Stars)*weights.Stars +
		float64(record.Metrics.Forks)*weights.Forks +
		float64(record.Metrics.Upvotes)*weights.Upvotes +
		float64(record.Metrics.Comments)*weights.Comments +
		float64(record.Metrics.Likes)*weights.Likes

	// Fresh records get a boost decaying linearly to zero over the window.
	if !record.PostedAt.IsZero() {
		age := now.Sub(record.PostedAt)
		if age >= 0 && age < recencyWindow {
			score += weights.Recency * float64(recencyWindow-age) / float64(recencyWindow)
		}
	}

	if matchesPreferred(record, cfg) {
		score += PreferredMatchBonus
	}
	return score
}

func matchesPreferred(record *Record, cfg SourceConfig) bool {
	preferred := append([]string{}, cfg.PreferredLanguages...)
	preferred = append(preferred, cfg.PriorityTags...)
	if len(preferred) == 0 {
		return false
	}
	if record.Language != "" && utils.ContainsStringFold(preferred, record.Language) {
		return true
	}
	for _, tag := range record.Tags {
		if utils.ContainsStringFold(preferred, tag) {
			return true
		}
	}
	return false
}
