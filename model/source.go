package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Supported source types. A Source whose SourceType is not one of these has
// no registered collector and every fetch reports an unsupported outcome.
const (
	SourceTypeGithub         = "github"
	SourceTypeGithubTrending = "github_trending"
	SourceTypeReddit         = "reddit"
	SourceTypeDiscourse      = "discourse"
	SourceTypeRss            = "rss"
	SourceTypeHackerNews     = "hacker_news"
)

/*

Source is a configured origin to poll for posts.

Id: primary key
Name: unique display name, also the identifier Posts are matched against
SourceType: one of the SourceType* constants
Url: endpoint to poll. Nullable: github_trending has no per-source url
Config: opaque per-source settings (token, labels, keywords, preferred
	languages, time window, max items). See collector.SourceConfig for the
	typed view over this map.
Active: inactive sources are skipped by batch refresh
AutoFetchEnabled: when false, fetching this source is a silent no-op
Status: free-text outcome of the last fetch ("ok", "ok (3 new)",
	"refreshing...", "error: ...")
LastFetchedAt: set on every successful fetch

Url uniqueness is case-insensitive and enforced at creation time, not by a
database constraint, because Url is nullable.
*/
type Source struct {
	Id               string `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt
	Name             string            `gorm:"uniqueIndex" json:"name"`
	SourceType       string            `json:"source_type"`
	Url              *string           `json:"url"`
	Config           datatypes.JSONMap `json:"config"`
	Active           bool              `json:"active"`
	AutoFetchEnabled bool              `json:"auto_fetch_enabled"`
	Status           string            `json:"status"`
	LastFetchedAt    *time.Time        `json:"last_fetched_at"`
}

// UrlString returns the configured url or "" when absent.
func (s *Source) UrlString() string {
	if s.Url == nil {
		return ""
	}
	return *s.Url
}
