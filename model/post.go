package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Post statuses mutated by user actions. Fetches only ever create posts in
// the unread state.
const (
	PostStatusUnread    = "unread"
	PostStatusRead      = "read"
	PostStatusResponded = "responded"
	PostStatusIgnored   = "ignored"
)

/*

Post is a normalized item ingested from a source.

Id: primary key
Source: the Source's name this post was fetched for. Deliberately a plain
	string rather than a foreign key so a post survives its source being
	renamed or deleted.
ExternalId: the item's native identifier upstream (issue number, reddit post
	id, feed item guid). (Source, ExternalId) is unique: re-fetching the same
	upstream item never creates a second row and never updates the first one.
Tags: ordered list of tag strings, serialized as JSON text
PriorityScore: ranking score computed at ingestion time, nullable
Status: one of the PostStatus* constants

*/
type Post struct {
	Id            string `gorm:"primaryKey"`
	CreatedAt     time.Time
	DeletedAt     gorm.DeletedAt
	Source        string `gorm:"index:idx_posts_source_external_id,unique"`
	ExternalId    string `gorm:"index:idx_posts_source_external_id,unique"`
	Title         string
	Url           string
	Author        string
	Summary       string
	Tags          string
	PostedAt      time.Time
	PriorityScore *float64
	Status        string
}

// SetTags serializes tags preserving order. An empty list serializes to "[]"
// so that TagList round-trips without special cases.
func (p *Post) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		p.Tags = "[]"
		return
	}
	p.Tags = string(b)
}

// TagList deserializes the stored tags. Malformed or empty stored text yields
// an empty list, never an error.
func (p *Post) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(p.Tags), &tags); err != nil {
		return []string{}
	}
	return tags
}

// IsValidPostStatus reports whether s is a user-settable post status.
func IsValidPostStatus(s string) bool {
	switch s {
	case PostStatusUnread, PostStatusRead, PostStatusResponded, PostStatusIgnored:
		return true
	}
	return false
}
