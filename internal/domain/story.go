package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type StoryMode string

const (
	StoryModeComments          StoryMode = "COMMENTS"
	StoryModeQA                StoryMode = "QA"
	StoryModeRatingsAndReviews StoryMode = "RATINGS_AND_REVIEWS"
)

func (m StoryMode) Valid() bool {
	switch m {
	case StoryModeComments, StoryModeQA, StoryModeRatingsAndReviews:
		return true
	}
	return false
}

type Story struct {
	ID              string         `db:"id" json:"id"`
	TenantID        string         `db:"tenant_id" json:"tenantID"`
	SiteID          string         `db:"site_id" json:"siteID"`
	URL             string         `db:"url" json:"url"`
	Metadata        *StoryMetadata `db:"metadata" json:"metadata,omitempty"`
	ScrapedAt       *time.Time     `db:"scraped_at" json:"scrapedAt,omitempty"`
	Settings        StorySettings  `db:"settings" json:"settings"`
	ExpertIDs       []string       `db:"-" json:"expertIDs"`
	IsClosed        bool           `db:"is_closed" json:"isClosed"`
	ClosedAt        *time.Time     `db:"closed_at" json:"closedAt,omitempty"`
	LastCommentedAt *time.Time     `db:"last_commented_at" json:"lastCommentedAt,omitempty"`
	CommentCounts   CommentCounts  `db:"comment_counts" json:"commentCounts"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       *time.Time     `db:"updated_at" json:"updatedAt,omitempty"`
}

// StoryMetadata is the page information collected by the scraper.
type StoryMetadata struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Image       *string    `json:"image,omitempty"`
	Author      *string    `json:"author,omitempty"`
	Section     *string    `json:"section,omitempty"`
	ContentType *string    `json:"contentType,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ModifiedAt  *time.Time `json:"modifiedAt,omitempty"`
}

func (m *StoryMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *StoryMetadata) Scan(src any) error {
	return scanJSON(src, m)
}

type LiveSettings struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// StorySettings holds per-story overrides. Nil fields fall back to tenant settings.
type StorySettings struct {
	Mode               *StoryMode    `json:"mode,omitempty"`
	Live               *LiveSettings `json:"live,omitempty"`
	Moderation         *string       `json:"moderation,omitempty"`
	PremodLinksEnabled *bool         `json:"premodLinksEnabled,omitempty"`
	MessageBox         *string       `json:"messageBox,omitempty"`
}

func (s StorySettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StorySettings) Scan(src any) error {
	return scanJSON(src, s)
}

type Site struct {
	ID             string   `db:"id"`
	TenantID       string   `db:"tenant_id"`
	Name           string   `db:"name"`
	AllowedOrigins []string `db:"-"`
}

type User struct {
	ID       string `db:"id"`
	TenantID string `db:"tenant_id"`
	Username string `db:"username"`
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json source type %T", src)
	}
}

func marshalJSON(v any) (driver.Value, error) {
	return json.Marshal(v)
}

type FindOrCreateStoryInput struct {
	ID   string
	URL  string
	Mode *StoryMode
}

type FindOrCreateResult struct {
	Story       *Story
	WasUpserted bool
}

type CreateStoryInput struct {
	ID       string
	URL      string
	SiteID   string
	Metadata *StoryMetadata
	Settings StorySettings
}

// StoryUpdate lists the fields to change; nil fields are left untouched.
type StoryUpdate struct {
	URL       *string
	Metadata  *StoryMetadata
	ScrapedAt *time.Time
}
