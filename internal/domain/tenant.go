package domain

import (
	"database/sql/driver"
	"slices"
)

type FeatureFlag string

const (
	FeatureFlagEnableQA                FeatureFlag = "ENABLE_QA"
	FeatureFlagEnableRatingsAndReviews FeatureFlag = "ENABLE_RATINGS_AND_REVIEWS"
	FeatureFlagDefaultQAStoryMode      FeatureFlag = "DEFAULT_QA_STORY_MODE"
)

// Tenant is resolved upstream and handed to every operation.
type Tenant struct {
	ID           string         `db:"id"`
	Domain       string         `db:"domain"`
	FeatureFlags []FeatureFlag  `db:"-"`
	Settings     TenantSettings `db:"settings"`
}

func (t *Tenant) HasFeatureFlag(flag FeatureFlag) bool {
	return slices.Contains(t.FeatureFlags, flag)
}

func (t *Tenant) ScrapingEnabled() bool {
	return t.Settings.Stories.Scraping.Enabled
}

type TenantSettings struct {
	Live    TenantLiveSettings    `json:"live"`
	Stories TenantStoriesSettings `json:"stories"`
}

type TenantLiveSettings struct {
	Enabled bool `json:"enabled"`
}

type TenantStoriesSettings struct {
	Scraping ScrapingSettings `json:"scraping"`
}

type ScrapingSettings struct {
	Enabled         bool   `json:"enabled"`
	CustomUserAgent string `json:"customUserAgent,omitempty"`
}

func (s TenantSettings) Value() (driver.Value, error) {
	return marshalJSON(s)
}

func (s *TenantSettings) Scan(src any) error {
	return scanJSON(src, s)
}
