package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewMutationID returns a per-request token used to correlate a mutation with
// the messages it produces.
func NewMutationID() string {
	return uuid.NewString()
}

type StoryCreatedEvent struct {
	MutationID string    `json:"mutationID"`
	TenantID   string    `json:"tenantID"`
	StoryID    string    `json:"storyID"`
	StoryURL   string    `json:"storyURL"`
	SiteID     string    `json:"siteID"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ScrapeTask struct {
	MutationID string `json:"mutationID"`
	TenantID   string `json:"tenantID"`
	StoryID    string `json:"storyID"`
	StoryURL   string `json:"storyURL"`
}

// BackfillStats holds statistics about a scrape backfill run.
type BackfillStats struct {
	Candidates int
	Enqueued   int
	Errors     int
	Duration   time.Duration
}

// MergeResult reports how far a merge progressed.
type MergeResult struct {
	Story              *Story
	CommentsReassigned int64
	ActionsReassigned  int64
	StoriesRemoved     int64
}
