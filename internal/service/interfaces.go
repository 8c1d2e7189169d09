package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"story_aggregator/internal/domain"
)

type StoryStore interface {
	FindByID(ctx context.Context, tenantID, id string) (*domain.Story, error)
	FindByURL(ctx context.Context, tenantID, url string) (*domain.Story, error)
	FindMany(ctx context.Context, tenantID string, ids []string, forUpdate bool) ([]domain.Story, error)
	FindOrCreate(ctx context.Context, tenantID string, input domain.FindOrCreateStoryInput, siteID string, now time.Time) (domain.FindOrCreateResult, error)
	Create(ctx context.Context, tenantID string, input domain.CreateStoryInput, now time.Time) (*domain.Story, error)
	Update(ctx context.Context, tenantID, id string, update domain.StoryUpdate, now time.Time) (*domain.Story, error)
	UpdateSettings(ctx context.Context, tenantID, id string, settings domain.StorySettings, now time.Time) (*domain.Story, error)
	SetMode(ctx context.Context, tenantID, id string, mode domain.StoryMode, now time.Time) (*domain.Story, error)
	Open(ctx context.Context, tenantID, id string, now time.Time) (*domain.Story, error)
	Close(ctx context.Context, tenantID, id string, now time.Time) (*domain.Story, error)
	UpdateCounts(ctx context.Context, tenantID, id string, counts domain.CommentCounts) (*domain.Story, error)
	TouchLastCommentedAt(ctx context.Context, tenantID, id string, at time.Time) error
	Remove(ctx context.Context, tenantID, id string) (int64, error)
	RemoveMany(ctx context.Context, tenantID string, ids []string) (int64, error)
	AddExpert(ctx context.Context, tenantID, id, userID string) (*domain.Story, error)
	RemoveExpert(ctx context.Context, tenantID, id, userID string) (*domain.Story, error)
	FindUnscraped(ctx context.Context, createdAfter time.Time, limit int) ([]domain.Story, error)
}

// StoryChildStore is implemented by the comment and action stores.
type StoryChildStore interface {
	ReassignStory(ctx context.Context, tenantID string, fromIDs []string, toID string) (int64, error)
	RemoveByStory(ctx context.Context, tenantID, storyID string) (int64, error)
}

type SiteStore interface {
	FindByURL(ctx context.Context, tenantID, url string) (*domain.Site, error)
}

type UserStore interface {
	Retrieve(ctx context.Context, tenantID, userID string) (*domain.User, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventEmitter hands events off without waiting for delivery.
type EventEmitter interface {
	Emit(event domain.StoryCreatedEvent)
}

type ScrapeQueue interface {
	EnqueueScrape(ctx context.Context, task domain.ScrapeTask) error
}

type Scraper interface {
	Scrape(ctx context.Context, tenantID, storyID, storyURL string) (*domain.Story, error)
}

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(ctx context.Context) error, err error)
}

type Recorder interface {
	StoryCreated(tenantID string)
	MergeCompleted(result string, commentsReassigned int64)
	ScrapeEnqueued(result string)
}
