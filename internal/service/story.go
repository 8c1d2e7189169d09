package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"story_aggregator/internal/counts"
	"story_aggregator/internal/domain"
	"story_aggregator/internal/live"
)

type Deps struct {
	Stories   StoryStore
	Comments  StoryChildStore
	Actions   StoryChildStore
	Sites     SiteStore
	Users     UserStore
	TxManager TransactionManager
	Events    EventEmitter
	Scrapes   ScrapeQueue
	Scraper   Scraper
	// Locker is optional; without it merges are serialized by row locks only.
	Locker  Locker
	Metrics Recorder
}

type Options struct {
	Live    live.Options
	LockTTL time.Duration
}

type FindInput struct {
	ID  string
	URL string
}

type CreateInput struct {
	ID       string
	URL      string
	Metadata *domain.StoryMetadata
	Settings domain.StorySettings
}

type UpdateInput struct {
	URL      *string
	Metadata *domain.StoryMetadata
}

// StoryService manages the lifecycle of stories: creation, settings, mode
// transitions, removal, experts and merging.
type StoryService struct {
	stories   StoryStore
	comments  StoryChildStore
	actions   StoryChildStore
	sites     SiteStore
	users     UserStore
	txManager TransactionManager
	events    EventEmitter
	scrapes   ScrapeQueue
	scraper   Scraper
	locker    Locker
	metrics   Recorder
	logger    *slog.Logger
	opts      Options
}

func NewStoryService(deps Deps, logger *slog.Logger, opts Options) *StoryService {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if opts.LockTTL == 0 {
		opts.LockTTL = 30 * time.Second
	}

	return &StoryService{
		stories:   deps.Stories,
		comments:  deps.Comments,
		actions:   deps.Actions,
		sites:     deps.Sites,
		users:     deps.Users,
		txManager: deps.TxManager,
		events:    deps.Events,
		scrapes:   deps.Scrapes,
		scraper:   deps.Scraper,
		locker:    deps.Locker,
		metrics:   metrics,
		logger:    logger.With("component", "stories"),
		opts:      opts,
	}
}

func (s *StoryService) Find(ctx context.Context, tenant *domain.Tenant, input FindInput) (*domain.Story, error) {
	var (
		story *domain.Story
		key   string
		err   error
	)
	switch {
	case input.ID != "":
		key = input.ID
		story, err = s.stories.FindByID(ctx, tenant.ID, input.ID)
	case input.URL != "":
		key = input.URL
		story, err = s.stories.FindByURL(ctx, tenant.ID, input.URL)
	default:
		return nil, fmt.Errorf("%w: id or url is required", domain.ErrStoryNotFound)
	}
	return s.checkFound(key, story, err)
}

// FindOrCreate returns the story for the input, creating it on first sight.
// Scraping is only queued here; metadata may be missing when this returns.
func (s *StoryService) FindOrCreate(ctx context.Context, tenant *domain.Tenant, input domain.FindOrCreateStoryInput, now time.Time) (*domain.Story, error) {
	if input.Mode != nil {
		if err := validateStoryMode(tenant, *input.Mode); err != nil {
			return nil, err
		}
	}
	if input.ID == "" && input.URL == "" {
		return nil, fmt.Errorf("%w: id or url is required", domain.ErrStoryURLInvalid)
	}

	var siteID string
	if input.URL != "" {
		site, err := s.resolveSite(ctx, tenant.ID, input.URL)
		if err != nil {
			return nil, err
		}
		siteID = site.ID
	}

	result, err := s.stories.FindOrCreate(ctx, tenant.ID, input, siteID, now)
	if err != nil {
		return nil, fmt.Errorf("find or create story: %w", err)
	}
	if result.Story == nil {
		return nil, fmt.Errorf("story %s: %w", input.ID, domain.ErrStoryNotFound)
	}
	story := result.Story

	if result.WasUpserted {
		s.metrics.StoryCreated(tenant.ID)
		s.events.Emit(domain.StoryCreatedEvent{
			MutationID: domain.NewMutationID(),
			TenantID:   tenant.ID,
			StoryID:    story.ID,
			StoryURL:   story.URL,
			SiteID:     story.SiteID,
			CreatedAt:  story.CreatedAt,
		})
	}

	if tenant.ScrapingEnabled() && story.Metadata == nil && story.ScrapedAt == nil {
		s.enqueueScrape(ctx, tenant.ID, story)
	}

	return story, nil
}

// Create makes a story with an explicit id. Without supplied metadata the page
// is scraped before returning.
func (s *StoryService) Create(ctx context.Context, tenant *domain.Tenant, input CreateInput, now time.Time) (*domain.Story, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, domain.ErrInvalidStoryID
	}
	if input.URL == "" {
		return nil, fmt.Errorf("%w: url is required", domain.ErrStoryURLInvalid)
	}
	if input.Settings.Mode != nil {
		if err := validateStoryMode(tenant, *input.Settings.Mode); err != nil {
			return nil, err
		}
	}

	site, err := s.resolveSite(ctx, tenant.ID, input.URL)
	if err != nil {
		return nil, err
	}

	story, err := s.stories.Create(ctx, tenant.ID, domain.CreateStoryInput{
		ID:       input.ID,
		URL:      input.URL,
		SiteID:   site.ID,
		Metadata: input.Metadata,
		Settings: input.Settings,
	}, now)
	if err != nil {
		return nil, err
	}
	s.metrics.StoryCreated(tenant.ID)

	if input.Metadata == nil && tenant.ScrapingEnabled() {
		scraped, err := s.scraper.Scrape(ctx, tenant.ID, story.ID, story.URL)
		if err != nil {
			s.logger.Warn("scrape on create failed",
				"tenant_id", tenant.ID,
				"story_id", story.ID,
				"error", err,
			)
			return story, nil
		}
		if scraped != nil {
			story = scraped
		}
	}

	return story, nil
}

func (s *StoryService) Update(ctx context.Context, tenant *domain.Tenant, id string, input UpdateInput, now time.Time) (*domain.Story, error) {
	if input.URL != nil {
		site, err := s.resolveSite(ctx, tenant.ID, *input.URL)
		if err != nil {
			return nil, err
		}

		existing, err := s.stories.FindByID(ctx, tenant.ID, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("story %s: %w", id, domain.ErrStoryNotFound)
		}
		if existing.SiteID != site.ID {
			return nil, fmt.Errorf("%w: %s belongs to site %s, story is on site %s",
				domain.ErrStoryURLInvalid, *input.URL, site.ID, existing.SiteID)
		}
	}

	story, err := s.stories.Update(ctx, tenant.ID, id, domain.StoryUpdate{
		URL:      input.URL,
		Metadata: input.Metadata,
	}, now)
	return s.checkFound(id, story, err)
}

func (s *StoryService) UpdateSettings(ctx context.Context, tenant *domain.Tenant, id string, settings domain.StorySettings, now time.Time) (*domain.Story, error) {
	if settings.Mode != nil {
		if err := validateStoryMode(tenant, *settings.Mode); err != nil {
			return nil, err
		}
	}

	story, err := s.stories.UpdateSettings(ctx, tenant.ID, id, settings, now)
	return s.checkFound(id, story, err)
}

// UpdateMode switches the story mode. Any mode may follow any other as long
// as the tenant holds the required feature flag.
func (s *StoryService) UpdateMode(ctx context.Context, tenant *domain.Tenant, id string, mode domain.StoryMode, now time.Time) (*domain.Story, error) {
	if err := validateStoryMode(tenant, mode); err != nil {
		return nil, err
	}

	story, err := s.stories.SetMode(ctx, tenant.ID, id, mode, now)
	return s.checkFound(id, story, err)
}

func (s *StoryService) Open(ctx context.Context, tenant *domain.Tenant, id string, now time.Time) (*domain.Story, error) {
	story, err := s.stories.Open(ctx, tenant.ID, id, now)
	return s.checkFound(id, story, err)
}

func (s *StoryService) Close(ctx context.Context, tenant *domain.Tenant, id string, now time.Time) (*domain.Story, error) {
	story, err := s.stories.Close(ctx, tenant.ID, id, now)
	return s.checkFound(id, story, err)
}

// Remove deletes a story. A story with counted comments is only removed when
// includeComments is set, in which case actions go first, then comments.
func (s *StoryService) Remove(ctx context.Context, tenant *domain.Tenant, id string, includeComments bool) (*domain.Story, error) {
	story, err := s.stories.FindByID(ctx, tenant.ID, id)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, fmt.Errorf("story %s: %w", id, domain.ErrStoryNotFound)
	}

	total := counts.TotalComments(story.CommentCounts.Status)
	if !includeComments && total > 0 {
		return nil, fmt.Errorf("remove story %s with %d comments: %w", id, total, domain.ErrHasLinkedComments)
	}

	logger := s.logger.With("tenant_id", tenant.ID, "story_id", id)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if includeComments {
			actions, err := s.actions.RemoveByStory(txCtx, tenant.ID, id)
			if err != nil {
				return fmt.Errorf("remove story actions: %w", err)
			}
			logger.Info("removed story actions", "count", actions)

			comments, err := s.comments.RemoveByStory(txCtx, tenant.ID, id)
			if err != nil {
				return fmt.Errorf("remove story comments: %w", err)
			}
			logger.Info("removed story comments", "count", comments)
		}

		removed, err := s.stories.Remove(txCtx, tenant.ID, id)
		if err != nil {
			return err
		}
		if removed == 0 {
			return fmt.Errorf("story %s: %w", id, domain.ErrStoryNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("removed story", "include_comments", includeComments)
	return story, nil
}

func (s *StoryService) AddExpert(ctx context.Context, tenant *domain.Tenant, storyID, userID string) (*domain.Story, error) {
	if err := s.requireUser(ctx, tenant.ID, userID); err != nil {
		return nil, err
	}

	story, err := s.stories.AddExpert(ctx, tenant.ID, storyID, userID)
	return s.checkFound(storyID, story, err)
}

func (s *StoryService) RemoveExpert(ctx context.Context, tenant *domain.Tenant, storyID, userID string) (*domain.Story, error) {
	if err := s.requireUser(ctx, tenant.ID, userID); err != nil {
		return nil, err
	}

	story, err := s.stories.RemoveExpert(ctx, tenant.ID, storyID, userID)
	return s.checkFound(storyID, story, err)
}

// ApplyCountsDelta adds delta to the story counts under a row lock. Negative
// delta fields are allowed as long as the result stays non-negative.
func (s *StoryService) ApplyCountsDelta(ctx context.Context, tenant *domain.Tenant, id string, delta domain.CommentCounts, commentedAt *time.Time) (*domain.Story, error) {
	var updated *domain.Story

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		found, err := s.stories.FindMany(txCtx, tenant.ID, []string{id}, true)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("story %s: %w", id, domain.ErrStoryNotFound)
		}

		merged := counts.Merge(found[0].CommentCounts, delta)
		if err := counts.Validate(merged); err != nil {
			return fmt.Errorf("apply counts to story %s: %w", id, err)
		}

		story, err := s.stories.UpdateCounts(txCtx, tenant.ID, id, merged)
		if err != nil {
			return err
		}
		if story == nil {
			return fmt.Errorf("story %s: %w", id, domain.ErrStoryNotFound)
		}

		if commentedAt != nil {
			if err := s.stories.TouchLastCommentedAt(txCtx, tenant.ID, id, *commentedAt); err != nil {
				return err
			}
			if story.LastCommentedAt == nil || commentedAt.After(*story.LastCommentedAt) {
				at := *commentedAt
				story.LastCommentedAt = &at
			}
		}

		updated = story
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *StoryService) LiveEnabled(tenant *domain.Tenant, story *domain.Story, now time.Time) bool {
	return live.IsEnabled(s.opts.Live, tenant, live.StorySource{Story: story}, now)
}

func (s *StoryService) LiveSettingsEnabled(tenant *domain.Tenant, settings *domain.LiveSettings, now time.Time) bool {
	return live.IsEnabled(s.opts.Live, tenant, live.SettingsSource{Settings: settings}, now)
}

func (s *StoryService) resolveSite(ctx context.Context, tenantID, url string) (*domain.Site, error) {
	site, err := s.sites.FindByURL(ctx, tenantID, url)
	if err != nil {
		return nil, fmt.Errorf("resolve site: %w", err)
	}
	if site == nil {
		return nil, fmt.Errorf("%w: no site matches %s", domain.ErrStoryURLInvalid, url)
	}
	return site, nil
}

func (s *StoryService) requireUser(ctx context.Context, tenantID, userID string) error {
	user, err := s.users.Retrieve(ctx, tenantID, userID)
	if err != nil {
		return fmt.Errorf("retrieve user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, domain.ErrUserNotFound)
	}
	return nil
}

func (s *StoryService) enqueueScrape(ctx context.Context, tenantID string, story *domain.Story) {
	task := domain.ScrapeTask{
		MutationID: domain.NewMutationID(),
		TenantID:   tenantID,
		StoryID:    story.ID,
		StoryURL:   story.URL,
	}

	if err := s.scrapes.EnqueueScrape(ctx, task); err != nil {
		s.metrics.ScrapeEnqueued("failed")
		s.logger.Error("failed to enqueue scrape",
			"tenant_id", tenantID,
			"story_id", story.ID,
			"error", err,
		)
		return
	}
	s.metrics.ScrapeEnqueued("queued")
}

func (s *StoryService) checkFound(id string, story *domain.Story, err error) (*domain.Story, error) {
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, fmt.Errorf("story %s: %w", id, domain.ErrStoryNotFound)
	}
	return story, nil
}

type nopRecorder struct{}

func (nopRecorder) StoryCreated(string)          {}
func (nopRecorder) MergeCompleted(string, int64) {}
func (nopRecorder) ScrapeEnqueued(string)        {}
