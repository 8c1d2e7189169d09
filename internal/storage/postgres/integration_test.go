//go:build integration

package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"story_aggregator/internal/domain"
	"story_aggregator/internal/service"
	"story_aggregator/internal/testutil"
)

const (
	tenantID = "tenant-1"
	siteID   = "site-1"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	now       time.Time
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_tenants.up.sql"),
			filepath.Join(migrationsPath, "002_create_stories.up.sql"),
			filepath.Join(migrationsPath, "003_create_comments.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	s.now = time.Now().UTC().Truncate(time.Microsecond)

	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM comment_actions")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM comments")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM stories")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM users")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM sites")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM tenants")

	s.exec(`INSERT INTO tenants (id, domain, feature_flags, settings)
		VALUES ($1, 'news.example.com', '{ENABLE_QA}', '{"live":{"enabled":true},"stories":{"scraping":{"enabled":true}}}')`, tenantID)
	s.exec(`INSERT INTO tenants (id, domain) VALUES ('tenant-2', 'quiet.example.com')`)
	s.exec(`INSERT INTO sites (tenant_id, id, name, allowed_origins)
		VALUES ($1, $2, 'News', '{https://news.example.com}')`, tenantID, siteID)
	s.exec(`INSERT INTO sites (tenant_id, id, name, allowed_origins)
		VALUES ('tenant-2', 'site-q', 'Quiet', '{https://quiet.example.com}')`)
	s.exec(`INSERT INTO users (tenant_id, id, username) VALUES ($1, 'user-1', 'jane')`, tenantID)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) exec(query string, args ...any) {
	_, err := s.db.ExecContext(s.ctx, query, args...)
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) createStory(id string, approved int64) *domain.Story {
	store := NewStoryStore(s.db)
	story, err := store.Create(s.ctx, tenantID, domain.CreateStoryInput{
		ID:     id,
		URL:    "https://news.example.com/" + id,
		SiteID: siteID,
	}, s.now)
	s.Require().NoError(err)

	if approved > 0 {
		counts := story.CommentCounts
		counts.Status.Approved = approved
		story, err = store.UpdateCounts(s.ctx, tenantID, id, counts)
		s.Require().NoError(err)
	}
	return story
}

func (s *PostgresIntegrationSuite) addComment(commentID, storyID string) {
	s.exec(`INSERT INTO comments (tenant_id, id, story_id, status) VALUES ($1, $2, $3, 'APPROVED')`,
		tenantID, commentID, storyID)
	s.exec(`INSERT INTO comment_actions (tenant_id, id, story_id, comment_id, action_type) VALUES ($1, $2, $3, $4, 'FLAG')`,
		tenantID, "action-"+commentID, storyID, commentID)
}

func (s *PostgresIntegrationSuite) TestStoryStore_FindOrCreate() {
	store := NewStoryStore(s.db)
	url := "https://news.example.com/a"

	first, err := store.FindOrCreate(s.ctx, tenantID, domain.FindOrCreateStoryInput{URL: url}, siteID, s.now)
	s.Require().NoError(err)
	s.True(first.WasUpserted)
	s.Require().NotNil(first.Story)
	s.NotEmpty(first.Story.ID)
	s.Equal(siteID, first.Story.SiteID)
	s.Equal(int64(0), first.Story.CommentCounts.Status.Approved)
	s.NotNil(first.Story.CommentCounts.Action)
	s.Empty(first.Story.ExpertIDs)

	second, err := store.FindOrCreate(s.ctx, tenantID, domain.FindOrCreateStoryInput{URL: url}, siteID, s.now)
	s.Require().NoError(err)
	s.False(second.WasUpserted)
	s.Equal(first.Story.ID, second.Story.ID)

	missing, err := store.FindOrCreate(s.ctx, tenantID, domain.FindOrCreateStoryInput{ID: "nope"}, "", s.now)
	s.Require().NoError(err)
	s.Nil(missing.Story)
}

func (s *PostgresIntegrationSuite) TestStoryStore_FindOrCreateWithMode() {
	store := NewStoryStore(s.db)
	mode := domain.StoryModeQA

	result, err := store.FindOrCreate(s.ctx, tenantID, domain.FindOrCreateStoryInput{
		ID:   "qa-1",
		URL:  "https://news.example.com/qa",
		Mode: &mode,
	}, siteID, s.now)

	s.Require().NoError(err)
	s.True(result.WasUpserted)
	s.Equal("qa-1", result.Story.ID)
	s.Require().NotNil(result.Story.Settings.Mode)
	s.Equal(domain.StoryModeQA, *result.Story.Settings.Mode)
}

func (s *PostgresIntegrationSuite) TestStoryStore_CreateDuplicate() {
	s.createStory("a", 0)

	_, err := NewStoryStore(s.db).Create(s.ctx, tenantID, domain.CreateStoryInput{
		ID:     "a",
		URL:    "https://news.example.com/other",
		SiteID: siteID,
	}, s.now)

	s.ErrorIs(err, domain.ErrDuplicateStory)
}

func (s *PostgresIntegrationSuite) TestStoryStore_UpdatePartial() {
	store := NewStoryStore(s.db)
	s.createStory("a", 0)

	metadata := &domain.StoryMetadata{Title: testutil.Ptr("Headline"), Section: testutil.Ptr("Politics")}
	scrapedAt := s.now.Add(time.Minute)

	story, err := store.Update(s.ctx, tenantID, "a", domain.StoryUpdate{Metadata: metadata, ScrapedAt: &scrapedAt}, s.now)
	s.Require().NoError(err)
	s.Require().NotNil(story.Metadata)
	s.Equal("Headline", *story.Metadata.Title)
	s.Equal("https://news.example.com/a", story.URL)
	s.True(scrapedAt.Equal(*story.ScrapedAt))
	s.NotNil(story.UpdatedAt)

	missing, err := store.Update(s.ctx, tenantID, "ghost", domain.StoryUpdate{Metadata: metadata}, s.now)
	s.NoError(err)
	s.Nil(missing)
}

func (s *PostgresIntegrationSuite) TestStoryStore_SettingsAndMode() {
	store := NewStoryStore(s.db)
	s.createStory("a", 0)

	story, err := store.UpdateSettings(s.ctx, tenantID, "a", domain.StorySettings{
		Moderation: testutil.Ptr("PRE"),
		Live:       &domain.LiveSettings{Enabled: testutil.Ptr(false)},
	}, s.now)
	s.Require().NoError(err)
	s.Equal("PRE", *story.Settings.Moderation)

	story, err = store.SetMode(s.ctx, tenantID, "a", domain.StoryModeRatingsAndReviews, s.now)
	s.Require().NoError(err)
	s.Equal(domain.StoryModeRatingsAndReviews, *story.Settings.Mode)
	s.Equal("PRE", *story.Settings.Moderation)
	s.Require().NotNil(story.Settings.Live)
	s.False(*story.Settings.Live.Enabled)
}

func (s *PostgresIntegrationSuite) TestStoryStore_OpenClose() {
	store := NewStoryStore(s.db)
	s.createStory("a", 0)

	story, err := store.Close(s.ctx, tenantID, "a", s.now)
	s.Require().NoError(err)
	s.True(story.IsClosed)
	s.Require().NotNil(story.ClosedAt)

	story, err = store.Close(s.ctx, tenantID, "a", s.now)
	s.Require().NoError(err)
	s.True(story.IsClosed)

	story, err = store.Open(s.ctx, tenantID, "a", s.now)
	s.Require().NoError(err)
	s.False(story.IsClosed)
	s.Nil(story.ClosedAt)
}

func (s *PostgresIntegrationSuite) TestStoryStore_Experts() {
	store := NewStoryStore(s.db)
	s.createStory("a", 0)

	story, err := store.AddExpert(s.ctx, tenantID, "a", "user-1")
	s.Require().NoError(err)
	story, err = store.AddExpert(s.ctx, tenantID, "a", "user-1")
	s.Require().NoError(err)
	s.Equal([]string{"user-1"}, story.ExpertIDs)

	story, err = store.RemoveExpert(s.ctx, tenantID, "a", "user-1")
	s.Require().NoError(err)
	s.Empty(story.ExpertIDs)
}

func (s *PostgresIntegrationSuite) TestStoryStore_CountsAndLastCommentedAt() {
	store := NewStoryStore(s.db)
	s.createStory("a", 0)

	story, err := store.UpdateCounts(s.ctx, tenantID, "a", domain.CommentCounts{
		Status: domain.StatusCounts{Approved: 3, Premod: 1},
		Action: domain.ActionCounts{"FLAG": 2},
	})
	s.Require().NoError(err)
	s.Equal(int64(3), story.CommentCounts.Status.Approved)
	s.Equal(int64(2), story.CommentCounts.Action["FLAG"])
	s.NotNil(story.UpdatedAt)

	later := s.now.Add(time.Hour)
	s.Require().NoError(store.TouchLastCommentedAt(s.ctx, tenantID, "a", later))
	s.Require().NoError(store.TouchLastCommentedAt(s.ctx, tenantID, "a", s.now))

	story, err = store.FindByID(s.ctx, tenantID, "a")
	s.Require().NoError(err)
	s.True(later.Equal(*story.LastCommentedAt))
}

func (s *PostgresIntegrationSuite) TestStoryStore_FindManyAndRemoveMany() {
	store := NewStoryStore(s.db)
	s.createStory("a", 0)
	s.createStory("b", 0)

	stories, err := store.FindMany(s.ctx, tenantID, []string{"b", "a", "ghost"}, false)
	s.Require().NoError(err)
	s.Len(stories, 2)
	s.Equal("a", stories[0].ID)

	removed, err := store.RemoveMany(s.ctx, tenantID, []string{"a", "b", "ghost"})
	s.Require().NoError(err)
	s.Equal(int64(2), removed)
}

func (s *PostgresIntegrationSuite) TestStoryStore_RemoveWithCommentsFails() {
	store := NewStoryStore(s.db)
	s.createStory("a", 1)
	s.addComment("c1", "a")

	_, err := store.Remove(s.ctx, tenantID, "a")
	s.ErrorIs(err, domain.ErrHasLinkedComments)

	story, err := store.FindByID(s.ctx, tenantID, "a")
	s.Require().NoError(err)
	s.NotNil(story)
}

func (s *PostgresIntegrationSuite) TestStoryStore_FindUnscraped() {
	store := NewStoryStore(s.db)
	s.createStory("a", 0)
	scraped := s.createStory("b", 0)
	_, err := store.Update(s.ctx, tenantID, scraped.ID, domain.StoryUpdate{ScrapedAt: &s.now}, s.now)
	s.Require().NoError(err)
	s.exec(`INSERT INTO stories (tenant_id, id, site_id, url, comment_counts, created_at)
		VALUES ('tenant-2', 'q', 'site-q', 'https://quiet.example.com/q', '{}', $1)`, s.now)

	stories, err := store.FindUnscraped(s.ctx, s.now.Add(-time.Hour), 10)

	s.Require().NoError(err)
	s.Require().Len(stories, 1)
	s.Equal("a", stories[0].ID)
}

func (s *PostgresIntegrationSuite) TestChildStores_ReassignAndRemove() {
	comments := NewCommentStore(s.db)
	actions := NewActionStore(s.db)
	s.createStory("d", 0)
	s.createStory("s1", 0)
	s.createStory("s2", 0)
	s.addComment("c1", "s1")
	s.addComment("c2", "s2")
	s.addComment("c3", "s2")

	moved, err := comments.ReassignStory(s.ctx, tenantID, []string{"s1", "s2"}, "d")
	s.Require().NoError(err)
	s.Equal(int64(3), moved)

	moved, err = actions.ReassignStory(s.ctx, tenantID, []string{"s1", "s2"}, "d")
	s.Require().NoError(err)
	s.Equal(int64(3), moved)

	removed, err := actions.RemoveByStory(s.ctx, tenantID, "d")
	s.Require().NoError(err)
	s.Equal(int64(3), removed)

	removed, err = comments.RemoveByStory(s.ctx, tenantID, "d")
	s.Require().NoError(err)
	s.Equal(int64(3), removed)
}

func (s *PostgresIntegrationSuite) TestMerge_MovesEveryRowToDestination() {
	store := NewStoryStore(s.db)
	stories := service.NewStoryService(service.Deps{
		Stories:   store,
		Comments:  NewCommentStore(s.db),
		Actions:   NewActionStore(s.db),
		Sites:     NewSiteStore(s.db),
		Users:     NewUserStore(s.db),
		TxManager: NewTransactionManager(s.db),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), service.Options{})

	s.createStory("d", 2)
	s.createStory("s1", 0)
	s.createStory("s2", 0)
	_, err := store.UpdateCounts(s.ctx, tenantID, "s1", domain.CommentCounts{
		Status: domain.StatusCounts{Approved: 3},
		Action: domain.ActionCounts{"FLAG": 2},
	})
	s.Require().NoError(err)
	_, err = store.UpdateCounts(s.ctx, tenantID, "s2", domain.CommentCounts{
		Status: domain.StatusCounts{Approved: 1},
		Action: domain.ActionCounts{"FLAG": 1, "DONT_AGREE": 4},
	})
	s.Require().NoError(err)
	s.addComment("c0", "d")
	s.addComment("c1", "s1")
	s.addComment("c2", "s1")
	s.addComment("c3", "s2")

	result, err := stories.Merge(s.ctx, &domain.Tenant{ID: tenantID}, "d", []string{"s1", "s2"})

	s.Require().NoError(err)
	s.Equal(int64(3), result.CommentsReassigned)
	s.Equal(int64(3), result.ActionsReassigned)
	s.Equal(int64(2), result.StoriesRemoved)
	s.Equal(int64(4), result.Story.CommentCounts.Status.Approved)
	s.Equal(domain.ActionCounts{"FLAG": 3, "DONT_AGREE": 4}, result.Story.CommentCounts.Action)

	var stray int
	s.Require().NoError(s.db.GetContext(s.ctx, &stray,
		"SELECT COUNT(*) FROM comments WHERE tenant_id = $1 AND story_id <> 'd'", tenantID))
	s.Zero(stray)
	s.Require().NoError(s.db.GetContext(s.ctx, &stray,
		"SELECT COUNT(*) FROM comment_actions WHERE tenant_id = $1 AND story_id <> 'd'", tenantID))
	s.Zero(stray)

	remaining, err := store.FindMany(s.ctx, tenantID, []string{"d", "s1", "s2"}, false)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal("d", remaining[0].ID)
}

func (s *PostgresIntegrationSuite) TestSiteStore_FindByURL() {
	store := NewSiteStore(s.db)

	site, err := store.FindByURL(s.ctx, tenantID, "https://NEWS.example.com/politics/a?x=1")
	s.Require().NoError(err)
	s.Require().NotNil(site)
	s.Equal(siteID, site.ID)
	s.Equal([]string{"https://news.example.com"}, site.AllowedOrigins)

	site, err = store.FindByURL(s.ctx, tenantID, "https://quiet.example.com/q")
	s.NoError(err)
	s.Nil(site)

	site, err = store.FindByURL(s.ctx, tenantID, "ftp://news.example.com/a")
	s.NoError(err)
	s.Nil(site)
}

func (s *PostgresIntegrationSuite) TestUserAndTenantStores() {
	user, err := NewUserStore(s.db).Retrieve(s.ctx, tenantID, "user-1")
	s.Require().NoError(err)
	s.Equal("jane", user.Username)

	user, err = NewUserStore(s.db).Retrieve(s.ctx, tenantID, "ghost")
	s.NoError(err)
	s.Nil(user)

	tenant, err := NewTenantStore(s.db).Find(s.ctx, tenantID)
	s.Require().NoError(err)
	s.True(tenant.HasFeatureFlag(domain.FeatureFlagEnableQA))
	s.True(tenant.Settings.Live.Enabled)
	s.True(tenant.ScrapingEnabled())

	_, err = NewTenantStore(s.db).Find(s.ctx, "ghost")
	s.ErrorIs(err, domain.ErrTenantNotFound)
}

func (s *PostgresIntegrationSuite) TestTransactionManager_Rollback() {
	tm := NewTransactionManager(s.db)
	store := NewStoryStore(s.db)
	s.createStory("a", 0)
	boom := errors.New("boom")

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		removed, err := store.Remove(ctx, tenantID, "a")
		s.Require().NoError(err)
		s.Equal(int64(1), removed)
		return boom
	})
	s.ErrorIs(err, boom)

	story, err := store.FindByID(s.ctx, tenantID, "a")
	s.Require().NoError(err)
	s.NotNil(story)
}

func (s *PostgresIntegrationSuite) TestTransactionManager_Nested() {
	tm := NewTransactionManager(s.db)
	store := NewStoryStore(s.db)
	s.createStory("a", 0)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		outer := GetTxFromContext(ctx)
		return tm.WithTransaction(ctx, func(inner context.Context) error {
			s.Same(outer, GetTxFromContext(inner))
			_, err := store.FindMany(inner, tenantID, []string{"a"}, true)
			return err
		})
	})

	s.NoError(err)
}
