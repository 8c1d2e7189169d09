package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"story_aggregator/internal/counts"
	"story_aggregator/internal/domain"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var storyColumns = []string{
	"id", "tenant_id", "site_id", "url", "metadata", "scraped_at", "settings",
	"expert_ids", "is_closed", "closed_at", "last_commented_at", "comment_counts",
	"created_at", "updated_at",
}

var (
	psql             = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	storyReturning   = "RETURNING " + strings.Join(storyColumns, ", ")
	storySelectQuery = "SELECT " + strings.Join(storyColumns, ", ") + " FROM stories"
)

type storyRow struct {
	domain.Story
	ExpertIDs pq.StringArray `db:"expert_ids"`
}

func (r *storyRow) toDomain() *domain.Story {
	story := r.Story
	story.ExpertIDs = []string(r.ExpertIDs)
	if story.ExpertIDs == nil {
		story.ExpertIDs = []string{}
	}
	if story.CommentCounts.Action == nil {
		story.CommentCounts.Action = domain.ActionCounts{}
	}
	return &story
}

// StoryStore persists stories. Single-row updates return a nil story when the
// row no longer exists.
type StoryStore struct {
	db *sqlx.DB
}

func NewStoryStore(db *sqlx.DB) *StoryStore {
	return &StoryStore{db: db}
}

func (s *StoryStore) getOne(ctx context.Context, query string, args ...any) (*domain.Story, error) {
	var row storyRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (s *StoryStore) FindByID(ctx context.Context, tenantID, id string) (*domain.Story, error) {
	story, err := s.getOne(ctx, storySelectQuery+" WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("find story by id: %w", err)
	}
	return story, nil
}

func (s *StoryStore) FindByURL(ctx context.Context, tenantID, url string) (*domain.Story, error) {
	story, err := s.getOne(ctx, storySelectQuery+" WHERE tenant_id = $1 AND url = $2", tenantID, url)
	if err != nil {
		return nil, fmt.Errorf("find story by url: %w", err)
	}
	return story, nil
}

// FindMany loads the stories with the given ids in one query. Missing ids are
// simply absent from the result. With forUpdate the rows stay locked until
// the ambient transaction ends.
func (s *StoryStore) FindMany(ctx context.Context, tenantID string, ids []string, forUpdate bool) ([]domain.Story, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := storySelectQuery + " WHERE tenant_id = $1 AND id = ANY($2) ORDER BY id"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var rows []storyRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, tenantID, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find stories: %w", err)
	}

	stories := make([]domain.Story, 0, len(rows))
	for i := range rows {
		stories = append(stories, *rows[i].toDomain())
	}
	return stories, nil
}

// FindOrCreate returns the story matching the input id or url, inserting it
// when absent. Concurrent calls for the same url converge on one row through
// the (tenant_id, url) unique constraint.
func (s *StoryStore) FindOrCreate(ctx context.Context, tenantID string, input domain.FindOrCreateStoryInput, siteID string, now time.Time) (domain.FindOrCreateResult, error) {
	if input.ID != "" {
		story, err := s.FindByID(ctx, tenantID, input.ID)
		if err != nil {
			return domain.FindOrCreateResult{}, err
		}
		if story != nil || input.URL == "" {
			return domain.FindOrCreateResult{Story: story}, nil
		}
	}
	if input.URL == "" {
		return domain.FindOrCreateResult{}, nil
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO stories (id, tenant_id, site_id, url, settings, comment_counts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
		` + storyReturning

	story, err := s.getOne(ctx, query,
		id,
		tenantID,
		siteID,
		input.URL,
		domain.StorySettings{Mode: input.Mode},
		counts.EmptyRelated(),
		now,
	)
	if err != nil {
		return domain.FindOrCreateResult{}, fmt.Errorf("upsert story: %w", err)
	}
	if story != nil {
		return domain.FindOrCreateResult{Story: story, WasUpserted: true}, nil
	}

	story, err = s.FindByURL(ctx, tenantID, input.URL)
	if err != nil {
		return domain.FindOrCreateResult{}, err
	}
	if story == nil && input.ID != "" {
		story, err = s.FindByID(ctx, tenantID, input.ID)
		if err != nil {
			return domain.FindOrCreateResult{}, err
		}
	}
	return domain.FindOrCreateResult{Story: story}, nil
}

func (s *StoryStore) Create(ctx context.Context, tenantID string, input domain.CreateStoryInput, now time.Time) (*domain.Story, error) {
	query := `
		INSERT INTO stories (id, tenant_id, site_id, url, metadata, settings, comment_counts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		` + storyReturning

	story, err := s.getOne(ctx, query,
		input.ID,
		tenantID,
		input.SiteID,
		input.URL,
		input.Metadata,
		input.Settings,
		counts.EmptyRelated(),
		now,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("create story %s: %w", input.ID, domain.ErrDuplicateStory)
		}
		return nil, fmt.Errorf("create story: %w", err)
	}
	return story, nil
}

func (s *StoryStore) Update(ctx context.Context, tenantID, id string, update domain.StoryUpdate, now time.Time) (*domain.Story, error) {
	builder := psql.Update("stories").
		Set("updated_at", now).
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		Suffix(storyReturning)

	if update.URL != nil {
		builder = builder.Set("url", *update.URL)
	}
	if update.Metadata != nil {
		builder = builder.Set("metadata", update.Metadata)
	}
	if update.ScrapedAt != nil {
		builder = builder.Set("scraped_at", *update.ScrapedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build story update: %w", err)
	}

	story, err := s.getOne(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("update story %s: %w", id, domain.ErrDuplicateStory)
		}
		return nil, fmt.Errorf("update story: %w", err)
	}
	return story, nil
}

// UpdateSettings merges the non-nil settings into the stored ones.
func (s *StoryStore) UpdateSettings(ctx context.Context, tenantID, id string, settings domain.StorySettings, now time.Time) (*domain.Story, error) {
	patch, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	query := `
		UPDATE stories SET settings = settings || $3::jsonb, updated_at = $4
		WHERE tenant_id = $1 AND id = $2
		` + storyReturning

	story, err := s.getOne(ctx, query, tenantID, id, string(patch), now)
	if err != nil {
		return nil, fmt.Errorf("update story settings: %w", err)
	}
	return story, nil
}

func (s *StoryStore) SetMode(ctx context.Context, tenantID, id string, mode domain.StoryMode, now time.Time) (*domain.Story, error) {
	query := `
		UPDATE stories SET settings = jsonb_set(settings, '{mode}', to_jsonb($3::text)), updated_at = $4
		WHERE tenant_id = $1 AND id = $2
		` + storyReturning

	story, err := s.getOne(ctx, query, tenantID, id, string(mode), now)
	if err != nil {
		return nil, fmt.Errorf("set story mode: %w", err)
	}
	return story, nil
}

func (s *StoryStore) Open(ctx context.Context, tenantID, id string, now time.Time) (*domain.Story, error) {
	query := `
		UPDATE stories SET is_closed = FALSE, closed_at = NULL, updated_at = $3
		WHERE tenant_id = $1 AND id = $2
		` + storyReturning

	story, err := s.getOne(ctx, query, tenantID, id, now)
	if err != nil {
		return nil, fmt.Errorf("open story: %w", err)
	}
	return story, nil
}

func (s *StoryStore) Close(ctx context.Context, tenantID, id string, now time.Time) (*domain.Story, error) {
	query := `
		UPDATE stories SET is_closed = TRUE, closed_at = $3, updated_at = $3
		WHERE tenant_id = $1 AND id = $2
		` + storyReturning

	story, err := s.getOne(ctx, query, tenantID, id, now)
	if err != nil {
		return nil, fmt.Errorf("close story: %w", err)
	}
	return story, nil
}

// UpdateCounts replaces the embedded counts with an already merged value.
func (s *StoryStore) UpdateCounts(ctx context.Context, tenantID, id string, commentCounts domain.CommentCounts) (*domain.Story, error) {
	query := `
		UPDATE stories SET comment_counts = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		` + storyReturning

	story, err := s.getOne(ctx, query, tenantID, id, commentCounts)
	if err != nil {
		return nil, fmt.Errorf("update story counts: %w", err)
	}
	return story, nil
}

// TouchLastCommentedAt moves last_commented_at forward, never backward.
func (s *StoryStore) TouchLastCommentedAt(ctx context.Context, tenantID, id string, at time.Time) error {
	query := `
		UPDATE stories SET last_commented_at = GREATEST(COALESCE(last_commented_at, $3), $3)
		WHERE tenant_id = $1 AND id = $2`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, tenantID, id, at); err != nil {
		return fmt.Errorf("touch last commented at: %w", err)
	}
	return nil
}

func (s *StoryStore) Remove(ctx context.Context, tenantID, id string) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM stories WHERE tenant_id = $1 AND id = $2",
		tenantID, id,
	)
	if err != nil {
		return 0, fmt.Errorf("remove story: %w", linkedRowsError(err))
	}
	return res.RowsAffected()
}

func (s *StoryStore) RemoveMany(ctx context.Context, tenantID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM stories WHERE tenant_id = $1 AND id = ANY($2)",
		tenantID, pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("remove stories: %w", linkedRowsError(err))
	}
	return res.RowsAffected()
}

// linkedRowsError reports a delete blocked by comments or actions that still
// reference the story, whatever its embedded counts say.
func linkedRowsError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrHasLinkedComments, pqErr.Message)
	}
	return err
}

func (s *StoryStore) AddExpert(ctx context.Context, tenantID, id, userID string) (*domain.Story, error) {
	query := `
		UPDATE stories SET expert_ids = CASE
			WHEN $3 = ANY(expert_ids) THEN expert_ids
			ELSE array_append(expert_ids, $3)
		END
		WHERE tenant_id = $1 AND id = $2
		` + storyReturning

	story, err := s.getOne(ctx, query, tenantID, id, userID)
	if err != nil {
		return nil, fmt.Errorf("add story expert: %w", err)
	}
	return story, nil
}

func (s *StoryStore) RemoveExpert(ctx context.Context, tenantID, id, userID string) (*domain.Story, error) {
	query := `
		UPDATE stories SET expert_ids = array_remove(expert_ids, $3)
		WHERE tenant_id = $1 AND id = $2
		` + storyReturning

	story, err := s.getOne(ctx, query, tenantID, id, userID)
	if err != nil {
		return nil, fmt.Errorf("remove story expert: %w", err)
	}
	return story, nil
}

// FindUnscraped lists stories created after the cutoff that were never
// scraped, limited to tenants with scraping enabled.
func (s *StoryStore) FindUnscraped(ctx context.Context, createdAfter time.Time, limit int) ([]domain.Story, error) {
	columns := make([]string, len(storyColumns))
	for i, c := range storyColumns {
		columns[i] = "s." + c
	}

	query, args, err := psql.Select(columns...).
		From("stories s").
		Join("tenants t ON t.id = s.tenant_id").
		Where(sq.Expr("COALESCE((t.settings #>> '{stories,scraping,enabled}')::boolean, FALSE)")).
		Where(sq.Eq{"s.metadata": nil, "s.scraped_at": nil}).
		Where(sq.Gt{"s.created_at": createdAfter}).
		OrderBy("s.created_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build unscraped query: %w", err)
	}

	var rows []storyRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find unscraped stories: %w", err)
	}

	stories := make([]domain.Story, 0, len(rows))
	for i := range rows {
		stories = append(stories, *rows[i].toDomain())
	}
	return stories, nil
}
