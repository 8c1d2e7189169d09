package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CommentStore moves and deletes the comments that hang off a story.
type CommentStore struct {
	db *sqlx.DB
}

func NewCommentStore(db *sqlx.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) ReassignStory(ctx context.Context, tenantID string, fromIDs []string, toID string) (int64, error) {
	return reassignStory(ctx, GetExecutor(ctx, s.db), "comments", tenantID, fromIDs, toID)
}

func (s *CommentStore) RemoveByStory(ctx context.Context, tenantID, storyID string) (int64, error) {
	return removeByStory(ctx, GetExecutor(ctx, s.db), "comments", tenantID, storyID)
}

// ActionStore moves and deletes comment actions (reactions, flags, ...).
type ActionStore struct {
	db *sqlx.DB
}

func NewActionStore(db *sqlx.DB) *ActionStore {
	return &ActionStore{db: db}
}

func (s *ActionStore) ReassignStory(ctx context.Context, tenantID string, fromIDs []string, toID string) (int64, error) {
	return reassignStory(ctx, GetExecutor(ctx, s.db), "comment_actions", tenantID, fromIDs, toID)
}

func (s *ActionStore) RemoveByStory(ctx context.Context, tenantID, storyID string) (int64, error) {
	return removeByStory(ctx, GetExecutor(ctx, s.db), "comment_actions", tenantID, storyID)
}

func reassignStory(ctx context.Context, exec sqlx.ExecerContext, table, tenantID string, fromIDs []string, toID string) (int64, error) {
	if len(fromIDs) == 0 {
		return 0, nil
	}

	query := "UPDATE " + table + " SET story_id = $3 WHERE tenant_id = $1 AND story_id = ANY($2)"
	res, err := exec.ExecContext(ctx, query, tenantID, pq.Array(fromIDs), toID)
	if err != nil {
		return 0, fmt.Errorf("reassign %s: %w", table, err)
	}
	return res.RowsAffected()
}

func removeByStory(ctx context.Context, exec sqlx.ExecerContext, table, tenantID, storyID string) (int64, error) {
	query := "DELETE FROM " + table + " WHERE tenant_id = $1 AND story_id = $2"
	res, err := exec.ExecContext(ctx, query, tenantID, storyID)
	if err != nil {
		return 0, fmt.Errorf("remove %s: %w", table, err)
	}
	return res.RowsAffected()
}
