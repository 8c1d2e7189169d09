package service

import (
	"context"
	"errors"
	"fmt"

	"story_aggregator/internal/counts"
	"story_aggregator/internal/domain"
)

// Merge folds the source stories into the destination: comments and actions
// are moved, the destination counts are replaced by the sum of the source
// counts and the sources are deleted.
//
// Every structural check runs before anything is written. The writes run in
// one transaction with the source rows locked, and behind the optional
// per tenant+site lock.
func (s *StoryService) Merge(ctx context.Context, tenant *domain.Tenant, destinationID string, sourceIDs []string) (*domain.MergeResult, error) {
	logger := s.logger.With(
		"tenant_id", tenant.ID,
		"destination_id", destinationID,
		"source_ids", sourceIDs,
	)

	destination, err := s.validateMerge(ctx, tenant, destinationID, sourceIDs)
	if err != nil {
		s.metrics.MergeCompleted("rejected", 0)
		logger.Warn("merge rejected", "error", err)
		return nil, err
	}
	siteID := destination.SiteID

	if prior := counts.TotalComments(destination.CommentCounts.Status); prior > 0 {
		logger.Info("destination counts will be replaced by source totals", "prior_total_comments", prior)
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, mergeLockKey(tenant.ID, siteID), s.opts.LockTTL)
		if err != nil {
			s.metrics.MergeCompleted("failed", 0)
			return nil, fmt.Errorf("acquire merge lock: %w", err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("failed to release merge lock", "error", err)
			}
		}()
	}

	result := &domain.MergeResult{}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		sources, err := s.stories.FindMany(txCtx, tenant.ID, sourceIDs, true)
		if err != nil {
			return fmt.Errorf("lock source stories: %w", err)
		}
		if missing := missingIDs(sourceIDs, sources); len(missing) > 0 {
			return &domain.MergeValidationError{Reason: domain.MergeReasonMissingStories, StoryIDs: missing}
		}

		result.CommentsReassigned, err = s.comments.ReassignStory(txCtx, tenant.ID, sourceIDs, destinationID)
		if err != nil {
			return fmt.Errorf("reassign comments: %w", err)
		}
		logger.Info("reassigned comments", "count", result.CommentsReassigned)

		result.ActionsReassigned, err = s.actions.ReassignStory(txCtx, tenant.ID, sourceIDs, destinationID)
		if err != nil {
			return fmt.Errorf("reassign actions: %w", err)
		}
		logger.Info("reassigned actions", "count", result.ActionsReassigned)

		// The destination's own counts are replaced, not added to.
		sourceCounts := make([]domain.CommentCounts, len(sources))
		for i := range sources {
			sourceCounts[i] = sources[i].CommentCounts
		}
		merged := counts.Merge(sourceCounts...)

		story, err := s.stories.UpdateCounts(txCtx, tenant.ID, destinationID, merged)
		if err != nil {
			return fmt.Errorf("update destination counts: %w", err)
		}
		if story == nil {
			return fmt.Errorf("destination story %s: %w", destinationID, domain.ErrStoryNotFound)
		}
		logger.Info("updated destination counts", "total_comments", counts.TotalComments(merged.Status))

		result.StoriesRemoved, err = s.stories.RemoveMany(txCtx, tenant.ID, sourceIDs)
		if err != nil {
			return fmt.Errorf("remove source stories: %w", err)
		}
		logger.Info("removed source stories", "count", result.StoriesRemoved)
		if result.StoriesRemoved != int64(len(sourceIDs)) {
			logger.Warn("removed fewer source stories than requested",
				"requested", len(sourceIDs),
				"removed", result.StoriesRemoved,
			)
		}

		result.Story = story
		return nil
	})
	if err != nil {
		var validationErr *domain.MergeValidationError
		if errors.As(err, &validationErr) {
			s.metrics.MergeCompleted("rejected", 0)
		} else {
			s.metrics.MergeCompleted("failed", 0)
		}
		logger.Error("merge failed", "error", err)
		return nil, fmt.Errorf("merge stories: %w", err)
	}

	s.metrics.MergeCompleted("merged", result.CommentsReassigned)
	logger.Info("merged stories",
		"comments_reassigned", result.CommentsReassigned,
		"actions_reassigned", result.ActionsReassigned,
		"stories_removed", result.StoriesRemoved,
	)

	return result, nil
}

// validateMerge runs the pre-conditions in order and returns the destination.
func (s *StoryService) validateMerge(ctx context.Context, tenant *domain.Tenant, destinationID string, sourceIDs []string) (*domain.Story, error) {
	if len(sourceIDs) == 0 {
		return nil, &domain.MergeValidationError{Reason: domain.MergeReasonNoSources}
	}

	ids := append([]string{destinationID}, sourceIDs...)
	if dups := duplicateIDs(ids); len(dups) > 0 {
		return nil, &domain.MergeValidationError{Reason: domain.MergeReasonDuplicateIDs, StoryIDs: dups}
	}

	stories, err := s.stories.FindMany(ctx, tenant.ID, ids, false)
	if err != nil {
		return nil, fmt.Errorf("load merge stories: %w", err)
	}
	if missing := missingIDs(ids, stories); len(missing) > 0 {
		return nil, &domain.MergeValidationError{Reason: domain.MergeReasonMissingStories, StoryIDs: missing}
	}

	var destination *domain.Story
	for i := range stories {
		if stories[i].ID == destinationID {
			destination = &stories[i]
		}
	}

	var otherSites, otherModes []string
	for _, story := range stories {
		if story.SiteID != destination.SiteID {
			otherSites = append(otherSites, story.ID)
		}
		if ResolveStoryMode(story.Settings, tenant) != domain.StoryModeComments {
			otherModes = append(otherModes, story.ID)
		}
	}
	if len(otherSites) > 0 {
		return nil, &domain.MergeValidationError{Reason: domain.MergeReasonSiteMismatch, StoryIDs: otherSites}
	}
	if len(otherModes) > 0 {
		return nil, &domain.MergeValidationError{Reason: domain.MergeReasonNotCommentsMode, StoryIDs: otherModes}
	}

	return destination, nil
}

func mergeLockKey(tenantID, siteID string) string {
	return fmt.Sprintf("merge:%s:%s", tenantID, siteID)
}

func duplicateIDs(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

func missingIDs(ids []string, stories []domain.Story) []string {
	found := make(map[string]struct{}, len(stories))
	for _, story := range stories {
		found[story.ID] = struct{}{}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
