package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStoryNotFound         = errors.New("story not found")
	ErrTenantNotFound        = errors.New("tenant not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrStoryURLInvalid       = errors.New("story url invalid")
	ErrInvalidStoryID        = errors.New("story id is required")
	ErrInvalidStoryMode      = errors.New("invalid story mode")
	ErrDuplicateStory        = errors.New("story already exists")
	ErrFeatureFlagRequired   = errors.New("feature flag required")
	ErrHasLinkedComments     = errors.New("story has linked comments")
	ErrMergeValidationFailed = errors.New("merge validation failed")
	ErrNegativeCounts        = errors.New("comment counts cannot be negative")
	ErrQueueTotalTooLow      = errors.New("moderation queue total below sum of queues")
)

type FeatureFlagError struct {
	Flag FeatureFlag
}

func (e *FeatureFlagError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFeatureFlagRequired, e.Flag)
}

func (e *FeatureFlagError) Is(target error) bool {
	return target == ErrFeatureFlagRequired
}

type MergeValidationReason string

const (
	MergeReasonNoSources       MergeValidationReason = "no_sources"
	MergeReasonDuplicateIDs    MergeValidationReason = "duplicate_ids"
	MergeReasonMissingStories  MergeValidationReason = "missing_stories"
	MergeReasonSiteMismatch    MergeValidationReason = "site_mismatch"
	MergeReasonNotCommentsMode MergeValidationReason = "not_comments_mode"
)

type MergeValidationError struct {
	Reason   MergeValidationReason
	StoryIDs []string
}

func (e *MergeValidationError) Error() string {
	if len(e.StoryIDs) == 0 {
		return fmt.Sprintf("%s: %s", ErrMergeValidationFailed, e.Reason)
	}
	return fmt.Sprintf("%s: %s [%s]", ErrMergeValidationFailed, e.Reason, strings.Join(e.StoryIDs, ", "))
}

func (e *MergeValidationError) Is(target error) bool {
	return target == ErrMergeValidationFailed
}
