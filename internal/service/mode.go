package service

import (
	"fmt"

	"story_aggregator/internal/domain"
)

var modeFeatureFlags = map[domain.StoryMode]domain.FeatureFlag{
	domain.StoryModeQA:                domain.FeatureFlagEnableQA,
	domain.StoryModeRatingsAndReviews: domain.FeatureFlagEnableRatingsAndReviews,
}

// ResolveStoryMode returns the mode a story operates in: its own setting, else
// the tenant default.
func ResolveStoryMode(settings domain.StorySettings, tenant *domain.Tenant) domain.StoryMode {
	if settings.Mode != nil && *settings.Mode != "" {
		return *settings.Mode
	}
	if tenant != nil && tenant.HasFeatureFlag(domain.FeatureFlagDefaultQAStoryMode) {
		return domain.StoryModeQA
	}
	return domain.StoryModeComments
}

func validateStoryMode(tenant *domain.Tenant, mode domain.StoryMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStoryMode, mode)
	}

	flag, gated := modeFeatureFlags[mode]
	if gated && !tenant.HasFeatureFlag(flag) {
		return &domain.FeatureFlagError{Flag: flag}
	}
	return nil
}
