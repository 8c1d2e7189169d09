// Package live decides whether real-time updates are delivered for a story.
package live

import (
	"time"

	"story_aggregator/internal/domain"
)

// Options are the process-wide live update switches.
type Options struct {
	Disabled bool
	Timeout  time.Duration
}

// Source is what the decision is made for: a full story or bare live settings.
type Source interface {
	liveSettings() *domain.LiveSettings
}

type StorySource struct {
	Story *domain.Story
}

func (s StorySource) liveSettings() *domain.LiveSettings {
	if s.Story == nil {
		return nil
	}
	return s.Story.Settings.Live
}

type SettingsSource struct {
	Settings *domain.LiveSettings
}

func (s SettingsSource) liveSettings() *domain.LiveSettings {
	return s.Settings
}

// IsEnabled is a pure function of its inputs; now is always supplied by the caller.
func IsEnabled(opts Options, tenant *domain.Tenant, src Source, now time.Time) bool {
	if opts.Disabled {
		return false
	}

	if story, ok := src.(StorySource); ok && opts.Timeout > 0 && story.Story != nil {
		lastActivity := story.Story.CreatedAt
		if story.Story.LastCommentedAt != nil {
			lastActivity = *story.Story.LastCommentedAt
		}
		if !lastActivity.Add(opts.Timeout).After(now) {
			return false
		}
	}

	tenantEnabled := tenant != nil && tenant.Settings.Live.Enabled

	settings := src.liveSettings()
	if settings == nil || settings.Enabled == nil {
		return tenantEnabled
	}
	return *settings.Enabled
}
