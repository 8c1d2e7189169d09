package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"story_aggregator/internal/domain"
)

type SiteStore struct {
	db *sqlx.DB
}

func NewSiteStore(db *sqlx.DB) *SiteStore {
	return &SiteStore{db: db}
}

type siteRow struct {
	domain.Site
	AllowedOrigins pq.StringArray `db:"allowed_origins"`
}

// FindByURL returns the site whose allowed origins contain the origin of
// storyURL, or nil when the url is malformed or no site matches.
func (s *SiteStore) FindByURL(ctx context.Context, tenantID, storyURL string) (*domain.Site, error) {
	origin, ok := Origin(storyURL)
	if !ok {
		return nil, nil
	}

	query := `
		SELECT id, tenant_id, name, allowed_origins
		FROM sites
		WHERE tenant_id = $1 AND $2 = ANY(allowed_origins)
		ORDER BY created_at
		LIMIT 1`

	var row siteRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, tenantID, origin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find site by url: %w", err)
	}

	site := row.Site
	site.AllowedOrigins = []string(row.AllowedOrigins)
	return &site, nil
}

// Origin reduces an absolute http(s) url to scheme://host[:port].
func Origin(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	return scheme + "://" + strings.ToLower(u.Host), true
}
