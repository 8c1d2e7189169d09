package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"story_aggregator/internal/domain"
)

// Config holds scraper configuration.
type Config struct {
	Timeout        time.Duration
	UserAgent      string
	MaxBodyBytes   int64
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

type StoryUpdater interface {
	Update(ctx context.Context, tenantID, id string, update domain.StoryUpdate, now time.Time) (*domain.Story, error)
}

type TenantFinder interface {
	Find(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// StatusError is returned for non-2xx responses. Only 5xx and 429 are retried.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Scraper fetches story pages and stores the metadata found in their head.
type Scraper struct {
	httpClient     *http.Client
	stories        StoryUpdater
	tenants        TenantFinder
	userAgent      string
	maxBodyBytes   int64
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

func New(cfg Config, stories StoryUpdater, tenants TenantFinder, logger *slog.Logger) *Scraper {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Scraper{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		stories:        stories,
		tenants:        tenants,
		userAgent:      cfg.UserAgent,
		maxBodyBytes:   cfg.MaxBodyBytes,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "scraper"),
		now:            time.Now,
	}
}

// Scrape fetches storyURL and persists its metadata on the story. A nil story
// with a nil error means the story no longer exists.
func (s *Scraper) Scrape(ctx context.Context, tenantID, storyID, storyURL string) (*domain.Story, error) {
	userAgent := s.userAgent
	if s.tenants != nil {
		tenant, err := s.tenants.Find(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("find tenant: %w", err)
		}
		if ua := tenant.Settings.Stories.Scraping.CustomUserAgent; ua != "" {
			userAgent = ua
		}
	}

	metadata, err := s.Fetch(ctx, storyURL, userAgent)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", storyURL, err)
	}

	now := s.now().UTC()
	story, err := s.stories.Update(ctx, tenantID, storyID, domain.StoryUpdate{
		Metadata:  metadata,
		ScrapedAt: &now,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("store metadata: %w", err)
	}

	s.logger.Debug("scraped story",
		"tenant_id", tenantID,
		"story_id", storyID,
		"found", story != nil,
	)

	return story, nil
}

// MarkAttempted stamps scraped_at without metadata so the story is no longer
// picked up by the backfill.
func (s *Scraper) MarkAttempted(ctx context.Context, tenantID, storyID string) error {
	now := s.now().UTC()
	if _, err := s.stories.Update(ctx, tenantID, storyID, domain.StoryUpdate{ScrapedAt: &now}, now); err != nil {
		return fmt.Errorf("record scrape attempt: %w", err)
	}
	return nil
}

// Fetch downloads the page with retries and extracts its metadata.
func (s *Scraper) Fetch(ctx context.Context, pageURL, userAgent string) (*domain.StoryMetadata, error) {
	var (
		doc *goquery.Document
		err error
	)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		doc, err = s.doRequest(ctx, pageURL, userAgent)
		if err == nil {
			return ParseMetadata(doc, pageURL), nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.retryable() {
			return nil, err
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"url", pageURL,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

func (s *Scraper) doRequest(ctx context.Context, pageURL, userAgent string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if s.maxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, s.maxBodyBytes)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (s *Scraper) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

// ParseMetadata reads OpenGraph and standard meta tags. Fields that are absent
// stay nil. Relative image URLs are resolved against pageURL.
func ParseMetadata(doc *goquery.Document, pageURL string) *domain.StoryMetadata {
	metadata := &domain.StoryMetadata{
		Title:       firstMeta(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`),
		Description: firstMeta(doc, `meta[property="og:description"]`, `meta[name="description"]`),
		Image:       firstMeta(doc, `meta[property="og:image"]`, `meta[name="twitter:image"]`),
		Author:      firstMeta(doc, `meta[name="author"]`, `meta[property="article:author"]`),
		Section:     firstMeta(doc, `meta[property="article:section"]`),
		ContentType: firstMeta(doc, `meta[property="og:type"]`),
		PublishedAt: parseTime(firstMeta(doc, `meta[property="article:published_time"]`)),
		ModifiedAt:  parseTime(firstMeta(doc, `meta[property="article:modified_time"]`, `meta[property="og:updated_time"]`)),
	}

	if metadata.Title == nil {
		if title := strings.TrimSpace(doc.Find("head > title").First().Text()); title != "" {
			metadata.Title = &title
		}
	}

	if metadata.Image != nil {
		if resolved, ok := resolveURL(pageURL, *metadata.Image); ok {
			metadata.Image = &resolved
		}
	}

	return metadata
}

func firstMeta(doc *goquery.Document, selectors ...string) *string {
	for _, selector := range selectors {
		content, exists := doc.Find(selector).First().Attr("content")
		if !exists {
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			return &content
		}
	}
	return nil
}

func parseTime(value *string) *time.Time {
	if value == nil {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02"} {
		if t, err := time.Parse(layout, *value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func resolveURL(base, ref string) (string, bool) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return baseURL.ResolveReference(refURL).String(), true
}
