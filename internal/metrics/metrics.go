package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for story lifecycle operations. A nil
// *Collector is valid and records nothing.
type Collector struct {
	registry           *prometheus.Registry
	storiesCreated     *prometheus.CounterVec
	merges             *prometheus.CounterVec
	commentsReassigned prometheus.Counter
	scrapesEnqueued    *prometheus.CounterVec
}

func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	storiesCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "created_total",
		Help:      "Stories created, by tenant.",
	}, []string{"tenant"})

	merges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "merges_total",
		Help:      "Merge attempts by outcome: merged, rejected or failed.",
	}, []string{"result"})

	commentsReassigned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "merge_comments_reassigned_total",
		Help:      "Comments moved to a destination story by merges.",
	})

	scrapesEnqueued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "scrape_enqueued_total",
		Help:      "Scrape tasks handed to the queue, by result.",
	}, []string{"result"})

	for _, c := range []prometheus.Collector{storiesCreated, merges, commentsReassigned, scrapesEnqueued} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:           registry,
		storiesCreated:     storiesCreated,
		merges:             merges,
		commentsReassigned: commentsReassigned,
		scrapesEnqueued:    scrapesEnqueued,
	}, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) StoryCreated(tenantID string) {
	if c == nil {
		return
	}
	c.storiesCreated.WithLabelValues(tenantID).Inc()
}

func (c *Collector) MergeCompleted(result string, commentsReassigned int64) {
	if c == nil {
		return
	}
	c.merges.WithLabelValues(result).Inc()
	if commentsReassigned > 0 {
		c.commentsReassigned.Add(float64(commentsReassigned))
	}
}

func (c *Collector) ScrapeEnqueued(result string) {
	if c == nil {
		return
	}
	c.scrapesEnqueued.WithLabelValues(result).Inc()
}
