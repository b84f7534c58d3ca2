package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/glebk/playmood/internal/domain"
	"github.com/glebk/playmood/internal/impact"
	"github.com/glebk/playmood/internal/observability"
)

type cacheEntry struct {
	narrative domain.Narrative
	storedAt  time.Time
}

// Cached memoizes narratives per game and statistics. Entries older than
// the TTL are regenerated. Fallback and no-data narratives are not stored.
type Cached struct {
	next    Narrator
	cache   *lru.Cache[string, cacheEntry]
	ttl     time.Duration
	metrics *observability.Metrics
	now     func() time.Time
}

// NewCached wraps next with an LRU cache of size entries. A ttl of zero
// keeps entries until they are evicted.
func NewCached(next Narrator, size int, ttl time.Duration, metrics *observability.Metrics) (*Cached, error) {
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create narrative cache: %w", err)
	}
	return &Cached{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

// Generate returns a cached narrative when the statistics are unchanged
func (c *Cached) Generate(ctx context.Context, report *impact.Report) (*domain.Narrative, error) {
	if report == nil || report.Game == nil || report.NoData || report.Stats == nil {
		return c.next.Generate(ctx, report)
	}

	key := cacheKey(report)
	if entry, ok := c.cache.Get(key); ok {
		if c.ttl <= 0 || c.now().Sub(entry.storedAt) < c.ttl {
			c.metrics.RecordCacheLookup(true)
			n := entry.narrative
			n.Recommendations = append([]string(nil), n.Recommendations...)
			return &n, nil
		}
		c.cache.Remove(key)
	}
	c.metrics.RecordCacheLookup(false)

	n, err := c.next.Generate(ctx, report)
	if err != nil {
		return nil, err
	}
	if !n.Fallback {
		stored := *n
		stored.Recommendations = append([]string(nil), n.Recommendations...)
		c.cache.Add(key, cacheEntry{narrative: stored, storedAt: c.now()})
	}
	return n, nil
}

// Len reports the number of cached narratives
func (c *Cached) Len() int {
	return c.cache.Len()
}

func cacheKey(report *impact.Report) string {
	stats := report.Stats
	counts := stats.Impact.Counts

	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%g|%d/%d/%d",
		report.Game.Name,
		stats.Sessions.Total,
		stats.Sessions.AvgDuration,
		counts.Positive, counts.Negative, counts.Neutral,
	)
	for _, e := range stats.Transitions {
		fmt.Fprintf(&b, "|%s=%d", e.Transition, e.Count)
	}
	return b.String()
}
