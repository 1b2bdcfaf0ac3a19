package validation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"
	json "github.com/goccy/go-json"

	"github.com/eleven-am/forge/internal/domain"
)

// resultCache is a short-lived, purely performance-oriented cache of
// validation results keyed by the (artifact, options) fingerprint. Entries are
// immutable once written; overwrites are last-writer-wins, which only affects
// performance, never correctness.
type resultCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func newResultCache(maxEntries int64, ttl time.Duration, logger *slog.Logger) *resultCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		logger.Warn("validation cache disabled", "error", err)
		return &resultCache{ttl: ttl}
	}

	return &resultCache{cache: cache, ttl: ttl}
}

func (c *resultCache) get(key string) (*domain.ValidationResult, bool) {
	if c.cache == nil {
		return nil, false
	}

	value, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}

	stored, ok := value.(*domain.ValidationResult)
	if !ok {
		return nil, false
	}

	result := *stored
	result.Cached = true
	return &result, true
}

func (c *resultCache) set(key string, result *domain.ValidationResult) {
	if c.cache == nil {
		return
	}

	stored := *result
	c.cache.SetWithTTL(key, &stored, 1, c.ttl)
}

// wait blocks until buffered writes are visible. Only used by tests.
func (c *resultCache) wait() {
	if c.cache != nil {
		c.cache.Wait()
	}
}

func fingerprint(artifact *domain.Artifact, opts domain.ValidationOptions) string {
	payload, err := json.Marshal(struct {
		Artifact *domain.Artifact         `json:"artifact"`
		Options  domain.ValidationOptions `json:"options"`
	}{Artifact: artifact, Options: opts})
	if err != nil {
		return fmt.Sprintf("raw:%s:%s", artifact.Title, artifact.ID)
	}

	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}
