package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/paddock-picks/internal/parser"
)

// CacheKey identifies a report by the digest of its normalized paste and the
// strategy that scored it.
type CacheKey struct {
	Digest   string
	Strategy string
}

// NewCacheKey digests the normalized form of text, so pastes differing only in
// width, dashes or line endings share an entry.
func NewCacheKey(text, strategyName string) CacheKey {
	sum := sha256.Sum256([]byte(parser.Normalize(text)))
	return CacheKey{Digest: hex.EncodeToString(sum[:]), Strategy: strategyName}
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return k.Strategy + ":" + k.Digest
}

// ReportCache provides in-memory caching for analysis reports
type ReportCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewReportCache creates a new report cache
func NewReportCache(ttl time.Duration, maxSize int) *ReportCache {
	return &ReportCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached report
func (rc *ReportCache) Get(key CacheKey) *Report {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if result, found := rc.cache.Get(key.String()); found {
		if report, ok := result.(*Report); ok {
			rc.hitCount++
			return report
		}
	}

	rc.missCount++
	return nil
}

// Set stores a report in cache
func (rc *ReportCache) Set(key CacheKey, report *Report) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.cache.ItemCount() >= rc.maxSize {
		rc.cache.DeleteExpired()
		if rc.cache.ItemCount() >= rc.maxSize {
			return
		}
	}

	rc.cache.Set(key.String(), report, rc.ttl)
}

// Clear flushes the entire cache
func (rc *ReportCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache.Flush()
	rc.hitCount = 0
	rc.missCount = 0
}

// Stats returns cache statistics
func (rc *ReportCache) Stats() (hits, misses uint64, ratio float64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	hits = rc.hitCount
	misses = rc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (rc *ReportCache) ItemCount() int {
	return rc.cache.ItemCount()
}
