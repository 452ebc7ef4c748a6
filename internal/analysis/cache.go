package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultCacheSize is the number of job texts remembered by a CachedExtractor
const DefaultCacheSize = 256

// SignalExtractor is implemented by Extractor and CachedExtractor
type SignalExtractor interface {
	Extract(jobText string) *types.JobSignals
}

// CachedExtractor memoizes Extract by the sha256 of the job text. Callers
// always receive their own copy of the cached signals.
type CachedExtractor struct {
	inner *Extractor
	cache *lru.Cache[string, *types.JobSignals]
}

// NewCachedExtractor wraps an extractor with an LRU cache of the given size.
// A non-positive size uses DefaultCacheSize.
func NewCachedExtractor(inner *Extractor, size int) (*CachedExtractor, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *types.JobSignals](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create signal cache: %w", err)
	}
	return &CachedExtractor{inner: inner, cache: cache}, nil
}

// Extract returns cached signals for previously seen text, computing them otherwise
func (c *CachedExtractor) Extract(jobText string) *types.JobSignals {
	key := textKey(jobText)
	if cached, ok := c.cache.Get(key); ok {
		return cached.Clone()
	}
	signals := c.inner.Extract(jobText)
	c.cache.Add(key, signals.Clone())
	return signals
}

// Len returns the number of cached entries
func (c *CachedExtractor) Len() int {
	return c.cache.Len()
}

func textKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
