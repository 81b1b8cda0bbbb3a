// Package reportcache keeps recently computed analysis reports keyed by the
// content of the analyzed export, so that re-posting the same snapshot skips
// the analysis.
package reportcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sperciky/variable-monitoring/internal/analyzer"
	"github.com/sperciky/variable-monitoring/internal/models"
)

// Cache is an LRU of reports. A nil *Cache is a valid, always-empty cache.
type Cache struct {
	reports *lru.Cache[string, *models.Report]
}

// New returns a cache holding up to size reports. A size of zero or less
// disables caching and returns a nil cache.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, nil
	}
	reports, err := lru.New[string, *models.Report](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	return &Cache{reports: reports}, nil
}

// Key identifies the report for body analyzed with opts.
func Key(body []byte, opts analyzer.Options, detailed bool) string {
	h := sha256.New()
	h.Write(body)
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(opts.IncludePausedTags)))
	h.Write([]byte(strconv.FormatBool(detailed)))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached report for key. Cached reports are shared and must
// not be modified.
func (c *Cache) Get(key string) (*models.Report, bool) {
	if c == nil {
		return nil, false
	}
	return c.reports.Get(key)
}

func (c *Cache) Add(key string, report *models.Report) {
	if c == nil {
		return
	}
	c.reports.Add(key, report)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.reports.Len()
}
