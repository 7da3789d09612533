package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// Cache instances for different query types
	OneHopCache *cache.Cache
	ReportCache *cache.Cache
)

const (
	// Cache durations
	oneHopCacheDuration = 5 * time.Minute
	reportCacheDuration = 10 * time.Minute

	// Cleanup intervals
	oneHopCleanupInterval = 15 * time.Minute
	reportCleanupInterval = 30 * time.Minute
)

func InitCache() {
	OneHopCache = cache.New(oneHopCacheDuration, oneHopCleanupInterval)
	ReportCache = cache.New(reportCacheDuration, reportCleanupInterval)
}

// ClearAllCaches flushes every query cache. Called after any mutation so
// cached responses never outlive the data they were computed from.
func ClearAllCaches() {
	OneHopCache.Flush()
	ReportCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
