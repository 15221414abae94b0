// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 1 * time.Hour

// TeamAvailabilityCachePrefix is the prefix for cached team availability responses.
const TeamAvailabilityCachePrefix = "teamavail:"

// TeamAvailabilityCacheTTL keeps team availability listings fresh without
// hammering the aggregation path on every public page load.
const TeamAvailabilityCacheTTL = 30 * time.Second
