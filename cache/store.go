// Package cache is the explicit fetch-and-cache layer backing list and
// detail reads. Entries carry tags; a mutation invalidates whole tags so
// every dependent view is re-fetched before it is trusted again.
package cache

import (
	"context"
	"time"
)

// Tag groups cache entries invalidated together by a mutation.
type Tag string

const (
	TagRides    Tag = "rides"
	TagUsers    Tag = "users"
	TagEarnings Tag = "earnings"
)

// Cache TTLs. Entries are short-lived regardless of invalidation: every
// local copy is subordinate to the next fetch.
const (
	ListTTL   = 30 * time.Second
	DetailTTL = 10 * time.Second
)

// Store is a tagged cache. Get reports a miss with found=false rather
// than an error; errors are reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...Tag) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidateTag(ctx context.Context, tags ...Tag) error
}
