// Package session holds the fetched identity and the role gate guarding
// protected areas. The identity is an explicitly-invalidated cache with a
// single invalidation entry point, never an implicit singleton.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/swiftcab/swiftcab-go/domain"
)

// State is the resolution state of the identity cache.
type State int

const (
	// StateUnresolved means the identity has not been fetched yet (or was
	// invalidated); navigation must suspend rather than redirect.
	StateUnresolved State = iota
	// StateAnonymous means the fetch settled with no signed-in user.
	StateAnonymous
	// StateAuthenticated means a user record is cached.
	StateAuthenticated
)

// IdentityCache caches the current user between fetches. Zero value is
// unresolved; use NewIdentityCache.
type IdentityCache struct {
	mu    sync.RWMutex
	state State
	user  *domain.User
}

// NewIdentityCache returns an unresolved cache.
func NewIdentityCache() *IdentityCache {
	return &IdentityCache{state: StateUnresolved}
}

// Resolve records the settled identity. A nil user settles as anonymous.
func (c *IdentityCache) Resolve(user *domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if user == nil {
		c.state = StateAnonymous
		c.user = nil
		return
	}
	u := *user
	c.state = StateAuthenticated
	c.user = &u
}

// Invalidate is the single invalidation entry point, triggered by login,
// logout and profile mutation. The cache returns to unresolved until the
// next Refresh settles it.
func (c *IdentityCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateUnresolved
	c.user = nil
}

// Refresh settles the cache from fetch. An unauthenticated result settles
// as anonymous; any other failure leaves the cache unresolved and is
// returned to the caller.
func (c *IdentityCache) Refresh(ctx context.Context, fetch func(context.Context) (*domain.User, error)) error {
	user, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			c.Resolve(nil)
			return nil
		}
		c.Invalidate()
		return err
	}
	c.Resolve(user)
	return nil
}

// Snapshot returns the current state and a copy of the cached user.
func (c *IdentityCache) Snapshot() (State, *domain.User) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return c.state, nil
	}
	u := *c.user
	return c.state, &u
}
