package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/swiftcab/swiftcab-go/domain"
)

func TestAuthorize_PendingWhileUnresolved(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache()
	state, user := cache.Snapshot()

	if got := Authorize(state, user, domain.RoleAdmin); got != DecisionPending {
		t.Errorf("unresolved identity: got %s, want pending", got)
	}
}

func TestAuthorize_AnonymousGoesToSignIn(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache()
	cache.Resolve(nil)
	state, user := cache.Snapshot()

	if got := Authorize(state, user, domain.RoleRider); got != DecisionSignIn {
		t.Errorf("anonymous identity: got %s, want sign-in", got)
	}
}

func TestAuthorize_WrongRoleIsDeniedNotRedirected(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache()
	cache.Resolve(&domain.User{ID: "u1", Role: domain.RoleDriver})
	state, user := cache.Snapshot()

	// A driver hitting an admin-only area gets the unauthorized view in
	// place; it must never resolve to sign-in, which would redirect away
	// from the attempted URL.
	got := Authorize(state, user, domain.RoleAdmin)
	if got != DecisionDenied {
		t.Errorf("driver on admin area: got %s, want denied", got)
	}
}

func TestAuthorize_MatchingRoleGranted(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache()
	cache.Resolve(&domain.User{ID: "u1", Role: domain.RoleDriver})
	state, user := cache.Snapshot()

	if got := Authorize(state, user, domain.RoleDriver, domain.RoleAdmin); got != DecisionGranted {
		t.Errorf("driver on driver area: got %s, want granted", got)
	}
}

func TestAuthorize_NoAllowedRolesAdmitsAnyAuthenticatedUser(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache()
	cache.Resolve(&domain.User{ID: "u1", Role: domain.RoleRider})
	state, user := cache.Snapshot()

	if got := Authorize(state, user); got != DecisionGranted {
		t.Errorf("open protected area: got %s, want granted", got)
	}
}

func TestIdentityCache_InvalidateReturnsToUnresolved(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache()
	cache.Resolve(&domain.User{ID: "u1", Role: domain.RoleRider})

	cache.Invalidate()

	state, user := cache.Snapshot()
	if state != StateUnresolved || user != nil {
		t.Errorf("after Invalidate: state=%v user=%v, want unresolved/nil", state, user)
	}
}

func TestIdentityCache_Refresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("settles authenticated", func(t *testing.T) {
		cache := NewIdentityCache()
		err := cache.Refresh(ctx, func(context.Context) (*domain.User, error) {
			return &domain.User{ID: "u1", Role: domain.RoleAdmin}, nil
		})
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		state, user := cache.Snapshot()
		if state != StateAuthenticated || user == nil || user.ID != "u1" {
			t.Errorf("state=%v user=%+v", state, user)
		}
	})

	t.Run("settles anonymous on unauthenticated", func(t *testing.T) {
		cache := NewIdentityCache()
		err := cache.Refresh(ctx, func(context.Context) (*domain.User, error) {
			return nil, fmt.Errorf("me: %w", domain.ErrUnauthenticated)
		})
		if err != nil {
			t.Fatalf("unauthenticated should settle, not fail: %v", err)
		}
		if state, _ := cache.Snapshot(); state != StateAnonymous {
			t.Errorf("state = %v, want anonymous", state)
		}
	})

	t.Run("stays unresolved on transport failure", func(t *testing.T) {
		cache := NewIdentityCache()
		err := cache.Refresh(ctx, func(context.Context) (*domain.User, error) {
			return nil, &domain.TransportError{Op: "GET /user/me", Err: errors.New("timeout")}
		})
		if err == nil {
			t.Fatal("expected the transport failure to propagate")
		}
		if state, _ := cache.Snapshot(); state != StateUnresolved {
			t.Errorf("state = %v, want unresolved", state)
		}
	})
}

func TestIdentityCache_SnapshotReturnsCopy(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache()
	cache.Resolve(&domain.User{ID: "u1", Name: "Ana", Role: domain.RoleRider})

	_, user := cache.Snapshot()
	user.Name = "mutated"

	_, again := cache.Snapshot()
	if again.Name != "Ana" {
		t.Error("Snapshot leaked a mutable reference to the cached user")
	}
}

func TestIdentityCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				cache.Resolve(&domain.User{ID: "u", Role: domain.RoleRider})
			} else {
				cache.Snapshot()
				cache.Invalidate()
			}
		}(i)
	}
	wg.Wait()
}
