// Package swiftcab wires the SwiftCab client stack: API client, cached
// ride views, lifecycle controller, and the identity cache behind the
// role gate.
package swiftcab

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/swiftcab/swiftcab-go/cache"
	"github.com/swiftcab/swiftcab-go/client"
	"github.com/swiftcab/swiftcab-go/config"
	"github.com/swiftcab/swiftcab-go/rideflow"
	"github.com/swiftcab/swiftcab-go/session"
)

// App is the assembled client stack.
type App struct {
	API      *client.Client
	Rides    *rideflow.Controller
	Identity *session.IdentityCache
	Cache    cache.Store
	Log      *logrus.Logger
}

// New assembles the stack from configuration. The cache backend is
// in-memory unless configured for Redis.
func New(cfg *config.Config) (*App, error) {
	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	var store cache.Store
	switch cfg.Cache.Backend {
	case "", "memory":
		store = cache.NewMemoryStore()
	case "redis":
		store = cache.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		}))
	default:
		return nil, fmt.Errorf("swiftcab: unknown cache backend %q", cfg.Cache.Backend)
	}

	api, err := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	cached := rideflow.NewCachedRideAPI(api, store, log)

	return &App{
		API:      api,
		Rides:    rideflow.New(cached, cached, log),
		Identity: session.NewIdentityCache(),
		Cache:    store,
		Log:      log,
	}, nil
}

// SignIn establishes the session and settles the identity cache. Cached
// views from a previous session are dropped first.
func (a *App) SignIn(ctx context.Context, email, password string) error {
	if err := a.API.Login(ctx, email, password); err != nil {
		return err
	}
	a.resetViews(ctx)
	return a.Identity.Refresh(ctx, a.API.Me)
}

// SignOut ends the session. Local state is cleared even if the server
// call fails; the cookie is useless either way.
func (a *App) SignOut(ctx context.Context) error {
	err := a.API.Logout(ctx)
	a.resetViews(ctx)
	return err
}

// RefreshIdentity re-fetches the current user, for use on startup and
// after profile mutations.
func (a *App) RefreshIdentity(ctx context.Context) error {
	a.Identity.Invalidate()
	return a.Identity.Refresh(ctx, a.API.Me)
}

func (a *App) resetViews(ctx context.Context) {
	a.Identity.Invalidate()
	if err := a.Cache.InvalidateTag(ctx, cache.TagUsers, cache.TagRides, cache.TagEarnings); err != nil {
		a.Log.WithError(err).Warn("cache invalidation failed on session change")
	}
}
