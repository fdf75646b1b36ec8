package rideflow

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/swiftcab/swiftcab-go/cache"
	"github.com/swiftcab/swiftcab-go/domain"
)

// Cache keys for ride views.
const (
	keyMyRides        = "rides:my"
	keyAvailableRides = "rides:available"
	keyDriverRides    = "rides:driver"
	keyAllRides       = "rides:all"
	keyRidePrefix     = "ride:"
	keyEarnings       = "earnings"
)

// CachedRideAPI decorates a RideAPI with the invalidate-on-mutation cache
// policy: reads are served from the store until a mutation drops their
// tags. It doubles as the controller's Invalidator.
type CachedRideAPI struct {
	api   RideAPI
	store cache.Store
	log   *logrus.Logger
}

var _ RideAPI = (*CachedRideAPI)(nil)
var _ Invalidator = (*CachedRideAPI)(nil)

// NewCachedRideAPI creates the caching decorator.
func NewCachedRideAPI(api RideAPI, store cache.Store, log *logrus.Logger) *CachedRideAPI {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &CachedRideAPI{api: api, store: store, log: log}
}

// Invalidate drops the given tags. Store failures are logged and otherwise
// ignored: a broken cache must never block a confirmed mutation.
func (c *CachedRideAPI) Invalidate(ctx context.Context, tags ...cache.Tag) {
	if err := c.store.InvalidateTag(ctx, tags...); err != nil {
		c.log.WithError(err).Warn("cache invalidation failed")
	}
}

// cachedList serves one list view through the store.
func (c *CachedRideAPI) cachedList(ctx context.Context, key string, fetch func(context.Context) ([]domain.Ride, error)) ([]domain.Ride, error) {
	var rides []domain.Ride
	if found, err := c.store.Get(ctx, key, &rides); err == nil && found {
		return rides, nil
	} else if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache read failed")
	}

	rides, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, rides, cache.ListTTL, cache.TagRides); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
	return rides, nil
}

func (c *CachedRideAPI) MyRides(ctx context.Context) ([]domain.Ride, error) {
	return c.cachedList(ctx, keyMyRides, c.api.MyRides)
}

func (c *CachedRideAPI) AvailableRides(ctx context.Context) ([]domain.Ride, error) {
	return c.cachedList(ctx, keyAvailableRides, c.api.AvailableRides)
}

func (c *CachedRideAPI) DriverRides(ctx context.Context) ([]domain.Ride, error) {
	return c.cachedList(ctx, keyDriverRides, c.api.DriverRides)
}

func (c *CachedRideAPI) AllRides(ctx context.Context) ([]domain.Ride, error) {
	return c.cachedList(ctx, keyAllRides, c.api.AllRides)
}

func (c *CachedRideAPI) GetRide(ctx context.Context, rideID string) (*domain.RideDetail, error) {
	key := keyRidePrefix + rideID
	var detail domain.RideDetail
	if found, err := c.store.Get(ctx, key, &detail); err == nil && found {
		return &detail, nil
	}

	fresh, err := c.api.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, fresh, cache.DetailTTL, cache.TagRides); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
	return fresh, nil
}

type earningsView struct {
	Entries []domain.Earning `json:"entries"`
	Total   float64          `json:"total"`
}

func (c *CachedRideAPI) Earnings(ctx context.Context) ([]domain.Earning, float64, error) {
	var view earningsView
	if found, err := c.store.Get(ctx, keyEarnings, &view); err == nil && found {
		return view.Entries, view.Total, nil
	}

	entries, total, err := c.api.Earnings(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := c.store.Set(ctx, keyEarnings, earningsView{Entries: entries, Total: total}, cache.ListTTL, cache.TagEarnings); err != nil {
		c.log.WithError(err).Warn("cache write failed")
	}
	return entries, total, nil
}

// Mutations pass straight through; the controller invalidates after they
// are confirmed.

func (c *CachedRideAPI) RequestRide(ctx context.Context, p domain.RideRequest) (*domain.Ride, error) {
	return c.api.RequestRide(ctx, p)
}

func (c *CachedRideAPI) AcceptRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	return c.api.AcceptRide(ctx, rideID)
}

func (c *CachedRideAPI) UpdateRideStatus(ctx context.Context, rideID string, status domain.RideStatus) (*domain.Ride, error) {
	return c.api.UpdateRideStatus(ctx, rideID, status)
}
