package rideflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/swiftcab/swiftcab-go/cache"
	"github.com/swiftcab/swiftcab-go/domain"
)

// ErrRideBusy is returned when an action is issued for a ride that already
// has a request in flight from this client. Actions for one ride are
// serialized locally; independent rides are not.
var ErrRideBusy = errors.New("another action for this ride is in flight")

// Controller is the ride lifecycle controller. Every transition waits for
// authoritative confirmation; there is no optimistic local state.
type Controller struct {
	api RideAPI
	inv Invalidator
	log *logrus.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New creates a Controller. inv may be nil when no views are cached.
func New(api RideAPI, inv Invalidator, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Controller{
		api:      api,
		inv:      inv,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

// begin marks a ride action in flight; end releases it.
func (c *Controller) begin(rideID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[rideID]; busy {
		return ErrRideBusy
	}
	c.inflight[rideID] = struct{}{}
	return nil
}

func (c *Controller) end(rideID string) {
	c.mu.Lock()
	delete(c.inflight, rideID)
	c.mu.Unlock()
}

// invalidate drops every cached view a ride mutation could have touched.
func (c *Controller) invalidate(ctx context.Context) {
	if c.inv != nil {
		c.inv.Invalidate(ctx, cache.TagRides, cache.TagEarnings)
	}
}

// Request creates a new ride and invalidates ride views so it appears in
// the rider's list and the drivers' available list on next fetch.
func (c *Controller) Request(ctx context.Context, p domain.RideRequest) (*domain.Ride, error) {
	ride, err := c.api.RequestRide(ctx, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return ride, nil
}

// Accept claims a requested ride for the signed-in driver. Losing the race
// to another driver is an expected conflict, not a fatal failure; the
// caller refreshes the available list, which will no longer show the ride.
func (c *Controller) Accept(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, domain.ErrInvalidRideID
	}
	if err := c.begin(rideID); err != nil {
		return nil, err
	}
	defer c.end(rideID)

	ride, err := c.api.AcceptRide(ctx, rideID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			c.log.WithField("ride", rideID).WithError(err).Info("accept lost to a concurrent claim")
		}
		return nil, err
	}

	c.invalidate(ctx)
	return ride, nil
}

// Advance issues the single legal next transition for a ride the caller
// believes to be in expected status. The ride's current status is
// re-checked first: a mismatch means the caller acted on a stale read and
// gets a conflict so it can refresh and retry. The server validates the
// transition again regardless, so a pre-check against a briefly stale
// cache still ends in a conflict, never a corrupt state.
func (c *Controller) Advance(ctx context.Context, rideID string, expected domain.RideStatus) (*domain.Ride, error) {
	if rideID == "" {
		return nil, domain.ErrInvalidRideID
	}
	if expected == domain.RideStatusRequested {
		// requested -> accepted goes through Accept, which also assigns
		// the driver.
		return nil, fmt.Errorf("%w: requested rides are claimed via accept", domain.ErrInvalidTransition)
	}
	next, ok := domain.NextStatus(expected)
	if !ok {
		return nil, fmt.Errorf("%w: no forward transition from %s", domain.ErrInvalidTransition, expected)
	}

	if err := c.begin(rideID); err != nil {
		return nil, err
	}
	defer c.end(rideID)

	detail, err := c.api.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if detail.Status != expected {
		return nil, fmt.Errorf("%w: ride is %s, expected %s", domain.ErrConflict, detail.Status, expected)
	}

	ride, err := c.api.UpdateRideStatus(ctx, rideID, next)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx)
	return ride, nil
}

// Cancel cancels a ride from any non-terminal status.
func (c *Controller) Cancel(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, domain.ErrInvalidRideID
	}
	if err := c.begin(rideID); err != nil {
		return nil, err
	}
	defer c.end(rideID)

	detail, err := c.api.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if detail.IsTerminal() {
		return nil, fmt.Errorf("%w: ride already %s", domain.ErrConflict, detail.Status)
	}

	ride, err := c.api.UpdateRideStatus(ctx, rideID, domain.RideStatusCancelled)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx)
	return ride, nil
}

// GetByID fetches one ride with driver display info. Read-only.
func (c *Controller) GetByID(ctx context.Context, rideID string) (*domain.RideDetail, error) {
	return c.api.GetRide(ctx, rideID)
}

// ListAvailable returns rides in requested status with no driver assigned.
// Drivers only; an empty result is valid.
func (c *Controller) ListAvailable(ctx context.Context) ([]domain.Ride, error) {
	return c.api.AvailableRides(ctx)
}

// ListMine returns the signed-in rider's rides.
func (c *Controller) ListMine(ctx context.Context) ([]domain.Ride, error) {
	return c.api.MyRides(ctx)
}

// ListForDriver returns the signed-in driver's rides.
func (c *Controller) ListForDriver(ctx context.Context) ([]domain.Ride, error) {
	return c.api.DriverRides(ctx)
}

// ListOngoing returns the signed-in driver's rides between acceptance and
// completion.
func (c *Controller) ListOngoing(ctx context.Context) ([]domain.Ride, error) {
	rides, err := c.api.DriverRides(ctx)
	if err != nil {
		return nil, err
	}
	ongoing := rides[:0:0]
	for _, r := range rides {
		if r.IsOngoing() {
			ongoing = append(ongoing, r)
		}
	}
	return ongoing, nil
}

// ListAll returns every ride. Admin only.
func (c *Controller) ListAll(ctx context.Context) ([]domain.Ride, error) {
	return c.api.AllRides(ctx)
}

// Earnings returns the driver's completed-ride statement and total.
func (c *Controller) Earnings(ctx context.Context) ([]domain.Earning, float64, error) {
	return c.api.Earnings(ctx)
}
