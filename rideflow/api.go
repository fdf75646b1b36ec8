// Package rideflow drives a ride through its legal status sequence and
// keeps dependent list views consistent with the authoritative state after
// each action. The remote service owns the ride record; this package never
// applies a local write without a round trip.
package rideflow

import (
	"context"

	"github.com/swiftcab/swiftcab-go/cache"
	"github.com/swiftcab/swiftcab-go/domain"
)

// RideAPI is the slice of the platform API the controller depends on.
// *client.Client satisfies it.
type RideAPI interface {
	RequestRide(ctx context.Context, p domain.RideRequest) (*domain.Ride, error)
	MyRides(ctx context.Context) ([]domain.Ride, error)
	AvailableRides(ctx context.Context) ([]domain.Ride, error)
	DriverRides(ctx context.Context) ([]domain.Ride, error)
	AllRides(ctx context.Context) ([]domain.Ride, error)
	GetRide(ctx context.Context, rideID string) (*domain.RideDetail, error)
	AcceptRide(ctx context.Context, rideID string) (*domain.Ride, error)
	UpdateRideStatus(ctx context.Context, rideID string, status domain.RideStatus) (*domain.Ride, error)
	Earnings(ctx context.Context) ([]domain.Earning, float64, error)
}

// Invalidator drops cached views after a mutation so they are re-fetched
// before being trusted again.
type Invalidator interface {
	Invalidate(ctx context.Context, tags ...cache.Tag)
}

// InvalidatorFunc adapts a function to the Invalidator interface.
type InvalidatorFunc func(ctx context.Context, tags ...cache.Tag)

func (f InvalidatorFunc) Invalidate(ctx context.Context, tags ...cache.Tag) { f(ctx, tags...) }
