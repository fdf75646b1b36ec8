package client

import (
	"context"
	"net/url"

	"github.com/swiftcab/swiftcab-go/domain"
)

type requestRideBody struct {
	Pickup        string  `json:"pickup"`
	Destination   string  `json:"destination"`
	PaymentMethod string  `json:"paymentMethod"`
	Fare          float64 `json:"fare"`
}

// RequestRide creates a ride in requested status. Validation failures are
// caught before any network call.
func (c *Client) RequestRide(ctx context.Context, p domain.RideRequest) (*domain.Ride, error) {
	if len(p.Pickup) < 3 {
		return nil, domain.ErrInvalidPickup
	}
	if len(p.Destination) < 3 {
		return nil, domain.ErrInvalidDestination
	}
	if p.Fare <= 0 {
		return nil, domain.ErrInvalidFare
	}
	method, err := domain.ValidatePaymentMethod(p.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var wire rideWire
	body := requestRideBody{
		Pickup:        p.Pickup,
		Destination:   p.Destination,
		PaymentMethod: string(method),
		Fare:          p.Fare,
	}
	if err := c.do(ctx, "POST", "/ride/request", body, &wire); err != nil {
		return nil, err
	}
	ride := wire.toDomain()
	return &ride, nil
}

// MyRides lists the signed-in rider's rides.
func (c *Client) MyRides(ctx context.Context) ([]domain.Ride, error) {
	var wires []rideWire
	if err := c.do(ctx, "GET", "/ride/my-rides", nil, &wires); err != nil {
		return nil, err
	}
	return ridesToDomain(wires), nil
}

// AvailableRides lists unassigned requested rides. Drivers only. An empty
// result is a valid state, not an error.
func (c *Client) AvailableRides(ctx context.Context) ([]domain.Ride, error) {
	var wires []rideWire
	if err := c.do(ctx, "GET", "/ride/available-rides", nil, &wires); err != nil {
		return nil, err
	}
	return ridesToDomain(wires), nil
}

// DriverRides lists the signed-in driver's rides, past and ongoing.
func (c *Client) DriverRides(ctx context.Context) ([]domain.Ride, error) {
	var wires []rideWire
	if err := c.do(ctx, "GET", "/ride/driver-rides", nil, &wires); err != nil {
		return nil, err
	}
	return ridesToDomain(wires), nil
}

// AllRides lists every ride on the platform. Admin only.
func (c *Client) AllRides(ctx context.Context) ([]domain.Ride, error) {
	var wires []rideWire
	if err := c.do(ctx, "GET", "/ride/all-rides", nil, &wires); err != nil {
		return nil, err
	}
	return ridesToDomain(wires), nil
}

// GetRide fetches one ride with driver display info.
func (c *Client) GetRide(ctx context.Context, rideID string) (*domain.RideDetail, error) {
	if rideID == "" {
		return nil, domain.ErrInvalidRideID
	}
	var wire rideDetailWire
	if err := c.do(ctx, "GET", "/ride/"+url.PathEscape(rideID), nil, &wire); err != nil {
		return nil, err
	}
	detail := wire.toDomain()
	return &detail, nil
}

// AcceptRide claims a requested ride for the signed-in driver. A concurrent
// claim by another driver surfaces as a conflict; treat it as expected.
func (c *Client) AcceptRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, domain.ErrInvalidRideID
	}
	var wire rideWire
	if err := c.do(ctx, "PATCH", "/ride/"+url.PathEscape(rideID)+"/accept", nil, &wire); err != nil {
		return nil, err
	}
	ride := wire.toDomain()
	return &ride, nil
}

type updateStatusBody struct {
	Status string `json:"status"`
}

// UpdateRideStatus issues one status transition. The server validates
// legality; stale or raced transitions come back as conflicts.
func (c *Client) UpdateRideStatus(ctx context.Context, rideID string, status domain.RideStatus) (*domain.Ride, error) {
	if rideID == "" {
		return nil, domain.ErrInvalidRideID
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	var wire rideWire
	path := "/ride/" + url.PathEscape(rideID) + "/status"
	if err := c.do(ctx, "PATCH", path, updateStatusBody{Status: string(status)}, &wire); err != nil {
		return nil, err
	}
	ride := wire.toDomain()
	return &ride, nil
}

// Earnings fetches the signed-in driver's completed-ride statement and
// overall total.
func (c *Client) Earnings(ctx context.Context) ([]domain.Earning, float64, error) {
	var wire earningsWire
	if err := c.do(ctx, "GET", "/ride/earnings", nil, &wire); err != nil {
		return nil, 0, err
	}
	entries := make([]domain.Earning, 0, len(wire.Earnings))
	for _, e := range wire.Earnings {
		entries = append(entries, domain.Earning{
			RideID:      e.RideID,
			Pickup:      e.Pickup,
			Destination: e.Destination,
			Fare:        e.Fare,
			CompletedAt: e.CompletedAt,
		})
	}
	return entries, wire.Total, nil
}
