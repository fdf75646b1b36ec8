package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusRequested RideStatus = "requested"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusPickedUp  RideStatus = "picked_up"
	RideStatusInTransit RideStatus = "in_transit"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// PaymentMethod represents the payment method for a ride.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// Ride represents a ride as reported by the platform API. The server owns
// the canonical record; every Ride held locally is a cache subordinate to
// the next fetch.
type Ride struct {
	ID            string
	RiderID       string
	DriverID      string // empty until the ride leaves requested
	Pickup        string
	Destination   string
	Fare          float64
	PaymentMethod PaymentMethod
	Status        RideStatus
	RequestedAt   time.Time
	AcceptedAt    time.Time
	PickedUpAt    time.Time
	InTransitAt   time.Time
	CompletedAt   time.Time
	UpdatedAt     time.Time
}

// IsTerminal reports whether the ride has reached a terminal status.
func (r *Ride) IsTerminal() bool {
	return IsTerminalStatus(r.Status)
}

// IsOngoing reports whether the ride is between acceptance and completion.
func (r *Ride) IsOngoing() bool {
	switch r.Status {
	case RideStatusAccepted, RideStatusPickedUp, RideStatusInTransit:
		return true
	}
	return false
}

// StageTimestamp returns the timestamp recorded for the given stage.
// The zero time means the ride never passed through that stage.
func (r *Ride) StageTimestamp(status RideStatus) time.Time {
	switch status {
	case RideStatusRequested:
		return r.RequestedAt
	case RideStatusAccepted:
		return r.AcceptedAt
	case RideStatusPickedUp:
		return r.PickedUpAt
	case RideStatusInTransit:
		return r.InTransitAt
	case RideStatusCompleted:
		return r.CompletedAt
	}
	return time.Time{}
}

// ValidatePaymentMethod validates a payment method string.
// An empty method defaults to cash.
func ValidatePaymentMethod(method string) (PaymentMethod, error) {
	switch PaymentMethod(method) {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodWallet:
		return PaymentMethod(method), nil
	case "":
		return PaymentMethodCash, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// RideRequest is the payload for creating a ride.
type RideRequest struct {
	Pickup        string
	Destination   string
	PaymentMethod string
	Fare          float64
}

// DriverInfo is the driver summary attached to a ride detail view.
type DriverInfo struct {
	ID      string
	Name    string
	Phone   string
	Vehicle Vehicle
}

// RideDetail is a full ride record including driver display info.
type RideDetail struct {
	Ride
	Driver *DriverInfo // nil while the ride is unassigned
}

// Earning is one completed ride in a driver's earnings statement.
type Earning struct {
	RideID      string
	Pickup      string
	Destination string
	Fare        float64
	CompletedAt time.Time
}
