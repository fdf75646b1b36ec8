package client

import (
	"time"

	"github.com/swiftcab/swiftcab-go/domain"
)

// rideWire is the ride record as it travels on the wire. Some deployments
// still emit a legacy isCancelled boolean next to the status enum; the
// decoder folds it into the enum so the rest of the module sees a single
// authoritative representation.
type rideWire struct {
	ID            string    `json:"id"`
	RiderID       string    `json:"riderId"`
	DriverID      string    `json:"driverId,omitempty"`
	Pickup        string    `json:"pickup"`
	Destination   string    `json:"destination"`
	Fare          float64   `json:"fare"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	IsCancelled   bool      `json:"isCancelled,omitempty"`
	RequestedAt   time.Time `json:"requestedAt"`
	AcceptedAt    time.Time `json:"acceptedAt,omitzero"`
	PickedUpAt    time.Time `json:"pickedUpAt,omitzero"`
	InTransitAt   time.Time `json:"inTransitAt,omitzero"`
	CompletedAt   time.Time `json:"completedAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

func (w rideWire) toDomain() domain.Ride {
	status := domain.RideStatus(w.Status)
	if w.IsCancelled {
		status = domain.RideStatusCancelled
	}
	return domain.Ride{
		ID:            w.ID,
		RiderID:       w.RiderID,
		DriverID:      w.DriverID,
		Pickup:        w.Pickup,
		Destination:   w.Destination,
		Fare:          w.Fare,
		PaymentMethod: domain.PaymentMethod(w.PaymentMethod),
		Status:        status,
		RequestedAt:   w.RequestedAt,
		AcceptedAt:    w.AcceptedAt,
		PickedUpAt:    w.PickedUpAt,
		InTransitAt:   w.InTransitAt,
		CompletedAt:   w.CompletedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func ridesToDomain(wires []rideWire) []domain.Ride {
	rides := make([]domain.Ride, 0, len(wires))
	for _, w := range wires {
		rides = append(rides, w.toDomain())
	}
	return rides
}

type vehicleWire struct {
	Type  string `json:"type"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

func (w vehicleWire) toDomain() domain.Vehicle {
	return domain.Vehicle{
		Type:  domain.VehicleType(w.Type),
		Model: w.Model,
		Plate: w.Plate,
	}
}

type driverRequestWire struct {
	Status      string      `json:"status"`
	Vehicle     vehicleWire `json:"vehicle"`
	RequestedAt time.Time   `json:"requestedAt"`
	ApprovedAt  time.Time   `json:"approvedAt,omitzero"`
}

type userWire struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone,omitempty"`
	Role          string             `json:"role"`
	Blocked       bool               `json:"isBlocked"`
	Availability  string             `json:"availability,omitempty"`
	Vehicle       *vehicleWire       `json:"vehicle,omitempty"`
	DriverRequest *driverRequestWire `json:"driverRequest,omitempty"`
}

func (w userWire) toDomain() domain.User {
	u := domain.User{
		ID:           w.ID,
		Name:         w.Name,
		Email:        w.Email,
		Phone:        w.Phone,
		Role:         domain.Role(w.Role),
		Blocked:      w.Blocked,
		Availability: domain.Availability(w.Availability),
	}
	if w.Vehicle != nil {
		v := w.Vehicle.toDomain()
		u.Vehicle = &v
	}
	if w.DriverRequest != nil {
		u.DriverRequest = &domain.DriverRequest{
			Status:      domain.DriverRequestStatus(w.DriverRequest.Status),
			Vehicle:     w.DriverRequest.Vehicle.toDomain(),
			RequestedAt: w.DriverRequest.RequestedAt,
			ApprovedAt:  w.DriverRequest.ApprovedAt,
		}
	}
	return u
}

type driverInfoWire struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Phone   string      `json:"phone,omitempty"`
	Vehicle vehicleWire `json:"vehicle"`
}

type rideDetailWire struct {
	rideWire
	Driver *driverInfoWire `json:"driver,omitempty"`
}

func (w rideDetailWire) toDomain() domain.RideDetail {
	detail := domain.RideDetail{Ride: w.rideWire.toDomain()}
	if w.Driver != nil {
		detail.Driver = &domain.DriverInfo{
			ID:      w.Driver.ID,
			Name:    w.Driver.Name,
			Phone:   w.Driver.Phone,
			Vehicle: w.Driver.Vehicle.toDomain(),
		}
	}
	return detail
}

type earningWire struct {
	RideID      string    `json:"rideId"`
	Pickup      string    `json:"pickup"`
	Destination string    `json:"destination"`
	Fare        float64   `json:"fare"`
	CompletedAt time.Time `json:"completedAt"`
}

type earningsWire struct {
	Earnings []earningWire `json:"earnings"`
	Total    float64       `json:"totalEarnings"`
}
