package stubapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swiftcab/swiftcab-go/domain"
)

type requestRideBody struct {
	Pickup        string  `json:"pickup"`
	Destination   string  `json:"destination"`
	PaymentMethod string  `json:"paymentMethod"`
	Fare          float64 `json:"fare"`
}

func (s *Server) requestRide(c *gin.Context) {
	acct := currentUser(c)
	if acct.Role != domain.RoleRider {
		fail(c, http.StatusForbidden, "only riders can request rides")
		return
	}

	var body requestRideBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Pickup) < 3 || len(body.Destination) < 3 {
		fail(c, http.StatusBadRequest, "pickup and destination are required")
		return
	}
	if body.Fare <= 0 {
		fail(c, http.StatusBadRequest, "fare must be positive")
		return
	}
	method, err := domain.ValidatePaymentMethod(body.PaymentMethod)
	if err != nil {
		fail(c, http.StatusBadRequest, "unsupported payment method")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ride := &domain.Ride{
		ID:            uuid.New().String(),
		RiderID:       acct.ID,
		Pickup:        body.Pickup,
		Destination:   body.Destination,
		Fare:          body.Fare,
		PaymentMethod: method,
		Status:        domain.RideStatusRequested,
		RequestedAt:   now,
		UpdatedAt:     now,
	}
	s.rides[ride.ID] = ride
	s.order = append(s.order, ride.ID)

	ok(c, http.StatusCreated, "ride requested", rideToWire(ride))
}

func (s *Server) myRides(c *gin.Context) {
	acct := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.listRides(c, func(r *domain.Ride) bool { return r.RiderID == acct.ID })
}

func (s *Server) availableRides(c *gin.Context) {
	acct := currentUser(c)
	if !acct.IsDriver() {
		fail(c, http.StatusForbidden, "driver only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.listRides(c, func(r *domain.Ride) bool { return r.Status == domain.RideStatusRequested })
}

func (s *Server) driverRides(c *gin.Context) {
	acct := currentUser(c)
	if !acct.IsDriver() {
		fail(c, http.StatusForbidden, "driver only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.listRides(c, func(r *domain.Ride) bool { return r.DriverID == acct.ID })
}

func (s *Server) allRides(c *gin.Context) {
	acct := currentUser(c)
	if !acct.IsAdmin() {
		fail(c, http.StatusForbidden, "admin only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.listRides(c, func(*domain.Ride) bool { return true })
}

// listRides writes the rides matching keep in creation order. Callers hold
// the mutex.
func (s *Server) listRides(c *gin.Context, keep func(*domain.Ride) bool) {
	wires := make([]rideWireOut, 0)
	for _, id := range s.order {
		if r := s.rides[id]; keep(r) {
			wires = append(wires, rideToWire(r))
		}
	}
	ok(c, http.StatusOK, "", wires)
}

func (s *Server) getRide(c *gin.Context) {
	acct := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, exists := s.rides[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "ride not found")
		return
	}
	if ride.RiderID != acct.ID && ride.DriverID != acct.ID && !acct.IsAdmin() {
		fail(c, http.StatusForbidden, "not a participant of this ride")
		return
	}

	detail := rideDetailWireOut{rideWireOut: rideToWire(ride)}
	if ride.DriverID != "" {
		if driver := s.users[ride.DriverID]; driver != nil {
			info := &driverInfoWireOut{
				ID:    driver.ID,
				Name:  driver.Name,
				Phone: driver.Phone,
			}
			if driver.Vehicle != nil {
				info.Vehicle = vehicleWireOut{
					Type:  string(driver.Vehicle.Type),
					Model: driver.Vehicle.Model,
					Plate: driver.Vehicle.Plate,
				}
			}
			detail.Driver = info
		}
	}

	ok(c, http.StatusOK, "", detail)
}

func (s *Server) acceptRide(c *gin.Context) {
	acct := currentUser(c)
	if !acct.IsDriver() {
		fail(c, http.StatusForbidden, "driver only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, exists := s.rides[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "ride not found")
		return
	}
	// First claim under the mutex wins; every later claim sees a ride that
	// already left requested.
	if ride.Status != domain.RideStatusRequested {
		fail(c, http.StatusConflict, "ride already taken")
		return
	}

	now := s.now()
	ride.DriverID = acct.ID
	ride.Status = domain.RideStatusAccepted
	ride.AcceptedAt = now
	ride.UpdatedAt = now

	ok(c, http.StatusOK, "ride accepted", rideToWire(ride))
}

type updateStatusBody struct {
	Status string `json:"status"`
}

func (s *Server) updateRideStatus(c *gin.Context) {
	acct := currentUser(c)

	var body updateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	next := domain.RideStatus(body.Status)
	if !domain.ValidStatus(next) {
		fail(c, http.StatusBadRequest, "unknown status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, exists := s.rides[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "ride not found")
		return
	}

	participant := ride.RiderID == acct.ID || ride.DriverID == acct.ID || acct.IsAdmin()
	if !participant {
		fail(c, http.StatusForbidden, "not a participant of this ride")
		return
	}
	if next != domain.RideStatusCancelled && ride.DriverID != acct.ID {
		fail(c, http.StatusForbidden, "only the assigned driver can advance a ride")
		return
	}
	if !domain.CanTransition(ride.Status, next) {
		fail(c, http.StatusConflict, "ride is "+string(ride.Status)+", cannot move to "+string(next))
		return
	}

	now := s.now()
	ride.Status = next
	ride.UpdatedAt = now
	switch next {
	case domain.RideStatusPickedUp:
		ride.PickedUpAt = now
	case domain.RideStatusInTransit:
		ride.InTransitAt = now
	case domain.RideStatusCompleted:
		ride.CompletedAt = now
	}

	ok(c, http.StatusOK, "status updated", rideToWire(ride))
}

func (s *Server) earnings(c *gin.Context) {
	acct := currentUser(c)
	if !acct.IsDriver() {
		fail(c, http.StatusForbidden, "driver only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := earningsWireOut{Earnings: make([]earningWireOut, 0)}
	for _, id := range s.order {
		r := s.rides[id]
		if r.DriverID != acct.ID || r.Status != domain.RideStatusCompleted {
			continue
		}
		out.Earnings = append(out.Earnings, earningWireOut{
			RideID:      r.ID,
			Pickup:      r.Pickup,
			Destination: r.Destination,
			Fare:        r.Fare,
			CompletedAt: r.CompletedAt,
		})
		out.Total += r.Fare
	}

	ok(c, http.StatusOK, "", out)
}

type rideWireOut struct {
	ID            string     `json:"id"`
	RiderID       string     `json:"riderId"`
	DriverID      string     `json:"driverId,omitempty"`
	Pickup        string     `json:"pickup"`
	Destination   string     `json:"destination"`
	Fare          float64    `json:"fare"`
	PaymentMethod string     `json:"paymentMethod"`
	Status        string     `json:"status"`
	RequestedAt   time.Time  `json:"requestedAt"`
	AcceptedAt    *time.Time `json:"acceptedAt,omitempty"`
	PickedUpAt    *time.Time `json:"pickedUpAt,omitempty"`
	InTransitAt   *time.Time `json:"inTransitAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type driverInfoWireOut struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Phone   string         `json:"phone,omitempty"`
	Vehicle vehicleWireOut `json:"vehicle"`
}

type rideDetailWireOut struct {
	rideWireOut
	Driver *driverInfoWireOut `json:"driver,omitempty"`
}

type earningWireOut struct {
	RideID      string    `json:"rideId"`
	Pickup      string    `json:"pickup"`
	Destination string    `json:"destination"`
	Fare        float64   `json:"fare"`
	CompletedAt time.Time `json:"completedAt"`
}

type earningsWireOut struct {
	Earnings []earningWireOut `json:"earnings"`
	Total    float64          `json:"totalEarnings"`
}

func rideToWire(r *domain.Ride) rideWireOut {
	wire := rideWireOut{
		ID:            r.ID,
		RiderID:       r.RiderID,
		DriverID:      r.DriverID,
		Pickup:        r.Pickup,
		Destination:   r.Destination,
		Fare:          r.Fare,
		PaymentMethod: string(r.PaymentMethod),
		Status:        string(r.Status),
		RequestedAt:   r.RequestedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	wire.AcceptedAt = optional(r.AcceptedAt)
	wire.PickedUpAt = optional(r.PickedUpAt)
	wire.InTransitAt = optional(r.InTransitAt)
	wire.CompletedAt = optional(r.CompletedAt)
	return wire
}

func optional(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
