package rideflow

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/swiftcab/swiftcab-go/cache"
	"github.com/swiftcab/swiftcab-go/domain"
)

// mockRideAPI is an in-memory RideAPI with call counters and error
// injection, standing in for the remote service.
type mockRideAPI struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	GetCallCount    int32
	ListCallCount   int32
	AcceptCallCount int32
	UpdateCallCount int32

	// Error injection
	AcceptError error
	UpdateError error
	GetError    error

	// AcceptBarrier, when set, is closed-over by Accept to hold the call
	// open until released. Used to exercise the in-flight guard.
	AcceptBarrier chan struct{}

	// AcceptedBy records the driver that won the ride, keyed by ride ID.
	acceptedBy map[string]string
}

func newMockRideAPI() *mockRideAPI {
	return &mockRideAPI{
		rides:      make(map[string]*domain.Ride),
		acceptedBy: make(map[string]string),
	}
}

// AddRide seeds a ride.
func (m *mockRideAPI) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

// Ride returns the stored ride for assertions.
func (m *mockRideAPI) Ride(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[id]
}

func (m *mockRideAPI) RequestRide(ctx context.Context, p domain.RideRequest) (*domain.Ride, error) {
	ride := &domain.Ride{
		ID:            uuid.New().String(),
		RiderID:       "rider-1",
		Pickup:        p.Pickup,
		Destination:   p.Destination,
		Fare:          p.Fare,
		PaymentMethod: domain.PaymentMethod(p.PaymentMethod),
		Status:        domain.RideStatusRequested,
		RequestedAt:   time.Now(),
		UpdatedAt:     time.Now(),
	}
	m.mu.Lock()
	m.rides[ride.ID] = ride
	m.mu.Unlock()
	copy := *ride
	return &copy, nil
}

func (m *mockRideAPI) list(filter func(*domain.Ride) bool) []domain.Ride {
	atomic.AddInt32(&m.ListCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Ride, 0, len(m.rides))
	for _, r := range m.rides {
		if filter == nil || filter(r) {
			result = append(result, *r)
		}
	}
	return result
}

func (m *mockRideAPI) MyRides(ctx context.Context) ([]domain.Ride, error) {
	return m.list(nil), nil
}

func (m *mockRideAPI) AvailableRides(ctx context.Context) ([]domain.Ride, error) {
	return m.list(func(r *domain.Ride) bool {
		return r.Status == domain.RideStatusRequested && r.DriverID == ""
	}), nil
}

func (m *mockRideAPI) DriverRides(ctx context.Context) ([]domain.Ride, error) {
	return m.list(func(r *domain.Ride) bool { return r.DriverID != "" }), nil
}

func (m *mockRideAPI) AllRides(ctx context.Context) ([]domain.Ride, error) {
	return m.list(nil), nil
}

func (m *mockRideAPI) GetRide(ctx context.Context, rideID string) (*domain.RideDetail, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.RideDetail{Ride: *ride}, nil
}

func (m *mockRideAPI) AcceptRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	atomic.AddInt32(&m.AcceptCallCount, 1)
	if m.AcceptBarrier != nil {
		<-m.AcceptBarrier
	}
	if m.AcceptError != nil {
		return nil, m.AcceptError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if ride.Status != domain.RideStatusRequested || ride.DriverID != "" {
		return nil, fmt.Errorf("%w: ride already claimed", domain.ErrConflict)
	}
	ride.Status = domain.RideStatusAccepted
	ride.DriverID = "driver-" + uuid.New().String()[:8]
	ride.AcceptedAt = time.Now()
	ride.UpdatedAt = time.Now()
	m.acceptedBy[rideID] = ride.DriverID

	copy := *ride
	return &copy, nil
}

func (m *mockRideAPI) UpdateRideStatus(ctx context.Context, rideID string, status domain.RideStatus) (*domain.Ride, error) {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !domain.CanTransition(ride.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrConflict, ride.Status, status)
	}

	now := time.Now()
	ride.Status = status
	ride.UpdatedAt = now
	switch status {
	case domain.RideStatusPickedUp:
		ride.PickedUpAt = now
	case domain.RideStatusInTransit:
		ride.InTransitAt = now
	case domain.RideStatusCompleted:
		ride.CompletedAt = now
	}

	copy := *ride
	return &copy, nil
}

func (m *mockRideAPI) Earnings(ctx context.Context) ([]domain.Earning, float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []domain.Earning
	var total float64
	for _, r := range m.rides {
		if r.Status == domain.RideStatusCompleted {
			entries = append(entries, domain.Earning{
				RideID:      r.ID,
				Pickup:      r.Pickup,
				Destination: r.Destination,
				Fare:        r.Fare,
				CompletedAt: r.CompletedAt,
			})
			total += r.Fare
		}
	}
	return entries, total, nil
}

// recordingInvalidator captures invalidated tags for assertions.
type recordingInvalidator struct {
	mu   sync.Mutex
	tags []cache.Tag
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, tags ...cache.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = append(r.tags, tags...)
}

func (r *recordingInvalidator) Tags() []cache.Tag {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]cache.Tag, len(r.tags))
	copy(out, r.tags)
	return out
}
