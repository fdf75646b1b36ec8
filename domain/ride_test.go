package domain

import (
	"testing"
	"time"
)

func TestTimeline_SynthesizedFromTimestamps(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	ride := Ride{
		ID:          "ride-1",
		Status:      RideStatusPickedUp,
		RequestedAt: base,
		AcceptedAt:  base.Add(2 * time.Minute),
		PickedUpAt:  base.Add(9 * time.Minute),
	}

	events := ride.Timeline()
	want := []RideStatus{RideStatusRequested, RideStatusAccepted, RideStatusPickedUp}

	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, status := range want {
		if events[i].Status != status {
			t.Errorf("event %d: got %s, want %s", i, events[i].Status, status)
		}
		if events[i].At.IsZero() {
			t.Errorf("event %d: missing timestamp", i)
		}
	}
}

func TestTimeline_CancelledRideGetsTrailingEvent(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	ride := Ride{
		ID:          "ride-2",
		Status:      RideStatusCancelled,
		RequestedAt: base,
		AcceptedAt:  base.Add(1 * time.Minute),
		UpdatedAt:   base.Add(3 * time.Minute),
	}

	events := ride.Timeline()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	last := events[len(events)-1]
	if last.Status != RideStatusCancelled {
		t.Errorf("last event = %s, want %s", last.Status, RideStatusCancelled)
	}
	if !last.At.Equal(ride.UpdatedAt) {
		t.Errorf("cancellation stamped %v, want updatedAt %v", last.At, ride.UpdatedAt)
	}
}

func TestTimeline_FreshRideHasOnlyRequested(t *testing.T) {
	t.Parallel()

	ride := Ride{
		ID:          "ride-3",
		Status:      RideStatusRequested,
		RequestedAt: time.Now(),
	}

	events := ride.Timeline()
	if len(events) != 1 || events[0].Status != RideStatusRequested {
		t.Fatalf("expected a single requested event, got %v", events)
	}
}

func TestIsOngoing(t *testing.T) {
	t.Parallel()

	ongoing := map[RideStatus]bool{
		RideStatusRequested: false,
		RideStatusAccepted:  true,
		RideStatusPickedUp:  true,
		RideStatusInTransit: true,
		RideStatusCompleted: false,
		RideStatusCancelled: false,
	}

	for status, want := range ongoing {
		r := Ride{Status: status}
		if got := r.IsOngoing(); got != want {
			t.Errorf("IsOngoing(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	t.Parallel()

	if _, err := ValidatePaymentMethod("card"); err != nil {
		t.Errorf("card rejected: %v", err)
	}
	if got, err := ValidatePaymentMethod(""); err != nil || got != PaymentMethodCash {
		t.Errorf("empty method: got %q, %v; want cash default", got, err)
	}
	if _, err := ValidatePaymentMethod("bitcoin"); err == nil {
		t.Error("expected unknown method to be rejected")
	}
}
