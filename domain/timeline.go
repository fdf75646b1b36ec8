package domain

import "time"

// TimelineEvent is one entry in a ride's reconstructed history.
type TimelineEvent struct {
	Status      RideStatus
	At          time.Time
	Description string
}

var timelineDescriptions = map[RideStatus]string{
	RideStatusRequested: "Ride requested",
	RideStatusAccepted:  "Driver accepted the ride",
	RideStatusPickedUp:  "Rider picked up",
	RideStatusInTransit: "Trip in transit",
	RideStatusCompleted: "Ride completed successfully",
	RideStatusCancelled: "Ride cancelled",
}

// Timeline reconstructs the ride's event history purely from the presence
// of stage timestamps: requested is always present, each later stage is
// synthesized iff its timestamp is set. A cancelled ride gets a trailing
// cancellation event stamped with updatedAt.
func (r *Ride) Timeline() []TimelineEvent {
	events := []TimelineEvent{{
		Status:      RideStatusRequested,
		At:          r.RequestedAt,
		Description: timelineDescriptions[RideStatusRequested],
	}}

	for _, stage := range []RideStatus{
		RideStatusAccepted,
		RideStatusPickedUp,
		RideStatusInTransit,
		RideStatusCompleted,
	} {
		ts := r.StageTimestamp(stage)
		if ts.IsZero() {
			break
		}
		events = append(events, TimelineEvent{
			Status:      stage,
			At:          ts,
			Description: timelineDescriptions[stage],
		})
	}

	if r.Status == RideStatusCancelled {
		events = append(events, TimelineEvent{
			Status:      RideStatusCancelled,
			At:          r.UpdatedAt,
			Description: timelineDescriptions[RideStatusCancelled],
		})
	}

	return events
}
