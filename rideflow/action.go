package rideflow

import "github.com/swiftcab/swiftcab-go/domain"

// Action describes the single legal next move for a ride as presented to
// the acting user.
type Action struct {
	Label string
	Next  domain.RideStatus
}

// actions keys the UI control for each actionable status. A status absent
// here has no forward control; only the transition adjacent to the current
// status is ever offered.
var actions = map[domain.RideStatus]Action{
	domain.RideStatusRequested: {Label: "Accept Ride", Next: domain.RideStatusAccepted},
	domain.RideStatusAccepted:  {Label: "Mark Picked Up", Next: domain.RideStatusPickedUp},
	domain.RideStatusPickedUp:  {Label: "Start Trip", Next: domain.RideStatusInTransit},
	domain.RideStatusInTransit: {Label: "Complete Ride", Next: domain.RideStatusCompleted},
}

// NextAction returns the control to offer for a ride in the given status.
// ok is false for terminal statuses.
func NextAction(status domain.RideStatus) (Action, bool) {
	a, ok := actions[status]
	return a, ok
}
