package domain

import "fmt"

// forwardChain is the single legal forward edge out of each non-terminal
// status. Acceptance (requested -> accepted) is driven by the dedicated
// accept call rather than a generic status update, but the edge lives here
// so legality checks cover the whole chain.
var forwardChain = map[RideStatus]RideStatus{
	RideStatusRequested: RideStatusAccepted,
	RideStatusAccepted:  RideStatusPickedUp,
	RideStatusPickedUp:  RideStatusInTransit,
	RideStatusInTransit: RideStatusCompleted,
}

// NextStatus returns the single legal forward status after the given one.
// ok is false for terminal statuses.
func NextStatus(status RideStatus) (RideStatus, bool) {
	next, ok := forwardChain[status]
	return next, ok
}

// IsTerminalStatus reports whether a status permits no further transitions.
func IsTerminalStatus(status RideStatus) bool {
	return status == RideStatusCompleted || status == RideStatusCancelled
}

// ValidStatus reports whether the string is a member of the status enum.
func ValidStatus(status RideStatus) bool {
	switch status {
	case RideStatusRequested, RideStatusAccepted, RideStatusPickedUp,
		RideStatusInTransit, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is a legal transition: the
// adjacent forward edge, or cancellation from any non-terminal status.
// No backward transitions, no skipping.
func CanTransition(from, to RideStatus) bool {
	if IsTerminalStatus(from) {
		return false
	}
	if to == RideStatusCancelled {
		return true
	}
	return forwardChain[from] == to
}

// ValidateStageTimestamps checks the timestamp invariant: each stage
// timestamp is present iff the ride passed that stage, and the recorded
// times are monotonically ordered.
func ValidateStageTimestamps(r *Ride) error {
	if r.RequestedAt.IsZero() {
		return fmt.Errorf("ride %s: missing requestedAt", r.ID)
	}

	stages := []RideStatus{
		RideStatusRequested,
		RideStatusAccepted,
		RideStatusPickedUp,
		RideStatusInTransit,
		RideStatusCompleted,
	}

	prev := r.RequestedAt
	for i := 1; i < len(stages); i++ {
		ts := r.StageTimestamp(stages[i])
		if ts.IsZero() {
			// Cancellation may truncate the chain at any point, but a
			// later stage must never be stamped without this one.
			for _, later := range stages[i+1:] {
				if !r.StageTimestamp(later).IsZero() {
					return fmt.Errorf("ride %s: %s stamped without %s", r.ID, later, stages[i])
				}
			}
			return nil
		}
		if ts.Before(prev) {
			return fmt.Errorf("ride %s: %s timestamp precedes %s", r.ID, stages[i], stages[i-1])
		}
		prev = ts
	}
	return nil
}
