package domain

import (
	"math/rand"
	"testing"
	"time"
)

var allStatuses = []RideStatus{
	RideStatusRequested,
	RideStatusAccepted,
	RideStatusPickedUp,
	RideStatusInTransit,
	RideStatusCompleted,
	RideStatusCancelled,
}

func TestNextStatus_ForwardChain(t *testing.T) {
	t.Parallel()

	want := map[RideStatus]RideStatus{
		RideStatusRequested: RideStatusAccepted,
		RideStatusAccepted:  RideStatusPickedUp,
		RideStatusPickedUp:  RideStatusInTransit,
		RideStatusInTransit: RideStatusCompleted,
	}

	for from, to := range want {
		next, ok := NextStatus(from)
		if !ok {
			t.Fatalf("NextStatus(%s): expected a forward edge", from)
		}
		if next != to {
			t.Errorf("NextStatus(%s) = %s, want %s", from, next, to)
		}
	}

	for _, terminal := range []RideStatus{RideStatusCompleted, RideStatusCancelled} {
		if _, ok := NextStatus(terminal); ok {
			t.Errorf("NextStatus(%s): terminal status must have no forward edge", terminal)
		}
	}
}

func TestCanTransition_RejectsSkipsAndBackwardEdges(t *testing.T) {
	t.Parallel()

	chainIndex := map[RideStatus]int{
		RideStatusRequested: 0,
		RideStatusAccepted:  1,
		RideStatusPickedUp:  2,
		RideStatusInTransit: 3,
		RideStatusCompleted: 4,
	}

	// Exhaustive legality check over every ordered pair: the only legal
	// moves are the adjacent forward edge and cancellation from a
	// non-terminal status.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := CanTransition(from, to)

			var want bool
			switch {
			case IsTerminalStatus(from):
				want = false
			case to == RideStatusCancelled:
				want = true
			default:
				want = chainIndex[to] == chainIndex[from]+1 && to != RideStatusCancelled
			}

			if got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransition_RandomSequences(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	// Walk random transition sequences and verify the machine never leaves
	// the forward chain, never skips a stage, and never exits a terminal
	// status.
	for i := 0; i < 500; i++ {
		status := RideStatusRequested
		seen := []RideStatus{status}

		for step := 0; step < 10; step++ {
			attempt := allStatuses[rng.Intn(len(allStatuses))]
			if !CanTransition(status, attempt) {
				// Rejected attempts must leave the state untouched.
				continue
			}
			status = attempt
			seen = append(seen, status)
		}

		for j := 1; j < len(seen); j++ {
			from, to := seen[j-1], seen[j]
			if IsTerminalStatus(from) {
				t.Fatalf("sequence %v: transitioned out of terminal %s", seen, from)
			}
			if to != RideStatusCancelled {
				if next, _ := NextStatus(from); next != to {
					t.Fatalf("sequence %v: illegal jump %s -> %s", seen, from, to)
				}
			}
		}
	}
}

func TestValidateStageTimestamps(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		ride    Ride
		wantErr bool
	}{
		{
			name: "full chain ordered",
			ride: Ride{
				ID:          "r1",
				RequestedAt: base,
				AcceptedAt:  base.Add(1 * time.Minute),
				PickedUpAt:  base.Add(5 * time.Minute),
				InTransitAt: base.Add(6 * time.Minute),
				CompletedAt: base.Add(20 * time.Minute),
			},
		},
		{
			name: "cancelled before acceptance",
			ride: Ride{ID: "r2", Status: RideStatusCancelled, RequestedAt: base},
		},
		{
			name:    "missing requestedAt",
			ride:    Ride{ID: "r3"},
			wantErr: true,
		},
		{
			name: "completed without pickup",
			ride: Ride{
				ID:          "r4",
				RequestedAt: base,
				AcceptedAt:  base.Add(1 * time.Minute),
				CompletedAt: base.Add(20 * time.Minute),
			},
			wantErr: true,
		},
		{
			name: "acceptance before request",
			ride: Ride{
				ID:          "r5",
				RequestedAt: base,
				AcceptedAt:  base.Add(-1 * time.Minute),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStageTimestamps(&tt.ride)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStageTimestamps() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	t.Parallel()

	for _, s := range allStatuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false", s)
		}
	}
	if ValidStatus("in-progress") {
		t.Error("ValidStatus accepted a status outside the enum")
	}
}
