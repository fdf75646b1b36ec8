package domain

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist or
	// was removed concurrently.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a transition raced another actor or was
	// issued against a stale status. Retryable after a refresh.
	ErrConflict = errors.New("state conflict")

	// ErrUnauthenticated is returned when no valid session is present.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrForbidden is returned when the caller's role does not permit the
	// action. Fatal for the action, never retried.
	ErrForbidden = errors.New("action not permitted")

	// ErrBlocked is returned when the account is blocked by an admin.
	ErrBlocked = errors.New("account blocked")

	// ErrValidation is returned when the server rejects a request payload.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRideID is returned when a ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidPickup is returned when the pickup location is missing.
	ErrInvalidPickup = errors.New("invalid pickup location")

	// ErrInvalidDestination is returned when the destination is missing.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrInvalidFare is returned when the fare is not a positive number.
	ErrInvalidFare = errors.New("invalid fare")

	// ErrInvalidPaymentMethod is returned when the payment method is not
	// one of cash, card or wallet.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidStatus is returned when a status string is outside the enum.
	ErrInvalidStatus = errors.New("invalid ride status")

	// ErrInvalidTransition is returned when a requested transition is not
	// the adjacent forward edge or a cancellation.
	ErrInvalidTransition = errors.New("illegal status transition")

	// ErrRideTerminal is returned when acting on a completed or cancelled
	// ride.
	ErrRideTerminal = errors.New("ride already in terminal state")
)

// TransportError wraps a network-level failure. Callers may retry manually;
// nothing retries automatically.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRetryable reports whether the failure may succeed on a manual retry:
// transport failures, and conflicts after the caller refreshes.
func IsRetryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	return errors.Is(err, ErrConflict)
}
