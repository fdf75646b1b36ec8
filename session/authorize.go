package session

import "github.com/swiftcab/swiftcab-go/domain"

// Decision is the outcome of the role gate for one navigation.
type Decision int

const (
	// DecisionPending means the identity fetch has not settled; render a
	// loading state, do not redirect.
	DecisionPending Decision = iota
	// DecisionSignIn means no identity is present; send the user to the
	// login entry point.
	DecisionSignIn
	// DecisionDenied means the identity's role is not allowed; render the
	// unauthorized view in place, preserving the attempted location.
	DecisionDenied
	// DecisionGranted means the protected subtree may render.
	DecisionGranted
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionSignIn:
		return "sign-in"
	case DecisionDenied:
		return "denied"
	case DecisionGranted:
		return "granted"
	}
	return "unknown"
}

// Authorize gates one navigation. It is a pure function of the snapshot
// and must be re-evaluated on every navigation; decisions are never cached
// across routes. An empty allowed list admits any authenticated user.
func Authorize(state State, user *domain.User, allowed ...domain.Role) Decision {
	switch state {
	case StateUnresolved:
		return DecisionPending
	case StateAnonymous:
		return DecisionSignIn
	}
	if user == nil {
		return DecisionSignIn
	}
	if len(allowed) == 0 {
		return DecisionGranted
	}
	for _, role := range allowed {
		if user.Role == role {
			return DecisionGranted
		}
	}
	return DecisionDenied
}
