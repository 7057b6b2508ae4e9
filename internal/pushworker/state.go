package pushworker

import "fmt"

// RegistrationState tracks one account's position in the push registration
// lifecycle as the worker sees it.
type RegistrationState string

const (
	// StateUnregistered is the starting state: no token has ever been seen.
	StateUnregistered RegistrationState = "unregistered"
	// StateRegistered means a configure message delivered a token but delivery
	// has not been confirmed yet.
	StateRegistered RegistrationState = "registered"
	// StateSubscribed means at least one send to the token succeeded.
	StateSubscribed RegistrationState = "subscribed"
	// StateStale means the platform discarded the token; the account must
	// re-subscribe through the foreground before delivery resumes.
	StateStale RegistrationState = "stale"
)

// RegistrationEvent is something that happened to a registration.
type RegistrationEvent string

const (
	EventConfigured   RegistrationEvent = "configured"    // foreground handed over a token
	EventDelivered    RegistrationEvent = "delivered"     // a send succeeded
	EventTokenExpired RegistrationEvent = "token_expired" // the platform rejected the token
	EventUnsubscribed RegistrationEvent = "unsubscribed"  // the account opted out
)

// transitions is the full lifecycle. A fresh configure always resets to
// registered, including from stale: re-subscribing is the only recovery path.
var transitions = map[RegistrationState]map[RegistrationEvent]RegistrationState{
	StateUnregistered: {
		EventConfigured: StateRegistered,
	},
	StateRegistered: {
		EventConfigured:   StateRegistered,
		EventDelivered:    StateSubscribed,
		EventTokenExpired: StateStale,
		EventUnsubscribed: StateUnregistered,
	},
	StateSubscribed: {
		EventConfigured:   StateRegistered,
		EventDelivered:    StateSubscribed,
		EventTokenExpired: StateStale,
		EventUnsubscribed: StateUnregistered,
	},
	StateStale: {
		EventConfigured: StateRegistered,
	},
}

// Advance applies one lifecycle event to a registration state. Events with no
// defined transition are rejected rather than silently absorbed, so a bug in
// the caller surfaces as an error instead of a wedged registration.
func Advance(current RegistrationState, event RegistrationEvent) (RegistrationState, error) {
	next, ok := transitions[current][event]
	if !ok {
		return current, fmt.Errorf("no transition from %q on %q", current, event)
	}

	return next, nil
}
