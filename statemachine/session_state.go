package statemachine

import (
	"errors"
	"strings"
)

// SessionState is the login state of an admin caller.
type SessionState string

const (
	StateAnonymous     SessionState = "ANONYMOUS"
	StateAuthenticated SessionState = "AUTHENTICATED"
)

// Event moves a session between states.
type Event string

const (
	EventLogin  Event = "login"
	EventLogout Event = "logout"
)

// Transition defines a valid state change and the event that triggers it
type Transition struct {
	From  SessionState
	To    SessionState
	Event Event
}

// validTransitions is the authoritative session state machine
var validTransitions = []Transition{
	// Successful password check
	{From: StateAnonymous, To: StateAuthenticated, Event: EventLogin},
	// Logout removes the session token
	{From: StateAuthenticated, To: StateAnonymous, Event: EventLogout},
}

type transitionKey struct {
	From  SessionState
	Event Event
}

var transitionMap = func() map[transitionKey]SessionState {
	m := make(map[transitionKey]SessionState)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.Event}] = t.To
	}
	return m
}()

// ErrInvalidTransition is returned for events not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid session transition")

// Next returns the state reached by applying event in state from.
func Next(from SessionState, event Event) (SessionState, error) {
	if to, ok := transitionMap[transitionKey{From: from, Event: event}]; ok {
		return to, nil
	}
	return from, errors.Join(ErrInvalidTransition, errors.New(
		"event '"+string(event)+"' is not allowed in state "+string(from)+
			"; valid events are: "+describeValidFrom(from),
	))
}

// ValidEventsFrom returns every event accepted in the given state.
func ValidEventsFrom(state SessionState) []Event {
	var events []Event
	for _, t := range validTransitions {
		if t.From == state {
			events = append(events, t.Event)
		}
	}
	return events
}

func describeValidFrom(state SessionState) string {
	events := ValidEventsFrom(state)
	if len(events) == 0 {
		return "none"
	}
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
