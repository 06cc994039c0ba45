package library

import (
	"fmt"

	"github.com/google/uuid"
)

// Event is a community event shown on the events screen. Events live only
// within a running session; they are not part of the snapshot document.
type Event struct {
	ID          string
	Name        string
	Date        string
	Description string
}

// EventBoard holds the session's community events.
type EventBoard struct {
	events []Event
}

// NewEventBoard builds an empty board.
func NewEventBoard() *EventBoard {
	return &EventBoard{}
}

// Add records an event. The date must match the ISO layout.
func (b *EventBoard) Add(name, date, description string) (Event, error) {
	if _, err := parseDate(date); err != nil {
		return Event{}, fmt.Errorf("event date %q: %w", date, err)
	}
	e := Event{
		ID:          uuid.NewString(),
		Name:        name,
		Date:        date,
		Description: description,
	}
	b.events = append(b.events, e)
	return e, nil
}

// Events lists recorded events in insertion order.
func (b *EventBoard) Events() []Event {
	return append([]Event(nil), b.events...)
}
