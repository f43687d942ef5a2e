// Package provider supplies loaded sessions and the event schedule.
// Implementations read pre-generated snapshot files; the cached variant
// decorates any source with an in-memory loader cache.
package provider

import (
	"context"
	"errors"

	"github.com/aprs3/f1dashboard-go/pkg/model"
)

var (
	// ErrSessionNotFound signals that the event/session combination does
	// not exist for that year.
	ErrSessionNotFound = errors.New("session not found")
	// ErrLoadFailed signals a transient load failure.
	ErrLoadFailed = errors.New("session data could not be loaded")
)

type YearRange struct {
	From int
	To   int
}

type SessionSource interface {
	// Events lists the known events of the year range, most recent year
	// first, events within a year sorted by date descending. Events that
	// are less than one day in the past are excluded.
	Events(ctx context.Context, years YearRange) ([]model.EventDescriptor, error)
	// LoadSession loads a single session of an event.
	LoadSession(ctx context.Context, year int, eventName string,
		sessionType model.SessionType) (*model.Session, error)
}

// SessionSlots returns the five session slots of an event in reverse
// declared order (race first).
func SessionSlots(desc model.EventDescriptor) []string {
	ret := make([]string, 0, len(desc.Sessions))
	for i := len(desc.Sessions) - 1; i >= 0; i-- {
		ret = append(ret, desc.Sessions[i])
	}
	return ret
}
