package model

import "time"

// EventDescriptor describes a race weekend in the schedule.
// Sessions holds the five session slots in declared order.
type EventDescriptor struct {
	Year     int       `json:"year"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Sessions []string  `json:"sessions"`
}
