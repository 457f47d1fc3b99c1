// Package todo holds the task record, its ordering rules and the Store that
// keeps the collection mirrored to a single persisted slot.
package todo

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrBlankTitle      = errors.New("title cannot be empty")
	ErrPartialSchedule = errors.New("date and time must be set together")
	ErrInvalidDate     = errors.New("date must look like YYYY-MM-DD")
	ErrInvalidTime     = errors.New("time must look like HH:MM AM/PM")
	ErrNotFound        = errors.New("todo not found")
)

type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
}

// Scheduled reports whether both date and time are set.
func (t Task) Scheduled() bool {
	return t.Date != "" && t.Time != ""
}

// Due returns the combined date and time in loc.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	if !t.Scheduled() {
		return time.Time{}, false
	}
	return Instant(t.Date, t.Time, loc)
}

func validate(t Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrBlankTitle
	}
	return validateSchedule(t.Date, t.Time)
}

func validateSchedule(date, clock string) error {
	if (date == "") != (clock == "") {
		return ErrPartialSchedule
	}
	if date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse(TimeLayout, clock); err != nil {
		return ErrInvalidTime
	}
	return nil
}

func maxID(items []Task) int {
	m := 0
	for _, t := range items {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}

func clone(items []Task) []Task {
	if items == nil {
		return nil
	}
	out := make([]Task, len(items))
	copy(out, items)
	return out
}
