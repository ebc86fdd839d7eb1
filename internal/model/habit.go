package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("model: invalid habit time of day")

type TimeOfDay string

const (
	TimeMorning TimeOfDay = "morning"
	TimeNoon    TimeOfDay = "noon"
	TimeEvening TimeOfDay = "evening"
)

func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeMorning, TimeNoon, TimeEvening:
		return true
	default:
		return false
	}
}

// DayKey is the calendar-day discriminator used for habit completion
// tracking and for the fired-reminder ledger.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

type Habit struct {
	ID    string
	Title string
	Icon  string
	Slot  TimeOfDay
	// CompletedDays holds ISO dates (2006-01-02) on which the habit was done.
	CompletedDays []string
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Title) == "" {
		return errors.New("model: habit title is required")
	}
	if !h.Slot.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, h.Slot)
	}
	return nil
}

// CompletedOn reports whether the habit was completed on the given day key.
func (h Habit) CompletedOn(day string) bool {
	for _, d := range h.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}

// ToggleDay adds or removes the day from the completion set and returns the
// updated list.
func (h Habit) ToggleDay(day string) []string {
	for i, d := range h.CompletedDays {
		if d == day {
			return append(h.CompletedDays[:i:i], h.CompletedDays[i+1:]...)
		}
	}
	return append(append([]string(nil), h.CompletedDays...), day)
}
