package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidCategory = errors.New("model: invalid task category")
	ErrInvalidReminder = errors.New("model: invalid custom reminder")
)

type Priority string

const (
	PriorityUrgent    Priority = "URGENT"
	PriorityImportant Priority = "IMPORTANT"
	PriorityRegular   Priority = "REGULAR"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityImportant, PriorityRegular:
		return true
	default:
		return false
	}
}

// Rank orders priorities for dashboard sorting, lowest is most urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityImportant:
		return 1
	default:
		return 2
	}
}

type Category string

const (
	CategoryStudy    Category = "Study"
	CategoryWork     Category = "Work"
	CategoryHome     Category = "Home"
	CategoryPersonal Category = "Personal"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryStudy, CategoryWork, CategoryHome, CategoryPersonal:
		return true
	default:
		return false
	}
}

type TimeUnit string

const (
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
	UnitDays    TimeUnit = "days"
)

func (u TimeUnit) IsValid() bool {
	switch u {
	case UnitMinutes, UnitHours, UnitDays:
		return true
	default:
		return false
	}
}

// CustomReminder is a user-defined offset before the due time.
type CustomReminder struct {
	Value int
	Unit  TimeUnit
}

// Minutes normalizes the offset to whole minutes.
func (c CustomReminder) Minutes() int {
	switch c.Unit {
	case UnitHours:
		return c.Value * 60
	case UnitDays:
		return c.Value * 60 * 24
	default:
		return c.Value
	}
}

func (c CustomReminder) Validate() error {
	if c.Value <= 0 {
		return fmt.Errorf("%w: value must be positive, got %d", ErrInvalidReminder, c.Value)
	}
	if !c.Unit.IsValid() {
		return fmt.Errorf("%w: unit %q", ErrInvalidReminder, c.Unit)
	}
	return nil
}

// ReminderConfig holds the independent trigger rules for one task. Custom is
// nil when no custom rule is configured.
type ReminderConfig struct {
	DayBefore        bool
	HourBefore       bool
	FifteenMinBefore bool
	Custom           *CustomReminder
}

type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Category    Category
	DueAt       time.Time
	CreatedAt   time.Time
	Completed   bool
	Reminders   ReminderConfig
	// SnoozedUntil is set alongside DueAt when the task is snoozed; while it
	// lies in the future the task is hidden from actionable lists.
	SnoozedUntil *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.DueAt.IsZero() {
		return errors.New("model: task due_at is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Reminders.Custom != nil {
		if err := t.Reminders.Custom.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Snoozed reports whether the task is resting until a future instant.
func (t Task) Snoozed(now time.Time) bool {
	return t.SnoozedUntil != nil && t.SnoozedUntil.After(now)
}

// Snooze moves the due time to now+d and records the matching snooze
// deadline. The changed due time re-arms the task's reminder cycle.
func (t *Task) Snooze(now time.Time, d time.Duration) {
	until := now.Add(d)
	t.DueAt = until
	t.SnoozedUntil = &until
}
