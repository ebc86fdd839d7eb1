package reminder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/focusflow-app/focusflow/internal/model"
)

var ErrInvalidClockTime = errors.New("reminder: invalid clock time")

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// SlotTimes maps each habit slot to its reminder clock time.
type SlotTimes struct {
	Morning ClockTime
	Noon    ClockTime
	Evening ClockTime
}

func DefaultSlotTimes() SlotTimes {
	return SlotTimes{
		Morning: ClockTime{Hour: 8},
		Noon:    ClockTime{Hour: 13},
		Evening: ClockTime{Hour: 20},
	}
}

func (s SlotTimes) For(slot model.TimeOfDay) ClockTime {
	switch slot {
	case model.TimeNoon:
		return s.Noon
	case model.TimeEvening:
		return s.Evening
	default:
		return s.Morning
	}
}

// TaskAlert is the payload behind an open task reminder modal.
type TaskAlert struct {
	Task     model.Task
	Rule     RuleType
	Label    string
	Advice   string
	Severity Severity
}

// HabitAlert is the payload behind an open habit reminder modal.
type HabitAlert struct {
	Habit model.Habit
	Day   string
}

// Engine owns the fired-rule ledgers and the slot-time configuration. It is
// a pure evaluator: callers drive it from their own poll ticks and pass the
// current instant explicitly, which keeps every decision reproducible in
// tests. Not safe for concurrent use; the TUI calls it from a single loop.
type Engine struct {
	taskFired  Ledger
	habitFired Ledger
	slots      SlotTimes
}

func NewEngine(slots SlotTimes) *Engine {
	return &Engine{
		taskFired:  NewLedger(),
		habitFired: NewLedger(),
		slots:      slots,
	}
}

func (e *Engine) SlotTimes() SlotTimes {
	return e.slots
}

func (e *Engine) SetSlotTimes(slots SlotTimes) {
	e.slots = slots
}

// Reset clears both ledgers, as on engine restart.
func (e *Engine) Reset() {
	e.taskFired = NewLedger()
	e.habitFired = NewLedger()
}

// EvaluateTasks returns the first (task, rule) pair whose window contains
// the current instant and whose composite key has not fired, marking it
// fired. It does not continue scanning after a match: at most one alert is
// surfaced per call, and remaining candidates stay eligible for later ticks.
func (e *Engine) EvaluateTasks(tasks []model.Task, now time.Time) (TaskAlert, bool) {
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		diff := diffMinutes(task.DueAt, now)
		for _, r := range candidateRules(task) {
			if !r.contains(diff) {
				continue
			}
			key := taskKey(task.ID, r.Type, task.DueAt)
			if e.taskFired.Fired(key) {
				continue
			}
			e.taskFired.MarkFired(key)
			return TaskAlert{
				Task:     task,
				Rule:     r.Type,
				Label:    r.Label,
				Advice:   Advice(task, r.Type),
				Severity: r.Severity,
			}, true
		}
	}
	return TaskAlert{}, false
}

// EvaluateHabits returns the first habit whose slot time equals the current
// hour and minute, that is not completed today and has not fired today.
// Exact equality is safe because the habit poller ticks every minute.
func (e *Engine) EvaluateHabits(habits []model.Habit, now time.Time) (HabitAlert, bool) {
	day := model.DayKey(now)
	for _, habit := range habits {
		if habit.CompletedOn(day) {
			continue
		}
		at := e.slots.For(habit.Slot)
		if now.Hour() != at.Hour || now.Minute() != at.Minute {
			continue
		}
		key := habitKey(habit.ID, day)
		if e.habitFired.Fired(key) {
			continue
		}
		e.habitFired.MarkFired(key)
		return HabitAlert{Habit: habit, Day: day}, true
	}
	return HabitAlert{}, false
}
