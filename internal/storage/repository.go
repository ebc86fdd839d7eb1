package storage

import (
	"context"
	"errors"

	"github.com/focusflow-app/focusflow/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type TaskListFilter struct {
	Completed *bool
	Category  string
	Limit     int
	Offset    int
}

// Repository is the persistence boundary the reminder engine treats as the
// external collaborator: the engine only reads lists and requests mutations
// through it.
type Repository interface {
	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)

	CreateHabit(ctx context.Context, in model.Habit) error
	GetHabit(ctx context.Context, id string) (model.Habit, error)
	UpdateHabit(ctx context.Context, in model.Habit) error
	DeleteHabit(ctx context.Context, id string) error
	ListHabits(ctx context.Context) ([]model.Habit, error)
	ToggleHabitDay(ctx context.Context, habitID, day string) error

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
