package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Done   func(DoneArgs) (Result, error)
	Snooze func(SnoozeArgs) (Result, error)
	Habit  func(HabitArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeSnooze:
		if handlers.Snooze == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "snooze handler not configured"}
		}
		return handlers.Snooze(*cmd.Snooze)
	case TypeHabit:
		if handlers.Habit == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "habit handler not configured"}
		}
		return handlers.Habit(*cmd.Habit)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
