package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeSnooze Type = "snooze"
	TypeHabit  Type = "habit"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Priority string
	Category string
}

type DoneArgs struct {
	Target string
}

type SnoozeArgs struct {
	Target  string
	Minutes int
}

type HabitArgs struct {
	Title string
	Slot  string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *DoneArgs
	Snooze *SnoozeArgs
	Habit  *HabitArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeSnooze:
		return parseSnooze(input, args)
	case TypeHabit:
		return parseHabit(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd accepts "!urgent"/"!important" priority tokens and a single
// "@category" token anywhere in the arguments; the rest is the title.
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	out := AddArgs{}
	titleParts := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "!"):
			out.Priority = strings.ToUpper(strings.TrimPrefix(lower, "!"))
		case strings.HasPrefix(lower, "@"):
			out.Category = strings.TrimPrefix(lower, "@")
		default:
			titleParts = append(titleParts, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(titleParts, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: strings.Join(args, " ")}}, nil
}

func parseSnooze(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "snooze requires a task and minutes"}
	}
	minutes, err := strconv.Atoi(args[len(args)-1])
	if err != nil || minutes <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "snooze minutes must be a positive number"}
	}
	target := strings.Join(args[:len(args)-1], " ")
	return Command{Type: TypeSnooze, Raw: raw, Snooze: &SnoozeArgs{Target: target, Minutes: minutes}}, nil
}

// parseHabit accepts an optional "@morning"/"@noon"/"@evening" slot token.
func parseHabit(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "habit requires a title"}
	}
	out := HabitArgs{Slot: "morning"}
	titleParts := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "@") {
			out.Slot = strings.ToLower(strings.TrimPrefix(arg, "@"))
			continue
		}
		titleParts = append(titleParts, arg)
	}
	out.Title = strings.TrimSpace(strings.Join(titleParts, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "habit requires a title"}
	}
	return Command{Type: TypeHabit, Raw: raw, Habit: &out}, nil
}
