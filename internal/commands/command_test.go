package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent !urgent @home", TypeAdd},
		{"done pay rent", TypeDone},
		{"snooze standup prep 15", TypeSnooze},
		{"/habit evening walk @evening", TypeHabit},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddTokens(t *testing.T) {
	cmd, err := Parse("/add pay rent !urgent @home")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Title != "pay rent" {
		t.Fatalf("unexpected title: %q", cmd.Add.Title)
	}
	if cmd.Add.Priority != "URGENT" {
		t.Fatalf("unexpected priority: %q", cmd.Add.Priority)
	}
	if cmd.Add.Category != "home" {
		t.Fatalf("unexpected category: %q", cmd.Add.Category)
	}
}

func TestParseSnoozeMinutes(t *testing.T) {
	cmd, err := Parse("snooze standup prep 15")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Snooze.Target != "standup prep" || cmd.Snooze.Minutes != 15 {
		t.Fatalf("unexpected snooze args: %+v", cmd.Snooze)
	}

	for _, in := range []string{"snooze x 0", "snooze x -5", "snooze x soon"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseHabitSlot(t *testing.T) {
	cmd, err := Parse("habit evening walk @evening")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Habit.Title != "evening walk" || cmd.Habit.Slot != "evening" {
		t.Fatalf("unexpected habit args: %+v", cmd.Habit)
	}

	cmd, err = Parse("habit stretch")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Habit.Slot != "morning" {
		t.Fatalf("expected default morning slot, got %q", cmd.Habit.Slot)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("done rent")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
