package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/focusflow-app/focusflow/internal/commands"
	"github.com/focusflow-app/focusflow/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			now := time.Now()
			task := model.Task{
				ID:        uuid.NewString(),
				Title:     a.Title,
				Priority:  model.PriorityRegular,
				Category:  model.CategoryPersonal,
				DueAt:     now.Add(24 * time.Hour),
				CreatedAt: now,
				Reminders: model.ReminderConfig{HourBefore: true, FifteenMinBefore: true},
			}
			if a.Priority != "" {
				task.Priority = model.Priority(a.Priority)
			}
			if a.Category != "" {
				task.Category = normalizeCategory(a.Category)
			}
			next := m.createTask(task)
			if next.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: next.Status.Text}
			}
			m = next
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			next, ok := m.completeTaskByTitle(d.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no pending task matches: " + d.Target}
			}
			m = next
			return commands.Result{Message: m.Status.Text}, nil
		},
		Snooze: func(s commands.SnoozeArgs) (commands.Result, error) {
			next, ok := m.snoozeTaskByTitle(s.Target, s.Minutes)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no pending task matches: " + s.Target}
			}
			m = next
			return commands.Result{Message: m.Status.Text}, nil
		},
		Habit: func(h commands.HabitArgs) (commands.Result, error) {
			next := m.addHabit(h.Title, h.Slot)
			if next.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: next.Status.Text}
			}
			m = next
			m.CurrentView = ViewHabits
			return commands.Result{Message: fmt.Sprintf("added habit: %s", h.Title)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func normalizeCategory(raw string) model.Category {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return model.CategoryPersonal
	}
	return model.Category(strings.ToUpper(lower[:1]) + lower[1:])
}
