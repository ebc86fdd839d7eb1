package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/focusflow-app/focusflow/internal/model"
)

func (m Model) handleHabitsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.HabitsPane.Cursor > 0 {
			m.HabitsPane.Cursor--
		}
	case "down", "j":
		if m.HabitsPane.Cursor < len(m.Habits)-1 {
			m.HabitsPane.Cursor++
		}
	case " ":
		if len(m.Habits) > 0 && m.HabitsPane.Cursor < len(m.Habits) {
			habit := m.Habits[m.HabitsPane.Cursor]
			m = m.toggleHabitDay(habit.ID, model.DayKey(m.Clock))
		}
	case "x":
		m = m.deleteHabitAtCursor()
	}
	return m
}

func (m Model) addHabit(title, slot string) Model {
	habit := model.Habit{
		ID:    uuid.NewString(),
		Title: strings.TrimSpace(title),
		Slot:  model.TimeOfDay(slot),
	}
	if err := habit.Validate(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if m.Repo != nil {
		if err := m.Repo.CreateHabit(context.Background(), habit); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	m.Habits = append(m.Habits, habit)
	m.HabitsPane.Cursor = len(m.Habits) - 1
	m.Status = StatusBar{Text: fmt.Sprintf("habit added: %s", habit.Title)}
	return m
}

func (m Model) deleteHabitAtCursor() Model {
	if len(m.Habits) == 0 || m.HabitsPane.Cursor >= len(m.Habits) {
		return m
	}
	habit := m.Habits[m.HabitsPane.Cursor]
	if m.Repo != nil {
		if err := m.Repo.DeleteHabit(context.Background(), habit.ID); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	m.Habits = append(m.Habits[:m.HabitsPane.Cursor], m.Habits[m.HabitsPane.Cursor+1:]...)
	if m.HabitsPane.Cursor >= len(m.Habits) && m.HabitsPane.Cursor > 0 {
		m.HabitsPane.Cursor--
	}
	m.Status = StatusBar{Text: fmt.Sprintf("habit deleted: %s", habit.Title)}
	return m
}
