package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusflow-app/focusflow/internal/model"
)

var snoozePresets = map[string]int{
	"1": 5,
	"2": 10,
	"3": 15,
	"4": 30,
}

func taskPollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TaskPollMsg{At: t} })
}

func habitPollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return HabitPollMsg{At: t} })
}

func countdownTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return CountdownTickMsg{At: t} })
}

// onTaskPoll runs one evaluator pass over the cached tasks. The pass is
// skipped entirely while a task alert is already on screen; whatever is
// due meanwhile stays pending in the evaluator windows.
func (m Model) onTaskPoll(at time.Time) Model {
	if m.ActiveTaskAlert != nil || m.Engine == nil {
		return m
	}
	alert, ok := m.Engine.EvaluateTasks(m.Tasks, at)
	if !ok {
		return m
	}
	m.ActiveTaskAlert = &alert
	m.AlertPrompt = TaskAlertPrompt{}
	m.notify("Reminder: "+alert.Label, alert.Task.Title, string(alert.Severity))
	m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s (%s)", alert.Task.Title, alert.Label)}
	return m
}

func (m Model) onHabitPoll(at time.Time) Model {
	if m.ActiveHabitAlert != nil || m.Engine == nil {
		return m
	}
	alert, ok := m.Engine.EvaluateHabits(m.Habits, at)
	if !ok {
		return m
	}
	m.ActiveHabitAlert = &alert
	m.notify("Habit time", alert.Habit.Title, "info")
	m.Status = StatusBar{Text: fmt.Sprintf("habit reminder: %s", alert.Habit.Title)}
	return m
}

func (m Model) handleTaskAlertKey(msg tea.KeyMsg) Model {
	alert := m.ActiveTaskAlert
	if alert == nil {
		return m
	}

	if m.AlertPrompt.SnoozeMode {
		switch msg.String() {
		case "esc":
			m.AlertPrompt = TaskAlertPrompt{}
			m.snoozeInput.SetValue("")
			return m
		case "enter":
			minutes, err := strconv.Atoi(strings.TrimSpace(m.AlertPrompt.Input))
			if err != nil || minutes <= 0 {
				m.AlertPrompt.Err = "snooze minutes must be a positive number"
				return m
			}
			return m.snoozeAlertTask(minutes)
		default:
			if msg.Type == tea.KeyRunes {
				m.snoozeInput.SetValue(m.snoozeInput.Value() + string(msg.Runes))
			} else {
				var cmd tea.Cmd
				m.snoozeInput, cmd = m.snoozeInput.Update(msg)
				_ = cmd
			}
			m.AlertPrompt.Input = m.snoozeInput.Value()
			m.AlertPrompt.Err = ""
			return m
		}
	}

	key := msg.String()
	if minutes, ok := snoozePresets[key]; ok {
		return m.snoozeAlertTask(minutes)
	}
	switch key {
	case "c":
		return m.completeAlertTask()
	case "s":
		m.AlertPrompt = TaskAlertPrompt{SnoozeMode: true}
		m.snoozeInput.SetValue("")
		m.snoozeInput.Focus()
		return m
	case "esc":
		m.ActiveTaskAlert = nil
		m.AlertPrompt = TaskAlertPrompt{}
		m.Status = StatusBar{Text: "reminder dismissed"}
		return m
	}
	return m
}

func (m Model) completeAlertTask() Model {
	alert := m.ActiveTaskAlert
	task, ok := m.taskByID(alert.Task.ID)
	if !ok {
		m.ActiveTaskAlert = nil
		return m
	}
	task.Completed = true
	task.SnoozedUntil = nil
	m = m.persistTask(task, fmt.Sprintf("completed: %s", task.Title))
	m.ActiveTaskAlert = nil
	m.AlertPrompt = TaskAlertPrompt{}
	return m
}

// snoozeAlertTask pushes the due time out by the requested minutes. The
// changed due time re-arms every reminder rule for the task, so the same
// rules may legitimately fire again against the new instant.
func (m Model) snoozeAlertTask(minutes int) Model {
	alert := m.ActiveTaskAlert
	task, ok := m.taskByID(alert.Task.ID)
	if !ok {
		m.ActiveTaskAlert = nil
		return m
	}
	task.Snooze(time.Now(), time.Duration(minutes)*time.Minute)
	m = m.persistTask(task, fmt.Sprintf("snoozed %s for %d minutes", task.Title, minutes))
	m.ActiveTaskAlert = nil
	m.AlertPrompt = TaskAlertPrompt{}
	m.snoozeInput.SetValue("")
	return m
}

func (m Model) handleHabitAlertKey(msg tea.KeyMsg) Model {
	alert := m.ActiveHabitAlert
	if alert == nil {
		return m
	}
	switch msg.String() {
	case "enter":
		m = m.toggleHabitDay(alert.Habit.ID, alert.Day)
		m.ActiveHabitAlert = nil
		return m
	case "esc":
		m.ActiveHabitAlert = nil
		m.Status = StatusBar{Text: "habit reminder dismissed"}
		return m
	}
	return m
}

func (m Model) taskByID(id string) (model.Task, bool) {
	for _, task := range m.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func (m Model) persistTask(task model.Task, okStatus string) Model {
	if m.Repo != nil {
		if err := m.Repo.UpdateTask(context.Background(), task); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	for i := range m.Tasks {
		if m.Tasks[i].ID == task.ID {
			m.Tasks[i] = task
			break
		}
	}
	m.Status = StatusBar{Text: okStatus}
	return m
}

func (m Model) toggleHabitDay(habitID, day string) Model {
	if m.Repo != nil {
		if err := m.Repo.ToggleHabitDay(context.Background(), habitID, day); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	for i := range m.Habits {
		if m.Habits[i].ID == habitID {
			m.Habits[i].CompletedDays = m.Habits[i].ToggleDay(day)
			if m.Habits[i].CompletedOn(day) {
				m.Status = StatusBar{Text: fmt.Sprintf("habit done: %s", m.Habits[i].Title)}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("habit unmarked: %s", m.Habits[i].Title)}
			}
			break
		}
	}
	return m
}
