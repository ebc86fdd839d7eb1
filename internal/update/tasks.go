package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/focusflow-app/focusflow/internal/model"
	"github.com/focusflow-app/focusflow/internal/storage"
)

func (m Model) loadTasksCmd() tea.Cmd {
	repo := m.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		tasks, err := repo.ListTasks(context.Background(), storage.TaskListFilter{})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

func (m Model) loadHabitsCmd() tea.Cmd {
	repo := m.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		habits, err := repo.ListHabits(context.Background())
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return HabitsLoadedMsg{Habits: habits}
	}
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	if m.TasksPane.CaptureMode {
		switch msg.String() {
		case "esc":
			m.TasksPane.CaptureMode = false
			m.quickAddInput.Blur()
			m.Status = StatusBar{Text: "task list mode"}
			return m
		case "enter":
			m = m.quickAddTask(m.quickAddInput.Value())
			m.quickAddInput.SetValue("")
			m.TasksPane.Input = ""
			return m
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
		m.TasksPane.Input = m.quickAddInput.Value()
		return m
	}

	switch msg.String() {
	case "i", "enter":
		m.TasksPane.CaptureMode = true
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "task capture mode"}
	case "up", "k":
		if m.TasksPane.Cursor > 0 {
			m.TasksPane.Cursor--
		}
	case "down", "j":
		if m.TasksPane.Cursor < len(m.Tasks)-1 {
			m.TasksPane.Cursor++
		}
	case "c":
		m = m.toggleTaskCompleteAtCursor()
	case "x":
		m = m.deleteTaskAtCursor()
	case "d":
		m.TasksPane.ShowDone = !m.TasksPane.ShowDone
	default:
		if msg.Type == tea.KeyRunes {
			m.TasksPane.CaptureMode = true
			m.quickAddInput.Focus()
			m.quickAddInput.SetValue(string(msg.Runes))
			m.TasksPane.Input = m.quickAddInput.Value()
		}
	}
	return m
}

// quickAddTask creates a task due in 24 hours with the default reminder
// rules. The palette's add command covers priority and category tokens;
// quick add is for getting the title down fast.
func (m Model) quickAddTask(title string) Model {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return m
	}
	now := time.Now()
	task := model.Task{
		ID:        uuid.NewString(),
		Title:     trimmed,
		Priority:  model.PriorityRegular,
		Category:  model.CategoryPersonal,
		DueAt:     now.Add(24 * time.Hour),
		CreatedAt: now,
		Reminders: model.ReminderConfig{
			HourBefore:       true,
			FifteenMinBefore: true,
		},
	}
	return m.createTask(task)
}

func (m Model) createTask(task model.Task) Model {
	if err := task.Validate(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if m.Repo != nil {
		if err := m.Repo.CreateTask(context.Background(), task); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	m.Tasks = append(m.Tasks, task)
	m.TasksPane.Cursor = len(m.Tasks) - 1
	m.Status = StatusBar{Text: fmt.Sprintf("task added: %s", task.Title)}
	return m
}

func (m Model) toggleTaskCompleteAtCursor() Model {
	if len(m.Tasks) == 0 || m.TasksPane.Cursor >= len(m.Tasks) {
		return m
	}
	task := m.Tasks[m.TasksPane.Cursor]
	task.Completed = !task.Completed
	status := fmt.Sprintf("completed: %s", task.Title)
	if task.Completed {
		task.SnoozedUntil = nil
	} else {
		status = fmt.Sprintf("reopened: %s", task.Title)
	}
	return m.persistTask(task, status)
}

func (m Model) deleteTaskAtCursor() Model {
	if len(m.Tasks) == 0 || m.TasksPane.Cursor >= len(m.Tasks) {
		return m
	}
	task := m.Tasks[m.TasksPane.Cursor]
	if m.Repo != nil {
		if err := m.Repo.DeleteTask(context.Background(), task.ID); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	m.Tasks = append(m.Tasks[:m.TasksPane.Cursor], m.Tasks[m.TasksPane.Cursor+1:]...)
	if m.TasksPane.Cursor >= len(m.Tasks) && m.TasksPane.Cursor > 0 {
		m.TasksPane.Cursor--
	}
	m.Status = StatusBar{Text: fmt.Sprintf("task deleted: %s", task.Title)}
	return m
}

// completeTaskByTitle resolves a palette "done" target by case-insensitive
// title prefix against pending tasks.
func (m Model) completeTaskByTitle(target string) (Model, bool) {
	needle := strings.ToLower(strings.TrimSpace(target))
	for _, task := range m.Tasks {
		if task.Completed {
			continue
		}
		if strings.HasPrefix(strings.ToLower(task.Title), needle) {
			task.Completed = true
			task.SnoozedUntil = nil
			return m.persistTask(task, fmt.Sprintf("completed: %s", task.Title)), true
		}
	}
	return m, false
}

func (m Model) snoozeTaskByTitle(target string, minutes int) (Model, bool) {
	needle := strings.ToLower(strings.TrimSpace(target))
	for _, task := range m.Tasks {
		if task.Completed {
			continue
		}
		if strings.HasPrefix(strings.ToLower(task.Title), needle) {
			task.Snooze(time.Now(), time.Duration(minutes)*time.Minute)
			return m.persistTask(task, fmt.Sprintf("snoozed %s for %d minutes", task.Title, minutes)), true
		}
	}
	return m, false
}
