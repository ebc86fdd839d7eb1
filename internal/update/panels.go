package update

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/focusflow-app/focusflow/internal/model"
	"github.com/focusflow-app/focusflow/internal/reminder"
	"github.com/focusflow-app/focusflow/internal/views"
)

func (m Model) renderTasksView() string {
	return views.RenderTaskPanel(views.TaskPanelData{
		QuickAddView: m.quickAddInput.View(),
		ListView:     m.tasksList.View(),
		Items:        m.taskItemData(),
		SelectedID:   m.selectedTaskID(),
		ShowDone:     m.TasksPane.ShowDone,
	})
}

func (m Model) taskItemData() []views.TaskItemData {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		item := views.TaskItemData{
			ID:        task.ID,
			Title:     task.Title,
			Priority:  string(task.Priority),
			Category:  string(task.Category),
			DueAt:     task.DueAt.Format("Jan 2 15:04"),
			Completed: task.Completed,
		}
		if task.Snoozed(m.Clock) {
			item.Snoozed = true
			item.Countdown = reminder.FormatCountdown(*task.SnoozedUntil, m.Clock)
		}
		items = append(items, item)
	}
	return items
}

func (m Model) selectedTaskID() string {
	if len(m.Tasks) == 0 || m.TasksPane.Cursor >= len(m.Tasks) {
		return ""
	}
	return m.Tasks[m.TasksPane.Cursor].ID
}

func (m Model) renderHabitsView() string {
	items := make([]views.HabitItemData, 0, len(m.Habits))
	day := model.DayKey(m.Clock)
	for _, habit := range m.Habits {
		items = append(items, views.HabitItemData{
			ID:        habit.ID,
			Title:     habit.Title,
			Icon:      habit.Icon,
			Slot:      string(habit.Slot),
			Streak:    habitStreak(habit, m.Clock),
			DoneToday: habit.CompletedOn(day),
		})
	}
	selected := ""
	if len(m.Habits) > 0 && m.HabitsPane.Cursor < len(m.Habits) {
		selected = m.Habits[m.HabitsPane.Cursor].ID
	}
	return views.RenderHabitPanel(views.HabitPanelData{
		ListView:   m.habitsList.View(),
		Items:      items,
		SelectedID: selected,
	})
}

// habitStreak counts consecutive completed days ending today, or ending
// yesterday when today is still open.
func habitStreak(habit model.Habit, now time.Time) int {
	day := now
	if !habit.CompletedOn(model.DayKey(day)) {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for habit.CompletedOn(model.DayKey(day)) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func (m Model) renderDashboardView() string {
	pending := 0
	done := 0
	var next *model.Task
	snoozed := make([]views.TaskItemData, 0)
	actionable := make([]model.Task, 0, len(m.Tasks))
	for i := range m.Tasks {
		task := m.Tasks[i]
		if task.Completed {
			done++
			continue
		}
		pending++
		if task.DueAt.After(m.Clock) && (next == nil || task.DueAt.Before(next.DueAt)) {
			next = &m.Tasks[i]
		}
		if task.Snoozed(m.Clock) {
			snoozed = append(snoozed, views.TaskItemData{
				Title:     task.Title,
				Countdown: reminder.FormatCountdown(*task.SnoozedUntil, m.Clock),
			})
			continue
		}
		actionable = append(actionable, task)
	}
	sort.Slice(snoozed, func(i, j int) bool { return snoozed[i].Title < snoozed[j].Title })

	// Most urgent first, due time breaking ties; snoozed tasks sit out.
	sort.SliceStable(actionable, func(i, j int) bool {
		if actionable[i].Priority.Rank() != actionable[j].Priority.Rank() {
			return actionable[i].Priority.Rank() < actionable[j].Priority.Rank()
		}
		return actionable[i].DueAt.Before(actionable[j].DueAt)
	})
	if len(actionable) > 5 {
		actionable = actionable[:5]
	}
	top := make([]views.TaskItemData, 0, len(actionable))
	for _, task := range actionable {
		top = append(top, views.TaskItemData{
			Title:    task.Title,
			Priority: string(task.Priority),
			Category: string(task.Category),
			DueAt:    task.DueAt.Format("Jan 2 15:04"),
		})
	}

	day := model.DayKey(m.Clock)
	habitsDone := 0
	for _, habit := range m.Habits {
		if habit.CompletedOn(day) {
			habitsDone++
		}
	}

	data := views.DashboardData{
		Clock:        m.Clock.Format("Mon Jan 2 15:04:05"),
		PendingCount: pending,
		DoneCount:    done,
		HabitsDone:   habitsDone,
		HabitsTotal:  len(m.Habits),
		Top:          top,
		Snoozed:      snoozed,
	}
	if next != nil {
		data.NextDue = fmt.Sprintf("%s at %s", next.Title, next.DueAt.Format("Jan 2 15:04"))
	}
	return views.RenderDashboard(data)
}

func (m Model) renderSettingsView() string {
	return views.RenderSettingsPanel(views.SettingsPanelData{
		MorningText: m.Settings.Fields[0],
		NoonText:    m.Settings.Fields[1],
		EveningText: m.Settings.Fields[2],
		FieldIndex:  m.Settings.FieldIndex,
		ErrorText:   m.Settings.Err,
	})
}

func (m Model) renderTaskDetailPane() string {
	if len(m.Tasks) == 0 || m.TasksPane.Cursor >= len(m.Tasks) {
		return "detail:\n(no selection)"
	}
	task := m.Tasks[m.TasksPane.Cursor]
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("id: %s\npriority: %s\ncategory: %s\ndue: %s\n",
		task.ID, task.Priority, task.Category, task.DueAt.Format("2006-01-02 15:04")))
	b.WriteString("notes:\n")
	b.WriteString(m.descViewport.View())
	return strings.TrimSpace(b.String())
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// renderAlertOverlay joins the open alert modals; the task alert renders
// first when both gates are occupied.
func (m Model) renderAlertOverlay() (string, string) {
	parts := make([]string, 0, 2)
	level := "info"
	if m.ActiveTaskAlert != nil {
		a := m.ActiveTaskAlert
		prompt := ""
		if m.AlertPrompt.SnoozeMode {
			prompt = m.snoozeInput.View()
		}
		parts = append(parts, views.RenderTaskAlert(views.TaskAlertData{
			Label:       a.Label,
			Severity:    string(a.Severity),
			TaskTitle:   a.Task.Title,
			Priority:    string(a.Task.Priority),
			Advice:      a.Advice,
			SnoozeInput: prompt,
			ErrorText:   m.AlertPrompt.Err,
		}))
		level = string(a.Severity)
	}
	if m.ActiveHabitAlert != nil {
		a := m.ActiveHabitAlert
		parts = append(parts, views.RenderHabitAlert(views.HabitAlertData{
			Title: a.Habit.Title,
			Icon:  a.Habit.Icon,
			Slot:  string(a.Habit.Slot),
		}))
	}
	return strings.Join(parts, "\n"), level
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func (m *Model) syncBubbleData() {
	taskItems := make([]list.Item, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		desc := fmt.Sprintf("%s | %s | due %s", task.Priority, task.Category, task.DueAt.Format("Jan 2 15:04"))
		taskItems = append(taskItems, listItem{title: task.Title, description: desc})
	}
	m.tasksList.SetItems(taskItems)
	if len(taskItems) > 0 && m.TasksPane.Cursor < len(taskItems) {
		m.tasksList.Select(m.TasksPane.Cursor)
	}

	habitItems := make([]list.Item, 0, len(m.Habits))
	for _, habit := range m.Habits {
		habitItems = append(habitItems, listItem{title: habit.Title, description: string(habit.Slot)})
	}
	m.habitsList.SetItems(habitItems)
	if len(habitItems) > 0 && m.HabitsPane.Cursor < len(habitItems) {
		m.habitsList.Select(m.HabitsPane.Cursor)
	}

	m.quickAddInput.SetValue(m.TasksPane.Input)
	m.commandInput.SetValue(m.Palette.Input)
	if m.CurrentView == ViewTasks && m.TasksPane.CaptureMode {
		m.quickAddInput.Focus()
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if len(m.Tasks) > 0 && m.TasksPane.Cursor < len(m.Tasks) {
		md := m.Tasks[m.TasksPane.Cursor].Description
		if strings.TrimSpace(md) == "" {
			md = "_No notes_"
		}
		m.descViewport.SetContent(views.RenderMarkdown(md))
	}
}
