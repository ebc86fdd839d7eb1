package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID        string
	Title     string
	Priority  string
	Category  string
	DueAt     string
	Countdown string
	Snoozed   bool
	Completed bool
}

type TaskPanelData struct {
	QuickAddView string
	ListView     string
	Items        []TaskItemData
	SelectedID   string
	ShowDone     bool
}

type HabitItemData struct {
	ID        string
	Title     string
	Icon      string
	Slot      string
	Streak    int
	DoneToday bool
}

type HabitPanelData struct {
	ListView   string
	Items      []HabitItemData
	SelectedID string
}

type DashboardData struct {
	Clock        string
	PendingCount int
	DoneCount    int
	HabitsDone   int
	HabitsTotal  int
	NextDue      string
	Top          []TaskItemData
	Snoozed      []TaskItemData
}

type TaskAlertData struct {
	Label       string
	Severity    string
	TaskTitle   string
	Priority    string
	Advice      string
	SnoozeInput string
	ErrorText   string
}

type HabitAlertData struct {
	Title string
	Icon  string
	Slot  string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type SettingsPanelData struct {
	MorningText string
	NoonText    string
	EveningText string
	FieldIndex  int
	ErrorText   string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(data.QuickAddView + "\n")
	b.WriteString("actions: [enter]add [j/k]move [c]complete [x]delete [d]toggle-done\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("  (none)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		if item.Completed && !data.ShowDone {
			continue
		}
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s (%s)", cursor, mark, priorityBadge(item.Priority), item.Title, item.Category))
		if item.Snoozed && item.Countdown != "" {
			b.WriteString(fmt.Sprintf(" zzz %s", item.Countdown))
		} else if item.DueAt != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.DueAt))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHabitPanel(data HabitPanelData) string {
	var b strings.Builder
	b.WriteString("habits:\n")
	b.WriteString("actions: [j/k]move [space]toggle-today [x]delete (add via /habit)\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("  (none)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		mark := "[ ]"
		if item.DoneToday {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s (%s)", cursor, mark, item.Icon, item.Title, item.Slot))
		if item.Streak > 0 {
			b.WriteString(fmt.Sprintf(" streak:%d", item.Streak))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	b.WriteString("dashboard:\n")
	b.WriteString(fmt.Sprintf("now: %s\n", data.Clock))
	b.WriteString(fmt.Sprintf("tasks: %d pending, %d done\n", data.PendingCount, data.DoneCount))
	b.WriteString(fmt.Sprintf("habits today: %d/%d\n", data.HabitsDone, data.HabitsTotal))
	if data.NextDue != "" {
		b.WriteString(fmt.Sprintf("next due: %s\n", data.NextDue))
	}
	if len(data.Top) > 0 {
		b.WriteString("top tasks:\n")
		for _, item := range data.Top {
			b.WriteString(fmt.Sprintf("- %s %s (%s) due:%s\n", priorityBadge(item.Priority), item.Title, item.Category, item.DueAt))
		}
	}
	if len(data.Snoozed) > 0 {
		b.WriteString("snoozed:\n")
		for _, item := range data.Snoozed {
			b.WriteString(fmt.Sprintf("- %s back in %s\n", item.Title, item.Countdown))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskAlert(data TaskAlertData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("reminder [%s]: %s\n", strings.ToUpper(data.Severity), data.Label))
	b.WriteString(fmt.Sprintf("task: %s %s\n", priorityBadge(data.Priority), data.TaskTitle))
	b.WriteString(data.Advice + "\n")
	b.WriteString("actions: [c]complete [1]5m [2]10m [3]15m [4]30m [s]custom snooze [esc]dismiss\n")
	if data.SnoozeInput != "" {
		b.WriteString("snooze minutes: " + data.SnoozeInput + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderHabitAlert(data HabitAlertData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("habit time (%s)\n", data.Slot))
	b.WriteString(fmt.Sprintf("%s %s\n", data.Icon, data.Title))
	b.WriteString("actions: [enter]done now [esc]later")
	return b.String()
}

func RenderSettingsPanel(data SettingsPanelData) string {
	fields := []struct {
		name string
		text string
	}{
		{"morning", data.MorningText},
		{"noon", data.NoonText},
		{"evening", data.EveningText},
	}
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("habit reminder times (HH:MM)\n")
	b.WriteString("keys: [tab]field [enter]save [esc]close\n")
	for i, f := range fields {
		cursor := " "
		if data.FieldIndex == i {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, f.name, f.text))
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func priorityBadge(priority string) string {
	switch priority {
	case "URGENT":
		return "[RED]"
	case "IMPORTANT":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
