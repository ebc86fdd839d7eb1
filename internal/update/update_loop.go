package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusflow-app/focusflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTasksCmd(),
		m.loadHabitsCmd(),
		taskPollCmd(m.taskPollInterval),
		habitPollCmd(m.habitPollInterval),
		countdownTickCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}

		// Open alerts capture keys before anything else; the task
		// alert wins when both are on screen.
		if m.ActiveTaskAlert != nil {
			return m.handleTaskAlertKey(typed), nil
		}
		if m.ActiveHabitAlert != nil {
			return m.handleHabitAlertKey(typed), nil
		}

		keyStr := typed.String()
		if m.CurrentView == ViewTasks && m.TasksPane.CaptureMode && keyStr != "ctrl+c" &&
			keyStr != m.Keys.Dashboard && keyStr != m.Keys.Tasks && keyStr != m.Keys.Habits && keyStr != m.Keys.Settings &&
			keyStr != m.Keys.Help && keyStr != "/" && keyStr != m.Keys.Quit {
			return m.handleTasksKey(typed), nil
		}
		if m.CurrentView == ViewSettings && keyStr != "ctrl+c" &&
			keyStr != m.Keys.Dashboard && keyStr != m.Keys.Tasks && keyStr != m.Keys.Habits &&
			keyStr != m.Keys.Help && keyStr != "/" && keyStr != m.Keys.Quit {
			return m.handleSettingsKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Dashboard:
			m.CurrentView = ViewDashboard
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Habits:
			m.CurrentView = ViewHabits
			return m, nil
		case m.Keys.Settings:
			m.CurrentView = ViewSettings
			m.seedSettingsFields()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "S":
			if !m.spinnerActive {
				m.spinnerActive = true
				m.Status = StatusBar{Text: "refresh started"}
				return m, tea.Batch(
					m.syncSpinner.Tick,
					m.loadTasksCmd(),
					m.loadHabitsCmd(),
					tea.Tick(2*time.Second, func(time.Time) tea.Msg { return SetStatusMsg{Text: "refresh complete"} }),
				)
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewHabits:
			return m.handleHabitsKey(typed), nil
		}
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewSettings {
				m.seedSettingsFields()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		if strings.Contains(strings.ToLower(typed.Text), "refresh complete") {
			m.spinnerActive = false
		}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case TasksLoadedMsg:
		m.Tasks = typed.Tasks
		if m.TasksPane.Cursor >= len(m.Tasks) {
			m.TasksPane.Cursor = 0
		}
		return m, nil
	case HabitsLoadedMsg:
		m.Habits = typed.Habits
		if m.HabitsPane.Cursor >= len(m.Habits) {
			m.HabitsPane.Cursor = 0
		}
		return m, nil
	case TaskPollMsg:
		m = m.onTaskPoll(typed.At)
		return m, taskPollCmd(m.taskPollInterval)
	case HabitPollMsg:
		m = m.onHabitPoll(typed.At)
		return m, habitPollCmd(m.habitPollInterval)
	case CountdownTickMsg:
		m.Clock = typed.At
		return m, countdownTickCmd()
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewDashboard:
		leftPane = m.renderDashboardView()
		rightPane = m.renderHabitsView() + m.renderHelpIfVisible()
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetailPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewHabits:
		leftPane = m.renderHabitsView()
		rightPane = m.renderHelpIfVisible()
	case ViewSettings:
		leftPane = m.renderSettingsView()
		rightPane = m.renderHelpIfVisible()
	}

	alertView, alertLevel := m.renderAlertOverlay()
	extra := strings.TrimSpace(m.renderNotificationsView())
	if m.spinnerActive {
		extra = strings.TrimSpace(extra + "\nrefresh: " + m.syncSpinner.View() + " running")
	}
	if extra != "" {
		rightPane = rightPane + "\n" + extra
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("focusflow | view: %s | %s", m.CurrentView, m.Clock.Format("15:04:05")),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Alert:      alertView,
		AlertLevel: alertLevel,
		Footer:     fmt.Sprintf("keys: %s dashboard | %s tasks | %s habits | %s settings | / cmd | %s help | %s quit", m.Keys.Dashboard, m.Keys.Tasks, m.Keys.Habits, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewDashboard, ViewTasks, ViewHabits, ViewSettings:
		return true
	default:
		return false
	}
}
