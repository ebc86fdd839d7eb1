package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/focusflow-app/focusflow/internal/model"
	"github.com/focusflow-app/focusflow/internal/reminder"
	"github.com/focusflow-app/focusflow/internal/storage"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewTasks     View = "Tasks"
	ViewHabits    View = "Habits"
	ViewSettings  View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Tasks     string
	Habits    string
	Settings  string
	Help      string
	Quit      string
}

type TasksState struct {
	Cursor      int
	CaptureMode bool
	Input       string
	ShowDone    bool
}

type HabitsState struct {
	Cursor int
}

// TaskAlertPrompt holds the custom-snooze input attached to an open
// task alert.
type TaskAlertPrompt struct {
	SnoozeMode bool
	Input      string
	Err        string
}

type SettingsState struct {
	FieldIndex int
	Fields     [3]string
	Err        string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Repo        storage.Repository
	Engine      *reminder.Engine

	Tasks  []model.Task
	Habits []model.Habit

	TasksPane  TasksState
	HabitsPane HabitsState
	Settings   SettingsState

	// Separate presentation gates for task and habit alerts. Both may
	// be open at once; the task alert takes key precedence.
	ActiveTaskAlert  *reminder.TaskAlert
	ActiveHabitAlert *reminder.HabitAlert
	AlertPrompt      TaskAlertPrompt

	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Clock          time.Time
	Quitting       bool
	LastError      error

	taskPollInterval  time.Duration
	habitPollInterval time.Duration

	// Bubble components used for rich TUI controls
	tasksList     list.Model
	habitsList    list.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	snoozeInput   textinput.Model
	syncSpinner   spinner.Model
	helpModel     help.Model
	descViewport  viewport.Model
	spinnerActive bool
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TasksLoadedMsg struct {
	Tasks []model.Task
}

type HabitsLoadedMsg struct {
	Habits []model.Habit
}

type TaskPollMsg struct {
	At time.Time
}

type HabitPollMsg struct {
	At time.Time
}

type CountdownTickMsg struct {
	At time.Time
}

func NewModel() Model {
	m := Model{
		CurrentView:       ViewDashboard,
		Engine:            reminder.NewEngine(reminder.DefaultSlotTimes()),
		DesktopEnabled:    false,
		notifier:          NoopDesktopNotifier{},
		Clock:             time.Now(),
		taskPollInterval:  5 * time.Second,
		habitPollInterval: time.Minute,
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Tasks:     "2",
			Habits:    "3",
			Settings:  "4",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.seedSettingsFields()
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithRepo(repo storage.Repository, engine *reminder.Engine) Model {
	m := NewModel()
	m.Repo = repo
	if engine != nil {
		m.Engine = engine
	}
	m.seedSettingsFields()
	return m
}

func NewModelWithConfig(repo storage.Repository, engine *reminder.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModelWithRepo(repo, engine)
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	if cfg.TaskPollSeconds > 0 {
		m.taskPollInterval = time.Duration(cfg.TaskPollSeconds) * time.Second
	}
	if cfg.HabitPollSeconds > 0 {
		m.habitPollInterval = time.Duration(cfg.HabitPollSeconds) * time.Second
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.tasksList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.tasksList.Title = "Tasks (list)"
	m.tasksList.SetShowHelp(false)
	m.tasksList.SetFilteringEnabled(false)

	m.habitsList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.habitsList.Title = "Habits (list)"
	m.habitsList.SetShowHelp(false)
	m.habitsList.SetFilteringEnabled(false)

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.snoozeInput = textinput.New()
	m.snoozeInput.Prompt = "minutes> "
	m.snoozeInput.CharLimit = 5
	m.snoozeInput.Width = 8

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.descViewport = viewport.New(54, 12)
}
