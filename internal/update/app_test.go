package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusflow-app/focusflow/internal/model"
	"github.com/focusflow-app/focusflow/internal/reminder"
	"github.com/focusflow-app/focusflow/internal/storage"
)

// memRepo is an in-memory storage.Repository for update-loop tests.
type memRepo struct {
	tasks    map[string]model.Task
	habits   map[string]model.Habit
	days     map[string]map[string]bool
	settings map[string]string
	updates  int
}

func newMemRepo() *memRepo {
	return &memRepo{
		tasks:    make(map[string]model.Task),
		habits:   make(map[string]model.Habit),
		days:     make(map[string]map[string]bool),
		settings: make(map[string]string),
	}
}

func (r *memRepo) CreateTask(_ context.Context, in model.Task) error {
	r.tasks[in.ID] = in
	return nil
}

func (r *memRepo) GetTask(_ context.Context, id string) (model.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return model.Task{}, storage.ErrNotFound
	}
	return task, nil
}

func (r *memRepo) UpdateTask(_ context.Context, in model.Task) error {
	if _, ok := r.tasks[in.ID]; !ok {
		return storage.ErrNotFound
	}
	r.tasks[in.ID] = in
	r.updates++
	return nil
}

func (r *memRepo) DeleteTask(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memRepo) ListTasks(_ context.Context, _ storage.TaskListFilter) ([]model.Task, error) {
	out := make([]model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, task)
	}
	return out, nil
}

func (r *memRepo) CreateHabit(_ context.Context, in model.Habit) error {
	r.habits[in.ID] = in
	return nil
}

func (r *memRepo) GetHabit(_ context.Context, id string) (model.Habit, error) {
	habit, ok := r.habits[id]
	if !ok {
		return model.Habit{}, storage.ErrNotFound
	}
	return habit, nil
}

func (r *memRepo) UpdateHabit(_ context.Context, in model.Habit) error {
	if _, ok := r.habits[in.ID]; !ok {
		return storage.ErrNotFound
	}
	r.habits[in.ID] = in
	return nil
}

func (r *memRepo) DeleteHabit(_ context.Context, id string) error {
	if _, ok := r.habits[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.habits, id)
	return nil
}

func (r *memRepo) ListHabits(_ context.Context) ([]model.Habit, error) {
	out := make([]model.Habit, 0, len(r.habits))
	for _, habit := range r.habits {
		out = append(out, habit)
	}
	return out, nil
}

func (r *memRepo) ToggleHabitDay(_ context.Context, habitID, day string) error {
	if _, ok := r.habits[habitID]; !ok {
		return storage.ErrNotFound
	}
	if r.days[habitID] == nil {
		r.days[habitID] = make(map[string]bool)
	}
	if r.days[habitID][day] {
		delete(r.days[habitID], day)
		return nil
	}
	r.days[habitID][day] = true
	return nil
}

func (r *memRepo) GetSetting(_ context.Context, key string) (string, error) {
	value, ok := r.settings[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (r *memRepo) SetSetting(_ context.Context, key, value string) error {
	r.settings[key] = value
	return nil
}

func newTestModel(repo storage.Repository) Model {
	return NewModelWithRepo(repo, reminder.NewEngine(reminder.DefaultSlotTimes()))
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	if m.CurrentView != ViewDashboard {
		t.Fatalf("expected default view %q, got %q", ViewDashboard, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.ActiveTaskAlert != nil || m.ActiveHabitAlert != nil {
		t.Fatal("expected no open alerts on a fresh model")
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestModel(newMemRepo())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	next := updated.(Model)
	if next.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	next = updated.(Model)
	if next.CurrentView != ViewHabits {
		t.Fatalf("expected habits view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := newTestModel(newMemRepo())
	updated, _ := m.Update(SwitchViewMsg{View: ViewSettings})
	next := updated.(Model)
	if next.CurrentView != ViewSettings {
		t.Fatalf("expected settings view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewSettings {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(newMemRepo())
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	errMsg := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: errMsg})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := newTestModel(newMemRepo())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := newTestModel(newMemRepo())
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "view: Dashboard") {
		t.Fatalf("expected view text in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
}

func TestTasksQuickAddWithKeyboard(t *testing.T) {
	repo := newMemRepo()
	m := newTestModel(repo)
	updated, _ := m.Update(SwitchViewMsg{View: ViewTasks})
	next := updated.(Model)

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("write tests")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if len(next.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(next.Tasks))
	}
	if next.Tasks[0].Title != "write tests" {
		t.Fatalf("unexpected title: %q", next.Tasks[0].Title)
	}
	if len(repo.tasks) != 1 {
		t.Fatalf("expected task persisted, repo has %d", len(repo.tasks))
	}
	if !next.Tasks[0].Reminders.HourBefore || !next.Tasks[0].Reminders.FifteenMinBefore {
		t.Fatalf("expected default reminder rules, got %+v", next.Tasks[0].Reminders)
	}
}

func TestTasksLoadedResetsCursor(t *testing.T) {
	m := newTestModel(newMemRepo())
	m.TasksPane.Cursor = 5
	updated, _ := m.Update(TasksLoadedMsg{Tasks: []model.Task{}})
	next := updated.(Model)
	if next.TasksPane.Cursor != 0 {
		t.Fatalf("expected cursor reset, got %d", next.TasksPane.Cursor)
	}
}

func TestPaletteAddAndDone(t *testing.T) {
	repo := newMemRepo()
	m := newTestModel(repo)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active")
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("add pay rent !urgent @home")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if len(next.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(next.Tasks))
	}
	task := next.Tasks[0]
	if task.Title != "pay rent" || task.Priority != model.PriorityUrgent || task.Category != model.CategoryHome {
		t.Fatalf("unexpected task from palette: %+v", task)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("done pay rent")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if !next.Tasks[0].Completed {
		t.Fatal("expected task completed via palette")
	}
	if !repo.tasks[task.ID].Completed {
		t.Fatal("expected completion persisted")
	}
}

func TestPaletteHabitCommand(t *testing.T) {
	repo := newMemRepo()
	m := newTestModel(repo)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("habit evening walk @evening")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if len(next.Habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(next.Habits))
	}
	if next.Habits[0].Slot != model.TimeEvening {
		t.Fatalf("unexpected slot: %q", next.Habits[0].Slot)
	}
	if len(repo.habits) != 1 {
		t.Fatal("expected habit persisted")
	}
}

func TestTaskNotesRenderInDetailPane(t *testing.T) {
	m := newTestModel(newMemRepo())
	task := model.Task{
		ID:          "task-1",
		Title:       "Prepare slides",
		Description: "notesmarker123",
		Priority:    model.PriorityRegular,
		Category:    model.CategoryWork,
		DueAt:       time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	updated, _ := m.Update(TasksLoadedMsg{Tasks: []model.Task{task}})
	next := updated.(Model)
	updated, _ = next.Update(SwitchViewMsg{View: ViewTasks})
	next = updated.(Model)

	out := next.View()
	if !strings.Contains(out, "Prepare slides") {
		t.Fatalf("expected task title in output: %q", out)
	}
	if !strings.Contains(out, "notesmarker123") {
		t.Fatalf("expected rendered notes in detail pane: %q", out)
	}
}

func TestListComponentsRenderInPanels(t *testing.T) {
	m := newTestModel(newMemRepo())
	updated, _ := m.Update(SwitchViewMsg{View: ViewTasks})
	next := updated.(Model)
	if !strings.Contains(next.View(), "Tasks (list)") {
		t.Fatal("expected task list component in tasks view")
	}

	updated, _ = next.Update(SwitchViewMsg{View: ViewHabits})
	next = updated.(Model)
	if !strings.Contains(next.View(), "Habits (list)") {
		t.Fatal("expected habit list component in habits view")
	}
}

func TestHelpPanelShowsBindings(t *testing.T) {
	m := newTestModel(newMemRepo())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	next := updated.(Model)
	if !next.HelpVisible {
		t.Fatal("expected help visible after toggle")
	}
	if out := next.View(); !strings.Contains(out, "help:") {
		t.Fatalf("expected help panel in output: %q", out)
	}
	if helpOut := next.renderHelpView(); !strings.Contains(helpOut, "quit app") {
		t.Fatalf("expected global bindings in help output: %q", helpOut)
	}
}

func TestPanelsAdvertiseOnlyBoundKeys(t *testing.T) {
	m := newTestModel(newMemRepo())
	tasksOut := m.renderTasksView()
	if strings.Contains(tasksOut, "[e]edit") {
		t.Fatalf("tasks panel advertises unbound edit key: %q", tasksOut)
	}
	if !strings.Contains(tasksOut, "[x]delete") {
		t.Fatalf("tasks panel missing delete action: %q", tasksOut)
	}
	habitsOut := m.renderHabitsView()
	if strings.Contains(habitsOut, "[a]add") {
		t.Fatalf("habits panel advertises unbound add key: %q", habitsOut)
	}
	if !strings.Contains(habitsOut, "[space]toggle-today") {
		t.Fatalf("habits panel missing toggle action: %q", habitsOut)
	}
}

func TestCountdownTickAdvancesClock(t *testing.T) {
	m := newTestModel(newMemRepo())
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	updated, cmd := m.Update(CountdownTickMsg{At: at})
	next := updated.(Model)
	if !next.Clock.Equal(at) {
		t.Fatalf("expected clock %v, got %v", at, next.Clock)
	}
	if cmd == nil {
		t.Fatal("expected next tick command")
	}
}
