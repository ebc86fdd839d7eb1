package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/focusflow-app/focusflow/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Dashboard, Action: "switch to Dashboard"},
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Habits, Action: "switch to Habits"},
		{Key: m.Keys.Settings, Action: "switch to Settings"},
		{Key: "/", Action: "open command palette"},
		{Key: "S", Action: "refresh from store"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "enter", Action: "capture task"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "c", Action: "toggle complete"},
			{Key: "x", Action: "delete task"},
			{Key: "d", Action: "show/hide done"},
		}
	case ViewHabits:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle today"},
			{Key: "x", Action: "delete habit"},
		}
	case ViewSettings:
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "enter", Action: "save times"},
			{Key: "esc", Action: "back to dashboard"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
