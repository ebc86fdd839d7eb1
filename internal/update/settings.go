package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusflow-app/focusflow/internal/reminder"
	"github.com/focusflow-app/focusflow/internal/storage"
)

const (
	settingKeyMorning = "habit_time_morning"
	settingKeyNoon    = "habit_time_noon"
	settingKeyEvening = "habit_time_evening"
)

func (m *Model) seedSettingsFields() {
	slots := reminder.DefaultSlotTimes()
	if m.Engine != nil {
		slots = m.Engine.SlotTimes()
	}
	m.Settings.Fields = [3]string{slots.Morning.String(), slots.Noon.String(), slots.Evening.String()}
	m.Settings.FieldIndex = 0
	m.Settings.Err = ""
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "tab":
		m.Settings.FieldIndex = (m.Settings.FieldIndex + 1) % 3
		return m
	case "backspace":
		field := m.Settings.Fields[m.Settings.FieldIndex]
		if field != "" {
			m.Settings.Fields[m.Settings.FieldIndex] = field[:len(field)-1]
		}
		return m
	case "enter":
		return m.saveSlotTimes()
	case "esc":
		m.CurrentView = ViewDashboard
		m.seedSettingsFields()
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.Settings.Fields[m.Settings.FieldIndex] += string(msg.Runes)
		m.Settings.Err = ""
	}
	return m
}

func (m Model) saveSlotTimes() Model {
	var parsed [3]reminder.ClockTime
	for i, raw := range m.Settings.Fields {
		ct, err := reminder.ParseClockTime(raw)
		if err != nil {
			m.Settings.Err = err.Error()
			m.Settings.FieldIndex = i
			return m
		}
		parsed[i] = ct
	}
	slots := reminder.SlotTimes{Morning: parsed[0], Noon: parsed[1], Evening: parsed[2]}
	if m.Engine != nil {
		m.Engine.SetSlotTimes(slots)
	}
	if m.Repo != nil {
		ctx := context.Background()
		pairs := map[string]string{
			settingKeyMorning: slots.Morning.String(),
			settingKeyNoon:    slots.Noon.String(),
			settingKeyEvening: slots.Evening.String(),
		}
		for key, value := range pairs {
			if err := m.Repo.SetSetting(ctx, key, value); err != nil {
				m.LastError = err
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m
			}
		}
	}
	m.Settings.Err = ""
	m.Status = StatusBar{Text: "habit reminder times saved"}
	return m
}

// LoadSlotTimes reads the persisted habit reminder times, falling back to
// the defaults for any key that is missing or malformed.
func LoadSlotTimes(ctx context.Context, repo storage.Repository) reminder.SlotTimes {
	slots := reminder.DefaultSlotTimes()
	if repo == nil {
		return slots
	}
	assign := map[string]*reminder.ClockTime{
		settingKeyMorning: &slots.Morning,
		settingKeyNoon:    &slots.Noon,
		settingKeyEvening: &slots.Evening,
	}
	for key, target := range assign {
		raw, err := repo.GetSetting(ctx, key)
		if err != nil || strings.TrimSpace(raw) == "" {
			continue
		}
		if ct, parseErr := reminder.ParseClockTime(raw); parseErr == nil {
			*target = ct
		}
	}
	return slots
}
