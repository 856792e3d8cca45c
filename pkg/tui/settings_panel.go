package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/formloom/formloom-cli/pkg/collection"
)

type settingsEntry int

const (
	settingSubmitText settingsEntry = iota
	settingShowNumbers
	settingCustomColors
	settingButtonBg
	settingButtonText
	settingButtonHoverBg
	settingButtonHoverText
	settingsEntryCount
)

var settingsLabels = map[settingsEntry]string{
	settingSubmitText:      "Submit button text",
	settingShowNumbers:     "Show question numbers",
	settingCustomColors:    "Custom button colors",
	settingButtonBg:        "Button background",
	settingButtonText:      "Button text color",
	settingButtonHoverBg:   "Hover background",
	settingButtonHoverText: "Hover text color",
}

// SettingsPanelModel edits the per-form settings.
type SettingsPanelModel struct {
	engine  *collection.Engine
	cursor  settingsEntry
	editing bool
	input   textinput.Model
	changed bool
}

func NewSettingsPanelModel(engine *collection.Engine) *SettingsPanelModel {
	ti := textinput.New()
	ti.CharLimit = 64
	return &SettingsPanelModel{engine: engine, input: ti}
}

// Changed reports and clears the mutation flag.
func (m *SettingsPanelModel) Changed() bool {
	c := m.changed
	m.changed = false
	return c
}

func (m *SettingsPanelModel) Update(msg tea.KeyMsg) tea.Cmd {
	if m.editing {
		switch msg.String() {
		case "esc":
			m.editing = false
			m.input.Blur()
			return nil
		case "enter":
			m.applyEdit(strings.TrimSpace(m.input.Value()))
			m.editing = false
			m.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < settingsEntryCount-1 {
			m.cursor++
		}

	case "enter", " ":
		return m.activate()
	}
	return nil
}

func (m *SettingsPanelModel) activate() tea.Cmd {
	s := m.engine.Settings()
	switch m.cursor {
	case settingShowNumbers:
		s.ShowQuestionNumbers = !s.ShowQuestionNumbers
		m.changed = true
		return nil

	case settingCustomColors:
		s.EnableCustomButtonColor = !s.EnableCustomButtonColor
		m.changed = true
		return nil
	}

	// Remaining entries are text values.
	m.editing = true
	m.input.SetValue(m.currentValue())
	m.input.Focus()
	return textinput.Blink
}

func (m *SettingsPanelModel) currentValue() string {
	s := m.engine.Settings()
	switch m.cursor {
	case settingSubmitText:
		return s.SubmitButtonText
	case settingButtonBg:
		return s.ButtonBgColor
	case settingButtonText:
		return s.ButtonTextColor
	case settingButtonHoverBg:
		return s.ButtonHoverBgColor
	case settingButtonHoverText:
		return s.ButtonHoverTextColor
	}
	return ""
}

func (m *SettingsPanelModel) applyEdit(value string) {
	s := m.engine.Settings()
	switch m.cursor {
	case settingSubmitText:
		if value == "" {
			return
		}
		s.SubmitButtonText = value
	case settingButtonBg:
		s.ButtonBgColor = value
	case settingButtonText:
		s.ButtonTextColor = value
	case settingButtonHoverBg:
		s.ButtonHoverBgColor = value
	case settingButtonHoverText:
		s.ButtonHoverTextColor = value
	}
	m.changed = true
}

func (m *SettingsPanelModel) View(width int) string {
	s := m.engine.Settings()
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Form settings"))

	for entry := settingsEntry(0); entry < settingsEntryCount; entry++ {
		b.WriteString("\n")

		// Color entries are dimmed while custom colors are off.
		colorEntry := entry >= settingButtonBg
		var value string
		switch entry {
		case settingSubmitText:
			value = s.SubmitButtonText
		case settingShowNumbers:
			value = onOff(s.ShowQuestionNumbers)
		case settingCustomColors:
			value = onOff(s.EnableCustomButtonColor)
		case settingButtonBg:
			value = s.ButtonBgColor
		case settingButtonText:
			value = s.ButtonTextColor
		case settingButtonHoverBg:
			value = s.ButtonHoverBgColor
		case settingButtonHoverText:
			value = s.ButtonHoverTextColor
		}

		if m.editing && entry == m.cursor {
			b.WriteString(SelectedStyle.Render("> " + settingsLabels[entry] + ": "))
			b.WriteString(m.input.View())
			continue
		}

		line := "  " + settingsLabels[entry] + ": " + value
		switch {
		case entry == m.cursor:
			b.WriteString(SelectedStyle.Render(truncate("> "+settingsLabels[entry]+": "+value, width)))
		case colorEntry && !s.EnableCustomButtonColor:
			b.WriteString(DimStyle.Render(truncate(line, width)))
		default:
			b.WriteString(NormalStyle.Render(truncate(line, width)))
		}
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
