package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/formloom/formloom-cli/pkg/collection"
	"github.com/formloom/formloom-cli/pkg/factory"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

type browserMode int

const (
	browserModeList browserMode = iota
	browserModeNaming
	browserModeRenaming
)

// FormBrowserModel lists the forms in the project and lets the user
// open, create, rename, or delete them.
type FormBrowserModel struct {
	forms        []string
	cursor       int
	mode         browserMode
	nameInput    textinput.Model
	renameTarget string
	confirm      *ConfirmationModel
	width        int
	height       int
	err          error
}

func NewFormBrowserModel() *FormBrowserModel {
	ti := textinput.New()
	ti.Placeholder = "form name"
	ti.CharLimit = 64

	m := &FormBrowserModel{
		nameInput: ti,
		confirm:   NewConfirmation(),
	}
	m.loadForms()
	return m
}

func (m *FormBrowserModel) loadForms() {
	forms, err := files.ListForms()
	if err != nil {
		m.err = err
		return
	}
	m.forms = forms
	if m.cursor >= len(m.forms) {
		m.cursor = len(m.forms) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *FormBrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.confirm.SetWidth(width)
}

func (m *FormBrowserModel) Init() tea.Cmd {
	return nil
}

func (m *FormBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirm.Active() {
		return m, m.confirm.Update(keyMsg)
	}

	if m.mode == browserModeNaming || m.mode == browserModeRenaming {
		return m.updateNaming(keyMsg)
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.forms)-1 {
			m.cursor++
		}

	case "enter":
		if m.cursor < len(m.forms) {
			return m, switchViewCmd(formEditorView, m.forms[m.cursor])
		}

	case "n":
		m.mode = browserModeNaming
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink

	case "r":
		if m.cursor < len(m.forms) {
			m.mode = browserModeRenaming
			m.renameTarget = m.forms[m.cursor]
			m.nameInput.SetValue(strings.TrimSuffix(m.renameTarget, ".yaml"))
			m.nameInput.Focus()
			return m, textinput.Blink
		}

	case "d":
		if m.cursor < len(m.forms) {
			target := m.forms[m.cursor]
			m.confirm.Show(ConfirmationConfig{
				Message:     fmt.Sprintf("Delete form '%s'?", strings.TrimSuffix(target, ".yaml")),
				Warning:     "This cannot be undone.",
				Destructive: true,
			}, func() tea.Cmd {
				if err := files.DeleteForm(target); err != nil {
					return statusCmd(err.Error())
				}
				m.loadForms()
				return statusCmd("Deleted " + target)
			}, nil)
		}
	}

	return m, nil
}

func (m *FormBrowserModel) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = browserModeList
		m.nameInput.Blur()
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		mode := m.mode
		m.mode = browserModeList
		m.nameInput.Blur()
		if mode == browserModeRenaming {
			if err := files.RenameForm(m.renameTarget, name); err != nil {
				return m, statusCmd(err.Error())
			}
			m.loadForms()
			return m, statusCmd("Renamed to " + name)
		}
		return m, m.createForm(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *FormBrowserModel) createForm(name string) tea.Cmd {
	path := name + ".yaml"
	for _, existing := range m.forms {
		if existing == path {
			return statusCmd(fmt.Sprintf("Form '%s' already exists", name))
		}
	}

	form := &models.Form{
		Name:     name,
		Path:     path,
		Settings: models.DefaultFormSettings(),
	}

	// Materialize the default profile keys as fields so the settings and
	// the collection start in sync.
	defaults := form.Settings.ProfileFields
	form.Settings.ProfileFields = nil
	engine := collection.NewEngine(form, factory.New())
	for _, key := range defaults {
		if err := engine.ToggleProfileField(key, true); err != nil {
			return statusCmd(err.Error())
		}
	}

	if err := files.WriteForm(form); err != nil {
		return statusCmd(err.Error())
	}
	m.loadForms()
	return switchViewCmd(formEditorView, path)
}

func (m *FormBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(renderHeader(m.width, "Forms"))
	b.WriteString("\n\n")

	if m.confirm.Active() {
		b.WriteString(m.confirm.View())
		return b.String()
	}

	if m.mode == browserModeNaming || m.mode == browserModeRenaming {
		label := "New form name:"
		if m.mode == browserModeRenaming {
			label = "Rename to:"
		}
		b.WriteString(ContentPaddingStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(ContentPaddingStyle.Render(InputStyle.Render(m.nameInput.View())))
		b.WriteString("\n\n")
		b.WriteString(ContentPaddingStyle.Render(HelpStyle.Render("enter confirm • esc cancel")))
		return b.String()
	}

	if len(m.forms) == 0 {
		b.WriteString(ContentPaddingStyle.Render(DimStyle.Render("No forms yet. Press 'n' to create one.")))
	} else {
		for i, form := range m.forms {
			name := strings.TrimSuffix(form, ".yaml")
			line := "  " + name
			if i == m.cursor {
				line = SelectedStyle.Render("> " + name)
			} else {
				line = NormalStyle.Render(line)
			}
			b.WriteString(ContentPaddingStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(ContentPaddingStyle.Render(HelpStyle.Render("enter edit • n new • r rename • d delete • q quit")))

	if m.height > 0 {
		content := b.String()
		lines := strings.Count(content, "\n") + 1
		if pad := m.height - lines; pad > 0 {
			content += strings.Repeat("\n", pad)
		}
		return content
	}
	return b.String()
}

func renderHeader(width int, title string) string {
	logo := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Render("FORMLOOM")

	titleRendered := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Render(title)

	gap := width - lipgloss.Width(titleRendered) - lipgloss.Width(logo) - 2
	if gap < 1 {
		gap = 1
	}

	return ContentPaddingStyle.Render(
		titleRendered + strings.Repeat(" ", gap) + logo,
	)
}
