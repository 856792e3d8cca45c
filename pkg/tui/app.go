package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sessionState int

const (
	formBrowserView sessionState = iota
	formEditorView
)

// StatusMsg updates the status line at the bottom of the screen.
type StatusMsg string

// SwitchViewMsg asks the app to switch the active view. formName is the
// file to open when switching to the editor.
type SwitchViewMsg struct {
	view     sessionState
	formName string
}

type App struct {
	state     sessionState
	browser   *FormBrowserModel
	editor    *EditorModel
	width     int
	height    int
	statusMsg string
}

func NewApp() *App {
	return &App{
		state:   formBrowserView,
		browser: NewFormBrowserModel(),
	}
}

// NewAppWithForm opens the editor directly on the named form, skipping
// the browser. Used by `formloom edit <name>`.
func NewAppWithForm(formName string) *App {
	a := NewApp()
	a.state = formEditorView
	a.editor = NewEditorModel()
	if err := a.editor.LoadForm(formName); err != nil {
		a.state = formBrowserView
		a.statusMsg = err.Error()
		a.editor = nil
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state == formEditorView && a.editor != nil {
		return a.editor.Init()
	}
	return a.browser.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.browser != nil {
			a.browser.SetSize(msg.Width, msg.Height-1)
		}
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height-1)
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case SwitchViewMsg:
		a.statusMsg = ""
		switch msg.view {
		case formBrowserView:
			a.state = formBrowserView
			if a.browser == nil {
				a.browser = NewFormBrowserModel()
			} else {
				a.browser.loadForms()
			}
			a.browser.SetSize(a.width, a.height-1)
			return a, a.browser.Init()
		case formEditorView:
			if a.editor == nil {
				a.editor = NewEditorModel()
			}
			if err := a.editor.LoadForm(msg.formName); err != nil {
				a.statusMsg = err.Error()
				return a, nil
			}
			a.state = formEditorView
			a.editor.SetSize(a.width, a.height-1)
			return a, a.editor.Init()
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case formBrowserView:
		var m tea.Model
		m, cmd = a.browser.Update(msg)
		if fb, ok := m.(*FormBrowserModel); ok {
			a.browser = fb
		}
	case formEditorView:
		var m tea.Model
		m, cmd = a.editor.Update(msg)
		if ed, ok := m.(*EditorModel); ok {
			a.editor = ed
		}
	}

	return a, cmd
}

func (a *App) View() string {
	var content string
	switch a.state {
	case formBrowserView:
		content = a.browser.View()
	case formEditorView:
		content = a.editor.View()
	}

	if a.statusMsg != "" {
		statusBar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			PaddingLeft(1).
			Render(a.statusMsg)
		return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
	}
	return content
}

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(msg)
	}
}

func switchViewCmd(view sessionState, formName string) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{view: view, formName: formName}
	}
}
