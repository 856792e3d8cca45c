package tui

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

func setupBrowserProject(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tempDir)

	if err := files.InitProjectStructure(); err != nil {
		t.Fatal(err)
	}
}

func TestBrowserListsForms(t *testing.T) {
	setupBrowserProject(t)

	for _, name := range []string{"alpha", "beta"} {
		form := &models.Form{Name: name, Path: name + ".yaml", Settings: models.DefaultFormSettings()}
		if err := files.WriteForm(form); err != nil {
			t.Fatal(err)
		}
	}

	m := NewFormBrowserModel()
	if len(m.forms) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(m.forms))
	}
}

func TestBrowserEnterOpensEditor(t *testing.T) {
	setupBrowserProject(t)
	form := &models.Form{Name: "alpha", Path: "alpha.yaml", Settings: models.DefaultFormSettings()}
	if err := files.WriteForm(form); err != nil {
		t.Fatal(err)
	}

	m := NewFormBrowserModel()
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should emit a switch command")
	}
	msg, ok := cmd().(SwitchViewMsg)
	if !ok {
		t.Fatalf("expected SwitchViewMsg, got %T", cmd())
	}
	if msg.view != formEditorView || msg.formName != "alpha.yaml" {
		t.Errorf("unexpected switch message %+v", msg)
	}
}

func TestBrowserCreateSeedsProfileFields(t *testing.T) {
	setupBrowserProject(t)

	m := NewFormBrowserModel()
	m.Update(key("n"))
	if m.mode != browserModeNaming {
		t.Fatal("n should open the naming prompt")
	}
	for _, r := range "signup" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should create the form")
	}
	if _, ok := cmd().(SwitchViewMsg); !ok {
		t.Fatalf("expected SwitchViewMsg, got %T", cmd())
	}

	saved, err := files.ReadForm("signup.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Settings.ProfileFields) != 2 {
		t.Errorf("new form should start with name and email, got %v", saved.Settings.ProfileFields)
	}
	if len(saved.Items) != 2 {
		t.Errorf("profile fields should be materialized, got %d items", len(saved.Items))
	}
}

func TestBrowserDeleteNeedsConfirmation(t *testing.T) {
	setupBrowserProject(t)
	form := &models.Form{Name: "alpha", Path: "alpha.yaml", Settings: models.DefaultFormSettings()}
	if err := files.WriteForm(form); err != nil {
		t.Fatal(err)
	}

	m := NewFormBrowserModel()
	m.Update(key("d"))
	if !m.confirm.Active() {
		t.Fatal("delete should prompt for confirmation")
	}

	m.Update(key("n"))
	if len(m.forms) != 1 {
		t.Error("declining should keep the form")
	}

	m.Update(key("d"))
	m.Update(key("y"))
	if len(m.forms) != 0 {
		t.Error("confirming should delete the form")
	}
}

func TestAppSwitchesViews(t *testing.T) {
	setupBrowserProject(t)
	form := &models.Form{Name: "alpha", Path: "alpha.yaml", Settings: models.DefaultFormSettings()}
	if err := files.WriteForm(form); err != nil {
		t.Fatal(err)
	}

	app := NewApp()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	app.Update(SwitchViewMsg{view: formEditorView, formName: "alpha.yaml"})
	if app.state != formEditorView {
		t.Fatal("app should be in the editor view")
	}

	app.Update(SwitchViewMsg{view: formBrowserView})
	if app.state != formBrowserView {
		t.Fatal("app should be back in the browser view")
	}
}

func TestAppStatusMessage(t *testing.T) {
	setupBrowserProject(t)

	app := NewApp()
	app.Update(StatusMsg("saved"))
	if app.statusMsg != "saved" {
		t.Errorf("status = %q, want %q", app.statusMsg, "saved")
	}
}
