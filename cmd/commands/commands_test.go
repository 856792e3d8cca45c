package commands

import (
	"os"
	"testing"

	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

func setupProject(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tempDir)

	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("Failed to initialize project structure: %v", err)
	}
}

func TestCreateCommand(t *testing.T) {
	setupProject(t)

	cmd := NewCreateCommand()
	cmd.SetArgs([]string{"signup"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	form, err := files.ReadForm("signup.yaml")
	if err != nil {
		t.Fatalf("created form not readable: %v", err)
	}
	if form.Name != "signup" {
		t.Errorf("unexpected form name %q", form.Name)
	}

	// Default profile keys are materialized as fields.
	if len(form.Settings.ProfileFields) != 2 {
		t.Errorf("expected name and email toggled on, got %v", form.Settings.ProfileFields)
	}
	profileFields := 0
	for _, it := range form.Items {
		if f, ok := models.AsField(it); ok && f.ProfileKey != "" {
			profileFields++
		}
	}
	if profileFields != 2 {
		t.Errorf("expected 2 materialized profile fields, got %d", profileFields)
	}
}

func TestCreateCommandRejectsDuplicate(t *testing.T) {
	setupProject(t)

	cmd := NewCreateCommand()
	cmd.SetArgs([]string{"signup"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	dup := NewCreateCommand()
	dup.SetArgs([]string{"signup"})
	dup.SilenceErrors = true
	dup.SilenceUsage = true
	if err := dup.Execute(); err == nil {
		t.Error("creating an existing form should fail")
	}
}

func TestCreateCommandRejectsBadName(t *testing.T) {
	setupProject(t)

	cmd := NewCreateCommand()
	cmd.SetArgs([]string{"../escape"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Error("path-escaping names must be rejected")
	}
}

func TestDeleteCommandForce(t *testing.T) {
	setupProject(t)

	create := NewCreateCommand()
	create.SetArgs([]string{"doomed"})
	if err := create.Execute(); err != nil {
		t.Fatal(err)
	}

	del := NewDeleteCommand()
	del.SetArgs([]string{"doomed", "--force"})
	if err := del.Execute(); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := files.ReadForm("doomed.yaml"); err == nil {
		t.Error("form should be gone")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	setupProject(t)

	set := NewSettingsCommand()
	set.SetArgs([]string{"set", "ui.hide_disabled", "true"})
	if err := set.Execute(); err != nil {
		t.Fatalf("settings set failed: %v", err)
	}

	settings, err := files.ReadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !settings.UI.HideDisabled {
		t.Error("setting was not persisted")
	}

	bad := NewSettingsCommand()
	bad.SetArgs([]string{"set", "ui.hide_disabled", "banana"})
	bad.SilenceErrors = true
	bad.SilenceUsage = true
	if err := bad.Execute(); err == nil {
		t.Error("non-boolean value should be rejected")
	}
}
