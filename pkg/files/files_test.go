package files

import (
	"os"
	"testing"

	"github.com/formloom/formloom-cli/pkg/models"
)

func setupProject(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tempDir)

	if err := InitProjectStructure(); err != nil {
		t.Fatalf("Failed to initialize project structure: %v", err)
	}
}

func sampleForm(name string) *models.Form {
	return &models.Form{
		Name: name,
		Items: models.ItemList{
			&models.Field{ID: "f1", Type: models.FieldShortText, Label: "Name", Enabled: true},
			&models.ContentBlock{ID: "b1", Style: models.ContentSpacer, Enabled: true, SpacerSize: models.SpacerSmall},
		},
		Settings: models.DefaultFormSettings(),
	}
}

func TestWriteAndReadForm(t *testing.T) {
	setupProject(t)

	form := sampleForm("signup")
	if err := WriteForm(form); err != nil {
		t.Fatalf("WriteForm failed: %v", err)
	}
	if form.Path != "signup.yaml" {
		t.Errorf("expected derived path, got %q", form.Path)
	}

	got, err := ReadForm("signup.yaml")
	if err != nil {
		t.Fatalf("ReadForm failed: %v", err)
	}
	if got.Name != "signup" || len(got.Items) != 2 {
		t.Errorf("form did not round-trip: name=%q items=%d", got.Name, len(got.Items))
	}
	if _, ok := models.AsField(got.Items[0]); !ok {
		t.Error("field lost its kind through persistence")
	}
	if _, ok := models.AsContentBlock(got.Items[1]); !ok {
		t.Error("content block lost its kind through persistence")
	}
}

func TestListForms(t *testing.T) {
	setupProject(t)

	forms, err := ListForms()
	if err != nil {
		t.Fatalf("ListForms failed: %v", err)
	}
	if len(forms) != 0 {
		t.Errorf("expected empty project, got %v", forms)
	}

	WriteForm(sampleForm("one"))
	WriteForm(sampleForm("two"))

	forms, err = ListForms()
	if err != nil {
		t.Fatalf("ListForms failed: %v", err)
	}
	if len(forms) != 2 {
		t.Errorf("expected 2 forms, got %v", forms)
	}
}

func TestDeleteForm(t *testing.T) {
	setupProject(t)
	WriteForm(sampleForm("doomed"))

	if err := DeleteForm("doomed.yaml"); err != nil {
		t.Fatalf("DeleteForm failed: %v", err)
	}
	if _, err := ReadForm("doomed.yaml"); err == nil {
		t.Error("deleted form should not be readable")
	}
	if err := DeleteForm("missing.yaml"); err == nil {
		t.Error("deleting a missing form should error")
	}
}

func TestRenameForm(t *testing.T) {
	setupProject(t)
	WriteForm(sampleForm("old"))

	if err := RenameForm("old.yaml", "new"); err != nil {
		t.Fatalf("RenameForm failed: %v", err)
	}

	got, err := ReadForm("new.yaml")
	if err != nil {
		t.Fatalf("renamed form not readable: %v", err)
	}
	if got.Name != "new" {
		t.Errorf("name not updated, got %q", got.Name)
	}
	if _, err := ReadForm("old.yaml"); err == nil {
		t.Error("old file should be gone")
	}
}

func TestRenameFormCollision(t *testing.T) {
	setupProject(t)
	WriteForm(sampleForm("a"))
	WriteForm(sampleForm("b"))

	if err := RenameForm("a.yaml", "b"); err == nil {
		t.Error("renaming onto an existing form should fail")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	setupProject(t)

	settings, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if settings.Output.DefaultFilename != "FORM.md" {
		t.Errorf("expected defaults when no file exists, got %+v", settings)
	}

	settings.UI.HideDisabled = true
	if err := WriteSettings(settings); err != nil {
		t.Fatalf("WriteSettings failed: %v", err)
	}

	got, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if !got.UI.HideDisabled {
		t.Error("settings did not round-trip")
	}
}
