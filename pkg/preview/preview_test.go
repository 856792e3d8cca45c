package preview

import (
	"strings"
	"testing"

	"github.com/formloom/formloom-cli/pkg/collection"
	"github.com/formloom/formloom-cli/pkg/factory"
	"github.com/formloom/formloom-cli/pkg/models"
)

func buildForm(t *testing.T) (*models.Form, *collection.Engine) {
	t.Helper()
	form := &models.Form{Name: "signup", Settings: models.DefaultFormSettings()}
	form.Settings.ProfileFields = nil
	return form, collection.NewEngine(form, factory.New())
}

func label(t *testing.T, e *collection.Engine, f *models.Field, s string) {
	t.Helper()
	if err := e.Update(f.ID, func(it models.Item) {
		it.(*models.Field).Label = s
	}); err != nil {
		t.Fatal(err)
	}
}

func TestRenderFormBasics(t *testing.T) {
	form, e := buildForm(t)
	f, _ := e.AddField(models.FieldShortText)
	label(t, e, f, "Your name")
	e.Update(f.ID, func(it models.Item) {
		it.(*models.Field).Required = true
	})

	out, err := RenderForm(form, Options{})
	if err != nil {
		t.Fatalf("RenderForm failed: %v", err)
	}

	for _, want := range []string{"# signup", "Your name *", "[ Register now ]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHonorsEnabledFilter(t *testing.T) {
	form, e := buildForm(t)
	f1, _ := e.AddField(models.FieldShortText)
	f2, _ := e.AddField(models.FieldShortText)
	label(t, e, f1, "Visible")
	label(t, e, f2, "Hidden")
	e.Update(f2.ID, func(it models.Item) {
		it.(*models.Field).Enabled = false
	})

	out, err := RenderForm(form, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "Visible") {
		t.Error("enabled field missing from preview")
	}
	if strings.Contains(out, "Hidden") {
		t.Error("disabled field must not render")
	}
}

func TestRenderNumbersAndPages(t *testing.T) {
	form, e := buildForm(t)
	f1, _ := e.AddField(models.FieldShortText)
	label(t, e, f1, "First")
	e.CreateGroup("Basics")
	e.CreateGroup("Details")
	f2, _ := e.AddField(models.FieldNumber)
	label(t, e, f2, "Second")
	e.Settings().ShowQuestionNumbers = true

	out, err := RenderForm(form, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "## Basics") || !strings.Contains(out, "## Details") {
		t.Errorf("page headings missing:\n%s", out)
	}
	if !strings.Contains(out, "1. First") || !strings.Contains(out, "2. Second") {
		t.Errorf("question numbers missing:\n%s", out)
	}
	if strings.Index(out, "## Basics") > strings.Index(out, "## Details") {
		t.Error("pages render in group order")
	}
}

func TestRenderChoiceOptions(t *testing.T) {
	form, e := buildForm(t)
	f, _ := e.AddField(models.FieldSingleChoice)
	label(t, e, f, "Pick one")
	e.Update(f.ID, func(it models.Item) {
		fld := it.(*models.Field)
		fld.Options = append(fld.Options, factory.NewOption("Option 2"))
		fld.Choice.AllowOther = true
	})

	out, err := RenderForm(form, Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"( ) Option 1", "( ) Option 2", "Other:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNilForm(t *testing.T) {
	if _, err := RenderForm(nil, Options{}); err == nil {
		t.Error("nil form should error")
	}
}
