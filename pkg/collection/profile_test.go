package collection

import (
	"errors"
	"testing"

	"github.com/formloom/formloom-cli/pkg/models"
)

func profileFieldFor(e *Engine, key models.ProfileKey) *models.Field {
	for _, it := range e.Items() {
		if f, ok := models.AsField(it); ok && f.ProfileKey == key {
			return f
		}
	}
	return nil
}

func TestToggleProfileFieldOn(t *testing.T) {
	e := newTestEngine(t)

	if err := e.ToggleProfileField(models.ProfileEmail, true); err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}

	f := profileFieldFor(e, models.ProfileEmail)
	if f == nil {
		t.Fatal("email profile field was not materialized")
	}
	if f.Type != models.FieldEmail {
		t.Errorf("expected email field type, got %s", f.Type)
	}
	if !f.Required {
		t.Error("email profile field defaults to required")
	}
	if !e.Settings().HasProfileField(models.ProfileEmail) {
		t.Error("profileFields not updated")
	}

	// Toggling on twice is a no-op.
	if err := e.ToggleProfileField(models.ProfileEmail, true); err != nil {
		t.Fatalf("second toggle on errored: %v", err)
	}
	if len(e.Items()) != 1 {
		t.Errorf("expected one materialized field, got %d items", len(e.Items()))
	}
}

func TestContactMethodInvariant(t *testing.T) {
	e := newTestEngine(t)
	if err := e.ToggleProfileField(models.ProfileEmail, true); err != nil {
		t.Fatal(err)
	}

	// Removing the only contact method is rejected, state unchanged.
	err := e.ToggleProfileField(models.ProfileEmail, false)
	if !errors.Is(err, models.ErrLastContactMethod) {
		t.Fatalf("expected ErrLastContactMethod, got %v", err)
	}
	if !e.Settings().HasProfileField(models.ProfileEmail) || profileFieldFor(e, models.ProfileEmail) == nil {
		t.Fatal("rejected toggle must leave state unchanged")
	}

	// With a second contact method present, removal succeeds.
	if err := e.ToggleProfileField(models.ProfilePhone, true); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleProfileField(models.ProfileEmail, false); err != nil {
		t.Fatalf("toggle off with phone present failed: %v", err)
	}
	if profileFieldFor(e, models.ProfileEmail) != nil {
		t.Error("email field should be deleted")
	}
	if e.Settings().HasProfileField(models.ProfileEmail) {
		t.Error("email key should be removed from profileFields")
	}
	if profileFieldFor(e, models.ProfilePhone) == nil {
		t.Error("phone field should remain")
	}
}

func TestProfileFieldInsertedAmongProfileFields(t *testing.T) {
	e := newTestEngine(t)
	addFields(t, e, models.FieldShortText, models.FieldNumber)

	if err := e.ToggleProfileField(models.ProfileName, true); err != nil {
		t.Fatal(err)
	}
	// With no profile fields yet, the first one leads the collection.
	if f, _ := models.AsField(e.Items()[0]); f == nil || f.ProfileKey != models.ProfileName {
		t.Fatalf("first profile field should be inserted at the head, order %v", itemIDs(e))
	}

	if err := e.ToggleProfileField(models.ProfileEmail, true); err != nil {
		t.Fatal(err)
	}
	// The next one goes right after the existing profile block.
	if f, _ := models.AsField(e.Items()[1]); f == nil || f.ProfileKey != models.ProfileEmail {
		t.Fatalf("second profile field should follow the first, order %v", itemIDs(e))
	}
}

func TestGenderProfileFieldSeedsOptions(t *testing.T) {
	e := newTestEngine(t)
	if err := e.ToggleProfileField(models.ProfileEmail, true); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleProfileField(models.ProfileGender, true); err != nil {
		t.Fatal(err)
	}

	f := profileFieldFor(e, models.ProfileGender)
	if f == nil {
		t.Fatal("gender field missing")
	}
	if len(f.Options) != 3 {
		t.Errorf("gender seeds three options, got %d", len(f.Options))
	}
	if f.Required {
		t.Error("gender does not default to required")
	}
}
