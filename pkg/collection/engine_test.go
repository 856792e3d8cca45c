package collection

import (
	"errors"
	"testing"

	"github.com/formloom/formloom-cli/pkg/factory"
	"github.com/formloom/formloom-cli/pkg/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	form := &models.Form{
		Name:     "test",
		Settings: models.DefaultFormSettings(),
	}
	// The default profile keys are only materialized through
	// ToggleProfileField; tests that need them toggle explicitly.
	form.Settings.ProfileFields = nil
	return NewEngine(form, factory.New())
}

func addFields(t *testing.T, e *Engine, types ...models.FieldType) []*models.Field {
	t.Helper()
	out := make([]*models.Field, len(types))
	for i, ft := range types {
		f, err := e.AddField(ft)
		if err != nil {
			t.Fatalf("AddField(%s) failed: %v", ft, err)
		}
		out[i] = f
	}
	return out
}

func itemIDs(e *Engine) []string {
	ids := make([]string, len(e.Items()))
	for i, it := range e.Items() {
		ids[i] = it.ItemID()
	}
	return ids
}

func TestAddFieldDefaults(t *testing.T) {
	e := newTestEngine(t)

	f, err := e.AddField(models.FieldShortText)
	if err != nil {
		t.Fatalf("AddField failed: %v", err)
	}

	if f.ID == "" {
		t.Error("expected a generated id")
	}
	if !f.Enabled {
		t.Error("new fields should be enabled")
	}
	if f.Required {
		t.Error("new fields should not be required")
	}
	if f.GroupID != "" {
		t.Errorf("expected no group, got %q", f.GroupID)
	}
	if f.DefaultLabel != "Untitled field 1" {
		t.Errorf("unexpected default label: %q", f.DefaultLabel)
	}
}

func TestAddFieldDefaultsIntoLastGroup(t *testing.T) {
	e := newTestEngine(t)
	e.CreateGroup("First")
	second := e.CreateGroup("Second")

	f, err := e.AddField(models.FieldShortText)
	if err != nil {
		t.Fatalf("AddField failed: %v", err)
	}

	if f.GroupID != second.ID {
		t.Errorf("new item should default into the last group, got %q", f.GroupID)
	}
}

func TestSingletonRejection(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.AddField(models.FieldSubscribe); err != nil {
		t.Fatalf("first subscribe field should be accepted: %v", err)
	}

	_, err := e.AddField(models.FieldSubscribe)
	if !errors.Is(err, models.ErrDuplicateSingleton) {
		t.Fatalf("expected ErrDuplicateSingleton, got %v", err)
	}

	count := 0
	for _, it := range e.Items() {
		if f, ok := models.AsField(it); ok && f.Type == models.FieldSubscribe {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one subscribe field, got %d", count)
	}
}

func TestSingletonRejectionSeesDisabledFields(t *testing.T) {
	e := newTestEngine(t)

	f, _ := e.AddField(models.FieldTerms)
	if err := e.Update(f.ID, func(it models.Item) {
		it.(*models.Field).Enabled = false
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if _, err := e.AddField(models.FieldTerms); !errors.Is(err, models.ErrDuplicateSingleton) {
		t.Errorf("disabled singleton should still block a second instance, got %v", err)
	}
}

func TestUpdatePreservesIdentity(t *testing.T) {
	e := newTestEngine(t)
	f := addFields(t, e, models.FieldShortText)[0]

	err := e.Update(f.ID, func(it models.Item) {
		fld := it.(*models.Field)
		fld.Label = "Your name"
		fld.ID = "hijacked"
	})
	if err == nil {
		t.Fatal("patch that changes the id should be rejected")
	}

	got, _ := models.AsField(e.Form().ItemByID(f.ID))
	if got == nil {
		t.Fatal("original item is gone")
	}
	if got.Label != "" {
		t.Errorf("rejected patch must not apply partially, label = %q", got.Label)
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	e := newTestEngine(t)
	addFields(t, e, models.FieldShortText)

	if err := e.Update("missing", func(it models.Item) {
		t.Error("mutator should not run for an unknown id")
	}); err != nil {
		t.Errorf("unknown id should be a silent no-op, got %v", err)
	}
}

func TestUpdateMatrixMinimums(t *testing.T) {
	e := newTestEngine(t)
	f := addFields(t, e, models.FieldRatingMatrix)[0]

	tests := []struct {
		name    string
		rows    []string
		levels  []string
		wantErr bool
	}{
		{"valid", []string{"a"}, []string{"1", "2"}, false},
		{"no rows", nil, []string{"1", "2"}, true},
		{"one level", []string{"a"}, []string{"1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Update(f.ID, func(it models.Item) {
				m := it.(*models.Field).Matrix
				m.Rows = tt.rows
				m.Levels = tt.levels
			})
			if tt.wantErr && !errors.Is(err, models.ErrMatrixMinimum) {
				t.Errorf("expected ErrMatrixMinimum, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDeleteRemovesItem(t *testing.T) {
	e := newTestEngine(t)
	fs := addFields(t, e, models.FieldShortText, models.FieldNumber)

	if !e.Delete(fs[0].ID) {
		t.Fatal("Delete returned false for a present id")
	}
	if len(e.Items()) != 1 {
		t.Fatalf("expected 1 item, got %d", len(e.Items()))
	}
	if e.Delete("missing") {
		t.Error("Delete of unknown id should report false")
	}
	if len(e.Items()) != 1 {
		t.Error("Delete of unknown id must not change the collection")
	}
}

func TestDuplicateProducesIndependentIdentity(t *testing.T) {
	e := newTestEngine(t)
	fs := addFields(t, e, models.FieldSingleChoice, models.FieldNumber)
	src := fs[0]

	clone, err := e.Duplicate(src.ID)
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if clone == nil {
		t.Fatal("Duplicate returned nil for a present id")
	}

	if clone.ItemID() == src.ID {
		t.Error("clone must get a fresh id")
	}

	// Inserted immediately after the source.
	ids := itemIDs(e)
	if ids[0] != src.ID || ids[1] != clone.ItemID() || ids[2] != fs[1].ID {
		t.Errorf("unexpected order after duplicate: %v", ids)
	}

	cf, _ := models.AsField(clone)
	if cf.Label != src.Label || cf.Type != src.Type || len(cf.Options) != len(src.Options) {
		t.Error("clone should copy field values")
	}

	// Mutating the clone leaves the original untouched.
	cf.Options[0].Label = "changed"
	if src.Options[0].Label == "changed" {
		t.Error("clone shares option storage with the source")
	}
}

func TestDuplicateSingletonRejected(t *testing.T) {
	e := newTestEngine(t)
	f, _ := e.AddField(models.FieldTerms)

	if _, err := e.Duplicate(f.ID); !errors.Is(err, models.ErrDuplicateSingleton) {
		t.Errorf("duplicating a singleton should be rejected, got %v", err)
	}
	if len(e.Items()) != 1 {
		t.Errorf("rejected duplicate must not insert, have %d items", len(e.Items()))
	}
}

func TestReorderItemsIsAMoveNotASwap(t *testing.T) {
	e := newTestEngine(t)
	fs := addFields(t, e, models.FieldShortText, models.FieldNumber, models.FieldEmail, models.FieldDate)
	a, b, c, d := fs[0].ID, fs[1].ID, fs[2].ID, fs[3].ID

	// Forward move: a to c's position.
	e.ReorderItems(a, c)
	if got, want := itemIDs(e), []string{b, c, a, d}; !equalIDs(got, want) {
		t.Errorf("forward move: got %v, want %v", got, want)
	}

	// Backward move: d to b's original neighborhood.
	e.ReorderItems(d, b)
	if got, want := itemIDs(e), []string{d, b, c, a}; !equalIDs(got, want) {
		t.Errorf("backward move: got %v, want %v", got, want)
	}
}

func TestReorderItemsNoops(t *testing.T) {
	e := newTestEngine(t)
	fs := addFields(t, e, models.FieldShortText, models.FieldNumber)
	before := itemIDs(e)

	e.ReorderItems(fs[0].ID, fs[0].ID)
	e.ReorderItems("missing", fs[1].ID)
	e.ReorderItems(fs[0].ID, "missing")

	if got := itemIDs(e); !equalIDs(got, before) {
		t.Errorf("no-op reorders changed order: %v", got)
	}
}

func TestFirstGroupRetroactivePaging(t *testing.T) {
	e := newTestEngine(t)
	addFields(t, e, models.FieldShortText, models.FieldNumber, models.FieldEmail)

	g := e.CreateGroup("")

	for _, it := range e.Items() {
		if it.GroupRef() != g.ID {
			t.Errorf("item %s not paged into first group", it.ItemID())
		}
	}
	if g.DefaultName != "Page 1" {
		t.Errorf("unexpected default name %q", g.DefaultName)
	}
}

func TestSecondGroupDoesNotClaimItems(t *testing.T) {
	e := newTestEngine(t)
	addFields(t, e, models.FieldShortText)
	first := e.CreateGroup("")
	e.CreateGroup("")

	if got := e.Items()[0].GroupRef(); got != first.ID {
		t.Errorf("existing items must stay in the first group, got %q", got)
	}
}

func TestDeleteGroupPreservesItems(t *testing.T) {
	e := newTestEngine(t)
	addFields(t, e, models.FieldShortText, models.FieldNumber)
	first := e.CreateGroup("")
	second := e.CreateGroup("")
	e.MoveItemToGroup(e.Items()[1].ItemID(), second.ID)

	if !e.DeleteGroup(second.ID) {
		t.Fatal("DeleteGroup returned false for a present id")
	}

	if len(e.Items()) != 2 {
		t.Fatalf("group deletion must never delete items, have %d", len(e.Items()))
	}
	if got := e.Items()[1].GroupRef(); got != first.ID {
		t.Errorf("members should re-target the first remaining group, got %q", got)
	}

	e.DeleteGroup(first.ID)
	for _, it := range e.Items() {
		if it.GroupRef() != "" {
			t.Errorf("with no groups left, items must be ungrouped, got %q", it.GroupRef())
		}
	}
}

func TestReorderGroups(t *testing.T) {
	e := newTestEngine(t)
	a := e.CreateGroup("a").ID
	b := e.CreateGroup("b").ID
	c := e.CreateGroup("c").ID

	e.ReorderGroups(a, c)

	got := make([]string, len(e.Groups()))
	for i := range e.Groups() {
		got[i] = e.Groups()[i].ID
	}
	if want := []string{b, c, a}; !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMoveItemToGroup(t *testing.T) {
	e := newTestEngine(t)
	f := addFields(t, e, models.FieldShortText)[0]
	g := e.CreateGroup("")

	if !e.MoveItemToGroup(f.ID, "") {
		t.Error("ungrouping should succeed")
	}
	if got := e.Form().ItemByID(f.ID).GroupRef(); got != "" {
		t.Errorf("expected ungrouped, got %q", got)
	}

	if e.MoveItemToGroup(f.ID, "no-such-group") {
		t.Error("unknown target group should be a no-op")
	}
	if !e.MoveItemToGroup(f.ID, g.ID) {
		t.Error("move to existing group should succeed")
	}

	// Position in the flat order is unchanged by group moves.
	if e.Items()[0].ItemID() != f.ID {
		t.Error("MoveItemToGroup must not reposition the item")
	}
}

func TestSaveValidatesLabels(t *testing.T) {
	e := newTestEngine(t)
	f := addFields(t, e, models.FieldShortText)[0]

	called := false
	if _, err := e.Save(func(*models.Form) error { called = true; return nil }); !errors.Is(err, models.ErrUnlabeledField) {
		t.Fatalf("expected ErrUnlabeledField, got %v", err)
	}
	if called {
		t.Error("persist must not run when validation fails")
	}

	if err := e.Update(f.ID, func(it models.Item) {
		it.(*models.Field).Label = "Your name"
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	n, err := e.Save(func(*models.Form) error { called = true; return nil })
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !called || n != 1 {
		t.Errorf("expected persist call and count 1, got called=%v n=%d", called, n)
	}
}

func TestSaveExemptions(t *testing.T) {
	e := newTestEngine(t)
	e.AddField(models.FieldTerms)
	if err := e.ToggleProfileField(models.ProfileEmail, true); err != nil {
		t.Fatalf("ToggleProfileField failed: %v", err)
	}
	b, _ := e.AddContentBlock(models.ContentDivider)
	_ = b

	if _, err := e.Save(nil); err != nil {
		t.Errorf("singletons, profile fields and content blocks need no label, got %v", err)
	}
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
