package tui

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/formloom/formloom-cli/pkg/collection"
	"github.com/formloom/formloom-cli/pkg/drag"
	"github.com/formloom/formloom-cli/pkg/factory"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

// newTestEditor builds a project with one saved form (one group, three
// short text fields) and returns the editor loaded on it plus the field
// ids in order.
func newTestEditor(t *testing.T) (*EditorModel, []string) {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tempDir)

	if err := files.InitProjectStructure(); err != nil {
		t.Fatal(err)
	}

	form := &models.Form{
		Name:     "test",
		Path:     "test.yaml",
		Settings: models.DefaultFormSettings(),
	}
	form.Settings.ProfileFields = nil

	engine := collection.NewEngine(form, factory.New())
	engine.CreateGroup("Page one")

	var ids []string
	for i := 0; i < 3; i++ {
		f, err := engine.AddField(models.FieldShortText)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, f.ID)
	}

	if err := files.WriteForm(form); err != nil {
		t.Fatal(err)
	}

	ed := NewEditorModel()
	if err := ed.LoadForm("test.yaml"); err != nil {
		t.Fatal(err)
	}
	ed.SetSize(120, 40)
	return ed, ids
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	case "shift+up":
		return tea.KeyMsg{Type: tea.KeyShiftUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func itemOrder(ed *EditorModel) []string {
	var order []string
	for _, it := range ed.engine.Items() {
		order = append(order, it.ItemID())
	}
	return order
}

func TestEditorRowsIncludeGroupHeader(t *testing.T) {
	ed, ids := newTestEditor(t)

	if len(ed.rows) != 4 {
		t.Fatalf("expected header + 3 item rows, got %d", len(ed.rows))
	}
	if ed.rows[0].kind != rowGroupHeader {
		t.Errorf("first row should be the group header")
	}
	for i, id := range ids {
		if ed.rows[i+1].id != id {
			t.Errorf("row %d = %s, want %s", i+1, ed.rows[i+1].id, id)
		}
	}
}

func TestEditorKeyboardReorder(t *testing.T) {
	ed, ids := newTestEditor(t)

	ed.cursor = 1 // first item
	ed.Update(key("shift+down"))

	got := itemOrder(ed)
	want := []string{ids[1], ids[0], ids[2]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after move down = %v, want %v", got, want)
		}
	}

	// Cursor follows the moved item.
	if row := ed.currentRow(); row == nil || row.id != ids[0] {
		t.Error("cursor should stay on the moved item")
	}

	if !ed.dirty {
		t.Error("reorder should mark the form dirty")
	}
}

func TestEditorToggleEnabled(t *testing.T) {
	ed, ids := newTestEditor(t)

	ed.cursor = 1
	ed.Update(key(" "))

	it := ed.engine.Form().ItemByID(ids[0])
	if it.IsEnabled() {
		t.Error("space should disable the selected item")
	}

	ed.Update(key(" "))
	if !ed.engine.Form().ItemByID(ids[0]).IsEnabled() {
		t.Error("second toggle should re-enable the item")
	}
}

func TestEditorEnterExpandsItem(t *testing.T) {
	ed, ids := newTestEditor(t)

	ed.cursor = 1
	ed.Update(key("enter"))

	if ed.expandedID != ids[0] {
		t.Fatalf("expected %s expanded, got %q", ids[0], ed.expandedID)
	}
	if ed.itemEditor == nil {
		t.Fatal("item editor should be open")
	}

	ed.Update(key("esc"))
	if ed.expandedID != "" || ed.itemEditor != nil {
		t.Error("esc should close the item editor")
	}
}

func TestEditorMouseClickExpands(t *testing.T) {
	ed, ids := newTestEditor(t)
	ed.View() // populate row layout

	y := ed.rows[1].top + canvasTop
	ed.Update(tea.MouseMsg{X: 2, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	ed.Update(tea.MouseMsg{X: 2, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if ed.expandedID != ids[0] {
		t.Errorf("sub-threshold click should expand the item, expanded = %q", ed.expandedID)
	}
}

func TestEditorMouseDragReorders(t *testing.T) {
	ed, ids := newTestEditor(t)
	ed.View()

	fromY := ed.rows[1].top + canvasTop
	toY := ed.rows[3].top + canvasTop

	// The horizontal travel carries the gesture past the drag threshold
	// even when the rows are adjacent.
	ed.Update(tea.MouseMsg{X: 2, Y: fromY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	ed.Update(tea.MouseMsg{X: 2 + drag.Threshold, Y: toY, Action: tea.MouseActionMotion})
	ed.View()
	ed.Update(tea.MouseMsg{X: 2 + drag.Threshold, Y: toY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	got := itemOrder(ed)
	if got[len(got)-1] != ids[0] {
		t.Errorf("drag to last row should move the item there, order = %v", got)
	}
	if ed.coordinator.State() != drag.Idle {
		t.Error("coordinator should be idle after drop")
	}
	if ed.expandedID != "" {
		t.Error("nothing was expanded before the drag")
	}
}

func TestEditorDragMigratesToEmptyGroup(t *testing.T) {
	ed, ids := newTestEditor(t)
	ed.engine.CreateGroup("Page two")
	ed.markDirty()
	ed.View()

	// Find the new group's empty drop zone row.
	var zoneY int
	found := false
	for _, row := range ed.rows {
		if row.kind == rowGroupZone {
			zoneY = row.top + canvasTop
			found = true
		}
	}
	if !found {
		t.Fatal("empty group should have a drop zone row")
	}

	firstY := ed.rows[1].top + canvasTop
	ed.Update(tea.MouseMsg{X: 2, Y: firstY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	ed.Update(tea.MouseMsg{X: 2, Y: zoneY, Action: tea.MouseActionMotion})

	// Migration is committed during hover, before the drop.
	it := ed.engine.Form().ItemByID(ids[0])
	target := ed.engine.Groups()[1].ID
	if it.GroupRef() != target {
		t.Errorf("hovering the empty zone should migrate the item, group = %q", it.GroupRef())
	}

	ed.Update(tea.MouseMsg{X: 2, Y: zoneY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if ed.engine.Form().ItemByID(ids[0]).GroupRef() != target {
		t.Error("migration should survive the drop")
	}
}

func TestEditorDeleteProfileFieldGuard(t *testing.T) {
	ed, _ := newTestEditor(t)
	if err := ed.engine.ToggleProfileField(models.ProfileEmail, true); err != nil {
		t.Fatal(err)
	}
	ed.rebuildRows()

	// Find the email profile field row.
	var emailIdx int
	for i, row := range ed.rows {
		if row.kind != rowItem {
			continue
		}
		if f, ok := models.AsField(ed.engine.Form().ItemByID(row.id)); ok && f.ProfileKey == models.ProfileEmail {
			emailIdx = i
		}
	}
	if emailIdx == 0 {
		t.Fatal("email profile field row not found")
	}

	ed.cursor = emailIdx
	ed.Update(key("d"))
	if !ed.confirm.Active() {
		t.Fatal("delete should ask for confirmation")
	}
	ed.Update(key("y"))

	// Email was the only contact method; the engine must refuse.
	if !ed.engine.Settings().HasProfileField(models.ProfileEmail) {
		t.Error("last contact method must not be removable")
	}
}

func TestEditorCreateGroupPrompt(t *testing.T) {
	ed, _ := newTestEditor(t)

	ed.Update(key("g"))
	if !ed.namingGroup {
		t.Fatal("g should open the group naming prompt")
	}

	for _, r := range "Extras" {
		ed.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	ed.Update(key("enter"))

	groups := ed.engine.Groups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[1].Name != "Extras" {
		t.Errorf("new group name = %q", groups[1].Name)
	}
}

func TestEditorPaletteAddsField(t *testing.T) {
	ed, _ := newTestEditor(t)
	before := len(ed.engine.Items())

	ed.Update(key("a"))
	if ed.activePane != panePalette {
		t.Fatal("a should focus the palette")
	}
	ed.Update(key("enter"))

	if len(ed.engine.Items()) != before+1 {
		t.Error("palette enter should add an item")
	}
	if !ed.dirty {
		t.Error("adding an item should mark the form dirty")
	}
}

func TestEditorSaveValidation(t *testing.T) {
	ed, ids := newTestEditor(t)
	ed.markDirty()

	// Fresh fields have no label yet, so the save must be refused.
	ed.Update(key("s"))
	if !ed.dirty {
		t.Fatal("a failed save must keep the dirty flag")
	}

	for i, id := range ids {
		label := "Question " + string(rune('A'+i))
		if err := ed.engine.Update(id, func(it models.Item) {
			it.(*models.Field).Label = label
		}); err != nil {
			t.Fatal(err)
		}
	}

	ed.Update(key("s"))
	if ed.dirty {
		t.Error("a successful save should clear the dirty flag")
	}

	saved, err := files.ReadForm("test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Items) != 3 {
		t.Errorf("saved form has %d items, want 3", len(saved.Items))
	}
}
