package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/formloom/formloom-cli/pkg/drag"
	"github.com/formloom/formloom-cli/pkg/models"
)

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.Active() {
		return m, m.confirm.Update(msg)
	}

	// A drag in progress only listens for esc.
	if m.coordinator.State() != drag.Idle {
		if msg.String() == "esc" {
			m.expand(m.coordinator.Cancel())
		}
		return m, nil
	}

	if m.namingGroup {
		return m.handleGroupNaming(msg)
	}

	// The open item editor captures everything until it reports done.
	if m.itemEditor != nil {
		cmd := m.itemEditor.Update(msg)
		if m.itemEditor.Done() {
			m.collapse()
		}
		if m.itemEditor != nil && m.itemEditor.Changed() {
			m.markDirty()
		}
		return m, cmd
	}

	switch m.activePane {
	case panePalette:
		return m.handlePaletteKey(msg)
	case paneSettings:
		return m.handleSettingsKey(msg)
	}
	return m.handleCanvasKey(msg)
}

func (m *EditorModel) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.activePane = paneCanvas
		return m, nil
	}

	addedID, cmd := m.palette.Update(msg)
	if addedID != "" {
		m.markDirty()
		m.cursorTo(addedID)
	} else if m.palette.Changed() {
		m.markDirty()
	}
	return m, cmd
}

func (m *EditorModel) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.activePane = paneCanvas
		return m, nil
	}

	cmd := m.settingsPanel.Update(msg)
	if m.settingsPanel.Changed() {
		m.markDirty()
	}
	return m, cmd
}

func (m *EditorModel) handleCanvasKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, m.leave()

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "shift+up", "K":
		return m, m.reorderSelected(-1)

	case "shift+down", "J":
		return m, m.reorderSelected(1)

	case "[":
		return m, m.migrateSelected(-1)

	case "]":
		return m, m.migrateSelected(1)

	case "enter", "e":
		return m, m.activateSelected()

	case " ", "x":
		return m, m.toggleSelected()

	case "c":
		return m, m.duplicateSelected()

	case "d":
		return m, m.deleteSelected()

	case "a":
		m.activePane = panePalette
		return m, nil

	case "S":
		m.activePane = paneSettings
		return m, nil

	case "n":
		return m, m.cycleNextAction()

	case "g":
		m.namingGroup = true
		m.editingGroupID = ""
		m.groupInput.SetValue("")
		m.groupInput.Focus()
		return m, textinput.Blink

	case "v":
		m.showPreview = !m.showPreview
		return m, nil

	case "pgup":
		if m.showPreview {
			m.previewVP.HalfViewUp()
		}
		return m, nil

	case "pgdown":
		if m.showPreview {
			m.previewVP.HalfViewDown()
		}
		return m, nil

	case "H":
		m.hideDisabled = !m.hideDisabled
		m.rebuildRows()
		return m, nil

	case "tab":
		m.activePane = panePalette
		return m, nil

	case "s", "ctrl+s":
		return m, m.save()
	}
	return m, nil
}

func (m *EditorModel) leave() tea.Cmd {
	if !m.dirty {
		return switchViewCmd(formBrowserView, "")
	}
	m.confirm.Show(ConfirmationConfig{
		Message:  "Discard unsaved changes?",
		YesLabel: "Discard",
		NoLabel:  "Keep editing",
	}, func() tea.Cmd {
		return switchViewCmd(formBrowserView, "")
	}, nil)
	return nil
}

func (m *EditorModel) moveCursor(delta int) {
	next := m.cursor + delta
	for next >= 0 && next < len(m.rows) && m.rows[next].kind == rowSectionHeader {
		next += delta
	}
	if next >= 0 && next < len(m.rows) {
		m.cursor = next
	}
}

// reorderSelected splice-moves the selected item (or group) over its
// neighbor in the given direction.
func (m *EditorModel) reorderSelected(delta int) tea.Cmd {
	row := m.currentRow()
	if row == nil {
		return nil
	}

	switch row.kind {
	case rowItem:
		over := m.neighborItem(m.cursor, delta)
		if over == "" {
			return nil
		}
		m.engine.ReorderItems(row.id, over)
		m.markDirty()
		m.cursorTo(row.id)

	case rowGroupHeader:
		over := m.neighborGroup(row.id, delta)
		if over == "" {
			return nil
		}
		m.engine.ReorderGroups(row.id, over)
		m.markDirty()
	}
	return nil
}

// neighborItem finds the next item row from idx in the given direction.
func (m *EditorModel) neighborItem(idx, delta int) string {
	for i := idx + delta; i >= 0 && i < len(m.rows); i += delta {
		if m.rows[i].kind == rowItem {
			return m.rows[i].id
		}
	}
	return ""
}

func (m *EditorModel) neighborGroup(groupID string, delta int) string {
	groups := m.engine.Groups()
	for i := range groups {
		if groups[i].ID == groupID {
			j := i + delta
			if j >= 0 && j < len(groups) {
				return groups[j].ID
			}
			return ""
		}
	}
	return ""
}

// migrateSelected moves the selected item to the previous or next group.
func (m *EditorModel) migrateSelected(delta int) tea.Cmd {
	row := m.currentRow()
	if row == nil || row.kind != rowItem {
		return nil
	}
	it := m.engine.Form().ItemByID(row.id)
	if it == nil {
		return nil
	}

	groups := m.engine.Groups()
	if len(groups) == 0 {
		return nil
	}
	current := -1
	for i := range groups {
		if groups[i].ID == it.GroupRef() {
			current = i
			break
		}
	}
	target := current + delta
	if target < 0 || target >= len(groups) {
		return nil
	}
	if m.engine.MoveItemToGroup(row.id, groups[target].ID) {
		m.markDirty()
		m.cursorTo(row.id)
	}
	return nil
}

func (m *EditorModel) activateSelected() tea.Cmd {
	row := m.currentRow()
	if row == nil {
		return nil
	}

	switch row.kind {
	case rowItem:
		if m.expandedID == row.id {
			m.collapse()
		} else {
			m.expand(row.id)
		}
	case rowGroupHeader:
		g := m.engine.Form().GroupByID(row.id)
		if g == nil {
			return nil
		}
		m.namingGroup = true
		m.editingGroupID = row.id
		m.groupInput.SetValue(g.Name)
		m.groupInput.Focus()
		return textinput.Blink
	}
	return nil
}

func (m *EditorModel) toggleSelected() tea.Cmd {
	row := m.currentRow()
	if row == nil || row.kind != rowItem {
		return nil
	}
	err := m.engine.Update(row.id, func(it models.Item) {
		switch v := it.(type) {
		case *models.Field:
			v.Enabled = !v.Enabled
		case *models.ContentBlock:
			v.Enabled = !v.Enabled
		}
	})
	if err != nil {
		return statusCmd(err.Error())
	}
	m.markDirty()
	return nil
}

func (m *EditorModel) duplicateSelected() tea.Cmd {
	row := m.currentRow()
	if row == nil || row.kind != rowItem {
		return nil
	}
	copied, err := m.engine.Duplicate(row.id)
	if err != nil {
		return statusCmd(err.Error())
	}
	m.markDirty()
	m.cursorTo(copied.ItemID())
	return nil
}

func (m *EditorModel) deleteSelected() tea.Cmd {
	row := m.currentRow()
	if row == nil {
		return nil
	}

	switch row.kind {
	case rowItem:
		it := m.engine.Form().ItemByID(row.id)
		if it == nil {
			return nil
		}
		id := row.id
		var details []string
		if f, ok := models.AsField(it); ok && f.ProfileKey != "" {
			details = append(details, "This is a profile field; it can be toggled back on from the palette.")
		}
		m.confirm.Show(ConfirmationConfig{
			Message:     "Delete '" + it.DisplayLabel() + "'?",
			Details:     details,
			Destructive: true,
		}, func() tea.Cmd {
			if f, ok := models.AsField(m.engine.Form().ItemByID(id)); ok && f.ProfileKey != "" {
				if err := m.engine.ToggleProfileField(f.ProfileKey, false); err != nil {
					return statusCmd(err.Error())
				}
			} else {
				m.engine.Delete(id)
			}
			if m.expandedID == id {
				m.collapse()
			}
			m.markDirty()
			return nil
		}, nil)

	case rowGroupHeader:
		g := m.engine.Form().GroupByID(row.id)
		if g == nil {
			return nil
		}
		id := row.id
		m.confirm.Show(ConfirmationConfig{
			Message:     "Delete group '" + g.DisplayName() + "'?",
			Details:     []string{"Its items move to the first remaining group."},
			Destructive: true,
		}, func() tea.Cmd {
			m.engine.DeleteGroup(id)
			m.markDirty()
			return nil
		}, nil)
	}
	return nil
}

// cycleNextAction steps the selected group's post-completion action
// through next, submit, then a jump to each of the other groups.
func (m *EditorModel) cycleNextAction() tea.Cmd {
	row := m.currentRow()
	if row == nil || row.kind != rowGroupHeader {
		return nil
	}
	g := m.engine.Form().GroupByID(row.id)
	if g == nil {
		return nil
	}

	actions := []models.NextAction{
		{Type: models.NextActionNext},
		{Type: models.NextActionSubmit},
	}
	for _, other := range m.engine.Groups() {
		if other.ID != row.id {
			actions = append(actions, models.NextAction{Type: models.NextActionJump, JumpTo: other.ID})
		}
	}

	current := 0
	for i, a := range actions {
		if a.Type == g.NextAction.Type && a.JumpTo == g.NextAction.JumpTo {
			current = i
			break
		}
	}
	next := actions[(current+1)%len(actions)]

	m.engine.UpdateGroup(row.id, func(g *models.Group) {
		g.NextAction = next
	})
	m.markDirty()
	return nil
}

func (m *EditorModel) handleGroupNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.namingGroup = false
		m.groupInput.Blur()
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.groupInput.Value())
		m.namingGroup = false
		m.groupInput.Blur()
		if m.editingGroupID != "" {
			m.engine.UpdateGroup(m.editingGroupID, func(g *models.Group) {
				g.Name = name
			})
		} else {
			m.engine.CreateGroup(name)
		}
		m.markDirty()
		return m, nil
	}

	var cmd tea.Cmd
	m.groupInput, cmd = m.groupInput.Update(msg)
	return m, cmd
}

func (m *EditorModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.confirm.Active() || m.namingGroup {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		row := m.hitRow(msg.X, msg.Y)
		if row == nil {
			return m, nil
		}
		switch row.kind {
		case rowItem:
			m.coordinator.Press(drag.KindItem, row.id, m.expandedID, msg.X, msg.Y)
		case rowGroupHeader:
			m.coordinator.Press(drag.KindGroup, row.id, m.expandedID, msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		if m.coordinator.State() == drag.Idle {
			return m, nil
		}
		wasDragging := m.coordinator.State() == drag.Dragging
		if m.coordinator.Move(msg.X, msg.Y) {
			// Resolve the target against the last rendered layout
			// before any rebuild invalidates it.
			target := m.hitTarget(msg.X, msg.Y)
			if !wasDragging {
				// The press became a drag; collapse the open editor
				// for the duration. The coordinator remembers it.
				m.expandedID = ""
				m.itemEditor = nil
			}
			m.coordinator.Over(target)
			m.rebuildRows()
		}

	case tea.MouseActionRelease:
		if m.coordinator.State() == drag.Idle {
			return m, nil
		}
		wasDragging := m.coordinator.State() == drag.Dragging
		activeID := m.coordinator.ActiveID()
		kind := m.coordinator.Kind()
		restore := m.coordinator.Drop(m.hitTarget(msg.X, msg.Y))
		if wasDragging {
			m.markDirty()
			m.expand(restore)
			if kind == drag.KindItem {
				m.cursorTo(activeID)
			}
		} else if kind == drag.KindItem {
			// A sub-threshold release is a click: toggle the editor.
			if m.expandedID == activeID {
				m.collapse()
			} else {
				m.expand(activeID)
				m.cursorTo(activeID)
			}
		}
	}
	return m, nil
}

// hitRow maps screen coordinates to the canvas row under them.
func (m *EditorModel) hitRow(x, y int) *canvasRow {
	if x >= m.canvasWidth() {
		return nil
	}
	line := y - canvasTop + m.scroll
	for i := range m.rows {
		row := &m.rows[i]
		if line >= row.top && line < row.top+row.height {
			return row
		}
	}
	return nil
}

// hitTarget classifies the pointer position as a drop target.
func (m *EditorModel) hitTarget(x, y int) drag.Target {
	row := m.hitRow(x, y)
	if row == nil {
		return drag.Target{Kind: drag.TargetNone}
	}
	switch row.kind {
	case rowItem:
		return drag.Target{Kind: drag.TargetItem, ID: row.id}
	case rowGroupZone:
		return drag.Target{Kind: drag.TargetGroupZone, ID: row.id}
	case rowGroupHeader:
		return drag.Target{Kind: drag.TargetGroup, ID: row.id}
	}
	return drag.Target{Kind: drag.TargetNone}
}
