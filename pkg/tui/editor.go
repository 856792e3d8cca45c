package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/formloom/formloom-cli/pkg/collection"
	"github.com/formloom/formloom-cli/pkg/derive"
	"github.com/formloom/formloom-cli/pkg/drag"
	"github.com/formloom/formloom-cli/pkg/factory"
	"github.com/formloom/formloom-cli/pkg/files"
)

type editorPane int

const (
	paneCanvas editorPane = iota
	panePalette
	paneSettings
)

type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowGroupZone           // empty group's drop zone
	rowItem
	rowSectionHeader // non-interactive ("Ungrouped")
)

// canvasRow is one addressable row of the canvas. top/height are line
// coordinates within the canvas content, before scrolling.
type canvasRow struct {
	kind   rowKind
	id     string // item id for rowItem, group id for header/zone
	top    int
	height int
}

// EditorModel is the form editor: a canvas of group and item cards on
// the left, with the palette, settings, or preview on the right.
type EditorModel struct {
	engine      *collection.Engine
	coordinator *drag.Coordinator

	activePane editorPane
	cursor     int
	rows       []canvasRow
	scroll     int

	// expandedID is the item currently open for inline editing.
	expandedID string
	itemEditor *ItemEditorModel

	palette       *PaletteModel
	settingsPanel *SettingsPanelModel

	showPreview  bool
	hideDisabled bool
	previewVP    viewport.Model

	// group naming prompt state; editingGroupID is empty when creating.
	namingGroup    bool
	editingGroupID string
	groupInput     textinput.Model

	confirm *ConfirmationModel
	dirty   bool

	width  int
	height int
}

func NewEditorModel() *EditorModel {
	gi := textinput.New()
	gi.Placeholder = "group name"
	gi.CharLimit = 64

	m := &EditorModel{
		groupInput: gi,
		confirm:    NewConfirmation(),
		previewVP:  viewport.New(0, 0),
	}

	if settings, err := files.ReadSettings(); err == nil {
		m.showPreview = settings.UI.ShowPreview
		m.hideDisabled = settings.UI.HideDisabled
	}
	return m
}

// LoadForm reads the form from disk and binds the engine to it.
func (m *EditorModel) LoadForm(path string) error {
	form, err := files.ReadForm(path)
	if err != nil {
		return fmt.Errorf("failed to open form: %w", err)
	}

	m.engine = collection.NewEngine(form, factory.New())
	m.coordinator = drag.NewCoordinator(m.engine)
	m.activePane = paneCanvas
	m.cursor = 0
	m.scroll = 0
	m.expandedID = ""
	m.itemEditor = nil
	m.palette = NewPaletteModel(m.engine)
	m.settingsPanel = NewSettingsPanelModel(m.engine)
	m.dirty = false
	m.rebuildRows()
	return nil
}

func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.confirm.SetWidth(width)

	sideWidth := m.width - m.canvasWidth()
	m.previewVP.Width = sideWidth - 4
	m.previewVP.Height = m.canvasHeight() - 2
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// view returns the derived partition the canvas renders from.
func (m *EditorModel) view() derive.View {
	form := m.engine.Form()
	return derive.ComputeView(form.Items, form.Groups, form.Settings, derive.Options{
		HideDisabled: m.hideDisabled,
	})
}

// rebuildRows recomputes the addressable canvas rows after any change to
// the collection or the expanded card. top/height are filled in during
// rendering; navigation only needs kind and id order.
func (m *EditorModel) rebuildRows() {
	v := m.view()
	form := m.engine.Form()

	rows := make([]canvasRow, 0, len(form.Items)+2*len(form.Groups)+1)
	for i := range form.Groups {
		g := &form.Groups[i]
		rows = append(rows, canvasRow{kind: rowGroupHeader, id: g.ID})
		members := v.Grouped[g.ID]
		if len(members) == 0 {
			rows = append(rows, canvasRow{kind: rowGroupZone, id: g.ID})
		}
		for _, it := range members {
			rows = append(rows, canvasRow{kind: rowItem, id: it.ItemID()})
		}
	}
	if len(v.Ungrouped) > 0 {
		if len(form.Groups) > 0 {
			rows = append(rows, canvasRow{kind: rowSectionHeader})
		}
		for _, it := range v.Ungrouped {
			rows = append(rows, canvasRow{kind: rowItem, id: it.ItemID()})
		}
	}

	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *EditorModel) currentRow() *canvasRow {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// cursorTo moves the cursor to the row with the given item id.
func (m *EditorModel) cursorTo(itemID string) {
	for i, row := range m.rows {
		if row.kind == rowItem && row.id == itemID {
			m.cursor = i
			return
		}
	}
}

func (m *EditorModel) markDirty() {
	m.dirty = true
	m.rebuildRows()
}

func (m *EditorModel) save() tea.Cmd {
	count, err := m.engine.Save(files.WriteForm)
	if err != nil {
		return statusCmd("Save failed: " + err.Error())
	}
	m.dirty = false
	return statusCmd(fmt.Sprintf("Saved %s (%d items)", m.engine.Form().Name, count))
}

// expand opens the inline editor on the given item, collapsing any other
// open card first.
func (m *EditorModel) expand(itemID string) {
	if itemID == "" {
		m.collapse()
		return
	}
	it := m.engine.Form().ItemByID(itemID)
	if it == nil {
		return
	}
	m.expandedID = itemID
	m.itemEditor = NewItemEditorModel(m.engine, itemID)
	m.rebuildRows()
}

func (m *EditorModel) collapse() {
	m.expandedID = ""
	m.itemEditor = nil
	m.rebuildRows()
}

func (m *EditorModel) canvasWidth() int {
	if m.sidePaneVisible() {
		return m.width * 3 / 5
	}
	return m.width
}

func (m *EditorModel) sidePaneVisible() bool {
	return m.activePane == panePalette || m.activePane == paneSettings || m.showPreview
}
