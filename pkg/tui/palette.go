package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/formloom/formloom-cli/pkg/collection"
	"github.com/formloom/formloom-cli/pkg/models"
)

type paletteEntryKind int

const (
	paletteHeader paletteEntryKind = iota
	paletteField
	paletteContent
	paletteProfile
)

type paletteEntry struct {
	kind       paletteEntryKind
	header     string
	fieldType  models.FieldType
	style      models.ContentStyle
	profileKey models.ProfileKey
}

// PaletteModel adds new items to the collection: field types, content
// block styles and profile field toggles.
type PaletteModel struct {
	engine  *collection.Engine
	entries []paletteEntry
	cursor  int
	changed bool
}

func NewPaletteModel(engine *collection.Engine) *PaletteModel {
	m := &PaletteModel{engine: engine}

	m.entries = append(m.entries, paletteEntry{kind: paletteHeader, header: "Fields"})
	for _, t := range models.FieldTypeOrder {
		m.entries = append(m.entries, paletteEntry{kind: paletteField, fieldType: t})
	}
	m.entries = append(m.entries, paletteEntry{kind: paletteHeader, header: "Content"})
	for _, s := range models.ContentStyleOrder {
		m.entries = append(m.entries, paletteEntry{kind: paletteContent, style: s})
	}
	m.entries = append(m.entries, paletteEntry{kind: paletteHeader, header: "Profile"})
	for _, k := range models.ProfileKeyOrder {
		m.entries = append(m.entries, paletteEntry{kind: paletteProfile, profileKey: k})
	}

	m.cursor = 1 // first field, not the header
	return m
}

// Changed reports and clears the mutation flag.
func (m *PaletteModel) Changed() bool {
	c := m.changed
	m.changed = false
	return c
}

// Update handles a key press. Returns the id of a newly added item, if
// any, so the editor can focus it.
func (m *PaletteModel) Update(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "enter", " ":
		return m.activate()
	}
	return "", nil
}

func (m *PaletteModel) moveCursor(delta int) {
	next := m.cursor + delta
	for next >= 0 && next < len(m.entries) && m.entries[next].kind == paletteHeader {
		next += delta
	}
	if next >= 0 && next < len(m.entries) {
		m.cursor = next
	}
}

func (m *PaletteModel) activate() (string, tea.Cmd) {
	entry := m.entries[m.cursor]
	switch entry.kind {
	case paletteField:
		f, err := m.engine.AddField(entry.fieldType)
		if err != nil {
			return "", statusCmd(err.Error())
		}
		m.changed = true
		return f.ID, nil

	case paletteContent:
		b, err := m.engine.AddContentBlock(entry.style)
		if err != nil {
			return "", statusCmd(err.Error())
		}
		m.changed = true
		return b.ID, nil

	case paletteProfile:
		on := m.engine.Settings().HasProfileField(entry.profileKey)
		if err := m.engine.ToggleProfileField(entry.profileKey, !on); err != nil {
			return "", statusCmd(err.Error())
		}
		m.changed = true
		return "", nil
	}
	return "", nil
}

func (m *PaletteModel) View(width int) string {
	var b strings.Builder

	for i, entry := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}

		switch entry.kind {
		case paletteHeader:
			b.WriteString(HeaderStyle.Render(entry.header))

		case paletteField:
			label := models.FieldTypes[entry.fieldType].Label
			b.WriteString(m.renderEntry(label, i == m.cursor, width))

		case paletteContent:
			label := models.ContentStyles[entry.style].Label
			b.WriteString(m.renderEntry(label, i == m.cursor, width))

		case paletteProfile:
			mark := "[ ] "
			if m.engine.Settings().HasProfileField(entry.profileKey) {
				mark = "[x] "
			}
			label := mark + models.ProfileKeys[entry.profileKey].Label
			b.WriteString(m.renderEntry(label, i == m.cursor, width))
		}
	}
	return b.String()
}

func (m *PaletteModel) renderEntry(label string, selected bool, width int) string {
	line := "  " + label
	if selected {
		return SelectedStyle.Render(truncate("> "+label, width))
	}
	return NormalStyle.Render(truncate(line, width))
}
