package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/formloom/formloom-cli/pkg/collection"
	"github.com/formloom/formloom-cli/pkg/factory"
	"github.com/formloom/formloom-cli/pkg/models"
)

type editRowKind int

const (
	editText editRowKind = iota
	editToggle
	editCycle
	editAction
)

// editRow is one editable property of the expanded item. id selects the
// behavior; idx addresses a list element (option, matrix row or level).
type editRow struct {
	id   string
	idx  int
	kind editRowKind
}

// ItemEditorModel is the inline editor card for one item. Every change
// goes through the engine's patch operation, so invalid edits are
// rejected atomically.
type ItemEditorModel struct {
	engine *collection.Engine
	itemID string

	rows    []editRow
	cursor  int
	editing bool
	input   textinput.Model

	// Multi-line rows (content, invite and terms text) edit in a
	// textarea instead; esc commits since enter inserts a newline.
	area      textarea.Model
	usingArea bool

	done    bool
	changed bool
}

func NewItemEditorModel(engine *collection.Engine, itemID string) *ItemEditorModel {
	ti := textinput.New()
	ti.CharLimit = 200

	ta := textarea.New()
	ta.SetHeight(4)
	ta.CharLimit = 0

	m := &ItemEditorModel{
		engine: engine,
		itemID: itemID,
		input:  ti,
		area:   ta,
	}
	m.rebuildRows()
	return m
}

// Done reports whether the editor was closed.
func (m *ItemEditorModel) Done() bool {
	return m.done
}

// Changed reports and clears the mutation flag.
func (m *ItemEditorModel) Changed() bool {
	c := m.changed
	m.changed = false
	return c
}

func (m *ItemEditorModel) item() models.Item {
	return m.engine.Form().ItemByID(m.itemID)
}

// rebuildRows derives the editable rows from the item's current shape.
func (m *ItemEditorModel) rebuildRows() {
	it := m.item()
	if it == nil {
		m.rows = nil
		return
	}

	var rows []editRow
	add := func(id string, kind editRowKind) {
		rows = append(rows, editRow{id: id, idx: -1, kind: kind})
	}

	if f, ok := models.AsField(it); ok {
		if !models.FieldTypes[f.Type].Singleton {
			add("label", editText)
		}
		add("description", editText)
		add("required", editToggle)
		add("enabled", editToggle)

		switch f.Type {
		case models.FieldShortText, models.FieldLongText, models.FieldNumber,
			models.FieldEmail, models.FieldPhone:
			add("hint_mode", editCycle)
			add("hint", editText)
		}

		if models.FieldTypes[f.Type].NeedsOptions {
			for i := range f.Options {
				rows = append(rows, editRow{id: "option", idx: i, kind: editText})
			}
			add("option_add", editAction)
			if f.Choice != nil {
				add("choice_other", editToggle)
				add("choice_default", editToggle)
				add("choice_tags", editToggle)
			}
		}

		if f.Matrix != nil {
			for i := range f.Matrix.Rows {
				rows = append(rows, editRow{id: "matrix_row", idx: i, kind: editText})
			}
			add("matrix_row_add", editAction)
			for i := range f.Matrix.Levels {
				rows = append(rows, editRow{id: "matrix_level", idx: i, kind: editText})
			}
			add("matrix_level_add", editAction)
		}

		if f.Date != nil {
			add("date_min", editText)
			add("date_max", editText)
			add("date_day", editToggle)
			add("date_month", editToggle)
			add("date_year", editToggle)
		}

		if f.Phone != nil {
			add("phone_accept_all", editToggle)
			add("phone_codes", editText)
		}

		if f.Upload != nil {
			add("upload_images", editToggle)
			add("upload_images_size", editText)
			add("upload_documents", editToggle)
			add("upload_documents_size", editText)
			add("upload_video", editToggle)
			add("upload_video_size", editText)
		}

		if f.Subscribe != nil {
			add("subscribe_text", editText)
		}
		if f.Terms != nil {
			add("terms_text", editText)
			add("terms_window", editText)
		}
	} else if cb, ok := models.AsContentBlock(it); ok {
		add("enabled", editToggle)
		switch {
		case models.ContentStyles[cb.Style].UsesContent:
			add("content", editText)
		case cb.Style == models.ContentDivider:
			add("divider_style", editCycle)
		case cb.Style == models.ContentSpacer:
			add("spacer_size", editCycle)
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

// multilineRow reports whether the row edits free-form rich text.
func multilineRow(id string) bool {
	switch id {
	case "content", "description", "subscribe_text", "terms_text", "terms_window":
		return true
	}
	return false
}

func (m *ItemEditorModel) Update(msg tea.KeyMsg) tea.Cmd {
	if m.editing {
		if m.usingArea {
			if msg.String() == "esc" {
				cmd := m.commitEdit(m.area.Value())
				m.editing = false
				m.usingArea = false
				m.area.Blur()
				return cmd
			}
			var cmd tea.Cmd
			m.area, cmd = m.area.Update(msg)
			return cmd
		}

		switch msg.String() {
		case "esc":
			m.editing = false
			m.input.Blur()
			return nil
		case "enter":
			cmd := m.commitEdit(m.input.Value())
			m.editing = false
			m.input.Blur()
			return cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "esc":
		m.done = true
		return nil

	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j", "tab":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter", " ":
		return m.activate()

	case "x", "backspace":
		return m.removeListEntry()

	case "*":
		return m.toggleDefaultOption()
	}
	return nil
}

func (m *ItemEditorModel) currentRow() *editRow {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// patch routes a mutation through the engine and flags the change.
func (m *ItemEditorModel) patch(mutate func(models.Item)) tea.Cmd {
	if err := m.engine.Update(m.itemID, mutate); err != nil {
		return statusCmd(err.Error())
	}
	m.changed = true
	m.rebuildRows()
	return nil
}

func (m *ItemEditorModel) patchField(mutate func(*models.Field)) tea.Cmd {
	return m.patch(func(it models.Item) {
		if f, ok := models.AsField(it); ok {
			mutate(f)
		}
	})
}

func (m *ItemEditorModel) activate() tea.Cmd {
	row := m.currentRow()
	if row == nil {
		return nil
	}

	switch row.kind {
	case editText:
		m.editing = true
		if multilineRow(row.id) {
			m.usingArea = true
			m.area.SetValue(m.textValue(row))
			m.area.Focus()
			return textarea.Blink
		}
		m.input.SetValue(m.textValue(row))
		m.input.Focus()
		return textinput.Blink

	case editToggle:
		return m.toggle(row)

	case editCycle:
		return m.cycle(row)

	case editAction:
		return m.action(row)
	}
	return nil
}

func (m *ItemEditorModel) toggle(row *editRow) tea.Cmd {
	switch row.id {
	case "required":
		return m.patchField(func(f *models.Field) { f.Required = !f.Required })
	case "enabled":
		return m.patch(func(it models.Item) {
			switch v := it.(type) {
			case *models.Field:
				v.Enabled = !v.Enabled
			case *models.ContentBlock:
				v.Enabled = !v.Enabled
			}
		})
	case "choice_other":
		return m.patchField(func(f *models.Field) { f.Choice.AllowOther = !f.Choice.AllowOther })
	case "choice_default":
		return m.patchField(func(f *models.Field) { f.Choice.AllowDefault = !f.Choice.AllowDefault })
	case "choice_tags":
		return m.patchField(func(f *models.Field) { f.Choice.AllowTags = !f.Choice.AllowTags })
	case "date_day":
		return m.patchField(func(f *models.Field) { f.Date.IncludeDay = !f.Date.IncludeDay })
	case "date_month":
		return m.patchField(func(f *models.Field) { f.Date.IncludeMonth = !f.Date.IncludeMonth })
	case "date_year":
		return m.patchField(func(f *models.Field) { f.Date.IncludeYear = !f.Date.IncludeYear })
	case "phone_accept_all":
		return m.patchField(func(f *models.Field) { f.Phone.AcceptAll = !f.Phone.AcceptAll })
	case "upload_images":
		return m.patchField(func(f *models.Field) { f.Upload.Images.Enabled = !f.Upload.Images.Enabled })
	case "upload_documents":
		return m.patchField(func(f *models.Field) { f.Upload.Documents.Enabled = !f.Upload.Documents.Enabled })
	case "upload_video":
		return m.patchField(func(f *models.Field) { f.Upload.Video.Enabled = !f.Upload.Video.Enabled })
	}
	return nil
}

func (m *ItemEditorModel) cycle(row *editRow) tea.Cmd {
	switch row.id {
	case "hint_mode":
		return m.patchField(func(f *models.Field) {
			if f.HintMode == models.HintDefaultValue {
				f.HintMode = models.HintPlaceholder
			} else {
				f.HintMode = models.HintDefaultValue
			}
		})

	case "divider_style":
		return m.patch(func(it models.Item) {
			cb, ok := models.AsContentBlock(it)
			if !ok {
				return
			}
			switch cb.DividerStyle {
			case models.DividerSolid:
				cb.DividerStyle = models.DividerDashed
			case models.DividerDashed:
				cb.DividerStyle = models.DividerDotted
			default:
				cb.DividerStyle = models.DividerSolid
			}
		})

	case "spacer_size":
		return m.patch(func(it models.Item) {
			cb, ok := models.AsContentBlock(it)
			if !ok {
				return
			}
			switch cb.SpacerSize {
			case models.SpacerSmall:
				cb.SpacerSize = models.SpacerMedium
			case models.SpacerMedium:
				cb.SpacerSize = models.SpacerLarge
			default:
				cb.SpacerSize = models.SpacerSmall
			}
		})
	}
	return nil
}

func (m *ItemEditorModel) action(row *editRow) tea.Cmd {
	switch row.id {
	case "option_add":
		return m.patchField(func(f *models.Field) {
			f.Options = append(f.Options, factory.NewOption(fmt.Sprintf("Option %d", len(f.Options)+1)))
		})
	case "matrix_row_add":
		return m.patchField(func(f *models.Field) {
			f.Matrix.Rows = append(f.Matrix.Rows, fmt.Sprintf("Row %d", len(f.Matrix.Rows)+1))
		})
	case "matrix_level_add":
		return m.patchField(func(f *models.Field) {
			f.Matrix.Levels = append(f.Matrix.Levels, fmt.Sprintf("Level %d", len(f.Matrix.Levels)+1))
		})
	}
	return nil
}

// removeListEntry deletes the option, matrix row or level under the
// cursor. Matrix minimums are enforced by the engine and reported.
func (m *ItemEditorModel) removeListEntry() tea.Cmd {
	row := m.currentRow()
	if row == nil || row.idx < 0 {
		return nil
	}
	idx := row.idx

	switch row.id {
	case "option":
		return m.patchField(func(f *models.Field) {
			if idx < len(f.Options) {
				f.Options = append(f.Options[:idx], f.Options[idx+1:]...)
			}
		})
	case "matrix_row":
		return m.patchField(func(f *models.Field) {
			if idx < len(f.Matrix.Rows) {
				f.Matrix.Rows = append(f.Matrix.Rows[:idx], f.Matrix.Rows[idx+1:]...)
			}
		})
	case "matrix_level":
		return m.patchField(func(f *models.Field) {
			if idx < len(f.Matrix.Levels) {
				f.Matrix.Levels = append(f.Matrix.Levels[:idx], f.Matrix.Levels[idx+1:]...)
			}
		})
	}
	return nil
}

// toggleDefaultOption marks the option under the cursor as the default,
// clearing any other. Requires the field to allow defaults.
func (m *ItemEditorModel) toggleDefaultOption() tea.Cmd {
	row := m.currentRow()
	if row == nil || row.id != "option" || row.idx < 0 {
		return nil
	}
	idx := row.idx

	f, ok := models.AsField(m.item())
	if !ok || f.Choice == nil || !f.Choice.AllowDefault {
		return statusCmd("Enable 'allow default' first")
	}

	return m.patchField(func(f *models.Field) {
		was := idx < len(f.Options) && f.Options[idx].IsDefault
		for i := range f.Options {
			f.Options[i].IsDefault = false
		}
		if !was && idx < len(f.Options) {
			f.Options[idx].IsDefault = true
		}
	})
}

func (m *ItemEditorModel) textValue(row *editRow) string {
	it := m.item()
	if it == nil {
		return ""
	}

	if f, ok := models.AsField(it); ok {
		switch row.id {
		case "label":
			return f.Label
		case "description":
			return f.Description
		case "hint":
			if f.HintMode == models.HintDefaultValue {
				return f.DefaultValue
			}
			return f.Placeholder
		case "option":
			if row.idx < len(f.Options) {
				return f.Options[row.idx].Label
			}
		case "matrix_row":
			if row.idx < len(f.Matrix.Rows) {
				return f.Matrix.Rows[row.idx]
			}
		case "matrix_level":
			if row.idx < len(f.Matrix.Levels) {
				return f.Matrix.Levels[row.idx]
			}
		case "date_min":
			return strconv.Itoa(f.Date.MinYear)
		case "date_max":
			return strconv.Itoa(f.Date.MaxYear)
		case "phone_codes":
			return strings.Join(f.Phone.CountryCodes, ",")
		case "upload_images_size":
			return strconv.Itoa(f.Upload.Images.MaxSizeMB)
		case "upload_documents_size":
			return strconv.Itoa(f.Upload.Documents.MaxSizeMB)
		case "upload_video_size":
			return strconv.Itoa(f.Upload.Video.MaxSizeMB)
		case "subscribe_text":
			return f.Subscribe.InviteText
		case "terms_text":
			return f.Terms.TermsText
		case "terms_window":
			return f.Terms.WindowContent
		}
	} else if cb, ok := models.AsContentBlock(it); ok {
		if row.id == "content" {
			return cb.Content
		}
	}
	return ""
}

func (m *ItemEditorModel) commitEdit(value string) tea.Cmd {
	row := m.currentRow()
	if row == nil {
		return nil
	}
	idx := row.idx

	switch row.id {
	case "label":
		return m.patchField(func(f *models.Field) { f.Label = value })
	case "description":
		return m.patchField(func(f *models.Field) { f.Description = value })
	case "hint":
		return m.patchField(func(f *models.Field) {
			if f.HintMode == models.HintDefaultValue {
				f.DefaultValue = value
			} else {
				f.Placeholder = value
			}
		})
	case "option":
		return m.patchField(func(f *models.Field) {
			if idx < len(f.Options) {
				f.Options[idx].Label = value
			}
		})
	case "matrix_row":
		return m.patchField(func(f *models.Field) {
			if idx < len(f.Matrix.Rows) {
				f.Matrix.Rows[idx] = value
			}
		})
	case "matrix_level":
		return m.patchField(func(f *models.Field) {
			if idx < len(f.Matrix.Levels) {
				f.Matrix.Levels[idx] = value
			}
		})
	case "date_min", "date_max":
		year, err := strconv.Atoi(value)
		if err != nil {
			return statusCmd("Year must be a number")
		}
		id := row.id
		return m.patchField(func(f *models.Field) {
			if id == "date_min" {
				f.Date.MinYear = year
			} else {
				f.Date.MaxYear = year
			}
		})
	case "phone_codes":
		codes := splitCodes(value)
		return m.patchField(func(f *models.Field) { f.Phone.CountryCodes = codes })
	case "upload_images_size", "upload_documents_size", "upload_video_size":
		size, err := strconv.Atoi(value)
		if err != nil || size <= 0 {
			return statusCmd("Size must be a positive number of MB")
		}
		id := row.id
		return m.patchField(func(f *models.Field) {
			switch id {
			case "upload_images_size":
				f.Upload.Images.MaxSizeMB = size
			case "upload_documents_size":
				f.Upload.Documents.MaxSizeMB = size
			case "upload_video_size":
				f.Upload.Video.MaxSizeMB = size
			}
		})
	case "subscribe_text":
		return m.patchField(func(f *models.Field) { f.Subscribe.InviteText = value })
	case "terms_text":
		return m.patchField(func(f *models.Field) { f.Terms.TermsText = value })
	case "terms_window":
		return m.patchField(func(f *models.Field) { f.Terms.WindowContent = value })
	case "content":
		return m.patch(func(it models.Item) {
			if cb, ok := models.AsContentBlock(it); ok {
				cb.Content = value
			}
		})
	}
	return nil
}

func splitCodes(value string) []string {
	var codes []string
	for _, part := range strings.Split(value, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
