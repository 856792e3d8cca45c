package tui

import (
	"strings"

	"github.com/formloom/formloom-cli/pkg/models"
)

var editRowLabels = map[string]string{
	"label":                 "Label",
	"description":           "Description",
	"required":              "Required",
	"enabled":               "Enabled",
	"hint_mode":             "Hint mode",
	"hint":                  "Hint text",
	"option_add":            "+ add option",
	"choice_other":          "Allow 'other'",
	"choice_default":        "Allow default",
	"choice_tags":           "Allow tags",
	"matrix_row_add":        "+ add row",
	"matrix_level_add":      "+ add level",
	"date_min":              "Min year",
	"date_max":              "Max year",
	"date_day":              "Include day",
	"date_month":            "Include month",
	"date_year":             "Include year",
	"phone_accept_all":      "Accept all countries",
	"phone_codes":           "Country codes",
	"upload_images":         "Images",
	"upload_images_size":    "Images max MB",
	"upload_documents":      "Documents",
	"upload_documents_size": "Documents max MB",
	"upload_video":          "Video",
	"upload_video_size":     "Video max MB",
	"subscribe_text":        "Invite text",
	"terms_text":            "Terms text",
	"terms_window":          "Terms window",
	"content":               "Content",
	"divider_style":         "Divider style",
	"spacer_size":           "Spacer size",
}

func (m *ItemEditorModel) rowLabel(row *editRow) string {
	switch row.id {
	case "option":
		return "Option"
	case "matrix_row":
		return "Row"
	case "matrix_level":
		return "Level"
	}
	return editRowLabels[row.id]
}

func (m *ItemEditorModel) rowValue(row *editRow) string {
	it := m.item()
	if it == nil {
		return ""
	}

	switch row.kind {
	case editText:
		value := m.textValue(row)
		if row.id == "option" {
			if f, ok := models.AsField(it); ok && row.idx < len(f.Options) && f.Options[row.idx].IsDefault {
				value += " (default)"
			}
		}
		return value

	case editAction:
		return ""
	}

	if f, ok := models.AsField(it); ok {
		switch row.id {
		case "required":
			return onOff(f.Required)
		case "enabled":
			return onOff(f.Enabled)
		case "hint_mode":
			return string(f.HintMode)
		case "choice_other":
			return onOff(f.Choice.AllowOther)
		case "choice_default":
			return onOff(f.Choice.AllowDefault)
		case "choice_tags":
			return onOff(f.Choice.AllowTags)
		case "date_day":
			return onOff(f.Date.IncludeDay)
		case "date_month":
			return onOff(f.Date.IncludeMonth)
		case "date_year":
			return onOff(f.Date.IncludeYear)
		case "phone_accept_all":
			return onOff(f.Phone.AcceptAll)
		case "upload_images":
			return onOff(f.Upload.Images.Enabled)
		case "upload_documents":
			return onOff(f.Upload.Documents.Enabled)
		case "upload_video":
			return onOff(f.Upload.Video.Enabled)
		}
	} else if cb, ok := models.AsContentBlock(it); ok {
		switch row.id {
		case "enabled":
			return onOff(cb.Enabled)
		case "divider_style":
			return string(cb.DividerStyle)
		case "spacer_size":
			return string(cb.SpacerSize)
		}
	}
	return ""
}

// View renders the expanded editor card at the given width.
func (m *ItemEditorModel) View(width int) string {
	it := m.item()
	if it == nil {
		return ""
	}

	var b strings.Builder

	title := it.DisplayLabel()
	if f, ok := models.AsField(it); ok {
		title += "  [" + string(f.Type) + "]"
	} else if cb, ok := models.AsContentBlock(it); ok {
		title += "  [" + string(cb.Style) + "]"
	}
	b.WriteString(GroupHeaderStyle.Render(truncate(title, width-4)))

	for i := range m.rows {
		row := &m.rows[i]
		b.WriteString("\n")

		if m.editing && i == m.cursor {
			if m.usingArea {
				b.WriteString(SelectedStyle.Render(" " + m.rowLabel(row) + " (esc saves):"))
				b.WriteString("\n")
				b.WriteString(m.area.View())
				continue
			}
			b.WriteString(SelectedStyle.Render(" " + m.rowLabel(row) + ": "))
			b.WriteString(m.input.View())
			continue
		}

		line := " " + m.rowLabel(row)
		if value := m.rowValue(row); value != "" {
			line += ": " + value
		}
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render(truncate(">"+line[1:], width-4)))
		} else {
			b.WriteString(NormalStyle.Render(truncate(line, width-4)))
		}
	}

	return ActiveBorderStyle.Width(width - 2).Render(b.String())
}
