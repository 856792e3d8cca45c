package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/formloom/formloom-cli/pkg/derive"
	"github.com/formloom/formloom-cli/pkg/drag"
	"github.com/formloom/formloom-cli/pkg/models"
	"github.com/formloom/formloom-cli/pkg/preview"
)

// canvasTop is the line the canvas content starts on: header plus a
// blank separator.
const canvasTop = 2

func (m *EditorModel) View() string {
	if m.engine == nil {
		return ""
	}

	title := m.engine.Form().Name
	if m.dirty {
		title += " *"
	}
	header := renderHeader(m.width, title)

	canvas := m.renderCanvas()
	body := canvas
	if m.sidePaneVisible() {
		side := m.renderSidePane()
		body = lipgloss.JoinHorizontal(lipgloss.Top, canvas, side)
	}

	sections := []string{header, "", body}

	if m.confirm.Active() {
		sections = append(sections, m.confirm.View())
	} else if m.namingGroup {
		label := "New group name:"
		if m.editingGroupID != "" {
			label = "Rename group:"
		}
		sections = append(sections,
			ContentPaddingStyle.Render(label+" "+InputStyle.Render(m.groupInput.View())))
	} else {
		sections = append(sections, ContentPaddingStyle.Render(HelpStyle.Render(m.helpLine())))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *EditorModel) helpLine() string {
	switch m.activePane {
	case panePalette:
		return "enter add • esc back to canvas"
	case paneSettings:
		return "enter toggle/edit • esc back to canvas"
	}
	if m.itemEditor != nil {
		return "tab next field • esc close editor"
	}
	return "a add • g group • enter edit • space toggle • K/J move • [/] regroup • d delete • c copy • v preview • S settings • s save • q back"
}

// renderCanvas renders the group and item cards, recording each row's
// line extent for cursor navigation and mouse hit testing.
func (m *EditorModel) renderCanvas() string {
	v := m.view()
	width := m.canvasWidth()

	var lines []string
	rowIdx := 0
	emit := func(rendered string) {
		height := strings.Count(rendered, "\n") + 1
		if rowIdx < len(m.rows) {
			m.rows[rowIdx].top = len(lines)
			m.rows[rowIdx].height = height
		}
		rowIdx++
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	form := m.engine.Form()
	for i := range form.Groups {
		g := &form.Groups[i]
		members := v.Grouped[g.ID]
		emit(m.renderGroupHeader(g, len(members), rowIdx == m.cursor, width))
		if len(members) == 0 {
			emit(m.renderGroupZone(rowIdx == m.cursor, width))
		}
		for _, it := range members {
			emit(m.renderItem(it, v, rowIdx == m.cursor, width))
		}
	}
	if len(v.Ungrouped) > 0 {
		if len(form.Groups) > 0 {
			emit(HeaderStyle.Render(" Ungrouped"))
		}
		for _, it := range v.Ungrouped {
			emit(m.renderItem(it, v, rowIdx == m.cursor, width))
		}
	}

	if len(lines) == 0 {
		lines = []string{DimStyle.Render(" Empty form. Press 'a' to add a field.")}
	}

	m.clampScroll(len(lines))
	visible := m.visibleLines(lines)

	return lipgloss.NewStyle().
		Width(width).
		Render(strings.Join(visible, "\n"))
}

func (m *EditorModel) canvasHeight() int {
	h := m.height - canvasTop - 2
	if h < 1 {
		h = 1
	}
	return h
}

// clampScroll keeps the cursor row inside the visible window.
func (m *EditorModel) clampScroll(totalLines int) {
	height := m.canvasHeight()
	if row := m.currentRow(); row != nil {
		if row.top < m.scroll {
			m.scroll = row.top
		}
		if bottom := row.top + row.height; bottom > m.scroll+height {
			m.scroll = bottom - height
		}
	}
	if m.scroll > totalLines-height {
		m.scroll = totalLines - height
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *EditorModel) visibleLines(lines []string) []string {
	height := m.canvasHeight()
	start := m.scroll
	if start > len(lines) {
		start = len(lines)
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}

func (m *EditorModel) renderGroupHeader(g *models.Group, count int, selected bool, width int) string {
	nav := string(g.NextAction.Type)
	if g.NextAction.Type == models.NextActionJump {
		nav = "jump:" + g.NextAction.JumpTo
		if target := m.engine.Form().GroupByID(g.NextAction.JumpTo); target != nil {
			nav = "jump:" + target.DisplayName()
		}
	}
	text := fmt.Sprintf("▞ %s (%d) [%s]", g.DisplayName(), count, nav)

	style := GroupHeaderStyle
	if m.coordinator.Kind() == drag.KindGroup && m.coordinator.ActiveID() == g.ID {
		style = DraggingStyle
	} else if selected {
		style = SelectedStyle
	}
	return style.Render(truncate(text, width-1))
}

func (m *EditorModel) renderGroupZone(selected bool, width int) string {
	text := "   (empty — drag items here)"
	if selected {
		return SelectedStyle.Render(truncate(text, width-1))
	}
	return DimStyle.Render(truncate(text, width-1))
}

func (m *EditorModel) renderItem(it models.Item, v derive.View, selected bool, width int) string {
	if m.expandedID == it.ItemID() && m.itemEditor != nil {
		return m.itemEditor.View(width)
	}

	var b strings.Builder
	b.WriteString("  ")

	if n, ok := v.QuestionNumbers[it.ItemID()]; ok {
		b.WriteString(fmt.Sprintf("%d. ", n))
	}
	b.WriteString(it.DisplayLabel())

	if f, ok := models.AsField(it); ok {
		if f.Required {
			b.WriteString(" *")
		}
		tag := string(f.Type)
		if f.ProfileKey != "" {
			tag = "profile:" + string(f.ProfileKey)
		}
		b.WriteString("  [" + tag + "]")
	} else if cb, ok := models.AsContentBlock(it); ok {
		b.WriteString("  [" + string(cb.Style) + "]")
	}

	if !it.IsEnabled() {
		b.WriteString("  (off)")
	}

	line := truncate(b.String(), width-1)
	switch {
	case m.coordinator.Kind() == drag.KindItem && m.coordinator.ActiveID() == it.ItemID():
		return DraggingStyle.Render("» " + strings.TrimPrefix(line, "  "))
	case selected:
		return SelectedStyle.Render(line)
	case !it.IsEnabled():
		return DisabledStyle.Render(line)
	}
	return NormalStyle.Render(line)
}

func (m *EditorModel) renderSidePane() string {
	width := m.width - m.canvasWidth()
	height := m.canvasHeight()

	var content string
	switch m.activePane {
	case panePalette:
		content = m.palette.View(width - 2)
	case paneSettings:
		content = m.settingsPanel.View(width - 2)
	default:
		// The preview scrolls inside a viewport; its content refreshes
		// on every render so edits show up immediately.
		m.previewVP.SetContent(m.renderPreview(width - 4))
		return InactiveBorderStyle.Width(width - 2).Render(m.previewVP.View())
	}

	lines := strings.Split(content, "\n")
	if len(lines) > height-2 {
		lines = lines[:height-2]
	}
	return ActiveBorderStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m *EditorModel) renderPreview(width int) string {
	if width < 20 {
		width = 20
	}
	rendered, err := preview.RenderForm(m.engine.Form(), preview.Options{Width: width})
	if err != nil {
		return StatusErrorStyle.Render("preview unavailable: " + err.Error())
	}
	return rendered
}

func truncate(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	// ANSI-styled strings cannot be sliced byte-wise; cut plain runs only.
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
