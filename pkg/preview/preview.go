// Package preview renders a non-interactive text representation of a
// form: the same enabled filtering, group pagination order and question
// numbering a live form would use. Rich-text values are opaque HTML and
// pass through untouched.
package preview

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/formloom/formloom-cli/pkg/derive"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

// Options control rendering.
type Options struct {
	// Width wraps long lines; zero disables wrapping.
	Width int
}

// RenderForm renders the form as plain text, page by page.
func RenderForm(form *models.Form, opts Options) (string, error) {
	if form == nil {
		return "", fmt.Errorf("form is nil")
	}

	// Disabled items never appear in the preview; numbering already
	// accounts for them.
	view := derive.ComputeView(form.Items, form.Groups, form.Settings, derive.Options{HideDisabled: true})

	var output strings.Builder
	output.WriteString(fmt.Sprintf("# %s\n\n", form.Name))

	if len(form.Groups) == 0 {
		renderItems(&output, view.Ungrouped, view.QuestionNumbers, opts)
	} else {
		for i := range form.Groups {
			g := &form.Groups[i]
			output.WriteString(fmt.Sprintf("## %s\n\n", g.DisplayName()))
			if g.Description != "" {
				writeWrapped(&output, g.Description, opts)
				output.WriteString("\n")
			}
			renderItems(&output, view.Grouped[g.ID], view.QuestionNumbers, opts)
			if nav := navigationLine(g, form); nav != "" {
				output.WriteString(nav + "\n\n")
			}
		}
		renderItems(&output, view.Ungrouped, view.QuestionNumbers, opts)
	}

	output.WriteString(fmt.Sprintf("[ %s ]\n", form.Settings.SubmitButtonText))

	return output.String(), nil
}

// navigationLine describes where a completed page leads.
func navigationLine(g *models.Group, form *models.Form) string {
	switch g.NextAction.Type {
	case models.NextActionJump:
		if target := form.GroupByID(g.NextAction.JumpTo); target != nil {
			return fmt.Sprintf("-> continues at %s", target.DisplayName())
		}
		return ""
	case models.NextActionSubmit:
		return "-> submits the form"
	default:
		return ""
	}
}

func renderItems(output *strings.Builder, items models.ItemList, numbers map[string]int, opts Options) {
	for _, it := range items {
		if f, ok := models.AsField(it); ok {
			renderField(output, f, numbers, opts)
			continue
		}
		if b, ok := models.AsContentBlock(it); ok {
			renderContentBlock(output, b, opts)
		}
	}
}

func renderField(output *strings.Builder, f *models.Field, numbers map[string]int, opts Options) {
	label := f.DisplayLabel()
	if f.Required {
		label += " *"
	}
	if n, ok := numbers[f.ID]; ok {
		output.WriteString(fmt.Sprintf("%d. %s\n", n, label))
	} else {
		output.WriteString(label + "\n")
	}

	if f.Description != "" {
		writeWrapped(output, f.Description, opts)
	}

	renderFieldInput(output, f)
	output.WriteString("\n")
}

func renderFieldInput(output *strings.Builder, f *models.Field) {
	hint := ""
	switch f.HintMode {
	case models.HintDefaultValue:
		hint = f.DefaultValue
	default:
		hint = f.Placeholder
	}

	switch f.Type {
	case models.FieldShortText, models.FieldNumber, models.FieldEmail, models.FieldPhone:
		output.WriteString(fmt.Sprintf("   [%s]\n", hint))
	case models.FieldLongText:
		output.WriteString(fmt.Sprintf("   [%s\n    ]\n", hint))
	case models.FieldSingleChoice:
		for _, opt := range f.Options {
			output.WriteString(fmt.Sprintf("   ( ) %s\n", opt.Label))
		}
		if f.Choice != nil && f.Choice.AllowOther {
			output.WriteString("   ( ) Other: [    ]\n")
		}
	case models.FieldMultipleChoice:
		for _, opt := range f.Options {
			output.WriteString(fmt.Sprintf("   [ ] %s\n", opt.Label))
		}
		if f.Choice != nil && f.Choice.AllowOther {
			output.WriteString("   [ ] Other: [    ]\n")
		}
	case models.FieldDropdown:
		labels := make([]string, len(f.Options))
		for i, opt := range f.Options {
			labels[i] = opt.Label
		}
		output.WriteString(fmt.Sprintf("   [%s v]\n", strings.Join(labels, " | ")))
	case models.FieldRatingMatrix:
		if f.Matrix != nil {
			output.WriteString(fmt.Sprintf("   | %s |\n", strings.Join(f.Matrix.Levels, " | ")))
			for _, row := range f.Matrix.Rows {
				output.WriteString(fmt.Sprintf("   %s: %s\n", row, strings.Repeat("( ) ", len(f.Matrix.Levels))))
			}
		}
	case models.FieldDate:
		if f.Date != nil {
			parts := []string{}
			if f.Date.IncludeYear {
				parts = append(parts, fmt.Sprintf("YYYY (%d-%d)", f.Date.MinYear, f.Date.MaxYear))
			}
			if f.Date.IncludeMonth {
				parts = append(parts, "MM")
			}
			if f.Date.IncludeDay {
				parts = append(parts, "DD")
			}
			output.WriteString(fmt.Sprintf("   [%s]\n", strings.Join(parts, " / ")))
		}
	case models.FieldFileUpload:
		if f.Upload != nil {
			var kinds []string
			if f.Upload.Images.Enabled {
				kinds = append(kinds, fmt.Sprintf("images <= %dMB", f.Upload.Images.MaxSizeMB))
			}
			if f.Upload.Documents.Enabled {
				kinds = append(kinds, fmt.Sprintf("documents <= %dMB", f.Upload.Documents.MaxSizeMB))
			}
			if f.Upload.Video.Enabled {
				kinds = append(kinds, fmt.Sprintf("video <= %dMB", f.Upload.Video.MaxSizeMB))
			}
			output.WriteString(fmt.Sprintf("   [upload: %s]\n", strings.Join(kinds, ", ")))
		}
	case models.FieldSubscribe:
		if f.Subscribe != nil {
			output.WriteString(fmt.Sprintf("   [ ] %s\n", f.Subscribe.InviteText))
		}
	case models.FieldTerms:
		if f.Terms != nil {
			output.WriteString(fmt.Sprintf("   [ ] %s\n", f.Terms.TermsText))
		}
	}
}

func renderContentBlock(output *strings.Builder, b *models.ContentBlock, opts Options) {
	switch b.Style {
	case models.ContentSectionTitle:
		output.WriteString(fmt.Sprintf("### %s\n\n", b.Content))
	case models.ContentDivider:
		output.WriteString("---\n\n")
	case models.ContentSpacer:
		output.WriteString("\n")
	case models.ContentQuote:
		writeWrapped(output, "> "+b.Content, opts)
		output.WriteString("\n")
	default:
		writeWrapped(output, b.Content, opts)
		output.WriteString("\n")
	}
}

func writeWrapped(output *strings.Builder, s string, opts Options) {
	if opts.Width > 0 {
		s = wordwrap.String(s, opts.Width)
	}
	output.WriteString(s + "\n")
}

// WriteExportFile writes the rendered form to the output file
func WriteExportFile(content string, outputPath string) error {
	if outputPath == "" {
		outputPath = files.DefaultOutputFile
	}

	if err := files.WriteFile(outputPath, content); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	return nil
}
