package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formloom/formloom-cli/internal/cli"
	"github.com/formloom/formloom-cli/pkg/derive"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a form's structure",
		Long: `Show a form's pages, items and settings.

Disabled items are listed with an 'off' marker; question numbers appear
when the form has numbering turned on.

Examples:
  # Show a form
  formloom show signup

  # Raw definition as YAML
  formloom show signup --output yaml`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			return ctx.ValidateProject()
		},
		RunE: runShow,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	if err := cli.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	form, err := files.ReadForm(cli.ResolveFormPath(args[0]))
	if err != nil {
		return err
	}

	if cli.OutputFormat(outputFormat) != cli.FormatText {
		return cli.OutputResults(os.Stdout, outputFormat, form)
	}

	fmt.Printf("Form: %s (%s)\n", form.Name, summarizeItems(form))

	view := derive.ComputeView(form.Items, form.Groups, form.Settings, derive.Options{})

	if len(form.Groups) == 0 {
		printItems(view.Ungrouped, view.QuestionNumbers, "  ")
	} else {
		for i := range form.Groups {
			g := &form.Groups[i]
			fmt.Printf("\nPage: %s\n", g.DisplayName())
			printItems(view.Grouped[g.ID], view.QuestionNumbers, "  ")
		}
		if len(view.Ungrouped) > 0 {
			fmt.Println("\nUngrouped:")
			printItems(view.Ungrouped, view.QuestionNumbers, "  ")
		}
	}

	fmt.Printf("\nSubmit button: %q\n", form.Settings.SubmitButtonText)
	if len(form.Settings.ProfileFields) > 0 {
		keys := make([]string, len(form.Settings.ProfileFields))
		for i, k := range form.Settings.ProfileFields {
			keys[i] = string(k)
		}
		fmt.Printf("Profile fields: %v\n", keys)
	}

	return nil
}

func printItems(items models.ItemList, numbers map[string]int, indent string) {
	for _, it := range items {
		marker := ""
		if !it.IsEnabled() {
			marker = " (off)"
		}

		if f, ok := models.AsField(it); ok {
			prefix := ""
			if n, numbered := numbers[f.ID]; numbered {
				prefix = fmt.Sprintf("%d. ", n)
			}
			required := ""
			if f.Required {
				required = " *"
			}
			fmt.Printf("%s%s%s%s [%s]%s\n", indent, prefix, cli.TruncateString(f.DisplayLabel(), 50), required, f.Type, marker)
			continue
		}

		if b, ok := models.AsContentBlock(it); ok {
			fmt.Printf("%s- %s [%s]%s\n", indent, cli.TruncateString(b.DisplayLabel(), 50), b.Style, marker)
		}
	}
}
