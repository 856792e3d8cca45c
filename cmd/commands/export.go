package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/formloom/formloom-cli/internal/cli"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/preview"
)

var (
	exportToFile    string
	exportClipboard bool
	exportWidth     int
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a form preview",
		Long: `Render a form the way a respondent would see it and print it.

Disabled items are skipped, pages render in group order and question
numbers appear when the form has numbering on. Rich-text values pass
through as-is.

Examples:
  # Print the rendered form
  formloom export signup

  # Write to a file
  formloom export signup --file signup.md

  # Copy to the system clipboard
  formloom export signup --clipboard`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			return ctx.ValidateProject()
		},
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to file instead of stdout")
	cmd.Flags().BoolVarP(&exportClipboard, "clipboard", "c", false, "Copy to the system clipboard")
	cmd.Flags().IntVarP(&exportWidth, "width", "w", 0, "Wrap long lines at width (0 = no wrapping)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	form, err := files.ReadForm(cli.ResolveFormPath(args[0]))
	if err != nil {
		return err
	}

	content, err := preview.RenderForm(form, preview.Options{Width: exportWidth})
	if err != nil {
		return fmt.Errorf("failed to render form: %w", err)
	}

	if exportClipboard {
		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("Copied %s to clipboard", form.Name)
		return nil
	}

	if exportToFile != "" {
		if err := preview.WriteExportFile(content, exportToFile); err != nil {
			return err
		}
		cli.PrintSuccess("Exported %s to %s", form.Name, exportToFile)
		return nil
	}

	fmt.Print(content)
	return nil
}
