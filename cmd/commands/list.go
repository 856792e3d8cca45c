package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formloom/formloom-cli/internal/cli"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Forms []ListItem `json:"forms" yaml:"forms"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single form in the list
type ListItem struct {
	Name     string `json:"name" yaml:"name"`
	Filename string `json:"filename" yaml:"filename"`
	Items    int    `json:"items" yaml:"items"`
	Pages    int    `json:"pages" yaml:"pages"`
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List forms in the current project",
		Long: `List all form definitions in the current project.

Examples:
  # List all forms
  formloom list

  # Machine-readable output
  formloom list --output json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			return ctx.ValidateProject()
		},
		RunE: runList,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	if err := cli.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	paths, err := files.ListForms()
	if err != nil {
		return fmt.Errorf("failed to list forms: %w", err)
	}

	result := ListResult{Count: len(paths)}
	for _, path := range paths {
		form, err := files.ReadForm(path)
		if err != nil {
			cli.PrintError("Skipping %s: %v", path, err)
			continue
		}
		result.Forms = append(result.Forms, ListItem{
			Name:     form.Name,
			Filename: path,
			Items:    len(form.Items),
			Pages:    len(form.Groups),
		})
	}

	if cli.OutputFormat(outputFormat) != cli.FormatText {
		return cli.OutputResults(os.Stdout, outputFormat, result)
	}

	if len(result.Forms) == 0 {
		fmt.Println("No forms yet. Run 'formloom create <name>' to start one.")
		return nil
	}

	table := cli.NewTableFormatter(os.Stdout)
	table.Header("NAME", "ITEMS", "PAGES", "FILE")
	for _, item := range result.Forms {
		table.Row(
			cli.TruncateString(item.Name, 40),
			fmt.Sprintf("%d", item.Items),
			fmt.Sprintf("%d", item.Pages),
			item.Filename,
		)
	}
	table.Flush()

	return nil
}

// summarizeItems is shared by list and show output.
func summarizeItems(form *models.Form) string {
	fields, blocks := 0, 0
	for _, it := range form.Items {
		if models.IsField(it) {
			fields++
		} else {
			blocks++
		}
	}

	parts := []string{fmt.Sprintf("%d fields", fields)}
	if blocks > 0 {
		parts = append(parts, fmt.Sprintf("%d content blocks", blocks))
	}
	return strings.Join(parts, ", ")
}
