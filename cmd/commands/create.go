package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formloom/formloom-cli/internal/cli"
	"github.com/formloom/formloom-cli/pkg/collection"
	"github.com/formloom/formloom-cli/pkg/factory"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new form",
		Long: `Create a new, empty form definition.

The form starts with default settings (name and email profile fields
toggled on, question numbering off) and no items. Open the TUI to add
fields, content blocks and pages.

Examples:
  # Create a new form
  formloom create signup

  # Then edit it interactively
  formloom edit signup`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			if err := ctx.ValidateProject(); err != nil {
				return err
			}

			return cli.ValidateFormName(args[0])
		},
		RunE: runCreate,
	}

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	path := cli.ResolveFormPath(name)

	if _, err := files.ReadForm(path); err == nil {
		return fmt.Errorf("a form named %s already exists", name)
	}

	form := &models.Form{
		Name:     name,
		Path:     path,
		Settings: models.DefaultFormSettings(),
	}

	// The default profile keys have to be materialized as fields so the
	// settings and the collection start in sync.
	defaults := form.Settings.ProfileFields
	form.Settings.ProfileFields = nil
	engine := collection.NewEngine(form, factory.New())
	for _, key := range defaults {
		if err := engine.ToggleProfileField(key, true); err != nil {
			return fmt.Errorf("failed to seed profile fields: %w", err)
		}
	}

	if err := files.WriteForm(form); err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}

	cli.PrintSuccess("Created form %s", name)
	cli.PrintInfo("Run 'formloom edit %s' to add fields", name)
	return nil
}
