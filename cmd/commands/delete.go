package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formloom/formloom-cli/internal/cli"
	"github.com/formloom/formloom-cli/pkg/files"
)

var (
	deleteForce bool
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a form",
		Long: `Permanently delete a form definition.

This action cannot be undone.

Examples:
  # Delete a form (with confirmation)
  formloom delete signup

  # Force delete without confirmation
  formloom delete signup --force`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			return ctx.ValidateProject()
		},
		RunE: runDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Force deletion without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	path := cli.ResolveFormPath(args[0])

	form, err := files.ReadForm(path)
	if err != nil {
		return err
	}

	if !deleteForce {
		ok, err := cli.Confirm(fmt.Sprintf("Delete form %q (%s)?", form.Name, summarizeItems(form)), false)
		if err != nil {
			return err
		}
		if !ok {
			cli.PrintInfo("Cancelled")
			return nil
		}
	}

	if err := files.DeleteForm(path); err != nil {
		return err
	}

	cli.PrintSuccess("Deleted form %s", form.Name)
	return nil
}
