package commands

import (
	"github.com/spf13/cobra"

	"github.com/formloom/formloom-cli/internal/cli"
	"github.com/formloom/formloom-cli/pkg/files"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a form",
		Long: `Rename a form definition.

Examples:
  # Rename a form
  formloom rename signup event-signup`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			if err := ctx.ValidateProject(); err != nil {
				return err
			}
			return cli.ValidateFormName(args[1])
		},
		RunE: runRename,
	}

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	if err := files.RenameForm(cli.ResolveFormPath(args[0]), args[1]); err != nil {
		return err
	}

	cli.PrintSuccess("Renamed %s to %s", args[0], args[1])
	return nil
}
