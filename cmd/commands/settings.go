package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/formloom/formloom-cli/internal/cli"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/models"
)

// NewSettingsCommand creates the settings command
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or change application settings",
		Long: `Inspect or change the application settings stored in
.formloom/settings.yaml.

Keys:
  output.default_filename  - default export filename
  output.export_path       - default export directory
  ui.show_preview          - show the preview pane in the editor
  ui.hide_disabled         - hide disabled items in the editor canvas

Examples:
  # Show all settings
  formloom settings get

  # Change a setting
  formloom settings set ui.hide_disabled true`,
	}

	cmd.AddCommand(newSettingsGetCommand())
	cmd.AddCommand(newSettingsSetCommand())

	return cmd
}

func newSettingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print settings",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			return ctx.ValidateProject()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := files.ReadSettings()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return cli.OutputResults(os.Stdout, "yaml", settings)
			}

			value, err := settingsValue(settings, args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
}

func newSettingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			return ctx.ValidateProject()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := files.ReadSettings()
			if err != nil {
				return err
			}

			if err := applySetting(settings, args[0], args[1]); err != nil {
				return err
			}
			if err := files.WriteSettings(settings); err != nil {
				return err
			}

			cli.PrintSuccess("Set %s = %s", args[0], args[1])
			return nil
		},
	}
}

func settingsValue(s *models.Settings, key string) (string, error) {
	switch key {
	case "output.default_filename":
		return s.Output.DefaultFilename, nil
	case "output.export_path":
		return s.Output.ExportPath, nil
	case "ui.show_preview":
		return strconv.FormatBool(s.UI.ShowPreview), nil
	case "ui.hide_disabled":
		return strconv.FormatBool(s.UI.HideDisabled), nil
	default:
		return "", fmt.Errorf("unknown settings key: %s", key)
	}
}

func applySetting(s *models.Settings, key, value string) error {
	switch key {
	case "output.default_filename":
		s.Output.DefaultFilename = value
	case "output.export_path":
		s.Output.ExportPath = value
	case "ui.show_preview", "ui.hide_disabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("value for %s must be true or false", key)
		}
		if key == "ui.show_preview" {
			s.UI.ShowPreview = b
		} else {
			s.UI.HideDisabled = b
		}
	default:
		return fmt.Errorf("unknown settings key: %s", key)
	}
	return nil
}
