package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/formloom/formloom-cli/cmd/commands"
	"github.com/formloom/formloom-cli/internal/cli"
	"github.com/formloom/formloom-cli/pkg/files"
	"github.com/formloom/formloom-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagQuiet       bool
	flagNoColor     bool
	flagSkipConfirm bool
)

var rootCmd = &cobra.Command{
	Use:   "formloom",
	Short: "Terminal-based form definition editor",
	Long:  `Formloom is a terminal-based editor for form definitions. It stores forms as plain YAML files and provides a TUI for arranging fields, content blocks and pages, with an exportable text preview.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(flagQuiet, flagNoColor, flagSkipConfirm)
	},
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(tui.NewApp())
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Formloom project",
	Long:  `Creates the .formloom folder structure in the current directory`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Initializing Formloom project in %s...\n", cwd)

		if err := files.InitProjectStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize project structure: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure you have write permissions in the current directory.\n")
			os.Exit(1)
		}

		fmt.Println("✓ Created .formloom folder structure")
		fmt.Println("✓ You can now create forms!")
		fmt.Println("\nRun 'formloom' to start the interactive TUI.")
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Open a form directly in the editor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		if !strings.HasSuffix(path, ".yaml") {
			path += ".yaml"
		}
		runTUI(tui.NewAppWithForm(path))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Formloom",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Formloom version %s\n", version)
	},
}

func requireProject() {
	if !files.ProjectExists() {
		fmt.Fprintf(os.Stderr, "Error: No .formloom directory found in the current directory.\n")
		fmt.Fprintf(os.Stderr, "Please run 'formloom init' first to initialize a new project.\n")
		os.Exit(1)
	}
}

func runTUI(app *tui.App) {
	requireProject()
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
		fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagSkipConfirm, "yes", "y", false, "Skip confirmation prompts")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewRenameCommand())
	rootCmd.AddCommand(commands.NewSettingsCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
