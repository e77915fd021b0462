package cli

import (
	"fmt"
	"io"

	"github.com/dashbuild/dashbuild/internal/config"
	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dashbuild/dashbuild/internal/logger"
	"github.com/dashbuild/dashbuild/internal/ui"
	"github.com/spf13/cobra"
)

// AddResult is the --json shape of the add command.
type AddResult struct {
	Path   string              `json:"path"`
	Widget config.WidgetConfig `json:"widget"`
}

var addFlags widgetFlags

var addCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Add a widget to dashbuild.yaml",
	Long: `Append a widget to the widgets list of the config file. Comments and
the order of existing widgets are kept.

Examples:
  dashbuild add coverage --suffix %
  dashbuild add rating --title "User rating" --y-domain 1,5 --reverse
  dashbuild add defects --inverse --tick-format int`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addCommand(cmd.OutOrStdout(), cfgFile, args[0], addFlags.overrides(cmd), cliLog)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addWidgetFlags(addCmd, &addFlags)
}

func addCommand(w io.Writer, configPath, key string, o WidgetOverrides, log logger.Logger) error {
	path, err := config.Find(configPath)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"Config file not found",
			"Run 'dashbuild init' to create one, or pass --config")
	}

	widget := o.Apply(config.WidgetConfig{Key: key})
	warnings, err := config.ValidateWidget(widget)
	if err != nil {
		return errors.New(errors.ErrInput, err.Error(),
			"Check the widget flags; run 'dashbuild add --help' for accepted values")
	}
	for _, warn := range warnings {
		log.Warn("%s", warn)
	}

	if err := config.AddWidget(path, widget); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't add widget '%s' to %s", key, path),
			"Fix the file by hand or remove the existing widget first")
	}

	if machineMode {
		return WriteJSONSuccess(w, AddResult{Path: path, Widget: widget})
	}
	fmt.Fprintf(w, "%s Added widget '%s' to %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), key, path)
	return nil
}
