package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dashbuild/dashbuild/internal/config"
	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dashbuild/dashbuild/internal/metric"
	"github.com/dashbuild/dashbuild/internal/ui"
	"github.com/spf13/cobra"
)

// NonInteractiveEnv skips the init prompts when set.
const NonInteractiveEnv = "DASHBUILD_NON_INTERACTIVE"

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Config file to write; defaults to ./dashbuild.yaml
	Title          string // Dashboard title
	History        string // History file path
	Key            string // First widget's metric key
	Suffix         string // First widget's unit suffix
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
}

// InitResult is the --json shape of the init command.
type InitResult struct {
	Path    string   `json:"path"`
	History string   `json:"history"`
	Widgets []string `json:"widgets"`
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a dashbuild.yaml in the current directory",
	Long: `Create a starter dashbuild.yaml with a title, the history file location
and one widget.

Prompts for each value unless --non-interactive is given, CI is set, or
DASHBUILD_NON_INTERACTIVE is set. When the history file already exists its
metrics are offered as the first widget.

Examples:
  dashbuild init
  dashbuild init --history data/metrics.json --key coverage --suffix % --non-interactive`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		opts.Path = cfgFile
		return initCommand(cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initOpts.Title, "title", "", "dashboard title")
	initCmd.Flags().StringVar(&initOpts.Key, "key", "", "metric key for the first widget")
	initCmd.Flags().StringVar(&initOpts.Suffix, "suffix", "", "unit suffix for the first widget")
	initCmd.Flags().BoolVar(&initOpts.Overwrite, "force", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts")
}

func initCommand(w io.Writer, opts InitOptions) error {
	if opts.Path == "" {
		opts.Path = filepath.Join(".", config.ConfigFileName)
	}
	if opts.History == "" {
		opts.History = historyFile
	}
	interactive := !opts.NonInteractive && !machineMode &&
		os.Getenv("CI") == "" && os.Getenv(NonInteractiveEnv) == ""

	if _, err := os.Stat(opts.Path); err == nil && !opts.Overwrite {
		if !interactive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", opts.Path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", opts.Path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	if opts.History == "" {
		opts.History = config.DefaultHistoryFile
	}
	if interactive {
		if err := promptInit(&opts); err != nil {
			return err
		}
	}

	cfg := buildInitConfig(opts)
	if _, err := config.Validate(cfg); err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# dashbuild configuration
# Run 'dashbuild render' to print cards or 'dashbuild view' for the dashboard
# Widgets: key, title, suffix, color, y_domain, reverse, inverse, neutral,
#          tick_format, value_format (int, fixed:N, percent, comma, si)

`
	if err := os.WriteFile(opts.Path, []byte(header+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", opts.Path),
			"Check directory permissions")
	}

	if machineMode {
		keys := make([]string, len(cfg.Widgets))
		for i, wc := range cfg.Widgets {
			keys[i] = wc.Key
		}
		return WriteJSONSuccess(w, InitResult{Path: opts.Path, History: cfg.History, Widgets: keys})
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), opts.Path)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  dashbuild list        - See the metrics in your history file")
	fmt.Fprintln(w, "  dashbuild add <key>   - Add a widget")
	fmt.Fprintln(w, "  dashbuild view        - Open the dashboard")
	return nil
}

// buildInitConfig turns the answers into a config.
func buildInitConfig(opts InitOptions) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Title = strings.TrimSpace(opts.Title)
	cfg.History = opts.History
	if key := strings.TrimSpace(opts.Key); key != "" {
		cfg.Widgets = append(cfg.Widgets, config.WidgetConfig{Key: key, Suffix: opts.Suffix})
	}
	return cfg
}

// promptInit asks for the values not given as flags. The history file is
// read, when it exists, to offer its metrics as the first widget.
func promptInit(opts *InitOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dashboard title").
				Description("Shown at the top of 'dashbuild view'").
				Placeholder("Team health").
				Value(&opts.Title),
			huh.NewInput().
				Title("History file").
				Description("YAML or JSON metric history, relative to the config (supports ${PROJECT}, ${USER}, ${HOME})").
				Placeholder(config.DefaultHistoryFile).
				Value(&opts.History).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("history file is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	if opts.Key != "" {
		return nil
	}

	var keyField huh.Field
	if keys := historyKeys(opts.Path, opts.History); len(keys) > 0 {
		options := append([]huh.Option[string]{huh.NewOption("(none)", "")}, huh.NewOptions(keys...)...)
		keyField = huh.NewSelect[string]().
			Title("First widget").
			Options(options...).
			Value(&opts.Key)
	} else {
		keyField = huh.NewInput().
			Title("First widget (optional)").
			Description("Metric key as it appears in the history file").
			Placeholder("coverage").
			Value(&opts.Key)
	}

	form = huh.NewForm(
		huh.NewGroup(
			keyField,
			huh.NewInput().
				Title("Unit suffix (optional)").
				Placeholder("%").
				Value(&opts.Suffix),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return nil
}

// historyKeys lists the metrics of the history file a new config at
// configPath would point at, or nil if it can't be read.
func historyKeys(configPath, history string) []string {
	cfg := &config.Config{History: history, Dir: filepath.Dir(configPath)}
	data, err := metric.LoadFile(cfg.HistoryPath(""))
	if err != nil {
		return nil
	}
	return data.History.Keys(data.Latest)
}
