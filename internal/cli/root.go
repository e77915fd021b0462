package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/logger"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Global flags
var (
	cfgFile     string
	historyFile string
	colorFlag   string
)

// Color modes accepted by --color and output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var cliLog = logger.NewEnvLogger("cli")

var rootCmd = &cobra.Command{
	Use:   "dashbuild",
	Short: "Terminal dashboards for metric history",
	Long: `dashbuild turns a metric history file into trend badges, terminal cards,
chart images and an interactive dashboard.

Widgets are described in dashbuild.yaml, found in the current directory or
any parent up to the repository root, or ~/.config/dashbuild/config.yaml.

Examples:
  dashbuild list
  dashbuild render
  dashbuild chart coverage --format yaml
  dashbuild export coverage -o coverage.png
  dashbuild view`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateColorMode(colorFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search for dashbuild.yaml)")
	rootCmd.PersistentFlags().StringVar(&historyFile, "history", "", "history file (overrides the config's history)")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "color output: auto, always, never (default from config)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(handleError(err, os.Stdout, os.Stderr))
	}
}

// handleError reports err in the active output mode and returns the exit code.
func handleError(err error, stdout, stderr io.Writer) int {
	if machineMode {
		_ = WriteJSONFromError(stdout, err)
		return 1
	}

	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(stderr, msg)
	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(stderr, "\nDid you mean this?\n  %s\n", strings.Join(suggestions, "\n  "))
			}
		}
		fmt.Fprintln(stderr, "\nRun 'dashbuild --help' for usage.")
	}
	return 1
}

// isUnknownCommandError checks if the error is cobra's unknown command or flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of
// `unknown command "foo" for "dashbuild"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func validateColorMode(mode string) error {
	switch mode {
	case "", ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return fmt.Errorf("invalid --color %q: use auto, always or never", mode)
}

// colorProfile picks the lipgloss profile for a colour mode. The flag wins
// over the config; auto colours only real terminals.
func colorProfile(flag, configured string, tty bool) termenv.Profile {
	mode := flag
	if mode == "" {
		mode = configured
	}
	switch mode {
	case ColorAlways:
		return termenv.TrueColor
	case ColorNever:
		return termenv.Ascii
	}
	if !tty || machineMode {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func applyColorMode(configured string) {
	lipgloss.SetColorProfile(colorProfile(colorFlag, configured, stdoutIsTerminal()))
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the stdout width, or fallback when it is not a terminal.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
