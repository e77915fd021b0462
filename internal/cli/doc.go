// Package cli implements the dashbuild command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a plain function that takes its options and an io.Writer.
// The general structure follows a clean separation between:
//
//   - Command definitions (cobra.Command instances and their flags)
//   - Workspace loading (config discovery, validation, history file)
//   - Implementation details (in the chart, render and dashboard packages)
//
// # Command Structure
//
// The root command is "dashbuild" with subcommands for different operations:
//
//	dashbuild list              - Show every metric with its latest value and trend
//	dashbuild trend <key>       - Print the trend badge for a metric
//	dashbuild chart <key>       - Print the chart description (text, json, yaml)
//	dashbuild render [keys...]  - Print terminal cards
//	dashbuild export <key> -o   - Write a PNG or SVG chart
//	dashbuild view              - Interactive dashboard
//	dashbuild init              - Create dashbuild.yaml
//	dashbuild add <key>         - Append a widget to dashbuild.yaml
//	dashbuild doctor            - Check the config and history for problems
//
// # Workspace
//
// loadWorkspace finds and validates the config, logs validation warnings,
// applies the colour mode and reads the history file. Widgets resolve from
// the config first; a metric present in the history but not configured gets
// a plain widget so every key can be inspected without editing the config.
//
// # Flag Handling
//
// Global flags (--config, --history, --json, --color) are defined on the
// root command and available to all subcommands. With --json every command
// writes a {success, data, error} envelope to stdout, errors included.
package cli
