package doctor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dashbuild/dashbuild/internal/config"
	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dashbuild/dashbuild/internal/util"
)

// ConfigFileCheck verifies that a config file exists.
type ConfigFileCheck struct {
	Env *Env
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return "CONFIG" }

func (c *ConfigFileCheck) Run() CheckResult {
	if c.Env.FindErr != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    messageOf(c.Env.FindErr),
			Suggestion: "Check the --config path, or run 'dashbuild init' to create a config",
		}
	}

	if c.Env.ConfigPath == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, using defaults",
			Suggestion: fmt.Sprintf("Run 'dashbuild init' to create a %s", config.ConfigFileName),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(c.Env.ConfigPath)),
	}
}

// ConfigSchemaCheck verifies that the config parses and validates. Settings
// that have no effect are reported as a warning.
type ConfigSchemaCheck struct {
	Env *Env
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return "CONFIG" }

func (c *ConfigSchemaCheck) Run() CheckResult {
	if c.Env.FindErr != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Cannot validate schema: no config file",
		}
	}
	if c.Env.LoadErr != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    messageOf(c.Env.LoadErr),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	warnings, err := config.Validate(c.Env.Config)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Schema error: %s", messageOf(err)),
			Suggestion: suggestionOf(err, "Fix the configuration errors in your dashbuild.yaml"),
		}
	}

	if len(warnings) > 0 {
		return CheckResult{
			Name:   c.Name(),
			Status: StatusWarn,
			Message: fmt.Sprintf("%d %s no effect", len(warnings),
				util.Pluralize(len(warnings), "setting has", "settings have")),
			Suggestion: strings.Join(warnings, "\n"),
		}
	}

	n := len(c.Env.Config.Widgets)
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Schema valid, %d %s configured", n, util.Pluralize(n, "widget", "widgets")),
	}
}

// messageOf returns the headline of a structured error, or the plain text of
// any other error.
func messageOf(err error) string {
	if e, ok := err.(*errors.Error); ok {
		return e.Message
	}
	return err.Error()
}

// suggestionOf returns the structured error's suggestion, or def.
func suggestionOf(err error, def string) string {
	if e, ok := err.(*errors.Error); ok && e.Suggestion != "" {
		return e.Suggestion
	}
	return def
}
