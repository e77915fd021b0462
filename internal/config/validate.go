package config

import (
	"fmt"
	"regexp"

	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/errors"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
var ansiColorPattern = regexp.MustCompile(`^[0-9]{1,3}$`)

// Validate checks the config for errors and returns structured error
// messages. Settings that are legal but have no effect come back as
// warnings.
func Validate(cfg *Config) (warnings []string, err error) {
	if cfg.Version > CurrentConfigVersion {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but dashbuild only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade dashbuild to read this file.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your dashbuild.yaml.")
	}

	if err := validateTheme(cfg.Theme); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Use '#rrggbb' hex colours or ANSI numbers (0-255).")
	}

	seen := make(map[string]bool)
	for i, w := range cfg.Widgets {
		if w.Key == "" {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Widget #%d has no key", i+1),
				"Every widget needs 'key' naming a metric in the history file.")
		}
		if seen[w.Key] {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Widget '%s' is defined twice", w.Key),
				"Remove or rename one of them.")
		}
		seen[w.Key] = true

		warns, err := ValidateWidget(w)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'widgets' section in your dashbuild.yaml.")
		}
		warnings = append(warnings, warns...)
	}

	return warnings, nil
}

// ValidateWidget checks a single widget. Errors are plain; Validate wraps
// them as config errors.
func ValidateWidget(w WidgetConfig) ([]string, error) {
	var warnings []string

	switch len(w.YDomain) {
	case 0:
		if w.Reverse {
			warnings = append(warnings, fmt.Sprintf("widget '%s': reverse has no effect without y_domain", w.Key))
		}
	case 2:
		if w.YDomain[0] >= w.YDomain[1] {
			return nil, fmt.Errorf("widget '%s': y_domain min (%v) must be below max (%v)", w.Key, w.YDomain[0], w.YDomain[1])
		}
	default:
		return nil, fmt.Errorf("widget '%s': y_domain needs exactly two values [min, max], got %d", w.Key, len(w.YDomain))
	}

	if w.Inverse && w.Neutral {
		warnings = append(warnings, fmt.Sprintf("widget '%s': neutral overrides inverse", w.Key))
	}

	if _, err := chart.ParseFormat(w.TickFormat); err != nil {
		return nil, fmt.Errorf("widget '%s': tick_format '%s' isn't valid", w.Key, w.TickFormat)
	}
	if _, err := chart.ParseFormat(w.ValueFormat); err != nil {
		return nil, fmt.Errorf("widget '%s': value_format '%s' isn't valid", w.Key, w.ValueFormat)
	}

	if w.Color != "" && !validColor(w.Color) {
		return nil, fmt.Errorf("widget '%s': color '%s' isn't a '#rrggbb' hex colour or ANSI number", w.Key, w.Color)
	}

	return warnings, nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	if out.Width < 0 {
		return fmt.Errorf("output.width can't be negative")
	}
	return nil
}

func validateTheme(t ThemeConfig) error {
	for name, c := range map[string]string{"up": t.Up, "down": t.Down, "flat": t.Flat, "accent": t.Accent, "muted": t.Muted} {
		if c != "" && !validColor(c) {
			return fmt.Errorf("theme.%s '%s' isn't a valid colour", name, c)
		}
	}
	return nil
}

func validColor(c string) bool {
	return hexColorPattern.MatchString(c) || ansiColorPattern.MatchString(c)
}
