package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatNumber renders integers plainly and anything else with at most two
// decimals, trailing zeros trimmed.
func FormatNumber(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(2).String()
}

// FormatInt renders v rounded to the nearest integer.
func FormatInt(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(0).String()
}

// FormatFixed returns a formatter with exactly places decimals.
func FormatFixed(places int32) Formatter {
	return func(v float64) string {
		if !finite(v) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return decimal.NewFromFloat(v).StringFixed(places)
	}
}

// WithSuffix appends suffix to everything f produces.
func WithSuffix(f Formatter, suffix string) Formatter {
	if suffix == "" {
		return f
	}
	return func(v float64) string {
		return f(v) + suffix
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isInteger(v float64) bool {
	return finite(v) && v == math.Trunc(v)
}

// FormatNames lists the names accepted by ParseFormat.
var FormatNames = []string{"int", "fixed:N", "percent", "comma", "si"}

// ParseFormat resolves a named formatter from configuration. An empty name
// returns a nil Formatter, meaning "use the default".
func ParseFormat(name string) (Formatter, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, nil
	case name == "int":
		return FormatInt, nil
	case name == "percent":
		return WithSuffix(FormatNumber, "%"), nil
	case name == "comma":
		return func(v float64) string {
			if !finite(v) {
				return strconv.FormatFloat(v, 'g', -1, 64)
			}
			return humanize.Commaf(decimal.NewFromFloat(v).Round(2).InexactFloat64())
		}, nil
	case name == "si":
		return func(v float64) string {
			s := humanize.SIWithDigits(v, 1, "")
			return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
		}, nil
	case strings.HasPrefix(name, "fixed:"):
		places, err := strconv.Atoi(strings.TrimPrefix(name, "fixed:"))
		if err != nil || places < 0 || places > 6 {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Format %q needs a decimal count between 0 and 6", name),
				"Use something like fixed:1 or fixed:2")
		}
		return FormatFixed(int32(places)), nil
	}

	return nil, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown format %q", name),
		"Known formats: "+strings.Join(FormatNames, ", "))
}
