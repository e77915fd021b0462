package doctor

import (
	"fmt"
	"strings"

	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/util"
)

// WidgetKeysCheck verifies every configured widget names a metric that
// exists in the history. Unknown keys render as "no data" cards.
type WidgetKeysCheck struct {
	Env *Env
}

func (c *WidgetKeysCheck) Name() string     { return "widget_keys" }
func (c *WidgetKeysCheck) Category() string { return "WIDGETS" }

func (c *WidgetKeysCheck) Run() CheckResult {
	if !c.Env.configUsable() || !c.Env.historyUsable() {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No widgets to check",
		}
	}

	widgets := c.Env.Config.Widgets
	if len(widgets) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No widgets configured, every metric is shown",
		}
	}

	known := c.Env.Data.History.Keys(c.Env.Data.Latest)
	present := make(map[string]bool, len(known))
	for _, k := range known {
		present[k] = true
	}

	var unknown, hints []string
	for _, w := range widgets {
		if present[w.Key] {
			continue
		}
		unknown = append(unknown, w.Key)
		if similar := util.SuggestSimilar(w.Key, known, 1); len(similar) > 0 {
			hints = append(hints, fmt.Sprintf("'%s': did you mean '%s'?", w.Key, similar[0]))
		}
	}

	if len(unknown) > 0 {
		suggestion := "Check the widget keys against 'dashbuild list'"
		if len(hints) > 0 {
			suggestion = strings.Join(hints, "\n")
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Not in history: %s", util.JoinOrNone(unknown)),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%d %s, all found in history", len(widgets),
			util.Pluralize(len(widgets), "widget", "widgets")),
	}
}

// WidgetDomainCheck warns when sampled values fall outside a widget's
// y_domain. Those points draw off the chart, and reversed widgets mirror
// them to misleading positions.
type WidgetDomainCheck struct {
	Env *Env
}

func (c *WidgetDomainCheck) Name() string     { return "widget_domains" }
func (c *WidgetDomainCheck) Category() string { return "WIDGETS" }

func (c *WidgetDomainCheck) Run() CheckResult {
	if !c.Env.configUsable() || !c.Env.historyUsable() {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No widgets to check",
		}
	}

	var outside []string
	checked := 0
	for _, w := range c.Env.Config.Widgets {
		if len(w.YDomain) != 2 {
			continue
		}
		checked++
		dom := chart.Domain{Min: w.YDomain[0], Max: w.YDomain[1]}
		n := 0
		for _, p := range c.Env.Data.History.Project(w.Key) {
			if !dom.Contains(p.Value) {
				n++
			}
		}
		if n > 0 {
			outside = append(outside, fmt.Sprintf("'%s': %d %s outside [%v, %v]",
				w.Key, n, util.Pluralize(n, "value", "values"), dom.Min, dom.Max))
		}
	}

	if len(outside) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Values outside y_domain for %d %s", len(outside), util.Pluralize(len(outside), "widget", "widgets")),
			Suggestion: strings.Join(outside, "\n"),
		}
	}

	if checked == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No widget sets y_domain",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("All values inside y_domain (%d %s)", checked, util.Pluralize(checked, "widget", "widgets")),
	}
}
