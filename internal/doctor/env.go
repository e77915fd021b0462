package doctor

import (
	"github.com/dashbuild/dashbuild/internal/config"
	"github.com/dashbuild/dashbuild/internal/metric"
)

// Env is a workspace loaded once and shared by every check, so a broken
// config is reported by one check and skipped quietly by the rest.
type Env struct {
	// ConfigPath is the config file found, or empty when defaults apply.
	ConfigPath string
	FindErr    error

	// Config is nil when the file exists but couldn't be loaded.
	Config  *config.Config
	LoadErr error

	HistoryPath string
	Data        *metric.Dataset
	HistoryErr  error
}

// Inspect locates and loads the config and its history file. Errors are
// recorded on the Env for the checks to report, never returned.
func Inspect(explicitConfig, historyOverride string) *Env {
	env := &Env{}

	env.ConfigPath, env.FindErr = config.Find(explicitConfig)
	switch {
	case env.FindErr != nil:
		return env
	case env.ConfigPath == "":
		env.Config = config.DefaultConfig()
	default:
		env.Config, env.LoadErr = config.Load(env.ConfigPath)
		if env.LoadErr != nil {
			return env
		}
	}

	env.HistoryPath = env.Config.HistoryPath(historyOverride)
	env.Data, env.HistoryErr = metric.LoadFile(env.HistoryPath)
	return env
}

// configUsable reports whether a config, found or default, is in hand.
func (e *Env) configUsable() bool {
	return e.Config != nil
}

// historyUsable reports whether the history file loaded.
func (e *Env) historyUsable() bool {
	return e.Data != nil
}

// NewChecks returns every check in report order.
func NewChecks(env *Env) []Check {
	return []Check{
		&ConfigFileCheck{env},
		&ConfigSchemaCheck{env},
		&HistoryFileCheck{env},
		&HistoryOrderCheck{env},
		&HistoryValuesCheck{env},
		&HistoryTrendCheck{env},
		&WidgetKeysCheck{env},
		&WidgetDomainCheck{env},
	}
}
