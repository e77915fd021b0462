package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "dashbuild.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/dashbuild"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. DASHBUILD_HISTORY.
	EnvPrefix = "DASHBUILD"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'dashbuild init' to create one, or point at it with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	cfg, err := parseConfig(v, path)
	if err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. dashbuild.yaml in current directory
// 3. dashbuild.yaml in parent directories (stops at git root or home)
// 4. ~/.config/dashbuild/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	home, _ := os.UserHomeDir()
	if path := findUpwards(cwd, home); path != "" {
		return path, nil
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// findUpwards looks for ConfigFileName in dir and its parents, stopping
// after a git root and never climbing above home.
func findUpwards(dir, home string) string {
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		if isGitRoot(dir) {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault loads config from the found path, or returns defaults if
// nothing was found.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		v := newViper()
		return parseConfig(v, "")
	}

	return Load(path)
}

// HistoryPath resolves the history file: an override wins, then the
// configured path relative to the config file's directory.
func (c *Config) HistoryPath(override string) string {
	p := c.History
	if override != "" {
		return ExpandTilde(Expand(override))
	}
	if p == "" {
		p = DefaultHistoryFile
	}
	p = ExpandTilde(Expand(p))
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "the config file"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	return cfg, nil
}

// setDefaults registers every scalar key so environment overrides apply.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("title", "")
	v.SetDefault("history", def.History)
	v.SetDefault("output.color", def.Output.Color)
	v.SetDefault("output.width", def.Output.Width)
	v.SetDefault("output.date_layout", def.Output.DateLayout)
	v.SetDefault("theme.up", "")
	v.SetDefault("theme.down", "")
	v.SetDefault("theme.flat", "")
	v.SetDefault("theme.accent", "")
	v.SetDefault("theme.muted", "")
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}
