package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BackendCLI    = "cli"
	BackendNative = "native"

	fileName  = ".tagmyrebase"
	envPrefix = "TAGMYREBASE"
)

type Config struct {
	TagUpstream    string        `mapstructure:"tag_upstream"`
	TagHead        string        `mapstructure:"tag_head"`
	BranchHead     string        `mapstructure:"branch_head"`
	Backend        string        `mapstructure:"backend"`
	GitBinary      string        `mapstructure:"git_binary"`
	RepoDir        string        `mapstructure:"repo_dir"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	LockTimeout    time.Duration `mapstructure:"lock_timeout"`
	DryRun         bool          `mapstructure:"dry_run"`
	Verbose        bool          `mapstructure:"verbose"`
}

// flagKeys maps configuration keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"tag_upstream": "tag-upstream",
	"tag_head":     "tag-head",
	"branch_head":  "branch-head",
	"backend":      "backend",
	"repo_dir":     "repo-dir",
	"dry_run":      "dry-run",
	"verbose":      "verbose",
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Backend:        BackendCLI,
		GitBinary:      "git",
		RepoDir:        ".",
		CommandTimeout: 30 * time.Second,
		LockTimeout:    10 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCLI:
		if strings.TrimSpace(c.GitBinary) == "" {
			return fmt.Errorf("git_binary cannot be empty")
		}
	case BackendNative:
	default:
		return fmt.Errorf("invalid backend %q: expected %s or %s", c.Backend, BackendCLI, BackendNative)
	}
	if c.RepoDir == "" {
		return fmt.Errorf("repo_dir cannot be empty")
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout cannot be negative")
	}
	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout cannot be negative")
	}
	return nil
}

// HasActions reports whether any of the three templates is set.
func (c *Config) HasActions() bool {
	return c.TagUpstream != "" || c.TagHead != "" || c.BranchHead != ""
}

// LockEnabled reports whether mutating runs take the repository run lock.
func (c *Config) LockEnabled() bool {
	return !c.DryRun && c.LockTimeout > 0
}

// Load merges defaults, the config file, TAGMYREBASE_* environment variables
// and the flags that were set on the command line, in increasing priority.
// The config file is looked up in searchPaths, or the working directory.
func Load(flags *pflag.FlagSet, searchPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	for _, path := range searchPaths {
		v.AddConfigPath(path)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults := DefaultConfig()
	v.SetDefault("tag_upstream", "")
	v.SetDefault("tag_head", "")
	v.SetDefault("branch_head", "")
	v.SetDefault("backend", defaults.Backend)
	v.SetDefault("git_binary", defaults.GitBinary)
	v.SetDefault("repo_dir", defaults.RepoDir)
	v.SetDefault("command_timeout", defaults.CommandTimeout)
	v.SetDefault("lock_timeout", defaults.LockTimeout)
	v.SetDefault("dry_run", false)
	v.SetDefault("verbose", false)
	if flags != nil {
		for key, name := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
