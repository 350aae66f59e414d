package main

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/axonbase/internal/cli"
	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/utils"
)

const (
	configName = "axonbase"
	envPrefix  = "AXONBASE"
)

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"kinds":    "kinds",
	"module":   "module",
	"verbose":  "verbose",
	"quiet":    "quiet",
	"dry-run":  "dry_run",
	"snapshot": "snapshots",
	"prune":    "prune",
}

// settings is the resolved configuration of one invocation
type settings struct {
	Directories []string `mapstructure:"directories"`
	Kinds       []string `mapstructure:"kinds"`
	Module      string   `mapstructure:"module"`
	Verbose     bool     `mapstructure:"verbose"`
	Quiet       bool     `mapstructure:"quiet"`
	DryRun      bool     `mapstructure:"dry_run"`
	Snapshots   []string `mapstructure:"snapshots"`
	Prune       bool     `mapstructure:"prune"`
}

// loadSettings layers flags over AXONBASE_* environment variables over the
// config file. Without --config, axonbase.yaml in the working directory is
// used when present.
func loadSettings(cmd *cobra.Command, args []string) (settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return settings{}, errors.Wrap(errors.ConfigurationErrorCode, "failed to bind flag", err).
					WithContext("flag", flag)
			}
		}
	}
	// keys only read from the environment need to be known to Unmarshal
	v.SetDefault("directories", []string{})

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return settings{}, errors.Wrap(errors.ConfigurationErrorCode, "failed to read config file", err).
				WithSuggestion("Check the YAML syntax of " + configName + ".yaml")
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, errors.Wrap(errors.ConfigurationErrorCode, "failed to decode configuration", err)
	}
	if len(args) > 0 {
		s.Directories = args
	}
	s.Kinds = splitList(s.Kinds)
	s.Snapshots = splitList(s.Snapshots)
	return s, nil
}

// splitList flattens comma separated entries, as environment variables
// carry lists in one value
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// level picks the diagnostic level, quiet winning over verbose
func (s settings) level() utils.DiagnosticLevel {
	switch {
	case s.Quiet:
		return utils.DiagnosticError
	case s.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}

// config converts the settings into a generation round configuration
func (s settings) config() cli.Config {
	return cli.Config{
		Directories: s.Directories,
		ModuleName:  s.Module,
		Kinds:       s.Kinds,
		Snapshots:   s.Snapshots,
		DryRun:      s.DryRun,
		Prune:       s.Prune,
		Verbose:     s.Verbose,
	}
}
