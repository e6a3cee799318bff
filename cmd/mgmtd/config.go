// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"flag"
	"io/ioutil"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

// Config holds the daemon settings.  Each can come from the YAML
// configuration file or from the command line; a flag that is given
// explicitly wins over the file.
type Config struct {
	// HTTP is the [ip]:port to listen on.
	HTTP string `mapstructure:"http"`

	// Backend is the impl[:address] of the storage backend.
	Backend string `mapstructure:"backend"`

	// APIPrefix is the URL path the REST API is served under.
	APIPrefix string `mapstructure:"api_prefix"`

	// APIRoot is the absolute URL the console uses to reach the
	// REST API.  It also appears in the links the console builds.
	APIRoot string `mapstructure:"api_root"`

	// MgmtRoot, if set, is the base URL of experiment detail
	// pages.
	MgmtRoot string `mapstructure:"mgmt_root"`

	// LogRequests turns on per-request logging.
	LogRequests bool `mapstructure:"log_requests"`

	// LogLevel is the logrus level name.
	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		HTTP:      ":5980",
		Backend:   "memory",
		APIPrefix: "/v1",
		APIRoot:   "http://localhost:5980/v1/",
		LogLevel:  "info",
	}
}

// flagNames maps command-line flag names to configuration keys.
var flagNames = map[string]string{
	"http":         "http",
	"backend":      "backend",
	"api-prefix":   "api_prefix",
	"api-root":     "api_root",
	"mgmt-root":    "mgmt_root",
	"log-requests": "log_requests",
	"log-level":    "log_level",
}

// loadConfigYaml reads a YAML configuration file into a generic map.
func loadConfigYaml(filename string) (map[string]interface{}, error) {
	var result map[string]interface{}
	bytes, err := ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, err
}

// Merge decodes settings into the configuration.  Unknown keys are an
// error; values are converted to the field types where possible, so
// "log_requests: yes" and "log_requests: 1" both work.
func (cfg *Config) Merge(settings map[string]interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(settings)
}

// MergeFlags copies every flag that was set explicitly on the command
// line into the configuration.
func (cfg *Config) MergeFlags(flags *flag.FlagSet) error {
	settings := make(map[string]interface{})
	flags.Visit(func(f *flag.Flag) {
		if key, known := flagNames[f.Name]; known {
			settings[key] = f.Value.String()
		}
	})
	return cfg.Merge(settings)
}

// LoadConfig builds the configuration from defaults, then the YAML
// file (if filename is not empty), then the explicitly set flags.
func LoadConfig(filename string, flags *flag.FlagSet) (Config, error) {
	cfg := DefaultConfig()
	if filename != "" {
		settings, err := loadConfigYaml(filename)
		if err != nil {
			return cfg, err
		}
		if err = cfg.Merge(settings); err != nil {
			return cfg, err
		}
	}
	err := cfg.MergeFlags(flags)
	return cfg, err
}
