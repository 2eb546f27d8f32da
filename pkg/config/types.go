package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent loom configuration stored as config.toml
// in the .loom/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Storage   StorageConfig   `toml:"storage"`
	Simulator SimulatorConfig `toml:"simulator"`
	Logging   LoggingConfig   `toml:"logging"`
}

// StorageConfig holds snapshot store settings.
type StorageConfig struct {
	Driver      string `toml:"driver,omitempty"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	JSONPath    string `toml:"json_path,omitempty"`
	PostgresDSN string `toml:"postgres_dsn,omitempty"`
}

// SimulatorConfig holds content-source settings.
type SimulatorConfig struct {
	Provider string `toml:"provider,omitempty"`
	Target   string `toml:"target,omitempty"`
	Model    string `toml:"model,omitempty"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Debug bool `toml:"debug,omitempty"`
	JSON  bool `toml:"json,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.driver": {
		get: func(c *Config) string { return c.Storage.Driver },
		set: func(c *Config, v string) error { c.Storage.Driver = v; return nil },
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.json_path": {
		get: func(c *Config) string { return c.Storage.JSONPath },
		set: func(c *Config, v string) error { c.Storage.JSONPath = v; return nil },
	},
	"storage.postgres_dsn": {
		get: func(c *Config) string { return c.Storage.PostgresDSN },
		set: func(c *Config, v string) error { c.Storage.PostgresDSN = v; return nil },
	},
	"simulator.provider": {
		get: func(c *Config) string { return c.Simulator.Provider },
		set: func(c *Config, v string) error { c.Simulator.Provider = v; return nil },
	},
	"simulator.target": {
		get: func(c *Config) string { return c.Simulator.Target },
		set: func(c *Config, v string) error { c.Simulator.Target = v; return nil },
	},
	"simulator.model": {
		get: func(c *Config) string { return c.Simulator.Model },
		set: func(c *Config, v string) error { c.Simulator.Model = v; return nil },
	},
	"logging.debug": {
		get: func(c *Config) string { return strconv.FormatBool(c.Logging.Debug) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for logging.debug: %w", err)
			}
			c.Logging.Debug = b
			return nil
		},
	},
	"logging.json": {
		get: func(c *Config) string { return strconv.FormatBool(c.Logging.JSON) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for logging.json: %w", err)
			}
			c.Logging.JSON = b
			return nil
		},
	},
}
