// Package config loads the application configuration of gridmdp from a
// JSON file, a .env file, and the environment
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/samuelfneumann/gridmdp/dp"
	log "github.com/sirupsen/logrus"
)

// Environment variables which override values read from a config file
const (
	EnvGamma         = "GRIDMDP_GAMMA"
	EnvTheta         = "GRIDMDP_THETA"
	EnvMaxIterations = "GRIDMDP_MAX_ITERATIONS"
	EnvWorkers       = "GRIDMDP_WORKERS"
	EnvLogLevel      = "GRIDMDP_LOG_LEVEL"
	EnvAddr          = "GRIDMDP_ADDR"
)

// DefaultEnvFile is the .env file read when Load is given none
const DefaultEnvFile = ".env"

// Config holds the application's configuration values
type Config struct {
	Solver   dp.Config `json:"solver"`
	LogLevel string    `json:"log_level"`
	Addr     string    `json:"addr"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Solver:   dp.DefaultConfig(),
		LogLevel: "info",
		Addr:     ":8080",
	}
}

// Load returns the default configuration overridden first by the JSON
// file at path, if path is not empty, and then by the GRIDMDP_*
// environment variables. Variables in envFiles are added to the
// environment first without replacing variables which are already set.
// If no envFiles are given, DefaultEnvFile is read if it exists.
func Load(path string, envFiles ...string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load: could not read config: %w", err)
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("load: could not decode config: %w",
				err)
		}
	}

	if len(envFiles) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("load: %w", err)
			}
			log.Debugf("load: no %s file found", DefaultEnvFile)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}

	if err := config.ApplyEnv(); err != nil {
		return Config{}, err
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// ApplyEnv overrides the fields of c with the GRIDMDP_* environment
// variables which are set
func (c *Config) ApplyEnv() error {
	if err := floatEnv(EnvGamma, &c.Solver.Gamma); err != nil {
		return err
	}
	if err := floatEnv(EnvTheta, &c.Solver.Theta); err != nil {
		return err
	}
	if err := intEnv(EnvMaxIterations, &c.Solver.MaxIterations); err != nil {
		return err
	}
	if err := intEnv(EnvWorkers, &c.Solver.Workers); err != nil {
		return err
	}
	if value, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = value
	}
	if value, ok := os.LookupEnv(EnvAddr); ok {
		c.Addr = value
	}
	return nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.Addr == "" {
		return fmt.Errorf("validate: address cannot be empty")
	}
	return nil
}

// Level returns the log level of the configuration, or log.InfoLevel if
// the level cannot be parsed
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Save writes the configuration to path as JSON
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// floatEnv sets *dst from the environment variable key, if it is set
func floatEnv(key string, dst *float64) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("apply env: %s must be a number: %w", key, err)
	}
	*dst = f
	return nil
}

// intEnv sets *dst from the environment variable key, if it is set
func intEnv(key string, dst *int) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("apply env: %s must be an integer: %w", key, err)
	}
	*dst = i
	return nil
}
