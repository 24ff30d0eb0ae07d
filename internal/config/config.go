// Package config provides configuration parsing and validation for the
// monitor.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration parameters for the monitor. API
// credentials come from my.telegram.org; everything else has a working
// default for a Termux install.
type Config struct {
	APIID        int
	APIHash      string
	Phone        string
	SessionFile  string
	DatabaseFile string
	Debug        bool
}

// Validate checks that all required configuration fields are set.
// Returns an error if validation fails, nil otherwise.
func (c *Config) Validate() error {
	if c.APIID == 0 {
		return fmt.Errorf("api-id cannot be empty (set API_ID in .env)")
	}
	if c.APIHash == "" {
		return fmt.Errorf("api-hash cannot be empty (set API_HASH in .env)")
	}
	if c.SessionFile == "" {
		return fmt.Errorf("session-file cannot be empty")
	}
	if c.DatabaseFile == "" {
		return fmt.Errorf("database-file cannot be empty")
	}
	return nil
}

// GetEnvOrDefault returns the environment variable value or a default if
// not set.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvIntOrDefault returns the environment variable parsed as an
// integer, or a default if unset or unparsable.
func GetEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
