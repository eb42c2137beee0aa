package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.MaxDurationSeconds <= 0 {
		return errors.New("download.max_duration_seconds must be positive")
	}
	if len(c.Download.AllowedQualities) == 0 {
		return errors.New("download.allowed_qualities must not be empty")
	}
	for _, quality := range c.Download.AllowedQualities {
		if quality == "" {
			return errors.New("download.allowed_qualities must not contain empty values")
		}
	}
	if !c.QualityAllowed(c.Download.DefaultQuality) {
		return fmt.Errorf("download.default_quality %q must be one of download.allowed_qualities %v",
			c.Download.DefaultQuality, c.Download.AllowedQualities)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
