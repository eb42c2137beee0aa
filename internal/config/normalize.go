package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = defaultTempDir
	}
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownload() {
	c.Download.DefaultQuality = strings.TrimSpace(c.Download.DefaultQuality)
	if c.Download.DefaultQuality == "" {
		c.Download.DefaultQuality = defaultQuality
	}
	if len(c.Download.AllowedQualities) == 0 {
		c.Download.AllowedQualities = defaultAllowedQualities()
	}
	for i, quality := range c.Download.AllowedQualities {
		c.Download.AllowedQualities[i] = strings.TrimSpace(quality)
	}
	c.Download.YtdlpBinary = strings.TrimSpace(c.Download.YtdlpBinary)
	if c.Download.YtdlpBinary == "" {
		c.Download.YtdlpBinary = defaultYtdlpBinary
	}
	c.Download.FfmpegBinary = strings.TrimSpace(c.Download.FfmpegBinary)
	if c.Download.FfmpegBinary == "" {
		c.Download.FfmpegBinary = defaultFfmpegBinary
	}
	if c.Download.ChunkSize <= 0 {
		c.Download.ChunkSize = defaultChunkSize
	}
	if c.Download.Workers <= 0 {
		c.Download.Workers = defaultWorkers
	}
	if c.Download.StaleWorkspaceMinutes <= 0 {
		c.Download.StaleWorkspaceMinutes = defaultStaleWorkspaceMinutes
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
