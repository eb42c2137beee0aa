package config

const (
	defaultHost                  = "0.0.0.0"
	defaultPort                  = 8000
	defaultTempDir               = "~/.local/share/hometunes/temp"
	defaultLogDir                = "~/.local/share/hometunes/logs"
	defaultQuality               = "192"
	defaultMaxDurationSeconds    = 3600
	defaultChunkSize             = 8192
	defaultWorkers               = 2
	defaultYtdlpBinary           = "yt-dlp"
	defaultFfmpegBinary          = "ffmpeg"
	defaultStaleWorkspaceMinutes = 120
	defaultHistoryPath           = "~/.local/share/hometunes/history.db"
	defaultNotifyRequestTimeout  = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

func defaultAllowedQualities() []string {
	return []string{"128", "192", "320"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Host: defaultHost,
			Port: defaultPort,
		},
		Paths: Paths{
			TempDir: defaultTempDir,
			LogDir:  defaultLogDir,
		},
		Download: Download{
			DefaultQuality:        defaultQuality,
			AllowedQualities:      defaultAllowedQualities(),
			MaxDurationSeconds:    defaultMaxDurationSeconds,
			ChunkSize:             defaultChunkSize,
			Workers:               defaultWorkers,
			YtdlpBinary:           defaultYtdlpBinary,
			FfmpegBinary:          defaultFfmpegBinary,
			StaleWorkspaceMinutes: defaultStaleWorkspaceMinutes,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Downloads:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
