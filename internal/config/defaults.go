package config

const (
	defaultBuildTarget  = "extension"
	defaultCustomDB     = "~/.local/share/muffle/rules.db"
	defaultCensor       = "***"
	defaultFillerVolume = 0.2
	defaultShowPolicy   = "all"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Rules: Rules{
			BuildTarget: defaultBuildTarget,
			CustomDB:    defaultCustomDB,
		},
		Filter: Filter{
			Censor:       defaultCensor,
			StatsEnabled: true,
		},
		Filler: Filler{
			Enabled: true,
			Volume:  defaultFillerVolume,
		},
		Captions: Captions{
			DefaultShow: defaultShowPolicy,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Paths:  []string{"stderr"},
		},
	}
}
