package config

const (
	defaultConfigPath = "~/.config/filesort/config.toml"
	defaultStateDir   = "~/.local/share/filesort"
	defaultLogDir     = "~/.local/share/filesort/logs"
	defaultCatchAll   = "Others"
	defaultSchedule   = "@every 10m"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults. Categories are
// left empty so the built-in table applies.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Organize: Organize{
			CatchAll: defaultCatchAll,
		},
		History: History{
			Enabled: true,
		},
		Watch: Watch{
			Schedule: defaultSchedule,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
