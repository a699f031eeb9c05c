package config

const (
	defaultOutputDir    = "."
	defaultOutputSuffix = ".fixed.zip"
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Dir:    defaultOutputDir,
			Suffix: defaultOutputSuffix,
		},
		Transform: Transform{
			RewriteLinks:    true,
			RemoveTitle:     false,
			MoveIndexMD:     true,
			StripCommonRoot: true,
			Workers:         0,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
