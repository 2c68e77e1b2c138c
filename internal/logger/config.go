package logger

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format selects the output format: "json" or "console".
	Format string `yaml:"format" mapstructure:"format"`

	// Output selects the destination: "stdout" or "stderr".
	Output string `yaml:"output" mapstructure:"output"`

	// NoColor disables ANSI colors in console output.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`

	// Timestamp adds a timestamp field to every entry.
	Timestamp bool `yaml:"timestamp" mapstructure:"timestamp"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}
