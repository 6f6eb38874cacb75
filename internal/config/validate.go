package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Rules.BuildTarget {
	case "extension", "userscript":
	default:
		return fmt.Errorf("rules.build_target: unsupported value %q", c.Rules.BuildTarget)
	}

	if c.Filler.Volume < 0 || c.Filler.Volume > 1 {
		return fmt.Errorf("filler.volume must be between 0 and 1, got %v", c.Filler.Volume)
	}
	if c.Filler.LoopStart < 0 {
		return fmt.Errorf("filler.loop_start must not be negative, got %v", c.Filler.LoopStart)
	}

	switch c.Captions.DefaultShow {
	case "all", "filteredOnly", "unfilteredOnly", "none":
	default:
		return fmt.Errorf("captions.default_show: unsupported value %q", c.Captions.DefaultShow)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
