package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRules(); err != nil {
		return err
	}
	if err := c.normalizeFilter(); err != nil {
		return err
	}
	c.normalizeCaptions()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeRules() error {
	c.Rules.BuildTarget = strings.ToLower(strings.TrimSpace(c.Rules.BuildTarget))
	if c.Rules.BuildTarget == "" {
		c.Rules.BuildTarget = defaultBuildTarget
	}
	if env, ok := os.LookupEnv("MUFFLE_RULES_DB"); ok && strings.TrimSpace(env) != "" {
		c.Rules.CustomDB = env
	}
	if strings.TrimSpace(c.Rules.CustomDB) == "" {
		c.Rules.CustomDB = defaultCustomDB
	}
	var err error
	if c.Rules.CustomDB, err = expandPath(c.Rules.CustomDB); err != nil {
		return fmt.Errorf("rules.custom_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeFilter() error {
	if c.Filter.Censor == "" {
		c.Filter.Censor = defaultCensor
	}
	if strings.TrimSpace(c.Filter.WordListPath) == "" {
		return nil
	}
	var err error
	if c.Filter.WordListPath, err = expandPath(c.Filter.WordListPath); err != nil {
		return fmt.Errorf("filter.word_list_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCaptions() {
	c.Captions.DefaultShow = strings.TrimSpace(c.Captions.DefaultShow)
	if c.Captions.DefaultShow == "" {
		c.Captions.DefaultShow = defaultShowPolicy
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
	if len(c.Logging.Paths) == 0 {
		c.Logging.Paths = []string{"stderr"}
	}
}
