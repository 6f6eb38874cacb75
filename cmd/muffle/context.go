package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"muffle/internal/config"
	"muffle/internal/filter"
	"muffle/internal/logging"
	"muffle/internal/rulestore"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the CLI logger from the configured logging
// section, falling back to a no-op logger when config loading failed.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: cfg.Logging.Paths,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logging.NewComponentLogger(logger, "cli")
	})
	return c.logger
}

// withStore opens the custom-rules store for the configured database
// path and closes it when fn returns.
func (c *commandContext) withStore(fn func(*rulestore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	path, err := config.ExpandPath(cfg.Rules.CustomDB)
	if err != nil {
		return err
	}
	store, err := rulestore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	c.ensureLogger().Debug("opened rule store", logging.String("path", path))
	return fn(store)
}

// wordFilter builds the text filter from the configured word list.
func (c *commandContext) wordFilter() (filter.Filter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	words := filter.DefaultWords()
	if cfg.Filter.WordListPath != "" {
		path, err := config.ExpandPath(cfg.Filter.WordListPath)
		if err != nil {
			return nil, err
		}
		words, err = filter.LoadWords(path)
		if err != nil {
			return nil, err
		}
	}
	return filter.NewWordList(words, cfg.Filter.Censor), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
