package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCategories(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCategories() error {
	if len(c.Categories) > 0 && strings.TrimSpace(c.Organize.CategoriesFile) != "" {
		return errors.New("organize.categories_file and [[categories]] are mutually exclusive")
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for idx, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("categories[%d]: name must not be empty", idx)
		}
		if strings.ContainsAny(cat.Name, `/\`) || cat.Name == "." || cat.Name == ".." {
			return fmt.Errorf("categories[%d]: name %q is not a valid folder name", idx, cat.Name)
		}
		key := strings.ToLower(cat.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("categories[%d]: duplicate name %q", idx, cat.Name)
		}
		seen[key] = struct{}{}
	}
	if strings.ContainsAny(c.Organize.CatchAll, `/\`) {
		return fmt.Errorf("organize.catch_all: %q is not a valid folder name", c.Organize.CatchAll)
	}
	return nil
}

func (c *Config) validateWatch() error {
	if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
		return fmt.Errorf("watch.schedule: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
