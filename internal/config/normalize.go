package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOrganize(); err != nil {
		return err
	}
	c.normalizeCategories()
	c.normalizeWatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("FILESORT_STATE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganize() error {
	c.Organize.CatchAll = strings.TrimSpace(c.Organize.CatchAll)
	if c.Organize.CatchAll == "" {
		c.Organize.CatchAll = defaultCatchAll
	}
	c.Organize.Extensions = NormalizeExtensions(c.Organize.Extensions)
	if file := strings.TrimSpace(c.Organize.CategoriesFile); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("organize.categories_file: %w", err)
		}
		c.Organize.CategoriesFile = expanded
	}
	return nil
}

func (c *Config) normalizeCategories() {
	for i := range c.Categories {
		c.Categories[i].Name = strings.TrimSpace(c.Categories[i].Name)
		c.Categories[i].Extensions = NormalizeExtensions(c.Categories[i].Extensions)
	}
}

func (c *Config) normalizeWatch() {
	c.Watch.Schedule = strings.TrimSpace(c.Watch.Schedule)
	if c.Watch.Schedule == "" {
		c.Watch.Schedule = defaultSchedule
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("FILESORT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// NormalizeExtensions lowercases extensions, adds a missing leading dot,
// drops blanks and removes duplicates while keeping first-seen order.
func NormalizeExtensions(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		ext := strings.ToLower(strings.TrimSpace(value))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}
