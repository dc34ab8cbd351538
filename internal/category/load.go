package category

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"filesort/internal/config"
)

// File is the on-disk shape of a standalone category table.
type File struct {
	CatchAll   string `toml:"catch_all" yaml:"catch_all"`
	Categories []Rule `toml:"categories" yaml:"categories"`
}

// LoadFile reads a category table from a .toml, .yaml or .yml file. The
// file's catch_all wins over fallbackCatchAll when set.
func LoadFile(path, fallbackCatchAll string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category file: %w", err)
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parse category file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parse category file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("category file %s: unsupported format (use .toml, .yaml or .yml)", path)
	}

	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("category file %s: no categories defined", path)
	}
	catchAll := strings.TrimSpace(file.CatchAll)
	if catchAll == "" {
		catchAll = fallbackCatchAll
	}
	table, err := NewTable(file.Categories, catchAll)
	if err != nil {
		return nil, fmt.Errorf("category file %s: %w", path, err)
	}
	return table, nil
}

// FromConfig builds the active table: a categories file when configured, then
// inline [[categories]], then the built-in rules.
func FromConfig(cfg *config.Config) (*Table, error) {
	if cfg == nil {
		return Default(""), nil
	}
	catchAll := cfg.Organize.CatchAll
	if file := strings.TrimSpace(cfg.Organize.CategoriesFile); file != "" {
		return LoadFile(file, catchAll)
	}
	if len(cfg.Categories) > 0 {
		rules := make([]Rule, 0, len(cfg.Categories))
		for _, cat := range cfg.Categories {
			rules = append(rules, Rule{Name: cat.Name, Extensions: cat.Extensions})
		}
		return NewTable(rules, catchAll)
	}
	return NewTable(DefaultRules(), catchAll)
}
