package category

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Rule names a category and the extensions that belong to it. Extensions are
// dot-prefixed and compared after Unicode case folding.
type Rule struct {
	Name       string   `toml:"name" yaml:"name" json:"name"`
	Extensions []string `toml:"extensions" yaml:"extensions" json:"extensions"`
}

// Table is an immutable, ordered category lookup.
type Table struct {
	rules    []Rule
	catchAll string
}

// NewTable validates rules and builds a table. A rule that reuses the
// catch-all name without extensions is dropped since the catch-all is always
// matched last. Extensions already claimed by an earlier rule are removed from
// later rules.
func NewTable(rules []Rule, catchAll string) (*Table, error) {
	catchAll = strings.TrimSpace(catchAll)
	if catchAll == "" {
		return nil, errors.New("category table: catch-all name must not be empty")
	}
	if !validFolderName(catchAll) {
		return nil, fmt.Errorf("category table: catch-all %q is not a valid folder name", catchAll)
	}

	names := make(map[string]struct{}, len(rules)+1)
	claimed := make(map[string]string)
	out := make([]Rule, 0, len(rules))
	for idx, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return nil, fmt.Errorf("category table: rule %d has no name", idx)
		}
		if !validFolderName(name) {
			return nil, fmt.Errorf("category table: %q is not a valid folder name", name)
		}
		key := fold(name)
		if key == fold(catchAll) && len(rule.Extensions) == 0 {
			continue
		}
		if _, dup := names[key]; dup {
			return nil, fmt.Errorf("category table: duplicate category %q", name)
		}
		names[key] = struct{}{}

		exts := make([]string, 0, len(rule.Extensions))
		for _, raw := range rule.Extensions {
			ext := normalizeExtension(raw)
			if ext == "" {
				continue
			}
			if _, taken := claimed[ext]; taken {
				continue
			}
			claimed[ext] = name
			exts = append(exts, ext)
		}
		out = append(out, Rule{Name: name, Extensions: exts})
	}
	return &Table{rules: out, catchAll: catchAll}, nil
}

// Lookup returns the category for an extension such as ".JPG" or "jpg".
func (t *Table) Lookup(extension string) string {
	ext := normalizeExtension(extension)
	if ext == "" {
		return t.catchAll
	}
	for _, rule := range t.rules {
		if slices.Contains(rule.Extensions, ext) {
			return rule.Name
		}
	}
	return t.catchAll
}

// Classify returns the category for a file name.
func (t *Table) Classify(fileName string) string {
	return t.Lookup(Extension(fileName))
}

// CatchAll returns the name of the category that receives unmatched files.
func (t *Table) CatchAll() string {
	return t.catchAll
}

// Rules returns a copy of the ordered rules followed by the catch-all rule.
func (t *Table) Rules() []Rule {
	out := make([]Rule, 0, len(t.rules)+1)
	for _, rule := range t.rules {
		out = append(out, Rule{Name: rule.Name, Extensions: slices.Clone(rule.Extensions)})
	}
	return append(out, Rule{Name: t.catchAll, Extensions: []string{}})
}

// Names returns the category folder names in matching order, catch-all last.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.rules)+1)
	for _, rule := range t.rules {
		names = append(names, rule.Name)
	}
	return append(names, t.catchAll)
}

// IsCategory reports whether name is one of the table's folder names.
func (t *Table) IsCategory(name string) bool {
	return slices.Contains(t.Names(), name)
}

// Extensions returns every recognized extension, sorted.
func (t *Table) Extensions() []string {
	var out []string
	for _, rule := range t.rules {
		out = append(out, rule.Extensions...)
	}
	slices.Sort(out)
	return out
}

func validFolderName(name string) bool {
	return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// fold applies Unicode case folding. Casers are stateful, so one is built per call.
func fold(value string) string {
	return cases.Fold().String(value)
}

// NormalizeExtension folds case and adds a missing leading dot. Blank input
// and a bare "." yield "".
func NormalizeExtension(value string) string {
	return normalizeExtension(value)
}

func normalizeExtension(value string) string {
	ext := fold(strings.TrimSpace(value))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
