package preflight

import (
	"strings"

	"filesort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks that apply to cfg. Directories that do not exist
// yet are created first, since filesort creates them on demand anyway.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if err := cfg.EnsureDirectories(); err != nil {
		results = append(results, Result{Name: "Directories", Detail: err.Error()})
	}

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if path := strings.TrimSpace(cfg.Organize.CategoriesFile); path != "" {
		results = append(results, CheckReadableFile("Categories file", path))
	}
	return results
}

// Failed returns only the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
