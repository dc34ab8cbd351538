// Package category maps file extensions to organizational categories.
//
// A Table is an ordered, immutable list of rules plus a catch-all category.
// Lookup scans the rules in order and returns the first one that lists the
// extension, so overlapping rules resolve deterministically. Anything that
// matches no rule, including names without an extension, lands in the
// catch-all. Tables come from the built-in defaults, the [[categories]]
// section of the config file, or a standalone TOML/YAML table file.
package category
