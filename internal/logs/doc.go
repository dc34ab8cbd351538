// Package logs reads the filesort activity log for `filesort logs`.
//
// Last returns the final N lines with bounded memory, optionally filtered to a
// single run, and Follow polls for lines appended afterwards. A log file that
// shrinks (truncated or replaced) is read again from the start.
package logs
