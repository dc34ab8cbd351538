// Package watch re-runs an organize pass on a cron schedule.
//
// A Watcher holds a flock on a lock file in the state directory for as long
// as it runs, so only one watcher per state directory is active. The lock
// never lives inside the organized directory, where it would be sorted like
// any other file. Ticks that fire while the previous pass is still running
// are skipped.
package watch
