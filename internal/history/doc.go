// Package history persists organize runs, their moves and their diagnostics
// in a SQLite database so past passes can be listed and audited.
//
// The store is written once per run, after the engine returns. A database
// created by an older schema version is rejected with ErrSchemaMismatch;
// delete the file (or run `filesort history clear --all`) to start over.
package history
