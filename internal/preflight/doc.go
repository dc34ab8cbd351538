// Package preflight checks the filesystem paths filesort depends on before
// any file is touched.
//
// These checks run in two contexts:
//   - organize and watch call CheckRoot on the target directory and refuse to
//     start (watch) or warn (organize) when it is not usable.
//   - `filesort config validate` calls RunAll to report on the state, log and
//     category file paths.
package preflight
