// Package organizer sorts the files of a directory into per-category folders.
//
// The Engine enumerates candidate files (the root's immediate children, or the
// whole tree in recursive mode), applies an optional extension allow-list,
// classifies each file through a category.Table, makes sure the category
// folder exists, picks a collision-free name, and moves the file. Every
// successful move yields one Record; every per-file failure yields a
// Diagnostic and processing continues with the next file. Only a root that
// cannot be listed fails the whole call, with ErrFatalScan.
//
// The engine is synchronous and single-threaded. It assumes exclusive access
// to the directory tree for the duration of a call; concurrent changes made by
// other processes may cause files to be missed or renamed differently.
package organizer
