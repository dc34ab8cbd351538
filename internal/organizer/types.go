package organizer

import "time"

// Request describes one organize pass.
type Request struct {
	// Root is the directory whose files are organized. Category folders are
	// created directly below it.
	Root string
	// Extensions restricts the pass to these extensions. Empty means all.
	Extensions []string
	// Recursive walks the whole tree instead of only the root's children.
	Recursive bool
}

// Task is a regular file discovered during a scan.
type Task struct {
	SourcePath string
	Name       string
	Extension  string
}

// Record describes one completed move.
type Record struct {
	OriginalName string    `json:"original_name"`
	Category     string    `json:"category"`
	MovedTo      string    `json:"moved_to"`
	SourcePath   string    `json:"source_path"`
	Time         time.Time `json:"time"`
}

// Severity grades a diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DiagnosticKind classifies why a file (or the whole scan) was not processed.
type DiagnosticKind string

const (
	KindFatalScan       DiagnosticKind = "fatal_scan"
	KindWalk            DiagnosticKind = "walk_failed"
	KindDirectoryCreate DiagnosticKind = "directory_create_failed"
	KindResolve         DiagnosticKind = "name_resolve_failed"
	KindMove            DiagnosticKind = "move_failed"
)

// Diagnostic is a non-fatal report about a file that could not be organized,
// or the single fatal report for an unreadable root.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Kind     DiagnosticKind `json:"kind"`
	Path     string         `json:"path"`
	Category string         `json:"category,omitempty"`
	Message  string         `json:"message"`
	Detail   string         `json:"error,omitempty"`
	Err      error          `json:"-"`
	Time     time.Time      `json:"time"`
}

// Result is the outcome of one organize pass. Records and Diagnostics are in
// processing order.
type Result struct {
	RunID         string       `json:"run_id"`
	Root          string       `json:"root"`
	Recursive     bool         `json:"recursive"`
	Extensions    []string     `json:"extensions,omitempty"`
	Records       []Record     `json:"records"`
	Diagnostics   []Diagnostic `json:"diagnostics"`
	Scanned       int          `json:"scanned"`
	Filtered      int          `json:"filtered"`
	AlreadySorted int          `json:"already_sorted"`
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
}

// Failed returns the number of files that produced an error diagnostic.
func (r Result) Failed() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind != KindFatalScan && d.Kind != KindWalk {
			n++
		}
	}
	return n
}
