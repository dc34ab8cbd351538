package history

import "time"

// Run summarizes one stored organize pass.
type Run struct {
	ID            string    `json:"id"`
	Root          string    `json:"root"`
	Recursive     bool      `json:"recursive"`
	Extensions    []string  `json:"extensions,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Scanned       int       `json:"scanned"`
	Moved         int       `json:"moved"`
	Failed        int       `json:"failed"`
	Filtered      int       `json:"filtered"`
	AlreadySorted int       `json:"already_sorted"`
	FatalError    string    `json:"fatal_error,omitempty"`
}

// Duration reports how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
