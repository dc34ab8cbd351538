// Package export writes organize records in the formats users keep next to
// their files: a CSV log and a JSON document.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"filesort/internal/organizer"
)

// TimeLayout is the local timestamp layout used in CSV logs.
const TimeLayout = "2006-01-02 15:04:05"

// csvHeader names the CSV columns.
var csvHeader = []string{"Original Name", "Moved To", "Time"}

// DefaultCSVName returns the timestamped file name used when no path is given.
func DefaultCSVName(t time.Time) string {
	return fmt.Sprintf("file_organizer_log_%s.csv", t.Format("20060102_150405"))
}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []organizer.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.OriginalName, rec.MovedTo, rec.Time.Local().Format(TimeLayout)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %q: %w", rec.OriginalName, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes records to path. When path is a directory the default
// timestamped name is used inside it. The final path is returned.
func WriteCSVFile(path string, records []organizer.Record, now time.Time) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultCSVName(now))
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close csv: %w", err)
	}
	return path, nil
}

// Document is the JSON shape of an organize pass.
type Document struct {
	RunID       string                 `json:"run_id"`
	Root        string                 `json:"root"`
	Moved       int                    `json:"moved"`
	Failed      int                    `json:"failed"`
	Records     []organizer.Record     `json:"records"`
	Diagnostics []organizer.Diagnostic `json:"diagnostics"`
}

// NewDocument summarizes a result for JSON output.
func NewDocument(res organizer.Result) Document {
	records := res.Records
	if records == nil {
		records = []organizer.Record{}
	}
	diags := res.Diagnostics
	if diags == nil {
		diags = []organizer.Diagnostic{}
	}
	return Document{
		RunID:       res.RunID,
		Root:        res.Root,
		Moved:       len(records),
		Failed:      res.Failed(),
		Records:     records,
		Diagnostics: diags,
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
