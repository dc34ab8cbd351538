package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"filesort/internal/organizer"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var statusStyles = [...]struct{ label, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// Labels are usually file names. The label column grows to the longest one in
// a block, within these bounds.
const (
	minLabelWidth = 12
	maxLabelWidth = 40
	statusIndent  = "  "
)

type statusLine struct {
	label   string
	kind    statusKind
	message string
}

func severityStatus(sev organizer.Severity) statusKind {
	switch sev {
	case organizer.SeverityError:
		return statusError
	case organizer.SeverityWarning:
		return statusWarn
	default:
		return statusInfo
	}
}

// diagnosticLine labels a per-file diagnostic with the file name and notes the
// category the file was headed for, when known.
func diagnosticLine(d organizer.Diagnostic) statusLine {
	msg := d.Message
	if d.Detail != "" {
		msg += ": " + d.Detail
	}
	if d.Category != "" {
		msg += " (category " + d.Category + ")"
	}
	return statusLine{label: filepath.Base(d.Path), kind: severityStatus(d.Severity), message: msg}
}

// renderDiagnostics writes one aligned status line per diagnostic. Fatal scan
// diagnostics are left to the caller, which reports them as the command error.
func renderDiagnostics(out io.Writer, diags []organizer.Diagnostic, colorize bool) {
	lines := make([]statusLine, 0, len(diags))
	for _, d := range diags {
		if d.Kind == organizer.KindFatalScan {
			continue
		}
		lines = append(lines, diagnosticLine(d))
	}
	for _, line := range renderStatusLines(lines, colorize) {
		fmt.Fprintln(out, line)
	}
}

func renderStatusLines(lines []statusLine, colorize bool) []string {
	width := minLabelWidth
	for _, l := range lines {
		if n := len([]rune(l.label)) + 1; n > width {
			width = n
		}
	}
	width = min(width, maxLabelWidth)

	rendered := make([]string, 0, len(lines))
	for _, l := range lines {
		rendered = append(rendered, formatStatusLine(l, width, colorize))
	}
	return rendered
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	return renderStatusLines([]statusLine{{label: label, kind: kind, message: message}}, colorize)[0]
}

func formatStatusLine(l statusLine, width int, colorize bool) string {
	style := statusStyles[statusInfo]
	if l.kind >= 0 && int(l.kind) < len(statusStyles) {
		style = statusStyles[l.kind]
	}
	status := "[" + style.label + "]"
	if l.message != "" {
		status += " " + l.message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, width, shortenLabel(l.label+":", width), status)
	if colorize {
		return style.color + base + ansiReset
	}
	return base
}

// shortenLabel cuts the middle out of an over-long label so the extension and
// any (N) collision suffix at the end stay visible.
func shortenLabel(label string, width int) string {
	runes := []rune(label)
	if len(runes) <= width || width < 5 {
		return label
	}
	keep := width - 3
	head := keep / 2
	return string(runes[:head]) + "..." + string(runes[len(runes)-(keep-head):])
}

func renderSectionHeader(title string, colorize bool) string {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("=", len([]rune(title)))
	if colorize {
		return ansiBlue + title + ansiReset + "\n" + ansiBlue + rule + ansiReset
	}
	return title + "\n" + rule
}

// shouldColorize reports whether ANSI colors should be written to writer:
// only for terminals, and never when NO_COLOR is set.
func shouldColorize(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
