// Package diagnostics accumulates the soft failures of a command run.
// Warnings print immediately; skipped-file records are batched and printed as
// a summary at end-of-run so large catalogs still produce a readable
// aggregate. The sink is append-only and a single command run is
// single-threaded, so no locking is needed.
package diagnostics

import (
	"fmt"
	"io"
	"os"
)

// Skipped records a skill file that was excluded from processing.
type Skipped struct {
	Path   string
	Reason string
}

// Sink collects warnings and skipped-file records for a single command run.
type Sink struct {
	out      io.Writer
	warnings []string
	skipped  []Skipped
}

// New creates a sink writing to stderr.
func New() *Sink {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a sink writing to the given writer.
func NewWithWriter(out io.Writer) *Sink {
	return &Sink{out: out}
}

// Warn records a warning and prints it immediately.
func (s *Sink) Warn(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(s.out, "Warning: %s\n", message)
	s.warnings = append(s.warnings, message)
}

// Note prints a continuation line without recording a warning.
func (s *Sink) Note(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// Skip records a skipped skill file and emits a warning for it.
func (s *Sink) Skip(path, reason string) {
	s.Warn("%s - %s", path, reason)
	s.skipped = append(s.skipped, Skipped{Path: path, Reason: reason})
}

// Skipped returns the recorded skip entries.
func (s *Sink) SkippedFiles() []Skipped {
	return s.skipped
}

// Warnings returns the recorded warning messages.
func (s *Sink) Warnings() []string {
	return s.warnings
}

// PrintSkippedSummary prints the batched skip records, if any.
func (s *Sink) PrintSkippedSummary() {
	if len(s.skipped) == 0 {
		return
	}

	fmt.Fprintf(s.out, "Skipped %d skills due to errors:\n", len(s.skipped))
	for _, skip := range s.skipped {
		fmt.Fprintf(s.out, "  - %s: %s\n", skip.Path, skip.Reason)
	}
}

// PrintWarningSummary prints an aggregate warning count, if any.
func (s *Sink) PrintWarningSummary() {
	if len(s.warnings) == 0 {
		return
	}

	fmt.Fprintf(s.out, "Completed with %d warning(s).\n", len(s.warnings))
}
